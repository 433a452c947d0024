// Package constant defines the value model for AUTOSAR constants.
//
// A Constant owns exactly one root Value. Values form a tree: records
// and arrays own their elements in document order, and every value
// records the opaque parent token it was built under. Trees are built
// once by the parser and are read-only afterwards.
package constant

// LangText is a language-tagged text such as the L-2 paragraph of a
// DESC or the L-4 entry of a LONG-NAME.
type LangText struct {
	Text string
	Lang string // value of the L attribute
}

// AdminData holds the special data groups of an ADMIN-DATA element.
type AdminData struct {
	SpecialDataGroups []SpecialDataGroup
}

// SpecialDataGroup is an SDG element.
type SpecialDataGroup struct {
	GID         string
	SpecialData []SpecialData
}

// SpecialData is an SD element. GID is empty when the attribute is absent.
type SpecialData struct {
	GID  string
	Text string
}

// Describable is implemented by model objects that carry a description
// and a long name.
type Describable interface {
	SetDesc(LangText)
	SetLongName(LangText)
}

// Meta is the description metadata shared by describable objects.
type Meta struct {
	Desc     *LangText
	LongName *LangText
}

// SetDesc sets the description.
func (m *Meta) SetDesc(t LangText) { m.Desc = &t }

// SetLongName sets the long name.
func (m *Meta) SetLongName(t LangText) { m.LongName = &t }

// Constant is a named value definition (CONSTANT-SPECIFICATION).
type Constant struct {
	Meta
	Name string
	// TypeRef is the declared TYPE-TREF, if any. It is never resolved.
	TypeRef   string
	Value     Value
	AdminData *AdminData
	// Parent is the caller-supplied owner token, usually a package.
	Parent any
}

// New creates a Constant. Callers must set Value before handing it out.
func New(name string, parent any, adminData *AdminData) *Constant {
	return &Constant{Name: name, Parent: parent, AdminData: adminData}
}

// ElementName returns the constant's short name.
func (c *Constant) ElementName() string { return c.Name }
