package parser

import (
	"github.com/goarxml/goarxml/constant"
	"github.com/goarxml/goarxml/xmltree"
)

const tagConstantSpecification = "CONSTANT-SPECIFICATION"

// ConstantParser parses CONSTANT-SPECIFICATION elements.
type ConstantParser struct {
	Base
}

var _ ElementParser = (*ConstantParser)(nil)

// NewConstantParser returns a ConstantParser for the given schema version.
func NewConstantParser(version SchemaVersion) *ConstantParser {
	return &ConstantParser{Base: NewBase(version)}
}

// SupportedTags returns CONSTANT-SPECIFICATION.
func (p *ConstantParser) SupportedTags() []string {
	return []string{tagConstantSpecification}
}

// ParseElement parses n if it is a CONSTANT-SPECIFICATION.
func (p *ConstantParser) ParseElement(n xmltree.Node, parent any) (Element, bool, error) {
	if n.Tag() != tagConstantSpecification {
		return nil, false, nil
	}
	c, err := p.ParseConstant(n, parent)
	if err != nil || c == nil {
		return nil, false, err
	}
	return c, true, nil
}

// ParseConstant builds a Constant from a CONSTANT-SPECIFICATION.
//
// A nil constant with a nil error means the element has no SHORT-NAME
// or no value payload for the configured dialect; it is not a constant
// to materialize. Only VALUE is read in v3 mode and only VALUE-SPEC in
// v4 mode; the other one is reported as an unsupported tag.
func (p *ConstantParser) ParseConstant(n xmltree.Node, parent any) (*constant.Constant, error) {
	var result *constant.Constant
	err := p.Ctx.Scope(func() (constant.Describable, error) {
		var (
			v3Value, v4Spec xmltree.Node
			typeRef         string
		)
		for _, child := range n.Children() {
			switch {
			case !p.Version.IsV4() && child.Tag() == "VALUE":
				v3Value = child
			case p.Version.IsV4() && child.Tag() == "VALUE-SPEC":
				v4Spec = child
			case child.Tag() == "TYPE-TREF":
				typeRef = child.Text()
			default:
				if err := p.Ctx.DefaultHandler(child, n.Tag()); err != nil {
					return nil, err
				}
			}
		}

		name := p.Ctx.Name()
		if name == "" || (v3Value == nil && v4Spec == nil) {
			return nil, nil
		}

		c := constant.New(name, parent, p.Ctx.AdminData())
		c.TypeRef = typeRef
		var err error
		if v3Value != nil {
			c.Value, err = p.rootValueV3(v3Value, c)
		} else {
			c.Value, err = p.ParseSingleValueV4(v4Spec, c)
		}
		if err != nil {
			return nil, err
		}
		result = c
		return c, nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// rootValueV3 parses the literal held by a v3 VALUE element. A
// constant needs exactly one value, so an empty VALUE or an unnamed
// root literal is a cardinality violation rather than a silent skip.
func (p *ConstantParser) rootValueV3(n xmltree.Node, owner *constant.Constant) (constant.Value, error) {
	root := xmltree.FirstChild(n)
	if root == nil {
		return nil, cardinality(n.Tag(), 0)
	}
	v, ok, err := p.ParseValueV3(root, owner)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, cardinality(n.Tag(), 0)
	}
	return v, nil
}
