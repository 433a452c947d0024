package constant

import "math/big"

// Kind identifies the variant of a Value.
type Kind int

// Value kinds. The first three are only produced by the v3 dialect,
// the TextValue to ApplicationValue kinds only by the v4 dialect.
// RecordValue and ArrayValue come from both.
const (
	KindInteger Kind = iota
	KindString
	KindBoolean
	KindText
	KindNumerical
	KindRecord
	KindArray
	KindConstantReference
	KindApplication
)

var kindNames = [...]string{
	KindInteger:           "integer",
	KindString:            "string",
	KindBoolean:           "boolean",
	KindText:              "text",
	KindNumerical:         "numerical",
	KindRecord:            "record",
	KindArray:             "array",
	KindConstantReference: "constant-reference",
	KindApplication:       "application",
}

// String returns the kind name.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Value is a node of a constant's value tree.
//
// The set of implementations is closed: *IntegerValue, *StringValue,
// *BooleanValue, *TextValue, *NumericalValue, *RecordValue,
// *ArrayValue, *ConstantReference and *ApplicationValue.
type Value interface {
	// Label returns the SHORT-NAME (v3) or SHORT-LABEL (v4), possibly empty.
	Label() string
	Kind() Kind
	// Parent returns the owner token the value was built under.
	Parent() any
	isValue()
}

type valueBase struct {
	label  string
	parent any
}

func (b *valueBase) Label() string { return b.label }
func (b *valueBase) Parent() any   { return b.parent }
func (b *valueBase) isValue()      {}

// IntegerValue is a v3 INTEGER-LITERAL.
type IntegerValue struct {
	valueBase
	TypeRef string
	// Text is the VALUE text as written.
	Text string
	// Value is nil when Text is numeric but not integral, e.g. "1.5".
	// It is not bounded to 64 bits.
	Value *big.Int
}

// NewInteger returns an IntegerValue.
func NewInteger(name, typeRef, text string, v *big.Int, parent any) *IntegerValue {
	return &IntegerValue{valueBase: valueBase{label: name, parent: parent}, TypeRef: typeRef, Text: text, Value: v}
}

// Kind returns KindInteger.
func (*IntegerValue) Kind() Kind { return KindInteger }

// Int64 returns the value if it fits in an int64.
func (v *IntegerValue) Int64() (int64, bool) {
	if v.Value == nil || !v.Value.IsInt64() {
		return 0, false
	}
	return v.Value.Int64(), true
}

// Uint64 returns the value if it fits in a uint64.
func (v *IntegerValue) Uint64() (uint64, bool) {
	if v.Value == nil || !v.Value.IsUint64() {
		return 0, false
	}
	return v.Value.Uint64(), true
}

// StringValue is a v3 STRING-LITERAL.
type StringValue struct {
	valueBase
	TypeRef string
	Value   string
}

// NewString returns a StringValue.
func NewString(name, typeRef, v string, parent any) *StringValue {
	return &StringValue{valueBase: valueBase{label: name, parent: parent}, TypeRef: typeRef, Value: v}
}

// Kind returns KindString.
func (*StringValue) Kind() Kind { return KindString }

// BooleanValue is a v3 BOOLEAN-LITERAL.
type BooleanValue struct {
	valueBase
	TypeRef string
	// Text is the VALUE text as written.
	Text string
	// Value is only meaningful when Valid is set.
	Value bool
	// Valid is false when Text is none of true, false, 1 or 0.
	Valid bool
}

// NewBoolean returns a BooleanValue.
func NewBoolean(name, typeRef, text string, v, valid bool, parent any) *BooleanValue {
	return &BooleanValue{valueBase: valueBase{label: name, parent: parent}, TypeRef: typeRef, Text: text, Value: v, Valid: valid}
}

// Kind returns KindBoolean.
func (*BooleanValue) Kind() Kind { return KindBoolean }

// TextValue is a v4 TEXT-VALUE-SPECIFICATION.
type TextValue struct {
	valueBase
	Value string
}

// NewText returns a TextValue.
func NewText(label, v string, parent any) *TextValue {
	return &TextValue{valueBase: valueBase{label: label, parent: parent}, Value: v}
}

// Kind returns KindText.
func (*TextValue) Kind() Kind { return KindText }

// NumericalValue is a v4 NUMERICAL-VALUE-SPECIFICATION.
type NumericalValue struct {
	valueBase
	Value Sample
}

// NewNumerical returns a NumericalValue.
func NewNumerical(label string, v Sample, parent any) *NumericalValue {
	return &NumericalValue{valueBase: valueBase{label: label, parent: parent}, Value: v}
}

// Kind returns KindNumerical.
func (*NumericalValue) Kind() Kind { return KindNumerical }

// RecordValue is a composite whose elements are record fields.
// TypeRef is only set by the v3 dialect.
type RecordValue struct {
	valueBase
	TypeRef  string
	Elements []Value
}

// NewRecord returns an empty RecordValue.
func NewRecord(label, typeRef string, parent any) *RecordValue {
	return &RecordValue{valueBase: valueBase{label: label, parent: parent}, TypeRef: typeRef}
}

// Kind returns KindRecord.
func (*RecordValue) Kind() Kind { return KindRecord }

// ArrayValue is a composite whose elements are array items.
// TypeRef is only set by the v3 dialect.
type ArrayValue struct {
	valueBase
	TypeRef  string
	Elements []Value
}

// NewArray returns an empty ArrayValue.
func NewArray(label, typeRef string, parent any) *ArrayValue {
	return &ArrayValue{valueBase: valueBase{label: label, parent: parent}, TypeRef: typeRef}
}

// Kind returns KindArray.
func (*ArrayValue) Kind() Kind { return KindArray }

// ConstantReference points at another constant by reference path.
// The reference is kept as text and never resolved here.
type ConstantReference struct {
	valueBase
	Meta
	Ref       string
	AdminData *AdminData
}

// NewConstantReference returns a ConstantReference.
func NewConstantReference(label, ref string, parent any, adminData *AdminData) *ConstantReference {
	return &ConstantReference{valueBase: valueBase{label: label, parent: parent}, Ref: ref, AdminData: adminData}
}

// Kind returns KindConstantReference.
func (*ConstantReference) Kind() Kind { return KindConstantReference }

// SwValueCont is the SW-VALUE-CONT payload of an application value.
type SwValueCont struct {
	Values    []Sample
	UnitRef   string
	ArraySize []Sample
}

// SwAxisCont is an SW-AXIS-CONT payload of an application value.
type SwAxisCont struct {
	Values  []Sample
	UnitRef string
}

// ApplicationValue is a v4 APPLICATION-VALUE-SPECIFICATION.
type ApplicationValue struct {
	valueBase
	Category    string
	SwValueCont *SwValueCont
	SwAxisCont  *SwAxisCont
}

// NewApplication returns an ApplicationValue.
func NewApplication(label, category string, values *SwValueCont, axis *SwAxisCont, parent any) *ApplicationValue {
	return &ApplicationValue{
		valueBase:   valueBase{label: label, parent: parent},
		Category:    category,
		SwValueCont: values,
		SwAxisCont:  axis,
	}
}

// Kind returns KindApplication.
func (*ApplicationValue) Kind() Kind { return KindApplication }

// Elements returns the children of a composite value, or nil for leaves.
func Elements(v Value) []Value {
	switch v := v.(type) {
	case *RecordValue:
		return v.Elements
	case *ArrayValue:
		return v.Elements
	default:
		return nil
	}
}

// Walk visits v and its descendants depth-first in document order.
// Returning false from fn stops descent below the current value.
func Walk(v Value, fn func(v Value, depth int) bool) {
	walk(v, 0, fn)
}

func walk(v Value, depth int, fn func(Value, int) bool) {
	if !fn(v, depth) {
		return
	}
	for _, e := range Elements(v) {
		walk(e, depth+1, fn)
	}
}
