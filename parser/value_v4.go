package parser

import (
	"github.com/goarxml/goarxml/constant"
	"github.com/goarxml/goarxml/xmltree"
)

type v4Builder func(b *Base, n xmltree.Node, parent any) (constant.Value, error)

// v4Builders maps every value-specification tag to its builder.
// Assigned in init because the composite builders recurse through it.
var v4Builders map[string]v4Builder

func init() {
	v4Builders = map[string]v4Builder{
		"TEXT-VALUE-SPECIFICATION":        (*Base).parseTextValueSpec,
		"NUMERICAL-VALUE-SPECIFICATION":   (*Base).parseNumericalValueSpec,
		"RECORD-VALUE-SPECIFICATION":      (*Base).parseRecordValueSpec,
		"ARRAY-VALUE-SPECIFICATION":       (*Base).parseArrayValueSpec,
		"CONSTANT-REFERENCE":              (*Base).parseConstantReference,
		"APPLICATION-VALUE-SPECIFICATION": (*Base).parseApplicationValueSpec,
	}
}

// ParseValueV4 builds the values held by a v4 container (VALUE-SPEC,
// FIELDS, ELEMENTS or INVALID-VALUE), in document order. A container
// may legitimately hold zero, one or many values.
func (b *Base) ParseValueV4(container xmltree.Node, parent any) ([]constant.Value, error) {
	children := container.Children()
	out := make([]constant.Value, 0, len(children))
	for _, child := range children {
		build, ok := v4Builders[child.Tag()]
		if !ok {
			return nil, unsupported(child.Tag(), container.Tag())
		}
		v, err := build(b, child, parent)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// labelledValue scans a specification whose children are SHORT-LABEL
// plus one mandatory payload child, returning the label and the payload.
func labelledValue(n xmltree.Node, payload string) (label string, body xmltree.Node, err error) {
	for _, child := range n.Children() {
		switch child.Tag() {
		case "SHORT-LABEL":
			label = child.Text()
		case payload:
			body = child
		default:
			return "", nil, unsupported(child.Tag(), n.Tag())
		}
	}
	if body == nil {
		return "", nil, missingChild(payload, n.Tag())
	}
	return label, body, nil
}

// payloadText returns the text of a mandatory text child. An empty
// element counts as missing.
func payloadText(child xmltree.Node, parent string) (string, error) {
	text := child.Text()
	if text == "" {
		return "", missingChild(child.Tag(), parent)
	}
	return text, nil
}

func (b *Base) parseTextValueSpec(n xmltree.Node, parent any) (constant.Value, error) {
	label, value, err := labelledValue(n, "VALUE")
	if err != nil {
		return nil, err
	}
	text, err := payloadText(value, n.Tag())
	if err != nil {
		return nil, err
	}
	return constant.NewText(label, text, parent), nil
}

func (b *Base) parseNumericalValueSpec(n xmltree.Node, parent any) (constant.Value, error) {
	label, value, err := labelledValue(n, "VALUE")
	if err != nil {
		return nil, err
	}
	text, err := payloadText(value, n.Tag())
	if err != nil {
		return nil, err
	}
	return constant.NewNumerical(label, constant.ParseSample(text), parent), nil
}

func (b *Base) parseRecordValueSpec(n xmltree.Node, parent any) (constant.Value, error) {
	label, fields, err := labelledValue(n, "FIELDS")
	if err != nil {
		return nil, err
	}
	rec := constant.NewRecord(label, "", parent)
	if rec.Elements, err = b.ParseValueV4(fields, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (b *Base) parseArrayValueSpec(n xmltree.Node, parent any) (constant.Value, error) {
	label, elements, err := labelledValue(n, "ELEMENTS")
	if err != nil {
		return nil, err
	}
	arr := constant.NewArray(label, "", parent)
	if arr.Elements, err = b.ParseValueV4(elements, arr); err != nil {
		return nil, err
	}
	return arr, nil
}

// parseConstantReference runs in its own context frame: a reference
// may carry its own admin data, description and long name.
func (b *Base) parseConstantReference(n xmltree.Node, parent any) (constant.Value, error) {
	var ref *constant.ConstantReference
	err := b.Ctx.Scope(func() (constant.Describable, error) {
		var (
			label, target string
			haveTarget    bool
		)
		for _, child := range n.Children() {
			switch child.Tag() {
			case "SHORT-LABEL":
				label = child.Text()
			case "CONSTANT-REF":
				var err error
				if target, err = payloadText(child, n.Tag()); err != nil {
					return nil, err
				}
				haveTarget = true
			default:
				if err := b.Ctx.DefaultHandler(child, n.Tag()); err != nil {
					return nil, err
				}
			}
		}
		if !haveTarget {
			return nil, missingChild("CONSTANT-REF", n.Tag())
		}
		ref = constant.NewConstantReference(label, target, parent, b.Ctx.AdminData())
		return ref, nil
	})
	if err != nil {
		return nil, err
	}
	return ref, nil
}

func (b *Base) parseApplicationValueSpec(n xmltree.Node, parent any) (constant.Value, error) {
	var (
		label, category string
		values          *constant.SwValueCont
		axis            *constant.SwAxisCont
		err             error
	)
	for _, child := range n.Children() {
		switch child.Tag() {
		case "SHORT-LABEL":
			label = child.Text()
		case "CATEGORY":
			category = child.Text()
		case "SW-VALUE-CONT":
			if values, err = parseSwValueCont(child); err != nil {
				return nil, err
			}
		case "SW-AXIS-CONTS":
			// Only the first axis container is read.
			if first := xmltree.Find(child, "SW-AXIS-CONT"); first != nil {
				if axis, err = parseSwAxisCont(first); err != nil {
					return nil, err
				}
			}
		default:
			return nil, unsupported(child.Tag(), n.Tag())
		}
	}
	return constant.NewApplication(label, category, values, axis, parent), nil
}

func parseSwValueCont(n xmltree.Node) (*constant.SwValueCont, error) {
	cont := &constant.SwValueCont{}
	for _, child := range n.Children() {
		switch child.Tag() {
		case "UNIT-REF":
			cont.UnitRef = child.Text()
		case "SW-ARRAYSIZE":
			for _, v := range child.Children() {
				if v.Tag() != "V" {
					return nil, unsupported(v.Tag(), child.Tag())
				}
				cont.ArraySize = append(cont.ArraySize, constant.ParseSample(v.Text()))
			}
		case "SW-VALUES-PHYS":
			for _, v := range child.Children() {
				switch v.Tag() {
				case "V", "VF":
					cont.Values = append(cont.Values, constant.ParseSample(v.Text()))
				case "VT":
					cont.Values = append(cont.Values, constant.TextSample(v.Text()))
				default:
					return nil, unsupported(v.Tag(), child.Tag())
				}
			}
		default:
			return nil, unsupported(child.Tag(), n.Tag())
		}
	}
	return cont, nil
}

func parseSwAxisCont(n xmltree.Node) (*constant.SwAxisCont, error) {
	cont := &constant.SwAxisCont{}
	for _, child := range n.Children() {
		switch child.Tag() {
		case "UNIT-REF":
			cont.UnitRef = child.Text()
		case "SW-VALUES-PHYS":
			for _, v := range child.Children() {
				if v.Tag() != "V" {
					return nil, unsupported(v.Tag(), child.Tag())
				}
				cont.Values = append(cont.Values, constant.ParseSample(v.Text()))
			}
		default:
			return nil, unsupported(child.Tag(), n.Tag())
		}
	}
	return cont, nil
}
