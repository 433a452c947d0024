package parser

import (
	"github.com/goarxml/goarxml/constant"
	"github.com/goarxml/goarxml/xmltree"
)

// ParseValueV3 builds a value from a v3 literal element
// (INTEGER-LITERAL, STRING-LITERAL, BOOLEAN-LITERAL,
// RECORD-SPECIFICATION or ARRAY-SPECIFICATION).
//
// ok is false when the literal has no SHORT-NAME, or when its tag is
// not a known literal kind. Composites drop such children silently and
// keep the remaining ones in document order.
func (b *Base) ParseValueV3(n xmltree.Node, parent any) (v constant.Value, ok bool, err error) {
	name, ok := xmltree.ChildText(n, "SHORT-NAME")
	if !ok {
		return nil, false, nil
	}
	tag := n.Tag()

	switch tag {
	case "INTEGER-LITERAL", "STRING-LITERAL", "BOOLEAN-LITERAL":
		typeRef, text, err := v3Scalar(n)
		if err != nil {
			return nil, false, err
		}
		switch tag {
		case "INTEGER-LITERAL":
			i, numeric := parseInteger(text)
			if !numeric {
				return nil, false, invalidLiteral(text, tag)
			}
			return constant.NewInteger(name, typeRef, text, i, parent), true, nil
		case "BOOLEAN-LITERAL":
			bv, valid := parseBoolean(text)
			return constant.NewBoolean(name, typeRef, text, bv, valid, parent), true, nil
		default:
			return constant.NewString(name, typeRef, text, parent), true, nil
		}

	case "RECORD-SPECIFICATION":
		typeRef, found := xmltree.ChildText(n, "TYPE-TREF")
		if !found {
			return nil, false, missingChild("TYPE-TREF", tag)
		}
		rec := constant.NewRecord(name, typeRef, parent)
		elems, err := b.v3Elements(n, rec)
		if err != nil {
			return nil, false, err
		}
		rec.Elements = elems
		return rec, true, nil

	case "ARRAY-SPECIFICATION":
		typeRef, found := xmltree.ChildText(n, "TYPE-TREF")
		if !found {
			return nil, false, missingChild("TYPE-TREF", tag)
		}
		arr := constant.NewArray(name, typeRef, parent)
		elems, err := b.v3Elements(n, arr)
		if err != nil {
			return nil, false, err
		}
		arr.Elements = elems
		return arr, true, nil
	}

	// Other literal kinds (CHAR-LITERAL, REFERENCE-LITERAL, ...) yield no value.
	return nil, false, nil
}

func v3Scalar(n xmltree.Node) (typeRef, text string, err error) {
	typeRef, ok := xmltree.ChildText(n, "TYPE-TREF")
	if !ok {
		return "", "", missingChild("TYPE-TREF", n.Tag())
	}
	text, ok = xmltree.ChildText(n, "VALUE")
	if !ok {
		return "", "", missingChild("VALUE", n.Tag())
	}
	return typeRef, text, nil
}

// v3Elements parses every child under ELEMENTS of a composite literal.
func (b *Base) v3Elements(n xmltree.Node, owner constant.Value) ([]constant.Value, error) {
	container := xmltree.Find(n, "ELEMENTS")
	if container == nil {
		return nil, nil
	}
	var out []constant.Value
	for _, child := range container.Children() {
		v, ok, err := b.ParseValueV3(child, owner)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, v)
		}
	}
	return out, nil
}
