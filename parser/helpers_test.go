package parser

import (
	"strconv"

	"github.com/goarxml/goarxml/constant"
)

// shape is a parent-free projection of a value tree for diffing.
type shape struct {
	Kind  string
	Label string
	Value string
	Elems []shape
}

func shapeOf(v constant.Value) shape {
	s := shape{Kind: v.Kind().String(), Label: v.Label()}
	switch v := v.(type) {
	case *constant.IntegerValue:
		s.Value = v.Text
		if v.Value != nil {
			s.Value = v.Value.String()
		}
	case *constant.StringValue:
		s.Value = v.Value
	case *constant.BooleanValue:
		s.Value = v.Text
		if v.Valid {
			s.Value = strconv.FormatBool(v.Value)
		}
	case *constant.TextValue:
		s.Value = v.Value
	case *constant.NumericalValue:
		s.Value = v.Value.String()
	case *constant.ConstantReference:
		s.Value = v.Ref
	case *constant.ApplicationValue:
		s.Value = v.Category
	}
	for _, e := range constant.Elements(v) {
		s.Elems = append(s.Elems, shapeOf(e))
	}
	return s
}

func shapesOf(vs []constant.Value) []shape {
	out := make([]shape, len(vs))
	for i, v := range vs {
		out[i] = shapeOf(v)
	}
	return out
}
