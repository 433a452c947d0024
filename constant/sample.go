package constant

import (
	"strconv"
	"strings"
)

// SampleKind tells which field of a Sample is meaningful.
type SampleKind int

const (
	SampleInt SampleKind = iota
	SampleFloat
	SampleText
)

// Sample is a number-or-text datum, as found in NUMERICAL values and
// SW-VALUES-PHYS lists.
type Sample struct {
	Kind  SampleKind
	Int   int64
	Float float64
	Text  string
}

// IntSample returns an integer Sample.
func IntSample(v int64) Sample { return Sample{Kind: SampleInt, Int: v} }

// FloatSample returns a floating point Sample.
func FloatSample(v float64) Sample { return Sample{Kind: SampleFloat, Float: v} }

// TextSample returns a text Sample.
func TextSample(v string) Sample { return Sample{Kind: SampleText, Text: v} }

// ParseSample interprets s as a base-10 integer, then as a float, and
// otherwise keeps it as text. Surrounding whitespace is ignored for the
// numeric attempts.
func ParseSample(s string) Sample {
	trimmed := strings.TrimSpace(s)
	if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return IntSample(i)
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return FloatSample(f)
	}
	return TextSample(s)
}

// IsNumber reports whether the sample holds a number.
func (s Sample) IsNumber() bool { return s.Kind != SampleText }

// Float64 returns the numeric value as a float64. Text samples return 0.
func (s Sample) Float64() float64 {
	switch s.Kind {
	case SampleInt:
		return float64(s.Int)
	case SampleFloat:
		return s.Float
	default:
		return 0
	}
}

// Any returns the sample as int64, float64 or string.
func (s Sample) Any() any {
	switch s.Kind {
	case SampleInt:
		return s.Int
	case SampleFloat:
		return s.Float
	default:
		return s.Text
	}
}

// String formats the sample the way it would appear in ARXML.
func (s Sample) String() string {
	switch s.Kind {
	case SampleInt:
		return strconv.FormatInt(s.Int, 10)
	case SampleFloat:
		return strconv.FormatFloat(s.Float, 'g', -1, 64)
	default:
		return s.Text
	}
}
