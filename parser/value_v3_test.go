package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goarxml/goarxml/constant"
	"github.com/goarxml/goarxml/internal/testutil"
	"github.com/goarxml/goarxml/xmltree"
)

func intLiteral(name, value string) *xmltree.Element {
	return testutil.E("INTEGER-LITERAL",
		testutil.T("SHORT-NAME", name),
		testutil.T("TYPE-TREF", "/DataTypes/UInt8"),
		testutil.T("VALUE", value),
	)
}

func TestParseValueV3Scalars(t *testing.T) {
	b := NewBase(Version3)

	tests := []struct {
		name string
		node *xmltree.Element
		want shape
	}{
		{"integer", intLiteral("I", "42"), shape{Kind: "integer", Label: "I", Value: "42"}},
		{"hex integer", intLiteral("H", "0x1F"), shape{Kind: "integer", Label: "H", Value: "31"}},
		{"string", testutil.E("STRING-LITERAL", testutil.T("SHORT-NAME", "S"), testutil.T("TYPE-TREF", "/T/Str"), testutil.T("VALUE", "abc")),
			shape{Kind: "string", Label: "S", Value: "abc"}},
		{"boolean", testutil.E("BOOLEAN-LITERAL", testutil.T("SHORT-NAME", "B"), testutil.T("TYPE-TREF", "/T/Bool"), testutil.T("VALUE", "true")),
			shape{Kind: "boolean", Label: "B", Value: "true"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok, err := b.ParseValueV3(tt.node, nil)
			require.NoError(t, err)
			require.True(t, ok)
			if diff := cmp.Diff(tt.want, shapeOf(v)); diff != "" {
				t.Errorf("value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseValueV3TypeRef(t *testing.T) {
	b := NewBase(Version3)
	v, ok, err := b.ParseValueV3(intLiteral("I", "7"), "owner")
	require.NoError(t, err)
	require.True(t, ok)

	iv, isInt := v.(*constant.IntegerValue)
	require.True(t, isInt, "got %T", v)
	assert.Equal(t, "/DataTypes/UInt8", iv.TypeRef)
	n, fits := iv.Int64()
	assert.True(t, fits)
	assert.Equal(t, int64(7), n)
	assert.Equal(t, "7", iv.Text)
	assert.Equal(t, "owner", iv.Parent())
}

func TestParseValueV3RecordPreservesOrder(t *testing.T) {
	b := NewBase(Version3)
	rec := testutil.E("RECORD-SPECIFICATION",
		testutil.T("SHORT-NAME", "R"),
		testutil.T("TYPE-TREF", "/T/Rec"),
		testutil.E("ELEMENTS",
			intLiteral("a", "1"),
			intLiteral("b", "2"),
			intLiteral("c", "3"),
		),
	)

	v, ok, err := b.ParseValueV3(rec, nil)
	require.NoError(t, err)
	require.True(t, ok)

	want := shape{Kind: "record", Label: "R", Elems: []shape{
		{Kind: "integer", Label: "a", Value: "1"},
		{Kind: "integer", Label: "b", Value: "2"},
		{Kind: "integer", Label: "c", Value: "3"},
	}}
	if diff := cmp.Diff(want, shapeOf(v)); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}

	r := v.(*constant.RecordValue)
	assert.Equal(t, "/T/Rec", r.TypeRef)
	for _, e := range r.Elements {
		assert.Same(t, r, e.Parent(), "element %s should be owned by the record", e.Label())
	}
}

func TestParseValueV3DropsUnnamedChildren(t *testing.T) {
	b := NewBase(Version3)
	rec := testutil.E("RECORD-SPECIFICATION",
		testutil.T("SHORT-NAME", "R"),
		testutil.T("TYPE-TREF", "/T/Rec"),
		testutil.E("ELEMENTS",
			intLiteral("a", "1"),
			testutil.E("INTEGER-LITERAL", testutil.T("TYPE-TREF", "/T/U8"), testutil.T("VALUE", "9")),
			intLiteral("b", "2"),
		),
	)

	v, ok, err := b.ParseValueV3(rec, nil)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, constant.Elements(v), 2)
	assert.Equal(t, "a", constant.Elements(v)[0].Label())
	assert.Equal(t, "b", constant.Elements(v)[1].Label())
}

func TestParseValueV3DropsUnknownLiteral(t *testing.T) {
	b := NewBase(Version3)
	arr := testutil.E("ARRAY-SPECIFICATION",
		testutil.T("SHORT-NAME", "A"),
		testutil.T("TYPE-TREF", "/T/Arr"),
		testutil.E("ELEMENTS",
			testutil.E("CHAR-LITERAL", testutil.T("SHORT-NAME", "x"), testutil.T("VALUE", "x")),
			intLiteral("n", "5"),
		),
	)

	v, ok, err := b.ParseValueV3(arr, nil)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, constant.Elements(v), 1)
	assert.Equal(t, constant.KindArray, v.Kind())
}

func TestParseValueV3NestedComposites(t *testing.T) {
	b := NewBase(Version3)
	inner := testutil.E("ARRAY-SPECIFICATION",
		testutil.T("SHORT-NAME", "arr"),
		testutil.T("TYPE-TREF", "/T/Arr"),
		testutil.E("ELEMENTS", intLiteral("0", "10"), intLiteral("1", "11")),
	)
	outer := testutil.E("RECORD-SPECIFICATION",
		testutil.T("SHORT-NAME", "rec"),
		testutil.T("TYPE-TREF", "/T/Rec"),
		testutil.E("ELEMENTS", inner, testutil.E("STRING-LITERAL", testutil.T("SHORT-NAME", "s"), testutil.T("TYPE-TREF", "/T/S"), testutil.T("VALUE", "hi"))),
	)

	v, ok, err := b.ParseValueV3(outer, nil)
	require.NoError(t, err)
	require.True(t, ok)

	want := shape{Kind: "record", Label: "rec", Elems: []shape{
		{Kind: "array", Label: "arr", Elems: []shape{
			{Kind: "integer", Label: "0", Value: "10"},
			{Kind: "integer", Label: "1", Value: "11"},
		}},
		{Kind: "string", Label: "s", Value: "hi"},
	}}
	if diff := cmp.Diff(want, shapeOf(v)); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestParseValueV3SkipsUnnamedRoot(t *testing.T) {
	b := NewBase(Version3)
	v, ok, err := b.ParseValueV3(testutil.E("INTEGER-LITERAL", testutil.T("VALUE", "1")), nil)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestParseValueV3WideIntegers(t *testing.T) {
	b := NewBase(Version3)

	tests := []struct {
		name      string
		text      string
		want      string
		wantInt64 bool
		wantUint  bool
	}{
		{"uint64 max", "18446744073709551615", "18446744073709551615", false, true},
		{"int64 min", "-9223372036854775808", "-9223372036854775808", true, false},
		{"beyond 64 bits", "0x1FFFFFFFFFFFFFFFF", "36893488147419103231", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok, err := b.ParseValueV3(intLiteral("Max", tt.text), nil)
			require.NoError(t, err)
			require.True(t, ok)

			iv := v.(*constant.IntegerValue)
			assert.Equal(t, tt.text, iv.Text)
			require.NotNil(t, iv.Value)
			assert.Equal(t, tt.want, iv.Value.String())
			_, fits := iv.Int64()
			assert.Equal(t, tt.wantInt64, fits)
			_, fits = iv.Uint64()
			assert.Equal(t, tt.wantUint, fits)
		})
	}
}

func TestParseValueV3NonIntegralNumberKeepsText(t *testing.T) {
	b := NewBase(Version3)
	v, ok, err := b.ParseValueV3(intLiteral("F", "1.5"), nil)
	require.NoError(t, err)
	require.True(t, ok)

	iv := v.(*constant.IntegerValue)
	assert.Equal(t, "1.5", iv.Text)
	assert.Nil(t, iv.Value)
}

func TestParseValueV3BooleanSpellings(t *testing.T) {
	b := NewBase(Version3)

	tests := []struct {
		text      string
		wantValue bool
		wantValid bool
	}{
		{"true", true, true},
		{"1", true, true},
		{"false", false, true},
		{"0", false, true},
		{"yes", false, false},
		{"TRUE", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			node := testutil.E("BOOLEAN-LITERAL",
				testutil.T("SHORT-NAME", "B"),
				testutil.T("TYPE-TREF", "/T/Bool"),
				testutil.T("VALUE", tt.text),
			)
			v, ok, err := b.ParseValueV3(node, nil)
			require.NoError(t, err)
			require.True(t, ok)

			bv := v.(*constant.BooleanValue)
			assert.Equal(t, tt.text, bv.Text)
			assert.Equal(t, tt.wantValue, bv.Value)
			assert.Equal(t, tt.wantValid, bv.Valid)
		})
	}
}

func TestParseValueV3Errors(t *testing.T) {
	b := NewBase(Version3)

	tests := []struct {
		name string
		node *xmltree.Element
		kind error
	}{
		{"missing value", testutil.E("INTEGER-LITERAL", testutil.T("SHORT-NAME", "I"), testutil.T("TYPE-TREF", "/T")), ErrMissingRequiredChild},
		{"missing type", testutil.E("STRING-LITERAL", testutil.T("SHORT-NAME", "S"), testutil.T("VALUE", "x")), ErrMissingRequiredChild},
		{"record missing type", testutil.E("RECORD-SPECIFICATION", testutil.T("SHORT-NAME", "R"), testutil.E("ELEMENTS")), ErrMissingRequiredChild},
		{"bad integer", intLiteral("I", "forty-two"), ErrInvalidLiteral},
		{"empty integer", intLiteral("I", ""), ErrInvalidLiteral},
		{"nested error", testutil.E("ARRAY-SPECIFICATION", testutil.T("SHORT-NAME", "A"), testutil.T("TYPE-TREF", "/T"),
			testutil.E("ELEMENTS", intLiteral("ok", "1"), intLiteral("bad", "x"))), ErrInvalidLiteral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok, err := b.ParseValueV3(tt.node, nil)
			require.ErrorIs(t, err, tt.kind)
			assert.False(t, ok)
			assert.Nil(t, v)
		})
	}
}
