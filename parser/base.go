// Package parser turns ARXML element trees into constant value trees.
//
// Element parsers embed Base, which owns the metadata context stack and
// the two value builders: ParseValueV3 for the pre-4.0 literal dialect
// and ParseValueV4 for the value-specification dialect. The schema
// version passed at construction picks the dialect.
//
// Parsing is synchronous and never logs. Failures are returned as
// *Error values whose Kind is one of the Err* sentinels. A parser that
// returned an error may be reused: every context frame is popped on
// the way out.
package parser

import (
	"github.com/goarxml/goarxml/constant"
	"github.com/goarxml/goarxml/xmltree"
)

// Base carries the state shared by all element parsers.
type Base struct {
	Version SchemaVersion
	Ctx     Context
}

// NewBase returns a Base for the given schema version.
func NewBase(version SchemaVersion) Base {
	return Base{Version: version}
}

// ParseSingleValueV4 runs the v4 builder on container and requires it
// to resolve to exactly one value.
func (b *Base) ParseSingleValueV4(container xmltree.Node, parent any) (constant.Value, error) {
	values, err := b.ParseValueV4(container, parent)
	if err != nil {
		return nil, err
	}
	if len(values) != 1 {
		return nil, cardinality(container.Tag(), len(values))
	}
	return values[0], nil
}

// ParseInvalidValue parses an INVALID-VALUE container, as found in
// SW-DATA-DEF-PROPS-CONDITIONAL, into its single value.
func (b *Base) ParseInvalidValue(n xmltree.Node, parent any) (constant.Value, error) {
	return b.ParseSingleValueV4(n, parent)
}
