package goarxml

import (
	"github.com/goarxml/goarxml/constant"
	"github.com/goarxml/goarxml/parser"
)

// Type aliases for the public API. The value model lives in the
// constant package, the element parsers in the parser package.

// Constant is a parsed CONSTANT-SPECIFICATION.
type Constant = constant.Constant

// Value is any node of a constant's value tree.
type Value = constant.Value

// ValueKind identifies the variant of a Value.
type ValueKind = constant.Kind

// ConstantReference is a value that refers to another constant by path.
type ConstantReference = constant.ConstantReference

// SchemaVersion selects the ARXML value dialect.
type SchemaVersion = parser.SchemaVersion

// Schema versions.
const (
	Version3 = parser.Version3
	Version4 = parser.Version4
)

// ParseSchemaVersion parses "3", "3.2.3", "4.0" and similar.
func ParseSchemaVersion(s string) (SchemaVersion, error) {
	return parser.ParseSchemaVersion(s)
}
