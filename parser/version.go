package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// SchemaVersion selects the value-specification dialect. It is fixed
// when a parser is built and never inferred from document content.
type SchemaVersion int

const (
	// Version3 selects the pre-4.0 literal dialect (INTEGER-LITERAL, ...).
	Version3 SchemaVersion = 3
	// Version4 selects the 4.0-and-later value-specification dialect.
	Version4 SchemaVersion = 4
)

// String returns "3.0" or "4.0".
func (v SchemaVersion) String() string {
	switch v {
	case Version3:
		return "3.0"
	case Version4:
		return "4.0"
	default:
		return fmt.Sprintf("SchemaVersion(%d)", int(v))
	}
}

// IsV4 reports whether v selects the 4.0-and-later dialect.
func (v SchemaVersion) IsV4() bool { return v >= Version4 }

// ParseSchemaVersion maps a release number such as "3.2.3", "4", or
// "4.3.1" onto its dialect tier.
func ParseSchemaVersion(s string) (SchemaVersion, error) {
	s = strings.TrimSpace(s)
	major, _, _ := strings.Cut(s, ".")
	n, err := strconv.Atoi(major)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid schema version %q", s)
	}
	if n < 4 {
		return Version3, nil
	}
	return Version4, nil
}

// MarshalText implements encoding.TextMarshaler.
func (v SchemaVersion) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *SchemaVersion) UnmarshalText(b []byte) error {
	parsed, err := ParseSchemaVersion(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
