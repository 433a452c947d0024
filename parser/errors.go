package parser

import (
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is against an error returned by
// any parse call.
var (
	// ErrUnsupportedTag reports a child tag the current handler does not know.
	ErrUnsupportedTag = errors.New("unsupported tag")
	// ErrMissingRequiredChild reports an absent schema-mandated child.
	ErrMissingRequiredChild = errors.New("missing required child")
	// ErrCardinality reports a value container that did not resolve to
	// exactly one value where one is mandated.
	ErrCardinality = errors.New("value specification must contain exactly one element")
	// ErrInvalidLiteral reports integer literal text that is not a number.
	ErrInvalidLiteral = errors.New("invalid literal")
	// ErrMissingAttribute reports an absent mandatory XML attribute.
	ErrMissingAttribute = errors.New("missing required attribute")
)

// Error is a fatal parse failure. Parsing never recovers from one; the
// enclosing element produces no object.
type Error struct {
	Kind error
	// Tag is the offending tag (unsupported or missing child, attribute
	// name for ErrMissingAttribute).
	Tag string
	// Parent is the tag of the element being parsed when the failure occurred.
	Parent string
	// Text is the offending literal for ErrInvalidLiteral.
	Text string
	// Count is the number of values found for ErrCardinality.
	Count int
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrUnsupportedTag:
		return fmt.Sprintf("%s: <%s> under <%s>", e.Kind, e.Tag, e.Parent)
	case ErrMissingRequiredChild:
		return fmt.Sprintf("%s: <%s> under <%s>", e.Kind, e.Tag, e.Parent)
	case ErrMissingAttribute:
		return fmt.Sprintf("%s: %s on <%s>", e.Kind, e.Tag, e.Parent)
	case ErrCardinality:
		return fmt.Sprintf("%s: <%s> resolved to %d values", e.Kind, e.Parent, e.Count)
	case ErrInvalidLiteral:
		return fmt.Sprintf("%s: %q in <%s>", e.Kind, e.Text, e.Parent)
	default:
		return fmt.Sprintf("%v: <%s>", e.Kind, e.Parent)
	}
}

// Unwrap returns the error kind.
func (e *Error) Unwrap() error { return e.Kind }

// Code returns a stable kebab-case identifier for the error kind,
// suitable as a diagnostic code.
func (e *Error) Code() string {
	return Code(e.Kind)
}

// Code maps an error kind (or any error wrapping one) to its diagnostic code.
// Unknown errors map to "parse-error".
func Code(err error) string {
	switch {
	case errors.Is(err, ErrUnsupportedTag):
		return "unsupported-tag"
	case errors.Is(err, ErrMissingRequiredChild):
		return "missing-required-child"
	case errors.Is(err, ErrCardinality):
		return "cardinality-violation"
	case errors.Is(err, ErrInvalidLiteral):
		return "invalid-literal"
	case errors.Is(err, ErrMissingAttribute):
		return "missing-attribute"
	default:
		return "parse-error"
	}
}

func unsupported(tag, parent string) error {
	return &Error{Kind: ErrUnsupportedTag, Tag: tag, Parent: parent}
}

func missingChild(tag, parent string) error {
	return &Error{Kind: ErrMissingRequiredChild, Tag: tag, Parent: parent}
}

func missingAttr(attr, parent string) error {
	return &Error{Kind: ErrMissingAttribute, Tag: attr, Parent: parent}
}

func cardinality(parent string, n int) error {
	return &Error{Kind: ErrCardinality, Parent: parent, Count: n}
}

func invalidLiteral(text, parent string) error {
	return &Error{Kind: ErrInvalidLiteral, Text: text, Parent: parent}
}
