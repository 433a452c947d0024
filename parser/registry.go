package parser

import (
	"slices"

	"github.com/goarxml/goarxml/xmltree"
)

// Element is a domain object produced by an ElementParser.
type Element interface {
	ElementName() string
}

// ElementParser parses one kind of top-level ARXML element.
type ElementParser interface {
	// SupportedTags returns the element tags this parser claims.
	SupportedTags() []string

	// ParseElement consumes n and returns the element it describes.
	// ok is false, with a nil error, when n yields no object (missing
	// name or payload, or a tag the parser does not apply to).
	ParseElement(n xmltree.Node, parent any) (el Element, ok bool, err error)
}

// Factory builds a fresh ElementParser for a schema version.
type Factory func(version SchemaVersion) ElementParser

// DefaultFactories lists the element parsers this module provides.
var DefaultFactories = []Factory{
	func(v SchemaVersion) ElementParser { return NewConstantParser(v) },
}

// Registry dispatches elements to parsers by tag.
//
// A Registry and the parsers in it are not safe for concurrent use,
// since each parser owns a context stack. Build one Registry per
// goroutine with NewRegistry.
type Registry struct {
	version SchemaVersion
	parsers map[string]ElementParser
}

// NewRegistry creates a registry holding one fresh parser per factory.
// With no factories, DefaultFactories is used. Later factories win
// when two parsers claim the same tag.
func NewRegistry(version SchemaVersion, factories ...Factory) *Registry {
	if len(factories) == 0 {
		factories = DefaultFactories
	}
	r := &Registry{
		version: version,
		parsers: make(map[string]ElementParser),
	}
	for _, f := range factories {
		r.Register(f(version))
	}
	return r
}

// Version returns the schema version the registry's parsers were built for.
func (r *Registry) Version() SchemaVersion { return r.version }

// Register adds p under every tag it supports.
func (r *Registry) Register(p ElementParser) {
	for _, tag := range p.SupportedTags() {
		r.parsers[tag] = p
	}
}

// Lookup returns the parser registered for tag, or nil.
func (r *Registry) Lookup(tag string) ElementParser {
	return r.parsers[tag]
}

// Tags returns the registered tags in sorted order.
func (r *Registry) Tags() []string {
	tags := make([]string, 0, len(r.parsers))
	for tag := range r.parsers {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}

// Parse dispatches n to the parser registered for its tag. handled is
// false when no parser claims the tag.
func (r *Registry) Parse(n xmltree.Node, parent any) (el Element, ok, handled bool, err error) {
	p := r.parsers[n.Tag()]
	if p == nil {
		return nil, false, false, nil
	}
	el, ok, err = p.ParseElement(n, parent)
	return el, ok, true, err
}
