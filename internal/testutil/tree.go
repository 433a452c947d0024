// Package testutil provides helpers for building element trees in tests.
package testutil

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/goarxml/goarxml/xmltree"
)

// E builds an element with the given children.
func E(tag string, children ...*xmltree.Element) *xmltree.Element {
	return &xmltree.Element{Name: tag, Elements: children}
}

// T builds a leaf element holding text.
func T(tag, text string) *xmltree.Element {
	return &xmltree.Element{Name: tag, Content: text}
}

// Attr sets an attribute on el and returns it.
func Attr(el *xmltree.Element, name, value string) *xmltree.Element {
	el.Attrs = append(el.Attrs, xml.Attr{Name: xml.Name{Local: name}, Value: value})
	return el
}

// MustParse parses an XML snippet, failing the test on error.
func MustParse(t testing.TB, src string) *xmltree.Element {
	t.Helper()
	root, err := xmltree.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return root
}

// Document wraps package XML in an AUTOSAR root with the v4 namespace.
func Document(packages string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<AUTOSAR xmlns="http://autosar.org/schema/r4.0" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
<AR-PACKAGES>` + packages + `</AR-PACKAGES>
</AUTOSAR>`
}
