// Package xmltree provides the read-only element tree consumed by the
// ARXML parsers, plus an encoding/xml backed implementation of it.
//
// Parsers only ever navigate a tree through the Node interface, so any
// other XML front end can feed them by implementing it.
package xmltree

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrEmptyDocument is returned by Parse when the input has no root element.
var ErrEmptyDocument = errors.New("xml document has no root element")

// Node is a navigable, read-only XML element.
type Node interface {
	// Tag returns the local element name, without namespace.
	Tag() string
	// Children returns the element children in document order.
	Children() []Node
	// Text returns the character data directly inside the element.
	Text() string
	// Attr looks up an attribute by local name.
	Attr(name string) (string, bool)
}

// Element is the Node implementation built by Parse.
type Element struct {
	Name     string
	Attrs    []xml.Attr
	Content  string
	Elements []*Element
	// Line is the 1-based source line of the start tag, 0 if unknown.
	Line int
}

// Tag returns the local element name.
func (e *Element) Tag() string { return e.Name }

// Text returns the element's character data.
func (e *Element) Text() string { return e.Content }

// Children returns the element children in document order.
func (e *Element) Children() []Node {
	nodes := make([]Node, len(e.Elements))
	for i, c := range e.Elements {
		nodes[i] = c
	}
	return nodes
}

// Attr looks up an attribute by local name.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// Parse reads an XML document and returns its root element.
// Namespaces are dropped from element and attribute names. Character
// data is kept only for elements without element children (mixed
// content is not used by ARXML for the tags this module reads).
func Parse(r io.Reader) (*Element, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = true

	var (
		root  *Element
		stack []*Element
		text  []*strings.Builder
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			line, _ := dec.InputPos()
			el := &Element{Name: t.Name.Local, Line: line}
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
					continue
				}
				el.Attrs = append(el.Attrs, xml.Attr{Name: xml.Name{Local: a.Name.Local}, Value: a.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("line %d: multiple root elements", line)
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Elements = append(parent.Elements, el)
			}
			stack = append(stack, el)
			text = append(text, &strings.Builder{})
		case xml.EndElement:
			el := stack[len(stack)-1]
			if len(el.Elements) == 0 {
				el.Content = text[len(text)-1].String()
			}
			stack = stack[:len(stack)-1]
			text = text[:len(text)-1]
		case xml.CharData:
			if len(text) > 0 {
				text[len(text)-1].Write(t)
			}
		}
	}
	if root == nil {
		return nil, ErrEmptyDocument
	}
	return root, nil
}

// Find returns the first child of n with the given tag, or nil.
func Find(n Node, tag string) Node {
	for _, c := range n.Children() {
		if c.Tag() == tag {
			return c
		}
	}
	return nil
}

// FindPath follows a slash-separated chain of tags from n, taking the
// first match at each step. It returns nil if any step is missing.
func FindPath(n Node, path string) Node {
	cur := n
	for _, tag := range strings.Split(path, "/") {
		if cur = Find(cur, tag); cur == nil {
			return nil
		}
	}
	return cur
}

// FindAll returns every child of n with the given tag, in order.
func FindAll(n Node, tag string) []Node {
	var out []Node
	for _, c := range n.Children() {
		if c.Tag() == tag {
			out = append(out, c)
		}
	}
	return out
}

// ChildText returns the text of the first child with the given tag.
// The boolean is false when no such child exists.
func ChildText(n Node, tag string) (string, bool) {
	c := Find(n, tag)
	if c == nil {
		return "", false
	}
	return c.Text(), true
}

// FirstChild returns the first element child of n, or nil.
func FirstChild(n Node) Node {
	children := n.Children()
	if len(children) == 0 {
		return nil
	}
	return children[0]
}
