package goarxml

import (
	"iter"

	"github.com/goarxml/goarxml/constant"
	"github.com/goarxml/goarxml/parser"
)

// Workspace is the result of a Load: every document read, in source
// order, plus the diagnostics collected along the way.
type Workspace struct {
	Documents   []*Document
	Diagnostics []Diagnostic

	index map[string]*constant.Constant
}

// Document is one ARXML file.
type Document struct {
	File     string
	Packages []*Package
}

// Package is an AR-PACKAGE. It is the parent token handed to element
// parsers for the elements it contains.
type Package struct {
	Name      string
	Path      string // reference path, e.g. "/Constants/Engine"
	Parent    *Package
	Constants []*constant.Constant
	// Elements holds parsed elements of kinds other than constants,
	// produced by parsers registered with WithParsers.
	Elements []parser.Element
	Packages []*Package
}

// Constants iterates over all constants of the workspace in document order.
func (w *Workspace) Constants() iter.Seq[*constant.Constant] {
	return func(yield func(*constant.Constant) bool) {
		for _, doc := range w.Documents {
			for _, pkg := range doc.Packages {
				if !pkg.walkConstants(yield) {
					return
				}
			}
		}
	}
}

// Packages iterates over all packages, parents before children.
func (w *Workspace) Packages() iter.Seq[*Package] {
	return func(yield func(*Package) bool) {
		for _, doc := range w.Documents {
			for _, pkg := range doc.Packages {
				if !pkg.walk(yield) {
					return
				}
			}
		}
	}
}

// Lookup finds a constant by its AUTOSAR reference path, e.g.
// "/Constants/Engine/IdleSpeed". The first constant loaded under a
// path wins.
func (w *Workspace) Lookup(ref string) *constant.Constant {
	return w.index[ref]
}

// Resolve follows a ConstantReference to the constant it names, or nil.
func (w *Workspace) Resolve(ref *constant.ConstantReference) *constant.Constant {
	return w.Lookup(ref.Ref)
}

// HasErrors reports whether any diagnostic is at SeverityError or worse.
func (w *Workspace) HasErrors() bool {
	for _, d := range w.Diagnostics {
		if d.Severity <= SeverityError {
			return true
		}
	}
	return false
}

// RefPath returns the reference path of a constant built by Load.
// Constants not attached to a Package get "/" + name.
func RefPath(c *constant.Constant) string {
	if pkg, ok := c.Parent.(*Package); ok {
		return pkg.Path + "/" + c.Name
	}
	return "/" + c.Name
}

func (p *Package) walk(yield func(*Package) bool) bool {
	if !yield(p) {
		return false
	}
	for _, sub := range p.Packages {
		if !sub.walk(yield) {
			return false
		}
	}
	return true
}

func (p *Package) walkConstants(yield func(*constant.Constant) bool) bool {
	for _, c := range p.Constants {
		if !yield(c) {
			return false
		}
	}
	for _, sub := range p.Packages {
		if !sub.walkConstants(yield) {
			return false
		}
	}
	return true
}

func newPackage(name string, parent *Package) *Package {
	path := "/" + name
	if parent != nil {
		path = parent.Path + "/" + name
	}
	return &Package{Name: name, Path: path, Parent: parent}
}

// merge attaches a document's packages to the workspace and indexes
// its constants. It returns the reference paths that were already taken.
func (w *Workspace) merge(doc *Document) []string {
	if w.index == nil {
		w.index = make(map[string]*constant.Constant)
	}
	w.Documents = append(w.Documents, doc)

	var dups []string
	for _, pkg := range doc.Packages {
		pkg.walkConstants(func(c *constant.Constant) bool {
			ref := RefPath(c)
			if _, exists := w.index[ref]; exists {
				dups = append(dups, ref)
			} else {
				w.index[ref] = c
			}
			return true
		})
	}
	return dups
}
