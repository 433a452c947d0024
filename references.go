package goarxml

import (
	"fmt"
	"strings"

	"github.com/goarxml/goarxml/constant"
	"github.com/goarxml/goarxml/internal/graph"
	"github.com/goarxml/goarxml/internal/types"
)

// References returns the constant references in c's value tree, in
// document order.
func References(c *constant.Constant) []*constant.ConstantReference {
	var refs []*constant.ConstantReference
	if c.Value == nil {
		return nil
	}
	constant.Walk(c.Value, func(v constant.Value, _ int) bool {
		if r, ok := v.(*constant.ConstantReference); ok {
			refs = append(refs, r)
		}
		return true
	})
	return refs
}

// DependencyOrder returns the workspace constants ordered so that every
// constant comes after the constants it references. Constants on a
// reference cycle are left out of order and returned as groups.
func (w *Workspace) DependencyOrder() (order []*constant.Constant, cycles [][]*constant.Constant) {
	refOrder, refCycles := w.referenceGraph().ResolutionOrder()
	for _, ref := range refOrder {
		if c := w.Lookup(ref); c != nil {
			order = append(order, c)
		}
	}
	for _, cycle := range refCycles {
		group := make([]*constant.Constant, 0, len(cycle))
		for _, ref := range cycle {
			if c := w.Lookup(ref); c != nil {
				group = append(group, c)
			}
		}
		cycles = append(cycles, group)
	}
	return order, cycles
}

// referenceGraph has one node per indexed constant and an edge for every
// reference that resolves within the workspace.
func (w *Workspace) referenceGraph() *graph.Graph {
	g := graph.New()
	for ref, c := range w.index {
		g.AddNode(ref)
		for _, r := range References(c) {
			if w.Lookup(r.Ref) != nil {
				g.AddEdge(ref, r.Ref)
			}
		}
	}
	return g
}

// checkReferences reports references that do not resolve and reference
// cycles between constants.
func (w *Workspace) checkReferences() []Diagnostic {
	var diags []Diagnostic
	files := make(map[string]string)

	for _, doc := range w.Documents {
		for _, pkg := range doc.Packages {
			pkg.walkConstants(func(c *constant.Constant) bool {
				ref := RefPath(c)
				if _, seen := files[ref]; !seen {
					files[ref] = doc.File
				}
				for _, r := range References(c) {
					if w.Resolve(r) == nil {
						diags = append(diags, Diagnostic{
							Severity: SeverityWarning,
							Code:     types.DiagUnresolvedRef,
							Message:  fmt.Sprintf("reference to unknown constant %s", r.Ref),
							File:     doc.File,
							Path:     ref,
						})
					}
				}
				return true
			})
		}
	}

	_, cycles := w.referenceGraph().ResolutionOrder()
	for _, cycle := range cycles {
		diags = append(diags, Diagnostic{
			Severity: SeverityWarning,
			Code:     types.DiagReferenceCycle,
			Message:  "constants reference each other: " + strings.Join(cycle, ", "),
			File:     files[cycle[0]],
			Path:     cycle[0],
		})
	}
	return diags
}
