// Package sema implements the two-pass semantic analyzer from spec.md
// §4.4-§4.6: a definition pass that builds the scope tree and registers
// symbols, and a resolution pass that binds identifier uses, classifies
// lvalues, and wires class inheritance and imports.
package sema

import "github.com/dekarrin/kushc/ast"
import "github.com/dekarrin/kushc/scope"

// Annotations is the side table from spec.md §3: rather than mutating AST
// nodes to carry a scope pointer, the scope a node opens is recorded here,
// keyed by node identity. The resolution pass re-enters the same scopes by
// consulting this table instead of rebuilding them.
type Annotations struct {
	scopes map[ast.Node]*scope.Scope
}

func NewAnnotations() *Annotations {
	return &Annotations{scopes: make(map[ast.Node]*scope.Scope)}
}

// Open records that node opened s.
func (a *Annotations) Open(node ast.Node, s *scope.Scope) {
	a.scopes[node] = s
}

// ScopeOf returns the scope node opened, if any.
func (a *Annotations) ScopeOf(node ast.Node) (*scope.Scope, bool) {
	s, ok := a.scopes[node]
	return s, ok
}
