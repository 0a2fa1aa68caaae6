package parse

import (
	"github.com/dekarrin/kushc/internal/util"
	"github.com/dekarrin/kushc/token"
)

// followStack is the plain growable stack of token-kind sets described in
// spec.md §9's design notes: each grammar rule pushes the set of kinds that
// may legally follow it before descending into a child rule, and pops on
// the way back out. When a rule hits an unexpected token, recovery scans
// the stack top-down (innermost rule first) for a kind present anywhere in
// it and discards tokens until one is found or the stream hits
// END_OF_STREAM.
type followStack struct {
	frames util.Stack[[]token.Kind]
}

// push installs a new follow-set frame, returning a function that pops it.
// Callers use this as a scoped guard: `defer p.follow.push(kinds...)()`.
func (f *followStack) push(kinds ...token.Kind) func() {
	f.frames.Push(kinds)
	return func() { f.frames.Pop() }
}

// contains reports whether kind appears in any frame, searching from the
// most recently pushed (innermost) frame outward.
func (f *followStack) contains(kind token.Kind) bool {
	return f.frames.Any(func(frame []token.Kind) bool {
		for _, k := range frame {
			if k == kind {
				return true
			}
		}
		return false
	})
}
