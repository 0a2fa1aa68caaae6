// Package scope implements the nested lexical scope tree and symbol model
// from spec.md §3 and §4.6: compilation-unit/class/function/local scopes,
// the five symbol kinds (variable, constant, function, class, label) plus
// the external view, function overload sets with the parameter-threshold
// rule, and the batch-wide global symbol registry.
package scope

// Kind enumerates the four scope kinds in the tree.
type Kind int

const (
	CompilationUnit Kind = iota
	Class
	Function
	Local
)

func (k Kind) String() string {
	switch k {
	case CompilationUnit:
		return "compilation unit"
	case Class:
		return "class"
	case Function:
		return "function"
	case Local:
		return "local"
	default:
		return "unknown"
	}
}

// Scope is a node in the lexical scope tree. A scope's parent chain always
// terminates at a compilation-unit scope.
type Scope struct {
	Kind   Kind
	Parent *Scope
	Owner  Symbol // the function/class symbol that opened this scope, nil for local/compilation-unit scopes without one

	symbols map[string]Symbol
	order   []string // declaration order, for deterministic reporting/dumping

	// sigCounter allocates function-overload indices across the entire
	// enclosing class, per spec.md §3 ("allocated in declaration order
	// across the enclosing class"). Only meaningful on Class scopes.
	sigCounter int
}

// New creates a scope of the given kind with the given parent (nil for the
// root of a compilation unit).
func New(kind Kind, parent *Scope) *Scope {
	return &Scope{
		Kind:    kind,
		Parent:  parent,
		symbols: make(map[string]Symbol),
	}
}

// Define installs sym under name in this scope, overwriting any existing
// binding. Callers (the definition pass) are responsible for checking
// Lookup first and reporting a redeclaration diagnostic; Define itself does
// not reject duplicates so that error recovery can still bind a usable
// (if erroneous) symbol for subsequent resolution.
func (s *Scope) Define(name string, sym Symbol) {
	if _, exists := s.symbols[name]; !exists {
		s.order = append(s.order, name)
	}
	s.symbols[name] = sym
}

// Lookup finds a symbol bound directly in this scope, not consulting
// parents.
func (s *Scope) Lookup(name string) (Symbol, bool) {
	sym, ok := s.symbols[name]
	return sym, ok
}

// Resolve walks the parent chain starting at s, returning the first scope
// that binds name.
func (s *Scope) Resolve(name string) (Symbol, *Scope, bool) {
	for cur := s; cur != nil; cur = cur.Parent {
		if sym, ok := cur.symbols[name]; ok {
			return sym, cur, true
		}
	}
	return nil, nil, false
}

// Names returns the names bound directly in this scope in declaration
// order.
func (s *Scope) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// EnclosingClass walks up the parent chain (including s itself) to find the
// nearest Class scope. Every function scope in this front-end has one,
// since the definition pass synthesizes a per-file default class for
// functions with no explicit enclosing structure.
func (s *Scope) EnclosingClass() *Scope {
	for cur := s; cur != nil; cur = cur.Parent {
		if cur.Kind == Class {
			return cur
		}
	}
	return nil
}

// NextSignatureIndex allocates the next monotonically increasing function
// overload index for this class scope.
func (s *Scope) NextSignatureIndex() int {
	idx := s.sigCounter
	s.sigCounter++
	return idx
}
