package scope

import (
	"github.com/dekarrin/kushc/ast"
	"github.com/dekarrin/kushc/token"
)

// SymbolKind tags the variant a Symbol implementation carries.
type SymbolKind int

const (
	VariableKind SymbolKind = iota
	ConstantKind
	FunctionKind
	ClassKind
	LabelKind
	ExternalKind
)

func (k SymbolKind) String() string {
	switch k {
	case VariableKind:
		return "variable"
	case ConstantKind:
		return "constant"
	case FunctionKind:
		return "function"
	case ClassKind:
		return "class"
	case LabelKind:
		return "label"
	case ExternalKind:
		return "external"
	default:
		return "unknown"
	}
}

// Symbol is the common interface satisfied by every binding a scope can
// hold. Concrete types are VariableSymbol, ConstantSymbol, FunctionSymbol,
// ClassSymbol, LabelSymbol, and ExternalSymbol.
type Symbol interface {
	SymbolKind() SymbolKind
	Name() string
	Token() token.Token
	Scope() *Scope
}

type base struct {
	name       string
	tok        token.Token
	declScope  *Scope
}

func (b *base) Name() string     { return b.name }
func (b *base) Token() token.Token { return b.tok }
func (b *base) Scope() *Scope    { return b.declScope }

// VariableSymbol is a mutable local, loop-variable, catch-parameter, or
// field binding. Function parameters are ConstantSymbols.
type VariableSymbol struct {
	base
	Field bool // true if this is a field of a structure rather than a local/param
}

func NewVariable(name string, tok token.Token, declScope *Scope, field bool) *VariableSymbol {
	return &VariableSymbol{base: base{name: name, tok: tok, declScope: declScope}, Field: field}
}

func (*VariableSymbol) SymbolKind() SymbolKind { return VariableKind }

// ConstantSymbol is an immutable binding introduced by a const declaration.
type ConstantSymbol struct {
	base
}

func NewConstant(name string, tok token.Token, declScope *Scope) *ConstantSymbol {
	return &ConstantSymbol{base: base{name: name, tok: tok, declScope: declScope}}
}

func (*ConstantSymbol) SymbolKind() SymbolKind { return ConstantKind }

// LabelSymbol binds a `#name` loop label visible within the function body
// that declares it.
type LabelSymbol struct {
	base
}

func NewLabel(name string, tok token.Token, declScope *Scope) *LabelSymbol {
	return &LabelSymbol{base: base{name: name, tok: tok, declScope: declScope}}
}

func (*LabelSymbol) SymbolKind() SymbolKind { return LabelKind }

// FunctionSymbol names an overload set: every declaration sharing a name
// within one enclosing class binds to the same FunctionSymbol, with one
// Signature per surviving overload.
type FunctionSymbol struct {
	base
	Overloads *OverloadSet
}

func NewFunction(name string, tok token.Token, declScope *Scope) *FunctionSymbol {
	return &FunctionSymbol{
		base:      base{name: name, tok: tok, declScope: declScope},
		Overloads: &OverloadSet{Name: name},
	}
}

func (*FunctionSymbol) SymbolKind() SymbolKind { return FunctionKind }

// ClassSymbol names a structure/class declaration, real or synthesized for
// a file with no explicit enclosing structure.
type ClassSymbol struct {
	base
	QualifiedName string
	Body          *Scope // the class's own scope, holding fields and methods
	Synthesized   bool   // true for the implicit per-file default class
	Superclasses  []*ClassSymbol
	Decl          *ast.StructureDecl // nil when Synthesized
}

func NewClass(name string, tok token.Token, declScope *Scope, qualifiedName string) *ClassSymbol {
	return &ClassSymbol{
		base:          base{name: name, tok: tok, declScope: declScope},
		QualifiedName: qualifiedName,
	}
}

func (*ClassSymbol) SymbolKind() SymbolKind { return ClassKind }

// Constructors returns the overload set bound to "new" in the class body,
// or nil if the class declares no constructor.
func (c *ClassSymbol) Constructors() *FunctionSymbol {
	if c.Body == nil {
		return nil
	}
	if sym, ok := c.Body.Lookup("new"); ok {
		if fn, ok := sym.(*FunctionSymbol); ok {
			return fn
		}
	}
	return nil
}

// ExternalSymbol is the view an import binds: a name visible in the
// importing compilation unit's scope that forwards to a symbol owned by
// another unit. ExternalSymbol never owns storage of its own.
type ExternalSymbol struct {
	base
	Target Symbol
}

func NewExternal(name string, tok token.Token, declScope *Scope, target Symbol) *ExternalSymbol {
	return &ExternalSymbol{base: base{name: name, tok: tok, declScope: declScope}, Target: target}
}

func (*ExternalSymbol) SymbolKind() SymbolKind { return ExternalKind }

// Resolve follows the Target chain to the first non-external symbol.
func (e *ExternalSymbol) Resolve() Symbol {
	var s Symbol = e
	for {
		ext, ok := s.(*ExternalSymbol)
		if !ok {
			return s
		}
		s = ext.Target
	}
}

// Underlying strips any ExternalSymbol wrapper from sym, returning sym
// itself if it is not external.
func Underlying(sym Symbol) Symbol {
	if ext, ok := sym.(*ExternalSymbol); ok {
		return ext.Resolve()
	}
	return sym
}
