package sema

import (
	"github.com/dekarrin/kushc/ast"
	"github.com/dekarrin/kushc/diag"
	"github.com/dekarrin/kushc/scope"
)

// KernelQualifiedName is the fixed name resolved for the implicit kernel
// import described in spec.md §4.5.
const KernelQualifiedName = "KUSH.core.KUSHKernel"

// label is the placeholder-vs-value classification from spec.md §4.5,
// tracked per expression during the resolution walk.
type label int

const (
	valueLabel label = iota
	placeholderLabel
)

// ResolutionPass is the second preorder walk: it re-enters the scopes the
// definition pass opened (via annos), binds identifier uses, classifies
// lvalues, and wires imports and inheritance.
type ResolutionPass struct {
	sink   *diag.Sink
	annos  *Annotations
	reg    *scope.Registry
	isCore bool // true when resolving the core library itself, suppressing the implicit kernel import
}

// NewResolutionPass returns a pass reporting into sink, consulting annos
// for the scopes the definition pass opened, and reading reg for
// cross-unit lookups. isCore should be true only for the compilation unit
// that defines KUSH.core.KUSHKernel itself.
func NewResolutionPass(sink *diag.Sink, annos *Annotations, reg *scope.Registry, isCore bool) *ResolutionPass {
	return &ResolutionPass{sink: sink, annos: annos, reg: reg, isCore: isCore}
}

// Run resolves cu, whose scope must already have been opened by a prior
// DefinitionPass.Run(cu) sharing the same Annotations and Registry.
func (r *ResolutionPass) Run(cu *ast.CompilationUnit) {
	unitScope, ok := r.annos.ScopeOf(cu)
	if !ok {
		return
	}

	for _, imp := range cu.Imports {
		r.resolveImport(unitScope, imp)
	}
	if !r.isCore {
		r.resolveImplicitKernel(unitScope)
	}
	for _, s := range cu.Structures {
		r.resolveStructure(s)
	}
	for _, fn := range cu.Functions {
		r.resolveFunction(fn)
	}
}

func (r *ResolutionPass) resolveImport(unitScope *scope.Scope, imp *ast.ImportDecl) {
	cls, ok := r.reg.Lookup(imp.QualifiedName())
	if !ok {
		r.sink.Errorf(diag.Semantic, diag.CodeUnknownClass, imp.Span(),
			"unknown class %q", imp.QualifiedName())
		return
	}
	bound := imp.BoundName()
	if _, exists := unitScope.Lookup(bound.Name); exists {
		r.sink.Errorf(diag.Semantic, diag.CodeRedeclarationPreviouslyImport, bound.Span(),
			"%q was already imported", bound.Name)
		return
	}
	unitScope.Define(bound.Name, scope.NewExternal(bound.Name, bound.Tok, unitScope, cls))
}

func (r *ResolutionPass) resolveImplicitKernel(unitScope *scope.Scope) {
	kernel, ok := r.reg.Lookup(KernelQualifiedName)
	if !ok || kernel.Body == nil {
		return
	}
	for _, name := range kernel.Body.Names() {
		if _, exists := unitScope.Lookup(name); exists {
			continue
		}
		member, _ := kernel.Body.Lookup(name)
		unitScope.Define(name, scope.NewExternal(name, member.Token(), unitScope, member))
	}
}

func (r *ResolutionPass) resolveStructure(decl *ast.StructureDecl) {
	classScope, ok := r.annos.ScopeOf(decl)
	if !ok {
		return
	}
	unitScope := classScope.Parent
	selfSym, _ := unitScope.Lookup(decl.Name.Name)
	selfClass, _ := selfSym.(*scope.ClassSymbol)

	for _, ext := range decl.Extends {
		sym, _, ok := unitScope.Resolve(ext.Name)
		if !ok {
			r.sink.Errorf(diag.Semantic, diag.CodeUnknownClass, ext.Span(), "unknown class %q", ext.Name)
			continue
		}
		resolved := scope.Underlying(sym)
		super, ok := resolved.(*scope.ClassSymbol)
		if !ok {
			r.sink.Errorf(diag.Semantic, diag.CodeUnknownClass, ext.Span(), "%q does not name a class", ext.Name)
			continue
		}
		if selfClass != nil {
			selfClass.Superclasses = append(selfClass.Superclasses, super)
		}
	}

	for _, fn := range decl.Functions {
		r.resolveFunction(fn)
	}
}

func (r *ResolutionPass) resolveFunction(fn *ast.FunctionDecl) {
	if fn.Body == nil {
		return
	}
	fnScope, ok := r.annos.ScopeOf(fn)
	if !ok {
		return
	}
	r.walkBlock(fnScope, fn.Body)
}

func (r *ResolutionPass) walkBlockInScope(s *scope.Scope, block *ast.BlockStmt) {
	for _, stmt := range block.Statements {
		r.walkStmt(s, stmt)
	}
}

func (r *ResolutionPass) walkBlock(parent *scope.Scope, block *ast.BlockStmt) {
	s, ok := r.annos.ScopeOf(block)
	if !ok {
		s = parent
	}
	r.walkBlockInScope(s, block)
}

func (r *ResolutionPass) walkStmt(s *scope.Scope, stmt ast.Stmt) {
	switch n := stmt.(type) {
	case *ast.BlockStmt:
		r.walkBlock(s, n)
	case *ast.ExpressionStmt:
		r.evalExpr(s, n.X)
	case *ast.VarDeclStmt:
		if n.Init != nil {
			r.evalExpr(s, n.Init)
		}
	case *ast.IfStmt:
		r.evalExpr(s, n.Cond)
		r.walkBlock(s, n.Then)
		for _, e := range n.Elifs {
			r.evalExpr(s, e.Cond)
			r.walkBlock(s, e.Body)
		}
		if n.Else != nil {
			r.walkBlock(s, n.Else)
		}
	case *ast.WhileStmt:
		r.evalExpr(s, n.Cond)
		r.walkBlock(s, n.Body)
	case *ast.ForEachStmt:
		r.evalExpr(s, n.Collection)
		wrapper, ok := r.annos.ScopeOf(n)
		if !ok {
			wrapper = s
		}
		r.walkBlock(wrapper, n.Body)
	case *ast.TryStmt:
		r.walkBlock(s, n.Body)
		for _, c := range n.Catches {
			wrapper, ok := r.annos.ScopeOf(c)
			if !ok {
				wrapper = s
			}
			r.walkBlock(wrapper, c.Body)
		}
		if n.Finally != nil {
			r.walkBlock(s, n.Finally)
		}
	case *ast.ReturnStmt:
		if n.Value != nil {
			r.evalExpr(s, n.Value)
		}
	case *ast.ThrowStmt:
		r.evalExpr(s, n.Value)
	}
}

// evalExpr resolves every identifier reachable from e and returns e's
// placeholder-vs-value label per spec.md §4.5.
func (r *ResolutionPass) evalExpr(s *scope.Scope, e ast.Expr) label {
	switch n := e.(type) {
	case *ast.IdentExpr:
		return r.evalIdent(s, n)
	case *ast.AssignmentExpr:
		return r.evalAssignment(s, n)
	case *ast.ConditionalExpr:
		r.evalExpr(s, n.Cond)
		r.evalExpr(s, n.Then)
		r.evalExpr(s, n.Else)
		return valueLabel
	case *ast.BinaryExpr:
		r.evalExpr(s, n.Left)
		r.evalExpr(s, n.Right)
		return valueLabel
	case *ast.PrefixExpr:
		r.evalExpr(s, n.Operand)
		return valueLabel
	case *ast.PostfixIncDecExpr:
		r.evalExpr(s, n.Operand)
		return valueLabel
	case *ast.IndexExpr:
		r.evalExpr(s, n.Target)
		r.evalExpr(s, n.Index)
		return placeholderLabel
	case *ast.CallExpr:
		r.evalCall(s, n)
		return valueLabel
	case *ast.MemberExpr:
		r.evalExpr(s, n.Target)
		return placeholderLabel
	case *ast.ParenExpr:
		r.evalExpr(s, n.Inner)
		return valueLabel
	case *ast.NewExpr:
		r.evalNew(s, n)
		return valueLabel
	case *ast.BraceInitExpr:
		for _, f := range n.Fields {
			r.evalExpr(s, f.Value)
		}
		return valueLabel
	case *ast.ArrayLiteralExpr:
		for _, el := range n.Elements {
			r.evalExpr(s, el)
		}
		return valueLabel
	default:
		// IntLiteral, FloatLiteral, StringLiteral, BoolLiteral, NullLiteral,
		// ThisExpr: leaves, always a value.
		return valueLabel
	}
}

func (r *ResolutionPass) evalIdent(s *scope.Scope, n *ast.IdentExpr) label {
	sym, foundScope, ok := s.Resolve(n.Name.Name)
	if !ok {
		r.sink.Errorf(diag.Semantic, diag.CodeUndeclaredIdentifier, n.Name.Span(),
			"undeclared identifier %q", n.Name.Name)
		return valueLabel
	}
	if foundScope == s && foundScope.Kind == scope.Local && sym.Token().Span.Start > n.Name.Tok.Span.Start {
		r.sink.Errorf(diag.Semantic, diag.CodeUndeclaredIdentifier, n.Name.Span(),
			"%q is used before its declaration", n.Name.Name)
		return valueLabel
	}
	switch scope.Underlying(sym).SymbolKind() {
	case scope.VariableKind, scope.ConstantKind:
		return placeholderLabel
	default:
		return valueLabel
	}
}

func (r *ResolutionPass) evalAssignment(s *scope.Scope, a *ast.AssignmentExpr) label {
	left := r.evalExpr(s, a.Left)
	if left == valueLabel {
		r.sink.Errorf(diag.Semantic, diag.CodeInvalidLvalue, a.OpTok.Span,
			"left-hand side of %s is not assignable", a.OpTok.Kind)
		return valueLabel
	}
	if a.Right != nil {
		r.evalExpr(s, a.Right)
	}
	return valueLabel
}

func (r *ResolutionPass) evalCall(s *scope.Scope, c *ast.CallExpr) {
	r.evalExpr(s, c.Target)
	for _, arg := range c.Args {
		r.evalExpr(s, arg)
	}
	ident, ok := c.Target.(*ast.IdentExpr)
	if !ok {
		return
	}
	sym, _, ok := s.Resolve(ident.Name.Name)
	if !ok {
		return // already reported by evalExpr(c.Target)
	}
	if scope.Underlying(sym).SymbolKind() != scope.FunctionKind {
		r.sink.Errorf(diag.Semantic, diag.CodeVariableTreatedAsFunc, ident.Name.Span(),
			"%q is not a function", ident.Name.Name)
	}
}

func (r *ResolutionPass) evalNew(s *scope.Scope, n *ast.NewExpr) {
	for _, arg := range n.Args {
		r.evalExpr(s, arg)
	}
	sym, _, ok := s.Resolve(n.Type.Name)
	if !ok {
		r.sink.Errorf(diag.Semantic, diag.CodeUndeclaredClass, n.Type.Span(),
			"undeclared class %q", n.Type.Name)
		return
	}
	cls, ok := scope.Underlying(sym).(*scope.ClassSymbol)
	if !ok {
		r.sink.Errorf(diag.Semantic, diag.CodeInstantiationOfNonClass, n.Type.Span(),
			"%q does not name a class", n.Type.Name)
		return
	}
	if cls.Constructors() == nil {
		r.sink.Errorf(diag.Semantic, diag.CodeNoSuitableConstructor, n.Type.Span(),
			"class %q has no constructor", n.Type.Name)
	}
}
