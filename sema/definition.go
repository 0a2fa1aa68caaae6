package sema

import (
	"path/filepath"
	"strings"

	"github.com/dekarrin/kushc/ast"
	"github.com/dekarrin/kushc/diag"
	"github.com/dekarrin/kushc/scope"
)

// DefaultPackage names the implicit package every compilation unit and
// synthesized default class live in. The grammar has no package
// declaration, so every qualified name in this front-end is rooted here.
const DefaultPackage = "default"

// DefinitionPass drives the preorder walk described in spec.md §4.4: scope
// tree construction, symbol registration, and the associated redeclaration
// and overload checks. One DefinitionPass is created per compilation unit
// but all units in a batch share the same Registry.
type DefinitionPass struct {
	sink  *diag.Sink
	annos *Annotations
	reg   *scope.Registry

	unitScope    *scope.Scope
	defaultClass *scope.ClassSymbol // lazily created the first time a top-level function needs it
}

// NewDefinitionPass returns a pass reporting into sink, recording scopes
// into annos, and sharing reg with the rest of the batch.
func NewDefinitionPass(sink *diag.Sink, annos *Annotations, reg *scope.Registry) *DefinitionPass {
	return &DefinitionPass{sink: sink, annos: annos, reg: reg}
}

// Run walks cu, installing scopes and symbols, and returns the
// compilation-unit scope it opened.
func (d *DefinitionPass) Run(cu *ast.CompilationUnit) *scope.Scope {
	d.unitScope = scope.New(scope.CompilationUnit, nil)
	d.annos.Open(cu, d.unitScope)

	for _, s := range cu.Structures {
		d.defineStructure(s)
	}
	for _, f := range cu.Functions {
		d.defineTopLevelFunction(cu, f)
	}
	return d.unitScope
}

func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ensureDefaultClass lazily synthesizes the per-file class that absorbs
// functions with no explicit enclosing structure, per spec.md §4.4.
func (d *DefinitionPass) ensureDefaultClass(cu *ast.CompilationUnit) *scope.ClassSymbol {
	if d.defaultClass != nil {
		return d.defaultClass
	}
	name := fileStem(cu.Path)
	qualified := DefaultPackage + "." + name
	sym := scope.NewClass(name, cu.StartTok, d.unitScope, qualified)
	sym.Synthesized = true
	sym.Body = scope.New(scope.Class, d.unitScope)
	sym.Body.Owner = sym
	d.reg.Define(qualified, sym)
	d.defaultClass = sym
	return sym
}

func (d *DefinitionPass) defineStructure(decl *ast.StructureDecl) {
	if existing, ok := d.unitScope.Lookup(decl.Name.Name); ok {
		d.reportRedeclaration(decl.Name, existing)
	}
	qualified := DefaultPackage + "." + decl.Name.Name
	sym := scope.NewClass(decl.Name.Name, decl.Name.Tok, d.unitScope, qualified)
	sym.Decl = decl
	sym.Body = scope.New(scope.Class, d.unitScope)
	sym.Body.Owner = sym
	d.annos.Open(decl, sym.Body)
	d.unitScope.Define(decl.Name.Name, sym)
	d.reg.Define(qualified, sym)

	for _, field := range decl.Fields {
		d.defineField(sym.Body, field)
	}
	for _, fn := range decl.Functions {
		d.defineFunction(sym.Body, fn)
	}
}

func (d *DefinitionPass) defineField(classScope *scope.Scope, f *ast.FieldDecl) {
	if existing, ok := classScope.Lookup(f.Name.Name); ok {
		d.reportRedeclaration(f.Name, existing)
		return
	}
	classScope.Define(f.Name.Name, scope.NewVariable(f.Name.Name, f.Name.Tok, classScope, true))
}

func (d *DefinitionPass) defineTopLevelFunction(cu *ast.CompilationUnit, fn *ast.FunctionDecl) {
	cls := d.ensureDefaultClass(cu)
	d.defineFunction(cls.Body, fn)
}

// defineFunction registers fn's signature in classScope's overload set
// (creating the FunctionSymbol on first sight) and opens fn's own function
// scope with its parameters bound as constant symbols.
func (d *DefinitionPass) defineFunction(classScope *scope.Scope, fn *ast.FunctionDecl) {
	if fn.IsStatic && len(fn.Params) > 0 {
		d.sink.Errorf(diag.Semantic, diag.CodeStaticInitializerWithArgs, fn.Name.Span(),
			"static function %q must not declare parameters", fn.Name.Name)
	}

	var fnSym *scope.FunctionSymbol
	existing, ok := classScope.Lookup(fn.Name.Name)
	if ok {
		var isFn bool
		fnSym, isFn = existing.(*scope.FunctionSymbol)
		if !isFn {
			d.sink.Errorf(diag.Semantic, diag.CodeRedeclarationAsFunction, fn.Name.Span(),
				"%q was previously declared as a %s, not a function", fn.Name.Name, existing.SymbolKind())
			fnSym = scope.NewFunction(fn.Name.Name, fn.Name.Tok, classScope)
		}
	} else {
		fnSym = scope.NewFunction(fn.Name.Name, fn.Name.Tok, classScope)
		classScope.Define(fn.Name.Name, fnSym)
	}

	sig := &scope.Signature{Static: fn.IsStatic, Decl: fn}
	for _, p := range fn.Params {
		if p.Variadic {
			sig.Variadic = &scope.ParamInfo{Name: p.Name.Name, Type: p.Type}
		} else {
			sig.Fixed = append(sig.Fixed, scope.ParamInfo{Name: p.Name.Name, Type: p.Type})
		}
	}
	result := fnSym.Overloads.Add(sig, classScope.NextSignatureIndex())
	d.reportOverloadConflict(fn, result)

	fnScope := scope.New(scope.Function, classScope)
	fnScope.Owner = fnSym
	d.annos.Open(fn, fnScope)

	for _, p := range fn.Params {
		d.defineParam(fnScope, p)
	}

	if fn.Body != nil {
		d.defineBlock(fnScope, fn.Body)
	}
}

func (d *DefinitionPass) reportOverloadConflict(fn *ast.FunctionDecl, result scope.AddResult) {
	switch result.Conflict {
	case scope.NoConflict:
		return
	case scope.ConflictMultipleVariadic:
		d.sink.Errorf(diag.Semantic, diag.CodeMultipleVariadicOverloads, fn.Name.Span(),
			"function %q already has a variadic overload", fn.Name.Name)
	case scope.ConflictDuplicateArity:
		d.sink.Errorf(diag.Semantic, diag.CodeDuplicateOverload, fn.Name.Span(),
			"function %q already has an overload with %d fixed parameter(s)", fn.Name.Name, fn.FixedArity())
	case scope.ConflictExceedsThreshold:
		d.sink.Errorf(diag.Semantic, diag.CodeExceedsParameterThreshold, fn.Name.Span(),
			"function %q declares %d fixed parameter(s), at or above the variadic threshold", fn.Name.Name, fn.FixedArity())
	case scope.ConflictCausesThresholdExceeded:
		d.sink.Errorf(diag.Semantic, diag.CodeCausesThresholdExceeded, fn.Name.Span(),
			"variadic overload of %q puts an existing overload at or above its threshold", fn.Name.Name)
	}
}

func (d *DefinitionPass) defineParam(fnScope *scope.Scope, p *ast.ParamDecl) {
	if existing, ok := fnScope.Lookup(p.Name.Name); ok {
		if p.Variadic {
			d.reportRedeclarationAs(p.Name, existing, diag.CodeRedeclarationAsVariableParam)
		} else {
			d.reportRedeclarationAs(p.Name, existing, diag.CodeRedeclarationAsParameter)
		}
		return
	}
	fnScope.Define(p.Name.Name, scope.NewConstant(p.Name.Name, p.Name.Tok, fnScope))
}

// defineBlockInScope installs block's statements directly into an
// already-created scope, without opening a new one. defineBlock wraps
// this for the common case of a block that needs its own fresh Local
// scope.
func (d *DefinitionPass) defineBlockInScope(s *scope.Scope, block *ast.BlockStmt) {
	d.annos.Open(block, s)
	for _, stmt := range block.Statements {
		d.defineStmt(s, stmt)
	}
}

func (d *DefinitionPass) defineBlock(parent *scope.Scope, block *ast.BlockStmt) {
	s := scope.New(scope.Local, parent)
	d.defineBlockInScope(s, block)
}

func (d *DefinitionPass) defineStmt(s *scope.Scope, stmt ast.Stmt) {
	switch n := stmt.(type) {
	case *ast.BlockStmt:
		d.defineBlock(s, n)
	case *ast.VarDeclStmt:
		d.defineVarDecl(s, n)
	case *ast.IfStmt:
		d.defineBlock(s, n.Then)
		for _, e := range n.Elifs {
			d.defineBlock(s, e.Body)
		}
		if n.Else != nil {
			d.defineBlock(s, n.Else)
		}
	case *ast.WhileStmt:
		if n.Label != nil {
			d.defineLabel(s, n.Label)
		}
		d.defineBlock(s, n.Body)
	case *ast.ForEachStmt:
		d.defineForEach(s, n)
	case *ast.TryStmt:
		d.defineBlock(s, n.Body)
		for _, c := range n.Catches {
			d.defineCatch(s, c)
		}
		if n.Finally != nil {
			d.defineBlock(s, n.Finally)
		}
	}
	// expression/break/continue/return/throw/empty statements open no
	// scope and declare no symbol.
}

func (d *DefinitionPass) defineVarDecl(s *scope.Scope, v *ast.VarDeclStmt) {
	if existing, ok := s.Lookup(v.Name.Name); ok {
		if v.IsConst {
			d.reportRedeclarationAs(v.Name, existing, diag.CodeRedeclarationAsConstant)
		} else {
			d.reportRedeclarationAs(v.Name, existing, diag.CodeRedeclarationAsVariable)
		}
		return
	}
	if v.IsConst {
		s.Define(v.Name.Name, scope.NewConstant(v.Name.Name, v.Name.Tok, s))
	} else {
		s.Define(v.Name.Name, scope.NewVariable(v.Name.Name, v.Name.Tok, s, false))
	}
}

func (d *DefinitionPass) defineLabel(s *scope.Scope, label *ast.Ident) {
	if existing, ok := s.Lookup(label.Name); ok {
		d.reportRedeclarationAs(label, existing, diag.CodeRedeclarationAsLabel)
		return
	}
	s.Define(label.Name, scope.NewLabel(label.Name, label.Tok, s))
}

func (d *DefinitionPass) defineForEach(parent *scope.Scope, n *ast.ForEachStmt) {
	if n.Label != nil {
		d.defineLabel(parent, n.Label)
	}
	wrapper := scope.New(scope.Local, parent)
	d.annos.Open(n, wrapper)
	if existing, ok := wrapper.Lookup(n.Var.Name); ok {
		d.reportRedeclarationAs(n.Var, existing, diag.CodeRedeclarationAsLoopParameter)
	} else {
		wrapper.Define(n.Var.Name, scope.NewVariable(n.Var.Name, n.Var.Tok, wrapper, false))
	}
	d.defineBlock(wrapper, n.Body)
}

func (d *DefinitionPass) defineCatch(parent *scope.Scope, c *ast.CatchClause) {
	wrapper := scope.New(scope.Local, parent)
	d.annos.Open(c, wrapper)
	if existing, ok := wrapper.Lookup(c.Param.Name); ok {
		d.reportRedeclarationAs(c.Param, existing, diag.CodeRedeclarationAsCatchParameter)
	} else {
		wrapper.Define(c.Param.Name, scope.NewVariable(c.Param.Name, c.Param.Tok, wrapper, false))
	}
	d.defineBlock(wrapper, c.Body)
}

func (d *DefinitionPass) reportRedeclaration(name *ast.Ident, existing scope.Symbol) {
	d.reportRedeclarationAs(name, existing, diag.CodeRedeclarationAsClass)
}

func (d *DefinitionPass) reportRedeclarationAs(name *ast.Ident, existing scope.Symbol, code diag.Code) {
	d.sink.Errorf(diag.Semantic, code, name.Span(),
		"%q was already declared as a %s", name.Name, existing.SymbolKind())
}
