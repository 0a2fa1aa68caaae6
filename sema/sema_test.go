package sema

import (
	"testing"

	"github.com/dekarrin/kushc/ast"
	"github.com/dekarrin/kushc/diag"
	"github.com/dekarrin/kushc/lex"
	"github.com/dekarrin/kushc/parse"
	"github.com/dekarrin/kushc/scope"
	"github.com/dekarrin/kushc/stream"
	"github.com/stretchr/testify/assert"
)

// analyze runs the full lex/parse/definition/resolution pipeline on a single
// compilation unit in isolation (no core library loaded, no cross-unit
// imports), returning the diagnostics accumulated by every stage.
func analyze(path, src string) (*ast.CompilationUnit, *diag.Sink) {
	sink := diag.NewSink()
	l := lex.New([]byte(src), 0, sink)
	ts := stream.New(l)
	p := parse.New(ts, sink, path, 0)
	cu := p.Parse()

	annos := NewAnnotations()
	reg := scope.NewRegistry()
	NewDefinitionPass(sink, annos, reg).Run(cu)
	NewResolutionPass(sink, annos, reg, true).Run(cu)
	return cu, sink
}

func Test_DefinitionPass_synthesizesDefaultClassForTopLevelFunctions(t *testing.T) {
	assert := assert.New(t)

	sink := diag.NewSink()
	l := lex.New([]byte("void f() { }\n"), 0, sink)
	ts := stream.New(l)
	cu := parse.New(ts, sink, "math.kush", 0).Parse()

	annos := NewAnnotations()
	reg := scope.NewRegistry()
	NewDefinitionPass(sink, annos, reg).Run(cu)

	cls, ok := reg.Lookup(DefaultPackage + ".math")
	if assert.True(ok) {
		assert.True(cls.Synthesized)
		_, ok := cls.Body.Lookup("f")
		assert.True(ok)
	}
}

func Test_DefinitionPass_redeclaredLocalReportsDiagnostic(t *testing.T) {
	assert := assert.New(t)

	_, sink := analyze("u.kush", "void f() { i32 x = 1; i32 x = 2; }\n")
	assert.True(sink.HasErrors())

	found := false
	for _, d := range sink.All() {
		if d.Code == diag.CodeRedeclarationAsVariable {
			found = true
		}
	}
	assert.True(found)
}

func Test_DefinitionPass_redeclaredStructureReportsDiagnostic(t *testing.T) {
	assert := assert.New(t)

	_, sink := analyze("u.kush", "struct A { }\nstruct A { }\n")
	assert.True(sink.HasErrors())
	assert.Equal(diag.CodeRedeclarationAsClass, sink.All()[0].Code)
}

func Test_DefinitionPass_overloadSetAcceptsDistinctArities(t *testing.T) {
	assert := assert.New(t)

	_, sink := analyze("u.kush", "void f() { }\nvoid f(i32 x) { }\n")
	assert.False(sink.HasErrors())
}

func Test_DefinitionPass_duplicateArityOverloadReportsDiagnostic(t *testing.T) {
	assert := assert.New(t)

	_, sink := analyze("u.kush", "void f(i32 x) { }\nvoid f(i32 y) { }\n")
	assert.True(sink.HasErrors())
	assert.Equal(diag.CodeDuplicateOverload, sink.All()[0].Code)
}

func Test_DefinitionPass_secondVariadicOverloadReportsDiagnostic(t *testing.T) {
	assert := assert.New(t)

	_, sink := analyze("u.kush", "void f(i32... a) { }\nvoid f(i32... b) { }\n")
	assert.True(sink.HasErrors())
	assert.Equal(diag.CodeMultipleVariadicOverloads, sink.All()[0].Code)
}

func Test_DefinitionPass_fixedArityAboveThresholdReportsDiagnostic(t *testing.T) {
	assert := assert.New(t)

	_, sink := analyze("u.kush", "void f(i32 a, i32... b) { }\nvoid f(i32 x, i32 y) { }\n")
	assert.True(sink.HasErrors())
	assert.Equal(diag.CodeExceedsParameterThreshold, sink.All()[0].Code)
}

func Test_DefinitionPass_variadicBelowExistingArityReportsDiagnostic(t *testing.T) {
	assert := assert.New(t)

	_, sink := analyze("u.kush", "void f(i32 x, i32 y) { }\nvoid f(i32... b) { }\n")
	assert.True(sink.HasErrors())
	assert.Equal(diag.CodeCausesThresholdExceeded, sink.All()[0].Code)
}

func Test_ResolutionPass_undeclaredIdentifierReportsDiagnostic(t *testing.T) {
	assert := assert.New(t)

	_, sink := analyze("u.kush", "void f() { x = 1; }\n")
	assert.True(sink.HasErrors())
	assert.Equal(diag.CodeUndeclaredIdentifier, sink.All()[0].Code)
}

func Test_ResolutionPass_localUseBeforeDeclarationReportsDiagnostic(t *testing.T) {
	assert := assert.New(t)

	_, sink := analyze("u.kush", "void f() { x = 1; i32 x = 2; }\n")
	assert.True(sink.HasErrors())
	assert.Equal(diag.CodeUndeclaredIdentifier, sink.All()[0].Code)
}

func Test_ResolutionPass_paramUsedBeforeTextualDeclOK(t *testing.T) {
	assert := assert.New(t)

	// parameters live in the function scope, not the block's local scope,
	// so using one inside the body is always fine regardless of where in
	// the signature it was declared relative to other statements.
	_, sink := analyze("u.kush", "void f(i32 x) { x = x + 1; }\n")
	assert.False(sink.HasErrors())
}

func Test_ResolutionPass_assignToNonPlaceholderReportsInvalidLvalue(t *testing.T) {
	assert := assert.New(t)

	_, sink := analyze("u.kush", "void f() { 1 = 2; }\n")
	assert.True(sink.HasErrors())
	found := false
	for _, d := range sink.All() {
		if d.Code == diag.CodeInvalidLvalue {
			found = true
		}
	}
	assert.True(found)
}

func Test_ResolutionPass_callingNonFunctionReportsDiagnostic(t *testing.T) {
	assert := assert.New(t)

	_, sink := analyze("u.kush", "void f() { i32 x = 1; x(); }\n")
	assert.True(sink.HasErrors())
	found := false
	for _, d := range sink.All() {
		if d.Code == diag.CodeVariableTreatedAsFunc {
			found = true
		}
	}
	assert.True(found)
}

func Test_ResolutionPass_memberCallTargetSkipsVariableCheck(t *testing.T) {
	assert := assert.New(t)

	// a call whose target is a member access (obj.method()) must not
	// trigger the bare-identifier "treated as function" check: only the
	// target object is resolved, and the member name is never looked up.
	_, sink := analyze("u.kush", `struct A { void m() { } }
void f() { A a = new A(); a.m(); }
`)
	for _, d := range sink.All() {
		assert.NotEqual(diag.CodeVariableTreatedAsFunc, d.Code)
	}
}

func Test_ResolutionPass_newWithUnknownClassReportsDiagnostic(t *testing.T) {
	assert := assert.New(t)

	_, sink := analyze("u.kush", "void f() { i32 x = new Nope(); }\n")
	assert.True(sink.HasErrors())
	assert.Equal(diag.CodeUndeclaredClass, sink.All()[0].Code)
}

func Test_ResolutionPass_newClassWithoutConstructorReportsDiagnostic(t *testing.T) {
	assert := assert.New(t)

	_, sink := analyze("u.kush", "struct A { }\nvoid f() { A x = new A(); }\n")
	assert.True(sink.HasErrors())
	found := false
	for _, d := range sink.All() {
		if d.Code == diag.CodeNoSuitableConstructor {
			found = true
		}
	}
	assert.True(found)
}

func Test_ResolutionPass_newClassWithConstructorOK(t *testing.T) {
	assert := assert.New(t)

	_, sink := analyze("u.kush", "struct A { void new() { } }\nvoid f() { A x = new A(); }\n")
	assert.False(sink.HasErrors())
}

func Test_ResolutionPass_extendsUnknownClassReportsDiagnostic(t *testing.T) {
	assert := assert.New(t)

	_, sink := analyze("u.kush", "struct B : A { }\n")
	assert.True(sink.HasErrors())
	assert.Equal(diag.CodeUnknownClass, sink.All()[0].Code)
}

func Test_ResolutionPass_extendsKnownClassPopulatesSuperclasses(t *testing.T) {
	assert := assert.New(t)

	cu, sink := analyze("u.kush", "struct A { }\nstruct B : A { }\n")
	assert.False(sink.HasErrors())

	annos := NewAnnotations()
	reg := scope.NewRegistry()
	sink2 := diag.NewSink()
	NewDefinitionPass(sink2, annos, reg).Run(cu)
	NewResolutionPass(sink2, annos, reg, true).Run(cu)

	cls, ok := reg.Lookup(DefaultPackage + ".B")
	if assert.True(ok) {
		assert.Len(cls.Superclasses, 1)
		assert.Equal("A", cls.Superclasses[0].Name())
	}
}

func Test_ResolutionPass_fieldAccessibleFromMethod(t *testing.T) {
	assert := assert.New(t)

	_, sink := analyze("u.kush", "struct A { i32 x; i32 get() { return x; } }\n")
	assert.False(sink.HasErrors())
}
