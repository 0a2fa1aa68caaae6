package parse

import (
	"testing"

	"github.com/dekarrin/kushc/ast"
	"github.com/dekarrin/kushc/diag"
	"github.com/dekarrin/kushc/lex"
	"github.com/dekarrin/kushc/stream"
	"github.com/dekarrin/kushc/token"
	"github.com/stretchr/testify/assert"
)

func parseSrc(src string) (*ast.CompilationUnit, *diag.Sink) {
	sink := diag.NewSink()
	l := lex.New([]byte(src), 0, sink)
	ts := stream.New(l)
	p := New(ts, sink, "test.kush", 0)
	return p.Parse(), sink
}

func Test_Parser_importDecl(t *testing.T) {
	assert := assert.New(t)

	cu, sink := parseSrc("import a.b.C;\n")
	assert.False(sink.HasErrors())
	if assert.Len(cu.Imports, 1) {
		imp := cu.Imports[0]
		assert.Equal("a.b.C", imp.QualifiedName())
		assert.Equal("C", imp.BoundName().Name)
		assert.Nil(imp.Alias)
	}
}

func Test_Parser_importWithAlias(t *testing.T) {
	assert := assert.New(t)

	cu, sink := parseSrc("import a.b.C as D;\n")
	assert.False(sink.HasErrors())
	if assert.Len(cu.Imports, 1) {
		assert.Equal("D", cu.Imports[0].BoundName().Name)
	}
}

func Test_Parser_simpleFunction(t *testing.T) {
	assert := assert.New(t)

	cu, sink := parseSrc("i32 f(i32 x, i32 y) { return x + y; }\n")
	assert.False(sink.HasErrors())
	if assert.Len(cu.Functions, 1) {
		fn := cu.Functions[0]
		assert.Equal("f", fn.Name.Name)
		assert.Len(fn.Params, 2)
		assert.Nil(fn.Variadic)
		if assert.Len(fn.Body.Statements, 1) {
			ret, ok := fn.Body.Statements[0].(*ast.ReturnStmt)
			if assert.True(ok) {
				bin, ok := ret.Value.(*ast.BinaryExpr)
				assert.True(ok)
				assert.Equal(token.Plus, bin.Op)
			}
		}
	}
}

func Test_Parser_variadicFunction(t *testing.T) {
	assert := assert.New(t)

	cu, sink := parseSrc("void g(i32 a, i32... rest) { }\n")
	assert.False(sink.HasErrors())
	if assert.Len(cu.Functions, 1) {
		fn := cu.Functions[0]
		if assert.NotNil(fn.Variadic) {
			assert.True(fn.Variadic.Variadic)
			assert.Equal("rest", fn.Variadic.Name.Name)
		}
		assert.Len(fn.Params, 2)
	}
}

func Test_Parser_structureWithFieldsAndMethods(t *testing.T) {
	assert := assert.New(t)

	src := `struct Point {
	i32 x;
	i32 y;
	i32 sum() { return x + y; }
}
`
	cu, sink := parseSrc(src)
	assert.False(sink.HasErrors())
	if assert.Len(cu.Structures, 1) {
		s := cu.Structures[0]
		assert.Equal("Point", s.Name.Name)
		assert.Len(s.Fields, 2)
		assert.Len(s.Functions, 1)
	}
}

func Test_Parser_structureWithExtends(t *testing.T) {
	assert := assert.New(t)

	cu, sink := parseSrc("struct B : A { }\n")
	assert.False(sink.HasErrors())
	if assert.Len(cu.Structures, 1) {
		assert.Len(cu.Structures[0].Extends, 1)
		assert.Equal("A", cu.Structures[0].Extends[0].Name)
	}
}

func Test_Parser_ifElseIfElse(t *testing.T) {
	assert := assert.New(t)

	src := "void f() { if x { y(); } else if z { w(); } else { v(); } }\n"
	cu, sink := parseSrc(src)
	assert.False(sink.HasErrors())
	fn := cu.Functions[0]
	ifStmt, ok := fn.Body.Statements[0].(*ast.IfStmt)
	if assert.True(ok) {
		assert.Len(ifStmt.Elifs, 1)
		assert.NotNil(ifStmt.Else)
	}
}

func Test_Parser_whileWithLabel(t *testing.T) {
	assert := assert.New(t)

	cu, sink := parseSrc("void f() { #outer while x { break #outer; } }\n")
	assert.False(sink.HasErrors())
	fn := cu.Functions[0]
	w, ok := fn.Body.Statements[0].(*ast.WhileStmt)
	if assert.True(ok) {
		assert.NotNil(w.Label)
		assert.Equal("outer", w.Label.Name)
	}
}

func Test_Parser_forEach(t *testing.T) {
	assert := assert.New(t)

	cu, sink := parseSrc("void f() { for let item with items { use(item); } }\n")
	assert.False(sink.HasErrors())
	fn := cu.Functions[0]
	fe, ok := fn.Body.Statements[0].(*ast.ForEachStmt)
	if assert.True(ok) {
		assert.Equal("item", fe.Var.Name)
	}
}

func Test_Parser_tryCatchFinally(t *testing.T) {
	assert := assert.New(t)

	src := "void f() { try { risky(); } catch (E1 | E2 e) { handle(e); } finally { cleanup(); } }\n"
	cu, sink := parseSrc(src)
	assert.False(sink.HasErrors())
	fn := cu.Functions[0]
	tr, ok := fn.Body.Statements[0].(*ast.TryStmt)
	if assert.True(ok) {
		if assert.Len(tr.Catches, 1) {
			assert.Len(tr.Catches[0].Types, 2)
		}
		assert.NotNil(tr.Finally)
	}
}

func Test_Parser_tryWithoutCatchOrFinallyIsDiagnosed(t *testing.T) {
	assert := assert.New(t)

	_, sink := parseSrc("void f() { try { } }\n")
	assert.True(sink.HasErrors())
	assert.Equal(diag.CodeTryStatementExpectsCatchOrFinally, sink.All()[0].Code)
}

func Test_Parser_typedVarDeclWithoutKeyword(t *testing.T) {
	assert := assert.New(t)

	cu, sink := parseSrc("void f() { i32 x = 1; }\n")
	assert.False(sink.HasErrors())
	fn := cu.Functions[0]
	v, ok := fn.Body.Statements[0].(*ast.VarDeclStmt)
	if assert.True(ok) {
		assert.NotNil(v.Type)
		assert.Equal("x", v.Name.Name)
		assert.False(v.IsConst)
	}
}

func Test_Parser_letIsConst(t *testing.T) {
	assert := assert.New(t)

	cu, sink := parseSrc("void f() { let x = 1; x = 2; }\n")
	assert.False(sink.HasErrors())
	fn := cu.Functions[0]
	v, ok := fn.Body.Statements[0].(*ast.VarDeclStmt)
	if assert.True(ok) {
		assert.True(v.IsConst)
	}
}

func Test_Parser_expressionPrecedence(t *testing.T) {
	assert := assert.New(t)

	// "1 + 2 * 3" should parse as 1 + (2 * 3): the outer node is '+'.
	cu, sink := parseSrc("void f() { x = 1 + 2 * 3; }\n")
	assert.False(sink.HasErrors())
	fn := cu.Functions[0]
	stmt := fn.Body.Statements[0].(*ast.ExpressionStmt)
	assign := stmt.X.(*ast.AssignmentExpr)
	add, ok := assign.Right.(*ast.BinaryExpr)
	if assert.True(ok) {
		assert.Equal(token.Plus, add.Op)
		mul, ok := add.Right.(*ast.BinaryExpr)
		if assert.True(ok) {
			assert.Equal(token.Star, mul.Op)
		}
	}
}

func Test_Parser_ternary(t *testing.T) {
	assert := assert.New(t)

	cu, sink := parseSrc("void f() { x = a ? b : c; }\n")
	assert.False(sink.HasErrors())
	fn := cu.Functions[0]
	stmt := fn.Body.Statements[0].(*ast.ExpressionStmt)
	assign := stmt.X.(*ast.AssignmentExpr)
	_, ok := assign.Right.(*ast.ConditionalExpr)
	assert.True(ok)
}

func Test_Parser_newExpression(t *testing.T) {
	assert := assert.New(t)

	cu, sink := parseSrc("void f() { x = new Foo(1, 2); }\n")
	assert.False(sink.HasErrors())
	fn := cu.Functions[0]
	stmt := fn.Body.Statements[0].(*ast.ExpressionStmt)
	assign := stmt.X.(*ast.AssignmentExpr)
	n, ok := assign.Right.(*ast.NewExpr)
	if assert.True(ok) {
		assert.Equal("Foo", n.Type.Name)
		assert.Len(n.Args, 2)
	}
}

func Test_Parser_unexpectedTokenRecovers(t *testing.T) {
	assert := assert.New(t)

	// a malformed second function should not stop the first or third from
	// being parsed, demonstrating follow-stack recovery.
	src := "void a() { } void ) broken () { } void c() { }\n"
	cu, sink := parseSrc(src)
	assert.True(sink.HasErrors())
	names := make([]string, 0, len(cu.Functions))
	for _, fn := range cu.Functions {
		names = append(names, fn.Name.Name)
	}
	assert.Contains(names, "a")
	assert.Contains(names, "c")
}

func Test_Parser_recoveryModeSuppressesCascadingDiagnostics(t *testing.T) {
	assert := assert.New(t)

	// missing both parens on the same function: expect(LParen) fails and
	// recovers without consuming the '{' it stops on, then the parameter
	// rule and expect(RParen) fail against that very same token. Only the first
	// failure should be reported; the second is the same malformed
	// construct, not a new syntax error.
	src := "void f { }\n"
	_, sink := parseSrc(src)
	assert.True(sink.HasErrors())
	assert.Equal(1, sink.Len())
}
