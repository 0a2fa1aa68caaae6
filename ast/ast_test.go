package ast

import (
	"testing"

	"github.com/dekarrin/kushc/token"
	"github.com/stretchr/testify/assert"
)

func tokAt(start, end int) token.Token {
	return token.Token{Span: token.Span{Start: start, End: end}}
}

func Test_CompilationUnit_Span(t *testing.T) {
	assert := assert.New(t)

	cu := &CompilationUnit{StartTok: tokAt(0, 1), EndTok: tokAt(40, 41)}
	assert.Equal(0, cu.Span().Start)
	assert.Equal(41, cu.Span().End)
}

func Test_BinaryExpr_SpanCoversBothOperands(t *testing.T) {
	assert := assert.New(t)

	left := &IntLiteral{Tok: tokAt(0, 1)}
	right := &IntLiteral{Tok: tokAt(4, 5)}
	b := &BinaryExpr{Op: token.Plus, Left: left, Right: right, OpTok: tokAt(2, 3)}

	assert.Equal(0, b.Span().Start)
	assert.Equal(5, b.Span().End)
}

func Test_ImportDecl_BoundNamePrefersAlias(t *testing.T) {
	assert := assert.New(t)

	a := &Ident{Name: "a"}
	c := &Ident{Name: "C"}
	d := &Ident{Name: "D"}

	noAlias := &ImportDecl{Path: []*Ident{a, c}}
	assert.Equal("C", noAlias.BoundName().Name)
	assert.Equal("a.C", noAlias.QualifiedName())

	withAlias := &ImportDecl{Path: []*Ident{a, c}, Alias: d}
	assert.Equal("D", withAlias.BoundName().Name)
}

func Test_FunctionDecl_FixedArity(t *testing.T) {
	assert := assert.New(t)

	fn := &FunctionDecl{Params: []*ParamDecl{{}, {}, {}}}
	assert.Equal(3, fn.FixedArity())
}

func Test_AssignmentExpr_SpanFallsBackToOpTokWhenRightIsNil(t *testing.T) {
	assert := assert.New(t)

	left := &IdentExpr{Name: &Ident{Tok: tokAt(0, 1)}}
	a := &AssignmentExpr{Left: left, OpTok: tokAt(2, 3)}

	assert.Equal(0, a.Span().Start)
	assert.Equal(3, a.Span().End)
}
