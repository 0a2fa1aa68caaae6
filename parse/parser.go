// Package parse implements the predictive recursive-descent parser from
// spec.md §4.3: one method per grammar rule, building the ast package's
// node types, with panic-mode error recovery driven by a follow-token
// stack (see follow.go). A single UNEXPECTED_TOKEN diagnostic is reported
// per recovery; the parser never aborts the whole unit on a syntax error,
// matching the accumulate-and-continue policy spec.md §7 requires of every
// stage.
package parse

import (
	"github.com/dekarrin/kushc/ast"
	"github.com/dekarrin/kushc/diag"
	"github.com/dekarrin/kushc/stream"
	"github.com/dekarrin/kushc/token"
)

// Parser consumes a token stream and produces a CompilationUnit, reporting
// syntax errors into sink rather than returning a Go error.
type Parser struct {
	ts     *stream.TokenStream
	sink   *diag.Sink
	path   string
	file   token.FileID
	follow followStack

	// recovery is true from the moment a syntax error is reported until the
	// next successful match. It suppresses further UNEXPECTED_TOKEN
	// diagnostics for what is really one malformed construct spanning
	// several failed expect() calls.
	recovery bool
}

// New returns a Parser reading from ts, reporting into sink, for the
// compilation unit loaded from path under file.
func New(ts *stream.TokenStream, sink *diag.Sink, path string, file token.FileID) *Parser {
	return &Parser{ts: ts, sink: sink, path: path, file: file}
}

// --- token-stream helpers ------------------------------------------------

func (p *Parser) la(k int) token.Kind    { return p.ts.La(k) }
func (p *Parser) lt(k int) token.Token   { return p.ts.Lt(k) }
func (p *Parser) cur() token.Token       { return p.ts.Lt(1) }
func (p *Parser) at(k token.Kind) bool   { return p.la(1) == k }
func (p *Parser) atEOF() bool            { return p.la(1) == token.EndOfStream }

// accept consumes and returns the current token if it matches k, and
// reports ok=false without consuming otherwise. A successful match clears
// recovery mode: the parser has resynchronized with the input.
func (p *Parser) accept(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		p.recovery = false
		return p.ts.Consume(), true
	}
	return token.Token{}, false
}

// expect consumes and returns the current token if it matches k. On
// mismatch it reports UNEXPECTED_TOKEN, unless the parser is already
// recovering from an earlier failed match in the same construct, and
// enters panic-mode recovery, discarding tokens until one is found that
// appears in the follow-token stack (scanned innermost frame first) or
// END_OF_STREAM is reached. The returned token is the one recovery
// stopped on, which the caller should treat as not actually being a k
// token when ok is false.
func (p *Parser) expect(k token.Kind) (token.Token, bool) {
	if t, ok := p.accept(k); ok {
		return t, true
	}
	if !p.recovery {
		bad := p.cur()
		p.sink.Errorf(diag.Syntactic, diag.CodeUnexpectedToken, bad.Span,
			"unexpected token %s, expected %s", bad.Kind, k)
	}
	p.recover()
	return p.cur(), false
}

// recover discards tokens until the current one is found in the follow
// stack or the stream is exhausted. The parser stays in recovery mode
// until the next successful accept/expect.
func (p *Parser) recover() {
	p.recovery = true
	for !p.atEOF() && !p.follow.contains(p.la(1)) {
		p.ts.Consume()
	}
}

// ---- compilation unit ---------------------------------------------------

// Parse parses one whole compilation unit: compilationUnit -> importDecl*
// (structureDecl | functionDecl)* EOF.
func (p *Parser) Parse() *ast.CompilationUnit {
	pop := p.follow.push(token.KwImport, token.KwStruct, token.Identifier,
		token.KwBoolean, token.KwI8, token.KwI16, token.KwI32, token.KwI64,
		token.KwF32, token.KwF64, token.KwVoid, token.EndOfStream)
	defer pop()

	// NEWLINE, INDENTATION and DEDENTATION only reach the default channel
	// outside every enclosure, i.e. between top-level declarations; they
	// carry no meaning for this brace-delimited grammar and are skipped.
	skipLayout := func() {
		for p.at(token.Newline) || p.at(token.Indentation) || p.at(token.Dedentation) {
			p.ts.Consume()
		}
	}
	skipLayout()

	cu := &ast.CompilationUnit{Path: p.path, File: p.file, StartTok: p.cur()}

	for p.at(token.KwImport) {
		cu.Imports = append(cu.Imports, p.parseImport())
		skipLayout()
	}
	for !p.atEOF() {
		switch {
		case p.at(token.KwStruct):
			cu.Structures = append(cu.Structures, p.parseStructure())
		case p.isTypeStart() || p.at(token.Identifier):
			cu.Functions = append(cu.Functions, p.parseFunction())
		default:
			bad := p.cur()
			if !p.recovery {
				p.sink.Errorf(diag.Syntactic, diag.CodeUnexpectedToken, bad.Span,
					"unexpected token %s at top level", bad.Kind)
			}
			p.recover()
			if p.at(bad.Kind) && !p.atEOF() {
				// recovery made no progress; force it so we terminate.
				p.ts.Consume()
			}
		}
		skipLayout()
	}
	cu.EndTok = p.cur()
	return cu
}

// import -> 'import' ident ('.' ident)* ('as' ident)? ';'
func (p *Parser) parseImport() *ast.ImportDecl {
	pop := p.follow.push(token.Dot, token.Identifier, token.Semicolon)
	defer pop()

	start, _ := p.expect(token.KwImport)
	decl := &ast.ImportDecl{StartTok: start}
	decl.Path = append(decl.Path, p.parseIdent())
	for p.at(token.Dot) {
		p.ts.Consume()
		decl.Path = append(decl.Path, p.parseIdent())
	}
	if p.at(token.Identifier) && p.cur().Text() == "as" {
		p.ts.Consume()
		decl.Alias = p.parseIdent()
	}
	end, _ := p.expect(token.Semicolon)
	decl.EndTok = end
	return decl
}

func (p *Parser) parseIdent() *ast.Ident {
	t, ok := p.expect(token.Identifier)
	if !ok {
		return &ast.Ident{Name: "", Tok: t}
	}
	return &ast.Ident{Name: t.Text(), Tok: t}
}

// ---- structure declaration ----------------------------------------------

// structureDecl -> 'struct' ident (':' ident (',' ident)*)? '{' (fieldDecl | functionDecl)* '}'
func (p *Parser) parseStructure() *ast.StructureDecl {
	pop := p.follow.push(token.RBrace)
	defer pop()

	start, _ := p.expect(token.KwStruct)
	decl := &ast.StructureDecl{StartTok: start, Name: p.parseIdent()}

	if _, ok := p.accept(token.Colon); ok {
		decl.Extends = append(decl.Extends, p.parseIdent())
		for p.at(token.Comma) {
			p.ts.Consume()
			decl.Extends = append(decl.Extends, p.parseIdent())
		}
	}

	p.expect(token.LBrace)
	for !p.at(token.RBrace) && !p.atEOF() {
		if p.isTypeStart() || p.at(token.Identifier) {
			// disambiguate type ident ... ';' (field) vs type ident '(' (method)
			// both start with a type then an identifier; look past the name
			// for '(' to distinguish a method from a field.
			member := p.parseMember()
			switch m := member.(type) {
			case *ast.FieldDecl:
				decl.Fields = append(decl.Fields, m)
			case *ast.FunctionDecl:
				decl.Functions = append(decl.Functions, m)
			}
		} else {
			bad := p.cur()
			if !p.recovery {
				p.sink.Errorf(diag.Syntactic, diag.CodeUnexpectedToken, bad.Span,
					"unexpected token %s in structure body", bad.Kind)
			}
			p.recover()
			if !p.at(token.RBrace) && !p.atEOF() {
				p.ts.Consume()
			}
		}
	}
	end, _ := p.expect(token.RBrace)
	decl.EndTok = end
	return decl
}

// parseMember parses one structure member: a field (`type name ;`) or a
// method (`'static'? type name '(' params ')' block`). Both begin with a
// type and a name, so the decision is made on the token following the
// name: '(' starts a method.
func (p *Parser) parseMember() ast.Node {
	start := p.cur()
	isStatic := false
	if p.at(token.Identifier) && p.cur().Text() == "static" {
		isStatic = true
		p.ts.Consume()
	}
	typ := p.parseType()
	name := p.parseMemberName()
	if p.at(token.LParen) {
		return p.parseFunctionTail(start, isStatic, typ, name)
	}
	field := &ast.FieldDecl{StartTok: start, Type: typ, Name: name}
	p.expect(token.Semicolon)
	return field
}

// parseMemberName reads a structure member's name. This is almost always a
// plain identifier, but the constructor rule names itself "new" (spec.md
// §3/§4.4), the same lexeme the `new T(args)` expression keyword owns, so a
// literal KwNew token is accepted here as the constructor's name too.
func (p *Parser) parseMemberName() *ast.Ident {
	if t, ok := p.accept(token.KwNew); ok {
		return &ast.Ident{Name: t.Text(), Tok: t}
	}
	return p.parseIdent()
}

// ---- function declaration ------------------------------------------------

// functionDecl -> 'static'? type ident '(' paramList? ')' block
func (p *Parser) parseFunction() *ast.FunctionDecl {
	start := p.cur()
	isStatic := false
	if p.at(token.Identifier) && p.cur().Text() == "static" {
		isStatic = true
		p.ts.Consume()
	}
	typ := p.parseType()
	name := p.parseIdent()
	return p.parseFunctionTail(start, isStatic, typ, name)
}

func (p *Parser) parseFunctionTail(start token.Token, isStatic bool, ret *ast.TypeNode, name *ast.Ident) *ast.FunctionDecl {
	pop := p.follow.push(token.LBrace, token.RBrace)
	defer pop()

	fn := &ast.FunctionDecl{StartTok: start, Name: name, ReturnType: ret, IsStatic: isStatic}
	p.expect(token.LParen)
	if !p.at(token.RParen) {
		fn.Params = append(fn.Params, p.parseParam())
		for p.at(token.Comma) {
			p.ts.Consume()
			fn.Params = append(fn.Params, p.parseParam())
		}
		if last := fn.Params[len(fn.Params)-1]; last.Variadic {
			fn.Variadic = last
		}
	}
	p.expect(token.RParen)
	fn.Body = p.parseBlock()
	fn.EndTok = fn.Body.EndTok
	return fn
}

// param -> type '...'? ident
func (p *Parser) parseParam() *ast.ParamDecl {
	start := p.cur()
	typ := p.parseType()
	variadic := false
	if _, ok := p.accept(token.Ellipsis); ok {
		variadic = true
	}
	name := p.parseIdent()
	return &ast.ParamDecl{StartTok: start, Type: typ, Variadic: variadic, Name: name, EndTok: name.Tok}
}

// type -> ('boolean'|'i8'|'i16'|'i32'|'i64'|'f32'|'f64'|'void'|ident) ('[' ']')*
func (p *Parser) isTypeStart() bool {
	k := p.la(1)
	return k.IsType() || k == token.KwVoid
}

func (p *Parser) parseType() *ast.TypeNode {
	t := p.cur()
	tn := &ast.TypeNode{Kind: t.Kind, Name: t.Text(), NameTok: t, EndTok: t}
	switch {
	case t.Kind.IsType():
		p.ts.Consume()
	case t.Kind == token.KwVoid:
		tn.IsVoid = true
		p.ts.Consume()
	case t.Kind == token.Identifier:
		p.ts.Consume()
	default:
		if !p.recovery {
			p.sink.Errorf(diag.Syntactic, diag.CodeUnexpectedToken, t.Span,
				"unexpected token %s, expected a type", t.Kind)
		}
		p.recover()
		return tn
	}
	for p.at(token.LBracket) && p.la(2) == token.RBracket {
		p.ts.Consume()
		end, _ := p.expect(token.RBracket)
		tn.ArrayDims++
		tn.EndTok = end
	}
	return tn
}

// ---- statements -----------------------------------------------------------

// block -> '{' stmt* '}'
func (p *Parser) parseBlock() *ast.BlockStmt {
	pop := p.follow.push(token.RBrace)
	defer pop()

	start, _ := p.expect(token.LBrace)
	b := &ast.BlockStmt{StartTok: start}
	for !p.at(token.RBrace) && !p.atEOF() {
		b.Statements = append(b.Statements, p.parseStatement())
	}
	end, _ := p.expect(token.RBrace)
	b.EndTok = end
	return b
}

func (p *Parser) parseStatement() ast.Stmt {
	switch p.la(1) {
	case token.LBrace:
		return p.parseBlock()
	case token.Semicolon:
		t := p.ts.Consume()
		return &ast.EmptyStmt{Tok: t}
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile(nil)
	case token.KwFor:
		return p.parseForEach(nil)
	case token.Hash:
		return p.parseLabeledLoop()
	case token.KwBreak:
		return p.parseBreak()
	case token.KwContinue:
		return p.parseContinue()
	case token.KwReturn:
		return p.parseReturn()
	case token.KwThrow:
		return p.parseThrow()
	case token.KwTry:
		return p.parseTry()
	case token.KwVar, token.KwLet:
		return p.parseVarDecl()
	default:
		if p.startsVarDeclByLookahead() {
			return p.parseVarDecl()
		}
		return p.parseExpressionStatement()
	}
}

// startsVarDeclByLookahead implements the disambiguation in spec.md §4.3: a
// simple statement opens a variable declaration when LA(1) is a primitive
// type keyword (which can never start an expression), or LA(1) is an
// identifier and either LA(2) is '[' with LA(3) ']' (an array-typed local:
// `Foo[] x`) or LA(2) is another identifier (`Foo x`). This is the one
// place the grammar needs LA(3).
func (p *Parser) startsVarDeclByLookahead() bool {
	if p.isTypeStart() {
		return true
	}
	if !p.at(token.Identifier) {
		return false
	}
	if p.la(2) == token.LBracket && p.la(3) == token.RBracket {
		return true
	}
	return p.la(2) == token.Identifier
}

// hasTypeAhead reports whether the current position begins a type rule,
// using the same lookahead spec.md §4.3 uses to distinguish a typed local
// declaration from a bare name: a primitive type keyword, or an identifier
// followed by another identifier or by an empty `[]` suffix.
func (p *Parser) hasTypeAhead() bool {
	if p.isTypeStart() {
		return true
	}
	if !p.at(token.Identifier) {
		return false
	}
	if p.la(2) == token.LBracket && p.la(3) == token.RBracket {
		return true
	}
	return p.la(2) == token.Identifier
}

// varDecl -> ('var'|'let')? type? ident ('=' expr)? ';'
//
// When no 'var'/'let' keyword is present, the type is mandatory (the
// caller only reaches here when startsVarDeclByLookahead already found one
// ahead). When 'var'/'let' is present, an explicit type is optional: without
// one, v.Type is left nil, and no later pass infers a type from the
// initializer.
func (p *Parser) parseVarDecl() *ast.VarDeclStmt {
	pop := p.follow.push(token.Semicolon)
	defer pop()

	start := p.cur()
	v := &ast.VarDeclStmt{StartTok: start}
	explicitKeyword := false
	switch p.la(1) {
	case token.KwLet:
		v.IsConst = true
		p.ts.Consume()
		explicitKeyword = true
	case token.KwVar:
		p.ts.Consume()
		explicitKeyword = true
	}
	if !explicitKeyword || p.hasTypeAhead() {
		v.Type = p.parseType()
	}
	v.Name = p.parseIdent()
	if _, ok := p.accept(token.Assign); ok {
		v.Init = p.parseExpression()
	}
	end, _ := p.expect(token.Semicolon)
	v.EndTok = end
	return v
}

func (p *Parser) parseExpressionStatement() *ast.ExpressionStmt {
	pop := p.follow.push(token.Semicolon)
	defer pop()

	start := p.cur()
	x := p.parseExpression()
	end, _ := p.expect(token.Semicolon)
	return &ast.ExpressionStmt{X: x, StartTok: start, EndTok: end}
}

// '#' ident (while | for)
func (p *Parser) parseLabeledLoop() ast.Stmt {
	hash, _ := p.expect(token.Hash)
	label := p.parseIdent()
	switch p.la(1) {
	case token.KwWhile:
		return p.parseWhile2(hash, label)
	case token.KwFor:
		return p.parseForEach2(hash, label)
	default:
		bad := p.cur()
		if !p.recovery {
			p.sink.Errorf(diag.Syntactic, diag.CodeUnexpectedToken, bad.Span,
				"unexpected token %s, expected 'while' or 'for' after loop label", bad.Kind)
		}
		p.recover()
		return &ast.EmptyStmt{Tok: bad}
	}
}

func (p *Parser) parseWhile(label *ast.Ident) *ast.WhileStmt {
	return p.parseWhile2(p.cur(), label)
}

func (p *Parser) parseWhile2(start token.Token, label *ast.Ident) *ast.WhileStmt {
	pop := p.follow.push(token.LBrace)
	defer pop()

	p.expect(token.KwWhile)
	cond := p.parseExpression()
	body := p.parseBlock()
	return &ast.WhileStmt{Label: label, Cond: cond, Body: body, StartTok: start, EndTok: body.EndTok}
}

func (p *Parser) parseForEach(label *ast.Ident) *ast.ForEachStmt {
	return p.parseForEach2(p.cur(), label)
}

// forEach -> 'for' 'let' ident 'with' expr block
func (p *Parser) parseForEach2(start token.Token, label *ast.Ident) *ast.ForEachStmt {
	pop := p.follow.push(token.LBrace)
	defer pop()

	p.expect(token.KwFor)
	p.expect(token.KwLet)
	v := p.parseIdent()
	p.expect(token.KwWith)
	coll := p.parseExpression()
	body := p.parseBlock()
	return &ast.ForEachStmt{Label: label, Var: v, Collection: coll, Body: body, StartTok: start, EndTok: body.EndTok}
}

func (p *Parser) parseBreak() *ast.BreakStmt {
	pop := p.follow.push(token.Semicolon)
	defer pop()

	start, _ := p.expect(token.KwBreak)
	b := &ast.BreakStmt{StartTok: start}
	if p.at(token.Hash) {
		p.ts.Consume()
		b.Label = p.parseIdent()
	}
	end, _ := p.expect(token.Semicolon)
	b.EndTok = end
	return b
}

func (p *Parser) parseContinue() *ast.ContinueStmt {
	pop := p.follow.push(token.Semicolon)
	defer pop()

	start, _ := p.expect(token.KwContinue)
	c := &ast.ContinueStmt{StartTok: start}
	if p.at(token.Hash) {
		p.ts.Consume()
		c.Label = p.parseIdent()
	}
	end, _ := p.expect(token.Semicolon)
	c.EndTok = end
	return c
}

func (p *Parser) parseReturn() *ast.ReturnStmt {
	pop := p.follow.push(token.Semicolon)
	defer pop()

	start, _ := p.expect(token.KwReturn)
	r := &ast.ReturnStmt{StartTok: start}
	if !p.at(token.Semicolon) {
		r.Value = p.parseExpression()
	}
	end, _ := p.expect(token.Semicolon)
	r.EndTok = end
	return r
}

func (p *Parser) parseThrow() *ast.ThrowStmt {
	pop := p.follow.push(token.Semicolon)
	defer pop()

	start, _ := p.expect(token.KwThrow)
	t := &ast.ThrowStmt{StartTok: start, Value: p.parseExpression()}
	end, _ := p.expect(token.Semicolon)
	t.EndTok = end
	return t
}

// if -> 'if' expr block ('else' 'if' expr block)* ('else' block)?
func (p *Parser) parseIf() *ast.IfStmt {
	pop := p.follow.push(token.KwElse, token.LBrace)
	defer pop()

	start, _ := p.expect(token.KwIf)
	stmt := &ast.IfStmt{StartTok: start, Cond: p.parseExpression(), Then: p.parseBlock()}
	stmt.EndTok = stmt.Then.EndTok
	for p.at(token.KwElse) && p.la(2) == token.KwIf {
		p.ts.Consume()
		p.ts.Consume()
		cond := p.parseExpression()
		body := p.parseBlock()
		stmt.Elifs = append(stmt.Elifs, &ast.ElifClause{Cond: cond, Body: body})
		stmt.EndTok = body.EndTok
	}
	if p.at(token.KwElse) {
		p.ts.Consume()
		stmt.Else = p.parseBlock()
		stmt.EndTok = stmt.Else.EndTok
	}
	return stmt
}

// try -> 'try' block catchClause* finallyClause?
// catchClause -> 'catch' '(' ident ('|' ident)* ident ')' block
func (p *Parser) parseTry() *ast.TryStmt {
	pop := p.follow.push(token.KwCatch, token.KwFinally)
	defer pop()

	start, _ := p.expect(token.KwTry)
	t := &ast.TryStmt{StartTok: start, Body: p.parseBlock()}
	t.EndTok = t.Body.EndTok

	for p.at(token.KwCatch) {
		c := p.parseCatch()
		t.Catches = append(t.Catches, c)
		t.EndTok = c.EndTok
	}
	if p.at(token.KwFinally) {
		p.ts.Consume()
		t.Finally = p.parseBlock()
		t.EndTok = t.Finally.EndTok
	}
	if len(t.Catches) == 0 && t.Finally == nil {
		p.sink.Errorf(diag.Syntactic, diag.CodeTryStatementExpectsCatchOrFinally, t.Body.EndTok.Span,
			"'try' block must be followed by at least one 'catch' clause or a 'finally' clause")
	}
	return t
}

func (p *Parser) parseCatch() *ast.CatchClause {
	pop := p.follow.push(token.LBrace)
	defer pop()

	start, _ := p.expect(token.KwCatch)
	p.expect(token.LParen)
	c := &ast.CatchClause{StartTok: start}
	c.Types = append(c.Types, p.parseIdent())
	for p.at(token.Pipe) {
		p.ts.Consume()
		c.Types = append(c.Types, p.parseIdent())
	}
	c.Param = p.parseIdent()
	p.expect(token.RParen)
	c.Body = p.parseBlock()
	c.EndTok = c.Body.EndTok
	return c
}

// ---- expressions ----------------------------------------------------------
//
// Precedence, loosest to tightest:
//   assignment > conditional > logical-or > logical-and > bitwise-or >
//   bitwise-xor > bitwise-and > equality > relational > shift > additive >
//   multiplicative > unary > postfix > primary

var assignOps = map[token.Kind]bool{
	token.Assign: true, token.PlusAssign: true, token.MinusAssign: true,
	token.StarAssign: true, token.SlashAssign: true, token.PercentAssign: true,
	token.AmpAssign: true, token.PipeAssign: true, token.CaretAssign: true,
	token.ShlAssign: true, token.ShrAssign: true, token.UShrAssign: true,
}

func (p *Parser) parseExpression() ast.Expr {
	left := p.parseConditional()
	if assignOps[p.la(1)] {
		opTok := p.ts.Consume()
		right := p.parseExpression()
		return &ast.AssignmentExpr{Op: opTok.Kind, Left: left, Right: right, OpTok: opTok}
	}
	return left
}

func (p *Parser) parseConditional() ast.Expr {
	cond := p.parseLogicalOr()
	if _, ok := p.accept(token.Question); ok {
		then := p.parseExpression()
		p.expect(token.Colon)
		els := p.parseConditional()
		return &ast.ConditionalExpr{Cond: cond, Then: then, Else: els}
	}
	return cond
}

func (p *Parser) binaryLevel(next func() ast.Expr, ops ...token.Kind) ast.Expr {
	left := next()
	for {
		matched := false
		for _, op := range ops {
			if p.la(1) == op {
				opTok := p.ts.Consume()
				right := next()
				left = &ast.BinaryExpr{Op: op, Left: left, Right: right, OpTok: opTok}
				matched = true
				break
			}
		}
		if !matched {
			return left
		}
	}
}

func (p *Parser) parseLogicalOr() ast.Expr {
	return p.binaryLevel(p.parseLogicalAnd, token.OrOr)
}
func (p *Parser) parseLogicalAnd() ast.Expr {
	return p.binaryLevel(p.parseBitOr, token.AndAnd)
}
func (p *Parser) parseBitOr() ast.Expr {
	return p.binaryLevel(p.parseBitXor, token.Pipe)
}
func (p *Parser) parseBitXor() ast.Expr {
	return p.binaryLevel(p.parseBitAnd, token.Caret)
}
func (p *Parser) parseBitAnd() ast.Expr {
	return p.binaryLevel(p.parseEquality, token.Amp)
}
func (p *Parser) parseEquality() ast.Expr {
	return p.binaryLevel(p.parseRelational, token.Eq, token.Ne)
}
func (p *Parser) parseRelational() ast.Expr {
	return p.binaryLevel(p.parseShift, token.Lt, token.Gt, token.Le, token.Ge)
}
func (p *Parser) parseShift() ast.Expr {
	return p.binaryLevel(p.parseAdditive, token.Shl, token.Shr, token.UShr)
}
func (p *Parser) parseAdditive() ast.Expr {
	return p.binaryLevel(p.parseMultiplicative, token.Plus, token.Minus)
}
func (p *Parser) parseMultiplicative() ast.Expr {
	return p.binaryLevel(p.parseUnary, token.Star, token.Slash, token.Percent)
}

var unaryOps = map[token.Kind]bool{
	token.Minus: true, token.Plus: true, token.Not: true, token.Tilde: true,
	token.Inc: true, token.Dec: true,
}

func (p *Parser) parseUnary() ast.Expr {
	if unaryOps[p.la(1)] {
		opTok := p.ts.Consume()
		operand := p.parseUnary()
		return &ast.PrefixExpr{Op: opTok.Kind, Operand: operand, StartTok: opTok}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() ast.Expr {
	x := p.parsePrimary()
	for {
		switch p.la(1) {
		case token.LBracket:
			p.ts.Consume()
			idx := p.parseExpression()
			end, _ := p.expect(token.RBracket)
			x = &ast.IndexExpr{Target: x, Index: idx, EndTok: end}
		case token.LParen:
			p.ts.Consume()
			var args []ast.Expr
			if !p.at(token.RParen) {
				args = append(args, p.parseExpression())
				for p.at(token.Comma) {
					p.ts.Consume()
					args = append(args, p.parseExpression())
				}
			}
			end, _ := p.expect(token.RParen)
			x = &ast.CallExpr{Target: x, Args: args, EndTok: end}
		case token.Dot:
			p.ts.Consume()
			x = &ast.MemberExpr{Target: x, Name: p.parseIdent()}
		case token.Inc, token.Dec:
			opTok := p.ts.Consume()
			x = &ast.PostfixIncDecExpr{Op: opTok.Kind, Operand: x, OpTok: opTok}
		default:
			return x
		}
	}
}

// primary -> literal | 'this' | 'new' ident '(' args ')' | '(' expr ')'
//          | '{' fieldInit (',' fieldInit)* '}' | '[' expr (',' expr)* ']'
//          | ident
func (p *Parser) parsePrimary() ast.Expr {
	t := p.cur()
	switch t.Kind {
	case token.IntegerLiteral:
		p.ts.Consume()
		return &ast.IntLiteral{Value: t.Text(), Tok: t}
	case token.FloatLiteral:
		p.ts.Consume()
		return &ast.FloatLiteral{Value: t.Text(), Tok: t}
	case token.StringLiteral:
		p.ts.Consume()
		return &ast.StringLiteral{Value: t.Text(), Tok: t}
	case token.KwTrue:
		p.ts.Consume()
		return &ast.BoolLiteral{Value: true, Tok: t}
	case token.KwFalse:
		p.ts.Consume()
		return &ast.BoolLiteral{Value: false, Tok: t}
	case token.KwNull:
		p.ts.Consume()
		return &ast.NullLiteral{Tok: t}
	case token.KwThis:
		p.ts.Consume()
		return &ast.ThisExpr{Tok: t}
	case token.KwNew:
		return p.parseNew()
	case token.LParen:
		p.ts.Consume()
		inner := p.parseExpression()
		end, _ := p.expect(token.RParen)
		return &ast.ParenExpr{Inner: inner, StartTok: t, EndTok: end}
	case token.LBrace:
		return p.parseBraceInit()
	case token.LBracket:
		return p.parseArrayLiteral()
	case token.Identifier:
		return &ast.IdentExpr{Name: p.parseIdent()}
	default:
		if !p.recovery {
			p.sink.Errorf(diag.Syntactic, diag.CodeUnexpectedToken, t.Span,
				"unexpected token %s, expected an expression", t.Kind)
		}
		p.recover()
		return &ast.IdentExpr{Name: &ast.Ident{Tok: t}}
	}
}

func (p *Parser) parseNew() ast.Expr {
	start, _ := p.expect(token.KwNew)
	typ := p.parseIdent()
	p.expect(token.LParen)
	var args []ast.Expr
	if !p.at(token.RParen) {
		args = append(args, p.parseExpression())
		for p.at(token.Comma) {
			p.ts.Consume()
			args = append(args, p.parseExpression())
		}
	}
	end, _ := p.expect(token.RParen)
	return &ast.NewExpr{Type: typ, Args: args, StartTok: start, EndTok: end}
}

func (p *Parser) parseBraceInit() ast.Expr {
	pop := p.follow.push(token.RBrace)
	defer pop()

	start, _ := p.expect(token.LBrace)
	b := &ast.BraceInitExpr{StartTok: start}
	if !p.at(token.RBrace) {
		b.Fields = append(b.Fields, p.parseFieldInit())
		for p.at(token.Comma) {
			p.ts.Consume()
			b.Fields = append(b.Fields, p.parseFieldInit())
		}
	}
	end, _ := p.expect(token.RBrace)
	b.EndTok = end
	return b
}

func (p *Parser) parseFieldInit() *ast.FieldInit {
	name := p.parseIdent()
	p.expect(token.Colon)
	return &ast.FieldInit{Name: name, Value: p.parseExpression()}
}

func (p *Parser) parseArrayLiteral() ast.Expr {
	pop := p.follow.push(token.RBracket)
	defer pop()

	start, _ := p.expect(token.LBracket)
	a := &ast.ArrayLiteralExpr{StartTok: start}
	if !p.at(token.RBracket) {
		a.Elements = append(a.Elements, p.parseExpression())
		for p.at(token.Comma) {
			p.ts.Consume()
			a.Elements = append(a.Elements, p.parseExpression())
		}
	}
	end, _ := p.expect(token.RBracket)
	a.EndTok = end
	return a
}
