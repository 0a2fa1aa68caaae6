package lex

import (
	"testing"

	"github.com/dekarrin/kushc/diag"
	"github.com/dekarrin/kushc/token"
	"github.com/stretchr/testify/assert"
)

// collect drains a lexer to END_OF_STREAM, inclusive.
func collect(src string) []token.Token {
	sink := diag.NewSink()
	l := New([]byte(src), 0, sink)
	var toks []token.Token
	for {
		t := l.Next()
		toks = append(toks, t)
		if t.Kind == token.EndOfStream {
			return toks
		}
	}
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func defaultChannelKinds(toks []token.Token) []token.Kind {
	var out []token.Kind
	for _, t := range toks {
		if t.Channel == token.Default {
			out = append(out, t.Kind)
		}
	}
	return out
}

func Test_Lexer_tokenKindSequence(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect []token.Kind
	}{
		{name: "empty", input: "", expect: []token.Kind{token.EndOfStream}},
		{name: "identifier", input: "foo", expect: []token.Kind{token.Identifier, token.EndOfStream}},
		{name: "keyword", input: "while", expect: []token.Kind{token.KwWhile, token.EndOfStream}},
		{name: "decimal int", input: "123", expect: []token.Kind{token.IntegerLiteral, token.EndOfStream}},
		{name: "hex int", input: "0xFF", expect: []token.Kind{token.IntegerLiteral, token.EndOfStream}},
		{name: "binary int", input: "0b101", expect: []token.Kind{token.IntegerLiteral, token.EndOfStream}},
		{name: "octal int (c prefix)", input: "0c17", expect: []token.Kind{token.IntegerLiteral, token.EndOfStream}},
		{name: "float", input: "3.14", expect: []token.Kind{token.FloatLiteral, token.EndOfStream}},
		{name: "string literal", input: `"hi"`, expect: []token.Kind{token.StringLiteral, token.EndOfStream}},
		{name: "maximal munch shift-assign", input: ">>>=", expect: []token.Kind{token.UShrAssign, token.EndOfStream}},
		{name: "maximal munch over short prefix", input: "..", expect: []token.Kind{token.DotDot, token.EndOfStream}},
		{name: "ellipsis beats dotdot", input: "...", expect: []token.Kind{token.Ellipsis, token.EndOfStream}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			toks := defaultChannelKinds(collect(tc.input))
			assert.Equal(tc.expect, toks)
		})
	}
}

func Test_Lexer_tokenSpanRoundTrip(t *testing.T) {
	assert := assert.New(t)

	src := "i32 x = 42;"
	toks := collect(src)
	for _, tok := range toks {
		if tok.IsSynthetic() {
			continue
		}
		assert.Equal(string(tok.Lexeme), src[tok.Span.Start:tok.Span.End],
			"lexeme for %s should match source bytes", tok.Kind)
	}
}

func Test_Lexer_hiddenChannelNeverOnDefault(t *testing.T) {
	assert := assert.New(t)

	toks := collect("x   // a comment\ny")
	for _, tok := range toks {
		if tok.Kind == token.LineComment || tok.Kind == token.Whitespace {
			assert.Equal(token.Hidden, tok.Channel)
		}
	}
}

func Test_Lexer_indentationBalance(t *testing.T) {
	assert := assert.New(t)

	src := "if x {\n  y;\n  if z {\n    w;\n  }\n}\n"
	toks := collect(src)

	indents, dedents := 0, 0
	for _, tok := range toks {
		switch tok.Kind {
		case token.Indentation:
			indents++
		case token.Dedentation:
			dedents++
		}
	}
	// this source never opens column-based indentation (it's brace
	// delimited), so both counts should simply agree with each other.
	assert.Equal(indents, dedents)
}

func Test_Lexer_enclosureSuppressesLayout(t *testing.T) {
	assert := assert.New(t)

	toks := collect("f(1,\n2,\n3)")
	for _, tok := range toks {
		if tok.Channel != token.Default {
			continue
		}
		assert.NotEqual(token.Newline, tok.Kind)
		assert.NotEqual(token.Indentation, tok.Kind)
		assert.NotEqual(token.Dedentation, tok.Kind)
	}
}

func Test_Lexer_unterminatedStringReportsDiagnostic(t *testing.T) {
	assert := assert.New(t)

	sink := diag.NewSink()
	l := New([]byte(`"unterminated`), 0, sink)
	for {
		tok := l.Next()
		if tok.Kind == token.EndOfStream {
			break
		}
	}
	assert.True(sink.HasErrors())
	assert.Equal(diag.CodeUnterminatedStringLiteral, sink.All()[0].Code)
}

func Test_Lexer_trailingUnderscoreInNumber(t *testing.T) {
	assert := assert.New(t)

	sink := diag.NewSink()
	l := New([]byte("1_"), 0, sink)
	for {
		tok := l.Next()
		if tok.Kind == token.EndOfStream {
			break
		}
	}
	assert.True(sink.HasErrors())
	assert.Equal(diag.CodeExpectedDigitAfterUnderscore, sink.All()[0].Code)
}

func Test_Lexer_bareRadixPrefixReportsDiagnostic(t *testing.T) {
	assert := assert.New(t)

	sink := diag.NewSink()
	l := New([]byte("0x;"), 0, sink)
	for {
		tok := l.Next()
		if tok.Kind == token.EndOfStream {
			break
		}
	}
	assert.True(sink.HasErrors())
	assert.Equal(diag.CodeExpectedDigitAfterUnderscore, sink.All()[0].Code)
}

func Test_Lexer_unknownCharacter(t *testing.T) {
	assert := assert.New(t)

	sink := diag.NewSink()
	l := New([]byte("$"), 0, sink)
	tok := l.Next()
	assert.Equal(token.Unknown, tok.Kind)
	assert.True(sink.HasErrors())
	assert.Equal(diag.CodeUnknownCharacter, sink.All()[0].Code)
}

func Test_Lexer_repeatedEndOfStream(t *testing.T) {
	assert := assert.New(t)

	sink := diag.NewSink()
	l := New([]byte("x"), 0, sink)
	l.Next() // identifier
	first := l.Next()
	second := l.Next()
	assert.Equal(token.EndOfStream, first.Kind)
	assert.Equal(token.EndOfStream, second.Kind)
}
