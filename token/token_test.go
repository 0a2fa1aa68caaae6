package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Kind_String(t *testing.T) {
	testCases := []struct {
		name   string
		kind   Kind
		expect string
	}{
		{name: "keyword", kind: KwIf, expect: "'if'"},
		{name: "identifier", kind: Identifier, expect: "identifier"},
		{name: "synthetic", kind: Indentation, expect: "INDENTATION"},
		{name: "unrecognized", kind: Kind(9001), expect: "Kind(9001)"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			assert.Equal(tc.expect, tc.kind.String())
		})
	}
}

func Test_Keywords_roundTrip(t *testing.T) {
	assert := assert.New(t)

	kw := Keywords()
	assert.Equal(KwWhile, kw["while"])
	assert.Equal(KwThis, kw["this"])
	_, ok := kw["notakeyword"]
	assert.False(ok)
}

func Test_Kind_IsType(t *testing.T) {
	testCases := []struct {
		name   string
		kind   Kind
		expect bool
	}{
		{name: "i32 is a type", kind: KwI32, expect: true},
		{name: "boolean is a type", kind: KwBoolean, expect: true},
		{name: "void is not a primitive type", kind: KwVoid, expect: false},
		{name: "identifier is not a primitive type", kind: Identifier, expect: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			assert.Equal(tc.expect, tc.kind.IsType())
		})
	}
}

func Test_Files_RegisterAndName(t *testing.T) {
	assert := assert.New(t)

	files := NewFiles()
	a := files.Register("a.kush")
	b := files.Register("b.kush")

	assert.NotEqual(a, b)
	assert.Equal("a.kush", files.Name(a))
	assert.Equal("b.kush", files.Name(b))
	assert.Equal("<unknown>", files.Name(FileID(99)))
}

func Test_Join(t *testing.T) {
	assert := assert.New(t)

	a := Span{Start: 5, End: 10, StartLine: 1, StartCol: 5, EndLine: 1, EndCol: 10}
	b := Span{Start: 10, End: 20, StartLine: 1, StartCol: 10, EndLine: 2, EndCol: 5}

	j := Join(a, b)
	assert.Equal(5, j.Start)
	assert.Equal(20, j.End)
	assert.Equal(1, j.StartLine)
	assert.Equal(2, j.EndLine)
}

func Test_Token_IsSynthetic(t *testing.T) {
	testCases := []struct {
		name   string
		kind   Kind
		expect bool
	}{
		{name: "newline is synthetic", kind: Newline, expect: true},
		{name: "end of stream is synthetic", kind: EndOfStream, expect: true},
		{name: "identifier is not synthetic", kind: Identifier, expect: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			tok := Token{Kind: tc.kind}
			assert.Equal(tc.expect, tok.IsSynthetic())
		})
	}
}

func Test_Token_Text(t *testing.T) {
	assert := assert.New(t)
	tok := Token{Kind: Identifier, Lexeme: []byte("hello")}
	assert.Equal("hello", tok.Text())
}
