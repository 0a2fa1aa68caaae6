// Package token defines the value types shared by every later stage of the
// KUSH front-end: the token kind enumeration, source file registry, source
// spans, and the Token itself.
package token

import "fmt"

// Channel selects whether a token participates in default parsing.
type Channel int

const (
	// Default is the channel consulted by the parser.
	Default Channel = iota

	// Hidden carries comments and whitespace; preserved for tooling but
	// invisible to la/lt.
	Hidden
)

func (c Channel) String() string {
	if c == Hidden {
		return "hidden"
	}
	return "default"
}

// Kind enumerates every token kind recognized by the lexer, including the
// synthetic layout tokens and end-of-stream marker.
type Kind int

const (
	Unknown Kind = iota

	// Layout (synthetic, default channel)
	Indentation
	Dedentation
	Newline
	EndOfStream

	// Hidden channel
	Whitespace
	LineComment
	BlockComment

	// Literals and names
	Identifier
	IntegerLiteral
	FloatLiteral
	StringLiteral

	// Keywords
	KwBoolean
	KwI8
	KwI16
	KwI32
	KwI64
	KwF32
	KwF64
	KwVoid
	KwVar
	KwLet
	KwIf
	KwElse
	KwWhile
	KwFor
	KwBreak
	KwContinue
	KwReturn
	KwThrow
	KwTry
	KwCatch
	KwFinally
	KwStruct
	KwNew
	KwNull
	KwTrue
	KwFalse
	KwThis
	KwImport
	KwWith

	// Punctuation
	LParen
	RParen
	LBracket
	RBracket
	LBrace
	RBrace
	Comma
	Dot
	DotDot
	Ellipsis
	Colon
	Semicolon
	Hash
	Question
	Arrow

	// Operators
	Assign
	Plus
	Minus
	Star
	Slash
	Percent
	PlusAssign
	MinusAssign
	StarAssign
	SlashAssign
	PercentAssign
	Inc
	Dec

	Eq
	Ne
	Lt
	Gt
	Le
	Ge

	AndAnd
	OrOr
	Not

	Amp
	Pipe
	Caret
	Tilde
	Shl
	Shr
	UShr
	AmpAssign
	PipeAssign
	CaretAssign
	ShlAssign
	ShrAssign
	UShrAssign
)

var kindNames = map[Kind]string{
	Unknown:        "unknown",
	Indentation:    "INDENTATION",
	Dedentation:    "DEDENTATION",
	Newline:        "NEWLINE",
	EndOfStream:    "END_OF_STREAM",
	Whitespace:     "whitespace",
	LineComment:    "line comment",
	BlockComment:   "block comment",
	Identifier:     "identifier",
	IntegerLiteral: "integer literal",
	FloatLiteral:   "floating-point literal",
	StringLiteral:  "string literal",
	KwBoolean:      "'boolean'",
	KwI8:           "'i8'",
	KwI16:          "'i16'",
	KwI32:          "'i32'",
	KwI64:          "'i64'",
	KwF32:          "'f32'",
	KwF64:          "'f64'",
	KwVoid:         "'void'",
	KwVar:          "'var'",
	KwLet:          "'let'",
	KwIf:           "'if'",
	KwElse:         "'else'",
	KwWhile:        "'while'",
	KwFor:          "'for'",
	KwBreak:        "'break'",
	KwContinue:     "'continue'",
	KwReturn:       "'return'",
	KwThrow:        "'throw'",
	KwTry:          "'try'",
	KwCatch:        "'catch'",
	KwFinally:      "'finally'",
	KwStruct:       "'struct'",
	KwNew:          "'new'",
	KwNull:         "'null'",
	KwTrue:         "'true'",
	KwFalse:        "'false'",
	KwThis:         "'this'",
	KwImport:       "'import'",
	KwWith:         "'with'",
	LParen:         "'('",
	RParen:         "')'",
	LBracket:       "'['",
	RBracket:       "']'",
	LBrace:         "'{'",
	RBrace:         "'}'",
	Comma:          "','",
	Dot:            "'.'",
	DotDot:         "'..'",
	Ellipsis:       "'...'",
	Colon:          "':'",
	Semicolon:      "';'",
	Hash:           "'#'",
	Question:       "'?'",
	Arrow:          "'->'",
	Assign:         "'='",
	Plus:           "'+'",
	Minus:          "'-'",
	Star:           "'*'",
	Slash:          "'/'",
	Percent:        "'%'",
	PlusAssign:     "'+='",
	MinusAssign:    "'-='",
	StarAssign:     "'*='",
	SlashAssign:    "'/='",
	PercentAssign:  "'%='",
	Inc:            "'++'",
	Dec:            "'--'",
	Eq:             "'=='",
	Ne:             "'!='",
	Lt:             "'<'",
	Gt:             "'>'",
	Le:             "'<='",
	Ge:             "'>='",
	AndAnd:         "'&&'",
	OrOr:           "'||'",
	Not:            "'!'",
	Amp:            "'&'",
	Pipe:           "'|'",
	Caret:          "'^'",
	Tilde:          "'~'",
	Shl:            "'<<'",
	Shr:            "'>>'",
	UShr:           "'>>>'",
	AmpAssign:      "'&='",
	PipeAssign:     "'|='",
	CaretAssign:    "'^='",
	ShlAssign:      "'<<='",
	ShrAssign:      "'>>='",
	UShrAssign:     "'>>>='",
}

// String returns a human-readable name for the kind, used in diagnostic
// rendering ("expected X but found Y").
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// keywords maps the exact lexeme of a keyword to its Kind. classifyIdentifier
// in the lex package indexes into a derived table built from this map; it is
// kept here so the mapping has one source of truth.
var keywords = map[string]Kind{
	"boolean":  KwBoolean,
	"i8":       KwI8,
	"i16":      KwI16,
	"i32":      KwI32,
	"i64":      KwI64,
	"f32":      KwF32,
	"f64":      KwF64,
	"void":     KwVoid,
	"var":      KwVar,
	"let":      KwLet,
	"if":       KwIf,
	"else":     KwElse,
	"while":    KwWhile,
	"for":      KwFor,
	"break":    KwBreak,
	"continue": KwContinue,
	"return":   KwReturn,
	"throw":    KwThrow,
	"try":      KwTry,
	"catch":    KwCatch,
	"finally":  KwFinally,
	"struct":   KwStruct,
	"new":      KwNew,
	"null":     KwNull,
	"true":     KwTrue,
	"false":    KwFalse,
	"this":     KwThis,
	"import":   KwImport,
	"with":     KwWith,
}

// Keywords returns the full set of reserved words mapped to their Kind.
// lex.classifyIdentifier builds its first-letter/length indexed dispatch
// table from this.
func Keywords() map[string]Kind {
	return keywords
}

// IsType reports whether k is one of the primitive type keywords accepted by
// the type grammar rule (boolean, i8..i64, f32, f64); identifiers and void
// are handled separately by the caller.
func (k Kind) IsType() bool {
	switch k {
	case KwBoolean, KwI8, KwI16, KwI32, KwI64, KwF32, KwF64:
		return true
	}
	return false
}

// FileID is an opaque identifier for a source file, attached to every token
// so diagnostics can be rendered against the right file without tokens
// owning a string path each.
type FileID int

// Files is a process-wide registry mapping FileID to file path. It exists so
// Token stays a small value type: a Token carries a FileID, and rendering a
// diagnostic resolves the path only when needed.
type Files struct {
	names []string
}

// NewFiles returns an empty file registry.
func NewFiles() *Files {
	return &Files{}
}

// Register assigns a new FileID to path and returns it. Calling Register
// twice with the same path yields two distinct FileIDs; callers that want
// deduplication must track that themselves.
func (f *Files) Register(path string) FileID {
	f.names = append(f.names, path)
	return FileID(len(f.names) - 1)
}

// Name returns the path registered under id, or "<unknown>" if id was never
// registered.
func (f *Files) Name(id FileID) string {
	if int(id) < 0 || int(id) >= len(f.names) {
		return "<unknown>"
	}
	return f.names[id]
}

// Span is an inclusive line/column, half-open byte range within one file.
type Span struct {
	File             FileID
	Start, End       int // byte offsets, half-open [Start, End)
	StartLine, EndLine int
	StartCol, EndCol   int
}

// Join returns the smallest Span covering both a and b. Used to compute an
// AST node's span from its first and last spanned tokens.
func Join(a, b Span) Span {
	j := a
	if b.End > j.End {
		j.End = b.End
		j.EndLine = b.EndLine
		j.EndCol = b.EndCol
	}
	if b.Start < j.Start {
		j.Start = b.Start
		j.StartLine = b.StartLine
		j.StartCol = b.StartCol
	}
	return j
}

// Token is an immutable value produced by the lexer. Tokens are owned by the
// token stream and may be freely shared among AST nodes once parsed.
type Token struct {
	Kind    Kind
	Lexeme  []byte
	Channel Channel
	Span    Span
}

// Text returns the lexeme as a string. Synthetic tokens (Indentation,
// Dedentation, Newline, EndOfStream) may carry an empty lexeme.
func (t Token) Text() string {
	return string(t.Lexeme)
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q @%d:%d", t.Kind, t.Text(), t.Span.StartLine, t.Span.StartCol)
}

// IsSynthetic reports whether the token was injected by the layout
// algorithm rather than recognized from source bytes.
func (t Token) IsSynthetic() bool {
	switch t.Kind {
	case Indentation, Dedentation, Newline, EndOfStream:
		return true
	}
	return false
}
