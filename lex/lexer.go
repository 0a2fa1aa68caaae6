// Package lex implements the hand-written lexer described in spec.md §4.1:
// a character stream to token stream transform that injects synthetic
// layout tokens (INDENTATION, DEDENTATION, NEWLINE) from an indentation
// stack and an enclosure counter, recognizes multi-character operators by
// maximal munch, and never aborts on a malformed literal or escape.
package lex

import (
	"github.com/dekarrin/kushc/diag"
	"github.com/dekarrin/kushc/token"
)

// operator and punctuation literals, longest first so maximal-munch picks
// the first one whose bytes match at the current position.
var opTable = []struct {
	lexeme string
	kind   token.Kind
}{
	{">>>=", token.UShrAssign},
	{">>>", token.UShr},
	{"<<=", token.ShlAssign},
	{">>=", token.ShrAssign},
	{"...", token.Ellipsis},
	{"==", token.Eq},
	{"!=", token.Ne},
	{"<=", token.Le},
	{">=", token.Ge},
	{"&&", token.AndAnd},
	{"||", token.OrOr},
	{"++", token.Inc},
	{"--", token.Dec},
	{"+=", token.PlusAssign},
	{"-=", token.MinusAssign},
	{"*=", token.StarAssign},
	{"/=", token.SlashAssign},
	{"%=", token.PercentAssign},
	{"&=", token.AmpAssign},
	{"|=", token.PipeAssign},
	{"^=", token.CaretAssign},
	{"->", token.Arrow},
	{"..", token.DotDot},
	{"<<", token.Shl},
	{">>", token.Shr},
	{"(", token.LParen},
	{")", token.RParen},
	{"[", token.LBracket},
	{"]", token.RBracket},
	{"{", token.LBrace},
	{"}", token.RBrace},
	{",", token.Comma},
	{".", token.Dot},
	{":", token.Colon},
	{";", token.Semicolon},
	{"#", token.Hash},
	{"?", token.Question},
	{"=", token.Assign},
	{"+", token.Plus},
	{"-", token.Minus},
	{"*", token.Star},
	{"/", token.Slash},
	{"%", token.Percent},
	{"<", token.Lt},
	{">", token.Gt},
	{"!", token.Not},
	{"&", token.Amp},
	{"|", token.Pipe},
	{"^", token.Caret},
	{"~", token.Tilde},
}

var basicEscapes = map[byte]bool{
	'b': true, 'f': true, 'n': true, 'r': true, 't': true,
	'\\': true, '"': true, '\'': true,
}

func isDecDigit(b byte) bool  { return b >= '0' && b <= '9' }
func isBinDigit(b byte) bool  { return b == '0' || b == '1' }
func isOctDigit(b byte) bool  { return b >= '0' && b <= '7' }
func isHexDigit(b byte) bool {
	return isDecDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
func isIdentStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
func isIdentPart(b byte) bool {
	return isIdentStart(b) || isDecDigit(b) || b == '_'
}

// Lexer drives a single pass over a byte-oriented source buffer, producing
// tokens lazily through Next.
type Lexer struct {
	src  []byte
	file token.FileID
	sink *diag.Sink

	pos  int
	line int
	col  int

	indentStack  []int
	enclosureDepth int
	atLineStart  bool

	queue       []token.Token
	eofEmitted  bool
}

// New returns a Lexer over src, attributing every token to file and
// reporting diagnostics into sink.
func New(src []byte, file token.FileID, sink *diag.Sink) *Lexer {
	return &Lexer{
		src:         src,
		file:        file,
		sink:        sink,
		line:        1,
		col:         1,
		atLineStart: true,
	}
}

// Next returns the next token in the stream, pulling from the internal
// ready-queue or driving the scanning loop to produce more. Callers that
// want only default-channel tokens should go through stream.TokenStream,
// which filters hidden-channel tokens; Next returns every token, hidden or
// not.
func (l *Lexer) Next() token.Token {
	if len(l.queue) == 0 {
		l.fill()
	}
	t := l.queue[0]
	l.queue = l.queue[1:]
	return t
}

func (l *Lexer) peek(k int) byte {
	if l.pos+k >= len(l.src) {
		return 0
	}
	return l.src[l.pos+k]
}

func (l *Lexer) cur() byte { return l.peek(0) }

func (l *Lexer) atEOF() bool { return l.pos >= len(l.src) }

// advance consumes one byte, updating line/col, and returns it.
func (l *Lexer) advance() byte {
	b := l.src[l.pos]
	l.pos++
	if b == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return b
}

func (l *Lexer) mark() (pos, line, col int) {
	return l.pos, l.line, l.col
}

func (l *Lexer) span(startPos, startLine, startCol int) token.Span {
	return token.Span{
		File:      l.file,
		Start:     startPos,
		End:       l.pos,
		StartLine: startLine,
		StartCol:  startCol,
		EndLine:   l.line,
		EndCol:    l.col,
	}
}

func (l *Lexer) emit(kind token.Kind, lexeme []byte, channel token.Channel, sp token.Span) {
	l.queue = append(l.queue, token.Token{Kind: kind, Lexeme: lexeme, Channel: channel, Span: sp})
}

func (l *Lexer) emitSynthetic(kind token.Kind) {
	p, ln, c := l.mark()
	l.emit(kind, nil, token.Default, l.span(p, ln, c))
}

// fill drives the scanning loop until at least one token is ready in the
// queue.
func (l *Lexer) fill() {
	for len(l.queue) == 0 {
		if l.atEOF() {
			l.handleEOF()
			return
		}
		if l.atLineStart && l.enclosureDepth == 0 {
			if l.handleLineStart() {
				continue
			}
		}
		l.scanToken()
	}
}

func (l *Lexer) handleEOF() {
	if l.eofEmitted {
		l.emitSynthetic(token.EndOfStream)
		return
	}
	if len(l.indentStack) > 0 {
		l.emitSynthetic(token.Newline)
		for len(l.indentStack) > 0 {
			l.indentStack = l.indentStack[:len(l.indentStack)-1]
			l.emitSynthetic(token.Dedentation)
		}
	}
	l.emitSynthetic(token.EndOfStream)
	l.eofEmitted = true
}

// handleLineStart counts leading spaces, skips over interleaved comments,
// and either runs the indentation comparison (returning false so the caller
// falls through to tokenize real content) or determines the line is blank
// and consumes it itself (returning true so fill loops again).
func (l *Lexer) handleLineStart() bool {
	wsPos, wsLine, wsCol := l.mark()
	width := 0
	for l.cur() == ' ' {
		l.advance()
		width++
	}
	if width > 0 {
		l.emit(token.Whitespace, l.src[wsPos:l.pos], token.Hidden, l.span(wsPos, wsLine, wsCol))
	}

	// skip any run of comments (and the whitespace around them) before
	// deciding whether this line has real content.
	for {
		if l.cur() == ' ' || l.cur() == '\t' {
			l.scanWhitespace()
			continue
		}
		if l.cur() == '/' && l.peek(1) == '/' {
			l.scanLineComment()
			continue
		}
		if l.cur() == '/' && l.peek(1) == '*' {
			l.scanBlockComment()
			continue
		}
		break
	}

	if l.atEOF() || l.cur() == '\n' {
		// blank or comment-only line: no layout tokens, consume the
		// terminator (if any) without emitting NEWLINE.
		if !l.atEOF() {
			l.advance() // consume '\n'
		}
		l.atLineStart = true
		return true
	}

	l.applyIndent(width)
	l.atLineStart = false
	return false
}

func (l *Lexer) applyIndent(width int) {
	top := 0
	if len(l.indentStack) > 0 {
		top = l.indentStack[len(l.indentStack)-1]
	}
	if width == top {
		return
	}
	if width > top {
		l.indentStack = append(l.indentStack, width)
		l.emitSynthetic(token.Indentation)
		return
	}
	for len(l.indentStack) > 0 && l.indentStack[len(l.indentStack)-1] > width {
		l.indentStack = l.indentStack[:len(l.indentStack)-1]
		l.emitSynthetic(token.Dedentation)
	}
	newTop := 0
	if len(l.indentStack) > 0 {
		newTop = l.indentStack[len(l.indentStack)-1]
	}
	if newTop != width {
		p, ln, c := l.mark()
		l.sink.Errorf(diag.Lexical, diag.CodeInconsistentIndentation, l.span(p, ln, c),
			"unindent does not match any outer indentation level")
		l.indentStack = append(l.indentStack, width)
	}
}

// scanToken recognizes exactly one token starting at the current position,
// assuming we are not at end of stream and not deciding layout.
func (l *Lexer) scanToken() {
	ch := l.cur()

	switch {
	case ch == ' ' || ch == '\t':
		l.scanWhitespace()
	case ch == '\n':
		l.scanNewline()
	case ch == '/' && l.peek(1) == '/':
		l.scanLineComment()
	case ch == '/' && l.peek(1) == '*':
		l.scanBlockComment()
	case isIdentStart(ch):
		l.scanIdentifier()
	case isDecDigit(ch):
		l.scanNumber()
	case ch == '"' || ch == '\'':
		l.scanString(ch)
	default:
		if !l.scanOperator() {
			l.scanUnknown()
		}
	}
}

func (l *Lexer) scanWhitespace() {
	p, ln, c := l.mark()
	for l.cur() == ' ' || l.cur() == '\t' {
		l.advance()
	}
	sp := l.span(p, ln, c)
	l.emit(token.Whitespace, l.src[p:l.pos], token.Hidden, sp)
}

func (l *Lexer) scanNewline() {
	p, ln, c := l.mark()
	l.advance() // consume '\n'
	sp := l.span(p, ln, c)
	if l.enclosureDepth > 0 {
		// suppressed inside any enclosure; keep the byte accounted for on
		// the hidden channel.
		l.emit(token.Whitespace, l.src[p:l.pos], token.Hidden, sp)
		return
	}
	l.emit(token.Newline, l.src[p:l.pos], token.Default, sp)
	l.atLineStart = true
}

func (l *Lexer) scanLineComment() {
	p, ln, c := l.mark()
	l.advance() // '/'
	l.advance() // '/'
	for !l.atEOF() && l.cur() != '\n' {
		l.advance()
	}
	sp := l.span(p, ln, c)
	l.emit(token.LineComment, l.src[p:l.pos], token.Hidden, sp)
}

func (l *Lexer) scanBlockComment() {
	p, ln, c := l.mark()
	l.advance() // '/'
	l.advance() // '*'
	closed := false
	for !l.atEOF() {
		if l.cur() == '*' && l.peek(1) == '/' {
			l.advance()
			l.advance()
			closed = true
			break
		}
		l.advance()
	}
	sp := l.span(p, ln, c)
	if !closed {
		l.sink.Errorf(diag.Lexical, diag.CodeUnterminatedBlockComment, sp, "unterminated block comment")
	}
	l.emit(token.BlockComment, l.src[p:l.pos], token.Hidden, sp)
}

func (l *Lexer) scanIdentifier() {
	p, ln, c := l.mark()
	for isIdentPart(l.cur()) {
		l.advance()
	}
	lexeme := l.src[p:l.pos]
	kind := classifyIdentifier(string(lexeme))
	l.emit(kind, lexeme, token.Default, l.span(p, ln, c))
}

func (l *Lexer) scanNumber() {
	p, ln, c := l.mark()

	var digitPred func(byte) bool
	radixLetter := byte(0)
	if l.cur() == '0' && (l.peek(1) == 'b' || l.peek(1) == 'B') {
		radixLetter = l.peek(1)
		digitPred = isBinDigit
	} else if l.cur() == '0' && (l.peek(1) == 'x' || l.peek(1) == 'X') {
		radixLetter = l.peek(1)
		digitPred = isHexDigit
	} else if l.cur() == '0' && (l.peek(1) == 'c' || l.peek(1) == 'C') {
		radixLetter = l.peek(1)
		digitPred = isOctDigit
	} else {
		digitPred = isDecDigit
	}

	if radixLetter != 0 {
		l.advance() // '0'
		l.advance() // radix letter
	}

	sawDigit := false
	trailingUnderscore := false
	for {
		if digitPred(l.cur()) {
			l.advance()
			sawDigit = true
			trailingUnderscore = false
		} else if l.cur() == '_' && sawDigit {
			l.advance()
			trailingUnderscore = true
		} else {
			break
		}
	}

	kind := token.IntegerLiteral

	if radixLetter != 0 && !sawDigit {
		sp := l.span(p, ln, c)
		l.sink.Errorf(diag.Lexical, diag.CodeExpectedDigitAfterUnderscore, sp,
			"expected at least one digit after '0%c'", radixLetter)
	}

	// decimal floating point: digits '.' digits, only in plain decimal mode.
	if radixLetter == 0 && l.cur() == '.' && isDecDigit(l.peek(1)) {
		l.advance() // '.'
		for isDecDigit(l.cur()) || l.cur() == '_' {
			l.advance()
		}
		kind = token.FloatLiteral
	}

	if trailingUnderscore {
		sp := l.span(p, ln, c)
		l.sink.Errorf(diag.Lexical, diag.CodeExpectedDigitAfterUnderscore, sp,
			"expected a digit after '_' in numeric literal")
	}

	if isIdentStart(l.cur()) {
		sp := l.span(p, ln, c)
		l.sink.Errorf(diag.Lexical, diag.CodeInvalidIntegerLiteralPrefix, sp,
			"invalid character immediately following numeric literal")
		for isIdentPart(l.cur()) {
			l.advance()
		}
	}

	lexeme := l.src[p:l.pos]
	l.emit(kind, lexeme, token.Default, l.span(p, ln, c))
}

func (l *Lexer) scanString(quote byte) {
	p, ln, c := l.mark()
	l.advance() // opening quote

	unterminated := false
	for {
		if l.atEOF() || l.cur() == '\n' {
			unterminated = true
			break
		}
		if l.cur() == quote {
			l.advance()
			break
		}
		if l.cur() == '\\' {
			l.scanEscape()
			continue
		}
		l.advance()
	}

	sp := l.span(p, ln, c)
	if unterminated {
		l.sink.Errorf(diag.Lexical, diag.CodeUnterminatedStringLiteral, sp,
			"unterminated string literal; missing a closing quote")
	}
	l.emit(token.StringLiteral, l.src[p:l.pos], token.Default, sp)
}

// scanEscape consumes a backslash escape sequence inside a string literal,
// reporting a diagnostic for malformed forms but always consuming at least
// the backslash so the outer loop makes progress.
func (l *Lexer) scanEscape() {
	p, ln, c := l.mark()
	l.advance() // '\\'

	if l.atEOF() || l.cur() == '\n' {
		return // unterminated string will be reported by the caller
	}

	if l.cur() == 'u' {
		l.advance()
		ok := true
		for i := 0; i < 4; i++ {
			if !isHexDigit(l.cur()) {
				ok = false
				break
			}
			l.advance()
		}
		if !ok {
			sp := l.span(p, ln, c)
			l.sink.Errorf(diag.Lexical, diag.CodeMalformedUnicodeCharacterSequence, sp,
				"malformed \\u unicode escape sequence")
		}
		return
	}

	if basicEscapes[l.cur()] {
		l.advance()
		return
	}

	sp := l.span(p, ln, c)
	l.sink.Errorf(diag.Lexical, diag.CodeInvalidEscapeSequence, sp,
		"invalid escape sequence '\\%c'", l.cur())
	l.advance()
}

// scanOperator attempts a maximal-munch match against opTable, returning
// false if none apply so the caller can fall back to the unknown-character
// path.
func (l *Lexer) scanOperator() bool {
	for _, op := range opTable {
		if l.startsWith(op.lexeme) {
			p, ln, c := l.mark()
			for range op.lexeme {
				l.advance()
			}
			sp := l.span(p, ln, c)
			l.emit(op.kind, l.src[p:l.pos], token.Default, sp)
			switch op.kind {
			case token.LParen, token.LBracket, token.LBrace:
				l.enclosureDepth++
			case token.RParen, token.RBracket, token.RBrace:
				if l.enclosureDepth > 0 {
					l.enclosureDepth--
				}
			}
			return true
		}
	}
	return false
}

func (l *Lexer) startsWith(s string) bool {
	if l.pos+len(s) > len(l.src) {
		return false
	}
	for i := 0; i < len(s); i++ {
		if l.src[l.pos+i] != s[i] {
			return false
		}
	}
	return true
}

func (l *Lexer) scanUnknown() {
	p, ln, c := l.mark()
	l.advance()
	sp := l.span(p, ln, c)
	l.sink.Errorf(diag.Lexical, diag.CodeUnknownCharacter, sp, "unknown character %q", l.src[p:l.pos])
	l.emit(token.Unknown, l.src[p:l.pos], token.Default, sp)
}
