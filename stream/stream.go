// Package stream implements the buffered N-token lookahead view over a
// lexer described in spec.md §4.2: La/Lt peek ahead on the default channel,
// Consume advances past one default-channel token, and hidden-channel
// tokens (comments, whitespace) are filtered out transparently.
package stream

import "github.com/dekarrin/kushc/token"

// Lexer is the minimal surface TokenStream needs from lex.Lexer, kept as an
// interface so tests can drive the stream from a canned token list.
type Lexer interface {
	Next() token.Token
}

// TokenStream buffers default-channel tokens in a slice that grows to
// whatever lookahead depth the parser has requested so far; it is not a
// fixed-size ring. Filling is lazy: tokens are only pulled from the
// underlying Lexer when a deeper La/Lt call requires it.
type TokenStream struct {
	lexer Lexer
	buf   []token.Token
	eof   token.Token
	hasEOF bool
}

// New wraps lexer in a TokenStream.
func New(lexer Lexer) *TokenStream {
	return &TokenStream{lexer: lexer}
}

// fillTo ensures the buffer holds at least n default-channel tokens,
// pulling and discarding hidden-channel tokens from the underlying lexer as
// needed.
func (ts *TokenStream) fillTo(n int) {
	for len(ts.buf) < n {
		if ts.hasEOF {
			// stream exhausted; pad with repeated END_OF_STREAM tokens so
			// La/Lt never index out of range.
			ts.buf = append(ts.buf, ts.eof)
			continue
		}
		t := ts.lexer.Next()
		if t.Channel == token.Hidden {
			continue
		}
		if t.Kind == token.EndOfStream {
			ts.hasEOF = true
			ts.eof = t
		}
		ts.buf = append(ts.buf, t)
	}
}

// La returns the kind of the k-th default-channel token ahead, 1-indexed
// (La(1) is the next token to be consumed).
func (ts *TokenStream) La(k int) token.Kind {
	return ts.Lt(k).Kind
}

// Lt returns the k-th default-channel token ahead, 1-indexed.
func (ts *TokenStream) Lt(k int) token.Token {
	ts.fillTo(k)
	return ts.buf[k-1]
}

// Consume advances past one default-channel token and returns it. Consuming
// past END_OF_STREAM is prohibited in the sense that it has no further
// effect: once the stream is exhausted, every call keeps returning a fresh
// copy of the END_OF_STREAM token rather than panicking.
func (ts *TokenStream) Consume() token.Token {
	ts.fillTo(1)
	t := ts.buf[0]
	ts.buf = ts.buf[1:]
	return t
}
