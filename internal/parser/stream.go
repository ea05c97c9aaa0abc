package parser

import "github.com/cwbudde/minijavac/internal/token"

// TokenStream wraps a token slice with a cursor, transparently skipping
// WHITESPACE tokens on Peek/Read (spec.md §4.1). Speculative lookahead uses
// Save/Restore; the parser never re-derives a token it already consumed
// except by restoring to an earlier bookmark.
type TokenStream struct {
	tokens    []token.Token
	pos       int
	bookmarks []int
}

// NewTokenStream creates a stream over an already-lexed token slice.
func NewTokenStream(tokens []token.Token) *TokenStream {
	return &TokenStream{tokens: tokens}
}

// skipWhitespace advances pos past any WHITESPACE tokens.
func (s *TokenStream) skipWhitespace() {
	for s.pos < len(s.tokens) && s.tokens[s.pos].Kind == token.WHITESPACE {
		s.pos++
	}
}

// Peek returns the next non-whitespace token without advancing, and true.
// Returns (zero, false) at end of stream.
func (s *TokenStream) Peek() (token.Token, bool) {
	s.skipWhitespace()
	if s.pos >= len(s.tokens) {
		return token.Token{}, false
	}
	return s.tokens[s.pos], true
}

// Read returns and consumes the next non-whitespace token.
func (s *TokenStream) Read() (token.Token, bool) {
	s.skipWhitespace()
	if s.pos >= len(s.tokens) {
		return token.Token{}, false
	}
	tok := s.tokens[s.pos]
	s.pos++
	return tok, true
}

// Unread moves the cursor back one raw position (inverse of the last
// Read/skip step). Used sparingly — prefer Save/Restore for anything but a
// single-token pushback.
func (s *TokenStream) Unread() {
	if s.pos > 0 {
		s.pos--
	}
}

// Save pushes a bookmark at the current cursor position.
func (s *TokenStream) Save() {
	s.bookmarks = append(s.bookmarks, s.pos)
}

// Restore pops the most recent bookmark and resets the cursor to it. A
// Restore with no matching Save is a no-op.
func (s *TokenStream) Restore() {
	if n := len(s.bookmarks); n > 0 {
		s.pos = s.bookmarks[n-1]
		s.bookmarks = s.bookmarks[:n-1]
	}
}

// Commit discards the most recent bookmark without restoring to it — used
// once a speculative lookahead has been confirmed and need not be undone.
func (s *TokenStream) Commit() {
	if n := len(s.bookmarks); n > 0 {
		s.bookmarks = s.bookmarks[:n-1]
	}
}

// ReadUntil advances until a token with the given lexeme is consumed,
// returning it and true. Returns (zero, false) if the stream runs out
// first.
func (s *TokenStream) ReadUntil(lexeme string) (token.Token, bool) {
	for {
		tok, ok := s.Read()
		if !ok {
			return token.Token{}, false
		}
		if tok.Lexeme == lexeme {
			return tok, true
		}
	}
}

// HasToken reports whether any non-whitespace token remains.
func (s *TokenStream) HasToken() bool {
	_, ok := s.Peek()
	return ok
}
