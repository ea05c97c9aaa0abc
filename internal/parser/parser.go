// Package parser implements the hand-written recursive-descent parser with
// precedence climbing described in spec.md §4.2. It consumes a token
// stream produced by an external lexer (out of scope here) and builds a
// typed ast.Project.
package parser

import (
	"github.com/cwbudde/minijavac/internal/ast"
	"github.com/cwbudde/minijavac/internal/cerr"
	"github.com/cwbudde/minijavac/internal/token"
)

// Parser drives TokenStream to build an ast.Project. Every syntactic error
// aborts parsing immediately (spec.md §4.2 "Failure semantics") by
// returning a *cerr.Diagnostic from the method that detected it.
type Parser struct {
	s *TokenStream
}

// New creates a parser over an already-lexed token slice.
func New(tokens []token.Token) *Parser {
	return &Parser{s: NewTokenStream(tokens)}
}

// Parse runs the top-level loop: consume class declarations until
// read_until("class") fails (spec.md §4.2).
func (p *Parser) Parse() (*ast.Project, error) {
	project := ast.NewProject()

	for {
		if _, ok := p.s.ReadUntil(token.KwClass); !ok {
			break
		}
		class, err := p.parseClass()
		if err != nil {
			return nil, err
		}
		if !project.AddClass(class) {
			return nil, p.errorAt(class.NamePos, cerr.Declaration,
				"Class %s already exists", class.Name)
		}
	}

	return project, nil
}

// --- token helpers -----------------------------------------------------

// peek returns the next token without consuming it.
func (p *Parser) peek() (token.Token, bool) {
	return p.s.Peek()
}

// read consumes and returns the next token.
func (p *Parser) read() (token.Token, bool) {
	return p.s.Read()
}

// peekIs reports whether the next token has the given lexeme.
func (p *Parser) peekIs(lexeme string) bool {
	tok, ok := p.peek()
	return ok && tok.Lexeme == lexeme
}

// peekIsAny reports whether the next token's lexeme is one of lexemes.
func (p *Parser) peekIsAny(lexemes ...string) bool {
	tok, ok := p.peek()
	if !ok {
		return false
	}
	for _, lex := range lexemes {
		if tok.Lexeme == lex {
			return true
		}
	}
	return false
}

// expect consumes the next token and errors unless its lexeme matches want.
func (p *Parser) expect(want string) (token.Token, error) {
	tok, ok := p.read()
	if !ok {
		return token.Token{}, p.errorAtEOF(cerr.Syntax, "Expected %q", want)
	}
	if tok.Lexeme != want {
		return token.Token{}, p.errorAt(tok.Pos, cerr.Syntax,
			"Expected %q but found %q", want, tok.Lexeme)
	}
	return tok, nil
}

// expectIdentifier consumes the next token and errors unless it is an
// identifier (spec.md §6 kind IDENTIFIER).
func (p *Parser) expectIdentifier() (token.Token, error) {
	tok, ok := p.read()
	if !ok {
		return token.Token{}, p.errorAtEOF(cerr.Syntax, "Expected identifier")
	}
	if tok.Kind != token.IDENTIFIER {
		return token.Token{}, p.errorAt(tok.Pos, cerr.Syntax,
			"Expected identifier but found %q", tok.Lexeme)
	}
	return tok, nil
}

// errorAt builds a positioned syntax/declaration-category diagnostic
// naming the offending lexeme's location.
func (p *Parser) errorAt(pos token.Position, category cerr.Category, format string, args ...any) error {
	return cerr.New(category, pos, format, args...)
}

// errorAtEOF builds an unpositioned diagnostic for "ran out of tokens"
// situations, with "(reached end of input)" appended to the message.
func (p *Parser) errorAtEOF(category cerr.Category, format string, args ...any) error {
	return cerr.NewUnpositioned(category, format+" (reached end of input)", args...)
}
