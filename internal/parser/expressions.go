package parser

import (
	"github.com/cwbudde/minijavac/internal/ast"
	"github.com/cwbudde/minijavac/internal/cerr"
	"github.com/cwbudde/minijavac/internal/token"
)

// Precedence levels, lowest to highest: the ladder in spec.md §4.2 plus a
// Shift tier for `>>>` between Relational and Additive.
const (
	LOWEST int = iota
	OrOr
	AndAnd
	BitOr
	BitXor
	BitAnd
	Equality
	Relational
	Shift
	Additive
	Multiplicative
)

var binaryPrecedence = map[string]int{
	token.OpOrOr:        OrOr,
	token.OpAndAnd:      AndAnd,
	token.OpOr:          BitOr,
	token.OpXor:         BitXor,
	token.OpAnd:         BitAnd,
	token.OpEq:          Equality,
	token.OpNeq:         Equality,
	token.OpLt:          Relational,
	token.OpLe:          Relational,
	token.OpGt:          Relational,
	token.OpGe:          Relational,
	token.OpUnsignedShr: Shift,
	token.OpPlus:        Additive,
	token.OpMinus:       Additive,
	token.OpStar:        Multiplicative,
	token.OpSlash:       Multiplicative,
	token.OpPercent:     Multiplicative,
}

// parseExpression implements precedence climbing over binaryPrecedence: it
// parses a unary, then repeatedly folds in binary operators whose
// precedence is at least minPrec (spec.md §4.2).
func (p *Parser) parseExpression(minPrec int) (ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		tok, ok := p.peek()
		if !ok {
			return left, nil
		}
		prec, isBinary := binaryPrecedence[tok.Lexeme]
		if !isBinary || prec < minPrec {
			return left, nil
		}
		_, _ = p.read()
		right, err := p.parseExpression(prec + 1)
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryExpression(tok.Pos, tok.Lexeme, left, right)
	}
}

// parseUnary parses the `!`/`~` prefix level (right-associative, above all
// binary operators) and falls through to parsePrimary.
func (p *Parser) parseUnary() (ast.Expression, error) {
	if p.peekIsAny(token.OpNot, token.OpTilde) {
		opTok, _ := p.read()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.NewNotExpression(opTok.Pos, opTok.Lexeme, operand), nil
	}
	return p.parsePrimary()
}

// parsePrimary parses a number/boolean literal; an identifier, `this`, or
// `new` (each beginning a reference chain); or a parenthesized expression,
// including the cast special case `(TYPE) expr` (spec.md §4.2).
func (p *Parser) parsePrimary() (ast.Expression, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, p.errorAtEOF(cerr.Syntax, "Expected expression")
	}

	switch {
	case tok.Kind == token.NUMBER || tok.Kind == token.HEX_NUMBER || tok.Kind == token.BINARY_NUMBER:
		_, _ = p.read()
		return ast.NewNumberLiteral(tok), nil

	case tok.Lexeme == token.KwTrue:
		_, _ = p.read()
		return ast.NewBooleanLiteral(tok, true), nil

	case tok.Lexeme == token.KwFalse:
		_, _ = p.read()
		return ast.NewBooleanLiteral(tok, false), nil

	case tok.Lexeme == token.OpLParen:
		return p.parseParenOrCast()

	case tok.Lexeme == token.KwThis || tok.Lexeme == token.KwNew || tok.Kind == token.IDENTIFIER:
		chain, err := p.parseReferenceChain()
		if err != nil {
			return nil, err
		}
		return ast.NewReference(tok.Pos, chain), nil

	default:
		return nil, p.errorAt(tok.Pos, cerr.Syntax, "Unexpected token %q", tok.Lexeme)
	}
}

// parseParenOrCast disambiguates `( expr )` from the cast form `(TYPE)
// expr`. A parenthesized identifier is treated as a cast only when the
// token after the closing `)` is neither a binary operator nor `;`
// (spec.md §9 "Ambiguity in cast parsing" — replicated exactly, including
// its documented limitation: `(x) + 1` parses as grouping, never a cast,
// because `+` is a binary operator).
func (p *Parser) parseParenOrCast() (ast.Expression, error) {
	openTok, _ := p.read()

	// Try the cast form: ( IDENT-or-primitive-type ) <non-operator, non-;>
	if castType, ok := p.tryParseCastHead(); ok {
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.NewCastExpression(openTok.Pos, castType, operand), nil
	}

	expr, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.OpRParen); err != nil {
		return nil, err
	}
	return expr, nil
}

// tryParseCastHead speculatively parses `TYPE )` and reports whether the
// token that follows confirms a cast. On failure the stream is restored to
// just after the already-consumed `(`.
func (p *Parser) tryParseCastHead() (string, bool) {
	p.s.Save()

	typeTok, ok := p.read()
	if !ok || !(typeTok.Kind == token.IDENTIFIER || typeTok.Lexeme == token.KwInt || typeTok.Lexeme == token.KwBoolean) {
		p.s.Restore()
		return "", false
	}
	castType := typeTok.Lexeme
	if typeTok.Lexeme == token.KwInt && p.peekIs(token.OpLBracket) {
		_, _ = p.read()
		if !p.peekIs(token.OpRBracket) {
			p.s.Restore()
			return "", false
		}
		_, _ = p.read()
		castType = "int[]"
	}

	if !p.peekIs(token.OpRParen) {
		p.s.Restore()
		return "", false
	}
	_, _ = p.read() // consume ')'

	next, ok := p.peek()
	if !ok {
		p.s.Restore()
		return "", false
	}
	_, isBinaryOp := binaryPrecedence[next.Lexeme]
	if isBinaryOp || next.Lexeme == token.OpSemicolon {
		p.s.Restore()
		return "", false
	}

	p.s.Commit()
	return castType, true
}

// parseReferenceChain parses the chain grammar of spec.md §4.2: beginning
// at an identifier, `this`, or `new`, repeatedly folding in `.field`,
// `[index]`, and `(args)` steps.
func (p *Parser) parseReferenceChain() (*ast.ReferenceChain, error) {
	chain := ast.NewReferenceChain()

	head, ok := p.read()
	if !ok {
		return nil, p.errorAtEOF(cerr.Syntax, "Expected reference")
	}

	if head.Lexeme == token.KwNew {
		step, err := p.parseNewHead(head)
		if err != nil {
			return nil, err
		}
		chain.Append(step)
	} else if head.Kind == token.IDENTIFIER || head.Lexeme == token.KwThis {
		if err := p.maybeAppendCallOrIndex(chain, head); err != nil {
			return nil, err
		}
	} else {
		return nil, p.errorAt(head.Pos, cerr.Syntax, "Expected reference but found %q", head.Lexeme)
	}

	for {
		tok, ok := p.peek()
		if !ok {
			return chain, nil
		}
		switch tok.Lexeme {
		case token.OpDot:
			_, _ = p.read()
			nameTok, err := p.expectIdentifier()
			if err != nil {
				return nil, err
			}
			if err := p.maybeAppendCallOrIndex(chain, nameTok); err != nil {
				return nil, err
			}
		default:
			return chain, nil
		}
	}
}

// maybeAppendCallOrIndex appends tok as a chain step, and if immediately
// followed by `(` or `[`, attaches the corresponding payload.
func (p *Parser) maybeAppendCallOrIndex(chain *ast.ReferenceChain, tok token.Token) error {
	if p.peekIs(token.OpLParen) {
		_, _ = p.read()
		args, err := p.parseArgs()
		if err != nil {
			return err
		}
		call := ast.NewMethodCall(tok.Pos, tok.Lexeme, args)
		chain.Append(ast.ChainStep{Token: tok, PayloadKind: ast.PayloadMethodCall, MethodCall: call})
		return nil
	}
	if p.peekIs(token.OpLBracket) {
		_, _ = p.read()
		index, err := p.parseExpression(LOWEST)
		if err != nil {
			return err
		}
		if _, err := p.expect(token.OpRBracket); err != nil {
			return err
		}
		arrCall := ast.NewArrayCall(tok.Pos, tok.Lexeme, index)
		chain.Append(ast.ChainStep{Token: tok, PayloadKind: ast.PayloadArrayCall, ArrayCall: arrCall})
		return nil
	}
	chain.Append(ast.ChainStep{Token: tok})
	return nil
}

// parseArgs parses a comma-separated expression list up to and including
// the closing `)` (the opening `(` has already been consumed).
func (p *Parser) parseArgs() ([]ast.Expression, error) {
	var args []ast.Expression
	for !p.peekIs(token.OpRParen) {
		if len(args) > 0 {
			if _, err := p.expect(token.OpComma); err != nil {
				return nil, err
			}
		}
		arg, err := p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	if _, err := p.expect(token.OpRParen); err != nil {
		return nil, err
	}
	return args, nil
}

// parseNewHead parses `new TYPE ( )` or `new int [ expr ]` as the chain's
// first element (spec.md §4.2).
func (p *Parser) parseNewHead(newTok token.Token) (ast.ChainStep, error) {
	if p.peekIs(token.KwInt) {
		_, _ = p.read()
		if _, err := p.expect(token.OpLBracket); err != nil {
			return ast.ChainStep{}, err
		}
		size, err := p.parseExpression(LOWEST)
		if err != nil {
			return ast.ChainStep{}, err
		}
		if _, err := p.expect(token.OpRBracket); err != nil {
			return ast.ChainStep{}, err
		}
		obj := ast.NewArrayAllocation(newTok.Pos, size)
		return ast.ChainStep{Token: newTok, PayloadKind: ast.PayloadNewObject, NewObject: obj}, nil
	}

	classTok, err := p.expectIdentifier()
	if err != nil {
		return ast.ChainStep{}, err
	}
	if _, err := p.expect(token.OpLParen); err != nil {
		return ast.ChainStep{}, err
	}
	if _, err := p.expect(token.OpRParen); err != nil {
		return ast.ChainStep{}, err
	}
	obj := ast.NewClassAllocation(newTok.Pos, classTok.Lexeme)
	return ast.ChainStep{Token: newTok, PayloadKind: ast.PayloadNewObject, NewObject: obj}, nil
}
