package parser

import (
	"github.com/cwbudde/minijavac/internal/ast"
	"github.com/cwbudde/minijavac/internal/cerr"
	"github.com/cwbudde/minijavac/internal/token"
)

var assignmentOps = []string{
	token.OpAssign, token.OpPlusAssign, token.OpMinusAssign, token.OpStarAssign,
	token.OpSlashAssign, token.OpAndAssign, token.OpOrAssign, token.OpXorAssign,
}

// parseStatementsUntil parses statements into a CodeBlock until the next
// token's lexeme equals end (the caller consumes end itself).
func (p *Parser) parseStatementsUntil(end string, blockPos token.Position) (*ast.CodeBlock, error) {
	block := ast.NewCodeBlock(blockPos)
	for !p.peekIs(end) {
		if !p.s.HasToken() {
			return nil, p.errorAtEOF(cerr.Syntax, "Expected %q", end)
		}
		if err := p.parseStatementInto(block); err != nil {
			return nil, err
		}
	}
	return block, nil
}

// parseBlockOrSingleStatement parses a control-flow arm: either a braced
// block or one statement, wrapped as a one-element CodeBlock in the latter
// case (spec.md §4.2).
func (p *Parser) parseBlockOrSingleStatement() (*ast.CodeBlock, error) {
	if p.peekIs(token.OpLBrace) {
		openTok, _ := p.read()
		body, err := p.parseStatementsUntil(token.OpRBrace, openTok.Pos)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.OpRBrace); err != nil {
			return nil, err
		}
		return body, nil
	}

	tok, ok := p.peek()
	if !ok {
		return nil, p.errorAtEOF(cerr.Syntax, "Expected statement")
	}
	block := ast.NewCodeBlock(tok.Pos)
	if err := p.parseStatementInto(block); err != nil {
		return nil, err
	}
	return block, nil
}

// parseStatementInto parses exactly one source-level statement and appends
// the one or two AST statements it produces to block (a declaration with
// an initializer desugars into two; everything else produces one).
func (p *Parser) parseStatementInto(block *ast.CodeBlock) error {
	tok, ok := p.peek()
	if !ok {
		return p.errorAtEOF(cerr.Syntax, "Expected statement")
	}

	switch tok.Lexeme {
	case token.OpLBrace:
		_, _ = p.read()
		nested, err := p.parseStatementsUntil(token.OpRBrace, tok.Pos)
		if err != nil {
			return err
		}
		if _, err := p.expect(token.OpRBrace); err != nil {
			return err
		}
		block.Statements = append(block.Statements, nested)
		return nil

	case token.KwIf:
		stmt, err := p.parseIf()
		if err != nil {
			return err
		}
		block.Statements = append(block.Statements, stmt)
		return nil

	case token.KwWhile:
		stmt, err := p.parseWhile()
		if err != nil {
			return err
		}
		block.Statements = append(block.Statements, stmt)
		return nil

	case token.KwDo:
		stmt, err := p.parseDoWhile()
		if err != nil {
			return err
		}
		block.Statements = append(block.Statements, stmt)
		return nil

	case token.KwFor:
		stmt, err := p.parseFor()
		if err != nil {
			return err
		}
		block.Statements = append(block.Statements, stmt)
		return nil

	case token.KwReturn:
		_, _ = p.read()
		var operand ast.Expression
		if !p.peekIs(token.OpSemicolon) {
			expr, err := p.parseExpression(LOWEST)
			if err != nil {
				return err
			}
			operand = expr
		}
		if _, err := p.expect(token.OpSemicolon); err != nil {
			return err
		}
		block.Statements = append(block.Statements, ast.NewReturnStatement(tok.Pos, operand))
		return nil

	case token.KwBreak:
		_, _ = p.read()
		if _, err := p.expect(token.OpSemicolon); err != nil {
			return err
		}
		block.Statements = append(block.Statements, ast.NewBreakStatement(tok.Pos))
		return nil

	case token.KwContinue:
		_, _ = p.read()
		if _, err := p.expect(token.OpSemicolon); err != nil {
			return err
		}
		block.Statements = append(block.Statements, ast.NewContinueStatement(tok.Pos))
		return nil
	}

	if p.isLocalVarDeclStart() {
		return p.parseLocalVarDeclInto(block)
	}

	return p.parseSimpleStatementInto(block, true)
}

// parseSimpleStatementInto parses a reference chain followed optionally by
// an assignment operator or unary ++/--, used both as a full statement
// (requireSemicolon true) and as a for-loop init/update clause (false).
func (p *Parser) parseSimpleStatementInto(block *ast.CodeBlock, requireSemicolon bool) error {
	startPos, _ := p.peek()
	chain, err := p.parseReferenceChain()
	if err != nil {
		return err
	}

	if p.peekIsAny(assignmentOps...) {
		opTok, _ := p.read()
		rhs, err := p.parseExpression(LOWEST)
		if err != nil {
			return err
		}
		if requireSemicolon {
			if _, err := p.expect(token.OpSemicolon); err != nil {
				return err
			}
		}
		block.Statements = append(block.Statements, ast.NewAssignment(startPos.Pos, chain, opTok.Lexeme, rhs))
		return nil
	}

	if p.peekIsAny(token.OpInc, token.OpDec) {
		opTok, _ := p.read()
		desugared := token.OpPlusAssign
		if opTok.Lexeme == token.OpDec {
			desugared = token.OpMinusAssign
		}
		one := ast.NewNumberLiteral(token.Token{Kind: token.NUMBER, Lexeme: "1", Pos: opTok.Pos})
		if requireSemicolon {
			if _, err := p.expect(token.OpSemicolon); err != nil {
				return err
			}
		}
		block.Statements = append(block.Statements, ast.NewAssignment(startPos.Pos, chain, desugared, one))
		return nil
	}

	if requireSemicolon {
		if _, err := p.expect(token.OpSemicolon); err != nil {
			return err
		}
	}
	block.Statements = append(block.Statements, ast.NewExpressionStatement(startPos.Pos, ast.NewReference(startPos.Pos, chain)))
	return nil
}

// isLocalVarDeclStart performs the one-token lookahead spec.md §4.2
// describes: a valid type token followed by an identifier (or `int`
// followed by `[`) is a declaration.
func (p *Parser) isLocalVarDeclStart() bool {
	p.s.Save()
	defer p.s.Restore()

	tok, ok := p.read()
	if !ok {
		return false
	}

	switch {
	case tok.Lexeme == token.KwInt:
		if p.peekIs(token.OpLBracket) {
			_, _ = p.read()
			if !p.peekIs(token.OpRBracket) {
				return false
			}
			_, _ = p.read()
		}
	case tok.Lexeme == token.KwBoolean:
		// fine
	case tok.Kind == token.IDENTIFIER:
		// candidate class type
	default:
		return false
	}

	next, ok := p.peek()
	return ok && next.Kind == token.IDENTIFIER
}

// parseLocalVarDeclInto parses `type IDENT [= expr] ;`, desugaring an
// initializer into a trailing Assignment (see ast.LocalVariableDecl).
func (p *Parser) parseLocalVarDeclInto(block *ast.CodeBlock) error {
	kind, lexeme, pos, err := p.parseTypeLexeme(false)
	if err != nil {
		return err
	}
	nameTok, err := p.expectIdentifier()
	if err != nil {
		return err
	}

	field := &ast.Field{PrimitiveKind: kind, TypeLexeme: lexeme, Name: nameTok.Lexeme, NamePos: nameTok.Pos}
	block.Statements = append(block.Statements, ast.NewLocalVariableDecl(pos, field))

	if p.peekIsAny(assignmentOps...) {
		opTok, _ := p.read()
		rhs, err := p.parseExpression(LOWEST)
		if err != nil {
			return err
		}
		chain := ast.NewReferenceChain()
		chain.Append(ast.ChainStep{Token: nameTok})
		block.Statements = append(block.Statements, ast.NewAssignment(pos, chain, opTok.Lexeme, rhs))
	}

	_, err = p.expect(token.OpSemicolon)
	return err
}

func (p *Parser) parseIf() (ast.Statement, error) {
	ifTok, _ := p.read()
	if _, err := p.expect(token.OpLParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.OpRParen); err != nil {
		return nil, err
	}
	thenBody, err := p.parseBlockOrSingleStatement()
	if err != nil {
		return nil, err
	}

	var elseBody *ast.CodeBlock
	if p.peekIs(token.KwElse) {
		_, _ = p.read()
		elseBody, err = p.parseBlockOrSingleStatement()
		if err != nil {
			return nil, err
		}
	}

	return ast.NewIfStatement(ifTok.Pos, cond, thenBody, elseBody), nil
}

func (p *Parser) parseWhile() (ast.Statement, error) {
	whileTok, _ := p.read()
	if _, err := p.expect(token.OpLParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.OpRParen); err != nil {
		return nil, err
	}
	body, err := p.parseBlockOrSingleStatement()
	if err != nil {
		return nil, err
	}
	return ast.NewWhileStatement(whileTok.Pos, cond, body, false), nil
}

func (p *Parser) parseDoWhile() (ast.Statement, error) {
	doTok, _ := p.read()
	body, err := p.parseBlockOrSingleStatement()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.KwWhile); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.OpLParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.OpRParen); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.OpSemicolon); err != nil {
		return nil, err
	}
	return ast.NewWhileStatement(doTok.Pos, cond, body, true), nil
}

// parseFor parses `for ( init? ; cond? ; update? ) stmt-or-block`, where
// init is a simple statement (local-var decl or assignment/unary), cond is
// an expression, and update is an assignment or unary (spec.md §4.2).
func (p *Parser) parseFor() (ast.Statement, error) {
	forTok, _ := p.read()
	if _, err := p.expect(token.OpLParen); err != nil {
		return nil, err
	}

	var init *ast.CodeBlock
	if p.peekIs(token.OpSemicolon) {
		_, _ = p.read()
	} else {
		init = ast.NewCodeBlock(forTok.Pos)
		if p.isLocalVarDeclStart() {
			// parseLocalVarDeclInto consumes the trailing ';' itself.
			if err := p.parseLocalVarDeclInto(init); err != nil {
				return nil, err
			}
		} else {
			if err := p.parseSimpleStatementInto(init, false); err != nil {
				return nil, err
			}
			if _, err := p.expect(token.OpSemicolon); err != nil {
				return nil, err
			}
		}
	}

	var cond ast.Expression
	if !p.peekIs(token.OpSemicolon) {
		expr, err := p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
		cond = expr
	}
	if _, err := p.expect(token.OpSemicolon); err != nil {
		return nil, err
	}

	var update *ast.CodeBlock
	if !p.peekIs(token.OpRParen) {
		update = ast.NewCodeBlock(forTok.Pos)
		if err := p.parseSimpleStatementInto(update, false); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.OpRParen); err != nil {
		return nil, err
	}

	body, err := p.parseBlockOrSingleStatement()
	if err != nil {
		return nil, err
	}

	return ast.NewForStatement(forTok.Pos, init, cond, update, body), nil
}
