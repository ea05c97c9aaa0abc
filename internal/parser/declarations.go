package parser

import (
	"github.com/cwbudde/minijavac/internal/ast"
	"github.com/cwbudde/minijavac/internal/cerr"
	"github.com/cwbudde/minijavac/internal/token"
)

// parseClass parses `class IDENT [extends IDENT] { … }`. The leading
// `class` keyword has already been consumed by Parse's read_until loop.
func (p *Parser) parseClass() (*ast.Class, error) {
	nameTok, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}

	class := ast.NewClass(nameTok.Lexeme, nameTok.Pos)

	if p.peekIs(token.KwExtends) {
		_, _ = p.read()
		parentTok, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		if parentTok.Lexeme == class.Name {
			return nil, p.errorAt(parentTok.Pos, cerr.Declaration,
				"Class %s cannot extend itself", class.Name)
		}
		class.Extends = parentTok.Lexeme
		class.ExtendsPos = parentTok.Pos
	}

	if _, err := p.expect(token.OpLBrace); err != nil {
		return nil, err
	}

	for !p.peekIs(token.OpRBrace) {
		if !p.s.HasToken() {
			return nil, p.errorAtEOF(cerr.Syntax, "Expected '}'")
		}
		if err := p.parseClassMember(class); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(token.OpRBrace); err != nil {
		return nil, err
	}

	return class, nil
}

// parseModifiers consumes zero or more of `public`/`static` in any order.
func (p *Parser) parseModifiers() (isPublic, isStatic bool) {
	for {
		switch {
		case p.peekIs(token.KwPublic):
			_, _ = p.read()
			isPublic = true
		case p.peekIs(token.KwStatic):
			_, _ = p.read()
			isStatic = true
		default:
			return isPublic, isStatic
		}
	}
}

// parseTypeLexeme parses a type token: int, int[] (int immediately
// followed by [ ]), boolean, void (only when allowVoid), or a class-type
// identifier (spec.md §4.2 "Type syntax").
func (p *Parser) parseTypeLexeme(allowVoid bool) (ast.PrimitiveKind, string, token.Position, error) {
	tok, ok := p.read()
	if !ok {
		return 0, "", token.Position{}, p.errorAtEOF(cerr.Syntax, "Expected type")
	}

	switch {
	case tok.Lexeme == token.KwInt:
		if p.peekIs(token.OpLBracket) {
			_, _ = p.read()
			if _, err := p.expect(token.OpRBracket); err != nil {
				return 0, "", token.Position{}, err
			}
			return ast.PrimitiveIntArray, "int[]", tok.Pos, nil
		}
		return ast.PrimitiveInt, "int", tok.Pos, nil

	case tok.Lexeme == token.KwBoolean:
		return ast.PrimitiveBoolean, "boolean", tok.Pos, nil

	case tok.Lexeme == token.KwVoid:
		if !allowVoid {
			return 0, "", token.Position{}, p.errorAt(tok.Pos, cerr.Syntax,
				"'void' is not allowed here")
		}
		return ast.PrimitiveVoid, "void", tok.Pos, nil

	case tok.Kind == token.IDENTIFIER:
		return ast.PrimitiveClass, tok.Lexeme, tok.Pos, nil

	default:
		return 0, "", token.Position{}, p.errorAt(tok.Pos, cerr.Syntax,
			"Expected type but found %q", tok.Lexeme)
	}
}

// parseClassMember parses one field or method declaration: type and name
// are parsed first; `;` means field, `(` begins a method (spec.md §4.2).
func (p *Parser) parseClassMember(class *ast.Class) error {
	isPublic, isStatic := p.parseModifiers()
	_ = isPublic // visibility is not otherwise enforced by this spec

	kind, lexeme, typePos, err := p.parseTypeLexeme(true)
	if err != nil {
		return err
	}

	nameTok, err := p.expectIdentifier()
	if err != nil {
		return err
	}

	if p.peekIs(token.OpLParen) {
		return p.parseMethodRest(class, isStatic, kind, lexeme, nameTok)
	}

	if isStatic {
		return p.errorAt(nameTok.Pos, cerr.Declaration,
			"Field %s cannot be static", nameTok.Lexeme)
	}
	if kind == ast.PrimitiveVoid {
		return p.errorAt(typePos, cerr.Declaration,
			"Field %s cannot have type void", nameTok.Lexeme)
	}
	if _, err := p.expect(token.OpSemicolon); err != nil {
		return err
	}

	field := &ast.Field{PrimitiveKind: kind, TypeLexeme: lexeme, Name: nameTok.Lexeme, NamePos: nameTok.Pos}
	if !class.AddField(field) {
		return p.errorAt(nameTok.Pos, cerr.Declaration,
			"Field %s already exists in %s", nameTok.Lexeme, class.Name)
	}
	return nil
}

// parseMethodRest parses the parameter list and body once `(` has been
// peeked after a method's return type and name.
func (p *Parser) parseMethodRest(class *ast.Class, isStatic bool, kind ast.PrimitiveKind, lexeme string, nameTok token.Token) error {
	isMain := nameTok.Lexeme == "main"

	if isStatic && !isMain {
		return p.errorAt(nameTok.Pos, cerr.Declaration,
			"Only main can be static")
	}
	if isMain {
		if !isStatic {
			return p.errorAt(nameTok.Pos, cerr.Declaration,
				"main must be declared static")
		}
		if kind != ast.PrimitiveVoid {
			return p.errorAt(nameTok.Pos, cerr.Declaration,
				"main must return void")
		}
	}

	method := ast.NewMethod(nameTok.Lexeme, nameTok.Pos)
	method.ReturnKind = kind
	method.ReturnLex = lexeme
	method.IsStatic = isStatic
	method.IsMain = isMain

	if _, err := p.expect(token.OpLParen); err != nil {
		return err
	}
	for !p.peekIs(token.OpRParen) {
		if len(method.Params) > 0 {
			if _, err := p.expect(token.OpComma); err != nil {
				return err
			}
		}
		paramKind, paramLexeme, _, err := p.parseTypeLexeme(false)
		if err != nil {
			return err
		}
		paramTok, err := p.expectIdentifier()
		if err != nil {
			return err
		}
		param := &ast.Field{PrimitiveKind: paramKind, TypeLexeme: paramLexeme, Name: paramTok.Lexeme, NamePos: paramTok.Pos}
		if !method.AddParam(param) {
			return p.errorAt(paramTok.Pos, cerr.Declaration,
				"Parameter %s already exists in %s.%s", paramTok.Lexeme, class.Name, method.Name)
		}
	}
	if _, err := p.expect(token.OpRParen); err != nil {
		return err
	}

	if _, err := p.expect(token.OpLBrace); err != nil {
		return err
	}
	body, err := p.parseStatementsUntil(token.OpRBrace, nameTok.Pos)
	if err != nil {
		return err
	}
	if _, err := p.expect(token.OpRBrace); err != nil {
		return err
	}
	method.Body = body

	if !class.AddMethod(method) {
		return p.errorAt(nameTok.Pos, cerr.Declaration,
			"Method %s already exists in %s", nameTok.Lexeme, class.Name)
	}
	return nil
}
