package parser

import (
	"github.com/sus-lang/sus-parser/internal/ast"
	"github.com/sus-lang/sus-parser/internal/lexer"
)

// parseTemplateGlobal parses [::]a::b::c[#( args )]. It is the shared prefix
// of types and expressions, so it is memoized while the resolver is active.
func (p *Parser) parseTemplateGlobal() *ast.TemplateGlobal {
	if p.memo != nil {
		g, _ := memoized(p, ruleTemplateGlobal, func() (*ast.TemplateGlobal, bool) {
			g := p.templateGlobal()
			return g, g != nil
		})
		return g
	}
	return p.templateGlobal()
}

func (p *Parser) templateGlobal() *ast.TemplateGlobal {
	start := p.curTok.Span

	global := false
	switch p.curTok.Type {
	case lexer.DOUBLE_COLON:
		global = true
		if !p.expect(lexer.IDENT) {
			return nil
		}
	case lexer.IDENT:
	default:
		p.fail(p.curTok, "identifier", "::")
		return nil
	}

	path := []*ast.Ident{ident(p.curTok)}
	for p.peekTok.Type == lexer.DOUBLE_COLON {
		p.nextToken()
		if !p.expect(lexer.IDENT) {
			return nil
		}
		path = append(path, ident(p.curTok))
	}

	var args *ast.TemplateArgList
	if p.peekTok.Type == lexer.HASH_LPAREN {
		p.nextToken()
		if args = p.parseTemplateArgs(); args == nil {
			return nil
		}
	}

	return ast.NewTemplateGlobal(global, path, args, mergeSpan(start, p.curTok.Span))
}

// parseTemplateArgs parses #( name, name: type T, name: expr ).
func (p *Parser) parseTemplateArgs() *ast.TemplateArgList {
	start := p.curTok.Span

	args, ok := parseDelimited(p, delimitedConfig{
		Closing:  lexer.RPAREN,
		Newlines: true,
	}, p.parseTemplateArg)
	if !ok {
		return nil
	}

	return ast.NewTemplateArgList(args, mergeSpan(start, p.curTok.Span))
}

func (p *Parser) parseTemplateArg() (*ast.TemplateArg, bool) {
	if p.curTok.Type != lexer.IDENT {
		p.fail(p.curTok, "identifier")
		return nil, false
	}
	name := ident(p.curTok)

	if p.peekTok.Type != lexer.COLON {
		return ast.NewTemplateArg(name, nil, nil, name.Span()), true
	}
	p.nextToken() // ':'
	p.nextToken()

	// `type` only introduces a type binding when a type follows it;
	// otherwise it is an ordinary name in a value expression.
	if p.curIsWord("type") && startsType(p.peekTok) {
		p.nextToken()
		typ := p.parseType()
		if typ == nil {
			return nil, false
		}
		return ast.NewTemplateArg(name, typ, nil, mergeSpan(name.Span(), typ.Span())), true
	}

	val := p.parseExpr()
	if val == nil {
		return nil, false
	}
	return ast.NewTemplateArg(name, nil, val, mergeSpan(name.Span(), val.Span())), true
}

// parseTemplateDeclArgs parses the #( ... ) parameter list of a global
// object. A lone name declares a type parameter; anything else must be a
// full declaration.
func (p *Parser) parseTemplateDeclArgs() *ast.TemplateDeclArgs {
	start := p.curTok.Span

	args, ok := parseDelimited(p, delimitedConfig{
		Closing:  lexer.RPAREN,
		Newlines: true,
	}, p.parseTemplateDeclArg)
	if !ok {
		return nil
	}

	return ast.NewTemplateDeclArgs(args, mergeSpan(start, p.curTok.Span))
}

func (p *Parser) parseTemplateDeclArg() (ast.TemplateDeclArg, bool) {
	if p.curTok.Type == lexer.IDENT {
		switch p.peekTok.Type {
		case lexer.COMMA, lexer.RPAREN, lexer.NEWLINE:
			return ast.NewTemplateDeclType(ident(p.curTok)), true
		}
	}

	decl := p.parseDeclaration(p.pos)
	if decl == nil {
		return nil, false
	}
	return decl, true
}
