package parser

import (
	"github.com/sus-lang/sus-parser/internal/ast"
	"github.com/sus-lang/sus-parser/internal/lexer"
)

// parseDeclaration parses [modifiers] Type name ['latency]. docStart is the
// token index whose preceding `///` lines document the declaration; it
// differs from the current position when write modifiers come first.
func (p *Parser) parseDeclaration(docStart int) *ast.Declaration {
	start := p.curTok.Span

	var mods []ast.DeclModifier
	for p.curTok.Type == lexer.IDENT && ast.IsDeclModifier(p.curTok.Literal) && startsType(p.peekTok) {
		mods = append(mods, ast.DeclModifier(p.curTok.Literal))
		p.nextToken()
	}

	typ := p.parseType()
	if typ == nil {
		return nil
	}

	if p.peekTok.Type != lexer.IDENT {
		p.fail(p.peekTok, "identifier", "[")
		return nil
	}
	p.nextToken()
	name := ident(p.curTok)

	var latency ast.Expr
	if p.peekTok.Type == lexer.TICK {
		if latency = p.parseLatency(); latency == nil {
			return nil
		}
	}

	decl := ast.NewDeclaration(mods, typ, name, latency, mergeSpan(start, p.curTok.Span))
	decl.Doc = p.docComments(docStart)
	return decl
}

// parseLatency parses the 'expr suffix. curTok is on the token before the
// tick.
func (p *Parser) parseLatency() ast.Expr {
	p.nextToken() // '\''
	p.nextToken()
	return p.parseExpr()
}

// parseDeclarationList parses comma separated declarations; a newline may
// follow each comma.
func (p *Parser) parseDeclarationList() *ast.DeclarationList {
	start := p.curTok.Span

	var decls []*ast.Declaration
	for {
		decl := p.parseDeclaration(p.pos)
		if decl == nil {
			return nil
		}
		decls = append(decls, decl)

		if p.peekTok.Type != lexer.COMMA {
			break
		}
		p.nextToken() // ','
		p.nextToken()
		p.skipNewline()
	}

	return ast.NewDeclarationList(decls, mergeSpan(start, p.curTok.Span))
}

// parseInterfacePorts parses `: inputs [-> outputs]` or `: -> outputs`.
// curTok is on the ':'.
func (p *Parser) parseInterfacePorts() *ast.InterfacePorts {
	start := p.curTok.Span
	p.nextToken()
	p.skipNewline()

	var inputs, outputs *ast.DeclarationList
	if p.curTok.Type != lexer.ARROW {
		first := p.curTok
		if inputs = p.parseDeclarationList(); inputs == nil {
			p.fail(first, "->")
			return nil
		}
		if p.peekTok.Type == lexer.ARROW {
			p.nextToken()
		}
	}

	if p.curTok.Type == lexer.ARROW {
		p.nextToken()
		p.skipNewline()
		if outputs = p.parseDeclarationList(); outputs == nil {
			return nil
		}
	}

	return ast.NewInterfacePorts(inputs, outputs, mergeSpan(start, p.curTok.Span))
}
