package parser

import (
	"github.com/sus-lang/sus-parser/internal/ast"
	"github.com/sus-lang/sus-parser/internal/lexer"
)

// parseType parses a global type reference followed by any number of array
// size brackets: T, T[4], ::ns::T#(W: 8)[a][b].
func (p *Parser) parseType() ast.Type {
	g := p.parseTemplateGlobal()
	if g == nil {
		return nil
	}

	var typ ast.Type = g
	for p.peekTok.Type == lexer.LBRACKET {
		p.nextToken() // '['
		p.nextToken()

		size := p.parseExpr()
		if size == nil {
			return nil
		}
		if !p.expect(lexer.RBRACKET) {
			return nil
		}

		typ = ast.NewArrayType(typ, size, mergeSpan(typ.Span(), p.curTok.Span))
	}

	return typ
}
