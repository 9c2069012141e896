package parser

import (
	"github.com/sus-lang/sus-parser/internal/lexer"
)

// nextToken advances the parser's token window.
// Contract: after calling nextToken, curTok == old(peekTok). At EOF the
// window stays put.
func (p *Parser) nextToken() {
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	p.sync()
}

// reset moves the token window back (or forward) to pos.
func (p *Parser) reset(pos int) {
	p.pos = pos
	p.sync()
}

func (p *Parser) sync() {
	p.curTok = p.tokenAt(p.pos)
	p.peekTok = p.tokenAt(p.pos + 1)
}

func (p *Parser) tokenAt(i int) lexer.Token {
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

// peekTokenAt returns the token n positions after peekTok.
func (p *Parser) peekTokenAt(n int) lexer.Token {
	return p.tokenAt(p.pos + 1 + n)
}

// expect asserts that the peek token matches the provided type.
// The caller is responsible for inspecting curTok before invoking expect,
// because expect never rewinds; on success it promotes peekTok into curTok.
func (p *Parser) expect(tt lexer.TokenType) bool {
	if p.peekTok.Type == tt {
		p.nextToken()
		return true
	}
	p.fail(p.peekTok, tokenName(tt))
	return false
}

// skipNewline steps over a newline run under curTok, if there is one.
func (p *Parser) skipNewline() {
	if p.curTok.Type == lexer.NEWLINE {
		p.nextToken()
	}
}

// isWord reports whether tok is the identifier word. Keywords are ordinary
// identifiers to the lexer.
func isWord(tok lexer.Token, word string) bool {
	return tok.Type == lexer.IDENT && tok.Literal == word
}

func (p *Parser) curIsWord(word string) bool  { return isWord(p.curTok, word) }
func (p *Parser) peekIsWord(word string) bool { return isWord(p.peekTok, word) }

// startsType reports whether tok can begin a type (or a global reference).
func startsType(tok lexer.Token) bool {
	return tok.Type == lexer.IDENT || tok.Type == lexer.DOUBLE_COLON
}

// startsExpr reports whether tok can begin an expression.
func (p *Parser) startsExpr(tok lexer.Token) bool {
	_, ok := p.prefixFns[tok.Type]
	return ok
}

// startsStatement reports whether tok can begin a statement.
func (p *Parser) startsStatement(tok lexer.Token) bool {
	return tok.Type == lexer.LBRACE || p.startsExpr(tok)
}
