package parser

import (
	"github.com/sus-lang/sus-parser/internal/ast"
	"github.com/sus-lang/sus-parser/internal/lexer"
)

// parseExpr parses a full expression. While the declaration/expression
// resolver is active, results are memoized per position.
func (p *Parser) parseExpr() ast.Expr {
	if p.memo != nil {
		expr, _ := memoized(p, ruleExpr, func() (ast.Expr, bool) {
			e := p.parseExprPrecedence(precedenceLowest)
			return e, e != nil
		})
		return expr
	}
	return p.parseExprPrecedence(precedenceLowest)
}

func (p *Parser) parseExprPrecedence(precedence int) ast.Expr {
	prefix := p.prefixFns[p.curTok.Type]
	if prefix == nil {
		p.fail(p.curTok, "expression")
		return nil
	}

	left := prefix()
	if left == nil {
		return nil
	}

	for precedence < p.peekPrecedence() {
		infix := p.infixFns[p.peekTok.Type]
		if infix == nil {
			break
		}

		p.nextToken()

		left = infix(left)
		if left == nil {
			return nil
		}
	}

	return left
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekTok.Type]; ok {
		return prec
	}

	return precedenceLowest
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curTok.Type]; ok {
		return prec
	}

	return precedenceLowest
}

func (p *Parser) parseNumber() ast.Expr {
	return ast.NewNumber(p.curTok.Literal, p.curTok.Span)
}

// parseTemplateGlobalExpr adapts parseTemplateGlobal to the prefix table
// without leaking a typed nil.
func (p *Parser) parseTemplateGlobalExpr() ast.Expr {
	g := p.parseTemplateGlobal()
	if g == nil {
		return nil
	}
	return g
}

func (p *Parser) parseUnaryExpr() ast.Expr {
	operatorTok := p.curTok

	p.nextToken()

	operand := p.parseExprPrecedence(precedenceUnary)
	if operand == nil {
		return nil
	}

	return ast.NewUnaryExpr(operatorTok.Type, operand, mergeSpan(operatorTok.Span, operand.Span()))
}

func (p *Parser) parseParenExpr() ast.Expr {
	start := p.curTok.Span
	p.nextToken() // consume '('

	inner := p.parseExpr()
	if inner == nil {
		return nil
	}

	if !p.expect(lexer.RPAREN) {
		return nil
	}

	return ast.NewParenExpr(inner, mergeSpan(start, p.curTok.Span))
}

// parseArrayList parses [a, b, c]. Newlines may follow '[' and precede ']'.
func (p *Parser) parseArrayList() ast.Expr {
	start := p.curTok.Span

	items, ok := parseDelimited(p, delimitedConfig{
		Closing:  lexer.RBRACKET,
		Newlines: true,
	}, p.parseExprItem)
	if !ok {
		return nil
	}

	return ast.NewArrayList(items, mergeSpan(start, p.curTok.Span))
}

func (p *Parser) parseExprItem() (ast.Expr, bool) {
	expr := p.parseExpr()
	return expr, expr != nil
}

// parseBinaryExpr parses the right operand of a left-associative operator.
func (p *Parser) parseBinaryExpr(left ast.Expr) ast.Expr {
	operatorTok := p.curTok
	precedence := p.curPrecedence()

	p.nextToken()

	right := p.parseExprPrecedence(precedence)
	if right == nil {
		return nil
	}

	return ast.NewBinaryExpr(operatorTok.Type, left, right, mergeSpan(left.Span(), right.Span()))
}

func (p *Parser) parseCallExpr(callee ast.Expr) ast.Expr {
	args, ok := parseDelimited(p, delimitedConfig{
		Closing: lexer.RPAREN,
	}, p.parseExprItem)
	if !ok {
		return nil
	}

	return ast.NewCallExpr(callee, args, mergeSpan(callee.Span(), p.curTok.Span))
}

func (p *Parser) parseFieldAccess(base ast.Expr) ast.Expr {
	if !p.expect(lexer.IDENT) {
		return nil
	}
	name := ident(p.curTok)

	return ast.NewFieldAccess(base, name, mergeSpan(base.Span(), name.Span()))
}

var sliceKinds = map[lexer.TokenType]ast.SliceKind{
	lexer.COLON:       ast.SliceExact,
	lexer.PLUS_COLON:  ast.SliceRelUp,
	lexer.MINUS_COLON: ast.SliceRelDown,
}

func isSliceSeparator(tok lexer.Token) bool {
	_, ok := sliceKinds[tok.Type]
	return ok
}

// parseArrayOp parses the bracket after base: either a single index or a
// part-select with optional bounds around ':', '+:' or '-:'. Each bound is a
// complete expression; the separators bind looser than any operator.
func (p *Parser) parseArrayOp(base ast.Expr) ast.Expr {
	p.nextToken() // consume '['

	var lo ast.Expr
	if !isSliceSeparator(p.curTok) {
		first := p.curTok
		lo = p.parseExpr()
		if lo == nil {
			p.fail(first, ":", "+:", "-:")
			return nil
		}

		if !isSliceSeparator(p.peekTok) {
			if p.peekTok.Type != lexer.RBRACKET {
				p.fail(p.peekTok, "]", ":", "+:", "-:")
				return nil
			}
			p.nextToken()
			return ast.NewArrayOp(base, ast.NewSingleIndex(lo), mergeSpan(base.Span(), p.curTok.Span))
		}
		p.nextToken() // move to the separator
	}

	sepTok := p.curTok
	sliceSpan := sepTok.Span
	if lo != nil {
		sliceSpan = mergeSpan(lo.Span(), sepTok.Span)
	}

	var hi ast.Expr
	if p.peekTok.Type != lexer.RBRACKET {
		p.nextToken()
		hi = p.parseExpr()
		if hi == nil {
			p.fail(p.curTok, "]")
			return nil
		}
		sliceSpan = mergeSpan(sliceSpan, hi.Span())
	}

	if !p.expect(lexer.RBRACKET) {
		return nil
	}

	slice := ast.NewSliceIndex(lo, sliceKinds[sepTok.Type], hi, sliceSpan)
	return ast.NewArrayOp(base, slice, mergeSpan(base.Span(), p.curTok.Span))
}
