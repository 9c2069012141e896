package parser

import (
	"slices"

	"github.com/sus-lang/sus-parser/internal/ast"
	"github.com/sus-lang/sus-parser/internal/lexer"
)

// An assignment target is either a declaration (`int[4] x`) or an
// expression (`x[4]`). Both start with the same tokens, so the target is
// parsed speculatively: first as a declaration, then as an expression.
// Sub-parses of the shared prefix are memoized by (position, rule) for the
// duration of one resolution, which keeps the second attempt linear in the
// length of the ambiguous span.

type memoRule int

const (
	ruleTemplateGlobal memoRule = iota
	ruleExpr
)

type memoKey struct {
	pos  int
	rule memoRule
}

type memoEntry struct {
	node ast.Node
	end  int
	ok   bool
	err  *ParseError
}

// memoized runs parse once per position for rule, replaying the result
// (and on failure, the recorded error) on later calls.
func memoized[T ast.Node](p *Parser, rule memoRule, parse func() (T, bool)) (T, bool) {
	key := memoKey{pos: p.pos, rule: rule}
	if entry, hit := p.memo[key]; hit {
		if !entry.ok {
			p.mergeErr(entry.err)
			var zero T
			return zero, false
		}
		p.reset(entry.end)
		return entry.node.(T), true
	}

	var node T
	var ok bool
	err := p.capture(func() { node, ok = parse() })

	entry := memoEntry{end: p.pos, ok: ok, err: err}
	if ok {
		entry.node = node
	}
	p.memo[key] = entry
	return node, ok
}

// speculate runs fn and rewinds the token window if it fails. It returns
// the failure fn recorded, which is also folded into the parser's record.
func (p *Parser) speculate(fn func() bool) (bool, *ParseError) {
	start := p.pos
	var ok bool
	err := p.capture(func() { ok = fn() })
	if !ok {
		p.reset(start)
	}
	return ok, err
}

// parseDeclOrExpr parses an assignment target. Only identifiers and `::`
// can start a declaration; anything else goes straight to the expression
// parser.
func (p *Parser) parseDeclOrExpr(docStart int) ast.Node {
	if !startsType(p.curTok) {
		if expr := p.parseExpr(); expr != nil {
			return expr
		}
		return nil
	}

	if p.memo == nil {
		p.memo = make(map[memoKey]memoEntry)
		defer func() { p.memo = nil }()
	}

	startTok := p.curTok

	var decl *ast.Declaration
	declOK, declErr := p.speculate(func() bool {
		decl = p.parseDeclaration(docStart)
		return decl != nil
	})
	if declOK {
		p.logger.Debug("resolved assignment target", "offset", startTok.Span.Start, "reading", "declaration")
		return decl
	}

	var expr ast.Expr
	exprOK, exprErr := p.speculate(func() bool {
		expr = p.parseExpr()
		return expr != nil
	})
	if exprOK {
		p.logger.Debug("resolved assignment target", "offset", startTok.Span.Start, "reading", "expression")
		return expr
	}

	if unresolved(declErr, exprErr) && p.err != nil && p.err.Span.Start == declErr.Span.Start {
		p.err.Kind = ErrAmbiguityUnresolved
	}
	return nil
}

// unresolved reports whether both readings broke down at the same token
// while wanting unrelated things there. Overlapping expected sets mean the
// two readings share the broken part and the input is simply malformed, as
// does running out of input.
func unresolved(declErr, exprErr *ParseError) bool {
	if declErr == nil || exprErr == nil {
		return false
	}
	if declErr.Span.Start != exprErr.Span.Start {
		return false
	}
	for _, e := range declErr.Expected {
		if slices.Contains(exprErr.Expected, e) {
			return false
		}
	}
	return declErr.Found.Type != lexer.EOF
}
