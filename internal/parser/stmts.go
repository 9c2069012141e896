package parser

import (
	"github.com/sus-lang/sus-parser/internal/ast"
	"github.com/sus-lang/sus-parser/internal/diag"
	"github.com/sus-lang/sus-parser/internal/lexer"
)

// parseBlock parses { statement* } with statements separated by newline
// runs. curTok starts on '{' and ends on '}'.
func (p *Parser) parseBlock() *ast.Block {
	start := p.curTok.Span
	p.nextToken()
	p.skipNewline()

	var stmts []ast.Stmt
	for p.curTok.Type != lexer.RBRACE {
		if !p.startsStatement(p.curTok) {
			p.fail(p.curTok, "}", "statement")
			return nil
		}

		stmt := p.parseStatement()
		if stmt == nil {
			return nil
		}
		stmts = append(stmts, stmt)

		switch p.peekTok.Type {
		case lexer.NEWLINE:
			p.nextToken()
			p.nextToken()
		case lexer.RBRACE:
			p.nextToken()
		default:
			p.fail(p.peekTok, "newline", "}")
			return nil
		}
	}

	return ast.NewBlock(stmts, mergeSpan(start, p.curTok.Span))
}

// parseStatement dispatches on the leading word. Keywords only count as
// such when what follows fits the statement they introduce; otherwise the
// word is an identifier inside an assignment or expression statement.
func (p *Parser) parseStatement() ast.Stmt {
	switch {
	case p.curTok.Type == lexer.LBRACE:
		return p.parseBlock()
	case (p.curIsWord("if") || p.curIsWord("when")) && p.startsExpr(p.peekTok):
		return p.parseIfStmt()
	case p.curIsWord("for") && startsType(p.peekTok):
		return p.parseForStmt()
	case p.curIsWord("domain") && p.peekTok.Type == lexer.IDENT:
		return p.parseDomainStmt()
	case p.curIsWord("local") && p.peekTok.Type == lexer.IDENT && ast.IsInterfaceKind(p.peekTok.Literal) &&
		p.peekTokenAt(1).Type == lexer.IDENT:
		return p.parseInterfaceStmt()
	case p.curTok.Type == lexer.IDENT && ast.IsInterfaceKind(p.curTok.Literal) && p.peekTok.Type == lexer.IDENT:
		return p.parseInterfaceStmt()
	default:
		return p.parseAssignStmt()
	}
}

// parseAssignStmt parses `targets = value` or a bare target list.
func (p *Parser) parseAssignStmt() ast.Stmt {
	left := p.parseAssignLeftSide()
	if left == nil {
		return nil
	}

	if p.peekTok.Type == lexer.ASSIGN {
		p.nextToken() // '='
		p.nextToken()

		value := p.parseExpr()
		if value == nil {
			return nil
		}
		return ast.NewDeclAssignStmt(left, value, mergeSpan(left.Span(), value.Span()))
	}

	if t := p.peekTok.Type; t != lexer.NEWLINE && t != lexer.RBRACE {
		// Only widens the expected set; parseBlock reports the failure.
		p.fail(p.peekTok, "=", ",")
	}

	p.checkExpressionStatement(left)
	return left
}

// checkExpressionStatement warns about bare statements that neither declare
// anything nor call anything.
func (p *Parser) checkExpressionStatement(left *ast.AssignLeftSide) {
	for _, item := range left.Items {
		if item.Decl != nil {
			return
		}
		if _, isCall := item.Expr.(*ast.CallExpr); isCall {
			return
		}
	}
	p.warn(WarnExpressionStatement, diag.CodeParserExpressionStatement,
		"statement neither declares nor assigns anything; its value is unused", left.Span())
}

func (p *Parser) parseAssignLeftSide() *ast.AssignLeftSide {
	start := p.curTok.Span

	var items []*ast.AssignTo
	for {
		item := p.parseAssignTo()
		if item == nil {
			return nil
		}
		items = append(items, item)

		if p.peekTok.Type != lexer.COMMA {
			break
		}
		p.nextToken() // ','
		p.nextToken()
		p.skipNewline()
	}

	return ast.NewAssignLeftSide(items, mergeSpan(start, p.curTok.Span))
}

func (p *Parser) parseAssignTo() *ast.AssignTo {
	docStart := p.pos

	// `reg (a)`, `initial [a, b]`: a modifier word before anything that
	// starts an expression is read as a modifier first. If that fails the
	// word is an identifier, as in `reg (a, b)`.
	if p.curIsModifierWord() && p.startsExpr(p.peekTok) {
		if p.memo == nil {
			p.memo = make(map[memoKey]memoEntry)
			defer func() { p.memo = nil }()
		}
		var item *ast.AssignTo
		ok, _ := p.speculate(func() bool {
			item = p.parseModifiedTarget(docStart, p.startsExpr)
			return item != nil
		})
		if ok {
			return item
		}
	}

	return p.parseModifiedTarget(docStart, startsType)
}

func (p *Parser) parseModifiedTarget(docStart int, follows func(lexer.Token) bool) *ast.AssignTo {
	mods := p.parseWriteModifiers(follows)
	target := p.parseDeclOrExpr(docStart)
	if target == nil {
		return nil
	}

	span := target.Span()
	if mods != nil {
		span = mergeSpan(mods.Span(), span)
	}
	return ast.NewAssignTo(mods, target, span)
}

func (p *Parser) curIsModifierWord() bool {
	return p.curIsWord(string(ast.WriteReg)) || p.curIsWord(string(ast.WriteInitial))
}

// parseWriteModifiers consumes `reg`+ or a single `initial` and leaves
// curTok on the token after them. A modifier word only counts when the
// token after it satisfies follows, so with startsType `reg initial x`
// writes a declaration of type `initial`.
func (p *Parser) parseWriteModifiers(follows func(lexer.Token) bool) *ast.WriteModifiers {
	start := p.curTok.Span

	if p.curIsWord(string(ast.WriteInitial)) && follows(p.peekTok) {
		p.nextToken()
		return ast.NewWriteModifiers(ast.WriteInitial, 1, start)
	}

	count := 0
	end := start
	for p.curIsWord(string(ast.WriteReg)) && follows(p.peekTok) {
		count++
		end = p.curTok.Span
		p.nextToken()
	}
	if count == 0 {
		return nil
	}
	return ast.NewWriteModifiers(ast.WriteReg, count, mergeSpan(start, end))
}

// parseIfStmt parses if/when cond [: bindings] { } [else ...].
func (p *Parser) parseIfStmt() *ast.IfStmt {
	kwTok := p.curTok
	p.nextToken()

	cond := p.parseExpr()
	if cond == nil {
		return nil
	}

	var bindings *ast.InterfacePorts
	if p.peekTok.Type == lexer.COLON {
		p.nextToken()
		if bindings = p.parseInterfacePorts(); bindings == nil {
			return nil
		}
	}

	if p.peekTok.Type != lexer.LBRACE {
		if bindings == nil {
			p.fail(p.peekTok, "{", ":")
		} else {
			p.fail(p.peekTok, "{")
		}
		return nil
	}
	p.nextToken()

	then := p.parseBlock()
	if then == nil {
		return nil
	}

	els, ok := p.parseElse()
	if !ok {
		return nil
	}

	end := then.Span()
	if els != nil {
		end = els.Span()
	}
	return ast.NewIfStmt(ast.IfKind(kwTok.Literal), cond, bindings, then, els, mergeSpan(kwTok.Span, end))
}

// parseElse parses an optional `else` directly after the '}' under curTok.
// It must be on the same line as the brace.
func (p *Parser) parseElse() (ast.ElseBranch, bool) {
	if !p.peekIsWord("else") {
		return nil, true
	}
	p.nextToken()

	switch {
	case p.peekTok.Type == lexer.LBRACE:
		p.nextToken()
		block := p.parseBlock()
		if block == nil {
			return nil, false
		}
		return block, true
	case (p.peekIsWord("if") || p.peekIsWord("when")) && p.startsExpr(p.peekTokenAt(1)):
		p.nextToken()
		chained := p.parseIfStmt()
		if chained == nil {
			return nil, false
		}
		return chained, true
	default:
		p.fail(p.peekTok, "{", "if", "when")
		return nil, false
	}
}

// parseForStmt parses for decl in from..to { }.
func (p *Parser) parseForStmt() *ast.ForStmt {
	start := p.curTok.Span
	p.nextToken()

	v := p.parseLoopVar()
	if v == nil {
		return nil
	}

	if !p.peekIsWord("in") {
		p.fail(p.peekTok, "in")
		return nil
	}
	p.nextToken()
	p.nextToken()

	from := p.parseExpr()
	if from == nil {
		return nil
	}
	if !p.expect(lexer.DOT_DOT) {
		return nil
	}
	p.nextToken()

	to := p.parseExpr()
	if to == nil {
		return nil
	}
	if !p.expect(lexer.LBRACE) {
		return nil
	}

	body := p.parseBlock()
	if body == nil {
		return nil
	}

	return ast.NewForStmt(v, from, to, body, mergeSpan(start, body.Span()))
}

// parseLoopVar parses the loop variable. A full declaration is tried first;
// `for i in ...` without a type yields a declaration with a nil Type.
func (p *Parser) parseLoopVar() *ast.Declaration {
	start := p.pos

	var decl *ast.Declaration
	end := -1
	ok, _ := p.speculate(func() bool {
		if decl = p.parseDeclaration(start); decl == nil {
			return false
		}
		end = p.pos
		return p.peekIsWord("in")
	})
	if ok {
		return decl
	}

	if p.curTok.Type == lexer.IDENT && p.peekIsWord("in") {
		v := ast.NewDeclaration(nil, nil, ident(p.curTok), nil, p.curTok.Span)
		v.Doc = p.docComments(start)
		return v
	}

	if end >= 0 {
		// The declaration parsed but `in` did not follow it.
		p.fail(p.tokenAt(end+1), "in")
	}
	return nil
}

func (p *Parser) parseDomainStmt() *ast.DomainStmt {
	start := p.curTok.Span
	p.nextToken()
	name := ident(p.curTok)
	return ast.NewDomainStmt(name, mergeSpan(start, name.Span()))
}

// parseInterfaceStmt parses [local] interface|action|trigger name ['lat]
// [: ports] [{ } [else ...]].
func (p *Parser) parseInterfaceStmt() *ast.InterfaceStmt {
	start := p.curTok.Span

	local := false
	if p.curIsWord("local") {
		local = true
		p.nextToken()
	}
	kind := ast.InterfaceKind(p.curTok.Literal)

	p.nextToken()
	name := ident(p.curTok)

	var latency ast.Expr
	if p.peekTok.Type == lexer.TICK {
		if latency = p.parseLatency(); latency == nil {
			return nil
		}
	}

	var ports *ast.InterfacePorts
	if p.peekTok.Type == lexer.COLON {
		p.nextToken()
		if ports = p.parseInterfacePorts(); ports == nil {
			return nil
		}
	}

	var then *ast.Block
	var els ast.ElseBranch
	if p.peekTok.Type == lexer.LBRACE {
		p.nextToken()
		if then = p.parseBlock(); then == nil {
			return nil
		}
		var ok bool
		if els, ok = p.parseElse(); !ok {
			return nil
		}
	}

	return ast.NewInterfaceStmt(local, kind, name, latency, ports, then, els, mergeSpan(start, p.curTok.Span))
}
