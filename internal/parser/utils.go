package parser

import (
	"strings"

	"github.com/sus-lang/sus-parser/internal/ast"
	"github.com/sus-lang/sus-parser/internal/lexer"
)

// mergeSpan assumes start.End <= end.End and returns a span covering both.
// The parser relies on lexer spans being half-open; callers should pass the
// earliest start span first to preserve monotonic growth for AST nodes.
func mergeSpan(start, end lexer.Span) lexer.Span {
	span := start

	if end.End > span.End {
		span.End = end.End
	}

	return span
}

func ident(tok lexer.Token) *ast.Ident {
	return ast.NewIdent(tok.Literal, tok.Span)
}

// docComments returns the `///` lines written directly above the token at
// index start: those in its own leading trivia and those between the line
// breaks of the newline run before it. Comments trailing the previous line
// belong to that line and are skipped, except before the first token of
// the file.
func (p *Parser) docComments(start int) []string {
	var trivia []lexer.Token
	if start > 0 {
		if prev := p.toks[start-1]; prev.Type == lexer.NEWLINE {
			if start-1 == 0 {
				trivia = append(trivia, prev.Leading...)
			}
			trivia = append(trivia, prev.Inner...)
		}
	}
	trivia = append(trivia, p.tokenAt(start).Leading...)

	var doc []string
	for _, tr := range trivia {
		if tr.Type != lexer.DOC_COMMENT {
			continue
		}
		text := strings.TrimPrefix(tr.Literal, "///")
		text = strings.TrimPrefix(text, " ")
		doc = append(doc, strings.TrimRight(text, " \t\r"))
	}
	return doc
}
