package parser

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sus-lang/sus-parser/internal/diag"
	"github.com/sus-lang/sus-parser/internal/lexer"
)

// ErrorKind classifies parse failures.
type ErrorKind int

const (
	// ErrLex reports input the lexer could not tokenize.
	ErrLex ErrorKind = iota
	// ErrUnexpectedToken reports a token no grammar rule accepts at its position.
	ErrUnexpectedToken
	// ErrAmbiguityUnresolved reports that neither the declaration nor the
	// expression reading of an assignment target could be completed and the
	// two failed for unrelated reasons at the same token.
	ErrAmbiguityUnresolved
	// WarnExpressionStatement flags a statement that only evaluates
	// expressions. It never fails a parse.
	WarnExpressionStatement
)

func (k ErrorKind) String() string {
	switch k {
	case ErrLex:
		return "lex error"
	case ErrUnexpectedToken:
		return "unexpected token"
	case ErrAmbiguityUnresolved:
		return "ambiguity unresolved"
	case WarnExpressionStatement:
		return "expression statement"
	default:
		return "unknown error"
	}
}

// ParseError captures a parsing error with location context.
type ParseError struct {
	Kind     ErrorKind
	Message  string
	Span     lexer.Span
	Found    lexer.Token
	Expected []string // ordered, without duplicates
	Severity diag.Severity
	Code     diag.Code
}

// Error renders the error as "file:line:col: message".
func (e ParseError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	loc := fmt.Sprintf("%d:%d", e.Span.Line, e.Span.Column)
	if e.Span.Filename != "" {
		loc = e.Span.Filename + ":" + loc
	}
	return loc + ": " + msg
}

// ToDiagnostic converts a parse error into the shared diagnostic structure.
func (e ParseError) ToDiagnostic() diag.Diagnostic {
	severity := e.Severity
	if severity == "" {
		severity = diag.SeverityError
	}
	stage := diag.StageParser
	if e.Kind == ErrLex {
		stage = diag.StageLexer
	}

	span := diag.Span{
		Filename: e.Span.Filename,
		Line:     e.Span.Line,
		Column:   e.Span.Column,
		Start:    e.Span.Start,
		End:      e.Span.End,
	}

	d := diag.Diagnostic{
		Stage:    stage,
		Severity: severity,
		Code:     e.Code,
		Message:  e.Message,
		Span:     span,
	}

	switch e.Kind {
	case ErrUnexpectedToken:
		if len(e.Expected) > 0 {
			d = d.WithPrimarySpan(span, "expected "+formatExpected(e.Expected))
		}
	case ErrAmbiguityUnresolved:
		d = d.WithPrimarySpan(span, "neither reading continues here").
			WithNote("a declaration needs `type name`; an expression cannot be followed by a name").
			WithHelp("expected " + formatExpected(e.Expected))
	}
	return d
}

func newLexError(err lexer.LexerError) ParseError {
	d := err.ToDiagnostic()
	return ParseError{
		Kind:     ErrLex,
		Message:  err.Message,
		Span:     err.Span,
		Severity: diag.SeverityError,
		Code:     d.Code,
	}
}

// Names for token classes in expected sets. Anything else is literal token
// text.
var classNames = map[string]bool{
	"identifier":  true,
	"expression":  true,
	"statement":   true,
	"newline":     true,
	"end of file": true,
}

func formatExpected(expected []string) string {
	quoted := make([]string, len(expected))
	for i, e := range expected {
		if classNames[e] {
			quoted[i] = e
		} else {
			quoted[i] = "`" + e + "`"
		}
	}
	switch len(quoted) {
	case 0:
		return "nothing"
	case 1:
		return quoted[0]
	default:
		return "one of " + strings.Join(quoted, ", ")
	}
}

func describeToken(tok lexer.Token) string {
	switch tok.Type {
	case lexer.EOF:
		return "end of file"
	case lexer.NEWLINE:
		return "newline"
	default:
		return "`" + tok.Literal + "`"
	}
}

// tokenName is the expected-set entry for a token type.
func tokenName(tt lexer.TokenType) string {
	switch tt {
	case lexer.IDENT:
		return "identifier"
	case lexer.NEWLINE:
		return "newline"
	case lexer.EOF:
		return "end of file"
	default:
		return string(tt)
	}
}

// fail records that found does not fit any of expected.
func (p *Parser) fail(found lexer.Token, expected ...string) {
	p.mergeErr(&ParseError{
		Kind:     ErrUnexpectedToken,
		Span:     found.Span,
		Found:    found,
		Expected: expected,
		Severity: diag.SeverityError,
		Code:     diag.CodeParserUnexpectedToken,
	})
}

// mergeErr folds e into the furthest failure. It never keeps a reference to e.
func (p *Parser) mergeErr(e *ParseError) {
	if e == nil {
		return
	}
	if p.err == nil || e.Span.Start > p.err.Span.Start {
		c := *e
		c.Expected = slices.Clone(e.Expected)
		p.err = &c
		return
	}
	if e.Span.Start == p.err.Span.Start {
		for _, exp := range e.Expected {
			if !slices.Contains(p.err.Expected, exp) {
				p.err.Expected = append(p.err.Expected, exp)
			}
		}
	}
}

// capture runs fn with a fresh failure record and returns the failure fn
// produced, after folding it into the outer record.
func (p *Parser) capture(fn func()) *ParseError {
	saved := p.err
	p.err = nil
	fn()
	local := p.err
	p.err = saved
	p.mergeErr(local)
	return local
}

// failure returns the final error of a failed parse.
func (p *Parser) failure() ParseError {
	if p.err == nil {
		// Every nil return is preceded by fail; keep a usable error anyway.
		p.fail(p.curTok)
	}
	e := *p.err
	switch e.Kind {
	case ErrAmbiguityUnresolved:
		e.Code = diag.CodeParserAmbiguityUnresolved
		e.Message = "cannot parse " + describeToken(e.Found) + " as part of a declaration or an expression"
	default:
		e.Message = "expected " + formatExpected(e.Expected) + ", found " + describeToken(e.Found)
	}
	return e
}

func (p *Parser) warn(kind ErrorKind, code diag.Code, msg string, span lexer.Span) {
	p.warnings = append(p.warnings, ParseError{
		Kind:     kind,
		Message:  msg,
		Span:     span,
		Severity: diag.SeverityWarning,
		Code:     code,
	})
}
