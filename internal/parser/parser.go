package parser

import (
	"log/slog"

	"github.com/sus-lang/sus-parser/internal/ast"
	"github.com/sus-lang/sus-parser/internal/lexer"
)

// GrammarVersion is the version of the Sus grammar this parser accepts.
const GrammarVersion = "0.3.0"

type (
	prefixParseFn func() ast.Expr
	infixParseFn  func(ast.Expr) ast.Expr
)

type Option func(*options)

type options struct {
	filename string
	logger   *slog.Logger
	trivia   bool
}

// WithFilename configures the parser to attribute all emitted spans to the provided filename.
func WithFilename(name string) Option {
	return func(o *options) {
		o.filename = name
	}
}

// WithLogger routes the parser's debug logging to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithTrivia keeps every token, with its leading comments and whitespace, on
// the returned SourceFile.
func WithTrivia() Option {
	return func(o *options) {
		o.trivia = true
	}
}

const (
	precedenceLowest = iota
	precedencePartSelect
	precedenceCompare
	precedenceXor
	precedenceOr
	precedenceAnd
	precedenceAdditive
	precedenceMultiplicative
	precedenceUnary
	precedencePostfix
)

var precedences = map[lexer.TokenType]int{
	lexer.EQ:        precedenceCompare,
	lexer.NOT_EQ:    precedenceCompare,
	lexer.LT:        precedenceCompare,
	lexer.LE:        precedenceCompare,
	lexer.GT:        precedenceCompare,
	lexer.GE:        precedenceCompare,
	lexer.CARET:     precedenceXor,
	lexer.PIPE:      precedenceOr,
	lexer.AMPERSAND: precedenceAnd,
	lexer.PLUS:      precedenceAdditive,
	lexer.MINUS:     precedenceAdditive,
	lexer.ASTERISK:  precedenceMultiplicative,
	lexer.SLASH:     precedenceMultiplicative,
	lexer.PERCENT:   precedenceMultiplicative,
	lexer.LBRACKET:  precedencePostfix,
	lexer.LPAREN:    precedencePostfix,
	lexer.DOT:       precedencePostfix,
}

// Parser implements a Pratt-style recursive descent parser for Sus.
// Invariants:
//   - Lookahead: curTok is the token under examination and peekTok the one
//     after it. Both are views into toks at pos and are only changed through
//     nextToken and reset. Parse functions start with curTok on the first
//     token of their construct and return with curTok on its last token.
//   - Failures: a parse function that cannot continue records the failure
//     with fail and returns nil. Only the failure furthest into the input is
//     kept; failures at the same offset merge their expected sets. Nothing is
//     reported if the parse as a whole succeeds.
//   - Speculation: outside the declaration/expression resolver the parser never
//     backtracks. Inside it, memo bounds re-parsing to one attempt per rule and
//     position.
type Parser struct {
	toks    []lexer.Token
	pos     int
	curTok  lexer.Token
	peekTok lexer.Token

	lexErrors []lexer.LexerError

	err      *ParseError // furthest failure so far
	errors   []ParseError
	warnings []ParseError

	memo map[memoKey]memoEntry

	filename string
	logger   *slog.Logger
	trivia   bool

	prefixFns map[lexer.TokenType]prefixParseFn
	infixFns  map[lexer.TokenType]infixParseFn
}

// New returns a parser initialised with the provided source input. The whole
// input is tokenized up front.
func New(input string, opts ...Option) *Parser {
	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.DiscardHandler)
	}

	p := &Parser{
		prefixFns: make(map[lexer.TokenType]prefixParseFn),
		infixFns:  make(map[lexer.TokenType]infixParseFn),
		filename:  cfg.filename,
		logger:    cfg.logger,
		trivia:    cfg.trivia,
	}

	lx := lexer.New(input)
	if cfg.filename != "" {
		lx.SetFilename(cfg.filename)
	}
	for {
		tok := lx.NextToken()
		p.toks = append(p.toks, tok)
		if tok.Type == lexer.EOF {
			break
		}
	}
	p.lexErrors = lx.Errors

	p.registerPrefix(lexer.IDENT, p.parseTemplateGlobalExpr)
	p.registerPrefix(lexer.DOUBLE_COLON, p.parseTemplateGlobalExpr)
	p.registerPrefix(lexer.NUMBER, p.parseNumber)
	p.registerPrefix(lexer.LPAREN, p.parseParenExpr)
	p.registerPrefix(lexer.LBRACKET, p.parseArrayList)
	for _, op := range []lexer.TokenType{
		lexer.PLUS, lexer.MINUS, lexer.ASTERISK, lexer.BANG,
		lexer.PIPE, lexer.AMPERSAND, lexer.CARET,
	} {
		p.registerPrefix(op, p.parseUnaryExpr)
	}

	for _, op := range []lexer.TokenType{
		lexer.EQ, lexer.NOT_EQ, lexer.LT, lexer.LE, lexer.GT, lexer.GE,
		lexer.CARET, lexer.PIPE, lexer.AMPERSAND,
		lexer.PLUS, lexer.MINUS,
		lexer.ASTERISK, lexer.SLASH, lexer.PERCENT,
	} {
		p.registerInfix(op, p.parseBinaryExpr)
	}
	p.registerInfix(lexer.LBRACKET, p.parseArrayOp)
	p.registerInfix(lexer.LPAREN, p.parseCallExpr)
	p.registerInfix(lexer.DOT, p.parseFieldAccess)

	p.reset(0)

	p.logger.Debug("parser initialized", "file", cfg.filename, "tokens", len(p.toks), "lex_errors", len(p.lexErrors))

	return p
}

// Parse parses input and returns its tree, or the first error.
func Parse(input string, opts ...Option) (*ast.SourceFile, error) {
	p := New(input, opts...)
	file := p.ParseFile()
	if errs := p.Errors(); len(errs) > 0 {
		return nil, errs[0]
	}
	return file, nil
}

// Errors returns the error of the last ParseFile call. A failed parse has
// exactly one error.
func (p *Parser) Errors() []ParseError {
	return p.errors
}

// Warnings returns non-fatal findings of the last ParseFile call.
func (p *Parser) Warnings() []ParseError {
	return p.warnings
}

// ParseFile parses a full compilation unit. It returns nil when the input
// is malformed; Errors then describes why.
func (p *Parser) ParseFile() *ast.SourceFile {
	p.reset(0)
	p.err = nil
	p.errors = nil
	p.warnings = nil
	p.memo = nil

	if len(p.lexErrors) > 0 {
		lexErr := p.lexErrors[0]
		p.errors = []ParseError{newLexError(lexErr)}
		p.logger.Debug("lexing failed", "error", lexErr.Error())
		return nil
	}

	file := p.parseSourceFile()
	if file == nil {
		perr := p.failure()
		p.errors = []ParseError{perr}
		p.warnings = nil
		p.logger.Debug("parse failed", "kind", perr.Kind.String(), "line", perr.Span.Line, "column", perr.Span.Column)
		return nil
	}

	if p.trivia {
		file.Tokens = append([]lexer.Token(nil), p.toks...)
	}
	return file
}

func (p *Parser) registerPrefix(tokenType lexer.TokenType, fn prefixParseFn) {
	p.prefixFns[tokenType] = fn
}

func (p *Parser) registerInfix(tokenType lexer.TokenType, fn infixParseFn) {
	p.infixFns[tokenType] = fn
}
