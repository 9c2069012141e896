package lexer

import (
	"iter"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sus-lang/sus-parser/internal/diag"
)

type LexerErrorKind int

const (
	ErrUnterminatedBlockComment LexerErrorKind = iota
	ErrIllegalRune
)

type LexerError struct {
	Kind    LexerErrorKind
	Message string
	Span    Span
}

func (e LexerError) Error() string {
	return strconv.Itoa(e.Span.Line) + ":" + strconv.Itoa(e.Span.Column) + ": " + e.Message
}

func (k LexerErrorKind) diagnosticCode() diag.Code {
	switch k {
	case ErrUnterminatedBlockComment:
		return diag.CodeLexerUnterminatedBlockComment
	case ErrIllegalRune:
		return diag.CodeLexerIllegalRune
	default:
		return diag.Code("LEXER_UNKNOWN_ERROR")
	}
}

// ToDiagnostic converts a lexer error into a shared diagnostic structure.
func (e LexerError) ToDiagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageLexer,
		Severity: diag.SeverityError,
		Code:     e.Kind.diagnosticCode(),
		Message:  e.Message,
		Span: diag.Span{
			Filename: e.Span.Filename,
			Line:     e.Span.Line,
			Column:   e.Span.Column,
			Start:    e.Span.Start,
			End:      e.Span.End,
		},
	}
}

const eof rune = -1

// Lexer represents the lexer state
type Lexer struct {
	input    string
	filename string
	pos      int  // byte offset of the current rune
	width    int  // byte width of the current rune
	ch       rune // current rune (eof at end of input)
	line     int  // current line number (1-based)
	column   int  // current column number (1-based)

	Errors []LexerError
}

// lexState is a snapshot used when the lexer has to look past trivia and
// may need to give the scanned text back.
type lexState struct {
	pos, width   int
	ch           rune
	line, column int
	errs         int
}

func (l *Lexer) addError(kind LexerErrorKind, msg string, span Span) {
	l.Errors = append(l.Errors, LexerError{
		Kind:    kind,
		Message: msg,
		Span:    span,
	})
}

// New creates a new lexer for the given input.
func New(input string) *Lexer {
	return NewAt(input, 0)
}

// NewAt creates a lexer that starts at the byte offset of input. Line and
// column information is computed as if lexing had started at the beginning,
// so tokens produced from an offset are interchangeable with those of a full
// pass. offset should sit on a token boundary.
func NewAt(input string, offset int) *Lexer {
	offset = max(0, min(offset, len(input)))

	line := 1 + strings.Count(input[:offset], "\n")
	lineStart := strings.LastIndexByte(input[:offset], '\n') + 1
	column := 1 + utf8.RuneCountInString(input[lineStart:offset])

	l := &Lexer{
		input:  input,
		pos:    offset,
		line:   line,
		column: column,
	}
	l.decode()
	return l
}

// SetFilename attributes all subsequently produced spans to name.
func (l *Lexer) SetFilename(name string) {
	l.filename = name
}

// Tokenize lazily yields the significant tokens of input, ending with EOF.
// Trivia travels on each token's Leading field.
func Tokenize(input string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		l := New(input)
		for {
			tok := l.NextToken()
			if !yield(tok) || tok.Type == EOF {
				return
			}
		}
	}
}

func (l *Lexer) decode() {
	if l.pos >= len(l.input) {
		l.ch, l.width = eof, 0
		return
	}
	l.ch, l.width = utf8.DecodeRuneInString(l.input[l.pos:])
}

// read advances the lexer to the next rune, keeping line/column in step with
// the rune at pos.
func (l *Lexer) read() {
	if l.ch == eof {
		return
	}
	if l.ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	l.pos += l.width
	l.decode()
}

// peekByte returns the byte n positions past the current one. Only used while
// the current rune is ASCII.
func (l *Lexer) peekByte(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) save() lexState {
	return lexState{pos: l.pos, width: l.width, ch: l.ch, line: l.line, column: l.column, errs: len(l.Errors)}
}

func (l *Lexer) restore(s lexState) {
	l.pos, l.width, l.ch = s.pos, s.width, s.ch
	l.line, l.column = s.line, s.column
	l.Errors = l.Errors[:s.errs]
}

// makeToken creates a token spanning from the captured start to the current
// position.
func (l *Lexer) makeToken(tokType TokenType, startLine, startColumn, startPos int) Token {
	return Token{
		Type:    tokType,
		Literal: l.input[startPos:l.pos],
		Span: Span{
			Filename: l.filename,
			Line:     startLine,
			Column:   startColumn,
			Start:    startPos,
			End:      l.pos,
		},
	}
}

// consume reads n ASCII runes and returns them as a single token.
func (l *Lexer) consume(tokType TokenType, n int) Token {
	startLine, startColumn, startPos := l.line, l.column, l.pos
	for i := 0; i < n; i++ {
		l.read()
	}
	return l.makeToken(tokType, startLine, startColumn, startPos)
}

// scanTrivia collects non-newline whitespace and comments.
func (l *Lexer) scanTrivia() []Token {
	var trivia []Token
	for {
		startLine, startColumn, startPos := l.line, l.column, l.pos

		switch {
		case isSpace(l.ch):
			for isSpace(l.ch) {
				l.read()
			}
			trivia = append(trivia, l.makeToken(WHITESPACE, startLine, startColumn, startPos))

		case l.ch == '/' && l.peekByte(1) == '/':
			// '///' must win over '//' followed by '/'
			tokType := LINE_COMMENT
			if l.peekByte(2) == '/' {
				tokType = DOC_COMMENT
			}
			for l.ch != '\n' && l.ch != eof {
				l.read()
			}
			trivia = append(trivia, l.makeToken(tokType, startLine, startColumn, startPos))

		case l.ch == '/' && l.peekByte(1) == '*':
			l.read() // consume '/'
			l.read() // consume '*'
			l.skipBlockComment(startLine, startColumn, startPos)
			trivia = append(trivia, l.makeToken(BLOCK_COMMENT, startLine, startColumn, startPos))

		default:
			return trivia
		}
	}
}

// skipBlockComment reads up to and including the first "*/". Block comments
// do not nest.
func (l *Lexer) skipBlockComment(startLine, startColumn, startPos int) {
	for {
		if l.ch == eof {
			l.addError(
				ErrUnterminatedBlockComment,
				"unterminated block comment",
				Span{Filename: l.filename, Line: startLine, Column: startColumn, Start: startPos, End: l.pos},
			)
			return
		}
		if l.ch == '*' && l.peekByte(1) == '/' {
			l.read() // consume '*'
			l.read() // consume '/'
			return
		}
		l.read()
	}
}

// readNewlines collapses a run of line breaks into one NEWLINE token. Trivia
// sitting between two line breaks of the run becomes part of the token and is
// listed in Inner; trivia after the last line break is left for the next
// token.
func (l *Lexer) readNewlines() Token {
	startLine, startColumn, startPos := l.line, l.column, l.pos

	var inner []Token
	for {
		for l.ch == '\n' {
			l.read()
		}
		state := l.save()
		trivia := l.scanTrivia()
		if l.ch != '\n' {
			l.restore(state)
			break
		}
		inner = append(inner, trivia...)
	}

	tok := l.makeToken(NEWLINE, startLine, startColumn, startPos)
	tok.Inner = inner
	return tok
}

// NextToken returns the next significant token from the input
func (l *Lexer) NextToken() Token {
	leading := l.scanTrivia()
	tok := l.scanToken()
	tok.Leading = leading
	return tok
}

func (l *Lexer) scanToken() Token {
	switch l.ch {
	case eof:
		return l.makeToken(EOF, l.line, l.column, l.pos)

	case '\n':
		return l.readNewlines()

	case '=':
		if l.peekByte(1) == '=' {
			return l.consume(EQ, 2)
		}
		return l.consume(ASSIGN, 1)

	case '+':
		// "+:" must not steal the first colon of a "::" global path
		if l.peekByte(1) == ':' && l.peekByte(2) != ':' {
			return l.consume(PLUS_COLON, 2)
		}
		return l.consume(PLUS, 1)

	case '-':
		switch {
		case l.peekByte(1) == '>':
			return l.consume(ARROW, 2)
		case l.peekByte(1) == ':' && l.peekByte(2) != ':':
			return l.consume(MINUS_COLON, 2)
		default:
			return l.consume(MINUS, 1)
		}

	case '!':
		if l.peekByte(1) == '=' {
			return l.consume(NOT_EQ, 2)
		}
		return l.consume(BANG, 1)

	case '<':
		if l.peekByte(1) == '=' {
			return l.consume(LE, 2)
		}
		return l.consume(LT, 1)

	case '>':
		if l.peekByte(1) == '=' {
			return l.consume(GE, 2)
		}
		return l.consume(GT, 1)

	case ':':
		if l.peekByte(1) == ':' {
			return l.consume(DOUBLE_COLON, 2)
		}
		return l.consume(COLON, 1)

	case '.':
		if l.peekByte(1) == '.' {
			return l.consume(DOT_DOT, 2)
		}
		return l.consume(DOT, 1)

	case '#':
		if l.peekByte(1) == '(' {
			return l.consume(HASH_LPAREN, 2)
		}
		return l.illegal()

	case '*':
		return l.consume(ASTERISK, 1)
	case '/':
		return l.consume(SLASH, 1)
	case '%':
		return l.consume(PERCENT, 1)
	case '|':
		return l.consume(PIPE, 1)
	case '&':
		return l.consume(AMPERSAND, 1)
	case '^':
		return l.consume(CARET, 1)
	case ',':
		return l.consume(COMMA, 1)
	case '\'':
		return l.consume(TICK, 1)
	case '(':
		return l.consume(LPAREN, 1)
	case ')':
		return l.consume(RPAREN, 1)
	case '{':
		return l.consume(LBRACE, 1)
	case '}':
		return l.consume(RBRACE, 1)
	case '[':
		return l.consume(LBRACKET, 1)
	case ']':
		return l.consume(RBRACKET, 1)

	default:
		switch {
		case isIdentStart(l.ch):
			return l.readIdentifier()
		case isDigit(l.ch):
			return l.readNumber()
		default:
			return l.illegal()
		}
	}
}

// readIdentifier reads an identifier; keywords are identifiers too.
func (l *Lexer) readIdentifier() Token {
	startLine, startColumn, startPos := l.line, l.column, l.pos
	for isIdentStart(l.ch) || unicode.IsDigit(l.ch) {
		l.read()
	}
	return l.makeToken(IDENT, startLine, startColumn, startPos)
}

// readNumber reads a decimal literal with optional '_' group separators. The
// text is kept verbatim; its value is not computed here.
func (l *Lexer) readNumber() Token {
	startLine, startColumn, startPos := l.line, l.column, l.pos
	for isDigit(l.ch) || l.ch == '_' {
		l.read()
	}
	return l.makeToken(NUMBER, startLine, startColumn, startPos)
}

func (l *Lexer) illegal() Token {
	tok := l.consume(ILLEGAL, 1)
	l.addError(
		ErrIllegalRune,
		"illegal character "+strconv.Quote(tok.Literal),
		tok.Span,
	)
	return tok
}

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\r'
}

func isIdentStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch) || unicode.In(ch, unicode.Nl, unicode.Other_Alphabetic)
}

func isDigit(ch rune) bool {
	// Numeric literals are restricted to ASCII digits.
	return ch >= '0' && ch <= '9'
}
