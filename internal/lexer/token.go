package lexer

// TokenType represents the type of a token
type TokenType string

// Span represents the source location of a token
type Span struct {
	Filename string // optional source filename for diagnostics
	Line     int    // 1-based line number
	Column   int    // 1-based column number, counted in runes
	Start    int    // byte offset into the source
	End      int    // exclusive end byte offset
}

// Token represents a significant lexical token together with the trivia that
// precedes it.
type Token struct {
	Type    TokenType
	Literal string // exact source text of the token
	Span    Span

	// Leading holds the whitespace and comments between the previous
	// significant token and this one.
	Leading []Token

	// Inner holds the trivia a NEWLINE token swallowed while collapsing a
	// run of line breaks. Its text is already part of Literal.
	Inner []Token
}

// Token type constants
const (
	// Special tokens
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Identifiers and literals. Keywords are identifiers; the parser decides
	// from position whether one acts as a keyword.
	IDENT   TokenType = "IDENT"   // module, foo, x_1, ...
	NUMBER  TokenType = "NUMBER"  // 42, 1_000
	NEWLINE TokenType = "NEWLINE" // one or more '\n'

	// Operators
	ASSIGN    TokenType = "="
	PLUS      TokenType = "+"
	MINUS     TokenType = "-"
	ASTERISK  TokenType = "*"
	SLASH     TokenType = "/"
	PERCENT   TokenType = "%"
	BANG      TokenType = "!"
	PIPE      TokenType = "|"
	AMPERSAND TokenType = "&"
	CARET     TokenType = "^"

	EQ     TokenType = "=="
	NOT_EQ TokenType = "!="
	LT     TokenType = "<"
	LE     TokenType = "<="
	GT     TokenType = ">"
	GE     TokenType = ">="

	// Delimiters
	COMMA        TokenType = ","
	COLON        TokenType = ":"
	DOUBLE_COLON TokenType = "::"
	DOT          TokenType = "."
	DOT_DOT      TokenType = ".."
	TICK         TokenType = "'"
	ARROW        TokenType = "->"
	PLUS_COLON   TokenType = "+:"
	MINUS_COLON  TokenType = "-:"
	HASH_LPAREN  TokenType = "#("

	LPAREN   TokenType = "("
	RPAREN   TokenType = ")"
	LBRACE   TokenType = "{"
	RBRACE   TokenType = "}"
	LBRACKET TokenType = "["
	RBRACKET TokenType = "]"

	// Trivia tokens, only ever found in Token.Leading or Token.Inner
	WHITESPACE    TokenType = "WHITESPACE"    // spaces, tabs, '\r'
	LINE_COMMENT  TokenType = "LINE_COMMENT"  // //
	DOC_COMMENT   TokenType = "DOC_COMMENT"   // ///
	BLOCK_COMMENT TokenType = "BLOCK_COMMENT" // /* */
)

var keywords = map[string]struct{}{
	"module":      {},
	"struct":      {},
	"const":       {},
	"extern":      {},
	"__builtin__": {},
	"state":       {},
	"gen":         {},
	"input":       {},
	"output":      {},
	"reg":         {},
	"initial":     {},
	"when":        {},
	"if":          {},
	"else":        {},
	"for":         {},
	"in":          {},
	"domain":      {},
	"interface":   {},
	"action":      {},
	"trigger":     {},
	"local":       {},
	"type":        {},
}

// IsKeyword reports whether ident is one of the grammar's keywords. Keywords
// still lex as IDENT.
func IsKeyword(ident string) bool {
	_, ok := keywords[ident]
	return ok
}

// IsTrivia reports whether tt only appears as trivia.
func IsTrivia(tt TokenType) bool {
	switch tt {
	case WHITESPACE, LINE_COMMENT, DOC_COMMENT, BLOCK_COMMENT:
		return true
	default:
		return false
	}
}

// Reconstruct concatenates the text of tokens and their leading trivia. Fed
// with every token of a source up to and including EOF it returns the
// original source.
func Reconstruct(tokens []Token) string {
	size := 0
	for _, tok := range tokens {
		for _, tr := range tok.Leading {
			size += len(tr.Literal)
		}
		size += len(tok.Literal)
	}

	buf := make([]byte, 0, size)
	for _, tok := range tokens {
		for _, tr := range tok.Leading {
			buf = append(buf, tr.Literal...)
		}
		buf = append(buf, tok.Literal...)
	}
	return string(buf)
}
