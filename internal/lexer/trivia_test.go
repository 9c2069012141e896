package lexer

import (
	"testing"
)

func triviaTypes(toks []Token) []TokenType {
	types := make([]TokenType, 0, len(toks))
	for _, tok := range toks {
		types = append(types, tok.Type)
	}
	return types
}

func sameTypes(a, b []TokenType) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNewlineRunsCollapse(t *testing.T) {
	toks := expectTypes(t, "a\n\n  // c\n\nb", IDENT, NEWLINE, IDENT, EOF)

	nl := toks[1]
	if nl.Literal != "\n\n  // c\n\n" {
		t.Fatalf("unexpected newline literal %q", nl.Literal)
	}
	if got := triviaTypes(nl.Inner); !sameTypes(got, []TokenType{WHITESPACE, LINE_COMMENT}) {
		t.Fatalf("unexpected inner trivia %v", got)
	}
	if nl.Inner[1].Literal != "// c" {
		t.Fatalf("unexpected comment literal %q", nl.Inner[1].Literal)
	}
	if len(toks[2].Leading) != 0 {
		t.Fatalf("expected no leading trivia on b, got %v", toks[2].Leading)
	}
}

func TestTriviaAfterLastNewlineLeadsNextToken(t *testing.T) {
	toks := expectTypes(t, "a\n  b", IDENT, NEWLINE, IDENT, EOF)

	if toks[1].Literal != "\n" || len(toks[1].Inner) != 0 {
		t.Fatalf("unexpected newline %q with inner %v", toks[1].Literal, toks[1].Inner)
	}
	if got := triviaTypes(toks[2].Leading); !sameTypes(got, []TokenType{WHITESPACE}) {
		t.Fatalf("unexpected leading trivia %v", got)
	}
}

func TestDocCommentsAreDistinct(t *testing.T) {
	toks := expectTypes(t, "/// doc\n// plain\nx", NEWLINE, IDENT, EOF)

	nl := toks[0]
	if got := triviaTypes(nl.Leading); !sameTypes(got, []TokenType{DOC_COMMENT}) {
		t.Fatalf("unexpected leading trivia %v", got)
	}
	if nl.Leading[0].Literal != "/// doc" {
		t.Fatalf("unexpected doc literal %q", nl.Leading[0].Literal)
	}
	if got := triviaTypes(nl.Inner); !sameTypes(got, []TokenType{LINE_COMMENT}) {
		t.Fatalf("unexpected inner trivia %v", got)
	}
}

func TestBlockComments(t *testing.T) {
	tests := []struct {
		input   string
		comment string
	}{
		{"/* a */x", "/* a */"},
		{"/* a **/x", "/* a **/"},
		{"/* multi\nline */x", "/* multi\nline */"},
		{"/* /* no nesting */x", "/* /* no nesting */"},
	}

	for _, tt := range tests {
		toks := expectTypes(t, tt.input, IDENT, EOF)
		lead := toks[0].Leading
		if len(lead) != 1 || lead[0].Type != BLOCK_COMMENT {
			t.Fatalf("%q: expected one block comment, got %v", tt.input, lead)
		}
		if lead[0].Literal != tt.comment {
			t.Fatalf("%q: expected %q, got %q", tt.input, tt.comment, lead[0].Literal)
		}
	}
}

func TestBlockCommentSpanningLinesAdvancesLine(t *testing.T) {
	toks := collect("/* a\nb */ x")
	if toks[0].Span.Line != 2 || toks[0].Span.Column != 6 {
		t.Fatalf("expected x at 2:6, got %d:%d", toks[0].Span.Line, toks[0].Span.Column)
	}
}

func TestTriviaPredicates(t *testing.T) {
	for _, tt := range []TokenType{WHITESPACE, LINE_COMMENT, DOC_COMMENT, BLOCK_COMMENT} {
		if !IsTrivia(tt) {
			t.Errorf("expected %q to be trivia", tt)
		}
	}
	for _, tt := range []TokenType{NEWLINE, IDENT, EOF} {
		if IsTrivia(tt) {
			t.Errorf("expected %q not to be trivia", tt)
		}
	}
}

func TestReconstructRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"module A {}",
		"/// doc\nmodule A {\n\n\t// c\n\n  x = 1 /* inline */ + 2\n}\n",
		"\r\n\r\nx\r\n",
		"größe = λ # illegal",
		"x /* unterminated",
		"\n\n\n",
	}

	for _, input := range inputs {
		if got := Reconstruct(collect(input)); got != input {
			t.Errorf("round trip mismatch:\nwant %q\ngot  %q", input, got)
		}
	}
}
