package diag_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sus-lang/sus-parser/internal/diag"
	"github.com/sus-lang/sus-parser/internal/lexer"
)

func TestFromLexerError(t *testing.T) {
	err := lexer.LexerError{
		Kind:    lexer.ErrUnterminatedBlockComment,
		Message: "unterminated block comment",
		Span: lexer.Span{
			Line:   1,
			Column: 3,
			Start:  2,
			End:    6,
		},
	}

	diagnostic := err.ToDiagnostic()

	if diagnostic.Stage != diag.StageLexer {
		t.Fatalf("expected stage %q, got %q", diag.StageLexer, diagnostic.Stage)
	}
	if diagnostic.Code != diag.CodeLexerUnterminatedBlockComment {
		t.Fatalf("expected code %q, got %q", diag.CodeLexerUnterminatedBlockComment, diagnostic.Code)
	}
	if diagnostic.Message != err.Message {
		t.Fatalf("expected message %q, got %q", err.Message, diagnostic.Message)
	}
	if diagnostic.Severity != diag.SeverityError {
		t.Fatalf("expected severity %q, got %q", diag.SeverityError, diagnostic.Severity)
	}

	wantSpan := diag.Span{
		Line:   err.Span.Line,
		Column: err.Span.Column,
		Start:  err.Span.Start,
		End:    err.Span.End,
	}
	if diagnostic.Span != wantSpan {
		t.Fatalf("expected span %+v, got %+v", wantSpan, diagnostic.Span)
	}
}

func TestDiagnosticError(t *testing.T) {
	d := diag.Diagnostic{
		Severity: diag.SeverityWarning,
		Message:  "unused value",
		Span:     diag.Span{Filename: "top.sus", Line: 4, Column: 2},
	}
	if got, want := d.Error(), "top.sus:4:2: warning: unused value"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}

	d.Span = diag.Span{}
	if got, want := d.Error(), "warning: unused value"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestFormatterSnippet(t *testing.T) {
	src := "module Foo {\n\tx = a +\n}\n"
	span := diag.Span{Filename: "foo.sus", Line: 2, Column: 9, Start: 20, End: 21}

	d := diag.Diagnostic{
		Stage:    diag.StageParser,
		Severity: diag.SeverityError,
		Code:     diag.CodeParserUnexpectedToken,
		Message:  "expected expression, found newline",
		Span:     span,
	}.WithPrimarySpan(span, "expected expression").WithHelp("finish the expression")

	var buf bytes.Buffer
	f := diag.NewFormatter(&buf)
	f.SetColor(false)
	f.AddSource("foo.sus", src)
	f.Format(d)

	out := buf.String()
	for _, want := range []string{
		"error[PARSER_UNEXPECTED_TOKEN]: expected expression, found newline",
		"--> foo.sus:2:9",
		"2 | \tx = a +",
		"^ expected expression",
		"help: finish the expression",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("formatted output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatterWithoutSpan(t *testing.T) {
	var buf bytes.Buffer
	f := diag.NewFormatter(&buf)
	f.SetColor(false)
	f.Format(diag.Diagnostic{
		Severity: diag.SeverityWarning,
		Message:  "nothing to parse",
		Notes:    []string{"the directory has no .sus files"},
	})

	out := buf.String()
	if !strings.HasPrefix(out, "warning: nothing to parse\n") {
		t.Fatalf("unexpected header:\n%s", out)
	}
	if !strings.Contains(out, "= note: the directory has no .sus files") {
		t.Fatalf("missing note:\n%s", out)
	}
}

func TestFormatterMissingSourceFile(t *testing.T) {
	var buf bytes.Buffer
	f := diag.NewFormatter(&buf)
	f.SetColor(false)
	f.Format(diag.Diagnostic{
		Severity: diag.SeverityError,
		Message:  "boom",
		Span:     diag.Span{Filename: "does/not/exist.sus", Line: 3, Column: 1},
	})

	if out := buf.String(); !strings.Contains(out, "--> does/not/exist.sus:3:1") {
		t.Fatalf("expected location fallback, got:\n%s", out)
	}
}
