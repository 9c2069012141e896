package parser_test

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/sus-lang/sus-parser/internal/ast"
	"github.com/sus-lang/sus-parser/internal/lexer"
	"github.com/sus-lang/sus-parser/internal/parser"
)

const docSource = `/// A counter.
/// Wraps at N.
module Counter {
	/// the running count
	// not part of the doc
	state int count
	int x /// trails x, documents nothing
	int y
}

/// Second object.
module B {}
`

func TestDocComments(t *testing.T) {
	file := mustParse(t, docSource)

	if got := file.Objects[0].Doc; strings.Join(got, "|") != "A counter.|Wraps at N." {
		t.Fatalf("unexpected module doc %q", got)
	}
	if got := file.Objects[1].Doc; strings.Join(got, "|") != "Second object." {
		t.Fatalf("unexpected second module doc %q", got)
	}

	stmts := file.Objects[0].Block.Stmts
	decl := func(i int) *ast.Declaration {
		t.Helper()
		left, ok := stmts[i].(*ast.AssignLeftSide)
		if !ok {
			t.Fatalf("statement %d is %T", i, stmts[i])
		}
		return left.Items[0].Decl
	}

	if got := decl(0).Doc; strings.Join(got, "|") != "the running count" {
		t.Fatalf("unexpected count doc %q", got)
	}
	if got := decl(1).Doc; len(got) != 0 {
		t.Fatalf("x should have no doc, got %q", got)
	}
	if got := decl(2).Doc; len(got) != 0 {
		t.Fatalf("trailing comment leaked onto y: %q", got)
	}
}

func TestDocCommentsOnWriteModifiedDeclaration(t *testing.T) {
	file := mustParse(t, "module A {\n\t/// output register\n\treg int q = d\n}")

	stmt := file.Objects[0].Block.Stmts[0].(*ast.DeclAssignStmt)
	if got := stmt.Left.Items[0].Decl.Doc; strings.Join(got, "|") != "output register" {
		t.Fatalf("unexpected doc %q", got)
	}
}

func TestTriviaRoundTrip(t *testing.T) {
	sources := []string{
		docSource,
		"module A {\n\tx = a /* inline */ + b // trailing\n}\n",
		"\n\n// leading\n\nmodule A {}",
	}

	for _, src := range sources {
		file, err := parser.Parse(src, parser.WithTrivia())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := lexer.Reconstruct(file.Tokens); got != src {
			t.Fatalf("round trip mismatch:\nwant %q\ngot  %q", src, got)
		}
	}
}

func TestTokensOmittedWithoutTrivia(t *testing.T) {
	file := mustParse(t, "module A {}")
	if file.Tokens != nil {
		t.Fatalf("expected no tokens, got %d", len(file.Tokens))
	}
}

const largeSource = `module Adder #(gen int W) {
	interface add : int[W] a, int[W] b -> int[W+1] sum
	reg int[W+1] acc = a + b
	for int i in 0..W {
		if a[i] & b[i] {
			acc[i+:1] = 1
		} else {
			acc[i] = 0
		}
	}
	sum = acc
}

module Top {
	Adder#(W: 8) add8
	int[9] out_v = add8.add(x, y)
}
`

func TestParseIsDeterministic(t *testing.T) {
	want := ast.Sexp(mustParse(t, largeSource))
	for range 5 {
		if got := ast.Sexp(mustParse(t, largeSource)); got != want {
			t.Fatalf("parses disagree:\n%s\n%s", want, got)
		}
	}
}

func TestConcurrentParsers(t *testing.T) {
	want := ast.Sexp(mustParse(t, largeSource))

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			file, err := parser.Parse(largeSource)
			if err != nil {
				results[i] = err.Error()
				return
			}
			results[i] = ast.Sexp(file)
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		if got != want {
			t.Fatalf("parser %d disagrees:\n%s", i, got)
		}
	}
}

func TestDeeplyNestedTargetsParse(t *testing.T) {
	target := "x"
	for range 40 {
		target = "x[" + target + "]"
	}

	file := mustParse(t, "module A {\n\t"+target+" = 1\n}")
	stmt := file.Objects[0].Block.Stmts[0].(*ast.DeclAssignStmt)
	if _, ok := stmt.Left.Items[0].Expr.(*ast.ArrayOp); !ok {
		t.Fatalf("expected an indexed expression, got %T", stmt.Left.Items[0].Expr)
	}
}

func TestDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	p := parser.New("module A {\n\tint[4] x = y\n}", parser.WithLogger(logger))
	if p.ParseFile() == nil {
		t.Fatalf("unexpected failure: %v", p.Errors())
	}

	out := buf.String()
	for _, want := range []string{"parser initialized", "resolved assignment target", "reading=declaration", "parsed global object"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}
