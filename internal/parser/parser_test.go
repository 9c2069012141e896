package parser_test

import (
	"testing"

	"github.com/sus-lang/sus-parser/internal/ast"
	"github.com/sus-lang/sus-parser/internal/parser"
)

func parseFile(t *testing.T, src string) (*ast.SourceFile, []parser.ParseError) {
	t.Helper()

	p := parser.New(src)
	file := p.ParseFile()

	return file, p.Errors()
}

func assertNoErrors(t *testing.T, errs []parser.ParseError) {
	t.Helper()

	if len(errs) == 0 {
		return
	}

	for _, err := range errs {
		t.Errorf("unexpected parse error: %s", err.Error())
	}
	t.Fatalf("parser reported %d error(s)", len(errs))
}

func mustParse(t *testing.T, src string) *ast.SourceFile {
	t.Helper()

	file, errs := parseFile(t, src)
	assertNoErrors(t, errs)
	if file == nil {
		t.Fatalf("file is nil")
	}
	return file
}

// checkSexp parses src and compares its S-expression rendering.
func checkSexp(t *testing.T, src, want string) {
	t.Helper()

	if got := ast.Sexp(mustParse(t, src)); got != want {
		t.Fatalf("source:\n%s\nwant %s\ngot  %s", src, want, got)
	}
}

// checkBody parses body as the block of a module and compares the rendered
// statements.
func checkBody(t *testing.T, body, want string) {
	t.Helper()
	checkSexp(t, "module T {\n"+body+"\n}", "(module T (block "+want+"))")
}

func TestParseEmptyFiles(t *testing.T) {
	for _, src := range []string{"", "\n\n", "// only a comment\n", "/* block */"} {
		file := mustParse(t, src)
		if len(file.Objects) != 0 {
			t.Fatalf("%q: expected no objects, got %d", src, len(file.Objects))
		}
	}
}

func TestParseInterfaceExample(t *testing.T) {
	const src = `module Foo {
	interface main : input int a, int b -> output int sum {
		sum = a + b * 2
	}
}`

	checkSexp(t, src,
		"(module Foo (block (interface main "+
			"(ports (in (decl input int a) (decl int b)) (out (decl output int sum))) "+
			"(block (= sum (+ a (* b 2)))))))")
}

func TestParseGlobalObjects(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"module", "module A {}", "(module A (block))"},
		{"struct", "struct S {}", "(struct S (block))"},
		{"const", "const int[4] X {}", "(const (array int 4) X (block))"},
		{"extern", "extern module Bar {}", "(extern module Bar (block))"},
		{"builtin", "__builtin__ struct Bit {}", "(__builtin__ struct Bit (block))"},
		{
			"template parameters",
			"module Foo #(T, gen int N) {}",
			"(module Foo (params T (decl gen int N)) (block))",
		},
		{
			"multi-line parameters",
			"module Foo #(\n\tT,\n\tgen int N\n) {}",
			"(module Foo (params T (decl gen int N)) (block))",
		},
		{
			"several objects",
			"module A {}\n\n// between\nmodule B {}\n",
			"(module A (block))\n(module B (block))",
		},
		{"keyword as name", "module module {}", "(module module (block))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkSexp(t, tt.src, tt.want)
		})
	}
}

func TestParseAssignmentTargets(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"expression target", "x = a + b", "(= x (+ a b))"},
		{"array declaration", "int[4] x = [1, 2, 3, 4]", "(= (decl (array int 4) x) (list 1 2 3 4))"},
		{"indexed expression", "x[4] = 1", "(= (index x 4) 1)"},
		{"mixed targets", "a, int b = f(x)", "(= a (decl int b) (call f x))"},
		{"newline after comma", "a,\n\tb = f(x)", "(= a b (call f x))"},
		{"declaration only", "int x", "(stmt (decl int x))"},
		{"templated type", "Foo#(W: 8) inst", "(stmt (decl Foo#(W: 8) inst))"},
		{"declaration modifiers", "state int counter = 0", "(= (decl state int counter) 0)"},
		{"gen declaration", "gen int N = 5", "(= (decl gen int N) 5)"},
		{"latency", "int x'3 = y", "(= (decl int x '3) y)"},
		{"nested array type", "bool[2][3] m", "(stmt (decl (array (array bool 2) 3) m))"},
		{"field target", "a.b = 1", "(= (. a b) 1)"},
		{"call statement", "f(x)", "(stmt (call f x))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkBody(t, tt.body, tt.want)
		})
	}
}

func TestParseWriteModifiers(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{"reg int x = y", "(= (reg (decl int x)) y)"},
		{"reg reg int x = y", "(= (reg reg (decl int x)) y)"},
		{"initial int z = 0", "(= (initial (decl int z)) 0)"},
		{"reg y = x", "(= (reg y) x)"},
		// a modifier word only counts when a target follows it
		{"reg initial x = 1", "(= (reg (decl initial x)) 1)"},
		{"reg = 1", "(= reg 1)"},
		{"reg.x = 1", "(= (. reg x) 1)"},
		// targets that do not start with a name
		{"initial [a, b] = c", "(= (initial (list a b)) c)"},
		{"reg (a) = 1", "(= (reg (paren a)) 1)"},
		{"reg reg (a) = 1", "(= (reg reg (paren a)) 1)"},
		{"reg -x = 1", "(= (reg (- x)) 1)"},
		{"a, initial [b] = c", "(= a (initial (list b)) c)"},
		// not a valid target after the modifier, so `reg` is called
		{"reg (a, b) = 1", "(= (call reg a b) 1)"},
	}

	for _, tt := range tests {
		checkBody(t, tt.body, tt.want)
	}
}

func TestKeywordsArePositional(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{"int if = 3", "(= (decl int if) 3)"},
		{"for = 1", "(= for 1)"},
		{"domain = 2", "(= domain 2)"},
		{"interface = action", "(= interface action)"},
		{"x = type", "(= x type)"},
	}

	for _, tt := range tests {
		checkBody(t, tt.body, tt.want)
	}
}

func TestParseExpressions(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want string
	}{
		{"precedence", "a + b * c", "(+ a (* b c))"},
		{"left associative", "a - b - c", "(- (- a b) c)"},
		{"comparison chain", "a < b == c", "(== (< a b) c)"},
		{"bitwise precedence", "a | b & c", "(| a (& b c))"},
		{"xor below or", "a ^ b | c", "(^ a (| b c))"},
		{"compare below arithmetic", "a == b + 1", "(== a (+ b 1))"},
		{"unary binds tight", "-a * b", "(* (- a) b)"},
		{"reductions", "!a | -b", "(| (! a) (- b))"},
		{"reduction or", "|a", "(| a)"},
		{"parentheses", "(a + b) * c", "(* (paren (+ a b)) c)"},
		{"postfix chain", "a.b[2](c)", "(call (index (. a b) 2) c)"},
		{"empty call", "f()", "(call f)"},
		{"call arguments", "f(a, b + 1)", "(call f a (+ b 1))"},
		{"array literal", "[1, 2,\n\t3]", "(list 1 2 3)"},
		{"empty array literal", "[]", "(list)"},
		{"modulo", "a % 4", "(% a 4)"},
		{"global path", "::a::b", "::a::b"},
		{
			"template arguments",
			"::mod::Foo#(T: type int[3], N: 4, B)",
			"::mod::Foo#(T: type (array int 3), N: 4, B)",
		},
		{
			"multi-line template arguments",
			"Foo#(\n\tA: 1,\n\tB: 2\n)",
			"Foo#(A: 1, B: 2)",
		},
		{"type as value name", "Foo#(A: type)", "Foo#(A: type)"},
		{"number separators", "1_000", "1_000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkBody(t, "x = "+tt.expr, "(= x "+tt.want+")")
		})
	}
}

func TestParseSlices(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"y[2]", "(index y 2)"},
		{"y[2+:4]", "(index y (slice 2 +: 4))"},
		{"y[8-:4]", "(index y (slice 8 -: 4))"},
		{"y[:4]", "(index y (slice _ : 4))"},
		{"y[2:]", "(index y (slice 2 : _))"},
		{"y[:]", "(index y (slice _ : _))"},
		{"y[a+1:b]", "(index y (slice (+ a 1) : b))"},
		{"y[i][j]", "(index (index y i) j)"},
	}

	for _, tt := range tests {
		checkBody(t, "x = "+tt.expr, "(= x "+tt.want+")")
	}
}

func TestParseIfStatements(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"plain if", "if a {\n\tx = 1\n}", "(if a (block (= x 1)))"},
		{"when", "when a == 1 {}", "(when (== a 1) (block))"},
		{"else", "if a {} else {}", "(if a (block) (block))"},
		{
			"else chain",
			"if a == 1 { x = 1 } else if b { x = 2 } else { x = 3 }",
			"(if (== a 1) (block (= x 1)) (if b (block (= x 2)) (block (= x 3))))",
		},
		{
			"bindings",
			"when c : int v -> int w {}",
			"(when c (ports (in (decl int v)) (out (decl int w))) (block))",
		},
		{"output bindings only", "if c : -> bool ok {}", "(if c (ports (out (decl bool ok))) (block))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkBody(t, tt.body, tt.want)
		})
	}
}

func TestParseForStatements(t *testing.T) {
	checkBody(t, "for int i in 0..8 {\n\tx[i] = i\n}", "(for (decl int i) 0 8 (block (= (index x i) i)))")
	checkBody(t, "for i in 0..N {}", "(for (decl i) 0 N (block))")
	checkBody(t, "for gen int i in a+1..b {}", "(for (decl gen int i) (+ a 1) b (block))")
}

func TestParseInterfaces(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bare", "interface main", "(interface main)"},
		{
			"local action with latency",
			"local action fire'2 : -> int out_v",
			"(local action fire '2 (ports (out (decl int out_v))))",
		},
		{"trigger", "trigger done : int code", "(trigger done (ports (in (decl int code))))"},
		{
			"ports across lines",
			"interface io :\n\tint a,\n\tint b ->\n\tint c",
			"(interface io (ports (in (decl int a) (decl int b)) (out (decl int c))))",
		},
		{"with else", "action go {} else {}", "(action go (block) (block))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkBody(t, tt.body, tt.want)
		})
	}
}

func TestParseOtherStatements(t *testing.T) {
	checkBody(t, "domain clk", "(domain clk)")
	checkBody(t, "{\n\tx = 1\n}", "(block (= x 1))")
	checkBody(t, "x = 1\n\n\ny = 2", "(= x 1) (= y 2)")
}

func TestParseFileSpans(t *testing.T) {
	file := mustParse(t, "\nmodule A {\n\tx = 1\n}\n")

	obj := file.Objects[0]
	span := obj.Span()
	if span.Line != 2 || span.Column != 1 {
		t.Fatalf("expected object at 2:1, got %d:%d", span.Line, span.Column)
	}
	if span.Start != 1 || span.End != 20 {
		t.Fatalf("expected span [1,20), got [%d,%d)", span.Start, span.End)
	}

	stmt := obj.Block.Stmts[0]
	if s := stmt.Span(); s.Line != 3 || s.Column != 2 || s.Start != 13 || s.End != 18 {
		t.Fatalf("unexpected statement span %+v", s)
	}
}

func TestParseAttributesFilename(t *testing.T) {
	file, err := parser.Parse("module A {}", parser.WithFilename("a.sus"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := file.Objects[0].Name.Span().Filename; got != "a.sus" {
		t.Fatalf("expected filename a.sus, got %q", got)
	}
}
