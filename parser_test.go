// parser_test.go
package nolang

import (
	"reflect"
	"strings"
	"testing"
)

// --- helpers ---------------------------------------------------------------

func mustParse(t *testing.T, src string) *Program {
	t.Helper()
	prog, err := Parse(src, "test.no")
	if err != nil {
		t.Fatalf("Parse error: %v\nsource:\n%s", err, src)
	}
	return prog
}

// wantDump parses src and compares the S-expression rendering of the tree.
func wantDump(t *testing.T, src, want string) {
	t.Helper()
	got := Dump(mustParse(t, src))
	if got != want {
		t.Fatalf("\nsource:\n%s\nwant:\n%s\ngot:\n%s\n", src, want, got)
	}
}

func wantParseError(t *testing.T, src, substr string) *Diagnostic {
	t.Helper()
	_, err := Parse(src, "test.no")
	if err == nil {
		t.Fatalf("expected parse error containing %q, got nil\nsource:\n%s", substr, src)
	}
	d, ok := err.(*Diagnostic)
	if !ok {
		t.Fatalf("error is %T, want *Diagnostic", err)
	}
	if !strings.Contains(d.Msg, substr) {
		t.Fatalf("error %q does not contain %q\nsource:\n%s", d.Msg, substr, src)
	}
	return d
}

func mustIncomplete(t *testing.T, src string) {
	t.Helper()
	_, err := Parse(src, "test.no")
	if err == nil || !IsIncomplete(err) {
		t.Fatalf("expected incomplete-input error, got %v\nsource:\n%s", err, src)
	}
}

// body unwraps the single function of a one-declaration program.
func body(t *testing.T, src string) []Statement {
	t.Helper()
	prog := mustParse(t, src)
	if len(prog.Elements) != 1 {
		t.Fatalf("want 1 declaration, got %d\nsource:\n%s", len(prog.Elements), src)
	}
	f, ok := prog.Elements[0].(*Function)
	if !ok {
		t.Fatalf("declaration is %T, want *Function", prog.Elements[0])
	}
	return f.Body
}

// --- declarations ----------------------------------------------------------

func Test_Parser_Empty_Program(t *testing.T) {
	wantDump(t, "", "(program)")
	wantDump(t, "\n\n", "(program)")
}

func Test_Parser_Function_Explicit_Return(t *testing.T) {
	wantDump(t, `def foo() { return 13 }`,
		`(program (def foo () (return 13)))`)
}

func Test_Parser_Function_Trailing_Expression_Is_Return(t *testing.T) {
	wantDump(t, `def foo() { 13 }`,
		`(program (def foo () (return 13)))`)
	wantDump(t, `def foo(a, b) { a + b }`,
		`(program (def foo (a b) (return (+ a b))))`)
}

func Test_Parser_Trailing_Expression_Needs_Same_Line_Brace(t *testing.T) {
	// A newline terminates the statement, so the expression is evaluated
	// for effect rather than returned.
	wantDump(t, "def foo() {\n  1 + 2\n}",
		`(program (def foo () (expr (+ 1 2))))`)
}

func Test_Parser_Function_Params(t *testing.T) {
	prog := mustParse(t, `def f(a, b, c) { return a }`)
	f := prog.Elements[0].(*Function)
	if !reflect.DeepEqual(f.Args, []string{"a", "b", "c"}) {
		t.Fatalf("params = %v", f.Args)
	}
}

func Test_Parser_Duplicate_Param_Rejected(t *testing.T) {
	d := wantParseError(t, `def f(a, a) { return a }`, "duplicate parameter")
	if d.Lineno != 1 || d.StartCol != 10 {
		t.Fatalf("diagnostic at %d:%d, want 1:10", d.Lineno, d.StartCol)
	}
}

func Test_Parser_Multiple_Declarations_Across_Lines(t *testing.T) {
	src := "def a() { return 1 }\ndef b() { return 2 }\n"
	wantDump(t, src, `(program (def a () (return 1)) (def b () (return 2)))`)
}

func Test_Parser_Class_Plain_And_With_Super(t *testing.T) {
	wantDump(t, `class Animal { def noise() { return 0 } }`,
		`(program (class Animal (def noise () (return 0))))`)
	wantDump(t, "class Dog(Animal) {\n  def noise() { return 1 }\n  def legs() { return 4 }\n}",
		`(program (class Dog (super Animal) (def noise () (return 1)) (def legs () (return 4))))`)
}

func Test_Parser_Class_Body_Rejects_Statements(t *testing.T) {
	wantParseError(t, `class C { var x; }`, `unexpected token "var"`)
}

func Test_Parser_TopLevel_Rejects_Expressions(t *testing.T) {
	wantParseError(t, `1 + 2`, `unexpected token "1"`)
}

// --- statements ------------------------------------------------------------

func Test_Parser_Var_Declaration(t *testing.T) {
	wantDump(t, `def f() { var a, b, c; return a }`,
		`(program (def f () (var a b c) (return a)))`)
	// duplicate names pass the grammar
	wantDump(t, `def f() { var a, a; return a }`,
		`(program (def f () (var a a) (return a)))`)
}

func Test_Parser_Assignment(t *testing.T) {
	wantDump(t, "def f() {\n  var a;\n  a = 1 + 2\n  return a\n}",
		`(program (def f () (var a) (assign a (+ 1 2)) (return a)))`)
}

func Test_Parser_Setattr(t *testing.T) {
	wantDump(t, `def f(p) { p.x = 3; return p.x }`,
		`(program (def f (p) (setattr p x 3) (return (getattr p x))))`)
	wantDump(t, `def f(p) { p.a.b = 3; return 0 }`,
		`(program (def f (p) (setattr (getattr p a) b 3) (return 0)))`)
}

func Test_Parser_Parenthesized_Name_Is_Not_A_Target(t *testing.T) {
	d := wantParseError(t, `def f() { (a) = 3 }`, `unexpected token "="`)
	if d.Lineno != 1 || d.StartCol != 15 || d.EndCol != 16 {
		t.Fatalf("diagnostic span %d:%d-%d, want 1:15-16", d.Lineno, d.StartCol, d.EndCol)
	}
}

func Test_Parser_Call_Result_Is_Not_A_Target(t *testing.T) {
	wantParseError(t, `def f() { g() = 3 }`, `unexpected token "="`)
}

func Test_Parser_Expression_Statement(t *testing.T) {
	wantDump(t, `def f() { g(); return 0 }`,
		`(program (def f () (expr (call g)) (return 0)))`)
}

func Test_Parser_While(t *testing.T) {
	src := "def f() {\n  while a < 10 {\n    a = a + 1\n  }\n  return a\n}"
	wantDump(t, src,
		`(program (def f () (while (< a 10) (assign a (+ a 1))) (return a)))`)
}

func Test_Parser_If(t *testing.T) {
	wantDump(t, `def f(a) { if a == 0 { return 1 }
  return 2
}`,
		`(program (def f (a) (if (== a 0) (return 1)) (return 2)))`)
}

func Test_Parser_Block_Has_No_Implicit_Return(t *testing.T) {
	// Trailing expressions desugar only directly in a function body.
	wantDump(t, `def f(a) { if a { g() }
  return 0
}`,
		`(program (def f (a) (if a (expr (call g))) (return 0)))`)
}

func Test_Parser_Raise_And_Try(t *testing.T) {
	src := `def f() {
  try {
    raise mk()
  } except e {
    return e
  }
  return 0
}`
	wantDump(t, src,
		`(program (def f () (try (raise (call mk)) (except e (return e))) (return 0)))`)
}

func Test_Parser_Try_Requires_Handler(t *testing.T) {
	mustIncomplete(t, "def f() {\n  try { g() }")
	wantParseError(t, `def f() { try { g() } return 0 }`, `unexpected token "return"`)
}

func Test_Parser_Empty_Bodies(t *testing.T) {
	wantDump(t, `def f() { }`, `(program (def f ()))`)
	wantDump(t, `def f(a) { while a { } return 0 }`,
		`(program (def f (a) (while a) (return 0)))`)
}

// --- expressions -----------------------------------------------------------

func exprDump(t *testing.T, expr, want string) {
	t.Helper()
	wantDump(t, "def f() { return "+expr+" }",
		"(program (def f () (return "+want+")))")
}

func Test_Parser_Literals(t *testing.T) {
	exprDump(t, `42`, `42`)
	exprDump(t, `"hi"`, `"hi"`)
	exprDump(t, `true`, `true`)
	exprDump(t, `false`, `false`)
	exprDump(t, `x`, `x`)
}

func Test_Parser_String_Value_Is_Decoded(t *testing.T) {
	stmts := body(t, `def f() { return "a\nb" }`)
	ret := stmts[0].(*Return)
	if s := ret.Expr.(*String); s.Value != "a\nb" {
		t.Fatalf("string value = %q", s.Value)
	}
}

func Test_Parser_Integer_Bounds(t *testing.T) {
	stmts := body(t, `def f() { return 9223372036854775807 }`)
	if n := stmts[0].(*Return).Expr.(*Number); n.Value != 9223372036854775807 {
		t.Fatalf("value = %d", n.Value)
	}
	wantParseError(t, `def f() { return 9223372036854775808 }`, "out of range")
}

func Test_Parser_Arithmetic_Precedence(t *testing.T) {
	exprDump(t, `a + b * c`, `(+ a (* b c))`)
	exprDump(t, `a * b + c`, `(+ (* a b) c)`)
	exprDump(t, `a - b // c`, `(- a (// b c))`)
	exprDump(t, `(a + b) * c`, `(* (+ a b) c)`)
}

func Test_Parser_Left_Associativity(t *testing.T) {
	exprDump(t, `a - b - c`, `(- (- a b) c)`)
	exprDump(t, `a // b // c`, `(// (// a b) c)`)
	exprDump(t, `a == b < c`, `(< (== a b) c)`)
}

func Test_Parser_Comparison_Binds_Looser_Than_Arithmetic(t *testing.T) {
	exprDump(t, `a + b < c * d`, `(< (+ a b) (* c d))`)
	exprDump(t, `a == b + c`, `(== a (+ b c))`)
}

func Test_Parser_And_Binds_Looser_Than_Or(t *testing.T) {
	exprDump(t, `a and b or c`, `(and a (or b c))`)
	exprDump(t, `a or b and c`, `(and (or a b) c)`)
	exprDump(t, `a or b == c`, `(or a (== b c))`)
	exprDump(t, `a and b and c`, `(and (and a b) c)`)
}

func Test_Parser_Attribute_Chain(t *testing.T) {
	exprDump(t, `x.y.z`, `(getattr (getattr x y) z)`)
}

func Test_Parser_Calls(t *testing.T) {
	exprDump(t, `f()`, `(call f)`)
	exprDump(t, `f(1, 2, 3)`, `(call f 1 2 3)`)
	exprDump(t, `f(1, 2)(3)`, `(call (call f 1 2) 3)`)
	exprDump(t, `onion.peel(1).core`, `(getattr (call (getattr onion peel) 1) core)`)
}

func Test_Parser_Call_And_Dot_Bind_Tighter_Than_Arithmetic(t *testing.T) {
	exprDump(t, `a.b + c.d`, `(+ (getattr a b) (getattr c d))`)
	exprDump(t, `f(x) * 2`, `(* (call f x) 2)`)
}

func Test_Parser_Group_Is_Callable(t *testing.T) {
	exprDump(t, `(a + b).m()`, `(call (getattr (+ a b) m))`)
	exprDump(t, `(f)(x)`, `(call f x)`)
}

func Test_Parser_NonAtom_Cannot_Be_Called_Or_Dotted(t *testing.T) {
	wantParseError(t, `def f() { return 1(2) }`, `unexpected token "("`)
	wantParseError(t, `def f() { return 1.x }`, `unexpected token "."`)
	wantParseError(t, `def f() { return "s"(1) }`, `unexpected token "("`)
	wantParseError(t, `def f() { return a + b(c) + 1.d }`, `unexpected token "."`)
}

func Test_Parser_Call_Result_Is_Atom_Again(t *testing.T) {
	exprDump(t, `f(x).g(y)`, `(call (getattr (call f x) g) y)`)
	exprDump(t, `true.m()`, `(call (getattr true m))`)
}

func Test_Parser_No_Keyword_Arguments(t *testing.T) {
	wantParseError(t, `def f() { return g(a = 1) }`, `unexpected token "="`)
}

// --- statement termination interplay ---------------------------------------

func Test_Parser_Newline_Inside_Parens_Rejected_After_Operand(t *testing.T) {
	// The terminator inserted after `a` is not valid inside the group.
	wantParseError(t, "def f() { return (a\nb) }", "unexpected end of statement")
}

func Test_Parser_Newline_After_Operator_Continues_Expression(t *testing.T) {
	wantDump(t, "def f() {\n  return a +\n    b\n}",
		`(program (def f () (return (+ a b))))`)
}

func Test_Parser_Blank_Lines_Between_Statements(t *testing.T) {
	wantDump(t, "def f() {\n  var a;\n\n\n  a = 1\n\n  return a\n}",
		`(program (def f () (var a) (assign a 1) (return a)))`)
}

// --- errors and incompleteness ---------------------------------------------

func Test_Parser_Error_Carries_Line_And_Caret_Span(t *testing.T) {
	d := wantParseError(t, "def f() {\n  (a) = 3\n}", `unexpected token "="`)
	if d.Kind != DiagParse {
		t.Fatalf("kind = %v", d.Kind)
	}
	if d.Lineno != 2 || d.StartCol != 7 || d.EndCol != 8 {
		t.Fatalf("span %d:%d-%d, want 2:7-8", d.Lineno, d.StartCol, d.EndCol)
	}
	if d.Line != "  (a) = 3" {
		t.Fatalf("line = %q", d.Line)
	}
}

func Test_Parser_Error_Span_Covers_Token(t *testing.T) {
	d := wantParseError(t, `def f() { return while }`, `unexpected token "while"`)
	if d.StartCol != 18 || d.EndCol != 23 {
		t.Fatalf("span %d-%d, want 18-23", d.StartCol, d.EndCol)
	}
}

func Test_Parser_Missing_Expression(t *testing.T) {
	wantParseError(t, `def f() { return }`, `unexpected token "}"`)
}

func Test_Parser_Incomplete_Inputs(t *testing.T) {
	mustIncomplete(t, `def`)
	mustIncomplete(t, `def f(`)
	mustIncomplete(t, `def f() {`)
	mustIncomplete(t, "def f() {\n  return 1 +")
	mustIncomplete(t, `def f() { return "abc`)
	mustIncomplete(t, `class C {`)
}

func Test_Parser_Complete_Error_Is_Not_Incomplete(t *testing.T) {
	_, err := Parse(`def f() { (a) = 3 }`, "test.no")
	if err == nil || IsIncomplete(err) {
		t.Fatalf("want a hard parse error, got %v", err)
	}
}

func Test_Parser_Lex_Error_Propagates(t *testing.T) {
	_, err := Parse("def f() { return $ }", "test.no")
	d, ok := err.(*Diagnostic)
	if !ok || d.Kind != DiagLex {
		t.Fatalf("want lexical diagnostic, got %v", err)
	}
}
