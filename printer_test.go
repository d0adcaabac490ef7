// printer_test.go
package boo

import "testing"

func wantRender(t *testing.T, e Expr, want string) {
	t.Helper()
	if got := Render(e); got != want {
		t.Fatalf("rendered %q, want %q", got, want)
	}
}

func Test_Printer_Primitives(t *testing.T) {
	wantRender(t, num(42), "42")
	wantRender(t, num(-42), "-42")
	wantRender(t, PrimitiveExpr(parseInt(t, "123456789012345678901234567890")), "123456789012345678901234567890")
}

func Test_Printer_Identifier(t *testing.T) {
	wantRender(t, IdentifierExpr("x"), "x")
}

func Test_Printer_Function(t *testing.T) {
	wantRender(t, FunctionExpr("x", IdentifierExpr("x")), "fn x -> x")
	wantRender(t,
		FunctionExpr("x", infix("+", IdentifierExpr("x"), num(1))),
		"fn x -> (x + 1)")
}

func Test_Printer_Saturated_Operators_Print_Infix(t *testing.T) {
	wantRender(t, infix("+", num(1), num(2)), "1 + 2")
	wantRender(t,
		infix("+", num(1), infix("*", num(2), num(3))),
		"1 + (2 * 3)")
}

func Test_Printer_Application(t *testing.T) {
	wantRender(t,
		ApplyExpr(ApplyExpr(IdentifierExpr("f"), IdentifierExpr("x")), num(2)),
		"(f x) 2")
}

func Test_Printer_Negative_Argument_Is_Parenthesised(t *testing.T) {
	wantRender(t, ApplyExpr(IdentifierExpr("f"), num(-1)), "f (-1)")
	wantRender(t, infix("-", num(1), num(-2)), "1 - (-2)")
}

func Test_Printer_Let(t *testing.T) {
	wantRender(t,
		AssignExpr("x", num(1), infix("+", IdentifierExpr("x"), IdentifierExpr("x"))),
		"let x = 1 in (x + x)")
}

func Test_Printer_Match(t *testing.T) {
	wantRender(t,
		MatchExpr(IdentifierExpr("x"), []MatchArm{
			{Pattern: LiteralPattern(IntegerFromInt64(0)), Result: num(1)},
			{Pattern: LiteralPattern(IntegerFromInt64(-1)), Result: num(2)},
			{Pattern: AnythingPattern(), Result: num(3)},
		}),
		"match x { 0 -> 1; -1 -> 2; _ -> 3 }")
}

func Test_Printer_Native_Prints_Its_Name(t *testing.T) {
	builtins := Builtins()
	// The "+" builtin is fn left -> fn right -> <native "+">.
	wantRender(t, builtins[0].Value, "fn left -> (fn right -> +)")
}

func Test_Printer_Output_Reparses_To_The_Same_Tree(t *testing.T) {
	sources := []string{
		"42",
		"-42",
		"1 + 2 * 3",
		"f (-1)",
		"fn x y -> x - y",
		"let x = 1 in let y = x + 1 in y * y",
		"match 2 + 3 { 0 -> 1; -5 -> 2; _ -> f x }",
		"(fn f x -> f (f x)) (fn n -> n * 3) 2",
	}
	for _, src := range sources {
		original := parse(t, src)
		reparsed := parse(t, Render(original))
		if !EqualExpr(original, reparsed) {
			t.Fatalf("render of %q does not reparse to the same tree:\nrendered: %s\nreparsed: %s",
				src, Render(original), Render(reparsed))
		}
	}
}
