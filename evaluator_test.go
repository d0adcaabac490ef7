// evaluator_test.go
package boo

import (
	"strings"
	"testing"
)

func interpret(t *testing.T, src string) Expr {
	t.Helper()
	result, err := Interpret(src)
	if err != nil {
		t.Fatalf("interpret error for %q: %v", src, err)
	}
	return result
}

func wantValue(t *testing.T, src string, want int64) {
	t.Helper()
	result := interpret(t, src)
	if result.Kind != ExprPrimitive {
		t.Fatalf("%q evaluated to %s, want the primitive %d", src, Render(result), want)
	}
	if got := result.Data.(Primitive); !got.Equal(IntegerFromInt64(want)) {
		t.Fatalf("%q evaluated to %s, want %d", src, got, want)
	}
}

func wantEvalError(t *testing.T, src string, kind EvalErrorKind) *EvalError {
	t.Helper()
	_, err := Interpret(src)
	if err == nil {
		t.Fatalf("expected an evaluation error for %q", src)
	}
	evalErr, ok := err.(*EvalError)
	if !ok {
		t.Fatalf("expected *EvalError for %q, got %T: %v", src, err, err)
	}
	if evalErr.Kind != kind {
		t.Fatalf("error kind for %q is %d, want %d: %v", src, evalErr.Kind, kind, evalErr)
	}
	return evalErr
}

func Test_Evaluator_Literal(t *testing.T) {
	wantValue(t, "42", 42)
	wantValue(t, "-42", -42)
}

func Test_Evaluator_Arithmetic(t *testing.T) {
	wantValue(t, "1 + 2", 3)
	wantValue(t, "10 - 4", 6)
	wantValue(t, "6 * 7", 42)
	wantValue(t, "1 + 2 * 3", 7)
	wantValue(t, "(1 + 2) * 3", 9)
	wantValue(t, "10 - 2 - 3", 5)
}

func Test_Evaluator_Precedence_And_Grouping(t *testing.T) {
	wantValue(t, "9 + 5 * 3 - 4", 20)
	wantValue(t, "(9 + 5) * (3 - 4)", -14)
}

func Test_Evaluator_Is_Deterministic(t *testing.T) {
	src := "let add = fn x y -> x + y in add 2 3"
	first := interpret(t, src)
	second := interpret(t, src)
	if !EqualExpr(first, second) {
		t.Fatalf("two evaluations of %q disagree: %s vs %s", src, Render(first), Render(second))
	}
	wantValue(t, src, 5)
}

func Test_Evaluator_Bignum_Multiplication_Is_Exact(t *testing.T) {
	src := "1000000000000000000 * 1000000000000000000"
	result := interpret(t, src)
	if Render(result) != "1000000000000000000000000000000000000" {
		t.Fatalf("%q evaluated to %s", src, Render(result))
	}
}

func Test_Evaluator_Huge_Arithmetic(t *testing.T) {
	src := "9223372036854775807 + 1"
	result := interpret(t, src)
	if Render(result) != "9223372036854775808" {
		t.Fatalf("%q evaluated to %s", src, Render(result))
	}
}

func Test_Evaluator_Let_Binds(t *testing.T) {
	wantValue(t, "let x = 1 in x + x", 2)
	wantValue(t, "let x = 2 in let y = 3 in x * y", 6)
}

func Test_Evaluator_Let_Shadowing(t *testing.T) {
	wantValue(t, "let x = 1 in let x = 2 in x", 2)
}

func Test_Evaluator_Function_Application(t *testing.T) {
	wantValue(t, "(fn x -> x + 1) 41", 42)
	wantValue(t, "(fn x y -> x - y) 10 4", 6)
}

func Test_Evaluator_Functions_Are_Values(t *testing.T) {
	result := interpret(t, "fn x -> x")
	if result.Kind != ExprFunction {
		t.Fatalf("expected a function value, got %s", Render(result))
	}
}

func Test_Evaluator_Partial_Application_Is_A_Value(t *testing.T) {
	result := interpret(t, "(fn x y -> x + y) 1")
	if result.Kind != ExprFunction {
		t.Fatalf("expected a function value, got %s", Render(result))
	}
}

func Test_Evaluator_Higher_Order_Functions(t *testing.T) {
	wantValue(t, "let twice = fn f x -> f (f x) in twice (fn n -> n * 3) 2", 18)
}

func Test_Evaluator_Unused_Binding_Is_Never_Evaluated(t *testing.T) {
	// "boom" is unbound but never needed.
	wantValue(t, "let x = boom in 7", 7)
	wantValue(t, "(fn x -> 7) boom", 7)
	wantValue(t, "(fn x -> 7) (1 nonsense)", 7)
}

func Test_Evaluator_Unknown_Identifier(t *testing.T) {
	err := wantEvalError(t, "nope", ErrUnknownIdentifier)
	if err.Name != "nope" {
		t.Fatalf("error names %q, want %q", err.Name, "nope")
	}
}

func Test_Evaluator_Invalid_Function_Application(t *testing.T) {
	wantEvalError(t, "3 4", ErrInvalidFunctionApplication)
	wantEvalError(t, "(1 + 2) 4", ErrInvalidFunctionApplication)
}

func Test_Evaluator_Match_Literal_Arm(t *testing.T) {
	wantValue(t, "match 1 { 0 -> 10; 1 -> 11; _ -> 12 }", 11)
}

func Test_Evaluator_Match_Wildcard_Arm(t *testing.T) {
	wantValue(t, "match 5 { 0 -> 10; 1 -> 11; _ -> 12 }", 12)
}

func Test_Evaluator_Match_Forces_Scrutinee(t *testing.T) {
	wantValue(t, "match 2 + 3 { 5 -> 1; _ -> 0 }", 1)
}

func Test_Evaluator_Match_Wildcard_Does_Not_Force(t *testing.T) {
	// The scrutinee would fail if evaluated; the wildcard never looks.
	wantValue(t, "match boom { _ -> 9 }", 9)
}

func Test_Evaluator_Match_Negative_Pattern(t *testing.T) {
	wantValue(t, "match 0 - 1 { -1 -> 1; _ -> 0 }", 1)
}

func Test_Evaluator_Match_Function_Falls_Through_To_Wildcard(t *testing.T) {
	wantValue(t, "match (fn x -> x) { 0 -> 1; _ -> 2 }", 2)
}

func Test_Evaluator_Match_Without_Base_Case(t *testing.T) {
	wantEvalError(t, "match 5 { 0 -> 1; 1 -> 2 }", ErrMatchWithoutBaseCase)
	wantEvalError(t, "match 5 { }", ErrMatchWithoutBaseCase)
}

func Test_Evaluator_Match_Scrutinee_Error_Propagates(t *testing.T) {
	wantEvalError(t, "match boom { 0 -> 1; _ -> 2 }", ErrUnknownIdentifier)
}

func Test_Evaluator_Native_Argument_Must_Be_Primitive(t *testing.T) {
	err := wantEvalError(t, "1 + (fn x -> x)", ErrNative)
	if err.Native == nil || err.Native.Kind != NativeInvalidPrimitive {
		t.Fatalf("expected an invalid-primitive native error, got %v", err)
	}
}

func Test_Evaluator_Native_Argument_Error_Propagates(t *testing.T) {
	err := wantEvalError(t, "1 + boom", ErrNative)
	if err.Native == nil || err.Native.Kind != NativeUnknownIdentifier {
		t.Fatalf("expected an unknown-identifier native error, got %v", err)
	}
}

func Test_Evaluator_Nested_Native_Error_Keeps_Its_Cause(t *testing.T) {
	// "boom + 1 + 2" fails inside the outer addition's left operand,
	// which is itself a native application. The unbound identifier must
	// survive both native layers.
	err := wantEvalError(t, "boom + 1 + 2", ErrNative)
	if err.Native == nil || err.Native.Kind != NativeUnknownIdentifier || err.Native.Name != "boom" {
		t.Fatalf("expected an unknown-identifier failure for \"boom\", got %v", err)
	}

	// Likewise a non-primitive operand buried one level down.
	err = wantEvalError(t, "(fn x -> x) + 1 + 2", ErrNative)
	if err.Native == nil || err.Native.Kind != NativeInvalidPrimitive {
		t.Fatalf("expected an invalid-primitive failure, got %v", err)
	}
}

func Test_Evaluator_Operator_Arguments_Evaluate_Lazily(t *testing.T) {
	// Each operand is itself a compound expression, forced only inside
	// the native.
	wantValue(t, "(let a = 1 in a + a) * (let b = 3 in b)", 6)
}

func Test_Evaluator_Substitution_Does_Not_Capture_In_Let(t *testing.T) {
	// Substituting the free "y" under the inner binder must not let the
	// inner "let y" capture it; "y" stays unbound and the addition's
	// native reports it.
	err := wantEvalError(t, "let x = y in let y = 3 in x + y", ErrNative)
	if err.Native == nil || err.Native.Kind != NativeUnknownIdentifier || err.Native.Name != "y" {
		t.Fatalf("expected an unknown-identifier failure for \"y\", got %v", err)
	}
}

func Test_Evaluator_Substitution_Does_Not_Capture_In_Function(t *testing.T) {
	// Apply (fn x -> fn y -> x + y) to the free identifier "y": the inner
	// binder must be renamed, leaving the outer "y" unbound rather than
	// captured by the argument.
	program := ApplyExpr(
		ApplyExpr(
			FunctionExpr("x", FunctionExpr("y",
				infix("+", IdentifierExpr("x"), IdentifierExpr("y")))),
			IdentifierExpr("y"),
		),
		num(100),
	)
	_, err := Evaluate(WithBuiltins(program))
	if err == nil {
		t.Fatalf("expected capture avoidance to leave \"y\" unbound")
	}
	if err.Kind != ErrNative || err.Native == nil || err.Native.Kind != NativeUnknownIdentifier {
		t.Fatalf("expected an unknown-identifier failure, got %v", err)
	}
}

func Test_Evaluator_Substitute_Renames_Binder(t *testing.T) {
	// (fn y -> x y)[x := y] must rename the binder, not capture y.
	target := FunctionExpr("y", ApplyExpr(IdentifierExpr("x"), IdentifierExpr("y")))
	got := substitute("x", IdentifierExpr("y"), target)
	want := FunctionExpr("y_1", ApplyExpr(IdentifierExpr("y"), IdentifierExpr("y_1")))
	if !EqualExpr(got, want) {
		t.Fatalf("substitution produced %s, want %s", Render(got), Render(want))
	}
}

func Test_Evaluator_Substitute_Skips_Shadowed_Binders(t *testing.T) {
	// (fn x -> x)[x := 1] is unchanged: the binder shadows.
	target := FunctionExpr("x", IdentifierExpr("x"))
	got := substitute("x", num(1), target)
	if !EqualExpr(got, target) {
		t.Fatalf("substitution under a shadowing binder changed the term: %s", Render(got))
	}
}

func Test_Evaluator_Trace_Returns_Its_Argument(t *testing.T) {
	var buf strings.Builder
	prev := traceOutput
	traceOutput = &buf
	defer func() { traceOutput = prev }()

	wantValue(t, "trace (6 * 7)", 42)
	if got := buf.String(); got != "trace: 42\n" {
		t.Fatalf("trace wrote %q", got)
	}
}

func Test_Evaluator_Steps_Yields_Every_Intermediate(t *testing.T) {
	expr := parse(t, "let x = 1 in x + 1")
	reduction := Steps(WithBuiltins(expr))

	var seen []Expr
	for step, ok := reduction.Next(); ok; step, ok = reduction.Next() {
		seen = append(seen, step)
	}
	if err := reduction.Err(); err != nil {
		t.Fatalf("reduction failed: %v", err)
	}
	if len(seen) < 3 {
		t.Fatalf("expected several intermediate steps, got %d", len(seen))
	}
	first := seen[0]
	if first.Kind != ExprAssign {
		t.Fatalf("first step should be the initial expression, got %s", Render(first))
	}
	last := seen[len(seen)-1]
	if last.Kind != ExprPrimitive || !last.Data.(Primitive).Equal(IntegerFromInt64(2)) {
		t.Fatalf("final step is %s, want 2", Render(last))
	}
}

func Test_Evaluator_Steps_Reports_Error(t *testing.T) {
	reduction := Steps(IdentifierExpr("nope"))
	for _, ok := reduction.Next(); ok; _, ok = reduction.Next() {
	}
	err := reduction.Err()
	if err == nil {
		t.Fatalf("expected the reduction to fail")
	}
	if evalErr, ok := err.(*EvalError); !ok || evalErr.Kind != ErrUnknownIdentifier {
		t.Fatalf("expected an unknown-identifier error, got %v", err)
	}
}

func Test_Evaluator_Value_Steps_No_Further(t *testing.T) {
	reduction := Steps(num(5))
	step, ok := reduction.Next()
	if !ok || !EqualExpr(step, num(5)) {
		t.Fatalf("first step should be the value itself")
	}
	if _, ok := reduction.Next(); ok {
		t.Fatalf("a value should not reduce")
	}
	if err := reduction.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
