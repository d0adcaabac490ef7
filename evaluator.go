// evaluator.go: lazy, substitution-based reduction of expressions.
//
// Evaluation repeatedly rewrites the leftmost, outermost reducible position
// until the expression is a primitive, a function, or an error surfaces.
// There is no environment: `let` and function application substitute the
// bound expression, unevaluated, into the body. An argument that is never
// needed is never evaluated, so `let x = boom in 7` yields 7 even when
// `boom` would fail.
package boo

import "fmt"

// EvalErrorKind classifies evaluation failures.
type EvalErrorKind int

const (
	// ErrUnknownIdentifier: a free identifier reached the evaluator.
	ErrUnknownIdentifier EvalErrorKind = iota
	// ErrInvalidFunctionApplication: the function position reduced to
	// something that cannot be applied.
	ErrInvalidFunctionApplication
	// ErrMatchWithoutBaseCase: a match ran out of arms.
	ErrMatchWithoutBaseCase
	// ErrNative: a native implementation reported a failure.
	ErrNative
)

// EvalError is an error raised during reduction.
type EvalError struct {
	Kind   EvalErrorKind
	Name   Identifier   // ErrUnknownIdentifier
	Expr   Expr         // ErrInvalidFunctionApplication, ErrMatchWithoutBaseCase
	Native *NativeError // ErrNative
}

func (e *EvalError) Error() string {
	switch e.Kind {
	case ErrUnknownIdentifier:
		return fmt.Sprintf("EVALUATION ERROR: unknown identifier: %s", e.Name)
	case ErrInvalidFunctionApplication:
		return fmt.Sprintf("EVALUATION ERROR: cannot apply %s as a function", Render(e.Expr))
	case ErrMatchWithoutBaseCase:
		return fmt.Sprintf("EVALUATION ERROR: match has no matching arm for %s", Render(e.Expr))
	case ErrNative:
		return fmt.Sprintf("EVALUATION ERROR: %s", e.Native.Error())
	default:
		return "EVALUATION ERROR"
	}
}

// CanProgress reports whether a single reduction step applies to e.
// Primitives and functions are values; everything else either rewrites or
// fails.
func CanProgress(e Expr) bool {
	switch e.Kind {
	case ExprIdentifier, ExprNative, ExprApply, ExprAssign, ExprMatch:
		return true
	default:
		return false
	}
}

// Evaluate reduces e to a value or returns the error that stopped it.
func Evaluate(e Expr) (Expr, *EvalError) {
	for CanProgress(e) {
		next, err := step(e)
		if err != nil {
			return Expr{}, err
		}
		e = next
	}
	return e, nil
}

// Reduction iterates the intermediate expressions of an evaluation, the
// initial expression included.
type Reduction struct {
	cur   Expr
	begun bool
	done  bool
	err   *EvalError
}

// Steps starts a step-by-step reduction of e.
func Steps(e Expr) *Reduction {
	return &Reduction{cur: e}
}

// Next yields the next expression in the reduction sequence. It returns
// false once the expression is a value or an error occurred; check Err
// afterwards.
func (r *Reduction) Next() (Expr, bool) {
	if r.done {
		return Expr{}, false
	}
	if !r.begun {
		r.begun = true
		return r.cur, true
	}
	if !CanProgress(r.cur) {
		r.done = true
		return Expr{}, false
	}
	next, err := step(r.cur)
	if err != nil {
		r.err = err
		r.done = true
		return Expr{}, false
	}
	r.cur = next
	return r.cur, true
}

// Err reports the evaluation error that terminated the reduction, if any.
func (r *Reduction) Err() error {
	if r.err != nil {
		return r.err
	}
	return nil
}

// step performs one leftmost-outermost reduction.
func step(e Expr) (Expr, *EvalError) {
	switch e.Kind {
	case ExprIdentifier:
		return Expr{}, &EvalError{Kind: ErrUnknownIdentifier, Name: e.Data.(Identifier)}

	case ExprNative:
		native := e.Data.(Native)
		value, nerr := native.Impl(rootContext{})
		if nerr != nil {
			return Expr{}, &EvalError{Kind: ErrNative, Native: nerr}
		}
		return PrimitiveExpr(value), nil

	case ExprApply:
		apply := e.Data.(Apply)
		if apply.Function.Kind == ExprFunction {
			fn := apply.Function.Data.(Function)
			return substitute(fn.Parameter, apply.Argument, fn.Body), nil
		}
		if CanProgress(apply.Function) {
			next, err := step(apply.Function)
			if err != nil {
				return Expr{}, err
			}
			return ApplyExpr(next, apply.Argument), nil
		}
		return Expr{}, &EvalError{Kind: ErrInvalidFunctionApplication, Expr: apply.Function}

	case ExprAssign:
		assign := e.Data.(Assign)
		return substitute(assign.Name, assign.Value, assign.Body), nil

	case ExprMatch:
		return stepMatch(e.Data.(Match))
	}

	// Primitives and functions are values; reaching here is a caller bug.
	panic(fmt.Sprintf("step called on irreducible expression: %s", Render(e)))
}

func stepMatch(m Match) (Expr, *EvalError) {
	if len(m.Arms) == 0 {
		return Expr{}, &EvalError{Kind: ErrMatchWithoutBaseCase, Expr: m.Value}
	}
	arm := m.Arms[0]
	if arm.Pattern.Kind == PatternAnything {
		// The wildcard never inspects the scrutinee, so it is not forced.
		return arm.Result, nil
	}
	switch m.Value.Kind {
	case ExprPrimitive:
		if m.Value.Data.(Primitive).Equal(arm.Pattern.Value) {
			return arm.Result, nil
		}
		// The forced value is kept so later arms compare against it
		// without re-evaluating.
		return MatchExpr(m.Value, m.Arms[1:]), nil
	case ExprFunction:
		// Functions never match a literal pattern.
		return MatchExpr(m.Value, m.Arms[1:]), nil
	}
	if CanProgress(m.Value) {
		next, err := step(m.Value)
		if err != nil {
			return Expr{}, err
		}
		return MatchExpr(next, m.Arms), nil
	}
	panic(fmt.Sprintf("match scrutinee is irreducible but not a value: %s", Render(m.Value)))
}

// ----- substitution -----

// substitute replaces free occurrences of name in target with replacement,
// renaming binders where a free variable of replacement would otherwise be
// captured.
func substitute(name Identifier, replacement Expr, target Expr) Expr {
	switch target.Kind {
	case ExprPrimitive:
		return target

	case ExprIdentifier:
		if target.Data.(Identifier) == name {
			return replacement
		}
		return target

	case ExprNative:
		native := target.Data.(Native)
		inner := native.Impl
		wrapped := func(ctx NativeContext) (Primitive, *NativeError) {
			return inner(&boundContext{name: name, value: replacement, rest: ctx})
		}
		return NativeExpr(native.Name, wrapped)

	case ExprFunction:
		fn := target.Data.(Function)
		if fn.Parameter == name {
			// The parameter shadows the substituted name.
			return target
		}
		param, body := avoidCapture(fn.Parameter, fn.Body, name, replacement)
		return FunctionExpr(param, substitute(name, replacement, body))

	case ExprApply:
		apply := target.Data.(Apply)
		return ApplyExpr(
			substitute(name, replacement, apply.Function),
			substitute(name, replacement, apply.Argument),
		)

	case ExprAssign:
		assign := target.Data.(Assign)
		value := substitute(name, replacement, assign.Value)
		if assign.Name == name {
			return AssignExpr(assign.Name, value, assign.Body)
		}
		binder, body := avoidCapture(assign.Name, assign.Body, name, replacement)
		return AssignExpr(binder, value, substitute(name, replacement, body))

	case ExprMatch:
		m := target.Data.(Match)
		arms := make([]MatchArm, len(m.Arms))
		for i, arm := range m.Arms {
			arms[i] = MatchArm{
				Pattern: arm.Pattern,
				Result:  substitute(name, replacement, arm.Result),
			}
		}
		return MatchExpr(substitute(name, replacement, m.Value), arms)
	}

	panic(fmt.Sprintf("substitute: unhandled expression kind %d", target.Kind))
}

// avoidCapture renames binder if it occurs free in replacement, so that
// substituting replacement under the binder cannot capture it.
func avoidCapture(binder Identifier, body Expr, name Identifier, replacement Expr) (Identifier, Expr) {
	if !occursFree(replacement, binder) {
		return binder, body
	}
	fresh := freshIdentifier(binder, func(candidate Identifier) bool {
		return candidate == name || occursFree(body, candidate) || occursFree(replacement, candidate)
	})
	return fresh, substitute(binder, IdentifierExpr(fresh), body)
}

// freshIdentifier derives a new name from base that the taken predicate
// rejects nothing for.
func freshIdentifier(base Identifier, taken func(Identifier) bool) Identifier {
	for i := 1; ; i++ {
		candidate := Identifier(fmt.Sprintf("%s_%d", base, i))
		if !taken(candidate) {
			return candidate
		}
	}
}

// ----- native contexts -----

// rootContext is the empty native context; every lookup fails.
type rootContext struct{}

func (rootContext) LookupValue(name Identifier) (Primitive, *NativeError) {
	return Primitive{}, &NativeError{Kind: NativeUnknownIdentifier, Name: name}
}

// boundContext extends a context with one lazily evaluated binding.
// Substitution into a native builds a chain of these, innermost binding
// first.
type boundContext struct {
	name  Identifier
	value Expr
	rest  NativeContext
}

func (c *boundContext) LookupValue(name Identifier) (Primitive, *NativeError) {
	if name != c.name {
		return c.rest.LookupValue(name)
	}
	result, err := Evaluate(c.value)
	if err != nil {
		switch err.Kind {
		case ErrUnknownIdentifier:
			return Primitive{}, &NativeError{Kind: NativeUnknownIdentifier, Name: err.Name}
		case ErrNative:
			// A nested native already diagnosed the failure; pass its
			// error through rather than erasing the cause.
			return Primitive{}, err.Native
		default:
			return Primitive{}, &NativeError{Kind: NativeUnknown, Name: name}
		}
	}
	if result.Kind != ExprPrimitive {
		return Primitive{}, &NativeError{Kind: NativeInvalidPrimitive, Name: name}
	}
	return result.Data.(Primitive), nil
}
