// native.go: built-in operations exposed to Boo programs.
//
// A native is an opaque leaf expression holding a Go implementation. It
// reads its inputs by name from a context assembled by substitution: when a
// value is substituted into a native, the native's context gains a binding
// for that name. The built-in operators are curried functions whose bodies
// are natives, so `3 + 4` reduces by substituting `3` for "left" and `4`
// for "right" before the native runs.
package boo

import (
	"fmt"
	"io"
	"os"
)

// NativeErrorKind classifies failures inside a native implementation.
type NativeErrorKind int

const (
	// NativeUnknownIdentifier: the native looked up a name that was never
	// substituted in.
	NativeUnknownIdentifier NativeErrorKind = iota
	// NativeInvalidPrimitive: a substituted argument did not evaluate to a
	// primitive value.
	NativeInvalidPrimitive
	// NativeUnknown: evaluating an argument failed for an unrelated reason.
	NativeUnknown
)

// NativeError is an error raised from inside a native implementation.
type NativeError struct {
	Kind NativeErrorKind
	Name Identifier
}

func (e *NativeError) Error() string {
	switch e.Kind {
	case NativeUnknownIdentifier:
		return fmt.Sprintf("unknown identifier in native context: %s", e.Name)
	case NativeInvalidPrimitive:
		return fmt.Sprintf("argument %q did not evaluate to a primitive", e.Name)
	default:
		return fmt.Sprintf("native operation %q failed", e.Name)
	}
}

// NativeContext resolves names to fully evaluated primitive values. Lookups
// force evaluation of the bound expression.
type NativeContext interface {
	LookupValue(name Identifier) (Primitive, *NativeError)
}

// NativeImpl is the Go implementation behind a native expression.
type NativeImpl func(ctx NativeContext) (Primitive, *NativeError)

// Native is an opaque expression backed by Go code. Name is only for
// display and equality; Impl carries any context accumulated so far.
type Native struct {
	Name Identifier
	Impl NativeImpl
}

// Binding pairs a top-level name with its value expression.
type Binding struct {
	Name  Identifier
	Value Expr
}

// traceOutput is where the "trace" builtin writes. Overridden in tests.
var traceOutput io.Writer = os.Stderr

func builtinInfixMath(name Identifier, operate func(left, right Primitive) Primitive) Binding {
	impl := func(ctx NativeContext) (Primitive, *NativeError) {
		left, err := ctx.LookupValue("left")
		if err != nil {
			return Primitive{}, err
		}
		right, err := ctx.LookupValue("right")
		if err != nil {
			return Primitive{}, err
		}
		return operate(left, right), nil
	}
	return Binding{
		Name:  name,
		Value: FunctionExpr("left", FunctionExpr("right", NativeExpr(name, impl))),
	}
}

func builtinTrace() Binding {
	impl := func(ctx NativeContext) (Primitive, *NativeError) {
		value, err := ctx.LookupValue("value")
		if err != nil {
			return Primitive{}, err
		}
		fmt.Fprintf(traceOutput, "trace: %s\n", value)
		return value, nil
	}
	return Binding{
		Name:  "trace",
		Value: FunctionExpr("value", NativeExpr("trace", impl)),
	}
}

// Builtins returns the standard top-level bindings, in lookup order.
func Builtins() []Binding {
	return []Binding{
		builtinInfixMath("+", func(l, r Primitive) Primitive { return l.Add(r) }),
		builtinInfixMath("-", func(l, r Primitive) Primitive { return l.Sub(r) }),
		builtinInfixMath("*", func(l, r Primitive) Primitive { return l.Mul(r) }),
		builtinTrace(),
	}
}

// WithBuiltins wraps an expression in assignments for every builtin, so
// that evaluation resolves operator identifiers to their implementations.
func WithBuiltins(e Expr) Expr {
	builtins := Builtins()
	for i := len(builtins) - 1; i >= 0; i-- {
		b := builtins[i]
		e = AssignExpr(b.Name, b.Value, e)
	}
	return e
}
