// ast.go: the Boo expression tree.
//
// Expr is the single data model shared by the parser, the evaluator and the
// printer. It is a closed tagged sum: the Kind field selects which payload
// Data holds. Trees are immutable; evaluation builds new trees and never
// mutates in place, so subtrees can be shared freely.
//
// Normal forms (expressions that cannot reduce further) are Primitive,
// Function and Native. Everything else is a redex or contains one.
package boo

// Primitive is a fully-reduced literal value. Integers are currently the
// only primitive kind.
type Primitive = Integer

// Identifier names a binding site or a variable reference. Equality is plain
// string equality; scoping is resolved structurally by substitution, so no
// scope metadata is attached. Operator names such as "+" are valid
// identifiers for binding purposes even though the lexer will not produce
// them as identifier tokens.
type Identifier string

// PatternKind discriminates the pattern forms usable in a match arm.
type PatternKind int

const (
	// PatternAnything matches any value, without forcing it.
	PatternAnything PatternKind = iota
	// PatternLiteral matches a primitive equal to Value.
	PatternLiteral
)

// Pattern is a match-arm pattern. Patterns do not bind variables.
type Pattern struct {
	Kind  PatternKind
	Value Primitive // valid for PatternLiteral only
}

// AnythingPattern builds the wildcard pattern.
func AnythingPattern() Pattern { return Pattern{Kind: PatternAnything} }

// LiteralPattern builds a pattern matching exactly the given primitive.
func LiteralPattern(value Primitive) Pattern {
	return Pattern{Kind: PatternLiteral, Value: value}
}

// ExprKind discriminates the expression variants.
type ExprKind int

const (
	ExprPrimitive  ExprKind = iota // Data: Primitive
	ExprIdentifier                 // Data: Identifier
	ExprNative                     // Data: Native
	ExprFunction                   // Data: Function
	ExprApply                      // Data: Apply
	ExprAssign                     // Data: Assign
	ExprMatch                      // Data: Match
)

// Expr is a Boo expression. The active payload in Data is selected by Kind;
// see the ExprKind constants.
type Expr struct {
	Kind ExprKind
	Data any
}

// Function is a single-argument closure-as-syntax. Multi-parameter functions
// exist only in the surface syntax; the parser nests them.
type Function struct {
	Parameter Identifier
	Body      Expr
}

// Apply is function application. The argument is substituted unevaluated;
// it is never forced by application alone.
type Apply struct {
	Function Expr
	Argument Expr
}

// Assign is `let name = value in body`. It is non-recursive sugar for
// applying `fn name -> body` to value.
type Assign struct {
	Name  Identifier
	Value Expr
	Body  Expr
}

// MatchArm pairs a pattern with its result expression.
type MatchArm struct {
	Pattern Pattern
	Result  Expr
}

// Match is ordered pattern dispatch. An empty arm slice is a legal tree that
// fails only when the evaluator reaches it.
type Match struct {
	Value Expr
	Arms  []MatchArm
}

func PrimitiveExpr(value Primitive) Expr {
	return Expr{Kind: ExprPrimitive, Data: value}
}

func IdentifierExpr(name Identifier) Expr {
	return Expr{Kind: ExprIdentifier, Data: name}
}

func NativeExpr(name Identifier, impl NativeImpl) Expr {
	return Expr{Kind: ExprNative, Data: Native{Name: name, Impl: impl}}
}

func FunctionExpr(parameter Identifier, body Expr) Expr {
	return Expr{Kind: ExprFunction, Data: Function{Parameter: parameter, Body: body}}
}

func ApplyExpr(function, argument Expr) Expr {
	return Expr{Kind: ExprApply, Data: Apply{Function: function, Argument: argument}}
}

func AssignExpr(name Identifier, value, body Expr) Expr {
	return Expr{Kind: ExprAssign, Data: Assign{Name: name, Value: value, Body: body}}
}

func MatchExpr(value Expr, arms []MatchArm) Expr {
	return Expr{Kind: ExprMatch, Data: Match{Value: value, Arms: arms}}
}

// EqualExpr reports structural equality. Natives compare by display name
// only, since their implementations are opaque.
func EqualExpr(a, b Expr) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case ExprPrimitive:
		return a.Data.(Primitive).Equal(b.Data.(Primitive))
	case ExprIdentifier:
		return a.Data.(Identifier) == b.Data.(Identifier)
	case ExprNative:
		return a.Data.(Native).Name == b.Data.(Native).Name
	case ExprFunction:
		fa, fb := a.Data.(Function), b.Data.(Function)
		return fa.Parameter == fb.Parameter && EqualExpr(fa.Body, fb.Body)
	case ExprApply:
		aa, ab := a.Data.(Apply), b.Data.(Apply)
		return EqualExpr(aa.Function, ab.Function) && EqualExpr(aa.Argument, ab.Argument)
	case ExprAssign:
		sa, sb := a.Data.(Assign), b.Data.(Assign)
		return sa.Name == sb.Name && EqualExpr(sa.Value, sb.Value) && EqualExpr(sa.Body, sb.Body)
	case ExprMatch:
		ma, mb := a.Data.(Match), b.Data.(Match)
		if !EqualExpr(ma.Value, mb.Value) || len(ma.Arms) != len(mb.Arms) {
			return false
		}
		for i := range ma.Arms {
			if !equalPattern(ma.Arms[i].Pattern, mb.Arms[i].Pattern) ||
				!EqualExpr(ma.Arms[i].Result, mb.Arms[i].Result) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func equalPattern(a, b Pattern) bool {
	if a.Kind != b.Kind {
		return false
	}
	if a.Kind == PatternLiteral {
		return a.Value.Equal(b.Value)
	}
	return true
}

// occursFree reports whether name appears free in e. Natives have no
// syntactic free identifiers; their outer lookups are closed over already.
func occursFree(e Expr, name Identifier) bool {
	switch e.Kind {
	case ExprIdentifier:
		return e.Data.(Identifier) == name
	case ExprFunction:
		f := e.Data.(Function)
		return f.Parameter != name && occursFree(f.Body, name)
	case ExprApply:
		a := e.Data.(Apply)
		return occursFree(a.Function, name) || occursFree(a.Argument, name)
	case ExprAssign:
		s := e.Data.(Assign)
		if occursFree(s.Value, name) {
			return true
		}
		return s.Name != name && occursFree(s.Body, name)
	case ExprMatch:
		m := e.Data.(Match)
		if occursFree(m.Value, name) {
			return true
		}
		for _, arm := range m.Arms {
			if occursFree(arm.Result, name) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
