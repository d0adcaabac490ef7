// printer.go: renders expressions back to source text.
package boo

import "strings"

var infixOperators = map[Identifier]bool{
	"+": true,
	"-": true,
	"*": true,
}

// Render produces a parseable textual form of e. Sub-expressions are
// parenthesised liberally rather than by precedence, so the output reparses
// to the same tree. Fully applied builtin operators print infix.
func Render(e Expr) string {
	var b strings.Builder
	render(&b, e)
	return b.String()
}

func render(b *strings.Builder, e Expr) {
	switch e.Kind {
	case ExprPrimitive:
		b.WriteString(e.Data.(Primitive).String())

	case ExprIdentifier:
		b.WriteString(string(e.Data.(Identifier)))

	case ExprNative:
		b.WriteString(string(e.Data.(Native).Name))

	case ExprFunction:
		fn := e.Data.(Function)
		b.WriteString("fn ")
		b.WriteString(string(fn.Parameter))
		b.WriteString(" -> ")
		renderGrouped(b, fn.Body)

	case ExprApply:
		apply := e.Data.(Apply)
		if op, left, ok := infixApplication(apply); ok {
			renderGrouped(b, left)
			b.WriteString(" ")
			b.WriteString(string(op))
			b.WriteString(" ")
			renderGrouped(b, apply.Argument)
			return
		}
		renderGrouped(b, apply.Function)
		b.WriteString(" ")
		renderGrouped(b, apply.Argument)

	case ExprAssign:
		assign := e.Data.(Assign)
		b.WriteString("let ")
		b.WriteString(string(assign.Name))
		b.WriteString(" = ")
		renderGrouped(b, assign.Value)
		b.WriteString(" in ")
		renderGrouped(b, assign.Body)

	case ExprMatch:
		m := e.Data.(Match)
		b.WriteString("match ")
		renderGrouped(b, m.Value)
		b.WriteString(" { ")
		for i, arm := range m.Arms {
			if i > 0 {
				b.WriteString("; ")
			}
			renderPattern(b, arm.Pattern)
			b.WriteString(" -> ")
			renderGrouped(b, arm.Result)
		}
		b.WriteString(" }")
	}
}

// infixApplication recognises a saturated application of a builtin
// operator, `((op left) right)`.
func infixApplication(apply Apply) (Identifier, Expr, bool) {
	if apply.Function.Kind != ExprApply {
		return "", Expr{}, false
	}
	inner := apply.Function.Data.(Apply)
	if inner.Function.Kind != ExprIdentifier {
		return "", Expr{}, false
	}
	op := inner.Function.Data.(Identifier)
	if !infixOperators[op] {
		return "", Expr{}, false
	}
	return op, inner.Argument, true
}

// renderGrouped renders e, wrapping anything compound in parentheses.
// Negative literals are also wrapped so they cannot be re-read as
// subtraction in argument position.
func renderGrouped(b *strings.Builder, e Expr) {
	switch e.Kind {
	case ExprPrimitive:
		value := e.Data.(Primitive)
		if value.Cmp(IntegerFromInt64(0)) < 0 {
			b.WriteString("(")
			render(b, e)
			b.WriteString(")")
			return
		}
		render(b, e)
	case ExprIdentifier, ExprNative:
		render(b, e)
	default:
		b.WriteString("(")
		render(b, e)
		b.WriteString(")")
	}
}

func renderPattern(b *strings.Builder, p Pattern) {
	switch p.Kind {
	case PatternAnything:
		b.WriteString("_")
	case PatternLiteral:
		b.WriteString(p.Value.String())
	}
}
