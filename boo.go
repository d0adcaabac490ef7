// boo.go: top-level convenience API for the interpreter pipeline.
package boo

// Version of the interpreter.
const Version = "0.3.0"

// ParseSource lexes and parses a source string into an expression.
func ParseSource(src string) (Expr, error) {
	tokens, err := Lex(src)
	if err != nil {
		return Expr{}, err
	}
	return Parse(tokens)
}

// Interpret parses src, installs the builtins, and evaluates to a value.
func Interpret(src string) (Expr, error) {
	expr, err := ParseSource(src)
	if err != nil {
		return Expr{}, err
	}
	result, evalErr := Evaluate(WithBuiltins(expr))
	if evalErr != nil {
		return Expr{}, evalErr
	}
	return result, nil
}
