// parser.go: recursive-descent parser turning tokens into expressions.
//
// What this file does
// -------------------
// `Parse` consumes the token sequence produced by lexer.go and builds a
// single `Expr`, or fails with a positioned `*ParseError` naming the
// expected and found tokens. The parser is fail-fast: the first structural
// error (missing `in`, unmatched `(`, trailing tokens after a complete
// expression) aborts with no recovery and no partial tree.
//
// Grammar
// -------
// Precedence, loosest to tightest:
//
//	fn / let / match bodies extend as far right as possible
//	additive:       "+" "-"      (left-associative)
//	multiplicative: "*"          (left-associative)
//	application:    juxtaposition (left-associative)
//	atoms:          literals, identifiers, parenthesised expressions
//
// Desugarings performed here, so the evaluator never sees surface forms:
//   - infix arithmetic becomes applications of operator identifiers:
//     `a + b` parses as `((+) a) b`.
//   - `fn a b -> e` nests into single-parameter functions
//     `fn a -> fn b -> e`.
//   - a prefix `-` directly before an integer literal, in atom position
//     only, folds into a negative literal. After a complete operand `-` is
//     always subtraction.
//
// Match blocks accept `;` between arms and after the last arm, but do not
// require it, so arms can be written one per line.
//
// Scope of the public API
// -----------------------
// Public:  `Parse(tokens)` — src-to-tokens callers go through
//          `ParseSource` in boo.go.
// Private: the token cursor (`peek`/`match`/`need`) and one parse function
//          per precedence level.
//
// Dependencies (other files)
// --------------------------
//   - lexer.go: `Token` and `TokenType`, including token positions, which
//     become the positions on parse errors.
//   - ast.go: the `Expr` constructors and `Pattern` builders.
//   - errors.go: defines `*ParseError{Line, Col, Msg}` and its rendering.
package boo

import "fmt"

type parser struct {
	toks []Token
	i    int
}

// Parse converts a token sequence into a single expression. Trailing tokens
// after a complete expression are an error.
func Parse(tokens []Token) (Expr, error) {
	p := &parser{toks: tokens}
	expr, err := p.parseExpr()
	if err != nil {
		return Expr{}, err
	}
	if p.peek().Type != EOF {
		return Expr{}, p.errAt(p.peek(), fmt.Sprintf("unexpected input after expression: %s", describeToken(p.peek())))
	}
	return expr, nil
}

func (p *parser) peek() Token { return p.toks[p.i] }

func (p *parser) advance() Token {
	tok := p.toks[p.i]
	if tok.Type != EOF {
		p.i++
	}
	return tok
}

func (p *parser) check(tt TokenType) bool { return p.peek().Type == tt }

func (p *parser) match(tt TokenType) (Token, bool) {
	if p.check(tt) {
		return p.advance(), true
	}
	return Token{}, false
}

func (p *parser) need(tt TokenType, what string) (Token, error) {
	if tok, ok := p.match(tt); ok {
		return tok, nil
	}
	tok := p.peek()
	return Token{}, p.errAt(tok, fmt.Sprintf("expected %s, found %s", what, describeToken(tok)))
}

func (p *parser) errAt(tok Token, msg string) error {
	return &ParseError{Line: tok.Line, Col: tok.Col, Msg: msg}
}

func describeToken(tok Token) string {
	if tok.Type == EOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", tok.Lexeme)
}

// ----- grammar -----

func (p *parser) parseExpr() (Expr, error) {
	return p.parseAdditive()
}

func (p *parser) parseAdditive() (Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return Expr{}, err
	}
	for {
		var op Identifier
		switch p.peek().Type {
		case PLUS:
			op = "+"
		case MINUS:
			op = "-"
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return Expr{}, err
		}
		left = ApplyExpr(ApplyExpr(IdentifierExpr(op), left), right)
	}
}

func (p *parser) parseMultiplicative() (Expr, error) {
	left, err := p.parseApplication()
	if err != nil {
		return Expr{}, err
	}
	for p.check(MULT) {
		p.advance()
		right, err := p.parseApplication()
		if err != nil {
			return Expr{}, err
		}
		left = ApplyExpr(ApplyExpr(IdentifierExpr("*"), left), right)
	}
	return left, nil
}

// startsAtom reports whether a token can begin an atom in argument
// position. MINUS is deliberately excluded: after a complete operand it
// always means subtraction, so `f -1` is `f - 1`, not `f (-1)`.
func startsAtom(tt TokenType) bool {
	switch tt {
	case INTEGER, IDENT, LROUND, FN, LET, MATCH:
		return true
	default:
		return false
	}
}

func (p *parser) parseApplication() (Expr, error) {
	fn, err := p.parseAtom()
	if err != nil {
		return Expr{}, err
	}
	for startsAtom(p.peek().Type) {
		arg, err := p.parseAtom()
		if err != nil {
			return Expr{}, err
		}
		fn = ApplyExpr(fn, arg)
	}
	return fn, nil
}

func (p *parser) parseAtom() (Expr, error) {
	tok := p.peek()
	switch tok.Type {
	case INTEGER:
		p.advance()
		return PrimitiveExpr(tok.Int), nil
	case MINUS:
		// A leading "-" directly before an integer literal is a negative
		// literal.
		p.advance()
		lit, err := p.need(INTEGER, "an integer literal")
		if err != nil {
			return Expr{}, err
		}
		return PrimitiveExpr(lit.Int.Neg()), nil
	case IDENT:
		p.advance()
		return IdentifierExpr(Identifier(tok.Lexeme)), nil
	case LROUND:
		p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return Expr{}, err
		}
		if _, err := p.need(RROUND, `")"`); err != nil {
			return Expr{}, err
		}
		return inner, nil
	case FN:
		return p.parseFunction()
	case LET:
		return p.parseLet()
	case MATCH:
		return p.parseMatch()
	}
	return Expr{}, p.errAt(tok, fmt.Sprintf("expected an expression, found %s", describeToken(tok)))
}

// parseFunction parses `fn a b ... -> body`; multiple parameters desugar
// into nested single-parameter functions.
func (p *parser) parseFunction() (Expr, error) {
	p.advance() // FN
	var params []Identifier
	first, err := p.need(IDENT, "a parameter name")
	if err != nil {
		return Expr{}, err
	}
	params = append(params, Identifier(first.Lexeme))
	for {
		tok, ok := p.match(IDENT)
		if !ok {
			break
		}
		params = append(params, Identifier(tok.Lexeme))
	}
	if _, err := p.need(ARROW, `"->"`); err != nil {
		return Expr{}, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return Expr{}, err
	}
	for i := len(params) - 1; i >= 0; i-- {
		body = FunctionExpr(params[i], body)
	}
	return body, nil
}

func (p *parser) parseLet() (Expr, error) {
	p.advance() // LET
	name, err := p.need(IDENT, "a binding name")
	if err != nil {
		return Expr{}, err
	}
	if _, err := p.need(ASSIGN, `"="`); err != nil {
		return Expr{}, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return Expr{}, err
	}
	if _, err := p.need(IN, `"in"`); err != nil {
		return Expr{}, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return Expr{}, err
	}
	return AssignExpr(Identifier(name.Lexeme), value, body), nil
}

func (p *parser) parseMatch() (Expr, error) {
	p.advance() // MATCH
	value, err := p.parseExpr()
	if err != nil {
		return Expr{}, err
	}
	if _, err := p.need(LCURLY, `"{"`); err != nil {
		return Expr{}, err
	}
	var arms []MatchArm
	for !p.check(RCURLY) && !p.check(EOF) {
		pat, err := p.parsePattern()
		if err != nil {
			return Expr{}, err
		}
		if _, err := p.need(ARROW, `"->"`); err != nil {
			return Expr{}, err
		}
		result, err := p.parseExpr()
		if err != nil {
			return Expr{}, err
		}
		arms = append(arms, MatchArm{Pattern: pat, Result: result})
		// Separators are optional; a trailing one before "}" is fine.
		p.match(SEMI)
	}
	if _, err := p.need(RCURLY, `"}"`); err != nil {
		return Expr{}, err
	}
	return MatchExpr(value, arms), nil
}

func (p *parser) parsePattern() (Pattern, error) {
	tok := p.peek()
	switch tok.Type {
	case UNDERSCORE:
		p.advance()
		return AnythingPattern(), nil
	case INTEGER:
		p.advance()
		return LiteralPattern(tok.Int), nil
	case MINUS:
		p.advance()
		lit, err := p.need(INTEGER, "an integer literal")
		if err != nil {
			return Pattern{}, err
		}
		return LiteralPattern(lit.Int.Neg()), nil
	}
	return Pattern{}, p.errAt(tok, fmt.Sprintf(`expected a pattern ("_" or an integer), found %s`, describeToken(tok)))
}
