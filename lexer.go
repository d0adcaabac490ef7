// lexer.go: scans Boo source text into a flat token sequence.
//
// What this file does
// -------------------
// A byte-oriented scanner over the whole source string. `Scan` walks the
// input once and produces positioned tokens (a trailing EOF token
// included), or a `*LexError` at the first character it cannot place.
// There is no recovery: lexing stops at the first bad character.
//
// Token classes: integer literals (digits with optional `_` separators
// between digit pairs; the separators are stripped and the parsed value is
// carried on the token), identifiers `[A-Za-z_][A-Za-z0-9_]*`, the keywords
// `fn` / `let` / `in` / `match`, a bare `_` as its own wildcard token, the
// operators `+ - * -> =`, and the punctuation `( ) { } ;`. A `-` is always
// its own token, even directly before digits; negative literals are
// assembled by the parser so that `f -1` stays a subtraction. Whitespace
// (spaces, tabs, newlines) only separates tokens.
//
// Positions
// ---------
// Tokens and errors carry a 1-based line and a 0-based column of their
// first byte. The column is rendered 1-based by the error types in
// errors.go.
//
// Scope of the public API
// -----------------------
// Public:  `Lex(src)`, `NewLexer(src)`, `(*Lexer).Scan()`, `Token`,
//          `TokenType` and its constants.
// Private: the cursor helpers and the per-class scanners.
//
// Dependencies (other files)
// --------------------------
//   - integer.go: `ParseInteger` turns the stripped digit string of a
//     literal into an `Integer`.
//   - errors.go: defines `*LexError{Line, Col, Msg}` and its rendering.
package boo

import "fmt"

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota

	// Punctuation
	LROUND // "("
	RROUND // ")"
	LCURLY // "{"
	RCURLY // "}"
	SEMI   // ";"

	// Operators
	PLUS
	MINUS
	MULT
	ARROW  // "->"
	ASSIGN // "="

	// Literals & identifiers
	INTEGER
	IDENT
	UNDERSCORE // a bare "_", the wildcard pattern

	// Keywords
	FN
	LET
	IN
	MATCH
)

// Token is a lexical token. Integer literals carry their parsed value, with
// any '_' separators already stripped.
type Token struct {
	Type   TokenType
	Lexeme string
	Int    Integer // valid for INTEGER only
	Line   int     // 1-based
	Col    int     // 0-based
}

var keywords = map[string]TokenType{
	"fn":    FN,
	"let":   LET,
	"in":    IN,
	"match": MATCH,
}

// Lexer scans a Boo source string into tokens.
type Lexer struct {
	src   string
	start int // start index of current token
	cur   int // current index
	line  int // 1-based
	col   int // 0-based column within line

	// position of the current token's first byte
	tokStartLine int
	tokStartCol  int
}

// NewLexer creates a new lexer for the given source.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1}
}

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	return l.src[l.cur], true
}

func (l *Lexer) peekN(n int) (byte, bool) {
	idx := l.cur + n
	if idx >= len(l.src) {
		return 0, false
	}
	return l.src[idx], true
}

func (l *Lexer) advance() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	ch := l.src[l.cur]
	l.cur++
	if ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return ch, true
}

func (l *Lexer) makeToken(tt TokenType) Token {
	return Token{
		Type:   tt,
		Lexeme: l.src[l.start:l.cur],
		Line:   l.tokStartLine,
		Col:    l.tokStartCol,
	}
}

func (l *Lexer) skipWhitespace() {
	for !l.isAtEnd() {
		ch, _ := l.peek()
		switch ch {
		case ' ', '\r', '\n', '\t', '\f':
			l.advance()
		default:
			return
		}
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isAlphaNum(b byte) bool {
	return isAlpha(b) || isDigit(b)
}

func (l *Lexer) err(msg string) error {
	return &LexError{Line: l.tokStartLine, Col: l.tokStartCol, Msg: msg}
}

// scanInteger parses [0-9](_?[0-9])*. A separator must sit between two
// digits; a trailing '_' is left for the next token.
func (l *Lexer) scanInteger() (Token, error) {
	for {
		b, ok := l.peek()
		if ok && isDigit(b) {
			l.advance()
			continue
		}
		if ok && b == '_' {
			if b2, ok2 := l.peekN(1); ok2 && isDigit(b2) {
				l.advance()
				l.advance()
				continue
			}
		}
		break
	}
	lex := l.src[l.start:l.cur]
	stripped := make([]byte, 0, len(lex))
	for i := 0; i < len(lex); i++ {
		if lex[i] != '_' {
			stripped = append(stripped, lex[i])
		}
	}
	value, ok := ParseInteger(string(stripped))
	if !ok {
		return Token{}, l.err(fmt.Sprintf("invalid integer literal: %q", lex))
	}
	tok := l.makeToken(INTEGER)
	tok.Int = value
	return tok, nil
}

// scanIdentifier parses [A-Za-z_][A-Za-z0-9_]* and classifies it as a
// keyword, the wildcard '_', or a plain identifier.
func (l *Lexer) scanIdentifier() Token {
	for {
		b, ok := l.peek()
		if !ok || !isAlphaNum(b) {
			break
		}
		l.advance()
	}
	lex := l.src[l.start:l.cur]
	if lex == "_" {
		return l.makeToken(UNDERSCORE)
	}
	if tt, ok := keywords[lex]; ok {
		return l.makeToken(tt)
	}
	return l.makeToken(IDENT)
}

func (l *Lexer) scanToken() (Token, error) {
	l.skipWhitespace()
	l.tokStartLine = l.line
	l.tokStartCol = l.col
	l.start = l.cur

	if l.isAtEnd() {
		return l.makeToken(EOF), nil
	}

	ch, _ := l.advance()

	switch ch {
	case '(':
		return l.makeToken(LROUND), nil
	case ')':
		return l.makeToken(RROUND), nil
	case '{':
		return l.makeToken(LCURLY), nil
	case '}':
		return l.makeToken(RCURLY), nil
	case ';':
		return l.makeToken(SEMI), nil
	case '+':
		return l.makeToken(PLUS), nil
	case '*':
		return l.makeToken(MULT), nil
	case '=':
		return l.makeToken(ASSIGN), nil
	case '-':
		// "-" is always its own token; negative literals are assembled by
		// the parser in prefix position.
		if b, ok := l.peek(); ok && b == '>' {
			l.advance()
			return l.makeToken(ARROW), nil
		}
		return l.makeToken(MINUS), nil
	}

	if isDigit(ch) {
		return l.scanInteger()
	}
	if isAlpha(ch) {
		return l.scanIdentifier(), nil
	}

	return Token{}, l.err(fmt.Sprintf("unexpected character: %q", ch))
}

// Scan tokenizes the entire source and returns tokens (EOF included).
func (l *Lexer) Scan() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.scanToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens, nil
		}
	}
}

// Lex is a convenience wrapper that scans src in one call.
func Lex(src string) ([]Token, error) {
	return NewLexer(src).Scan()
}
