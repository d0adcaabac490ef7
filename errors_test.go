// errors_test.go
package boo

import (
	"strings"
	"testing"
)

func Test_WrapErrorWithSource_LexError_Snippet(t *testing.T) {
	src := "let x =\n1 + $\nx"
	_, err := Lex(src)
	if err == nil {
		t.Fatalf("expected a lex error")
	}
	wrapped := WrapErrorWithSource(err, src).Error()
	for _, want := range []string{
		"LEXICAL ERROR at 2:5",
		"   1 | let x =",
		"   2 | 1 + $",
		"     |     ^",
		"   3 | x",
	} {
		if !strings.Contains(wrapped, want) {
			t.Fatalf("snippet missing %q:\n%s", want, wrapped)
		}
	}
}

func Test_WrapErrorWithSource_ParseError_Snippet(t *testing.T) {
	src := "1 +"
	_, err := ParseSource(src)
	if err == nil {
		t.Fatalf("expected a parse error")
	}
	wrapped := WrapErrorWithSource(err, src).Error()
	if !strings.Contains(wrapped, "PARSE ERROR at 1:4") {
		t.Fatalf("snippet missing the header:\n%s", wrapped)
	}
	if !strings.Contains(wrapped, "   1 | 1 +") {
		t.Fatalf("snippet missing the source line:\n%s", wrapped)
	}
}

func Test_WrapErrorWithSource_Other_Errors_Pass_Through(t *testing.T) {
	evalErr := &EvalError{Kind: ErrUnknownIdentifier, Name: "x"}
	if got := WrapErrorWithSource(evalErr, "x"); got != error(evalErr) {
		t.Fatalf("evaluation errors should pass through unchanged, got %v", got)
	}
}

func Test_Positioned_Error_Messages_Use_One_Based_Columns(t *testing.T) {
	lexErr := &LexError{Line: 1, Col: 0, Msg: "boom"}
	if got := lexErr.Error(); !strings.Contains(got, "1:1") {
		t.Fatalf("lex error message %q should report column 1", got)
	}
	parseErr := &ParseError{Line: 2, Col: 3, Msg: "boom"}
	if got := parseErr.Error(); !strings.Contains(got, "2:4") {
		t.Fatalf("parse error message %q should report column 4", got)
	}
}
