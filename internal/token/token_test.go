package token_test

import (
	"testing"

	"github.com/froth/golox/internal/token"
)

func TestSpanUntil(t *testing.T) {
	a := token.Span{Offset: 2, Length: 3}
	b := token.Span{Offset: 8, Length: 4}

	want := token.Span{Offset: 2, Length: 10}
	if got := a.Until(b); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	// Until is symmetric.
	if got := b.Until(a); got != want {
		t.Errorf("reversed: got %v, want %v", got, want)
	}
}

func TestSpanUntilContained(t *testing.T) {
	outer := token.Span{Offset: 0, Length: 10}
	inner := token.Span{Offset: 3, Length: 2}
	if got := outer.Until(inner); got != outer {
		t.Errorf("got %v, want %v", got, outer)
	}
}

func TestLineCol(t *testing.T) {
	src := token.NewSource("t.lox", "ab\ncde\nf")
	cases := []struct {
		offset    int
		line, col int
	}{
		{0, 1, 1},
		{1, 1, 2},
		{3, 2, 1},
		{5, 2, 3},
		{7, 3, 1},
	}
	for _, tc := range cases {
		line, col := src.LineCol(tc.offset)
		if line != tc.line || col != tc.col {
			t.Errorf("offset %d: got %d:%d, want %d:%d", tc.offset, line, col, tc.line, tc.col)
		}
	}
}

func TestSourceLine(t *testing.T) {
	src := token.NewSource("t.lox", "ab\ncde\nf")
	if got := src.Line(1); got != "ab" {
		t.Errorf("line 1: got %q", got)
	}
	if got := src.Line(2); got != "cde" {
		t.Errorf("line 2: got %q", got)
	}
	if got := src.Line(3); got != "f" {
		t.Errorf("line 3: got %q", got)
	}
}

func TestLookupIdent(t *testing.T) {
	if token.LookupIdent("while") != token.WHILE {
		t.Error("while must be a keyword")
	}
	if token.LookupIdent("whilex") != token.IDENT {
		t.Error("whilex must be an identifier")
	}
}

// Token equality ignores spans.
func TestTokenEqualIgnoresSpan(t *testing.T) {
	a := token.Token{Type: token.NUMBER, Lexeme: "1", Literal: 1.0, Span: token.Span{Offset: 0, Length: 1}}
	b := token.Token{Type: token.NUMBER, Lexeme: "1", Literal: 1.0, Span: token.Span{Offset: 9, Length: 1}}
	if !a.Equal(b) {
		t.Error("tokens differing only in span must be equal")
	}
	c := token.Token{Type: token.NUMBER, Lexeme: "2", Literal: 2.0}
	if a.Equal(c) {
		t.Error("different literals must not be equal")
	}
}
