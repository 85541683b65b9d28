package lexer_test

import (
	"strings"
	"testing"

	"github.com/froth/golox/internal/diagnostics"
	"github.com/froth/golox/internal/lexer"
	"github.com/froth/golox/internal/token"
)

func scan(t *testing.T, input string) []token.Token {
	t.Helper()
	tokens, errs := lexer.Scan(token.NewSource("test.lox", input))
	if len(errs) > 0 {
		var msgs []string
		for _, err := range errs {
			msgs = append(msgs, err.Error())
		}
		t.Fatalf("scan failed:\n%s\ninput: %s", strings.Join(msgs, "\n"), input)
	}
	return tokens
}

func scanErrors(t *testing.T, input string) []*diagnostics.DiagnosticError {
	t.Helper()
	tokens, errs := lexer.Scan(token.NewSource("test.lox", input))
	if len(errs) == 0 {
		t.Fatalf("expected scan errors, got tokens: %v", tokens)
	}
	return errs
}

func TestScanTokenTypes(t *testing.T) {
	input := `( ) { } , . - + ; / * ! != = == > >= < <=`
	expected := []token.TokenType{
		token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE,
		token.COMMA, token.DOT, token.MINUS, token.PLUS, token.SEMICOLON,
		token.SLASH, token.ASTERISK,
		token.BANG, token.NOT_EQ, token.ASSIGN, token.EQ,
		token.GT, token.GTE, token.LT, token.LTE,
		token.EOF,
	}
	tokens := scan(t, input)
	if len(tokens) != len(expected) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(expected))
	}
	for i, want := range expected {
		if tokens[i].Type != want {
			t.Errorf("token %d: got %s, want %s", i, tokens[i].Type, want)
		}
	}
}

func TestScanKeywordsAndIdentifiers(t *testing.T) {
	input := "and class else false for fun if nil or print return super this true var while variable_name"
	expected := []token.TokenType{
		token.AND, token.CLASS, token.ELSE, token.FALSE, token.FOR,
		token.FUN, token.IF, token.NIL, token.OR, token.PRINT,
		token.RETURN, token.SUPER, token.THIS, token.TRUE, token.VAR,
		token.WHILE, token.IDENT, token.EOF,
	}
	tokens := scan(t, input)
	if len(tokens) != len(expected) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(expected))
	}
	for i, want := range expected {
		if tokens[i].Type != want {
			t.Errorf("token %d: got %s, want %s", i, tokens[i].Type, want)
		}
	}
	if lit := tokens[16].Literal; lit != "variable_name" {
		t.Errorf("identifier literal: got %v", lit)
	}
}

func TestScanString(t *testing.T) {
	tokens := scan(t, `"test"`)
	if tokens[0].Type != token.STRING || tokens[0].Literal != "test" {
		t.Fatalf("got %v", tokens[0])
	}
	if tokens[0].Span != (token.Span{Offset: 0, Length: 6}) {
		t.Errorf("span: got %v", tokens[0].Span)
	}
}

func TestScanStringWithNewline(t *testing.T) {
	tokens := scan(t, "\"a\nb\"")
	if tokens[0].Type != token.STRING || tokens[0].Literal != "a\nb" {
		t.Fatalf("got %v", tokens[0])
	}
}

func TestScanNumbers(t *testing.T) {
	tokens := scan(t, "1.1")
	if tokens[0].Type != token.NUMBER || tokens[0].Literal != 1.1 {
		t.Fatalf("got %v", tokens[0])
	}
	if len(tokens) != 2 {
		t.Fatalf("got %d tokens, want 2", len(tokens))
	}
}

func TestScanNumberTrailingDot(t *testing.T) {
	// The dot is not part of the number when no digits follow.
	tokens := scan(t, "1.")
	if tokens[0].Type != token.NUMBER || tokens[0].Span != (token.Span{Offset: 0, Length: 1}) {
		t.Fatalf("number: got %v", tokens[0])
	}
	if tokens[1].Type != token.DOT {
		t.Fatalf("dot: got %v", tokens[1])
	}
}

func TestScanSkipsComments(t *testing.T) {
	tokens := scan(t, "1 // comment\n2")
	if len(tokens) != 3 {
		t.Fatalf("got %d tokens, want 3", len(tokens))
	}
	if tokens[0].Literal != 1.0 || tokens[1].Literal != 2.0 {
		t.Fatalf("got %v", tokens)
	}
}

func TestEofSpan(t *testing.T) {
	input := "print"
	tokens := scan(t, input)
	eof := tokens[len(tokens)-1]
	if eof.Span != (token.Span{Offset: len(input), Length: 0}) {
		t.Errorf("EOF span: got %v", eof.Span)
	}
}

func TestEmptyInput(t *testing.T) {
	tokens := scan(t, "")
	if len(tokens) != 1 || tokens[0].Type != token.EOF {
		t.Fatalf("got %v", tokens)
	}
}

func TestSpansLieWithinSource(t *testing.T) {
	input := "var answer = 40 + 2; // tail\nprint answer;"
	for _, tok := range scan(t, input) {
		if tok.Span.Offset < 0 || tok.Span.End() > len(input) {
			t.Errorf("span %v escapes source of length %d", tok.Span, len(input))
		}
	}
}

func TestNonTerminatedString(t *testing.T) {
	errs := scanErrors(t, `1+1; "12345`)
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs))
	}
	err := errs[0]
	if err.Code != diagnostics.ErrS003 {
		t.Errorf("code: got %s", err.Code)
	}
	if err.Span != (token.Span{Offset: 5, Length: 6}) {
		t.Errorf("span: got %v", err.Span)
	}
}

func TestUnexpectedCharacter(t *testing.T) {
	errs := scanErrors(t, "^")
	if len(errs) != 1 || errs[0].Code != diagnostics.ErrS001 {
		t.Fatalf("got %v", errs)
	}
	if errs[0].Span != (token.Span{Offset: 0, Length: 1}) {
		t.Errorf("span: got %v", errs[0].Span)
	}
}

func TestCombineUnexpectedChars(t *testing.T) {
	errs := scanErrors(t, "^^^^")
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs))
	}
	err := errs[0]
	if err.Code != diagnostics.ErrS002 {
		t.Errorf("code: got %s", err.Code)
	}
	if err.Span != (token.Span{Offset: 0, Length: 4}) {
		t.Errorf("span: got %v", err.Span)
	}
	if !strings.Contains(err.Message, "'^^^^'") {
		t.Errorf("message: got %q", err.Message)
	}
}

func TestCombineOnlyContiguousRuns(t *testing.T) {
	errs := scanErrors(t, "^^ @@")
	if len(errs) != 2 {
		t.Fatalf("got %d errors, want 2", len(errs))
	}
	if errs[0].Span != (token.Span{Offset: 0, Length: 2}) {
		t.Errorf("first span: got %v", errs[0].Span)
	}
	if errs[1].Span != (token.Span{Offset: 3, Length: 2}) {
		t.Errorf("second span: got %v", errs[1].Span)
	}
}

// Concatenating the scanned lexemes with whitespace yields text that
// re-tokenizes to the same sequence.
func TestLexemeRoundTrip(t *testing.T) {
	input := "fun add(a, b) { return a + b; } print add(1.5, 2) == 3.5;"
	first := scan(t, input)

	var lexemes []string
	for _, tok := range first[:len(first)-1] {
		lexemes = append(lexemes, tok.Lexeme)
	}
	second := scan(t, strings.Join(lexemes, " "))

	if len(first) != len(second) {
		t.Fatalf("token counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].Equal(second[i]) {
			t.Errorf("token %d differs: %v vs %v", i, first[i], second[i])
		}
	}
}
