package parser_test

import (
	"strings"
	"testing"

	"github.com/froth/golox/internal/ast"
	"github.com/froth/golox/internal/diagnostics"
)

func parseWithErrors(t *testing.T, input string) []*diagnostics.DiagnosticError {
	t.Helper()
	return parseProgram(t, input).Errors
}

// expectError asserts at least one error with the given code.
func expectError(t *testing.T, input string, code diagnostics.ErrorCode) *diagnostics.DiagnosticError {
	t.Helper()
	errs := parseWithErrors(t, input)
	if len(errs) == 0 {
		t.Fatalf("expected error %s, but got none\ninput: %s", code, input)
	}
	for _, e := range errs {
		if e.Code == code {
			return e
		}
	}
	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	t.Fatalf("expected error %s, got:\n%s\ninput: %s", code, strings.Join(msgs, "\n"), input)
	return nil
}

func TestP001_MissingParenAfterIf(t *testing.T) {
	expectError(t, "if true { 1; }", diagnostics.ErrP001)
}

func TestP002_MissingClosingParen(t *testing.T) {
	expectError(t, "print (1 + 2;", diagnostics.ErrP002)
}

func TestP003_MissingBraceBeforeBody(t *testing.T) {
	expectError(t, "fun f() return 1;", diagnostics.ErrP003)
}

func TestP004_UnterminatedBlock(t *testing.T) {
	expectError(t, "{ print 1;", diagnostics.ErrP004)
}

func TestP005_MissingSemicolon(t *testing.T) {
	expectError(t, "print 1", diagnostics.ErrP005)
}

func TestP005_CarriesPartialExpression(t *testing.T) {
	errs := parseWithErrors(t, "1 + 2")
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs))
	}
	err := errs[0]
	if err.Code != diagnostics.ErrP005 {
		t.Fatalf("code: got %s", err.Code)
	}
	expr, ok := err.Partial.(ast.Expression)
	if !ok || expr == nil {
		t.Fatalf("expected partial expression, got %T", err.Partial)
	}
	if _, ok := expr.(*ast.InfixExpression); !ok {
		t.Errorf("partial: got %T, want *ast.InfixExpression", expr)
	}
}

func TestP006_MissingVariableName(t *testing.T) {
	expectError(t, "var = 1;", diagnostics.ErrP006)
}

func TestP006_BareSuper(t *testing.T) {
	expectError(t, "class B < A { m() { return super; } }", diagnostics.ErrP006)
}

func TestP007_MissingExpression(t *testing.T) {
	expectError(t, "print ;", diagnostics.ErrP007)
}

func TestP008_UnexpectedEof(t *testing.T) {
	expectError(t, "print 1 +", diagnostics.ErrP008)
}

func TestP009_InvalidAssignmentTarget(t *testing.T) {
	errs := parseWithErrors(t, "1 + 2 = 3;")
	var found bool
	for _, e := range errs {
		if e.Code == diagnostics.ErrP009 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected %s, got %v", diagnostics.ErrP009, errs)
	}
}

func TestP010_TooManyArguments(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("f(")
	for i := 0; i < 256; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("1")
	}
	sb.WriteString(");")
	expectError(t, sb.String(), diagnostics.ErrP010)
}

func TestP010_DoesNotAbortParse(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("f(")
	for i := 0; i < 256; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("1")
	}
	sb.WriteString("); print 1;")
	ctx := parseProgram(t, sb.String())
	// The oversized call is reported but both statements parse.
	if len(ctx.AstRoot.Statements) != 2 {
		t.Fatalf("got %d statements, want 2", len(ctx.AstRoot.Statements))
	}
}

func TestP011_TooManyParameters(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("fun f(")
	for i := 0; i < 256; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("p")
		sb.WriteString(strings.Repeat("x", 1)) // px, px, ... names may repeat
	}
	sb.WriteString(") { return; }")
	expectError(t, sb.String(), diagnostics.ErrP011)
}

// One faulty statement does not mask the errors or statements after it.
func TestSynchronizeAtStatementBoundary(t *testing.T) {
	input := "var = 1; print 2; var = 3;"
	ctx := parseProgram(t, input)

	var identErrors int
	for _, e := range ctx.Errors {
		if e.Code == diagnostics.ErrP006 {
			identErrors++
		}
	}
	if identErrors != 2 {
		t.Errorf("got %d P006 errors, want 2 (recovery should reach the second one)", identErrors)
	}
	if len(ctx.AstRoot.Statements) != 1 {
		t.Errorf("got %d statements, want the 1 valid one", len(ctx.AstRoot.Statements))
	}
}

func TestErrorSpansLieWithinSource(t *testing.T) {
	inputs := []string{"var = 1;", "print (1;", "fun f( { }", "1 + 2 = 3;"}
	for _, input := range inputs {
		for _, err := range parseWithErrors(t, input) {
			if err.Span.Offset < 0 || err.Span.End() > len(input) {
				t.Errorf("span %v escapes source %q", err.Span, input)
			}
		}
	}
}
