package diagnostics_test

import (
	"strings"
	"testing"

	"github.com/froth/golox/internal/diagnostics"
	"github.com/froth/golox/internal/token"
)

func TestRenderSourcePointedCaption(t *testing.T) {
	src := token.NewSource("script.lox", "var a = 1;\nprint 1\n")
	err := diagnostics.NewSpanError(diagnostics.ErrP005, token.Span{Offset: 18, Length: 1}, "expected ';' after expression")
	err.Src = src

	rendered := diagnostics.Render([]*diagnostics.DiagnosticError{err})
	expected := strings.Join([]string{
		"error[P005]: expected ';' after expression",
		"  --> script.lox:2:8",
		"   |",
		" 2 | print 1",
		"   |        ^",
		"",
	}, "\n")
	if rendered != expected {
		t.Errorf("rendered caption mismatch:\n--- got\n%s\n--- want\n%s", rendered, expected)
	}
}

func TestRenderMultipleErrors(t *testing.T) {
	src := token.NewSource("s.lox", "^ @")
	errs := []*diagnostics.DiagnosticError{
		diagnostics.NewSpanError(diagnostics.ErrS001, token.Span{Offset: 0, Length: 1}, "unexpected character '^'"),
		diagnostics.NewSpanError(diagnostics.ErrS001, token.Span{Offset: 2, Length: 1}, "unexpected character '@'"),
	}
	for _, err := range errs {
		err.Src = src
	}
	rendered := diagnostics.Render(errs)
	if strings.Count(rendered, "error[S001]") != 2 {
		t.Errorf("expected two reports, got:\n%s", rendered)
	}
}

func TestErrorStringWithoutSource(t *testing.T) {
	err := diagnostics.NewSpanError(diagnostics.ErrE004, token.Span{Offset: 3, Length: 2}, "undefined variable 'x'")
	if got := err.Error(); got != "[E004] undefined variable 'x'" {
		t.Errorf("got %q", got)
	}
}

func TestErrorStringWithSource(t *testing.T) {
	err := diagnostics.NewSpanError(diagnostics.ErrE004, token.Span{Offset: 6, Length: 1}, "undefined variable 'x'")
	err.Src = token.NewSource("f.lox", "print x;")
	if got := err.Error(); got != "[E004] f.lox:1:7: undefined variable 'x'" {
		t.Errorf("got %q", got)
	}
}
