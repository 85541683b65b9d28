package lexer

import (
	"github.com/froth/golox/internal/diagnostics"
	"github.com/froth/golox/internal/token"
)

// combineErrors collapses runs of single-character errors over contiguous
// byte ranges into one diagnostic per run, so `^^^^` reports once instead
// of four times. Other error kinds pass through unchanged, in order.
func combineErrors(errs []*diagnostics.DiagnosticError, src *token.Source) []*diagnostics.DiagnosticError {
	var combined []*diagnostics.DiagnosticError
	var run *diagnostics.DiagnosticError

	flush := func() {
		if run == nil {
			return
		}
		if run.Code == diagnostics.ErrS002 {
			chars := src.Content[run.Span.Offset:run.Span.End()]
			run.Message = "unexpected characters " + quoteRun(chars)
		}
		combined = append(combined, run)
		run = nil
	}

	for _, err := range errs {
		if err.Code != diagnostics.ErrS001 {
			flush()
			combined = append(combined, err)
			continue
		}
		if run != nil && run.Span.End() == err.Span.Offset {
			run.Span = run.Span.Until(err.Span)
			run.Code = diagnostics.ErrS002
			continue
		}
		flush()
		run = err
	}
	flush()
	return combined
}

func quoteRun(chars string) string {
	return "'" + chars + "'"
}
