package diagnostics

import (
	"fmt"
	"strings"
)

// Render formats a group of diagnostics as source-pointed captions:
//
//	error[P005]: expected ';' after expression
//	  --> script.lox:2:7
//	   |
//	 2 | print 1
//	   |       ^
//
// Errors without an attached source render as their Error() string.
func Render(errs []*DiagnosticError) string {
	var sb strings.Builder
	for i, err := range errs {
		if i > 0 {
			sb.WriteByte('\n')
		}
		renderOne(&sb, err)
	}
	return sb.String()
}

func renderOne(sb *strings.Builder, err *DiagnosticError) {
	fmt.Fprintf(sb, "error[%s]: %s\n", err.Code, err.Message)
	if err.Src == nil {
		return
	}
	line, col := err.Src.LineCol(err.Span.Offset)
	fmt.Fprintf(sb, "  --> %s:%d:%d\n", err.Src.Name, line, col)

	text := err.Src.Line(line)
	gutter := len(fmt.Sprintf("%d", line))
	pad := strings.Repeat(" ", gutter)
	fmt.Fprintf(sb, " %s |\n", pad)
	fmt.Fprintf(sb, " %d | %s\n", line, text)

	// Caret line: underline the span, clamped to the first source line it
	// touches (multi-line spans point at their first line only).
	width := err.Span.Length
	if width < 1 {
		width = 1
	}
	if rem := len(text) - (col - 1); width > rem && rem > 0 {
		width = rem
	}
	fmt.Fprintf(sb, " %s | %s%s\n", pad, strings.Repeat(" ", col-1), strings.Repeat("^", width))
}
