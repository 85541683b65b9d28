package golox

import (
	"fmt"
	"io"

	"github.com/froth/golox/internal/interpreter"
)

// Option configures a Runtime.
type Option func(*Runtime)

// VerboseFunc receives stage dumps when verbose logging is enabled.
type VerboseFunc func(stage, detail string)

// WithPrinter sets the sink for `print` statements.
func WithPrinter(p interpreter.Printer) Option {
	return func(r *Runtime) { r.printer = p }
}

// WithStdout redirects both `print` output and REPL expression results.
func WithStdout(w io.Writer) Option {
	return func(r *Runtime) {
		r.printer = &interpreter.ConsolePrinter{Out: w}
		r.out = func(text string) { fmt.Fprint(w, text) }
	}
}

// WithStderr redirects error reports.
func WithStderr(w io.Writer) Option {
	return func(r *Runtime) {
		r.errOut = func(text string) { fmt.Fprint(w, text) }
	}
}

// WithVerbose installs a sink for pipeline stage dumps.
func WithVerbose(fn VerboseFunc) Option {
	return func(r *Runtime) { r.verbose = fn }
}
