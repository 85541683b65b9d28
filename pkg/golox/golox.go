// Package golox is the embedding facade: it wires the lexer, parser,
// resolver, and interpreter into a Runtime with REPL-friendly entry points.
package golox

import (
	"fmt"
	"os"
	"strings"

	"github.com/froth/golox/internal/ast"
	"github.com/froth/golox/internal/diagnostics"
	"github.com/froth/golox/internal/interpreter"
	"github.com/froth/golox/internal/lexer"
	"github.com/froth/golox/internal/parser"
	"github.com/froth/golox/internal/pipeline"
	"github.com/froth/golox/internal/resolver"
)

// Runtime holds a persistent interpreter: the REPL feeds it line after line
// and global state carries over.
type Runtime struct {
	printer interpreter.Printer
	out     func(text string)
	errOut  func(text string)
	interp  *interpreter.Interpreter
	verbose VerboseFunc
}

// PipelineError groups the diagnostics of a failed run and renders them as
// source-pointed captions.
type PipelineError struct {
	Diagnostics []*diagnostics.DiagnosticError
}

func (e *PipelineError) Error() string {
	return diagnostics.Render(e.Diagnostics)
}

// New creates a runtime with the given options.
func New(opts ...Option) *Runtime {
	r := &Runtime{
		printer: &interpreter.ConsolePrinter{Out: os.Stdout},
		out:     func(text string) { fmt.Print(text) },
		errOut:  func(text string) { fmt.Fprint(os.Stderr, text) },
		verbose: func(stage, detail string) {},
	}
	for _, opt := range opts {
		opt(r)
	}
	r.interp = interpreter.New(r.printer)
	return r
}

// Interpreter exposes the underlying interpreter for embedders that seed
// extra natives into the globals.
func (r *Runtime) Interpreter() *interpreter.Interpreter {
	return r.interp
}

// RunFile reads, scans, parses, resolves, and runs a source file.
func (r *Runtime) RunFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return r.RunSource(path, string(content))
}

// RunSource runs a named piece of source through the full pipeline.
// Pipeline errors come back as *PipelineError.
func (r *Runtime) RunSource(name, source string) error {
	ctx, err := r.frontend(name, source)
	if err != nil {
		return err
	}
	if runtimeErr := r.interp.Run(ctx.AstRoot, ctx.Depths); runtimeErr != nil {
		runtimeErr.Src = ctx.Src
		return &PipelineError{Diagnostics: []*diagnostics.DiagnosticError{runtimeErr}}
	}
	return nil
}

// DumpAST parses a source and returns whatever the given visitor printed.
func (r *Runtime) DumpAST(name, source string, printer interface {
	ast.Visitor
	String() string
}) (string, error) {
	ctx := pipeline.NewContext(name, source)
	pipe := pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{})
	ctx = pipe.Run(ctx)
	if ctx.HasErrors() {
		return "", &PipelineError{Diagnostics: ctx.Errors}
	}
	ctx.AstRoot.Accept(printer)
	return printer.String(), nil
}

// EvalLine evaluates one REPL line. Statements run normally; when the only
// parse error is a missing semicolon with a complete expression, the line
// is evaluated as that expression and printed as `expr => <value>`.
func (r *Runtime) EvalLine(line string) error {
	ctx, err := r.frontend("repl", line)
	if err != nil {
		pipeErr, ok := err.(*PipelineError)
		if !ok {
			return err
		}
		expr := replFallbackExpression(pipeErr.Diagnostics)
		if expr == nil {
			return err
		}
		return r.evalFallback(expr, ctx)
	}
	if runtimeErr := r.interp.Run(ctx.AstRoot, ctx.Depths); runtimeErr != nil {
		runtimeErr.Src = ctx.Src
		return &PipelineError{Diagnostics: []*diagnostics.DiagnosticError{runtimeErr}}
	}
	return nil
}

// frontend runs scan+parse+resolve and returns the context, or the grouped
// errors. The context is returned even on failure so callers can reuse its
// source.
func (r *Runtime) frontend(name, source string) (*pipeline.PipelineContext, error) {
	ctx := pipeline.NewContext(name, source)
	pipe := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&resolver.ResolverProcessor{},
	)
	ctx = pipe.Run(ctx)
	r.logVerbose(ctx)
	if ctx.HasErrors() {
		return ctx, &PipelineError{Diagnostics: ctx.Errors}
	}
	return ctx, nil
}

func (r *Runtime) logVerbose(ctx *pipeline.PipelineContext) {
	if len(ctx.Tokens) > 0 {
		var types []string
		for _, tok := range ctx.Tokens {
			types = append(types, string(tok.Type))
		}
		r.verbose("tokens", strings.Join(types, ", "))
	}
	if ctx.Depths != nil {
		r.verbose("depths", fmt.Sprintf("%d resolved local occurrences", len(ctx.Depths)))
	}
}

// replFallbackExpression returns the carried expression when the error list
// is exactly one missing-semicolon error.
func replFallbackExpression(errs []*diagnostics.DiagnosticError) ast.Expression {
	if len(errs) != 1 || errs[0].Code != diagnostics.ErrP005 {
		return nil
	}
	expr, _ := errs[0].Partial.(ast.Expression)
	return expr
}

func (r *Runtime) evalFallback(expr ast.Expression, ctx *pipeline.PipelineContext) error {
	depths, errs := resolver.ResolveExpression(expr)
	if len(errs) > 0 {
		for _, err := range errs {
			err.Src = ctx.Src
		}
		return &PipelineError{Diagnostics: errs}
	}
	value, runtimeErr := r.interp.EvalExpression(expr, depths)
	if runtimeErr != nil {
		runtimeErr.Src = ctx.Src
		return &PipelineError{Diagnostics: []*diagnostics.DiagnosticError{runtimeErr}}
	}
	r.out(fmt.Sprintf("expr => %s\n", value.Inspect()))
	return nil
}

// ReportError renders an error to the runtime's error sink.
func (r *Runtime) ReportError(err error) {
	r.errOut(err.Error() + "\n")
}
