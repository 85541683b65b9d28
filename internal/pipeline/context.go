package pipeline

import (
	"github.com/froth/golox/internal/ast"
	"github.com/froth/golox/internal/diagnostics"
	"github.com/froth/golox/internal/token"
)

// PipelineContext carries the artifacts of every stage: source in, tokens,
// AST, depth map, and the accumulated diagnostics. Stages fill in their
// output and append errors; they never remove earlier artifacts.
type PipelineContext struct {
	SourceCode string
	FilePath   string
	Src        *token.Source

	Tokens  []token.Token
	AstRoot *ast.Program
	Depths  map[token.Span]int

	Errors []*diagnostics.DiagnosticError
}

// NewContext creates a context for a named piece of source.
func NewContext(filePath, source string) *PipelineContext {
	return &PipelineContext{
		SourceCode: source,
		FilePath:   filePath,
		Src:        token.NewSource(filePath, source),
	}
}

// HasErrors reports whether any stage recorded a diagnostic.
func (ctx *PipelineContext) HasErrors() bool {
	return len(ctx.Errors) > 0
}

// AttachSource backfills the source on diagnostics that were created where
// only tokens were in scope.
func (ctx *PipelineContext) AttachSource() {
	for _, err := range ctx.Errors {
		if err.Src == nil {
			err.Src = ctx.Src
		}
	}
}
