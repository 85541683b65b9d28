package lexer

import (
	"github.com/froth/golox/internal/pipeline"
	"github.com/froth/golox/internal/token"
)

// LexerProcessor adapts Scan to the pipeline.
type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Src == nil {
		ctx.Src = token.NewSource(ctx.FilePath, ctx.SourceCode)
	}
	tokens, errs := Scan(ctx.Src)
	if len(errs) > 0 {
		ctx.Errors = append(ctx.Errors, errs...)
		return ctx
	}
	ctx.Tokens = tokens
	return ctx
}
