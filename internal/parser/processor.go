package parser

import (
	"github.com/froth/golox/internal/pipeline"
)

// ParserProcessor adapts the parser to the pipeline.
type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Tokens == nil {
		// Guard against running without the lexer; Pipeline.Run stops on
		// lexer errors before we get here.
		return ctx
	}
	parser := New(ctx.Tokens, ctx)
	ctx.AstRoot = parser.ParseProgram()
	return ctx
}
