package resolver

import "github.com/froth/golox/internal/pipeline"

// ResolverProcessor adapts Resolve to the pipeline.
type ResolverProcessor struct{}

func (rp *ResolverProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil {
		return ctx
	}
	depths, errs := Resolve(ctx.AstRoot)
	if len(errs) > 0 {
		ctx.Errors = append(ctx.Errors, errs...)
		return ctx
	}
	ctx.Depths = depths
	return ctx
}
