package resolver_test

import (
	"strings"
	"testing"

	"github.com/froth/golox/internal/ast"
	"github.com/froth/golox/internal/diagnostics"
	"github.com/froth/golox/internal/lexer"
	"github.com/froth/golox/internal/parser"
	"github.com/froth/golox/internal/pipeline"
	"github.com/froth/golox/internal/resolver"
	"github.com/froth/golox/internal/token"
)

func resolveSource(t *testing.T, input string) (resolver.Depths, []*diagnostics.DiagnosticError) {
	t.Helper()
	ctx := pipeline.NewContext("test.lox", input)
	ctx = (&lexer.LexerProcessor{}).Process(ctx)
	ctx = (&parser.ParserProcessor{}).Process(ctx)
	if len(ctx.Errors) > 0 {
		t.Fatalf("frontend failed: %v", ctx.Errors)
	}
	return resolver.Resolve(ctx.AstRoot)
}

func depths(t *testing.T, input string) resolver.Depths {
	t.Helper()
	d, errs := resolveSource(t, input)
	if len(errs) > 0 {
		var msgs []string
		for _, err := range errs {
			msgs = append(msgs, err.Error())
		}
		t.Fatalf("resolution failed:\n%s", strings.Join(msgs, "\n"))
	}
	return d
}

func expectResolveError(t *testing.T, input string, code diagnostics.ErrorCode) {
	t.Helper()
	_, errs := resolveSource(t, input)
	if len(errs) == 0 {
		t.Fatalf("expected error %s, got none\ninput: %s", code, input)
	}
	for _, err := range errs {
		if err.Code == code {
			return
		}
	}
	t.Fatalf("expected error %s, got %v", code, errs)
}

// spanOf locates the nth whole-word occurrence (0-based) of needle in the
// source, so "a" does not match inside "var".
func spanOf(t *testing.T, source, needle string, nth int) token.Span {
	t.Helper()
	isWordByte := func(b byte) bool {
		return b == '_' || '0' <= b && b <= '9' || 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z'
	}
	offset := -1
	from := 0
	for i := 0; i <= nth; {
		idx := strings.Index(source[from:], needle)
		if idx < 0 {
			t.Fatalf("occurrence %d of %q not found in %q", nth, needle, source)
		}
		offset = from + idx
		from = offset + 1
		end := offset + len(needle)
		if offset > 0 && isWordByte(source[offset-1]) || end < len(source) && isWordByte(source[end]) {
			continue
		}
		i++
	}
	return token.Span{Offset: offset, Length: len(needle)}
}

func TestTopLevelDepthZero(t *testing.T) {
	source := "var a = 1; print a;"
	d := depths(t, source)
	use := spanOf(t, source, "a", 1)
	if depth, ok := d[use]; !ok || depth != 0 {
		t.Fatalf("top-level use: got %v (present=%t), want depth 0", depth, ok)
	}
}

func TestUndeclaredNamesFallBackToGlobals(t *testing.T) {
	// clock is a native seeded into the global environment; the resolver
	// never sees its declaration, so the occurrence stays out of the map.
	source := "print clock();"
	d := depths(t, source)
	use := spanOf(t, source, "clock", 0)
	if _, ok := d[use]; ok {
		t.Fatalf("undeclared name should be absent from the depth map")
	}
}

func TestLocalDepthZero(t *testing.T) {
	source := "{ var a = 1; print a; }"
	d := depths(t, source)
	use := spanOf(t, source, "a", 1)
	if depth, ok := d[use]; !ok || depth != 0 {
		t.Fatalf("depth of use: got %v (present=%t), want 0", depth, ok)
	}
}

func TestNestedBlockDepth(t *testing.T) {
	source := "{ var a = 1; { { print a; } } }"
	d := depths(t, source)
	use := spanOf(t, source, "a", 1)
	if depth := d[use]; depth != 2 {
		t.Fatalf("depth: got %d, want 2", depth)
	}
}

func TestShadowingResolvesInnermost(t *testing.T) {
	source := "{ var a = 1; { var a = 2; print a; } }"
	d := depths(t, source)
	use := spanOf(t, source, "a", 2)
	if depth := d[use]; depth != 0 {
		t.Fatalf("depth: got %d, want 0 (innermost declaration wins)", depth)
	}
}

func TestClosureCaptureDepth(t *testing.T) {
	source := "{ var i = 0; fun c() { i = i + 1; } }"
	d := depths(t, source)
	// Both occurrences inside the function body skip the function scope to
	// reach the block that declares i.
	assign := spanOf(t, source, "i", 1)
	read := spanOf(t, source, "i", 2)
	if d[assign] != 1 || d[read] != 1 {
		t.Fatalf("depths: assign=%d read=%d, want 1 and 1", d[assign], d[read])
	}
}

func TestParameterDepth(t *testing.T) {
	source := "fun f(x) { return x; }"
	d := depths(t, source)
	use := spanOf(t, source, "x", 1)
	if depth, ok := d[use]; !ok || depth != 0 {
		t.Fatalf("parameter use: got %v (present=%t), want depth 0", depth, ok)
	}
}

func TestThisResolvesInsideMethod(t *testing.T) {
	source := "class A { m() { return this; } }"
	d := depths(t, source)
	use := spanOf(t, source, "this", 0)
	if depth, ok := d[use]; !ok || depth != 1 {
		t.Fatalf("this: got %v (present=%t), want depth 1", depth, ok)
	}
}

func TestSuperResolvesInsideSubclassMethod(t *testing.T) {
	source := "class B < A { m() { return super.m(); } }"
	d := depths(t, source)
	use := spanOf(t, source, "super", 0)
	if depth, ok := d[use]; !ok || depth != 2 {
		t.Fatalf("super: got %v (present=%t), want depth 2", depth, ok)
	}
}

func TestR001_InitializedWithSelf(t *testing.T) {
	expectResolveError(t, "var a = a;", diagnostics.ErrR001)
}

func TestR001_InitializedWithSelfInBlock(t *testing.T) {
	expectResolveError(t, "{ var a = a; }", diagnostics.ErrR001)
}

func TestShadowingFromOuterInitializerAllowed(t *testing.T) {
	depths(t, "var a = 1; { var b = a; print b; }")
}

func TestR002_TopLevelReturn(t *testing.T) {
	expectResolveError(t, "return 1;", diagnostics.ErrR002)
}

func TestR003_ReturnValueInInitializer(t *testing.T) {
	expectResolveError(t, "class A { init() { return 1; } }", diagnostics.ErrR003)
}

func TestBareReturnInInitializerAllowed(t *testing.T) {
	depths(t, "class A { init() { return; } }")
}

func TestR004_ThisOutsideClass(t *testing.T) {
	expectResolveError(t, "print this;", diagnostics.ErrR004)
}

func TestR004_ThisInFreeFunction(t *testing.T) {
	expectResolveError(t, "fun f() { return this; }", diagnostics.ErrR004)
}

func TestR005_SelfInheritance(t *testing.T) {
	expectResolveError(t, "class A < A {}", diagnostics.ErrR005)
}

func TestR006_SuperOutsideClass(t *testing.T) {
	expectResolveError(t, "fun f() { return super.m(); }", diagnostics.ErrR006)
}

func TestR007_SuperWithoutSuperclass(t *testing.T) {
	expectResolveError(t, "class A { m() { return super.m(); } }", diagnostics.ErrR007)
}

func TestResolveExpression(t *testing.T) {
	// The REPL fallback path: a bare expression resolves against globals
	// only, so the depth map stays empty.
	ctx := pipeline.NewContext("repl", "1 + x")
	ctx = (&lexer.LexerProcessor{}).Process(ctx)
	ctx = (&parser.ParserProcessor{}).Process(ctx)
	if len(ctx.Errors) != 1 || ctx.Errors[0].Code != diagnostics.ErrP005 {
		t.Fatalf("expected a single missing-semicolon error, got %v", ctx.Errors)
	}
	expr, ok := ctx.Errors[0].Partial.(ast.Expression)
	if !ok {
		t.Fatalf("expected partial expression, got %T", ctx.Errors[0].Partial)
	}
	d, errs := resolver.ResolveExpression(expr)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(d) != 0 {
		t.Fatalf("bare expressions resolve in globals, got map %v", d)
	}
}

func TestResolveExpressionRejectsThis(t *testing.T) {
	ctx := pipeline.NewContext("repl", "this")
	ctx = (&lexer.LexerProcessor{}).Process(ctx)
	ctx = (&parser.ParserProcessor{}).Process(ctx)
	expr, ok := ctx.Errors[0].Partial.(ast.Expression)
	if !ok {
		t.Fatalf("expected partial expression, got %T", ctx.Errors[0].Partial)
	}
	_, errs := resolver.ResolveExpression(expr)
	if len(errs) != 1 || errs[0].Code != diagnostics.ErrR004 {
		t.Fatalf("expected %s, got %v", diagnostics.ErrR004, errs)
	}
}
