// Package resolver performs the static pre-pass over the AST: it computes,
// for every variable occurrence, how many environments separate the use
// from the definition, and it enforces the scope, class, and return rules
// that cannot be checked at runtime.
package resolver

import (
	"github.com/froth/golox/internal/ast"
	"github.com/froth/golox/internal/diagnostics"
	"github.com/froth/golox/internal/token"
)

// Depths maps a name occurrence (by its unique span) to the number of
// environment parents to skip. Absence means the name resolves in the
// global environment at runtime.
type Depths map[token.Span]int

type functionType int

const (
	functionNone functionType = iota
	functionFunction
	functionInitializer
	functionMethod
)

type classType int

const (
	classNone classType = iota
	classClass
	classSubclass
)

type Resolver struct {
	depths Depths
	// scopes is a stack of name -> defined? maps. false marks a name that
	// is declared but whose initializer is still being resolved.
	scopes          []map[ast.Name]bool
	currentFunction functionType
	currentClass    classType

	errors []*diagnostics.DiagnosticError
}

func New() *Resolver {
	return &Resolver{depths: make(Depths)}
}

// Resolve walks a whole program and returns the depth map, or the non-empty
// error list. The program body gets its own scope, so top-level
// declarations are subject to the same static checks as locals; names the
// program never declares (natives, REPL state from earlier lines) stay out
// of the map and fall back to the global environment.
func Resolve(program *ast.Program) (Depths, []*diagnostics.DiagnosticError) {
	r := New()
	r.beginScope()
	r.resolveStatements(program.Statements)
	r.endScope()
	if len(r.errors) > 0 {
		return nil, r.errors
	}
	return r.depths, nil
}

// ResolveExpression resolves a bare expression (the REPL fallback path).
func ResolveExpression(expr ast.Expression) (Depths, []*diagnostics.DiagnosticError) {
	r := New()
	r.resolveExpression(expr)
	if len(r.errors) > 0 {
		return nil, r.errors
	}
	return r.depths, nil
}

func (r *Resolver) errorAt(code diagnostics.ErrorCode, span token.Span, format string, args ...interface{}) {
	r.errors = append(r.errors, diagnostics.NewSpanError(code, span, format, args...))
}

func (r *Resolver) resolveStatements(statements []ast.Statement) {
	for _, stmt := range statements {
		r.resolveStatement(stmt)
	}
}

func (r *Resolver) resolveStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		r.resolveExpression(s.Expression)
	case *ast.PrintStatement:
		r.resolveExpression(s.Expression)
	case *ast.VarStatement:
		r.declare(s.Name.Name)
		if s.Initializer != nil {
			r.resolveExpression(s.Initializer)
		}
		r.define(s.Name.Name)
	case *ast.BlockStatement:
		r.beginScope()
		r.resolveStatements(s.Statements)
		r.endScope()
	case *ast.IfStatement:
		r.resolveExpression(s.Condition)
		r.resolveStatement(s.Then)
		if s.Else != nil {
			r.resolveStatement(s.Else)
		}
	case *ast.WhileStatement:
		r.resolveExpression(s.Condition)
		r.resolveStatement(s.Body)
	case *ast.FunctionStatement:
		r.declare(s.Name.Name)
		r.define(s.Name.Name)
		r.resolveFunction(s, functionFunction)
	case *ast.ReturnStatement:
		r.resolveReturn(s)
	case *ast.ClassStatement:
		r.resolveClass(s)
	}
}

func (r *Resolver) resolveFunction(fn *ast.FunctionStatement, fnType functionType) {
	enclosing := r.currentFunction
	r.currentFunction = fnType

	r.beginScope()
	for _, param := range fn.Parameters {
		r.declare(param.Name)
		r.define(param.Name)
	}
	r.resolveStatements(fn.Body)
	r.endScope()

	r.currentFunction = enclosing
}

func (r *Resolver) resolveReturn(s *ast.ReturnStatement) {
	if r.currentFunction == functionNone {
		r.errorAt(diagnostics.ErrR002, s.Span(), "can't return from top-level code")
		return
	}
	if s.Value != nil {
		if r.currentFunction == functionInitializer {
			r.errorAt(diagnostics.ErrR003, s.Span(), "can't return a value from an initializer")
			return
		}
		r.resolveExpression(s.Value)
	}
}

func (r *Resolver) resolveClass(s *ast.ClassStatement) {
	enclosing := r.currentClass
	r.currentClass = classClass

	r.declare(s.Name.Name)
	r.define(s.Name.Name)

	if s.Superclass != nil {
		r.currentClass = classSubclass
		if s.Superclass.Name == s.Name.Name {
			r.errorAt(diagnostics.ErrR005, s.Superclass.Loc, "a class can't inherit from itself")
		} else {
			r.resolveLocal(*s.Superclass)
		}
		r.beginScope()
		r.define(ast.SuperName)
	}

	r.beginScope()
	r.define(ast.ThisName)
	for _, method := range s.Methods {
		fnType := functionMethod
		if method.Name.Name == ast.InitName {
			fnType = functionInitializer
		}
		r.resolveFunction(method, fnType)
	}
	r.endScope()

	if s.Superclass != nil {
		r.endScope()
	}
	r.currentClass = enclosing
}

func (r *Resolver) resolveExpression(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.NumberLiteral, *ast.StringLiteral, *ast.BooleanLiteral, *ast.NilLiteral:
		// nothing to resolve
	case *ast.VariableExpression:
		if len(r.scopes) > 0 {
			if defined, declared := r.scopes[len(r.scopes)-1][e.Name.Name]; declared && !defined {
				r.errorAt(diagnostics.ErrR001, e.Name.Loc,
					"can't read local variable '%s' in its own initializer", e.Name.Name)
				return
			}
		}
		r.resolveLocal(e.Name)
	case *ast.GroupingExpression:
		r.resolveExpression(e.Expression)
	case *ast.PrefixExpression:
		r.resolveExpression(e.Right)
	case *ast.InfixExpression:
		r.resolveExpression(e.Left)
		r.resolveExpression(e.Right)
	case *ast.LogicalExpression:
		r.resolveExpression(e.Left)
		r.resolveExpression(e.Right)
	case *ast.AssignExpression:
		r.resolveExpression(e.Value)
		r.resolveLocal(e.Name)
	case *ast.CallExpression:
		r.resolveExpression(e.Callee)
		for _, arg := range e.Arguments {
			r.resolveExpression(arg)
		}
	case *ast.GetExpression:
		r.resolveExpression(e.Object)
	case *ast.SetExpression:
		r.resolveExpression(e.Object)
		r.resolveExpression(e.Value)
	case *ast.ThisExpression:
		if r.currentClass == classNone {
			r.errorAt(diagnostics.ErrR004, e.Loc, "can't use 'this' outside of a class")
			return
		}
		r.resolveLocal(ast.NameExpr{Name: ast.ThisName, Loc: e.Loc})
	case *ast.SuperExpression:
		switch r.currentClass {
		case classNone:
			r.errorAt(diagnostics.ErrR006, e.Keyword, "can't use 'super' outside of a class")
		case classClass:
			r.errorAt(diagnostics.ErrR007, e.Keyword, "can't use 'super' in a class with no superclass")
		default:
			r.resolveLocal(ast.NameExpr{Name: ast.SuperName, Loc: e.Keyword})
		}
	}
}

// resolveLocal records the depth of the innermost scope that declares the
// name. Names declared in no scope are left to the global environment.
func (r *Resolver) resolveLocal(name ast.NameExpr) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Name]; ok {
			r.depths[name.Loc] = len(r.scopes) - 1 - i
			return
		}
	}
}

func (r *Resolver) declare(name ast.Name) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name] = false
}

func (r *Resolver) define(name ast.Name) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name] = true
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[ast.Name]bool))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}
