package interpreter

import (
	"github.com/froth/golox/internal/ast"
	"github.com/froth/golox/internal/diagnostics"
	"github.com/froth/golox/internal/resolver"
	"github.com/froth/golox/internal/token"
)

// Interpreter evaluates statements against the environment chain. A single
// instance may run many programs (the REPL does); the global environment
// persists between runs, while each program brings its own depth map.
type Interpreter struct {
	printer Printer
	globals *Environment
	env     *Environment
	depths  resolver.Depths
}

func New(printer Printer) *Interpreter {
	globals := NewEnvironment()
	RegisterBuiltins(globals)
	return &Interpreter{
		printer: printer,
		globals: globals,
		env:     globals,
		depths:  make(resolver.Depths),
	}
}

// Globals exposes the global environment for embedders that seed extra
// natives.
func (i *Interpreter) Globals() *Environment {
	return i.globals
}

// Run executes a resolved program. It returns the runtime error that
// aborted execution, or nil. The depth map applies to this program only;
// functions it defines capture it for their own bodies.
func (i *Interpreter) Run(program *ast.Program, depths resolver.Depths) *diagnostics.DiagnosticError {
	i.depths = depths
	for _, stmt := range program.Statements {
		if result := i.execStatement(stmt); isError(result) {
			return result.(*RuntimeError).Diag
		}
	}
	return nil
}

// EvalExpression evaluates a bare expression (the REPL fallback) and
// returns its value.
func (i *Interpreter) EvalExpression(expr ast.Expression, depths resolver.Depths) (Object, *diagnostics.DiagnosticError) {
	i.depths = depths
	result := i.evalExpression(expr)
	if err, ok := result.(*RuntimeError); ok {
		return nil, err.Diag
	}
	return result, nil
}

func (i *Interpreter) newError(code diagnostics.ErrorCode, span token.Span, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Diag: diagnostics.NewSpanError(code, span, format, args...)}
}

// execStatement returns nil on normal completion, or the ReturnValue /
// RuntimeError signal to propagate.
func (i *Interpreter) execStatement(stmt ast.Statement) Object {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		if value := i.evalExpression(s.Expression); isError(value) {
			return value
		}
		return nil

	case *ast.PrintStatement:
		value := i.evalExpression(s.Expression)
		if isError(value) {
			return value
		}
		i.printer.Print(value)
		return nil

	case *ast.VarStatement:
		var value Object = NIL
		if s.Initializer != nil {
			value = i.evalExpression(s.Initializer)
			if isError(value) {
				return value
			}
		}
		i.env.Define(s.Name.Name, value)
		return nil

	case *ast.BlockStatement:
		return i.execBlock(s.Statements, NewEnclosedEnvironment(i.env))

	case *ast.IfStatement:
		condition := i.evalExpression(s.Condition)
		if isError(condition) {
			return condition
		}
		if isTruthy(condition) {
			return i.execStatement(s.Then)
		}
		if s.Else != nil {
			return i.execStatement(s.Else)
		}
		return nil

	case *ast.WhileStatement:
		for {
			condition := i.evalExpression(s.Condition)
			if isError(condition) {
				return condition
			}
			if !isTruthy(condition) {
				return nil
			}
			if result := i.execStatement(s.Body); result != nil {
				return result
			}
		}

	case *ast.FunctionStatement:
		i.env.Define(s.Name.Name, &Function{Decl: s, Closure: i.env, Depths: i.depths})
		return nil

	case *ast.ReturnStatement:
		var value Object = NIL
		if s.Value != nil {
			value = i.evalExpression(s.Value)
			if isError(value) {
				return value
			}
		}
		return &ReturnValue{Value: value}

	case *ast.ClassStatement:
		return i.execClassStatement(s)
	}
	return nil
}

// execBlock runs statements in the given environment, restoring the
// previous one on every exit path.
func (i *Interpreter) execBlock(statements []ast.Statement, env *Environment) Object {
	previous := i.env
	i.env = env
	defer func() { i.env = previous }()

	for _, stmt := range statements {
		if result := i.execStatement(stmt); result != nil {
			return result
		}
	}
	return nil
}

func (i *Interpreter) execClassStatement(s *ast.ClassStatement) Object {
	var superclass *Class
	if s.Superclass != nil {
		value := i.lookupVariable(*s.Superclass)
		if isError(value) {
			return value
		}
		sc, ok := value.(*Class)
		if !ok {
			return i.newError(diagnostics.ErrE009, s.Superclass.Loc, "superclass must be a class")
		}
		superclass = sc
	}

	i.env.Define(s.Name.Name, NIL)

	methodEnv := i.env
	if superclass != nil {
		methodEnv = NewEnclosedEnvironment(methodEnv)
		methodEnv.Define(ast.SuperName, superclass)
	}

	methods := make(map[ast.Name]*Function, len(s.Methods))
	for _, method := range s.Methods {
		methods[method.Name.Name] = &Function{
			Decl:          method,
			Closure:       methodEnv,
			IsInitializer: method.Name.Name == ast.InitName,
			Depths:        i.depths,
		}
	}

	class := &Class{Name: s.Name.Name, Superclass: superclass, Methods: methods}
	i.env.Assign(s.Name.Name, class)
	return nil
}

// evalExpression always returns a value; runtime faults come back as
// *RuntimeError. Sub-expressions evaluate strictly left to right.
func (i *Interpreter) evalExpression(expr ast.Expression) Object {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		return &Number{Value: e.Value}
	case *ast.StringLiteral:
		return &String{Value: e.Value}
	case *ast.BooleanLiteral:
		return nativeBoolToBooleanObject(e.Value)
	case *ast.NilLiteral:
		return NIL
	case *ast.GroupingExpression:
		return i.evalExpression(e.Expression)
	case *ast.PrefixExpression:
		return i.evalPrefixExpression(e)
	case *ast.InfixExpression:
		return i.evalInfixExpression(e)
	case *ast.LogicalExpression:
		return i.evalLogicalExpression(e)
	case *ast.VariableExpression:
		return i.lookupVariable(e.Name)
	case *ast.AssignExpression:
		return i.evalAssignExpression(e)
	case *ast.CallExpression:
		return i.evalCallExpression(e)
	case *ast.GetExpression:
		return i.evalGetExpression(e)
	case *ast.SetExpression:
		return i.evalSetExpression(e)
	case *ast.ThisExpression:
		return i.lookupVariable(ast.NameExpr{Name: ast.ThisName, Loc: e.Loc})
	case *ast.SuperExpression:
		return i.evalSuperExpression(e)
	}
	return NIL
}

func (i *Interpreter) evalPrefixExpression(e *ast.PrefixExpression) Object {
	right := i.evalExpression(e.Right)
	if isError(right) {
		return right
	}
	switch e.Operator.Type {
	case token.BANG:
		return nativeBoolToBooleanObject(!isTruthy(right))
	case token.MINUS:
		number, ok := right.(*Number)
		if !ok {
			return i.newError(diagnostics.ErrE001, e.Loc, "operand must be a number")
		}
		return &Number{Value: -number.Value}
	}
	return NIL
}

func (i *Interpreter) evalInfixExpression(e *ast.InfixExpression) Object {
	left := i.evalExpression(e.Left)
	if isError(left) {
		return left
	}
	right := i.evalExpression(e.Right)
	if isError(right) {
		return right
	}

	switch e.Operator.Type {
	case token.EQ:
		return nativeBoolToBooleanObject(objectsEqual(left, right))
	case token.NOT_EQ:
		return nativeBoolToBooleanObject(!objectsEqual(left, right))
	case token.PLUS:
		if ln, ok := left.(*Number); ok {
			if rn, ok := right.(*Number); ok {
				return &Number{Value: ln.Value + rn.Value}
			}
		}
		if ls, ok := left.(*String); ok {
			if rs, ok := right.(*String); ok {
				return &String{Value: ls.Value + rs.Value}
			}
		}
		return i.newError(diagnostics.ErrE003, e.Loc, "operands must be two numbers or two strings")
	}

	ln, lok := left.(*Number)
	rn, rok := right.(*Number)
	if !lok || !rok {
		return i.newError(diagnostics.ErrE002, e.Loc, "operands must be numbers")
	}

	switch e.Operator.Type {
	case token.MINUS:
		return &Number{Value: ln.Value - rn.Value}
	case token.ASTERISK:
		return &Number{Value: ln.Value * rn.Value}
	case token.SLASH:
		// Division by zero follows IEEE-754: inf or NaN, never an error.
		return &Number{Value: ln.Value / rn.Value}
	case token.LT:
		return nativeBoolToBooleanObject(ln.Value < rn.Value)
	case token.LTE:
		return nativeBoolToBooleanObject(ln.Value <= rn.Value)
	case token.GT:
		return nativeBoolToBooleanObject(ln.Value > rn.Value)
	case token.GTE:
		return nativeBoolToBooleanObject(ln.Value >= rn.Value)
	}
	return NIL
}

// evalLogicalExpression short-circuits and yields the operand value itself,
// not a coerced boolean.
func (i *Interpreter) evalLogicalExpression(e *ast.LogicalExpression) Object {
	left := i.evalExpression(e.Left)
	if isError(left) {
		return left
	}
	if e.Operator.Type == token.OR {
		if isTruthy(left) {
			return left
		}
	} else {
		if !isTruthy(left) {
			return left
		}
	}
	return i.evalExpression(e.Right)
}

func (i *Interpreter) lookupVariable(name ast.NameExpr) Object {
	if depth, ok := i.depths[name.Loc]; ok {
		if value, ok := i.env.GetAt(depth, name.Name); ok {
			return value
		}
	} else if value, ok := i.globals.Get(name.Name); ok {
		return value
	}
	return i.newError(diagnostics.ErrE004, name.Loc, "undefined variable '%s'", name.Name)
}

func (i *Interpreter) evalAssignExpression(e *ast.AssignExpression) Object {
	value := i.evalExpression(e.Value)
	if isError(value) {
		return value
	}
	if depth, ok := i.depths[e.Name.Loc]; ok {
		if i.env.AssignAt(depth, e.Name.Name, value) {
			return value
		}
	} else if i.globals.Assign(e.Name.Name, value) {
		return value
	}
	return i.newError(diagnostics.ErrE004, e.Name.Loc, "undefined variable '%s'", e.Name.Name)
}

func (i *Interpreter) evalCallExpression(e *ast.CallExpression) Object {
	callee := i.evalExpression(e.Callee)
	if isError(callee) {
		return callee
	}

	args := make([]Object, 0, len(e.Arguments))
	for _, argExpr := range e.Arguments {
		arg := i.evalExpression(argExpr)
		if isError(arg) {
			return arg
		}
		args = append(args, arg)
	}

	callable, ok := callee.(Callable)
	if !ok {
		return i.newError(diagnostics.ErrE007, e.Loc, "can only call functions and classes")
	}
	if len(args) != callable.Arity() {
		return i.newError(diagnostics.ErrE008, e.Loc,
			"expected %d arguments but got %d", callable.Arity(), len(args))
	}
	return callable.Call(i, args, e.Loc)
}

func (i *Interpreter) evalGetExpression(e *ast.GetExpression) Object {
	object := i.evalExpression(e.Object)
	if isError(object) {
		return object
	}
	instance, ok := object.(*Instance)
	if !ok {
		return i.newError(diagnostics.ErrE006, e.Loc, "only instances have properties")
	}
	value, ok := instance.Get(e.Name.Name)
	if !ok {
		return i.newError(diagnostics.ErrE005, e.Name.Loc, "undefined property '%s'", e.Name.Name)
	}
	return value
}

func (i *Interpreter) evalSetExpression(e *ast.SetExpression) Object {
	object := i.evalExpression(e.Object)
	if isError(object) {
		return object
	}
	instance, ok := object.(*Instance)
	if !ok {
		return i.newError(diagnostics.ErrE006, e.Loc, "only instances have fields")
	}
	value := i.evalExpression(e.Value)
	if isError(value) {
		return value
	}
	instance.Set(e.Name.Name, value)
	return value
}

func (i *Interpreter) evalSuperExpression(e *ast.SuperExpression) Object {
	depth, ok := i.depths[e.Keyword]
	if !ok {
		return i.newError(diagnostics.ErrE004, e.Keyword, "undefined variable 'super'")
	}
	superValue, _ := i.env.GetAt(depth, ast.SuperName)
	superclass, ok := superValue.(*Class)
	if !ok {
		return i.newError(diagnostics.ErrE004, e.Keyword, "undefined variable 'super'")
	}
	// `this` lives one environment closer than `super`.
	thisValue, _ := i.env.GetAt(depth-1, ast.ThisName)
	instance, ok := thisValue.(*Instance)
	if !ok {
		return i.newError(diagnostics.ErrE004, e.Keyword, "undefined variable 'this'")
	}

	method := superclass.FindMethod(e.Method.Name)
	if method == nil {
		return i.newError(diagnostics.ErrE005, e.Method.Loc, "undefined property '%s'", e.Method.Name)
	}
	return method.Bind(instance)
}
