package interpreter

import (
	"github.com/froth/golox/internal/ast"
	"github.com/froth/golox/internal/resolver"
	"github.com/froth/golox/internal/token"
)

// Callable is anything a call expression can invoke: natives, user
// functions, and classes.
type Callable interface {
	Object
	Arity() int
	Call(i *Interpreter, args []Object, callSite token.Span) Object
}

// Builtin is a native function provided by the host.
type Builtin struct {
	Name   string
	ArityN int
	Fn     func(args []Object) Object
}

func (b *Builtin) Type() ObjectType { return BUILTIN_OBJ }
func (b *Builtin) Inspect() string  { return "<native fn " + b.Name + ">" }
func (b *Builtin) Arity() int       { return b.ArityN }

func (b *Builtin) Call(i *Interpreter, args []Object, callSite token.Span) Object {
	return b.Fn(args)
}

// Function is a user-defined function together with the environment it was
// defined in. A bound method is the same type with an extra scope holding
// `this` in its closure.
//
// Depths is the depth map of the program that defined the function. Spans
// are only unique within one source, and the REPL runs many sources
// through one interpreter, so every function keeps the map its body was
// resolved against.
type Function struct {
	Decl          *ast.FunctionStatement
	Closure       *Environment
	IsInitializer bool
	Depths        resolver.Depths
}

func (f *Function) Type() ObjectType { return FUNCTION_OBJ }
func (f *Function) Inspect() string  { return "<fn " + f.Decl.Name.Name + ">" }
func (f *Function) Arity() int       { return len(f.Decl.Parameters) }

func (f *Function) Call(i *Interpreter, args []Object, callSite token.Span) Object {
	env := NewEnclosedEnvironment(f.Closure)
	for idx, param := range f.Decl.Parameters {
		env.Define(param.Name, args[idx])
	}

	previousDepths := i.depths
	i.depths = f.Depths
	defer func() { i.depths = previousDepths }()

	result := i.execBlock(f.Decl.Body, env)
	switch r := result.(type) {
	case *RuntimeError:
		return r
	case *ReturnValue:
		if f.IsInitializer {
			return f.boundThis()
		}
		return r.Value
	}
	if f.IsInitializer {
		return f.boundThis()
	}
	return NIL
}

// Bind returns a copy of the function whose closure has `this` bound to
// the given instance.
func (f *Function) Bind(instance *Instance) *Function {
	env := NewEnclosedEnvironment(f.Closure)
	env.Define(ast.ThisName, instance)
	return &Function{Decl: f.Decl, Closure: env, IsInitializer: f.IsInitializer, Depths: f.Depths}
}

// boundThis reads the receiver out of the closure. Initializers are only
// ever called bound, so the binding is always present.
func (f *Function) boundThis() Object {
	this, ok := f.Closure.GetAt(0, ast.ThisName)
	if !ok {
		return NIL
	}
	return this
}

// Class is a runtime class value. Calling it constructs an instance.
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[ast.Name]*Function
}

func (c *Class) Type() ObjectType { return CLASS_OBJ }
func (c *Class) Inspect() string  { return c.Name }

// Arity is the arity of the init method if present, else 0.
func (c *Class) Arity() int {
	if init := c.FindMethod(ast.InitName); init != nil {
		return init.Arity()
	}
	return 0
}

func (c *Class) Call(i *Interpreter, args []Object, callSite token.Span) Object {
	instance := NewInstance(c)
	if init := c.FindMethod(ast.InitName); init != nil {
		if result := init.Bind(instance).Call(i, args, callSite); isError(result) {
			return result
		}
	}
	return instance
}

// FindMethod walks the class then its ancestors; the first hit wins.
func (c *Class) FindMethod(name ast.Name) *Function {
	if method, ok := c.Methods[name]; ok {
		return method
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil
}

// Instance is a shared mutable record; equality is identity.
type Instance struct {
	Class  *Class
	Fields map[ast.Name]Object
}

func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, Fields: make(map[ast.Name]Object)}
}

func (in *Instance) Type() ObjectType { return INSTANCE_OBJ }
func (in *Instance) Inspect() string  { return in.Class.Name + " instance" }

// Get reads a property: fields first, then methods (bound on demand), so a
// field can shadow a method of the same name.
func (in *Instance) Get(name ast.Name) (Object, bool) {
	if value, ok := in.Fields[name]; ok {
		return value, true
	}
	if method := in.Class.FindMethod(name); method != nil {
		return method.Bind(in), true
	}
	return nil, false
}

// Set stores a field, creating it if absent.
func (in *Instance) Set(name ast.Name, value Object) {
	in.Fields[name] = value
}
