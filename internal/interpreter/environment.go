package interpreter

import "github.com/froth/golox/internal/ast"

// Environment is one scope frame: a name->value mapping plus a parent
// pointer. Environments are shared freely between closures, call frames,
// and bound methods; a single interpreter performs all mutation.
type Environment struct {
	store map[ast.Name]Object
	outer *Environment
}

func NewEnvironment() *Environment {
	return &Environment{store: make(map[ast.Name]Object)}
}

func NewEnclosedEnvironment(outer *Environment) *Environment {
	env := NewEnvironment()
	env.outer = outer
	return env
}

// Define binds a name in this scope, shadowing any outer binding.
func (e *Environment) Define(name ast.Name, val Object) {
	e.store[name] = val
}

// Get walks parents until the name is found.
func (e *Environment) Get(name ast.Name) (Object, bool) {
	obj, ok := e.store[name]
	if !ok && e.outer != nil {
		return e.outer.Get(name)
	}
	return obj, ok
}

// Assign updates the innermost scope that already holds the name. It never
// creates a binding.
func (e *Environment) Assign(name ast.Name, val Object) bool {
	if _, ok := e.store[name]; ok {
		e.store[name] = val
		return true
	}
	if e.outer != nil {
		return e.outer.Assign(name, val)
	}
	return false
}

// GetAt skips exactly distance parents, then reads locally. The resolver
// guarantees the distance is in range.
func (e *Environment) GetAt(distance int, name ast.Name) (Object, bool) {
	obj, ok := e.ancestor(distance).store[name]
	return obj, ok
}

// AssignAt skips exactly distance parents, then writes locally.
func (e *Environment) AssignAt(distance int, name ast.Name, val Object) bool {
	env := e.ancestor(distance)
	if _, ok := env.store[name]; !ok {
		return false
	}
	env.store[name] = val
	return true
}

func (e *Environment) ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance && env.outer != nil; i++ {
		env = env.outer
	}
	return env
}
