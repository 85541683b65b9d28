package interpreter

import "time"

// Builtins are the native functions seeded into every global environment.
var Builtins = map[string]*Builtin{
	"clock": {
		Name:   "clock",
		ArityN: 0,
		Fn: func(args []Object) Object {
			return &Number{Value: float64(time.Now().UnixNano()) / float64(time.Second)}
		},
	},
}

// RegisterBuiltins seeds an environment with the native functions.
func RegisterBuiltins(env *Environment) {
	for name, builtin := range Builtins {
		env.Define(name, builtin)
	}
}
