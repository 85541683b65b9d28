package interpreter

import "testing"

func createDepth(depth int, top *Environment) *Environment {
	env := top
	for i := 0; i < depth; i++ {
		env = NewEnclosedEnvironment(env)
	}
	return env
}

func TestDefineGet(t *testing.T) {
	env := NewEnvironment()
	env.Define("x", TRUE)
	value, ok := env.Get("x")
	if !ok || value != TRUE {
		t.Fatalf("got %v (ok=%t)", value, ok)
	}
}

func TestDefineAssignGet(t *testing.T) {
	env := NewEnvironment()
	env.Define("x", TRUE)
	if !env.Assign("x", FALSE) {
		t.Fatal("assign failed")
	}
	value, _ := env.Get("x")
	if value != FALSE {
		t.Fatalf("got %v", value)
	}
}

func TestAssignUnassigned(t *testing.T) {
	env := NewEnvironment()
	if env.Assign("x", FALSE) {
		t.Fatal("assign must not create bindings")
	}
	if _, ok := env.Get("x"); ok {
		t.Fatal("name must stay unbound")
	}
}

func TestAssignNeverCreatesInOuter(t *testing.T) {
	outer := NewEnvironment()
	inner := NewEnclosedEnvironment(outer)
	if inner.Assign("x", TRUE) {
		t.Fatal("assign must not create bindings anywhere in the chain")
	}
}

func TestAssignUpdatesInnermostHolder(t *testing.T) {
	outer := NewEnvironment()
	outer.Define("x", TRUE)
	mid := NewEnclosedEnvironment(outer)
	mid.Define("x", FALSE)
	inner := NewEnclosedEnvironment(mid)

	if !inner.Assign("x", NIL) {
		t.Fatal("assign failed")
	}
	if value, _ := mid.Get("x"); value != NIL {
		t.Fatalf("mid: got %v", value)
	}
	if value, _ := outer.Get("x"); value != TRUE {
		t.Fatalf("outer must be untouched, got %v", value)
	}
}

func TestGetWalksParents(t *testing.T) {
	top := NewEnvironment()
	top.Define("a", TRUE)
	env := createDepth(3, top)
	value, ok := env.Get("a")
	if !ok || value != TRUE {
		t.Fatalf("got %v (ok=%t)", value, ok)
	}
}

func TestAssignAndGetAtDepth(t *testing.T) {
	top := NewEnvironment()
	top.Define("a", NIL)
	env := createDepth(7, top)

	if !env.AssignAt(7, "a", TRUE) {
		t.Fatal("assign at depth failed")
	}
	value, ok := env.GetAt(7, "a")
	if !ok || value != TRUE {
		t.Fatalf("got %v (ok=%t)", value, ok)
	}
}

func TestGetAtZeroIsLocal(t *testing.T) {
	top := NewEnvironment()
	top.Define("a", TRUE)
	env := NewEnclosedEnvironment(top)
	env.Define("a", FALSE)

	if value, _ := env.GetAt(0, "a"); value != FALSE {
		t.Fatalf("depth 0 must read locally, got %v", value)
	}
	if value, _ := env.GetAt(1, "a"); value != TRUE {
		t.Fatalf("depth 1 must skip one parent, got %v", value)
	}
}

func TestGetAtDoesNotSearch(t *testing.T) {
	top := NewEnvironment()
	top.Define("a", TRUE)
	env := NewEnclosedEnvironment(top)

	// Depth 0 operates locally; the binding lives one level up.
	if _, ok := env.GetAt(0, "a"); ok {
		t.Fatal("GetAt must not walk parents")
	}
}
