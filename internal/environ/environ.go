// Package environ implements Epsilon's lexically-scoped binding chain
// (spec §4.5): a parent-linked tree of scopes walked by name lookup.
package environ

import "github.com/epsilon-lang/epsilon/internal/value"

// Scope classifies why an Env node exists, purely for debug tracing —
// it has no bearing on lookup semantics.
type Scope int

const (
	Global Scope = iota
	Block
	Func
)

func (s Scope) String() string {
	switch s {
	case Global:
		return "GLOBAL"
	case Block:
		return "BLOCK"
	case Func:
		return "FUNC"
	default:
		return "UNKNOWN"
	}
}

// binding is a name's stored runtime value. Function bindings are not
// stored here; they live in the separate Env.funcs table.
type binding struct {
	value value.Value
}

// Env is one node in the scope chain: parent = nil only at the root.
// Adapted from the teacher's generic Scope[V] (parent pointer + local
// map, parent-walking Lookup) to Epsilon's define/get_local/get naming
// (spec §4.5) and its un-erroring Lookup (environ reports presence via
// a bool, callers translate to runtime diagnostics themselves).
type Env struct {
	parent *Env
	scope  Scope
	vars   map[string]binding
	funcs  map[string]any // *ast.Func, stored as any to avoid an import cycle
}

// New creates a root Env with no parent (scope GLOBAL).
func New() *Env {
	return &Env{scope: Global, vars: map[string]binding{}, funcs: map[string]any{}}
}

// Child creates a new Env whose parent is e, tagged with scope.
func (e *Env) Child(scope Scope) *Env {
	return &Env{parent: e, scope: scope, vars: map[string]binding{}, funcs: map[string]any{}}
}

// Scope reports why this Env node was created.
func (e *Env) Scope() Scope { return e.scope }

// Define writes name to the current node unconditionally, overwriting
// any existing local binding (spec §4.5: "define... always writes to
// the current node").
func (e *Env) Define(name string, v value.Value) {
	e.vars[name] = binding{value: v}
}

// GetLocal probes only the current node.
func (e *Env) GetLocal(name string) (value.Value, bool) {
	b, ok := e.vars[name]
	return b.value, ok
}

// Get walks the parent chain starting at the current node.
func (e *Env) Get(name string) (value.Value, bool) {
	for node := e; node != nil; node = node.parent {
		if b, ok := node.vars[name]; ok {
			return b.value, true
		}
	}
	return value.Value{}, false
}

// Set replaces the stored value for an existing binding in whichever
// node of the chain owns it, preserving that binding's slot (spec
// §4.7 Assign: "replace the stored value in place"). Reports false if
// name is not bound anywhere in the chain.
func (e *Env) Set(name string, v value.Value) bool {
	for node := e; node != nil; node = node.parent {
		if _, ok := node.vars[name]; ok {
			node.vars[name] = binding{value: v}
			return true
		}
	}
	return false
}

// DefineFunc binds a function node (opaque here to avoid an ast<->
// environ import cycle; eval.go type-asserts it back to *ast.Func).
func (e *Env) DefineFunc(name string, node any) {
	e.funcs[name] = node
}

// GetFunc walks the parent chain for a function binding.
func (e *Env) GetFunc(name string) (any, bool) {
	for node := e; node != nil; node = node.parent {
		if n, ok := node.funcs[name]; ok {
			return n, true
		}
	}
	return nil, false
}

// AnyBound reports whether name is bound anywhere visible (variable or
// function) — used by Func's "already defined anywhere visible" check
// and by suggestion candidate collection.
func (e *Env) AnyBound(name string) bool {
	if _, ok := e.Get(name); ok {
		return true
	}
	_, ok := e.GetFunc(name)
	return ok
}

// Names collects every variable and function name visible from e,
// nearest scope first, for fuzzy "did you mean" suggestions.
func (e *Env) Names() []string {
	seen := map[string]bool{}
	var out []string
	for node := e; node != nil; node = node.parent {
		for name := range node.vars {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
		for name := range node.funcs {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	return out
}
