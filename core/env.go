package core

// A token is an opaque binding key.  Each scoping combinator (Bind,
// Map's item, Object's current object, Cache's key, Input's input)
// mints one fresh token at spec-construction time.  Tokens compare by
// pointer identity, so tokens minted by independently built subtrees
// can never collide.
type token struct {
	// name is only for error messages and debugging.
	name string
}

func newToken(name string) *token {
	return &token{name: name}
}

// Env is the per-evaluation binding environment threaded through a
// spec tree: a mapping from tokens to bound values.
//
// An Env is never mutated.  Extension produces a new Env that shares
// the parent, so extension is O(1) and sibling subtrees can share a
// parent Env without locking.  An Env is created by Derivation.Eval
// and dies when that evaluation returns; no Spec retains one.
type Env struct {
	parent *Env
	tok    *token
	val    interface{}
}

// extend returns a child Env: the receiver plus one new entry.
func (e *Env) extend(t *token, v interface{}) *Env {
	return &Env{parent: e, tok: t, val: v}
}

// value looks up the binding for t, innermost first.
func (e *Env) value(t *token) (interface{}, bool) {
	for env := e; env != nil; env = env.parent {
		if env.tok == t {
			return env.val, true
		}
	}
	return nil, false
}

// refSpec makes a Spec that reads the binding for t.
//
// An Unbound error from the returned Spec would mean a Spec escaped
// the combinator that minted t, which the combinators in this package
// never allow.
func refSpec(t *token) Spec {
	return &immediate{eval: func(env *Env) (interface{}, error) {
		v, have := env.value(t)
		if !have {
			return nil, &Unbound{Name: t.name}
		}
		return v, nil
	}}
}
