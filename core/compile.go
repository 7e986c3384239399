package core

// Derivation is a compiled spec tree: a callable artifact that
// derives a value from one runtime input.
//
// A Derivation is immutable and safe for concurrent use.  Build it
// once (with Input) and evaluate it many times.
type Derivation struct {
	spec Spec
	tok  *token
}

// Input is the compilation entry point.  It mints a fresh top-level
// token, builds one internal Spec from f's result (f receives a Spec
// that reads the token), and returns a Derivation.
func Input(f func(input Spec) interface{}) *Derivation {
	if f == nil {
		panic(&IllegalSpec{Combinator: "Input", Reason: "nil function"})
	}
	tok := newToken("input")
	return &Derivation{
		spec: EnsureSpec(f(refSpec(tok))),
		tok:  tok,
	}
}

// MayDefer reports whether Eval can return a *Deferred.  Fixed at
// compilation.
func (d *Derivation) MayDefer() bool {
	return d.spec.MayDefer()
}

// Eval creates a brand-new Env binding v to the top-level token and
// evaluates the compiled tree against it.  The result is a plain
// value when MayDefer is false and a *Deferred when it is true.
func (d *Derivation) Eval(v interface{}) (interface{}, error) {
	return d.spec.Eval(&Env{tok: d.tok, val: v})
}

// Run is Eval followed by Force: it always returns a settled value.
func (d *Derivation) Run(v interface{}) (interface{}, error) {
	r, err := d.Eval(v)
	if err != nil {
		return nil, err
	}
	return Force(r)
}
