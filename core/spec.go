package core

// Spec is an immutable, composable description of how to derive a
// value from an evaluation environment.
//
// A Spec comes in exactly two variants, fixed at construction time:
// an immediate Spec, whose Eval returns a plain value or an error,
// and a deferring Spec, whose Eval always returns a *Deferred (and a
// nil error); failures settle the Deferred.  The variant is reported
// by MayDefer and never changes.
type Spec interface {
	// MayDefer reports whether evaluating this Spec, or any Spec
	// it transitively composes, can produce a *Deferred.
	MayDefer() bool

	// Eval evaluates the Spec against env.
	Eval(env *Env) (interface{}, error)
}

// immediate is the synchronous Spec variant.
type immediate struct {
	eval func(env *Env) (interface{}, error)
}

func (s *immediate) MayDefer() bool { return false }

func (s *immediate) Eval(env *Env) (interface{}, error) {
	return s.eval(env)
}

// deferring is the asynchronous Spec variant.  Eval always returns a
// *Deferred.
type deferring struct {
	eval func(env *Env) *Deferred
}

func (s *deferring) MayDefer() bool { return true }

func (s *deferring) Eval(env *Env) (interface{}, error) {
	return s.eval(env), nil
}

// Body computes a composed Spec's value from the environment and the
// evaluated (and, for a deferring Spec, settled) results of the
// composed Spec's children, in declared order.
//
// A Body may return a *Deferred; the result is then propagated as
// the composed Spec's deferred result.
type Body func(env *Env, args ...interface{}) (interface{}, error)

// MakeSpec is the composition primitive: it builds a Spec that
// evaluates children (in declared order, against the same Env) and
// hands their results to body.
//
// The new Spec's MayDefer flag is the logical OR of the children's
// flags, computed here and never re-inspected at evaluation time.
// When the flag is false, children are evaluated and body is called
// synchronously.  When the flag is true, all children are evaluated
// (launched) before any awaiting begins; their results are then
// awaited as a batch, delivered to body in declared order regardless
// of completion order.  A failed child fails the whole composed Spec
// with the same failure.
func MakeSpec(body Body, children ...Spec) Spec {
	if body == nil {
		panic(&IllegalSpec{Combinator: "MakeSpec", Reason: "nil body"})
	}
	if !anyDefers(children) {
		return &immediate{eval: func(env *Env) (interface{}, error) {
			args, err := evalAll(env, children)
			if err != nil {
				return nil, err
			}
			return body(env, args...)
		}}
	}
	return &deferring{eval: func(env *Env) *Deferred {
		args, err := evalAll(env, children)
		if err != nil {
			return Rejected(err)
		}
		return Go(func() (interface{}, error) {
			for i, v := range args {
				w, err := Force(v)
				if err != nil {
					return nil, err
				}
				args[i] = w
			}
			return body(env, args...)
		})
	}}
}

// Strategy overrides MakeSpec's default child-evaluation behavior.
//
// Only Map uses a Strategy: its items are evaluated against per-item
// extensions of the Env rather than against the same Env.
type Strategy struct {
	// MayDefer forces the composed Spec's defer flag.  The final
	// flag is this field ORed with the children's flags.
	MayDefer bool

	// Evaluate computes the composed Spec's value against env,
	// evaluating children however it wants.  It may return a
	// *Deferred.
	Evaluate func(env *Env, children []Spec) (interface{}, error)
}

// MakeSpecWith is MakeSpec with a custom evaluation Strategy.
func MakeSpecWith(strategy *Strategy, children ...Spec) Spec {
	if strategy == nil || strategy.Evaluate == nil {
		panic(&IllegalSpec{Combinator: "MakeSpecWith", Reason: "nil strategy"})
	}
	if !strategy.MayDefer && !anyDefers(children) {
		return &immediate{eval: func(env *Env) (interface{}, error) {
			return strategy.Evaluate(env, children)
		}}
	}
	return &deferring{eval: func(env *Env) *Deferred {
		v, err := strategy.Evaluate(env, children)
		if err != nil {
			return Rejected(err)
		}
		if d, is := v.(*Deferred); is {
			return d
		}
		return Resolved(v)
	}}
}

func anyDefers(specs []Spec) bool {
	for _, s := range specs {
		if s.MayDefer() {
			return true
		}
	}
	return false
}

// evalAll evaluates (launches) the given Specs in order against the
// same Env.  A synchronous failure short-circuits: later Specs are
// not evaluated.
func evalAll(env *Env, specs []Spec) ([]interface{}, error) {
	acc := make([]interface{}, len(specs))
	for i, s := range specs {
		v, err := s.Eval(env)
		if err != nil {
			return nil, err
		}
		acc[i] = v
	}
	return acc, nil
}

// then builds a Spec that evaluates head and hands the settled result
// to k.  The composed flag is head's flag ORed with mayDefer, which
// the caller computes from whatever Specs k can go on to evaluate.
//
// This is the shared plumbing for the combinators that choose or
// scope their continuation based on one computed value (Bind, Cases,
// Conditional, Object, Cache).
func then(head Spec, mayDefer bool, k func(env *Env, v interface{}) (interface{}, error)) Spec {
	if !head.MayDefer() && !mayDefer {
		return &immediate{eval: func(env *Env) (interface{}, error) {
			v, err := head.Eval(env)
			if err != nil {
				return nil, err
			}
			return k(env, v)
		}}
	}
	return &deferring{eval: func(env *Env) *Deferred {
		v, err := head.Eval(env)
		if err != nil {
			return Rejected(err)
		}
		return Go(func() (interface{}, error) {
			w, err := Force(v)
			if err != nil {
				return nil, err
			}
			return k(env, w)
		})
	}}
}
