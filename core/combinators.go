/* Copyright 2026 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package core

import (
	"reflect"
)

// Func is a plain function usable with Call.  A Func receives the
// evaluated, settled argument values positionally; it is never given
// a *Deferred and should never return one.
type Func func(args ...interface{}) (interface{}, error)

// Constant makes a Spec that always evaluates to v.  It never defers,
// even when v happens to be a *Deferred; see Resolve for that.
func Constant(v interface{}) Spec {
	return &immediate{eval: func(*Env) (interface{}, error) {
		return v, nil
	}}
}

// Bind evaluates the spec-like value once, binds the result under a
// fresh token, and evaluates f's result spec against the extended
// Env.  f receives a Spec that reads the binding, so a computed value
// can be referenced many times downstream without recomputation.
func Bind(value interface{}, f func(ref Spec) interface{}) Spec {
	if f == nil {
		panic(&IllegalSpec{Combinator: "Bind", Reason: "nil function"})
	}
	tok := newToken("bind")
	body := EnsureSpec(f(refSpec(tok)))
	return then(EnsureSpec(value), body.MayDefer(),
		func(env *Env, v interface{}) (interface{}, error) {
			return body.Eval(env.extend(tok, v))
		})
}

// Map evaluates the spec-like array, which must produce an ordered
// sequence, and evaluates f's result spec once per element against an
// Env extended with that element.  The output preserves index order.
// The element's index is deliberately not bound.
//
// All per-item evaluations are launched before any is awaited, so a
// deferring item spec gives concurrent fan-out with ordered
// collection.
func Map(array interface{}, f func(item Spec) interface{}) Spec {
	if f == nil {
		panic(&IllegalSpec{Combinator: "Map", Reason: "nil function"})
	}
	tok := newToken("item")
	item := EnsureSpec(f(refSpec(tok)))

	each := func(env *Env, xs []interface{}) (interface{}, error) {
		acc := make([]interface{}, len(xs))
		for i, x := range xs {
			v, err := item.Eval(env.extend(tok, x))
			if err != nil {
				return nil, err
			}
			acc[i] = v
		}
		if !item.MayDefer() {
			return acc, nil
		}
		return Go(func() (interface{}, error) {
			for i, v := range acc {
				w, err := Force(v)
				if err != nil {
					return nil, err
				}
				acc[i] = w
			}
			return acc, nil
		}), nil
	}

	return MakeSpecWith(&Strategy{
		MayDefer: item.MayDefer(),
		Evaluate: func(env *Env, children []Spec) (interface{}, error) {
			v, err := children[0].Eval(env)
			if err != nil {
				return nil, err
			}
			d, deferred := v.(*Deferred)
			if !deferred {
				xs, is := v.([]interface{})
				if !is {
					return nil, &NotASequence{Value: v}
				}
				return each(env, xs)
			}
			return Go(func() (interface{}, error) {
				w, err := d.Wait()
				if err != nil {
					return nil, err
				}
				xs, is := w.([]interface{})
				if !is {
					return nil, &NotASequence{Value: w}
				}
				return each(env, xs)
			}), nil
		},
	}, EnsureSpec(array))
}

// Call evaluates each spec-like argument and invokes fn positionally
// with the results.
func Call(fn Func, args ...interface{}) Spec {
	if fn == nil {
		panic(&IllegalSpec{Combinator: "Call", Reason: "nil function"})
	}
	children := make([]Spec, len(args))
	for i, x := range args {
		children[i] = EnsureSpec(x)
	}
	return MakeSpec(func(_ *Env, vals ...interface{}) (interface{}, error) {
		return fn(vals...)
	}, children...)
}

// Resolve forces the composed Spec's MayDefer flag to true and awaits
// whatever the spec-like x evaluates to before returning it.  This is
// the sole bridge that introduces deferredness from an arbitrary
// source, such as a *Deferred that is already in flight.
func Resolve(x interface{}) Spec {
	child := EnsureSpec(x)
	return &deferring{eval: func(env *Env) *Deferred {
		v, err := child.Eval(env)
		if err != nil {
			return Rejected(err)
		}
		return Go(func() (interface{}, error) {
			return Force(v)
		})
	}}
}

// Union evaluates every spec-like argument, each of which must
// produce a keyed record, and shallow-merges them left to right.
// Later keys overwrite earlier ones.
func Union(specs ...interface{}) Spec {
	children := make([]Spec, len(specs))
	for i, x := range specs {
		children[i] = EnsureSpec(x)
	}
	return MakeSpec(func(_ *Env, args ...interface{}) (interface{}, error) {
		acc := make(map[string]interface{})
		for _, v := range args {
			m, is := v.(map[string]interface{})
			if !is {
				return nil, &NotARecord{Value: v}
			}
			for k, w := range m {
				acc[k] = w
			}
		}
		return acc, nil
	}, children...)
}

// Cases evaluates the spec-like selector to obtain a discrete key and
// then evaluates the matching case spec.  No matching case means the
// whole Spec evaluates to Absent; that's not a failure.
func Cases(selector interface{}, cases map[interface{}]interface{}) Spec {
	specs := make(map[interface{}]Spec, len(cases))
	mayDefer := false
	for k, x := range cases {
		s := EnsureSpec(x)
		specs[k] = s
		mayDefer = mayDefer || s.MayDefer()
	}
	return then(EnsureSpec(selector), mayDefer,
		func(env *Env, key interface{}) (interface{}, error) {
			if !mapKeyable(key) {
				return Absent, nil
			}
			s, have := specs[key]
			if !have {
				return Absent, nil
			}
			return s.Eval(env)
		})
}

// Conditional evaluates the spec-like value and then exactly one of
// the two branches: the first when the value is truthy, the second
// otherwise.  The unselected branch is never evaluated.
func Conditional(value, whenTrue, whenFalse interface{}) Spec {
	t := EnsureSpec(whenTrue)
	f := EnsureSpec(whenFalse)
	return then(EnsureSpec(value), t.MayDefer() || f.MayDefer(),
		func(env *Env, v interface{}) (interface{}, error) {
			if Truthy(v) {
				return t.Eval(env)
			}
			return f.Eval(env)
		})
}

// Prop makes a Spec that reads a property off the object currently
// bound by the enclosing Object.  The spec-like name must evaluate to
// a string.  When required is true and the property is missing,
// evaluation fails with a *MissingProperty; otherwise a missing
// property evaluates to Absent.
type Prop func(name interface{}, required bool) Spec

// Object evaluates the spec-like object; an Absent object makes the
// whole Spec evaluate to Absent without evaluating f's result spec.
// Otherwise the object is bound under a fresh token and f's result
// spec is evaluated against the extended Env, with f's Prop argument
// reading properties off the bound object.
func Object(object interface{}, f func(prop Prop) interface{}) Spec {
	if f == nil {
		panic(&IllegalSpec{Combinator: "Object", Reason: "nil function"})
	}
	tok := newToken("object")
	prop := func(name interface{}, required bool) Spec {
		return MakeSpec(func(_ *Env, args ...interface{}) (interface{}, error) {
			m, is := args[0].(map[string]interface{})
			if !is {
				return nil, &NotARecord{Value: args[0]}
			}
			p, is := args[1].(string)
			if !is {
				return nil, &BadPropertyName{Value: args[1]}
			}
			v, have := m[p]
			if !have {
				if required {
					return nil, &MissingProperty{Name: p}
				}
				return Absent, nil
			}
			return v, nil
		}, refSpec(tok), EnsureSpec(name))
	}
	body := EnsureSpec(f(prop))
	return then(EnsureSpec(object), body.MayDefer(),
		func(env *Env, v interface{}) (interface{}, error) {
			if IsAbsent(v) {
				return Absent, nil
			}
			return body.Eval(env.extend(tok, v))
		})
}

// Truthy reports runtime truthiness for JSON-shaped values: nil,
// false, zero numbers, empty strings, and Absent are false;
// everything else is true.
func Truthy(x interface{}) bool {
	switch vv := x.(type) {
	case nil:
		return false
	case bool:
		return vv
	case float64:
		return vv != 0
	case float32:
		return vv != 0
	case int:
		return vv != 0
	case int64:
		return vv != 0
	case string:
		return vv != ""
	case *absent:
		return false
	default:
		return true
	}
}

// mapKeyable reports whether x can be used as a map key without a
// runtime panic.
func mapKeyable(x interface{}) bool {
	if x == nil {
		return true
	}
	return reflect.TypeOf(x).Comparable()
}
