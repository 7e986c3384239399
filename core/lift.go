package core

import (
	"sort"
)

// Absent is the universal "no value" marker, distinguished from all
// present values (including nil).  Lifted records drop keys whose
// value evaluates to Absent, Cases with no matching case evaluates to
// Absent, and Object short-circuits on an Absent object.
var Absent = &absent{}

type absent struct{}

func (a *absent) String() string {
	return "absent"
}

// IsAbsent reports whether x is the Absent marker.
func IsAbsent(x interface{}) bool {
	return x == Absent
}

// EnsureSpec lifts x into a Spec.
//
// A Spec is returned unchanged.  A []interface{} is lifted
// recursively into a Spec that evaluates to a same-length sequence,
// preserving index order.  A map[string]interface{} is lifted
// recursively into a Spec that evaluates to a record containing only
// the keys whose value did not evaluate to Absent.  Anything else is
// an opaque literal: the result always evaluates to x unchanged.
//
// Every combinator applies EnsureSpec to its spec-like arguments, so
// literals, nested literals, and hand-built Specs mix freely.
func EnsureSpec(x interface{}) Spec {
	switch vv := x.(type) {
	case Spec:
		return vv
	case []interface{}:
		children := make([]Spec, len(vv))
		for i, y := range vv {
			children[i] = EnsureSpec(y)
		}
		return MakeSpec(func(_ *Env, args ...interface{}) (interface{}, error) {
			acc := make([]interface{}, len(args))
			copy(acc, args)
			return acc, nil
		}, children...)
	case map[string]interface{}:
		// Sorted keys so children launch in a stable order.
		keys := make([]string, 0, len(vv))
		for k := range vv {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		children := make([]Spec, len(keys))
		for i, k := range keys {
			children[i] = EnsureSpec(vv[k])
		}
		return MakeSpec(func(_ *Env, args ...interface{}) (interface{}, error) {
			acc := make(map[string]interface{}, len(args))
			for i, v := range args {
				if IsAbsent(v) {
					continue
				}
				acc[keys[i]] = v
			}
			return acc, nil
		}, children...)
	default:
		return Constant(x)
	}
}
