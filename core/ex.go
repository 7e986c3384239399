package core

import (
	"errors"
)

// OrderTotal makes an example Derivation that's useful to have
// around.  It prices an order:
//
//	{"customer": {"tier": "gold"},
//	 "items": [{"price": 4.5, "qty": 2},
//	           {"price": 1, "qty": 3}]}
//
// derives to
//
//	{"currency": "USD", "subtotal": 12, "total": 9}
//
// The per-tier discount rate is memoized, so repeated evaluations
// look a tier's rate up at most once.
func OrderTotal() *Derivation {
	times := func(args ...interface{}) (interface{}, error) {
		acc := 1.0
		for _, x := range args {
			n, err := asNumber(x)
			if err != nil {
				return nil, err
			}
			acc *= n
		}
		return acc, nil
	}

	sum := func(args ...interface{}) (interface{}, error) {
		xs, is := args[0].([]interface{})
		if !is {
			return nil, &NotASequence{Value: args[0]}
		}
		acc := 0.0
		for _, x := range xs {
			n, err := asNumber(x)
			if err != nil {
				return nil, err
			}
			acc += n
		}
		return acc, nil
	}

	return Input(func(order Spec) interface{} {
		return Object(order, func(prop Prop) interface{} {
			subtotal := Call(sum,
				Map(prop("items", true), func(item Spec) interface{} {
					return Object(item, func(p Prop) interface{} {
						return Call(times, p("price", true), p("qty", true))
					})
				}))

			tier := Object(prop("customer", false), func(p Prop) interface{} {
				return p("tier", false)
			})

			// An unknown (or missing) tier gets rate 1.
			rate := Cache(tier, func(t Spec) interface{} {
				return Bind(Cases(t, map[interface{}]interface{}{
					"gold":   0.75,
					"silver": 0.875,
				}), func(r Spec) interface{} {
					return Conditional(r, r, 1.0)
				})
			})

			return Union(
				map[string]interface{}{"currency": "USD"},
				Bind(subtotal, func(sub Spec) interface{} {
					return map[string]interface{}{
						"subtotal": sub,
						"total":    Call(times, sub, rate),
					}
				}),
			)
		})
	})
}

func asNumber(x interface{}) (float64, error) {
	switch vv := x.(type) {
	case float64:
		return vv, nil
	case int:
		return float64(vv), nil
	case int64:
		return float64(vv), nil
	default:
		return 0, errors.New("not a number")
	}
}
