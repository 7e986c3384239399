package core

// These errors are user errors, not internal errors.

import (
	"fmt"
)

// IllegalSpec reports misuse of a combinator at spec-construction
// time: a nil function where a function was required, or a nil
// strategy.  Combinators panic with an *IllegalSpec before any
// evaluation can happen, in the manner of stdlib constructors that
// reject programmer error.
type IllegalSpec struct {
	Combinator string
	Reason     string
}

func (e *IllegalSpec) Error() string {
	return `illegal spec: ` + e.Combinator + `: ` + e.Reason
}

// NotASequence occurs when Map's array spec evaluates to something
// that is not an ordered sequence.  Raised at evaluation time, never
// at construction.
type NotASequence struct {
	Value interface{}
}

func (e *NotASequence) Error() string {
	return fmt.Sprintf("not a sequence: %T", e.Value)
}

// NotARecord occurs when Union or Object is given something that
// does not evaluate to a keyed record.
type NotARecord struct {
	Value interface{}
}

func (e *NotARecord) Error() string {
	return fmt.Sprintf("not a record: %T", e.Value)
}

// MissingProperty occurs when an Object property accessor marked
// required finds no such key on the bound object.
type MissingProperty struct {
	Name string
}

func (e *MissingProperty) Error() string {
	return `missing required property "` + e.Name + `"`
}

// BadPropertyName occurs when an Object property accessor's name spec
// evaluates to a non-string.
type BadPropertyName struct {
	Value interface{}
}

func (e *BadPropertyName) Error() string {
	return fmt.Sprintf("bad property name: %T", e.Value)
}

// BadCacheKey occurs when a Cache key spec evaluates to a value that
// cannot be a map key (say, a sequence or a record).
type BadCacheKey struct {
	Value interface{}
}

func (e *BadCacheKey) Error() string {
	return fmt.Sprintf("bad cache key: %T", e.Value)
}

// Unbound occurs when a reference spec is evaluated outside the
// combinator that minted its token.  Should be impossible via the
// public API.
type Unbound struct {
	Name string
}

func (e *Unbound) Error() string {
	return `unbound reference "` + e.Name + `"`
}
