package core

import (
	"log"
	"sync"
)

// MemoTable stores settled derivation results by key.  The default
// table (used by Cache) is an in-memory map owned exclusively by the
// Cache instance that created it; storage/bolt provides a persistent
// implementation for CacheIn.
//
// A table only ever sees settled values, never a *Deferred: in-flight
// deferred results are tracked privately by the Cache instance.
// Implementations shared across Cache instances must be safe for
// concurrent use.
type MemoTable interface {
	// Load returns the value stored for key.
	Load(key interface{}) (interface{}, bool, error)

	// Store records the value for key.
	Store(key, v interface{}) error
}

// mapTable is the default MemoTable.  Not locked: it is private to
// one Cache instance, whose mutex serializes access.
type mapTable map[interface{}]interface{}

func (t mapTable) Load(key interface{}) (interface{}, bool, error) {
	v, have := t[key]
	return v, have, nil
}

func (t mapTable) Store(key, v interface{}) error {
	t[key] = v
	return nil
}

// memo is the runtime state of one Cache instance.  It lives as long
// as the owning Spec; there is no eviction and no TTL.
type memo struct {
	mu       sync.Mutex
	table    MemoTable
	inflight map[interface{}]*Deferred
}

// lookup returns the memoized entry for key, evaluating body (bound
// to key at tok) exactly once per distinct key.  The entry is
// recorded before a deferred computation settles, so concurrent and
// repeated callers for an equal key observe the same in-flight
// *Deferred.
func (m *memo) lookup(env *Env, tok *token, body Spec, key interface{}) (interface{}, error) {
	if !mapKeyable(key) {
		return nil, &BadCacheKey{Value: key}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if d, have := m.inflight[key]; have {
		return d, nil
	}
	v, have, err := m.table.Load(key)
	if err != nil {
		return nil, err
	}
	if have {
		return v, nil
	}

	r, err := body.Eval(env.extend(tok, key))
	if err != nil {
		// A synchronous failure is not memoized.
		return nil, err
	}
	if d, is := r.(*Deferred); is {
		m.inflight[key] = d
		go m.settle(key, d)
		return d, nil
	}
	if err := m.table.Store(key, r); err != nil {
		return nil, err
	}
	return r, nil
}

// settle copies a deferred result into the table once it resolves.
// The inflight entry stays, so a rejected result is memoized, too.
func (m *memo) settle(key interface{}, d *Deferred) {
	v, err := d.Wait()
	if err != nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.table.Store(key, v); err != nil {
		log.Printf("core.Cache store error for %v: %s", key, err)
	}
}

// Cache memoizes: it evaluates the spec-like key and, for a key not
// seen before, binds the key under a fresh token and evaluates f's
// result spec exactly once, storing the result (value or in-flight
// *Deferred) in a private memo table.  A later evaluation with an
// equal key returns the stored entry without re-evaluating.
//
// Key equality is Go's native map-key equality.
func Cache(key interface{}, f func(ref Spec) interface{}) Spec {
	return CacheIn(nil, key, f)
}

// CacheIn is Cache backed by the given MemoTable.  A nil table means
// a fresh private in-memory table.  At-most-once evaluation per key
// holds for any table; only settled, successful values reach it.
func CacheIn(table MemoTable, key interface{}, f func(ref Spec) interface{}) Spec {
	if f == nil {
		panic(&IllegalSpec{Combinator: "Cache", Reason: "nil function"})
	}
	if table == nil {
		table = make(mapTable)
	}
	tok := newToken("key")
	body := EnsureSpec(f(refSpec(tok)))
	m := &memo{
		table:    table,
		inflight: make(map[interface{}]*Deferred),
	}
	return then(EnsureSpec(key), body.MayDefer(),
		func(env *Env, k interface{}) (interface{}, error) {
			return m.lookup(env, tok, body, k)
		})
}
