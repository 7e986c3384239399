package core

import (
	"sync"
)

// Deferred is a value that is not yet available.  It settles exactly
// once, to either a value or an error, and then never changes.
//
// A Deferred is this package's asynchronous-completion primitive: a
// Spec whose MayDefer flag is true evaluates to a *Deferred instead
// of a plain value.
type Deferred struct {
	done chan struct{}
	once sync.Once
	val  interface{}
	err  error
}

// NewDeferred makes an unsettled Deferred.
func NewDeferred() *Deferred {
	return &Deferred{done: make(chan struct{})}
}

// Resolve settles d to v.  Only the first settlement (Resolve or
// Reject) has any effect.
//
// v may itself be a *Deferred, in which case Wait will follow the
// chain to the final value.
func (d *Deferred) Resolve(v interface{}) {
	d.once.Do(func() {
		d.val = v
		close(d.done)
	})
}

// Reject settles d to err.  Only the first settlement has any effect.
func (d *Deferred) Reject(err error) {
	d.once.Do(func() {
		d.err = err
		close(d.done)
	})
}

// Wait blocks until d has settled and returns the final value or
// error.  There is no timeout and no cancellation: once launched, a
// deferred computation runs to completion or failure.
func (d *Deferred) Wait() (interface{}, error) {
	<-d.done
	if d.err != nil {
		return nil, d.err
	}
	if next, is := d.val.(*Deferred); is {
		return next.Wait()
	}
	return d.val, nil
}

// Go launches f and returns a Deferred that settles with f's result.
func Go(f func() (interface{}, error)) *Deferred {
	d := NewDeferred()
	go func() {
		v, err := f()
		if err != nil {
			d.Reject(err)
			return
		}
		d.Resolve(v)
	}()
	return d
}

// Resolved makes a Deferred already settled to v.
func Resolved(v interface{}) *Deferred {
	d := NewDeferred()
	d.Resolve(v)
	return d
}

// Rejected makes a Deferred already settled to err.
func Rejected(err error) *Deferred {
	d := NewDeferred()
	d.Reject(err)
	return d
}

// Force returns x, first awaiting it if it is a *Deferred.
func Force(x interface{}) (interface{}, error) {
	if d, is := x.(*Deferred); is {
		return d.Wait()
	}
	return x, nil
}
