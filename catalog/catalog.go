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

// Package catalog maintains named, documented Derivations so that
// tools and services can evaluate them by name.
package catalog

import (
	"errors"
	"sort"
	"sync"

	"github.com/Comcast/dervish/core"
)

var (
	// NotFound is returned when the catalog has no entry with the
	// requested name.
	NotFound = errors.New("derivation not found")

	// Exists is returned by Add when the name is taken.
	Exists = errors.New("derivation already cataloged")
)

// Entry is one cataloged derivation.
type Entry struct {
	// Name is the generic name for this derivation.  Something
	// like "order-total".
	Name string `json:"name"`

	// Doc is general documentation (Markdown) about what this
	// derivation computes.
	Doc string `json:"doc,omitempty"`

	// D is the compiled derivation.
	D *core.Derivation `json:"-"`
}

// Catalog is a set of Entries indexed by name.  Safe for concurrent
// use.
type Catalog struct {
	sync.RWMutex

	entries map[string]*Entry
}

func NewCatalog() *Catalog {
	return &Catalog{
		entries: make(map[string]*Entry, 8),
	}
}

// Add catalogs the entry.  The name must be new.
func (c *Catalog) Add(e *Entry) error {
	if e == nil || e.Name == "" || e.D == nil {
		return errors.New("bad catalog entry")
	}
	c.Lock()
	defer c.Unlock()
	if _, have := c.entries[e.Name]; have {
		return Exists
	}
	c.entries[e.Name] = e
	return nil
}

// Get returns the entry with the given name.
func (c *Catalog) Get(name string) (*Entry, error) {
	c.RLock()
	defer c.RUnlock()
	e, have := c.entries[name]
	if !have {
		return nil, NotFound
	}
	return e, nil
}

// Names returns the cataloged names, sorted.
func (c *Catalog) Names() []string {
	c.RLock()
	defer c.RUnlock()
	acc := make([]string, 0, len(c.entries))
	for name := range c.entries {
		acc = append(acc, name)
	}
	sort.Strings(acc)
	return acc
}

// Eval evaluates the named derivation on the given input, always
// returning a settled value.
func (c *Catalog) Eval(name string, input interface{}) (interface{}, error) {
	e, err := c.Get(name)
	if err != nil {
		return nil, err
	}
	return e.D.Run(input)
}

// Demo returns a Catalog with the example derivations that ship with
// this repo.  Tools and demo services work against this catalog when
// nothing else is configured.
func Demo() *Catalog {
	c := NewCatalog()
	c.Add(&Entry{
		Name: "order-total",
		Doc: `Prices an order.

Give it a record like

    {"customer": {"tier": "gold"},
     "items": [{"price": 4.5, "qty": 2}]}

and get back the subtotal and the tier-discounted total.  Known
tiers: *gold*, *silver*.`,
		D: core.OrderTotal(),
	})
	c.Add(&Entry{
		Name: "echo",
		Doc:  `Returns its input unchanged.  Handy for testing transports.`,
		D: core.Input(func(input core.Spec) interface{} {
			return input
		}),
	})
	return c
}
