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
	"errors"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestCacheAtMostOnce(t *testing.T) {
	calls := 0
	d := Input(func(input Spec) interface{} {
		return Cache(input, func(key Spec) interface{} {
			return Call(func(args ...interface{}) (interface{}, error) {
				calls++
				return args[0].(string) + "!", nil
			}, key)
		})
	})

	for _, key := range []string{"a", "a", "b", "a", "b"} {
		got, err := d.Run(key)
		if err != nil {
			t.Fatal(err)
		}
		if got != key+"!" {
			t.Fatalf("got %#v for %q", got, key)
		}
	}
	if calls != 2 {
		t.Fatalf("value function ran %d times, wanted once per distinct key", calls)
	}
}

func TestCacheSharedInFlight(t *testing.T) {
	var calls int32
	release := make(chan struct{})
	d := Input(func(input Spec) interface{} {
		return Cache(input, func(key Spec) interface{} {
			return Resolve(Call(func(args ...interface{}) (interface{}, error) {
				return Go(func() (interface{}, error) {
					atomic.AddInt32(&calls, 1)
					<-release
					return args[0], nil
				}), nil
			}, key))
		})
	})

	const n = 8
	var wg sync.WaitGroup
	got := make([]interface{}, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i], errs[i] = d.Run("same")
		}(i)
	}
	// Let the callers pile up on the one in-flight result.
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	for i := 0; i < n; i++ {
		if errs[i] != nil {
			t.Fatal(errs[i])
		}
		if got[i] != "same" {
			t.Fatalf("caller %d got %#v", i, got[i])
		}
	}
	if c := atomic.LoadInt32(&calls); c != 1 {
		t.Fatalf("value function ran %d times under concurrent callers", c)
	}
}

func TestCacheBadKey(t *testing.T) {
	d := Input(func(input Spec) interface{} {
		return Cache(input, func(key Spec) interface{} {
			return key
		})
	})
	_, err := d.Run([]interface{}{"not", "keyable"})
	if _, is := err.(*BadCacheKey); !is {
		t.Fatalf("got %#v, wanted a *BadCacheKey", err)
	}
}

func TestCacheSyncErrorNotMemoized(t *testing.T) {
	boom := errors.New("boom")
	fail := true
	d := Input(func(input Spec) interface{} {
		return Cache(input, func(key Spec) interface{} {
			return Call(func(args ...interface{}) (interface{}, error) {
				if fail {
					return nil, boom
				}
				return "fine now", nil
			}, key)
		})
	})

	if _, err := d.Run("k"); err != boom {
		t.Fatalf("got %v, wanted %v", err, boom)
	}
	fail = false
	got, err := d.Run("k")
	if err != nil {
		t.Fatal(err)
	}
	if got != "fine now" {
		t.Fatalf("got %#v", got)
	}
}

// recordingTable is a MemoTable stub that remembers its traffic.
type recordingTable struct {
	mu     sync.Mutex
	data   map[interface{}]interface{}
	loads  int
	stores int
}

func newRecordingTable() *recordingTable {
	return &recordingTable{data: make(map[interface{}]interface{})}
}

func (t *recordingTable) Load(key interface{}) (interface{}, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.loads++
	v, have := t.data[key]
	return v, have, nil
}

func (t *recordingTable) Store(key, v interface{}) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stores++
	t.data[key] = v
	return nil
}

func TestCacheIn(t *testing.T) {
	t.Run("settled values reach the table", func(t *testing.T) {
		table := newRecordingTable()
		d := Input(func(input Spec) interface{} {
			return CacheIn(table, input, func(key Spec) interface{} {
				return key
			})
		})
		if _, err := d.Run("a"); err != nil {
			t.Fatal(err)
		}
		if _, err := d.Run("a"); err != nil {
			t.Fatal(err)
		}
		if table.stores != 1 {
			t.Fatalf("%d stores, wanted 1", table.stores)
		}
		if !reflect.DeepEqual(table.data["a"], "a") {
			t.Fatalf("table holds %#v", table.data)
		}
	})

	t.Run("prewarmed table short-circuits evaluation", func(t *testing.T) {
		table := newRecordingTable()
		table.data["a"] = "cached"
		calls := 0
		d := Input(func(input Spec) interface{} {
			return CacheIn(table, input, func(key Spec) interface{} {
				return Call(func(args ...interface{}) (interface{}, error) {
					calls++
					return args[0], nil
				}, key)
			})
		})
		got, err := d.Run("a")
		if err != nil {
			t.Fatal(err)
		}
		if got != "cached" {
			t.Fatalf("got %#v", got)
		}
		if calls != 0 {
			t.Fatal("value function ran for a prewarmed key")
		}
	})

	t.Run("deferred value stored after settling", func(t *testing.T) {
		table := newRecordingTable()
		d := Input(func(input Spec) interface{} {
			return CacheIn(table, input, func(key Spec) interface{} {
				return Resolve(key)
			})
		})
		got, err := d.Run("a")
		if err != nil {
			t.Fatal(err)
		}
		if got != "a" {
			t.Fatalf("got %#v", got)
		}
		// The table write happens after the deferred settles.
		deadline := time.Now().Add(time.Second)
		for {
			table.mu.Lock()
			stored := table.stores
			table.mu.Unlock()
			if stored == 1 {
				break
			}
			if time.Now().After(deadline) {
				t.Fatal("settled value never reached the table")
			}
			time.Sleep(time.Millisecond)
		}
	})
}
