package bolt

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/Comcast/dervish/core"
)

func testStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := NewStorage(filepath.Join(t.TempDir(), "memo.db"))
	if err != nil {
		t.Fatal(err)
	}
	if err = s.Open(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		s.Close()
	})
	return s
}

func TestTable(t *testing.T) {
	s := testStorage(t)

	table, err := s.Table("rates")
	if err != nil {
		t.Fatal(err)
	}

	if _, have, err := table.Load("gold"); err != nil || have {
		t.Fatalf("empty table: %v, %v", have, err)
	}

	want := map[string]interface{}{"rate": 0.75}
	if err = table.Store("gold", want); err != nil {
		t.Fatal(err)
	}

	v, have, err := table.Load("gold")
	if err != nil {
		t.Fatal(err)
	}
	if !have {
		t.Fatal("lost the stored value")
	}
	if !reflect.DeepEqual(v, want) {
		t.Fatalf("got %#v, wanted %#v", v, want)
	}

	if err = s.RemTable("rates"); err != nil {
		t.Fatal(err)
	}
	if _, have, _ := table.Load("gold"); have {
		t.Fatal("value survived RemTable")
	}
}

func TestTableWithCacheIn(t *testing.T) {
	s := testStorage(t)

	table, err := s.Table("squares")
	if err != nil {
		t.Fatal(err)
	}

	calls := 0
	derivation := func() *core.Derivation {
		return core.Input(func(input core.Spec) interface{} {
			return core.CacheIn(table, input, func(key core.Spec) interface{} {
				return core.Call(func(args ...interface{}) (interface{}, error) {
					calls++
					n := args[0].(float64)
					return n * n, nil
				}, key)
			})
		})
	}

	d := derivation()
	if v, err := d.Run(3.0); err != nil || v != 9.0 {
		t.Fatalf("got %v, %v", v, err)
	}
	if v, err := d.Run(3.0); err != nil || v != 9.0 {
		t.Fatalf("got %v, %v", v, err)
	}
	if calls != 1 {
		t.Fatalf("value function ran %d times", calls)
	}

	// A fresh derivation against the same table still finds the
	// memoized result.
	d2 := derivation()
	if v, err := d2.Run(3.0); err != nil || v != 9.0 {
		t.Fatalf("got %v, %v", v, err)
	}
	if calls != 1 {
		t.Fatalf("the persistent table was ignored: %d calls", calls)
	}
}
