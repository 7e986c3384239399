package catalog

import (
	"testing"

	"github.com/Comcast/dervish/core"
)

func TestCatalog(t *testing.T) {
	c := NewCatalog()

	e := &Entry{
		Name: "echo",
		D: core.Input(func(input core.Spec) interface{} {
			return input
		}),
	}

	if err := c.Add(e); err != nil {
		t.Fatal(err)
	}
	if err := c.Add(e); err != Exists {
		t.Fatalf("got %v, wanted %v", err, Exists)
	}
	if err := c.Add(&Entry{Name: "broken"}); err == nil {
		t.Fatal("an entry without a derivation should be rejected")
	}

	got, err := c.Eval("echo", "tacos")
	if err != nil {
		t.Fatal(err)
	}
	if got != "tacos" {
		t.Fatalf("got %#v", got)
	}

	if _, err = c.Eval("nope", nil); err != NotFound {
		t.Fatalf("got %v, wanted %v", err, NotFound)
	}

	names := c.Names()
	if len(names) != 1 || names[0] != "echo" {
		t.Fatalf("got names %#v", names)
	}
}

func TestDemo(t *testing.T) {
	c := Demo()
	for _, name := range []string{"order-total", "echo"} {
		if _, err := c.Get(name); err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
	}

	got, err := c.Eval("order-total", map[string]interface{}{
		"items": []interface{}{
			map[string]interface{}{"price": 2.0, "qty": 2.0},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	m, is := got.(map[string]interface{})
	if !is {
		t.Fatalf("got %#v", got)
	}
	if m["total"] != 4.0 {
		t.Fatalf("got total %#v", m["total"])
	}
}
