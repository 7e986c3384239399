package goja

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/Comcast/dervish/core"
)

func TestCompileFuncSimple(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	i := NewInterpreter()
	f, err := i.CompileFunc(ctx, `return _.args[0] + _.args[1];`)
	if err != nil {
		t.Fatal(err)
	}

	v, err := f(1.0, 2.0)
	if err != nil {
		t.Fatal(err)
	}
	if v != 3.0 {
		t.Fatalf("got %#v (%T)", v, v)
	}
}

func TestCompileFuncInCall(t *testing.T) {
	ctx := context.Background()

	i := NewInterpreter()
	upper, err := i.CompileFunc(ctx, `return _.args[0].toUpperCase();`)
	if err != nil {
		t.Fatal(err)
	}

	d := core.Input(func(input core.Spec) interface{} {
		return core.Map(input, func(item core.Spec) interface{} {
			return core.Call(upper, item)
		})
	})

	got, err := d.Run([]interface{}{"tacos", "queso"})
	if err != nil {
		t.Fatal(err)
	}
	want := []interface{}{"TACOS", "QUESO"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, wanted %#v", got, want)
	}
}

func TestCompileFuncRequires(t *testing.T) {
	ctx := context.Background()

	i := NewInterpreter()
	i.LibraryProvider = MakeMapLibraryProvider(map[string]string{
		"shout": `function shout(s) { return s + "!"; }`,
	})

	f, err := i.CompileFunc(ctx, map[string]interface{}{
		"code":     `return shout(_.args[0]);`,
		"requires": "shout",
	})
	if err != nil {
		t.Fatal(err)
	}

	v, err := f("tacos")
	if err != nil {
		t.Fatal(err)
	}
	if v != "tacos!" {
		t.Fatalf("got %#v", v)
	}
}

func TestCompileFuncBadSource(t *testing.T) {
	i := NewInterpreter()
	if _, err := i.CompileFunc(context.Background(), 42); err == nil {
		t.Fatal("no error for a bad source")
	}
	if _, err := i.CompileFunc(context.Background(), `return ][;`); err == nil {
		t.Fatal("no error for unparsable code")
	}
}

func TestCompileFuncInterrupt(t *testing.T) {
	i := NewInterpreter()
	i.Testing = true
	i.MaxRunTime = 20 * time.Millisecond

	f, err := i.CompileFunc(context.Background(), `for (;;) {}`)
	if err != nil {
		t.Fatal(err)
	}

	if _, err = f(); err != Interrupted {
		t.Fatalf("got %v, wanted %v", err, Interrupted)
	}
}

func TestCompileFuncCanonicalizes(t *testing.T) {
	i := NewInterpreter()
	f, err := i.CompileFunc(context.Background(), `return {n: 3, xs: [1,2]};`)
	if err != nil {
		t.Fatal(err)
	}
	v, err := f()
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]interface{}{
		"n":  3.0,
		"xs": []interface{}{1.0, 2.0},
	}
	if !reflect.DeepEqual(v, want) {
		t.Fatalf("got %#v, wanted %#v", v, want)
	}
}
