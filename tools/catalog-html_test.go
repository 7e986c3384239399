package tools

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Comcast/dervish/catalog"
)

func TestRenderCatalogPage(t *testing.T) {
	c := catalog.Demo()

	out := bytes.NewBuffer(make([]byte, 0, 1024*8))

	if err := RenderCatalogPage(c, out, "demo", []string{"catalog.css"}); err != nil {
		t.Fatal(err)
	}

	html := out.String()
	for _, want := range []string{"order-total", "echo", "catalog.css"} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in rendered page", want)
		}
	}
}

func TestEntryJSON(t *testing.T) {
	c := catalog.Demo()
	e, err := c.Get("echo")
	if err != nil {
		t.Fatal(err)
	}
	js, err := EntryJSON(e)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(js, `"name":"echo"`) {
		t.Fatalf("unexpected JSON %s", js)
	}
}
