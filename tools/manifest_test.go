package tools

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Comcast/dervish/catalog"
)

func TestWriteManifest(t *testing.T) {
	c := catalog.Demo()

	out := bytes.NewBuffer(nil)
	if err := WriteManifest(c, out); err != nil {
		t.Fatal(err)
	}

	y := out.String()
	if !strings.Contains(y, "name: order-total") {
		t.Fatalf("expected order-total in manifest:\n%s", y)
	}
	if !strings.Contains(y, "name: echo") {
		t.Fatalf("expected echo in manifest:\n%s", y)
	}
}
