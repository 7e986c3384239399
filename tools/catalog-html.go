package tools

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Comcast/dervish/catalog"

	md "github.com/russross/blackfriday/v2"
)

// RenderEntryHTML writes an HTML fragment describing a catalog entry.
func RenderEntryHTML(e *catalog.Entry, out io.Writer) error {
	f := func(format string, args ...interface{}) {
		fmt.Fprintf(out, format+"\n", args...)
	}

	f(`<div class="entry">`)
	f(`<span id="%s" class="entryName">%s</span>`, e.Name, e.Name)

	if e.Doc != "" {
		f(`<div class="entryDoc doc">%s</div>`, md.Run([]byte(e.Doc)))
	}

	if e.D != nil {
		mode := "immediate"
		if e.D.MayDefer() {
			mode = "deferring"
		}
		f(`<div class="entryMode">evaluation: <code>%s</code></div>`, mode)
	}

	f(`</div>`)

	return nil
}

// RenderCatalogPage writes a complete HTML page listing the catalog's
// entries in name order.
func RenderCatalogPage(c *catalog.Catalog, out io.Writer, title string, cssFiles []string) error {

	if cssFiles == nil {
		cssFiles = []string{"/static/catalog-html.css"}
	}

	fmt.Fprintf(out, `<!DOCTYPE html>
<meta charset="utf-8">
<html>
  <head>
  <title>%s</title>
`, title)

	for _, cssFile := range cssFiles {
		fmt.Fprintf(out, "  <link href=\"%s\" rel=\"stylesheet\">\n", cssFile)
	}

	fmt.Fprintf(out, `
  </head>
  <body>
    <h1>%s</h1>
`, title)

	for _, name := range c.Names() {
		e, err := c.Get(name)
		if err != nil {
			return err
		}
		if err = RenderEntryHTML(e, out); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, `
  </body>
</html>
`)

	return nil
}

// EntryJSON renders an entry's metadata as JSON (without the
// derivation itself, which has no useful serialization).
func EntryJSON(e *catalog.Entry) (string, error) {
	m := map[string]interface{}{
		"name": e.Name,
	}
	if e.Doc != "" {
		m["doc"] = e.Doc
	}
	if e.D != nil {
		m["mayDefer"] = e.D.MayDefer()
	}
	js, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(js), nil
}
