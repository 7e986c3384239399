package tools

import (
	"io"

	"github.com/Comcast/dervish/catalog"

	"gopkg.in/yaml.v2"
)

// ManifestEntry is one line of a catalog manifest.
type ManifestEntry struct {
	Name     string `yaml:"name"`
	Doc      string `yaml:"doc,omitempty"`
	MayDefer bool   `yaml:"mayDefer"`
}

// Manifest gathers the catalog's entries in name order.
func Manifest(c *catalog.Catalog) ([]ManifestEntry, error) {
	names := c.Names()
	entries := make([]ManifestEntry, 0, len(names))
	for _, name := range names {
		e, err := c.Get(name)
		if err != nil {
			return nil, err
		}
		me := ManifestEntry{
			Name: e.Name,
			Doc:  e.Doc,
		}
		if e.D != nil {
			me.MayDefer = e.D.MayDefer()
		}
		entries = append(entries, me)
	}
	return entries, nil
}

// WriteManifest writes the catalog manifest as YAML.
func WriteManifest(c *catalog.Catalog, w io.Writer) error {
	entries, err := Manifest(c)
	if err != nil {
		return err
	}
	bs, err := yaml.Marshal(entries)
	if err != nil {
		return err
	}
	_, err = w.Write(bs)
	return err
}
