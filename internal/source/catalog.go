package source

import (
	_ "embed"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Entry identifies one upstream source: where it lives and how deep its
// pagination goes. Max pages is a per-source constant; a page that parses
// to zero records ends pagination early regardless.
type Entry struct {
	ID       string `yaml:"id"`
	Label    string `yaml:"label"`
	BaseURL  string `yaml:"base_url"`
	MaxPages int    `yaml:"max_pages"`
}

// Catalog is the fixed set of upstream sources.
type Catalog struct {
	Sources []Entry `yaml:"sources"`
}

// LoadCatalog parses the embedded source catalog.
func LoadCatalog() (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(catalogYAML, &c); err != nil {
		return nil, eris.Wrap(err, "source: parse catalog")
	}
	if len(c.Sources) == 0 {
		return nil, eris.New("source: catalog is empty")
	}
	return &c, nil
}

// ByID returns the catalog entry for the given source ID, or nil.
func (c *Catalog) ByID(id string) *Entry {
	for i := range c.Sources {
		if c.Sources[i].ID == id {
			return &c.Sources[i]
		}
	}
	return nil
}
