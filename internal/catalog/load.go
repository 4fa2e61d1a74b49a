package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var embeddedData []byte

// document is the on-disk layout of a catalog data file.
type document struct {
	Destinations []Destination `yaml:"destinations"`
	Agencies     []Agency      `yaml:"agencies"`
	About        About         `yaml:"about"`
}

// Load decodes a YAML catalog document from r and validates it.
func Load(r io.Reader) (*Catalog, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	return New(doc.Destinations, doc.Agencies, doc.About)
}

// LoadFile reads a YAML catalog document from path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog file %s: %w", path, err)
	}
	defer f.Close()

	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("loading catalog file %s: %w", path, err)
	}
	return c, nil
}

// LoadEmbedded loads the catalog baked into the binary.
func LoadEmbedded() (*Catalog, error) {
	return Load(bytes.NewReader(embeddedData))
}

// EmbeddedAbout returns the about content of the embedded catalog. It is used by
// sources that carry only the record tables.
func EmbeddedAbout() (About, error) {
	var doc document
	if err := yaml.Unmarshal(embeddedData, &doc); err != nil {
		return About{}, fmt.Errorf("decoding embedded catalog: %w", err)
	}
	return doc.About, nil
}
