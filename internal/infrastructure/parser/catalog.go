package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"ArticleBrowser/internal/domain"
	"ArticleBrowser/internal/ports"
)

// Catalog is a static language -> batches mapping loaded once at startup.
type Catalog struct {
	languages map[string][]domain.BatchSpec
}

var _ ports.LanguageCatalog = (*Catalog)(nil)

// catalogEntry accepts either a bare location string or a full spec.
type catalogEntry struct {
	Format   string            `yaml:"format"`
	Location string            `yaml:"location"`
	Options  map[string]string `yaml:"options"`
}

func (e *catalogEntry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		e.Location = node.Value
		return nil
	}
	type plain catalogEntry
	return node.Decode((*plain)(e))
}

// NewCatalog copies languages into a catalog.
func NewCatalog(languages map[string][]domain.BatchSpec) *Catalog {
	c := &Catalog{languages: make(map[string][]domain.BatchSpec, len(languages))}
	for name, specs := range languages {
		c.Add(name, specs...)
	}
	return c
}

// LoadCatalog reads a YAML or JSON file mapping language keys to batch lists.
// Relative local locations resolve against the catalog's directory and a
// missing format is inferred from the location's extension.
func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var entries map[string][]catalogEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	base := filepath.Dir(path)
	c := NewCatalog(nil)
	for name, list := range entries {
		specs := make([]domain.BatchSpec, 0, len(list))
		for _, e := range list {
			location := e.Location
			if location != "" && !isRemote(location) && !filepath.IsAbs(location) {
				location = filepath.Join(base, location)
			}
			specs = append(specs, domain.BatchSpec{
				Format:   InferFormat(e.Format, e.Location),
				Location: location,
				Options:  e.Options,
			})
		}
		c.Add(name, specs...)
	}
	return c, nil
}

// Add appends batches to a language, creating it when new.
func (c *Catalog) Add(language string, specs ...domain.BatchSpec) {
	if c.languages == nil {
		c.languages = map[string][]domain.BatchSpec{}
	}
	c.languages[language] = append(c.languages[language], specs...)
}

// Languages lists language keys in sorted order.
func (c *Catalog) Languages() []string {
	names := make([]string, 0, len(c.languages))
	for name := range c.languages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Batches returns the batches of language, or nil when unknown.
func (c *Catalog) Batches(language string) []domain.BatchSpec {
	specs := c.languages[language]
	if len(specs) == 0 {
		return nil
	}
	out := make([]domain.BatchSpec, len(specs))
	copy(out, specs)
	return out
}

// InferFormat returns format, or guesses one from the location's extension.
func InferFormat(format, location string) string {
	if format != "" {
		return strings.ToLower(format)
	}
	path := location
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return "html"
	default:
		return "csv"
	}
}
