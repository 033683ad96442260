package source

import (
	"context"
	"fmt"
	"sort"

	"ArticleBrowser/internal/domain"
)

// Request carries everything a source needs to produce one batch.
type Request struct {
	Language string
	Spec     domain.BatchSpec
}

// Option returns a batch option or fallback when it is unset.
func (r Request) Option(key, fallback string) string {
	if v, ok := r.Spec.Options[key]; ok && v != "" {
		return v
	}
	return fallback
}

// Source reads one batch format (CSV, HTML table, Postgres, ...).
type Source interface {
	Name() string
	Fetch(ctx context.Context, req Request) (domain.Batch, error)
}

// Registry keeps a mapping from format names to their implementations.
type Registry struct {
	sources map[string]Source
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{sources: map[string]Source{}}
}

// Register adds or replaces a source implementation.
func (r *Registry) Register(src Source) {
	if r.sources == nil {
		r.sources = map[string]Source{}
	}
	r.sources[src.Name()] = src
}

// Resolve returns a source by format name or an error if it is absent.
func (r *Registry) Resolve(name string) (Source, error) {
	if src, ok := r.sources[name]; ok {
		return src, nil
	}
	return nil, fmt.Errorf("batch format %q is not registered", name)
}

// Formats lists registered format names in sorted order.
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
