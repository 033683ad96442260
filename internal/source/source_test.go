package source

import (
	"context"
	"testing"

	"ArticleBrowser/internal/domain"
)

type stubSource struct{ name string }

func (s stubSource) Name() string { return s.name }

func (s stubSource) Fetch(context.Context, Request) (domain.Batch, error) {
	return domain.Batch{Source: s.name}, nil
}

func TestRegistryResolve(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register(stubSource{name: "csv"})
	reg.Register(stubSource{name: "html"})

	src, err := reg.Resolve("csv")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if src.Name() != "csv" {
		t.Fatalf("unexpected source: %s", src.Name())
	}

	if _, err := reg.Resolve("xlsx"); err == nil {
		t.Fatalf("expected error for unregistered format")
	}

	formats := reg.Formats()
	if len(formats) != 2 || formats[0] != "csv" || formats[1] != "html" {
		t.Fatalf("unexpected formats: %v", formats)
	}
}

func TestRequestOption(t *testing.T) {
	t.Parallel()

	req := Request{Spec: domain.BatchSpec{Options: map[string]string{"table": "news", "empty": ""}}}
	if got := req.Option("table", "articles"); got != "news" {
		t.Fatalf("unexpected option: %s", got)
	}
	if got := req.Option("empty", "fallback"); got != "fallback" {
		t.Fatalf("empty option must fall back, got %s", got)
	}
	if got := req.Option("missing", "fallback"); got != "fallback" {
		t.Fatalf("missing option must fall back, got %s", got)
	}
}
