package usecase

import (
	"context"
	"errors"
	"testing"

	"ArticleBrowser/internal/domain"
)

type staticCatalog map[string][]domain.BatchSpec

func (c staticCatalog) Languages() []string {
	out := make([]string, 0, len(c))
	for k := range c {
		out = append(out, k)
	}
	return out
}

func (c staticCatalog) Batches(language string) []domain.BatchSpec {
	return c[language]
}

type fakeFetcher struct {
	batches []domain.Batch
	err     error
	calls   int
}

func (f *fakeFetcher) FetchAll(context.Context, string, []domain.BatchSpec) ([]domain.Batch, error) {
	f.calls++
	return f.batches, f.err
}

func TestLoaderLoad(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{batches: []domain.Batch{
		{Source: "a.csv", Fields: []string{"title"}, Records: []domain.RawRecord{{"title": "one"}}},
		{Source: "b.csv", Fields: []string{"title"}, Records: []domain.RawRecord{{"title": "two"}}},
	}}
	loader := NewLoader(LoaderDeps{
		Catalog: staticCatalog{"spanish": {{Format: "csv", Location: "a.csv"}, {Format: "csv", Location: "b.csv"}}},
		Fetcher: fetcher,
	})

	got, err := loader.Load(context.Background(), "spanish")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got.Language != "spanish" || len(got.Records) != 2 || got.Records[1].Title != "two" {
		t.Fatalf("unexpected collection: %+v", got)
	}
}

func TestLoaderNoBatches(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{}
	loader := NewLoader(LoaderDeps{Catalog: staticCatalog{"spanish": nil}, Fetcher: fetcher})

	_, err := loader.Load(context.Background(), "spanish")
	var loadErr *domain.LoadError
	if !errors.As(err, &loadErr) || !errors.Is(err, domain.ErrNoBatches) {
		t.Fatalf("expected no-batches load error, got %v", err)
	}
	if loadErr.Language != "spanish" {
		t.Fatalf("unexpected language in error: %s", loadErr.Language)
	}
	if fetcher.calls != 0 {
		t.Fatalf("fetcher must not be called without batches")
	}
}

func TestLoaderFetchFailure(t *testing.T) {
	t.Parallel()

	loader := NewLoader(LoaderDeps{
		Catalog: staticCatalog{"russian": {{Format: "csv", Location: "missing.csv"}}},
		Fetcher: &fakeFetcher{err: errors.New("connection refused")},
	})

	got, err := loader.Load(context.Background(), "russian")
	if !errors.Is(err, domain.ErrFetch) {
		t.Fatalf("expected fetch error, got %v", err)
	}
	if len(got.Records) != 0 {
		t.Fatalf("failed load must not return records")
	}
}
