package usecase

import (
	"context"
	"errors"
	"log/slog"

	"ArticleBrowser/internal/domain"
	"ArticleBrowser/internal/ports"
)

// LoaderDeps wires the driven adapters used to build a collection.
type LoaderDeps struct {
	Catalog ports.LanguageCatalog
	Fetcher ports.BatchFetcher
	Merger  *Merger
	Logger  *slog.Logger
}

// Loader turns a language selection into a normalized collection.
type Loader struct {
	catalog ports.LanguageCatalog
	fetcher ports.BatchFetcher
	merger  *Merger
	logger  *slog.Logger
}

// NewLoader constructs the load use case; a nil merger uses the default field map.
func NewLoader(deps LoaderDeps) *Loader {
	merger := deps.Merger
	if merger == nil {
		merger = NewMerger(DefaultFieldMap(), nil)
	}
	return &Loader{
		catalog: deps.Catalog,
		fetcher: deps.Fetcher,
		merger:  merger,
		logger:  deps.Logger,
	}
}

// Languages lists the selectable language keys.
func (l *Loader) Languages() []string {
	if l.catalog == nil {
		return nil
	}
	return l.catalog.Languages()
}

// Load fetches every batch of language and merges them. It returns either the
// complete collection or a *domain.LoadError, never a partial collection.
func (l *Loader) Load(ctx context.Context, language string) (domain.Collection, error) {
	var specs []domain.BatchSpec
	if l.catalog != nil {
		specs = l.catalog.Batches(language)
	}
	if len(specs) == 0 {
		return domain.Collection{}, &domain.LoadError{Language: language, Err: domain.ErrNoBatches}
	}
	if l.fetcher == nil {
		return domain.Collection{}, domain.NewFetchError(language, errors.New("no batch fetcher configured"))
	}

	l.debug("load language", "language", language, "batches", len(specs))

	batches, err := l.fetcher.FetchAll(ctx, language, specs)
	if err != nil {
		var loadErr *domain.LoadError
		if errors.As(err, &loadErr) {
			return domain.Collection{}, err
		}
		return domain.Collection{}, domain.NewFetchError(language, err)
	}

	collection, err := l.merger.Merge(language, batches)
	if err != nil {
		return domain.Collection{}, err
	}

	l.debug("language loaded", "language", language, "records", len(collection.Records))
	return collection, nil
}

func (l *Loader) debug(msg string, args ...interface{}) {
	if l.logger != nil {
		l.logger.Debug(msg, args...)
	}
}
