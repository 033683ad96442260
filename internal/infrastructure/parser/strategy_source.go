package parser

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"ArticleBrowser/internal/domain"
	"ArticleBrowser/internal/ports"
	"ArticleBrowser/internal/source"
)

const defaultFetchConcurrency = 4

// StrategySource implements BatchFetcher via registered format strategies.
type StrategySource struct {
	registry    *source.Registry
	concurrency int
	logger      *slog.Logger
}

var _ ports.BatchFetcher = (*StrategySource)(nil)

// NewStrategySource wires the format registry; concurrency <= 0 uses a default of 4.
func NewStrategySource(reg *source.Registry, concurrency int, log *slog.Logger) *StrategySource {
	if concurrency <= 0 {
		concurrency = defaultFetchConcurrency
	}
	return &StrategySource{
		registry:    reg,
		concurrency: concurrency,
		logger:      log,
	}
}

// FetchAll fetches every spec, at most concurrency at a time. The result keeps
// catalog order; the first failure cancels the rest and is returned.
func (s *StrategySource) FetchAll(ctx context.Context, language string, specs []domain.BatchSpec) ([]domain.Batch, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("source registry is not configured")
	}

	strategies := make([]source.Source, len(specs))
	for i, spec := range specs {
		strategy, err := s.registry.Resolve(spec.Format)
		if err != nil {
			return nil, fmt.Errorf("batch %d: %w", i, err)
		}
		strategies[i] = strategy
	}

	s.debug("fetch batches", "language", language, "batches", len(specs))

	batches := make([]domain.Batch, len(specs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, spec := range specs {
		i, spec := i, spec
		g.Go(func() error {
			batch, err := strategies[i].Fetch(gctx, source.Request{Language: language, Spec: spec})
			if err != nil {
				return fmt.Errorf("batch %d (%s %s): %w", i, spec.Format, spec.Location, err)
			}
			s.debug("batch fetched", "language", language, "location", spec.Location, "records", len(batch.Records))
			batches[i] = batch
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return batches, nil
}

func (s *StrategySource) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
