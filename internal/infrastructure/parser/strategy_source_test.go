package parser

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"ArticleBrowser/internal/domain"
	"ArticleBrowser/internal/source"
)

type delayedSource struct {
	running atomic.Int32
	peak    atomic.Int32
}

func (d *delayedSource) Name() string { return "fake" }

func (d *delayedSource) Fetch(ctx context.Context, req source.Request) (domain.Batch, error) {
	n := d.running.Add(1)
	defer d.running.Add(-1)
	for {
		peak := d.peak.Load()
		if n <= peak || d.peak.CompareAndSwap(peak, n) {
			break
		}
	}

	if req.Spec.Location == "broken" {
		return domain.Batch{}, errors.New("boom")
	}

	// Earlier specs finish later so ordering cannot come from completion order.
	delay := time.Duration(10-len(req.Spec.Location)) * time.Millisecond
	select {
	case <-ctx.Done():
		return domain.Batch{}, ctx.Err()
	case <-time.After(delay):
	}
	return domain.Batch{Source: req.Spec.Location, Fields: []string{"title"}}, nil
}

func TestStrategySourceKeepsSpecOrder(t *testing.T) {
	t.Parallel()

	fake := &delayedSource{}
	reg := source.NewRegistry()
	reg.Register(fake)

	specs := []domain.BatchSpec{
		{Format: "fake", Location: "a"},
		{Format: "fake", Location: "bb"},
		{Format: "fake", Location: "ccc"},
		{Format: "fake", Location: "dddd"},
	}

	batches, err := NewStrategySource(reg, 2, nil).FetchAll(context.Background(), "spanish", specs)
	if err != nil {
		t.Fatalf("FetchAll error: %v", err)
	}
	for i, b := range batches {
		if b.Source != specs[i].Location {
			t.Fatalf("batch %d out of order: %s", i, b.Source)
		}
	}
	if fake.peak.Load() > 2 {
		t.Fatalf("concurrency limit exceeded: %d", fake.peak.Load())
	}
}

func TestStrategySourceFailures(t *testing.T) {
	t.Parallel()

	reg := source.NewRegistry()
	reg.Register(&delayedSource{})
	fetcher := NewStrategySource(reg, 0, nil)

	_, err := fetcher.FetchAll(context.Background(), "es", []domain.BatchSpec{{Format: "fake", Location: "a"}, {Format: "fake", Location: "broken"}})
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected batch failure, got %v", err)
	}

	_, err = fetcher.FetchAll(context.Background(), "es", []domain.BatchSpec{{Format: "xlsx", Location: "a"}})
	if err == nil || !strings.Contains(err.Error(), "not registered") {
		t.Fatalf("expected unknown format error, got %v", err)
	}
}
