package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"ArticleBrowser/internal/domain"
	"ArticleBrowser/internal/ports"
)

// EnrichOptions tunes the translation backfill.
type EnrichOptions struct {
	SummaryColumn    string
	TranslatedColumn string
	MaxLength        int
	MaxRetries       int
	Backoff          time.Duration
	Pace             time.Duration
	CheckpointEvery  int
}

// DefaultEnrichOptions mirrors the settings the article tables were produced with.
func DefaultEnrichOptions() EnrichOptions {
	return EnrichOptions{
		SummaryColumn:    "summary",
		TranslatedColumn: "translated_summary",
		MaxLength:        150,
		MaxRetries:       5,
		Backoff:          time.Second,
		Pace:             time.Second,
		CheckpointEvery:  10,
	}
}

// EnrichStats summarizes one backfill run.
type EnrichStats struct {
	Total      int
	Skipped    int
	Translated int
	Failed     int
}

// SuccessRate is the share of rows that end the run with a translation.
func (s EnrichStats) SuccessRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Total-s.Failed) / float64(s.Total)
}

// EnricherDeps wires the translators and logger.
type EnricherDeps struct {
	Primary  ports.Translator
	Fallback ports.Translator
	Logger   *slog.Logger
}

// Enricher fills the translated-summary column of an article table.
type Enricher struct {
	primary  ports.Translator
	fallback ports.Translator
	opts     EnrichOptions
	limiter  *rate.Limiter
	logger   *slog.Logger
}

// NewEnricher constructs the backfill use case.
func NewEnricher(deps EnricherDeps, opts EnrichOptions) *Enricher {
	defaults := DefaultEnrichOptions()
	if opts.SummaryColumn == "" {
		opts.SummaryColumn = defaults.SummaryColumn
	}
	if opts.TranslatedColumn == "" {
		opts.TranslatedColumn = defaults.TranslatedColumn
	}
	if opts.MaxLength <= 0 {
		opts.MaxLength = defaults.MaxLength
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = defaults.MaxRetries
	}

	limit := rate.Inf
	if opts.Pace > 0 {
		limit = rate.Every(opts.Pace)
	}

	return &Enricher{
		primary:  deps.Primary,
		fallback: deps.Fallback,
		opts:     opts,
		limiter:  rate.NewLimiter(limit, 1),
		logger:   deps.Logger,
	}
}

// Run translates every row whose translated column is empty. checkpoint, when
// non-nil, receives the table every CheckpointEvery processed rows.
func (e *Enricher) Run(ctx context.Context, table *domain.Table, checkpoint func(*domain.Table) error) (EnrichStats, error) {
	if e.primary == nil && e.fallback == nil {
		return EnrichStats{}, errors.New("no translator configured")
	}

	summaryCol := table.Column(e.opts.SummaryColumn)
	if summaryCol < 0 {
		return EnrichStats{}, fmt.Errorf("column %q not found", e.opts.SummaryColumn)
	}
	translatedCol := table.EnsureColumn(e.opts.TranslatedColumn)

	stats := EnrichStats{Total: len(table.Rows)}
	processed := 0
	for row := range table.Rows {
		if strings.TrimSpace(table.Cell(row, translatedCol)) != "" {
			stats.Skipped++
			continue
		}

		source := TruncateText(strings.TrimSpace(table.Cell(row, summaryCol)), e.opts.MaxLength)
		if source == "" {
			stats.Skipped++
			continue
		}

		if err := e.limiter.Wait(ctx); err != nil {
			return stats, fmt.Errorf("row %d: %w", row, err)
		}

		translated, err := e.translate(ctx, row, source)
		switch {
		case ctx.Err() != nil:
			return stats, ctx.Err()
		case err != nil:
			stats.Failed++
			e.log(slog.LevelWarn, "translation failed", "row", row, "error", err)
		default:
			table.SetCell(row, translatedCol, TruncateText(translated, e.opts.MaxLength))
			stats.Translated++
			e.log(slog.LevelDebug, "row translated", "row", row)
		}

		processed++
		if checkpoint != nil && e.opts.CheckpointEvery > 0 && processed%e.opts.CheckpointEvery == 0 {
			if err := checkpoint(table); err != nil {
				return stats, fmt.Errorf("checkpoint at row %d: %w", row, err)
			}
			e.log(slog.LevelInfo, "checkpoint saved", "row", row)
		}
	}

	e.log(slog.LevelInfo, "enrichment finished",
		"total", stats.Total,
		"translated", stats.Translated,
		"skipped", stats.Skipped,
		"failed", stats.Failed,
	)
	return stats, nil
}

func (e *Enricher) translate(ctx context.Context, row int, text string) (string, error) {
	var errs []error
	for _, t := range []ports.Translator{e.primary, e.fallback} {
		if t == nil {
			continue
		}
		out, err := e.withBackoff(ctx, t, text)
		if err == nil {
			return out, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", t.Name(), err))
		if ctx.Err() != nil {
			break
		}
		e.log(slog.LevelWarn, "translator exhausted retries", "row", row, "translator", t.Name())
	}
	return "", errors.Join(errs...)
}

func (e *Enricher) withBackoff(ctx context.Context, t ports.Translator, text string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < e.opts.MaxRetries; attempt++ {
		out, err := t.Translate(ctx, text)
		if err == nil {
			return out, nil
		}
		lastErr = err
		e.log(slog.LevelDebug, "translation attempt failed", "translator", t.Name(), "attempt", attempt+1, "error", err)

		if attempt == e.opts.MaxRetries-1 {
			break
		}
		timer := time.NewTimer(e.opts.Backoff << attempt)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", ctx.Err()
		case <-timer.C:
		}
	}
	return "", fmt.Errorf("after %d attempts: %w", e.opts.MaxRetries, lastErr)
}

func (e *Enricher) log(level slog.Level, msg string, args ...any) {
	if e.logger != nil {
		e.logger.Log(context.Background(), level, msg, args...)
	}
}

// TruncateText cuts text to at most maxLen runes, backing up to the last
// space and appending "...". Shorter text is returned unchanged.
func TruncateText(text string, maxLen int) string {
	runes := []rune(text)
	if maxLen <= 0 || len(runes) <= maxLen {
		return text
	}
	cut := string(runes[:maxLen])
	if idx := strings.LastIndex(cut, " "); idx >= 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}
