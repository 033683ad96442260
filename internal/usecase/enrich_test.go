package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ArticleBrowser/internal/domain"
)

type scriptedTranslator struct {
	name     string
	failures int
	calls    int
}

func (s *scriptedTranslator) Name() string { return s.name }

func (s *scriptedTranslator) Translate(_ context.Context, text string) (string, error) {
	s.calls++
	if s.calls <= s.failures {
		return "", errors.New("rate limited")
	}
	return s.name + ":" + text, nil
}

func fastOptions() EnrichOptions {
	opts := DefaultEnrichOptions()
	opts.Backoff = 0
	opts.Pace = 0
	return opts
}

func TestEnricherFillsMissingTranslations(t *testing.T) {
	t.Parallel()

	table := &domain.Table{
		Header: []string{"title", "summary", "translated_summary"},
		Rows: [][]string{
			{"a", "hola mundo", ""},
			{"b", "ya traducido", "already"},
			{"c", "", ""},
			{"d", "adiós"},
		},
	}

	primary := &scriptedTranslator{name: "primary"}
	enricher := NewEnricher(EnricherDeps{Primary: primary}, fastOptions())

	stats, err := enricher.Run(context.Background(), table, nil)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if stats.Total != 4 || stats.Translated != 2 || stats.Skipped != 2 || stats.Failed != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if table.Rows[0][2] != "primary:hola mundo" || table.Rows[1][2] != "already" || table.Cell(3, 2) != "primary:adiós" {
		t.Fatalf("unexpected table: %v", table.Rows)
	}
	if stats.SuccessRate() != 1 {
		t.Fatalf("unexpected success rate: %v", stats.SuccessRate())
	}
}

func TestEnricherRetriesThenFallsBack(t *testing.T) {
	t.Parallel()

	table := &domain.Table{Header: []string{"summary"}, Rows: [][]string{{"texto"}}}
	primary := &scriptedTranslator{name: "primary", failures: 100}
	fallback := &scriptedTranslator{name: "fallback", failures: 2}

	opts := fastOptions()
	opts.MaxRetries = 3
	stats, err := NewEnricher(EnricherDeps{Primary: primary, Fallback: fallback}, opts).Run(context.Background(), table, nil)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if primary.calls != 3 || fallback.calls != 3 {
		t.Fatalf("unexpected attempts: primary=%d fallback=%d", primary.calls, fallback.calls)
	}
	if stats.Translated != 1 || table.Rows[0][1] != "fallback:texto" {
		t.Fatalf("unexpected result: %+v %v", stats, table.Rows)
	}
}

func TestEnricherCountsFailures(t *testing.T) {
	t.Parallel()

	table := &domain.Table{Header: []string{"summary", "translated_summary"}, Rows: [][]string{{"uno", ""}, {"dos", ""}}}
	primary := &scriptedTranslator{name: "primary", failures: 100}

	opts := fastOptions()
	opts.MaxRetries = 2
	stats, err := NewEnricher(EnricherDeps{Primary: primary}, opts).Run(context.Background(), table, nil)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if stats.Failed != 2 || stats.SuccessRate() != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if table.Rows[0][1] != "" {
		t.Fatalf("failed rows must stay empty, got %q", table.Rows[0][1])
	}
}

func TestEnricherCheckpoints(t *testing.T) {
	t.Parallel()

	table := &domain.Table{Header: []string{"summary"}}
	for i := 0; i < 25; i++ {
		table.Rows = append(table.Rows, []string{"texto"})
	}

	var saved []int
	checkpoint := func(tb *domain.Table) error {
		filled := 0
		for i := range tb.Rows {
			if tb.Cell(i, 1) != "" {
				filled++
			}
		}
		saved = append(saved, filled)
		return nil
	}

	_, err := NewEnricher(EnricherDeps{Primary: &scriptedTranslator{name: "p"}}, fastOptions()).Run(context.Background(), table, checkpoint)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(saved) != 2 || saved[0] != 10 || saved[1] != 20 {
		t.Fatalf("unexpected checkpoints: %v", saved)
	}
}

func TestEnricherRequiresSummaryColumn(t *testing.T) {
	t.Parallel()

	table := &domain.Table{Header: []string{"title"}, Rows: [][]string{{"x"}}}
	_, err := NewEnricher(EnricherDeps{Primary: &scriptedTranslator{name: "p"}}, fastOptions()).Run(context.Background(), table, nil)
	if err == nil {
		t.Fatalf("expected error for missing summary column")
	}
}

func TestTruncateText(t *testing.T) {
	t.Parallel()

	if got := TruncateText("short", 150); got != "short" {
		t.Fatalf("unexpected: %q", got)
	}

	long := strings.Repeat("palabra ", 30)
	got := TruncateText(long, 150)
	if !strings.HasSuffix(got, "...") || len([]rune(got)) > 153 {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if body := strings.TrimSuffix(got, "..."); !strings.HasSuffix(body, "palabra") {
		t.Fatalf("truncation must end on a word boundary: %q", got)
	}

	if got := TruncateText("ñandúñandú", 4); got != "ñand..." {
		t.Fatalf("rune-aware truncation without spaces failed: %q", got)
	}
}
