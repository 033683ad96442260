package usecase

import (
	"errors"
	"reflect"
	"testing"

	"ArticleBrowser/internal/domain"
)

func TestMergePreservesOrderAndNormalizes(t *testing.T) {
	t.Parallel()

	batches := []domain.Batch{
		{
			Source: "first.csv",
			Fields: []string{"id", "title", "ilr_quantized", "ilr_range"},
			Records: []domain.RawRecord{
				{"id": "a", "title": " Alpha ", "ilr_quantized": "2", "ilr_range": "[1.5, 2.5]"},
				{"title": "Beta", "ilr_quantized": "N/A", "ilr_range": "[3, 1]"},
			},
		},
		{
			Source: "second.csv",
			Fields: []string{"id", "summary", "translated_summary", "english_summary", "link", "language"},
			Records: []domain.RawRecord{
				{"id": "c", "summary": "Gamma", "english_summary": "fallback", "link": "https://example.org/c", "language": "es"},
				{"id": "d", "translated_summary": "primary", "english_summary": "ignored"},
			},
		},
	}

	merger := NewMerger(DefaultFieldMap(), sequentialIDs())
	got, err := merger.Merge("russian", batches)
	if err != nil {
		t.Fatalf("Merge returned error: %v", err)
	}

	if want := []string{"a", "gen-1", "c", "d"}; !reflect.DeepEqual(ids(got.Records), want) {
		t.Fatalf("unexpected order: %v, want %v", ids(got.Records), want)
	}

	a := got.Records[0]
	if a.Title != "Alpha" || a.Level != domain.Level2 || !a.Range.Valid() {
		t.Fatalf("unexpected first record: %+v", a)
	}
	if a.Summary != "" || a.TranslatedSummary != "" || a.Link != "" {
		t.Fatalf("missing text fields must default to empty: %+v", a)
	}
	if a.Language != "russian" {
		t.Fatalf("language must come from the selection, got %q", a.Language)
	}

	b := got.Records[1]
	if b.Level != domain.LevelUnknown || b.Range.Valid() {
		t.Fatalf("malformed level/range must resolve to sentinels: %+v", b)
	}

	if got.Records[2].TranslatedSummary != "fallback" || got.Records[2].Language != "es" {
		t.Fatalf("unexpected third record: %+v", got.Records[2])
	}
	if got.Records[3].TranslatedSummary != "primary" {
		t.Fatalf("primary translated field must win: %+v", got.Records[3])
	}
}

func TestMergeGeneratesUniqueIDs(t *testing.T) {
	t.Parallel()

	batch := domain.Batch{Source: "x", Fields: []string{"title"}}
	for i := 0; i < 100; i++ {
		batch.Records = append(batch.Records, domain.RawRecord{"title": "t"})
	}

	got, err := NewMerger(DefaultFieldMap(), nil).Merge("es", []domain.Batch{batch})
	if err != nil {
		t.Fatalf("Merge returned error: %v", err)
	}

	seen := map[string]bool{}
	for _, rec := range got.Records {
		if rec.ID == "" || seen[rec.ID] {
			t.Fatalf("duplicate or empty id %q", rec.ID)
		}
		seen[rec.ID] = true
	}
}

func TestMergeFailures(t *testing.T) {
	t.Parallel()

	merger := NewMerger(DefaultFieldMap(), nil)

	_, err := merger.Merge("es", nil)
	if !errors.Is(err, domain.ErrNoBatches) {
		t.Fatalf("expected ErrNoBatches, got %v", err)
	}

	got, err := merger.Merge("es", []domain.Batch{
		{Source: "ok", Fields: []string{"title"}, Records: []domain.RawRecord{{"title": "x"}}},
		{Source: "broken"},
	})
	if !errors.Is(err, domain.ErrFetch) {
		t.Fatalf("expected ErrFetch, got %v", err)
	}
	if len(got.Records) != 0 {
		t.Fatalf("failed merge must not expose records, got %d", len(got.Records))
	}
}

func TestMergeNumericFields(t *testing.T) {
	t.Parallel()

	batch := domain.Batch{
		Source: "db",
		Fields: []string{"id", "ilr_quantized", "ilr_range"},
		Records: []domain.RawRecord{
			{"id": int64(42), "ilr_quantized": 3.5, "ilr_range": []float64{3, 4}},
		},
	}

	got, err := NewMerger(DefaultFieldMap(), nil).Merge("es", []domain.Batch{batch})
	if err != nil {
		t.Fatalf("Merge returned error: %v", err)
	}
	rec := got.Records[0]
	if rec.ID != "42" || rec.Level != domain.Level3Plus || !rec.Range.Valid() {
		t.Fatalf("unexpected record: %+v", rec)
	}
}
