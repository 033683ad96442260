package usecase

import (
	"fmt"

	"ArticleBrowser/internal/domain"
)

func record(id, level string, translated bool) domain.Record {
	rec := domain.Record{
		ID:      id,
		Title:   "Title " + id,
		Summary: "Summary " + id,
		Level:   domain.NormalizeLevel(level),
	}
	if translated {
		rec.TranslatedSummary = "Translated " + id
	}
	return rec
}

func withRange(rec domain.Record, raw string) domain.Record {
	rec.Range, _ = domain.ParseLevelRange(raw)
	return rec
}

func numbered(n int) []domain.Record {
	out := make([]domain.Record, n)
	for i := range out {
		out[i] = record(fmt.Sprintf("r%03d", i+1), "2.0", false)
	}
	return out
}

func ids(records []domain.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func ptr[T any](v T) *T {
	return &v
}

func sequentialIDs() IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("gen-%d", n)
	}
}
