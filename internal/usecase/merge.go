package usecase

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"ArticleBrowser/internal/domain"
)

// FieldMap names the raw columns each Record field is read from.
type FieldMap struct {
	ID                string
	Title             string
	Summary           string
	TranslatedSummary []string
	Level             string
	Range             string
	Link              string
	Language          string
}

// DefaultFieldMap matches the column names of the published article tables.
func DefaultFieldMap() FieldMap {
	return FieldMap{
		ID:                "id",
		Title:             "title",
		Summary:           "summary",
		TranslatedSummary: []string{"translated_summary", "english_summary"},
		Level:             "ilr_quantized",
		Range:             "ilr_range",
		Link:              "link",
		Language:          "language",
	}
}

// IDGenerator produces identifiers for records that arrive without one.
type IDGenerator func() string

// Merger concatenates raw batches and normalizes every record.
type Merger struct {
	fields FieldMap
	newID  IDGenerator
}

// NewMerger wires a field map; newID defaults to random UUIDs.
func NewMerger(fields FieldMap, newID IDGenerator) *Merger {
	if newID == nil {
		newID = uuid.NewString
	}
	return &Merger{fields: fields, newID: newID}
}

// Merge returns the complete normalized collection, or an error and no records.
// Batch order and row order within a batch are preserved.
func (m *Merger) Merge(language string, batches []domain.Batch) (domain.Collection, error) {
	if len(batches) == 0 {
		return domain.Collection{}, &domain.LoadError{Language: language, Err: domain.ErrNoBatches}
	}

	total := 0
	for i, batch := range batches {
		if len(batch.Fields) == 0 {
			return domain.Collection{}, domain.NewFetchError(language, fmt.Errorf("batch %d (%s) has no columns", i, batch.Source))
		}
		total += len(batch.Records)
	}

	records := make([]domain.Record, 0, total)
	for _, batch := range batches {
		for _, raw := range batch.Records {
			records = append(records, m.normalize(language, raw))
		}
	}

	return domain.Collection{Language: language, Records: records}, nil
}

func (m *Merger) normalize(language string, raw domain.RawRecord) domain.Record {
	rng, _ := domain.ParseLevelRange(raw[m.fields.Range])

	rec := domain.Record{
		ID:                textField(raw, m.fields.ID),
		Title:             textField(raw, m.fields.Title),
		Summary:           textField(raw, m.fields.Summary),
		TranslatedSummary: firstText(raw, m.fields.TranslatedSummary),
		Level:             domain.NormalizeLevel(raw[m.fields.Level]),
		Range:             rng,
		Link:              textField(raw, m.fields.Link),
		Language:          textField(raw, m.fields.Language),
	}
	if rec.ID == "" {
		rec.ID = m.newID()
	}
	if rec.Language == "" {
		rec.Language = language
	}
	return rec
}

func firstText(raw domain.RawRecord, keys []string) string {
	for _, key := range keys {
		if v := textField(raw, key); v != "" {
			return v
		}
	}
	return ""
}

func textField(raw domain.RawRecord, key string) string {
	if key == "" {
		return ""
	}
	switch v := raw[key].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case []byte:
		return strings.TrimSpace(string(v))
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
