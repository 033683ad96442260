package domain

// RawRecord is one row of a batch as delivered by a source, keyed by column name.
type RawRecord map[string]any

// Batch is one source table of raw records for a language.
type Batch struct {
	Source  string
	Fields  []string
	Records []RawRecord
}

// BatchSpec tells the loader where a batch lives and how to read it.
type BatchSpec struct {
	Format   string
	Location string
	Options  map[string]string
}

// Record is a normalized article ready for filtering and display.
type Record struct {
	ID                string
	Title             string
	Summary           string
	TranslatedSummary string
	Level             Level
	Range             LevelRange
	Link              string
	Language          string
}

// HasTranslation reports whether the record carries a translated summary.
func (r Record) HasTranslation() bool {
	return r.TranslatedSummary != ""
}

// Collection is the set of records loaded for one language selection.
type Collection struct {
	Language string
	Records  []Record
}

// Query describes one search invocation. Nil pointers mean "not set".
type Query struct {
	Topic     string
	Level     *Level
	LowBound  *float64
	HighBound *float64
}

// HasBounds reports whether the query carries any numeric range refinement.
func (q Query) HasBounds() bool {
	return q.LowBound != nil || q.HighBound != nil
}
