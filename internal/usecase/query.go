package usecase

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"ArticleBrowser/internal/domain"
)

// RangePolicy decides what happens to records without a valid range when the query carries bounds.
type RangePolicy int

const (
	// RangeStrict excludes records lacking a valid range once any bound is supplied.
	RangeStrict RangePolicy = iota
	// RangePermissive keeps records lacking a valid range regardless of bounds.
	RangePermissive
)

// ParseRangePolicy accepts "strict" or "permissive"; empty means strict.
func ParseRangePolicy(value string) (RangePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "strict":
		return RangeStrict, nil
	case "permissive":
		return RangePermissive, nil
	default:
		return RangeStrict, fmt.Errorf("unknown range policy %q", value)
	}
}

func (p RangePolicy) String() string {
	if p == RangePermissive {
		return "permissive"
	}
	return "strict"
}

// Filter selects the records matching q and orders them: records with a
// translated summary first, input order kept within each group.
// It never mutates records and carries no state between calls.
func Filter(records []domain.Record, q domain.Query, policy RangePolicy) []domain.Record {
	fold := cases.Fold()
	topic := fold.String(strings.TrimSpace(q.Topic))

	translated := make([]domain.Record, 0, len(records))
	var rest []domain.Record
	for _, rec := range records {
		if !matchesTopic(fold, rec, topic) || !matchesLevel(rec, q.Level) || !rangeAllows(rec.Range, q, policy) {
			continue
		}
		if rec.HasTranslation() {
			translated = append(translated, rec)
		} else {
			rest = append(rest, rec)
		}
	}

	return append(translated, rest...)
}

func matchesTopic(fold cases.Caser, rec domain.Record, topic string) bool {
	if topic == "" {
		return true
	}
	for _, text := range [...]string{rec.Title, rec.Summary, rec.TranslatedSummary} {
		if text != "" && strings.Contains(fold.String(text), topic) {
			return true
		}
	}
	return false
}

func matchesLevel(rec domain.Record, level *domain.Level) bool {
	return level == nil || rec.Level == *level
}

func rangeAllows(r domain.LevelRange, q domain.Query, policy RangePolicy) bool {
	if !q.HasBounds() {
		return true
	}
	low, high, ok := r.Bounds()
	if !ok {
		return policy == RangePermissive
	}
	if q.LowBound != nil && low < *q.LowBound {
		return false
	}
	if q.HighBound != nil && high > *q.HighBound {
		return false
	}
	return true
}

// ParseLevelFilter reads a level filter from user input; "" and "all" clear it.
func ParseLevelFilter(value string) (*domain.Level, error) {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "all") {
		return nil, nil
	}
	if strings.EqualFold(value, domain.UnknownToken) {
		l := domain.LevelUnknown
		return &l, nil
	}
	l := domain.NormalizeLevel(value)
	if !l.Known() {
		return nil, fmt.Errorf("unknown level %q", value)
	}
	return &l, nil
}

// ParseBound reads an optional numeric bound; "" and "-" clear it.
func ParseBound(value string) (*float64, error) {
	value = strings.TrimSpace(value)
	if value == "" || value == "-" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid bound %q: %w", value, err)
	}
	if f < domain.MinRangeBound || f > domain.MaxRangeBound {
		return nil, fmt.Errorf("bound %v outside [%v, %v]", f, domain.MinRangeBound, domain.MaxRangeBound)
	}
	return &f, nil
}
