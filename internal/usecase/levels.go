package usecase

import (
	"fmt"
	"slices"
	"strings"

	"ArticleBrowser/internal/domain"
)

// CatalogMode selects how the level dropdown is populated.
type CatalogMode string

const (
	CatalogFixed    CatalogMode = "fixed"
	CatalogObserved CatalogMode = "observed"
)

// AllLevelsLabel is the wildcard entry shown first in every catalog.
const AllLevelsLabel = "All Levels"

// ParseCatalogMode accepts "fixed" or "observed"; empty means observed.
func ParseCatalogMode(value string) (CatalogMode, error) {
	switch CatalogMode(strings.ToLower(strings.TrimSpace(value))) {
	case "", CatalogObserved:
		return CatalogObserved, nil
	case CatalogFixed:
		return CatalogFixed, nil
	default:
		return CatalogObserved, fmt.Errorf("unknown level catalog mode %q", value)
	}
}

// LevelCatalog lists the selectable levels. Fixed mode always exposes the
// eight canonical levels; observed mode lists the distinct levels present in
// records in ascending order, with unknown last.
func LevelCatalog(mode CatalogMode, records []domain.Record) []domain.LevelOption {
	var levels []domain.Level
	if mode == CatalogFixed {
		levels = domain.Levels()
	} else {
		seen := map[domain.Level]struct{}{}
		for _, rec := range records {
			if _, ok := seen[rec.Level]; ok {
				continue
			}
			seen[rec.Level] = struct{}{}
			levels = append(levels, rec.Level)
		}
		slices.SortFunc(levels, compareLevels)
	}

	options := make([]domain.LevelOption, 0, len(levels)+1)
	options = append(options, domain.LevelOption{Label: AllLevelsLabel})
	for _, l := range levels {
		l := l
		options = append(options, domain.LevelOption{Label: l.String(), Level: &l})
	}
	return options
}

func compareLevels(a, b domain.Level) int {
	av, aok := a.Value()
	bv, bok := b.Value()
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return 1
	case !bok:
		return -1
	case av < bv:
		return -1
	case av > bv:
		return 1
	default:
		return 0
	}
}
