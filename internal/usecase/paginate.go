package usecase

import "ArticleBrowser/internal/domain"

// DefaultPageSize is the number of records per page unless configured otherwise.
const DefaultPageSize = 50

// TotalPages is ceil(total / size); zero records give zero pages.
func TotalPages(total, size int) int {
	if total <= 0 {
		return 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	return (total + size - 1) / size
}

// Paginate returns the 1-indexed page of records. Pages outside
// [1, TotalPages] come back with no records rather than an error.
func Paginate(records []domain.Record, page, size int) domain.Page {
	if size <= 0 {
		size = DefaultPageSize
	}

	p := domain.Page{
		Number:     page,
		Size:       size,
		Total:      len(records),
		TotalPages: TotalPages(len(records), size),
		Records:    []domain.Record{},
	}
	if page < 1 || page > p.TotalPages {
		return p
	}

	start := (page - 1) * size
	end := min(start+size, len(records))
	p.Records = records[start:end:end]
	return p
}
