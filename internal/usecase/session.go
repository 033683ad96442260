package usecase

import (
	"sync"

	"ArticleBrowser/internal/domain"
)

// SessionOptions fixes the per-deployment behavior of a session.
type SessionOptions struct {
	PageSize    int
	CatalogMode CatalogMode
	RangePolicy RangePolicy
}

// Session is the in-memory browsing state: the active collection, the
// current query, its filtered view and the current page. The filtered view is
// always recomputed from the collection, never edited in place.
type Session struct {
	mu         sync.RWMutex
	opts       SessionOptions
	collection domain.Collection
	levels     []domain.LevelOption
	query      domain.Query
	filtered   []domain.Record
	page       int
}

// NewSession builds an empty session.
func NewSession(opts SessionOptions) *Session {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.CatalogMode == "" {
		opts.CatalogMode = CatalogObserved
	}
	return &Session{
		opts:   opts,
		levels: LevelCatalog(opts.CatalogMode, nil),
		page:   1,
	}
}

// Install replaces the active collection wholesale and clears the query.
func (s *Session) Install(c domain.Collection) domain.View {
	levels := LevelCatalog(s.opts.CatalogMode, c.Records)
	filtered := Filter(c.Records, domain.Query{}, s.opts.RangePolicy)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.collection = c
	s.levels = levels
	s.query = domain.Query{}
	s.filtered = filtered
	s.page = 1
	return s.viewLocked()
}

// Search recomputes the filtered view for q and returns to the first page.
func (s *Session) Search(q domain.Query) domain.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = q
	s.filtered = Filter(s.collection.Records, q, s.opts.RangePolicy)
	s.page = 1
	return s.viewLocked()
}

// Next advances one page; it reports false and changes nothing at the last page.
func (s *Session) Next() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.goToLocked(s.page + 1)
}

// Prev goes back one page; it reports false and changes nothing at the first page.
func (s *Session) Prev() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.goToLocked(s.page - 1)
}

// GoTo jumps to page n and reports whether the page changed; out-of-range requests are ignored.
func (s *Session) GoTo(n int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.goToLocked(n)
}

// View returns the current page and metadata.
func (s *Session) View() domain.View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewLocked()
}

// Query returns the query currently applied.
func (s *Session) Query() domain.Query {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// Language returns the language of the active collection, or "".
func (s *Session) Language() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collection.Language
}

// Filtered returns a copy of the full filtered sequence.
func (s *Session) Filtered() []domain.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Record, len(s.filtered))
	copy(out, s.filtered)
	return out
}

func (s *Session) goToLocked(n int) bool {
	if n < 1 || n > TotalPages(len(s.filtered), s.opts.PageSize) || n == s.page {
		return false
	}
	s.page = n
	return true
}

func (s *Session) viewLocked() domain.View {
	return domain.View{
		Language: s.collection.Language,
		Query:    s.query,
		Page:     Paginate(s.filtered, s.page, s.opts.PageSize),
		Levels:   s.levels,
	}
}
