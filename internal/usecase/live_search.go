package usecase

import (
	"ArticleBrowser/internal/domain"
	"ArticleBrowser/internal/ports"
)

// LiveSearch coalesces rapid query edits so only the latest one is applied.
type LiveSearch struct {
	session   *Session
	debouncer ports.Debouncer
	onView    func(domain.View)
}

// NewLiveSearch wires a session to a debouncer; onView receives every recomputed view.
func NewLiveSearch(session *Session, debouncer ports.Debouncer, onView func(domain.View)) *LiveSearch {
	return &LiveSearch{session: session, debouncer: debouncer, onView: onView}
}

// Submit schedules q, superseding any query still waiting for quiescence.
func (l *LiveSearch) Submit(q domain.Query) {
	if l.debouncer == nil {
		l.apply(q)
		return
	}
	l.debouncer.Trigger(func() { l.apply(q) })
}

// Flush applies a pending query immediately.
func (l *LiveSearch) Flush() {
	if l.debouncer != nil {
		l.debouncer.Flush()
	}
}

// Stop drops any pending query.
func (l *LiveSearch) Stop() {
	if l.debouncer != nil {
		l.debouncer.Stop()
	}
}

func (l *LiveSearch) apply(q domain.Query) {
	view := l.session.Search(q)
	if l.onView != nil {
		l.onView(view)
	}
}
