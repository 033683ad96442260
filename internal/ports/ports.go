package ports

import (
	"context"

	"ArticleBrowser/internal/domain"
)

// LanguageCatalog maps language keys to the batches that make up their collection.
type LanguageCatalog interface {
	Languages() []string
	Batches(language string) []domain.BatchSpec
}

// BatchFetcher pulls and parses every batch of a language, preserving catalog order.
type BatchFetcher interface {
	FetchAll(ctx context.Context, language string, specs []domain.BatchSpec) ([]domain.Batch, error)
}

// Renderer consumes the current page and metadata; it never feeds anything back.
type Renderer interface {
	Render(view domain.View) error
}

// Notifier delivers transient messages to the user.
type Notifier interface {
	Notify(n domain.Notification)
}

// PreferenceStore persists the dark-mode preference between runs.
type PreferenceStore interface {
	DarkMode() (bool, error)
	SetDarkMode(enabled bool) error
}

// Translator turns source-language text into the target language.
type Translator interface {
	Name() string
	Translate(ctx context.Context, text string) (string, error)
}

// Debouncer coalesces a rapid stream of triggers into one call after quiescence.
type Debouncer interface {
	Trigger(fn func())
	Flush()
	Stop()
}
