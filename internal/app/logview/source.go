//go:generate mockgen -source=source.go -destination=source_mock.go -package=logview
package logview

import "context"

// Source is the data-source contract the engine reads logs through
type Source interface {
	// Count returns the number of entries with level >= minLevel
	Count(ctx context.Context, minLevel Level) (int, error)
	// FetchPage returns the chronologically ordered entries of one page for the filter
	FetchPage(ctx context.Context, minLevel Level, page, size int) ([]Entry, error)
}

// Deleter is the optional capability of removing a range of entries from the source
type Deleter interface {
	DeleteRange(ctx context.Context, r Range) error
}
