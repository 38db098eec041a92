package report

import (
	"context"
	"slices"
	"sync"

	"logpane/internal/app/logview"
)

// Column names of the report log table
const (
	ColumnLevel     = "Level"
	ColumnTimestamp = "Timestamp"
	ColumnMessage   = "Message"
)

// Columns returns the display columns of a report log
func Columns() []logview.Column {
	return logview.NewColumns(ColumnLevel, ColumnTimestamp, ColumnMessage)
}

// Source is an in-memory, read-only log stream. Entries may be swapped while the stream is viewed.
type Source struct {
	mu      sync.RWMutex
	entries []logview.Entry
}

// NewSource creates a source over entries, which are ordered by timestamp
func NewSource(entries []logview.Entry) *Source {
	s := &Source{}
	s.Replace(entries)

	return s
}

// Replace swaps the whole stream
func (s *Source) Replace(entries []logview.Entry) {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b logview.Entry) int {
		return a.Timestamp.Compare(b.Timestamp)
	})

	s.mu.Lock()
	s.entries = sorted
	s.mu.Unlock()
}

// Len returns the number of entries regardless of level
func (s *Source) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}

// Count returns the number of entries at minLevel or above
func (s *Source) Count(ctx context.Context, minLevel logview.Level) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0

	for _, e := range s.entries {
		if e.Level >= minLevel {
			count++
		}
	}

	return count, nil
}

// FetchPage returns the page'th slice of size entries at minLevel or above
func (s *Source) FetchPage(ctx context.Context, minLevel logview.Level, page, size int) ([]logview.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	skip := page * size
	rows := make([]logview.Entry, 0, size)

	for _, e := range s.entries {
		if e.Level < minLevel {
			continue
		}

		if skip > 0 {
			skip--
			continue
		}

		rows = append(rows, e)
		if len(rows) == size {
			break
		}
	}

	return rows, nil
}
