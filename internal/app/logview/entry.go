package logview

import "time"

// Entry is one record of a log stream
type Entry struct {
	Level     Level
	Timestamp time.Time
	Message   string
	SourceID  int64 // originating run; zero when the stream has none
}

// Column is display metadata for one table column
type Column struct {
	Name    string
	Ordinal int
}

// NewColumns builds ordered columns from their names
func NewColumns(names ...string) []Column {
	columns := make([]Column, len(names))
	for i, name := range names {
		columns[i] = Column{Name: name, Ordinal: i}
	}

	return columns
}

// CellRenderer turns an entry into one rendered cell per column
type CellRenderer func(entry Entry) []string

// Range selects entries by timestamp, inclusive on both ends; nil is unbounded
type Range struct {
	From *time.Time
	To   *time.Time
}

// All is the range covering every entry
func All() Range {
	return Range{}
}

// Between returns the inclusive range between a and b regardless of argument order
func Between(a, b time.Time) Range {
	if b.Before(a) {
		a, b = b, a
	}

	return Range{From: &a, To: &b}
}

// Until returns the range from the beginning of the stream up to t
func Until(t time.Time) Range {
	return Range{To: &t}
}

// Contains reports whether t falls inside the range
func (r Range) Contains(t time.Time) bool {
	if r.From != nil && t.Before(*r.From) {
		return false
	}

	if r.To != nil && t.After(*r.To) {
		return false
	}

	return true
}
