package logview

import (
	"strings"

	"logpane/internal/app/errors"
)

// Level is the ordered severity of a log entry, least severe first
type Level int

// Severity levels
const (
	Trace Level = iota
	Debug
	Info
	Warn
	Error
)

// level glyphs, one per severity in filter order
const (
	glyphTrace = "·"
	glyphDebug = "○"
	glyphInfo  = "●"
	glyphWarn  = "▲"
	glyphError = "✖"
)

var levelLabels = [...]string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR"}

var levelGlyphs = [...]string{glyphTrace, glyphDebug, glyphInfo, glyphWarn, glyphError}

// Levels returns every level from least to most severe
func Levels() []Level {
	return []Level{Trace, Debug, Info, Warn, Error}
}

// Valid reports whether l is one of the five known levels
func (l Level) Valid() bool {
	return l >= Trace && l <= Error
}

// Clamp maps out-of-range values onto the nearest known level
func (l Level) Clamp() Level {
	switch {
	case l < Trace:
		return Trace
	case l > Error:
		return Error
	default:
		return l
	}
}

// String returns the upper-case label of the level
func (l Level) String() string {
	return levelLabels[l.Clamp()]
}

// Glyph returns the single-character icon of the level
func (l Level) Glyph() string {
	return levelGlyphs[l.Clamp()]
}

// Next returns the next more severe level, saturating at Error
func (l Level) Next() Level {
	return (l + 1).Clamp()
}

// Prev returns the next less severe level, saturating at Trace
func (l Level) Prev() Level {
	return (l - 1).Clamp()
}

// ParseLevel converts a level name (case-insensitive, common aliases allowed) to a Level
func ParseLevel(name string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "TRACE", "TRC":
		return Trace, nil
	case "DEBUG", "DBG":
		return Debug, nil
	case "INFO", "INF":
		return Info, nil
	case "WARN", "WARNING", "WRN":
		return Warn, nil
	case "ERROR", "ERR":
		return Error, nil
	default:
		return Trace, errors.ErrInvalidLevel
	}
}
