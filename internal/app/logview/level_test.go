package logview

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"logpane/internal/app/errors"
	"logpane/internal/config"
)

func Test_ParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
		error    error
	}{
		{input: "trace", expected: Trace},
		{input: "DEBUG", expected: Debug},
		{input: " info ", expected: Info},
		{input: "warning", expected: Warn},
		{input: "ERR", expected: Error},
		{input: "fatal", expected: Trace, error: errors.ErrInvalidLevel},
		{input: "", expected: Trace, error: errors.ErrInvalidLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			assert.Equal(t, tt.expected, level)

			if tt.error != nil {
				assert.ErrorIs(t, err, tt.error)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func Test_Level_Presentation(t *testing.T) {
	glyphs := make(map[string]bool)

	for _, level := range Levels() {
		assert.True(t, level.Valid())
		assert.NotEmpty(t, level.String())
		assert.Len(t, []rune(level.Glyph()), 1)

		glyphs[level.Glyph()] = true
	}

	assert.Len(t, glyphs, 5, "every level has a distinct glyph")
	assert.Equal(t, "ERROR", Level(42).String())
	assert.Equal(t, "TRACE", Level(-1).String())
	assert.Equal(t, Error, Error.Next())
	assert.Equal(t, Trace, Trace.Prev())
	assert.Equal(t, Warn, Info.Next())
}

func Test_Levels_MatchConfig(t *testing.T) {
	levels := Levels()
	assert.Len(t, config.MinLevels, len(levels))

	for i, name := range config.MinLevels {
		parsed, err := ParseLevel(name)
		assert.NoError(t, err)
		assert.Equal(t, levels[i], parsed)
		assert.Equal(t, strings.ToUpper(name), parsed.String())
	}
}

func Test_Range(t *testing.T) {
	from := baseTime
	to := baseTime.Add(time.Hour)

	tests := []struct {
		name     string
		rng      Range
		at       time.Time
		expected bool
	}{
		{name: "all", rng: All(), at: baseTime, expected: true},
		{name: "inclusive lower bound", rng: Between(from, to), at: from, expected: true},
		{name: "inclusive upper bound", rng: Between(to, from), at: to, expected: true},
		{name: "before range", rng: Between(from, to), at: from.Add(-time.Second), expected: false},
		{name: "after range", rng: Between(from, to), at: to.Add(time.Second), expected: false},
		{name: "until", rng: Until(from), at: from.Add(-time.Hour), expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.rng.Contains(tt.at))
		})
	}
}

func Test_FormatTimestamp(t *testing.T) {
	ts := time.Date(2024, 3, 1, 9, 5, 7, 0, time.Local)

	assert.Equal(t, "2024-03-01 09:05:07", FormatTimestamp(ts, ""))
	assert.Equal(t, "09:05", FormatTimestamp(ts, "15:04"))
	assert.Equal(t, "", FormatTimestamp(time.Time{}, ""))
}
