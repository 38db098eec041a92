package report

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/valyala/fastjson"

	"logpane/internal/app/errors"
	"logpane/internal/app/logview"
)

// LoadFiles reads and merges the report logs of every file
func LoadFiles(paths []string) ([]logview.Entry, error) {
	var entries []logview.Entry

	for _, path := range paths {
		fileEntries, err := LoadFile(path)
		if err != nil {
			return nil, err
		}

		entries = append(entries, fileEntries...)
	}

	return entries, nil
}

// LoadFile reads one report log file
func LoadFile(path string) ([]logview.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	entries, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w '%s': %w", errors.ErrInvalidReportFile, path, err)
	}

	return entries, nil
}

// Decode parses a JSON array of {level, timestamp, message} objects, or an object
// holding such an array under "logs". Timestamps are epoch seconds, fractions allowed.
func Decode(data []byte) ([]logview.Entry, error) {
	v, err := fastjson.ParseBytes(data)
	if err != nil {
		return nil, err
	}

	if v.Type() == fastjson.TypeObject {
		v = v.Get("logs")
		if v == nil {
			return nil, errors.New("missing 'logs' array")
		}
	}

	items, err := v.Array()
	if err != nil {
		return nil, err
	}

	entries := make([]logview.Entry, 0, len(items))

	for i, item := range items {
		level, err := decodeLevel(item.Get("level"))
		if err != nil {
			return nil, fmt.Errorf("log %d: %w", i, err)
		}

		entries = append(entries, logview.Entry{
			Level:     level,
			Timestamp: fromSeconds(item.Get("timestamp")),
			Message:   string(item.GetStringBytes("message")),
		})
	}

	return entries, nil
}

// decodeLevel accepts the numeric severity or its name
func decodeLevel(v *fastjson.Value) (logview.Level, error) {
	if v == nil {
		return logview.Trace, nil
	}

	if v.Type() == fastjson.TypeString {
		return logview.ParseLevel(string(v.GetStringBytes()))
	}

	n, err := v.Int()
	if err != nil {
		return logview.Trace, err
	}

	level := logview.Level(n)
	if !level.Valid() {
		return logview.Trace, fmt.Errorf("%w: %d", errors.ErrInvalidLevel, n)
	}

	return level, nil
}

// fromSeconds converts epoch seconds to a time; a missing value is the zero time
func fromSeconds(v *fastjson.Value) time.Time {
	if v == nil {
		return time.Time{}
	}

	whole, frac := math.Modf(v.GetFloat64())
	return time.Unix(int64(whole), int64(frac*float64(time.Second))).Round(time.Millisecond)
}
