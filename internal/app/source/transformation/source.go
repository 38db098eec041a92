package transformation

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/valyala/fastjson"

	"logpane/internal/app/errors"
	"logpane/internal/app/logview"
)

// Column names of the transformation log table
const (
	ColumnLevel     = "Level"
	ColumnTimestamp = "Timestamp"
	ColumnRun       = "Run ID"
	ColumnMessage   = "Message"
)

// Columns returns the display columns of a transformation log
func Columns() []logview.Column {
	return logview.NewColumns(ColumnLevel, ColumnTimestamp, ColumnRun, ColumnMessage)
}

// Source is the transformation log of one test, optionally one run. It supports deletion.
type Source struct {
	client *Client
	testID int64
	runID  int64
}

// TestID returns the test the source reads
func (s *Source) TestID() int64 {
	return s.testID
}

// RunID returns the run the source is narrowed to, zero for every run
func (s *Source) RunID() int64 {
	return s.runID
}

// Count returns the number of entries at minLevel or above
func (s *Source) Count(ctx context.Context, minLevel logview.Level) (int, error) {
	params := url.Values{"level": {strconv.Itoa(int(minLevel))}}
	setRun(params, s.runID)

	var count int

	err := s.client.do(ctx, http.MethodGet, s.client.endpoint(s.testID, "/count", params), func(v *fastjson.Value) error {
		n, err := v.Int()
		if err != nil {
			return fmt.Errorf("%w: count: %w", errors.ErrInvalidResponse, err)
		}

		count = n

		return nil
	})

	return count, err
}

// FetchPage returns one page of entries, oldest first
func (s *Source) FetchPage(ctx context.Context, minLevel logview.Level, page, size int) ([]logview.Entry, error) {
	params := url.Values{
		"level": {strconv.Itoa(int(minLevel))},
		"page":  {strconv.Itoa(page)},
		"limit": {strconv.Itoa(size)},
	}
	setRun(params, s.runID)

	var entries []logview.Entry

	err := s.client.do(ctx, http.MethodGet, s.client.endpoint(s.testID, "", params), func(v *fastjson.Value) error {
		items, err := v.Array()
		if err != nil {
			return fmt.Errorf("%w: page: %w", errors.ErrInvalidResponse, err)
		}

		entries = make([]logview.Entry, 0, len(items))
		for _, item := range items {
			entries = append(entries, logview.Entry{
				Level:     logview.Level(item.GetInt("level")).Clamp(),
				Timestamp: time.UnixMilli(item.GetInt64("timestamp")),
				Message:   string(item.GetStringBytes("message")),
				SourceID:  item.GetInt64("runId"),
			})
		}

		return nil
	})

	return entries, err
}

// DeleteRange removes the entries between r.From and r.To, inclusive, with millisecond precision
func (s *Source) DeleteRange(ctx context.Context, r logview.Range) error {
	params := url.Values{}
	setRun(params, s.runID)

	if r.From != nil {
		params.Set("from", strconv.FormatInt(r.From.UnixMilli(), 10))
	}

	if r.To != nil {
		params.Set("to", strconv.FormatInt(r.To.UnixMilli(), 10))
	}

	return s.client.do(ctx, http.MethodDelete, s.client.endpoint(s.testID, "", params), nil)
}
