package report

import (
	"context"
	"fmt"
	"sync"
	"time"

	"logpane/internal/app/errors"
	"logpane/internal/config/logger"
)

// Report is a set of report log files merged into one in-memory Source
type Report struct {
	root    string
	pattern string
	matcher Matcher
	delay   time.Duration
	source  *Source
	log     logger.Logger

	mu    sync.Mutex
	files []string
}

// Open loads every file matching pattern, e.g. "reports/**/*.json"
func Open(pattern string, delay time.Duration, log logger.Logger) (*Report, error) {
	if pattern == "" {
		return nil, errors.ErrReportPatternNeeded
	}

	root, rel := SplitPattern(pattern)

	m, err := NewMatcher([]string{rel})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrReportPatternNeeded, err)
	}

	r := &Report{
		root:    root,
		pattern: pattern,
		matcher: m,
		delay:   delay,
		source:  NewSource(nil),
		log:     log.WithComponent("REPORT"),
	}

	if err := r.Reload(); err != nil {
		return nil, err
	}

	return r, nil
}

// Source returns the merged log stream
func (r *Report) Source() *Source {
	return r.source
}

// Files returns the currently loaded files
func (r *Report) Files() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.files...)
}

// Pattern returns the pattern the report was opened with
func (r *Report) Pattern() string {
	return r.pattern
}

// Reload finds and parses the files again, replacing the stream on success
func (r *Report) Reload() error {
	files, err := Find(r.root, r.matcher)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("%w: '%s'", errors.ErrNoReportFiles, r.pattern)
	}

	entries, err := LoadFiles(files)
	if err != nil {
		return err
	}

	r.source.Replace(entries)

	r.mu.Lock()
	r.files = files
	r.mu.Unlock()

	r.log.Debug().Msgf("Loaded %d logs from %d files", len(entries), len(files))

	return nil
}

// Watch reloads the report whenever a matching file changes and reports each reload outcome to onReload
func (r *Report) Watch(ctx context.Context, onReload func(err error)) (Watcher, error) {
	w, err := NewWatcher(r.root, r.matcher, r.delay, func(files []string) {
		r.log.Info().Msgf("Reloading after changes to %v", files)
		onReload(r.Reload())
	}, r.log)
	if err != nil {
		return nil, err
	}

	w.Start(ctx)

	return w, nil
}
