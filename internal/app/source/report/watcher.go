package report

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"logpane/internal/config/logger"
)

// Watcher reports changes of the report files under a root directory
type Watcher interface {
	Start(ctx context.Context)
	Close()
}

type watcher struct {
	root      string
	matcher   Matcher
	fsWatcher *fsnotify.Watcher
	debouncer *debouncer
	log       logger.Logger

	mu     sync.Mutex
	closed bool
}

// NewWatcher watches root recursively and calls onChange with the debounced set of changed report files
func NewWatcher(root string, matcher Matcher, delay time.Duration, onChange func(files []string), log logger.Logger) (Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		fsw.Close()
		return nil, err
	}

	w := &watcher{
		root:      absRoot,
		matcher:   matcher,
		fsWatcher: fsw,
		debouncer: newDebouncer(delay, onChange),
		log:       log.WithComponent("WATCHER"),
	}

	if err := w.addDirRecursive(absRoot); err != nil {
		fsw.Close()
		return nil, err
	}

	return w, nil
}

// Start processes file events until ctx is done or Close is called
func (w *watcher) Start(ctx context.Context) {
	w.log.Info().Msgf("Watching report files in %s", w.root)

	go w.processEvents()

	go func() {
		<-ctx.Done()
		w.Close()
	}()
}

// Close stops watching and drops pending changes
func (w *watcher) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}

	w.closed = true
	w.debouncer.Stop()
	w.fsWatcher.Close()
}

func (w *watcher) processEvents() {
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}

			w.log.Error().Err(err).Msg("Watcher error")
		}
	}
}

func (w *watcher) handleEvent(event fsnotify.Event) {
	if !isRelevantEvent(event) {
		return
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addDirRecursive(event.Name); err != nil {
				w.log.Warn().Err(err).Msgf("Failed to watch new directory: %s", event.Name)
			}

			return
		}
	}

	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil || strings.HasPrefix(rel, "..") {
		return
	}

	if w.matcher.Match(rel) {
		w.log.Debug().Msgf("Report file changed: %s (%s)", rel, event.Op)
		w.debouncer.Trigger(event.Name)
	}
}

func (w *watcher) addDirRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() {
			return nil
		}

		if path != dir && shouldSkipDir(d.Name()) {
			return filepath.SkipDir
		}

		if err := w.fsWatcher.Add(path); err != nil {
			w.log.Warn().Err(err).Msgf("Failed to watch directory: %s", path)
		}

		return nil
	})
}

func isRelevantEvent(event fsnotify.Event) bool {
	return event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) ||
		event.Has(fsnotify.Rename)
}
