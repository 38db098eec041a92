package report

import (
	"slices"
	"sync"
	"time"
)

// debouncer collects changed paths and delivers them once no change arrived for delay
type debouncer struct {
	delay   time.Duration
	deliver func(paths []string)

	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]struct{}
	stopped bool
}

func newDebouncer(delay time.Duration, deliver func(paths []string)) *debouncer {
	return &debouncer{
		delay:   delay,
		deliver: deliver,
		pending: make(map[string]struct{}),
	}
}

// Trigger records path and restarts the quiet period
func (d *debouncer) Trigger(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.pending[path] = struct{}{}

	if d.timer == nil {
		d.timer = time.AfterFunc(d.delay, d.flush)
		return
	}

	d.timer.Reset(d.delay)
}

// Stop drops pending paths; no delivery happens afterwards
func (d *debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true

	if d.timer != nil {
		d.timer.Stop()
	}

	clear(d.pending)
}

func (d *debouncer) flush() {
	d.mu.Lock()

	if d.stopped || len(d.pending) == 0 {
		d.mu.Unlock()
		return
	}

	paths := make([]string, 0, len(d.pending))
	for p := range d.pending {
		paths = append(paths, p)
	}

	clear(d.pending)
	d.mu.Unlock()

	slices.Sort(paths)
	d.deliver(paths)
}
