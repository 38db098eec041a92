package logview

import (
	"context"

	"github.com/looplab/fsm"

	"logpane/internal/app/errors"
	"logpane/internal/config/logger"
)

// DefaultPageSize is used when Options.PageSize is not positive
const DefaultPageSize = 20

// Options configures an Engine
type Options struct {
	PageSize int
	Level    Level
	Columns  []Column
}

// Engine is the paginated, level-filtered view over one log Source.
// It performs no I/O itself: every operation returns the next Request to run (or nil),
// and the caller hands the Request's Result back through Resolve. Engine is not safe
// for concurrent use; run Request.Do anywhere but call Engine methods from one goroutine.
type Engine struct {
	source  Source
	deleter Deleter
	fsm     *fsm.FSM
	columns []Column
	log     logger.Logger

	level    Level
	page     int
	pageSize int
	count    int
	counted  bool
	rows     []Entry
	err      error

	seq    uint64
	latest [3]uint64
}

// NewEngine creates an idle engine over source. Deletion is enabled when source implements Deleter.
func NewEngine(source Source, opts Options, log logger.Logger) *Engine {
	log = log.WithComponent("ENGINE")

	size := opts.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}

	e := &Engine{
		source:   source,
		fsm:      newEngineFSM(log),
		columns:  opts.Columns,
		log:      log,
		level:    opts.Level.Clamp(),
		pageSize: size,
	}

	if d, ok := source.(Deleter); ok {
		e.deleter = d
	}

	return e
}

// Open starts the first load with the configured filter and page
func (e *Engine) Open() *Request {
	return e.invalidate()
}

// Reload discards the current view and counts again with the same filter and page
func (e *Engine) Reload() *Request {
	return e.invalidate()
}

// SetLevel changes the minimum-level filter. Setting the current level again is a no-op.
func (e *Engine) SetLevel(level Level) *Request {
	level = level.Clamp()
	if level == e.level && e.State() != Idle {
		return nil
	}

	e.level = level

	return e.invalidate()
}

// SetPage moves to page, clamped to the known page range
func (e *Engine) SetPage(page int) *Request {
	page = e.clampPage(page)
	state := e.State()

	if page == e.page && (state == Ready || state == LoadingRows) {
		return nil
	}

	e.page = page

	switch state {
	case Idle, LoadingCount, Deleting:
		// the next count picks the page up
		return nil
	case Failed:
		if !e.counted {
			return e.invalidate()
		}
	}

	e.rows = nil
	e.err = nil
	e.fire(Paginate)

	return e.issue(KindRows)
}

// NextPage moves one page forward
func (e *Engine) NextPage() *Request {
	return e.SetPage(e.page + 1)
}

// PrevPage moves one page back
func (e *Engine) PrevPage() *Request {
	return e.SetPage(e.page - 1)
}

// FirstPage moves to the first page
func (e *Engine) FirstPage() *Request {
	return e.SetPage(0)
}

// LastPage moves to the last known page
func (e *Engine) LastPage() *Request {
	return e.SetPage(e.PageCount() - 1)
}

// Delete removes the entries in r. Only allowed once the view has settled in Ready or Error.
func (e *Engine) Delete(r Range) (*Request, error) {
	if e.deleter == nil {
		return nil, errors.ErrDeleteUnsupported
	}

	if !e.fsm.Can(Delete) {
		return nil, errors.ErrEngineBusy
	}

	e.err = nil
	e.fire(Delete)

	req := e.issue(KindDelete)
	req.rng = r

	return req, nil
}

// Resolve applies a Result and returns the follow-up Request, if any.
// Results superseded by a newer request of the same kind are dropped.
func (e *Engine) Resolve(res Result) *Request {
	if res.owner != e || res.gen != e.latest[res.kind] {
		e.log.Debug().Msgf("Dropping stale %s result (generation %d, latest %d)", res.kind, res.gen, e.latest[res.kind])
		return nil
	}

	switch res.kind {
	case KindCount:
		return e.resolveCount(res)
	case KindRows:
		e.resolveRows(res)
	case KindDelete:
		return e.resolveDelete(res)
	}

	return nil
}

// Drive runs req and every follow-up synchronously until the engine settles
func (e *Engine) Drive(ctx context.Context, req *Request) error {
	for req != nil {
		req = e.Resolve(req.Do(ctx))
	}

	return e.err
}

func (e *Engine) resolveCount(res Result) *Request {
	if res.err != nil {
		e.failWith(&CountFetchError{Err: res.err})
		return nil
	}

	e.count = max(res.count, 0)
	e.counted = true
	e.page = e.clampPage(e.page)
	e.fire(Counted)

	return e.issue(KindRows)
}

func (e *Engine) resolveRows(res Result) {
	if res.err != nil {
		e.rows = nil
		e.failWith(&RowsFetchError{Err: res.err})

		return
	}

	if len(res.rows) > e.pageSize {
		e.log.Warn().Msgf("Source returned %d rows for page size %d, truncating", len(res.rows), e.pageSize)
		res.rows = res.rows[:e.pageSize]
	}

	e.rows = res.rows
	e.fire(Loaded)
}

func (e *Engine) resolveDelete(res Result) *Request {
	if res.err != nil {
		e.failWith(&DeleteError{Err: res.err})
		return nil
	}

	e.reset()
	e.fire(Deleted)

	return e.issue(KindCount)
}

// invalidate drops the current view and starts a count, or defers it while a delete is in flight
func (e *Engine) invalidate() *Request {
	e.reset()

	if e.State() == Deleting {
		return nil
	}

	e.fire(Load)

	return e.issue(KindCount)
}

// reset clears rows and count together and voids any in-flight count or rows request
func (e *Engine) reset() {
	e.rows = nil
	e.count = 0
	e.counted = false
	e.err = nil
	e.latest[KindCount] = e.next()
	e.latest[KindRows] = e.next()
}

func (e *Engine) issue(kind Kind) *Request {
	gen := e.next()
	e.latest[kind] = gen

	return &Request{
		owner:   e,
		kind:    kind,
		gen:     gen,
		level:   e.level,
		page:    e.page,
		size:    e.pageSize,
		source:  e.source,
		deleter: e.deleter,
	}
}

func (e *Engine) next() uint64 {
	e.seq++
	return e.seq
}

func (e *Engine) failWith(err error) {
	e.err = err
	e.log.Warn().Err(err).Msg("Log view failed")
	e.fire(Fail)
}

func (e *Engine) fire(event string) {
	err := e.fsm.Event(context.Background(), event)
	if err == nil {
		return
	}

	var noTransition fsm.NoTransitionError
	if errors.As(err, &noTransition) {
		return
	}

	e.log.Error().Err(err).Msgf("Invalid transition '%s' from '%s'", event, e.fsm.Current())
}

func (e *Engine) clampPage(page int) int {
	if e.counted {
		page = min(page, e.PageCount()-1)
	}

	return max(page, 0)
}

// State returns the current FSM state
func (e *Engine) State() string {
	return e.fsm.Current()
}

// Loading reports whether a count, page or delete round-trip is outstanding
func (e *Engine) Loading() bool {
	switch e.State() {
	case LoadingCount, LoadingRows, Deleting:
		return true
	default:
		return false
	}
}

// Level returns the minimum-level filter
func (e *Engine) Level() Level {
	return e.level
}

// Page returns the zero-based current page
func (e *Engine) Page() int {
	return e.page
}

// PageSize returns the number of entries per page
func (e *Engine) PageSize() int {
	return e.pageSize
}

// Count returns the total for the current filter and whether it is known
func (e *Engine) Count() (int, bool) {
	return e.count, e.counted
}

// PageCount returns the number of pages for the known count, at least one
func (e *Engine) PageCount() int {
	if !e.counted || e.count == 0 {
		return 1
	}

	return (e.count + e.pageSize - 1) / e.pageSize
}

// Rows returns the entries of the current page
func (e *Engine) Rows() []Entry {
	return e.rows
}

// Err returns the error that put the engine into the error state
func (e *Engine) Err() error {
	return e.err
}

// CanDelete reports whether the source supports deletion
func (e *Engine) CanDelete() bool {
	return e.deleter != nil
}

// Columns returns the display columns
func (e *Engine) Columns() []Column {
	return e.columns
}

// Table renders the current rows, one cell per column
func (e *Engine) Table(render CellRenderer) [][]string {
	table := make([][]string, 0, len(e.rows))

	for _, entry := range e.rows {
		cells := render(entry)

		row := make([]string, len(e.columns))
		copy(row, cells)

		table = append(table, row)
	}

	return table
}
