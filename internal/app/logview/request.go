package logview

import "context"

// Kind identifies which adapter call a request performs
type Kind int

// Request kinds
const (
	KindCount Kind = iota
	KindRows
	KindDelete
)

func (k Kind) String() string {
	switch k {
	case KindCount:
		return "count"
	case KindRows:
		return "rows"
	case KindDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Request is one adapter round-trip issued by the engine.
// Do may run on any goroutine; its Result must be handed back to the same engine via Resolve.
type Request struct {
	owner   *Engine
	kind    Kind
	gen     uint64
	level   Level
	page    int
	size    int
	rng     Range
	source  Source
	deleter Deleter
}

// Kind returns the adapter call this request performs
func (r *Request) Kind() Kind {
	return r.kind
}

// Generation returns the token that identifies this request
func (r *Request) Generation() uint64 {
	return r.gen
}

// Level returns the filter the request was issued for
func (r *Request) Level() Level {
	return r.level
}

// Page returns the page the request was issued for
func (r *Request) Page() int {
	return r.page
}

// Do performs the adapter call
func (r *Request) Do(ctx context.Context) Result {
	res := Result{owner: r.owner, kind: r.kind, gen: r.gen}

	switch r.kind {
	case KindCount:
		res.count, res.err = r.source.Count(ctx, r.level)
	case KindRows:
		res.rows, res.err = r.source.FetchPage(ctx, r.level, r.page, r.size)
	case KindDelete:
		res.err = r.deleter.DeleteRange(ctx, r.rng)
	}

	return res
}

// Result is the outcome of a Request
type Result struct {
	owner *Engine
	kind  Kind
	gen   uint64
	count int
	rows  []Entry
	err   error
}

// Kind returns the adapter call the result answers
func (r Result) Kind() Kind {
	return r.kind
}

// Generation returns the token of the request that produced the result
func (r Result) Generation() uint64 {
	return r.gen
}

// Err returns the adapter error, if any
func (r Result) Err() error {
	return r.err
}
