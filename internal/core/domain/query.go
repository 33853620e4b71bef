package domain

import (
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Query is a single user query as handed to search sources. Sources only
// read it; results are written once by the dispatcher, which then finishes
// the query.
type Query struct {
	id         string
	raw        string
	normalized string
	pivot      Result

	mu       sync.Mutex
	results  []Result
	finished bool
	done     chan struct{}
}

// NewQuery creates a fresh query, computing the normalized text from raw
func NewQuery(raw string) *Query {
	return NewQueryWithPivot(raw, nil)
}

// NewQueryWithPivot creates a query that drills into a previous result
func NewQueryWithPivot(raw string, pivot Result) *Query {
	return newQuery(raw, Normalize(raw), pivot)
}

// NewHostQuery creates a query whose normalized text was computed by the host
func NewHostQuery(raw, normalized string, pivot Result) *Query {
	return newQuery(raw, normalized, pivot)
}

func newQuery(raw, normalized string, pivot Result) *Query {
	var p Result
	if pivot != nil {
		p = pivot.Clone()
	}
	return &Query{
		id:         uuid.NewString(),
		raw:        raw,
		normalized: normalized,
		pivot:      p,
		done:       make(chan struct{}),
	}
}

// ID returns the correlation id used in logs
func (q *Query) ID() string {
	return q.id
}

// Raw returns the query text exactly as typed
func (q *Query) Raw() string {
	return q.raw
}

// Normalized returns the normalized query text
func (q *Query) Normalized() string {
	return q.normalized
}

// NormalizedLength returns the length of the normalized text in characters
func (q *Query) NormalizedLength() int {
	return utf8.RuneCountInString(q.normalized)
}

// Pivot returns the record this query drills into, or nil
func (q *Query) Pivot() Result {
	return q.pivot
}

// HasPivot reports whether the query is a drill-down
func (q *Query) HasPivot() bool {
	return q.pivot != nil
}

// SetResults stores the results. It fails once the query has finished.
func (q *Query) SetResults(results []Result) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.finished {
		return ErrAlreadyFinished
	}
	q.results = CloneResults(results)
	return nil
}

// Finish signals completion. Only the first call has an effect.
func (q *Query) Finish() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.finished {
		return ErrAlreadyFinished
	}
	q.finished = true
	close(q.done)
	return nil
}

// Finished reports whether Finish has been called
func (q *Query) Finished() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.finished
}

// Done is closed when the query finishes
func (q *Query) Done() <-chan struct{} {
	return q.done
}

// Results returns a copy of the stored results
func (q *Query) Results() []Result {
	q.mu.Lock()
	defer q.mu.Unlock()
	return CloneResults(q.results)
}
