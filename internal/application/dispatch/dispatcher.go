// Package dispatch runs search sources against queries and guarantees that
// every dispatched query is finished exactly once, whatever the source does.
package dispatch

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"quicksearch.dev/qsbp/internal/core/domain"
	"quicksearch.dev/qsbp/internal/core/ports"
	"quicksearch.dev/qsbp/internal/logging"
)

// Dispatcher starts searches on their own goroutine
type Dispatcher struct {
	logger logging.Logger
}

// NewDispatcher creates a dispatcher logging through logger
func NewDispatcher(logger logging.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &Dispatcher{logger: logger.With("component", "dispatch")}
}

// Task is a running search. Wait is the join point; Cancel is available for
// callers that supersede a query, although sources are free to ignore it.
type Task struct {
	query  *domain.Query
	source string
	cancel context.CancelFunc
	done   chan struct{}

	mu      sync.Mutex
	outcome domain.Outcome
}

// Dispatch starts source.PerformSearch for q and returns immediately. The
// query is finished when the search returns, fails or panics.
func (d *Dispatcher) Dispatch(ctx context.Context, source ports.SearchSource, q *domain.Query) *Task {
	ctx, cancel := context.WithCancel(ctx)
	task := &Task{query: q, source: source.Name(), cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(task.done)
		defer cancel()
		d.run(ctx, source, q, task)
	}()

	return task
}

// Search dispatches and waits for completion
func (d *Dispatcher) Search(ctx context.Context, source ports.SearchSource, q *domain.Query) (domain.Outcome, error) {
	return d.Dispatch(ctx, source, q).Wait(ctx)
}

func (d *Dispatcher) run(ctx context.Context, source ports.SearchSource, q *domain.Query, task *Task) {
	start := time.Now()
	log := d.logger.With("query_id", q.ID(), "source", source.Name())
	log.Debug("search started", "raw", q.Raw(), "pivot", q.HasPivot())

	outcome := d.perform(ctx, source, q)

	if !outcome.OK() {
		log.Warn("search failed", "error", outcome.Err, "partial", len(outcome.Results))
	}

	if err := q.SetResults(outcome.Results); err != nil {
		log.Error("could not store results", "error", err)
	}

	task.mu.Lock()
	task.outcome = outcome
	task.mu.Unlock()

	if err := q.Finish(); err != nil {
		log.Error("query finished twice", "error", err)
	}

	log.Debug("search finished", "results", len(outcome.Results), "duration", time.Since(start))
}

func (d *Dispatcher) perform(ctx context.Context, source ports.SearchSource, q *domain.Query) (outcome domain.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("search panicked",
				"query_id", q.ID(),
				"source", source.Name(),
				"panic", r,
				"stack", string(debug.Stack()))
			outcome = domain.Failed(fmt.Errorf("%s: panic: %v", source.Name(), r))
		}
	}()

	outcome = source.PerformSearch(ctx, q)
	if outcome.Results == nil {
		outcome.Results = []domain.Result{}
	}
	return outcome
}

// Query returns the query the task is working on
func (t *Task) Query() *domain.Query {
	return t.query
}

// Source returns the name of the source
func (t *Task) Source() string {
	return t.source
}

// Done is closed once the outcome is stored and the query finished
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Cancel asks the search to stop. The query is still finished.
func (t *Task) Cancel() {
	t.cancel()
}

// Wait blocks until the query finishes or ctx is done
func (t *Task) Wait(ctx context.Context) (domain.Outcome, error) {
	select {
	case <-t.done:
		t.mu.Lock()
		defer t.mu.Unlock()
		return t.outcome, nil
	case <-ctx.Done():
		return domain.Outcome{}, ctx.Err()
	}
}
