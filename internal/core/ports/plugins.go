package ports

import (
	"context"

	"quicksearch.dev/qsbp/internal/core/domain"
)

// SearchSource answers queries with result records
type SearchSource interface {
	// Name returns the source name used in logs and on the command line
	Name() string

	// IsValidSourceForQuery reports whether the source is willing to handle q.
	// Declining is not an error.
	IsValidSourceForQuery(q *domain.Query) bool

	// PerformSearch computes results for q. It must not touch q's result
	// list; the dispatcher stores the outcome and finishes the query.
	PerformSearch(ctx context.Context, q *domain.Query) domain.Outcome
}

// Action performs a side effect on previously produced results
type Action interface {
	// Name returns the action identifier
	Name() string

	// AppliesToResults reports whether the action can handle results
	AppliesToResults(results []domain.Result) bool

	// Perform runs the action. It returns false with a diagnostic error when
	// the side effect did not happen.
	Perform(ctx context.Context, results []domain.Result) (bool, error)
}

// Plugin bundles a search source with its optional action
type Plugin interface {
	Name() string
	Source() SearchSource
	// Action returns nil when the plugin has no action
	Action() Action
}

// URLOpener opens a URL in the user's default handler
type URLOpener interface {
	Open(ctx context.Context, rawURL string) error
}
