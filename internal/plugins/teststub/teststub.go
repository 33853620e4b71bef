// Package teststub is a minimal plugin used to check host wiring. Its source
// echoes the query back as a single record and its action does nothing.
package teststub

import (
	"context"
	"fmt"

	"quicksearch.dev/qsbp/internal/core/domain"
	"quicksearch.dev/qsbp/internal/core/ports"
)

const (
	customKey   = "CustomKey"
	customValue = "CustomValue"
)

// Source accepts every query and answers with one record built from the raw text
type Source struct{}

func (Source) Name() string                             { return "teststub" }
func (Source) IsValidSourceForQuery(*domain.Query) bool { return true }

// PerformSearch returns the echo record for q
func (Source) PerformSearch(_ context.Context, q *domain.Query) domain.Outcome {
	return domain.Succeeded(domain.Result{
		domain.KeyIdentifier:  "file://" + q.Raw(),
		domain.KeyDisplayName: fmt.Sprintf("%s Result", q.Raw()),
		customKey:             customValue,
	})
}

// Action applies to any results and always succeeds without side effects
type Action struct{}

func (Action) Name() string                          { return "teststub" }
func (Action) AppliesToResults([]domain.Result) bool { return true }

func (Action) Perform(context.Context, []domain.Result) (bool, error) {
	return true, nil
}

// Plugin pairs Source with Action
type Plugin struct{}

// New returns the test stub plugin
func New() Plugin { return Plugin{} }

func (Plugin) Name() string                { return "teststub" }
func (Plugin) Source() ports.SearchSource { return Source{} }
func (Plugin) Action() ports.Action       { return Action{} }

var (
	_ ports.SearchSource = Source{}
	_ ports.Action       = Action{}
	_ ports.Plugin       = Plugin{}
)
