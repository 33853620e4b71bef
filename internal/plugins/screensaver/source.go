package screensaver

import (
	"context"
	"fmt"
	"strings"

	"quicksearch.dev/qsbp/internal/core/domain"
	"quicksearch.dev/qsbp/internal/core/ports"
	"quicksearch.dev/qsbp/internal/logging"
)

const (
	// MinQueryLength is the shortest normalized non-pivot query accepted
	MinQueryLength = 3

	// ResultType tags records produced by this source
	ResultType = "script.python.screensaver"

	// DefaultActionID is the action the host runs when a record is chosen
	DefaultActionID = "com.google.qsb.screensavers.action.set"

	displayNameFormat = "%s Screen Saver"
)

// browsePhrases are the queries that list every screen saver
var browsePhrases = []string{"screensaver", "screen saver"}

// Source searches the screen saver index
type Source struct {
	index  *Index
	logger logging.Logger
}

// NewSource creates a search source over index
func NewSource(index *Index, logger logging.Logger) *Source {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &Source{index: index, logger: logger.With("component", "screensaver")}
}

// Name implements ports.SearchSource
func (s *Source) Name() string {
	return "screensaver"
}

// IsValidSourceForQuery accepts pivots on our own results and non-pivot
// queries of at least MinQueryLength characters.
func (s *Source) IsValidSourceForQuery(q *domain.Query) bool {
	if q.HasPivot() {
		return s.index.Contains(q.Pivot().Identifier())
	}
	return q.NormalizedLength() >= MinQueryLength
}

// PerformSearch returns matching screen savers ordered by name
func (s *Source) PerformSearch(_ context.Context, q *domain.Query) domain.Outcome {
	term := q.Normalized()

	var entries []Entry
	switch {
	case q.HasPivot():
		entries = s.index.WithPrefix(term)
	case isBrowseQuery(q.Raw()):
		// The raw text, not the normalized one, is compared here.
		entries = s.index.Entries()
	default:
		entries = s.index.WithPrefix(term)
	}

	results := make([]domain.Result, 0, len(entries))
	for _, e := range entries {
		results = append(results, CreateResult(e))
	}

	s.logger.Debug("screen saver search", "query", q.Raw(), "results", len(results))
	return domain.Succeeded(results...)
}

func isBrowseQuery(raw string) bool {
	raw = domain.Lower(raw)
	for _, phrase := range browsePhrases {
		if strings.HasPrefix(phrase, raw) {
			return true
		}
	}
	return false
}

// CreateResult builds the record for an indexed entry
func CreateResult(e Entry) domain.Result {
	return domain.Result{
		domain.KeyIdentifier:    FileURL(e.Path),
		domain.KeyDisplayName:   fmt.Sprintf(displayNameFormat, e.Name),
		domain.KeyType:          ResultType,
		domain.KeyDefaultAction: DefaultActionID,
	}
}

var _ ports.SearchSource = (*Source)(nil)
