package template

import (
	"context"
	"fmt"

	"quicksearch.dev/qsbp/internal/core/domain"
	"quicksearch.dev/qsbp/internal/core/ports"
	"quicksearch.dev/qsbp/internal/logging"
)

// OpenAction opens the custom URL of every record it is given
type OpenAction struct {
	opener ports.URLOpener
	logger logging.Logger
}

// NewOpenAction creates the action
func NewOpenAction(opener ports.URLOpener, logger logging.Logger) *OpenAction {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &OpenAction{opener: opener, logger: logger.With("component", "template")}
}

func (a *OpenAction) Name() string { return DefaultActionID }

// AppliesToResults accepts any records
func (a *OpenAction) AppliesToResults([]domain.Result) bool {
	return true
}

// Perform opens each record's custom URL in order. Records without one are
// skipped. The first failed open stops the action.
func (a *OpenAction) Perform(ctx context.Context, results []domain.Result) (bool, error) {
	opened := 0
	for _, r := range results {
		target, ok := r.Get(KeyCustomValue)
		if !ok || target == "" {
			a.logger.Debug("skipping record without url", "identifier", r.Identifier())
			continue
		}
		if err := a.opener.Open(ctx, target); err != nil {
			a.logger.Error("open failed", "url", target, "error", err)
			return false, fmt.Errorf("%w: open %s: %v", domain.ErrActionFailed, target, err)
		}
		opened++
	}

	if opened == 0 {
		return false, fmt.Errorf("no record carries %s: %w", KeyCustomValue, domain.ErrNotApplicable)
	}
	a.logger.Info("opened urls", "count", opened)
	return true, nil
}

var _ ports.Action = (*OpenAction)(nil)
