package screensaver

import (
	"context"
	"fmt"

	"quicksearch.dev/qsbp/internal/core/domain"
	"quicksearch.dev/qsbp/internal/core/domain/process"
	"quicksearch.dev/qsbp/internal/core/ports"
	procports "quicksearch.dev/qsbp/internal/core/ports/process"
	"quicksearch.dev/qsbp/internal/logging"
)

const (
	defaultsTool   = "defaults"
	defaultsDomain = "com.apple.screensaver"
)

// SetAction makes the selected screen saver the current one by writing the
// module name and path preferences with the defaults tool.
type SetAction struct {
	index  *Index
	runner procports.CommandRunner
	logger logging.Logger
}

// NewSetAction creates the action
func NewSetAction(index *Index, runner procports.CommandRunner, logger logging.Logger) *SetAction {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &SetAction{index: index, runner: runner, logger: logger.With("component", "screensaver")}
}

// Name implements ports.Action
func (a *SetAction) Name() string {
	return DefaultActionID
}

// AppliesToResults reports whether the first record is one of our screen savers
func (a *SetAction) AppliesToResults(results []domain.Result) bool {
	if len(results) == 0 {
		return false
	}
	return a.index.Contains(results[0].Identifier())
}

// Perform writes both preferences for the first record. Either write
// failing fails the action; nothing is retried.
func (a *SetAction) Perform(ctx context.Context, results []domain.Result) (bool, error) {
	if len(results) == 0 {
		return false, domain.ErrNotApplicable
	}

	id := results[0].Identifier()
	entry, ok := a.index.Lookup(id)
	if !ok {
		return false, fmt.Errorf("screen saver %q: %w", id, domain.ErrNotFound)
	}

	writes := [][2]string{
		{"moduleName", entry.Name},
		{"modulePath", entry.Path},
	}
	for _, w := range writes {
		cmd, err := process.NewCommand(defaultsTool, "-currentHost", "write", defaultsDomain, w[0], "-string", w[1])
		if err != nil {
			return false, err
		}

		code, err := a.runner.Run(ctx, cmd)
		if err != nil {
			a.logger.Error("screensaver action failed", "command", cmd.String(), "error", err)
			return false, fmt.Errorf("%w: %s: %v", domain.ErrActionFailed, cmd.String(), err)
		}
		if code != 0 {
			a.logger.Error("screensaver action failed", "command", cmd.String(), "exit_code", code)
			return false, fmt.Errorf("%w: %s exited with status %d", domain.ErrActionFailed, cmd.String(), code)
		}
	}

	a.logger.Info("screen saver set", "name", entry.Name, "path", entry.Path)
	return true, nil
}

var _ ports.Action = (*SetAction)(nil)
