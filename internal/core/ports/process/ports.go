package procports

import (
	"context"

	"quicksearch.dev/qsbp/internal/core/domain/process"
)

// CommandRunner runs an OS command to completion
type CommandRunner interface {
	// Run executes cmd and returns its exit code. err is non-nil only when
	// the command could not be started or waited on; a non-zero exit is
	// reported through the exit code alone.
	Run(ctx context.Context, cmd process.Command) (exitCode int, err error)
}
