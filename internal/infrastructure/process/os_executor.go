package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"quicksearch.dev/qsbp/internal/core/domain/process"
	procports "quicksearch.dev/qsbp/internal/core/ports/process"
	"quicksearch.dev/qsbp/internal/logging"
)

// Executor implements procports.CommandRunner on top of os/exec
type Executor struct {
	timeout time.Duration
	env     []string
	logger  logging.Logger
}

// NewExecutor creates a new process executor. A zero timeout waits forever.
func NewExecutor(logger logging.Logger) *Executor {
	return NewExecutorWithOptions(0, nil, logger)
}

// NewExecutorWithOptions creates a new process executor with custom options
func NewExecutorWithOptions(timeout time.Duration, env []string, logger logging.Logger) *Executor {
	if env == nil {
		env = os.Environ()
	}
	if logger == nil {
		logger = logging.NoOpLogger{}
	}

	return &Executor{
		timeout: timeout,
		env:     env,
		logger:  logger,
	}
}

// Run starts cmd, waits for it and returns the exit code
func (e *Executor) Run(ctx context.Context, cmd process.Command) (int, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	execCmd := exec.CommandContext(ctx, cmd.Executable(), cmd.Args()...)
	execCmd.Env = append([]string(nil), e.env...)
	execCmd.WaitDelay = 500 * time.Millisecond

	var output bytes.Buffer
	execCmd.Stdout = &output
	execCmd.Stderr = &output

	e.logger.Debug("running command", "command", cmd.String())

	err := execCmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		e.logger.Debug("command exited non-zero",
			"command", cmd.String(),
			"exit_code", code,
			"output", strings.TrimSpace(output.String()))
		return code, nil
	}

	return -1, fmt.Errorf("failed to run %s: %w", cmd.Executable(), err)
}

var _ procports.CommandRunner = (*Executor)(nil)
