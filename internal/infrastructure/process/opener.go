package process

import (
	"context"
	"fmt"
	"net/url"
	"runtime"

	"quicksearch.dev/qsbp/internal/core/domain/process"
	"quicksearch.dev/qsbp/internal/core/ports"
	procports "quicksearch.dev/qsbp/internal/core/ports/process"
)

// Opener opens URLs through the platform's default handler command
type Opener struct {
	runner  procports.CommandRunner
	command string
}

// NewOpener returns an opener using `open` on macOS, `explorer` on Windows and `xdg-open` elsewhere
func NewOpener(runner procports.CommandRunner) *Opener {
	return NewOpenerWithCommand(runner, defaultOpenCommand(runtime.GOOS))
}

// NewOpenerWithCommand returns an opener that runs command <url>
func NewOpenerWithCommand(runner procports.CommandRunner, command string) *Opener {
	return &Opener{runner: runner, command: command}
}

func defaultOpenCommand(goos string) string {
	switch goos {
	case "darwin":
		return "open"
	case "windows":
		return "explorer"
	default:
		return "xdg-open"
	}
}

// Open launches rawURL. Relative or unparsable URLs are rejected.
func (o *Opener) Open(ctx context.Context, rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", rawURL, err)
	}
	if u.Scheme == "" {
		return fmt.Errorf("invalid url %q: missing scheme", rawURL)
	}

	cmd, err := process.NewCommand(o.command, u.String())
	if err != nil {
		return err
	}

	code, err := o.runner.Run(ctx, cmd)
	if err != nil {
		return err
	}
	if code != 0 {
		return fmt.Errorf("%s exited with status %d", cmd.String(), code)
	}
	return nil
}

var _ ports.URLOpener = (*Opener)(nil)
