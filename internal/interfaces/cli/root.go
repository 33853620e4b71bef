package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"quicksearch.dev/qsbp/internal/application/dispatch"
	"quicksearch.dev/qsbp/internal/core/domain"
	"quicksearch.dev/qsbp/internal/logging"
	"quicksearch.dev/qsbp/internal/plugins"
)

var (
	Version   = "dev"     // Overridden by ldflags
	BuildTime = "unknown" // Overridden by ldflags
)

// Overrides are the persistent flag values applied before any command runs
type Overrides struct {
	ConfigPath string
	Debug      bool
	LogFormat  string
}

// CLIContainer holds all the dependencies for CLI commands
type CLIContainer struct {
	Config     domain.Config
	ConfigPath string
	Logger     logging.Logger
	Registry   *plugins.Registry
	Dispatcher *dispatch.Dispatcher
	// MainContainer is the *di.Container, held as an interface to avoid an
	// import cycle. It rebuilds the dependencies when flags override config.
	MainContainer interface{}
}

// ExitError ends the process with Code. Its message has already been
// printed when Silent is set.
type ExitError struct {
	Code   int
	Err    error
	Silent bool
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

func exitSilently(code int) error {
	return &ExitError{Code: code, Silent: true}
}

// NewRootCommand builds the qsbp command tree
func NewRootCommand(container *CLIContainer) *cobra.Command {
	var rootCmd = &cobra.Command{
		Use:   "qsbp",
		Short: "Quick search plugins from the command line",
		Long: `qsbp runs quick search plugins outside of the search host.

Each plugin can be queried directly, its action can be performed on a
result, and the finder searches every plugin interactively.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := applyConfigurationOverrides(cmd, container); err != nil {
				return fmt.Errorf("failed to apply configuration overrides: %w", err)
			}
			return nil
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf("{{.Name}} version {{.Version}}\nBuild time: %s\nGo version: %s\nPlatform: %s/%s\n",
		BuildTime, goVersion(), runtime.GOOS, runtime.GOARCH))

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging and plugin tracing")
	rootCmd.PersistentFlags().String("config", "", "Config file path (default is $HOME/.config/qsbp/config.json)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json")

	if container.Registry != nil {
		for _, name := range container.Registry.Names() {
			rootCmd.AddCommand(NewSearchCommand(container, name))
		}
	}
	rootCmd.AddCommand(NewPerformCommand(container))
	rootCmd.AddCommand(NewFinderCommand(container))
	rootCmd.AddCommand(NewConfigCommand(container))

	return rootCmd
}

// goVersion returns the Go version used to build the binary
func goVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.GoVersion
	}
	return "unknown"
}

// applyConfigurationOverrides rebuilds the container when a persistent flag
// changes configuration
func applyConfigurationOverrides(cmd *cobra.Command, container *CLIContainer) error {
	flags := cmd.Flags()
	if !flags.Changed("config") && !flags.Changed("debug") && !flags.Changed("log-format") {
		return nil
	}

	mainContainer, ok := container.MainContainer.(interface {
		ApplyOverrides(Overrides) (*CLIContainer, error)
	})
	if !ok {
		return nil
	}

	var overrides Overrides
	overrides.ConfigPath, _ = flags.GetString("config")
	overrides.Debug, _ = flags.GetBool("debug")
	overrides.LogFormat, _ = flags.GetString("log-format")

	rebuilt, err := mainContainer.ApplyOverrides(overrides)
	if err != nil {
		return err
	}
	*container = *rebuilt
	return nil
}

// Execute runs the root command and exits with the command's status
func Execute(ctx context.Context, container *CLIContainer) {
	os.Exit(run(ctx, container, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, container *CLIContainer, args []string, stdout, stderr io.Writer) int {
	rootCmd := NewRootCommand(container)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if !exitErr.Silent {
			fmt.Fprintf(stderr, "Error: %v\n", exitErr)
		}
		return exitErr.Code
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}
