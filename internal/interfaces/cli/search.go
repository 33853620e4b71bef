package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"quicksearch.dev/qsbp/internal/core/domain"
	"quicksearch.dev/qsbp/internal/core/ports"
)

// SearchFlags holds command-line flags for the per-plugin search commands
type SearchFlags struct {
	JSON bool
}

// NewSearchCommand creates the command that queries a single plugin
func NewSearchCommand(container *CLIContainer, name string) *cobra.Command {
	flags := &SearchFlags{}

	cmd := &cobra.Command{
		Use:   name + " <query>",
		Short: fmt.Sprintf("Search with the %s plugin", name),
		Long: fmt.Sprintf(`Run a single query through the %s plugin and print its results.

Words after the plugin name are joined into one query.

Examples:
  qsbp %s flurry
  qsbp %s "screen saver" --json`, name, name, name),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				fmt.Fprintf(out, "Usage: %s <query>\n", name)
				return exitSilently(1)
			}

			plugin, err := container.Registry.Lookup(name)
			if err != nil {
				return err
			}

			outcome, err := runSearch(cmd.Context(), container, plugin, strings.Join(args, " "))
			if err != nil {
				if errors.Is(err, errInvalidQuery) {
					fmt.Fprintln(out, "Not a valid query")
					return exitSilently(1)
				}
				return err
			}

			return printResults(out, outcome.Results, flags.JSON)
		},
	}

	cmd.Flags().BoolVar(&flags.JSON, "json", false, "Print one JSON object per result")

	return cmd
}

var errInvalidQuery = errors.New("not a valid query")

// runSearch dispatches raw to the plugin's source and waits for it to finish
func runSearch(ctx context.Context, container *CLIContainer, plugin ports.Plugin, raw string) (domain.Outcome, error) {
	source := plugin.Source()
	query := domain.NewQuery(raw)
	if !source.IsValidSourceForQuery(query) {
		return domain.Outcome{}, errInvalidQuery
	}

	outcome, err := container.Dispatcher.Search(ctx, source, query)
	if err != nil {
		return domain.Outcome{}, fmt.Errorf("search interrupted: %w", err)
	}
	return outcome, nil
}

// PerformFlags holds command-line flags for the perform command
type PerformFlags struct {
	Index int
}

// NewPerformCommand creates the command that runs a plugin's action
func NewPerformCommand(container *CLIContainer) *cobra.Command {
	flags := &PerformFlags{}

	cmd := &cobra.Command{
		Use:   "perform <plugin> <query>",
		Short: "Search with a plugin and perform its action on one result",
		Long: `Search with a plugin, pick one result and perform the plugin's action on it.

Examples:
  qsbp perform screensaver flurry
  qsbp perform template demo --index 0`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPerform(cmd.Context(), cmd.OutOrStdout(), container, args[0], strings.Join(args[1:], " "), flags.Index)
		},
	}

	cmd.Flags().IntVar(&flags.Index, "index", 0, "Index of the result to act on")

	return cmd
}

func runPerform(ctx context.Context, out io.Writer, container *CLIContainer, name, raw string, index int) error {
	plugin, err := container.Registry.Lookup(name)
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}
	action := plugin.Action()
	if action == nil {
		return &ExitError{Code: 1, Err: fmt.Errorf("plugin %s has no action", name)}
	}

	outcome, err := runSearch(ctx, container, plugin, raw)
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}
	if index < 0 || index >= len(outcome.Results) {
		return &ExitError{Code: 1, Err: fmt.Errorf("no result at index %d (%d results)", index, len(outcome.Results))}
	}

	selected := []domain.Result{outcome.Results[index]}
	if !action.AppliesToResults(selected) {
		return &ExitError{Code: 1, Err: fmt.Errorf("%s: %w", action.Name(), domain.ErrNotApplicable)}
	}

	ok, err := action.Perform(ctx, selected)
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}
	if !ok {
		return &ExitError{Code: 1, Err: fmt.Errorf("%s: %w", action.Name(), domain.ErrActionFailed)}
	}

	fmt.Fprintf(out, "Performed %s on %s\n", action.Name(), describe(selected[0]))
	return nil
}
