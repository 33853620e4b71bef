package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"quicksearch.dev/qsbp/internal/core/domain"
	"quicksearch.dev/qsbp/internal/util/json"
)

// NewConfigCommand creates the config command
func NewConfigCommand(container *CLIContainer) *cobra.Command {
	var configCmd = &cobra.Command{
		Use:   "config",
		Short: "Inspect and initialize configuration settings",
		Long: `Inspect the configuration used by qsbp, or write it to the config file.

Values come from the config file, then QSBP_* environment variables,
then command line flags.`,
	}

	configCmd.AddCommand(NewConfigShowCommand(container))
	configCmd.AddCommand(NewConfigPathCommand(container))
	configCmd.AddCommand(NewConfigInitCommand(container))

	return configCmd
}

// NewConfigShowCommand creates the show subcommand
func NewConfigShowCommand(container *CLIContainer) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := json.MarshalIndent(container.Config, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode configuration: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

// NewConfigPathCommand creates the path subcommand
func NewConfigPathCommand(container *CLIContainer) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath(container)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file path: %s\n", path)
			return nil
		},
	}
}

// NewConfigInitCommand creates the init subcommand
func NewConfigInitCommand(container *CLIContainer) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath(container)
			if err != nil {
				return err
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("configuration file already exists at %s (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("failed to check configuration file: %w", err)
			}

			if err := domain.SaveConfigTo(path, container.Config); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration file")
	return cmd
}

func configPath(container *CLIContainer) (string, error) {
	if container.ConfigPath != "" {
		return container.ConfigPath, nil
	}
	path, err := domain.GetConfigPath()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config path: %w", err)
	}
	return path, nil
}
