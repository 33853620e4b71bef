package di

import (
	"context"
	"fmt"
	"io"
	"os"

	"quicksearch.dev/qsbp/internal/application/dispatch"
	"quicksearch.dev/qsbp/internal/core/domain"
	httpinfra "quicksearch.dev/qsbp/internal/infrastructure/http"
	"quicksearch.dev/qsbp/internal/infrastructure/process"
	"quicksearch.dev/qsbp/internal/interfaces/cli"
	"quicksearch.dev/qsbp/internal/logging"
	"quicksearch.dev/qsbp/internal/plugins"
	"quicksearch.dev/qsbp/internal/plugins/screensaver"
	"quicksearch.dev/qsbp/internal/plugins/stockquote"
	"quicksearch.dev/qsbp/internal/plugins/template"
	"quicksearch.dev/qsbp/internal/plugins/teststub"
)

// Options select where configuration comes from and how logs are written
type Options struct {
	// ConfigPath overrides the default config file location
	ConfigPath string
	// Debug forces debug logging and plugin tracing
	Debug bool
	// LogFormat overrides the configured log format
	LogFormat string
	// LogOutput defaults to stderr
	LogOutput io.Writer
}

// Container holds all application dependencies
type Container struct {
	// Configuration
	Config     domain.Config
	ConfigPath string

	// Infrastructure
	Executor  *process.Executor
	Opener    *process.Opener
	Requester *httpinfra.StdHttpRequester

	// Application
	Dispatcher *dispatch.Dispatcher
	Registry   *plugins.Registry

	// CLI
	CLIContainer *cli.CLIContainer

	// Logger
	Logger logging.Logger

	options Options
}

// NewContainer creates the container from the default config location
func NewContainer() (*Container, error) {
	return NewContainerWithOptions(Options{})
}

// NewContainerWithOptions creates and wires every dependency
func NewContainerWithOptions(opts Options) (*Container, error) {
	container := &Container{options: opts}

	if err := container.initializeComponents(); err != nil {
		return nil, fmt.Errorf("failed to initialize components: %w", err)
	}

	return container, nil
}

// initializeComponents initializes all components with proper dependencies
func (c *Container) initializeComponents() error {
	// 1. Load configuration
	config, configPath, err := loadConfig(c.options.ConfigPath)
	if err != nil {
		return err
	}
	if c.options.Debug {
		config.Debug = true
	}
	if c.options.LogFormat != "" {
		config.LogFormat = c.options.LogFormat
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	c.Config = config
	c.ConfigPath = configPath

	// 2. Initialize logger
	level := config.LogLevel
	if config.Debug {
		level = "debug"
	}
	output := c.options.LogOutput
	if output == nil {
		output = os.Stderr
	}
	logger, err := logging.NewLogger(logging.Config{Level: level, Format: config.LogFormat, Output: output})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	c.Logger = logger

	// 3. Initialize infrastructure components
	c.Executor = process.NewExecutor(logger)
	c.Opener = process.NewOpener(c.Executor)
	c.Requester, err = httpinfra.NewStdHttpRequesterFromOptions(config.HTTPTimeout.Std(), config.ProxyURL, config.UserAgent)
	if err != nil {
		return fmt.Errorf("failed to create http requester: %w", err)
	}

	// 4. Initialize plugins
	c.Registry, err = plugins.NewRegistry(
		screensaver.New(config.ScreensaverDirs, c.Executor, logger),
		stockquote.New(c.Requester, stockquote.Options{FinanceHost: config.FinanceHost, Debug: config.Debug}, logger),
		template.New(c.Opener, logger),
		teststub.New(),
	)
	if err != nil {
		return fmt.Errorf("failed to register plugins: %w", err)
	}

	// 5. Initialize application services
	c.Dispatcher = dispatch.NewDispatcher(logger)

	// 6. Initialize CLI container
	c.CLIContainer = &cli.CLIContainer{
		Config:        c.Config,
		ConfigPath:    c.ConfigPath,
		Logger:        c.Logger,
		Registry:      c.Registry,
		Dispatcher:    c.Dispatcher,
		MainContainer: c,
	}

	c.Logger.Debug("container initialized", "config_path", configPath, "plugins", c.Registry.Names())
	return nil
}

func loadConfig(path string) (domain.Config, string, error) {
	if path == "" {
		config, err := domain.LoadConfig()
		if err != nil {
			return domain.Config{}, "", fmt.Errorf("failed to load configuration: %w", err)
		}
		path, _ = domain.GetConfigPath()
		return config, path, nil
	}

	config, err := domain.LoadConfigFrom(path)
	if err != nil {
		return domain.Config{}, "", fmt.Errorf("failed to load configuration from %s: %w", path, err)
	}
	return config, path, nil
}

// ApplyOverrides rebuilds the container with command line overrides and
// returns the new CLI container
func (c *Container) ApplyOverrides(overrides cli.Overrides) (*cli.CLIContainer, error) {
	opts := c.options
	if overrides.ConfigPath != "" {
		opts.ConfigPath = overrides.ConfigPath
	}
	if overrides.Debug {
		opts.Debug = true
	}
	if overrides.LogFormat != "" {
		opts.LogFormat = overrides.LogFormat
	}

	rebuilt, err := NewContainerWithOptions(opts)
	if err != nil {
		return nil, err
	}
	*c = *rebuilt
	c.CLIContainer.MainContainer = c
	return c.CLIContainer, nil
}

// GetCLIContainer returns the CLI container
func (c *Container) GetCLIContainer() *cli.CLIContainer {
	return c.CLIContainer
}

// Shutdown releases resources held by the container
func (c *Container) Shutdown(_ context.Context) error {
	c.Logger.Debug("shutting down")
	return nil
}
