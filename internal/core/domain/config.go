package domain

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"quicksearch.dev/qsbp/internal/util/json"
)

// Config represents the plugin configuration
type Config struct {
	FinanceHost     string   `json:"finance_host"`
	ScreensaverDirs []string `json:"screensaver_dirs,omitempty"`
	HTTPTimeout     Duration `json:"http_timeout"`
	ProxyURL        string   `json:"proxy_url,omitempty"`
	UserAgent       string   `json:"user_agent,omitempty"`
	Debug           bool     `json:"debug"`
	LogLevel        string   `json:"log_level"`
	LogFormat       string   `json:"log_format"`
}

// Duration is a time.Duration that reads and writes as "30s" in JSON
type Duration time.Duration

// MarshalJSON implements json.Marshaler
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON accepts either a duration string or a number of nanoseconds
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid duration: %s", string(data))
	}
	*d = Duration(n)
	return nil
}

// Std returns the value as a time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// DefaultConfig returns a config with default values
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{
		FinanceHost:     "www.google.com",
		ScreensaverDirs: DefaultScreensaverDirs(home),
		HTTPTimeout:     0, // no timeout, matching the plugin host
		Debug:           false,
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

// DefaultScreensaverDirs returns the system, local and per-user folders
func DefaultScreensaverDirs(home string) []string {
	dirs := []string{
		"/System/Library/Screen Savers",
		"/Library/Screen Savers",
	}
	if home != "" {
		dirs = append(dirs, filepath.Join(home, "Library", "Screen Savers"))
	}
	return dirs
}

// LoadConfig loads configuration with precedence: env vars > file > defaults
func LoadConfig() (Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return applyEnv(DefaultConfig())
	}
	return LoadConfigFrom(configPath)
}

// LoadConfigFrom loads configuration from an explicit file path. A missing
// file is not an error.
func LoadConfigFrom(configPath string) (Config, error) {
	config := DefaultConfig()

	fileConfig, err := loadConfigFile(configPath, config)
	switch {
	case err == nil:
		config = fileConfig
	case !os.IsNotExist(err):
		return Config{}, err
	}

	return applyEnv(config)
}

func applyEnv(config Config) (Config, error) {
	if host := os.Getenv("QSBP_FINANCE_HOST"); host != "" {
		config.FinanceHost = host
	}
	if proxy := os.Getenv("QSBP_PROXY_URL"); proxy != "" {
		config.ProxyURL = proxy
	}
	if timeout := os.Getenv("QSBP_HTTP_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return Config{}, fmt.Errorf("invalid QSBP_HTTP_TIMEOUT: %w", err)
		}
		config.HTTPTimeout = Duration(d)
	}
	if debug := os.Getenv("QSBP_DEBUG"); debug != "" {
		b, err := strconv.ParseBool(debug)
		if err != nil {
			return Config{}, fmt.Errorf("invalid QSBP_DEBUG: %w", err)
		}
		config.Debug = b
	}
	if level := os.Getenv("QSBP_LOG_LEVEL"); level != "" {
		config.LogLevel = level
	}
	if format := os.Getenv("QSBP_LOG_FORMAT"); format != "" {
		config.LogFormat = format
	}
	if dirs := os.Getenv("QSBP_SCREENSAVER_DIRS"); dirs != "" {
		config.ScreensaverDirs = filepath.SplitList(dirs)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate checks the values that would otherwise fail late
func (c Config) Validate() error {
	if strings.TrimSpace(c.FinanceHost) == "" {
		return fmt.Errorf("finance_host cannot be empty")
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("http_timeout cannot be negative")
	}
	if c.ProxyURL != "" {
		u, err := url.Parse(c.ProxyURL)
		if err != nil {
			return fmt.Errorf("invalid proxy_url: %w", err)
		}
		switch u.Scheme {
		case "http", "https", "socks5":
		default:
			return fmt.Errorf("unsupported proxy scheme: %q", u.Scheme)
		}
	}
	switch c.LogFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("unsupported log_format: %q", c.LogFormat)
	}
	return nil
}

// SaveConfigTo saves configuration to configPath
func SaveConfigTo(configPath string, config Config) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// loadConfigFile overlays the file at configPath onto base
func loadConfigFile(configPath string, base Config) (Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return Config{}, err
	}

	config := base
	if err := json.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "qsbp", "config.json"), nil
}

// GetConfigPath returns the config file path (public helper)
func GetConfigPath() (string, error) {
	return getConfigPath()
}
