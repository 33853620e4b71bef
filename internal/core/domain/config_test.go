package domain

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnv = []string{
	"QSBP_FINANCE_HOST",
	"QSBP_PROXY_URL",
	"QSBP_HTTP_TIMEOUT",
	"QSBP_DEBUG",
	"QSBP_LOG_LEVEL",
	"QSBP_LOG_FORMAT",
	"QSBP_SCREENSAVER_DIRS",
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, k := range configEnv {
		t.Setenv(k, "")
	}
}

func TestConfig_DefaultValues(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "www.google.com", config.FinanceHost)
	assert.Equal(t, time.Duration(0), config.HTTPTimeout.Std())
	assert.Equal(t, "info", config.LogLevel)
	assert.Equal(t, "text", config.LogFormat)
	assert.False(t, config.Debug)
	assert.Contains(t, config.ScreensaverDirs, "/System/Library/Screen Savers")
	assert.Contains(t, config.ScreensaverDirs, "/Library/Screen Savers")
	require.NoError(t, config.Validate())
}

func TestDefaultScreensaverDirs(t *testing.T) {
	assert.Len(t, DefaultScreensaverDirs(""), 2)
	dirs := DefaultScreensaverDirs("/home/u")
	assert.Equal(t, filepath.Join("/home/u", "Library", "Screen Savers"), dirs[len(dirs)-1])
}

func TestConfig_LoadPrecedence(t *testing.T) {
	clearConfigEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(configPath, []byte(`{
  "finance_host": "file.example",
  "http_timeout": "5s",
  "debug": true,
  "screensaver_dirs": ["/file/savers"]
}`), 0644))

	t.Run("file overrides defaults", func(t *testing.T) {
		config, err := LoadConfigFrom(configPath)
		require.NoError(t, err)

		assert.Equal(t, "file.example", config.FinanceHost)
		assert.Equal(t, 5*time.Second, config.HTTPTimeout.Std())
		assert.True(t, config.Debug)
		assert.Equal(t, []string{"/file/savers"}, config.ScreensaverDirs)
		assert.Equal(t, "info", config.LogLevel)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		t.Setenv("QSBP_FINANCE_HOST", "env.example")
		t.Setenv("QSBP_HTTP_TIMEOUT", "250ms")
		t.Setenv("QSBP_DEBUG", "false")
		t.Setenv("QSBP_LOG_FORMAT", "json")
		t.Setenv("QSBP_PROXY_URL", "socks5://127.0.0.1:1080")
		t.Setenv("QSBP_SCREENSAVER_DIRS", "/a"+string(filepath.ListSeparator)+"/b")

		config, err := LoadConfigFrom(configPath)
		require.NoError(t, err)

		assert.Equal(t, "env.example", config.FinanceHost)
		assert.Equal(t, 250*time.Millisecond, config.HTTPTimeout.Std())
		assert.False(t, config.Debug)
		assert.Equal(t, "json", config.LogFormat)
		assert.Equal(t, "socks5://127.0.0.1:1080", config.ProxyURL)
		assert.Equal(t, []string{"/a", "/b"}, config.ScreensaverDirs)
	})

	t.Run("missing file falls back to defaults", func(t *testing.T) {
		config, err := LoadConfigFrom(filepath.Join(t.TempDir(), "absent.json"))
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), config)
	})
}

func TestConfig_LoadErrors(t *testing.T) {
	clearConfigEnv(t)
	dir := t.TempDir()

	invalid := filepath.Join(dir, "invalid.json")
	require.NoError(t, os.WriteFile(invalid, []byte("{invalid json}"), 0644))
	_, err := LoadConfigFrom(invalid)
	assert.Error(t, err)

	badTimeout := filepath.Join(dir, "timeout.json")
	require.NoError(t, os.WriteFile(badTimeout, []byte(`{"http_timeout": "soon"}`), 0644))
	_, err = LoadConfigFrom(badTimeout)
	assert.Error(t, err)

	t.Setenv("QSBP_DEBUG", "maybe")
	_, err = LoadConfigFrom(filepath.Join(dir, "absent.json"))
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "empty host", mutate: func(c *Config) { c.FinanceHost = "  " }, wantErr: true},
		{name: "negative timeout", mutate: func(c *Config) { c.HTTPTimeout = Duration(-time.Second) }, wantErr: true},
		{name: "http proxy", mutate: func(c *Config) { c.ProxyURL = "http://proxy:3128" }},
		{name: "ftp proxy", mutate: func(c *Config) { c.ProxyURL = "ftp://proxy" }, wantErr: true},
		{name: "unparseable proxy", mutate: func(c *Config) { c.ProxyURL = "http://[::1" }, wantErr: true},
		{name: "json logs", mutate: func(c *Config) { c.LogFormat = "json" }},
		{name: "xml logs", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(&config)
			err := config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_SaveAndLoad(t *testing.T) {
	clearConfigEnv(t)
	configPath := filepath.Join(t.TempDir(), "nested", "config.json")

	config := DefaultConfig()
	config.FinanceHost = "quotes.example"
	config.HTTPTimeout = Duration(3 * time.Second)
	config.UserAgent = "qsbp-test"

	require.NoError(t, SaveConfigTo(configPath, config))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"http_timeout": "3s"`)

	loaded, err := LoadConfigFrom(configPath)
	require.NoError(t, err)
	assert.Equal(t, config, loaded)
}

func TestDuration_AcceptsNanoseconds(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalJSON([]byte("1500000000")))
	assert.Equal(t, 1500*time.Millisecond, d.Std())
}
