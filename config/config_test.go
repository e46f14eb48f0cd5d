package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("context engine defaults", func(t *testing.T) {
		assert.Equal(t, "http://localhost:8765", cfg.ContextEngine.URL)
		assert.Equal(t, 30, cfg.ContextEngine.Timeout)
	})
	t.Run("server defaults", func(t *testing.T) {
		assert.Equal(t, TransportStdio, cfg.Server.Transport)
		assert.Equal(t, ":3000", cfg.Server.Addr)
		assert.Equal(t, "/mcp", cfg.Server.Path)
	})
	t.Run("logging defaults", func(t *testing.T) {
		assert.Equal(t, "warn", cfg.Logging.Level)
		assert.Equal(t, "console", cfg.Logging.Format)
		assert.Empty(t, cfg.Logging.Dir)
	})
	t.Run("manifest defaults", func(t *testing.T) {
		assert.Empty(t, cfg.Manifest.Path)
		assert.Equal(t, "release.toml", cfg.Manifest.Name)
		assert.Equal(t, "github.com/inference-gateway/brain-dev", cfg.Manifest.Package)
	})
	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, cfg.Validate())
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(cfg *Config)
		expectError bool
	}{
		{
			name:   "http transport with addr",
			mutate: func(cfg *Config) { cfg.Server.Transport = TransportHTTP },
		},
		{
			name:        "unknown transport",
			mutate:      func(cfg *Config) { cfg.Server.Transport = "sse" },
			expectError: true,
		},
		{
			name: "http transport without addr",
			mutate: func(cfg *Config) {
				cfg.Server.Transport = TransportHTTP
				cfg.Server.Addr = ""
			},
			expectError: true,
		},
		{
			name: "http transport with relative path",
			mutate: func(cfg *Config) {
				cfg.Server.Transport = TransportHTTP
				cfg.Server.Path = "mcp"
			},
			expectError: true,
		},
		{
			name:        "negative timeout",
			mutate:      func(cfg *Config) { cfg.ContextEngine.Timeout = -1 },
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if tt.expectError {
				assert.Error(t, cfg.Validate())
			} else {
				assert.NoError(t, cfg.Validate())
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name        string
		configYAML  string
		validator   func(t *testing.T, cfg *Config)
		expectError bool
	}{
		{
			name: "complete config",
			configYAML: `
context_engine:
  url: "http://engine:9000"
  timeout: 5
server:
  transport: http
  addr: ":8080"
  path: "/rpc"
logging:
  level: debug
  format: json
  dir: "/tmp/brain-dev"
manifest:
  path: "/src/release.toml"
  name: "release.toml"
  package: "example.com/brain"
`,
			validator: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "http://engine:9000", cfg.ContextEngine.URL)
				assert.Equal(t, 5, cfg.ContextEngine.Timeout)
				assert.Equal(t, TransportHTTP, cfg.Server.Transport)
				assert.Equal(t, ":8080", cfg.Server.Addr)
				assert.Equal(t, "/rpc", cfg.Server.Path)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
				assert.Equal(t, "/tmp/brain-dev", cfg.Logging.Dir)
				assert.Equal(t, "/src/release.toml", cfg.Manifest.Path)
				assert.Equal(t, "example.com/brain", cfg.Manifest.Package)
			},
		},
		{
			name: "minimal config keeps defaults",
			configYAML: `
logging:
  level: info
`,
			validator: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "console", cfg.Logging.Format)
				assert.Equal(t, TransportStdio, cfg.Server.Transport)
				assert.Equal(t, "release.toml", cfg.Manifest.Name)
			},
		},
		{
			name:        "invalid yaml",
			configYAML:  "server: [unterminated",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), ConfigFileName)
			require.NoError(t, os.WriteFile(configPath, []byte(tt.configYAML), 0644))

			cfg, err := LoadConfig(configPath)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.validator(t, cfg)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", ConfigFileName)

	cfg := DefaultConfig()
	cfg.Server.Transport = TransportHTTP
	cfg.Logging.Level = "debug"

	require.NoError(t, cfg.SaveConfig(configPath))

	loaded, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  transport: http\n")
}

func TestSaveConfig_ReadableByViper(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ConfigFileName)

	cfg := DefaultConfig()
	cfg.ContextEngine.URL = "http://engine:1234"
	require.NoError(t, cfg.SaveConfig(configPath))

	v := viper.New()
	v.SetConfigFile(configPath)
	require.NoError(t, v.ReadInConfig())

	fromViper := &Config{}
	require.NoError(t, v.Unmarshal(fromViper))
	assert.Equal(t, cfg, fromViper)
}
