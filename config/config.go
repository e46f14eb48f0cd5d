package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	ConfigDirName     = ".brain-dev"
	ConfigFileName    = "config.yaml"
	DefaultConfigPath = ConfigDirName + "/" + ConfigFileName
	EnvPrefix         = "BRAIN_DEV"
)

// Transports supported by the MCP server
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config represents the Dev Brain configuration
type Config struct {
	ContextEngine ContextEngineConfig `yaml:"context_engine" mapstructure:"context_engine"`
	Server        ServerConfig        `yaml:"server" mapstructure:"server"`
	Logging       LoggingConfig       `yaml:"logging" mapstructure:"logging"`
	Manifest      ManifestConfig      `yaml:"manifest" mapstructure:"manifest"`
}

// ContextEngineConfig points at the Context Engine the insights are built on
type ContextEngineConfig struct {
	URL     string `yaml:"url" mapstructure:"url"`
	Timeout int    `yaml:"timeout" mapstructure:"timeout"`
}

// ServerConfig contains MCP server settings
type ServerConfig struct {
	Transport string `yaml:"transport" mapstructure:"transport"`
	Addr      string `yaml:"addr" mapstructure:"addr"`
	Path      string `yaml:"path" mapstructure:"path"`
}

// LoggingConfig contains logger settings
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
	Dir    string `yaml:"dir" mapstructure:"dir"`
}

// ManifestConfig tells the version check where the package manifest lives
type ManifestConfig struct {
	Path    string `yaml:"path" mapstructure:"path"`
	Name    string `yaml:"name" mapstructure:"name"`
	Package string `yaml:"package" mapstructure:"package"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		ContextEngine: ContextEngineConfig{
			URL:     "http://localhost:8765",
			Timeout: 30,
		},
		Server: ServerConfig{
			Transport: TransportStdio,
			Addr:      ":3000",
			Path:      "/mcp",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
			Dir:    "",
		},
		Manifest: ManifestConfig{
			Path:    "",
			Name:    "release.toml",
			Package: "github.com/inference-gateway/brain-dev",
		},
	}
}

// Validate checks values that cannot be defaulted
func (c *Config) Validate() error {
	switch c.Server.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("unsupported server transport %q (expected %s or %s)", c.Server.Transport, TransportStdio, TransportHTTP)
	}

	if c.Server.Transport == TransportHTTP && c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required for the %s transport", TransportHTTP)
	}

	if c.Server.Transport == TransportHTTP && (c.Server.Path == "" || c.Server.Path[0] != '/') {
		return fmt.Errorf("server.path must start with / for the %s transport, got %q", TransportHTTP, c.Server.Path)
	}

	if c.ContextEngine.Timeout < 0 {
		return fmt.Errorf("context_engine.timeout must not be negative")
	}

	return nil
}

// LoadConfig loads configuration from file, falling back to defaults when
// the file does not exist. Keys absent from the file keep their defaults.
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = getDefaultConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to file
func (c *Config) SaveConfig(configPath string) error {
	if configPath == "" {
		configPath = getDefaultConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := c.Marshal()
	if err != nil {
		return err
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Marshal renders the configuration as YAML with 2-space indentation
func (c *Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to close YAML encoder: %w", err)
	}

	return buf.Bytes(), nil
}

func getDefaultConfigPath() string {
	wd, err := os.Getwd()
	if err != nil {
		return DefaultConfigPath
	}
	return filepath.Join(wd, DefaultConfigPath)
}
