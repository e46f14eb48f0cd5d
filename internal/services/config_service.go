package services

import (
	"bytes"
	"fmt"

	config "github.com/inference-gateway/brain-dev/config"
	viper "github.com/spf13/viper"
)

// ConfigService handles configuration reloading and persisted edits
type ConfigService struct {
	viper  *viper.Viper
	config *config.Config
}

// NewConfigService creates a new config service
func NewConfigService(v *viper.Viper, cfg *config.Config) *ConfigService {
	return &ConfigService{
		viper:  v,
		config: cfg,
	}
}

// Reload re-reads the config file and merges it over the defaults
func (cs *ConfigService) Reload() (*config.Config, error) {
	if err := cs.viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to re-read config file: %w", err)
	}

	newConfig := config.DefaultConfig()
	if err := cs.viper.Unmarshal(newConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal reloaded config: %w", err)
	}

	if err := newConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cs.config = newConfig
	return newConfig, nil
}

// GetConfig returns the current config
func (cs *ConfigService) GetConfig() *config.Config {
	return cs.config
}

// SetValue sets a configuration value using dot notation and saves it to
// disk. Only the file contents are rewritten; environment overrides held by
// the live viper instance are not persisted.
func (cs *ConfigService) SetValue(key, value string) error {
	if !cs.knownKey(key) {
		return fmt.Errorf("unknown configuration key %q", key)
	}

	if err := cs.write(key, value); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	if _, err := cs.Reload(); err != nil {
		return fmt.Errorf("failed to reload config after setting: %w", err)
	}

	return nil
}

func (cs *ConfigService) knownKey(key string) bool {
	defaults, err := viperFor(config.DefaultConfig())
	if err != nil {
		return false
	}
	if !defaults.IsSet(key) {
		return false
	}
	_, section := defaults.Get(key).(map[string]any)
	return !section
}

// write applies key=value to the config file on disk and saves it through the
// YAML encoder so the file keeps the same layout as `config init` produces
func (cs *ConfigService) write(key, value string) error {
	filename := cs.viper.ConfigFileUsed()
	if filename == "" {
		return fmt.Errorf("no config file is currently being used")
	}

	onDisk, err := config.LoadConfig(filename)
	if err != nil {
		return err
	}

	file, err := viperFor(onDisk)
	if err != nil {
		return err
	}
	file.Set(key, value)

	cfg := config.DefaultConfig()
	if err := file.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	return cfg.SaveConfig(filename)
}

// viperFor loads cfg into a standalone viper instance
func viperFor(cfg *config.Config) (*viper.Viper, error) {
	data, err := cfg.Marshal()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return v, nil
}
