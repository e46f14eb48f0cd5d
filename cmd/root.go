package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	config "github.com/inference-gateway/brain-dev/config"
	logger "github.com/inference-gateway/brain-dev/internal/logger"
	cobra "github.com/spf13/cobra"
	viper "github.com/spf13/viper"
	gotenv "github.com/subosito/gotenv"
)

// V holds the merged file, environment and flag configuration
var V *viper.Viper

var rootCmd = &cobra.Command{
	Use:   "brain-dev",
	Short: "Dev Brain, intelligent developer insights over MCP",
	Long: `Dev Brain is an MCP server that consumes the Context Engine to provide
developer insights to coding agents.

Run 'brain-dev serve' to start the MCP server, or 'brain-dev version check'
to verify the installed build against the release manifest.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Welcome to Dev Brain!")
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Use 'brain-dev serve' to start the MCP server or --help to see available commands.")
	},
}

func Execute() {
	defer logger.Close()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", fmt.Sprintf("config file (default is %s)", config.DefaultConfigPath))
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	if err := loadConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads .env, the config file and BRAIN_DEV_* variables into V
// and initializes the logger from the result
func loadConfig() error {
	if err := gotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v, config.DefaultConfig())

	v.SetEnvPrefix(config.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configPath, _ := rootCmd.PersistentFlags().GetString("config")
	if configPath == "" {
		configPath = config.DefaultConfigPath
	}
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to read %s: %w", configPath, err)
		}
	}

	V = v

	cfg, err := getConfigFromViper()
	if err != nil {
		return err
	}

	verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
	if err := logger.Init(verbose, cfg); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Debug("Configuration loaded", "path", configPath, "transport", cfg.Server.Transport)
	return nil
}

// setDefaults registers every key so AutomaticEnv can override nested values
func setDefaults(v *viper.Viper, cfg *config.Config) {
	v.SetDefault("context_engine.url", cfg.ContextEngine.URL)
	v.SetDefault("context_engine.timeout", cfg.ContextEngine.Timeout)
	v.SetDefault("server.transport", cfg.Server.Transport)
	v.SetDefault("server.addr", cfg.Server.Addr)
	v.SetDefault("server.path", cfg.Server.Path)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("logging.dir", cfg.Logging.Dir)
	v.SetDefault("manifest.path", cfg.Manifest.Path)
	v.SetDefault("manifest.name", cfg.Manifest.Name)
	v.SetDefault("manifest.package", cfg.Manifest.Package)
}

func getConfigFromViper() (*config.Config, error) {
	if V == nil {
		return config.DefaultConfig(), nil
	}

	cfg := config.DefaultConfig()
	if err := V.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
