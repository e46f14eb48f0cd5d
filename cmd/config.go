package cmd

import (
	"fmt"
	"os"

	config "github.com/inference-gateway/brain-dev/config"
	cobra "github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage Dev Brain configuration",
	Long:  `Inspect and edit the Dev Brain configuration file.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long:  `Print the configuration after merging defaults, the config file and BRAIN_DEV_* environment variables.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfigFromViper()
		if err != nil {
			return err
		}

		data, err := cfg.Marshal()
		if err != nil {
			return err
		}

		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new project configuration",
	Long: `Initialize a new .brain-dev/config.yaml configuration file in the current directory.
This creates a local project configuration with default settings.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := configFilePath()

		if _, err := os.Stat(configPath); err == nil {
			overwrite, _ := cmd.Flags().GetBool("overwrite")
			if !overwrite {
				return fmt.Errorf("configuration file %s already exists (use --overwrite to replace)", configPath)
			}
		}

		if err := config.DefaultConfig().SaveConfig(configPath); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully created %s\n", configPath)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value using dot notation and save it to the config file.

Examples:
  brain-dev config set server.transport http
  brain-dev config set logging.level debug`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if V == nil || V.ConfigFileUsed() == "" {
			return fmt.Errorf("no configuration loaded")
		}
		if _, err := os.Stat(V.ConfigFileUsed()); err != nil {
			return fmt.Errorf("configuration file %s not found (run 'brain-dev config init' first)", V.ConfigFileUsed())
		}

		cfg, err := getConfigFromViper()
		if err != nil {
			return err
		}

		if err := newContainerFor(cfg).ConfigService().SetValue(args[0], args[1]); err != nil {
			return err
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	configInitCmd.Flags().Bool("overwrite", false, "Overwrite an existing configuration file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func configFilePath() string {
	if configPath, _ := rootCmd.PersistentFlags().GetString("config"); configPath != "" {
		return configPath
	}
	return config.DefaultConfigPath
}
