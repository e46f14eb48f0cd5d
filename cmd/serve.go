package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	config "github.com/inference-gateway/brain-dev/config"
	logger "github.com/inference-gateway/brain-dev/internal/logger"
	cobra "github.com/spf13/cobra"
	zap "go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Dev Brain MCP server",
	Long: `Start the Model Context Protocol server. By default the server speaks MCP
over stdin/stdout so it can be launched directly by an MCP client. Use
--transport=http to listen on a TCP address instead.

Examples:
  brain-dev serve
  brain-dev serve --transport http --addr :3000 --path /mcp`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfigFromViper()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if transport, _ := cmd.Flags().GetString("transport"); transport != "" {
			cfg.Server.Transport = transport
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}
		if path, _ := cmd.Flags().GetString("path"); path != "" {
			cfg.Server.Path = path
		}

		if err := cfg.Validate(); err != nil {
			return err
		}

		return startMCPServer(cmd.Context(), cfg)
	},
}

func init() {
	serveCmd.Flags().String("transport", "", fmt.Sprintf("MCP transport (%s or %s)", config.TransportStdio, config.TransportHTTP))
	serveCmd.Flags().String("addr", "", "Listen address for the http transport")
	serveCmd.Flags().String("path", "", "Endpoint path for the http transport")

	rootCmd.AddCommand(serveCmd)
}

func startMCPServer(ctx context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx = logger.ContextWithLogger(ctx, zap.L())

	c := newContainerFor(cfg)
	logger.Info("Dev Brain starting",
		"transport", c.Config().Server.Transport,
		"version", c.VersionService().Info().Version,
	)

	if err := c.MCPServer().Serve(ctx); err != nil {
		logger.Error("Dev Brain stopped with error", "error", err)
		return err
	}

	logger.Info("Dev Brain stopped")
	return nil
}
