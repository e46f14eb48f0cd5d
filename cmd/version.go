package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	config "github.com/inference-gateway/brain-dev/config"
	container "github.com/inference-gateway/brain-dev/internal/container"
	domain "github.com/inference-gateway/brain-dev/internal/domain"
	styles "github.com/inference-gateway/brain-dev/internal/ui/styles"
	version "github.com/inference-gateway/brain-dev/internal/version"
	table "github.com/jedib0t/go-pretty/v6/table"
	cobra "github.com/spf13/cobra"
)

// registry overrides where the CLI looks up the installed version. When nil
// the linker value and build info are consulted for manifest.package.
var registry version.Registry

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Long:  `Display version information for Dev Brain.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newContainer()
		if err != nil {
			return err
		}

		output, _ := cmd.Flags().GetString("output")
		return printVersionInfo(cmd.OutOrStdout(), c.VersionService().Info(), output)
	},
}

var versionCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the installed version against the release manifest",
	Long: `Compare the version this binary was built as with the version declared in
the release manifest. Exits non-zero when they differ, which usually means the
binary was not rebuilt or reinstalled after bumping the version.

Examples:
  brain-dev version check
  brain-dev version check --manifest ./release.toml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newContainer()
		if err != nil {
			return err
		}

		manifestPath, _ := cmd.Flags().GetString("manifest")
		result, err := c.VersionService().Check(cmd.Context(), manifestPath)
		if result != nil {
			printCheckResult(cmd.OutOrStdout(), result)
		}
		return err
	},
}

func init() {
	versionCmd.Flags().StringP("output", "o", "text", "Output format (text, json, table)")
	versionCheckCmd.Flags().StringP("manifest", "m", "", "Path to the release manifest (searched upwards from the working directory by default)")

	versionCmd.AddCommand(versionCheckCmd)
	rootCmd.AddCommand(versionCmd)
}

func newContainer() (*container.ServiceContainer, error) {
	cfg, err := getConfigFromViper()
	if err != nil {
		return nil, err
	}

	return newContainerFor(cfg), nil
}

func newContainerFor(cfg *config.Config) *container.ServiceContainer {
	return container.NewServiceContainer(
		cfg,
		container.WithViper(V),
		container.WithRegistry(registry),
	)
}

func printVersionInfo(w io.Writer, info domain.VersionInfo, output string) error {
	switch output {
	case "", "text":
		_, _ = fmt.Fprintf(w, "brain-dev version %s\n", info.Version)
		_, _ = fmt.Fprintf(w, "commit: %s\n", info.Commit)
		_, _ = fmt.Fprintf(w, "built at: %s\n", info.Date)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(info); err != nil {
			return fmt.Errorf("failed to encode version info: %w", err)
		}
	case "table":
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.AppendHeader(table.Row{"Field", "Value"})
		t.AppendRows([]table.Row{
			{"Version", info.Version},
			{"Commit", info.Commit},
			{"Built at", info.Date},
			{"Source", info.Source},
		})
		t.SetStyle(table.StyleRounded)
		t.Render()
	default:
		return fmt.Errorf("unsupported output format %q (expected text, json or table)", output)
	}
	return nil
}

func printCheckResult(w io.Writer, result *domain.CheckResult) {
	_, _ = fmt.Fprintln(w, styles.Header("Version check"))

	if result.Match {
		_, _ = fmt.Fprintf(w, "%s brain-dev %s matches %s\n", styles.StyledCheckMark(), result.RuntimeVersion, result.ManifestPath)
		return
	}

	_, _ = fmt.Fprintf(w, "%s installed %s, manifest declares %s\n", styles.StyledCrossMark(), result.RuntimeVersion, result.ManifestVersion)
	_, _ = fmt.Fprintln(w, styles.Dim(fmt.Sprintf("  manifest: %s", result.ManifestPath)))
	_, _ = fmt.Fprintln(w, styles.Dim(fmt.Sprintf("  drift: %s", result.Drift)))

	if result.RuntimeVersion == version.Fallback {
		_, _ = fmt.Fprintf(w, "%s no version recorded in this build; install a tagged release or build with -ldflags\n", styles.StyledWarnMark())
	}
}
