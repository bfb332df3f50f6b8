// Package root provides the root command for the nhl CLI.
package root

import (
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/notehighlight-cli/internal/cmd/completion"
	"github.com/open-cli-collective/notehighlight-cli/internal/cmd/configcmd"
	initcmd "github.com/open-cli-collective/notehighlight-cli/internal/cmd/init"
	"github.com/open-cli-collective/notehighlight-cli/internal/cmd/insert"
	"github.com/open-cli-collective/notehighlight-cli/internal/cmd/page"
	"github.com/open-cli-collective/notehighlight-cli/internal/config"
	"github.com/open-cli-collective/notehighlight-cli/internal/version"
)

// NewCmdRoot creates the root command for nhl.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nhl",
		Short: "Insert syntax-highlighted code into your notes",
		Long: `nhl inserts syntax-highlighted code into the note page you are viewing.

It finds the current page through the notebook host service, places the code
at the outline holding your cursor, and keeps the highlighter's formatting.

Get started by running: nhl init`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return applyConfigDefaults(cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/nhl/config.yml)")
	cmd.PersistentFlags().StringP("output", "o", "table", "output format: table, json, plain")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "log each pipeline stage to stderr")

	// Set version template
	cmd.SetVersionTemplate("nhl version {{.Version}} (commit: " + version.Commit + ", built: " + version.Date + ")\n")

	// Subcommands
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(insert.NewCmdInsert())
	cmd.AddCommand(page.NewCmdPage())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(completion.NewCmdCompletion())

	return cmd
}

// applyConfigDefaults takes --output from the config file when the flag was
// not given. A missing or unreadable config leaves the defaults alone.
func applyConfigDefaults(cmd *cobra.Command) error {
	if cmd.Flags().Changed("output") {
		return nil
	}

	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultConfigPath()
	}

	cfg, err := config.LoadWithEnv(path)
	if err != nil || cfg.OutputFormat == "" {
		return nil
	}
	return cmd.Flags().Set("output", cfg.OutputFormat)
}
