package configcmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/notehighlight-cli/internal/config"
)

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  `Display the current nhl configuration with credential source indicators.`,
		Example: `  # Show current config
  nhl config show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runShow(cmd.OutOrStdout(), configPath(cmd), noColor)
		},
	}

	return cmd
}

type shownField struct {
	label  string
	value  string
	inFile string
	env    string
	secret bool
}

func runShow(w io.Writer, configPath string, noColor bool) error {
	if noColor {
		color.NoColor = true
	}

	fileCfg, fileErr := config.Load(configPath)
	if fileErr != nil {
		fileCfg = &config.Config{}
	}

	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return err
	}

	fields := []shownField{
		{label: "URL", value: cfg.URL, inFile: fileCfg.URL, env: "NHL_URL"},
		{label: "Email", value: cfg.Email, inFile: fileCfg.Email, env: "NHL_EMAIL"},
		{label: "API Token", value: cfg.APIToken, inFile: fileCfg.APIToken, env: "NHL_API_TOKEN", secret: true},
		{label: "Highlighter", value: cfg.Highlighter, inFile: fileCfg.Highlighter, env: "NHL_HIGHLIGHTER"},
		{label: "Font", value: cfg.Font, inFile: fileCfg.Font, env: "NHL_FONT"},
		{label: "Font policy", value: cfg.FontPolicy, inFile: fileCfg.FontPolicy},
		{label: "Default font", value: cfg.DefaultFont, inFile: fileCfg.DefaultFont},
		{label: "Output", value: cfg.OutputFormat, inFile: fileCfg.OutputFormat},
	}

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)

	for _, f := range fields {
		_, _ = bold.Fprintf(w, "%-14s", f.label+":")
		if f.value == "" {
			_, _ = dim.Fprintln(w, "-")
			continue
		}

		display := f.value
		if f.secret {
			display = maskToken(f.value)
		}
		fmt.Fprint(w, display)
		_, _ = dim.Fprintf(w, "  (source: %s)\n", valueSource(f, fileErr == nil))
	}

	fmt.Fprintln(w)
	_, _ = dim.Fprintf(w, "Config file: %s\n", configPath)
	if fileErr != nil {
		_, _ = dim.Fprintln(w, "(file not found)")
	}

	return nil
}

// maskToken keeps the first and last four characters of long secrets.
func maskToken(v string) string {
	if len(v) <= 8 {
		return strings.Repeat("*", len(v))
	}
	return v[:4] + strings.Repeat("*", len(v)-8) + v[len(v)-4:]
}

// valueSource names where a resolved value came from: its environment
// variable, the config file, or "-" when neither explains it.
func valueSource(f shownField, haveFile bool) string {
	if f.env != "" && os.Getenv(f.env) == f.value {
		return f.env
	}
	if haveFile && f.inFile == f.value {
		return "config"
	}
	return "-"
}
