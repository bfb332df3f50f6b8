// Package init provides the init command for nhl.
package init

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/notehighlight-cli/api"
	"github.com/open-cli-collective/notehighlight-cli/internal/config"
	"github.com/open-cli-collective/notehighlight-cli/pkg/pagexml"
)

type initOptions struct {
	configPath  string
	url         string
	email       string
	highlighter string
	noVerify    bool
}

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize nhl configuration",
		Long: `Initialize nhl with the notebook host service and your highlighter.

This command will guide you through setting up the service URL, your
credentials, the code font and the highlighter command. The configuration
will be saved to ~/.config/nhl/config.yml.

The highlighter is any command that takes a language tag and an output path
as its last two arguments and writes highlighted HTML to that path.`,
		Example: `  # Interactive setup
  nhl init

  # Pre-populate URL
  nhl init --url http://localhost:8642`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.configPath, _ = cmd.Flags().GetString("config")
			return runInit(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.url, "url", "", "Host service URL (e.g., http://localhost:8642)")
	cmd.Flags().StringVar(&opts.email, "email", "", "Your account email")
	cmd.Flags().StringVar(&opts.highlighter, "highlighter", "", "Highlighter command")
	cmd.Flags().BoolVar(&opts.noVerify, "no-verify", false, "Skip connection verification")

	return cmd
}

func runInit(ctx context.Context, opts *initOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	configPath := opts.configPath
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		var overwrite bool
		err := huh.NewConfirm().
			Title("Configuration already exists").
			Description(fmt.Sprintf("Overwrite %s?", configPath)).
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Println("Initialization cancelled.")
			return nil
		}
	}

	cfg := &config.Config{
		URL:         opts.url,
		Email:       opts.email,
		Highlighter: opts.highlighter,
		FontPolicy:  string(pagexml.FontPolicyEmpty),
	}

	if err := newForm(cfg).Run(); err != nil {
		return err
	}

	// Normalize URL
	cfg.NormalizeURL()

	// Validate
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Verify connection unless skipped
	if !opts.noVerify {
		fmt.Print("Verifying connection... ")
		if err := verifyConnection(ctx, cfg); err != nil {
			fmt.Println("failed!")
			return fmt.Errorf("connection verification failed: %w", err)
		}
		fmt.Println("success!")
	}

	// Save configuration
	if err := cfg.Save(configPath); err != nil {
		return err
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	fmt.Println("\nYou're all set! Try running:")
	fmt.Println("  nhl page current")
	fmt.Println("  nhl insert --lang go")

	return nil
}

func newForm(cfg *config.Config) *huh.Form {
	required := func(name string) func(string) error {
		return func(s string) error {
			if s == "" {
				return fmt.Errorf("%s is required", name)
			}
			return nil
		}
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Service URL").
				Description("URL of the notebook host service").
				Placeholder("http://localhost:8642").
				Value(&cfg.URL).
				Validate(required("URL")),

			huh.NewInput().
				Title("Email").
				Description("Your account email").
				Placeholder("you@example.com").
				Value(&cfg.Email).
				Validate(required("email")),

			huh.NewInput().
				Title("API Token").
				EchoMode(huh.EchoModePassword).
				Value(&cfg.APIToken).
				Validate(required("API token")),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Highlighter (optional)").
				Description("Command run with a language tag and an output path").
				Placeholder("pygmentize-html").
				Value(&cfg.Highlighter),

			huh.NewInput().
				Title("Font (optional)").
				Description("Font family for inserted code").
				Placeholder("Consolas").
				Value(&cfg.Font),

			huh.NewSelect[string]().
				Title("When no font is set").
				Options(
					huh.NewOption("Write an empty font-family", string(pagexml.FontPolicyEmpty)),
					huh.NewOption("Leave the style out", string(pagexml.FontPolicyOmit)),
					huh.NewOption("Use a default font", string(pagexml.FontPolicyDefault)),
				).
				Value(&cfg.FontPolicy),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Default font").
				Placeholder("Consolas").
				Value(&cfg.DefaultFont).
				Validate(required("default font")),
		).WithHideFunc(func() bool {
			return cfg.FontPolicy != string(pagexml.FontPolicyDefault)
		}),
	)
}

const verifyTimeout = 10 * time.Second

// verifyConnection lists the notebooks as a cheap authenticated request.
func verifyConnection(ctx context.Context, cfg *config.Config) error {
	client := api.NewClient(cfg.URL, cfg.Email, cfg.APIToken, api.WithTimeout(verifyTimeout))
	_, err := client.GetHierarchy(ctx, &api.HierarchyOptions{Scope: api.ScopeNotebooks})
	if err == nil {
		return nil
	}

	var apiErr *api.ErrorResponse
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized:
			return fmt.Errorf("authentication failed - check your email and API token")
		case http.StatusForbidden:
			return fmt.Errorf("access denied - check your permissions")
		}
	}

	return err
}
