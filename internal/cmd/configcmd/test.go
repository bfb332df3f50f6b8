package configcmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/notehighlight-cli/api"
	"github.com/open-cli-collective/notehighlight-cli/internal/config"
	"github.com/open-cli-collective/notehighlight-cli/pkg/pagexml"
)

// NewCmdTest creates the config test command.
func NewCmdTest() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test connectivity with configured credentials",
		Long: `Test that nhl can reach the notebook host service with the current
configuration, and report the page it would insert into.`,
		Example: `  # Test connection
  nhl config test`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			cfg, err := config.Resolve(configPath(cmd))
			if err != nil {
				return err
			}
			return runTest(cmd.Context(), cmd.OutOrStdout(), cfg, noColor)
		},
	}

	return cmd
}

func runTest(ctx context.Context, w io.Writer, cfg *config.Config, noColor bool) error {
	if noColor {
		color.NoColor = true
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)

	fmt.Fprintf(w, "Testing connection to %s...\n", cfg.URL)

	client := api.NewClient(cfg.URL, cfg.Email, cfg.APIToken)
	xml, err := client.GetHierarchy(ctx, &api.HierarchyOptions{Scope: api.ScopePages})
	if err != nil {
		var apiErr *api.ErrorResponse
		if errors.As(err, &apiErr) {
			switch apiErr.StatusCode {
			case http.StatusUnauthorized:
				_, _ = red.Fprintln(w, "✗ Authentication failed: 401 Unauthorized")
				fmt.Fprintln(w, "\nCheck your credentials with: nhl config show")
				fmt.Fprintln(w, "Reconfigure with: nhl init")
				return fmt.Errorf("authentication failed")
			case http.StatusForbidden:
				_, _ = red.Fprintln(w, "✗ Access denied: 403 Forbidden")
				fmt.Fprintln(w, "\nCheck your permissions.")
				return fmt.Errorf("access denied")
			}
		}
		_, _ = red.Fprintln(w, "✗ Connection failed:", err)
		fmt.Fprintln(w, "\nCheck your URL with: nhl config show")
		fmt.Fprintln(w, "Reconfigure with: nhl init")
		return fmt.Errorf("connection failed: %w", err)
	}

	doc, err := pagexml.ParseDocument(xml)
	if err != nil {
		_, _ = red.Fprintln(w, "✗ Hierarchy could not be read:", err)
		return err
	}

	_, _ = green.Fprintln(w, "✓ Authentication successful")
	_, _ = green.Fprintln(w, "✓ Hierarchy access verified")

	if pageID, ok := pagexml.CurrentPageID(doc, pagexml.NamespaceOf(doc)); ok {
		fmt.Fprintf(w, "\nCurrent page: %s\n", pageID)
	} else {
		_, _ = yellow.Fprintln(w, "\nNo page is currently being viewed.")
	}

	return nil
}
