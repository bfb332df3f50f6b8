package page

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/notehighlight-cli/internal/pipeline"
	"github.com/open-cli-collective/notehighlight-cli/internal/view"
	"github.com/open-cli-collective/notehighlight-cli/pkg/pagexml"
)

type currentOptions struct {
	globalOptions
}

type currentPage struct {
	ID       string            `json:"id"`
	Position *pagexml.Position `json:"position"`
}

// NewCmdCurrent creates the page current command.
func NewCmdCurrent() *cobra.Command {
	opts := &currentOptions{}

	cmd := &cobra.Command{
		Use:   "current",
		Short: "Show the page you are viewing",
		Long: `Show the ID of the page marked as currently viewed and the position of
the outline holding the cursor, if any. This is where insert puts code.`,
		Example: `  # Show the current page
  nhl page current

  # As JSON
  nhl page current -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.readFlags(cmd)
			return runCurrent(cmd.Context(), opts, nil)
		},
	}

	return cmd
}

func runCurrent(ctx context.Context, opts *currentOptions, provider pipeline.Provider) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}

	pl, err := opts.pipeline(provider)
	if err != nil {
		return err
	}

	target, err := pl.Locate(ctx)
	if err != nil {
		if errors.Is(err, pipeline.ErrNoCurrentPage) {
			return fmt.Errorf("%w: open a page in your notebook and try again", err)
		}
		return err
	}

	renderer := opts.renderer()
	if renderer.Format() == view.FormatJSON {
		return renderer.RenderJSON(currentPage{ID: target.PageID, Position: target.Position})
	}

	x, y := "-", "-"
	if target.Position != nil {
		x, y = target.Position.X, target.Position.Y
	}
	renderer.RenderTable([]string{"ID", "X", "Y"}, [][]string{{target.PageID, x, y}})

	return nil
}
