package page

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/notehighlight-cli/api"
	"github.com/open-cli-collective/notehighlight-cli/internal/pipeline"
	"github.com/open-cli-collective/notehighlight-cli/internal/view"
	"github.com/open-cli-collective/notehighlight-cli/pkg/md"
	"github.com/open-cli-collective/notehighlight-cli/pkg/pagexml"
)

type viewOptions struct {
	globalOptions
	raw bool
}

type pageText struct {
	ID       string   `json:"id"`
	Text     []string `json:"text"`
	Markdown string   `json:"markdown"`
}

// NewCmdView creates the page view command.
func NewCmdView() *cobra.Command {
	opts := &viewOptions{}

	cmd := &cobra.Command{
		Use:   "view [page-id]",
		Short: "View a page",
		Long: `View the text of a page as markdown. Without a page ID the page you are
viewing is shown.`,
		Example: `  # View the current page
  nhl page view

  # View a page by ID
  nhl page view "{A1B2}{1}{B0}"

  # View the raw page document
  nhl page view --raw`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.readFlags(cmd)
			var pageID string
			if len(args) > 0 {
				pageID = args[0]
			}
			return runView(cmd.Context(), pageID, opts, nil)
		},
	}

	cmd.Flags().BoolVar(&opts.raw, "raw", false, "Show the raw page document")

	return cmd
}

func runView(ctx context.Context, pageID string, opts *viewOptions, provider pipeline.Provider) error {
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

	if pageID == "" {
		_, pageID, err = pl.CurrentPage(ctx)
		if err != nil {
			return err
		}
	}

	content, err := pl.Provider.GetPageContent(ctx, pageID, &api.PageContentOptions{Info: api.PageInfoBasic})
	if err != nil {
		return fmt.Errorf("failed to get page: %w", err)
	}

	renderer := opts.renderer()
	if opts.raw {
		renderer.RenderText(content)
		return nil
	}

	doc, err := pagexml.ParseDocument(content)
	if err != nil {
		return fmt.Errorf("failed to read page: %w", err)
	}
	payloads := pagexml.TextPayloads(doc, pagexml.NamespaceOf(doc))

	markdown, err := md.FromPageText(payloads)
	if err != nil {
		// Fall back to raw content if conversion fails
		renderer.Warning("Failed to convert to markdown, showing raw text")
		for _, p := range payloads {
			renderer.RenderText(p)
		}
		return nil
	}

	if renderer.Format() == view.FormatJSON {
		return renderer.RenderJSON(pageText{ID: pageID, Text: payloads, Markdown: markdown})
	}

	if renderer.Format() != view.FormatPlain {
		renderer.RenderKeyValue("ID", pageID)
		renderer.RenderText("")
	}
	if len(payloads) == 0 {
		renderer.RenderText("(No content)")
		return nil
	}
	renderer.RenderText(markdown)

	return nil
}
