// Package page provides page-related commands.
package page

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/notehighlight-cli/api"
	"github.com/open-cli-collective/notehighlight-cli/internal/config"
	"github.com/open-cli-collective/notehighlight-cli/internal/pipeline"
	"github.com/open-cli-collective/notehighlight-cli/internal/view"
	"github.com/open-cli-collective/notehighlight-cli/pkg/pagexml"
)

// NewCmdPage creates the page command.
func NewCmdPage() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "page",
		Aliases: []string{"pages"},
		Short:   "Inspect note pages",
		Long:    `Commands for finding the page you are viewing and reading page text.`,
	}

	cmd.AddCommand(NewCmdCurrent())
	cmd.AddCommand(NewCmdView())

	return cmd
}

// globalOptions holds the root flags shared by the page commands.
type globalOptions struct {
	configPath string
	output     string
	noColor    bool
	verbose    bool

	stdout io.Writer
	stderr io.Writer
}

func (o *globalOptions) readFlags(cmd *cobra.Command) {
	o.configPath, _ = cmd.Flags().GetString("config")
	o.output, _ = cmd.Flags().GetString("output")
	o.noColor, _ = cmd.Flags().GetBool("no-color")
	o.verbose, _ = cmd.Flags().GetBool("verbose")
	o.stdout = cmd.OutOrStdout()
	o.stderr = cmd.ErrOrStderr()
}

func (o *globalOptions) renderer() *view.Renderer {
	r := view.NewRenderer(view.Format(o.output), o.noColor)
	if o.stdout != nil {
		r.SetWriter(o.stdout)
	}
	if o.stderr != nil {
		r.SetErrWriter(o.stderr)
	}
	return r
}

// pipeline creates a pipeline over provider, or over a client built from the
// config when provider is nil.
func (o *globalOptions) pipeline(provider pipeline.Provider) (*pipeline.Pipeline, error) {
	if provider == nil {
		cfg, err := config.Resolve(o.configPath)
		if err != nil {
			return nil, err
		}
		provider = api.NewClient(cfg.URL, cfg.Email, cfg.APIToken)
	}

	errOut := o.stderr
	if errOut == nil {
		errOut = os.Stderr
	}
	return pipeline.New(provider, view.NewLogger(errOut, o.verbose, o.noColor), pagexml.BuildOptions{}), nil
}
