// Package insert provides the insert command.
package insert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/notehighlight-cli/api"
	"github.com/open-cli-collective/notehighlight-cli/internal/artifact"
	"github.com/open-cli-collective/notehighlight-cli/internal/config"
	"github.com/open-cli-collective/notehighlight-cli/internal/editor"
	"github.com/open-cli-collective/notehighlight-cli/internal/pipeline"
	"github.com/open-cli-collective/notehighlight-cli/internal/view"
	"github.com/open-cli-collective/notehighlight-cli/pkg/pagexml"
)

type insertOptions struct {
	file        string
	highlighter string
	lang        string
	font        string
	fontPolicy  string
	defaultFont string
	dryRun      bool
	configPath  string
	output      string
	noColor     bool
	verbose     bool
	tempDir     string

	stdin  io.Reader // For testing; nil means os.Stdin when it is piped
	stdout io.Writer
	stderr io.Writer
}

// NewCmdInsert creates the insert command.
func NewCmdInsert() *cobra.Command {
	opts := &insertOptions{}

	cmd := &cobra.Command{
		Use:   "insert",
		Short: "Insert highlighted code into the current page",
		Long: `Insert syntax-highlighted HTML into the page you are viewing.

The code is placed at the outline that holds your cursor. Without a partial
selection the host decides where the new outline goes.

Highlighted HTML can be provided via:
- --file flag to read a prepared HTML file
- Standard input (pipe content)
- The configured highlighter command (default, or with --highlighter)

The highlighter is run with the language tag and an output path as its last
two arguments. Closing it without writing the output cancels the insertion.`,
		Example: `  # Run the configured highlighter for Go code
  nhl insert --lang go

  # Insert a prepared file
  nhl insert --file snippet.html

  # Pipe from another tool
  pygmentize -f html -O noclasses snippet.go | nhl insert

  # Show the page update without sending it
  nhl insert --file snippet.html --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.configPath, _ = cmd.Flags().GetString("config")
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.verbose, _ = cmd.Flags().GetBool("verbose")
			opts.stdout = cmd.OutOrStdout()
			opts.stderr = cmd.ErrOrStderr()
			return runInsert(cmd.Context(), opts, nil)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Read highlighted HTML from file")
	cmd.Flags().StringVar(&opts.highlighter, "highlighter", "", "Highlighter command (overrides config)")
	cmd.Flags().StringVarP(&opts.lang, "lang", "l", "", "Language tag passed to the highlighter")
	cmd.Flags().StringVar(&opts.font, "font", "", "Font family for the inserted code (overrides config)")
	cmd.Flags().StringVar(&opts.fontPolicy, "font-policy", "", "Style when no font is set: empty, omit, default")
	cmd.Flags().StringVar(&opts.defaultFont, "default-font", "", "Font used by --font-policy default")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print the exact page update instead of sending it")

	return cmd
}

func runInsert(ctx context.Context, opts *insertOptions, provider pipeline.Provider) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}

	cfg, err := loadConfig(opts, provider == nil)
	if err != nil {
		return err
	}
	if provider == nil {
		provider = api.NewClient(cfg.URL, cfg.Email, cfg.APIToken)
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)
	if opts.stdout != nil {
		renderer.SetWriter(opts.stdout)
	}
	errOut := opts.stderr
	if errOut == nil {
		errOut = os.Stderr
	}
	renderer.SetErrWriter(errOut)

	step, err := selectStep(opts, cfg)
	if err != nil {
		return err
	}

	html, err := editor.Await(ctx, step, opts.tempDir)
	if errors.Is(err, artifact.ErrCancelled) {
		renderer.Warning("Insertion cancelled.")
		return nil
	}
	if err != nil {
		return err
	}

	logger := view.NewLogger(errOut, opts.verbose, opts.noColor)
	pl := pipeline.New(provider, logger, cfg.BuildOptions())

	var res *pipeline.Result
	if opts.dryRun {
		target, err := pl.Locate(ctx)
		if err != nil {
			return describe(err)
		}
		res, err = pl.Prepare(target, html)
		if err != nil {
			return err
		}
	} else {
		res, err = pl.Insert(ctx, html)
		if err != nil {
			return describe(err)
		}
	}

	return render(renderer, res)
}

func loadConfig(opts *insertOptions, validate bool) (*config.Config, error) {
	var cfg *config.Config
	if validate {
		c, err := config.Resolve(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = c
	} else {
		path := opts.configPath
		if path == "" {
			path = config.DefaultConfigPath()
		}
		c, err := config.LoadWithEnv(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	}

	if opts.font != "" {
		cfg.Font = opts.font
	}
	if opts.fontPolicy != "" {
		cfg.FontPolicy = opts.fontPolicy
	}
	if opts.defaultFont != "" {
		cfg.DefaultFont = opts.defaultFont
	}
	if opts.highlighter != "" {
		cfg.Highlighter = opts.highlighter
	}

	if !pagexml.FontPolicy(cfg.FontPolicy).Valid() {
		return nil, fmt.Errorf("invalid font policy %q (use empty, omit or default)", cfg.FontPolicy)
	}

	return cfg, nil
}

// selectStep picks where the highlighted HTML comes from. An explicit
// --file or --highlighter wins, then piped stdin, then the configured
// highlighter.
func selectStep(opts *insertOptions, cfg *config.Config) (editor.Step, error) {
	if opts.file != "" {
		return &editor.FileStep{Path: opts.file}, nil
	}

	if opts.highlighter == "" {
		if opts.stdin != nil {
			return &editor.ReaderStep{Reader: opts.stdin}, nil
		}
		if !isTerminal() {
			return &editor.ReaderStep{Reader: os.Stdin}, nil
		}
	}

	fields := strings.Fields(cfg.Highlighter)
	if len(fields) == 0 {
		return nil, errors.New("no input: use --file, pipe HTML on stdin, or configure a highlighter")
	}

	return &editor.CommandStep{
		Command: fields[0],
		Args:    fields[1:],
		Tag:     opts.lang,
		Stderr:  opts.stderr,
	}, nil
}

func describe(err error) error {
	switch {
	case errors.Is(err, pipeline.ErrNoCurrentPage):
		return fmt.Errorf("%w: open a page in your notebook and try again", err)
	case errors.Is(err, pipeline.ErrProviderFailure):
		return fmt.Errorf("%w (check the service with: nhl config test)", err)
	}
	return err
}

func render(renderer *view.Renderer, res *pipeline.Result) error {
	if renderer.Format() == view.FormatJSON {
		return renderer.RenderJSON(res)
	}

	if !res.Updated {
		renderer.RenderText(res.XML)
		return nil
	}

	renderer.Success(fmt.Sprintf("Inserted %d line(s) of highlighted code", res.Lines))
	renderer.RenderKeyValue("Page", res.PageID)
	if res.Position != nil {
		renderer.RenderKeyValue("Position", res.Position.X+", "+res.Position.Y)
	} else {
		renderer.RenderKeyValue("Position", "default")
	}
	renderer.RenderKeyValue("Lines", strconv.Itoa(res.Lines))

	return nil
}

// isTerminal checks if stdin is a terminal
func isTerminal() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return true
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}
