package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/open-cli-collective/notehighlight-cli/internal/cmd/root"
	"github.com/open-cli-collective/notehighlight-cli/internal/view"
)

func main() {
	// Ctrl-C cancels a running highlighter instead of leaving it behind
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := root.NewCmdRoot()
	if err := cmd.ExecuteContext(ctx); err != nil {
		view.NewRenderer(view.FormatTable, false).Error(err.Error())
		stop()
		os.Exit(1)
	}
}
