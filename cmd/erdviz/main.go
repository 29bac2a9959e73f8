// Command erdviz renders entity-relationship diagrams from a schema file
// or a live database.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/erdviz/erdviz/traverse"

	_ "github.com/erdviz/erdviz/render/dot"
	_ "github.com/erdviz/erdviz/render/gocode"
	_ "github.com/erdviz/erdviz/render/graphql"
	_ "github.com/erdviz/erdviz/render/mermaid"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		var notFound *traverse.EntityNotFoundError
		if errors.As(err, &notFound) {
			slog.Error("start entity not found", "entity", notFound.Name)
		} else {
			slog.Error("erdviz failed", "error", err)
		}
		os.Exit(1)
	}
}
