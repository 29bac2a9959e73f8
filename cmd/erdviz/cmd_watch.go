package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/erdviz/erdviz/gen"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate the diagram whenever the schema file changes",
	Long: `Runs one generation up front, then watches the schema file and
regenerates on every change until interrupted. Requires a schema file
source; watching a database is not supported.`,
	RunE: runWatch,
}

func init() {
	addPipelineFlags(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfg, err := pipelineConfig(cmd)
	if err != nil {
		return err
	}
	slog.Info("watching schema", "schema", cfg.SchemaPath, "out", cfg.Out)
	return gen.Watch(cmd.Context(), cfg, func(err error) {
		if err != nil {
			slog.Error("generation failed", "error", err)
			return
		}
		slog.Info("diagram written", "out", cfg.Out, "formats", cfg.Formats)
	})
}
