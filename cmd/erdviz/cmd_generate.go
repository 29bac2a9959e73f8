package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/erdviz/erdviz/gen"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render the diagram once and exit",
	Long: `Resolves the schema, traverses it from the start entity, and writes
one file per format into the output directory.

Examples:
  erdviz generate --schema schema.json --start User
  erdviz generate --schema schema.json --start Order --depth 1 -f mermaid -f dot
  erdviz generate --url postgres://localhost/app --start users`,
	RunE: runGenerate,
}

func init() {
	addPipelineFlags(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := pipelineConfig(cmd)
	if err != nil {
		return err
	}
	if err := gen.Generate(cmd.Context(), cfg); err != nil {
		return err
	}
	slog.Info("diagram written", "out", cfg.Out, "formats", cfg.Formats)
	return nil
}
