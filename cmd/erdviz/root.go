package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/erdviz/erdviz"
	"github.com/erdviz/erdviz/gen"
	"github.com/erdviz/erdviz/traverse"
)

var (
	flagConfig     string
	flagSchema     string
	flagURL        string
	flagStart      string
	flagDepth      int
	flagFormats    []string
	flagOut        string
	flagTitle      string
	flagPackage    string
	flagSkipFields bool
	flagCache      string
)

var rootCmd = &cobra.Command{
	Use:     "erdviz",
	Short:   "Render entity-relationship diagrams from a schema or database",
	Version: erdviz.Version,
	// Errors are logged once in main.
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(generateCmd, watchCmd, formatsCmd)
}

// addPipelineFlags registers the flags shared by generate and watch.
func addPipelineFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&flagConfig, "config", "c", "", "config file (default "+gen.DefaultConfigFile+" if present)")
	f.StringVarP(&flagSchema, "schema", "s", "", "schema document to load")
	f.StringVarP(&flagURL, "url", "u", "", "database URL to introspect instead of a schema file")
	f.StringVar(&flagStart, "start", "", "entity the traversal expands from")
	f.IntVarP(&flagDepth, "depth", "d", traverse.DefaultMaxDepth, "traversal depth bound")
	f.StringSliceVarP(&flagFormats, "format", "f", []string{"mermaid"}, "output formats")
	f.StringVarP(&flagOut, "out", "o", gen.DefaultOut, "output directory")
	f.StringVar(&flagTitle, "title", "", "diagram title")
	f.StringVar(&flagPackage, "package", "", "package name for the go format")
	f.BoolVar(&flagSkipFields, "skip-fields", false, "omit entity fields from the output")
	f.StringVar(&flagCache, "cache", "", "schema cache directory")
}

// pipelineConfig assembles the pipeline config: flag values layer on top of
// the config file when one is present.
func pipelineConfig(cmd *cobra.Command) (*gen.Config, error) {
	var opts []gen.Option
	f := cmd.Flags()
	if f.Changed("schema") {
		opts = append(opts, gen.WithSchemaPath(flagSchema))
	}
	if f.Changed("url") {
		opts = append(opts, gen.WithDatabaseURL(flagURL))
	}
	if f.Changed("start") {
		opts = append(opts, gen.WithStart(flagStart))
	}
	if f.Changed("depth") {
		opts = append(opts, gen.WithMaxDepth(flagDepth))
	}
	if f.Changed("format") {
		opts = append(opts, gen.WithFormats(flagFormats...))
	}
	if f.Changed("out") {
		opts = append(opts, gen.WithOut(flagOut))
	}
	if f.Changed("title") {
		opts = append(opts, gen.WithTitle(flagTitle))
	}
	if f.Changed("package") {
		opts = append(opts, gen.WithPackage(flagPackage))
	}
	if f.Changed("skip-fields") {
		opts = append(opts, gen.WithSkipFields(flagSkipFields))
	}
	if f.Changed("cache") {
		opts = append(opts, gen.WithCacheDir(flagCache))
	}
	if flagConfig != "" {
		return gen.LoadConfig(flagConfig, opts...)
	}
	if _, err := os.Stat(gen.DefaultConfigFile); err == nil {
		return gen.LoadConfig(gen.DefaultConfigFile, opts...)
	}
	return gen.NewConfig(opts...)
}
