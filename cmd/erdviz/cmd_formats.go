package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/erdviz/erdviz/render"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the registered output formats",
	Run: func(cmd *cobra.Command, _ []string) {
		for _, name := range render.Formats() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
	},
}
