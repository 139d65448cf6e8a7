package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zero750810/teacherdoc/pkg/teacherdoc"
)

func newTagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "Print the markers a template can use",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			for i, g := range teacherdoc.Catalog() {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "[%s]\n", g.Name)
				for _, t := range g.Tags {
					fmt.Fprintf(out, "  %s\t%s\n", t.Marker(), t.Label)
				}
			}
		},
	}
}
