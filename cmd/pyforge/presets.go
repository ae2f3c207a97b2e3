package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/pyforge/internal/presets"
)

func newPresetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List the built-in project templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPACKAGES")
			for _, name := range presets.Names() {
				packages, _ := presets.Get(name)
				list := strings.Join(packages, ", ")
				if list == "" {
					list = "(none)"
				}
				fmt.Fprintf(w, "%s\t%s\n", name, list)
			}
			return w.Flush()
		},
	}

	return cmd
}
