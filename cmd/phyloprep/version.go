package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aria-lang/phyloprep-go/pkg/phyloprep"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), phyloprep.Info())
		},
	}
}
