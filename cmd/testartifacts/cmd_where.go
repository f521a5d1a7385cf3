package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/testartifacts"
)

func newWhereCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "where",
		Short: "Print the resolved artifacts root and where it came from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, resolved := flags.resolve()
			path, src := resolved.GetWithSource(testartifacts.KeyArtifactsDir)
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", path, src)
			return nil
		},
	}
}
