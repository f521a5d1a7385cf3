package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/randalmurphal/testartifacts/artifact"
)

func newPruneCmd(flags *rootFlags) *cobra.Command {
	var (
		olderThan time.Duration
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove test artifact directories older than a cutoff",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := artifact.Prune(flags.root(), olderThan, dryRun)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			verb := "Deleted"
			if dryRun {
				verb = "Would delete"
			}
			for _, name := range result.Deleted {
				fmt.Fprintf(out, "%s %s\n", verb, name)
			}
			fmt.Fprintf(out, "%s %d, kept %d, freed %s\n",
				verb, len(result.Deleted), len(result.Kept), humanize.Bytes(uint64(result.SpaceSaved)))

			if len(result.Errors) > 0 {
				return fmt.Errorf("prune: %s", strings.Join(result.Errors, "; "))
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&olderThan, "older-than", 7*24*time.Hour, "Remove directories whose newest file is older than this")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would be removed without removing it")
	return cmd
}
