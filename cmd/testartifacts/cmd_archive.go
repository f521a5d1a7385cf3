package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/testartifacts/artifact"
)

func newArchiveCmd(flags *rootFlags) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "archive <test>",
		Short: "Bundle one test's artifacts into a tar.gz",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := artifact.TestDir(flags.root(), args[0])
			if err != nil {
				return err
			}
			if _, err := os.Stat(dir); err != nil {
				return fmt.Errorf("no artifacts for %s: %w", args[0], err)
			}

			if output == "" {
				output = filepath.Base(args[0]) + ".tar.gz"
			}
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := artifact.Archive(f, dir, args[0]); err != nil {
				f.Close()
				os.Remove(output)
				return fmt.Errorf("archive %s: %w", args[0], err)
			}
			if err := f.Close(); err != nil {
				return err
			}

			slog.Debug("archive written", slog.String("path", output))
			fmt.Fprintln(cmd.OutOrStdout(), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Archive path (default <test>.tar.gz)")
	return cmd
}
