package main

import (
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/randalmurphal/testartifacts/artifact"
)

func newListCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list [test]",
		Short: "List tests with artifacts, or the artifacts of one test",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := flags.root()
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				dir, err := artifact.TestDir(root, args[0])
				if err != nil {
					return err
				}
				files, err := artifact.ListDir(dir)
				if err != nil {
					return fmt.Errorf("list %s: %w", args[0], err)
				}
				for _, f := range files {
					fmt.Fprintf(out, "%-40s %10s  %s\n", f.Name, humanize.Bytes(uint64(f.Size)), humanize.Time(f.ModTime))
				}
				return nil
			}

			tests, err := artifact.ListTests(root)
			if err != nil {
				return fmt.Errorf("list %s: %w", root, err)
			}
			if len(tests) == 0 {
				fmt.Fprintf(out, "No artifacts under %s\n", root)
				return nil
			}
			for _, name := range tests {
				files, err := artifact.ListDir(filepath.Join(root, name))
				if err != nil {
					return fmt.Errorf("list %s: %w", name, err)
				}
				var total int64
				for _, f := range files {
					total += f.Size
				}
				fmt.Fprintf(out, "%-40s %4d files %10s\n", name, len(files), humanize.Bytes(uint64(total)))
			}
			return nil
		},
	}
}
