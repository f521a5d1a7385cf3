// testartifacts inspects the per-test artifact directories written by tests
// that use the testartifacts package.
//
// Usage:
//
//	testartifacts where
//	testartifacts config get [key]
//	testartifacts config set <key> <value> [--global]
//	testartifacts config unset <key> [--global]
//	testartifacts list [test]
//	testartifacts prune --older-than=168h [--dry-run]
//	testartifacts archive <test> -o <file.tar.gz>
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/testartifacts"
	"github.com/randalmurphal/testartifacts/config"
)

// version is set at build time via -ldflags.
var version = "dev"

type rootFlags struct {
	artifactsDir string
	verbose      bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "testartifacts",
		Short:         "Inspect per-test artifact directories",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelWarn
			if flags.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.artifactsDir, testartifacts.FlagName, "", "Artifacts root (overrides env and config files)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newWhereCmd(flags))
	cmd.AddCommand(newConfigCmd(flags))
	cmd.AddCommand(newListCmd(flags))
	cmd.AddCommand(newPruneCmd(flags))
	cmd.AddCommand(newArchiveCmd(flags))
	return cmd
}

// resolve returns the full configuration with the --artifacts-dir flag
// applied, along with the resolver that produced it.
func (f *rootFlags) resolve() (*config.Resolver, *config.Resolved) {
	resolver := testartifacts.NewResolver(slog.Default())
	return resolver, resolver.ResolveWithFlags(map[string]string{
		testartifacts.KeyArtifactsDir: f.artifactsDir,
	})
}

func (f *rootFlags) root() string {
	_, resolved := f.resolve()
	return resolved.Get(testartifacts.KeyArtifactsDir)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, withSuggestion(err))
		os.Exit(1)
	}
}
