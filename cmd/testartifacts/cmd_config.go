package main

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/testartifacts"
	"github.com/randalmurphal/testartifacts/config"
)

func newConfigCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read and write artifacts settings",
	}
	cmd.AddCommand(newConfigGetCmd(flags))
	cmd.AddCommand(newConfigSetCmd(flags))
	cmd.AddCommand(newConfigUnsetCmd(flags))
	return cmd
}

func newConfigGetCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get [key]",
		Short: "Show resolved settings with their sources",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, resolved := flags.resolve()
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				value, src := resolved.GetWithSource(args[0])
				if src == "" {
					return fmt.Errorf("%w: %s", config.ErrUnknownKey, args[0])
				}
				fmt.Fprintf(out, "%s (%s)\n", value, src)
				return nil
			}

			keys := resolved.Keys()
			sort.Strings(keys)
			for _, key := range keys {
				value, src := resolved.GetWithSource(key)
				fmt.Fprintf(out, "%s = %s (%s)\n", key, value, src)
			}
			return nil
		},
	}
}

// saveConfig returns the saver for the file the resolver reads, along
// with the git root that holds the local config.
func saveConfig(flags *rootFlags) (config.SaveConfig, string) {
	resolver, _ := flags.resolve()

	localName := testartifacts.LocalConfigNames[0]
	if path := resolver.LocalPath(); path != "" {
		localName = filepath.Base(path)
	}

	return config.SaveConfig{
		GlobalConfigDir: testartifacts.AppName,
		LocalConfigName: localName,
		ValidGlobalKeys: testartifacts.ValidKeys,
		ValidLocalKeys:  testartifacts.ValidKeys,
	}, resolver.GitRoot()
}

func newConfigSetCmd(flags *rootFlags) *cobra.Command {
	var global bool

	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Save a setting to the project (or global) config file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			saver, gitRoot := saveConfig(flags)
			if global {
				return saver.SaveGlobal(args[0], args[1])
			}
			return saver.SaveLocal(gitRoot, args[0], args[1])
		},
	}
	cmd.Flags().BoolVar(&global, "global", false, "Write ~/.config/testartifacts/config.yaml instead of the project file")
	return cmd
}

func newConfigUnsetCmd(flags *rootFlags) *cobra.Command {
	var global bool

	cmd := &cobra.Command{
		Use:   "unset <key>",
		Short: "Remove a setting from the project (or global) config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			saver, gitRoot := saveConfig(flags)
			if global {
				return saver.DeleteGlobalKey(args[0])
			}
			return saver.DeleteLocalKey(gitRoot, args[0])
		},
	}
	cmd.Flags().BoolVar(&global, "global", false, "Edit the global config instead of the project file")
	return cmd
}
