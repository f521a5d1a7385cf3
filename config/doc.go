// Package config provides hierarchical configuration resolution.
//
// Each key resolves to exactly one value, taken from the highest-priority
// source that sets it:
//  1. Command-line flags (highest priority, via ResolveWithFlags)
//  2. Environment variables
//  3. Local config (e.g., .testartifacts.yaml in git root)
//  4. Global config (e.g., ~/.config/testartifacts/config.yaml)
//  5. Built-in defaults (lowest priority)
//
// # Basic Usage
//
//	resolver := config.NewResolver(config.ResolverConfig{
//	    EnvPrefix:        "TESTARTIFACTS_",
//	    GlobalConfigDir:  "testartifacts",
//	    LocalConfigNames: []string{".testartifacts.yaml", ".testartifacts.toml"},
//	    Defaults: map[string]string{
//	        "artifacts_dir": ".artifacts/",
//	    },
//	})
//
//	cfg := resolver.ResolveWithFlags(map[string]string{"artifacts_dir": *flagValue})
//	fmt.Println(cfg.Get("artifacts_dir"))    // ".artifacts/"
//	fmt.Println(cfg.Source("artifacts_dir")) // "default"
//
// # File Formats
//
// Config files are flat key/value documents. Files ending in .toml are read
// as TOML; everything else is read as YAML. A file that cannot be parsed is
// skipped with a warning.
//
// # Git Root Detection
//
// The local config is looked up in the git repository root. Supply a
// GitRootFinder to override detection.
package config
