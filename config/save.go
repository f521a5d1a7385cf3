package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SaveConfig provides methods to save configuration values.
type SaveConfig struct {
	// GlobalConfigDir is the directory under ~/.config/ for global config.
	GlobalConfigDir string

	// GlobalConfigFile is the filename. Defaults to "config.yaml".
	GlobalConfigFile string

	// LocalConfigName is the filename for local config in git root.
	// A .toml extension writes TOML, anything else YAML.
	LocalConfigName string

	// ValidGlobalKeys lists keys that can be set in global config.
	ValidGlobalKeys []string

	// ValidLocalKeys lists keys that can be set in local config.
	ValidLocalKeys []string
}

func (c SaveConfig) globalConfigFile() string {
	if c.GlobalConfigFile != "" {
		return c.GlobalConfigFile
	}
	return "config.yaml"
}

// GlobalPath returns the global config file path.
func (c SaveConfig) GlobalPath() (string, error) {
	if c.GlobalConfigDir == "" {
		return "", ErrNoGlobalDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", c.GlobalConfigDir, c.globalConfigFile()), nil
}

// LocalPath returns the local config file path under gitRoot.
func (c SaveConfig) LocalPath(gitRoot string) (string, error) {
	if gitRoot == "" {
		return "", ErrNoGitRoot
	}
	if c.LocalConfigName == "" {
		return "", ErrNoLocalName
	}
	return filepath.Join(gitRoot, c.LocalConfigName), nil
}

// SaveGlobal saves a key-value pair to the global config file.
func (c SaveConfig) SaveGlobal(key, value string) error {
	if err := checkKey(c.ValidGlobalKeys, key); err != nil {
		return err
	}
	configPath, err := c.GlobalPath()
	if err != nil {
		return err
	}

	existing := load(configPath)
	existing[key] = parseValue(value)

	if err := os.MkdirAll(filepath.Dir(configPath), 0o700); err != nil {
		return err
	}
	return write(configPath, existing, 0o600)
}

// SaveLocal saves a key-value pair to the local config file in the git root.
func (c SaveConfig) SaveLocal(gitRoot, key, value string) error {
	configPath, err := c.LocalPath(gitRoot)
	if err != nil {
		return err
	}
	if err := checkKey(c.ValidLocalKeys, key); err != nil {
		return err
	}

	existing := load(configPath)
	existing[key] = parseValue(value)

	// Local config is shared and should be readable
	return write(configPath, existing, 0o644) //nolint:gosec
}

// DeleteGlobalKey removes a key from the global config.
func (c SaveConfig) DeleteGlobalKey(key string) error {
	configPath, err := c.GlobalPath()
	if err != nil {
		return err
	}
	return deleteKey(configPath, key, 0o600)
}

// DeleteLocalKey removes a key from the local config in the git root.
func (c SaveConfig) DeleteLocalKey(gitRoot, key string) error {
	configPath, err := c.LocalPath(gitRoot)
	if err != nil {
		return err
	}
	return deleteKey(configPath, key, 0o644)
}

func checkKey(valid []string, key string) error {
	if len(valid) > 0 && !contains(valid, key) {
		return fmt.Errorf("%w: %s (valid keys: %s)", ErrUnknownKey, key, strings.Join(valid, ", "))
	}
	return nil
}

// load reads an existing config, returning an empty map when the file is
// missing or unparseable.
func load(path string) map[string]interface{} {
	var existing map[string]interface{}
	if data, err := os.ReadFile(path); err == nil {
		existing, _ = decode(path, data)
	}
	if existing == nil {
		existing = make(map[string]interface{})
	}
	return existing
}

func write(path string, values map[string]interface{}, perm os.FileMode) error {
	data, err := encode(path, values)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, perm)
}

func deleteKey(path, key string, perm os.FileMode) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil // Nothing to delete
	}

	existing, err := decode(path, data)
	if err != nil {
		return nil
	}
	if _, ok := existing[key]; !ok {
		return nil
	}
	delete(existing, key)

	return write(path, existing, perm)
}

// parseValue converts string values to appropriate types for the file.
func parseValue(value string) interface{} {
	lower := strings.ToLower(value)
	if lower == "true" {
		return true
	}
	if lower == "false" {
		return false
	}
	return value
}
