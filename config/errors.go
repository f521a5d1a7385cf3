package config

import "errors"

// Config save errors
var (
	// ErrNoGlobalDir indicates SaveConfig has no GlobalConfigDir.
	ErrNoGlobalDir = errors.New("global config directory not configured")

	// ErrNoGitRoot indicates a local config operation ran outside a git repository.
	ErrNoGitRoot = errors.New("git root not found")

	// ErrNoLocalName indicates SaveConfig has no LocalConfigName.
	ErrNoLocalName = errors.New("local config name not configured")

	// ErrUnknownKey indicates the key is not in the valid key list.
	ErrUnknownKey = errors.New("unknown config key")
)
