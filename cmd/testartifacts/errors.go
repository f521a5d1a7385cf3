package main

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/randalmurphal/testartifacts/config"
)

// CLIError wraps an error with an actionable suggestion.
type CLIError struct {
	Err        error
	Suggestion string
}

func (e *CLIError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Err.Error())
	if e.Suggestion != "" {
		sb.WriteString("\n\n")
		sb.WriteString(e.Suggestion)
	}
	return sb.String()
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// withSuggestion attaches a hint to errors users commonly hit.
func withSuggestion(err error) error {
	var suggestion string
	switch {
	case err == nil:
		return nil
	case errors.Is(err, config.ErrNoGitRoot):
		suggestion = "Run this command inside a git repository, or pass --global."
	case errors.Is(err, config.ErrUnknownKey):
		suggestion = "Run 'testartifacts config get' to see the known keys."
	case errors.Is(err, fs.ErrPermission):
		suggestion = "Check the permissions of the artifacts root, or choose another with --artifacts-dir."
	case errors.Is(err, fs.ErrNotExist):
		suggestion = "Run 'testartifacts list' to see which tests have artifacts."
	default:
		return err
	}
	return &CLIError{Err: err, Suggestion: suggestion}
}
