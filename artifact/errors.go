package artifact

import "errors"

// Repository errors
var (
	// ErrNotAcquired indicates a file operation on a repository whose
	// directory has not been acquired yet.
	ErrNotAcquired = errors.New("artifact repository not acquired")

	// ErrInvalidName indicates an artifact name that is absolute or
	// escapes the repository directory.
	ErrInvalidName = errors.New("invalid artifact name")
)
