// Package testutil provides utilities for testing code that uses artifact
// repositories: throwaway project roots, file helpers, and a fake testing.T.
package testutil
