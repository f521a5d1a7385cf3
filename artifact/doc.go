// Package artifact manages per-test artifact directories.
//
// Core types:
//   - Repository: one directory per test case, wiped and recreated on
//     Acquire, with scoped file access through OpenFile and its wrappers
//   - Info: metadata for a stored artifact file, produced by List
//
// Maintenance helpers operate on a whole artifacts root:
//   - ListTests: test directories under a root
//   - Prune: remove test directories older than a cutoff
//   - Archive: bundle a directory as a tar.gz stream
//
// Artifacts are never removed when a test ends.
package artifact
