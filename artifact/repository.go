package artifact

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Repository owns one per-test artifacts directory.
//
// A Repository starts unacquired. Acquire wipes and recreates the directory;
// after that file operations are allowed. Nothing is removed when the test
// ends, so the artifacts stay on disk for inspection. A Repository is not
// safe for concurrent use.
type Repository struct {
	dir      string
	logger   *slog.Logger
	acquired bool
}

// Option configures a Repository.
type Option func(*Repository)

// WithLogger sets the logger used to record saved artifacts.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Repository) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates an unacquired repository for dir.
func New(dir string, opts ...Option) *Repository {
	r := &Repository{
		dir:    dir,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Dir returns the repository directory.
func (r *Repository) Dir() string {
	return r.dir
}

// Acquired reports whether Acquire has succeeded.
func (r *Repository) Acquired() bool {
	return r.acquired
}

// Acquire removes whatever exists at the repository path, file or directory,
// and creates it again as an empty directory along with missing parents.
// Calling Acquire again wipes the directory again.
func (r *Repository) Acquire() error {
	if err := os.RemoveAll(r.dir); err != nil {
		return fmt.Errorf("remove artifacts dir %s: %w", r.dir, err)
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("create artifacts dir %s: %w", r.dir, err)
	}
	r.acquired = true
	return nil
}

// Path returns the location of name inside the repository directory.
func (r *Repository) Path(name string) string {
	return filepath.Join(r.dir, name)
}

func (r *Repository) resolve(name string) (string, error) {
	if !r.acquired {
		return "", ErrNotAcquired
	}
	if !filepath.IsLocal(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return r.Path(name), nil
}

// OpenFile opens name inside the repository with os.OpenFile semantics and
// passes the handle to fn. The file is closed on every exit path, panics
// included. Parent directories of name are not created.
//
// When fn succeeds and the file closes cleanly, the saved path is logged,
// provided it still exists at that point.
func (r *Repository) OpenFile(name string, flag int, perm os.FileMode, fn func(f *os.File) error) error {
	path, err := r.resolve(name)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, flag, perm)
	if err != nil {
		return err
	}

	closed := false
	defer func() {
		if !closed {
			_ = f.Close()
		}
	}()

	if err := fn(f); err != nil {
		return err
	}

	closed = true
	if err := f.Close(); err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil {
		r.logger.Debug("artifact saved", slog.String("path", path))
	}
	return nil
}

// Create opens name for writing, truncating any existing content.
func (r *Repository) Create(name string, fn func(f *os.File) error) error {
	return r.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644, fn)
}

// Append opens name for appending, creating it if needed.
func (r *Repository) Append(name string, fn func(f *os.File) error) error {
	return r.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644, fn)
}

// Open opens name read-only.
func (r *Repository) Open(name string, fn func(f *os.File) error) error {
	return r.OpenFile(name, os.O_RDONLY, 0, fn)
}

// WriteFile writes data to name, replacing any existing content.
func (r *Repository) WriteFile(name string, data []byte) error {
	return r.Create(name, func(f *os.File) error {
		_, err := f.Write(data)
		return err
	})
}

// ReadFile returns the content of name.
func (r *Repository) ReadFile(name string) ([]byte, error) {
	var data []byte
	err := r.Open(name, func(f *os.File) error {
		var readErr error
		data, readErr = io.ReadAll(f)
		return readErr
	})
	return data, err
}
