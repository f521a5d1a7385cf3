package artifact

import (
	"archive/tar"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/gzip"
)

// PruneResult summarizes a prune pass over an artifacts root.
type PruneResult struct {
	Deleted    []string `json:"deleted"`
	Kept       []string `json:"kept"`
	Errors     []string `json:"errors,omitempty"`
	SpaceSaved int64    `json:"spaceSaved"`
}

// Prune removes top-level test directories under root whose newest file is
// older than maxAge. With dryRun set nothing is removed. Tests never prune
// their own directories; this is an explicit maintenance action.
func Prune(root string, maxAge time.Duration, dryRun bool) (*PruneResult, error) {
	result := &PruneResult{
		Deleted: make([]string, 0),
		Kept:    make([]string, 0),
	}

	tests, err := ListTests(root)
	if err != nil {
		return nil, err
	}

	threshold := time.Now().Add(-maxAge)
	for _, name := range tests {
		dir := filepath.Join(root, name)

		newest, size, err := dirStats(dir)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("stat %s: %v", name, err))
			continue
		}
		if !newest.Before(threshold) {
			result.Kept = append(result.Kept, name)
			continue
		}

		if !dryRun {
			if err := os.RemoveAll(dir); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("delete %s: %v", name, err))
				continue
			}
		}
		result.Deleted = append(result.Deleted, name)
		result.SpaceSaved += size
	}

	return result, nil
}

// dirStats returns the newest modification time and total size of the
// entries under dir, the directory itself included.
func dirStats(dir string) (time.Time, int64, error) {
	var newest time.Time
	var size int64

	err := filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.ModTime().After(newest) {
			newest = info.ModTime()
		}
		if info.Mode().IsRegular() {
			size += info.Size()
		}
		return nil
	})
	return newest, size, err
}

// Archive writes the contents of dir to w as a gzip-compressed tarball.
// Entry names are prefixed with prefix, which is typically the test name.
func Archive(w io.Writer, dir, prefix string) error {
	gz := gzip.NewWriter(w)
	tw := tar.NewWriter(gz)

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if !info.IsDir() && !info.Mode().IsRegular() {
			return nil
		}

		header, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		header.Name = filepath.ToSlash(filepath.Join(prefix, rel))
		if info.IsDir() {
			header.Name += "/"
		}

		if err := tw.WriteHeader(header); err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(tw, f)
		return err
	})
	if err != nil {
		return err
	}

	if err := tw.Close(); err != nil {
		return err
	}
	return gz.Close()
}
