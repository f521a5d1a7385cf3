package artifact

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Info describes a stored artifact file.
type Info struct {
	Name    string    `json:"name"` // slash-separated, relative to the repository directory
	Size    int64     `json:"size"`
	ModTime time.Time `json:"modTime"`
}

// List returns every regular file under the repository directory, sorted by
// name. A missing directory yields no artifacts.
func (r *Repository) List() ([]Info, error) {
	return ListDir(r.dir)
}

// ListDir returns every regular file under dir, sorted by name.
func ListDir(dir string) ([]Info, error) {
	var artifacts []Info

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}

		artifacts = append(artifacts, Info{
			Name:    filepath.ToSlash(rel),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	sort.Slice(artifacts, func(i, j int) bool {
		return artifacts[i].Name < artifacts[j].Name
	})
	return artifacts, nil
}

// TestDir returns the directory of the test called name under root. Subtest
// names are slash-separated and every element must be a plain name, so the
// result always lies strictly inside root.
func TestDir(root, name string) (string, error) {
	for _, elem := range strings.Split(name, "/") {
		if elem == "." || !filepath.IsLocal(elem) {
			return "", fmt.Errorf("%w: test %q", ErrInvalidName, name)
		}
	}
	return filepath.Join(root, filepath.FromSlash(name)), nil
}

// ListTests returns the names of the top-level test directories under root,
// sorted. Subtest directories are nested inside them.
func ListTests(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var tests []string
	for _, entry := range entries {
		if entry.IsDir() {
			tests = append(tests, entry.Name())
		}
	}
	return tests, nil
}
