package artifact

import (
	"archive/tar"
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/gzip"
)

func createTestDir(t *testing.T, root, name string, age time.Duration) {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("create test dir: %v", err)
	}
	file := filepath.Join(dir, "out.txt")
	if err := os.WriteFile(file, []byte("0123456789"), 0644); err != nil {
		t.Fatalf("write artifact: %v", err)
	}

	stamp := time.Now().Add(-age)
	os.Chtimes(file, stamp, stamp)
	os.Chtimes(dir, stamp, stamp)
}

func TestPrune(t *testing.T) {
	root := t.TempDir()
	createTestDir(t, root, "TestOld", 48*time.Hour)
	createTestDir(t, root, "TestNew", time.Minute)

	result, err := Prune(root, 24*time.Hour, false)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}

	if diff := cmp.Diff([]string{"TestOld"}, result.Deleted); diff != "" {
		t.Errorf("Deleted mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"TestNew"}, result.Kept); diff != "" {
		t.Errorf("Kept mismatch (-want +got):\n%s", diff)
	}
	if result.SpaceSaved != 10 {
		t.Errorf("SpaceSaved = %d, want 10", result.SpaceSaved)
	}
	if _, err := os.Stat(filepath.Join(root, "TestOld")); !errors.Is(err, os.ErrNotExist) {
		t.Error("TestOld should be removed")
	}
}

func TestPrune_DryRun(t *testing.T) {
	root := t.TempDir()
	createTestDir(t, root, "TestOld", 48*time.Hour)

	result, err := Prune(root, 24*time.Hour, true)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}

	if len(result.Deleted) != 1 {
		t.Errorf("Deleted = %v, want one entry", result.Deleted)
	}
	if _, err := os.Stat(filepath.Join(root, "TestOld")); err != nil {
		t.Error("dry run must not remove anything")
	}
}

func TestPrune_MissingRoot(t *testing.T) {
	result, err := Prune(filepath.Join(t.TempDir(), "none"), time.Hour, false)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if len(result.Deleted) != 0 || len(result.Kept) != 0 {
		t.Errorf("result = %+v, want empty", result)
	}
}

func TestArchive(t *testing.T) {
	r := newAcquired(t)
	r.WriteFile("file.txt", []byte("Hello, World!"))
	os.Mkdir(r.Path("logs"), 0755)
	r.WriteFile("logs/run.log", []byte("ok"))

	var buf bytes.Buffer
	if err := Archive(&buf, r.Dir(), "test_sth"); err != nil {
		t.Fatalf("Archive: %v", err)
	}

	gz, err := gzip.NewReader(&buf)
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	tr := tar.NewReader(gz)

	files := map[string]string{}
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("tar next: %v", err)
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}
		data, _ := io.ReadAll(tr)
		files[header.Name] = string(data)
	}

	want := map[string]string{
		"test_sth/file.txt":     "Hello, World!",
		"test_sth/logs/run.log": "ok",
	}
	if diff := cmp.Diff(want, files); diff != "" {
		t.Errorf("archive contents mismatch (-want +got):\n%s", diff)
	}
}
