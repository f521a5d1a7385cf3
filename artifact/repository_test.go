package artifact

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newAcquired(t *testing.T, opts ...Option) *Repository {
	t.Helper()
	r := New(filepath.Join(t.TempDir(), "test_sth"), opts...)
	if err := r.Acquire(); err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	return r
}

func debugLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func assertEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("dir %s has %d entries, want 0", dir, len(entries))
	}
}

func TestNew(t *testing.T) {
	r := New("/base/test")

	if r.Dir() != "/base/test" {
		t.Errorf("Dir() = %q, want %q", r.Dir(), "/base/test")
	}
	if r.Acquired() {
		t.Error("new repository should not be acquired")
	}
	if r.logger == nil {
		t.Error("logger should default to slog.Default()")
	}
}

func TestAcquire_CreatesMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "root", "nested", "test_sth")
	r := New(dir)

	if err := r.Acquire(); err != nil {
		t.Fatalf("Acquire: %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if !info.IsDir() {
		t.Error("acquired path should be a directory")
	}
	assertEmptyDir(t, dir)
	if !r.Acquired() {
		t.Error("Acquired() should be true")
	}
}

func TestAcquire_WipesExistingContents(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "test_sth")
	os.MkdirAll(filepath.Join(dir, "sub"), 0755)
	os.WriteFile(filepath.Join(dir, "old.txt"), []byte("stale"), 0644)
	os.WriteFile(filepath.Join(dir, "sub", "deep.txt"), []byte("stale"), 0644)

	if err := New(dir).Acquire(); err != nil {
		t.Fatalf("Acquire: %v", err)
	}

	assertEmptyDir(t, dir)
}

func TestAcquire_ReplacesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "test_sth")
	os.WriteFile(dir, []byte("a file where the dir should be"), 0644)

	if err := New(dir).Acquire(); err != nil {
		t.Fatalf("Acquire: %v", err)
	}

	assertEmptyDir(t, dir)
}

func TestAcquire_Twice(t *testing.T) {
	r := newAcquired(t)
	if err := r.WriteFile("a.txt", []byte("a")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if err := r.Acquire(); err != nil {
		t.Fatalf("second Acquire: %v", err)
	}

	assertEmptyDir(t, r.Dir())
}

func TestAcquire_Error(t *testing.T) {
	parent := filepath.Join(t.TempDir(), "blocker")
	os.WriteFile(parent, []byte("x"), 0644)

	// A regular file in the parent chain cannot be turned into a directory.
	r := New(filepath.Join(parent, "test_sth"))
	err := r.Acquire()
	if err == nil {
		t.Fatal("Acquire should fail when a parent is a file")
	}
	if r.Acquired() {
		t.Error("failed Acquire must leave repository unacquired")
	}
	if !strings.Contains(err.Error(), "test_sth") {
		t.Errorf("error %q should name the path", err)
	}
}

func TestOpenFile_NotAcquired(t *testing.T) {
	r := New(filepath.Join(t.TempDir(), "test_sth"))

	err := r.Create("file.txt", func(*os.File) error { return nil })
	if !errors.Is(err, ErrNotAcquired) {
		t.Errorf("error = %v, want ErrNotAcquired", err)
	}
}

func TestOpenFile_InvalidName(t *testing.T) {
	r := newAcquired(t)

	for _, name := range []string{"../escape.txt", "/abs.txt", ""} {
		err := r.Create(name, func(*os.File) error { return nil })
		if !errors.Is(err, ErrInvalidName) {
			t.Errorf("Create(%q) error = %v, want ErrInvalidName", name, err)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	r := newAcquired(t)

	err := r.Create("file.txt", func(f *os.File) error {
		_, err := io.WriteString(f, "Hello, World!")
		return err
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	var content string
	err = r.Open("file.txt", func(f *os.File) error {
		data, err := io.ReadAll(f)
		content = string(data)
		return err
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if content != "Hello, World!" {
		t.Errorf("content = %q, want %q", content, "Hello, World!")
	}
}

func TestAppend(t *testing.T) {
	r := newAcquired(t)

	for _, line := range []string{"one\n", "two\n"} {
		err := r.Append("log.txt", func(f *os.File) error {
			_, err := f.WriteString(line)
			return err
		})
		if err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	data, err := r.ReadFile("log.txt")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "one\ntwo\n" {
		t.Errorf("content = %q", data)
	}
}

func TestOpen_MissingFile(t *testing.T) {
	r := newAcquired(t)

	called := false
	err := r.Open("missing.txt", func(*os.File) error {
		called = true
		return nil
	})
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error = %v, want fs.ErrNotExist", err)
	}
	if called {
		t.Error("callback must not run when open fails")
	}
}

func TestOpenFile_NestedNameNeedsParent(t *testing.T) {
	r := newAcquired(t)

	err := r.WriteFile("sub/file.txt", []byte("x"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error = %v, want fs.ErrNotExist", err)
	}

	os.Mkdir(r.Path("sub"), 0755)
	if err := r.WriteFile("sub/file.txt", []byte("x")); err != nil {
		t.Errorf("WriteFile with existing parent: %v", err)
	}
}

func TestOpenFile_ClosesOnCallbackError(t *testing.T) {
	r := newAcquired(t)
	boom := errors.New("boom")

	var handle *os.File
	err := r.Create("file.txt", func(f *os.File) error {
		handle = f
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want boom", err)
	}
	if err := handle.Close(); !errors.Is(err, os.ErrClosed) {
		t.Errorf("handle should already be closed, Close() = %v", err)
	}
}

func TestOpenFile_ClosesOnPanic(t *testing.T) {
	r := newAcquired(t)

	var handle *os.File
	func() {
		defer func() {
			if recover() == nil {
				t.Error("panic should propagate")
			}
		}()
		_ = r.Create("file.txt", func(f *os.File) error {
			handle = f
			panic("boom")
		})
	}()

	if err := handle.Close(); !errors.Is(err, os.ErrClosed) {
		t.Errorf("handle should already be closed, Close() = %v", err)
	}
}

func TestOpenFile_LogsSavedArtifact(t *testing.T) {
	var logs bytes.Buffer
	r := newAcquired(t, WithLogger(debugLogger(&logs)))

	if err := r.WriteFile("file.txt", []byte("data")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if !strings.Contains(logs.String(), "artifact saved") {
		t.Errorf("log = %q, want artifact saved entry", logs.String())
	}
	if !strings.Contains(logs.String(), r.Path("file.txt")) {
		t.Errorf("log = %q, want path", logs.String())
	}
}

func TestOpenFile_NoLogWhenFileGone(t *testing.T) {
	var logs bytes.Buffer
	r := newAcquired(t, WithLogger(debugLogger(&logs)))

	err := r.Create("file.txt", func(f *os.File) error {
		return os.Remove(f.Name())
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if logs.Len() != 0 {
		t.Errorf("log = %q, want nothing for a vanished file", logs.String())
	}
}

func TestOpenFile_NoLogOnCallbackError(t *testing.T) {
	var logs bytes.Buffer
	r := newAcquired(t, WithLogger(debugLogger(&logs)))

	_ = r.Create("file.txt", func(*os.File) error { return errors.New("boom") })

	if logs.Len() != 0 {
		t.Errorf("log = %q, want nothing", logs.String())
	}
}

func TestWithLogger_NilKeepsDefault(t *testing.T) {
	r := New("dir", WithLogger(nil))
	if r.logger == nil {
		t.Error("nil logger option must not clear the default")
	}
}
