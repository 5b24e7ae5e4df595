package fstest

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"testing"

	"github.com/jmgilman/go/file/fs/core"
)

// TestWriteFS tests OpenFile flag handling, Mkdir and MkdirAll.
func TestWriteFS(t *testing.T, filesystem core.FS, root string) {
	TestWriteFSWithConfig(t, filesystem, root, FSTestConfig{})
}

// TestWriteFSWithConfig tests write operations with behavior configuration.
func TestWriteFSWithConfig(t *testing.T, filesystem core.FS, root string, config FSTestConfig) {
	runSubtests(t, "WriteFS", config, map[string]func(t *testing.T){
		"OpenReadOnlyNotExist":   func(t *testing.T) { testWriteFSOpenNotExist(t, filesystem, root) },
		"CreateExclusive":        func(t *testing.T) { testWriteFSCreateExclusive(t, filesystem, root) },
		"Truncate":               func(t *testing.T) { testWriteFSTruncate(t, filesystem, root) },
		"Append":                 func(t *testing.T) { testWriteFSAppend(t, filesystem, root) },
		"CreateInNonExistentDir": func(t *testing.T) { testWriteFSCreateInNonExistentDir(t, filesystem, root) },
		"Mkdir":                  func(t *testing.T) { testWriteFSMkdir(t, filesystem, root) },
		"MkdirExisting":          func(t *testing.T) { testWriteFSMkdirExisting(t, filesystem, root) },
		"MkdirMissingParent":     func(t *testing.T) { testWriteFSMkdirMissingParent(t, filesystem, root) },
		"MkdirAll":               func(t *testing.T) { testWriteFSMkdirAll(t, filesystem, root) },
		"MkdirAllExistingIsNoop": func(t *testing.T) { testWriteFSMkdirAllExisting(t, filesystem, root) },
		"MkdirPermissions":       func(t *testing.T) { testWriteFSMkdirPermissions(t, filesystem, root) },
	})
}

func testWriteFSOpenNotExist(t *testing.T, filesystem core.FS, root string) {
	name := join(root, "absent.txt")
	_, err := filesystem.OpenFile(name, os.O_RDONLY, 0)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("OpenFile(%q, O_RDONLY): got error %v, want fs.ErrNotExist", name, err)
	}
}

func testWriteFSCreateExclusive(t *testing.T, filesystem core.FS, root string) {
	name := join(root, "exclusive.txt")
	f, err := filesystem.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		t.Fatalf("OpenFile(%q, O_EXCL) first: got error %v, want nil", name, err)
	}
	if err := f.Close(); err != nil {
		t.Errorf("Close(): got error %v", err)
	}

	_, err = filesystem.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if !errors.Is(err, fs.ErrExist) {
		t.Errorf("OpenFile(%q, O_EXCL) second: got error %v, want fs.ErrExist", name, err)
	}
}

func testWriteFSTruncate(t *testing.T, filesystem core.FS, root string) {
	name := join(root, "trunc.txt")
	writeFile(t, filesystem, name, []byte("long original content"))
	writeFile(t, filesystem, name, []byte("short"))

	if got := readAll(t, filesystem, name); string(got) != "short" {
		t.Errorf("contents after O_TRUNC: got %q, want %q", got, "short")
	}
}

func testWriteFSAppend(t *testing.T, filesystem core.FS, root string) {
	name := join(root, "append.txt")
	writeFile(t, filesystem, name, []byte("hello"))

	f, err := filesystem.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		t.Fatalf("OpenFile(%q, O_APPEND): got error %v, want nil", name, err)
	}
	if _, err := f.Write([]byte(" world")); err != nil {
		t.Errorf("Write(): got error %v", err)
	}
	if err := f.Close(); err != nil {
		t.Errorf("Close(): got error %v", err)
	}

	if got := readAll(t, filesystem, name); string(got) != "hello world" {
		t.Errorf("contents after O_APPEND: got %q, want %q", got, "hello world")
	}
}

func testWriteFSCreateInNonExistentDir(t *testing.T, filesystem core.FS, root string) {
	name := join(root, "no", "such", "dir", "file.txt")
	_, err := filesystem.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("OpenFile(%q, O_CREATE): got error %v, want fs.ErrNotExist", name, err)
	}
	if _, err := filesystem.Stat(join(root, "no")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Stat(parent) after failed create: got error %v, want fs.ErrNotExist", err)
	}
}

func testWriteFSMkdir(t *testing.T, filesystem core.FS, root string) {
	dir := join(root, "newdir")
	if err := filesystem.Mkdir(dir, 0755); err != nil {
		t.Fatalf("Mkdir(%q): got error %v, want nil", dir, err)
	}
	info, err := filesystem.Stat(dir)
	if err != nil {
		t.Fatalf("Stat(%q): got error %v, want nil", dir, err)
	}
	if !info.IsDir() {
		t.Errorf("Stat(%q).IsDir(): got false, want true", dir)
	}
}

func testWriteFSMkdirExisting(t *testing.T, filesystem core.FS, root string) {
	dir := join(root, "twice")
	if err := filesystem.Mkdir(dir, 0755); err != nil {
		t.Fatalf("Mkdir(%q) first: got error %v, want nil", dir, err)
	}
	if err := filesystem.Mkdir(dir, 0755); !errors.Is(err, fs.ErrExist) {
		t.Errorf("Mkdir(%q) second: got error %v, want fs.ErrExist", dir, err)
	}

	name := join(root, "occupied")
	writeFile(t, filesystem, name, nil)
	if err := filesystem.Mkdir(name, 0755); !errors.Is(err, fs.ErrExist) {
		t.Errorf("Mkdir(%q) over file: got error %v, want fs.ErrExist", name, err)
	}
}

func testWriteFSMkdirMissingParent(t *testing.T, filesystem core.FS, root string) {
	dir := join(root, "missing", "child")
	if err := filesystem.Mkdir(dir, 0755); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Mkdir(%q): got error %v, want fs.ErrNotExist", dir, err)
	}
}

func testWriteFSMkdirAll(t *testing.T, filesystem core.FS, root string) {
	dir := join(root, "a", "b", "c")
	if err := filesystem.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("MkdirAll(%q): got error %v, want nil", dir, err)
	}
	for _, p := range []string{join(root, "a"), join(root, "a", "b"), dir} {
		info, err := filesystem.Stat(p)
		if err != nil || !info.IsDir() {
			t.Errorf("Stat(%q) after MkdirAll: got (%v, %v), want directory", p, info, err)
		}
	}
}

func testWriteFSMkdirAllExisting(t *testing.T, filesystem core.FS, root string) {
	dir := join(root, "again")
	if err := filesystem.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("MkdirAll(%q) first: got error %v, want nil", dir, err)
	}
	if err := filesystem.MkdirAll(dir, 0755); err != nil {
		t.Errorf("MkdirAll(%q) second: got error %v, want nil", dir, err)
	}
}

// readAll reads the full contents of name.
func readAll(t *testing.T, filesystem core.FS, name string) []byte {
	t.Helper()
	f, err := filesystem.OpenFile(name, os.O_RDONLY, 0)
	if err != nil {
		t.Fatalf("OpenFile(%q, O_RDONLY): got error %v", name, err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("ReadAll(%q): got error %v", name, err)
	}
	return data
}

func testWriteFSMkdirPermissions(t *testing.T, filesystem core.FS, root string) {
	const perm fs.FileMode = 0700

	dir := join(root, "private")
	if err := filesystem.Mkdir(dir, perm); err != nil {
		t.Fatalf("Mkdir(%q, %v): got error %v, want nil", dir, perm, err)
	}
	nested := join(root, "tree", "leaf")
	if err := filesystem.MkdirAll(nested, perm); err != nil {
		t.Fatalf("MkdirAll(%q, %v): got error %v, want nil", nested, perm, err)
	}

	for _, p := range []string{dir, join(root, "tree"), nested} {
		info, err := filesystem.Stat(p)
		if err != nil {
			t.Fatalf("Stat(%q): got error %v, want nil", p, err)
		}
		if got := info.Mode().Perm(); got != perm {
			t.Errorf("Stat(%q).Mode().Perm(): got %v, want %v", p, got, perm)
		}
	}
}
