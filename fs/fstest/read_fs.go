package fstest

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/jmgilman/go/file/fs/core"
)

// TestReadFS tests Stat and ReadDir.
func TestReadFS(t *testing.T, filesystem core.FS, root string) {
	TestReadFSWithConfig(t, filesystem, root, FSTestConfig{})
}

// TestReadFSWithConfig tests Stat and ReadDir with behavior configuration.
func TestReadFSWithConfig(t *testing.T, filesystem core.FS, root string, config FSTestConfig) {
	runSubtests(t, "ReadFS", config, map[string]func(t *testing.T){
		"StatFile":        func(t *testing.T) { testReadFSStatFile(t, filesystem, root) },
		"StatNotExist":    func(t *testing.T) { testReadFSStatNotExist(t, filesystem, root) },
		"ReadDir":         func(t *testing.T) { testReadFSReadDir(t, filesystem, root) },
		"ReadDirEmpty":    func(t *testing.T) { testReadFSReadDirEmpty(t, filesystem, root) },
		"ReadDirNotExist": func(t *testing.T) { testReadFSReadDirNotExist(t, filesystem, root) },
		"ReadDirOnFile":   func(t *testing.T) { testReadFSReadDirOnFile(t, filesystem, root) },
	})
}

func testReadFSStatFile(t *testing.T, filesystem core.FS, root string) {
	name := join(root, "stat.txt")
	writeFile(t, filesystem, name, []byte("hello"))

	info, err := filesystem.Stat(name)
	if err != nil {
		t.Fatalf("Stat(%q): got error %v, want nil", name, err)
	}
	if info.IsDir() {
		t.Errorf("Stat(%q).IsDir(): got true, want false", name)
	}
	if info.Size() != 5 {
		t.Errorf("Stat(%q).Size(): got %d, want 5", name, info.Size())
	}
}

func testReadFSStatNotExist(t *testing.T, filesystem core.FS, root string) {
	name := join(root, "missing.txt")
	_, err := filesystem.Stat(name)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Stat(%q): got error %v, want fs.ErrNotExist", name, err)
	}
}

func testReadFSReadDir(t *testing.T, filesystem core.FS, root string) {
	dir := join(root, "listing")
	if err := filesystem.MkdirAll(join(dir, "sub"), 0755); err != nil {
		t.Fatalf("MkdirAll: setup failed: %v", err)
	}
	writeFile(t, filesystem, join(dir, "a.txt"), []byte("a"))
	writeFile(t, filesystem, join(dir, "b.txt"), []byte("b"))

	entries, err := filesystem.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir(%q): got error %v, want nil", dir, err)
	}

	got := names(entries)
	for _, want := range []string{"a.txt", "b.txt", "sub"} {
		if !got[want] {
			t.Errorf("ReadDir(%q): missing entry %q in %v", dir, want, got)
		}
	}
	if len(entries) != 3 {
		t.Errorf("ReadDir(%q): got %d entries, want 3", dir, len(entries))
	}
	for _, e := range entries {
		if e.Name() == "." || e.Name() == ".." {
			t.Errorf("ReadDir(%q): unexpected entry %q", dir, e.Name())
		}
		if e.Name() == "sub" && !e.IsDir() {
			t.Errorf("ReadDir(%q): entry sub should be a directory", dir)
		}
	}
}

func testReadFSReadDirEmpty(t *testing.T, filesystem core.FS, root string) {
	dir := join(root, "empty")
	if err := filesystem.Mkdir(dir, 0755); err != nil {
		t.Fatalf("Mkdir(%q): setup failed: %v", dir, err)
	}

	entries, err := filesystem.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir(%q): got error %v, want nil", dir, err)
	}
	if len(entries) != 0 {
		t.Errorf("ReadDir(%q): got %d entries, want 0", dir, len(entries))
	}
}

func testReadFSReadDirNotExist(t *testing.T, filesystem core.FS, root string) {
	dir := join(root, "nowhere")
	_, err := filesystem.ReadDir(dir)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadDir(%q): got error %v, want fs.ErrNotExist", dir, err)
	}
}

func testReadFSReadDirOnFile(t *testing.T, filesystem core.FS, root string) {
	name := join(root, "plain.txt")
	writeFile(t, filesystem, name, []byte("x"))

	if _, err := filesystem.ReadDir(name); err == nil {
		t.Errorf("ReadDir(%q) on a file: got nil error, want non-nil", name)
	}
}
