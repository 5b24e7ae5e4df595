package fstest

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/jmgilman/go/file/fs/core"
)

// TestManageFS tests Remove and RemoveAll.
func TestManageFS(t *testing.T, filesystem core.FS, root string) {
	TestManageFSWithConfig(t, filesystem, root, FSTestConfig{})
}

// TestManageFSWithConfig tests file management with behavior configuration.
func TestManageFSWithConfig(t *testing.T, filesystem core.FS, root string, config FSTestConfig) {
	runSubtests(t, "ManageFS", config, map[string]func(t *testing.T){
		"RemoveSingleFile":      func(t *testing.T) { testManageFSRemoveFile(t, filesystem, root) },
		"RemoveEmptyDirectory":  func(t *testing.T) { testManageFSRemoveEmptyDir(t, filesystem, root) },
		"RemoveNotExist":        func(t *testing.T) { testManageFSRemoveNotExist(t, filesystem, root) },
		"RemoveAll":             func(t *testing.T) { testManageFSRemoveAll(t, filesystem, root) },
		"RemoveAllNotExistIsOK": func(t *testing.T) { testManageFSRemoveAllNotExist(t, filesystem, root) },
	})
}

func testManageFSRemoveFile(t *testing.T, filesystem core.FS, root string) {
	name := join(root, "remove-me.txt")
	writeFile(t, filesystem, name, []byte("bye"))

	if err := filesystem.Remove(name); err != nil {
		t.Fatalf("Remove(%q): got error %v, want nil", name, err)
	}
	if _, err := filesystem.Stat(name); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Stat(%q) after Remove: got error %v, want fs.ErrNotExist", name, err)
	}
	if err := filesystem.Remove(name); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Remove(%q) second: got error %v, want fs.ErrNotExist", name, err)
	}
}

func testManageFSRemoveEmptyDir(t *testing.T, filesystem core.FS, root string) {
	dir := join(root, "emptydir")
	if err := filesystem.Mkdir(dir, 0755); err != nil {
		t.Fatalf("Mkdir(%q): setup failed: %v", dir, err)
	}
	if err := filesystem.Remove(dir); err != nil {
		t.Fatalf("Remove(%q): got error %v, want nil", dir, err)
	}
	if _, err := filesystem.Stat(dir); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Stat(%q) after Remove: got error %v, want fs.ErrNotExist", dir, err)
	}
}

func testManageFSRemoveNotExist(t *testing.T, filesystem core.FS, root string) {
	name := join(root, "never-there.txt")
	if err := filesystem.Remove(name); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Remove(%q): got error %v, want fs.ErrNotExist", name, err)
	}
}

func testManageFSRemoveAll(t *testing.T, filesystem core.FS, root string) {
	parent := join(root, "tree")
	if err := filesystem.MkdirAll(join(parent, "child1"), 0755); err != nil {
		t.Fatalf("MkdirAll: setup failed: %v", err)
	}
	if err := filesystem.MkdirAll(join(parent, "child2"), 0755); err != nil {
		t.Fatalf("MkdirAll: setup failed: %v", err)
	}
	writeFile(t, filesystem, join(parent, "file1.txt"), []byte("content1"))
	writeFile(t, filesystem, join(parent, "child1", "file2.txt"), []byte("content2"))

	if err := filesystem.RemoveAll(parent); err != nil {
		t.Fatalf("RemoveAll(%q): got error %v, want nil", parent, err)
	}
	if _, err := filesystem.Stat(parent); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Stat(%q) after RemoveAll: got error %v, want fs.ErrNotExist", parent, err)
	}
}

func testManageFSRemoveAllNotExist(t *testing.T, filesystem core.FS, root string) {
	dir := join(root, "phantom")
	if err := filesystem.RemoveAll(dir); err != nil {
		t.Errorf("RemoveAll(%q): got error %v, want nil", dir, err)
	}
}
