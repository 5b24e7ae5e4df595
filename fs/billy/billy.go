package billy

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/natefinch/atomic"

	"github.com/jmgilman/go/file/fs/core"
)

// nativeOS is osfs.ChrootOS completed into a billy.Filesystem. Unlike
// osfs.New("/") it passes paths to the OS untouched, so relative paths
// follow the process working directory.
type nativeOS struct {
	osfs.ChrootOS
}

// Chroot returns a filesystem rooted at path.
func (n *nativeOS) Chroot(path string) (billy.Filesystem, error) {
	return osfs.New(path), nil
}

// Root returns the filesystem root.
func (n *nativeOS) Root() string {
	return string(filepath.Separator)
}

// MkdirAll creates path and any missing parents with mode perm.
// osfs.ChrootOS ignores perm; every directory created here is chmodded to
// exactly perm regardless of the umask. Existing directories keep their mode.
func (n *nativeOS) MkdirAll(path string, perm os.FileMode) error {
	var missing []string
	for dir := path; ; {
		if _, err := os.Stat(dir); err == nil {
			break
		}
		missing = append(missing, dir)

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if err := os.MkdirAll(path, perm); err != nil {
		return err
	}
	for _, dir := range missing {
		if err := os.Chmod(dir, perm); err != nil {
			return err
		}
	}
	return nil
}

// base holds the operations shared by LocalFS and MemoryFS.
type base struct {
	bfs billy.Filesystem
}

// LocalFS is the local disk.
type LocalFS struct {
	base
}

// MemoryFS is an in-memory filesystem.
type MemoryFS struct {
	base
}

// Option configures filesystem creation.
// Reserved for future extensibility.
type Option func(*config)

type config struct{}

// NewLocal creates a go-billy backed local filesystem with native path
// semantics.
func NewLocal(_ ...Option) *LocalFS {
	return &LocalFS{base{bfs: &nativeOS{}}}
}

// NewMemory creates an empty go-billy backed in-memory filesystem.
func NewMemory(_ ...Option) *MemoryFS {
	return &MemoryFS{base{bfs: memfs.New()}}
}

// Unwrap returns the underlying billy.Filesystem.
func (b *base) Unwrap() billy.Filesystem {
	return b.bfs
}

// normalize cleans a path and converts it to forward slashes.
func normalize(path string) string {
	return filepath.ToSlash(filepath.Clean(path))
}

// errNotDir is returned when a directory operation targets a non-directory.
var errNotDir = syscall.ENOTDIR

// dirEntry wraps fs.FileInfo to implement fs.DirEntry.
type dirEntry struct {
	info fs.FileInfo
}

func (d *dirEntry) Name() string               { return d.info.Name() }
func (d *dirEntry) IsDir() bool                { return d.info.IsDir() }
func (d *dirEntry) Type() fs.FileMode          { return d.info.Mode().Type() }
func (d *dirEntry) Info() (fs.FileInfo, error) { return d.info, nil }

// requireParent fails with fs.ErrNotExist when the parent of name is missing.
// go-billy would otherwise create it on O_CREATE.
func (b *base) requireParent(op, name string) error {
	parent := filepath.Dir(name)
	if parent == "." || parent == "/" || parent == string(filepath.Separator) {
		return nil
	}

	info, err := b.bfs.Stat(parent)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &fs.PathError{Op: op, Path: name, Err: fs.ErrNotExist}
		}
		return err
	}
	if !info.IsDir() {
		return &fs.PathError{Op: op, Path: name, Err: errNotDir}
	}
	return nil
}

// OpenFile opens name with the given flags and permissions.
func (b *base) OpenFile(name string, flag int, perm fs.FileMode) (core.File, error) {
	name = normalize(name)
	if flag&os.O_CREATE != 0 {
		if err := b.requireParent("open", name); err != nil {
			return nil, err
		}
	}

	f, err := b.bfs.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return &File{file: f, fs: b.bfs, name: name}, nil
}

// Stat returns file metadata for the named file.
func (b *base) Stat(name string) (fs.FileInfo, error) {
	return b.bfs.Stat(normalize(name))
}

// ReadDir lists a directory. A non-directory fails with ENOTDIR, which
// go-billy's memfs would otherwise report as an empty listing.
func (b *base) ReadDir(name string) ([]fs.DirEntry, error) {
	name = normalize(name)
	info, err := b.bfs.Stat(name)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: errNotDir}
	}

	infos, err := b.bfs.ReadDir(name)
	if err != nil {
		return nil, err
	}
	entries := make([]fs.DirEntry, len(infos))
	for i, info := range infos {
		entries[i] = &dirEntry{info: info}
	}
	return entries, nil
}

// Mkdir creates a single directory.
// Unlike MkdirAll, this fails if anything exists at name or the parent is missing.
func (b *base) Mkdir(name string, perm fs.FileMode) error {
	name = normalize(name)
	if _, err := b.bfs.Stat(name); err == nil {
		return &fs.PathError{Op: "mkdir", Path: name, Err: fs.ErrExist}
	}
	if err := b.requireParent("mkdir", name); err != nil {
		return err
	}
	// The parent exists, so MkdirAll creates exactly one directory.
	return b.bfs.MkdirAll(name, perm)
}

// MkdirAll creates a directory named path, along with any necessary parents.
func (b *base) MkdirAll(path string, perm fs.FileMode) error {
	return b.bfs.MkdirAll(normalize(path), perm)
}

// Remove removes the named file or empty directory.
func (b *base) Remove(name string) error {
	return b.bfs.Remove(normalize(name))
}

// RemoveAll removes path and any children it contains.
func (b *base) RemoveAll(path string) error {
	return util.RemoveAll(b.bfs, normalize(path))
}

// Type returns FSTypeLocal.
func (lfs *LocalFS) Type() core.FSType {
	return core.FSTypeLocal
}

// Getwd returns the process working directory.
func (lfs *LocalFS) Getwd() (string, error) {
	return os.Getwd()
}

// Chdir changes the process working directory.
func (lfs *LocalFS) Chdir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return &fs.PathError{Op: "chdir", Path: dir, Err: fs.ErrNotExist}
	}
	return os.Chdir(dir)
}

// ReplaceFile atomically replaces name with the contents of r.
func (lfs *LocalFS) ReplaceFile(name string, r io.Reader) error {
	name = normalize(name)
	if err := lfs.requireParent("replace", name); err != nil {
		return err
	}
	return atomic.WriteFile(name, r)
}

// Type returns FSTypeMemory.
func (mfs *MemoryFS) Type() core.FSType {
	return core.FSTypeMemory
}

// ReplaceFile writes r to a temporary file in the same directory and
// renames it over name.
func (mfs *MemoryFS) ReplaceFile(name string, r io.Reader) (err error) {
	name = normalize(name)
	if err := mfs.requireParent("replace", name); err != nil {
		return err
	}

	dir, baseName := filepath.Split(name)
	if dir == "" {
		dir = "."
	}

	tmp, err := util.TempFile(mfs.bfs, dir, "."+baseName+".tmp-")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = mfs.bfs.Remove(tmp.Name())
		}
	}()

	if _, err = io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return mfs.bfs.Rename(tmp.Name(), name)
}

// Compile-time interface checks.
var (
	_ core.FS        = (*LocalFS)(nil)
	_ core.FS        = (*MemoryFS)(nil)
	_ core.WorkdirFS = (*LocalFS)(nil)
	_ core.ReplaceFS = (*LocalFS)(nil)
	_ core.ReplaceFS = (*MemoryFS)(nil)
)
