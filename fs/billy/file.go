package billy

import (
	"io"
	"io/fs"

	"github.com/go-git/go-billy/v5"

	"github.com/jmgilman/go/file/fs/core"
)

// File wraps billy.File to implement core.File.
// It keeps the name given to OpenFile since billy.File.Name() varies by
// backend, and a reference to the filesystem for Stat fallbacks.
type File struct {
	file billy.File
	fs   billy.Basic
	name string
}

// Read delegates to the underlying billy.File.
func (f *File) Read(p []byte) (int, error) {
	return f.file.Read(p)
}

// Write delegates to the underlying billy.File.
func (f *File) Write(p []byte) (int, error) {
	return f.file.Write(p)
}

// Close delegates to the underlying billy.File.
func (f *File) Close() error {
	return f.file.Close()
}

// Stat describes the open file. osfs files answer from the descriptor
// (fstat), which also works for device files such as /dev/zero; other
// backends fall back to a path Stat.
func (f *File) Stat() (fs.FileInfo, error) {
	if st, ok := f.file.(interface{ Stat() (fs.FileInfo, error) }); ok {
		return st.Stat()
	}
	return f.fs.Stat(f.name)
}

// Name returns the name provided to OpenFile.
func (f *File) Name() string {
	return f.name
}

// Seek delegates to the underlying billy.File.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	return f.file.Seek(offset, whence)
}

// Truncate delegates to the underlying billy.File.
func (f *File) Truncate(size int64) error {
	return f.file.Truncate(size)
}

// Sync commits the file to stable storage. Backends without Sync
// (memfs) hold everything in memory already, so this is a no-op there.
func (f *File) Sync() error {
	if syncer, ok := f.file.(interface{ Sync() error }); ok {
		return syncer.Sync()
	}
	return nil
}

// Compile-time interface checks.
var (
	_ core.File      = (*File)(nil)
	_ fs.File        = (*File)(nil)
	_ io.Seeker      = (*File)(nil)
	_ core.Truncater = (*File)(nil)
	_ core.Syncer    = (*File)(nil)
)
