package core

import (
	"io"
	"io/fs"
)

// FSType represents the underlying type of filesystem implementation.
type FSType int

const (
	// FSTypeUnknown indicates the filesystem type is unknown or unspecified.
	FSTypeUnknown FSType = iota
	// FSTypeLocal indicates the local disk.
	FSTypeLocal
	// FSTypeMemory indicates an in-memory filesystem.
	FSTypeMemory
	// FSTypeRemote indicates remote object storage such as S3.
	FSTypeRemote
)

// String returns a string representation of the FSType.
func (t FSType) String() string {
	switch t {
	case FSTypeLocal:
		return "local"
	case FSTypeMemory:
		return "memory"
	case FSTypeRemote:
		return "remote"
	default:
		return "unknown"
	}
}

// FS is the backend contract used by file handles and filesystem utilities.
//
// Errors returned by implementations must satisfy errors.Is against the
// io/fs sentinels (fs.ErrNotExist, fs.ErrExist, fs.ErrPermission) where they
// apply; callers classify failures that way.
type FS interface {
	// OpenFile opens name with os.O_* flags. perm applies when the file is
	// created (before umask). Parent directories are never created
	// implicitly: a missing parent is fs.ErrNotExist.
	OpenFile(name string, flag int, perm fs.FileMode) (File, error)

	// Stat returns metadata for name, following symbolic links.
	Stat(name string) (fs.FileInfo, error)

	// ReadDir lists the entries of the directory name.
	// The order of entries is unspecified.
	ReadDir(name string) ([]fs.DirEntry, error)

	// Mkdir creates a single directory. It fails with fs.ErrExist if any
	// entry exists at name and with fs.ErrNotExist if the parent is missing.
	Mkdir(name string, perm fs.FileMode) error

	// MkdirAll creates name and any missing parents. An existing directory
	// at name is not an error.
	MkdirAll(path string, perm fs.FileMode) error

	// Remove removes a file or empty directory.
	// A missing path is fs.ErrNotExist.
	Remove(name string) error

	// RemoveAll removes path and everything below it.
	// A missing path is not an error.
	RemoveAll(path string) error

	// Type returns the underlying filesystem type.
	Type() FSType
}

// File is an open file handle returned by FS.OpenFile.
//
// Read, Write and Seek share one cursor. Read returns io.EOF at end of file
// like any io.Reader; the file package turns that into a zero count.
type File interface {
	fs.File // Read, Close, Stat
	io.Writer
	io.Seeker

	// Name returns the name passed to OpenFile.
	Name() string
}

// Syncer allows syncing file contents to stable storage.
//
//	if s, ok := f.(core.Syncer); ok {
//	    err := s.Sync()
//	}
type Syncer interface {
	// Sync commits the current contents of the file to stable storage.
	Sync() error
}

// Truncater allows truncating a file to a specified size.
type Truncater interface {
	// Truncate changes the size of the file without moving the cursor.
	Truncate(size int64) error
}

// WorkdirFS exposes the process working directory.
//
// Only the local disk has one. The working directory is process-wide state;
// implementations must query and mutate the OS on every call and never
// cache it.
type WorkdirFS interface {
	// Getwd returns the absolute working directory.
	Getwd() (string, error)

	// Chdir changes the working directory. A missing target or a
	// non-directory is fs.ErrNotExist.
	Chdir(dir string) error
}

// ReplaceFS replaces a file's contents atomically: readers observe either
// the old contents or the new ones, never a partial write.
type ReplaceFS interface {
	// ReplaceFile writes everything from r to a temporary file next to name
	// and renames it over name.
	ReplaceFile(name string, r io.Reader) error
}
