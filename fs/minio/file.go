package minio

import (
	"io"
	"io/fs"
	"os"
	"path"
	"syscall"
	"time"

	"github.com/jmgilman/go/file/fs/core"
)

// File is an object held in memory while open. Reads, writes and seeks work
// on the local copy; Sync and Close upload it when it has changed.
type File struct {
	name    string
	flag    int
	data    []byte
	pos     int64
	modTime time.Time
	dirty   bool
	closed  bool

	// upload stores the full contents under the object's key.
	upload func(data []byte) error
}

func newFile(name string, flag int, data []byte, modTime time.Time, upload func([]byte) error) *File {
	return &File{
		name:    name,
		flag:    flag,
		data:    data,
		modTime: modTime,
		upload:  upload,
	}
}

func (f *File) readable() bool { return f.flag&os.O_WRONLY == 0 }
func (f *File) writable() bool { return f.flag&(os.O_WRONLY|os.O_RDWR) != 0 }

// check fails on a closed handle.
func (f *File) check(op string) error {
	if f.closed {
		return pathError(op, f.name, fs.ErrClosed)
	}
	return nil
}

// Read reads from the cursor. At end of file it returns 0, io.EOF.
func (f *File) Read(p []byte) (int, error) {
	if err := f.check("read"); err != nil {
		return 0, err
	}
	if !f.readable() {
		return 0, pathError("read", f.name, syscall.EBADF)
	}
	if f.pos >= int64(len(f.data)) {
		return 0, io.EOF
	}

	n := copy(p, f.data[f.pos:])
	f.pos += int64(n)
	return n, nil
}

// Write writes at the cursor, or at the end with O_APPEND, growing the
// object as needed. A gap left by seeking past the end reads as zeros.
func (f *File) Write(p []byte) (int, error) {
	if err := f.check("write"); err != nil {
		return 0, err
	}
	if !f.writable() {
		return 0, pathError("write", f.name, syscall.EBADF)
	}

	if f.flag&os.O_APPEND != 0 {
		f.pos = int64(len(f.data))
	}
	end := f.pos + int64(len(p))
	if end > int64(len(f.data)) {
		f.data = append(f.data, make([]byte, end-int64(len(f.data)))...)
	}
	copy(f.data[f.pos:], p)
	f.pos = end

	f.dirty = true
	f.modTime = time.Now()
	return len(p), nil
}

// Seek sets the cursor. Positions past the end are allowed.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	if err := f.check("seek"); err != nil {
		return 0, err
	}

	var base int64
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		base = f.pos
	case io.SeekEnd:
		base = int64(len(f.data))
	default:
		return 0, pathError("seek", f.name, syscall.EINVAL)
	}

	pos := base + offset
	if pos < 0 {
		return 0, pathError("seek", f.name, syscall.EINVAL)
	}
	f.pos = pos
	return pos, nil
}

// Stat describes the local copy, including unsynced writes.
func (f *File) Stat() (fs.FileInfo, error) {
	if err := f.check("stat"); err != nil {
		return nil, err
	}
	return newFileInfo(path.Base(normalize(f.name)), int64(len(f.data)), f.modTime), nil
}

// Truncate resizes the object without moving the cursor.
func (f *File) Truncate(size int64) error {
	if err := f.check("truncate"); err != nil {
		return err
	}
	if !f.writable() {
		return pathError("truncate", f.name, syscall.EBADF)
	}
	if size < 0 {
		return pathError("truncate", f.name, syscall.EINVAL)
	}

	if size <= int64(len(f.data)) {
		f.data = f.data[:size]
	} else {
		f.data = append(f.data, make([]byte, size-int64(len(f.data)))...)
	}
	f.dirty = true
	f.modTime = time.Now()
	return nil
}

// Sync uploads the object if it changed since the last upload.
func (f *File) Sync() error {
	if err := f.check("sync"); err != nil {
		return err
	}
	if !f.dirty {
		return nil
	}

	if err := f.upload(f.data); err != nil {
		return pathError("sync", f.name, err)
	}
	f.dirty = false
	return nil
}

// Close uploads pending changes and releases the handle.
func (f *File) Close() error {
	if err := f.check("close"); err != nil {
		return err
	}

	err := f.Sync()
	f.closed = true
	f.data = nil
	return err
}

// Name returns the name passed to OpenFile.
func (f *File) Name() string {
	return f.name
}

var (
	_ core.File      = (*File)(nil)
	_ core.Syncer    = (*File)(nil)
	_ core.Truncater = (*File)(nil)
)
