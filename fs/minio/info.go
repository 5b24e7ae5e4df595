package minio

import (
	"io/fs"
	"time"
)

const (
	filePerm fs.FileMode = 0o644
	dirPerm              = fs.ModeDir | 0o755
)

// fileInfo implements fs.FileInfo for objects and directories.
type fileInfo struct {
	name    string
	size    int64
	modTime time.Time
	mode    fs.FileMode
}

func newFileInfo(name string, size int64, modTime time.Time) *fileInfo {
	return &fileInfo{name: name, size: size, modTime: modTime, mode: filePerm}
}

func newDirInfo(name string, modTime time.Time) *fileInfo {
	return &fileInfo{name: name, modTime: modTime, mode: dirPerm}
}

func (fi *fileInfo) Name() string       { return fi.name }
func (fi *fileInfo) Size() int64        { return fi.size }
func (fi *fileInfo) Mode() fs.FileMode  { return fi.mode }
func (fi *fileInfo) ModTime() time.Time { return fi.modTime }
func (fi *fileInfo) IsDir() bool        { return fi.mode.IsDir() }
func (fi *fileInfo) Sys() interface{}   { return nil }

// dirEntry implements fs.DirEntry over a fileInfo.
type dirEntry struct {
	info *fileInfo
}

func (d *dirEntry) Name() string               { return d.info.name }
func (d *dirEntry) IsDir() bool                { return d.info.IsDir() }
func (d *dirEntry) Type() fs.FileMode          { return d.info.mode.Type() }
func (d *dirEntry) Info() (fs.FileInfo, error) { return d.info, nil }

var (
	_ fs.FileInfo = (*fileInfo)(nil)
	_ fs.DirEntry = (*dirEntry)(nil)
)
