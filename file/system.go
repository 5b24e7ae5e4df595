package file

import (
	"io"
	"log/slog"

	"github.com/jmgilman/go/file/errors"
	"github.com/jmgilman/go/file/fs/core"
)

// System groups path-level utilities over one backend.
type System struct {
	cfg *config
}

// NewSystem returns a System using the configured backend and logger.
// WithPermissions sets the mode for files created through System.Open.
func NewSystem(opts ...Option) *System {
	return &System{cfg: newConfig(opts)}
}

// FS returns the backend.
func (s *System) FS() core.FS {
	return s.cfg.fs
}

func (s *System) log() *slog.Logger {
	return s.cfg.logger
}

// Open opens path on the System's backend. opts override the System's
// configuration for this handle only.
func (s *System) Open(path string, mode Mode, opts ...Option) (*File, error) {
	cfg := *s.cfg
	for _, opt := range opts {
		opt(&cfg)
	}
	return open(&cfg, path, mode)
}

// Exists reports whether any entry exists at path. Errors count as false.
func (s *System) Exists(path string) bool {
	_, err := s.cfg.fs.Stat(path)
	return err == nil
}

// IsDirectory reports whether path exists and is a directory.
func (s *System) IsDirectory(path string) bool {
	info, err := s.cfg.fs.Stat(path)
	return err == nil && info.IsDir()
}

// RemoveFile removes the file at path. It fails with CodeNotFound if
// nothing exists there and CodeInvalidInput if path is a directory.
func (s *System) RemoveFile(path string) error {
	info, err := s.cfg.fs.Stat(path)
	if err != nil {
		return wrapError(err, "remove", path)
	}
	if info.IsDir() {
		return newError(errors.CodeInvalidInput, "remove", path, "path is a directory")
	}

	if err := s.cfg.fs.Remove(path); err != nil {
		return wrapError(err, "remove", path)
	}

	s.log().Debug("removed file", "path", path)
	return nil
}

// CreateDirectory creates the directory at path.
//
// By default the parent must exist and any existing entry at path is
// CodeAlreadyExists. With WithIntermediateDirectories, missing parents are
// created and an existing directory at path succeeds; an existing
// non-directory is still CodeAlreadyExists.
func (s *System) CreateDirectory(path string, opts ...DirOption) error {
	cfg := dirConfig{perm: DefaultDirPermissions}
	for _, opt := range opts {
		opt(&cfg)
	}

	if !cfg.recursive {
		if err := s.cfg.fs.Mkdir(path, cfg.perm); err != nil {
			return wrapError(err, "mkdir", path)
		}
		s.log().Debug("created directory", "path", path)
		return nil
	}

	if info, err := s.cfg.fs.Stat(path); err == nil {
		if !info.IsDir() {
			return newError(errors.CodeAlreadyExists, "mkdir", path, "a non-directory exists at path")
		}
		return nil
	}

	if err := s.cfg.fs.MkdirAll(path, cfg.perm); err != nil {
		return wrapError(err, "mkdir", path)
	}

	s.log().Debug("created directory", "path", path, "recursive", true)
	return nil
}

// RemoveDirectory removes the directory at path and everything below it.
// It fails with CodeNotFound if path is missing or not a directory.
func (s *System) RemoveDirectory(path string) error {
	info, err := s.cfg.fs.Stat(path)
	if err != nil {
		return wrapError(err, "rmdir", path)
	}
	if !info.IsDir() {
		return newError(errors.CodeNotFound, "rmdir", path, "not a directory")
	}

	if err := s.cfg.fs.RemoveAll(path); err != nil {
		return wrapError(err, "rmdir", path)
	}

	s.log().Debug("removed directory", "path", path)
	return nil
}

// ContentsOfDirectory returns the entry names in path, excluding "." and
// "..". The order is unspecified. It fails with CodeNotFound if path is
// missing or not a directory.
func (s *System) ContentsOfDirectory(path string) ([]string, error) {
	entries, err := s.cfg.fs.ReadDir(path)
	if err != nil {
		return nil, wrapError(err, "readdir", path)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Name() == "." || e.Name() == ".." {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// WorkingDirectory returns the absolute process working directory.
// It fails with CodeNotImplemented on backends without one.
func (s *System) WorkingDirectory() (string, error) {
	wfs, ok := s.cfg.fs.(core.WorkdirFS)
	if !ok {
		return "", newError(errors.CodeNotImplemented, "getwd", "", "backend has no working directory")
	}

	dir, err := wfs.Getwd()
	if err != nil {
		return "", wrapError(err, "getwd", "")
	}
	return dir, nil
}

// ChangeWorkingDirectory changes the process working directory. It fails
// with CodeNotFound if path is missing or not a directory.
func (s *System) ChangeWorkingDirectory(path string) error {
	wfs, ok := s.cfg.fs.(core.WorkdirFS)
	if !ok {
		return newError(errors.CodeNotImplemented, "chdir", path, "backend has no working directory")
	}

	if err := wfs.Chdir(path); err != nil {
		return wrapError(err, "chdir", path)
	}

	s.log().Debug("changed working directory", "path", path)
	return nil
}

// ReplaceFile atomically replaces the contents of path with everything
// read from r. Readers observe the old or the new contents, never a mix.
// It fails with CodeNotImplemented on backends that cannot replace.
func (s *System) ReplaceFile(path string, r io.Reader) error {
	rfs, ok := s.cfg.fs.(core.ReplaceFS)
	if !ok {
		return newError(errors.CodeNotImplemented, "replace", path, "backend does not support atomic replace")
	}

	if err := rfs.ReplaceFile(path, r); err != nil {
		return wrapError(err, "replace", path)
	}

	s.log().Debug("replaced file", "path", path)
	return nil
}

var defaultSystem = NewSystem()

// Exists reports whether any entry exists at path on the local disk.
func Exists(path string) bool { return defaultSystem.Exists(path) }

// IsDirectory reports whether path is a directory on the local disk.
func IsDirectory(path string) bool { return defaultSystem.IsDirectory(path) }

// RemoveFile removes a file on the local disk. See System.RemoveFile.
func RemoveFile(path string) error { return defaultSystem.RemoveFile(path) }

// CreateDirectory creates a directory on the local disk.
// See System.CreateDirectory.
func CreateDirectory(path string, opts ...DirOption) error {
	return defaultSystem.CreateDirectory(path, opts...)
}

// RemoveDirectory recursively removes a directory on the local disk.
func RemoveDirectory(path string) error { return defaultSystem.RemoveDirectory(path) }

// ContentsOfDirectory lists a directory on the local disk.
func ContentsOfDirectory(path string) ([]string, error) {
	return defaultSystem.ContentsOfDirectory(path)
}

// WorkingDirectory returns the process working directory.
func WorkingDirectory() (string, error) { return defaultSystem.WorkingDirectory() }

// ChangeWorkingDirectory changes the process working directory.
func ChangeWorkingDirectory(path string) error {
	return defaultSystem.ChangeWorkingDirectory(path)
}

// ReplaceFile atomically replaces a file on the local disk.
func ReplaceFile(path string, r io.Reader) error { return defaultSystem.ReplaceFile(path, r) }
