// Package file provides file handles with explicit open modes and a small
// set of path-level filesystem utilities.
//
// A File is opened with one of eight Modes, each a fixed combination of
// os.O_* flags:
//
//	f, err := file.Open("data.txt", file.ModeTruncateReadWrite)
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	if _, err := f.WriteString("hello"); err != nil {
//	    return err
//	}
//
// Reads report end of file as a zero count rather than io.EOF, and AtEOF
// turns true once such a read happens. Writes can be bounded with
// WriteContext or WriteDeadline, which fail with errors.CodeTimeout.
//
// Every failure is an errors.PlatformError whose code tells the kind of
// failure apart (CodeNotFound, CodeAlreadyExists, CodePermissionDenied,
// CodeClosedHandle, CodeTimeout, CodeIO) and whose context records the
// operation and path.
//
// The package-level utilities (Exists, CreateDirectory, RemoveDirectory and
// so on) act on the local disk. A System applies the same operations to
// any core.FS backend, such as the in-memory one from fs/billy:
//
//	sys := file.NewSystem(file.WithFS(billy.NewMemory()))
//	err := sys.CreateDirectory("/a/b", file.WithIntermediateDirectories())
//
// The fs/minio backend stores the same tree in an S3-compatible bucket.
// Backends without a process working directory return CodeNotImplemented
// from WorkingDirectory and ChangeWorkingDirectory.
//
// Note that CreateDirectory without WithIntermediateDirectories fails with
// CodeAlreadyExists when the directory already exists.
package file
