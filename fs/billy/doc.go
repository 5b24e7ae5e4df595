// Package billy provides go-billy backed implementations of core.FS.
//
// Two providers are available:
//
//	// Local disk, native path semantics (relative paths resolve
//	// against the process working directory).
//	local := billy.NewLocal()
//
//	// Empty in-memory tree, useful in tests and sandboxes.
//	mem := billy.NewMemory()
//
// Both providers refuse to create parent directories implicitly when a file
// is opened with os.O_CREATE, even though the underlying go-billy
// filesystems would; a missing parent is reported as fs.ErrNotExist.
//
// LocalFS additionally implements core.WorkdirFS and core.ReplaceFS (via
// github.com/natefinch/atomic). MemoryFS implements core.ReplaceFS with a
// temporary file and rename inside the memory tree.
//
// # Thread Safety
//
// Providers are safe for concurrent use by multiple goroutines. File handles
// are not safe for concurrent use.
package billy
