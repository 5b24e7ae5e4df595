// Package core defines the backend contract behind file handles and
// filesystem utilities.
//
// A backend is anything that can open files by OS flags, stat and list
// paths, and create or remove directories. The file package drives every
// handle and utility call through this contract, so the same code runs
// against the local disk or an in-memory tree.
//
// # Interface Hierarchy
//
// The required FS interface covers:
//
//   - OpenFile: open by os.O_* flags and permission bits
//   - Stat, ReadDir: metadata and listings
//   - Mkdir, MkdirAll, Remove, RemoveAll: structure changes
//
// Optional capabilities are discovered with type assertions:
//
//   - WorkdirFS: process working directory (local disk only)
//   - ReplaceFS: atomic replace-by-rename
//   - Syncer, Truncater: per-file capabilities
//
// # Checking Optional Capabilities
//
//	if wfs, ok := backend.(core.WorkdirFS); ok {
//	    dir, err := wfs.Getwd()
//	}
//
// # Provider Implementations
//
// This package contains only interface definitions and sentinels. The
// go-billy backed providers live in github.com/jmgilman/go/file/fs/billy.
package core
