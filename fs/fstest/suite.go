// Package fstest provides a conformance test suite for core.FS providers.
//
// Providers call TestSuite from their own tests with a constructor that
// returns a filesystem and an empty scratch directory inside it. Every test
// works below that directory, so local providers can use t.TempDir():
//
//	func TestMyProvider(t *testing.T) {
//	    fstest.TestSuite(t, func(t *testing.T) (core.FS, string) {
//	        return myprovider.New(), t.TempDir()
//	    })
//	}
package fstest

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmgilman/go/file/fs/core"
)

// NewFSFunc returns a filesystem and an existing, empty directory in it.
type NewFSFunc func(t *testing.T) (filesystem core.FS, root string)

// FSTestConfig configures the suite.
type FSTestConfig struct {
	// SkipTests lists test names to skip, e.g. "WriteFS/MkdirExisting".
	SkipTests []string
}

// TestSuite runs all conformance tests with the default configuration.
func TestSuite(t *testing.T, newFS NewFSFunc) {
	TestSuiteWithConfig(t, newFS, FSTestConfig{})
}

// TestSuiteWithConfig runs all conformance tests. Each group gets a fresh
// filesystem from newFS.
func TestSuiteWithConfig(t *testing.T, newFS NewFSFunc, config FSTestConfig) {
	groups := []struct {
		name string
		run  func(t *testing.T, filesystem core.FS, root string, config FSTestConfig)
	}{
		{"ReadFS", TestReadFSWithConfig},
		{"WriteFS", TestWriteFSWithConfig},
		{"ManageFS", TestManageFSWithConfig},
		{"FileCapabilities", TestFileCapabilitiesWithConfig},
	}

	for _, g := range groups {
		t.Run(g.name, func(t *testing.T) {
			if config.shouldSkip(g.name) {
				t.Skip("Skipped by provider configuration")
				return
			}
			filesystem, root := newFS(t)
			g.run(t, filesystem, root, config)
		})
	}
}

func (c FSTestConfig) shouldSkip(testName string) bool {
	for _, skip := range c.SkipTests {
		if skip == testName {
			return true
		}
	}
	return false
}

// runSubtests runs each named case under group unless skipped.
func runSubtests(t *testing.T, group string, config FSTestConfig, cases map[string]func(t *testing.T)) {
	for name, fn := range cases {
		t.Run(name, func(t *testing.T) {
			if config.shouldSkip(group + "/" + name) {
				t.Skip("Skipped by provider configuration")
				return
			}
			fn(t)
		})
	}
}

// writeFile creates or truncates name and writes data to it.
func writeFile(t *testing.T, filesystem core.FS, name string, data []byte) {
	t.Helper()
	f, err := filesystem.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		t.Fatalf("OpenFile(%q): setup failed: %v", name, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		t.Fatalf("Write(%q): setup failed: %v", name, err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close(%q): setup failed: %v", name, err)
	}
}

// join builds a path below root.
func join(root string, elem ...string) string {
	return filepath.Join(append([]string{root}, elem...)...)
}

// names returns the entry names of a listing.
func names(entries []fs.DirEntry) map[string]bool {
	out := make(map[string]bool, len(entries))
	for _, e := range entries {
		out[e.Name()] = true
	}
	return out
}
