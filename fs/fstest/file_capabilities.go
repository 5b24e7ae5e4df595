package fstest

import (
	"bytes"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/jmgilman/go/file/fs/core"
)

// TestFileCapabilities tests the cursor and the optional File capabilities
// (core.Syncer, core.Truncater). Unsupported optional capabilities are skipped.
func TestFileCapabilities(t *testing.T, filesystem core.FS, root string) {
	TestFileCapabilitiesWithConfig(t, filesystem, root, FSTestConfig{})
}

// TestFileCapabilitiesWithConfig tests file capabilities with behavior configuration.
func TestFileCapabilitiesWithConfig(t *testing.T, filesystem core.FS, root string, config FSTestConfig) {
	runSubtests(t, "FileCapabilities", config, map[string]func(t *testing.T){
		"Seeker":      func(t *testing.T) { testFileCapabilitySeeker(t, filesystem, root) },
		"SeekPastEnd": func(t *testing.T) { testFileCapabilitySeekPastEnd(t, filesystem, root) },
		"ReadAtEOF":   func(t *testing.T) { testFileCapabilityReadAtEOF(t, filesystem, root) },
		"Syncer":      func(t *testing.T) { testFileCapabilitySyncer(t, filesystem, root) },
		"Truncater":   func(t *testing.T) { testFileCapabilityTruncater(t, filesystem, root) },
		"Stat":        func(t *testing.T) { testFileCapabilityStat(t, filesystem, root) },
	})
}

func openRW(t *testing.T, filesystem core.FS, name string) core.File {
	t.Helper()
	f, err := filesystem.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		t.Fatalf("OpenFile(%q, O_RDWR|O_CREATE|O_TRUNC): got error %v", name, err)
	}
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func testFileCapabilitySeeker(t *testing.T, filesystem core.FS, root string) {
	f := openRW(t, filesystem, join(root, "seek.txt"))
	if _, err := f.Write([]byte("0123456789abcdef")); err != nil {
		t.Fatalf("Write(): got error %v", err)
	}

	tests := []struct {
		offset int64
		whence int
		want   int64
	}{
		{10, io.SeekStart, 10},
		{2, io.SeekCurrent, 12},
		{-4, io.SeekEnd, 12},
		{0, io.SeekCurrent, 12},
		{0, io.SeekStart, 0},
	}
	for _, tt := range tests {
		pos, err := f.Seek(tt.offset, tt.whence)
		if err != nil {
			t.Fatalf("Seek(%d, %d): got error %v", tt.offset, tt.whence, err)
		}
		if pos != tt.want {
			t.Errorf("Seek(%d, %d): got %d, want %d", tt.offset, tt.whence, pos, tt.want)
		}
	}

	if _, err := f.Seek(10, io.SeekStart); err != nil {
		t.Fatalf("Seek(10, SeekStart): got error %v", err)
	}
	buf := make([]byte, 6)
	n, err := f.Read(buf)
	if err != nil {
		t.Fatalf("Read(): got error %v", err)
	}
	if !bytes.Equal(buf[:n], []byte("abcdef")) {
		t.Errorf("Read() after Seek: got %q, want %q", buf[:n], "abcdef")
	}
}

func testFileCapabilitySeekPastEnd(t *testing.T, filesystem core.FS, root string) {
	f := openRW(t, filesystem, join(root, "sparse.txt"))
	if _, err := f.Write([]byte("abc")); err != nil {
		t.Fatalf("Write(): got error %v", err)
	}

	pos, err := f.Seek(10, io.SeekStart)
	if err != nil {
		t.Fatalf("Seek(10, SeekStart) past end: got error %v, want nil", err)
	}
	if pos != 10 {
		t.Errorf("Seek(10, SeekStart) past end: got %d, want 10", pos)
	}

	n, err := f.Read(make([]byte, 4))
	if n != 0 || (err != nil && !errors.Is(err, io.EOF)) {
		t.Errorf("Read() past end: got (%d, %v), want (0, io.EOF or nil)", n, err)
	}
}

func testFileCapabilityReadAtEOF(t *testing.T, filesystem core.FS, root string) {
	f := openRW(t, filesystem, join(root, "eof.txt"))
	if _, err := f.Write([]byte("abc")); err != nil {
		t.Fatalf("Write(): got error %v", err)
	}

	n, err := f.Read(make([]byte, 3))
	if n != 0 || (err != nil && !errors.Is(err, io.EOF)) {
		t.Errorf("Read() at end: got (%d, %v), want (0, io.EOF or nil)", n, err)
	}
}

func testFileCapabilitySyncer(t *testing.T, filesystem core.FS, root string) {
	f := openRW(t, filesystem, join(root, "sync.txt"))
	syncer, ok := f.(core.Syncer)
	if !ok {
		t.Skip("core.Syncer not supported by this file implementation")
		return
	}
	if _, err := f.Write([]byte("durable")); err != nil {
		t.Fatalf("Write(): got error %v", err)
	}
	if err := syncer.Sync(); err != nil {
		t.Errorf("Sync(): got error %v, want nil", err)
	}
}

func testFileCapabilityTruncater(t *testing.T, filesystem core.FS, root string) {
	f := openRW(t, filesystem, join(root, "truncate.txt"))
	truncater, ok := f.(core.Truncater)
	if !ok {
		t.Skip("core.Truncater not supported by this file implementation")
		return
	}
	if _, err := f.Write([]byte("0123456789")); err != nil {
		t.Fatalf("Write(): got error %v", err)
	}
	if err := truncater.Truncate(4); err != nil {
		t.Fatalf("Truncate(4): got error %v", err)
	}

	info, err := f.Stat()
	if err != nil {
		t.Fatalf("Stat(): got error %v", err)
	}
	if info.Size() != 4 {
		t.Errorf("Stat().Size() after Truncate(4): got %d, want 4", info.Size())
	}
}

func testFileCapabilityStat(t *testing.T, filesystem core.FS, root string) {
	name := join(root, "grow.txt")
	f := openRW(t, filesystem, name)

	for i, chunk := range []string{"hello", " world"} {
		if _, err := f.Write([]byte(chunk)); err != nil {
			t.Fatalf("Write(%q): got error %v", chunk, err)
		}
		info, err := f.Stat()
		if err != nil {
			t.Fatalf("Stat(): got error %v", err)
		}
		want := []int64{5, 11}[i]
		if info.Size() != want {
			t.Errorf("Stat().Size() after write %d: got %d, want %d", i+1, info.Size(), want)
		}
	}
	if f.Name() != name {
		t.Errorf("Name(): got %q, want %q", f.Name(), name)
	}
}
