package file

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"io/fs"
	"log/slog"
	"time"

	"github.com/jmgilman/go/file/errors"
	"github.com/jmgilman/go/file/fs/core"
)

// readAllChunk is the buffer size used by ReadAll.
const readAllChunk = 32 * 1024

// File is an open file handle with a single cursor shared by reads and
// writes.
//
// A File is not safe for concurrent use. Every operation except Close
// fails with errors.CodeClosedHandle after Close.
//
// Read reports end of file as a zero count with a nil error instead of
// io.EOF. Use Reader to obtain a standard io.Reader view.
type File struct {
	f      core.File
	name   string
	mode   Mode
	logger *slog.Logger

	closed bool
	eof    bool

	// pending is closed when a write abandoned by WriteContext finishes.
	pending chan struct{}
}

// Open opens path with the given mode on the configured backend.
//
// Errors carry a code from the errors package: CodeNotFound for a missing
// file or parent, CodeAlreadyExists for an exclusive create over an
// existing file, CodePermissionDenied and CodeIO for the rest.
func Open(path string, mode Mode, opts ...Option) (*File, error) {
	cfg := newConfig(opts)
	return open(cfg, path, mode)
}

func open(cfg *config, path string, mode Mode) (*File, error) {
	if !mode.Valid() {
		return nil, newError(errors.CodeInvalidInput, "open", path, "invalid file mode "+mode.String())
	}

	f, err := cfg.fs.OpenFile(path, mode.Flags(), cfg.perm)
	if err != nil {
		return nil, errors.WithContext(wrapError(err, "open", path), "mode", mode.String())
	}

	cfg.logger.Debug("opened file", "path", path, "mode", mode.String())

	return &File{
		f:      f,
		name:   path,
		mode:   mode,
		logger: cfg.logger,
	}, nil
}

// Name returns the path the file was opened with.
func (f *File) Name() string {
	return f.name
}

// Mode returns the mode the file was opened with.
func (f *File) Mode() Mode {
	return f.mode
}

// Closed reports whether Close has been called.
func (f *File) Closed() bool {
	return f.closed
}

// usable fails once the handle is closed and otherwise waits for any write
// left running by a timed-out WriteContext.
func (f *File) usable(op string) error {
	if f.closed {
		return newError(errors.CodeClosedHandle, op, f.name, "file is closed")
	}
	f.settle()
	return nil
}

func (f *File) settle() {
	if f.pending != nil {
		<-f.pending
		f.pending = nil
	}
}

// Read reads up to len(p) bytes at the cursor and advances it.
// At end of file it returns 0 and a nil error.
func (f *File) Read(p []byte) (int, error) {
	if err := f.usable("read"); err != nil {
		return 0, err
	}

	n, err := f.f.Read(p)
	if err != nil && !stderrors.Is(err, io.EOF) {
		return n, wrapError(err, "read", f.name)
	}

	if n == 0 && len(p) > 0 {
		f.eof = true
	} else if n > 0 {
		f.eof = false
	}
	return n, nil
}

// ReadN reads up to n bytes into p. It fails with CodeInvalidInput if n is
// negative; an n larger than len(p) is capped to len(p).
func (f *File) ReadN(p []byte, n int) (int, error) {
	if n < 0 {
		return 0, newError(errors.CodeInvalidInput, "read", f.name, "negative read length")
	}
	if n < len(p) {
		p = p[:n]
	}
	return f.Read(p)
}

// ReadAll reads from the cursor until end of file.
// It never returns on an endless source such as /dev/zero.
func (f *File) ReadAll() ([]byte, error) {
	var buf bytes.Buffer
	chunk := make([]byte, readAllChunk)
	for {
		n, err := f.Read(chunk)
		if err != nil {
			return buf.Bytes(), err
		}
		if n == 0 {
			return buf.Bytes(), nil
		}
		buf.Write(chunk[:n])
	}
}

// Reader returns an io.Reader over f that reports end of file as io.EOF.
func (f *File) Reader() io.Reader {
	return eofReader{f}
}

type eofReader struct {
	f *File
}

func (r eofReader) Read(p []byte) (int, error) {
	n, err := r.f.Read(p)
	if err == nil && n == 0 && len(p) > 0 {
		return 0, io.EOF
	}
	return n, err
}

// write keeps writing until p is exhausted or the backend fails.
func (f *File) write(p []byte) (int, error) {
	written := 0
	for written < len(p) {
		n, err := f.f.Write(p[written:])
		written += n
		if err != nil {
			return written, err
		}
		if n == 0 {
			return written, io.ErrShortWrite
		}
	}
	return written, nil
}

// Write writes all of p at the cursor, or at the end of the file for
// append modes, and returns the byte count.
func (f *File) Write(p []byte) (int, error) {
	if err := f.usable("write"); err != nil {
		return 0, err
	}

	n, err := f.write(p)
	f.eof = false
	if err != nil {
		return n, wrapError(err, "write", f.name)
	}
	return n, nil
}

// WriteString writes s like Write.
func (f *File) WriteString(s string) (int, error) {
	return f.Write([]byte(s))
}

// WriteContext writes p like Write but gives up when ctx is done,
// returning CodeTimeout.
//
// A timed-out call always returns a count of 0, yet the abandoned write
// keeps running in the background and may transfer some or all of p. The
// next operation on f waits for it to finish; call CursorPosition after a
// timeout to observe how many bytes were actually written.
func (f *File) WriteContext(ctx context.Context, p []byte) (int, error) {
	if err := f.usable("write"); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, wrapError(err, "write", f.name)
	}

	done := make(chan struct{})
	var (
		n    int
		werr error
	)
	go func() {
		defer close(done)
		n, werr = f.write(p)
	}()

	f.eof = false
	select {
	case <-done:
		if werr != nil {
			return n, wrapError(werr, "write", f.name)
		}
		return n, nil
	case <-ctx.Done():
		f.pending = done
		f.logger.Debug("write timed out", "path", f.name, "size", len(p))
		return 0, wrapError(ctx.Err(), "write", f.name)
	}
}

// WriteDeadline writes p and gives up at deadline. A zero deadline means
// no deadline.
func (f *File) WriteDeadline(p []byte, deadline time.Time) (int, error) {
	if deadline.IsZero() {
		return f.Write(p)
	}

	ctx, cancel := context.WithDeadline(context.Background(), deadline)
	defer cancel()
	return f.WriteContext(ctx, p)
}

// Seek moves the cursor like io.Seeker and returns the new position.
// Seeking past the end is allowed; a negative resulting position is not.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	if err := f.usable("seek"); err != nil {
		return 0, err
	}
	switch whence {
	case io.SeekStart, io.SeekCurrent, io.SeekEnd:
	default:
		return 0, newError(errors.CodeInvalidInput, "seek", f.name, "invalid whence")
	}

	pos, err := f.f.Seek(offset, whence)
	if err != nil {
		return pos, wrapError(err, "seek", f.name)
	}
	f.eof = false
	return pos, nil
}

// CursorPosition returns the current cursor offset.
func (f *File) CursorPosition() (int64, error) {
	if err := f.usable("seek"); err != nil {
		return 0, err
	}

	pos, err := f.f.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, wrapError(err, "seek", f.name)
	}
	return pos, nil
}

// AtEOF reports whether the last read hit end of file and the cursor
// equals the current length. Seeking or writing clears it, and a file that
// grew since the read is no longer at its end. A cursor beyond the end, or
// a closed file, is never at EOF.
func (f *File) AtEOF() bool {
	if f.closed || !f.eof {
		return false
	}

	pos, err := f.CursorPosition()
	if err != nil {
		return false
	}
	length, err := f.Length()
	if err != nil {
		return false
	}
	return pos == length
}

// Length returns the current file size. It is queried on every call.
func (f *File) Length() (int64, error) {
	info, err := f.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// Stat returns the file's metadata.
func (f *File) Stat() (fs.FileInfo, error) {
	if err := f.usable("stat"); err != nil {
		return nil, err
	}

	info, err := f.f.Stat()
	if err != nil {
		return nil, wrapError(err, "stat", f.name)
	}
	return info, nil
}

// Truncate changes the file size without moving the cursor.
// It fails with CodeNotImplemented if the backend cannot truncate.
func (f *File) Truncate(size int64) error {
	if err := f.usable("truncate"); err != nil {
		return err
	}

	t, ok := f.f.(core.Truncater)
	if !ok {
		return newError(errors.CodeNotImplemented, "truncate", f.name, "backend does not support truncate")
	}
	return wrapError(t.Truncate(size), "truncate", f.name)
}

// Flush commits written data to stable storage where the backend supports
// it. It is a no-op otherwise.
func (f *File) Flush() error {
	if err := f.usable("flush"); err != nil {
		return err
	}

	if s, ok := f.f.(core.Syncer); ok {
		if err := s.Sync(); err != nil {
			return wrapError(err, "flush", f.name)
		}
	}

	f.logger.Debug("flushed file", "path", f.name)
	return nil
}

// Close releases the handle. Closing an already closed File is a no-op.
// A write abandoned by WriteContext is unblocked where the backend allows
// it and waited for before Close returns.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true

	err := f.f.Close()
	f.settle()

	f.logger.Debug("closed file", "path", f.name)
	if err != nil && !stderrors.Is(err, fs.ErrClosed) {
		return wrapError(err, "close", f.name)
	}
	return nil
}
