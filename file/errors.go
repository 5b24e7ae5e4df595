package file

import (
	"context"
	stderrors "errors"
	"io/fs"
	"os"
	"syscall"

	"github.com/jmgilman/go/file/errors"
)

// classify maps an OS or backend error to a PlatformError code.
// A path segment that is not a directory counts as not found.
func classify(err error) errors.ErrorCode {
	switch {
	case stderrors.Is(err, fs.ErrNotExist), stderrors.Is(err, syscall.ENOTDIR):
		return errors.CodeNotFound
	case stderrors.Is(err, fs.ErrExist):
		return errors.CodeAlreadyExists
	case stderrors.Is(err, fs.ErrPermission):
		return errors.CodePermissionDenied
	case stderrors.Is(err, fs.ErrClosed):
		return errors.CodeClosedHandle
	case stderrors.Is(err, os.ErrDeadlineExceeded),
		stderrors.Is(err, context.DeadlineExceeded),
		stderrors.Is(err, context.Canceled):
		return errors.CodeTimeout
	default:
		return errors.CodeIO
	}
}

// wrapError classifies err and records the operation and path.
// Returns nil if err is nil.
func wrapError(err error, op, path string) error {
	if err == nil {
		return nil
	}

	var platformErr errors.PlatformError
	if stderrors.As(err, &platformErr) {
		return errors.WithContextMap(platformErr, map[string]interface{}{"op": op, "path": path})
	}

	return errors.WithContextMap(
		errors.Wrapf(err, classify(err), "%s failed", op),
		map[string]interface{}{"op": op, "path": path},
	)
}

// newError builds a PlatformError with operation and path context.
func newError(code errors.ErrorCode, op, path, message string) error {
	return errors.WithContextMap(
		errors.New(code, message),
		map[string]interface{}{"op": op, "path": path},
	)
}
