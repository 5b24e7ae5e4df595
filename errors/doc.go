// Package errors provides structured errors for file and filesystem
// operations.
//
// Every failure surfaced by the file, fs and pathutil packages is a
// PlatformError carrying an ErrorCode. Callers branch on the code rather than
// parsing messages:
//
//	f, err := file.Open("/tmp/data", file.ModeRead)
//	if errors.GetCode(err) == errors.CodeNotFound {
//	    // create it instead
//	}
//
// The underlying OS error stays in the chain, so the standard library checks
// keep working:
//
//	if errors.Is(err, fs.ErrNotExist) {
//	    // same decision, stdlib style
//	}
//
// # Error Codes
//
//   - CodeNotFound: the path (or a parent segment) does not exist
//   - CodeAlreadyExists: an exclusive create hit an existing entry
//   - CodePermissionDenied: the OS refused access
//   - CodeClosedHandle: the file handle was already closed
//   - CodeTimeout: a deadline-bounded operation did not finish in time
//   - CodeIO: any other OS-level failure
//   - CodeInvalidInput, CodeNotImplemented, CodeInternal, CodeUnknown
//
// # Classification
//
// Each code has a default classification. Timeouts and generic I/O failures
// are retryable; everything else is permanent. Wrap preserves the
// classification of a wrapped PlatformError.
//
// # Context
//
// Attach the path, operation or mode to an error for logging and JSON output:
//
//	err = errors.WithContextMap(err, map[string]interface{}{
//	    "path": name,
//	    "op":   "open",
//	})
package errors
