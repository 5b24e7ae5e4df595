package errors

// ErrorCode identifies the kind of failure.
// Codes are strings so they read well in logs and serialize naturally to JSON.
type ErrorCode string

const (
	// CodeNotFound indicates the path, or one of its parent segments, does not exist.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodeAlreadyExists indicates an entry already exists where a new one was requested.
	CodeAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// CodePermissionDenied indicates the OS refused access to the path.
	CodePermissionDenied ErrorCode = "PERMISSION_DENIED"

	// CodeClosedHandle indicates an operation on a file handle that was closed.
	CodeClosedHandle ErrorCode = "CLOSED_HANDLE"

	// CodeTimeout indicates a deadline expired before the operation finished.
	CodeTimeout ErrorCode = "TIMEOUT"

	// CodeIO indicates an OS-level failure not covered by a more specific code.
	CodeIO ErrorCode = "IO_ERROR"

	// CodeInvalidInput indicates the caller supplied an invalid argument.
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// CodeNotImplemented indicates the backend does not support the operation.
	CodeNotImplemented ErrorCode = "NOT_IMPLEMENTED"

	// CodeInternal indicates an unexpected internal failure.
	CodeInternal ErrorCode = "INTERNAL_ERROR"

	// CodeUnknown indicates an unclassified error.
	CodeUnknown ErrorCode = "UNKNOWN"
)

// ErrorClassification indicates whether retrying the operation may succeed.
type ErrorClassification string

const (
	// ClassificationRetryable marks transient failures such as timeouts.
	ClassificationRetryable ErrorClassification = "RETRYABLE"

	// ClassificationPermanent marks failures that will repeat on retry.
	ClassificationPermanent ErrorClassification = "PERMANENT"
)

// IsRetryable returns true if the classification indicates retry should be attempted.
func (c ErrorClassification) IsRetryable() bool {
	return c == ClassificationRetryable
}

var defaultClassifications = map[ErrorCode]ErrorClassification{
	CodeTimeout: ClassificationRetryable,
	CodeIO:      ClassificationRetryable,

	CodeNotFound:         ClassificationPermanent,
	CodeAlreadyExists:    ClassificationPermanent,
	CodePermissionDenied: ClassificationPermanent,
	CodeClosedHandle:     ClassificationPermanent,
	CodeInvalidInput:     ClassificationPermanent,
	CodeNotImplemented:   ClassificationPermanent,
	CodeInternal:         ClassificationPermanent,
	CodeUnknown:          ClassificationPermanent,
}

// getDefaultClassification falls back to permanent for unmapped codes.
func getDefaultClassification(code ErrorCode) ErrorClassification {
	if class, ok := defaultClassifications[code]; ok {
		return class
	}
	return ClassificationPermanent
}
