package minio

import (
	"fmt"
	"io/fs"
	"net/http"

	"github.com/minio/minio-go/v7"
)

// isNotFound reports whether err is a missing key or bucket response.
func isNotFound(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket" || resp.StatusCode == http.StatusNotFound
}

// translate converts MinIO errors to io/fs sentinels where one applies.
func translate(err error) error {
	if err == nil {
		return nil
	}

	if isNotFound(err) {
		return fs.ErrNotExist
	}
	if minio.ToErrorResponse(err).Code == "AccessDenied" {
		return fs.ErrPermission
	}
	return fmt.Errorf("minio: %w", err)
}

// pathError wraps err in a fs.PathError. Returns nil if err is nil.
func pathError(op, name string, err error) error {
	if err == nil {
		return nil
	}
	return &fs.PathError{Op: op, Path: name, Err: err}
}
