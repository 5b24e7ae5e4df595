package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"golang.org/x/sync/errgroup"

	"github.com/jmgilman/go/file/fs/core"
)

const (
	defaultRemoveConcurrency = 10

	fileContentType = "application/octet-stream"
	dirContentType  = "application/x-directory"
)

// MinioFS implements core.FS for MinIO/S3-compatible storage.
//
// Directories are zero-byte marker objects whose key ends in "/". A key
// prefix with objects below it but no marker also reads as a directory, so
// buckets written by other tools can be listed. Open files are buffered in
// memory and uploaded whole on Sync and Close.
//
//nolint:revive // MinioFS name is intentional to match naming pattern across fs implementations
type MinioFS struct {
	client            *minio.Client
	bucket            string
	prefix            string
	removeConcurrency int
}

// NewMinIO creates a MinIO-backed filesystem.
// Returns error if configuration is invalid or the client cannot be built.
func NewMinIO(cfg Config) (*MinioFS, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	client := cfg.Client
	if client == nil {
		var err error
		client, err = minio.New(cfg.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
			Secure: cfg.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create minio client: %w", err)
		}
	}

	concurrency := cfg.MaxRemoveConcurrency
	if concurrency == 0 {
		concurrency = defaultRemoveConcurrency
	}

	return &MinioFS{
		client:            client,
		bucket:            cfg.Bucket,
		prefix:            normalize(cfg.Prefix),
		removeConcurrency: concurrency,
	}, nil
}

// Type returns FSTypeRemote.
func (m *MinioFS) Type() core.FSType {
	return core.FSTypeRemote
}

// key maps a path to its full object key.
func (m *MinioFS) key(name string) string {
	return joinKey(m.prefix, normalize(name))
}

type entryKind int

const (
	kindMissing entryKind = iota
	kindFile
	kindDir
)

// lookup reports what exists at key.
func (m *MinioFS) lookup(ctx context.Context, key string) (entryKind, minio.ObjectInfo, error) {
	if key == m.prefix {
		return kindDir, minio.ObjectInfo{}, nil
	}

	info, err := m.client.StatObject(ctx, m.bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return kindFile, info, nil
	}
	if !isNotFound(err) {
		return kindMissing, info, translate(err)
	}

	obj, found, err := m.first(ctx, dirKey(key))
	if err != nil {
		return kindMissing, minio.ObjectInfo{}, err
	}
	if found {
		return kindDir, obj, nil
	}
	return kindMissing, minio.ObjectInfo{}, nil
}

// first returns the first object under prefix, if any.
func (m *MinioFS) first(ctx context.Context, prefix string) (minio.ObjectInfo, bool, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	obj, ok := <-m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:  prefix,
		MaxKeys: 1,
	})
	if !ok {
		return minio.ObjectInfo{}, false, nil
	}
	if obj.Err != nil {
		return minio.ObjectInfo{}, false, translate(obj.Err)
	}
	return obj, true, nil
}

// requireParent fails with fs.ErrNotExist when the parent directory of key
// is missing and with ENOTDIR when it is an object.
func (m *MinioFS) requireParent(ctx context.Context, op, name, key string) error {
	kind, _, err := m.lookup(ctx, parentKey(key))
	if err != nil {
		return pathError(op, name, err)
	}
	switch kind {
	case kindMissing:
		return pathError(op, name, fs.ErrNotExist)
	case kindFile:
		return pathError(op, name, syscall.ENOTDIR)
	}
	return nil
}

func (m *MinioFS) put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	_, err := m.client.PutObject(ctx, m.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return translate(err)
}

func (m *MinioFS) get(ctx context.Context, key string) ([]byte, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, translate(err)
	}
	defer func() {
		_ = obj.Close()
	}()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, translate(err)
	}
	return data, nil
}

// OpenFile opens name with os.O_* flags. Creating and truncating modes
// store the (empty) object immediately; other writes are uploaded on Sync
// and Close. Directories cannot be opened.
func (m *MinioFS) OpenFile(name string, flag int, _ fs.FileMode) (core.File, error) {
	ctx := context.Background()
	key := m.key(name)

	kind, info, err := m.lookup(ctx, key)
	if err != nil {
		return nil, pathError("open", name, err)
	}

	writable := flag&(os.O_WRONLY|os.O_RDWR) != 0
	switch kind {
	case kindDir:
		return nil, pathError("open", name, syscall.EISDIR)
	case kindMissing:
		if flag&os.O_CREATE == 0 {
			return nil, pathError("open", name, fs.ErrNotExist)
		}
		if err := m.requireParent(ctx, "open", name, key); err != nil {
			return nil, err
		}
	case kindFile:
		if flag&(os.O_CREATE|os.O_EXCL) == os.O_CREATE|os.O_EXCL {
			return nil, pathError("open", name, fs.ErrExist)
		}
	}

	upload := func(data []byte) error {
		return m.put(ctx, key, bytes.NewReader(data), int64(len(data)), fileContentType)
	}

	if kind == kindFile && !(writable && flag&os.O_TRUNC != 0) {
		data, err := m.get(ctx, key)
		if err != nil {
			return nil, pathError("open", name, err)
		}
		return newFile(name, flag, data, info.LastModified, upload), nil
	}

	if err := upload(nil); err != nil {
		return nil, pathError("open", name, err)
	}
	return newFile(name, flag, nil, time.Now(), upload), nil
}

// Stat returns metadata for the object or directory at name.
func (m *MinioFS) Stat(name string) (fs.FileInfo, error) {
	key := m.key(name)
	kind, info, err := m.lookup(context.Background(), key)
	if err != nil {
		return nil, pathError("stat", name, err)
	}

	base := path.Base(normalize(name))
	switch kind {
	case kindFile:
		return newFileInfo(base, info.Size, info.LastModified), nil
	case kindDir:
		return newDirInfo(base, info.LastModified), nil
	default:
		return nil, pathError("stat", name, fs.ErrNotExist)
	}
}

// ReadDir lists the direct children of the directory name, sorted by name.
func (m *MinioFS) ReadDir(name string) ([]fs.DirEntry, error) {
	ctx := context.Background()
	key := m.key(name)

	kind, _, err := m.lookup(ctx, key)
	if err != nil {
		return nil, pathError("readdir", name, err)
	}
	switch kind {
	case kindMissing:
		return nil, pathError("readdir", name, fs.ErrNotExist)
	case kindFile:
		return nil, pathError("readdir", name, syscall.ENOTDIR)
	}

	prefix := dirKey(key)
	var entries []fs.DirEntry
	for obj := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{Prefix: prefix}) {
		if obj.Err != nil {
			return nil, pathError("readdir", name, translate(obj.Err))
		}
		if obj.Key == prefix {
			continue
		}

		rel := strings.TrimPrefix(obj.Key, prefix)
		if strings.HasSuffix(rel, "/") {
			entries = append(entries, &dirEntry{newDirInfo(strings.TrimSuffix(rel, "/"), obj.LastModified)})
			continue
		}
		entries = append(entries, &dirEntry{newFileInfo(rel, obj.Size, obj.LastModified)})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	return entries, nil
}

// Mkdir creates a directory marker. It fails if anything exists at name or
// the parent is missing.
func (m *MinioFS) Mkdir(name string, _ fs.FileMode) error {
	ctx := context.Background()
	key := m.key(name)

	kind, _, err := m.lookup(ctx, key)
	if err != nil {
		return pathError("mkdir", name, err)
	}
	if kind != kindMissing {
		return pathError("mkdir", name, fs.ErrExist)
	}
	if err := m.requireParent(ctx, "mkdir", name, key); err != nil {
		return err
	}

	return pathError("mkdir", name, m.put(ctx, dirKey(key), bytes.NewReader(nil), 0, dirContentType))
}

// MkdirAll creates markers for every missing directory along path.
func (m *MinioFS) MkdirAll(p string, _ fs.FileMode) error {
	ctx := context.Background()
	rel := normalize(p)
	if rel == "" {
		return nil
	}

	key := m.prefix
	for _, segment := range strings.Split(rel, "/") {
		key = joinKey(key, segment)

		kind, _, err := m.lookup(ctx, key)
		if err != nil {
			return pathError("mkdir", p, err)
		}
		switch kind {
		case kindFile:
			return pathError("mkdir", p, syscall.ENOTDIR)
		case kindMissing:
			if err := m.put(ctx, dirKey(key), bytes.NewReader(nil), 0, dirContentType); err != nil {
				return pathError("mkdir", p, err)
			}
		}
	}
	return nil
}

// Remove removes an object or an empty directory.
func (m *MinioFS) Remove(name string) error {
	ctx := context.Background()
	key := m.key(name)
	if key == m.prefix {
		return pathError("remove", name, fs.ErrInvalid)
	}

	kind, _, err := m.lookup(ctx, key)
	if err != nil {
		return pathError("remove", name, err)
	}

	switch kind {
	case kindMissing:
		return pathError("remove", name, fs.ErrNotExist)
	case kindDir:
		empty, err := m.emptyDir(ctx, key)
		if err != nil {
			return pathError("remove", name, err)
		}
		if !empty {
			return pathError("remove", name, syscall.ENOTEMPTY)
		}
		key = dirKey(key)
	}

	err = m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{})
	return pathError("remove", name, translate(err))
}

// emptyDir reports whether the directory at key has no children.
func (m *MinioFS) emptyDir(ctx context.Context, key string) (bool, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	prefix := dirKey(key)
	for obj := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{Prefix: prefix}) {
		if obj.Err != nil {
			return false, translate(obj.Err)
		}
		if obj.Key != prefix {
			return false, nil
		}
	}
	return true, nil
}

// RemoveAll removes path and every object below it, deleting concurrently.
// A missing path is not an error.
func (m *MinioFS) RemoveAll(p string) error {
	ctx := context.Background()
	key := m.key(p)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(m.removeConcurrency)

	remove := func(objectKey string) {
		eg.Go(func() error {
			err := m.client.RemoveObject(egCtx, m.bucket, objectKey, minio.RemoveObjectOptions{})
			if err != nil && !isNotFound(err) {
				return fmt.Errorf("remove object %s: %w", objectKey, err)
			}
			return nil
		})
	}

	if key != m.prefix {
		remove(key)
	}

	listCtx, cancel := context.WithCancel(egCtx)
	defer cancel()

	var listErr error
	for obj := range m.client.ListObjects(listCtx, m.bucket, minio.ListObjectsOptions{
		Prefix:    dirKey(key),
		Recursive: true,
	}) {
		if obj.Err != nil {
			listErr = obj.Err
			break
		}
		remove(obj.Key)
	}

	if err := eg.Wait(); err != nil {
		return pathError("removeall", p, translate(err))
	}
	return pathError("removeall", p, translate(listErr))
}

// ReplaceFile uploads everything from r to name in a single PUT. S3
// replaces objects atomically, so readers never see a partial upload.
func (m *MinioFS) ReplaceFile(name string, r io.Reader) error {
	ctx := context.Background()
	key := m.key(name)

	kind, _, err := m.lookup(ctx, key)
	if err != nil {
		return pathError("replace", name, err)
	}
	switch kind {
	case kindDir:
		return pathError("replace", name, syscall.EISDIR)
	case kindMissing:
		if err := m.requireParent(ctx, "replace", name, key); err != nil {
			return err
		}
	}

	return pathError("replace", name, m.put(ctx, key, r, -1, fileContentType))
}

// Compile-time interface checks.
var (
	_ core.FS        = (*MinioFS)(nil)
	_ core.ReplaceFS = (*MinioFS)(nil)
)
