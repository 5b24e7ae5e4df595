package minio

import (
	"errors"
	"io/fs"
	"net/http"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/file/fs/core"
)

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		errMsg string
	}{
		{
			name: "valid config with credentials",
			config: Config{
				Endpoint:  "localhost:9000",
				Bucket:    "test-bucket",
				AccessKey: "minioadmin",
				SecretKey: "minioadmin",
			},
		},
		{
			name: "valid config with client",
			config: Config{
				Client: &minio.Client{},
				Bucket: "test-bucket",
			},
		},
		{
			name: "missing bucket",
			config: Config{
				Endpoint:  "localhost:9000",
				AccessKey: "minioadmin",
				SecretKey: "minioadmin",
			},
			errMsg: "bucket is required",
		},
		{
			name: "missing endpoint without client",
			config: Config{
				Bucket:    "test-bucket",
				AccessKey: "minioadmin",
				SecretKey: "minioadmin",
			},
			errMsg: "endpoint is required when client is not provided",
		},
		{
			name: "missing access key without client",
			config: Config{
				Endpoint:  "localhost:9000",
				Bucket:    "test-bucket",
				SecretKey: "minioadmin",
			},
			errMsg: "access key is required when client is not provided",
		},
		{
			name: "missing secret key without client",
			config: Config{
				Endpoint:  "localhost:9000",
				Bucket:    "test-bucket",
				AccessKey: "minioadmin",
			},
			errMsg: "secret key is required when client is not provided",
		},
		{
			name: "negative concurrency",
			config: Config{
				Client:               &minio.Client{},
				Bucket:               "test-bucket",
				MaxRemoveConcurrency: -1,
			},
			errMsg: "must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestNewMinIO(t *testing.T) {
	t.Run("builds a client from credentials", func(t *testing.T) {
		mfs, err := NewMinIO(Config{
			Endpoint:  "localhost:9000",
			Bucket:    "bucket",
			AccessKey: "key",
			SecretKey: "secret",
			Prefix:    "/team//data/",
		})
		require.NoError(t, err)
		assert.NotNil(t, mfs.client)
		assert.Equal(t, "bucket", mfs.bucket)
		assert.Equal(t, "team/data", mfs.prefix)
		assert.Equal(t, defaultRemoveConcurrency, mfs.removeConcurrency)
	})

	t.Run("uses the provided client", func(t *testing.T) {
		client := &minio.Client{}
		mfs, err := NewMinIO(Config{Client: client, Bucket: "bucket", MaxRemoveConcurrency: 3})
		require.NoError(t, err)
		assert.Same(t, client, mfs.client)
		assert.Equal(t, 3, mfs.removeConcurrency)
	})

	t.Run("rejects invalid config", func(t *testing.T) {
		_, err := NewMinIO(Config{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid config")
	})
}

func TestType(t *testing.T) {
	mfs, err := NewMinIO(Config{Client: &minio.Client{}, Bucket: "b"})
	require.NoError(t, err)
	assert.Equal(t, core.FSTypeRemote, mfs.Type())
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{".", ""},
		{"/", ""},
		{"file.txt", "file.txt"},
		{"/dir/file.txt", "dir/file.txt"},
		{"dir//sub///file", "dir/sub/file"},
		{"dir/sub/", "dir/sub"},
		{"./a/../b", "b"},
		{"../../escape", "escape"},
		{`dir\file.txt`, "dir/file.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize(tt.in))
		})
	}
}

func TestKeys(t *testing.T) {
	plain := &MinioFS{}
	prefixed := &MinioFS{prefix: "root"}

	assert.Equal(t, "a/b", plain.key("/a/b/"))
	assert.Equal(t, "", plain.key("/"))
	assert.Equal(t, "root/a/b", prefixed.key("a/b"))
	assert.Equal(t, "root", prefixed.key("."))

	assert.Equal(t, "", dirKey(""))
	assert.Equal(t, "a/b/", dirKey("a/b"))

	assert.Equal(t, "a", parentKey("a/b"))
	assert.Equal(t, "", parentKey("a"))
	assert.Equal(t, "root/a", parentKey("root/a/b"))
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no such key", minio.ErrorResponse{Code: "NoSuchKey"}, fs.ErrNotExist},
		{"no such bucket", minio.ErrorResponse{Code: "NoSuchBucket"}, fs.ErrNotExist},
		{"bare 404", minio.ErrorResponse{StatusCode: http.StatusNotFound}, fs.ErrNotExist},
		{"access denied", minio.ErrorResponse{Code: "AccessDenied"}, fs.ErrPermission},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, translate(tt.err), tt.want)
		})
	}

	assert.NoError(t, translate(nil))

	other := errors.New("connection reset")
	got := translate(other)
	assert.ErrorIs(t, got, other)
	assert.Contains(t, got.Error(), "minio:")
}

func TestPathError(t *testing.T) {
	assert.NoError(t, pathError("open", "x", nil))

	err := pathError("open", "x", fs.ErrNotExist)
	var pe *fs.PathError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "open", pe.Op)
	assert.Equal(t, "x", pe.Path)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestDirEntry(t *testing.T) {
	dir := &dirEntry{newDirInfo("sub", time.Time{})}
	assert.Equal(t, "sub", dir.Name())
	assert.True(t, dir.IsDir())
	assert.Equal(t, fs.ModeDir, dir.Type())

	file := &dirEntry{newFileInfo("a.txt", 3, time.Time{})}
	assert.False(t, file.IsDir())
	assert.Equal(t, fs.FileMode(0), file.Type())
	info, err := file.Info()
	require.NoError(t, err)
	assert.Equal(t, int64(3), info.Size())
	assert.Equal(t, filePerm, info.Mode())
	assert.Nil(t, info.Sys())
}
