package minio

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder captures uploads in place of a MinIO client.
type recorder struct {
	uploads [][]byte
	err     error
}

func (r *recorder) upload(data []byte) error {
	if r.err != nil {
		return r.err
	}
	r.uploads = append(r.uploads, append([]byte(nil), data...))
	return nil
}

func newTestFile(flag int, data string) (*File, *recorder) {
	rec := &recorder{}
	return newFile("dir/test.txt", flag, []byte(data), time.Time{}, rec.upload), rec
}

func TestFile_ReadWriteSeek(t *testing.T) {
	f, rec := newTestFile(os.O_RDWR, "")

	n, err := f.Write([]byte("0123456789"))
	require.NoError(t, err)
	assert.Equal(t, 10, n)

	pos, err := f.Seek(-4, io.SeekEnd)
	require.NoError(t, err)
	assert.Equal(t, int64(6), pos)

	buf := make([]byte, 8)
	n, err = f.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "6789", string(buf[:n]))

	n, err = f.Read(buf)
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, io.EOF)

	_, err = f.Seek(2, io.SeekStart)
	require.NoError(t, err)
	_, err = f.Write([]byte("AB"))
	require.NoError(t, err)

	pos, err = f.Seek(0, io.SeekCurrent)
	require.NoError(t, err)
	assert.Equal(t, int64(4), pos)

	require.NoError(t, f.Close())
	require.Len(t, rec.uploads, 1)
	assert.Equal(t, "01AB456789", string(rec.uploads[0]))
}

func TestFile_WritePastEnd(t *testing.T) {
	f, rec := newTestFile(os.O_WRONLY, "ab")

	_, err := f.Seek(4, io.SeekStart)
	require.NoError(t, err)
	_, err = f.Write([]byte("z"))
	require.NoError(t, err)

	require.NoError(t, f.Sync())
	require.Len(t, rec.uploads, 1)
	assert.Equal(t, []byte{'a', 'b', 0, 0, 'z'}, rec.uploads[0])
}

func TestFile_Append(t *testing.T) {
	f, rec := newTestFile(os.O_WRONLY|os.O_APPEND, "hello")

	_, err := f.Seek(0, io.SeekStart)
	require.NoError(t, err)
	_, err = f.Write([]byte(" world"))
	require.NoError(t, err)

	require.NoError(t, f.Close())
	assert.Equal(t, "hello world", string(rec.uploads[0]))
}

func TestFile_AccessMode(t *testing.T) {
	ro, _ := newTestFile(os.O_RDONLY, "data")
	_, err := ro.Write([]byte("x"))
	assert.ErrorIs(t, err, syscall.EBADF)
	assert.ErrorIs(t, ro.Truncate(0), syscall.EBADF)

	wo, _ := newTestFile(os.O_WRONLY, "data")
	_, err = wo.Read(make([]byte, 1))
	assert.ErrorIs(t, err, syscall.EBADF)
}

func TestFile_SeekErrors(t *testing.T) {
	f, _ := newTestFile(os.O_RDONLY, "data")

	_, err := f.Seek(-1, io.SeekStart)
	assert.ErrorIs(t, err, syscall.EINVAL)

	_, err = f.Seek(0, 42)
	assert.ErrorIs(t, err, syscall.EINVAL)
}

func TestFile_Truncate(t *testing.T) {
	f, rec := newTestFile(os.O_RDWR, "0123456789")
	_, err := f.Seek(8, io.SeekStart)
	require.NoError(t, err)

	require.NoError(t, f.Truncate(3))
	info, err := f.Stat()
	require.NoError(t, err)
	assert.Equal(t, int64(3), info.Size())

	pos, err := f.Seek(0, io.SeekCurrent)
	require.NoError(t, err)
	assert.Equal(t, int64(8), pos, "truncate leaves the cursor alone")

	require.NoError(t, f.Truncate(5))
	require.NoError(t, f.Close())
	assert.Equal(t, []byte{'0', '1', '2', 0, 0}, rec.uploads[0])

	assert.ErrorIs(t, f.Truncate(1), fs.ErrClosed)
}

func TestFile_SyncOnlyWhenDirty(t *testing.T) {
	f, rec := newTestFile(os.O_RDWR, "clean")

	require.NoError(t, f.Sync())
	assert.Empty(t, rec.uploads)

	_, err := f.Write([]byte("x"))
	require.NoError(t, err)
	require.NoError(t, f.Sync())
	require.NoError(t, f.Sync())
	require.NoError(t, f.Close())
	assert.Len(t, rec.uploads, 1)
}

func TestFile_UploadError(t *testing.T) {
	f, rec := newTestFile(os.O_WRONLY, "")
	rec.err = errors.New("network down")

	_, err := f.Write([]byte("x"))
	require.NoError(t, err)

	err = f.Close()
	require.Error(t, err)
	assert.ErrorIs(t, err, rec.err)

	var pe *fs.PathError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "sync", pe.Op)
}

func TestFile_Closed(t *testing.T) {
	f, _ := newTestFile(os.O_RDWR, "data")
	require.NoError(t, f.Close())

	_, err := f.Read(make([]byte, 1))
	assert.ErrorIs(t, err, fs.ErrClosed)
	_, err = f.Write([]byte("x"))
	assert.ErrorIs(t, err, fs.ErrClosed)
	_, err = f.Seek(0, io.SeekStart)
	assert.ErrorIs(t, err, fs.ErrClosed)
	_, err = f.Stat()
	assert.ErrorIs(t, err, fs.ErrClosed)
	assert.ErrorIs(t, f.Sync(), fs.ErrClosed)
	assert.ErrorIs(t, f.Close(), fs.ErrClosed)
}

func TestFile_StatAndName(t *testing.T) {
	modTime := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	f := newFile("/dir/report.csv", os.O_RDONLY, []byte("a,b"), modTime, nil)

	info, err := f.Stat()
	require.NoError(t, err)
	assert.Equal(t, "report.csv", info.Name())
	assert.Equal(t, int64(3), info.Size())
	assert.Equal(t, modTime, info.ModTime())
	assert.False(t, info.IsDir())
	assert.Equal(t, "/dir/report.csv", f.Name())
}
