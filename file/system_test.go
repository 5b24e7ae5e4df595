package file

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/file/errors"
	"github.com/jmgilman/go/file/fs/billy"
)

var sortStrings = cmpopts.SortSlices(func(a, b string) bool { return a < b })

func evalDir(t *testing.T, dir string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	return resolved
}

// TestStaticMethods walks the package-level utilities through a full
// create, list, remove cycle relative to the working directory.
func TestStaticMethods(t *testing.T) {
	base := t.TempDir()
	t.Chdir(base)

	cwd, err := WorkingDirectory()
	require.NoError(t, err)
	assert.Equal(t, evalDir(t, base), evalDir(t, cwd))

	require.NoError(t, CreateDirectory("zewo"))
	requireCode(t, CreateDirectory("zewo"), errors.CodeAlreadyExists)
	assert.True(t, Exists("zewo"))
	assert.True(t, IsDirectory("zewo"))

	require.NoError(t, ChangeWorkingDirectory("zewo"))
	cwd, err = WorkingDirectory()
	require.NoError(t, err)
	assert.Equal(t, evalDir(t, filepath.Join(base, "zewo")), evalDir(t, cwd))

	f, err := Open("file.txt", ModeTruncateReadWrite)
	require.NoError(t, err)
	_, err = f.WriteString("abc")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	assert.True(t, Exists("file.txt"))
	assert.False(t, IsDirectory("file.txt"))

	require.NoError(t, CreateDirectory("test/dir/", WithIntermediateDirectories()))
	assert.True(t, IsDirectory("test/dir"))

	contents, err := ContentsOfDirectory(".")
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"file.txt", "test"}, contents, sortStrings); diff != "" {
		t.Errorf("ContentsOfDirectory mismatch (-want +got):\n%s", diff)
	}

	contents, err = ContentsOfDirectory("test")
	require.NoError(t, err)
	assert.Equal(t, []string{"dir"}, contents)

	require.NoError(t, RemoveFile("file.txt"))
	requireCode(t, RemoveFile("file.txt"), errors.CodeNotFound)
	assert.False(t, Exists("file.txt"))

	require.NoError(t, RemoveDirectory("test"))
	requireCode(t, RemoveDirectory("test"), errors.CodeNotFound)

	contents, err = ContentsOfDirectory(".")
	require.NoError(t, err)
	assert.Equal(t, []string{}, contents)

	require.NoError(t, ChangeWorkingDirectory(".."))
	require.NoError(t, RemoveDirectory("zewo"))
	assert.False(t, Exists("zewo"))
}

func TestCreateDirectory_Quirks(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "existing")
	require.NoError(t, os.Mkdir(existing, 0o755))
	afile := filepath.Join(dir, "afile")
	require.NoError(t, os.WriteFile(afile, nil, 0o644))

	tests := []struct {
		name string
		path string
		opts []DirOption
		code errors.ErrorCode
	}{
		{"bare on existing directory", existing, nil, errors.CodeAlreadyExists},
		{"bare on existing file", afile, nil, errors.CodeAlreadyExists},
		{"bare with missing parent", filepath.Join(dir, "a", "b"), nil, errors.CodeNotFound},
		{"recursive on existing file", afile, []DirOption{WithIntermediateDirectories()}, errors.CodeAlreadyExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireCode(t, CreateDirectory(tt.path, tt.opts...), tt.code)
		})
	}

	t.Run("recursive on existing directory", func(t *testing.T) {
		assert.NoError(t, CreateDirectory(existing, WithIntermediateDirectories()))
	})

	t.Run("recursive creates every segment", func(t *testing.T) {
		require.NoError(t, CreateDirectory(filepath.Join(dir, "x", "y", "z"), WithIntermediateDirectories()))
		for _, p := range []string{"x", "x/y", "x/y/z"} {
			assert.True(t, IsDirectory(filepath.Join(dir, p)), p)
		}

		contents, err := ContentsOfDirectory(dir)
		require.NoError(t, err)
		assert.Contains(t, contents, "x")
	})
}

func TestCreateDirectory_Permissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "private")
	require.NoError(t, CreateDirectory(path, WithDirPermissions(0o700)))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), info.Mode().Perm())

	nested := filepath.Join(path, "a", "b")
	require.NoError(t, CreateDirectory(nested, WithIntermediateDirectories(), WithDirPermissions(0o750)))
	for _, dir := range []string{filepath.Join(path, "a"), nested} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o750), info.Mode().Perm(), dir)
	}

	info, err = os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), info.Mode().Perm(), "existing parents keep their mode")
}

func TestSystem_NotFound(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")

	requireCode(t, RemoveFile(missing), errors.CodeNotFound)
	requireCode(t, RemoveDirectory(missing), errors.CodeNotFound)

	_, err := ContentsOfDirectory(missing)
	requireCode(t, err, errors.CodeNotFound)

	requireCode(t, ChangeWorkingDirectory(missing), errors.CodeNotFound)
	assert.False(t, Exists(missing))
	assert.False(t, IsDirectory(missing))
}

func TestSystem_WrongEntryType(t *testing.T) {
	dir := t.TempDir()
	afile := filepath.Join(dir, "afile")
	require.NoError(t, os.WriteFile(afile, []byte("x"), 0o644))

	_, err := ContentsOfDirectory(afile)
	requireCode(t, err, errors.CodeNotFound)
	requireCode(t, RemoveDirectory(afile), errors.CodeNotFound)
	requireCode(t, ChangeWorkingDirectory(afile), errors.CodeNotFound)
	requireCode(t, RemoveFile(dir), errors.CodeInvalidInput)

	assert.True(t, Exists(afile), "failed calls must not remove anything")
	assert.True(t, Exists(dir))
}

func TestReplaceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	require.NoError(t, ReplaceFile(path, strings.NewReader("new contents")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new contents", string(got))

	err = ReplaceFile(filepath.Join(filepath.Dir(path), "nope", "x"), strings.NewReader(""))
	requireCode(t, err, errors.CodeNotFound)
}

func TestSystem_Memory(t *testing.T) {
	sys := NewSystem(WithFS(billy.NewMemory()))

	require.NoError(t, sys.CreateDirectory("/data/logs", WithIntermediateDirectories()))
	requireCode(t, sys.CreateDirectory("/data"), errors.CodeAlreadyExists)

	f, err := sys.Open("/data/app.log", ModeCreateWrite)
	require.NoError(t, err)
	_, err = f.WriteString("line\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = sys.Open("/data/app.log", ModeCreateWrite)
	requireCode(t, err, errors.CodeAlreadyExists)

	contents, err := sys.ContentsOfDirectory("/data")
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"app.log", "logs"}, contents, sortStrings); diff != "" {
		t.Errorf("ContentsOfDirectory mismatch (-want +got):\n%s", diff)
	}

	require.NoError(t, sys.ReplaceFile("/data/app.log", strings.NewReader("replaced")))
	f, err = sys.Open("/data/app.log", ModeRead)
	require.NoError(t, err)
	got, err := f.ReadAll()
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.Equal(t, "replaced", string(got))

	contents, err = sys.ContentsOfDirectory("/data")
	require.NoError(t, err)
	assert.Len(t, contents, 2, "no temporary files left behind")

	require.NoError(t, sys.RemoveFile("/data/app.log"))
	require.NoError(t, sys.RemoveDirectory("/data"))
	assert.False(t, sys.Exists("/data/logs"))

	_, err = sys.WorkingDirectory()
	requireCode(t, err, errors.CodeNotImplemented)
	requireCode(t, sys.ChangeWorkingDirectory("/"), errors.CodeNotImplemented)
}

func TestSystem_FS(t *testing.T) {
	mem := billy.NewMemory()
	assert.Same(t, mem, NewSystem(WithFS(mem)).FS())
	assert.NotNil(t, NewSystem().FS())
}
