package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/file/errors"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestWriteAndCat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hello.txt")

	res := runCLI(t, "hello\n", "write", path)
	require.Equal(t, 0, res.code, res.stderr)

	res = runCLI(t, "world\n", "write", "--mode", "appendWrite", path)
	require.Equal(t, 0, res.code, res.stderr)

	res = runCLI(t, "", "cat", path)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "hello\nworld\n", res.stdout)
}

func TestWrite_CreateExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "once.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	res := runCLI(t, "y", "write", "--mode", "createWrite", path)
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "ALREADY_EXISTS")
}

func TestWrite_Flags(t *testing.T) {
	dir := t.TempDir()

	res := runCLI(t, "x", "write", "--mode", "read", filepath.Join(dir, "a"))
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "cannot write")

	res = runCLI(t, "x", "write", "--perm", "999", filepath.Join(dir, "a"))
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "invalid permissions")

	path := filepath.Join(dir, "private")
	res = runCLI(t, "secret", "write", "--perm", "600", "--timeout", "10s", path)
	require.Equal(t, 0, res.code, res.stderr)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestWrite_Atomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	res := runCLI(t, "new", "write", "--atomic", path)
	require.Equal(t, 0, res.code, res.stderr)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
}

func TestDirectoryCommands(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b")

	res := runCLI(t, "", "mkdir", nested)
	assert.Equal(t, 1, res.code, "missing parent without -p")
	assert.Contains(t, res.stderr, "NOT_FOUND")

	res = runCLI(t, "", "mkdir", "-p", nested)
	require.Equal(t, 0, res.code, res.stderr)

	res = runCLI(t, "", "mkdir", filepath.Join(dir, "a"))
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "ALREADY_EXISTS")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a", "z.txt"), nil, 0o644))

	res = runCLI(t, "", "ls", filepath.Join(dir, "a"))
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "b\nz.txt\n", res.stdout)

	res = runCLI(t, "", "exists", filepath.Join(dir, "a", "z.txt"))
	assert.Equal(t, "true\n", res.stdout)

	res = runCLI(t, "", "exists", "-d", filepath.Join(dir, "a", "z.txt"))
	assert.Equal(t, "false\n", res.stdout)

	res = runCLI(t, "", "rm", filepath.Join(dir, "a", "z.txt"))
	require.Equal(t, 0, res.code, res.stderr)

	res = runCLI(t, "", "rm", filepath.Join(dir, "a", "z.txt"))
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "NOT_FOUND")

	res = runCLI(t, "", "rmdir", filepath.Join(dir, "a"))
	require.Equal(t, 0, res.code, res.stderr)
	assert.NoDirExists(t, filepath.Join(dir, "a"))
}

func TestPwd(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	res := runCLI(t, "", "pwd")
	require.Equal(t, 0, res.code, res.stderr)

	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(strings.TrimSpace(res.stdout))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPathCommands(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"path", "fix", "/foo/bar//fuu///baz/"}, "/foo/bar/fuu/baz/"},
		{[]string{"path", "fix", "--strip-trailing", "/foo/bar//fuu///baz/"}, "/foo/bar/fuu/baz"},
		{[]string{"path", "parent", "/foo/bar//fuu///baz/"}, "/foo/bar/fuu"},
		{[]string{"path", "parent", "/foo"}, "/"},
		{[]string{"path", "base", "/foo/bar/"}, "bar"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			res := runCLI(t, "", tt.args...)
			require.Equal(t, 0, res.code, res.stderr)
			assert.Equal(t, tt.want+"\n", res.stdout)
		})
	}
}

func TestJSONErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")

	res := runCLI(t, "", "--json", "cat", missing)
	assert.Equal(t, 1, res.code)

	var resp errors.ErrorResponse
	require.NoError(t, json.Unmarshal([]byte(res.stderr), &resp))
	assert.Equal(t, string(errors.CodeNotFound), resp.Code)
	assert.Equal(t, "open", resp.Context["op"])
	assert.Equal(t, missing, resp.Context["path"])
	assert.Equal(t, "read", resp.Context["mode"])
}

func TestVerboseLogging(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logged.txt")

	res := runCLI(t, "x", "-v", "write", path)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stderr, "opened file")
	assert.Contains(t, res.stderr, "flushed file")

	res = runCLI(t, "x", "write", path)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Empty(t, res.stderr)
}

func TestS3BackendConfig(t *testing.T) {
	t.Setenv(envAccessKey, "")
	t.Setenv(envSecretKey, "")

	res := runCLI(t, "", "--json", "--s3-bucket", "data", "ls", "/")
	assert.Equal(t, 1, res.code)

	var resp errors.ErrorResponse
	require.NoError(t, json.Unmarshal([]byte(res.stderr), &resp))
	assert.Equal(t, string(errors.CodeInvalidInput), resp.Code)
	assert.Equal(t, "data", resp.Context["bucket"])

	res = runCLI(t, "", "--s3-bucket", "data", "--s3-endpoint", "localhost:9000", "ls", "/")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "access key is required")
}

func TestS3Flags_EnvCredentials(t *testing.T) {
	t.Setenv(envAccessKey, "env-access")
	t.Setenv(envSecretKey, "env-secret")

	s := s3Flags{bucket: "data", endpoint: "localhost:9000"}
	backend, err := s.backend()
	require.NoError(t, err)
	assert.NotNil(t, backend)

	s = s3Flags{}
	backend, err = s.backend()
	require.NoError(t, err)
	assert.Nil(t, backend)
}
