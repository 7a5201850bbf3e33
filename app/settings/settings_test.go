package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("JOBLOG_TEST_DIR", "/data/jobs")

	tbl := []struct{ name, inp, exp string }{
		{"plain", "/var/lib/job-log", "/var/lib/job-log"},
		{"tilde", "~", home},
		{"tilde dir", "~/.job-log", filepath.Join(home, ".job-log")},
		{"env", "$JOBLOG_TEST_DIR/db", "/data/jobs/db"},
		{"tilde in the middle kept", "/tmp/~x", "/tmp/~x"},
		{"relative", "data", "data"},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.exp, ExpandPath(tt.inp))
		})
	}
}

func TestDBFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "job-log")
	dbFile, err := DBFile(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, DBFileName), dbFile)

	st, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, st.IsDir(), "data directory created")

	t.Run("not a directory", func(t *testing.T) {
		f := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(f, []byte("x"), 0o600))
		_, err := DBFile(filepath.Join(f, "sub"))
		assert.Error(t, err)
	})
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()

	t.Run("no file", func(t *testing.T) {
		assert.NoError(t, LoadEnv(dir))
	})

	err := os.WriteFile(filepath.Join(dir, EnvFileName),
		[]byte("JOBLOG_TEST_FROM_FILE=file\nJOBLOG_TEST_SHELL=file\n"), 0o600)
	require.NoError(t, err)

	t.Setenv("JOBLOG_TEST_SHELL", "shell")
	t.Setenv("JOBLOG_TEST_FROM_FILE", "")
	require.NoError(t, os.Unsetenv("JOBLOG_TEST_FROM_FILE"))

	require.NoError(t, LoadEnv(dir))
	assert.Equal(t, "file", os.Getenv("JOBLOG_TEST_FROM_FILE"))
	assert.Equal(t, "shell", os.Getenv("JOBLOG_TEST_SHELL"), "shell env wins")
}
