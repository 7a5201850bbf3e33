package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/natefinch/lumberjack.v2"
	"gopkg.in/yaml.v3"
)

func Test_setupLogsWithLogsDisabled(t *testing.T) {
	assert.Equal(t, io.Discard, setupLogs(logOptions{}, false, os.Stderr))
}

func Test_setupLogsToStderr(t *testing.T) {
	buf := &bytes.Buffer{}
	assert.Equal(t, buf, setupLogs(logOptions{Enabled: true}, false, buf))
	assert.Equal(t, buf, setupLogs(logOptions{}, true, buf), "debug enables logging")
	setupLogs(logOptions{}, false, os.Stderr)
}

func Test_setupLogsToFile(t *testing.T) {
	tmpfile, err := os.CreateTemp(t.TempDir(), "")
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	lo := logOptions{Enabled: true, Filename: tmpfile.Name(), MaxSize: 100, MaxBackups: 7, MaxAge: 0}
	out := setupLogs(lo, false, os.Stderr)
	assert.IsType(t, &lumberjack.Logger{}, out)

	logger := out.(*lumberjack.Logger)
	assert.Equal(t, tmpfile.Name(), logger.Filename)
	assert.Equal(t, 100, logger.MaxSize)
	assert.Equal(t, 7, logger.MaxBackups)
	assert.Equal(t, 0, logger.MaxAge)
	assert.False(t, logger.Compress)
	require.NoError(t, logger.Close())
	setupLogs(logOptions{}, false, os.Stderr)
}

type runResult struct {
	code           int
	stdout, stderr string
}

func runCmd(t *testing.T, dir, stdin string, args ...string) runResult {
	t.Helper()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	args = append([]string{"--db", dir, "--no-color"}, args...)
	code := run(context.Background(), args, strings.NewReader(stdin), stdout, stderr)
	return runResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func Test_run(t *testing.T) {
	dir := t.TempDir()

	res := runCmd(t, dir, "", "add", "Acme", "Backend Engineer", "-l", "Remote")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Added job #1")
	assert.FileExists(t, filepath.Join(dir, "jobs.db"))

	res = runCmd(t, dir, "", "add", "Beta", "SRE", "--ai")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Added job #2")

	res = runCmd(t, dir, "", "apply", "1", "-n", "via referral", "-d", "2024-03-01")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Applied to job #1")

	res = runCmd(t, dir, "", "response", "1", "-r", "-n", "position filled")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Rejection from Acme")

	res = runCmd(t, dir, "", "list", "-s", "rejected")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Acme")
	assert.NotContains(t, res.stdout, "Beta")

	res = runCmd(t, dir, "", "search", "sre")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Beta")

	res = runCmd(t, dir, "", "show", "1")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "position filled")
	assert.Contains(t, res.stdout, "2024-03-01")

	res = runCmd(t, dir, "", "export", "-f", "yaml")
	require.Equal(t, 0, res.code, res.stderr)
	var doc struct {
		Jobs []struct {
			Company  string `yaml:"company"`
			Timeline []any  `yaml:"timeline"`
		} `yaml:"jobs"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(res.stdout), &doc))
	require.Len(t, doc.Jobs, 2)

	res = runCmd(t, dir, "n\n", "delete", "2")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Cancelled")

	res = runCmd(t, dir, "", "delete", "2", "-f")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Deleted job #2")

	res = runCmd(t, dir, "", "report", "-d", "30")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Activity Report - Last 30 Days")
}

func Test_runErrors(t *testing.T) {
	dir := t.TempDir()

	tbl := []struct {
		name   string
		args   []string
		code   int
		stderr string
	}{
		{"not found", []string{"show", "42"}, 1, "Job #42 not found"},
		{"bad status", []string{"status", "1", "hired"}, 1, "unknown status"},
		{"bad date", []string{"apply", "1", "-d", "yesterday"}, 2, "invalid date"},
		{"bad id", []string{"show", "abc"}, 2, "abc"},
		{"missing args", []string{"add", "Acme"}, 2, "TITLE"},
		{"no command", []string{}, 2, ""},
		{"bad export format", []string{"export", "-f", "xml"}, 2, "xml"},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			res := runCmd(t, dir, "", tt.args...)
			assert.Equal(t, tt.code, res.code, res.stderr)
			assert.Contains(t, res.stderr, tt.stderr)
		})
	}
}

func Test_runHelp(t *testing.T) {
	res := runCmd(t, t.TempDir(), "", "--help")
	assert.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "job")
	assert.Contains(t, res.stdout, "apply")
}
