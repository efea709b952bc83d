package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aceteam-ai/cronwatch/internal/history"
	"github.com/aceteam-ai/cronwatch/internal/scan"
)

type fakeSSH map[string]scan.Output

func (f fakeSSH) Run(ctx context.Context, name string, args ...string) (scan.Output, error) {
	return f[args[2]], nil
}

// execute runs the root command with isolated config directories.
func execute(t *testing.T, ssh fakeSSH, args ...string) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_DIRS", t.TempDir())
	t.Setenv("SWIFTBAR", "")

	prev := runner
	runner = ssh
	t.Cleanup(func() { runner = prev })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append([]string{"--config=", "--remote-errors-dir="}, args...))
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func touchRecords(t *testing.T, dir string, ids ...string) {
	t.Helper()
	for _, id := range ids {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "cronjob-"+id+".log"), []byte("status: exit status 1\n"), 0644))
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cron.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReporter_LocalOnly(t *testing.T) {
	dir := t.TempDir()
	touchRecords(t, dir, "sync", "backup")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "unrelated.txt"), nil, 0644))

	out := execute(t, nil, "--format", "bitbar", "--errors-dir", dir)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")

	require.Len(t, lines, 5)
	assert.Equal(t, "cron: 2", lines[0])
	assert.Equal(t, "---", lines[1])
	assert.Equal(t, "local", lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "backup | bash="))
	assert.Contains(t, lines[3], filepath.Join(dir, "cronjob-backup.log"))
	assert.True(t, strings.HasPrefix(lines[4], "sync | bash="))
}

func TestReporter_RemoteHostFromConfig(t *testing.T) {
	dir := t.TempDir()
	touchRecords(t, dir, "backup")
	cfg := writeConfig(t, `{"hosts": ["db1"]}`)

	out := execute(t, fakeSSH{"db1": {Stdout: []byte("cronjob-vacuum.log\n")}},
		"--format", "bitbar", "--errors-dir", dir, "--config", cfg)

	assert.Contains(t, out, "---\ndb1\nvacuum | bash=ssh param1=db1 param2=cat param3=.local/share/syncbin/cronjob-vacuum.log terminal=true\n")
	assert.True(t, strings.HasPrefix(out, "cron: 2\n"))
}

func TestReporter_RemoteDirOverride(t *testing.T) {
	cfg := writeConfig(t, `{"hosts": ["db1"], "remote_errors_dir": "/var/cron"}`)

	out := execute(t, fakeSSH{"db1": {Stdout: []byte("cronjob-vacuum.log\n")}},
		"--format", "bitbar", "--errors-dir", t.TempDir(), "--config", cfg)
	assert.Contains(t, out, "param3=/var/cron/cronjob-vacuum.log")
}

func TestReporter_NothingFailing(t *testing.T) {
	out := execute(t, nil, "--format", "bitbar", "--errors-dir", t.TempDir())
	assert.Empty(t, out)
}

func TestReporter_RemoteFailureReplacesMenu(t *testing.T) {
	dir := t.TempDir()
	touchRecords(t, dir, "backup")
	cfg := writeConfig(t, `{"hosts": ["db1"]}`)

	out := execute(t, fakeSSH{"db1": {ExitCode: 2, Status: "exit status 2", Stderr: []byte("ls: cannot access '.local/share/syncbin': No such file or directory\n")}},
		"--format", "bitbar", "--errors-dir", dir, "--config", cfg)

	assert.Equal(t, "subcommand exited with exit status 2\nstdout: \nstderr: ls: cannot access '.local/share/syncbin': No such file or directory\n", out)
}

func TestReporter_MalformedConfig(t *testing.T) {
	cfg := writeConfig(t, `{"hosts": `)
	out := execute(t, nil, "--format", "bitbar", "--errors-dir", t.TempDir(), "--config", cfg)
	assert.True(t, strings.HasPrefix(out, "error reading config file: "), out)
}

func TestReporter_MissingErrorsDir(t *testing.T) {
	out := execute(t, nil, "--format", "bitbar", "--errors-dir", filepath.Join(t.TempDir(), "absent"))
	assert.True(t, strings.HasPrefix(out, "I/O error: "), out)
}

func TestReporter_JSON(t *testing.T) {
	dir := t.TempDir()
	touchRecords(t, dir, "backup")

	out := execute(t, nil, "--format", "json", "--errors-dir", dir)
	assert.Contains(t, out, `"total": 1`)
	assert.Contains(t, out, `"id": "backup"`)
}

func TestHistoryCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := history.Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Insert(history.Entry{JobID: "backup", RunID: "r1", Outcome: history.OutcomeFailure, ExitCode: 3, Status: "exit status 3"}))
	require.NoError(t, store.Insert(history.Entry{JobID: "sync", RunID: "r2", Outcome: history.OutcomeSuccess}))
	require.NoError(t, store.Close())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"history", "backup", "--history", path})
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "exit status 3")
	assert.NotContains(t, out.String(), "sync")
}

func TestHistoryCommand_NoDatabase(t *testing.T) {
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"history", "--history", filepath.Join(t.TempDir(), "none.db")})
	assert.ErrorContains(t, rootCmd.Execute(), "no run history")
}
