package scan

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aceteam-ai/cronwatch/internal/record"
)

// fakeRunner answers ssh listings from a per-host table.
type fakeRunner struct {
	mu      sync.Mutex
	outputs map[string]Output
	errs    map[string]error
	calls   [][]string
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) (Output, error) {
	f.mu.Lock()
	f.calls = append(f.calls, append([]string{name}, args...))
	f.mu.Unlock()

	host := args[2]
	if err := f.errs[host]; err != nil {
		return Output{}, err
	}
	return f.outputs[host], nil
}

func TestLocalSource(t *testing.T) {
	store := record.NewMemStore(map[string]string{"sync": "x", "backup": "y"})
	jobs, err := (&LocalSource{Store: store}).FailedJobs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"backup", "sync"}, jobs)
}

func TestLocalSource_ListError(t *testing.T) {
	store := record.NewMemStore(nil)
	store.ListErr = record.ErrInvalidFilename

	_, err := (&LocalSource{Store: store}).FailedJobs(context.Background())
	assert.ErrorIs(t, err, ErrInvalidFilename)
}

func TestSSHSource_ParsesListing(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]Output{
		"db1": {Stdout: []byte("notes.txt\ncronjob-vacuum.log\ncronjob-analyze.log\r\n.cronjob-vacuum-123.tmp\ncronjob-vacuum.log\n")},
	}}
	src := &SSHSource{HostName: "db1", Dir: ".local/share/syncbin", Runner: runner}

	jobs, err := src.FailedJobs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"analyze", "vacuum"}, jobs)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"ssh", "-o", "BatchMode=yes", "db1", "ls", ".local/share/syncbin"}, runner.calls[0])
}

func TestSSHSource_NonZeroExit(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]Output{
		"db1": {ExitCode: 2, Status: "exit status 2", Stdout: []byte("partial"), Stderr: []byte("ls: cannot access")},
	}}
	src := &SSHSource{HostName: "db1", Dir: "errors", Runner: runner}

	_, err := src.FailedJobs(context.Background())
	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, "db1", cmdErr.Host)
	assert.Equal(t, 2, cmdErr.ExitCode)
	assert.Equal(t, "exit status 2", cmdErr.Status)
	assert.Equal(t, []byte("partial"), cmdErr.Stdout)
	assert.Equal(t, []byte("ls: cannot access"), cmdErr.Stderr)
	assert.Contains(t, cmdErr.Error(), "subcommand exited with exit status 2")
}

func TestSSHSource_InvalidUTF8(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]Output{
		"db1": {Stdout: []byte("cronjob-\xff.log\n")},
	}}
	_, err := (&SSHSource{HostName: "db1", Dir: "errors", Runner: runner}).FailedJobs(context.Background())
	assert.ErrorIs(t, err, ErrInvalidFilename)
}

func TestCollect_OrderAndTotal(t *testing.T) {
	store := record.NewMemStore(map[string]string{"sync": "", "backup": ""})
	runner := &fakeRunner{outputs: map[string]Output{
		"db1": {Stdout: []byte("cronjob-vacuum.log\n")},
		"web": {Stdout: []byte("")},
		"app": {Stdout: []byte("cronjob-b.log\ncronjob-a.log\n")},
	}}

	sources := Sources(store, []string{"db1", "web", "app"}, "errors", runner)
	groups, err := Collect(context.Background(), zerolog.Nop(), sources, 2)
	require.NoError(t, err)

	want := []HostGroup{
		{Host: LocalHost, Jobs: []string{"backup", "sync"}},
		{Host: "db1", Jobs: []string{"vacuum"}},
		{Host: "web", Jobs: []string{}},
		{Host: "app", Jobs: []string{"a", "b"}},
	}
	assert.Equal(t, want, groups)
	assert.Equal(t, 5, Total(groups))
}

func TestCollect_FirstErrorWins(t *testing.T) {
	store := record.NewMemStore(nil)
	runner := &fakeRunner{
		outputs: map[string]Output{"ok": {}},
		errs:    map[string]error{"down": errors.New("ssh command not found")},
	}

	_, err := Collect(context.Background(), zerolog.Nop(), Sources(store, []string{"ok", "down"}, "errors", runner), 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ssh command not found")
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, normalize([]string{"c", "a", "b", "a", "c"}))
	assert.Equal(t, []string{}, normalize(nil))
}

func TestRemotePath(t *testing.T) {
	assert.Equal(t, ".local/share/syncbin/cronjob-vacuum.log", RemotePath(".local/share/syncbin", "vacuum"))
	assert.Equal(t, "/var/log/cron/cronjob-x.log", RemotePath("/var/log/cron/", "x"))
}

func TestShellQuote(t *testing.T) {
	tests := map[string]string{
		"":                     "''",
		".local/share/syncbin": ".local/share/syncbin",
		"my errors":            "'my errors'",
		"it's":                 `'it'\''s'`,
		"$HOME/x":              "'$HOME/x'",
	}
	for in, want := range tests {
		t.Run(strings.ReplaceAll(in, "/", "_"), func(t *testing.T) {
			assert.Equal(t, want, ShellQuote(in))
		})
	}
}

func TestWithProgress(t *testing.T) {
	store := record.NewMemStore(map[string]string{"backup": ""})
	runner := &fakeRunner{outputs: map[string]Output{"db1": {}, "db2": {}}}

	var mu sync.Mutex
	var finished []string
	sources := WithProgress(Sources(store, []string{"db1", "db2"}, "errors", runner), func(host string, err error) {
		mu.Lock()
		defer mu.Unlock()
		assert.NoError(t, err)
		finished = append(finished, host)
	})

	groups, err := Collect(context.Background(), zerolog.Nop(), sources, 1)
	require.NoError(t, err)
	assert.Equal(t, LocalHost, groups[0].Host)
	assert.ElementsMatch(t, []string{LocalHost, "db1", "db2"}, finished)
}
