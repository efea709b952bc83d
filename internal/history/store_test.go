package history

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	store, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, path
}

func TestOpenCreatesFile(t *testing.T) {
	_, path := openTemp(t)

	_, err := os.Stat(path)
	assert.NoError(t, err, "database file should exist after Open")
}

func TestInsertAndRecent(t *testing.T) {
	store, _ := openTemp(t)

	start := time.Date(2026, 10, 19, 3, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		outcome := OutcomeSuccess
		if i == 2 {
			outcome = OutcomeFailure
		}
		require.NoError(t, store.Insert(Entry{
			JobID:      "backup",
			RunID:      fmt.Sprintf("run-%d", i),
			Command:    "restic backup",
			Outcome:    outcome,
			ExitCode:   i,
			StartedAt:  start.Add(time.Duration(i) * time.Hour),
			FinishedAt: start.Add(time.Duration(i)*time.Hour + time.Second),
			DurationMs: 1000,
		}))
	}
	require.NoError(t, store.Insert(Entry{JobID: "sync", RunID: "other", Outcome: OutcomeSuccess, StartedAt: start, FinishedAt: start}))

	entries, err := store.Recent("backup", 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Newest first
	assert.Equal(t, "run-2", entries[0].RunID)
	assert.True(t, entries[0].Failed())
	assert.Equal(t, 2, entries[0].ExitCode)
	assert.Equal(t, start.Add(2*time.Hour), entries[0].StartedAt)
	assert.Equal(t, "run-0", entries[2].RunID)
	assert.False(t, entries[2].Failed())

	all, err := store.Recent("", 10)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	limited, err := store.Recent("", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestInsertDuplicateRunIDIgnored(t *testing.T) {
	store, _ := openTemp(t)

	e := Entry{JobID: "backup", RunID: "same", Outcome: OutcomeSuccess}
	require.NoError(t, store.Insert(e))
	require.NoError(t, store.Insert(e))

	entries, err := store.Recent("backup", 10)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
