package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultLevelIsWarn(t *testing.T) {
	var buf bytes.Buffer
	logger, closer := New(Options{Component: "wrapper", Output: &buf})
	defer closer.Close()

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "component=wrapper")
}

func TestNew_DebugWritesSessionLog(t *testing.T) {
	var buf bytes.Buffer
	dir := filepath.Join(t.TempDir(), "logs")

	logger, closer := New(Options{Debug: true, LogDir: dir, Output: &buf})
	logger.Debug().Str("job", "backup").Msg("starting")
	require.NoError(t, closer.Close())

	assert.Contains(t, buf.String(), "starting")

	data, err := os.ReadFile(filepath.Join(dir, "debug.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "=== Debug session started:")
	assert.Contains(t, string(data), `"job":"backup"`)
}

func TestIsTerminal_NonFile(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}
