package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "test", log.WarnLevel)

	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "key=value")
}

func TestFileAppendsToPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sift.log")

	logger, closer, err := File(path, "tui", "debug")
	require.NoError(t, err)
	logger.Debug("debounce fired", "query", "cat")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "debounce fired")
}

func TestParseLevelFallsBackToInfo(t *testing.T) {
	assert.Equal(t, log.InfoLevel, parseLevel("nonsense"))
}
