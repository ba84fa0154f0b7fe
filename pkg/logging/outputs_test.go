package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleOutputOptions(t *testing.T) {
	out := NewConsoleOutput(false)
	assert.True(t, out.color)

	out = NewConsoleOutput(true, WithColor(false))
	assert.False(t, out.color)
	assert.Equal(t, os.Stderr, out.writer)
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")

	out, err := NewFileOutput(path)
	require.NoError(t, err)

	entry := LogEntry{
		Time:     time.Now().UnixNano(),
		Severity: INFO,
		Message:  "composed command",
		File:     "optimize.go",
		Line:     42,
		RunID:    "run-1",
		Method:   "optimize",
	}
	require.NoError(t, out.Write(entry))
	require.NoError(t, out.Sync())
	require.NoError(t, out.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "composed command")
	assert.Contains(t, string(data), "run=run-1")
	assert.Contains(t, string(data), "method=optimize")
}

func TestFormatFieldsTruncates(t *testing.T) {
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'x'
	}

	formatted := formatFields(map[string]interface{}{"argv": string(long)})
	assert.Contains(t, formatted, "...")
	assert.Less(t, len(formatted), 260)

	assert.Equal(t, "", formatFields(nil))
}
