package logging

import (
	"bytes"
	"encoding/json"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONHonoursLevel(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	logger, err := New(&buf, Options{Level: "warn", Format: "json"})
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "project_id", 3)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, float64(3), entry["project_id"])
}

func TestNew_RejectsUnknownSettings(t *testing.T) {
	t.Parallel()

	_, err := New(&bytes.Buffer{}, Options{Format: "xml"})
	assert.Error(t, err)

	_, err = New(&bytes.Buffer{}, Options{Level: "loud"})
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	for name, want := range map[string]slog.Level{
		"":        slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	} {
		got, err := ParseLevel(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
}

func TestInit_WritesToFile(t *testing.T) {
	previous := slog.Default()

	path := filepath.Join(t.TempDir(), "logs", "flowboard.log")
	logger, closer, err := Init(Options{Level: "debug", File: path})
	require.NoError(t, err)
	t.Cleanup(func() {
		slog.SetDefault(previous)
		log.SetOutput(os.Stderr)
		_ = closer.Close()
	})

	logger.Debug("board opened", "project_id", 1)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "board opened")
	assert.Contains(t, string(data), "project_id=1")
}
