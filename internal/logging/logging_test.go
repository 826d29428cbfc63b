package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   LevelDebug,
		"DEBUG":   LevelDebug,
		"info":    LevelInfo,
		"warn":    LevelWarn,
		"Warning": LevelWarn,
		"error":   LevelError,
		"bogus":   LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "UNKNOWN", Level(42).String())
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("JSON"))
	assert.Equal(t, FormatConsole, ParseFormat("console"))
	assert.Equal(t, FormatConsole, ParseFormat(""))
}

func TestLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelInfo)
	l.SetOutput(&buf)
	l.SetFormat(FormatJSON)

	l.Debug("hidden %d", 1)
	l.Info("schedule built for %s", "2025-01-06")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "schedule built for 2025-01-06", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelError)
	l.SetOutput(&buf)
	l.SetFormat(FormatJSON)

	l.Warn("dropped")
	assert.Empty(t, buf.String())

	l.SetLevel(LevelDebug)
	l.Debug("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestLogger_Console(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelDebug)
	l.SetOutput(&buf)

	l.Warn("rahu kaal starts")
	out := buf.String()
	assert.Contains(t, out, "WRN")
	assert.Contains(t, out, "rahu kaal starts")
	assert.NotContains(t, out, "\x1b[", "buffers get no color codes")
}

func TestLogger_WithAndErr(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelInfo)
	l.SetOutput(&buf)
	l.SetFormat(FormatJSON)

	l.With("component", "news").Err(errors.New("timeout"), "fetch failed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "news", entry["component"])
	assert.Equal(t, "timeout", entry["error"])
	assert.Equal(t, "fetch failed", entry["message"])
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("nothing %s", "happens")
	l.Err(errors.New("x"), "y")
}
