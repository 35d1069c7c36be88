package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, JSON: true, Level: slog.LevelInfo})

	log.Debug("hidden")
	log.Info("listings loaded", "count", 4)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "listings loaded", entry["msg"])
	assert.EqualValues(t, 4, entry["count"])
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf})
	log.Warn("price band ignored", "value", "cheap")
	assert.Contains(t, buf.String(), "price band ignored")
	assert.Contains(t, buf.String(), "cheap")
}
