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
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestJSONLoggerWritesKeyValues(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "info", Format: "json", Output: &buf})

	log.Debug("hidden")
	log.Info("schedule updated", "item_id", "item_1", "new_time", "10:00")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "schedule updated", entry["msg"])
	assert.Equal(t, "item_1", entry["item_id"])
	assert.Equal(t, "10:00", entry["new_time"])
}

func TestWithAttachesFields(t *testing.T) {
	var buf bytes.Buffer
	base := New(Options{Format: "text", Output: &buf}).(*SlogLogger)

	base.With("component", "store").Warn("persist failed")

	assert.Contains(t, buf.String(), "component=store")
	assert.Contains(t, buf.String(), "persist failed")
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
	OrNop(nil).Error("ignored")
}
