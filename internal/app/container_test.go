package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hugohenrick/emceep/internal/adapter/repository"
	"github.com/hugohenrick/emceep/internal/config"
	"github.com/hugohenrick/emceep/internal/domain/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const containerDocument = `{
  "name": "DevConf",
  "schedule": [{"id": "item_1", "title": "Opening Keynote", "time": "09:00", "location": "Main Hall"}],
  "attendees": [],
  "changelog": [
    {"id": "old-1", "type": "add_faq", "description": "Added FAQ entry 'wifi'", "timestamp": "2025-05-01T10:00:00Z"}
  ]
}`

func testConfig(t *testing.T, archive bool) *config.Config {
	t.Helper()
	dir := t.TempDir()
	data := filepath.Join(dir, "event.json")
	require.NoError(t, os.WriteFile(data, []byte(containerDocument), 0o644))

	return &config.Config{
		DataPath: data,
		Archive: config.ArchiveConfig{
			Enabled:     archive,
			Path:        filepath.Join(dir, "changelog.db"),
			BusyTimeout: time.Second,
		},
		Metrics:  config.MetricsConfig{Enabled: true},
		Executor: config.ExecutorConfig{Threshold: 0.5},
	}
}

func TestBuildWiresArchiveSink(t *testing.T) {
	ctx := context.Background()
	c, err := Build(ctx, testConfig(t, true), nil, Options{Feed: true})
	require.NoError(t, err)
	defer c.Close()

	require.NotNil(t, c.Archive)
	require.NotNil(t, c.Hub)
	require.NotNil(t, c.Metrics)

	// a entrada antiga do documento foi copiada para o arquivo
	entries, err := c.Archive.List(ctx, repository.ArchiveFilter{Type: event.ChangeAddFAQ})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "old-1", entries[0].ID)

	_, err = c.Repository.UpdateScheduleLocation(ctx, "item_1", "Room B")
	require.NoError(t, err)

	entries, err = c.Archive.List(ctx, repository.ArchiveFilter{Type: event.ChangeLocationChange})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "item_1", entries[0].ItemID)
}

func TestBuildWithoutArchive(t *testing.T) {
	c, err := Build(context.Background(), testConfig(t, false), nil, Options{})
	require.NoError(t, err)
	defer c.Close()

	assert.Nil(t, c.Archive)
	assert.Nil(t, c.Hub)
	assert.True(t, c.Dispatcher.HasTool("send_sms"))

	result := c.Executor.Process(context.Background(), "move the opening keynote to 10am", true)
	assert.NotEmpty(t, result.Classification.Intent)
}
