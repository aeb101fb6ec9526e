package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/hugohenrick/emceep/internal/domain/event"
	"github.com/hugohenrick/emceep/internal/infrastructure/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestArchive(t *testing.T) *ChangelogArchive {
	t.Helper()
	ctx := context.Background()
	db, err := database.OpenSQLite(ctx, database.SQLiteConfig{Path: filepath.Join(t.TempDir(), "archive.db")})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.RunMigrations(db, nil))

	archive := NewChangelogArchive(db, nil)
	tick := time.Unix(1700000000, 0)
	archive.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}
	return archive
}

func TestArchiveReceivesEveryStoreEntry(t *testing.T) {
	archive := newTestArchive(t)
	repo := newFixtureRepository(t, WithSinks(archive))
	ctx := context.Background()

	_, err := repo.UpdateScheduleTime(ctx, "keynote", "10:00", "")
	require.NoError(t, err)
	_, err = repo.UpdateScheduleLocation(ctx, "panel", "Room B")
	require.NoError(t, err)
	require.NoError(t, repo.UpdateFAQ(ctx, "parking", "Lot C"))

	all, err := archive.List(ctx, ArchiveFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, event.ChangeAddFAQ, all[0].Type)
	assert.Equal(t, event.ChangeTimeChange, all[2].Type)

	moves, err := archive.List(ctx, ArchiveFilter{Type: event.ChangeLocationChange})
	require.NoError(t, err)
	require.Len(t, moves, 1)
	assert.Equal(t, "item_2", moves[0].ItemID)
	assert.Equal(t, "Room B", moves[0].NewValue)

	counts, err := archive.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts[event.ChangeTimeChange])
}

func TestArchiveBackfillSkipsKnownEntries(t *testing.T) {
	archive := newTestArchive(t)
	ctx := context.Background()

	first := event.NewChangelogEntry(event.ChangeAddAttendee, "Added attendee Ana")
	second := event.NewChangelogEntry(event.ChangeSMSSent, "SMS sent to attendee Ana")
	second.Details = map[string]any{"person_id": "att_001", "message_sid": "SM123"}

	require.NoError(t, archive.Publish(ctx, first))

	inserted, err := archive.Backfill(ctx, []event.ChangelogEntry{first, second, {Type: event.ChangeAddFAQ}})
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)

	entries, err := archive.List(ctx, ArchiveFilter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "SM123", entries[0].Details["message_sid"])
}

func TestArchiveRejectsDuplicatePublish(t *testing.T) {
	archive := newTestArchive(t)
	ctx := context.Background()

	entry := event.NewChangelogEntry(event.ChangeUpdateFAQ, "Updated FAQ entry wifi")
	require.NoError(t, archive.Publish(ctx, entry))
	assert.Error(t, archive.Publish(ctx, entry))
}
