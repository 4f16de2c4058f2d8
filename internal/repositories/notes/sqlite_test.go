package notes

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekeeper/internal/models"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE notes (
  note_id TEXT PRIMARY KEY,
  title TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  note_category TEXT NOT NULL DEFAULT '',
  media_list TEXT NOT NULL DEFAULT '',
  media_id TEXT NOT NULL DEFAULT '',
  user_id TEXT NOT NULL DEFAULT '',
  date_created TEXT NOT NULL DEFAULT '',
  sync_flag INTEGER NOT NULL DEFAULT 0
);
`)
	require.NoError(t, err)

	return db
}

func note(id, title, date string, syncFlag int) models.Note {
	return models.Note{
		NoteID:      id,
		Title:       title,
		Category:    "Work",
		UserID:      "u1",
		DateCreated: date,
		SyncFlag:    syncFlag,
	}
}

func TestInsert_UpsertReplacesByID(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	n := note("id1", "first", "2024-01-01", 0)
	require.NoError(t, r.Insert(ctx, &n))

	n2 := note("id1", "second", "2024-01-01", 1)
	require.NoError(t, r.Insert(ctx, &n2))

	all, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "second", all[0].Title)
	assert.Equal(t, 1, all[0].SyncFlag)
}

func TestGetAll_OrderedByDateCreated(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.InsertAll(ctx, []models.Note{
		note("b", "later", "2024-03-01", 0),
		note("a", "earlier", "2024-01-01", 0),
	}))

	all, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "earlier", all[0].Title)
	assert.Equal(t, "later", all[1].Title)
}

func TestGetAllPending_OnlySyncFlagZero(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.InsertAll(ctx, []models.Note{
		note("p1", "pending", "2024-01-01", 0),
		note("p2", "pending too", "2024-01-02", 0),
		note("s1", "synced", "2024-01-03", 1),
	}))

	pending, err := r.GetAllPending(ctx)
	require.NoError(t, err)

	ids := make(map[string]struct{})
	for _, n := range pending {
		ids[n.NoteID] = struct{}{}
	}
	assert.Equal(t, map[string]struct{}{"p1": {}, "p2": {}}, ids)
}

func TestGetByID_AbsentReturnsNil(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	got, err := r.GetByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDeleteByID_RemovesAndIgnoresAbsent(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	n := note("x", "t", "2024-01-01", 0)
	require.NoError(t, r.Insert(ctx, &n))

	require.NoError(t, r.DeleteByID(ctx, "x"))
	require.NoError(t, r.DeleteByID(ctx, "x")) // absent id is fine

	got, err := r.GetByID(ctx, "x")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestWatch_EmitsSnapshotAndReEmitsOnMutation(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream, err := r.Watch(ctx)
	require.NoError(t, err)

	// initial snapshot is empty
	select {
	case snap := <-stream:
		assert.Empty(t, snap)
	case <-time.After(time.Second):
		t.Fatal("no initial snapshot")
	}

	n := note("w1", "watched", "2024-01-01", 0)
	require.NoError(t, r.Insert(ctx, &n))

	select {
	case snap := <-stream:
		require.Len(t, snap, 1)
		assert.Equal(t, "watched", snap[0].Title)
	case <-time.After(time.Second):
		t.Fatal("no re-emit after insert")
	}
}

func TestWatch_ClosesOnCancel(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx, cancel := context.WithCancel(context.Background())

	stream, err := r.Watch(ctx)
	require.NoError(t, err)

	<-stream // initial snapshot
	cancel()

	select {
	case _, ok := <-stream:
		assert.False(t, ok, "stream should be closed")
	case <-time.After(time.Second):
		t.Fatal("stream not closed after cancel")
	}
}

func TestWatchByID_EmitsNilWhenAbsent(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream, err := r.WatchByID(ctx, "nope")
	require.NoError(t, err)

	select {
	case got := <-stream:
		assert.Nil(t, got)
	case <-time.After(time.Second):
		t.Fatal("no initial emission")
	}
}
