package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/devpulse/internal/common"
	"github.com/dmitrijs2005/devpulse/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func envelope(t *testing.T, id string, updated time.Time, synced *time.Time) models.Envelope {
	t.Helper()
	return models.Envelope{
		ID:        id,
		Payload:   []byte(`{"id":"` + id + `","project":"devpulse"}`),
		UpdatedAt: updated,
		SyncedAt:  synced,
	}
}

func TestRecords_PutGetRoundTrip(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRecords(db)
	ctx := context.Background()

	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, r.Put(ctx, models.CollectionCodingSessions, envelope(t, "id1", now, nil)))

	got, err := r.Get(ctx, models.CollectionCodingSessions, "id1")
	require.NoError(t, err)
	assert.Equal(t, "id1", got.ID)
	assert.JSONEq(t, `{"id":"id1","project":"devpulse"}`, string(got.Payload))
	assert.True(t, got.UpdatedAt.Equal(now))
	assert.Nil(t, got.SyncedAt)
}

func TestRecords_PutReplacesExisting(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRecords(db)
	ctx := context.Background()

	t0 := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Minute)

	require.NoError(t, r.Put(ctx, models.CollectionCodingSessions, envelope(t, "id1", t0, nil)))
	require.NoError(t, r.Put(ctx, models.CollectionCodingSessions, envelope(t, "id1", t1, &t1)))

	got, err := r.Get(ctx, models.CollectionCodingSessions, "id1")
	require.NoError(t, err)
	assert.True(t, got.UpdatedAt.Equal(t1))
	require.NotNil(t, got.SyncedAt)
	assert.True(t, got.SyncedAt.Equal(t1))

	all, err := r.GetAll(ctx, models.CollectionCodingSessions)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRecords_CollectionsAreIndependent(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRecords(db)
	ctx := context.Background()

	now := time.Now().UTC()
	require.NoError(t, r.Put(ctx, models.CollectionCodingSessions, envelope(t, "id1", now, nil)))
	require.NoError(t, r.Put(ctx, models.CollectionLearningItems, envelope(t, "id2", now, nil)))

	coding, err := r.GetAll(ctx, models.CollectionCodingSessions)
	require.NoError(t, err)
	learning, err := r.GetAll(ctx, models.CollectionLearningItems)
	require.NoError(t, err)

	assert.Len(t, coding, 1)
	assert.Len(t, learning, 1)
	assert.Equal(t, "id1", coding[0].ID)
	assert.Equal(t, "id2", learning[0].ID)
}

func TestRecords_GetNotFound(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRecords(db)

	_, err := r.Get(context.Background(), models.CollectionCodingSessions, "nope")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestRecords_DeleteIsIdempotent(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRecords(db)
	ctx := context.Background()

	now := time.Now().UTC()
	require.NoError(t, r.Put(ctx, models.CollectionFocusSessions, envelope(t, "id1", now, nil)))

	require.NoError(t, r.Delete(ctx, models.CollectionFocusSessions, "id1"))
	require.NoError(t, r.Delete(ctx, models.CollectionFocusSessions, "id1"))

	_, err := r.Get(ctx, models.CollectionFocusSessions, "id1")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestRecords_UnknownCollection(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRecords(db)
	ctx := context.Background()

	err := r.Put(ctx, "bookmarks", envelope(t, "id1", time.Now(), nil))
	assert.Error(t, err)

	_, err = r.GetAll(ctx, "bookmarks")
	assert.Error(t, err)
}
