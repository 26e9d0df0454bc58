package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightforge/site-api/internal/intake"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "sessions.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	s := intake.NewSession("sql-1")
	s.Append(intake.SenderUser, "hello")
	s.Append(intake.SenderBot, "hi there")
	s.MergeProjectDetails(intake.ProjectDetails{Type: "web-app"})
	require.NoError(t, store.Put(ctx, s, time.Minute))

	got, err := store.Get(ctx, "sql-1")
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, s.Stage, got.Stage)
	assert.Len(t, got.Messages, 2)
	assert.Equal(t, "web-app", got.ProjectDetails.Type)
}

func TestSQLiteStore_ReplaceKeepsOneRow(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	s := intake.NewSession("sql-2")
	require.NoError(t, store.Put(ctx, s, time.Minute))

	s.Append(intake.SenderUser, "more")
	s.Advance()
	require.NoError(t, store.Put(ctx, s, time.Minute))

	got, err := store.Get(ctx, "sql-2")
	require.NoError(t, err)
	assert.Equal(t, intake.StageProjectType, got.Stage)
	assert.Len(t, got.Messages, 1)
}

func TestSQLiteStore_MissingAndExpired(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	s := intake.NewSession("sql-3")
	require.NoError(t, store.Put(ctx, s, -time.Second))
	_, err = store.Get(ctx, "sql-3")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStore_Cleanup(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, intake.NewSession("live"), time.Minute))
	require.NoError(t, store.Put(ctx, intake.NewSession("dead"), -time.Second))

	n, err := store.Cleanup(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = store.Get(ctx, "live")
	assert.NoError(t, err)
}

func TestSQLiteStore_Delete(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, intake.NewSession("gone"), time.Minute))
	require.NoError(t, store.Delete(ctx, "gone"))
	_, err := store.Get(ctx, "gone")
	assert.ErrorIs(t, err, ErrNotFound)
}
