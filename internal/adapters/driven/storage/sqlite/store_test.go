package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/vmt/internal/core/domain"
)

// setupTestStore creates a temporary SQLite bundle for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(filepath.Join(t.TempDir(), "bundle.db"))
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })
	return store
}

func testSession() *domain.Session {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return &domain.Session{
		ID:        "sess-1",
		Text:      "The deer runs through the forest.",
		Queries:   []string{"deer forest", "golden light", "calm river"},
		MediaType: domain.MediaPhoto,
		Analyzer:  "rake",
		CreatedAt: created,
		UpdatedAt: created.Add(time.Minute),
		Selected: map[string]domain.MediaResult{
			"golden light": {
				Title: "Sunbeam", Provider: "pexels", URL: "https://p/1", Thumb: "https://p/1.jpg",
				Author: "Ana", License: "Free", MediaType: domain.MediaPhoto, Extra: map[string]string{"id": "1"},
			},
			"deer forest": {Title: "Deer", Provider: "pixabay", URL: "https://x/2", Duration: 12.5},
		},
	}
}

func TestNewStore_CreatesSchema(t *testing.T) {
	store := setupTestStore(t)

	var version int
	require.NoError(t, store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 1, version)

	for _, table := range []string{"sessions", "queries", "selections"} {
		var name string
		err := store.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, table)
	}
}

func TestNewStore_ReopenSkipsAppliedMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bundle.db")
	first, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := NewStore(path)
	require.NoError(t, err)
	defer second.Close()

	var count int
	require.NoError(t, second.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)
	assert.Equal(t, path, second.Path())
}

func TestStore_SaveAndGetSession(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	want := testSession()

	require.NoError(t, store.SaveSession(ctx, want))
	got, err := store.GetSession(ctx, "sess-1")

	require.NoError(t, err)
	assert.Equal(t, want.Text, got.Text)
	assert.Equal(t, want.Queries, got.Queries)
	assert.Equal(t, domain.MediaPhoto, got.MediaType)
	assert.Equal(t, "rake", got.Analyzer)
	assert.WithinDuration(t, want.CreatedAt, got.CreatedAt, time.Second)
	require.Len(t, got.Selected, 2)
	sun := got.Selected["golden light"]
	assert.Equal(t, "Sunbeam", sun.Title)
	assert.Equal(t, "golden light", sun.Query)
	assert.Equal(t, domain.Extra{"id": "1"}, sun.Extra)
	assert.InDelta(t, 12.5, got.Selected["deer forest"].Duration, 0.001)
	assert.Nil(t, got.Selected["deer forest"].Extra)
}

func TestStore_SaveSession_Replaces(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	session := testSession()
	require.NoError(t, store.SaveSession(ctx, session))

	session.Queries = []string{"storm"}
	session.Selected = nil
	require.NoError(t, store.SaveSession(ctx, session))

	got, err := store.GetSession(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"storm"}, got.Queries)
	assert.Empty(t, got.Selected)

	ids, err := store.SessionIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"sess-1"}, ids)
}

func TestStore_SaveSession_Invalid(t *testing.T) {
	store := setupTestStore(t)

	assert.ErrorIs(t, store.SaveSession(context.Background(), nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, store.SaveSession(context.Background(), &domain.Session{}), domain.ErrInvalidInput)
}

func TestStore_GetSession_NotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.GetSession(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExporter_Export(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "vmt_export.db")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o600))
	exporter := NewExporter()

	require.NoError(t, exporter.Export(context.Background(), path, testSession()))

	assert.Equal(t, domain.ExportSQLite, exporter.Format())
	store, err := NewStore(path)
	require.NoError(t, err)
	defer store.Close()
	got, err := store.GetSession(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Len(t, got.Selected, 2)
}

func TestExporter_NilSession(t *testing.T) {
	err := NewExporter().Export(context.Background(), filepath.Join(t.TempDir(), "x.db"), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExporter_Export_LeavesOnlyBundle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vmt_export.db")

	require.NoError(t, NewExporter().Export(context.Background(), path, testSession()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "vmt_export.db", entries[0].Name())
}

func TestExporter_Export_FailureKeepsPrevious(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vmt_export.db")
	require.NoError(t, os.WriteFile(path, []byte("previous"), 0o600))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewExporter().Export(ctx, path, testSession())

	require.Error(t, err)
	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "previous", string(data))
	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Len(t, entries, 1)
}
