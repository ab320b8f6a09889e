package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/vmt/internal/core/domain"
)

func TestSessionStore_SaveAndLoad(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()
	session := &domain.Session{ID: "s1", Queries: []string{"sea"}}
	session.Select("sea", domain.MediaResult{Title: "Waves"})

	require.NoError(t, store.Save(ctx, "a.vmt.json", session))

	// later mutation must not leak into the store
	session.Queries[0] = "changed"
	session.Select("sky", domain.MediaResult{Title: "Clouds"})

	loaded, err := store.Load(ctx, "a.vmt.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"sea"}, loaded.Queries)
	assert.Len(t, loaded.Selected, 1)
	assert.Equal(t, "Waves", loaded.Selected["sea"].Title)
}

func TestSessionStore_Errors(t *testing.T) {
	store := NewSessionStore()

	_, err := store.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, store.Save(context.Background(), "x", nil), domain.ErrInvalidInput)
}
