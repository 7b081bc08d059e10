package gallery

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/naturecards/social/internal/models"
	"github.com/naturecards/social/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMemoryStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	seed := `[
		{"_id": "u1", "username": "alder", "friends": [{"$oid": "u2"}]},
		{"_id": "u2", "username": "birch", "friends": ["u1"]}
	]`
	require.NoError(t, os.WriteFile(path, []byte(seed), 0o600))

	store, err := LoadMemoryStore(path)
	require.NoError(t, err)

	doc, err := store.FetchUserByUsername(context.Background(), "alder")
	require.NoError(t, err)
	assert.Equal(t, "u1", doc.ID)
	assert.Equal(t, models.IDList{"u2"}, doc.Friends)
	assert.NotNil(t, doc.PendingFriends)

	_, err = LoadMemoryStore(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestMemoryStoreCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(&models.UserDocument{ID: "u1", Username: "alder"})

	doc, err := store.FetchUser(ctx, "u1")
	require.NoError(t, err)
	doc.Friends = append(doc.Friends, "u9")

	again, err := store.FetchUser(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, again.Friends)

	require.NoError(t, store.WriteUser(ctx, doc))
	again, err = store.FetchUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.IDList{"u9"}, again.Friends)
}

func TestMemoryStoreErrors(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(&models.UserDocument{ID: "u1", Username: "alder"})

	_, err := store.FetchUser(ctx, "ghost")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	err = store.WriteUser(ctx, &models.UserDocument{ID: "ghost", Username: "ghost"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	err = store.WriteUser(ctx, &models.UserDocument{ID: "u1"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	outage := apperrors.Network(errors.New("timeout"), "write failed")
	store.FailWrite("u1", outage)
	err = store.WriteUser(ctx, &models.UserDocument{ID: "u1", Username: "alder"})
	assert.ErrorIs(t, err, apperrors.ErrNetwork)

	store.FailWrite("u1", nil)
	assert.NoError(t, store.WriteUser(ctx, &models.UserDocument{ID: "u1", Username: "alder"}))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = store.FetchUser(cancelled, "u1")
	assert.ErrorIs(t, err, apperrors.ErrNetwork)

	_, err = FetchCurrentUser(ctx, store, "")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
