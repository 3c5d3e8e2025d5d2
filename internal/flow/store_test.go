package flow

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"membership-backend-go/internal/models"
)

func TestIdentityStoreRoundTrip(t *testing.T) {
	store := NewIdentityStore(t.TempDir())

	identity := &models.Identity{
		ID:            "42",
		Name:          "taro",
		Discriminator: "0001",
		Avatar:        "https://cdn.discordapp.com/avatars/42/abcdef.png",
	}
	require.NoError(t, store.Save(identity))

	loaded := store.Load()
	require.NotNil(t, loaded)
	assert.Equal(t, identity, loaded)
}

func TestIdentityStoreFailsOpen(t *testing.T) {
	t.Run("nothing stored", func(t *testing.T) {
		store := NewIdentityStore(t.TempDir())
		assert.Nil(t, store.Load())
	})

	t.Run("malformed record", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, identityFileName), []byte("{not json"), 0o600))
		assert.Nil(t, NewIdentityStore(dir).Load())
	})

	t.Run("record without an id", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, identityFileName), []byte(`{"name":"taro"}`), 0o600))
		assert.Nil(t, NewIdentityStore(dir).Load())
	})
}

func TestIdentityStoreSaveReplaces(t *testing.T) {
	store := NewIdentityStore(t.TempDir())

	require.NoError(t, store.Save(&models.Identity{ID: "1", Name: "first"}))
	require.NoError(t, store.Save(&models.Identity{ID: "2", Name: "second"}))

	loaded := store.Load()
	require.NotNil(t, loaded)
	assert.Equal(t, "2", loaded.ID)
	assert.Equal(t, "second", loaded.Name)
}

func TestIdentityStoreClear(t *testing.T) {
	store := NewIdentityStore(t.TempDir())

	require.NoError(t, store.Save(&models.Identity{ID: "42"}))
	store.Clear()
	assert.Nil(t, store.Load())

	// Clearing again is a no-op.
	store.Clear()
	assert.Nil(t, store.Load())
}
