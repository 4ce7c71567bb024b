package settings_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/pixelblast/settings"
)

func openTempStore(t *testing.T) (*settings.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pixelblast.db")
	store, err := settings.Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, path
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := settings.Open(context.Background(), " ")
	assert.ErrorIs(t, err, settings.ErrPathRequired)
}

func TestAccount(t *testing.T) {
	ctx := context.Background()
	store, _ := openTempStore(t)

	_, ok, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Save(ctx, settings.Account{ID: 7, Name: "grace", BestScore: 120}))
	acc, ok, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, settings.Account{ID: 7, Name: "grace", BestScore: 120}, acc)

	t.Run("lower score does not overwrite", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, settings.Account{ID: 7, Name: "grace", BestScore: 40}))
		acc, _, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, 120, acc.BestScore)
	})

	t.Run("another player replaces the account", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, settings.Account{ID: 8, Name: "heidi", BestScore: 16}))
		acc, _, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, settings.Account{ID: 8, Name: "heidi", BestScore: 16}, acc)
	})

	t.Run("clear", func(t *testing.T) {
		require.NoError(t, store.Clear(ctx))
		_, ok, err := store.Load(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestBestScore(t *testing.T) {
	ctx := context.Background()
	store, err := settings.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	score, err := store.BestScore(ctx, 8)
	require.NoError(t, err)
	assert.Zero(t, score)

	require.NoError(t, store.RecordScore(ctx, 8, 64))
	require.NoError(t, store.RecordScore(ctx, 8, 24))
	require.NoError(t, store.RecordScore(ctx, 10, 30))

	score, err = store.BestScore(ctx, 8)
	require.NoError(t, err)
	assert.Equal(t, 64, score)

	score, err = store.BestScore(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 30, score)
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	store, path := openTempStore(t)
	require.NoError(t, store.Save(ctx, settings.Account{ID: 1, Name: "ivan", BestScore: 8}))
	require.NoError(t, store.Close())

	reopened, err := settings.Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	acc, ok, err := reopened.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "ivan", acc.Name)
}
