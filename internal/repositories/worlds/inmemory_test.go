package worlds_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgard/crownlands/internal/domain/shared"
	cerr "github.com/talgard/crownlands/internal/errors"
	"github.com/talgard/crownlands/internal/repositories/worlds"
	"github.com/talgard/crownlands/internal/testutils"
)

func TestInMemoryRoundtrip(t *testing.T) {
	ctx := context.Background()
	repo := worlds.NewInMemoryRepository()
	w := testutils.CreateTestWorld()

	require.NoError(t, repo.Save(ctx, "world_1", w.Snapshot()))

	snap, err := repo.Load(ctx, "world_1")
	require.NoError(t, err)
	assert.Equal(t, w.Now, snap.Now)
	require.Len(t, snap.Characters, 2)
	assert.Len(t, snap.Fiefs, 3)
	assert.Len(t, snap.Provinces, 1)
	assert.Len(t, snap.Kingdoms, 1)
	assert.Len(t, snap.Sessions, 1)
}

func TestInMemoryIsolation(t *testing.T) {
	ctx := context.Background()
	repo := worlds.NewInMemoryRepository()
	w := testutils.CreateTestWorld()

	require.NoError(t, repo.Save(ctx, "world_1", w.Snapshot()))

	// Mutating the live world after the save must not bleed into the
	// stored copy.
	king := w.Character("chr_king")
	st, _ := king.Player()
	st.Purse = 0
	king.Alive = false

	snap, err := repo.Load(ctx, "world_1")
	require.NoError(t, err)
	for _, c := range snap.Characters {
		if c.ID != shared.CharacterID("chr_king") {
			continue
		}
		assert.True(t, c.Alive)
		saved, ok := c.Player()
		require.True(t, ok)
		assert.Equal(t, int64(10000), saved.Purse)
	}
}

func TestInMemoryNotFound(t *testing.T) {
	ctx := context.Background()
	repo := worlds.NewInMemoryRepository()

	_, err := repo.Load(ctx, "missing")
	require.Error(t, err)
	assert.True(t, cerr.IsNotFound(err))
	assert.Equal(t, "missing", cerr.GetMeta(err)["world_id"])

	assert.True(t, cerr.IsNotFound(repo.Delete(ctx, "missing")))
}

func TestInMemoryValidation(t *testing.T) {
	ctx := context.Background()
	repo := worlds.NewInMemoryRepository()
	w := testutils.CreateTestWorld()

	assert.True(t, cerr.Is(repo.Save(ctx, "", w.Snapshot()), cerr.CodeInvalidArgument))
	assert.True(t, cerr.Is(repo.Save(ctx, "world_1", nil), cerr.CodeInvalidArgument))

	_, err := repo.Load(ctx, "")
	assert.True(t, cerr.Is(err, cerr.CodeInvalidArgument))
	assert.True(t, cerr.Is(repo.Delete(ctx, ""), cerr.CodeInvalidArgument))
}

func TestInMemoryDelete(t *testing.T) {
	ctx := context.Background()
	repo := worlds.NewInMemoryRepository()
	w := testutils.CreateTestWorld()

	require.NoError(t, repo.Save(ctx, "world_1", w.Snapshot()))
	require.NoError(t, repo.Delete(ctx, "world_1"))

	_, err := repo.Load(ctx, "world_1")
	assert.True(t, cerr.IsNotFound(err))
}
