package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/markerhub/internal/core/domain"
)

func TestSnapshotStore_ReadBeforeWrite(t *testing.T) {
	store := NewSnapshotStore()

	_, err := store.Read(context.Background())

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, store.Writes())
}

func TestSnapshotStore_WriteAndRead(t *testing.T) {
	store := NewSnapshotStore()
	ctx := context.Background()
	snap := domain.Snapshot{
		GeneratedAt:  time.Now().UTC(),
		Repositories: []domain.RepositoryRecord{{Identity: "a/b", Stars: 3}},
	}

	require.NoError(t, store.Write(ctx, snap))
	snap.Repositories[0].Stars = 99

	got, err := store.Read(ctx)

	require.NoError(t, err)
	assert.Equal(t, 3, got.Repositories[0].Stars, "store keeps its own copy")
	assert.Equal(t, 1, store.Writes())
	assert.Equal(t, "memory", store.Path())
}
