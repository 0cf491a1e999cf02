package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/markerhub/internal/core/domain"
)

func TestRunStore(t *testing.T) {
	store := NewRunStore()
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"r1", "r2", "r3"} {
		require.NoError(t, store.Record(ctx, domain.RunRecord{ID: id, StartedAt: base.Add(time.Duration(i) * time.Hour)}))
	}

	recent, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "r3", recent[0].ID)
	assert.Equal(t, "r2", recent[1].ID)

	require.NoError(t, store.Prune(ctx, 1))
	all, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "r3", all[0].ID)
}

func TestRunStore_RejectsMissingID(t *testing.T) {
	err := NewRunStore().Record(context.Background(), domain.RunRecord{})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
