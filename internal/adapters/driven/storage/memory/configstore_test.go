package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_Getters(t *testing.T) {
	store := NewConfigStore(map[string]any{
		"collector.max_items": int64(25),
		"collector.queries":   []any{"a", 1, "b"},
		"collector.output":    "out.json",
	})

	assert.Equal(t, 25, store.GetInt("collector.max_items"))
	assert.Equal(t, []string{"a", "b"}, store.GetStringSlice("collector.queries"))
	assert.Equal(t, "out.json", store.GetString("collector.output"))

	assert.Zero(t, store.GetInt("collector.output"), "wrong type yields zero value")
	assert.Empty(t, store.GetString("missing"))
	assert.Nil(t, store.GetStringSlice("missing"))
	assert.Empty(t, store.Path())
}

func TestConfigStore_Set(t *testing.T) {
	store := NewConfigStore(nil)

	require.NoError(t, store.Set("collector.queries", []string{"x"}))

	val, ok := store.Get("collector.queries")
	assert.True(t, ok)
	assert.Equal(t, []string{"x"}, val)
}

func TestNewConfigStore_CopiesSeed(t *testing.T) {
	seed := map[string]any{"k": "v"}
	store := NewConfigStore(seed)

	seed["k"] = "changed"

	assert.Equal(t, "v", store.GetString("k"))
}
