package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuerySpec(t *testing.T) {
	t.Run("keeps order and trims", func(t *testing.T) {
		spec, err := NewQuerySpec([]string{" filename:.marker ", "", "marker in:path"})

		require.NoError(t, err)
		assert.Equal(t, QuerySpec{"filename:.marker", "marker in:path"}, spec)
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		_, err := NewQuerySpec([]string{"a", " a"})

		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rejects empty list", func(t *testing.T) {
		_, err := NewQuerySpec([]string{" ", ""})

		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("default queries are valid", func(t *testing.T) {
		_, err := NewQuerySpec(DefaultQueries)

		assert.NoError(t, err)
	})
}
