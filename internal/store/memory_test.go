package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	t.Run("should return ErrNotFound for a missing key", func(t *testing.T) {
		_, err := s.Get(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("should round-trip a value", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "k", "v1"))

		val, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "v1", val)
	})

	t.Run("should overwrite on repeated Set", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "k", "v2"))

		val, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "v2", val)
	})

	t.Run("should remove a key", func(t *testing.T) {
		require.NoError(t, s.Remove(ctx, "k"))

		_, err := s.Get(ctx, "k")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("should treat removing a missing key as a no-op", func(t *testing.T) {
		assert.NoError(t, s.Remove(ctx, "never-set"))
	})
}
