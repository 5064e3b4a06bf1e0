package store

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carblens/backend/config"
)

func TestRedisStore(t *testing.T) {
	// Skip this test if no Redis is available
	if os.Getenv("REDIS_HOST") == "" {
		t.Skip("Skipping Redis-dependent test - REDIS_HOST not set")
	}

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	s, err := NewRedisStore(cfg)
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	const key = "carblens_test_key"

	t.Run("should round-trip a value", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, key, "hello"))

		val, err := s.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "hello", val)

		// Clean up
		require.NoError(t, s.Remove(ctx, key))
	})

	t.Run("should return ErrNotFound after removal", func(t *testing.T) {
		_, err := s.Get(ctx, key)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
