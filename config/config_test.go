package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	original := map[string]string{
		"SERVER_PORT":   os.Getenv("SERVER_PORT"),
		"STORE_BACKEND": os.Getenv("STORE_BACKEND"),
		"REDIS_DB":      os.Getenv("REDIS_DB"),
	}
	defer func() {
		for k, v := range original {
			os.Setenv(k, v)
		}
	}()

	t.Run("should apply development defaults", func(t *testing.T) {
		os.Unsetenv("SERVER_PORT")
		os.Unsetenv("STORE_BACKEND")
		os.Unsetenv("REDIS_DB")

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.ServerPort)
		assert.Equal(t, StoreSQLite, cfg.StoreBackend)
		assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	})

	t.Run("should read overrides from the environment", func(t *testing.T) {
		os.Setenv("SERVER_PORT", "9090")
		os.Setenv("STORE_BACKEND", StoreRedis)
		os.Setenv("REDIS_DB", "3")

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "9090", cfg.ServerPort)
		assert.Equal(t, StoreRedis, cfg.StoreBackend)
		assert.Equal(t, 3, cfg.RedisDB)
	})

	t.Run("should reject an unknown store backend", func(t *testing.T) {
		os.Setenv("STORE_BACKEND", "postgres")

		_, err := LoadConfig()

		assert.Error(t, err)
		os.Unsetenv("STORE_BACKEND")
	})

	t.Run("should reject a non-numeric REDIS_DB", func(t *testing.T) {
		os.Unsetenv("STORE_BACKEND")
		os.Setenv("REDIS_DB", "three")

		_, err := LoadConfig()

		assert.Error(t, err)
		os.Unsetenv("REDIS_DB")
	})
}
