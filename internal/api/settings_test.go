package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnergyUnitEndpoints(t *testing.T) {
	router, _ := setupTestRouter(t)

	t.Run("should default to kcal", func(t *testing.T) {
		w := performJSON(router, "GET", "/api/v1/settings/energy-unit", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "kcal", decodeBody(t, w)["unit"])
	})

	t.Run("should persist kJ", func(t *testing.T) {
		w := performJSON(router, "PUT", "/api/v1/settings/energy-unit", map[string]string{"unit": "kJ"})
		require.Equal(t, http.StatusOK, w.Code)

		w = performJSON(router, "GET", "/api/v1/settings/energy-unit", nil)
		assert.Equal(t, "kJ", decodeBody(t, w)["unit"])
	})

	t.Run("should reject unsupported units", func(t *testing.T) {
		w := performJSON(router, "PUT", "/api/v1/settings/energy-unit", map[string]string{"unit": "J"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("should reject a missing unit", func(t *testing.T) {
		w := performJSON(router, "PUT", "/api/v1/settings/energy-unit", map[string]string{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAPIKeyEndpoints(t *testing.T) {
	router, mem := setupTestRouter(t)

	t.Run("should store the key", func(t *testing.T) {
		w := performJSON(router, "PUT", "/api/v1/settings/api-key", map[string]string{"key": "test-key"})
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("should reject an empty body", func(t *testing.T) {
		w := performJSON(router, "PUT", "/api/v1/settings/api-key", map[string]string{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("should reset the key", func(t *testing.T) {
		w := performJSON(router, "DELETE", "/api/v1/settings/api-key", nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		_, err := mem.Get(context.Background(), "gemini_api_key")
		assert.Error(t, err)
	})
}
