package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carblens/backend/internal/service"
	"github.com/carblens/backend/internal/types"
)

// SettingsHandler handles preference and credential requests.
type SettingsHandler struct {
	settings *service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler instance.
func NewSettingsHandler(settings *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// RegisterRoutes registers the settings routes.
func (h *SettingsHandler) RegisterRoutes(router *gin.RouterGroup) {
	settings := router.Group("/settings")
	{
		settings.GET("/energy-unit", h.GetEnergyUnit)
		settings.PUT("/energy-unit", h.SaveEnergyUnit)
		settings.PUT("/api-key", h.SaveAPIKey)
		settings.DELETE("/api-key", h.ResetAPIKey)
	}
}

// GetEnergyUnit returns the preferred display unit.
func (h *SettingsHandler) GetEnergyUnit(c *gin.Context) {
	unit := h.settings.GetEnergyUnit(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"unit": unit})
}

// SaveEnergyUnit stores the preferred display unit.
func (h *SettingsHandler) SaveEnergyUnit(c *gin.Context) {
	var req struct {
		Unit types.EnergyUnit `json:"unit" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.settings.SaveEnergyUnit(c.Request.Context(), req.Unit); err != nil {
		if !req.Unit.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save energy unit: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"unit": req.Unit})
}

// SaveAPIKey stores the model credential.
func (h *SettingsHandler) SaveAPIKey(c *gin.Context) {
	var req struct {
		Key string `json:"key" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.settings.SaveAPIKey(c.Request.Context(), req.Key); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save API key: " + err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// ResetAPIKey removes the stored credential.
func (h *SettingsHandler) ResetAPIKey(c *gin.Context) {
	if err := h.settings.ResetAPIKey(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset API key: " + err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
