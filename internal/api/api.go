package api

import (
	"github.com/gin-gonic/gin"

	"github.com/carblens/backend/config"
	"github.com/carblens/backend/internal/service"
	"github.com/carblens/backend/internal/store"
)

// SetupAPI wires the services onto the router under /api/v1.
func SetupAPI(router *gin.Engine, cfg *config.Config, kv store.Store) {
	v1 := router.Group("/api/v1")
	{
		// Initialize services
		estimatorService := service.NewEstimatorService(cfg.GeminiModel)
		mealLogService := service.NewMealLogService(kv)
		settingsService := service.NewSettingsService(kv)

		// Initialize handlers
		analysisHandler := NewAnalysisHandler(estimatorService, settingsService)
		mealHandler := NewMealHandler(mealLogService, settingsService)
		settingsHandler := NewSettingsHandler(settingsService)

		// Register routes
		analysisHandler.RegisterRoutes(v1)
		mealHandler.RegisterRoutes(v1)
		settingsHandler.RegisterRoutes(v1)
	}
}
