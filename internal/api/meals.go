package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/carblens/backend/internal/nutrition"
	"github.com/carblens/backend/internal/service"
	"github.com/carblens/backend/internal/types"
)

// MealHandler handles meal-log requests.
type MealHandler struct {
	meals    *service.MealLogService
	settings *service.SettingsService
}

// NewMealHandler creates a new MealHandler instance.
func NewMealHandler(meals *service.MealLogService, settings *service.SettingsService) *MealHandler {
	return &MealHandler{
		meals:    meals,
		settings: settings,
	}
}

// RegisterRoutes registers the meal-log routes.
func (h *MealHandler) RegisterRoutes(router *gin.RouterGroup) {
	meals := router.Group("/meals")
	{
		meals.POST("", h.SaveMeal)
		meals.GET("", h.ListMeals)
		meals.GET("/summary", h.Summary)
		meals.GET("/weekly", h.Weekly)
		meals.DELETE("/:id", h.DeleteMeal)
		meals.DELETE("", h.ClearMeals)
	}
}

// SaveMeal persists the posted food items as one meal log.
func (h *MealHandler) SaveMeal(c *gin.Context) {
	var req struct {
		Items []types.FoodItem `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mealLog, err := h.meals.SaveMeal(c.Request.Context(), req.Items)
	if err != nil {
		if errors.Is(err, service.ErrNoItems) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save meal: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, mealLog)
}

// ListMeals returns the full collection, newest first.
func (h *MealHandler) ListMeals(c *gin.Context) {
	logs := h.meals.GetMealLogs(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

// DeleteMeal removes one meal log by id. Unknown ids are a no-op.
func (h *MealHandler) DeleteMeal(c *gin.Context) {
	if err := h.meals.DeleteMealLog(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete meal: " + err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// ClearMeals removes the whole collection.
func (h *MealHandler) ClearMeals(c *gin.Context) {
	if err := h.meals.ClearLogs(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear meals: " + err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// Summary returns logs grouped by calendar day with daily totals, formatted
// energy in the preferred unit, and shares of the reference intakes.
func (h *MealHandler) Summary(c *gin.Context) {
	ctx := c.Request.Context()
	logs := h.meals.GetMealLogs(ctx)
	unit := h.settings.GetEnergyUnit(ctx)

	type daySummary struct {
		Date            time.Time               `json:"date"`
		Logs            []types.MealLog         `json:"logs"`
		Totals          nutrition.Totals        `json:"totals"`
		FormattedEnergy string                  `json:"formattedEnergy"`
		IntakeShares    []nutrition.IntakeShare `json:"intakeShares"`
	}

	groups := nutrition.GroupByDay(logs, time.Local)
	days := make([]daySummary, 0, len(groups))
	for _, g := range groups {
		totals := nutrition.DailyTotals(g.Logs)
		days = append(days, daySummary{
			Date:            g.Date,
			Logs:            g.Logs,
			Totals:          totals,
			FormattedEnergy: nutrition.FormatEnergy(totals.Calories, unit),
			IntakeShares:    nutrition.ReferenceShares(totals),
		})
	}

	c.JSON(http.StatusOK, gin.H{"days": days, "energyUnit": unit})
}

// Weekly returns the trailing 7-day calorie series ending today, plus the
// chart scale denominator.
func (h *MealHandler) Weekly(c *gin.Context) {
	logs := h.meals.GetMealLogs(c.Request.Context())
	series := nutrition.WeeklySeries(logs, time.Now(), time.Local)
	c.JSON(http.StatusOK, series)
}
