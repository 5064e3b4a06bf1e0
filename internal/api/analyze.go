package api

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carblens/backend/internal/service"
)

// AnalysisHandler handles meal-photo analysis requests.
type AnalysisHandler struct {
	estimator *service.EstimatorService
	settings  *service.SettingsService
}

// NewAnalysisHandler creates a new AnalysisHandler instance.
func NewAnalysisHandler(estimator *service.EstimatorService, settings *service.SettingsService) *AnalysisHandler {
	return &AnalysisHandler{
		estimator: estimator,
		settings:  settings,
	}
}

// RegisterRoutes registers the analysis routes.
func (h *AnalysisHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/analyze", h.Analyze)
}

// Analyze accepts a multipart form with one or more images under "images"
// plus an optional "description" field, runs one concurrent model call per
// image, and returns the combined food items. The credential comes from the
// X-API-Key header, falling back to the stored key.
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form: " + err.Error()})
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one image is required"})
		return
	}

	apiKey := c.GetHeader("X-API-Key")
	if apiKey == "" {
		apiKey = h.settings.GetAPIKey(c.Request.Context())
	}
	if apiKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no API key provided or stored"})
		return
	}

	description := c.PostForm("description")

	images := make([]service.Image, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open uploaded image: " + err.Error()})
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read uploaded image: " + err.Error()})
			return
		}
		images = append(images, service.Image{Filename: fh.Filename, Data: data})
	}

	items, err := h.estimator.AnalyzeImages(c.Request.Context(), images, description, apiKey)
	if err != nil {
		log.Printf("Analysis failed: %v", err)
		status := analysisStatus(err)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// analysisStatus maps estimation errors onto HTTP statuses: a rejected key
// asks the user to re-enter the credential, everything upstream-shaped is a
// bad gateway.
func analysisStatus(err error) int {
	var credErr *service.CredentialError
	if errors.As(err, &credErr) {
		return http.StatusUnauthorized
	}
	return http.StatusBadGateway
}
