package api

import (
	"net/http"

	"github.com/comment-dashboard-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AnalyticsHandler serves the dashboard reports
type AnalyticsHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(services *service.Services, log zerolog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		services: services,
		log:      log.With().Str("handler", "analytics").Logger(),
	}
}

// GetStats handles GET /api/stats
func (h *AnalyticsHandler) GetStats(c *gin.Context) {
	stats, err := h.services.Analytics.Stats(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch statistics")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetViews handles GET /api/views
func (h *AnalyticsHandler) GetViews(c *gin.Context) {
	views, err := h.services.Analytics.Views(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch views statistics")
		return
	}
	c.JSON(http.StatusOK, views)
}

// GetAnalytics handles GET /api/analytics
func (h *AnalyticsHandler) GetAnalytics(c *gin.Context) {
	report, err := h.services.Analytics.Analytics(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch analytics")
		return
	}
	c.JSON(http.StatusOK, report)
}
