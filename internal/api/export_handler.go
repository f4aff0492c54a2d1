package api

import (
	"net/http"

	"github.com/comment-dashboard-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ExportHandler handles export endpoints
type ExportHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(services *service.Services, log zerolog.Logger) *ExportHandler {
	return &ExportHandler{
		services: services,
		log:      log.With().Str("handler", "export").Logger(),
	}
}

// ExportComments handles GET /api/export/comments?format=csv|json|ndjson
// Streams the export directly to the response
func (h *ExportHandler) ExportComments(c *gin.Context) {
	format := c.DefaultQuery("format", service.FormatCSV)
	if format != service.FormatCSV && format != service.FormatJSON && format != service.FormatNDJSON {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be one of: csv, json, ndjson"})
		return
	}

	if err := h.services.Export.StreamComments(c.Request.Context(), c.Writer, format); err != nil {
		h.exportFailed(c, err, "comments")
	}
}

// ExportEngagement handles GET /api/export/engagement?format=csv|json
func (h *ExportHandler) ExportEngagement(c *gin.Context) {
	format := c.DefaultQuery("format", service.FormatCSV)
	if format != service.FormatCSV && format != service.FormatJSON {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be one of: csv, json"})
		return
	}

	if err := h.services.Export.StreamEngagement(c.Request.Context(), c.Writer, format); err != nil {
		h.exportFailed(c, err, "engagement")
	}
}

// ExportAnalytics handles GET /api/export/analytics
func (h *ExportHandler) ExportAnalytics(c *gin.Context) {
	if err := h.services.Export.WriteAnalytics(c.Request.Context(), c.Writer); err != nil {
		h.exportFailed(c, err, "analytics")
	}
}

func (h *ExportHandler) exportFailed(c *gin.Context, err error, resource string) {
	h.log.Error().Err(err).Str("resource", resource).Msg("Export failed")
	// Can't return error JSON after streaming has started
	if !c.Writer.Written() {
		c.Writer.Header().Del("Content-Disposition")
		c.Writer.Header().Del("Content-Type")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export " + resource})
	}
}
