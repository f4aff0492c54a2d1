package api

import (
	"context"
	"net/http"
	"time"

	"github.com/comment-dashboard-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const requestIDHeader = "X-Request-ID"

// HealthChecker reports whether the backing store is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// NewRouter creates and configures the Gin router. store may be nil.
func NewRouter(services *service.Services, store HealthChecker, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	// Handlers
	commentHandler := NewCommentHandler(services, log)
	analyticsHandler := NewAnalyticsHandler(services, log)
	exportHandler := NewExportHandler(services, log)

	// Health check
	router.GET("/health", healthCheck(store))
	router.GET("/metrics", metricsHandler(services))

	api := router.Group("/api")
	{
		api.GET("/stats", analyticsHandler.GetStats)
		api.GET("/views", analyticsHandler.GetViews)
		api.GET("/analytics", analyticsHandler.GetAnalytics)

		comments := api.Group("/comments")
		{
			comments.GET("", commentHandler.ListComments)
			comments.POST("/bulk", commentHandler.BulkAction)
			comments.PATCH("/:id", commentHandler.UpdateComment)
			comments.DELETE("/:id", commentHandler.DeleteComment)
		}

		exports := api.Group("/export")
		{
			exports.GET("/comments", exportHandler.ExportComments)
			exports.GET("/engagement", exportHandler.ExportEngagement)
			exports.GET("/analytics", exportHandler.ExportAnalytics)
		}
	}

	return router
}

// healthCheck returns the health status
func healthCheck(store HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, code := "healthy", http.StatusOK
		if store != nil {
			if err := store.HealthCheck(c.Request.Context()); err != nil {
				status, code = "unhealthy", http.StatusServiceUnavailable
			}
		}

		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   "comment-dashboard-api",
		})
	}
}

// metricsHandler returns collection sizes
func metricsHandler(services *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		commentsCount, _ := services.Analytics.GetCount(ctx, "comments")
		viewsCount, _ := services.Analytics.GetCount(ctx, "page_views")

		c.JSON(http.StatusOK, gin.H{
			"database": gin.H{
				"comments":   commentsCount,
				"page_views": viewsCount,
			},
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Interface("error", err).
					Str("request_id", c.GetString("request_id")).
					Msg("Panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
			}
		}()
		c.Next()
	}
}

// requestIDMiddleware propagates or assigns X-Request-ID
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Str("request_id", c.GetString("request_id")).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
