package service

import (
	"context"
	"net/http"
	"time"

	"github.com/comment-dashboard-api/internal/analytics"
	"github.com/comment-dashboard-api/internal/config"
	"github.com/comment-dashboard-api/internal/filter"
	"github.com/comment-dashboard-api/internal/models"
	"github.com/comment-dashboard-api/internal/repository"
	"github.com/comment-dashboard-api/internal/validation"
	"github.com/rs/zerolog"
)

// CommentService defines listing and moderation operations
type CommentService interface {
	List(ctx context.Context, opts filter.Options) ([]*models.Comment, error)
	SetStatus(ctx context.Context, id int64, status models.CommentStatus) (*models.Comment, error)
	Delete(ctx context.Context, id int64) error
	// Bulk returns the number of ids submitted, not the number of rows changed
	Bulk(ctx context.Context, req *models.BulkRequest) (int, error)
}

// AnalyticsService defines the dashboard reports
type AnalyticsService interface {
	Stats(ctx context.Context) (*models.CommentStats, error)
	Views(ctx context.Context) (*models.ViewStats, error)
	Analytics(ctx context.Context) (*models.AnalyticsReport, error)
	Bundle(ctx context.Context) (*models.AnalyticsExport, error)
	GetCount(ctx context.Context, resource string) (int, error)
}

// ExportService defines the downloadable exports
type ExportService interface {
	StreamComments(ctx context.Context, w http.ResponseWriter, format string) error
	StreamEngagement(ctx context.Context, w http.ResponseWriter, format string) error
	WriteAnalytics(ctx context.Context, w http.ResponseWriter) error
}

// Services holds all service interfaces
type Services struct {
	Comment   CommentService
	Analytics AnalyticsService
	Export    ExportService
}

// Clock returns the current time
type Clock func() time.Time

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *Services {
	return NewServicesWithClock(repos, cfg, log, time.Now)
}

// NewServicesWithClock creates all services reading the time from now
func NewServicesWithClock(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger, now Clock) *Services {
	loc, err := cfg.Analytics.Location()
	if err != nil {
		log.Warn().Err(err).Msg("Falling back to UTC for analytics bucketing")
		loc = time.UTC
	}

	engine := analytics.New(loc, log)
	analyticsSvc := newAnalyticsService(repos, engine, now, log)

	return &Services{
		Comment:   newCommentService(repos.Comment, validation.NewValidator(), now, log),
		Analytics: analyticsSvc,
		Export:    newExportService(repos, analyticsSvc, now, log),
	}
}
