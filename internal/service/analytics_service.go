package service

import (
	"context"
	"fmt"
	"time"

	"github.com/comment-dashboard-api/internal/analytics"
	"github.com/comment-dashboard-api/internal/filter"
	"github.com/comment-dashboard-api/internal/models"
	"github.com/comment-dashboard-api/internal/repository"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// analyticsService loads full collections per request and hands them to the
// aggregation engine. Nothing is cached between requests.
type analyticsService struct {
	repos  *repository.Repositories
	engine *analytics.Engine
	now    Clock
	log    zerolog.Logger
}

// newAnalyticsService creates a new AnalyticsService
func newAnalyticsService(repos *repository.Repositories, engine *analytics.Engine, now Clock, log zerolog.Logger) *analyticsService {
	return &analyticsService{
		repos:  repos,
		engine: engine,
		now:    now,
		log:    log.With().Str("component", "analytics").Logger(),
	}
}

func (s *analyticsService) loadComments(ctx context.Context) ([]*models.Comment, error) {
	comments, err := s.repos.Comment.List(ctx, filter.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to load comments: %w", err)
	}
	return comments, nil
}

func (s *analyticsService) loadViews(ctx context.Context) ([]*models.PageView, error) {
	views, err := s.repos.PageView.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load page views: %w", err)
	}
	return views, nil
}

// loadAll fetches comments and page views concurrently
func (s *analyticsService) loadAll(ctx context.Context) ([]*models.Comment, []*models.PageView, error) {
	var (
		comments []*models.Comment
		views    []*models.PageView
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		comments, err = s.loadComments(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		views, err = s.loadViews(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return comments, views, nil
}

// Stats returns moderation totals, time windows, top posts and the 30-day chart
func (s *analyticsService) Stats(ctx context.Context) (*models.CommentStats, error) {
	comments, err := s.loadComments(ctx)
	if err != nil {
		return nil, err
	}
	return s.engine.CommentStats(comments, s.now()), nil
}

// Views returns page-view totals and windows
func (s *analyticsService) Views(ctx context.Context) (*models.ViewStats, error) {
	views, err := s.loadViews(ctx)
	if err != nil {
		return nil, err
	}
	return s.engine.ViewStats(views, s.now()), nil
}

// Analytics returns engagement, rankings, suspicious IPs and activity histograms
func (s *analyticsService) Analytics(ctx context.Context) (*models.AnalyticsReport, error) {
	comments, views, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	s.log.Debug().
		Int("comments", len(comments)).
		Int("page_views", len(views)).
		Msg("Building analytics report")

	return s.engine.Report(comments, views), nil
}

// Bundle returns every report computed from one consistent load
func (s *analyticsService) Bundle(ctx context.Context) (*models.AnalyticsExport, error) {
	comments, views, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	return &models.AnalyticsExport{
		Timestamp: now.UTC().Format(time.RFC3339),
		Stats:     s.engine.CommentStats(comments, now),
		Views:     s.engine.ViewStats(views, now),
		Analytics: s.engine.Report(comments, views),
	}, nil
}

// GetCount returns the row count of a collection
func (s *analyticsService) GetCount(ctx context.Context, resource string) (int, error) {
	switch resource {
	case "comments":
		return s.repos.Comment.Count(ctx)
	case "page_views":
		return s.repos.PageView.Count(ctx)
	default:
		return 0, fmt.Errorf("unknown resource: %s", resource)
	}
}
