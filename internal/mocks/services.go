package mocks

import (
	"context"
	"fmt"
	"net/http"

	"github.com/comment-dashboard-api/internal/filter"
	"github.com/comment-dashboard-api/internal/models"
	"github.com/comment-dashboard-api/internal/service"
)

// MockCommentService is a mock implementation of CommentService
type MockCommentService struct {
	ListFunc      func(ctx context.Context, opts filter.Options) ([]*models.Comment, error)
	SetStatusFunc func(ctx context.Context, id int64, status models.CommentStatus) (*models.Comment, error)
	DeleteFunc    func(ctx context.Context, id int64) error
	BulkFunc      func(ctx context.Context, req *models.BulkRequest) (int, error)

	ListCalls    []filter.Options
	DeletedIDs   []int64
	BulkRequests []*models.BulkRequest
}

// Verify interface compliance
var _ service.CommentService = (*MockCommentService)(nil)

func NewMockCommentService() *MockCommentService {
	return &MockCommentService{}
}

func (m *MockCommentService) List(ctx context.Context, opts filter.Options) ([]*models.Comment, error) {
	m.ListCalls = append(m.ListCalls, opts)
	if m.ListFunc != nil {
		return m.ListFunc(ctx, opts)
	}
	return []*models.Comment{}, nil
}

func (m *MockCommentService) SetStatus(ctx context.Context, id int64, status models.CommentStatus) (*models.Comment, error) {
	if m.SetStatusFunc != nil {
		return m.SetStatusFunc(ctx, id, status)
	}
	return &models.Comment{ID: id, Status: status}, nil
}

func (m *MockCommentService) Delete(ctx context.Context, id int64) error {
	m.DeletedIDs = append(m.DeletedIDs, id)
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockCommentService) Bulk(ctx context.Context, req *models.BulkRequest) (int, error) {
	m.BulkRequests = append(m.BulkRequests, req)
	if m.BulkFunc != nil {
		return m.BulkFunc(ctx, req)
	}
	return len(req.CommentIDs), nil
}

// MockAnalyticsService is a mock implementation of AnalyticsService
type MockAnalyticsService struct {
	StatsResult     *models.CommentStats
	ViewsResult     *models.ViewStats
	AnalyticsResult *models.AnalyticsReport
	Err             error
	Counts          map[string]int
}

// Verify interface compliance
var _ service.AnalyticsService = (*MockAnalyticsService)(nil)

func NewMockAnalyticsService() *MockAnalyticsService {
	return &MockAnalyticsService{
		StatsResult:     &models.CommentStats{},
		ViewsResult:     &models.ViewStats{},
		AnalyticsResult: &models.AnalyticsReport{},
		Counts:          make(map[string]int),
	}
}

func (m *MockAnalyticsService) Stats(ctx context.Context) (*models.CommentStats, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.StatsResult, nil
}

func (m *MockAnalyticsService) Views(ctx context.Context) (*models.ViewStats, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.ViewsResult, nil
}

func (m *MockAnalyticsService) Analytics(ctx context.Context) (*models.AnalyticsReport, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.AnalyticsResult, nil
}

func (m *MockAnalyticsService) Bundle(ctx context.Context) (*models.AnalyticsExport, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return &models.AnalyticsExport{
		Stats:     m.StatsResult,
		Views:     m.ViewsResult,
		Analytics: m.AnalyticsResult,
	}, nil
}

func (m *MockAnalyticsService) GetCount(ctx context.Context, resource string) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return m.Counts[resource], nil
}

// MockExportService is a mock implementation of ExportService
type MockExportService struct {
	StreamCommentsFunc   func(ctx context.Context, w http.ResponseWriter, format string) error
	StreamEngagementFunc func(ctx context.Context, w http.ResponseWriter, format string) error
	WriteAnalyticsFunc   func(ctx context.Context, w http.ResponseWriter) error
	Formats              []string
}

// Verify interface compliance
var _ service.ExportService = (*MockExportService)(nil)

func NewMockExportService() *MockExportService {
	return &MockExportService{}
}

func (m *MockExportService) StreamComments(ctx context.Context, w http.ResponseWriter, format string) error {
	m.Formats = append(m.Formats, format)
	if m.StreamCommentsFunc != nil {
		return m.StreamCommentsFunc(ctx, w, format)
	}
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintf(w, "comments:%s", format)
	return nil
}

func (m *MockExportService) StreamEngagement(ctx context.Context, w http.ResponseWriter, format string) error {
	m.Formats = append(m.Formats, format)
	if m.StreamEngagementFunc != nil {
		return m.StreamEngagementFunc(ctx, w, format)
	}
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintf(w, "engagement:%s", format)
	return nil
}

func (m *MockExportService) WriteAnalytics(ctx context.Context, w http.ResponseWriter) error {
	if m.WriteAnalyticsFunc != nil {
		return m.WriteAnalyticsFunc(ctx, w)
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte("{}"))
	return nil
}
