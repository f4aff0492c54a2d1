package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/comment-dashboard-api/internal/api"
	"github.com/comment-dashboard-api/internal/config"
	"github.com/comment-dashboard-api/internal/filter"
	"github.com/comment-dashboard-api/internal/mocks"
	"github.com/comment-dashboard-api/internal/models"
	"github.com/comment-dashboard-api/internal/repository"
	"github.com/comment-dashboard-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func setupTestRouter() (*gin.Engine, *mocks.MockCommentService, *mocks.MockAnalyticsService, *mocks.MockExportService) {
	gin.SetMode(gin.TestMode)

	mockComment := mocks.NewMockCommentService()
	mockAnalytics := mocks.NewMockAnalyticsService()
	mockExport := mocks.NewMockExportService()

	services := &service.Services{
		Comment:   mockComment,
		Analytics: mockAnalytics,
		Export:    mockExport,
	}

	router := api.NewRouter(services, nil, zerolog.Nop())
	return router, mockComment, mockAnalytics, mockExport
}

// setupStoreRouter wires the real services over in-memory repositories
func setupStoreRouter() (*gin.Engine, *mocks.MockCommentRepository) {
	gin.SetMode(gin.TestMode)

	commentRepo := mocks.NewMockCommentRepository()
	repos := &repository.Repositories{
		Comment:  commentRepo,
		PageView: mocks.NewMockPageViewRepository(),
	}
	cfg := &config.Config{Analytics: config.AnalyticsConfig{Timezone: "UTC"}}
	services := service.NewServices(repos, cfg, zerolog.Nop())

	now := time.Now().UTC()
	commentRepo.Add(
		&models.Comment{ID: 1, PostSlug: "a", Content: "first", AuthorName: "Ann", AuthorEmail: "ann@example.com", Status: models.CommentStatusPending, CreatedAt: now.Add(-time.Hour), UpdatedAt: now.Add(-time.Hour)},
		&models.Comment{ID: 2, PostSlug: "a", Content: "second", AuthorName: "Bob", AuthorEmail: "bob@example.com", Status: models.CommentStatusApproved, CreatedAt: now, UpdatedAt: now},
	)

	return api.NewRouter(services, nil, zerolog.Nop()), commentRepo
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	router, _, _, _ := setupTestRouter()

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)

	if response["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got %v", response["status"])
	}
	if response["service"] != "comment-dashboard-api" {
		t.Errorf("Expected service name, got %v", response["service"])
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("Expected X-Request-ID header to be assigned")
	}
}

type failingStore struct{}

func (failingStore) HealthCheck(ctx context.Context) error {
	return errors.New("connection refused")
}

func TestHealthEndpoint_StoreDown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	services := &service.Services{
		Comment:   mocks.NewMockCommentService(),
		Analytics: mocks.NewMockAnalyticsService(),
		Export:    mocks.NewMockExportService(),
	}
	router := api.NewRouter(services, failingStore{}, zerolog.Nop())

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", w.Code)
	}
}

func TestRequestIDPropagated(t *testing.T) {
	router, _, _, _ := setupTestRouter()

	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("Expected request id to be echoed, got %q", got)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router, _, mockAnalytics, _ := setupTestRouter()
	mockAnalytics.Counts["comments"] = 2000
	mockAnalytics.Counts["page_views"] = 40

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)

	db := response["database"].(map[string]interface{})
	if db["comments"].(float64) != 2000 {
		t.Errorf("Expected 2000 comments, got %v", db["comments"])
	}
	if db["page_views"].(float64) != 40 {
		t.Errorf("Expected 40 page views, got %v", db["page_views"])
	}
}

func TestCORSPreflight(t *testing.T) {
	router, _, _, _ := setupTestRouter()

	req := httptest.NewRequest("OPTIONS", "/api/comments/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Methods"); got != "GET, POST, PATCH, DELETE, OPTIONS" {
		t.Errorf("Unexpected allowed methods: %s", got)
	}
}

func TestGetStats(t *testing.T) {
	router, _, mockAnalytics, _ := setupTestRouter()
	mockAnalytics.StatsResult = &models.CommentStats{
		TotalComments:    3,
		ApprovedComments: 1,
		PendingComments:  1,
		SpamComments:     1,
		TopPosts:         []models.PostCount{{PostSlug: "a", Count: 2}},
		RecentComments:   []*models.Comment{},
		ChartData:        []models.ChartPoint{{Date: "2024-03-15", Count: 1}},
	}

	w := doJSON(router, "GET", "/api/stats", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)

	if response["totalComments"].(float64) != 3 {
		t.Errorf("Expected totalComments 3, got %v", response["totalComments"])
	}
	top := response["topPosts"].([]interface{})
	if top[0].(map[string]interface{})["post_slug"] != "a" {
		t.Errorf("Expected post_slug field in topPosts, got %v", top[0])
	}
}

func TestGetStats_StoreFailure(t *testing.T) {
	router, _, mockAnalytics, _ := setupTestRouter()
	mockAnalytics.Err = errors.New("pq: password authentication failed")

	w := doJSON(router, "GET", "/api/stats", nil)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)

	if response["error"] != "Failed to fetch statistics" {
		t.Errorf("Expected generic error, got %v", response["error"])
	}
	if bytes.Contains(w.Body.Bytes(), []byte("password")) {
		t.Error("Store error detail must not reach the client")
	}
}

func TestGetViewsAndAnalytics(t *testing.T) {
	router, _, mockAnalytics, _ := setupTestRouter()
	mockAnalytics.ViewsResult = &models.ViewStats{TotalViews: 150, TopPostsByViews: []models.PostViews{{PostSlug: "a", Views: 150}}}
	mockAnalytics.AnalyticsResult = &models.AnalyticsReport{
		EngagementData: []models.PostEngagement{{PostSlug: "a", Views: 100, Comments: 2, EngagementRate: 2}},
		ActivityByHour: [24]int{3: 2},
	}

	w := doJSON(router, "GET", "/api/views", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var views map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &views)
	if views["totalViews"].(float64) != 150 {
		t.Errorf("Expected totalViews 150, got %v", views["totalViews"])
	}

	w = doJSON(router, "GET", "/api/analytics", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var report map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &report)
	if len(report["activityByHour"].([]interface{})) != 24 {
		t.Errorf("Expected 24 hour buckets, got %v", report["activityByHour"])
	}
	if len(report["activityByDay"].([]interface{})) != 7 {
		t.Errorf("Expected 7 day buckets, got %v", report["activityByDay"])
	}
	row := report["engagementData"].([]interface{})[0].(map[string]interface{})
	if row["engagement_rate"].(float64) != 2 {
		t.Errorf("Expected engagement_rate 2, got %v", row["engagement_rate"])
	}
}

func TestListComments_QueryParams(t *testing.T) {
	router, mockComment, _, _ := setupTestRouter()
	mockComment.ListFunc = func(ctx context.Context, opts filter.Options) ([]*models.Comment, error) {
		return []*models.Comment{{ID: 7, Status: models.CommentStatusSpam}}, nil
	}

	w := doJSON(router, "GET", "/api/comments?status=spam&search=viagra&limit=5&sort=oldest", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if len(mockComment.ListCalls) != 1 {
		t.Fatalf("Expected 1 list call, got %d", len(mockComment.ListCalls))
	}
	got := mockComment.ListCalls[0]
	want := filter.Options{Status: "spam", Search: "viagra", Limit: 5, Sort: filter.SortOldest}
	if got != want {
		t.Errorf("Expected options %+v, got %+v", want, got)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["count"].(float64) != 1 {
		t.Errorf("Expected count 1, got %v", response["count"])
	}
}

func TestListComments_InvalidLimit(t *testing.T) {
	router, mockComment, _, _ := setupTestRouter()

	w := doJSON(router, "GET", "/api/comments?limit=ten", nil)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
	if len(mockComment.ListCalls) != 0 {
		t.Error("Service should not be called for an invalid limit")
	}
}

func TestListComments_Store(t *testing.T) {
	router, _ := setupStoreRouter()

	w := doJSON(router, "GET", "/api/comments?status=all&search=BOB", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var response struct {
		Comments []models.Comment `json:"comments"`
		Count    int              `json:"count"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)

	if response.Count != 1 || response.Comments[0].ID != 2 {
		t.Errorf("Expected only comment 2, got %+v", response.Comments)
	}

	w = doJSON(router, "GET", "/api/comments?status=archived", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for unknown status filter, got %d", w.Code)
	}
}

func TestListComments_OldestWithLimit(t *testing.T) {
	router, _ := setupStoreRouter()

	tests := []struct {
		query string
		want  []int64
	}{
		{"?limit=1&sort=oldest", []int64{2}},
		{"?limit=2&sort=oldest", []int64{1, 2}},
		{"?limit=1", []int64{2}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := doJSON(router, "GET", "/api/comments"+tt.query, nil)
			if w.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d", w.Code)
			}

			var response struct {
				Comments []models.Comment `json:"comments"`
			}
			json.Unmarshal(w.Body.Bytes(), &response)

			var got []int64
			for _, c := range response.Comments {
				got = append(got, c.ID)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Expected ids %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Expected ids %v, got %v", tt.want, got)
					break
				}
			}
		})
	}
}

func TestUpdateComment(t *testing.T) {
	router, repo := setupStoreRouter()

	w := doJSON(router, "PATCH", "/api/comments/1", map[string]string{"status": "approved"})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var response struct {
		Success bool           `json:"success"`
		Comment models.Comment `json:"comment"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)

	if !response.Success {
		t.Error("Expected success true")
	}
	if response.Comment.Status != models.CommentStatusApproved {
		t.Errorf("Expected approved, got %s", response.Comment.Status)
	}
	if repo.Comments[1].Status != models.CommentStatusApproved {
		t.Errorf("Expected stored comment approved, got %s", repo.Comments[1].Status)
	}
}

func TestUpdateComment_InvalidStatus(t *testing.T) {
	router, repo := setupStoreRouter()

	w := doJSON(router, "PATCH", "/api/comments/1", map[string]string{"status": "archived"})

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)

	details, ok := response["details"].([]interface{})
	if !ok || len(details) == 0 {
		t.Fatalf("Expected validation details, got %v", response)
	}
	if details[0].(map[string]interface{})["field"] != "status" {
		t.Errorf("Expected status field error, got %v", details[0])
	}
	if repo.Comments[1].Status != models.CommentStatusPending {
		t.Errorf("Comment must be unchanged, got %s", repo.Comments[1].Status)
	}
}

func TestUpdateComment_BadRequests(t *testing.T) {
	router, _ := setupStoreRouter()

	tests := []struct {
		name string
		path string
		body interface{}
		want int
	}{
		{"non-numeric id", "/api/comments/abc", map[string]string{"status": "spam"}, http.StatusBadRequest},
		{"missing status", "/api/comments/1", map[string]string{}, http.StatusBadRequest},
		{"no body", "/api/comments/1", nil, http.StatusBadRequest},
		{"unknown id", "/api/comments/999", map[string]string{"status": "spam"}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(router, "PATCH", tt.path, tt.body)
			if w.Code != tt.want {
				t.Errorf("Expected status %d, got %d", tt.want, w.Code)
			}
		})
	}
}

func TestDeleteComment(t *testing.T) {
	router, repo := setupStoreRouter()

	w := doJSON(router, "DELETE", "/api/comments/1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if _, ok := repo.Comments[1]; ok {
		t.Error("Comment 1 should be deleted")
	}

	// Second delete of the same id is still a success
	w = doJSON(router, "DELETE", "/api/comments/1", nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200 for repeated delete, got %d", w.Code)
	}
}

func TestDeleteComment_StoreFailure(t *testing.T) {
	router, repo := setupStoreRouter()
	repo.DeleteError = errors.New("disk full")

	w := doJSON(router, "DELETE", "/api/comments/1", nil)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["error"] != "Failed to delete comment" {
		t.Errorf("Expected generic message, got %v", response["error"])
	}
}

func TestBulkAction(t *testing.T) {
	router, repo := setupStoreRouter()

	w := doJSON(router, "POST", "/api/comments/bulk", map[string]interface{}{
		"action":     "spam",
		"commentIds": []int64{1, 2, 3},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)

	if response["success"] != true {
		t.Error("Expected success true")
	}
	if response["count"].(float64) != 3 {
		t.Errorf("Expected count of submitted ids (3), got %v", response["count"])
	}
	for _, id := range []int64{1, 2} {
		if repo.Comments[id].Status != models.CommentStatusSpam {
			t.Errorf("Expected comment %d spam, got %s", id, repo.Comments[id].Status)
		}
	}
}

func TestBulkAction_Delete(t *testing.T) {
	router, repo := setupStoreRouter()

	w := doJSON(router, "POST", "/api/comments/bulk", map[string]interface{}{
		"action":     "delete",
		"commentIds": []int64{2},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if _, ok := repo.Comments[2]; ok {
		t.Error("Comment 2 should be deleted")
	}
	if _, ok := repo.Comments[1]; !ok {
		t.Error("Comment 1 should remain")
	}
}

func TestBulkAction_Invalid(t *testing.T) {
	router, _ := setupStoreRouter()

	tests := []struct {
		name string
		body interface{}
	}{
		{"empty ids", map[string]interface{}{"action": "approved", "commentIds": []int64{}}},
		{"missing ids", map[string]interface{}{"action": "approved"}},
		{"missing action", map[string]interface{}{"commentIds": []int64{1}}},
		{"unknown action", map[string]interface{}{"action": "archive", "commentIds": []int64{1}}},
		{"ids not numbers", map[string]interface{}{"action": "spam", "commentIds": []string{"x"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(router, "POST", "/api/comments/bulk", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d", w.Code)
			}
		})
	}
}

func TestExportComments(t *testing.T) {
	router, _, _, mockExport := setupTestRouter()

	w := doJSON(router, "GET", "/api/export/comments", nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if len(mockExport.Formats) != 1 || mockExport.Formats[0] != "csv" {
		t.Errorf("Expected default csv format, got %v", mockExport.Formats)
	}

	w = doJSON(router, "GET", "/api/export/comments?format=xml", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for unknown format, got %d", w.Code)
	}
}

func TestExportEngagement(t *testing.T) {
	router, _, _, mockExport := setupTestRouter()

	w := doJSON(router, "GET", "/api/export/engagement?format=json", nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "engagement:json" {
		t.Errorf("Unexpected body %q", w.Body.String())
	}

	w = doJSON(router, "GET", "/api/export/engagement?format=ndjson", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
	if len(mockExport.Formats) != 1 {
		t.Errorf("Expected a single export call, got %v", mockExport.Formats)
	}
}

func TestExportAnalytics_Failure(t *testing.T) {
	router, _, _, mockExport := setupTestRouter()
	mockExport.WriteAnalyticsFunc = func(ctx context.Context, w http.ResponseWriter) error {
		return errors.New("boom")
	}

	w := doJSON(router, "GET", "/api/export/analytics", nil)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", w.Code)
	}
}

func TestExportComments_StoreFailure(t *testing.T) {
	for _, format := range []string{"csv", "json", "ndjson"} {
		t.Run(format, func(t *testing.T) {
			router, repo := setupStoreRouter()
			repo.ListError = errors.New("connection refused")

			w := doJSON(router, "GET", "/api/export/comments?format="+format, nil)
			if w.Code != http.StatusInternalServerError {
				t.Errorf("Expected status 500, got %d", w.Code)
			}
			if got := w.Header().Get("Content-Disposition"); got != "" {
				t.Errorf("Expected no attachment on failure, got %q", got)
			}

			var response map[string]interface{}
			if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
				t.Fatalf("Expected JSON error body, got %q", w.Body.String())
			}
			if response["error"] != "Failed to export comments" {
				t.Errorf("Unexpected error body %v", response)
			}
		})
	}
}

func TestExportAnalytics_Store(t *testing.T) {
	router, _ := setupStoreRouter()

	w := doJSON(router, "GET", "/api/export/analytics", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var bundle map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &bundle); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	for _, key := range []string{"timestamp", "stats", "views", "analytics"} {
		if _, ok := bundle[key]; !ok {
			t.Errorf("Expected %q in bundle", key)
		}
	}
}
