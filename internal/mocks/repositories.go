package mocks

import (
	"context"
	"sort"
	"time"

	"github.com/comment-dashboard-api/internal/filter"
	"github.com/comment-dashboard-api/internal/models"
	"github.com/comment-dashboard-api/internal/repository"
)

// MockCommentRepository is an in-memory implementation of CommentRepository
type MockCommentRepository struct {
	Comments    map[int64]*models.Comment
	ListError   error
	UpdateError error
	DeleteError error
	ListCalls   []filter.Options
}

// Verify interface compliance
var _ repository.CommentRepository = (*MockCommentRepository)(nil)

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{
		Comments: make(map[int64]*models.Comment),
	}
}

// Add stores copies of the given comments
func (m *MockCommentRepository) Add(comments ...*models.Comment) {
	for _, c := range comments {
		cp := *c
		m.Comments[c.ID] = &cp
	}
}

// all returns copies ordered by id so filter.Apply sees a stable input
func (m *MockCommentRepository) all() []*models.Comment {
	out := make([]*models.Comment, 0, len(m.Comments))
	for _, c := range m.Comments {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *MockCommentRepository) List(ctx context.Context, opts filter.Options) ([]*models.Comment, error) {
	m.ListCalls = append(m.ListCalls, opts)
	if m.ListError != nil {
		return nil, m.ListError
	}
	opts.Sort = ""
	return filter.Apply(m.all(), opts), nil
}

func (m *MockCommentRepository) UpdateStatus(ctx context.Context, id int64, status models.CommentStatus, at time.Time) (*models.Comment, error) {
	if m.UpdateError != nil {
		return nil, m.UpdateError
	}
	c, ok := m.Comments[id]
	if !ok {
		return nil, nil
	}
	c.Status = status
	c.UpdatedAt = at
	cp := *c
	return &cp, nil
}

func (m *MockCommentRepository) UpdateStatusBatch(ctx context.Context, ids []int64, status models.CommentStatus, at time.Time) (int64, error) {
	if m.UpdateError != nil {
		return 0, m.UpdateError
	}
	var n int64
	for _, id := range ids {
		if c, ok := m.Comments[id]; ok {
			c.Status = status
			c.UpdatedAt = at
			n++
		}
	}
	return n, nil
}

func (m *MockCommentRepository) Delete(ctx context.Context, id int64) (bool, error) {
	if m.DeleteError != nil {
		return false, m.DeleteError
	}
	_, ok := m.Comments[id]
	delete(m.Comments, id)
	return ok, nil
}

func (m *MockCommentRepository) DeleteBatch(ctx context.Context, ids []int64) (int64, error) {
	if m.DeleteError != nil {
		return 0, m.DeleteError
	}
	var n int64
	for _, id := range ids {
		if _, ok := m.Comments[id]; ok {
			delete(m.Comments, id)
			n++
		}
	}
	return n, nil
}

func (m *MockCommentRepository) Count(ctx context.Context) (int, error) {
	return len(m.Comments), nil
}

func (m *MockCommentRepository) StreamAll(ctx context.Context, callback func(*models.Comment) error) error {
	if m.ListError != nil {
		return m.ListError
	}
	for _, c := range filter.Apply(m.all(), filter.Options{}) {
		if err := callback(c); err != nil {
			return err
		}
	}
	return nil
}

// MockPageViewRepository is an in-memory implementation of PageViewRepository
type MockPageViewRepository struct {
	Views     []*models.PageView
	ListError error
}

// Verify interface compliance
var _ repository.PageViewRepository = (*MockPageViewRepository)(nil)

func NewMockPageViewRepository() *MockPageViewRepository {
	return &MockPageViewRepository{}
}

func (m *MockPageViewRepository) List(ctx context.Context) ([]*models.PageView, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	out := make([]*models.PageView, len(m.Views))
	copy(out, m.Views)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ViewCount > out[j].ViewCount })
	return out, nil
}

func (m *MockPageViewRepository) Count(ctx context.Context) (int, error) {
	return len(m.Views), nil
}
