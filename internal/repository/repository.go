package repository

import (
	"context"
	"time"

	"github.com/comment-dashboard-api/internal/database"
	"github.com/comment-dashboard-api/internal/filter"
	"github.com/comment-dashboard-api/internal/models"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	// List returns comments matching opts, newest first. opts.Sort is not applied.
	List(ctx context.Context, opts filter.Options) ([]*models.Comment, error)
	// UpdateStatus returns the updated comment, or nil when id does not exist
	UpdateStatus(ctx context.Context, id int64, status models.CommentStatus, at time.Time) (*models.Comment, error)
	// UpdateStatusBatch returns the number of rows changed
	UpdateStatusBatch(ctx context.Context, ids []int64, status models.CommentStatus, at time.Time) (int64, error)
	// Delete reports whether a row was removed
	Delete(ctx context.Context, id int64) (bool, error)
	// DeleteBatch returns the number of rows removed
	DeleteBatch(ctx context.Context, ids []int64) (int64, error)
	Count(ctx context.Context) (int, error)
	StreamAll(ctx context.Context, callback func(*models.Comment) error) error
}

// PageViewRepository defines the interface for page view data operations
type PageViewRepository interface {
	// List returns every view counter ordered by view_count descending
	List(ctx context.Context) ([]*models.PageView, error)
	Count(ctx context.Context) (int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Comment  CommentRepository
	PageView PageViewRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Comment:  NewCommentRepo(db),
		PageView: NewPageViewRepo(db),
	}
}
