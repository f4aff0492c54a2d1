package repository

import (
	"context"
	"database/sql"

	"github.com/comment-dashboard-api/internal/database"
	"github.com/comment-dashboard-api/internal/models"
)

// pageViewRepo is the concrete implementation of PageViewRepository
type pageViewRepo struct {
	db *database.DB
}

// NewPageViewRepo creates a new page view repository
func NewPageViewRepo(db *database.DB) PageViewRepository {
	return &pageViewRepo{db: db}
}

// List retrieves every view counter, most viewed first
func (r *pageViewRepo) List(ctx context.Context) ([]*models.PageView, error) {
	query := `SELECT id, post_slug, view_count, created_at, updated_at FROM page_views ORDER BY view_count DESC, id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]*models.PageView, 0)
	for rows.Next() {
		var v models.PageView
		var updatedAt sql.NullTime
		if err := rows.Scan(&v.ID, &v.PostSlug, &v.ViewCount, &v.CreatedAt, &updatedAt); err != nil {
			return nil, err
		}
		if updatedAt.Valid {
			v.UpdatedAt = updatedAt.Time
		}
		views = append(views, &v)
	}

	return views, rows.Err()
}

// Count returns the number of view counter rows
func (r *pageViewRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM page_views").Scan(&count)
	return count, err
}
