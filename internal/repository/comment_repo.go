package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/comment-dashboard-api/internal/database"
	"github.com/comment-dashboard-api/internal/filter"
	"github.com/comment-dashboard-api/internal/models"
	"github.com/lib/pq"
)

const commentColumns = `id, post_slug, content, author_name, author_email, parent_id, status,
	ip_address, user_agent, created_at, updated_at`

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db *database.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *database.DB) CommentRepository {
	return &commentRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanComment(row rowScanner) (*models.Comment, error) {
	var c models.Comment
	var parentID sql.NullInt64
	var ip, ua sql.NullString

	err := row.Scan(
		&c.ID, &c.PostSlug, &c.Content, &c.AuthorName, &c.AuthorEmail, &parentID,
		&c.Status, &ip, &ua, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if parentID.Valid {
		c.ParentID = &parentID.Int64
	}
	if ip.Valid {
		c.IPAddress = &ip.String
	}
	if ua.Valid {
		c.UserAgent = &ua.String
	}
	return &c, nil
}

// buildListQuery renders the filter as SQL. Search is a case-insensitive
// substring match OR-combined across author, email, content and slug.
func buildListQuery(opts filter.Options) (string, []interface{}) {
	var (
		where []string
		args  []interface{}
	)

	if opts.HasStatus() {
		args = append(args, opts.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}

	if term := opts.SearchTerm(); term != "" {
		args = append(args, "%"+escapeLike(term)+"%")
		n := len(args)
		where = append(where, fmt.Sprintf(
			"(author_name ILIKE $%d OR author_email ILIKE $%d OR content ILIKE $%d OR post_slug ILIKE $%d)",
			n, n, n, n,
		))
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(commentColumns)
	b.WriteString(" FROM comments")
	if len(where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(where, " AND "))
	}
	// The limit keeps the newest rows; display order is applied by the caller
	b.WriteString(" ORDER BY created_at DESC, id DESC")
	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		b.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	}

	return b.String(), args
}

// escapeLike makes LIKE wildcards in user input match literally
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// List retrieves comments matching the filter
func (r *commentRepo) List(ctx context.Context, opts filter.Options) ([]*models.Comment, error) {
	query, args := buildListQuery(opts)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]*models.Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}

	return comments, rows.Err()
}

// UpdateStatus sets the status of one comment and refreshes updated_at
func (r *commentRepo) UpdateStatus(ctx context.Context, id int64, status models.CommentStatus, at time.Time) (*models.Comment, error) {
	query := `UPDATE comments SET status = $1, updated_at = $2 WHERE id = $3 RETURNING ` + commentColumns

	c, err := scanComment(r.db.QueryRowContext(ctx, query, status, at, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateStatusBatch sets the status of every listed comment in one statement
func (r *commentRepo) UpdateStatusBatch(ctx context.Context, ids []int64, status models.CommentStatus, at time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE comments SET status = $1, updated_at = $2 WHERE id = ANY($3)`,
		status, at, pq.Array(ids),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Delete permanently removes one comment
func (r *commentRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// DeleteBatch permanently removes every listed comment
func (r *commentRepo) DeleteBatch(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Count returns the total number of comments
func (r *commentRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM comments").Scan(&count)
	return count, err
}

// StreamAll streams all comments, newest first, for export
func (r *commentRepo) StreamAll(ctx context.Context, callback func(*models.Comment) error) error {
	query := `SELECT ` + commentColumns + ` FROM comments ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return err
		}
		if err := callback(c); err != nil {
			return err
		}
	}

	return rows.Err()
}
