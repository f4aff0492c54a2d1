// Package filter narrows and orders comment sets in memory. The same rules are
// expressed in SQL by the Postgres repository.
package filter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/comment-dashboard-api/internal/models"
)

// StatusAll disables the status filter
const StatusAll = "all"

// SortOrder orders comments by created_at
type SortOrder string

const (
	SortNewest SortOrder = "newest"
	SortOldest SortOrder = "oldest"
)

// Options describes a comment query
type Options struct {
	Status string
	Search string
	Limit  int
	Sort   SortOrder
}

// HasStatus reports whether the options restrict by status
func (o Options) HasStatus() bool {
	return o.Status != "" && o.Status != StatusAll
}

// SearchTerm returns the trimmed search text
func (o Options) SearchTerm() string {
	return strings.TrimSpace(o.Search)
}

// Validate rejects unknown status values, negative limits and unknown sort orders
func (o Options) Validate() error {
	if o.HasStatus() && !models.CommentStatus(o.Status).Valid() {
		return fmt.Errorf("invalid status filter %q, must be one of: all, pending, approved, spam", o.Status)
	}
	if o.Limit < 0 {
		return fmt.Errorf("limit must not be negative")
	}
	switch o.Sort {
	case "", SortNewest, SortOldest:
	default:
		return fmt.Errorf("invalid sort %q, must be one of: newest, oldest", o.Sort)
	}
	return nil
}

// MatchesSearch reports whether term occurs, case-insensitively, in the author
// name, author email, content or post slug. An empty term matches everything.
func MatchesSearch(c *models.Comment, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.AuthorName), term) ||
		strings.Contains(strings.ToLower(c.AuthorEmail), term) ||
		strings.Contains(strings.ToLower(c.Content), term) ||
		strings.Contains(strings.ToLower(c.PostSlug), term)
}

// Search keeps the comments matching term
func Search(comments []*models.Comment, term string) []*models.Comment {
	if strings.TrimSpace(term) == "" {
		return comments
	}
	out := make([]*models.Comment, 0, len(comments))
	for _, c := range comments {
		if MatchesSearch(c, term) {
			out = append(out, c)
		}
	}
	return out
}

// SortByCreatedAt sorts in place, stable for equal timestamps
func SortByCreatedAt(comments []*models.Comment, ascending bool) {
	sort.SliceStable(comments, func(i, j int) bool {
		if ascending {
			return comments[i].CreatedAt.Before(comments[j].CreatedAt)
		}
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})
}

// Apply composes status, search, limit and ordering. The limit always keeps the
// newest matches; SortOldest only reorders the kept rows. The input slice is not modified.
func Apply(comments []*models.Comment, opts Options) []*models.Comment {
	out := make([]*models.Comment, 0, len(comments))
	for _, c := range comments {
		if opts.HasStatus() && string(c.Status) != opts.Status {
			continue
		}
		if !MatchesSearch(c, opts.Search) {
			continue
		}
		out = append(out, c)
	}

	SortByCreatedAt(out, false)

	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}

	Reorder(out, opts.Sort)
	return out
}

// Reorder applies the display order to an already fetched newest-first set
func Reorder(comments []*models.Comment, order SortOrder) {
	if order == SortOldest {
		SortByCreatedAt(comments, true)
	}
}
