package models

import (
	"time"
)

// CommentStatus is the moderation state of a comment
type CommentStatus string

const (
	CommentStatusPending  CommentStatus = "pending"
	CommentStatusApproved CommentStatus = "approved"
	CommentStatusSpam     CommentStatus = "spam"
)

// ValidCommentStatuses defines allowed comment statuses
var ValidCommentStatuses = map[CommentStatus]bool{
	CommentStatusPending:  true,
	CommentStatusApproved: true,
	CommentStatusSpam:     true,
}

// Valid reports whether s is one of pending, approved, spam
func (s CommentStatus) Valid() bool {
	return ValidCommentStatuses[s]
}

// Comment represents a blog comment under moderation
type Comment struct {
	ID          int64         `json:"id" db:"id"`
	PostSlug    string        `json:"post_slug" db:"post_slug"`
	Content     string        `json:"content" db:"content"`
	AuthorName  string        `json:"author_name" db:"author_name"`
	AuthorEmail string        `json:"author_email" db:"author_email"`
	ParentID    *int64        `json:"parent_id,omitempty" db:"parent_id"`
	Status      CommentStatus `json:"status" db:"status"`
	IPAddress   *string       `json:"ip_address,omitempty" db:"ip_address"`
	UserAgent   *string       `json:"user_agent,omitempty" db:"user_agent"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" db:"updated_at"`
}

// IP returns the submitter address or "" when none was captured
func (c *Comment) IP() string {
	if c.IPAddress == nil {
		return ""
	}
	return *c.IPAddress
}

// BulkAction is the operation applied by a bulk moderation request
type BulkAction string

// BulkActionDelete permanently removes the targeted comments.
// The remaining bulk actions are the comment statuses themselves.
const BulkActionDelete BulkAction = "delete"

// Status returns the target status of a status-changing action
func (a BulkAction) Status() (CommentStatus, bool) {
	s := CommentStatus(a)
	return s, s.Valid()
}

// BulkRequest is the body of POST /api/comments/bulk
type BulkRequest struct {
	Action     BulkAction `json:"action" validate:"required,bulk_action"`
	CommentIDs []int64    `json:"commentIds" validate:"required,min=1,dive,gt=0"`
}

// StatusUpdateRequest is the body of PATCH /api/comments/:id
type StatusUpdateRequest struct {
	Status CommentStatus `json:"status" validate:"required,comment_status"`
}
