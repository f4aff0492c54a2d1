package models

import (
	"time"
)

// PageView is the running view counter of a post
type PageView struct {
	ID        int64     `json:"id" db:"id"`
	PostSlug  string    `json:"post_slug" db:"post_slug"`
	ViewCount int64     `json:"view_count" db:"view_count"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
