package models

import (
	"time"

	"github.com/lib/pq"
)

// Post is a feed entry written by exactly one member.
type Post struct {
	ID           string         `db:"id" json:"id"`
	AuthorID     string         `db:"author_id" json:"author_id"`
	Content      string         `db:"content" json:"content"`
	LikeCount    int            `db:"like_count" json:"like_count"`
	CommentCount int            `db:"comment_count" json:"comment_count"`
	Mentions     pq.StringArray `db:"mentions" json:"mentions,omitempty"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	Author       Member         `db:"author" json:"author"`
}
