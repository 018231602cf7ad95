package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/community-hub-api/internal/models"
)

// PostRepository handles persistence for feed posts.
type PostRepository struct {
	db *sqlx.DB
}

// NewPostRepository creates a new PostRepository.
func NewPostRepository(db *sqlx.DB) *PostRepository {
	return &PostRepository{db: db}
}

// ListWithAuthors returns every post joined to its author, oldest first.
// Authors are loaded even when inactive so old posts keep their byline.
func (r *PostRepository) ListWithAuthors(ctx context.Context) ([]models.Post, error) {
	const query = `SELECT p.id, p.author_id, p.content, p.like_count, p.comment_count, p.mentions, p.created_at,
m.id AS "author.id", m.name AS "author.name", m.username AS "author.username", m.email AS "author.email",
m.role AS "author.role", m.skills AS "author.skills", m.rating AS "author.rating",
m.availability AS "author.availability", m.is_online AS "author.is_online", m.joined_at AS "author.joined_at",
m.active AS "author.active", m.created_at AS "author.created_at", m.updated_at AS "author.updated_at"
FROM posts p
JOIN members m ON m.id = p.author_id
ORDER BY p.created_at ASC, p.id ASC`
	var posts []models.Post
	if err := r.db.SelectContext(ctx, &posts, query); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// Create inserts a post. Counters start at whatever the caller set.
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}
	if post.Mentions == nil {
		post.Mentions = pq.StringArray{}
	}

	const query = `INSERT INTO posts (id, author_id, content, like_count, comment_count, mentions, created_at)
VALUES (:id, :author_id, :content, :like_count, :comment_count, :mentions, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, post); err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}
