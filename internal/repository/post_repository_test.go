package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/community-hub-api/internal/models"
)

func TestPostRepositoryListWithAuthors(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPostRepository(db)

	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	columns := []string{
		"id", "author_id", "content", "like_count", "comment_count", "mentions", "created_at",
		"author.id", "author.name", "author.username", "author.email", "author.role", "author.skills", "author.rating",
		"author.availability", "author.is_online", "author.joined_at", "author.active", "author.created_at", "author.updated_at",
	}
	rows := sqlmock.NewRows(columns).
		AddRow("p-1", "m-1", "hello @bo", 3, 1, "{bo}", now,
			"m-1", "Ana", "ana", "ana@example.com", "mentor", "{go}", 4.8, "busy", false, now, true, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM posts p JOIN members m ON m.id = p.author_id")).
		WillReturnRows(rows)

	posts, err := repo.ListWithAuthors(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, 3, posts[0].LikeCount)
	assert.Equal(t, []string{"bo"}, []string(posts[0].Mentions))
	assert.Equal(t, "ana", posts[0].Author.Username)
	assert.Equal(t, models.RoleMentor, posts[0].Author.Role)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPostRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO posts")).
		WithArgs(sqlmock.AnyArg(), "m-1", "hi @ana", 0, 0, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	post := &models.Post{AuthorID: "m-1", Content: "hi @ana"}
	require.NoError(t, repo.Create(context.Background(), post))
	assert.NotEmpty(t, post.ID)
	assert.False(t, post.CreatedAt.IsZero())

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO posts")).WillReturnError(errors.New("fk violation"))
	err := repo.Create(context.Background(), &models.Post{AuthorID: "ghost", Content: "x"})
	assert.ErrorContains(t, err, "create post")
	require.NoError(t, mock.ExpectationsWereMet())
}
