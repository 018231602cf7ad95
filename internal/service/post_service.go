package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/noah-isme/community-hub-api/internal/mention"
	"github.com/noah-isme/community-hub-api/internal/models"
	appErrors "github.com/noah-isme/community-hub-api/pkg/errors"
)

type postStore interface {
	Create(ctx context.Context, post *models.Post) error
}

type memberFinder interface {
	FindByID(ctx context.Context, id string) (*models.Member, error)
	FindByUsernames(ctx context.Context, usernames []string) ([]models.Member, error)
}

// CreatePostRequest represents payload for publishing a post.
type CreatePostRequest struct {
	AuthorID string `json:"author_id" validate:"required"`
	Content  string `json:"content" validate:"required,max=5000"`
}

// PostService publishes feed posts and resolves their @mentions.
type PostService struct {
	posts     postStore
	members   memberFinder
	directory directoryInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPostService constructs the post service.
func NewPostService(posts postStore, members memberFinder, directory directoryInvalidator, validate *validator.Validate, logger *zap.Logger) *PostService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	return &PostService{posts: posts, members: members, directory: directory, validator: validate, logger: logger}
}

// Create stores a post by an active author. Only mentions naming an existing
// active member are kept, in the order they appear in the text.
func (s *PostService) Create(ctx context.Context, req CreatePostRequest) (*models.Post, error) {
	req.Content = strings.TrimSpace(req.Content)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid create post payload")
	}

	author, err := s.members.FindByID(ctx, req.AuthorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "author not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load author")
	}
	if !author.Active {
		return nil, appErrors.Clone(appErrors.ErrValidation, "author is inactive")
	}

	mentions, err := s.resolveMentions(ctx, req.Content)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		AuthorID: author.ID,
		Content:  req.Content,
		Mentions: pq.StringArray(mentions),
		Author:   *author,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create post")
	}

	if err := s.directory.Invalidate(ctx); err != nil {
		s.logger.Warn("directory cache invalidation failed", zap.String("post_id", post.ID), zap.Error(err))
	}
	return post, nil
}

func (s *PostService) resolveMentions(ctx context.Context, content string) ([]string, error) {
	usernames := mention.Extract(content)
	if len(usernames) == 0 {
		return []string{}, nil
	}
	found, err := s.members.FindByUsernames(ctx, usernames)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve mentions")
	}
	known := make(map[string]struct{}, len(found))
	for _, m := range found {
		known[strings.ToLower(m.Username)] = struct{}{}
	}
	resolved := make([]string, 0, len(usernames))
	for _, username := range usernames {
		if _, ok := known[username]; ok {
			resolved = append(resolved, username)
		}
	}
	return resolved, nil
}
