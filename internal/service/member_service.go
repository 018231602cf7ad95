package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/noah-isme/community-hub-api/internal/models"
	appErrors "github.com/noah-isme/community-hub-api/pkg/errors"
)

type memberStore interface {
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, member *models.Member) error
}

type directoryInvalidator interface {
	Invalidate(ctx context.Context) error
}

// CreateMemberRequest represents payload for registering a member.
type CreateMemberRequest struct {
	Name         string               `json:"name" validate:"required,max=120"`
	Username     string               `json:"username" validate:"required,username"`
	Email        string               `json:"email" validate:"required,email"`
	Role         models.MemberRole    `json:"role" validate:"required,oneof=learner mentor admin"`
	Skills       []string             `json:"skills" validate:"max=20,dive,required,max=40"`
	Rating       *float64             `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Availability *models.Availability `json:"availability" validate:"omitempty,oneof=available busy offline"`
	IsOnline     *bool                `json:"is_online"`
}

// MemberService handles member registration.
type MemberService struct {
	repo      memberStore
	directory directoryInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewMemberService creates an instance of MemberService.
func NewMemberService(repo memberStore, directory directoryInvalidator, validate *validator.Validate, logger *zap.Logger) *MemberService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	return &MemberService{repo: repo, directory: directory, validator: validate, logger: logger}
}

// Create registers a new active member. Usernames are unique ignoring case.
func (s *MemberService) Create(ctx context.Context, req CreateMemberRequest) (*models.Member, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Username = strings.TrimSpace(req.Username)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid create member payload")
	}

	exists, err := s.repo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check username uniqueness")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "username already taken")
	}

	member := &models.Member{
		Name:         req.Name,
		Username:     req.Username,
		Email:        strings.ToLower(req.Email),
		Role:         req.Role,
		Skills:       pq.StringArray(dedupeSkills(req.Skills)),
		Rating:       req.Rating,
		Availability: req.Availability,
		IsOnline:     req.IsOnline,
		Active:       true,
	}
	if err := s.repo.Create(ctx, member); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create member")
	}

	if err := s.directory.Invalidate(ctx); err != nil {
		s.logger.Warn("directory cache invalidation failed", zap.String("member_id", member.ID), zap.Error(err))
	}
	s.logger.Info("member registered", zap.String("member_id", member.ID), zap.String("role", string(member.Role)))
	return member, nil
}

func dedupeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		key := strings.ToLower(skill)
		if skill == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, skill)
	}
	return out
}
