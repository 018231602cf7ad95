package service

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/community-hub-api/internal/dto"
	"github.com/noah-isme/community-hub-api/internal/mention"
	"github.com/noah-isme/community-hub-api/internal/models"
	appErrors "github.com/noah-isme/community-hub-api/pkg/errors"
)

const maxSuggestLimit = 50

type memberSnapshot interface {
	ActiveMembers(ctx context.Context) ([]models.Member, error)
}

// MentionService powers composer autocomplete.
type MentionService struct {
	members      memberSnapshot
	validator    *validator.Validate
	defaultLimit int
}

// NewMentionService constructs the mention service.
func NewMentionService(members memberSnapshot, validate *validator.Validate, defaultLimit int) *MentionService {
	if validate == nil {
		validate = NewValidator()
	}
	if defaultLimit <= 0 {
		defaultLimit = 8
	}
	return &MentionService{members: members, validator: validate, defaultLimit: defaultLimit}
}

// Suggest ranks active members against query.
func (s *MentionService) Suggest(ctx context.Context, query string, limit int) ([]dto.MentionSuggestion, error) {
	members, err := s.members.ActiveMembers(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewMentionSuggestions(mention.Rank(members, query, s.limit(limit))), nil
}

// Lookup finds the mention being typed at the caret and, when there is one,
// returns where to draw the popup and what to show in it.
func (s *MentionService) Lookup(ctx context.Context, req dto.MentionLookupRequest) (*dto.MentionLookupResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid mention lookup payload")
	}
	tok, ok := mention.ActiveToken(req.Text, req.Caret)
	if !ok {
		return &dto.MentionLookupResponse{Suggestions: []dto.MentionSuggestion{}}, nil
	}
	suggestions, err := s.Suggest(ctx, tok.Query, req.Limit)
	if err != nil {
		return nil, err
	}
	pos := mention.Locate(req.Text, req.Caret, req.Metrics)
	return &dto.MentionLookupResponse{
		Active:      true,
		Token:       &tok,
		Position:    &pos,
		Suggestions: suggestions,
	}, nil
}

// Apply replaces the token with the chosen username.
func (s *MentionService) Apply(req dto.MentionApplyRequest) (*dto.MentionApplyResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid mention apply payload")
	}
	text, caret := mention.Apply(req.Text, req.Token, req.Username)
	return &dto.MentionApplyResponse{Text: text, Caret: caret}, nil
}

func (s *MentionService) limit(requested int) int {
	if requested <= 0 {
		return s.defaultLimit
	}
	if requested > maxSuggestLimit {
		return maxSuggestLimit
	}
	return requested
}
