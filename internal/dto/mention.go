package dto

import (
	"github.com/noah-isme/community-hub-api/internal/mention"
	"github.com/noah-isme/community-hub-api/internal/models"
)

// MentionSuggestion is the compact member card shown in the autocomplete popup.
type MentionSuggestion struct {
	ID           string               `json:"id"`
	Username     string               `json:"username"`
	Name         string               `json:"name"`
	Role         models.MemberRole    `json:"role"`
	Availability *models.Availability `json:"availability,omitempty"`
	IsOnline     *bool                `json:"is_online,omitempty"`
}

// NewMentionSuggestions maps ranked members to suggestion cards.
func NewMentionSuggestions(members []models.Member) []MentionSuggestion {
	out := make([]MentionSuggestion, len(members))
	for i, m := range members {
		out[i] = MentionSuggestion{
			ID:           m.ID,
			Username:     m.Username,
			Name:         m.Name,
			Role:         m.Role,
			Availability: m.Availability,
			IsOnline:     m.IsOnline,
		}
	}
	return out
}

// MentionLookupRequest is sent by the composer on every keystroke.
type MentionLookupRequest struct {
	Text    string              `json:"text" validate:"max=10000"`
	Caret   int                 `json:"caret" validate:"gte=0"`
	Metrics mention.FontMetrics `json:"metrics"`
	Limit   int                 `json:"limit" validate:"gte=0,lte=50"`
}

// MentionLookupResponse describes the popup to show, if any.
type MentionLookupResponse struct {
	Active      bool                `json:"active"`
	Token       *mention.Token      `json:"token,omitempty"`
	Position    *mention.Position   `json:"position,omitempty"`
	Suggestions []MentionSuggestion `json:"suggestions"`
}

// MentionApplyRequest inserts the chosen username at the active token.
type MentionApplyRequest struct {
	Text     string        `json:"text" validate:"max=10000"`
	Token    mention.Token `json:"token"`
	Username string        `json:"username" validate:"required,username"`
}

// MentionApplyResponse carries the rewritten text and the caret after it.
type MentionApplyResponse struct {
	Text  string `json:"text"`
	Caret int    `json:"caret"`
}
