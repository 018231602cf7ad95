package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/community-hub-api/internal/dto"
	appErrors "github.com/noah-isme/community-hub-api/pkg/errors"
	"github.com/noah-isme/community-hub-api/pkg/response"
)

type mentionService interface {
	Suggest(ctx context.Context, query string, limit int) ([]dto.MentionSuggestion, error)
	Lookup(ctx context.Context, req dto.MentionLookupRequest) (*dto.MentionLookupResponse, error)
	Apply(req dto.MentionApplyRequest) (*dto.MentionApplyResponse, error)
}

// MentionHandler backs the composer's @mention autocomplete.
type MentionHandler struct {
	svc mentionService
}

// NewMentionHandler constructs the handler.
func NewMentionHandler(svc mentionService) *MentionHandler {
	return &MentionHandler{svc: svc}
}

// Suggest godoc
// @Summary Suggest members to mention
// @Tags Mentions
// @Produce json
// @Param q query string false "Typed query without the @"
// @Param limit query int false "Maximum suggestions"
// @Success 200 {object} response.Envelope
// @Router /mentions/suggest [get]
func (h *MentionHandler) Suggest(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "limit must be a non-negative integer"))
			return
		}
		limit = parsed
	}
	suggestions, err := h.svc.Suggest(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, suggestions, nil)
}

// Lookup godoc
// @Summary Resolve the mention at the caret
// @Description Returns the active @token, popup coordinates and suggestions.
// @Tags Mentions
// @Accept json
// @Produce json
// @Param payload body dto.MentionLookupRequest true "Composer state"
// @Success 200 {object} response.Envelope
// @Router /mentions/lookup [post]
func (h *MentionHandler) Lookup(c *gin.Context) {
	var req dto.MentionLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid payload"))
		return
	}
	resp, err := h.svc.Lookup(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// Apply godoc
// @Summary Insert a chosen mention
// @Tags Mentions
// @Accept json
// @Produce json
// @Param payload body dto.MentionApplyRequest true "Text, token and username"
// @Success 200 {object} response.Envelope
// @Router /mentions/apply [post]
func (h *MentionHandler) Apply(c *gin.Context) {
	var req dto.MentionApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid payload"))
		return
	}
	resp, err := h.svc.Apply(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}
