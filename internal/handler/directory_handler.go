package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/community-hub-api/internal/dto"
	"github.com/noah-isme/community-hub-api/internal/middleware"
	"github.com/noah-isme/community-hub-api/internal/models"
	appErrors "github.com/noah-isme/community-hub-api/pkg/errors"
	"github.com/noah-isme/community-hub-api/pkg/response"
)

type directoryService interface {
	Members(ctx context.Context, q dto.DirectoryQuery) (*dto.ListResult[models.Member], error)
	Feed(ctx context.Context, q dto.DirectoryQuery) (*dto.ListResult[models.Post], error)
	Skills(ctx context.Context) ([]string, error)
}

// DirectoryHandler serves the member directory and the feed.
type DirectoryHandler struct {
	svc directoryService
}

// NewDirectoryHandler constructs the handler.
func NewDirectoryHandler(svc directoryService) *DirectoryHandler {
	return &DirectoryHandler{svc: svc}
}

// ListMembers godoc
// @Summary List community members
// @Description Filters and sorts active members. Unknown filter values are ignored and unknown sort keys fall back to recent.
// @Tags Directory
// @Produce json
// @Param search query string false "Case-insensitive search over name, username and skills"
// @Param role query string false "all, mentor, student (alias learner) or both"
// @Param skill query string false "Exact skill, case-insensitive"
// @Param rating query string false "all, 1+, 2+, 3+ or 4+"
// @Param availability query string false "all, available, busy or offline"
// @Param sort query string false "recent, most-liked, most-commented, rating, name or joined-date"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /members [get]
func (h *DirectoryHandler) ListMembers(c *gin.Context) {
	var q dto.DirectoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query parameters"))
		return
	}
	res, err := h.svc.Members(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, res.CacheHit)
	response.JSON(c, http.StatusOK, res.Items, &res.Pagination, mergeMeta(c, res.Meta()))
}

// Feed godoc
// @Summary List feed posts
// @Description Filters posts through their author and sorts them. Accepts the same query parameters as /members.
// @Tags Directory
// @Produce json
// @Param search query string false "Search over post content, author name, username and skills"
// @Param role query string false "Author role filter"
// @Param skill query string false "Author skill filter"
// @Param rating query string false "Author rating threshold"
// @Param availability query string false "Author availability"
// @Param sort query string false "Sort key"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /feed [get]
func (h *DirectoryHandler) Feed(c *gin.Context) {
	var q dto.DirectoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query parameters"))
		return
	}
	res, err := h.svc.Feed(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, res.CacheHit)
	response.JSON(c, http.StatusOK, res.Items, &res.Pagination, mergeMeta(c, res.Meta()))
}

// Skills godoc
// @Summary Distinct member skills
// @Tags Directory
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /members/skills [get]
func (h *DirectoryHandler) Skills(c *gin.Context) {
	skills, err := h.svc.Skills(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, skills, nil)
}

func mergeMeta(c *gin.Context, extra map[string]interface{}) map[string]interface{} {
	meta := middleware.ResponseMeta(c)
	if meta == nil {
		return extra
	}
	for k, v := range extra {
		meta[k] = v
	}
	return meta
}
