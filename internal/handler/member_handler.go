package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/community-hub-api/internal/models"
	"github.com/noah-isme/community-hub-api/internal/service"
	appErrors "github.com/noah-isme/community-hub-api/pkg/errors"
	"github.com/noah-isme/community-hub-api/pkg/response"
)

type memberService interface {
	Create(ctx context.Context, req service.CreateMemberRequest) (*models.Member, error)
}

type postService interface {
	Create(ctx context.Context, req service.CreatePostRequest) (*models.Post, error)
}

// MemberHandler exposes member registration and post publishing.
type MemberHandler struct {
	members memberService
	posts   postService
}

// NewMemberHandler constructs the handler.
func NewMemberHandler(members memberService, posts postService) *MemberHandler {
	return &MemberHandler{members: members, posts: posts}
}

// CreateMember godoc
// @Summary Register a member
// @Tags Members
// @Accept json
// @Produce json
// @Param payload body service.CreateMemberRequest true "Member payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /members [post]
func (h *MemberHandler) CreateMember(c *gin.Context) {
	var req service.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid payload"))
		return
	}
	member, err := h.members.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, member)
}

// CreatePost godoc
// @Summary Publish a post
// @Description Mentions of unknown or inactive usernames are dropped.
// @Tags Feed
// @Accept json
// @Produce json
// @Param payload body service.CreatePostRequest true "Post payload"
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /posts [post]
func (h *MemberHandler) CreatePost(c *gin.Context) {
	var req service.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid payload"))
		return
	}
	post, err := h.posts.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, post)
}
