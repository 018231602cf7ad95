package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/community-hub-api/internal/models"
	appErrors "github.com/noah-isme/community-hub-api/pkg/errors"
)

func postFixture() (*memberRepoStub, *postRepoStub, *invalidatorStub) {
	retired := testMember("m-9", "retired", "Retired", models.RoleMentor)
	retired.Active = false
	members := &memberRepoStub{members: []models.Member{
		testMember("m-1", "ana", "Ana", models.RoleMentor),
		testMember("m-2", "Bo", "Bo", models.RoleLearner),
		retired,
	}}
	return members, &postRepoStub{}, &invalidatorStub{}
}

func TestPostServiceCreateResolvesMentions(t *testing.T) {
	members, posts, dir := postFixture()
	svc := NewPostService(posts, members, dir, nil, nil)

	post, err := svc.Create(context.Background(), CreatePostRequest{
		AuthorID: "m-1",
		Content:  "Thanks @bo and @ghost, ping @retired. cc (@bo)",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"bo"}, []string(post.Mentions))
	assert.Equal(t, "ana", post.Author.Username)
	require.Len(t, posts.created, 1)
	assert.Equal(t, 1, dir.calls)
}

func TestPostServiceCreateWithoutMentions(t *testing.T) {
	members, posts, dir := postFixture()
	svc := NewPostService(posts, members, dir, nil, nil)

	post, err := svc.Create(context.Background(), CreatePostRequest{AuthorID: "m-2", Content: "mail me at bo@example.com"})
	require.NoError(t, err)
	assert.Empty(t, post.Mentions)
}

func TestPostServiceCreateRejectsUnknownOrInactiveAuthor(t *testing.T) {
	members, posts, dir := postFixture()
	svc := NewPostService(posts, members, dir, nil, nil)

	_, err := svc.Create(context.Background(), CreatePostRequest{AuthorID: "nobody", Content: "hi"})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)

	_, err = svc.Create(context.Background(), CreatePostRequest{AuthorID: "m-9", Content: "hi"})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)

	_, err = svc.Create(context.Background(), CreatePostRequest{AuthorID: "m-1", Content: "   "})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Empty(t, posts.created)
}
