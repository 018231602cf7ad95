package discovery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/community-hub-api/internal/models"
)

func TestNormalizeEntity(t *testing.T) {
	joined := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)
	m := withJoined(withOnline(withAvailability(withSkills(withRating(member("ana", "Ana", "Student"), 4.5), "go"), "Busy"), true), joined)

	subject, ok := Normalize(MemberItem(m))

	assert.True(t, ok)
	assert.Equal(t, KindEntity, subject.Kind)
	assert.Equal(t, models.RoleLearner, subject.Role)
	assert.Equal(t, []string{"go"}, subject.Skills)
	assert.True(t, subject.HasRating)
	assert.Equal(t, 4.5, subject.Rating)
	assert.Equal(t, models.AvailabilityBusy, subject.Availability)
	assert.True(t, subject.IsOnline)
	assert.Equal(t, joined, subject.JoinedAt)
}

func TestNormalizeEntityWithAbsentFields(t *testing.T) {
	subject, ok := Normalize(MemberItem(&models.Member{Username: "ghost"}))

	assert.True(t, ok)
	assert.Nil(t, subject.Skills)
	assert.False(t, subject.HasRating)
	assert.Empty(t, subject.Availability)
	assert.False(t, subject.IsOnline)
	assert.True(t, subject.JoinedAt.IsZero())
}

func TestNormalizeContentUsesAuthor(t *testing.T) {
	at := time.Now()
	author := withSkills(member("ana", "Ana", models.RoleMentor), "react")

	subject, ok := Normalize(PostItem(post("p1", "hello", 3, 4, at, author)))

	assert.True(t, ok)
	assert.Equal(t, KindContent, subject.Kind)
	assert.Equal(t, "Ana", subject.Name)
	assert.Equal(t, "hello", subject.Body)
	assert.Equal(t, 3, subject.Likes)
	assert.Equal(t, 4, subject.Comments)
	assert.Equal(t, at, subject.PostedAt)
	assert.Equal(t, []string{"react"}, subject.Skills)
}

func TestNormalizeRejectsItemsWithoutIdentity(t *testing.T) {
	cases := map[string]Item{
		"zero kind":      {Member: member("a", "A", models.RoleMentor)},
		"nil member":     {Kind: KindEntity},
		"nil post":       {Kind: KindContent},
		"blank member":   MemberItem(&models.Member{Name: "No Id"}),
		"anonymous post": PostItem(&models.Post{ID: "p1", Content: "x"}),
	}
	for name, item := range cases {
		t.Run(name, func(t *testing.T) {
			_, ok := Normalize(item)
			assert.False(t, ok)
		})
	}
}
