package discovery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/community-hub-api/internal/models"
)

func TestRolePredicate(t *testing.T) {
	mentor := &Subject{Role: models.RoleMentor}
	learner := &Subject{Role: models.RoleLearner}
	admin := &Subject{Role: models.RoleAdmin}
	unknown := &Subject{Role: "guest"}

	cases := []struct {
		filter string
		want   [4]bool
	}{
		{"mentor", [4]bool{true, false, false, false}},
		{"student", [4]bool{false, true, false, false}},
		{"learner", [4]bool{false, true, false, false}},
		{" Both ", [4]bool{true, true, false, false}},
	}
	for _, tc := range cases {
		p := rolePredicate(tc.filter)
		if assert.NotNil(t, p, tc.filter) {
			assert.Equal(t, tc.want, [4]bool{p(mentor), p(learner), p(admin), p(unknown)}, tc.filter)
		}
	}
	assert.Nil(t, rolePredicate("all"))
	assert.Nil(t, rolePredicate(""))
	assert.Nil(t, rolePredicate("superuser"))
}

func TestAvailabilityPredicate(t *testing.T) {
	p := availabilityPredicate("available")

	assert.True(t, p(&Subject{Availability: models.AvailabilityAvailable}))
	assert.False(t, p(&Subject{Availability: models.AvailabilityBusy}))
	assert.False(t, p(&Subject{}))
	assert.Nil(t, availabilityPredicate("away"))
	assert.Nil(t, availabilityPredicate("all"))
}

func TestRatingPredicate(t *testing.T) {
	for _, raw := range []string{"all", "", "4", "0+", "5+", "x+", "+"} {
		assert.Nil(t, ratingPredicate(raw), raw)
	}
	p := ratingPredicate("2+")
	assert.True(t, p(&Subject{Rating: 2, HasRating: true}))
	assert.False(t, p(&Subject{Rating: 1.99, HasRating: true}))
	assert.False(t, p(&Subject{}))
}

func TestSkillPredicate(t *testing.T) {
	p := skillPredicate("React")

	assert.True(t, p(&Subject{Skills: []string{"go", "react"}}))
	assert.False(t, p(&Subject{Skills: []string{"reactive"}}))
	assert.False(t, p(&Subject{}))
	assert.Nil(t, skillPredicate("ALL"))
}

func TestSearchPredicate(t *testing.T) {
	p := searchPredicate("  HeLLo ")

	assert.True(t, p(&Subject{Kind: KindContent, Body: "well hello there"}))
	assert.False(t, p(&Subject{Kind: KindEntity, Body: "hello"}), "entities are not matched on body")
	assert.True(t, p(&Subject{Name: "Othello"}))
	assert.True(t, p(&Subject{Username: "hello_world"}))
	assert.True(t, p(&Subject{Skills: []string{"say-hello"}}))
	assert.False(t, p(&Subject{Name: "Bob"}))
	assert.Nil(t, searchPredicate("   "))
}

func TestSearchMatchesPostAuthor(t *testing.T) {
	now := time.Now()
	ana := withSkills(member("ana", "Ana Lima", models.RoleMentor), "kubernetes")
	items := []Item{
		PostItem(post("p1", "weekly update", 0, 0, now, ana)),
		PostItem(post("p2", "kubernetes tips", 0, 0, now.Add(-time.Minute), member("bo", "Bo", models.RoleLearner))),
		PostItem(post("p3", "nothing here", 0, 0, now.Add(-2*time.Minute), member("cy", "Cy", models.RoleLearner))),
	}

	assert.Equal(t, []string{"p1", "p2"}, ids(FilterAndSort(items, Selection{Search: "KUBERNETES"})))
	assert.Equal(t, []string{"p1"}, ids(FilterAndSort(items, Selection{Search: "lima"})))
}

func TestCompileOrdersCheapPredicatesFirst(t *testing.T) {
	preds := compile(Selection{Search: "x", Role: "mentor"})
	assert.Len(t, preds, 2)

	// role is compiled ahead of search
	rejected := &Subject{Role: models.RoleLearner, Name: "x"}
	assert.False(t, preds[0](rejected))
	assert.True(t, preds[1](rejected))
}
