package discovery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/community-hub-api/internal/models"
)

func sampleDirectory() []Item {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []Item{
		MemberItem(withOnline(withJoined(withAvailability(withSkills(withRating(member("ana", "Ana", models.RoleMentor), 4.8), "react", "go"), models.AvailabilityAvailable), base.AddDate(0, 3, 0)), true)),
		MemberItem(withOnline(withJoined(withAvailability(withSkills(withRating(member("ben", "Ben", models.RoleLearner), 3.9), "python"), models.AvailabilityBusy), base.AddDate(0, 1, 0)), false)),
		MemberItem(withSkills(withRating(member("cy", "Cy", models.RoleAdmin), 5), "go")),
		MemberItem(withOnline(withAvailability(withSkills(member("dee", "Dee", models.RoleMentor), "react"), models.AvailabilityOffline), true)),
		MemberItem(withJoined(withRating(member("eli", "Eli", "student"), 4.0), base)),
	}
}

func TestFilterAndSortNeutralSelectionKeepsEverything(t *testing.T) {
	items := sampleDirectory()

	neutral := FilterAndSort(items, Selection{})
	explicit := FilterAndSort(items, Selection{SortBy: SortRecent, Role: "all", Skill: "all", Rating: "all", Availability: "all", Search: "   "})

	require.Len(t, neutral, len(items))
	assert.Equal(t, []string{"ana", "dee", "ben", "cy", "eli"}, ids(neutral))
	assert.Equal(t, ids(neutral), ids(explicit))
	assert.True(t, Selection{Search: " "}.IsNeutral())
}

func TestFilterAndSortReturnsNewSlice(t *testing.T) {
	items := sampleDirectory()
	out := FilterAndSort(items, Selection{SortBy: SortName})

	require.Len(t, out, len(items))
	out[0] = Item{}
	assert.Equal(t, "ana", items[0].Member.ID)
	assert.Same(t, items[1].Member, FilterAndSort(items, Selection{SortBy: SortName})[1].Member)

	empty := FilterAndSort(nil, Selection{})
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestFilterAndSortIsIdempotent(t *testing.T) {
	sel := Selection{Role: RoleFilterMentor, Skill: "react", SortBy: SortRating}
	once := FilterAndSort(sampleDirectory(), sel)
	twice := FilterAndSort(once, sel)

	assert.Equal(t, ids(once), ids(twice))
}

func TestFilterAndSortComposesWithAnd(t *testing.T) {
	items := sampleDirectory()
	cases := []struct {
		name string
		a    Selection
		b    Selection
	}{
		{"role and skill", Selection{Role: RoleFilterMentor}, Selection{Skill: "react"}},
		{"rating and search", Selection{Rating: "4+"}, Selection{Search: "go"}},
		{"availability and role", Selection{Availability: "available"}, Selection{Role: RoleFilterBoth}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			combined := tc.a
			combined.Skill = firstNonEmpty(tc.a.Skill, tc.b.Skill)
			combined.Search = firstNonEmpty(tc.a.Search, tc.b.Search)
			combined.Role = firstNonEmpty(tc.a.Role, tc.b.Role)
			combined.Availability = firstNonEmpty(tc.a.Availability, tc.b.Availability)
			combined.Rating = firstNonEmpty(tc.a.Rating, tc.b.Rating)

			onlyA := toSet(ids(FilterAndSort(items, tc.a)))
			onlyB := toSet(ids(FilterAndSort(items, tc.b)))
			var intersection []string
			for _, id := range ids(FilterAndSort(items, Selection{})) {
				if onlyA[id] && onlyB[id] {
					intersection = append(intersection, id)
				}
			}

			assert.Equal(t, intersection, nilIfEmpty(ids(FilterAndSort(items, combined))))
		})
	}
}

func TestScenarioRoleFilter(t *testing.T) {
	a := withRating(member("a", "EntityA", models.RoleMentor), 4.8)
	b := withRating(member("b", "EntityB", "student"), 3.9)

	out := FilterAndSort([]Item{MemberItem(a), MemberItem(b)}, Selection{Role: "mentor"})

	assert.Equal(t, []string{"a"}, ids(out))
}

func TestScenarioMostLiked(t *testing.T) {
	now := time.Now()
	a := member("a", "EntityA", models.RoleMentor)
	b := member("b", "EntityB", models.RoleLearner)
	items := []Item{
		PostItem(post("p1", "hello @world", 5, 0, now, a)),
		PostItem(post("p2", "bye", 10, 0, now.Add(-time.Hour), b)),
	}

	out := FilterAndSort(items, Selection{SortBy: SortMostLiked})

	assert.Equal(t, []string{"p2", "p1"}, ids(out))
}

func TestScenarioSearchBySkill(t *testing.T) {
	a := withSkills(member("a", "EntityA", models.RoleMentor), "react")
	b := withSkills(member("b", "EntityB", models.RoleMentor), "python")

	out := FilterAndSort([]Item{MemberItem(a), MemberItem(b)}, Selection{Search: "react"})

	assert.Equal(t, []string{"a"}, ids(out))
}

func TestScenarioAvailabilityExcludesAbsent(t *testing.T) {
	out := FilterAndSort([]Item{MemberItem(member("a", "A", models.RoleMentor))}, Selection{Availability: "busy"})

	assert.Empty(t, out)
}

func TestScenarioNameSortIsStable(t *testing.T) {
	items := []Item{
		MemberItem(member("bob-1", "Bob", models.RoleLearner)),
		MemberItem(member("alice", "Alice", models.RoleLearner)),
		MemberItem(member("bob-2", "Bob", models.RoleLearner)),
	}

	out := FilterAndSort(items, Selection{SortBy: SortName})

	assert.Equal(t, []string{"alice", "bob-1", "bob-2"}, ids(out))
}

func TestRatingBoundary(t *testing.T) {
	items := []Item{
		MemberItem(withRating(member("four", "Four", models.RoleMentor), 4.0)),
		MemberItem(withRating(member("almost", "Almost", models.RoleMentor), 3.99)),
		MemberItem(member("none", "None", models.RoleMentor)),
	}

	assert.Equal(t, []string{"four"}, ids(FilterAndSort(items, Selection{Rating: "4+"})))
	assert.Equal(t, []string{"four", "almost"}, ids(FilterAndSort(items, Selection{Rating: "3+", SortBy: SortRating})))
	assert.Len(t, FilterAndSort(items, Selection{Rating: "5+"}), 3, "unsupported threshold is neutral")
}

func TestSortFallsBackToRecent(t *testing.T) {
	items := sampleDirectory()

	res := Run(items, Selection{SortBy: "trending"})

	assert.Equal(t, SortRecent, res.SortBy)
	assert.Equal(t, ids(FilterAndSort(items, Selection{})), ids(res.Items))
}

func TestRecentOrdersPostsNewestFirst(t *testing.T) {
	now := time.Now()
	author := member("a", "A", models.RoleMentor)
	items := []Item{
		PostItem(post("old", "x", 0, 0, now.Add(-2*time.Hour), author)),
		PostItem(post("new", "x", 0, 0, now, author)),
		PostItem(post("mid", "x", 0, 0, now.Add(-time.Hour), author)),
	}

	assert.Equal(t, []string{"new", "mid", "old"}, ids(FilterAndSort(items, Selection{})))
}

func TestMixedKindsPlaceContentFirst(t *testing.T) {
	now := time.Now()
	author := member("a", "A", models.RoleMentor)
	items := []Item{
		MemberItem(member("m1", "Zed", models.RoleLearner)),
		PostItem(post("p1", "x", 1, 3, now, author)),
		MemberItem(member("m2", "Amy", models.RoleLearner)),
	}

	assert.Equal(t, []string{"p1", "m2", "m1"}, ids(FilterAndSort(items, Selection{SortBy: SortRecent})))
	assert.Equal(t, []string{"p1", "m1", "m2"}, ids(FilterAndSort(items, Selection{SortBy: SortMostCommented})))
}

func TestEntityOnlyContentSortsAreNoOps(t *testing.T) {
	items := sampleDirectory()
	for _, key := range []SortKey{SortMostLiked, SortMostCommented} {
		assert.Equal(t, ids(items), ids(FilterAndSort(items, Selection{SortBy: key})), string(key))
	}
}

func TestJoinedDateSortsMissingLast(t *testing.T) {
	out := FilterAndSort(sampleDirectory(), Selection{SortBy: SortJoinedDate})

	assert.Equal(t, []string{"ana", "ben", "eli", "cy", "dee"}, ids(out))
}

func TestRatingSortTreatsMissingAsZero(t *testing.T) {
	items := []Item{
		MemberItem(member("none", "None", models.RoleMentor)),
		MemberItem(withRating(member("zero", "Zero", models.RoleMentor), 0)),
		MemberItem(withRating(member("two", "Two", models.RoleMentor), 2)),
	}

	assert.Equal(t, []string{"two", "none", "zero"}, ids(FilterAndSort(items, Selection{SortBy: SortRating})))
}

func TestSortIsStableForEveryKey(t *testing.T) {
	now := time.Now()
	author := withJoined(withRating(member("a", "Same", models.RoleMentor), 3), now)
	items := []Item{
		PostItem(post("first", "x", 2, 2, now, author)),
		PostItem(post("second", "x", 2, 2, now, author)),
		PostItem(post("third", "x", 2, 2, now, author)),
	}
	for _, key := range SortKeys() {
		t.Run(string(key), func(t *testing.T) {
			assert.Equal(t, []string{"first", "second", "third"}, ids(FilterAndSort(items, Selection{SortBy: key})))
		})
	}
}

func TestSkillsAreDistinctAndSorted(t *testing.T) {
	assert.Equal(t, []string{"go", "python", "react"}, Skills(sampleDirectory()))
}

func TestPage(t *testing.T) {
	items := sampleDirectory()

	assert.Equal(t, []string{"ana", "ben"}, ids(Page(items, 1, 2)))
	assert.Equal(t, []string{"eli"}, ids(Page(items, 3, 2)))
	assert.Empty(t, Page(items, 4, 2))
	assert.Len(t, Page(items, 0, 0), len(items))
	assert.Empty(t, Page(items, 461168601842738792, 20))
	assert.Empty(t, Page(nil, 1, 20))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func nilIfEmpty(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	return values
}
