package discovery

import "strings"

// SortKey names one of the supported orderings.
type SortKey string

const (
	SortRecent        SortKey = "recent"
	SortMostLiked     SortKey = "most-liked"
	SortMostCommented SortKey = "most-commented"
	SortRating        SortKey = "rating"
	SortName          SortKey = "name"
	SortJoinedDate    SortKey = "joined-date"
)

// FilterAll is the neutral value of every category filter.
const FilterAll = "all"

// Role filter values.
const (
	RoleFilterMentor  = "mentor"
	RoleFilterStudent = "student"
	RoleFilterBoth    = "both"

	roleFilterLearner = "learner"
)

// SortKeys lists the supported sort keys in display order.
func SortKeys() []SortKey {
	return []SortKey{SortRecent, SortMostLiked, SortMostCommented, SortRating, SortName, SortJoinedDate}
}

// ParseSortKey maps raw input onto a supported key, falling back to recent.
func ParseSortKey(raw string) SortKey {
	key := SortKey(normalizeValue(raw))
	for _, known := range SortKeys() {
		if key == known {
			return key
		}
	}
	return SortRecent
}

// Selection is the caller-owned filter and sort state read on every pass.
// Empty fields are equivalent to "all" (filters), "recent" (sort) and no
// search.
type Selection struct {
	SortBy       SortKey `json:"sortBy"`
	Role         string  `json:"roleFilter"`
	Skill        string  `json:"skillFilter"`
	Rating       string  `json:"ratingFilter"`
	Availability string  `json:"availabilityFilter"`
	Search       string  `json:"searchQuery"`
}

// IsNeutral reports whether the selection filters nothing out.
func (s Selection) IsNeutral() bool {
	return len(compile(s)) == 0
}

func normalizeValue(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
