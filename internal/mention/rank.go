package mention

import (
	"strings"

	"github.com/noah-isme/community-hub-api/internal/discovery"
	"github.com/noah-isme/community-hub-api/internal/models"
)

// Rank returns up to limit members matching query: username prefix matches
// first, then display-name prefix matches, then any other search hit, each
// group ordered by name.
func Rank(members []models.Member, query string, limit int) []models.Member {
	matched := discovery.FilterAndSort(discovery.MemberItems(members), discovery.Selection{
		Search: query,
		SortBy: discovery.SortName,
	})
	q := strings.ToLower(strings.TrimSpace(query))
	var byUsername, byName, rest []models.Member
	for _, item := range matched {
		m := *item.Member
		switch {
		case q != "" && strings.HasPrefix(strings.ToLower(m.Username), q):
			byUsername = append(byUsername, m)
		case q != "" && strings.HasPrefix(strings.ToLower(m.Name), q):
			byName = append(byName, m)
		default:
			rest = append(rest, m)
		}
	}
	ranked := make([]models.Member, 0, len(matched))
	ranked = append(ranked, byUsername...)
	ranked = append(ranked, byName...)
	ranked = append(ranked, rest...)
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
