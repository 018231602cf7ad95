package dto

import (
	"github.com/noah-isme/community-hub-api/internal/discovery"
	"github.com/noah-isme/community-hub-api/internal/models"
)

// DirectoryQuery carries the query string of GET /members and GET /feed.
type DirectoryQuery struct {
	Search       string `form:"search"`
	Role         string `form:"role"`
	Skill        string `form:"skill"`
	Rating       string `form:"rating"`
	Availability string `form:"availability"`
	Sort         string `form:"sort"`
	Page         int    `form:"page"`
	Limit        int    `form:"limit"`
}

// Selection converts the query into the engine's selection value.
func (q DirectoryQuery) Selection() discovery.Selection {
	return discovery.Selection{
		SortBy:       discovery.SortKey(q.Sort),
		Role:         q.Role,
		Skill:        q.Skill,
		Rating:       q.Rating,
		Availability: q.Availability,
		Search:       q.Search,
	}
}

// ListResult is one page of a filtered and sorted directory or feed list.
type ListResult[T any] struct {
	Items      []T
	Pagination models.Pagination
	SortBy     discovery.SortKey
	Skipped    int
	CacheHit   bool
}

// Meta returns the response meta block for the list.
func (r ListResult[T]) Meta() map[string]interface{} {
	return map[string]interface{}{
		"sortBy":    string(r.SortBy),
		"skipped":   r.Skipped,
		"cache_hit": r.CacheHit,
	}
}
