package discovery

import (
	"time"

	"github.com/noah-isme/community-hub-api/internal/models"
)

func member(id, name string, role models.MemberRole) *models.Member {
	return &models.Member{ID: id, Name: name, Username: id, Role: role}
}

func withRating(m *models.Member, rating float64) *models.Member {
	m.Rating = &rating
	return m
}

func withSkills(m *models.Member, skills ...string) *models.Member {
	m.Skills = skills
	return m
}

func withAvailability(m *models.Member, a models.Availability) *models.Member {
	m.Availability = &a
	return m
}

func withOnline(m *models.Member, online bool) *models.Member {
	m.IsOnline = &online
	return m
}

func withJoined(m *models.Member, at time.Time) *models.Member {
	m.JoinedAt = &at
	return m
}

func post(id, content string, likes, comments int, at time.Time, author *models.Member) *models.Post {
	return &models.Post{ID: id, AuthorID: author.ID, Content: content, LikeCount: likes, CommentCount: comments, CreatedAt: at, Author: *author}
}

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		if item.Kind == KindContent {
			out[i] = item.Post.ID
			continue
		}
		out[i] = item.Member.ID
	}
	return out
}
