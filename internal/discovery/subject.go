package discovery

import (
	"strings"
	"time"

	"github.com/noah-isme/community-hub-api/internal/models"
)

// Subject is the read-only view every predicate and comparator works on.
// Optional member fields that are missing keep their zero value and the
// matching Has* flag stays false.
type Subject struct {
	Kind         Kind
	Role         models.MemberRole
	Skills       []string
	Rating       float64
	HasRating    bool
	Availability models.Availability
	IsOnline     bool
	Name         string
	Username     string
	JoinedAt     time.Time

	Body     string
	PostedAt time.Time
	Likes    int
	Comments int
}

// Normalize derives the subject of an item. Content items are evaluated
// through their author. It reports false when the item has no derivable
// identity.
func Normalize(item Item) (Subject, bool) {
	switch item.Kind {
	case KindEntity:
		if item.Member == nil {
			return Subject{}, false
		}
		return fromMember(item.Member)
	case KindContent:
		if item.Post == nil {
			return Subject{}, false
		}
		subject, ok := fromMember(&item.Post.Author)
		if !ok {
			return Subject{}, false
		}
		subject.Kind = KindContent
		subject.Body = item.Post.Content
		subject.PostedAt = item.Post.CreatedAt
		subject.Likes = item.Post.LikeCount
		subject.Comments = item.Post.CommentCount
		return subject, true
	default:
		return Subject{}, false
	}
}

func fromMember(m *models.Member) (Subject, bool) {
	if strings.TrimSpace(m.ID) == "" && strings.TrimSpace(m.Username) == "" {
		return Subject{}, false
	}
	subject := Subject{
		Kind:     KindEntity,
		Role:     normalizeRole(m.Role),
		Name:     m.Name,
		Username: m.Username,
	}
	if len(m.Skills) > 0 {
		subject.Skills = m.Skills
	}
	if m.Rating != nil {
		subject.Rating = *m.Rating
		subject.HasRating = true
	}
	if m.Availability != nil {
		subject.Availability = models.Availability(strings.ToLower(string(*m.Availability)))
	}
	if m.IsOnline != nil {
		subject.IsOnline = *m.IsOnline
	}
	if m.JoinedAt != nil {
		subject.JoinedAt = *m.JoinedAt
	}
	return subject, true
}

// normalizeRole folds legacy role spellings onto the closed role set.
func normalizeRole(role models.MemberRole) models.MemberRole {
	switch models.MemberRole(strings.ToLower(strings.TrimSpace(string(role)))) {
	case models.RoleLearner, "student":
		return models.RoleLearner
	case models.RoleMentor:
		return models.RoleMentor
	case models.RoleAdmin:
		return models.RoleAdmin
	default:
		return role
	}
}
