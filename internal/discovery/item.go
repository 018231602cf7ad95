package discovery

import "github.com/noah-isme/community-hub-api/internal/models"

// Kind tags which shape an Item wraps. The zero Kind is never valid.
type Kind int

const (
	KindEntity Kind = iota + 1
	KindContent
)

// String returns the kind name used in logs and metrics labels.
func (k Kind) String() string {
	switch k {
	case KindEntity:
		return "entity"
	case KindContent:
		return "content"
	default:
		return "unknown"
	}
}

// Item is one row of a directory or feed list: either a bare member or a post.
type Item struct {
	Kind   Kind
	Member *models.Member
	Post   *models.Post
}

// MemberItem wraps a member as an entity item.
func MemberItem(m *models.Member) Item {
	return Item{Kind: KindEntity, Member: m}
}

// PostItem wraps a post as a content item.
func PostItem(p *models.Post) Item {
	return Item{Kind: KindContent, Post: p}
}

// MemberItems wraps every member of the slice.
func MemberItems(members []models.Member) []Item {
	items := make([]Item, len(members))
	for i := range members {
		items[i] = MemberItem(&members[i])
	}
	return items
}

// PostItems wraps every post of the slice.
func PostItems(posts []models.Post) []Item {
	items := make([]Item, len(posts))
	for i := range posts {
		items[i] = PostItem(&posts[i])
	}
	return items
}
