package discovery

import "cmp"

type comparator func(a, b *Subject) int

func comparatorFor(key SortKey) comparator {
	switch key {
	case SortMostLiked:
		return contentFirst(func(a, b *Subject) int { return cmp.Compare(b.Likes, a.Likes) }, nil)
	case SortMostCommented:
		return contentFirst(func(a, b *Subject) int { return cmp.Compare(b.Comments, a.Comments) }, nil)
	case SortRating:
		return compareRating
	case SortName:
		return compareName
	case SortJoinedDate:
		return compareJoined
	default:
		return contentFirst(newestPostFirst, onlineThenName)
	}
}

// contentFirst orders content items ahead of entities so comparators stay
// total over mixed lists. A nil byEntity leaves entities equal.
func contentFirst(byContent, byEntity comparator) comparator {
	return func(a, b *Subject) int {
		aContent, bContent := a.Kind == KindContent, b.Kind == KindContent
		switch {
		case aContent && bContent:
			return byContent(a, b)
		case aContent:
			return -1
		case bContent:
			return 1
		case byEntity == nil:
			return 0
		default:
			return byEntity(a, b)
		}
	}
}

func newestPostFirst(a, b *Subject) int {
	return b.PostedAt.Compare(a.PostedAt)
}

func onlineThenName(a, b *Subject) int {
	if a.IsOnline != b.IsOnline {
		if a.IsOnline {
			return -1
		}
		return 1
	}
	return cmp.Compare(a.Name, b.Name)
}

// compareRating sorts highest first; a missing rating counts as zero.
func compareRating(a, b *Subject) int {
	return cmp.Compare(b.Rating, a.Rating)
}

func compareName(a, b *Subject) int {
	return cmp.Compare(a.Name, b.Name)
}

// compareJoined sorts most recent joins first and missing dates last.
func compareJoined(a, b *Subject) int {
	aZero, bZero := a.JoinedAt.IsZero(), b.JoinedAt.IsZero()
	switch {
	case aZero && bZero:
		return 0
	case aZero:
		return 1
	case bZero:
		return -1
	default:
		return b.JoinedAt.Compare(a.JoinedAt)
	}
}
