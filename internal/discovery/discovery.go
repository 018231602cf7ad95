// Package discovery filters and orders directory members and feed posts.
//
// Every function here is a pure transform over the items and the Selection
// passed in. Nothing is cached between calls, so callers may run passes
// concurrently and simply display the latest result.
package discovery

import (
	"slices"
	"sort"
)

// Result is the outcome of a single pass.
type Result struct {
	Items   []Item
	Skipped int
	SortBy  SortKey
}

type entry struct {
	item    Item
	subject Subject
}

// Run filters items with every non-neutral predicate of sel and stable-sorts
// the remainder by sel.SortBy. Malformed items are dropped and counted.
// The returned slice is always newly allocated; items are not copied.
func Run(items []Item, sel Selection) Result {
	preds := compile(sel)
	key := ParseSortKey(string(sel.SortBy))

	kept := make([]entry, 0, len(items))
	skipped := 0
	for _, item := range items {
		subject, ok := Normalize(item)
		if !ok {
			assertWellFormed(item)
			skipped++
			continue
		}
		if !matchesAll(&subject, preds) {
			continue
		}
		kept = append(kept, entry{item: item, subject: subject})
	}

	compare := comparatorFor(key)
	slices.SortStableFunc(kept, func(a, b entry) int {
		return compare(&a.subject, &b.subject)
	})

	out := make([]Item, len(kept))
	for i := range kept {
		out[i] = kept[i].item
	}
	return Result{Items: out, Skipped: skipped, SortBy: key}
}

// FilterAndSort is Run without the pass statistics.
func FilterAndSort(items []Item, sel Selection) []Item {
	return Run(items, sel).Items
}

// Skills returns the distinct skills carried by the items' subjects, sorted.
func Skills(items []Item) []string {
	seen := make(map[string]struct{})
	skills := make([]string, 0)
	for _, item := range items {
		subject, ok := Normalize(item)
		if !ok {
			continue
		}
		for _, skill := range subject.Skills {
			if skill == "" {
				continue
			}
			if _, exists := seen[skill]; exists {
				continue
			}
			seen[skill] = struct{}{}
			skills = append(skills, skill)
		}
	}
	sort.Strings(skills)
	return skills
}

// Page returns the 1-based page of items. Out of range pages are empty.
func Page(items []Item, page, size int) []Item {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		return items
	}
	// Compare page counts before multiplying so huge pages cannot overflow.
	if pages := (len(items) + size - 1) / size; page-1 >= pages {
		return []Item{}
	}
	start := (page - 1) * size
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
