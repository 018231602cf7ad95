package discovery

import (
	"strconv"
	"strings"

	"github.com/noah-isme/community-hub-api/internal/models"
)

type predicate func(s *Subject) bool

// compile turns a selection into its non-neutral predicates, cheapest first.
func compile(sel Selection) []predicate {
	candidates := []predicate{
		rolePredicate(sel.Role),
		availabilityPredicate(sel.Availability),
		ratingPredicate(sel.Rating),
		skillPredicate(sel.Skill),
		searchPredicate(sel.Search),
	}
	preds := candidates[:0]
	for _, p := range candidates {
		if p != nil {
			preds = append(preds, p)
		}
	}
	return preds
}

func matchesAll(s *Subject, preds []predicate) bool {
	for _, p := range preds {
		if !p(s) {
			return false
		}
	}
	return true
}

func rolePredicate(raw string) predicate {
	switch normalizeValue(raw) {
	case RoleFilterMentor:
		return func(s *Subject) bool { return s.Role == models.RoleMentor }
	case RoleFilterStudent, roleFilterLearner:
		return func(s *Subject) bool { return s.Role == models.RoleLearner }
	case RoleFilterBoth:
		return func(s *Subject) bool {
			return s.Role == models.RoleMentor || s.Role == models.RoleLearner
		}
	default:
		return nil
	}
}

func availabilityPredicate(raw string) predicate {
	want := models.Availability(normalizeValue(raw))
	switch want {
	case models.AvailabilityAvailable, models.AvailabilityBusy, models.AvailabilityOffline:
		return func(s *Subject) bool { return s.Availability == want }
	default:
		return nil
	}
}

// ratingPredicate accepts "N+" with N in 1..4.
func ratingPredicate(raw string) predicate {
	value := normalizeValue(raw)
	if !strings.HasSuffix(value, "+") {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSuffix(value, "+"))
	if err != nil || n < 1 || n > 4 {
		return nil
	}
	threshold := float64(n)
	return func(s *Subject) bool { return s.HasRating && s.Rating >= threshold }
}

func skillPredicate(raw string) predicate {
	want := strings.TrimSpace(raw)
	if want == "" || strings.EqualFold(want, FilterAll) {
		return nil
	}
	return func(s *Subject) bool {
		for _, skill := range s.Skills {
			if strings.EqualFold(skill, want) {
				return true
			}
		}
		return false
	}
}

func searchPredicate(raw string) predicate {
	query := strings.ToLower(strings.TrimSpace(raw))
	if query == "" {
		return nil
	}
	return func(s *Subject) bool {
		if s.Kind == KindContent && containsFold(s.Body, query) {
			return true
		}
		if containsFold(s.Name, query) || containsFold(s.Username, query) {
			return true
		}
		for _, skill := range s.Skills {
			if containsFold(skill, query) {
				return true
			}
		}
		return false
	}
}

// containsFold expects needle to be lower-cased already.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}
