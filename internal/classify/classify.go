// Package classify maps a complaint's department category and issue type to
// a severity priority. The rule table is fixed; matching is case-insensitive
// substring, category order then keyword order, first match wins.
package classify

import (
	"strings"

	"github.com/spec-kit/civic-service/internal/domain"
)

type keywordRule struct {
	keywords []string
	priority domain.Priority
}

type categoryRule struct {
	categories []string
	keywords   []keywordRule
	fallback   domain.Priority
}

var rules = []categoryRule{
	{
		categories: []string{"gas"},
		keywords: []keywordRule{
			{[]string{"leak"}, domain.PriorityCritical},
			{[]string{"no gas", "supply"}, domain.PriorityHigh},
		},
		fallback: domain.PriorityMedium,
	},
	{
		categories: []string{"electric"},
		keywords: []keywordRule{
			{[]string{"spark", "fire", "hazard"}, domain.PriorityCritical},
			{[]string{"fail", "outage", "cut", "power"}, domain.PriorityHigh},
			{[]string{"meter"}, domain.PriorityMedium},
		},
		fallback: domain.PriorityLow,
	},
	{
		categories: []string{"water"},
		keywords: []keywordRule{
			{[]string{"burst", "leak", "sewage", "block"}, domain.PriorityHigh},
			{[]string{"no water"}, domain.PriorityMedium},
		},
		fallback: domain.PriorityLow,
	},
	{
		categories: []string{"municipal", "waste"},
		keywords: []keywordRule{
			{[]string{"garbage", "light"}, domain.PriorityMedium},
		},
		fallback: domain.PriorityLow,
	},
}

// Priority classifies a complaint by department category and issue type.
// Pure and deterministic; safe for concurrent use without synchronization.
// Unrecognized categories fall back to Low, never an error.
func Priority(category, issueType string) domain.Priority {
	cat := strings.ToLower(category)
	issue := strings.ToLower(issueType)

	for _, rule := range rules {
		if !containsAny(cat, rule.categories) {
			continue
		}
		for _, kw := range rule.keywords {
			if containsAny(issue, kw.keywords) {
				return kw.priority
			}
		}
		return rule.fallback
	}
	return domain.PriorityLow
}

func containsAny(haystack string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}
