// Package classification assigns budget categories to transaction descriptions.
package classification

import (
	"strings"

	"github.com/Veraticus/smart-budget/internal/model"
)

// Rule maps a category to the substrings that trigger it.
type Rule struct {
	Category   string
	Keywords   []string
	Confidence float64 // Unused by the fallback table
}

// Matches reports whether any keyword occurs in the lowercased description.
func (r Rule) Matches(lowered string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

// fallbackRules is the broad category vocabulary, in priority order.
var fallbackRules = []Rule{
	{Category: "Food", Keywords: []string{"grocery", "food", "cafe"}},
	{Category: "Housing", Keywords: []string{"rent", "housing"}},
	{Category: "Transportation", Keywords: []string{"gas", "car", "taxi"}},
	{Category: "Entertainment", Keywords: []string{"movie", "game", "entertainment"}},
	{Category: "Healthcare", Keywords: []string{"medical", "health"}},
	{Category: "Utilities", Keywords: []string{"electric", "phone", "internet"}},
	{Category: "Savings", Keywords: []string{"save", "invest", "401k", "ira"}},
}

// FallbackRules returns a copy of the fallback table in priority order.
func FallbackRules() []Rule {
	return cloneRules(fallbackRules)
}

// Fallback classifies a description with the broad rule table.
// The first matching category in priority order wins; otherwise "Other".
func Fallback(description string) string {
	return firstMatch(fallbackRules, strings.ToLower(description), model.DefaultCategory)
}

func firstMatch(rules []Rule, lowered, fallback string) string {
	for _, r := range rules {
		if r.Matches(lowered) {
			return r.Category
		}
	}
	return fallback
}

func cloneRules(rules []Rule) []Rule {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		out[i] = Rule{
			Category:   r.Category,
			Keywords:   append([]string(nil), r.Keywords...),
			Confidence: r.Confidence,
		}
	}
	return out
}
