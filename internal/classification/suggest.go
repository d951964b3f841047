package classification

import (
	"strings"

	"github.com/Veraticus/smart-budget/internal/model"
)

// suggestionRules is the merchant-aware vocabulary used to file new entries
// and bank imports. It is checked Housing first and is independent of the
// fallback table's order.
var suggestionRules = []Rule{
	{Category: "Housing", Keywords: []string{
		"rent", "mortgage", "apartment", "lease", "property", "landlord", "housing", "hoa",
	}},
	{Category: "Food", Keywords: []string{
		"grocery", "restaurant", "food", "coffee", "whole foods", "starbucks", "mcdonalds",
		"subway", "pizza", "kroger", "walmart", "target", "safeway", "publix", "dining",
		"cafe", "bakery", "deli",
	}},
	{Category: "Transportation", Keywords: []string{
		"gas", "uber", "taxi", "bus", "shell", "chevron", "exxon", "bp ", "mobil", "lyft",
		"metro", "parking", "toll", "car payment", "auto", "vehicle", "insurance auto",
	}},
	{Category: "Utilities", Keywords: []string{
		"electric", "water", "internet", "phone", "cable", "utility", "verizon", "at&t",
		"comcast", "spectrum", "duke energy", "pge", "gas company", "sewage", "trash",
	}},
	{Category: "Entertainment", Keywords: []string{
		"movie", "netflix", "spotify", "game", "amazon prime", "hulu", "disney",
		"entertainment", "concert", "theater", "cinema", "streaming", "subscription",
		"youtube premium", "apple music",
	}},
	{Category: "Healthcare", Keywords: []string{
		"doctor", "pharmacy", "medical", "hospital", "cvs", "walgreens", "health", "dental",
		"vision", "clinic", "urgent care", "prescription", "copay", "insurance health",
	}},
	{Category: "Savings", Keywords: []string{
		"save", "invest", "emergency", "transfer to savings", "401k", "ira", "retirement",
		"mutual fund",
	}},
}

// SuggestionRules returns a copy of the suggestion table in match order.
func SuggestionRules() []Rule {
	return cloneRules(suggestionRules)
}

// Suggest files a description with the suggestion table, or "Other".
func Suggest(description string) string {
	return firstMatch(suggestionRules, strings.ToLower(description), model.DefaultCategory)
}

// SuggestFor picks the category for a new entry given the pipeline's
// prediction for it: a keyword-model match wins, then the suggestion table,
// then whatever the fallback table said.
func SuggestFor(description string, p model.Prediction) string {
	if p.Method == model.MethodAI {
		return p.Category
	}
	if c := Suggest(description); c != model.DefaultCategory {
		return c
	}
	return p.Category
}
