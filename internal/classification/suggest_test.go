package classification

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/smart-budget/internal/model"
)

func TestSuggest(t *testing.T) {
	tests := []struct {
		description string
		want        string
	}{
		{"Starbucks Coffee Downtown ☕", "Food"},
		{"Shell Gas Station #441 ⛽", "Transportation"},
		{"Monthly Rent Payment 🏠", "Housing"},
		{"Payroll Direct Deposit 💰", "Other"},
		{"Netflix Monthly Subscription 📺", "Entertainment"},
		{"Electric Company Bill ⚡", "Utilities"},
		{"CVS Pharmacy Prescription 💊", "Healthcare"},
		{"Uber Rides This Week 🚗", "Transportation"},
		{"Transfer to Emergency Savings 💎", "Savings"},
		{"Verizon Wireless Monthly Bill 📱", "Utilities"},
		{"Amazon Prime & Whole Foods 🛍️", "Food"},
		{"HOA dues", "Housing"},
		{"", "Other"},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			assert.Equal(t, tt.want, Suggest(tt.description))
		})
	}
}

func TestSuggest_HousingFirst(t *testing.T) {
	// The fallback table tests Food before Housing; suggestions do not.
	assert.Equal(t, "Housing", Suggest("grocery rent"))
	assert.Equal(t, "Food", Fallback("grocery rent"))
}

func TestSuggestFor(t *testing.T) {
	tests := []struct {
		name        string
		description string
		prediction  model.Prediction
		want        string
	}{
		{
			name:        "keyword model match wins",
			description: "Starbucks rent",
			prediction:  model.Prediction{Category: "Food", Method: model.MethodAI},
			want:        "Food",
		},
		{
			name:        "suggestion table beats rules",
			description: "Transfer to Emergency Savings",
			prediction:  model.Prediction{Category: "Other", Method: model.MethodRules},
			want:        "Savings",
		},
		{
			name:        "rules answer kept when suggestions miss",
			description: "Car wash",
			prediction:  model.Prediction{Category: "Transportation", Method: model.MethodRules},
			want:        "Transportation",
		},
		{
			name:        "nothing matches",
			description: "Payroll",
			prediction:  model.Prediction{Category: "Other", Method: model.MethodRules},
			want:        "Other",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SuggestFor(tt.description, tt.prediction))
		})
	}
}
