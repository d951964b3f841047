package classification

import (
	"context"
	"testing"

	"github.com/Veraticus/smart-budget/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipeline_Classify(t *testing.T) {
	p := NewPipeline(NewKeywordModel(0))

	tests := []struct {
		name        string
		description string
		want        model.Prediction
		ready       bool
	}{
		{
			name:        "not ready uses fallback table",
			description: "Starbucks coffee",
			ready:       false,
			want:        model.Prediction{Category: "Other", Confidence: RulesConfidence, Method: model.MethodRules},
		},
		{
			name:        "not ready still finds broad keywords",
			description: "corner cafe",
			ready:       false,
			want:        model.Prediction{Category: "Food", Confidence: RulesConfidence, Method: model.MethodRules},
		},
		{
			name:        "ready uses keyword model",
			description: "Starbucks coffee",
			ready:       true,
			want:        model.Prediction{Category: "Food", Confidence: 0.92, Method: model.MethodAI},
		},
		{
			name:        "ready falls back when no merchant matches",
			description: "random transaction",
			ready:       true,
			want:        model.Prediction{Category: "Other", Confidence: RulesConfidence, Method: model.MethodRules},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Classify(context.Background(), tt.description, tt.ready)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewPipeline_NilModel(t *testing.T) {
	p := NewPipeline(nil)
	got, err := p.Classify(context.Background(), "netflix", true)
	require.NoError(t, err)
	assert.Equal(t, "Entertainment", got.Category)
}

func TestMatchCustom(t *testing.T) {
	custom := []string{"Pets", "Gym Membership"}

	tests := []struct {
		description string
		want        string
		wantOK      bool
	}{
		{"Pets supplies store", "Pets", true},
		{"gym class", "Gym Membership", true},
		{"GYM MEMBERSHIP renewal", "Gym Membership", true},
		{"Starbucks coffee", "", false},
		{"   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			got, ok := MatchCustom(tt.description, custom)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := MatchCustom("anything", nil)
	assert.False(t, ok)
}
