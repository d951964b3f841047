package classification

import (
	"context"
	"strings"
	"time"

	"github.com/Veraticus/smart-budget/internal/common"
	"github.com/Veraticus/smart-budget/internal/model"
)

// RulesConfidence is reported whenever the fallback table made the call.
const RulesConfidence = 0.6

// DefaultInferenceDelay paces each prediction like a model call would.
const DefaultInferenceDelay = 100 * time.Millisecond

// merchantRules is the brand-level vocabulary the keyword model recognizes.
var merchantRules = []Rule{
	{Category: "Food", Confidence: 0.92, Keywords: []string{"starbucks", "coffee", "restaurant"}},
	{Category: "Housing", Confidence: 0.95, Keywords: []string{"rent", "mortgage", "apartment"}},
	{Category: "Entertainment", Confidence: 0.88, Keywords: []string{"netflix", "spotify", "hulu", "disney"}},
	{Category: "Transportation", Confidence: 0.91, Keywords: []string{"shell", "chevron", "gas", "uber"}},
	{Category: "Healthcare", Confidence: 0.87, Keywords: []string{"cvs", "pharmacy", "walgreens", "doctor"}},
	{Category: "Utilities", Confidence: 0.90, Keywords: []string{"electric", "water", "internet", "verizon"}},
	{Category: "Savings", Confidence: 0.85, Keywords: []string{"save", "invest", "401k", "ira"}},
}

// MerchantRules returns a copy of the keyword model's table in match order.
func MerchantRules() []Rule {
	return cloneRules(merchantRules)
}

// KeywordModel imitates a trained classifier with a fixed merchant table.
// Nothing is learned; the delay only mimics inference latency.
type KeywordModel struct {
	delay time.Duration
}

// NewKeywordModel creates a keyword model that waits delay before each prediction.
func NewKeywordModel(delay time.Duration) *KeywordModel {
	if delay < 0 {
		delay = 0
	}
	return &KeywordModel{delay: delay}
}

// Predict classifies description. A merchant match yields an AI prediction with
// that category's confidence; anything else is handed to the fallback table.
// It only fails if ctx ends during the simulated latency.
func (m *KeywordModel) Predict(ctx context.Context, description string) (model.Prediction, error) {
	if err := common.Sleep(ctx, m.delay); err != nil {
		return model.Prediction{}, err
	}
	return predict(description), nil
}

func predict(description string) model.Prediction {
	lowered := strings.ToLower(description)
	for _, r := range merchantRules {
		if r.Matches(lowered) {
			return model.Prediction{Category: r.Category, Confidence: r.Confidence, Method: model.MethodAI}
		}
	}
	return model.Prediction{
		Category:   Fallback(description),
		Confidence: RulesConfidence,
		Method:     model.MethodRules,
	}
}
