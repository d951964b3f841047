package classification

import (
	"context"
	"strings"

	"github.com/Veraticus/smart-budget/internal/model"
)

// Pipeline routes a description to the keyword model once it is ready and to
// the fallback table before that.
type Pipeline struct {
	model *KeywordModel
}

// NewPipeline creates a pipeline around the given keyword model.
func NewPipeline(m *KeywordModel) *Pipeline {
	if m == nil {
		m = NewKeywordModel(0)
	}
	return &Pipeline{model: m}
}

// Classify produces a prediction for description. When ready is false the
// fallback table answers immediately with the rules confidence.
func (p *Pipeline) Classify(ctx context.Context, description string, ready bool) (model.Prediction, error) {
	if !ready {
		return model.Prediction{
			Category:   Fallback(description),
			Confidence: RulesConfidence,
			Method:     model.MethodRules,
		}, nil
	}
	return p.model.Predict(ctx, description)
}

// MatchCustom returns the first user-defined category whose name appears in
// description, or whose name contains the description's first word.
func MatchCustom(description string, customNames []string) (string, bool) {
	lowered := strings.ToLower(description)
	firstWord := ""
	if fields := strings.Fields(lowered); len(fields) > 0 {
		firstWord = fields[0]
	}

	for _, name := range customNames {
		lname := strings.ToLower(name)
		if lname == "" {
			continue
		}
		if strings.Contains(lowered, lname) || (firstWord != "" && strings.Contains(lname, firstWord)) {
			return name, true
		}
	}
	return "", false
}
