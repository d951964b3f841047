// Package model defines the core domain models used throughout the application.
package model

import "time"

// Method records which table produced a prediction.
type Method string

// Prediction methods.
const (
	MethodAI    Method = "AI"
	MethodRules Method = "Rules"
)

// Prediction is the outcome of classifying a transaction description.
type Prediction struct {
	Category   string  `json:"category"`
	Method     Method  `json:"method"`
	Confidence float64 `json:"confidence"`
}

// PredictionStats aggregates every prediction made during a session.
type PredictionStats struct {
	TrainingDate      *time.Time `json:"trainingDate,omitempty"`
	TotalPredictions  int        `json:"totalPredictions"`
	AIPredictions     int        `json:"aiPredictions"`
	RulePredictions   int        `json:"rulePredictions"`
	AverageConfidence float64    `json:"averageConfidence"`
	ModelAccuracy     float64    `json:"modelAccuracy"`
}

// Record returns the statistics updated with one more prediction.
// The average is maintained as a running mean over the new total.
func (s PredictionStats) Record(p Prediction) PredictionStats {
	s.TotalPredictions++
	switch p.Method {
	case MethodAI:
		s.AIPredictions++
	case MethodRules:
		s.RulePredictions++
	}
	n := float64(s.TotalPredictions)
	s.AverageConfidence = (s.AverageConfidence*(n-1) + p.Confidence) / n
	return s
}

// AIShare returns the fraction of predictions attributed to the keyword model.
func (s PredictionStats) AIShare() float64 {
	if s.TotalPredictions == 0 {
		return 0
	}
	return float64(s.AIPredictions) / float64(s.TotalPredictions)
}
