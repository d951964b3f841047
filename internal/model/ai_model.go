package model

import "time"

// ModelMetadata is everything persisted about a training run. There are no weights.
type ModelMetadata struct {
	Date      time.Time `json:"date"`
	Accuracy  float64   `json:"accuracy"`
	TrainedOn int       `json:"trainedOn"`
}

// TrainingProgress is emitted once per simulated epoch.
type TrainingProgress struct {
	Epoch       int     `json:"epoch"`
	TotalEpochs int     `json:"totalEpochs"`
	Accuracy    float64 `json:"accuracy"`
	Loss        float64 `json:"loss"`
	IsComplete  bool    `json:"isComplete"`
}

// Fraction returns how far through the run this event is, between 0 and 1.
func (p TrainingProgress) Fraction() float64 {
	if p.TotalEpochs <= 0 {
		return 0
	}
	return float64(p.Epoch) / float64(p.TotalEpochs)
}
