// Package training fakes the progressive training of the keyword model.
// No weights are learned: accuracy and loss follow a fixed ramp with jitter.
package training

import (
	"context"
	"math/rand"
	"time"

	"github.com/Veraticus/smart-budget/internal/common"
	"github.com/Veraticus/smart-budget/internal/model"
)

const (
	// Epochs is the fixed length of every training run.
	Epochs = 50
	// MaxAccuracy caps the synthetic accuracy.
	MaxAccuracy = 0.95
	// MinLoss floors the synthetic loss.
	MinLoss = 0.1

	startAccuracy = 0.65
	accuracyGain  = 0.25
	accuracyNoise = 0.02
	startLoss     = 2.0
	lossDrop      = 1.5
	lossNoise     = 0.1

	// DefaultEpochDelay paces a run so it takes a few seconds.
	DefaultEpochDelay = 100 * time.Millisecond
)

// Result summarizes a finished run.
type Result struct {
	Accuracy  float64
	ModelSize int
}

// Simulator produces the accuracy/loss trajectory of a training run.
type Simulator struct {
	random func() float64
	delay  time.Duration
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithEpochDelay sets the pause before each epoch.
func WithEpochDelay(d time.Duration) Option {
	return func(s *Simulator) {
		s.delay = max(d, 0)
	}
}

// WithRandom replaces the jitter source. It must return values in [0, 1).
func WithRandom(random func() float64) Option {
	return func(s *Simulator) {
		if random != nil {
			s.random = random
		}
	}
}

// NewSimulator creates a simulator with the default pacing.
func NewSimulator(opts ...Option) *Simulator {
	s := &Simulator{
		random: rand.Float64,
		delay:  DefaultEpochDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Step computes the synthetic accuracy and loss for an epoch given two jitter draws.
func Step(epoch int, accuracyJitter, lossJitter float64) (accuracy, loss float64) {
	progress := float64(epoch) / Epochs
	accuracy = min(MaxAccuracy, startAccuracy+progress*accuracyGain+(accuracyJitter-0.5)*accuracyNoise)
	loss = max(MinLoss, startLoss-progress*lossDrop+(lossJitter-0.5)*lossNoise)
	return accuracy, loss
}

// Stream emits one progress event per epoch. The channel is closed after the
// final epoch or as soon as ctx is done, whichever comes first.
func (s *Simulator) Stream(ctx context.Context) <-chan model.TrainingProgress {
	out := make(chan model.TrainingProgress)

	go func() {
		defer close(out)

		for epoch := 1; epoch <= Epochs; epoch++ {
			if err := common.Sleep(ctx, s.delay); err != nil {
				return
			}

			accuracy, loss := Step(epoch, s.random(), s.random())
			event := model.TrainingProgress{
				Epoch:       epoch,
				TotalEpochs: Epochs,
				Accuracy:    accuracy,
				Loss:        loss,
				IsComplete:  epoch == Epochs,
			}

			select {
			case out <- event:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

// Train runs a full simulated training over transactions, calling onProgress
// once per epoch. It returns ctx.Err() if the run is cut short.
func (s *Simulator) Train(ctx context.Context, transactions []model.Transaction, onProgress func(model.TrainingProgress)) (Result, error) {
	var last model.TrainingProgress
	for event := range s.Stream(ctx) {
		last = event
		if onProgress != nil {
			onProgress(event)
		}
	}

	if !last.IsComplete {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		return Result{}, context.Canceled
	}

	return Result{Accuracy: last.Accuracy, ModelSize: len(transactions)}, nil
}
