package training

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/Veraticus/smart-budget/internal/model"
	"golang.org/x/sync/singleflight"
)

const flightKey = "train"

// Trainer guards a Simulator so only one run is in flight at a time.
// Callers that arrive while a run is active share its result.
type Trainer struct {
	sim     *Simulator
	logger  *slog.Logger
	group   singleflight.Group
	running atomic.Bool
}

// NewTrainer wraps sim with a single-flight guard.
func NewTrainer(sim *Simulator) *Trainer {
	if sim == nil {
		sim = NewSimulator()
	}
	return &Trainer{
		sim:    sim,
		logger: slog.Default().With("component", "training"),
	}
}

// InProgress reports whether a run is active.
func (t *Trainer) InProgress() bool {
	return t.running.Load()
}

// Train starts a run, or joins the active one. Only the caller that started
// the run receives progress events. The returned bool is true when the
// result was shared with another caller.
func (t *Trainer) Train(ctx context.Context, transactions []model.Transaction, onProgress func(model.TrainingProgress)) (Result, bool, error) {
	v, err, shared := t.group.Do(flightKey, func() (any, error) {
		t.running.Store(true)
		defer t.running.Store(false)

		t.logger.Info("Starting training run", "transactions", len(transactions), "epochs", Epochs)
		result, err := t.sim.Train(ctx, transactions, onProgress)
		if err != nil {
			t.logger.Warn("Training run stopped", "error", err)
			return Result{}, err
		}

		t.logger.Info("Training run complete",
			"accuracy", result.Accuracy,
			"model_size", result.ModelSize)
		return result, nil
	})
	if err != nil {
		return Result{}, shared, err
	}

	return v.(Result), shared, nil
}
