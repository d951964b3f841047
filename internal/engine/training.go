package engine

import (
	"context"
	"fmt"

	"github.com/Veraticus/smart-budget/internal/common"
	"github.com/Veraticus/smart-budget/internal/model"
	"github.com/Veraticus/smart-budget/internal/state"
)

const (
	// MinTrainingExamples is the number of categorized transactions a run needs.
	MinTrainingExamples = 10
	// AutoTrainThreshold is the transaction count at which training starts on its own.
	AutoTrainThreshold = 15
)

// TrainingInProgress reports whether a training run is active.
func (e *Engine) TrainingInProgress() bool {
	return e.trainer.InProgress()
}

// Train runs the training simulation over the categorized transactions and
// marks the model ready. Concurrent calls share one run. The state lock is
// released while the run is in flight so other operations keep working.
func (e *Engine) Train(ctx context.Context, onProgress func(model.TrainingProgress)) (model.ModelMetadata, error) {
	e.mu.Lock()
	examples := e.state.Categorized()
	total := len(e.state.Transactions)
	e.mu.Unlock()

	if len(examples) < MinTrainingExamples {
		return model.ModelMetadata{}, fmt.Errorf("%w: have %d, need %d",
			common.ErrInsufficientTrainingData, len(examples), MinTrainingExamples)
	}

	result, shared, err := e.trainer.Train(ctx, examples, onProgress)
	if err != nil {
		return model.ModelMetadata{}, fmt.Errorf("training failed: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	meta := model.ModelMetadata{
		Date:      e.now(),
		Accuracy:  result.Accuracy,
		TrainedOn: total,
	}
	if err := e.commit(ctx, state.CompleteTraining(e.state, meta), state.KeyModel, state.KeyBudget); err != nil {
		return model.ModelMetadata{}, err
	}

	e.logger.Info("Model ready",
		"accuracy", meta.Accuracy,
		"trained_on", meta.TrainedOn,
		"shared_run", shared)
	return meta, nil
}

// AutoTrainDue reports whether enough data has accumulated for the model to
// train itself.
func (e *Engine) AutoTrainDue() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.autoTrainDueLocked()
}

func (e *Engine) autoTrainDueLocked() bool {
	return len(e.state.Transactions) >= AutoTrainThreshold &&
		e.state.CategorizedCount() >= MinTrainingExamples &&
		!e.state.AIReady &&
		!e.trainer.InProgress()
}

// MaybeAutoTrain trains the model when auto training is enabled and due.
// It waits for the configured delay first and checks again afterwards, so
// a manual run started in the meantime is not repeated. It reports whether
// a run happened.
func (e *Engine) MaybeAutoTrain(ctx context.Context, onProgress func(model.TrainingProgress)) (bool, error) {
	if !e.cfg.AutoTrain || !e.AutoTrainDue() {
		return false, nil
	}

	e.logger.Debug("Auto training scheduled", "delay", e.cfg.AutoTrainDelay)
	if err := common.Sleep(ctx, e.cfg.AutoTrainDelay); err != nil {
		return false, err
	}

	if !e.AutoTrainDue() {
		return false, nil
	}
	if _, err := e.Train(ctx, onProgress); err != nil {
		return false, err
	}
	return true, nil
}
