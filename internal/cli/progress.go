package cli

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/schollz/progressbar/v3"

	"github.com/Veraticus/smart-budget/internal/model"
)

// TrainingProgress renders training epochs as a terminal progress bar.
type TrainingProgress struct {
	writer io.Writer
	bar    *progressbar.ProgressBar
	last   model.TrainingProgress
	mu     sync.Mutex
}

// NewTrainingProgress creates a renderer for a run of total epochs.
func NewTrainingProgress(w io.Writer, total int) *TrainingProgress {
	tp := &TrainingProgress{writer: w}
	tp.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Training model...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(w); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
	return tp
}

// Update advances the bar to the event's epoch. It has the signature the
// engine expects for progress callbacks.
func (tp *TrainingProgress) Update(p model.TrainingProgress) {
	tp.mu.Lock()
	defer tp.mu.Unlock()

	tp.last = p
	tp.bar.Describe(fmt.Sprintf("[cyan][bold]Training model...[reset] acc %.1f%% loss %.3f", p.Accuracy*100, p.Loss))
	if err := tp.bar.Set(p.Epoch); err != nil {
		slog.Warn("Failed to update progress bar", "error", err)
	}
}

// Last returns the most recent event.
func (tp *TrainingProgress) Last() model.TrainingProgress {
	tp.mu.Lock()
	defer tp.mu.Unlock()
	return tp.last
}

// Finish renders the completion box for a finished run.
func (tp *TrainingProgress) Finish(meta model.ModelMetadata) {
	tp.mu.Lock()
	defer tp.mu.Unlock()

	if err := tp.bar.Finish(); err != nil {
		slog.Warn("Failed to finish progress bar", "error", err)
	}

	summary := fmt.Sprintf("%s Accuracy: %.1f%%\n", ChartIcon, meta.Accuracy*100) +
		fmt.Sprintf("%s Trained on: %d transactions", RobotIcon, meta.TrainedOn)
	if _, err := fmt.Fprintln(tp.writer, RenderBox("Training Complete", summary)); err != nil {
		slog.Warn("Failed to write completion box", "error", err)
	}
}
