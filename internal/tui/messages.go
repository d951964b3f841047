package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/smart-budget/internal/model"
)

// progressMsg carries one training epoch.
type progressMsg model.TrainingProgress

// trainingDoneMsg ends a run.
type trainingDoneMsg struct {
	err  error
	meta model.ModelMetadata
}

// autoTrainMsg fires once the auto-train delay has passed.
type autoTrainMsg struct{}

// refreshMsg asks the model to re-read the budget.
type refreshMsg struct{}

// listen waits for the next event of a training run.
func listen(events <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return nil
		}
		return msg
	}
}
