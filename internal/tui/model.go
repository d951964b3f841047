// Package tui implements the interactive budget dashboard with bubbletea.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/smart-budget/internal/budget"
	"github.com/Veraticus/smart-budget/internal/model"
	"github.com/Veraticus/smart-budget/internal/state"
	"github.com/Veraticus/smart-budget/internal/training"
)

// Backend is what the dashboard needs from the engine.
type Backend interface {
	State() state.State
	Train(ctx context.Context, onProgress func(model.TrainingProgress)) (model.ModelMetadata, error)
	TrainingInProgress() bool
	AutoTrainDue() bool
}

// Config holds dashboard options.
type Config struct {
	Theme          Theme
	AutoTrainDelay time.Duration
	AutoTrain      bool
	Width          int
}

// Model is the dashboard state.
type Model struct {
	ctx      context.Context
	backend  Backend
	lastErr  error
	lastRun  *model.ModelMetadata
	events   <-chan tea.Msg
	theme    Theme
	keymap   KeyMap
	help     help.Model
	progress progress.Model
	spinner  spinner.Model
	summary  budget.Summary
	state    state.State
	config   Config
	current  model.TrainingProgress
	width    int
	training bool
	quitting bool
}

// NewModel creates a dashboard over backend. Training runs use ctx.
func NewModel(ctx context.Context, backend Backend, cfg Config) Model {
	m := Model{
		ctx:     ctx,
		backend: backend,
		theme:   cfg.Theme,
		keymap:  DefaultKeyMap(),
		help:    help.New(),
		progress: progress.New(
			progress.WithGradient(string(cfg.Theme.Primary), string(cfg.Theme.Secondary)),
			progress.WithWidth(40),
		),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		config:  cfg,
		width:   cfg.Width,
	}
	m.spinner.Style = m.theme.StatusInfo
	return m.reload()
}

// Init schedules auto training when it is enabled and due.
func (m Model) Init() tea.Cmd {
	if !m.config.AutoTrain || !m.backend.AutoTrainDue() {
		return nil
	}
	return tea.Tick(m.config.AutoTrainDelay, func(time.Time) tea.Msg {
		return autoTrainMsg{}
	})
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = max(10, min(msg.Width-20, 60))
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case autoTrainMsg:
		if m.training || !m.backend.AutoTrainDue() {
			return m, nil
		}
		return m.startTraining()

	case progressMsg:
		m.current = model.TrainingProgress(msg)
		return m, listen(m.events)

	case trainingDoneMsg:
		m.training = false
		m.events = nil
		if msg.err != nil {
			m.lastErr = msg.err
		} else {
			meta := msg.meta
			m.lastRun = &meta
		}
		return m.reload(), nil

	case refreshMsg:
		return m.reload(), nil

	case spinner.TickMsg:
		if !m.training {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.ForceQuit), key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Train):
		return m.startTraining()
	case key.Matches(msg, m.keymap.Refresh):
		return m, func() tea.Msg { return refreshMsg{} }
	case key.Matches(msg, m.keymap.ToggleHelp):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// startTraining launches a run in the background and streams its epochs
// back as messages.
func (m Model) startTraining() (tea.Model, tea.Cmd) {
	if m.training || m.backend.TrainingInProgress() {
		return m, nil
	}

	events := make(chan tea.Msg, training.Epochs+1)
	backend, ctx := m.backend, m.ctx
	go func() {
		defer close(events)
		meta, err := backend.Train(ctx, func(p model.TrainingProgress) {
			select {
			case events <- progressMsg(p):
			default:
			}
		})
		events <- trainingDoneMsg{meta: meta, err: err}
	}()

	m.training = true
	m.events = events
	m.current = model.TrainingProgress{TotalEpochs: training.Epochs}
	m.lastErr = nil
	return m, tea.Batch(listen(events), m.spinner.Tick)
}

func (m Model) reload() Model {
	m.state = m.backend.State()
	m.summary = m.state.Summary()
	return m
}
