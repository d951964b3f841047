// Package engine ties classification, training, bank sync and persistence
// to the budget state. All state transitions go through one mutex so they
// apply in call order.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/smart-budget/internal/bank"
	"github.com/Veraticus/smart-budget/internal/budget"
	"github.com/Veraticus/smart-budget/internal/classification"
	"github.com/Veraticus/smart-budget/internal/state"
	"github.com/Veraticus/smart-budget/internal/storage"
	"github.com/Veraticus/smart-budget/internal/training"
)

// Config holds the engine's tunables.
type Config struct {
	AutoTrainDelay time.Duration
	AutoTrain      bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		AutoTrain:      true,
		AutoTrainDelay: 2 * time.Second,
	}
}

// Engine owns the budget state.
type Engine struct {
	store    storage.Store
	pipeline *classification.Pipeline
	trainer  *training.Trainer
	source   bank.Source
	importer *bank.Importer
	logger   *slog.Logger
	now      func() time.Time
	newID    func() string
	state    state.State
	cfg      Config
	mu       sync.Mutex
}

// Option customizes an Engine.
type Option func(*Engine)

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithIDGenerator replaces the id generator used for new records.
func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) {
		e.newID = newID
	}
}

// WithConfig replaces the default configuration.
func WithConfig(cfg Config) Option {
	return func(e *Engine) {
		e.cfg = cfg
	}
}

// New creates an engine. Nil dependencies other than store get defaults.
func New(store storage.Store, pipeline *classification.Pipeline, trainer *training.Trainer, source bank.Source, opts ...Option) *Engine {
	if pipeline == nil {
		pipeline = classification.NewPipeline(nil)
	}
	if trainer == nil {
		trainer = training.NewTrainer(nil)
	}
	if source == nil {
		source = bank.NewMockLink(bank.DefaultConnectDelay)
	}

	e := &Engine{
		store:    store,
		pipeline: pipeline,
		trainer:  trainer,
		source:   source,
		importer: bank.NewImporter(),
		logger:   slog.Default().With("component", "engine"),
		now:      time.Now,
		newID:    uuid.NewString,
		state:    state.New(),
		cfg:      DefaultConfig(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load restores the state from the store. Keys that were never written keep
// their defaults.
func (e *Engine) Load(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	blobs, err := storage.LoadAll(ctx, e.store, state.KeyTransactions, state.KeyModel, state.KeyBudget)
	if err != nil {
		return fmt.Errorf("failed to load budget: %w", err)
	}

	s, err := state.Restore(blobs)
	if err != nil {
		return fmt.Errorf("failed to restore budget: %w", err)
	}
	e.state = s

	e.logger.Debug("Loaded budget",
		"transactions", len(s.Transactions),
		"categories", s.Categories.Len(),
		"goals", len(s.Goals),
		"ai_ready", s.AIReady)
	return nil
}

// State returns the current state. Reducers never modify a state in place,
// so the returned value stays valid.
func (e *Engine) State() state.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Summary derives the overview figures from the current state.
func (e *Engine) Summary() budget.Summary {
	return e.State().Summary()
}

// commit persists the given keys of next in one batch and then makes it
// current. Callers hold e.mu.
func (e *Engine) commit(ctx context.Context, next state.State, keys ...string) error {
	entries := make(map[string][]byte, len(keys))
	for _, key := range keys {
		var (
			data []byte
			err  error
		)
		switch key {
		case state.KeyTransactions:
			data, err = state.EncodeTransactions(next.Transactions)
		case state.KeyBudget:
			data, err = state.EncodeBudget(next)
		case state.KeyModel:
			if next.Model == nil {
				continue
			}
			data, err = state.EncodeModel(*next.Model)
		default:
			return fmt.Errorf("unknown state key %q", key)
		}
		if err != nil {
			return err
		}
		entries[key] = data
	}

	if err := e.store.SetMany(ctx, entries); err != nil {
		return fmt.Errorf("failed to save %v: %w", keys, err)
	}

	e.state = next
	return nil
}
