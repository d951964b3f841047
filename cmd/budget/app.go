package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Veraticus/smart-budget/internal/bank"
	"github.com/Veraticus/smart-budget/internal/classification"
	"github.com/Veraticus/smart-budget/internal/cli"
	"github.com/Veraticus/smart-budget/internal/common"
	"github.com/Veraticus/smart-budget/internal/config"
	"github.com/Veraticus/smart-budget/internal/engine"
	"github.com/Veraticus/smart-budget/internal/storage"
	"github.com/Veraticus/smart-budget/internal/training"
)

// app is an opened budget: the store plus the engine over it.
type app struct {
	store  storage.Store
	engine *engine.Engine
	cfg    config.Config
}

func openApp(ctx context.Context, cfg config.Config) (*app, error) {
	store, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, common.NewUserError("Could not open the budget database", err)
	}

	source, err := bank.New(cfg)
	if err != nil {
		_ = store.Close()
		return nil, common.NewUserError("Could not set up the bank connection", err)
	}

	eng := engine.New(store,
		classification.NewPipeline(classification.NewKeywordModel(cfg.AI.InferenceDelay)),
		training.NewTrainer(training.NewSimulator(training.WithEpochDelay(cfg.AI.EpochDelay))),
		source,
		engine.WithConfig(engine.Config{
			AutoTrain:      cfg.AI.AutoTrain,
			AutoTrainDelay: cfg.AI.AutoTrainDelay,
		}),
	)
	if err := eng.Load(ctx); err != nil {
		_ = store.Close()
		return nil, common.NewUserError("Could not read your budget", err)
	}

	slog.Debug("Opened budget",
		"backend", cfg.Storage.Backend,
		"path", cfg.Storage.Path,
		"bank", source.Name())
	return &app{store: store, engine: eng, cfg: cfg}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

// withApp opens the budget for the duration of one command.
func (o *rootOptions) withApp(fn func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context(), o.cfg)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := a.Close(); cerr != nil {
				slog.Warn("Failed to close store", "error", cerr)
			}
		}()
		return fn(cmd, a, args)
	}
}

// maybeAutoTrain trains the model once enough transactions are categorized,
// rendering the run as a progress bar.
func (a *app) maybeAutoTrain(cmd *cobra.Command) error {
	if !a.cfg.AI.AutoTrain || !a.engine.AutoTrainDue() {
		return nil
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.FormatInfo("Enough transactions categorized, training the model..."))

	bar := cli.NewTrainingProgress(out, training.Epochs)
	trained, err := a.engine.MaybeAutoTrain(cmd.Context(), bar.Update)
	if err != nil {
		return fmt.Errorf("auto training failed: %w", err)
	}
	if trained {
		if meta := a.engine.State().Model; meta != nil {
			bar.Finish(*meta)
		}
	}
	return nil
}
