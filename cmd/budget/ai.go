package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/smart-budget/internal/cli"
	"github.com/Veraticus/smart-budget/internal/common"
	"github.com/Veraticus/smart-budget/internal/engine"
	"github.com/Veraticus/smart-budget/internal/training"
	"github.com/Veraticus/smart-budget/internal/tui"
)

func aiCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ai",
		Short: "Categorization model: predict, train and inspect",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "predict <description>",
		Short: "Suggest a category for a description",
		Args:  cobra.MinimumNArgs(1),
		RunE: opts.withApp(func(cmd *cobra.Command, a *app, args []string) error {
			description := strings.Join(args, " ")
			p, err := a.engine.Classify(cmd.Context(), description)
			if err != nil {
				return err
			}
			cli.RenderPrediction(cmd.OutOrStdout(), description, p)
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "train",
		Short: "Train the model on your categorized transactions",
		Args:  cobra.NoArgs,
		RunE: opts.withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			out := cmd.OutOrStdout()
			bar := cli.NewTrainingProgress(out, training.Epochs)

			meta, err := a.engine.Train(cmd.Context(), bar.Update)
			if errors.Is(err, common.ErrInsufficientTrainingData) {
				return common.NewUserError(
					fmt.Sprintf("Categorize at least %d transactions before training", engine.MinTrainingExamples), err)
			}
			if err != nil {
				return err
			}
			bar.Finish(meta)
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show model status and prediction statistics",
		Args:  cobra.NoArgs,
		RunE: opts.withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			st := a.engine.State()
			return cli.RenderStats(cmd.OutOrStdout(), st.Stats, st.Model, st.AIReady)
		}),
	})

	return cmd
}

func dashboardCmd(opts *rootOptions) *cobra.Command {
	var theme string

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive dashboard",
		Args:  cobra.NoArgs,
		RunE: opts.withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			th, err := tui.ThemeByName(theme)
			if err != nil {
				return common.NewUserError("Unknown theme", err)
			}
			return tui.Run(cmd.Context(), a.engine, tui.Config{
				Theme:          th,
				AutoTrain:      a.cfg.AI.AutoTrain,
				AutoTrainDelay: a.cfg.AI.AutoTrainDelay,
			}, cmd.InOrStdin(), cmd.OutOrStdout())
		}),
	}

	cmd.Flags().StringVar(&theme, "theme", "default", "color theme (default, catppuccin)")
	return cmd
}
