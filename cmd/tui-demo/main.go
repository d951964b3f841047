// Package main runs the dashboard over a seeded in-memory budget.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Veraticus/smart-budget/internal/bank"
	"github.com/Veraticus/smart-budget/internal/engine"
	"github.com/Veraticus/smart-budget/internal/model"
	"github.com/Veraticus/smart-budget/internal/storage"
	"github.com/Veraticus/smart-budget/internal/tui"
)

var manualEntries = []engine.TransactionInput{
	{Description: "Grocery store run", Amount: "82.40"},
	{Description: "Farmers market food", Amount: "23.10"},
	{Description: "Movie night", Amount: "31.00"},
	{Description: "Internet bill", Amount: "69.99"},
	{Description: "Health insurance copay", Amount: "40"},
	{Description: "Car wash", Amount: "15"},
	{Description: "Transfer to IRA", Amount: "250"},
	{Description: "Side gig", Amount: "300", Type: model.TypeIncome, Category: "Savings"},
}

var allocations = map[string]float64{
	"Housing":        1500,
	"Food":           600,
	"Transportation": 250,
	"Utilities":      300,
	"Entertainment":  150,
	"Healthcare":     200,
	"Savings":        2000,
}

// seed fills eng with a linked mock bank, a few manual entries, a plan for
// the income and one goal.
func seed(ctx context.Context, eng *engine.Engine) error {
	if err := eng.SetIncome(ctx, 5000); err != nil {
		return err
	}
	for name, amount := range allocations {
		if err := eng.SetAllocation(ctx, name, amount); err != nil {
			return err
		}
	}

	if _, err := eng.ConnectBank(ctx); err != nil {
		return err
	}
	if _, err := eng.SyncBank(ctx); err != nil {
		return err
	}

	for _, in := range manualEntries {
		if in.Type == "" {
			in.Type = model.TypeExpense
		}
		if _, _, err := eng.AddTransaction(ctx, in); err != nil {
			return err
		}
	}

	g, _, err := eng.AddGoal(ctx, "Emergency fund", 10000)
	if err != nil {
		return err
	}
	_, err = eng.AdjustGoal(ctx, g.ID, 3500)
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := storage.NewMemoryStore()
	defer store.Close()

	eng := engine.New(store, nil, nil, bank.NewMockLink(0))
	if err := seed(ctx, eng); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error seeding demo budget: %v\n", err)
		os.Exit(1)
	}

	cfg := tui.Config{Theme: tui.CatppuccinMocha, AutoTrain: true, AutoTrainDelay: engine.DefaultConfig().AutoTrainDelay}
	if err := tui.Run(ctx, eng, cfg, nil, nil); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
