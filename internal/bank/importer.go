package bank

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/Veraticus/smart-budget/internal/model"
)

// CategorizeFunc picks a category for a transaction description.
type CategorizeFunc func(ctx context.Context, description string) (string, error)

// Importer turns bank transactions into budget transactions.
type Importer struct {
	logger *slog.Logger
}

// NewImporter creates an importer.
func NewImporter() *Importer {
	return &Importer{logger: slog.Default().With("component", "importer")}
}

// Import converts every bank transaction whose id is not already in
// existing, in source order. Repeated ids within txns are imported once.
func (im *Importer) Import(ctx context.Context, existing []model.Transaction, txns []model.BankTransaction, categorize CategorizeFunc) ([]model.Transaction, error) {
	seen := make(map[string]bool, len(existing)+len(txns))
	for _, t := range existing {
		seen[t.ID] = true
	}

	out := make([]model.Transaction, 0, len(txns))
	skipped := 0
	for _, bt := range txns {
		if seen[bt.ID] {
			skipped++
			continue
		}
		seen[bt.ID] = true

		category, err := categorize(ctx, bt.Description)
		if err != nil {
			return nil, err
		}
		out = append(out, Convert(bt, category))
	}

	im.logger.Debug("Imported bank transactions",
		"new", len(out),
		"skipped", skipped)

	return out, nil
}

// Convert maps one bank transaction. Positive amounts are income.
func Convert(bt model.BankTransaction, category string) model.Transaction {
	typ := model.TypeExpense
	if bt.Amount > 0 {
		typ = model.TypeIncome
	}
	return model.Transaction{
		ID:          bt.ID,
		Description: bt.Description,
		Amount:      math.Abs(bt.Amount),
		Type:        typ,
		Category:    category,
		Date:        DisplayDate(bt.Date),
		AccountID:   bt.AccountID,
		IsImported:  true,
	}
}

// DisplayDate rewrites a YYYY-MM-DD date as M/D/YYYY. Anything else is
// returned unchanged.
func DisplayDate(isoDate string) string {
	d, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		return isoDate
	}
	return d.Format("1/2/2006")
}
