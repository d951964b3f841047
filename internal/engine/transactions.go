package engine

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/Veraticus/smart-budget/internal/budget"
	"github.com/Veraticus/smart-budget/internal/classification"
	"github.com/Veraticus/smart-budget/internal/common"
	"github.com/Veraticus/smart-budget/internal/model"
	"github.com/Veraticus/smart-budget/internal/state"
)

// TransactionInput is a manually entered transaction as typed by the user.
type TransactionInput struct {
	Description string
	Amount      string // Raw input; malformed amounts count as zero
	Type        model.TransactionType
	Category    string // Empty or "Other" means use the suggestion
}

// classifyLocked runs the pipeline and folds the prediction into s.
// Callers hold e.mu.
func (e *Engine) classifyLocked(ctx context.Context, s state.State, description string) (state.State, model.Prediction, error) {
	p, err := e.pipeline.Classify(ctx, description, s.AIReady)
	if err != nil {
		return s, model.Prediction{}, fmt.Errorf("failed to classify %q: %w", description, err)
	}
	return state.RecordPrediction(s, p), p, nil
}

// Classify predicts a category for description and records the prediction
// in the statistics.
func (e *Engine) Classify(ctx context.Context, description string) (model.Prediction, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	next, p, err := e.classifyLocked(ctx, e.state, description)
	if err != nil {
		return model.Prediction{}, err
	}
	if err := e.commit(ctx, next, state.KeyBudget); err != nil {
		return model.Prediction{}, err
	}

	e.logger.Debug("Classified description",
		"description", description,
		"category", p.Category,
		"method", p.Method,
		"confidence", p.Confidence)
	return p, nil
}

// suggestLocked picks a category for a new entry or bank import. A custom
// category named in the description wins. Otherwise the pipeline's
// prediction is recorded and refined by the suggestion table.
func (e *Engine) suggestLocked(ctx context.Context, s state.State, description string) (state.State, string, error) {
	if name, ok := classification.MatchCustom(description, s.Categories.CustomNames()); ok {
		return s, name, nil
	}
	next, p, err := e.classifyLocked(ctx, s, description)
	if err != nil {
		return s, "", err
	}
	return next, classification.SuggestFor(description, p), nil
}

// AddTransaction records a manual entry. Entries without a description or
// amount are ignored and reported with ok false. The category is the
// suggested one unless the user picked something other than the default;
// a pick that disagrees with the suggestion marks the entry as edited.
func (e *Engine) AddTransaction(ctx context.Context, in TransactionInput) (model.Transaction, bool, error) {
	if strings.TrimSpace(in.Description) == "" || strings.TrimSpace(in.Amount) == "" {
		return model.Transaction{}, false, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	userPicked := in.Category != "" && in.Category != model.DefaultCategory
	if userPicked {
		if _, ok := e.state.Categories.Get(in.Category); !ok {
			return model.Transaction{}, false, fmt.Errorf("add transaction: %w: %q", common.ErrUnknownCategory, in.Category)
		}
	}

	next, suggested, err := e.suggestLocked(ctx, e.state, in.Description)
	if err != nil {
		return model.Transaction{}, false, err
	}

	category := suggested
	if userPicked {
		category = in.Category
	}

	txn := model.Transaction{
		ID:          e.newID(),
		Description: in.Description,
		Amount:      math.Abs(budget.ParseAmount(in.Amount)),
		Type:        model.ParseTransactionType(string(in.Type)),
		Category:    category,
		Date:        e.now().Format("1/2/2006"),
		IsEdited:    userPicked && in.Category != suggested,
	}

	next = state.AddTransaction(next, txn)
	if err := e.commit(ctx, next, state.KeyTransactions, state.KeyBudget); err != nil {
		return model.Transaction{}, false, err
	}

	e.logger.Info("Added transaction",
		"id", txn.ID,
		"category", txn.Category,
		"suggested", suggested,
		"edited", txn.IsEdited)
	return txn, true, nil
}

// EditTransactionCategory refiles a transaction under category.
func (e *Engine) EditTransactionCategory(ctx context.Context, id, category string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	next, err := state.EditTransactionCategory(e.state, id, category)
	if err != nil {
		return err
	}
	if err := e.commit(ctx, next, state.KeyTransactions); err != nil {
		return err
	}

	e.logger.Info("Recategorized transaction", "id", id, "category", category)
	return nil
}
