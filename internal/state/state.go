// Package state holds the application state and the pure functions that
// move it from one version to the next. Every reducer returns a new State
// and leaves its argument untouched.
package state

import (
	"fmt"
	"time"

	"github.com/Veraticus/smart-budget/internal/budget"
	"github.com/Veraticus/smart-budget/internal/categories"
	"github.com/Veraticus/smart-budget/internal/common"
	"github.com/Veraticus/smart-budget/internal/model"
)

// State is everything the budget knows.
type State struct {
	LastSync     *time.Time
	Model        *model.ModelMetadata
	Categories   categories.Store
	Transactions []model.Transaction // Newest first
	Goals        []model.Goal
	Accounts     []model.Account
	Stats        model.PredictionStats
	Income       float64
	AIReady      bool
}

// New returns an empty budget with the built-in categories.
func New() State {
	return State{Categories: categories.Defaults()}
}

// CategorizedCount returns how many transactions are filed somewhere other
// than the default category.
func (s State) CategorizedCount() int {
	n := 0
	for _, t := range s.Transactions {
		if t.Category != model.DefaultCategory {
			n++
		}
	}
	return n
}

// Categorized returns the transactions filed somewhere other than the
// default category.
func (s State) Categorized() []model.Transaction {
	out := make([]model.Transaction, 0, len(s.Transactions))
	for _, t := range s.Transactions {
		if t.Category != model.DefaultCategory {
			out = append(out, t)
		}
	}
	return out
}

// Transaction finds a transaction by id.
func (s State) Transaction(id string) (model.Transaction, bool) {
	for _, t := range s.Transactions {
		if t.ID == id {
			return t, true
		}
	}
	return model.Transaction{}, false
}

// Goal finds a goal by id.
func (s State) Goal(id string) (model.Goal, bool) {
	for _, g := range s.Goals {
		if g.ID == id {
			return g, true
		}
	}
	return model.Goal{}, false
}

// Summary derives the overview figures.
func (s State) Summary() budget.Summary {
	return budget.Summarize(budget.Input{
		Income:       s.Income,
		Categories:   s.Categories.All(),
		Transactions: s.Transactions,
		Goals:        s.Goals,
		Accounts:     s.Accounts,
	})
}

// AddTransaction puts t at the front of the list.
func AddTransaction(s State, t model.Transaction) State {
	txns := make([]model.Transaction, 0, len(s.Transactions)+1)
	txns = append(txns, t)
	txns = append(txns, s.Transactions...)
	s.Transactions = txns
	return s
}

// MergeImported adds imported transactions whose ids are not already
// present, ahead of the existing ones. It returns the new state and how
// many transactions were added.
func MergeImported(s State, imported []model.Transaction, at time.Time) (State, int) {
	seen := make(map[string]bool, len(s.Transactions)+len(imported))
	for _, t := range s.Transactions {
		seen[t.ID] = true
	}

	fresh := make([]model.Transaction, 0, len(imported))
	for _, t := range imported {
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		fresh = append(fresh, t)
	}

	txns := make([]model.Transaction, 0, len(fresh)+len(s.Transactions))
	txns = append(txns, fresh...)
	txns = append(txns, s.Transactions...)
	s.Transactions = txns
	s.LastSync = &at
	return s, len(fresh)
}

// EditTransactionCategory refiles a transaction and marks it as edited.
func EditTransactionCategory(s State, id, category string) (State, error) {
	if _, ok := s.Categories.Get(category); !ok {
		return s, fmt.Errorf("edit transaction %s: %w: %q", id, common.ErrUnknownCategory, category)
	}

	idx := -1
	for i, t := range s.Transactions {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s, fmt.Errorf("edit transaction %s: %w", id, common.ErrUnknownTransaction)
	}

	txns := make([]model.Transaction, len(s.Transactions))
	copy(txns, s.Transactions)
	txns[idx].Category = category
	txns[idx].IsEdited = true
	s.Transactions = txns
	return s, nil
}

// SetIncome replaces the monthly income.
func SetIncome(s State, income float64) State {
	s.Income = income
	return s
}

// SetAllocation sets the planned spend for a category.
func SetAllocation(s State, category string, amount float64) (State, error) {
	store, err := s.Categories.SetAllocation(category, amount)
	if err != nil {
		return s, err
	}
	s.Categories = store
	return s, nil
}

// AddCustomCategory adds a user-defined category. Blank names leave the
// state unchanged and report false.
func AddCustomCategory(s State, name string) (State, model.Category, bool) {
	store, c, ok := s.Categories.AddCustom(name)
	if !ok {
		return s, model.Category{}, false
	}
	s.Categories = store
	return s, c, true
}

// AddGoal appends a goal.
func AddGoal(s State, g model.Goal) State {
	goals := make([]model.Goal, 0, len(s.Goals)+1)
	goals = append(goals, s.Goals...)
	goals = append(goals, g)
	s.Goals = goals
	return s
}

// AdjustGoal moves a goal's progress by delta. Progress never drops below zero.
func AdjustGoal(s State, id string, delta float64) (State, error) {
	idx := -1
	for i, g := range s.Goals {
		if g.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s, fmt.Errorf("adjust goal %s: %w", id, common.ErrUnknownGoal)
	}

	goals := make([]model.Goal, len(s.Goals))
	copy(goals, s.Goals)
	goals[idx].Current = max(0, goals[idx].Current+delta)
	s.Goals = goals
	return s, nil
}

// RecordPrediction folds one prediction into the statistics.
func RecordPrediction(s State, p model.Prediction) State {
	s.Stats = s.Stats.Record(p)
	return s
}

// CompleteTraining marks the model ready with the given metadata.
func CompleteTraining(s State, meta model.ModelMetadata) State {
	s.Model = &meta
	s.AIReady = true
	s.Stats.ModelAccuracy = meta.Accuracy
	date := meta.Date
	s.Stats.TrainingDate = &date
	return s
}

// ConnectAccounts replaces the linked accounts. Linking counts as a sync,
// so LastSync moves to at.
func ConnectAccounts(s State, accounts []model.Account, at time.Time) State {
	out := make([]model.Account, len(accounts))
	copy(out, accounts)
	s.Accounts = out
	s.LastSync = &at
	return s
}
