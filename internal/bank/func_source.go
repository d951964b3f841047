package bank

import (
	"context"
	"sync"

	"github.com/Veraticus/smart-budget/internal/model"
)

// FuncSource is a Source whose behavior is set by tests.
type FuncSource struct {
	// Functions that can be set by tests to control behavior
	AccountsFn     func(ctx context.Context) ([]model.Account, error)
	TransactionsFn func(ctx context.Context) ([]model.BankTransaction, error)

	mu sync.Mutex
	// Call tracking
	AccountsCalls     int
	TransactionsCalls int
}

// Name implements Source.
func (f *FuncSource) Name() string {
	return "func"
}

// Accounts implements Source.
func (f *FuncSource) Accounts(ctx context.Context) ([]model.Account, error) {
	f.mu.Lock()
	f.AccountsCalls++
	f.mu.Unlock()

	if f.AccountsFn != nil {
		return f.AccountsFn(ctx)
	}
	return []model.Account{}, nil
}

// Transactions implements Source.
func (f *FuncSource) Transactions(ctx context.Context) ([]model.BankTransaction, error) {
	f.mu.Lock()
	f.TransactionsCalls++
	f.mu.Unlock()

	if f.TransactionsFn != nil {
		return f.TransactionsFn(ctx)
	}
	return []model.BankTransaction{}, nil
}

// Reset clears all call tracking.
func (f *FuncSource) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.AccountsCalls = 0
	f.TransactionsCalls = 0
}

var _ Source = (*FuncSource)(nil)
