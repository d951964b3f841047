package engine

import (
	"context"
	"fmt"

	"github.com/Veraticus/smart-budget/internal/common"
	"github.com/Veraticus/smart-budget/internal/model"
	"github.com/Veraticus/smart-budget/internal/state"
)

// ConnectBank links the accounts reported by the bank source.
func (e *Engine) ConnectBank(ctx context.Context) ([]model.Account, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.logger.Info("Connecting bank", "source", e.source.Name())
	accounts, err := e.source.Accounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect bank: %w", err)
	}

	if err := e.commit(ctx, state.ConnectAccounts(e.state, accounts, e.now()), state.KeyBudget); err != nil {
		return nil, err
	}

	e.logger.Info("Bank connected", "accounts", len(accounts))
	return accounts, nil
}

// SyncBank imports transactions from the linked bank. Transactions that are
// already present are skipped, so syncing twice adds nothing the second
// time. It returns how many transactions were added.
func (e *Engine) SyncBank(ctx context.Context) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.state.Accounts) == 0 {
		return 0, common.ErrNotConnected
	}

	bankTxns, err := e.source.Transactions(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch bank transactions: %w", err)
	}

	next := e.state
	categorize := func(ctx context.Context, description string) (string, error) {
		var (
			category string
			err      error
		)
		next, category, err = e.suggestLocked(ctx, next, description)
		return category, err
	}

	imported, err := e.importer.Import(ctx, next.Transactions, bankTxns, categorize)
	if err != nil {
		return 0, err
	}

	next, added := state.MergeImported(next, imported, e.now())
	if err := e.commit(ctx, next, state.KeyTransactions, state.KeyBudget); err != nil {
		return 0, err
	}

	e.logger.Info("Bank sync complete",
		"fetched", len(bankTxns),
		"added", added)
	return added, nil
}
