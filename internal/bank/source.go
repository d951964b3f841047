// Package bank links external accounts and turns their transactions into
// budget entries.
package bank

import (
	"context"
	"fmt"

	"github.com/Veraticus/smart-budget/internal/common"
	"github.com/Veraticus/smart-budget/internal/config"
	"github.com/Veraticus/smart-budget/internal/model"
)

// Source is anything that can report linked accounts and their transactions.
type Source interface {
	Name() string
	Accounts(ctx context.Context) ([]model.Account, error)
	Transactions(ctx context.Context) ([]model.BankTransaction, error)
}

// New builds the source selected by cfg.
func New(cfg config.Config) (Source, error) {
	switch cfg.Bank.Provider {
	case config.ProviderMock, "":
		return NewMockLink(cfg.Bank.ConnectDelay), nil
	case config.ProviderPlaid:
		return NewPlaidSource(PlaidConfig{
			ClientID:     cfg.Plaid.ClientID,
			Secret:       cfg.Plaid.Secret,
			Environment:  cfg.Plaid.Environment,
			AccessToken:  cfg.Plaid.AccessToken,
			LookbackDays: cfg.Plaid.LookbackDays,
		})
	case config.ProviderOFX:
		return NewOFXSource(cfg.Bank.OFXFile), nil
	default:
		return nil, fmt.Errorf("%w: bank.provider %q", common.ErrInvalidConfig, cfg.Bank.Provider)
	}
}
