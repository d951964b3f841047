package bank

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/plaid/plaid-go/v20/plaid"

	"github.com/Veraticus/smart-budget/internal/categories"
	"github.com/Veraticus/smart-budget/internal/common"
	"github.com/Veraticus/smart-budget/internal/model"
)

// PlaidConfig holds Plaid API configuration.
type PlaidConfig struct {
	ClientID     string
	Secret       string
	Environment  string // sandbox or production
	AccessToken  string
	LookbackDays int
}

// Validate ensures all required fields are present.
func (c PlaidConfig) Validate() error {
	if c.ClientID == "" {
		return fmt.Errorf("%w: plaid client ID is required", common.ErrMissingConfig)
	}
	if c.Secret == "" {
		return fmt.Errorf("%w: plaid secret is required", common.ErrMissingConfig)
	}
	if c.AccessToken == "" {
		return fmt.Errorf("%w: plaid access token is required", common.ErrMissingConfig)
	}
	switch c.Environment {
	case "sandbox", "production":
	case "":
		return fmt.Errorf("%w: plaid environment is required", common.ErrMissingConfig)
	default:
		return fmt.Errorf("%w: plaid environment must be sandbox or production", common.ErrInvalidConfig)
	}
	return nil
}

// PlaidSource reads accounts and transactions from Plaid.
type PlaidSource struct {
	client      *plaid.APIClient
	logger      *slog.Logger
	now         func() time.Time
	retryOpts   common.RetryOptions
	accessToken string
	lookback    int
}

// NewPlaidSource creates a Plaid-backed source.
func NewPlaidSource(cfg PlaidConfig) (*PlaidSource, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	configuration := plaid.NewConfiguration()
	configuration.AddDefaultHeader("PLAID-CLIENT-ID", cfg.ClientID)
	configuration.AddDefaultHeader("PLAID-SECRET", cfg.Secret)

	switch cfg.Environment {
	case "sandbox":
		configuration.UseEnvironment(plaid.Sandbox)
	case "production":
		configuration.UseEnvironment(plaid.Production)
	}

	lookback := cfg.LookbackDays
	if lookback <= 0 {
		lookback = 30
	}

	return &PlaidSource{
		client:      plaid.NewAPIClient(configuration),
		accessToken: cfg.AccessToken,
		lookback:    lookback,
		now:         time.Now,
		logger:      slog.Default().With("component", "plaid"),
		retryOpts:   common.DefaultRetryOptions(),
	}, nil
}

// Name implements Source.
func (c *PlaidSource) Name() string {
	return "plaid"
}

// Accounts implements Source.
func (c *PlaidSource) Accounts(ctx context.Context) ([]model.Account, error) {
	c.logger.Info("Fetching accounts from Plaid")

	var resp plaid.AccountsGetResponse
	err := common.WithRetry(ctx, func() error {
		request := plaid.NewAccountsGetRequest(c.accessToken)
		r, _, err := c.client.PlaidApi.AccountsGet(ctx).AccountsGetRequest(*request).Execute()
		if err != nil {
			return c.classifyError("fetch accounts", err)
		}
		resp = r
		return nil
	}, c.retryOpts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrBankConnection, err)
	}

	item := resp.GetItem()
	institution := item.GetInstitutionId()
	if institution == "" {
		institution = "Plaid"
	}

	accounts := make([]model.Account, 0, len(resp.GetAccounts()))
	for _, acc := range resp.GetAccounts() {
		accounts = append(accounts, mapPlaidAccount(acc, institution))
	}

	c.logger.Info("Fetched accounts", "count", len(accounts))
	return accounts, nil
}

func mapPlaidAccount(acc plaid.AccountBase, institution string) model.Account {
	balances := acc.GetBalances()
	balance := balances.GetCurrent()
	// Plaid reports credit balances as amounts owed.
	if acc.GetType() == plaid.ACCOUNTTYPE_CREDIT || acc.GetType() == plaid.ACCOUNTTYPE_LOAN {
		balance = -balance
	}

	return model.Account{
		ID:          acc.GetAccountId(),
		Name:        acc.GetName(),
		Type:        string(acc.GetType()),
		Subtype:     string(acc.GetSubtype()),
		Institution: institution,
		Color:       categories.ColorFor(acc.GetName()),
		Balance:     balance,
	}
}

// Transactions implements Source. It fetches the configured lookback window.
func (c *PlaidSource) Transactions(ctx context.Context) ([]model.BankTransaction, error) {
	endDate := c.now()
	startDate := endDate.AddDate(0, 0, -c.lookback)

	c.logger.Info("Fetching transactions from Plaid",
		"start_date", startDate.Format("2006-01-02"),
		"end_date", endDate.Format("2006-01-02"))

	var all []plaid.Transaction
	offset := int32(0)
	const pageSize = int32(500) // Plaid's max page size

	for {
		var page []plaid.Transaction

		err := common.WithRetry(ctx, func() error {
			request := plaid.NewTransactionsGetRequest(
				c.accessToken,
				startDate.Format("2006-01-02"),
				endDate.Format("2006-01-02"),
			)
			request.SetOptions(plaid.TransactionsGetRequestOptions{
				Count:  plaid.PtrInt32(pageSize),
				Offset: plaid.PtrInt32(offset),
			})

			resp, _, err := c.client.PlaidApi.TransactionsGet(ctx).TransactionsGetRequest(*request).Execute()
			if err != nil {
				return c.classifyError("fetch transactions", err)
			}

			page = resp.GetTransactions()
			c.logger.Debug("Fetched transaction batch",
				"count", len(page),
				"offset", offset,
				"total", resp.GetTotalTransactions())
			return nil
		}, c.retryOpts)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrBankConnection, err)
		}

		all = append(all, page...)
		if len(page) < int(pageSize) {
			break
		}
		offset += pageSize
	}

	c.logger.Info("Fetched all transactions", "count", len(all))

	out := make([]model.BankTransaction, 0, len(all))
	for _, pt := range all {
		out = append(out, mapPlaidTransaction(pt))
	}
	return out, nil
}

// mapPlaidTransaction converts a Plaid transaction. Plaid reports money out
// as positive, so the sign is flipped.
func mapPlaidTransaction(pt plaid.Transaction) model.BankTransaction {
	description := pt.GetMerchantName()
	if description == "" {
		description = pt.GetName()
	}

	return model.BankTransaction{
		ID:          pt.GetTransactionId(),
		AccountID:   pt.GetAccountId(),
		Description: cleanMerchantName(description),
		Date:        pt.GetDate(),
		Amount:      -pt.GetAmount(),
	}
}

// classifyError marks rate limits as retryable and everything else from
// the API as final.
func (c *PlaidSource) classifyError(action string, err error) error {
	if plaidError := extractPlaidError(err); plaidError != nil {
		if plaidError.ErrorCode == "RATE_LIMIT_EXCEEDED" {
			c.logger.Warn("Rate limit hit, will retry", "error", plaidError.ErrorMessage)
			return &common.RetryableError{
				Err:       fmt.Errorf("%w: %s", common.ErrBankRateLimit, plaidError.ErrorMessage),
				Retryable: true,
			}
		}
		return &common.RetryableError{
			Err:       fmt.Errorf("plaid API error: %s - %s", plaidError.ErrorCode, plaidError.ErrorMessage),
			Retryable: false,
		}
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}

// extractPlaidError attempts to extract a Plaid error from a generic error.
func extractPlaidError(err error) *plaid.PlaidError {
	plaidErr, convErr := plaid.ToPlaidError(err)
	if convErr != nil {
		return nil
	}
	return &plaidErr
}

// cleanMerchantName title-cases a merchant name and strips trailing
// reference numbers and corporate suffixes.
func cleanMerchantName(name string) string {
	words := strings.Fields(strings.ToLower(name))
	for i, word := range words {
		runes := []rune(word)
		for j := range runes {
			if j == 0 || !isLetter(runes[j-1]) {
				runes[j] = toUpper(runes[j])
			}
		}
		words[i] = string(runes)
	}

	// "MERCHANT 123456789": a long trailing number is a reference, not a name.
	if len(words) > 1 {
		last := words[len(words)-1]
		if len(last) > 5 && isAllDigits(last) {
			words = words[:len(words)-1]
		}
	}
	name = strings.Join(words, " ")

	suffixes := []string{" Llc", " Inc", " Corp", " Corporation", " Company", " Co", " Ltd", " Limited"}
	for changed := true; changed; {
		changed = false
		for _, suffix := range suffixes {
			if strings.HasSuffix(name, suffix) {
				name = strings.TrimSuffix(name, suffix)
				changed = true
			}
		}
	}

	return strings.TrimSpace(name)
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func toUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - 32
	}
	return r
}

var _ Source = (*PlaidSource)(nil)
