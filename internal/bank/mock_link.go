package bank

import (
	"context"
	"time"

	"github.com/Veraticus/smart-budget/internal/common"
	"github.com/Veraticus/smart-budget/internal/model"
)

// DefaultConnectDelay is how long MockLink pretends the bank handshake takes.
const DefaultConnectDelay = 2 * time.Second

var demoAccounts = []model.Account{
	{ID: "acc1", Name: "Chase Checking ✨", Type: "depository", Subtype: "checking", Balance: 2847.32, Institution: "Chase Bank", Color: "from-blue-600 to-cyan-500"},
	{ID: "acc2", Name: "Chase Savings 💰", Type: "depository", Subtype: "savings", Balance: 15420.18, Institution: "Chase Bank", Color: "from-green-600 to-emerald-500"},
	{ID: "acc3", Name: "Capital One Credit 💳", Type: "credit", Subtype: "credit card", Balance: -1234.56, Institution: "Capital One", Color: "from-red-600 to-pink-500"},
}

var demoTransactions = []model.BankTransaction{
	{ID: "t1", AccountID: "acc1", Amount: -85.32, Description: "Starbucks Coffee Downtown ☕", Date: "2025-01-20"},
	{ID: "t2", AccountID: "acc1", Amount: -45.00, Description: "Shell Gas Station #441 ⛽", Date: "2025-01-19"},
	{ID: "t3", AccountID: "acc1", Amount: -1200.00, Description: "Monthly Rent Payment 🏠", Date: "2025-01-18"},
	{ID: "t4", AccountID: "acc2", Amount: 2500.00, Description: "Payroll Direct Deposit 💰", Date: "2025-01-17"},
	{ID: "t5", AccountID: "acc3", Amount: -67.89, Description: "Netflix Monthly Subscription 📺", Date: "2025-01-16"},
	{ID: "t6", AccountID: "acc1", Amount: -125.50, Description: "Electric Company Bill ⚡", Date: "2025-01-15"},
	{ID: "t7", AccountID: "acc1", Amount: -89.99, Description: "CVS Pharmacy Prescription 💊", Date: "2025-01-14"},
	{ID: "t8", AccountID: "acc1", Amount: -42.30, Description: "Starbucks Pike Place ☕", Date: "2025-01-13"},
	{ID: "t9", AccountID: "acc1", Amount: -15.99, Description: "Spotify Premium Subscription 🎵", Date: "2025-01-12"},
	{ID: "t10", AccountID: "acc3", Amount: -156.78, Description: "Whole Foods Market Grocery 🛒", Date: "2025-01-11"},
	{ID: "t11", AccountID: "acc1", Amount: -65.00, Description: "Uber Rides This Week 🚗", Date: "2025-01-10"},
	{ID: "t12", AccountID: "acc1", Amount: -28.99, Description: "Disney Plus Annual Subscription 🎬", Date: "2025-01-09"},
	{ID: "t13", AccountID: "acc2", Amount: -500.00, Description: "Transfer to Emergency Savings 💎", Date: "2025-01-08"},
	{ID: "t14", AccountID: "acc1", Amount: -95.44, Description: "Verizon Wireless Monthly Bill 📱", Date: "2025-01-07"},
	{ID: "t15", AccountID: "acc3", Amount: -234.56, Description: "Amazon Prime & Whole Foods 🛍️", Date: "2025-01-06"},
}

// MockLink is a canned bank with three accounts and fifteen transactions.
type MockLink struct {
	delay time.Duration
}

// NewMockLink creates a mock bank whose Accounts call takes delay.
func NewMockLink(delay time.Duration) *MockLink {
	return &MockLink{delay: delay}
}

// Name implements Source.
func (m *MockLink) Name() string {
	return "mock"
}

// Accounts implements Source. It blocks for the connect delay.
func (m *MockLink) Accounts(ctx context.Context) ([]model.Account, error) {
	if err := common.Sleep(ctx, m.delay); err != nil {
		return nil, err
	}
	out := make([]model.Account, len(demoAccounts))
	copy(out, demoAccounts)
	return out, nil
}

// Transactions implements Source.
func (m *MockLink) Transactions(ctx context.Context) ([]model.BankTransaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]model.BankTransaction, len(demoTransactions))
	copy(out, demoTransactions)
	return out, nil
}

var _ Source = (*MockLink)(nil)
