package budget

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/smart-budget/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(expected).Equal(actual), "expected %s, got %s", expected, actual)
}

func sampleTransactions() []model.Transaction {
	return []model.Transaction{
		{ID: "1", Description: "Starbucks", Type: model.TypeExpense, Category: "Food", Amount: 4.10},
		{ID: "2", Description: "Groceries", Type: model.TypeExpense, Category: "Food", Amount: 0.20},
		{ID: "3", Description: "Rent", Type: model.TypeExpense, Category: "Housing", Amount: 1200},
		{ID: "4", Description: "Paycheck", Type: model.TypeIncome, Category: "Other", Amount: 2500, IsImported: true},
		{ID: "5", Description: "Dog food", Type: model.TypeExpense, Category: "Pets", Amount: 30, IsEdited: true},
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"12.50", 12.5},
		{"  42 ", 42},
		{"$1,200.00", 1200},
		{"-25", -25},
		{"", 0},
		{"abc", 0},
		{"12abc", 0},
		{"1.2.3", 0},
		{"1e3", 1000},
		{"1e400", 0},
		{"-1e400", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ParseAmount(tt.input), 1e-9)
		})
	}
}

func TestTotals(t *testing.T) {
	txns := sampleTransactions()

	assertDecimal(t, "1234.30", TotalSpent(txns))
	assertDecimal(t, "2500", TotalIncome(txns))
	assertDecimal(t, "4.30", Spent(txns, "Food"))
	assertDecimal(t, "0", Spent(txns, "Utilities"))

	assertDecimal(t, "0", TotalSpent(nil))
}

func TestAllocation(t *testing.T) {
	cats := []model.Category{
		{Name: "Housing", Allocated: 1200},
		{Name: "Food", Allocated: 400.10},
		{Name: "Other", Allocated: 0.20},
	}

	assertDecimal(t, "1600.30", TotalAllocated(cats))
	assertDecimal(t, "399.70", Unallocated(2000, cats))
	assertDecimal(t, "-600.30", Unallocated(1000, cats))

	assert.Equal(t, StatusUnallocated, Status(Unallocated(2000, cats)))
	assert.Equal(t, StatusOverAllocated, Status(Unallocated(1000, cats)))
	assert.Equal(t, StatusBalanced, Status(Unallocated(1600.30, cats)))
}

func TestCategorySpending(t *testing.T) {
	txns := sampleTransactions()

	food := CategorySpending(model.Category{Name: "Food", Allocated: 10}, txns)
	assertDecimal(t, "4.30", food.Spent)
	assertDecimal(t, "5.70", food.Remaining)
	assert.InDelta(t, 43.0, food.UsedPercent, 1e-9)
	assert.Equal(t, 2, food.TransactionCount)
	assert.False(t, food.OverBudget)
	assert.True(t, food.Known)

	housing := CategorySpending(model.Category{Name: "Housing", Allocated: 1000}, txns)
	assert.True(t, housing.OverBudget)
	assertDecimal(t, "-200", housing.Remaining)
	assert.InDelta(t, 120.0, housing.UsedPercent, 1e-9)

	unfunded := CategorySpending(model.Category{Name: "Housing"}, txns)
	assert.True(t, unfunded.OverBudget)
	assert.Zero(t, unfunded.UsedPercent)

	idle := CategorySpending(model.Category{Name: "Savings"}, txns)
	assert.False(t, idle.OverBudget)
	assert.Zero(t, idle.TransactionCount)
}

func TestCategoryBreakdownIncludesUnknown(t *testing.T) {
	cats := []model.Category{{Name: "Food"}, {Name: "Housing"}}
	rows := CategoryBreakdown(cats, sampleTransactions())

	require.Len(t, rows, 3)
	assert.Equal(t, "Food", rows[0].Name)
	assert.Equal(t, "Housing", rows[1].Name)
	assert.Equal(t, "Pets", rows[2].Name)
	assert.False(t, rows[2].Known)
	assertDecimal(t, "30", rows[2].Spent)
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name     string
		goal     model.Goal
		percent  float64
		display  float64
		complete bool
	}{
		{"halfway", model.Goal{Target: 1000, Current: 500}, 50, 50, false},
		{"exact", model.Goal{Target: 1000, Current: 1000}, 100, 100, true},
		{"overshoot", model.Goal{Target: 1000, Current: 1500}, 150, 100, true},
		{"empty", model.Goal{Target: 1000}, 0, 0, false},
		{"zero target", model.Goal{Target: 0, Current: 5}, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Progress(tt.goal)
			assert.InDelta(t, tt.percent, p.Percentage, 1e-9)
			assert.InDelta(t, tt.display, p.DisplayPercentage, 1e-9)
			assert.Equal(t, tt.complete, p.Complete)
		})
	}
}

func TestNetWorth(t *testing.T) {
	accounts := []model.Account{
		{ID: "acc1", Balance: 2847.32},
		{ID: "acc2", Balance: 15420.18},
		{ID: "acc3", Balance: -1234.56},
	}
	assertDecimal(t, "17032.94", NetWorth(accounts))
	assertDecimal(t, "0", NetWorth(nil))
}

func TestSummarize(t *testing.T) {
	s := Summarize(Input{
		Income: 3000,
		Categories: []model.Category{
			{Name: "Food", Allocated: 500},
			{Name: "Housing", Allocated: 1200},
		},
		Transactions: sampleTransactions(),
		Goals:        []model.Goal{{ID: "g1", Name: "Trip", Target: 200, Current: 50}},
		Accounts:     []model.Account{{ID: "acc1", Balance: 100}},
	})

	assertDecimal(t, "1700", s.TotalAllocated)
	assertDecimal(t, "1300", s.Unallocated)
	assert.Equal(t, StatusUnallocated, s.Status)
	assertDecimal(t, "1234.30", s.TotalSpent)
	assertDecimal(t, "2500", s.TotalIncome)
	assertDecimal(t, "100", s.NetWorth)
	assert.Equal(t, 5, s.TransactionCount)
	assert.Equal(t, 1, s.ImportedCount)
	assert.Equal(t, 1, s.CorrectedPredictions)
	require.Len(t, s.Goals, 1)
	assert.InDelta(t, 25.0, s.Goals[0].Percentage, 1e-9)
	assert.Len(t, s.Categories, 3)
}
