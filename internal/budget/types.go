// Package budget derives totals, per-category spending and goal progress
// from the transaction and category collections.
package budget

import "github.com/shopspring/decimal"

// AllocationStatus describes how planned spending compares with income.
type AllocationStatus string

// Allocation states.
const (
	StatusBalanced      AllocationStatus = "balanced"
	StatusUnallocated   AllocationStatus = "unallocated"
	StatusOverAllocated AllocationStatus = "over-allocated"
)

// CategoryRow is the spending roll-up for one category.
type CategoryRow struct {
	Name             string
	Icon             string
	Color            string
	Allocated        decimal.Decimal
	Spent            decimal.Decimal
	Remaining        decimal.Decimal // Allocated - Spent, may be negative
	UsedPercent      float64         // Spent as a share of Allocated, 0 when nothing is allocated
	TransactionCount int
	OverBudget       bool
	IsCustom         bool
	Known            bool // False when transactions reference a category the store does not have
}

// GoalProgress is a goal with its completion percentage.
type GoalProgress struct {
	ID                string
	Name              string
	Target            decimal.Decimal
	Current           decimal.Decimal
	Percentage        float64
	DisplayPercentage float64 // Percentage clamped to 100
	Complete          bool
}

// Summary holds every derived figure shown on the overview.
type Summary struct {
	Income               decimal.Decimal
	TotalAllocated       decimal.Decimal
	Unallocated          decimal.Decimal // Income - TotalAllocated
	TotalSpent           decimal.Decimal
	TotalIncome          decimal.Decimal
	NetWorth             decimal.Decimal
	Status               AllocationStatus
	Categories           []CategoryRow
	Goals                []GoalProgress
	TransactionCount     int
	ImportedCount        int
	CorrectedPredictions int
}
