package budget

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/smart-budget/internal/model"
)

var hundred = decimal.NewFromInt(100)

func money(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// ParseAmount reads a user-entered amount. Currency symbols, thousands
// separators and surrounding space are ignored; anything else that does not
// parse, or is too large to represent, comes back as zero.
func ParseAmount(s string) float64 {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.Replace(cleaned, "$", "", 1)
	if cleaned == "" {
		return 0
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0
	}
	f := d.InexactFloat64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0
	}
	return f
}

// TotalAllocated sums the allocation of every category.
func TotalAllocated(categories []model.Category) decimal.Decimal {
	total := decimal.Zero
	for _, c := range categories {
		total = total.Add(money(c.Allocated))
	}
	return total
}

// Unallocated returns income minus everything allocated. It is negative
// when the budget is over-allocated.
func Unallocated(income float64, categories []model.Category) decimal.Decimal {
	return money(income).Sub(TotalAllocated(categories))
}

// Status classifies an unallocated amount.
func Status(unallocated decimal.Decimal) AllocationStatus {
	switch unallocated.Sign() {
	case 0:
		return StatusBalanced
	case 1:
		return StatusUnallocated
	default:
		return StatusOverAllocated
	}
}

func sumByType(txns []model.Transaction, typ model.TransactionType) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txns {
		if t.Type == typ {
			total = total.Add(money(t.Amount))
		}
	}
	return total
}

// TotalSpent sums every expense.
func TotalSpent(txns []model.Transaction) decimal.Decimal {
	return sumByType(txns, model.TypeExpense)
}

// TotalIncome sums every income transaction.
func TotalIncome(txns []model.Transaction) decimal.Decimal {
	return sumByType(txns, model.TypeIncome)
}

// Spent sums the expenses filed under category.
func Spent(txns []model.Transaction, category string) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txns {
		if t.IsExpense() && t.Category == category {
			total = total.Add(money(t.Amount))
		}
	}
	return total
}

// CategorySpending builds a row for one category.
func CategorySpending(c model.Category, txns []model.Transaction) CategoryRow {
	row := CategoryRow{
		Name:      c.Name,
		Icon:      c.Icon,
		Color:     c.Color,
		Allocated: money(c.Allocated),
		Spent:     decimal.Zero,
		IsCustom:  c.IsCustom,
		Known:     true,
	}
	for _, t := range txns {
		if t.IsExpense() && t.Category == c.Name {
			row.Spent = row.Spent.Add(money(t.Amount))
			row.TransactionCount++
		}
	}
	row.Remaining = row.Allocated.Sub(row.Spent)
	row.OverBudget = row.Spent.GreaterThan(row.Allocated)
	if row.Allocated.IsPositive() {
		row.UsedPercent = row.Spent.Div(row.Allocated).Mul(hundred).InexactFloat64()
	}
	return row
}

// CategoryBreakdown returns a row per category in the given order, followed
// by rows for any category that expenses reference but the list lacks.
func CategoryBreakdown(categories []model.Category, txns []model.Transaction) []CategoryRow {
	rows := make([]CategoryRow, 0, len(categories))
	known := make(map[string]bool, len(categories))
	for _, c := range categories {
		known[c.Name] = true
		rows = append(rows, CategorySpending(c, txns))
	}

	for _, t := range txns {
		if !t.IsExpense() || known[t.Category] {
			continue
		}
		known[t.Category] = true
		row := CategorySpending(model.Category{Name: t.Category}, txns)
		row.Known = false
		rows = append(rows, row)
	}
	return rows
}

// Progress computes how far along a goal is.
func Progress(g model.Goal) GoalProgress {
	p := GoalProgress{
		ID:       g.ID,
		Name:     g.Name,
		Target:   money(g.Target),
		Current:  money(g.Current),
		Complete: g.IsComplete(),
	}
	if p.Target.IsPositive() {
		p.Percentage = p.Current.Div(p.Target).Mul(hundred).InexactFloat64()
	}
	p.DisplayPercentage = p.Percentage
	if p.DisplayPercentage > 100 {
		p.DisplayPercentage = 100
	}
	return p
}

// NetWorth sums the balances of every linked account. Credit accounts carry
// negative balances.
func NetWorth(accounts []model.Account) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		total = total.Add(money(a.Balance))
	}
	return total
}

// CorrectedPredictions counts transactions whose category was overridden by
// the user.
func CorrectedPredictions(txns []model.Transaction) int {
	n := 0
	for _, t := range txns {
		if t.IsEdited {
			n++
		}
	}
	return n
}

// Input is everything Summarize needs.
type Input struct {
	Income       float64
	Categories   []model.Category
	Transactions []model.Transaction
	Goals        []model.Goal
	Accounts     []model.Account
}

// Summarize derives the full overview from in.
func Summarize(in Input) Summary {
	s := Summary{
		Income:               money(in.Income),
		TotalAllocated:       TotalAllocated(in.Categories),
		TotalSpent:           TotalSpent(in.Transactions),
		TotalIncome:          TotalIncome(in.Transactions),
		NetWorth:             NetWorth(in.Accounts),
		Categories:           CategoryBreakdown(in.Categories, in.Transactions),
		TransactionCount:     len(in.Transactions),
		CorrectedPredictions: CorrectedPredictions(in.Transactions),
	}
	s.Unallocated = s.Income.Sub(s.TotalAllocated)
	s.Status = Status(s.Unallocated)

	for _, t := range in.Transactions {
		if t.IsImported {
			s.ImportedCount++
		}
	}

	s.Goals = make([]GoalProgress, 0, len(in.Goals))
	for _, g := range in.Goals {
		s.Goals = append(s.Goals, Progress(g))
	}
	return s
}
