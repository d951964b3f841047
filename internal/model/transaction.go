package model

// TransactionType distinguishes money leaving from money arriving.
type TransactionType string

const (
	// TypeExpense is money spent.
	TypeExpense TransactionType = "expense"
	// TypeIncome is money received.
	TypeIncome TransactionType = "income"
)

// Transaction represents a single budget entry, entered by hand or imported from a bank.
type Transaction struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Date        string          `json:"date"`                // Display date, M/D/YYYY
	AccountID   string          `json:"accountId,omitempty"` // Set for imported transactions only
	Amount      float64         `json:"amount"`              // Always a non-negative magnitude
	IsImported  bool            `json:"isImported"`
	IsEdited    bool            `json:"isEdited"`
}

// IsExpense reports whether the transaction counts toward spending.
func (t Transaction) IsExpense() bool {
	return t.Type == TypeExpense
}

// IsIncome reports whether the transaction counts toward received income.
func (t Transaction) IsIncome() bool {
	return t.Type == TypeIncome
}

// ParseTransactionType maps free-form input to a transaction type.
// Anything other than "income" is treated as an expense.
func ParseTransactionType(s string) TransactionType {
	if TransactionType(s) == TypeIncome {
		return TypeIncome
	}
	return TypeExpense
}
