package model

// Account is a linked bank account as reported by a bank source.
type Account struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Subtype     string  `json:"subtype"`
	Institution string  `json:"institution"`
	Color       string  `json:"color,omitempty"`
	Balance     float64 `json:"balance"`
}

// BankTransaction is a raw transaction from a bank source.
// Amount is signed: negative values are money out.
type BankTransaction struct {
	ID          string  `json:"id"`
	AccountID   string  `json:"account_id"`
	Description string  `json:"description"`
	Date        string  `json:"date"` // YYYY-MM-DD
	Amount      float64 `json:"amount"`
}
