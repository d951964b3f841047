package bank

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"

	"github.com/Veraticus/smart-budget/internal/categories"
	"github.com/Veraticus/smart-budget/internal/model"
)

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	tagFixRegex   = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// Statement is everything read from one OFX download.
type Statement struct {
	Accounts     []model.Account
	Transactions []model.BankTransaction
}

// OFXSource reads accounts and transactions from an OFX/QFX download.
type OFXSource struct {
	path string
}

// NewOFXSource creates a source backed by the file at path.
func NewOFXSource(path string) *OFXSource {
	return &OFXSource{path: path}
}

// Name implements Source.
func (o *OFXSource) Name() string {
	return "ofx"
}

// Accounts implements Source.
func (o *OFXSource) Accounts(ctx context.Context) ([]model.Account, error) {
	stmt, err := o.load(ctx)
	if err != nil {
		return nil, err
	}
	return stmt.Accounts, nil
}

// Transactions implements Source.
func (o *OFXSource) Transactions(ctx context.Context) ([]model.BankTransaction, error) {
	stmt, err := o.load(ctx)
	if err != nil {
		return nil, err
	}
	return stmt.Transactions, nil
}

func (o *OFXSource) load(ctx context.Context) (Statement, error) {
	if err := ctx.Err(); err != nil {
		return Statement{}, err
	}
	f, err := os.Open(o.path)
	if err != nil {
		return Statement{}, fmt.Errorf("failed to open OFX file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ParseOFX(f)
}

// preprocessOFX fixes common formatting issues in OFX files.
func preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// SEVERITY must be upper case
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// Some SGML exports drop the closing bracket on bare tags
	return tagFixRegex.ReplaceAllString(content, "$1>")
}

// ParseOFX reads bank and credit card statements. OFX amounts are already
// negative for money out. The ledger balance becomes the account balance.
func ParseOFX(r io.Reader) (Statement, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return Statement{}, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(preprocessOFX(string(content))))
	if err != nil {
		return Statement{}, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	institution := string(resp.Signon.Org)
	if institution == "" {
		institution = "OFX import"
	}

	var out Statement

	for _, msg := range resp.Bank {
		stmt, ok := msg.(*ofxgo.StatementResponse)
		if !ok {
			continue
		}
		acctID := string(stmt.BankAcctFrom.AcctID)
		subtype := strings.ToLower(stmt.BankAcctFrom.AcctType.String())
		balance, _ := stmt.BalAmt.Float64()
		name := accountName(subtype, acctID)
		out.Accounts = append(out.Accounts, model.Account{
			ID:          acctID,
			Name:        name,
			Type:        "depository",
			Subtype:     subtype,
			Institution: institution,
			Color:       categories.ColorFor(name),
			Balance:     balance,
		})
		if stmt.BankTranList != nil {
			out.Transactions = append(out.Transactions, convertAll(stmt.BankTranList.Transactions, acctID)...)
		}
	}

	for _, msg := range resp.CreditCard {
		stmt, ok := msg.(*ofxgo.CCStatementResponse)
		if !ok {
			continue
		}
		acctID := string(stmt.CCAcctFrom.AcctID)
		balance, _ := stmt.BalAmt.Float64()
		name := accountName("credit card", acctID)
		out.Accounts = append(out.Accounts, model.Account{
			ID:          acctID,
			Name:        name,
			Type:        "credit",
			Subtype:     "credit card",
			Institution: institution,
			Color:       categories.ColorFor(name),
			Balance:     balance,
		})
		if stmt.BankTranList != nil {
			out.Transactions = append(out.Transactions, convertAll(stmt.BankTranList.Transactions, acctID)...)
		}
	}

	slog.Info("Parsed OFX file",
		"accounts", len(out.Accounts),
		"transactions", len(out.Transactions))

	return out, nil
}

func accountName(kind, acctID string) string {
	suffix := acctID
	if len(suffix) > 4 {
		suffix = suffix[len(suffix)-4:]
	}
	if kind == "" {
		kind = "account"
	}
	return strings.ToUpper(kind[:1]) + kind[1:] + " ••" + suffix
}

func convertAll(txns []ofxgo.Transaction, accountID string) []model.BankTransaction {
	out := make([]model.BankTransaction, 0, len(txns))
	for _, t := range txns {
		amount, _ := t.TrnAmt.Float64()
		out = append(out, model.BankTransaction{
			ID:          string(t.FiTID),
			AccountID:   accountID,
			Description: extractMerchantName(t),
			Date:        t.DtPosted.Format("2006-01-02"),
			Amount:      amount,
		})
	}
	return out
}

// extractMerchantName tries to get a clean merchant name from OFX data.
func extractMerchantName(tx ofxgo.Transaction) string {
	// PAYEE is usually the cleanest name
	if tx.Payee != nil && tx.Payee.Name != "" {
		return string(tx.Payee.Name)
	}

	name := string(tx.Name)
	if tx.Memo != "" && isGenericDescription(name) {
		name = string(tx.Memo)
	}
	name = strings.TrimSpace(name)

	prefixes := []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"CHECK CARD ",
		"VISA PURCHASE ",
		"MC PURCHASE ",
		"DEBIT PURCHASE ",
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Leading "MM/DD " left over from card processors
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

func isGenericDescription(name string) bool {
	switch strings.ToUpper(name) {
	case "DEBIT", "CREDIT", "PURCHASE", "PAYMENT", "POS TRANSACTION", "CARD PURCHASE":
		return true
	}
	return false
}

var _ Source = (*OFXSource)(nil)
