package bank

import (
	"strings"
	"testing"

	"github.com/aclindsa/ofxgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBankOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-25.50
<FITID>2024011501
<NAME>STARBUCKS STORE #1234
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240120120000[0:GMT]
<TRNAMT>1800.00
<FITID>2024012001
<NAME>PAYROLL DEPOSIT
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240125120000[0:GMT]
<TRNAMT>-60.00
<FITID>2024012501
<NAME>POS PURCHASE SHELL OIL
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

const sampleCreditCardOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<CREDITCARDMSGSRSV1>
<CCSTMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<CCSTMTRS>
<CURDEF>USD
<CCACCTFROM>
<ACCTID>4111111111111111
</CCACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240110120000[0:GMT]
<TRNAMT>-45.99
<FITID>CC2024011001
<NAME>AMAZON.COM*RT4Y7HG2
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-15.00
<FITID>CC2024011501
<NAME>NETFLIX.COM
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>-500.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</CCSTMTRS>
</CCSTMTTRNRS>
</CREDITCARDMSGSRSV1>
</OFX>`

func TestParseOFXBank(t *testing.T) {
	stmt, err := ParseOFX(strings.NewReader(sampleBankOFX))
	require.NoError(t, err)

	require.Len(t, stmt.Accounts, 1)
	acct := stmt.Accounts[0]
	assert.Equal(t, "1234567890", acct.ID)
	assert.Equal(t, "depository", acct.Type)
	assert.Equal(t, "checking", acct.Subtype)
	assert.Equal(t, "Checking ••7890", acct.Name)
	assert.InDelta(t, 1000.0, acct.Balance, 1e-9)
	assert.NotEmpty(t, acct.Color)

	require.Len(t, stmt.Transactions, 3)
	first := stmt.Transactions[0]
	assert.Equal(t, "2024011501", first.ID)
	assert.Equal(t, "1234567890", first.AccountID)
	assert.Equal(t, "STARBUCKS STORE #1234", first.Description)
	assert.InDelta(t, -25.50, first.Amount, 1e-9)
	assert.Equal(t, "2024-01-15", first.Date)

	assert.InDelta(t, 1800.0, stmt.Transactions[1].Amount, 1e-9)
	assert.Equal(t, "SHELL OIL", stmt.Transactions[2].Description)
}

func TestParseOFXCreditCard(t *testing.T) {
	stmt, err := ParseOFX(strings.NewReader(sampleCreditCardOFX))
	require.NoError(t, err)

	require.Len(t, stmt.Accounts, 1)
	assert.Equal(t, "credit", stmt.Accounts[0].Type)
	assert.InDelta(t, -500.0, stmt.Accounts[0].Balance, 1e-9)
	assert.Equal(t, "Credit card ••1111", stmt.Accounts[0].Name)

	require.Len(t, stmt.Transactions, 2)
	assert.Equal(t, "NETFLIX.COM", stmt.Transactions[1].Description)
	assert.InDelta(t, -15.0, stmt.Transactions[1].Amount, 1e-9)
}

func TestParseOFXInvalid(t *testing.T) {
	for _, input := range []string{"", "not valid OFX"} {
		_, err := ParseOFX(strings.NewReader(input))
		assert.Error(t, err)
	}
}

func TestExtractMerchantName(t *testing.T) {
	tests := []struct {
		name     string
		tx       ofxgo.Transaction
		expected string
	}{
		{"remove POS prefix", ofxgo.Transaction{Name: "POS PURCHASE STARBUCKS"}, "STARBUCKS"},
		{"remove DEBIT CARD prefix", ofxgo.Transaction{Name: "DEBIT CARD PURCHASE WHOLE FOODS"}, "WHOLE FOODS"},
		{"keep clean name", ofxgo.Transaction{Name: "NETFLIX.COM"}, "NETFLIX.COM"},
		{"trim whitespace", ofxgo.Transaction{Name: "  AMAZON.COM  "}, "AMAZON.COM"},
		{"strip leading date", ofxgo.Transaction{Name: "01/15 UBER TRIP"}, "UBER TRIP"},
		{"generic name uses memo", ofxgo.Transaction{Name: "DEBIT", Memo: "SPOTIFY USA"}, "SPOTIFY USA"},
		{"payee wins", ofxgo.Transaction{Name: "X", Payee: &ofxgo.Payee{Name: "Verizon"}}, "Verizon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractMerchantName(tt.tx))
		})
	}
}

func TestPreprocessOFX(t *testing.T) {
	in := "\n\n  <SEVERITY>Info</SEVERITY>\n<CODE\n"
	out := preprocessOFX(in)
	assert.True(t, strings.HasPrefix(out, "<SEVERITY>INFO</SEVERITY>"))
	assert.Contains(t, out, "<CODE>")
}
