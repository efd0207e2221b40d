package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Financial transaction types. Debit increases what the counterparty owes the
// business; credit decreases it.
const (
	TransactionTypeDebit  = "debit"
	TransactionTypeCredit = "credit"
)

// Source document types for financial transactions.
const (
	TransactionSourceInvoice = "invoice"
	TransactionSourceManual  = "manual"
)

// Transaction is a financial ledger entry against an Account, optionally tied
// to a bank/cash account that receives the money side of the entry.
type Transaction struct {
	ID            string
	AccountID     string
	BankAccountID string // optional bank or cash account
	Type          string
	Amount        decimal.Decimal // always positive; Type carries the sign
	Date          time.Time
	Description   string
	SourceType    string
	SourceID      string
	CreatedBy     string
	CreatedAt     time.Time
}

// BalanceDelta returns the signed amount this transaction applies to its
// account balance.
func (t *Transaction) BalanceDelta() decimal.Decimal {
	if t.Type == TransactionTypeCredit {
		return t.Amount.Neg()
	}
	return t.Amount
}
