package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account types. Customers and suppliers are the counterparties of invoices;
// bank and cash accounts receive the money side of transactions.
const (
	AccountTypeCustomer = "customer"
	AccountTypeSupplier = "supplier"
	AccountTypeExpense  = "expense"
	AccountTypeIncome   = "income"
	AccountTypeBank     = "bank"
	AccountTypeCash     = "cash"
)

// Account is a party ledger. CurrentBalance must always equal OpeningBalance
// plus the signed sum of all posted transactions referencing the account
// (as counterparty or as bank). Sign convention: for a customer a positive
// balance means the customer owes the business; for a supplier a negative
// balance means the business owes the supplier.
type Account struct {
	ID             string
	Type           string
	Name           string
	NormalizedName string // Arabic-normalized form of Name, used for search
	Phone          string
	Address        string
	Notes          string
	OpeningBalance decimal.Decimal
	CurrentBalance decimal.Decimal
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsValidAccountType reports whether t is a known account type.
func IsValidAccountType(t string) bool {
	switch t {
	case AccountTypeCustomer, AccountTypeSupplier, AccountTypeExpense,
		AccountTypeIncome, AccountTypeBank, AccountTypeCash:
		return true
	}
	return false
}
