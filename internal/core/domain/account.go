package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// BalanceSide indicates which side of the ledger increases an account.
type BalanceSide string

const (
	DebitNormal  BalanceSide = "DEBIT"
	CreditNormal BalanceSide = "CREDIT"
)

// NormalBalance returns the side that increases accounts of this type.
// It drives display and balance bookkeeping sign only; the debit==credit
// invariant of a transaction does not depend on it.
func (t AccountType) NormalBalance() BalanceSide {
	switch t {
	case Asset, Expense:
		return DebitNormal
	default:
		return CreditNormal
	}
}

// Account represents one account in an organization's chart of accounts.
type Account struct {
	AccountID      string      `json:"accountID"`      // Primary key (UUID)
	OrganizationID string      `json:"organizationID"` // FK -> organizations.organization_id
	Code           string      `json:"code"`           // Chart-of-accounts code, unique per organization
	Name           string      `json:"name"`
	AccountType    AccountType `json:"accountType"`
	CurrencyCode   string      `json:"currencyCode"` // FK -> currencies.code
	Description    string      `json:"description"`
	IsActive       bool        `json:"isActive"`
	AuditFields
	Balance decimal.Decimal `json:"balance"` // Persisted balance in the organization base currency
}
