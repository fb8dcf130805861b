package models

import "github.com/shopspring/decimal"

// AccountType mirrors the account_type column values.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account mirrors the accounts table.
type Account struct {
	AccountID      string
	OrganizationID string
	Code           string
	Name           string
	AccountType    AccountType
	CurrencyCode   string
	Description    string
	IsActive       bool
	AuditFields
	Balance decimal.Decimal
}
