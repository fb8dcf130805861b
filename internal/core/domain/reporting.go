package domain

import "github.com/shopspring/decimal"

// TrialBalanceRow aggregates posted debit and credit totals for one account.
// Across all rows of an organization the two total columns must agree, since
// every posted transaction balances individually.
type TrialBalanceRow struct {
	AccountID    string          `json:"accountID"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	AccountType  AccountType     `json:"accountType"`
	TotalDebits  decimal.Decimal `json:"totalDebits"`  // Base currency
	TotalCredits decimal.Decimal `json:"totalCredits"` // Base currency
}
