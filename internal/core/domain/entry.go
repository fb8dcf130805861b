package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType indicates whether a ledger entry is a debit or a credit.
type EntryType string

const (
	Debit  EntryType = "DEBIT"
	Credit EntryType = "CREDIT"
)

// Opposite returns the mirrored entry type, used when building reversals.
func (t EntryType) Opposite() EntryType {
	if t == Debit {
		return Credit
	}
	return Debit
}

// LedgerEntry is one debit or credit line within a transaction. Entries are
// immutable; they are owned by their transaction and share its lifecycle.
type LedgerEntry struct {
	EntryID        string          `json:"entryID"`       // Primary key (UUID)
	TransactionID  string          `json:"transactionID"` // FK -> transactions.transaction_id
	AccountID      string          `json:"accountID"`     // FK -> accounts.account_id
	EntryType      EntryType       `json:"entryType"`
	Amount         decimal.Decimal `json:"amount"`       // Positive, in the entry currency
	CurrencyCode   string          `json:"currencyCode"` // Original currency of the entry
	BaseAmount     decimal.Decimal `json:"baseAmount"`   // Amount converted to the organization base currency
	Description    string          `json:"description"`
	RunningBalance decimal.Decimal `json:"runningBalance"` // Account balance after this entry, base currency
	AuditFields
	// Denormalised transaction context populated on account activity listings.
	TransactionDate        time.Time `json:"transactionDate,omitempty"`
	TransactionNumber      string    `json:"transactionNumber,omitempty"`
	TransactionDescription string    `json:"transactionDescription,omitempty"`
}
