package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType indicates whether an entry row is a debit or a credit.
type EntryType string

const (
	Debit  EntryType = "DEBIT"
	Credit EntryType = "CREDIT"
)

// LedgerEntry mirrors the ledger_entries table.
type LedgerEntry struct {
	EntryID        string
	TransactionID  string
	AccountID      string
	EntryType      EntryType
	Amount         decimal.Decimal
	CurrencyCode   string
	BaseAmount     decimal.Decimal
	Description    string
	RunningBalance decimal.Decimal
	AuditFields
	// Joined transaction context for account activity listings.
	TransactionDate        time.Time
	TransactionNumber      string
	TransactionDescription string
}
