package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus indicates the lifecycle state of a transaction row.
type TransactionStatus string

const (
	Draft  TransactionStatus = "DRAFT"
	Posted TransactionStatus = "POSTED"
	Voided TransactionStatus = "VOIDED"
)

// Transaction mirrors the transactions table.
type Transaction struct {
	TransactionID     string
	OrganizationID    string
	TransactionNumber string
	TransactionDate   time.Time
	TransactionType   string
	Description       string
	Status            TransactionStatus
	SourceDocumentID  string
	ReversalOfID      *string
	ReversedByID      *string
	ReversalReason    string
	TotalDebits       decimal.Decimal
	TotalCredits      decimal.Decimal
	AuditFields
}
