package domain

import "time"

// EventKind names the domain events emitted by the posting service.
type EventKind string

const (
	EventTransactionPosted   EventKind = "transaction.posted"
	EventTransactionVoided   EventKind = "transaction.voided"
	EventTransactionReversed EventKind = "transaction.reversed"
)

// Event is a notification about a ledger state change, handed to external
// consumers (webhooks etc.) after the change has been committed.
type Event struct {
	EventID           string    `json:"eventID"` // ULID, sortable by emission time
	Kind              EventKind `json:"kind"`
	OrganizationID    string    `json:"organizationID"`
	TransactionID     string    `json:"transactionID"`
	TransactionNumber string    `json:"transactionNumber"`
	OccurredAt        time.Time `json:"occurredAt"`
}
