package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus indicates the lifecycle state of a financial transaction.
// DRAFT -> POSTED -> VOIDED. Transactions are never physically deleted.
type TransactionStatus string

const (
	Draft  TransactionStatus = "DRAFT"
	Posted TransactionStatus = "POSTED"
	Voided TransactionStatus = "VOIDED"
)

// TransactionType identifies the business event a transaction records.
type TransactionType string

const (
	TypeJournalEntry        TransactionType = "JOURNAL_ENTRY"
	TypeInvoice             TransactionType = "INVOICE"
	TypeBill                TransactionType = "BILL"
	TypePayment             TransactionType = "PAYMENT"
	TypeDepreciation        TransactionType = "DEPRECIATION"
	TypeDisposal            TransactionType = "DISPOSAL"
	TypeCreditNote          TransactionType = "CREDIT_NOTE"
	TypeDebitNote           TransactionType = "DEBIT_NOTE"
	TypeInventoryAdjustment TransactionType = "INVENTORY_ADJUSTMENT"
)

// IsValid reports whether t is one of the recognized transaction types.
func (t TransactionType) IsValid() bool {
	switch t {
	case TypeJournalEntry, TypeInvoice, TypeBill, TypePayment, TypeDepreciation,
		TypeDisposal, TypeCreditNote, TypeDebitNote, TypeInventoryAdjustment:
		return true
	}
	return false
}

// Transaction is the header of a balanced financial event. Once POSTED it is
// immutable apart from the status transition to VOIDED; corrections always go
// through a reversing transaction.
type Transaction struct {
	TransactionID     string            `json:"transactionID"`     // Primary key (UUID)
	OrganizationID    string            `json:"organizationID"`    // FK -> organizations.organization_id
	TransactionNumber string            `json:"transactionNumber"` // Sequential human-readable number, unique per organization
	TransactionDate   time.Time         `json:"transactionDate"`   // Date the event occurred
	TransactionType   TransactionType   `json:"transactionType"`
	Description       string            `json:"description"`
	Status            TransactionStatus `json:"status"`
	SourceDocumentID  string            `json:"sourceDocumentID"` // Reference to the originating document (invoice, bill, ...), may be empty
	// Reversal linkage. A reversing transaction points back via ReversalOfID;
	// the original points forward via ReversedByID.
	ReversalOfID   *string         `json:"reversalOfID,omitempty"`
	ReversedByID   *string         `json:"reversedByID,omitempty"`
	ReversalReason string          `json:"reversalReason,omitempty"`
	TotalDebits    decimal.Decimal `json:"totalDebits"`  // Sum of debit base amounts
	TotalCredits   decimal.Decimal `json:"totalCredits"` // Sum of credit base amounts
	AuditFields
	Entries []LedgerEntry `json:"entries,omitempty"` // Loaded on demand
}

// IsReversal reports whether this transaction reverses another one.
func (t *Transaction) IsReversal() bool {
	return t.ReversalOfID != nil
}

// IsReversed reports whether this transaction has been reversed.
func (t *Transaction) IsReversed() bool {
	return t.ReversedByID != nil
}
