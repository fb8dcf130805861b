package dto

import (
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryRequest is one proposed ledger entry line.
type CreateEntryRequest struct {
	AccountID    string           `json:"accountID" binding:"required"`
	EntryType    domain.EntryType `json:"entryType" binding:"required,oneof=DEBIT CREDIT"`
	Amount       decimal.Decimal  `json:"amount" binding:"required"`
	CurrencyCode string           `json:"currencyCode" binding:"omitempty,len=3"` // Defaults to the organization base currency
	Description  string           `json:"description"`
}

// CreateTransactionRequest defines the data needed to create a transaction.
type CreateTransactionRequest struct {
	TransactionDate  time.Time              `json:"transactionDate" binding:"required"`
	TransactionType  domain.TransactionType `json:"transactionType" binding:"required,txntype"`
	Description      string                 `json:"description" binding:"required"`
	SourceDocumentID string                 `json:"sourceDocumentID"`
	AsDraft          bool                   `json:"asDraft"` // When true the transaction is saved un-posted
	Entries          []CreateEntryRequest   `json:"entries" binding:"required,min=1,dive"`
}

// ReverseTransactionRequest carries the reason for a reversal.
type ReverseTransactionRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// EntryResponse defines the data returned for a ledger entry.
type EntryResponse struct {
	EntryID        string          `json:"entryID"`
	TransactionID  string          `json:"transactionID"`
	AccountID      string          `json:"accountID"`
	EntryType      string          `json:"entryType"`
	Amount         decimal.Decimal `json:"amount"`
	CurrencyCode   string          `json:"currencyCode"`
	BaseAmount     decimal.Decimal `json:"baseAmount"`
	Description    string          `json:"description"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID     string          `json:"transactionID"`
	TransactionNumber string          `json:"transactionNumber"`
	TransactionDate   time.Time       `json:"transactionDate"`
	TransactionType   string          `json:"transactionType"`
	Description       string          `json:"description"`
	Status            string          `json:"status"`
	SourceDocumentID  string          `json:"sourceDocumentID,omitempty"`
	ReversalOfID      *string         `json:"reversalOfID,omitempty"`
	ReversedByID      *string         `json:"reversedByID,omitempty"`
	ReversalReason    string          `json:"reversalReason,omitempty"`
	TotalDebits       decimal.Decimal `json:"totalDebits"`
	TotalCredits      decimal.Decimal `json:"totalCredits"`
	CreatedAt         time.Time       `json:"createdAt"`
	CreatedBy         string          `json:"createdBy"`
	Entries           []EntryResponse `json:"entries,omitempty"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit            int     `form:"limit,default=20"`
	NextToken        *string `form:"nextToken"`
	IncludeReversals bool    `form:"includeReversals,default=false"`
	IncludeEntries   bool    `form:"includeEntries,default=false"`
	Status           *string `form:"status" binding:"omitempty,oneof=DRAFT POSTED VOIDED"`
	TransactionType  *string `form:"type" binding:"omitempty,txntype"`
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ListEntriesParams defines query parameters for listing account entries.
type ListEntriesParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListEntriesResponse wraps a page of ledger entries for an account.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToEntryResponse converts a domain.LedgerEntry to its response DTO.
func ToEntryResponse(e *domain.LedgerEntry) EntryResponse {
	return EntryResponse{
		EntryID:        e.EntryID,
		TransactionID:  e.TransactionID,
		AccountID:      e.AccountID,
		EntryType:      string(e.EntryType),
		Amount:         e.Amount,
		CurrencyCode:   e.CurrencyCode,
		BaseAmount:     e.BaseAmount,
		Description:    e.Description,
		RunningBalance: e.RunningBalance,
	}
}

// ToEntryResponses converts a slice of domain entries to response DTOs.
func ToEntryResponses(entries []domain.LedgerEntry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToEntryResponse(&entries[i])
	}
	return responses
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		TransactionID:     t.TransactionID,
		TransactionNumber: t.TransactionNumber,
		TransactionDate:   t.TransactionDate,
		TransactionType:   string(t.TransactionType),
		Description:       t.Description,
		Status:            string(t.Status),
		SourceDocumentID:  t.SourceDocumentID,
		ReversalOfID:      t.ReversalOfID,
		ReversedByID:      t.ReversedByID,
		ReversalReason:    t.ReversalReason,
		TotalDebits:       t.TotalDebits,
		TotalCredits:      t.TotalCredits,
		CreatedAt:         t.CreatedAt,
		CreatedBy:         t.CreatedBy,
	}
	if len(t.Entries) > 0 {
		resp.Entries = ToEntryResponses(t.Entries)
	}
	return resp
}
