package services

import (
	"context"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/finbooks/finbooks_backend/internal/dto"
)

// PostingSvcFacade exposes the double-entry ledger posting operations. It is
// the single entry point every money-moving feature (invoicing, billing,
// payments, depreciation, disposal, revaluation) goes through.
type PostingSvcFacade interface {
	// CreateTransaction validates, balances and persists a transaction with its
	// entries. The result is POSTED unless the request asks for a DRAFT.
	CreateTransaction(ctx context.Context, organizationID string, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error)

	// PostDraftTransaction transitions a DRAFT transaction to POSTED after
	// re-validating the balance invariant.
	PostDraftTransaction(ctx context.Context, organizationID string, transactionID string, userID string) (*domain.Transaction, error)

	// VoidTransaction marks a POSTED transaction VOIDED. Entries are preserved.
	VoidTransaction(ctx context.Context, organizationID string, transactionID string, userID string) error

	// ReverseTransaction creates a new transaction mirroring the original with
	// debit and credit swapped, linked back to the original.
	ReverseTransaction(ctx context.Context, organizationID string, transactionID string, userID string, reason string) (*domain.Transaction, error)

	// GetTransactionByID retrieves a transaction with its entries.
	GetTransactionByID(ctx context.Context, organizationID string, transactionID string, userID string) (*domain.Transaction, error)

	// ListTransactions retrieves a page of the organization's transactions.
	ListTransactions(ctx context.Context, organizationID string, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)

	// ListEntriesByAccount retrieves a page of posted entries for an account.
	ListEntriesByAccount(ctx context.Context, organizationID string, accountID string, userID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}
