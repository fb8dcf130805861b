package repositories

import (
	"context"
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionListFilter narrows and pages ListTransactionsByOrganization results.
type TransactionListFilter struct {
	Limit            int
	NextToken        *string
	IncludeReversals bool
	Status           *domain.TransactionStatus
	Type             *domain.TransactionType
}

// TransactionReader defines read operations for transaction headers and entries.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction header by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindEntriesByTransactionID retrieves all ledger entries of a transaction.
	FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.LedgerEntry, error)

	// ListTransactionsByOrganization retrieves a page of transactions for an
	// organization using token-based pagination. Returns the page and the next token.
	ListTransactionsByOrganization(ctx context.Context, organizationID string, filter TransactionListFilter) ([]domain.Transaction, *string, error)

	// ListEntriesByAccountID retrieves a page of posted ledger entries for an account.
	ListEntriesByAccountID(ctx context.Context, organizationID, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)
}

// TransactionWriter defines write operations for transactions.
type TransactionWriter interface {
	// NextTransactionNumber atomically increments and returns the per-organization
	// sequence for the given year. The counter lives in the store, not in process
	// memory, so concurrent instances never hand out the same value.
	NextTransactionNumber(ctx context.Context, organizationID string, year int) (int64, error)

	// SaveTransaction persists a transaction header and its entries, and applies
	// the given base-currency balance changes to the affected accounts, all
	// within one database transaction. A transaction-number collision is
	// reported as apperrors.ErrPersistenceConflict so the caller can retry
	// with a freshly generated number.
	SaveTransaction(ctx context.Context, txn domain.Transaction, entries []domain.LedgerEntry, balanceChanges map[string]decimal.Decimal) error

	// MarkTransactionPosted transitions a DRAFT transaction to POSTED and
	// applies its balance changes atomically.
	MarkTransactionPosted(ctx context.Context, transactionID string, balanceChanges map[string]decimal.Decimal, updatedByUserID string, updatedAt time.Time) error

	// MarkTransactionVoided transitions a POSTED transaction to VOIDED and
	// backs out its balance impact atomically. Entries are never touched.
	// Refuses transactions that have been reversed.
	MarkTransactionVoided(ctx context.Context, transactionID string, balanceChanges map[string]decimal.Decimal, updatedByUserID string, updatedAt time.Time) error

	// SaveReversalTransaction persists a reversing transaction and records the
	// back-link on the original, all within one database transaction. The
	// original's header row is locked for the duration, so concurrent
	// reversals (or a concurrent void) of the same transaction serialize:
	// exactly one reversal commits, the rest get apperrors.ErrConflict (or
	// ErrCannotReverseVoided) without any balance impact. A number collision
	// is reported as apperrors.ErrPersistenceConflict, same as SaveTransaction.
	SaveReversalTransaction(ctx context.Context, reversing domain.Transaction, entries []domain.LedgerEntry, balanceChanges map[string]decimal.Decimal, originalID string) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}

// TransactionRepositoryWithTx extends the facade with database transaction capabilities.
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
