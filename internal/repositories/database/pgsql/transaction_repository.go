package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	"github.com/finbooks/finbooks_backend/internal/models"
	"github.com/finbooks/finbooks_backend/internal/utils/accounting"
	"github.com/finbooks/finbooks_backend/internal/utils/mapping"
	"github.com/finbooks/finbooks_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxTransactionRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxTransactionRepository creates a new repository for transaction and ledger entry data.
func newPgxTransactionRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryWithTx
var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

// NextTransactionNumber atomically increments and returns the per-organization
// sequence for the given year. The upsert keeps the counter in the database so
// concurrent instances never hand out the same value.
func (r *PgxTransactionRepository) NextTransactionNumber(ctx context.Context, organizationID string, year int) (int64, error) {
	query := `
		INSERT INTO transaction_sequences (organization_id, year, last_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (organization_id, year)
		DO UPDATE SET last_value = transaction_sequences.last_value + 1
		RETURNING last_value;
	`
	var next int64
	if err := r.Pool.QueryRow(ctx, query, organizationID, year).Scan(&next); err != nil {
		return 0, apperrors.NewAppError(500, "failed to advance transaction sequence for organization "+organizationID, err)
	}
	return next, nil
}

// SaveTransaction saves a transaction header and its entries, and applies the
// given account balance changes, all within a single DB transaction. DRAFT
// transactions carry no balance changes; their running balances stay zero
// until posting.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, entries []domain.LedgerEntry, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	// Ignored if the transaction commits successfully
	defer r.Rollback(ctx, tx)

	if err := r.insertTransactionInTx(ctx, tx, txn, entries, balanceChanges); err != nil {
		return err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction "+txn.TransactionID, err)
	}

	return nil
}

// SaveReversalTransaction persists a reversing transaction and links the
// original, all in one DB transaction. The original's header row is locked
// first, so a concurrent reversal or void of the same transaction serializes
// behind this one and is refused cleanly instead of committing a duplicate
// offset.
func (r *PgxTransactionRepository) SaveReversalTransaction(ctx context.Context, reversing domain.Transaction, entries []domain.LedgerEntry, balanceChanges map[string]decimal.Decimal, originalID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer r.Rollback(ctx, tx)

	var status string
	var reversedByID sql.NullString
	lockQuery := `SELECT status, reversed_by_id FROM transactions WHERE transaction_id = $1 FOR UPDATE;`
	if err := tx.QueryRow(ctx, lockQuery, originalID).Scan(&status, &reversedByID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to lock transaction "+originalID, err)
	}
	switch {
	case reversedByID.Valid:
		return fmt.Errorf("%w: transaction %s is already reversed", apperrors.ErrConflict, originalID)
	case status == string(models.Voided):
		return fmt.Errorf("%w: %s", apperrors.ErrCannotReverseVoided, originalID)
	case status != string(models.Posted):
		return fmt.Errorf("%w: transaction %s is not posted", apperrors.ErrConflict, originalID)
	}

	if err := r.insertTransactionInTx(ctx, tx, reversing, entries, balanceChanges); err != nil {
		return err
	}

	linkQuery := `
		UPDATE transactions
		SET reversed_by_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE transaction_id = $1;
	`
	if _, err := tx.Exec(ctx, linkQuery, originalID, reversing.TransactionID, reversing.CreatedAt, reversing.CreatedBy); err != nil {
		return apperrors.NewAppError(500, "failed to link reversal for "+originalID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit reversal of transaction "+originalID, err)
	}

	return nil
}

// insertTransactionInTx writes a transaction header, applies the account
// balance changes and inserts the ledger entries inside an open DB transaction.
func (r *PgxTransactionRepository) insertTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction, entries []domain.LedgerEntry, balanceChanges map[string]decimal.Decimal) error {
	accountRepo := r.accountRepo

	now := txn.CreatedAt
	userID := txn.CreatedBy

	// 1. Insert the transaction header
	modelTxn := mapping.ToModelTransaction(txn)
	headerQuery := `
		INSERT INTO transactions (
			transaction_id, organization_id, transaction_number, transaction_date,
			transaction_type, description, status, source_document_id,
			reversal_of_id, reversed_by_id, reversal_reason,
			total_debits, total_credits,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := tx.Exec(ctx, headerQuery,
		modelTxn.TransactionID,
		modelTxn.OrganizationID,
		modelTxn.TransactionNumber,
		modelTxn.TransactionDate,
		modelTxn.TransactionType,
		modelTxn.Description,
		modelTxn.Status,
		modelTxn.SourceDocumentID,
		modelTxn.ReversalOfID,
		modelTxn.ReversedByID,
		modelTxn.ReversalReason,
		modelTxn.TotalDebits,
		modelTxn.TotalCredits,
		modelTxn.CreatedAt,
		modelTxn.CreatedBy,
		modelTxn.LastUpdatedAt,
		modelTxn.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// Unique violation on (organization_id, transaction_number):
			// another poster claimed the same number first. The service
			// retries with a freshly generated number.
			return fmt.Errorf("%w: transaction number %s already taken", apperrors.ErrPersistenceConflict, modelTxn.TransactionNumber)
		}
		return apperrors.NewAppError(500, "failed to insert transaction "+modelTxn.TransactionID, err)
	}

	// 2. Lock accounts and get current balances
	accountIDs := make([]string, 0, len(balanceChanges))
	for accID := range balanceChanges {
		accountIDs = append(accountIDs, accID)
	}

	lockedAccounts, err := accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return apperrors.NewAppError(500, "failed to lock accounts for update", err)
	}

	// 3. Apply balance deltas
	if err := accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, userID, now); err != nil {
		return apperrors.NewAppError(500, "failed to update account balances", err)
	}

	// 4. Insert ledger entries with running balances computed against the
	// locked pre-update balances
	currentRunningBalances := make(map[string]decimal.Decimal)
	for accID, lockedAcc := range lockedAccounts {
		currentRunningBalances[accID] = lockedAcc.Balance
	}

	// Sort a copy by EntryID for deterministic running balance order; the
	// caller's slice keeps its request order.
	sorted := make([]domain.LedgerEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].EntryID < sorted[j].EntryID
	})

	batch := &pgx.Batch{}
	entryQuery := `
		INSERT INTO ledger_entries (entry_id, transaction_id, account_id, entry_type, amount, currency_code, base_amount, description, running_balance, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	for _, entry := range sorted {
		modelEntry := mapping.ToModelEntry(entry)
		modelEntry.CreatedAt = now
		modelEntry.LastUpdatedAt = now
		modelEntry.CreatedBy = userID
		modelEntry.LastUpdatedBy = userID

		if lockedAcc, ok := lockedAccounts[entry.AccountID]; ok {
			signedAmount, err := accounting.SignedBaseAmount(entry, lockedAcc.AccountType)
			if err != nil {
				return apperrors.NewAppError(500, "failed to calculate signed amount for entry "+entry.EntryID, err)
			}
			newRunningBalance := currentRunningBalances[entry.AccountID].Add(signedAmount)
			modelEntry.RunningBalance = newRunningBalance
			currentRunningBalances[entry.AccountID] = newRunningBalance
		}

		batch.Queue(entryQuery,
			modelEntry.EntryID,
			modelEntry.TransactionID,
			modelEntry.AccountID,
			modelEntry.EntryType,
			modelEntry.Amount,
			modelEntry.CurrencyCode,
			modelEntry.BaseAmount,
			modelEntry.Description,
			modelEntry.RunningBalance,
			modelEntry.CreatedAt,
			modelEntry.CreatedBy,
			modelEntry.LastUpdatedAt,
			modelEntry.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute entry batch for transaction "+modelTxn.TransactionID, err)
	}

	return nil
}

// MarkTransactionPosted transitions a DRAFT transaction to POSTED, applies its
// balance changes and backfills the entry running balances atomically.
func (r *PgxTransactionRepository) MarkTransactionPosted(ctx context.Context, transactionID string, balanceChanges map[string]decimal.Decimal, updatedByUserID string, updatedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer r.Rollback(ctx, tx)

	statusQuery := `
		UPDATE transactions
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE transaction_id = $1 AND status = $5;
	`
	cmdTag, err := tx.Exec(ctx, statusQuery, transactionID, models.Posted, updatedAt, updatedByUserID, models.Draft)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status for transaction "+transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Either the transaction doesn't exist or it already left DRAFT.
		if _, findErr := r.FindTransactionByID(ctx, transactionID); errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("%w: transaction %s is not a draft", apperrors.ErrConflict, transactionID)
	}

	accountIDs := make([]string, 0, len(balanceChanges))
	for accID := range balanceChanges {
		accountIDs = append(accountIDs, accID)
	}

	lockedAccounts, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return apperrors.NewAppError(500, "failed to lock accounts for update", err)
	}

	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, updatedByUserID, updatedAt); err != nil {
		return apperrors.NewAppError(500, "failed to update account balances", err)
	}

	// Backfill running balances, which were left at zero while the
	// transaction sat in DRAFT.
	entries, err := r.findEntriesInTx(ctx, tx, transactionID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to load entries for transaction "+transactionID, err)
	}

	currentRunningBalances := make(map[string]decimal.Decimal)
	for accID, lockedAcc := range lockedAccounts {
		currentRunningBalances[accID] = lockedAcc.Balance
	}

	batch := &pgx.Batch{}
	rbQuery := `
		UPDATE ledger_entries
		SET running_balance = $2, last_updated_at = $3, last_updated_by = $4
		WHERE entry_id = $1;
	`
	for _, entry := range entries {
		lockedAcc, ok := lockedAccounts[entry.AccountID]
		if !ok {
			return apperrors.NewAppError(500, "internal error: locked account "+entry.AccountID+" not found during posting", nil)
		}
		signedAmount, err := accounting.SignedBaseAmount(entry, lockedAcc.AccountType)
		if err != nil {
			return apperrors.NewAppError(500, "failed to calculate signed amount for entry "+entry.EntryID, err)
		}
		newRunningBalance := currentRunningBalances[entry.AccountID].Add(signedAmount)
		currentRunningBalances[entry.AccountID] = newRunningBalance
		batch.Queue(rbQuery, entry.EntryID, newRunningBalance, updatedAt, updatedByUserID)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to backfill running balances for transaction "+transactionID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit posting of transaction "+transactionID, err)
	}

	return nil
}

// MarkTransactionVoided transitions a POSTED transaction to VOIDED and applies
// the (negated) balance changes atomically. Entries stay untouched for the
// audit trail.
func (r *PgxTransactionRepository) MarkTransactionVoided(ctx context.Context, transactionID string, balanceChanges map[string]decimal.Decimal, updatedByUserID string, updatedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer r.Rollback(ctx, tx)

	// The reversed_by_id guard closes the race against a concurrent reversal:
	// once a reversal has claimed the transaction, voiding is refused even if
	// the service-level check read stale state.
	statusQuery := `
		UPDATE transactions
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE transaction_id = $1 AND status = $5 AND reversed_by_id IS NULL;
	`
	cmdTag, err := tx.Exec(ctx, statusQuery, transactionID, models.Voided, updatedAt, updatedByUserID, models.Posted)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status for transaction "+transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		existing, findErr := r.FindTransactionByID(ctx, transactionID)
		if errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		if findErr == nil && existing.IsReversed() {
			return fmt.Errorf("%w: transaction %s has been reversed", apperrors.ErrConflict, transactionID)
		}
		return fmt.Errorf("%w: transaction %s is not posted", apperrors.ErrConflict, transactionID)
	}

	accountIDs := make([]string, 0, len(balanceChanges))
	for accID := range balanceChanges {
		accountIDs = append(accountIDs, accID)
	}

	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
		return apperrors.NewAppError(500, "failed to lock accounts for update", err)
	}

	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, updatedByUserID, updatedAt); err != nil {
		return apperrors.NewAppError(500, "failed to back out account balances", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit voiding of transaction "+transactionID, err)
	}

	return nil
}

const transactionColumns = `transaction_id, organization_id, transaction_number, transaction_date,
		       transaction_type, description, status, source_document_id,
		       reversal_of_id, reversed_by_id, reversal_reason,
		       total_debits, total_credits,
		       created_at, created_by, last_updated_at, last_updated_by`

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	var reversalOfID sql.NullString
	var reversedByID sql.NullString

	err := row.Scan(
		&m.TransactionID,
		&m.OrganizationID,
		&m.TransactionNumber,
		&m.TransactionDate,
		&m.TransactionType,
		&m.Description,
		&m.Status,
		&m.SourceDocumentID,
		&reversalOfID,
		&reversedByID,
		&m.ReversalReason,
		&m.TotalDebits,
		&m.TotalCredits,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return m, err
	}

	if reversalOfID.Valid {
		m.ReversalOfID = &reversalOfID.String
	}
	if reversedByID.Valid {
		m.ReversedByID = &reversedByID.String
	}
	return m, nil
}

// FindTransactionByID retrieves a transaction header by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	modelTxn, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction by ID "+transactionID, err)
	}

	domainTxn := mapping.ToDomainTransaction(modelTxn)
	return &domainTxn, nil
}

const entryColumns = `entry_id, transaction_id, account_id, entry_type, amount, currency_code, base_amount, description, running_balance, created_at, created_by, last_updated_at, last_updated_by`

func scanEntry(row pgx.Row) (models.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.EntryID,
		&m.TransactionID,
		&m.AccountID,
		&m.EntryType,
		&m.Amount,
		&m.CurrencyCode,
		&m.BaseAmount,
		&m.Description,
		&m.RunningBalance,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindEntriesByTransactionID retrieves all ledger entries of a transaction.
func (r *PgxTransactionRepository) FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM ledger_entries
		WHERE transaction_id = $1
		ORDER BY entry_id;
	`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries for transaction "+transactionID, err)
	}
	defer rows.Close()

	entries := []models.LedgerEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry row for transaction "+transactionID, err)
		}
		entries = append(entries, m)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entry rows for transaction "+transactionID, err)
	}

	return mapping.ToDomainEntrySlice(entries), nil
}

// findEntriesInTx loads a transaction's entries inside an open DB transaction.
func (r *PgxTransactionRepository) findEntriesInTx(ctx context.Context, tx pgx.Tx, transactionID string) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM ledger_entries
		WHERE transaction_id = $1
		ORDER BY entry_id;
	`
	rows, err := tx.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries for transaction %s: %w", transactionID, err)
	}
	defer rows.Close()

	entries := []models.LedgerEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry row for transaction %s: %w", transactionID, err)
		}
		entries = append(entries, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry rows for transaction %s: %w", transactionID, err)
	}

	return mapping.ToDomainEntrySlice(entries), nil
}

// ListTransactionsByOrganization retrieves a paginated list of transactions for
// an organization using token-based pagination, optionally narrowed by status
// and transaction type.
func (r *PgxTransactionRepository) ListTransactionsByOrganization(ctx context.Context, organizationID string, filter portsrepo.TransactionListFilter) ([]domain.Transaction, *string, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + transactionColumns + `
		FROM transactions
	`
	args := []interface{}{organizationID}
	filterClause := `WHERE organization_id = $1`
	if !filter.IncludeReversals {
		filterClause += ` AND reversal_of_id IS NULL AND reversed_by_id IS NULL`
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		filterClause += ` AND status = $` + strconv.Itoa(len(args))
	}
	if filter.Type != nil {
		args = append(args, string(*filter.Type))
		filterClause += ` AND transaction_type = $` + strconv.Itoa(len(args))
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*filter.NextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		// Tuple comparison is concise and efficient in Postgres
		args = append(args, lastDate, lastCreatedAt)
		filterClause += ` AND (transaction_date, created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	// Ordering must be stable: transaction_date DESC with created_at DESC as tie-breaker.
	orderByClause := `ORDER BY transaction_date DESC, created_at DESC`

	args = append(args, fetchLimit)
	query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)) + ";"
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions for organization "+organizationID, err)
	}
	defer rows.Close()

	modelTxns := make([]models.Transaction, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanTransaction(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transaction row for organization "+organizationID, scanErr)
		}
		modelTxns = append(modelTxns, m)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating transaction rows for organization "+organizationID, err)
	}

	var nextTokenVal *string
	results := modelTxns
	if len(modelTxns) > limit {
		// The token points to the last item included in this page; the next
		// query starts after it.
		lastTxn := modelTxns[limit-1]
		newToken := pagination.EncodeToken(lastTxn.TransactionDate, lastTxn.CreatedAt)
		nextTokenVal = &newToken
		results = modelTxns[:limit]
	}

	domainTxns := make([]domain.Transaction, len(results))
	for i, m := range results {
		domainTxns[i] = mapping.ToDomainTransaction(m)
	}

	return domainTxns, nextTokenVal, nil
}

// ListEntriesByAccountID retrieves a paginated list of posted ledger entries
// for an account using token-based pagination.
func (r *PgxTransactionRepository) ListEntriesByAccountID(ctx context.Context, organizationID, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT e.entry_id, e.transaction_id, e.account_id, e.entry_type, e.amount, e.currency_code, e.base_amount, e.description, e.running_balance,
		       e.created_at, e.created_by, e.last_updated_at, e.last_updated_by,
		       t.transaction_date, t.transaction_number, t.description
		FROM ledger_entries e
		JOIN transactions t ON e.transaction_id = t.transaction_id
		WHERE e.account_id = $1 AND t.organization_id = $2 AND t.status = 'POSTED'
	`
	orderByClause := `ORDER BY t.transaction_date DESC, e.created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{accountID, organizationID}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `AND (t.transaction_date, e.created_at) < ($3, $4)`
		args = append(args, lastDate, lastCreatedAt)

		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query entries for account "+accountID, err)
	}
	defer rows.Close()

	modelEntries := make([]models.LedgerEntry, 0, fetchLimit)
	for rows.Next() {
		var m models.LedgerEntry
		scanErr := rows.Scan(
			&m.EntryID,
			&m.TransactionID,
			&m.AccountID,
			&m.EntryType,
			&m.Amount,
			&m.CurrencyCode,
			&m.BaseAmount,
			&m.Description,
			&m.RunningBalance,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
			&m.TransactionDate,
			&m.TransactionNumber,
			&m.TransactionDescription,
		)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan entry row for account "+accountID, scanErr)
		}
		modelEntries = append(modelEntries, m)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating entry rows for account "+accountID, err)
	}

	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		lastEntry := modelEntries[limit-1]
		newToken := pagination.EncodeToken(lastEntry.TransactionDate, lastEntry.CreatedAt)
		nextTokenVal = &newToken
		results = modelEntries[:limit]
	}

	return mapping.ToDomainEntrySlice(results), nextTokenVal, nil
}
