package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/finbooks/finbooks_backend/internal/events"
	"github.com/finbooks/finbooks_backend/internal/middleware"
	"github.com/finbooks/finbooks_backend/internal/utils/accounting"
	"github.com/finbooks/finbooks_backend/internal/utils/ids"
	"github.com/finbooks/finbooks_backend/internal/utils/numbering"
	"github.com/shopspring/decimal"
)

var (
	ErrMinEntries         = errors.New("transaction must have at least two ledger entries")
	ErrMinAccounts        = errors.New("transaction must affect at least two different accounts")
	ErrDescriptionMissing = errors.New("transaction description is required")
	ErrAccountNotFound    = errors.New("account not found")
	ErrNotDraft           = errors.New("transaction is not a draft")
)

// maxNumberAttempts bounds the retries when a generated transaction number
// collides with a concurrent poster.
const maxNumberAttempts = 3

// postingService provides the double-entry posting operations.
type postingService struct {
	BaseService
	txnRepo    portsrepo.TransactionRepositoryWithTx
	accountSvc portssvc.AccountSvcFacade
	orgSvc     portssvc.OrganizationSvcFacade
	fxSvc      portssvc.FxSvcFacade
	publisher  events.Publisher
}

// NewPostingService creates a new PostingService.
func NewPostingService(txnRepo portsrepo.TransactionRepositoryWithTx, accountSvc portssvc.AccountSvcFacade, orgSvc portssvc.OrganizationSvcFacade, fxSvc portssvc.FxSvcFacade, publisher events.Publisher) portssvc.PostingSvcFacade {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &postingService{
		txnRepo:    txnRepo,
		accountSvc: accountSvc,
		orgSvc:     orgSvc,
		fxSvc:      fxSvc,
		publisher:  publisher,
	}
}

// Ensure postingService implements the portssvc.PostingSvcFacade interface
var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// validateEntryShape checks the structural rules that do not need account data.
func (s *postingService) validateEntryShape(entries []dto.CreateEntryRequest) error {
	if len(entries) < 2 {
		return ErrMinEntries
	}

	accountSet := make(map[string]bool)
	for _, e := range entries {
		if e.Amount.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("%w: entry amount must be positive for account %s", apperrors.ErrValidation, e.AccountID)
		}
		accountSet[e.AccountID] = true
	}
	if len(accountSet) < 2 {
		return ErrMinAccounts
	}
	return nil
}

// buildBalanceChanges computes the net signed base-amount delta per account.
func (s *postingService) buildBalanceChanges(entries []domain.LedgerEntry, accountsMap map[string]domain.Account) (map[string]decimal.Decimal, error) {
	balanceChanges := make(map[string]decimal.Decimal)
	for _, entry := range entries {
		acc, ok := accountsMap[entry.AccountID]
		if !ok {
			return nil, fmt.Errorf("%w: ID %s", ErrAccountNotFound, entry.AccountID)
		}
		signedAmount, err := accounting.SignedBaseAmount(entry, acc.AccountType)
		if err != nil {
			return nil, fmt.Errorf("internal error calculating balance changes: %w", err)
		}
		balanceChanges[entry.AccountID] = balanceChanges[entry.AccountID].Add(signedAmount)
	}
	return balanceChanges, nil
}

// negate returns a copy of the map with all deltas negated, used to back out a
// transaction's balance impact when voiding.
func negate(changes map[string]decimal.Decimal) map[string]decimal.Decimal {
	negated := make(map[string]decimal.Decimal, len(changes))
	for accID, delta := range changes {
		negated[accID] = delta.Neg()
	}
	return negated
}

// publishEvent emits a domain event after a committed state change. Delivery is
// best-effort; failures are logged and never surfaced to the caller.
func (s *postingService) publishEvent(ctx context.Context, kind domain.EventKind, txn *domain.Transaction) {
	event := domain.Event{
		EventID:           ids.NewEventID(),
		Kind:              kind,
		OrganizationID:    txn.OrganizationID,
		TransactionID:     txn.TransactionID,
		TransactionNumber: txn.TransactionNumber,
		OccurredAt:        time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.LogWarn(ctx, "Failed to publish event",
			slog.String("event_id", event.EventID),
			slog.String("kind", string(kind)),
			slog.String("error", err.Error()))
	}
}

// saveWithNumberRetry generates a transaction number and invokes save, retrying
// with a fresh number when a concurrent poster claimed the same one.
func (s *postingService) saveWithNumberRetry(ctx context.Context, txn *domain.Transaction, entries []domain.LedgerEntry, save func(context.Context) error) error {
	year := txn.TransactionDate.Year()

	var lastErr error
	for attempt := 1; attempt <= maxNumberAttempts; attempt++ {
		seq, err := s.txnRepo.NextTransactionNumber(ctx, txn.OrganizationID, year)
		if err != nil {
			return fmt.Errorf("failed to generate transaction number: %w", err)
		}
		txn.TransactionNumber = numbering.Format(year, seq)
		for i := range entries {
			entries[i].TransactionNumber = txn.TransactionNumber
		}

		err = save(ctx)
		if err == nil {
			return nil
		}
		if !errors.Is(err, apperrors.ErrPersistenceConflict) {
			return err
		}
		lastErr = err
		s.LogWarn(ctx, "Transaction number collision, retrying",
			slog.String("transaction_number", txn.TransactionNumber),
			slog.Int("attempt", attempt))
	}
	return fmt.Errorf("exhausted %d attempts to claim a transaction number: %w", maxNumberAttempts, lastErr)
}

// CreateTransaction validates, balances and persists a transaction with its
// entries. The result is POSTED unless the request asks for a DRAFT.
func (s *postingService) CreateTransaction(ctx context.Context, organizationID string, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	logger := s.GetLogger(ctx)

	if err := s.orgSvc.AuthorizeUserAction(ctx, creatorUserID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}

	org, err := s.orgSvc.GetOrganizationByID(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if !org.IsActive {
		return nil, fmt.Errorf("%w: organization is deactivated", apperrors.ErrValidation)
	}

	if req.Description == "" {
		return nil, ErrDescriptionMissing
	}
	if err := s.validateEntryShape(req.Entries); err != nil {
		middleware.PostingRejections.WithLabelValues("shape").Inc()
		return nil, err
	}

	now := time.Now().UTC()
	transactionID := uuid.NewString()

	// Build domain entries with base-currency amounts
	domainEntries := make([]domain.LedgerEntry, len(req.Entries))
	accountIDs := make([]string, 0, len(req.Entries))
	for i, entryReq := range req.Entries {
		currencyCode := entryReq.CurrencyCode
		if currencyCode == "" {
			currencyCode = org.BaseCurrencyCode
		}

		baseAmount := entryReq.Amount
		if currencyCode != org.BaseCurrencyCode {
			baseAmount, err = s.fxSvc.Convert(ctx, entryReq.Amount, currencyCode, org.BaseCurrencyCode, req.TransactionDate)
			if err != nil {
				logger.Warn("Failed to convert entry to base currency",
					slog.String("currency_code", currencyCode),
					slog.String("error", err.Error()))
				return nil, fmt.Errorf("%w: cannot convert %s to base currency %s: %v", apperrors.ErrValidation, currencyCode, org.BaseCurrencyCode, err)
			}
		}

		domainEntries[i] = domain.LedgerEntry{
			EntryID:       uuid.NewString(),
			TransactionID: transactionID,
			AccountID:     entryReq.AccountID,
			EntryType:     entryReq.EntryType,
			Amount:        entryReq.Amount,
			CurrencyCode:  currencyCode,
			BaseAmount:    baseAmount,
			Description:   entryReq.Description,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		}
		accountIDs = append(accountIDs, entryReq.AccountID)
	}

	// Balance invariant: debit and credit base totals must agree within the
	// rounding tolerance.
	totalDebits, totalCredits := accounting.SumEntries(domainEntries)
	if !accounting.IsBalanced(totalDebits, totalCredits) {
		middleware.PostingRejections.WithLabelValues("unbalanced").Inc()
		return nil, fmt.Errorf("%w: debits total %s, credits total %s",
			apperrors.ErrUnbalancedEntry, totalDebits.String(), totalCredits.String())
	}

	// Fetch and validate the affected accounts
	accountsMap, err := s.accountSvc.GetAccountsByIDs(ctx, organizationID, uniqueStrings(accountIDs), creatorUserID)
	if err != nil {
		logger.Error("Failed to fetch accounts for transaction creation",
			slog.String("error", err.Error()),
			slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range uniqueStrings(accountIDs) {
		acc, found := accountsMap[id]
		if !found {
			return nil, fmt.Errorf("%w: ID %s", ErrAccountNotFound, id)
		}
		if !acc.IsActive {
			middleware.PostingRejections.WithLabelValues("inactive_account").Inc()
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
	}

	status := domain.Posted
	var balanceChanges map[string]decimal.Decimal
	if req.AsDraft {
		// Drafts have no balance impact until posted.
		status = domain.Draft
	} else {
		balanceChanges, err = s.buildBalanceChanges(domainEntries, accountsMap)
		if err != nil {
			return nil, err
		}
	}

	txn := domain.Transaction{
		TransactionID:    transactionID,
		OrganizationID:   organizationID,
		TransactionDate:  req.TransactionDate,
		TransactionType:  req.TransactionType,
		Description:      req.Description,
		Status:           status,
		SourceDocumentID: req.SourceDocumentID,
		TotalDebits:      totalDebits,
		TotalCredits:     totalCredits,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	save := func(c context.Context) error {
		return s.txnRepo.SaveTransaction(c, txn, domainEntries, balanceChanges)
	}
	if err := s.saveWithNumberRetry(ctx, &txn, domainEntries, save); err != nil {
		logger.Error("Failed to save transaction",
			slog.String("error", err.Error()),
			slog.String("organization_id", organizationID))
		return nil, err
	}

	if status == domain.Posted {
		middleware.TransactionsPosted.WithLabelValues(string(txn.TransactionType)).Inc()
		s.publishEvent(ctx, domain.EventTransactionPosted, &txn)
	}

	logger.Info("Transaction created successfully",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("transaction_number", txn.TransactionNumber),
		slog.String("status", string(status)),
		slog.String("organization_id", organizationID))

	txn.Entries = domainEntries
	return &txn, nil
}

// getOwnedTransaction loads a transaction and verifies it belongs to the organization.
func (s *postingService) getOwnedTransaction(ctx context.Context, organizationID string, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.OrganizationID != organizationID {
		// Cross-tenant lookups are indistinguishable from missing transactions.
		return nil, apperrors.ErrNotFound
	}
	return txn, nil
}

// PostDraftTransaction transitions a DRAFT transaction to POSTED after
// re-validating the balance invariant.
func (s *postingService) PostDraftTransaction(ctx context.Context, organizationID string, transactionID string, userID string) (*domain.Transaction, error) {
	logger := s.GetLogger(ctx)

	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}

	txn, err := s.getOwnedTransaction(ctx, organizationID, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.Status != domain.Draft {
		return nil, fmt.Errorf("%w: status is %s", ErrNotDraft, txn.Status)
	}

	entries, err := s.txnRepo.FindEntriesByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries for draft %s: %w", transactionID, err)
	}

	totalDebits, totalCredits := accounting.SumEntries(entries)
	if !accounting.IsBalanced(totalDebits, totalCredits) {
		middleware.PostingRejections.WithLabelValues("unbalanced").Inc()
		return nil, fmt.Errorf("%w: debits total %s, credits total %s",
			apperrors.ErrUnbalancedEntry, totalDebits.String(), totalCredits.String())
	}

	accountIDs := make([]string, 0, len(entries))
	for _, e := range entries {
		accountIDs = append(accountIDs, e.AccountID)
	}
	accountsMap, err := s.accountSvc.GetAccountsByIDs(ctx, organizationID, uniqueStrings(accountIDs), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range uniqueStrings(accountIDs) {
		acc, found := accountsMap[id]
		if !found {
			return nil, fmt.Errorf("%w: ID %s", ErrAccountNotFound, id)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
	}

	balanceChanges, err := s.buildBalanceChanges(entries, accountsMap)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.txnRepo.MarkTransactionPosted(ctx, transactionID, balanceChanges, userID, now); err != nil {
		logger.Error("Failed to post draft transaction",
			slog.String("transaction_id", transactionID),
			slog.String("error", err.Error()))
		return nil, err
	}

	txn.Status = domain.Posted
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = userID
	txn.Entries = entries

	middleware.TransactionsPosted.WithLabelValues(string(txn.TransactionType)).Inc()
	s.publishEvent(ctx, domain.EventTransactionPosted, txn)

	logger.Info("Draft transaction posted successfully",
		slog.String("transaction_id", transactionID),
		slog.String("transaction_number", txn.TransactionNumber))
	return txn, nil
}

// VoidTransaction marks a POSTED transaction VOIDED and backs out its balance
// impact. Entries are preserved for the audit trail. Voiding and reversing are
// mutually exclusive correction paths.
func (s *postingService) VoidTransaction(ctx context.Context, organizationID string, transactionID string, userID string) error {
	logger := s.GetLogger(ctx)

	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return err
	}

	txn, err := s.getOwnedTransaction(ctx, organizationID, transactionID)
	if err != nil {
		return err
	}
	switch {
	case txn.Status == domain.Voided:
		return fmt.Errorf("%w: %s", apperrors.ErrAlreadyVoided, transactionID)
	case txn.Status == domain.Draft:
		return fmt.Errorf("%w: draft transactions are deleted, not voided", apperrors.ErrConflict)
	case txn.IsReversed():
		return fmt.Errorf("%w: transaction %s has been reversed", apperrors.ErrConflict, transactionID)
	}

	entries, err := s.txnRepo.FindEntriesByTransactionID(ctx, transactionID)
	if err != nil {
		return fmt.Errorf("failed to load entries for transaction %s: %w", transactionID, err)
	}

	accountIDs := make([]string, 0, len(entries))
	for _, e := range entries {
		accountIDs = append(accountIDs, e.AccountID)
	}
	accountsMap, err := s.accountSvc.GetAccountsByIDs(ctx, organizationID, uniqueStrings(accountIDs), userID)
	if err != nil {
		return fmt.Errorf("failed to fetch accounts: %w", err)
	}

	balanceChanges, err := s.buildBalanceChanges(entries, accountsMap)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if err := s.txnRepo.MarkTransactionVoided(ctx, transactionID, negate(balanceChanges), userID, now); err != nil {
		logger.Error("Failed to void transaction",
			slog.String("transaction_id", transactionID),
			slog.String("error", err.Error()))
		return err
	}

	txn.Status = domain.Voided
	s.publishEvent(ctx, domain.EventTransactionVoided, txn)

	logger.Info("Transaction voided successfully",
		slog.String("transaction_id", transactionID),
		slog.String("transaction_number", txn.TransactionNumber))
	return nil
}

// ReverseTransaction creates a new POSTED transaction mirroring the original
// with debit and credit swapped, and links the two. The original stays POSTED.
func (s *postingService) ReverseTransaction(ctx context.Context, organizationID string, transactionID string, userID string, reason string) (*domain.Transaction, error) {
	logger := s.GetLogger(ctx)

	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}
	if reason == "" {
		return nil, fmt.Errorf("%w: reversal reason is required", apperrors.ErrValidation)
	}

	original, err := s.getOwnedTransaction(ctx, organizationID, transactionID)
	if err != nil {
		return nil, err
	}
	switch {
	case original.Status == domain.Voided:
		return nil, fmt.Errorf("%w: %s", apperrors.ErrCannotReverseVoided, transactionID)
	case original.Status == domain.Draft:
		return nil, fmt.Errorf("%w: draft transactions are deleted, not reversed", apperrors.ErrConflict)
	case original.IsReversed():
		return nil, fmt.Errorf("%w: transaction %s is already reversed", apperrors.ErrConflict, transactionID)
	}

	originalEntries, err := s.txnRepo.FindEntriesByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries for transaction %s: %w", transactionID, err)
	}

	now := time.Now().UTC()
	reversingID := uuid.NewString()

	// Mirror each entry with the opposite type; amounts and base amounts are
	// copied verbatim so the reversal cancels the original exactly.
	reversingEntries := make([]domain.LedgerEntry, len(originalEntries))
	accountIDs := make([]string, 0, len(originalEntries))
	for i, origEntry := range originalEntries {
		accountIDs = append(accountIDs, origEntry.AccountID)
		reversingEntries[i] = domain.LedgerEntry{
			EntryID:       uuid.NewString(),
			TransactionID: reversingID,
			AccountID:     origEntry.AccountID,
			EntryType:     origEntry.EntryType.Opposite(),
			Amount:        origEntry.Amount,
			CurrencyCode:  origEntry.CurrencyCode,
			BaseAmount:    origEntry.BaseAmount,
			Description:   origEntry.Description,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	accountsMap, err := s.accountSvc.GetAccountsByIDs(ctx, organizationID, uniqueStrings(accountIDs), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts for reversal: %w", err)
	}

	balanceChanges, err := s.buildBalanceChanges(reversingEntries, accountsMap)
	if err != nil {
		return nil, err
	}

	reversing := domain.Transaction{
		TransactionID:   reversingID,
		OrganizationID:  organizationID,
		TransactionDate: now,
		TransactionType: original.TransactionType,
		Description:     fmt.Sprintf("Reversal of %s: %s", original.TransactionNumber, original.Description),
		Status:          domain.Posted,
		ReversalOfID:    &original.TransactionID,
		ReversalReason:  reason,
		TotalDebits:     original.TotalCredits,
		TotalCredits:    original.TotalDebits,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	// Save and link commit together; a concurrent reversal or void of the
	// same original loses the row lock race and gets a conflict with no
	// balance impact.
	save := func(c context.Context) error {
		return s.txnRepo.SaveReversalTransaction(c, reversing, reversingEntries, balanceChanges, original.TransactionID)
	}
	if err := s.saveWithNumberRetry(ctx, &reversing, reversingEntries, save); err != nil {
		logger.Error("Failed to save reversing transaction",
			slog.String("original_transaction_id", transactionID),
			slog.String("error", err.Error()))
		return nil, err
	}

	middleware.TransactionsPosted.WithLabelValues(string(reversing.TransactionType)).Inc()
	s.publishEvent(ctx, domain.EventTransactionReversed, &reversing)

	logger.Info("Transaction reversed successfully",
		slog.String("original_transaction_id", transactionID),
		slog.String("reversing_transaction_id", reversingID),
		slog.String("reversing_transaction_number", reversing.TransactionNumber))

	reversing.Entries = reversingEntries
	return &reversing, nil
}

// GetTransactionByID retrieves a transaction with its entries.
func (s *postingService) GetTransactionByID(ctx context.Context, organizationID string, transactionID string, userID string) (*domain.Transaction, error) {
	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	txn, err := s.getOwnedTransaction(ctx, organizationID, transactionID)
	if err != nil {
		return nil, err
	}

	entries, err := s.txnRepo.FindEntriesByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries for transaction %s: %w", transactionID, err)
	}
	txn.Entries = entries
	return txn, nil
}

// ListTransactions retrieves a page of the organization's transactions.
func (s *postingService) ListTransactions(ctx context.Context, organizationID string, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	filter := portsrepo.TransactionListFilter{
		Limit:            params.Limit,
		NextToken:        params.NextToken,
		IncludeReversals: params.IncludeReversals,
	}
	if params.Status != nil {
		status := domain.TransactionStatus(*params.Status)
		filter.Status = &status
	}
	if params.TransactionType != nil {
		txnType := domain.TransactionType(*params.TransactionType)
		filter.Type = &txnType
	}

	txns, nextToken, err := s.txnRepo.ListTransactionsByOrganization(ctx, organizationID, filter)
	if err != nil {
		return nil, err
	}

	resp := &dto.ListTransactionsResponse{
		Transactions: make([]dto.TransactionResponse, len(txns)),
		NextToken:    nextToken,
	}
	for i := range txns {
		if params.IncludeEntries {
			entries, err := s.txnRepo.FindEntriesByTransactionID(ctx, txns[i].TransactionID)
			if err != nil {
				return nil, fmt.Errorf("failed to load entries for transaction %s: %w", txns[i].TransactionID, err)
			}
			txns[i].Entries = entries
		}
		resp.Transactions[i] = dto.ToTransactionResponse(&txns[i])
	}
	return resp, nil
}

// ListEntriesByAccount retrieves a page of posted entries for an account.
func (s *postingService) ListEntriesByAccount(ctx context.Context, organizationID string, accountID string, userID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	// Validates the account exists in this organization
	if _, err := s.accountSvc.GetAccountByID(ctx, organizationID, accountID, userID); err != nil {
		return nil, err
	}

	entries, nextToken, err := s.txnRepo.ListEntriesByAccountID(ctx, organizationID, accountID, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}

	return &dto.ListEntriesResponse{
		Entries:   dto.ToEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, s := range input {
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			result = append(result, s)
		}
	}
	return result
}
