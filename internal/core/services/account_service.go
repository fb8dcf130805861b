package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// accountService provides chart-of-accounts operations.
type accountService struct {
	BaseService
	accountRepo  portsrepo.AccountRepositoryFacade
	currencyRepo portsrepo.CurrencyRepositoryFacade
	orgSvc       portssvc.OrganizationSvcFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, currencyRepo portsrepo.CurrencyRepositoryFacade, orgSvc portssvc.OrganizationSvcFacade) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo:  accountRepo,
		currencyRepo: currencyRepo,
		orgSvc:       orgSvc,
	}
}

// Ensure accountService implements the portssvc.AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount creates a new account in the organization's chart of accounts.
// Requires MEMBER role.
func (s *accountService) CreateAccount(ctx context.Context, organizationID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	if err := s.orgSvc.AuthorizeUserAction(ctx, creatorUserID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}

	org, err := s.orgSvc.GetOrganizationByID(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	currencyCode := req.CurrencyCode
	if currencyCode == "" {
		currencyCode = org.BaseCurrencyCode
	}
	if _, err := s.currencyRepo.FindCurrencyByCode(ctx, currencyCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: currency %s is not registered", apperrors.ErrValidation, currencyCode)
		}
		s.LogError(ctx, err, "Failed to validate account currency", slog.String("currency_code", currencyCode))
		return nil, err
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: organizationID,
		Code:           req.Code,
		Name:           req.Name,
		AccountType:    req.AccountType,
		CurrencyCode:   currencyCode,
		Description:    req.Description,
		IsActive:       true,
		Balance:        decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account",
			slog.String("organization_id", organizationID),
			slog.String("code", req.Code))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("code", account.Code),
		slog.String("organization_id", organizationID))
	return &account, nil
}

// GetAccountByID retrieves an account, verifying organization ownership.
func (s *accountService) GetAccountByID(ctx context.Context, organizationID string, accountID string, userID string) (*domain.Account, error) {
	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		}
		return nil, err
	}
	if account.OrganizationID != organizationID {
		// Cross-tenant lookups are indistinguishable from missing accounts.
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

// GetAccountByCode retrieves an account by its chart-of-accounts code.
func (s *accountService) GetAccountByCode(ctx context.Context, organizationID string, code string, userID string) (*domain.Account, error) {
	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByCode(ctx, organizationID, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by code", slog.String("code", code))
		}
		return nil, err
	}
	return account, nil
}

// GetAccountsByIDs retrieves multiple accounts, all verified to belong to the organization.
func (s *accountService) GetAccountsByIDs(ctx context.Context, organizationID string, accountIDs []string, userID string) (map[string]domain.Account, error) {
	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	accountsMap, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch accounts by IDs", slog.String("organization_id", organizationID))
		return nil, err
	}

	for id, acc := range accountsMap {
		if acc.OrganizationID != organizationID {
			s.LogWarn(ctx, "Account requested from a different organization",
				slog.String("account_id", id),
				slog.String("organization_id", organizationID))
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
	}
	return accountsMap, nil
}

// ListAccounts retrieves a page of active accounts for an organization.
func (s *accountService) ListAccounts(ctx context.Context, organizationID string, userID string, params dto.ListAccountsParams) ([]domain.Account, error) {
	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, organizationID, params.Limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("organization_id", organizationID))
		return nil, err
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

// UpdateAccount updates mutable account fields. Requires MEMBER role.
func (s *accountService) UpdateAccount(ctx context.Context, organizationID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}

	account, err := s.GetAccountByID(ctx, organizationID, accountID, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated successfully", slog.String("account_id", accountID))
	return account, nil
}

// DeactivateAccount marks an account inactive. Requires MEMBER role. Accounts
// with a non-zero balance stay active until they are emptied.
func (s *accountService) DeactivateAccount(ctx context.Context, organizationID string, accountID string, userID string) error {
	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return err
	}

	account, err := s.GetAccountByID(ctx, organizationID, accountID, userID)
	if err != nil {
		return err
	}
	if !account.Balance.IsZero() {
		return fmt.Errorf("%w: account %s has a non-zero balance", apperrors.ErrValidation, accountID)
	}

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "Account deactivated successfully", slog.String("account_id", accountID))
	return nil
}
