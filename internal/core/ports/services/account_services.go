package services

import (
	"context"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/finbooks/finbooks_backend/internal/dto"
)

// AccountSvcFacade exposes chart-of-accounts operations.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, organizationID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, organizationID string, accountID string, userID string) (*domain.Account, error)
	GetAccountByCode(ctx context.Context, organizationID string, code string, userID string) (*domain.Account, error)
	GetAccountsByIDs(ctx context.Context, organizationID string, accountIDs []string, userID string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, organizationID string, userID string, params dto.ListAccountsParams) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, organizationID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)
	DeactivateAccount(ctx context.Context, organizationID string, accountID string, userID string) error
}
