package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/core/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, organizationID string, code string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, organizationID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, organizationID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, balanceChanges, userID, now)
	return args.Error(0)
}

// --- Test Suite Setup ---
type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo  *MockAccountRepository
	mockCurrencyRepo *MockCurrencyRepository
	mockOrgSvc       *MockOrganizationService
	service          portssvc.AccountSvcFacade
	organization     domain.Organization
	organizationID   string
	userID           string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.mockOrgSvc = new(MockOrganizationService)
	suite.service = services.NewAccountService(suite.mockAccountRepo, suite.mockCurrencyRepo, suite.mockOrgSvc)

	suite.organizationID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.organization = domain.Organization{
		OrganizationID:   suite.organizationID,
		Slug:             "acme",
		BaseCurrencyCode: "USD",
		IsActive:         true,
	}
}

func (suite *AccountServiceTestSuite) expectAuth(role domain.OrganizationRole) {
	suite.mockOrgSvc.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.organizationID, role).Return(nil).Once()
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DefaultsToBaseCurrency() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        "1000",
		Name:        "Cash",
		AccountType: domain.Asset,
	}

	suite.expectAuth(domain.RoleMember)
	org := suite.organization
	suite.mockOrgSvc.On("GetOrganizationByID", mock.Anything, suite.organizationID).Return(&org, nil).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", mock.Anything, "USD").
		Return(&domain.Currency{CurrencyCode: "USD", Precision: 2}, nil).Once()
	suite.mockAccountRepo.On("SaveAccount", mock.Anything, mock.MatchedBy(func(a domain.Account) bool {
		return a.CurrencyCode == "USD" && a.Code == "1000" && a.IsActive && a.Balance.IsZero()
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.organizationID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("USD", account.CurrencyCode)
	suite.Equal(domain.Asset, account.AccountType)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_UnknownCurrency() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:         "1000",
		Name:         "Cash",
		AccountType:  domain.Asset,
		CurrencyCode: "ZZZ",
	}

	suite.expectAuth(domain.RoleMember)
	org := suite.organization
	suite.mockOrgSvc.On("GetOrganizationByID", mock.Anything, suite.organizationID).Return(&org, nil).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", mock.Anything, "ZZZ").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateAccount(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_CrossTenantHidden() {
	ctx := context.Background()
	foreign := &domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: uuid.NewString(), // different organization
	}

	suite.expectAuth(domain.RoleReadOnly)
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, foreign.AccountID).Return(foreign, nil).Once()

	account, err := suite.service.GetAccountByID(ctx, suite.organizationID, foreign.AccountID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestGetAccountsByIDs_RejectsForeignAccount() {
	ctx := context.Background()
	ownID := uuid.NewString()
	foreignID := uuid.NewString()
	accountsMap := map[string]domain.Account{
		ownID:     {AccountID: ownID, OrganizationID: suite.organizationID},
		foreignID: {AccountID: foreignID, OrganizationID: uuid.NewString()},
	}

	suite.expectAuth(domain.RoleReadOnly)
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, []string{ownID, foreignID}).Return(accountsMap, nil).Once()

	result, err := suite.service.GetAccountsByIDs(ctx, suite.organizationID, []string{ownID, foreignID}, suite.userID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_PartialUpdate() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := &domain.Account{
		AccountID:      accountID,
		OrganizationID: suite.organizationID,
		Name:           "Old Name",
		Description:    "Old description",
	}
	newName := "New Name"

	suite.expectAuth(domain.RoleMember)
	suite.expectAuth(domain.RoleReadOnly) // GetAccountByID re-authorizes
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, accountID).Return(existing, nil).Once()
	suite.mockAccountRepo.On("UpdateAccount", mock.Anything, mock.MatchedBy(func(a domain.Account) bool {
		return a.Name == newName && a.Description == "Old description"
	})).Return(nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, suite.organizationID, accountID, dto.UpdateAccountRequest{Name: &newName}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(newName, updated.Name)
	suite.Equal("Old description", updated.Description)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_NonZeroBalance() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{
		AccountID:      accountID,
		OrganizationID: suite.organizationID,
		Balance:        decimal.NewFromInt(150),
	}

	suite.expectAuth(domain.RoleMember)
	suite.expectAuth(domain.RoleReadOnly)
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, accountID).Return(account, nil).Once()

	err := suite.service.DeactivateAccount(ctx, suite.organizationID, accountID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "DeactivateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestListAccounts_EmptyNotNil() {
	ctx := context.Background()

	suite.expectAuth(domain.RoleReadOnly)
	suite.mockAccountRepo.On("ListAccounts", mock.Anything, suite.organizationID, 20, 0).Return(nil, nil).Once()

	accounts, err := suite.service.ListAccounts(ctx, suite.organizationID, suite.userID, dto.ListAccountsParams{Limit: 20})

	suite.Require().NoError(err)
	suite.NotNil(accounts)
	suite.Empty(accounts)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
