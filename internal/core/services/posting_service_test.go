package services_test

import (
	"context"
	"fmt"
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

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

// Ensure MockTransactionRepository implements portsrepo.TransactionRepositoryWithTx
var _ portsrepo.TransactionRepositoryWithTx = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByOrganization(ctx context.Context, organizationID string, filter portsrepo.TransactionListFilter) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, organizationID, filter)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), returnedNextToken, args.Error(2)
}

func (m *MockTransactionRepository) ListEntriesByAccountID(ctx context.Context, organizationID, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, organizationID, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.LedgerEntry), returnedNextToken, args.Error(2)
}

func (m *MockTransactionRepository) NextTransactionNumber(ctx context.Context, organizationID string, year int) (int64, error) {
	args := m.Called(ctx, organizationID, year)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, entries []domain.LedgerEntry, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, txn, entries, balanceChanges)
	return args.Error(0)
}

func (m *MockTransactionRepository) MarkTransactionPosted(ctx context.Context, transactionID string, balanceChanges map[string]decimal.Decimal, updatedByUserID string, updatedAt time.Time) error {
	args := m.Called(ctx, transactionID, balanceChanges, updatedByUserID, updatedAt)
	return args.Error(0)
}

func (m *MockTransactionRepository) MarkTransactionVoided(ctx context.Context, transactionID string, balanceChanges map[string]decimal.Decimal, updatedByUserID string, updatedAt time.Time) error {
	args := m.Called(ctx, transactionID, balanceChanges, updatedByUserID, updatedAt)
	return args.Error(0)
}

func (m *MockTransactionRepository) SaveReversalTransaction(ctx context.Context, reversing domain.Transaction, entries []domain.LedgerEntry, balanceChanges map[string]decimal.Decimal, originalID string) error {
	args := m.Called(ctx, reversing, entries, balanceChanges, originalID)
	return args.Error(0)
}

func (m *MockTransactionRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockTransactionRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) CreateAccount(ctx context.Context, organizationID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, organizationID string, accountID string, userID string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, accountID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByCode(ctx context.Context, organizationID string, code string, userID string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, code, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountsByIDs(ctx context.Context, organizationID string, accountIDs []string, userID string) (map[string]domain.Account, error) {
	args := m.Called(ctx, organizationID, accountIDs, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, organizationID string, userID string, params dto.ListAccountsParams) ([]domain.Account, error) {
	args := m.Called(ctx, organizationID, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, organizationID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, organizationID string, accountID string, userID string) error {
	args := m.Called(ctx, organizationID, accountID, userID)
	return args.Error(0)
}

// --- Mock OrganizationService ---
type MockOrganizationService struct {
	mock.Mock
}

var _ portssvc.OrganizationSvcFacade = (*MockOrganizationService)(nil)

func (m *MockOrganizationService) CreateOrganization(ctx context.Context, req dto.CreateOrganizationRequest, creatorUserID string) (*domain.Organization, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

func (m *MockOrganizationService) GetOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

func (m *MockOrganizationService) GetOrganizationBySlug(ctx context.Context, slug string) (*domain.Organization, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

func (m *MockOrganizationService) ListUserOrganizations(ctx context.Context, userID string, includeDisabled bool) ([]domain.Organization, error) {
	args := m.Called(ctx, userID, includeDisabled)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Organization), args.Error(1)
}

func (m *MockOrganizationService) AddMember(ctx context.Context, addingUserID string, organizationID string, req dto.AddMemberRequest) error {
	args := m.Called(ctx, addingUserID, organizationID, req)
	return args.Error(0)
}

func (m *MockOrganizationService) DeactivateOrganization(ctx context.Context, organizationID string, requestingUserID string) error {
	args := m.Called(ctx, organizationID, requestingUserID)
	return args.Error(0)
}

func (m *MockOrganizationService) ActivateOrganization(ctx context.Context, organizationID string, requestingUserID string) error {
	args := m.Called(ctx, organizationID, requestingUserID)
	return args.Error(0)
}

func (m *MockOrganizationService) AuthorizeUserAction(ctx context.Context, userID string, organizationID string, requiredRole domain.OrganizationRole) error {
	args := m.Called(ctx, userID, organizationID, requiredRole)
	return args.Error(0)
}

// --- Mock FxService ---
type MockFxService struct {
	mock.Mock
}

var _ portssvc.FxSvcFacade = (*MockFxService)(nil)

func (m *MockFxService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockFxService) GetRateEffectiveAt(ctx context.Context, fromCode, toCode string, date time.Time) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCode, toCode, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockFxService) Convert(ctx context.Context, amount decimal.Decimal, fromCode, toCode string, date time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, amount, fromCode, toCode, date)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Test Suite Setup ---
type PostingServiceTestSuite struct {
	suite.Suite
	mockTxnRepo      *MockTransactionRepository
	mockAccountSvc   *MockAccountService
	mockOrgSvc       *MockOrganizationService
	mockFxSvc        *MockFxService
	service          portssvc.PostingSvcFacade
	organization     domain.Organization
	assetAccount     domain.Account
	liabilityAccount domain.Account
	revenueAccount   domain.Account
	organizationID   string
	userID           string
}

func (suite *PostingServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.mockOrgSvc = new(MockOrganizationService)
	suite.mockFxSvc = new(MockFxService)
	suite.service = services.NewPostingService(suite.mockTxnRepo, suite.mockAccountSvc, suite.mockOrgSvc, suite.mockFxSvc, nil)

	suite.organizationID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.organization = domain.Organization{
		OrganizationID:   suite.organizationID,
		Slug:             "acme",
		Name:             "Acme Inc",
		BaseCurrencyCode: "USD",
		IsActive:         true,
	}
	suite.assetAccount = domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: suite.organizationID,
		Code:           "1000",
		AccountType:    domain.Asset,
		CurrencyCode:   "USD",
		IsActive:       true,
	}
	suite.liabilityAccount = domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: suite.organizationID,
		Code:           "2000",
		AccountType:    domain.Liability,
		CurrencyCode:   "USD",
		IsActive:       true,
	}
	suite.revenueAccount = domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: suite.organizationID,
		Code:           "4000",
		AccountType:    domain.Revenue,
		CurrencyCode:   "USD",
		IsActive:       true,
	}
}

func (suite *PostingServiceTestSuite) expectMemberAuth() {
	suite.mockOrgSvc.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.organizationID, domain.RoleMember).Return(nil).Once()
}

func (suite *PostingServiceTestSuite) expectActiveOrg() {
	org := suite.organization
	suite.mockOrgSvc.On("GetOrganizationByID", mock.Anything, suite.organizationID).Return(&org, nil).Once()
}

func (suite *PostingServiceTestSuite) balancedRequest() dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		TransactionDate: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		TransactionType: domain.TypeJournalEntry,
		Description:     "Office supplies on account",
		Entries: []dto.CreateEntryRequest{
			{AccountID: suite.assetAccount.AccountID, EntryType: domain.Debit, Amount: decimal.NewFromInt(250)},
			{AccountID: suite.liabilityAccount.AccountID, EntryType: domain.Credit, Amount: decimal.NewFromInt(250)},
		},
	}
}

func (suite *PostingServiceTestSuite) accountsMapFor(accounts ...domain.Account) map[string]domain.Account {
	m := make(map[string]domain.Account, len(accounts))
	for _, acc := range accounts {
		m[acc.AccountID] = acc
	}
	return m
}

// --- CreateTransaction ---

func (suite *PostingServiceTestSuite) TestCreateTransaction_Success() {
	ctx := context.Background()
	req := suite.balancedRequest()

	suite.expectMemberAuth()
	suite.expectActiveOrg()
	suite.mockAccountSvc.On("GetAccountsByIDs", mock.Anything, suite.organizationID,
		[]string{suite.assetAccount.AccountID, suite.liabilityAccount.AccountID}, suite.userID).
		Return(suite.accountsMapFor(suite.assetAccount, suite.liabilityAccount), nil).Once()
	suite.mockTxnRepo.On("NextTransactionNumber", mock.Anything, suite.organizationID, 2026).Return(int64(1), nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", mock.Anything, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("[]domain.LedgerEntry"), mock.AnythingOfType("map[string]decimal.Decimal")).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, suite.organizationID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.Equal("TXN-2026-000001", txn.TransactionNumber)
	suite.Equal(domain.Posted, txn.Status)
	suite.True(txn.TotalDebits.Equal(decimal.NewFromInt(250)))
	suite.True(txn.TotalCredits.Equal(decimal.NewFromInt(250)))
	suite.Equal(suite.userID, txn.CreatedBy)

	// Entries come back in request order.
	suite.Require().Len(txn.Entries, 2)
	suite.Equal(suite.assetAccount.AccountID, txn.Entries[0].AccountID)
	suite.Equal(suite.liabilityAccount.AccountID, txn.Entries[1].AccountID)

	// Posted transactions must carry balance deltas for every touched account.
	saveCall := suite.mockTxnRepo.Calls[len(suite.mockTxnRepo.Calls)-1]
	balanceChanges := saveCall.Arguments.Get(3).(map[string]decimal.Decimal)
	suite.True(balanceChanges[suite.assetAccount.AccountID].Equal(decimal.NewFromInt(250)))
	suite.True(balanceChanges[suite.liabilityAccount.AccountID].Equal(decimal.NewFromInt(250)))

	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockOrgSvc.AssertExpectations(suite.T())
	suite.mockAccountSvc.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestCreateTransaction_Draft_NoBalanceImpact() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.AsDraft = true

	suite.expectMemberAuth()
	suite.expectActiveOrg()
	suite.mockAccountSvc.On("GetAccountsByIDs", mock.Anything, suite.organizationID, mock.Anything, suite.userID).
		Return(suite.accountsMapFor(suite.assetAccount, suite.liabilityAccount), nil).Once()
	suite.mockTxnRepo.On("NextTransactionNumber", mock.Anything, suite.organizationID, 2026).Return(int64(7), nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", mock.Anything, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("[]domain.LedgerEntry"), mock.Anything).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, suite.organizationID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Draft, txn.Status)
	suite.Equal("TXN-2026-000007", txn.TransactionNumber)

	// Drafts carry no balance changes until posted.
	saveCall := suite.mockTxnRepo.Calls[len(suite.mockTxnRepo.Calls)-1]
	suite.Nil(saveCall.Arguments.Get(3))

	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestCreateTransaction_Unbalanced() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Entries[1].Amount = decimal.NewFromInt(200)

	suite.expectMemberAuth()
	suite.expectActiveOrg()

	txn, err := suite.service.CreateTransaction(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrUnbalancedEntry)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestCreateTransaction_WithinEpsilonIsBalanced() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Entries[0].Amount = decimal.RequireFromString("250.009")
	req.Entries[1].Amount = decimal.NewFromInt(250)

	suite.expectMemberAuth()
	suite.expectActiveOrg()
	suite.mockAccountSvc.On("GetAccountsByIDs", mock.Anything, suite.organizationID, mock.Anything, suite.userID).
		Return(suite.accountsMapFor(suite.assetAccount, suite.liabilityAccount), nil).Once()
	suite.mockTxnRepo.On("NextTransactionNumber", mock.Anything, suite.organizationID, 2026).Return(int64(2), nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, suite.organizationID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, txn.Status)
}

func (suite *PostingServiceTestSuite) TestCreateTransaction_SingleEntry() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Entries = req.Entries[:1]

	suite.expectMemberAuth()
	suite.expectActiveOrg()

	_, err := suite.service.CreateTransaction(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrMinEntries)
}

func (suite *PostingServiceTestSuite) TestCreateTransaction_SingleAccount() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Entries[1].AccountID = suite.assetAccount.AccountID

	suite.expectMemberAuth()
	suite.expectActiveOrg()

	_, err := suite.service.CreateTransaction(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrMinAccounts)
}

func (suite *PostingServiceTestSuite) TestCreateTransaction_MissingDescription() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Description = ""

	suite.expectMemberAuth()
	suite.expectActiveOrg()

	_, err := suite.service.CreateTransaction(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrDescriptionMissing)
}

func (suite *PostingServiceTestSuite) TestCreateTransaction_InactiveAccount() {
	ctx := context.Background()
	req := suite.balancedRequest()

	inactive := suite.liabilityAccount
	inactive.IsActive = false

	suite.expectMemberAuth()
	suite.expectActiveOrg()
	suite.mockAccountSvc.On("GetAccountsByIDs", mock.Anything, suite.organizationID, mock.Anything, suite.userID).
		Return(suite.accountsMapFor(suite.assetAccount, inactive), nil).Once()

	_, err := suite.service.CreateTransaction(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestCreateTransaction_DeactivatedOrganization() {
	ctx := context.Background()
	req := suite.balancedRequest()

	suite.expectMemberAuth()
	inactiveOrg := suite.organization
	inactiveOrg.IsActive = false
	suite.mockOrgSvc.On("GetOrganizationByID", mock.Anything, suite.organizationID).Return(&inactiveOrg, nil).Once()

	_, err := suite.service.CreateTransaction(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PostingServiceTestSuite) TestCreateTransaction_ForeignCurrencyConverted() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Entries[0].CurrencyCode = "EUR"
	req.Entries[0].Amount = decimal.NewFromInt(100)
	req.Entries[1].Amount = decimal.NewFromInt(110)

	suite.expectMemberAuth()
	suite.expectActiveOrg()
	suite.mockFxSvc.On("Convert", mock.Anything, decimal.NewFromInt(100), "EUR", "USD", req.TransactionDate).
		Return(decimal.NewFromInt(110), nil).Once()
	suite.mockAccountSvc.On("GetAccountsByIDs", mock.Anything, suite.organizationID, mock.Anything, suite.userID).
		Return(suite.accountsMapFor(suite.assetAccount, suite.liabilityAccount), nil).Once()
	suite.mockTxnRepo.On("NextTransactionNumber", mock.Anything, suite.organizationID, 2026).Return(int64(3), nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, suite.organizationID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(txn.Entries[0].BaseAmount.Equal(decimal.NewFromInt(110)))
	suite.True(txn.Entries[0].Amount.Equal(decimal.NewFromInt(100)))
	suite.Equal("EUR", txn.Entries[0].CurrencyCode)
	suite.mockFxSvc.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestCreateTransaction_NumberConflictRetries() {
	ctx := context.Background()
	req := suite.balancedRequest()

	suite.expectMemberAuth()
	suite.expectActiveOrg()
	suite.mockAccountSvc.On("GetAccountsByIDs", mock.Anything, suite.organizationID, mock.Anything, suite.userID).
		Return(suite.accountsMapFor(suite.assetAccount, suite.liabilityAccount), nil).Once()

	// A concurrent poster claims the first number; the save is retried with a
	// freshly generated one.
	suite.mockTxnRepo.On("NextTransactionNumber", mock.Anything, suite.organizationID, 2026).Return(int64(41), nil).Once()
	suite.mockTxnRepo.On("NextTransactionNumber", mock.Anything, suite.organizationID, 2026).Return(int64(42), nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", mock.Anything, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.TransactionNumber == "TXN-2026-000041"
	}), mock.Anything, mock.Anything).Return(apperrors.ErrPersistenceConflict).Once()
	suite.mockTxnRepo.On("SaveTransaction", mock.Anything, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.TransactionNumber == "TXN-2026-000042"
	}), mock.Anything, mock.Anything).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, suite.organizationID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("TXN-2026-000042", txn.TransactionNumber)
	for _, e := range txn.Entries {
		suite.Equal("TXN-2026-000042", e.TransactionNumber)
	}
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestCreateTransaction_NumberConflictExhausted() {
	ctx := context.Background()
	req := suite.balancedRequest()

	suite.expectMemberAuth()
	suite.expectActiveOrg()
	suite.mockAccountSvc.On("GetAccountsByIDs", mock.Anything, suite.organizationID, mock.Anything, suite.userID).
		Return(suite.accountsMapFor(suite.assetAccount, suite.liabilityAccount), nil).Once()
	suite.mockTxnRepo.On("NextTransactionNumber", mock.Anything, suite.organizationID, 2026).Return(int64(5), nil).Times(3)
	suite.mockTxnRepo.On("SaveTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(apperrors.ErrPersistenceConflict).Times(3)

	txn, err := suite.service.CreateTransaction(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrPersistenceConflict)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestCreateTransaction_Unauthorized() {
	ctx := context.Background()
	req := suite.balancedRequest()

	suite.mockOrgSvc.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.organizationID, domain.RoleMember).
		Return(apperrors.ErrForbidden).Once()

	_, err := suite.service.CreateTransaction(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

// --- PostDraftTransaction ---

func (suite *PostingServiceTestSuite) draftTransaction() (*domain.Transaction, []domain.LedgerEntry) {
	txnID := uuid.NewString()
	txn := &domain.Transaction{
		TransactionID:     txnID,
		OrganizationID:    suite.organizationID,
		TransactionNumber: "TXN-2026-000010",
		TransactionDate:   time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		TransactionType:   domain.TypeInvoice,
		Description:       "Draft invoice",
		Status:            domain.Draft,
		TotalDebits:       decimal.NewFromInt(500),
		TotalCredits:      decimal.NewFromInt(500),
	}
	entries := []domain.LedgerEntry{
		{EntryID: uuid.NewString(), TransactionID: txnID, AccountID: suite.assetAccount.AccountID, EntryType: domain.Debit, Amount: decimal.NewFromInt(500), CurrencyCode: "USD", BaseAmount: decimal.NewFromInt(500)},
		{EntryID: uuid.NewString(), TransactionID: txnID, AccountID: suite.revenueAccount.AccountID, EntryType: domain.Credit, Amount: decimal.NewFromInt(500), CurrencyCode: "USD", BaseAmount: decimal.NewFromInt(500)},
	}
	return txn, entries
}

func (suite *PostingServiceTestSuite) TestPostDraftTransaction_Success() {
	ctx := context.Background()
	txn, entries := suite.draftTransaction()

	suite.expectMemberAuth()
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, txn.TransactionID).Return(txn, nil).Once()
	suite.mockTxnRepo.On("FindEntriesByTransactionID", mock.Anything, txn.TransactionID).Return(entries, nil).Once()
	suite.mockAccountSvc.On("GetAccountsByIDs", mock.Anything, suite.organizationID, mock.Anything, suite.userID).
		Return(suite.accountsMapFor(suite.assetAccount, suite.revenueAccount), nil).Once()
	suite.mockTxnRepo.On("MarkTransactionPosted", mock.Anything, txn.TransactionID, mock.AnythingOfType("map[string]decimal.Decimal"), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	posted, err := suite.service.PostDraftTransaction(ctx, suite.organizationID, txn.TransactionID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, posted.Status)
	suite.Len(posted.Entries, 2)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestPostDraftTransaction_NotDraft() {
	ctx := context.Background()
	txn, _ := suite.draftTransaction()
	txn.Status = domain.Posted

	suite.expectMemberAuth()
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, txn.TransactionID).Return(txn, nil).Once()

	_, err := suite.service.PostDraftTransaction(ctx, suite.organizationID, txn.TransactionID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNotDraft)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "MarkTransactionPosted", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- VoidTransaction ---

func (suite *PostingServiceTestSuite) postedTransaction() (*domain.Transaction, []domain.LedgerEntry) {
	txn, entries := suite.draftTransaction()
	txn.Status = domain.Posted
	return txn, entries
}

func (suite *PostingServiceTestSuite) TestVoidTransaction_Success() {
	ctx := context.Background()
	txn, entries := suite.postedTransaction()

	suite.expectMemberAuth()
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, txn.TransactionID).Return(txn, nil).Once()
	suite.mockTxnRepo.On("FindEntriesByTransactionID", mock.Anything, txn.TransactionID).Return(entries, nil).Once()
	suite.mockAccountSvc.On("GetAccountsByIDs", mock.Anything, suite.organizationID, mock.Anything, suite.userID).
		Return(suite.accountsMapFor(suite.assetAccount, suite.revenueAccount), nil).Once()
	suite.mockTxnRepo.On("MarkTransactionVoided", mock.Anything, txn.TransactionID, mock.AnythingOfType("map[string]decimal.Decimal"), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.VoidTransaction(ctx, suite.organizationID, txn.TransactionID, suite.userID)

	suite.Require().NoError(err)

	// Voiding backs out the original impact: the asset debit of 500 becomes -500
	// and the revenue credit of 500 becomes -500.
	voidCall := suite.mockTxnRepo.Calls[len(suite.mockTxnRepo.Calls)-1]
	balanceChanges := voidCall.Arguments.Get(2).(map[string]decimal.Decimal)
	suite.True(balanceChanges[suite.assetAccount.AccountID].Equal(decimal.NewFromInt(-500)))
	suite.True(balanceChanges[suite.revenueAccount.AccountID].Equal(decimal.NewFromInt(-500)))

	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestVoidTransaction_AlreadyVoided() {
	ctx := context.Background()
	txn, _ := suite.postedTransaction()
	txn.Status = domain.Voided

	suite.expectMemberAuth()
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, txn.TransactionID).Return(txn, nil).Once()

	err := suite.service.VoidTransaction(ctx, suite.organizationID, txn.TransactionID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadyVoided)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "MarkTransactionVoided", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestVoidTransaction_Draft() {
	ctx := context.Background()
	txn, _ := suite.draftTransaction()

	suite.expectMemberAuth()
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, txn.TransactionID).Return(txn, nil).Once()

	err := suite.service.VoidTransaction(ctx, suite.organizationID, txn.TransactionID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *PostingServiceTestSuite) TestVoidTransaction_AlreadyReversed() {
	ctx := context.Background()
	txn, _ := suite.postedTransaction()
	reversedBy := uuid.NewString()
	txn.ReversedByID = &reversedBy

	suite.expectMemberAuth()
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, txn.TransactionID).Return(txn, nil).Once()

	err := suite.service.VoidTransaction(ctx, suite.organizationID, txn.TransactionID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *PostingServiceTestSuite) TestVoidTransaction_CrossTenant() {
	ctx := context.Background()
	txn, _ := suite.postedTransaction()
	txn.OrganizationID = uuid.NewString()

	suite.expectMemberAuth()
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, txn.TransactionID).Return(txn, nil).Once()

	err := suite.service.VoidTransaction(ctx, suite.organizationID, txn.TransactionID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- ReverseTransaction ---

func (suite *PostingServiceTestSuite) TestReverseTransaction_Success() {
	ctx := context.Background()
	original, entries := suite.postedTransaction()

	suite.expectMemberAuth()
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, original.TransactionID).Return(original, nil).Once()
	suite.mockTxnRepo.On("FindEntriesByTransactionID", mock.Anything, original.TransactionID).Return(entries, nil).Once()
	suite.mockAccountSvc.On("GetAccountsByIDs", mock.Anything, suite.organizationID, mock.Anything, suite.userID).
		Return(suite.accountsMapFor(suite.assetAccount, suite.revenueAccount), nil).Once()
	suite.mockTxnRepo.On("NextTransactionNumber", mock.Anything, suite.organizationID, mock.AnythingOfType("int")).Return(int64(11), nil).Once()
	suite.mockTxnRepo.On("SaveReversalTransaction", mock.Anything, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.ReversalOfID != nil && *t.ReversalOfID == original.TransactionID && t.Status == domain.Posted
	}), mock.AnythingOfType("[]domain.LedgerEntry"), mock.AnythingOfType("map[string]decimal.Decimal"), original.TransactionID).Return(nil).Once()

	reversal, err := suite.service.ReverseTransaction(ctx, suite.organizationID, original.TransactionID, suite.userID, "duplicate billing")

	suite.Require().NoError(err)
	suite.Require().NotNil(reversal)
	suite.NotEqual(original.TransactionID, reversal.TransactionID)
	suite.Equal(domain.Posted, reversal.Status)
	suite.Require().NotNil(reversal.ReversalOfID)
	suite.Equal(original.TransactionID, *reversal.ReversalOfID)
	suite.Equal("duplicate billing", reversal.ReversalReason)

	// Debits and credits mirror the original.
	suite.True(reversal.TotalDebits.Equal(original.TotalCredits))
	suite.True(reversal.TotalCredits.Equal(original.TotalDebits))
	suite.Require().Len(reversal.Entries, 2)
	suite.Equal(domain.Credit, reversal.Entries[0].EntryType) // was Debit
	suite.Equal(domain.Debit, reversal.Entries[1].EntryType)  // was Credit
	suite.True(reversal.Entries[0].Amount.Equal(entries[0].Amount))
	suite.True(reversal.Entries[0].BaseAmount.Equal(entries[0].BaseAmount))

	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestReverseTransaction_MissingReason() {
	ctx := context.Background()
	original, _ := suite.postedTransaction()

	suite.expectMemberAuth()

	_, err := suite.service.ReverseTransaction(ctx, suite.organizationID, original.TransactionID, suite.userID, "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PostingServiceTestSuite) TestReverseTransaction_Voided() {
	ctx := context.Background()
	original, _ := suite.postedTransaction()
	original.Status = domain.Voided

	suite.expectMemberAuth()
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, original.TransactionID).Return(original, nil).Once()

	_, err := suite.service.ReverseTransaction(ctx, suite.organizationID, original.TransactionID, suite.userID, "mistake")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrCannotReverseVoided)
}

func (suite *PostingServiceTestSuite) TestReverseTransaction_AlreadyReversed() {
	ctx := context.Background()
	original, _ := suite.postedTransaction()
	reversedBy := uuid.NewString()
	original.ReversedByID = &reversedBy

	suite.expectMemberAuth()
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, original.TransactionID).Return(original, nil).Once()

	_, err := suite.service.ReverseTransaction(ctx, suite.organizationID, original.TransactionID, suite.userID, "mistake")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveReversalTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// A concurrent reversal that wins the row lock leaves the loser with a
// conflict and no committed reversing transaction: the save and the link are
// one repository operation, so the refusal carries no balance impact.
func (suite *PostingServiceTestSuite) TestReverseTransaction_ConcurrentReversalRefused() {
	ctx := context.Background()
	original, entries := suite.postedTransaction()

	suite.expectMemberAuth()
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, original.TransactionID).Return(original, nil).Once()
	suite.mockTxnRepo.On("FindEntriesByTransactionID", mock.Anything, original.TransactionID).Return(entries, nil).Once()
	suite.mockAccountSvc.On("GetAccountsByIDs", mock.Anything, suite.organizationID, mock.Anything, suite.userID).
		Return(suite.accountsMapFor(suite.assetAccount, suite.revenueAccount), nil).Once()
	suite.mockTxnRepo.On("NextTransactionNumber", mock.Anything, suite.organizationID, mock.AnythingOfType("int")).Return(int64(12), nil).Once()
	suite.mockTxnRepo.On("SaveReversalTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything, original.TransactionID).
		Return(fmt.Errorf("%w: transaction %s is already reversed", apperrors.ErrConflict, original.TransactionID)).Once()

	_, err := suite.service.ReverseTransaction(ctx, suite.organizationID, original.TransactionID, suite.userID, "mistake")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	// The refused reversal never commits anything on its own: the single
	// atomic save is the only write attempted, and it is not retried.
	suite.mockTxnRepo.AssertNumberOfCalls(suite.T(), "SaveReversalTransaction", 1)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Reads ---

func (suite *PostingServiceTestSuite) TestGetTransactionByID_AttachesEntries() {
	ctx := context.Background()
	txn, entries := suite.postedTransaction()

	suite.mockOrgSvc.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.organizationID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, txn.TransactionID).Return(txn, nil).Once()
	suite.mockTxnRepo.On("FindEntriesByTransactionID", mock.Anything, txn.TransactionID).Return(entries, nil).Once()

	got, err := suite.service.GetTransactionByID(ctx, suite.organizationID, txn.TransactionID, suite.userID)

	suite.Require().NoError(err)
	suite.Len(got.Entries, 2)
}

func (suite *PostingServiceTestSuite) TestListTransactions_PassesToken() {
	ctx := context.Background()
	txn, _ := suite.postedTransaction()
	token := "next-page"

	suite.mockOrgSvc.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.organizationID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockTxnRepo.On("ListTransactionsByOrganization", mock.Anything, suite.organizationID,
		portsrepo.TransactionListFilter{Limit: 20}).
		Return([]domain.Transaction{*txn}, token, nil).Once()

	resp, err := suite.service.ListTransactions(ctx, suite.organizationID, suite.userID, dto.ListTransactionsParams{Limit: 20})

	suite.Require().NoError(err)
	suite.Len(resp.Transactions, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(token, *resp.NextToken)
}

func (suite *PostingServiceTestSuite) TestListTransactions_AppliesStatusFilter() {
	ctx := context.Background()
	status := string(domain.Draft)

	suite.mockOrgSvc.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.organizationID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockTxnRepo.On("ListTransactionsByOrganization", mock.Anything, suite.organizationID,
		mock.MatchedBy(func(f portsrepo.TransactionListFilter) bool {
			return f.Status != nil && *f.Status == domain.Draft && f.Type == nil
		})).
		Return([]domain.Transaction{}, nil, nil).Once()

	resp, err := suite.service.ListTransactions(ctx, suite.organizationID, suite.userID,
		dto.ListTransactionsParams{Limit: 20, Status: &status})

	suite.Require().NoError(err)
	suite.Empty(resp.Transactions)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestListEntriesByAccount_ValidatesAccount() {
	ctx := context.Background()

	suite.mockOrgSvc.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.organizationID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockAccountSvc.On("GetAccountByID", mock.Anything, suite.organizationID, suite.assetAccount.AccountID, suite.userID).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ListEntriesByAccount(ctx, suite.organizationID, suite.assetAccount.AccountID, suite.userID, dto.ListEntriesParams{Limit: 20})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "ListEntriesByAccountID", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPostingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PostingServiceTestSuite))
}
