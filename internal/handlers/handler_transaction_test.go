package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/finbooks/finbooks_backend/internal/handlers"
	"github.com/finbooks/finbooks_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

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

// --- Mock PostingService ---
type MockPostingService struct {
	mock.Mock
}

var _ portssvc.PostingSvcFacade = (*MockPostingService)(nil)

func (m *MockPostingService) CreateTransaction(ctx context.Context, organizationID string, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	args := m.Called(ctx, organizationID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockPostingService) PostDraftTransaction(ctx context.Context, organizationID string, transactionID string, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, organizationID, transactionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockPostingService) VoidTransaction(ctx context.Context, organizationID string, transactionID string, userID string) error {
	args := m.Called(ctx, organizationID, transactionID, userID)
	return args.Error(0)
}
func (m *MockPostingService) ReverseTransaction(ctx context.Context, organizationID string, transactionID string, userID string, reason string) (*domain.Transaction, error) {
	args := m.Called(ctx, organizationID, transactionID, userID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockPostingService) GetTransactionByID(ctx context.Context, organizationID string, transactionID string, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, organizationID, transactionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockPostingService) ListTransactions(ctx context.Context, organizationID string, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, organizationID, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}
func (m *MockPostingService) ListEntriesByAccount(ctx context.Context, organizationID string, accountID string, userID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	args := m.Called(ctx, organizationID, accountID, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListEntriesResponse), args.Error(1)
}

// --- Test Suite ---
type TransactionHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockOrgService     *MockOrganizationService
	mockPostingService *MockPostingService
	jwtSecret          string
	organization       domain.Organization
	userID             string
}

// generateTestToken creates a signed JWT accepted by the auth middleware.
func (suite *TransactionHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "finbooks-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockOrgService = new(MockOrganizationService)
	suite.mockPostingService = new(MockPostingService)

	// Only the routes under test get real mocks; the other container slots
	// stay nil since their handlers are never invoked here.
	cfg := &config.Config{JWTSecret: suite.jwtSecret, IsProduction: true}
	services := &portssvc.ServiceContainer{
		Organization: suite.mockOrgService,
		Posting:      suite.mockPostingService,
	}
	handlers.RegisterRoutes(suite.router, cfg, services)

	suite.userID = uuid.NewString()
	suite.organization = domain.Organization{
		OrganizationID:   uuid.NewString(),
		Slug:             "acme",
		Name:             "Acme Corp",
		BaseCurrencyCode: "USD",
		IsActive:         true,
	}
}

// expectSlugResolution arms the middleware lookup for the test organization.
func (suite *TransactionHandlerTestSuite) expectSlugResolution() {
	org := suite.organization
	suite.mockOrgService.On("GetOrganizationBySlug", mock.Anything, org.Slug).Return(&org, nil).Once()
}

func (suite *TransactionHandlerTestSuite) doRequest(method, url string, body any, userID string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *TransactionHandlerTestSuite) validCreateRequest() dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		TransactionDate: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		TransactionType: domain.TypeJournalEntry,
		Description:     "Office rent for March",
		Entries: []dto.CreateEntryRequest{
			{AccountID: uuid.NewString(), EntryType: domain.Debit, Amount: decimal.NewFromInt(250)},
			{AccountID: uuid.NewString(), EntryType: domain.Credit, Amount: decimal.NewFromInt(250)},
		},
	}
}

// --- Test Cases ---

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_Success() {
	reqBody := suite.validCreateRequest()
	created := &domain.Transaction{
		TransactionID:     uuid.NewString(),
		OrganizationID:    suite.organization.OrganizationID,
		TransactionNumber: "TXN-2026-000001",
		TransactionDate:   reqBody.TransactionDate,
		TransactionType:   reqBody.TransactionType,
		Description:       reqBody.Description,
		Status:            domain.Posted,
		TotalDebits:       decimal.NewFromInt(250),
		TotalCredits:      decimal.NewFromInt(250),
	}

	suite.expectSlugResolution()
	suite.mockPostingService.On("CreateTransaction",
		mock.Anything,
		suite.organization.OrganizationID,
		mock.MatchedBy(func(r dto.CreateTransactionRequest) bool {
			return r.Description == reqBody.Description && len(r.Entries) == 2 && !r.AsDraft
		}),
		suite.userID,
	).Return(created, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/orgs/acme/transactions", reqBody, suite.userID)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.TransactionID, resp.TransactionID)
	suite.Equal("TXN-2026-000001", resp.TransactionNumber)
	suite.Equal(string(domain.Posted), resp.Status)
	suite.mockPostingService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_MissingDescription() {
	reqBody := suite.validCreateRequest()
	reqBody.Description = ""

	suite.expectSlugResolution()

	w := suite.doRequest(http.MethodPost, "/api/v1/orgs/acme/transactions", reqBody, suite.userID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPostingService.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_UnknownType() {
	reqBody := suite.validCreateRequest()
	reqBody.TransactionType = domain.TransactionType("REFUND")

	suite.expectSlugResolution()

	w := suite.doRequest(http.MethodPost, "/api/v1/orgs/acme/transactions", reqBody, suite.userID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPostingService.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_Unbalanced() {
	reqBody := suite.validCreateRequest()

	suite.expectSlugResolution()
	suite.mockPostingService.On("CreateTransaction", mock.Anything, suite.organization.OrganizationID, mock.Anything, suite.userID).
		Return(nil, apperrors.ErrUnbalancedEntry).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/orgs/acme/transactions", reqBody, suite.userID)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_Unauthorized() {
	reqBody := suite.validCreateRequest()

	w := suite.doRequest(http.MethodPost, "/api/v1/orgs/acme/transactions", reqBody, "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockOrgService.AssertNotCalled(suite.T(), "GetOrganizationBySlug", mock.Anything, mock.Anything)
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_UnknownSlug() {
	reqBody := suite.validCreateRequest()

	suite.mockOrgService.On("GetOrganizationBySlug", mock.Anything, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/orgs/ghost/transactions", reqBody, suite.userID)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockPostingService.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionHandlerTestSuite) TestGetTransaction_NotFound() {
	transactionID := uuid.NewString()

	suite.expectSlugResolution()
	suite.mockPostingService.On("GetTransactionByID", mock.Anything, suite.organization.OrganizationID, transactionID, suite.userID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/orgs/acme/transactions/"+transactionID, nil, suite.userID)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_PassesParams() {
	limit := 10
	expected := &dto.ListTransactionsResponse{
		Transactions: []dto.TransactionResponse{
			{TransactionID: uuid.NewString(), TransactionNumber: "TXN-2026-000007", Status: string(domain.Posted)},
		},
	}

	suite.expectSlugResolution()
	suite.mockPostingService.On("ListTransactions",
		mock.Anything,
		suite.organization.OrganizationID,
		suite.userID,
		mock.MatchedBy(func(p dto.ListTransactionsParams) bool {
			return p.Limit == limit && p.IncludeReversals
		}),
	).Return(expected, nil).Once()

	url := fmt.Sprintf("/api/v1/orgs/acme/transactions?limit=%d&includeReversals=true", limit)
	w := suite.doRequest(http.MethodGet, url, nil, suite.userID)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ListTransactionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Transactions, 1)
	suite.Equal(expected.Transactions[0].TransactionID, resp.Transactions[0].TransactionID)
	suite.mockPostingService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestVoidTransaction_Success() {
	transactionID := uuid.NewString()

	suite.expectSlugResolution()
	suite.mockPostingService.On("VoidTransaction", mock.Anything, suite.organization.OrganizationID, transactionID, suite.userID).
		Return(nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/orgs/acme/transactions/"+transactionID+"/void", nil, suite.userID)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockPostingService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestVoidTransaction_AlreadyVoided() {
	transactionID := uuid.NewString()

	suite.expectSlugResolution()
	suite.mockPostingService.On("VoidTransaction", mock.Anything, suite.organization.OrganizationID, transactionID, suite.userID).
		Return(apperrors.ErrAlreadyVoided).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/orgs/acme/transactions/"+transactionID+"/void", nil, suite.userID)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestReverseTransaction_Success() {
	originalID := uuid.NewString()
	reason := "Posted against the wrong account"
	reversal := &domain.Transaction{
		TransactionID:     uuid.NewString(),
		OrganizationID:    suite.organization.OrganizationID,
		TransactionNumber: "TXN-2026-000002",
		Status:            domain.Posted,
		ReversalOfID:      &originalID,
		ReversalReason:    reason,
	}

	suite.expectSlugResolution()
	suite.mockPostingService.On("ReverseTransaction", mock.Anything, suite.organization.OrganizationID, originalID, suite.userID, reason).
		Return(reversal, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/orgs/acme/transactions/"+originalID+"/reverse",
		dto.ReverseTransactionRequest{Reason: reason}, suite.userID)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().NotNil(resp.ReversalOfID)
	suite.Equal(originalID, *resp.ReversalOfID)
	suite.Equal(reason, resp.ReversalReason)
}

func (suite *TransactionHandlerTestSuite) TestReverseTransaction_MissingReason() {
	originalID := uuid.NewString()

	suite.expectSlugResolution()

	w := suite.doRequest(http.MethodPost, "/api/v1/orgs/acme/transactions/"+originalID+"/reverse",
		dto.ReverseTransactionRequest{}, suite.userID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPostingService.AssertNotCalled(suite.T(), "ReverseTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestTransactionHandler(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
