package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/finbooks/finbooks_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests related to ledger transactions.
type transactionHandler struct {
	postingService portssvc.PostingSvcFacade
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(postingService portssvc.PostingSvcFacade) *transactionHandler {
	return &transactionHandler{
		postingService: postingService,
	}
}

// createTransaction godoc
// @Summary Create a transaction
// @Description Validates, balances and persists a transaction with its entries. Posted immediately unless asDraft is set.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   org_slug path string true "Organization slug"
// @Param   transaction body dto.CreateTransactionRequest true "Transaction and entries"
// @Success 201 {object} dto.TransactionResponse "The created transaction"
// @Failure 400 {object} map[string]string "Invalid request or unbalanced entries"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Persistence conflict"
// @Router /orgs/{org_slug}/transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	orgID, ok := getOrganizationIDFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve organization"})
		return
	}

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for CreateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.postingService.CreateTransaction(c.Request.Context(), orgID, req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create transaction")
		return
	}

	logger.Info("Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("transaction_number", txn.TransactionNumber),
		slog.String("status", string(txn.Status)))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List transactions
// @Description Retrieves a page of the organization's transactions, newest first
// @Tags transactions
// @Produce  json
// @Param   org_slug path string true "Organization slug"
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Pagination token from the previous page"
// @Param   includeReversals query bool false "Include reversal pairs"
// @Param   includeEntries query bool false "Include ledger entries per transaction"
// @Param   status query string false "Filter by status (DRAFT, POSTED, VOIDED)"
// @Param   type query string false "Filter by transaction type"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /orgs/{org_slug}/transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	orgID, ok := getOrganizationIDFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve organization"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for ListTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.postingService.ListTransactions(c.Request.Context(), orgID, userID, params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getTransaction godoc
// @Summary Get a transaction
// @Description Retrieves a transaction with its ledger entries
// @Tags transactions
// @Produce  json
// @Param   org_slug path string true "Organization slug"
// @Param   transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Router /orgs/{org_slug}/transactions/{transactionID} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	orgID, ok := getOrganizationIDFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve organization"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.postingService.GetTransactionByID(c.Request.Context(), orgID, transactionID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve transaction")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// postDraft godoc
// @Summary Post a draft transaction
// @Description Transitions a DRAFT transaction to POSTED, applying its balance effects
// @Tags transactions
// @Produce  json
// @Param   org_slug path string true "Organization slug"
// @Param   transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse "The posted transaction"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Transaction is not a draft"
// @Router /orgs/{org_slug}/transactions/{transactionID}/post [post]
func (h *transactionHandler) postDraft(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	orgID, ok := getOrganizationIDFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve organization"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.postingService.PostDraftTransaction(c.Request.Context(), orgID, transactionID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to post transaction")
		return
	}

	logger.Info("Draft transaction posted", slog.String("transaction_id", transactionID))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// voidTransaction godoc
// @Summary Void a transaction
// @Description Marks a POSTED transaction VOIDED and backs its amounts out of the account balances
// @Tags transactions
// @Produce  json
// @Param   org_slug path string true "Organization slug"
// @Param   transactionID path string true "Transaction ID"
// @Success 204 "Transaction voided"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Already voided or already reversed"
// @Router /orgs/{org_slug}/transactions/{transactionID}/void [post]
func (h *transactionHandler) voidTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	orgID, ok := getOrganizationIDFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve organization"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.postingService.VoidTransaction(c.Request.Context(), orgID, transactionID, userID); err != nil {
		respondServiceError(c, logger, err, "Failed to void transaction")
		return
	}

	logger.Info("Transaction voided", slog.String("transaction_id", transactionID))
	c.Status(http.StatusNoContent)
}

// reverseTransaction godoc
// @Summary Reverse a transaction
// @Description Creates a new posted transaction mirroring the original with debits and credits swapped
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   org_slug path string true "Organization slug"
// @Param   transactionID path string true "Transaction ID"
// @Param   reversal body dto.ReverseTransactionRequest true "Reversal reason"
// @Success 201 {object} dto.TransactionResponse "The reversal transaction"
// @Failure 400 {object} map[string]string "Missing reason"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Voided or already reversed"
// @Router /orgs/{org_slug}/transactions/{transactionID}/reverse [post]
func (h *transactionHandler) reverseTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	orgID, ok := getOrganizationIDFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve organization"})
		return
	}

	var req dto.ReverseTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for ReverseTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reversal, err := h.postingService.ReverseTransaction(c.Request.Context(), orgID, transactionID, userID, req.Reason)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to reverse transaction")
		return
	}

	logger.Info("Transaction reversed",
		slog.String("transaction_id", transactionID),
		slog.String("reversal_id", reversal.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(reversal))
}

// listAccountEntries godoc
// @Summary List an account's ledger entries
// @Description Retrieves a page of posted ledger entries for an account, newest first
// @Tags transactions
// @Produce  json
// @Param   org_slug path string true "Organization slug"
// @Param   accountID path string true "Account ID"
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Pagination token from the previous page"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /orgs/{org_slug}/accounts/{accountID}/entries [get]
func (h *transactionHandler) listAccountEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	orgID, ok := getOrganizationIDFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve organization"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for ListAccountEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.postingService.ListEntriesByAccount(c.Request.Context(), orgID, accountID, userID, params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list account entries")
		return
	}

	c.JSON(http.StatusOK, resp)
}
