package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/finbooks/finbooks_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// currencyHandler handles HTTP requests for currencies and exchange rates.
type currencyHandler struct {
	currencyService portssvc.CurrencySvcFacade
	fxService       portssvc.FxSvcFacade
}

// newCurrencyHandler creates a new currencyHandler.
func newCurrencyHandler(currencyService portssvc.CurrencySvcFacade, fxService portssvc.FxSvcFacade) *currencyHandler {
	return &currencyHandler{
		currencyService: currencyService,
		fxService:       fxService,
	}
}

// createCurrency godoc
// @Summary Register a currency
// @Description Registers a currency usable as an account or entry currency
// @Tags currencies
// @Accept  json
// @Produce  json
// @Param   currency body dto.CreateCurrencyRequest true "Currency details"
// @Success 201 {object} domain.Currency
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 409 {object} map[string]string "Currency already registered"
// @Router /currencies [post]
func (h *currencyHandler) createCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for CreateCurrency", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	currency, err := h.currencyService.CreateCurrency(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create currency")
		return
	}

	logger.Info("Currency registered", slog.String("currency_code", currency.CurrencyCode))
	c.JSON(http.StatusCreated, currency)
}

// listCurrencies godoc
// @Summary List currencies
// @Description Retrieves all registered currencies
// @Tags currencies
// @Produce  json
// @Success 200 {array} domain.Currency
// @Router /currencies [get]
func (h *currencyHandler) listCurrencies(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	currencies, err := h.currencyService.ListCurrencies(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list currencies")
		return
	}

	c.JSON(http.StatusOK, currencies)
}

// getCurrency godoc
// @Summary Get a currency
// @Description Retrieves a currency by its ISO code
// @Tags currencies
// @Produce  json
// @Param   code path string true "Currency code"
// @Success 200 {object} domain.Currency
// @Failure 404 {object} map[string]string "Currency not found"
// @Router /currencies/{code} [get]
func (h *currencyHandler) getCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Param("code")

	currency, err := h.currencyService.GetCurrencyByCode(c.Request.Context(), code)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve currency")
		return
	}

	c.JSON(http.StatusOK, currency)
}

// createExchangeRate godoc
// @Summary Record an exchange rate
// @Description Records an exchange rate between two currencies effective from a date
// @Tags currencies
// @Accept  json
// @Produce  json
// @Param   rate body dto.CreateExchangeRateRequest true "Exchange rate details"
// @Success 201 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid rate or pair"
// @Router /exchange-rates [post]
func (h *currencyHandler) createExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for CreateExchangeRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rate, err := h.fxService.CreateExchangeRate(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create exchange rate")
		return
	}

	logger.Info("Exchange rate recorded",
		slog.String("from", rate.FromCurrencyCode),
		slog.String("to", rate.ToCurrencyCode))
	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(rate))
}

// getExchangeRate godoc
// @Summary Get the effective exchange rate
// @Description Retrieves the rate for a currency pair effective on a date, defaulting to today
// @Tags currencies
// @Produce  json
// @Param   from path string true "From currency code"
// @Param   to path string true "To currency code"
// @Param   date query string false "Effective date (YYYY-MM-DD)"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "No rate available for the pair and date"
// @Router /exchange-rates/{from}/{to} [get]
func (h *currencyHandler) getExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	from := c.Param("from")
	to := c.Param("to")

	date := time.Now().UTC()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format, expected YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	rate, err := h.fxService.GetRateEffectiveAt(c.Request.Context(), from, to, date)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve exchange rate")
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}
