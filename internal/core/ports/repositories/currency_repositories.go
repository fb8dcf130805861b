package repositories

import (
	"context"
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
)

// CurrencyRepositoryFacade defines operations for currency reference data.
type CurrencyRepositoryFacade interface {
	// SaveCurrency persists a new currency.
	SaveCurrency(ctx context.Context, currency domain.Currency) error

	// FindCurrencyByCode retrieves a currency by its ISO code.
	FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)

	// ListCurrencies retrieves all known currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// ExchangeRateRepositoryFacade defines operations for exchange rate data.
type ExchangeRateRepositoryFacade interface {
	// SaveExchangeRate persists a new exchange rate.
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error

	// FindRateEffectiveAt retrieves the latest rate for the currency pair
	// effective on or before the given date.
	FindRateEffectiveAt(ctx context.Context, fromCode, toCode string, date time.Time) (*domain.ExchangeRate, error)
}
