package services

import (
	"context"
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// CurrencySvcFacade exposes currency reference data operations.
type CurrencySvcFacade interface {
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error)
	GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// FxSvcFacade exposes exchange-rate operations and base-currency conversion.
type FxSvcFacade interface {
	CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error)

	// GetRateEffectiveAt returns the rate for the pair effective on the date.
	GetRateEffectiveAt(ctx context.Context, fromCode, toCode string, date time.Time) (*domain.ExchangeRate, error)

	// Convert converts an amount between currencies using the rate effective at
	// the given date, rounded to the target currency precision.
	Convert(ctx context.Context, amount decimal.Decimal, fromCode, toCode string, date time.Time) (decimal.Decimal, error)
}
