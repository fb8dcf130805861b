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

// ErrNoRateAvailable indicates no exchange rate covers the requested pair and date.
var ErrNoRateAvailable = errors.New("no exchange rate available for currency pair")

// fxService provides exchange-rate operations and base-currency conversion.
type fxService struct {
	BaseService
	rateRepo    portsrepo.ExchangeRateRepositoryFacade
	currencySvc portssvc.CurrencySvcFacade
}

// NewFxService creates a new FxService.
func NewFxService(rateRepo portsrepo.ExchangeRateRepositoryFacade, currencySvc portssvc.CurrencySvcFacade) portssvc.FxSvcFacade {
	return &fxService{
		rateRepo:    rateRepo,
		currencySvc: currencySvc,
	}
}

var _ portssvc.FxSvcFacade = (*fxService)(nil)

// CreateExchangeRate records a new exchange rate after validating both currencies.
func (s *fxService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	if req.FromCurrencyCode == req.ToCurrencyCode {
		return nil, fmt.Errorf("%w: from and to currencies must differ", apperrors.ErrValidation)
	}
	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: rate must be positive", apperrors.ErrValidation)
	}

	for _, code := range []string{req.FromCurrencyCode, req.ToCurrencyCode} {
		if _, err := s.currencySvc.GetCurrencyByCode(ctx, code); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: currency %s is not registered", apperrors.ErrValidation, code)
			}
			return nil, err
		}
	}

	now := time.Now().UTC()
	rate := domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: req.FromCurrencyCode,
		ToCurrencyCode:   req.ToCurrencyCode,
		Rate:             req.Rate,
		DateEffective:    req.DateEffective,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save exchange rate",
				slog.String("from", req.FromCurrencyCode),
				slog.String("to", req.ToCurrencyCode))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Exchange rate created successfully",
		slog.String("from", rate.FromCurrencyCode),
		slog.String("to", rate.ToCurrencyCode),
		slog.String("rate", rate.Rate.String()))
	return &rate, nil
}

// GetRateEffectiveAt returns the rate for the pair effective on the date.
func (s *fxService) GetRateEffectiveAt(ctx context.Context, fromCode, toCode string, date time.Time) (*domain.ExchangeRate, error) {
	rate, err := s.rateRepo.FindRateEffectiveAt(ctx, fromCode, toCode, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s->%s at %s", ErrNoRateAvailable, fromCode, toCode, date.Format("2006-01-02"))
		}
		s.LogError(ctx, err, "Failed to find exchange rate",
			slog.String("from", fromCode), slog.String("to", toCode))
		return nil, err
	}
	return rate, nil
}

// Convert converts an amount between currencies using the rate effective at the
// given date, rounded to the target currency precision.
func (s *fxService) Convert(ctx context.Context, amount decimal.Decimal, fromCode, toCode string, date time.Time) (decimal.Decimal, error) {
	if fromCode == toCode {
		return amount, nil
	}

	rate, err := s.GetRateEffectiveAt(ctx, fromCode, toCode, date)
	if err != nil {
		return decimal.Zero, err
	}

	precision := int32(2)
	if target, err := s.currencySvc.GetCurrencyByCode(ctx, toCode); err == nil {
		precision = int32(target.Precision)
	}

	return amount.Mul(rate.Rate).Round(precision), nil
}
