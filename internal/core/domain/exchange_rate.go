package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate represents the conversion rate between two currencies effective
// from a given date. The poster picks the latest rate effective on or before
// the transaction date.
type ExchangeRate struct {
	ExchangeRateID   string          `json:"exchangeRateID"` // Primary key (UUID)
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"` // Multiplier: amount(from) * rate = amount(to)
	DateEffective    time.Time       `json:"dateEffective"`
	AuditFields
}
