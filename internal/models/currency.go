package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency mirrors the currencies table.
type Currency struct {
	CurrencyCode string
	Symbol       string
	Name         string
	Precision    int
	AuditFields
}

// ExchangeRate mirrors the exchange_rates table.
type ExchangeRate struct {
	ExchangeRateID   string
	FromCurrencyCode string
	ToCurrencyCode   string
	Rate             decimal.Decimal
	DateEffective    time.Time
	AuditFields
}
