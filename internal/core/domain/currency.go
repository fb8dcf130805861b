package domain

// Currency represents a currency supported by the system.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // ISO 4217 code, primary key
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
	Precision    int    `json:"precision"` // Number of decimal places (2 for most)
	AuditFields
}
