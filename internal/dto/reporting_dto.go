package dto

import (
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceParams defines query parameters for the trial balance report.
type TrialBalanceParams struct {
	AsOf time.Time `form:"asOf" time_format:"2006-01-02"`
}

// TrialBalanceRowResponse is one account line of the trial balance.
type TrialBalanceRowResponse struct {
	AccountID    string          `json:"accountID"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	AccountType  string          `json:"accountType"`
	TotalDebits  decimal.Decimal `json:"totalDebits"`
	TotalCredits decimal.Decimal `json:"totalCredits"`
}

// TrialBalanceResponse is the full trial balance report.
type TrialBalanceResponse struct {
	AsOf         time.Time                 `json:"asOf"`
	CurrencyCode string                    `json:"currencyCode"`
	Rows         []TrialBalanceRowResponse `json:"rows"`
	TotalDebits  decimal.Decimal           `json:"totalDebits"`
	TotalCredits decimal.Decimal           `json:"totalCredits"`
}

// ToTrialBalanceRowResponse converts a domain row to its response DTO.
func ToTrialBalanceRowResponse(row *domain.TrialBalanceRow) TrialBalanceRowResponse {
	return TrialBalanceRowResponse{
		AccountID:    row.AccountID,
		Code:         row.Code,
		Name:         row.Name,
		AccountType:  string(row.AccountType),
		TotalDebits:  row.TotalDebits,
		TotalCredits: row.TotalCredits,
	}
}
