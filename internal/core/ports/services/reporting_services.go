package services

import (
	"context"
	"time"

	"github.com/finbooks/finbooks_backend/internal/dto"
)

// ReportingSvcFacade exposes read-model reports derived from posted entries.
type ReportingSvcFacade interface {
	// TrialBalance produces per-account posted debit/credit totals as of a date.
	TrialBalance(ctx context.Context, organizationID string, userID string, asOf time.Time) (*dto.TrialBalanceResponse, error)
}
