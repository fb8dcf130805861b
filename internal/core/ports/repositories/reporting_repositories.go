package repositories

import (
	"context"
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
)

// ReportingRepositoryFacade defines read-model queries over posted entries.
type ReportingRepositoryFacade interface {
	// GetTrialBalance aggregates posted debit/credit base-amount totals per
	// account for an organization, considering transactions dated on or before asOf.
	GetTrialBalance(ctx context.Context, organizationID string, asOf time.Time) ([]domain.TrialBalanceRow, error)
}
