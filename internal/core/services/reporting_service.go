package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// reportingService produces read-model reports from posted entries.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepositoryFacade
	orgSvc        portssvc.OrganizationSvcFacade
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepositoryFacade, orgSvc portssvc.OrganizationSvcFacade) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		orgSvc:        orgSvc,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// TrialBalance produces per-account posted debit/credit totals as of a date.
// Since every posted transaction balances individually, the report's two total
// columns agree within rounding tolerance.
func (s *reportingService) TrialBalance(ctx context.Context, organizationID string, userID string, asOf time.Time) (*dto.TrialBalanceResponse, error) {
	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	org, err := s.orgSvc.GetOrganizationByID(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}

	rows, err := s.reportingRepo.GetTrialBalance(ctx, organizationID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to build trial balance",
			slog.String("organization_id", organizationID))
		return nil, err
	}

	resp := &dto.TrialBalanceResponse{
		AsOf:         asOf,
		CurrencyCode: org.BaseCurrencyCode,
		Rows:         make([]dto.TrialBalanceRowResponse, len(rows)),
		TotalDebits:  decimal.Zero,
		TotalCredits: decimal.Zero,
	}
	for i := range rows {
		resp.Rows[i] = dto.ToTrialBalanceRowResponse(&rows[i])
		resp.TotalDebits = resp.TotalDebits.Add(rows[i].TotalDebits)
		resp.TotalCredits = resp.TotalCredits.Add(rows[i].TotalCredits)
	}

	return resp, nil
}
