package services

import (
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/events"
	"github.com/finbooks/finbooks_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Organization service first since the other services depend on it for
	// authorization checks
	container.Organization = NewOrganizationService(repos.OrganizationRepo, repos.CurrencyRepo)

	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.Fx = NewFxService(repos.ExchangeRateRepo, container.Currency)
	container.Account = NewAccountService(repos.AccountRepo, repos.CurrencyRepo, container.Organization)

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.WebhookURL != "" {
		publisher = events.NewWebhookPublisher(cfg.WebhookURL, cfg.WebhookSecret)
	}
	container.Posting = NewPostingService(repos.TransactionRepo, container.Account, container.Organization, container.Fx, publisher)

	container.Reporting = NewReportingService(repos.ReportingRepo, container.Organization)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.OrganizationSvcFacade = (*organizationService)(nil)
	_ portssvc.AccountSvcFacade      = (*accountService)(nil)
	_ portssvc.PostingSvcFacade      = (*postingService)(nil)
)
