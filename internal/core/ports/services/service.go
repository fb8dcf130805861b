package services

// ServiceContainer holds instances of all the application services.
// Handlers receive this container instead of individual services.
type ServiceContainer struct {
	Organization OrganizationSvcFacade
	Account      AccountSvcFacade
	Currency     CurrencySvcFacade
	Fx           FxSvcFacade
	Posting      PostingSvcFacade
	Reporting    ReportingSvcFacade
}
