package services

// ServiceContainer holds all service facades needed by the handlers.
type ServiceContainer struct {
	Currency  CurrencySvcFacade
	Account   AccountSvcFacade
	Posting   PostingSvcFacade
	Reporting ReportingSvcFacade
}
