package services

// ServiceContainer bundles the initialized services handed to the handlers.
type ServiceContainer struct {
	Rate           RateSvcFacade
	Scraper        RateScraperSvc
	Reconciliation ReconciliationSvc
	Maintenance    MaintenanceSvc
}
