package services

import (
	portsrepo "github.com/cocoluventas/sales_backend/internal/core/ports/repositories"
	portssvc "github.com/cocoluventas/sales_backend/internal/core/ports/services"
	"github.com/cocoluventas/sales_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Scraper = NewScraperService(cfg.RateSourceURL, cfg.RateSourceTimeout)
	container.Rate = NewRateService(repos.RateRepo, container.Scraper)
	container.Reconciliation = NewReconciliationService(repos.OrderRepo)
	container.Maintenance = NewMaintenanceService(container.Rate, repos.OrderRepo)

	return container
}
