package pgsql

import (
	portsrepo "github.com/cocoluventas/sales_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the concrete pgx repositories into the
// provider handed to the service container.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		RateRepo:  NewPgxRateRepository(pool),
		OrderRepo: NewPgxOrderRepository(pool),
	}
}
