package repositories

import (
	"context"
	"time"

	"github.com/cocoluventas/sales_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OrderReader defines read operations over orders. Orders are written by the
// order-entry frontend; the reconciliation engine only ever reads them.
type OrderReader interface {
	// FindOrderByID retrieves a single order.
	FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error)

	// ListOrders retrieves orders created in [from, to), oldest first.
	ListOrders(ctx context.Context, from, to time.Time) ([]domain.Order, error)
}

// OrderRateCorrector is the maintenance-only write surface: bulk corrections
// of the applied rate snapshot on existing orders. Kept separate from
// OrderReader so the reconciliation read path cannot reach it.
type OrderRateCorrector interface {
	// RetagAppliedRate sets applied_rate to corrected on every order still
	// carrying the stale value, and returns the number of rows touched.
	RetagAppliedRate(ctx context.Context, stale, corrected decimal.Decimal, updatedBy string) (int64, error)
}

// OrderRepositoryFacade combines all order repository interfaces.
type OrderRepositoryFacade interface {
	OrderReader
	OrderRateCorrector
}
