package services

import (
	"context"
	"iter"
	"time"

	"github.com/cocoluventas/sales_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReconciliationSvc computes realized revenue per order and detects
// inconsistent records. It never mutates orders.
type ReconciliationSvc interface {
	// ComputeRealizedRevenue returns the money actually collected for the
	// order, in bolívares, rounded to 2 decimals.
	ComputeRealizedRevenue(order domain.Order) decimal.Decimal

	// DetectAnomalies returns a lazy, restartable sequence of orders whose
	// realized revenue implausibly exceeds their nominal total.
	DetectAnomalies(orders []domain.Order) iter.Seq[domain.Anomaly]

	// AggregateRevenue sums realized and nominal revenue over the order set.
	AggregateRevenue(orders []domain.Order) domain.RevenueSummary

	// RevenueReport loads orders in [from, to) and aggregates them.
	RevenueReport(ctx context.Context, from, to time.Time) (*domain.RevenueSummary, error)

	// AnomalyReport loads orders in [from, to) and collects detected anomalies.
	AnomalyReport(ctx context.Context, from, to time.Time) ([]domain.Anomaly, error)

	// ListOrders exposes the reconciliation read path to the API.
	ListOrders(ctx context.Context, from, to time.Time) ([]domain.Order, error)
}
