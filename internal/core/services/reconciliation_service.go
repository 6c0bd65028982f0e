package services

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/cocoluventas/sales_backend/internal/core/domain"
	portsrepo "github.com/cocoluventas/sales_backend/internal/core/ports/repositories"
	portssvc "github.com/cocoluventas/sales_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// anomalyEpsilon absorbs rounding noise when comparing realized revenue
// against the nominal total.
var anomalyEpsilon = decimal.RequireFromString("0.01")

const reportPrecision = 2

// reconciliationService computes realized revenue per order and detects
// inconsistent records. Orders are read-only here; anomalies are reported,
// never corrected.
type reconciliationService struct {
	orderRepo portsrepo.OrderReader
}

// NewReconciliationService creates a new reconciliation service.
func NewReconciliationService(orderRepo portsrepo.OrderReader) portssvc.ReconciliationSvc {
	return &reconciliationService{orderRepo: orderRepo}
}

var _ portssvc.ReconciliationSvc = (*reconciliationService)(nil)

// ComputeRealizedRevenue returns the money actually collected for the order,
// in bolívares. Nominal total is what was agreed; this is what arrived.
func (s *reconciliationService) ComputeRealizedRevenue(order domain.Order) decimal.Decimal {
	rate := effectiveRate(order.AppliedRate)

	var realized decimal.Decimal
	switch p := order.Payment.(type) {
	case domain.FullCashPayment:
		realized = order.NominalTotal
	case domain.MixedPayment:
		realized = p.BaseAmount.Add(p.ForeignAmount.Div(rate))
	case domain.InstallmentPayment:
		switch p.InstallmentMode {
		case domain.InstallmentMixed:
			realized = p.BaseAmount.Add(p.ForeignAmount.Div(rate))
		default: // SIMPLE
			if p.Method == domain.MethodForeign {
				realized = p.Amount.Div(rate)
			} else {
				realized = p.Amount
			}
		}
	default:
		// Rows predating the payment flags carry no variant at all; they
		// were always full-cash sales.
		realized = order.NominalTotal
	}

	return realized.Round(reportPrecision)
}

// DetectAnomalies returns a lazy sequence of orders whose realized revenue
// exceeds their nominal total beyond the rounding epsilon. The sequence is
// restartable: ranging over it twice re-scans the same snapshot. Input
// records are never mutated.
func (s *reconciliationService) DetectAnomalies(orders []domain.Order) iter.Seq[domain.Anomaly] {
	return func(yield func(domain.Anomaly) bool) {
		for _, order := range orders {
			realized := s.ComputeRealizedRevenue(order)
			if realized.GreaterThan(order.NominalTotal.Add(anomalyEpsilon)) {
				anomaly := domain.Anomaly{
					Order: order,
					Reason: fmt.Sprintf("realized revenue %s exceeds nominal total %s",
						realized, order.NominalTotal),
				}
				if !yield(anomaly) {
					return
				}
			}
		}
	}
}

// AggregateRevenue sums realized and nominal revenue independently across
// the order set.
func (s *reconciliationService) AggregateRevenue(orders []domain.Order) domain.RevenueSummary {
	summary := domain.RevenueSummary{
		RealizedTotal: decimal.Zero,
		NominalTotal:  decimal.Zero,
		Count:         len(orders),
	}

	for _, order := range orders {
		summary.RealizedTotal = summary.RealizedTotal.Add(s.ComputeRealizedRevenue(order))
		summary.NominalTotal = summary.NominalTotal.Add(order.NominalTotal)
	}

	summary.CollectionRatio = decimal.Zero
	if summary.NominalTotal.IsPositive() {
		summary.CollectionRatio = summary.RealizedTotal.DivRound(summary.NominalTotal, 4)
	}

	return summary
}

// RevenueReport loads orders in [from, to) and aggregates them.
func (s *reconciliationService) RevenueReport(ctx context.Context, from, to time.Time) (*domain.RevenueSummary, error) {
	orders, err := s.orderRepo.ListOrders(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders for revenue report: %w", err)
	}
	summary := s.AggregateRevenue(orders)
	return &summary, nil
}

// AnomalyReport loads orders in [from, to) and collects detected anomalies.
func (s *reconciliationService) AnomalyReport(ctx context.Context, from, to time.Time) ([]domain.Anomaly, error) {
	orders, err := s.orderRepo.ListOrders(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders for anomaly report: %w", err)
	}

	anomalies := []domain.Anomaly{}
	for anomaly := range s.DetectAnomalies(orders) {
		anomalies = append(anomalies, anomaly)
	}
	return anomalies, nil
}

// ListOrders exposes the reconciliation read path to the API.
func (s *reconciliationService) ListOrders(ctx context.Context, from, to time.Time) ([]domain.Order, error) {
	orders, err := s.orderRepo.ListOrders(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// effectiveRate guards the division: a zero or missing applied rate falls
// back to 1 so a corrupt row degrades instead of dividing by zero.
func effectiveRate(rate decimal.Decimal) decimal.Decimal {
	if rate.LessThanOrEqual(decimal.Zero) {
		return decimal.NewFromInt(1)
	}
	return rate
}
