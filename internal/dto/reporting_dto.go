package dto

import (
	"time"

	"github.com/cocoluventas/sales_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OrderResponse is the API shape of an order as seen by reconciliation:
// nominal value, resolved payment mode and the computed realized revenue.
type OrderResponse struct {
	OrderID         string          `json:"orderID"`
	ClientName      string          `json:"clientName"`
	NominalTotal    decimal.Decimal `json:"nominalTotal"`
	PaymentMode     string          `json:"paymentMode"`
	InstallmentMode string          `json:"installmentMode,omitempty"`
	AppliedRate     decimal.Decimal `json:"appliedRate"`
	RealizedRevenue decimal.Decimal `json:"realizedRevenue"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// RevenueSummaryResponse is the aggregate revenue report.
type RevenueSummaryResponse struct {
	From            string          `json:"from"`
	To              string          `json:"to"`
	RealizedTotal   decimal.Decimal `json:"realizedTotal"`
	NominalTotal    decimal.Decimal `json:"nominalTotal"`
	Count           int             `json:"count"`
	CollectionRatio decimal.Decimal `json:"collectionRatio"`
}

// AnomalyResponse is one flagged order with the reason.
type AnomalyResponse struct {
	Order  OrderResponse `json:"order"`
	Reason string        `json:"reason"`
}

// AnomalyReportResponse is the full anomaly report over a window.
type AnomalyReportResponse struct {
	From      string            `json:"from"`
	To        string            `json:"to"`
	Checked   int               `json:"checked"`
	Anomalies []AnomalyResponse `json:"anomalies"`
}

// ToOrderResponse converts a domain.Order plus its computed realized revenue.
func ToOrderResponse(order domain.Order, realized decimal.Decimal) OrderResponse {
	resp := OrderResponse{
		OrderID:         order.OrderID,
		ClientName:      order.ClientName,
		NominalTotal:    order.NominalTotal,
		AppliedRate:     order.AppliedRate,
		RealizedRevenue: realized,
		CreatedAt:       order.CreatedAt,
	}

	if order.Payment != nil {
		resp.PaymentMode = string(order.Payment.Mode())
		if installment, ok := order.Payment.(domain.InstallmentPayment); ok {
			resp.InstallmentMode = string(installment.InstallmentMode)
		}
	} else {
		resp.PaymentMode = string(domain.PaymentFullCash)
	}

	return resp
}

// ToRevenueSummaryResponse converts a domain.RevenueSummary for a window.
func ToRevenueSummaryResponse(from, to time.Time, summary *domain.RevenueSummary) RevenueSummaryResponse {
	return RevenueSummaryResponse{
		From:            from.Format(DateFormat),
		To:              to.Format(DateFormat),
		RealizedTotal:   summary.RealizedTotal,
		NominalTotal:    summary.NominalTotal,
		Count:           summary.Count,
		CollectionRatio: summary.CollectionRatio,
	}
}
