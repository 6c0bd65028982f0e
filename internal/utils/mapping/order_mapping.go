package mapping

import (
	"strings"

	"github.com/cocoluventas/sales_backend/internal/core/domain"
	"github.com/cocoluventas/sales_backend/internal/models"
	"github.com/shopspring/decimal"
)

// ToDomainOrder converts a flat order row into the domain shape, collapsing
// the payment flag combination into exactly one Payment variant.
//
// The frontend can leave more than one flag set on a row; precedence here is
// installment, then mixed-currency, then full-cash. That ordering mirrors the
// behaviour the revenue scripts always had; it is provisional until confirmed
// as an actual business rule.
func ToDomainOrder(m models.Order) domain.Order {
	return domain.Order{
		OrderID:      m.OrderID,
		ClientName:   m.ClientName,
		NominalTotal: m.NominalTotal,
		Payment:      toDomainPayment(m),
		AppliedRate:  m.AppliedRate,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainOrders converts a slice of order rows.
func ToDomainOrders(ms []models.Order) []domain.Order {
	orders := make([]domain.Order, len(ms))
	for i, m := range ms {
		orders[i] = ToDomainOrder(m)
	}
	return orders
}

func toDomainPayment(m models.Order) domain.Payment {
	switch {
	case m.IsInstallment && m.InstallmentIsMixed:
		return domain.InstallmentPayment{
			InstallmentMode: domain.InstallmentMixed,
			BaseAmount:      nullableAmount(m.BaseAmount),
			ForeignAmount:   nullableAmount(m.ForeignAmount),
		}
	case m.IsInstallment:
		return domain.InstallmentPayment{
			InstallmentMode: domain.InstallmentSimple,
			Amount:          nullableAmount(m.AmountPaid),
			Method:          toPaymentMethod(m.PaymentMethod),
		}
	case m.IsMixedCurrency:
		return domain.MixedPayment{
			BaseAmount:    nullableAmount(m.BaseAmount),
			ForeignAmount: nullableAmount(m.ForeignAmount),
		}
	default:
		return domain.FullCashPayment{}
	}
}

// toPaymentMethod classifies the free-form payment_method tag. Dollar
// methods (cash USD, Zelle) need conversion; everything else is already in
// bolívares.
func toPaymentMethod(method string) domain.PaymentMethod {
	switch strings.ToUpper(strings.TrimSpace(method)) {
	case "USD", "EFECTIVO_USD", "ZELLE":
		return domain.MethodForeign
	default:
		return domain.MethodBase
	}
}

func nullableAmount(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}
