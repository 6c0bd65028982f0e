package models

import (
	"github.com/shopspring/decimal"
)

// Order is the persistence shape of a sale (table orders). The payment
// encoding is the flat flag set written by the order-entry frontend: which
// combination of flags is meaningful is resolved during mapping, not here.
type Order struct {
	OrderID      string          `db:"order_id"`
	ClientName   string          `db:"client_name"`
	NominalTotal decimal.Decimal `db:"nominal_total"`

	IsInstallment      bool                `db:"is_installment"`
	InstallmentIsMixed bool                `db:"installment_is_mixed"`
	IsMixedCurrency    bool                `db:"is_mixed_currency"`
	BaseAmount         decimal.NullDecimal `db:"base_amount"`
	ForeignAmount      decimal.NullDecimal `db:"foreign_amount"`
	AmountPaid         decimal.NullDecimal `db:"amount_paid"`
	PaymentMethod      string              `db:"payment_method"`

	AppliedRate decimal.Decimal `db:"applied_rate"`
	AuditFields
}
