package domain

import (
	"github.com/shopspring/decimal"
)

// PaymentMode discriminates how an order was paid.
type PaymentMode string

const (
	PaymentFullCash      PaymentMode = "FULL_CASH"
	PaymentMixedCurrency PaymentMode = "MIXED_CURRENCY"
	PaymentInstallment   PaymentMode = "INSTALLMENT"
)

// InstallmentMode discriminates the two installment sub-encodings.
type InstallmentMode string

const (
	InstallmentSimple InstallmentMode = "SIMPLE"
	InstallmentMixed  InstallmentMode = "MIXED"
)

// PaymentMethod tags which currency a simple installment amount is
// denominated in.
type PaymentMethod string

const (
	MethodBase    PaymentMethod = "BASE"    // bolívares, no conversion needed
	MethodForeign PaymentMethod = "FOREIGN" // dollars, divide by the applied rate
)

// Payment is the tagged union of payment encodings. The upstream rows carry
// these as a flat set of optional fields and flags; mapping resolves that
// into exactly one variant so revenue computation is an exhaustive switch.
type Payment interface {
	Mode() PaymentMode
}

// FullCashPayment: the whole nominal total was collected in base currency.
type FullCashPayment struct{}

func (FullCashPayment) Mode() PaymentMode { return PaymentFullCash }

// MixedPayment: part collected in bolívares, part in dollars.
type MixedPayment struct {
	BaseAmount    decimal.Decimal
	ForeignAmount decimal.Decimal
}

func (MixedPayment) Mode() PaymentMode { return PaymentMixedCurrency }

// InstallmentPayment: only part of the nominal total was collected at order
// time. SIMPLE carries a single amount tagged with its currency; MIXED splits
// the collected portion across both currencies like MixedPayment.
type InstallmentPayment struct {
	InstallmentMode InstallmentMode

	// SIMPLE payload
	Amount decimal.Decimal
	Method PaymentMethod

	// MIXED payload
	BaseAmount    decimal.Decimal
	ForeignAmount decimal.Decimal
}

func (InstallmentPayment) Mode() PaymentMode { return PaymentInstallment }

// Order is a sale as seen by the reconciliation engine. NominalTotal is the
// agreed price in bolívares; AppliedRate is the VES/USD rate snapshotted at
// order creation so historical reconciliation stays stable even after the
// ledger moves on.
type Order struct {
	OrderID      string          `json:"orderID"`
	ClientName   string          `json:"clientName"`
	NominalTotal decimal.Decimal `json:"nominalTotal"`
	Payment      Payment         `json:"-"`
	AppliedRate  decimal.Decimal `json:"appliedRate"`
	AuditFields
}

// Anomaly pairs an order with the reason it was flagged by the detector.
type Anomaly struct {
	Order  Order  `json:"order"`
	Reason string `json:"reason"`
}
