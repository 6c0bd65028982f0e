package domain

import "github.com/shopspring/decimal"

// RevenueSummary aggregates realized and nominal revenue over a set of
// orders. RealizedTotal is money actually received (cash basis);
// NominalTotal is the sum of agreed prices (accrual basis). The two are
// computed independently and must never be conflated.
type RevenueSummary struct {
	RealizedTotal   decimal.Decimal `json:"realizedTotal"`
	NominalTotal    decimal.Decimal `json:"nominalTotal"`
	Count           int             `json:"count"`
	CollectionRatio decimal.Decimal `json:"collectionRatio"` // realized/nominal, zero when nominal is zero
}
