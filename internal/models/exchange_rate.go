package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is the persistence shape of a rate ledger entry
// (table exchange_rates).
type ExchangeRate struct {
	RateID   string          `db:"rate_id"`
	RateDate time.Time       `db:"rate_date"`
	Rate     decimal.Decimal `db:"rate"`
	Source   string          `db:"source"`
	AuditFields
}
