package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// BackfillTally accumulates per-record results of a backfill run. Failures
// never abort the run; they are counted and reported at the end.
type BackfillTally struct {
	Inserted int
	Skipped  int
	Failed   int
}

// MaintenanceSvc groups the exceptional, audited operations that are kept
// entirely separate from the steady-state pipeline: historical rate
// backfills and bulk corrections of stale applied rates on orders.
type MaintenanceSvc interface {
	// BackfillRate inserts a MANUAL ledger entry for a historical gap.
	BackfillRate(ctx context.Context, date time.Time, rate decimal.Decimal) (PersistOutcome, error)

	// BackfillRateRange inserts one entry per day in [from, to], continuing
	// past per-day failures and returning the final tally.
	BackfillRateRange(ctx context.Context, from, to time.Time, rate decimal.Decimal) (BackfillTally, error)

	// CorrectOrderRates retags applied_rate on orders still carrying the
	// stale value and returns the number of orders touched.
	CorrectOrderRates(ctx context.Context, stale, corrected decimal.Decimal) (int64, error)
}
