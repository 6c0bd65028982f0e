package services

import (
	"context"
	"time"

	"github.com/cocoluventas/sales_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PersistOutcome reports what RecordRate did with a candidate ledger entry.
type PersistOutcome string

const (
	OutcomeInserted PersistOutcome = "INSERTED"
	OutcomeSkipped  PersistOutcome = "SKIPPED" // the date already had an entry
)

// RateScraperSvc fetches the daily reference rate from the external source.
type RateScraperSvc interface {
	// FetchRate retrieves and extracts today's VES/USD rate. Returns a value
	// wrapped in apperrors.ErrFetch when nothing plausible can be extracted.
	FetchRate(ctx context.Context) (decimal.Decimal, error)
}

// RateReaderSvc defines read operations over the rate ledger.
type RateReaderSvc interface {
	GetLatestRate(ctx context.Context) (*domain.ExchangeRate, error)
	GetRateByDate(ctx context.Context, date time.Time) (*domain.ExchangeRate, error)
	ListRateHistory(ctx context.Context, days int) ([]domain.ExchangeRate, error)
	GetRateStats(ctx context.Context, days int) (*domain.RateStats, error)
}

// RateWriterSvc defines write operations over the rate ledger.
type RateWriterSvc interface {
	// RecordRate persists a rate for a date unless the date already has one.
	RecordRate(ctx context.Context, rate decimal.Decimal, date time.Time, source domain.RateSource) (PersistOutcome, error)

	// CaptureDailyRate runs one fetch+persist cycle for today.
	CaptureDailyRate(ctx context.Context) (PersistOutcome, error)
}

// RateSvcFacade combines all rate ledger service interfaces.
type RateSvcFacade interface {
	RateReaderSvc
	RateWriterSvc
}
