package repositories

import (
	"context"
	"time"

	"github.com/cocoluventas/sales_backend/internal/core/domain"
)

// RateReader defines read operations over the rate ledger.
type RateReader interface {
	// FindRateByDate retrieves the ledger entry for an exact calendar date.
	// Returns apperrors.ErrNotFound when the date has no entry.
	FindRateByDate(ctx context.Context, date time.Time) (*domain.ExchangeRate, error)

	// FindLatestRate retrieves the most recent ledger entry.
	FindLatestRate(ctx context.Context) (*domain.ExchangeRate, error)

	// ListRatesSince retrieves entries with rate_date >= from, newest first.
	ListRatesSince(ctx context.Context, from time.Time) ([]domain.ExchangeRate, error)

	// GetRateStats computes min/max/avg over entries with rate_date >= from.
	GetRateStats(ctx context.Context, from time.Time) (*domain.RateStats, error)
}

// RateWriter defines write operations over the rate ledger.
type RateWriter interface {
	// SaveRate inserts a new ledger entry. Entries are never updated.
	SaveRate(ctx context.Context, rate domain.ExchangeRate) error
}

// RateRepositoryFacade combines all rate ledger repository interfaces.
type RateRepositoryFacade interface {
	RateReader
	RateWriter
}
