package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cocoluventas/sales_backend/internal/apperrors"
	"github.com/cocoluventas/sales_backend/internal/core/domain"
	portsrepo "github.com/cocoluventas/sales_backend/internal/core/ports/repositories"
	portssvc "github.com/cocoluventas/sales_backend/internal/core/ports/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// systemActor is the audit identity used for writes made by the pipeline
// itself rather than a user.
const systemActor = "system"

// rateService owns the daily rate ledger.
type rateService struct {
	rateRepo portsrepo.RateRepositoryFacade
	scraper  portssvc.RateScraperSvc
	now      func() time.Time
}

// RateServiceOption is a functional option for configuring the rate service.
type RateServiceOption func(*rateService)

// WithClock replaces the wall clock (used by tests).
func WithClock(now func() time.Time) RateServiceOption {
	return func(s *rateService) {
		s.now = now
	}
}

// NewRateService creates a new rate ledger service.
func NewRateService(rateRepo portsrepo.RateRepositoryFacade, scraper portssvc.RateScraperSvc, options ...RateServiceOption) portssvc.RateSvcFacade {
	svc := &rateService{
		rateRepo: rateRepo,
		scraper:  scraper,
		now:      time.Now,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.RateSvcFacade = (*rateService)(nil)

// RecordRate persists a rate for a date unless the date already has one.
//
// The read-then-insert is not atomic against a concurrent invocation for the
// same date; the scheduled triggers are hours apart, so the race is accepted
// rather than paid for with a unique constraint.
func (s *rateService) RecordRate(ctx context.Context, rate decimal.Decimal, date time.Time, source domain.RateSource) (portssvc.PersistOutcome, error) {
	if rate.LessThanOrEqual(decimal.Zero) {
		return "", fmt.Errorf("%w: rate must be positive, got %s", apperrors.ErrValidation, rate)
	}
	if !source.IsValid() {
		return "", fmt.Errorf("%w: unknown rate source %q", apperrors.ErrValidation, source)
	}

	day := domain.RateDay(date)

	existing, err := s.rateRepo.FindRateByDate(ctx, day)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return "", fmt.Errorf("failed to check existing rate: %w", err)
	}
	if existing != nil {
		slog.InfoContext(ctx, "Rate already recorded for date, skipping",
			slog.String("date", day.Format("2006-01-02")),
			slog.String("existing_rate", existing.Rate.String()),
		)
		return portssvc.OutcomeSkipped, nil
	}

	now := s.now().UTC()
	entry := domain.ExchangeRate{
		RateID:   uuid.NewString(),
		RateDate: day,
		Rate:     rate,
		Source:   source,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     systemActor,
			LastUpdatedAt: now,
			LastUpdatedBy: systemActor,
		},
	}

	if err := s.rateRepo.SaveRate(ctx, entry); err != nil {
		return "", fmt.Errorf("failed to save rate: %w", err)
	}

	slog.InfoContext(ctx, "Rate recorded",
		slog.String("date", day.Format("2006-01-02")),
		slog.String("rate", rate.String()),
		slog.String("source", string(source)),
	)
	return portssvc.OutcomeInserted, nil
}

// CaptureDailyRate runs one fetch+persist cycle for today.
func (s *rateService) CaptureDailyRate(ctx context.Context) (portssvc.PersistOutcome, error) {
	rate, err := s.scraper.FetchRate(ctx)
	if err != nil {
		return "", fmt.Errorf("daily rate capture: %w", err)
	}
	return s.RecordRate(ctx, rate, s.now(), domain.SourceScrape)
}

// GetLatestRate retrieves the most recent ledger entry.
func (s *rateService) GetLatestRate(ctx context.Context) (*domain.ExchangeRate, error) {
	rate, err := s.rateRepo.FindLatestRate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest rate: %w", err)
	}
	return rate, nil
}

// GetRateByDate retrieves the ledger entry for an exact calendar date.
func (s *rateService) GetRateByDate(ctx context.Context, date time.Time) (*domain.ExchangeRate, error) {
	rate, err := s.rateRepo.FindRateByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get rate by date: %w", err)
	}
	return rate, nil
}

// ListRateHistory retrieves the trailing window of ledger entries.
func (s *rateService) ListRateHistory(ctx context.Context, days int) ([]domain.ExchangeRate, error) {
	from, err := s.windowStart(days)
	if err != nil {
		return nil, err
	}
	rates, err := s.rateRepo.ListRatesSince(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("failed to list rate history: %w", err)
	}
	return rates, nil
}

// GetRateStats computes min/max/avg over the trailing window.
func (s *rateService) GetRateStats(ctx context.Context, days int) (*domain.RateStats, error) {
	from, err := s.windowStart(days)
	if err != nil {
		return nil, err
	}
	stats, err := s.rateRepo.GetRateStats(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("failed to compute rate stats: %w", err)
	}
	return stats, nil
}

func (s *rateService) windowStart(days int) (time.Time, error) {
	if days <= 0 {
		return time.Time{}, fmt.Errorf("%w: window must be a positive number of days, got %d", apperrors.ErrValidation, days)
	}
	return domain.RateDay(s.now().AddDate(0, 0, -days+1)), nil
}
