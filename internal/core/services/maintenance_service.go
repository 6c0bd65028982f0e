package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cocoluventas/sales_backend/internal/apperrors"
	"github.com/cocoluventas/sales_backend/internal/core/domain"
	portsrepo "github.com/cocoluventas/sales_backend/internal/core/ports/repositories"
	portssvc "github.com/cocoluventas/sales_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

const maintenanceActor = "maintenance"

// maintenanceService implements the exceptional, audited operations: ledger
// backfills for historical gaps and bulk corrections of stale applied rates.
// It shares the ledger write path with the rate service (same idempotent
// guard) but is otherwise kept apart from the steady-state pipeline.
type maintenanceService struct {
	rateSvc   portssvc.RateWriterSvc
	orderRepo portsrepo.OrderRateCorrector
}

// NewMaintenanceService creates a new maintenance service.
func NewMaintenanceService(rateSvc portssvc.RateWriterSvc, orderRepo portsrepo.OrderRateCorrector) portssvc.MaintenanceSvc {
	return &maintenanceService{
		rateSvc:   rateSvc,
		orderRepo: orderRepo,
	}
}

var _ portssvc.MaintenanceSvc = (*maintenanceService)(nil)

// BackfillRate inserts a MANUAL ledger entry for a historical gap. Dates
// that already have an entry are skipped, so reruns are harmless.
func (s *maintenanceService) BackfillRate(ctx context.Context, date time.Time, rate decimal.Decimal) (portssvc.PersistOutcome, error) {
	return s.rateSvc.RecordRate(ctx, rate, date, domain.SourceManual)
}

// BackfillRateRange inserts one entry per day in [from, to]. Per-day
// failures are logged and counted, never fatal; the run always reaches the
// end of the range and reports the tally.
func (s *maintenanceService) BackfillRateRange(ctx context.Context, from, to time.Time, rate decimal.Decimal) (portssvc.BackfillTally, error) {
	var tally portssvc.BackfillTally

	from = domain.RateDay(from)
	to = domain.RateDay(to)
	if to.Before(from) {
		return tally, fmt.Errorf("%w: range end %s is before start %s",
			apperrors.ErrValidation, to.Format("2006-01-02"), from.Format("2006-01-02"))
	}

	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		outcome, err := s.rateSvc.RecordRate(ctx, rate, day, domain.SourceManual)
		switch {
		case err != nil:
			tally.Failed++
			slog.WarnContext(ctx, "Backfill failed for date",
				slog.String("date", day.Format("2006-01-02")),
				slog.String("error", err.Error()),
			)
		case outcome == portssvc.OutcomeSkipped:
			tally.Skipped++
		default:
			tally.Inserted++
		}
	}

	slog.InfoContext(ctx, "Backfill range finished",
		slog.Int("inserted", tally.Inserted),
		slog.Int("skipped", tally.Skipped),
		slog.Int("failed", tally.Failed),
	)
	return tally, nil
}

// CorrectOrderRates retags applied_rate on orders still carrying the stale
// value. The stale-value match is the idempotent guard: a second run finds
// nothing left to touch.
func (s *maintenanceService) CorrectOrderRates(ctx context.Context, stale, corrected decimal.Decimal) (int64, error) {
	if corrected.LessThanOrEqual(decimal.Zero) {
		return 0, fmt.Errorf("%w: corrected rate must be positive, got %s", apperrors.ErrValidation, corrected)
	}
	if stale.Equal(corrected) {
		return 0, fmt.Errorf("%w: stale and corrected rates are both %s", apperrors.ErrValidation, stale)
	}

	affected, err := s.orderRepo.RetagAppliedRate(ctx, stale, corrected, maintenanceActor)
	if err != nil {
		return 0, fmt.Errorf("failed to correct order rates: %w", err)
	}

	slog.InfoContext(ctx, "Order rates corrected",
		slog.String("stale", stale.String()),
		slog.String("corrected", corrected.String()),
		slog.Int64("orders_touched", affected),
	)
	return affected, nil
}
