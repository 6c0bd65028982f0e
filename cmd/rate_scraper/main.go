// Command rate_scraper captures the daily VES/USD reference rate.
//
// Modes (single positional argument):
//
//	(none)          run one fetch+persist cycle and exit
//	continuous|cont run once immediately, then stay resident on the two
//	                daily triggers until SIGINT/SIGTERM
//	force           run once; on fetch failure record the configured
//	                last-known-good fallback rate instead of failing
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cocoluventas/sales_backend/internal/apperrors"
	"github.com/cocoluventas/sales_backend/internal/core/domain"
	portssvc "github.com/cocoluventas/sales_backend/internal/core/ports/services"
	"github.com/cocoluventas/sales_backend/internal/core/services"
	"github.com/cocoluventas/sales_backend/internal/platform/config"
	"github.com/cocoluventas/sales_backend/internal/platform/scheduler"
	"github.com/cocoluventas/sales_backend/internal/repositories/database/pgsql"
	"github.com/cocoluventas/sales_backend/pkg/database"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)

	rateRepo := pgsql.NewPgxRateRepository(dbPool)
	scraper := services.NewScraperService(cfg.RateSourceURL, cfg.RateSourceTimeout)
	rateSvc := services.NewRateService(rateRepo, scraper)

	mode := ""
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}

	switch mode {
	case "continuous", "cont":
		runContinuous(ctx, logger, cfg, rateSvc)
	case "force":
		if err := runOnce(ctx, logger, rateSvc, cfg, true); err != nil {
			os.Exit(1)
		}
	case "":
		if err := runOnce(ctx, logger, rateSvc, cfg, false); err != nil {
			os.Exit(1)
		}
	default:
		logger.Error("Unknown mode", slog.String("mode", mode))
		os.Exit(2)
	}
}

// runOnce performs a single capture cycle. In best-effort mode a failed
// fetch falls back to the configured last-known-good rate instead of
// propagating the error.
func runOnce(ctx context.Context, logger *slog.Logger, rateSvc portssvc.RateSvcFacade, cfg *config.Config, bestEffort bool) error {
	outcome, err := rateSvc.CaptureDailyRate(ctx)
	if err != nil && bestEffort && errors.Is(err, apperrors.ErrFetch) {
		logger.Warn("Fetch failed, recording fallback rate",
			slog.String("fallback", cfg.RateFallback.String()),
			slog.String("error", err.Error()),
		)
		outcome, err = rateSvc.RecordRate(ctx, cfg.RateFallback, domain.RateDay(time.Now()), domain.SourceFallback)
	}
	if err != nil {
		logger.Error("Rate capture failed", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Rate capture finished", slog.String("outcome", string(outcome)))
	return nil
}

// runContinuous runs one cycle immediately, then arms the two daily
// triggers and blocks until the context is cancelled by a signal. Each
// cycle is short-lived and atomic per call, so there is nothing to roll
// back on termination.
func runContinuous(ctx context.Context, logger *slog.Logger, cfg *config.Config, rateSvc portssvc.RateSvcFacade) {
	_ = runOnce(ctx, logger, rateSvc, cfg, false)

	primary, err := scheduler.ParseTriggerTime(cfg.PrimaryTrigger)
	if err != nil {
		logger.Error("Invalid RATE_TRIGGER_PRIMARY", slog.String("error", err.Error()))
		os.Exit(1)
	}
	backup, err := scheduler.ParseTriggerTime(cfg.BackupTrigger)
	if err != nil {
		logger.Error("Invalid RATE_TRIGGER_BACKUP", slog.String("error", err.Error()))
		os.Exit(1)
	}

	sched := scheduler.New(logger)
	capture := func(ctx context.Context) {
		// Failed cycles are logged only; the next trigger retries.
		if _, err := rateSvc.CaptureDailyRate(ctx); err != nil {
			logger.Error("Scheduled rate capture failed", slog.String("error", err.Error()))
		}
	}
	sched.Register("daily-rate-primary", primary, capture)
	sched.Register("daily-rate-backup", backup, capture)

	sched.Run(ctx)
	logger.Info("Scraper exiting")
}
