// Command maintenance runs the exceptional, audited data-correction
// operations. These are not steady-state features: each run is explicit,
// idempotent and reports what it touched.
//
// Usage:
//
//	maintenance backfill <YYYY-MM-DD> <rate>
//	maintenance backfill-range <from> <to> <rate>
//	maintenance fix-rates <stale> <corrected>
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/cocoluventas/sales_backend/internal/core/services"
	"github.com/cocoluventas/sales_backend/internal/platform/config"
	"github.com/cocoluventas/sales_backend/internal/repositories/database/pgsql"
	"github.com/cocoluventas/sales_backend/pkg/database"
	"github.com/shopspring/decimal"
)

const dateFormat = "2006-01-02"

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()
	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)

	repos := pgsql.NewRepositoryProvider(dbPool)
	container := services.NewServiceContainer(cfg, repos)
	maintenance := container.Maintenance

	switch os.Args[1] {
	case "backfill":
		if len(os.Args) != 4 {
			usage()
			os.Exit(2)
		}
		date := mustDate(logger, os.Args[2])
		rate := mustDecimal(logger, os.Args[3])

		outcome, err := maintenance.BackfillRate(ctx, date, rate)
		if err != nil {
			logger.Error("Backfill failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("Backfill finished",
			slog.String("date", date.Format(dateFormat)),
			slog.String("outcome", string(outcome)),
		)

	case "backfill-range":
		if len(os.Args) != 5 {
			usage()
			os.Exit(2)
		}
		from := mustDate(logger, os.Args[2])
		to := mustDate(logger, os.Args[3])
		rate := mustDecimal(logger, os.Args[4])

		tally, err := maintenance.BackfillRateRange(ctx, from, to, rate)
		if err != nil {
			logger.Error("Backfill range failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("Backfill range finished",
			slog.Int("inserted", tally.Inserted),
			slog.Int("skipped", tally.Skipped),
			slog.Int("failed", tally.Failed),
		)

	case "fix-rates":
		if len(os.Args) != 4 {
			usage()
			os.Exit(2)
		}
		stale := mustDecimal(logger, os.Args[2])
		corrected := mustDecimal(logger, os.Args[3])

		affected, err := maintenance.CorrectOrderRates(ctx, stale, corrected)
		if err != nil {
			logger.Error("Rate correction failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("Rate correction finished", slog.Int64("orders_touched", affected))

	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  maintenance backfill <YYYY-MM-DD> <rate>
  maintenance backfill-range <from> <to> <rate>
  maintenance fix-rates <stale> <corrected>`)
}

func mustDate(logger *slog.Logger, raw string) time.Time {
	date, err := time.Parse(dateFormat, raw)
	if err != nil {
		logger.Error("Invalid date, expected YYYY-MM-DD", slog.String("value", raw))
		os.Exit(2)
	}
	return date
}

func mustDecimal(logger *slog.Logger, raw string) decimal.Decimal {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		logger.Error("Invalid decimal value", slog.String("value", raw))
		os.Exit(2)
	}
	return d
}
