package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cocoluventas/sales_backend/internal/apperrors"
	"github.com/cocoluventas/sales_backend/internal/core/domain"
	"github.com/cocoluventas/sales_backend/internal/models"
	"github.com/cocoluventas/sales_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxRateRepository implements the rate ledger repository using pgxpool.
type PgxRateRepository struct {
	BaseRepository
}

// NewPgxRateRepository creates a new PgxRateRepository.
func NewPgxRateRepository(db *pgxpool.Pool) *PgxRateRepository {
	return &PgxRateRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

const rateColumns = `rate_id, rate_date, rate, source, created_at, created_by, last_updated_at, last_updated_by`

// SaveRate inserts a new ledger entry. The ledger is append-only: there is no
// update path, and the at-most-one-per-day rule is enforced by the service's
// existence check before it calls this.
func (r *PgxRateRepository) SaveRate(ctx context.Context, rate domain.ExchangeRate) error {
	m := mapping.ToModelExchangeRate(rate)

	_, err := r.Pool.Exec(ctx, `
		INSERT INTO exchange_rates (
			rate_id, rate_date, rate, source,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		m.RateID, m.RateDate, m.Rate, m.Source,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("%w: failed to insert exchange rate: %v", apperrors.ErrPersist, err)
	}
	return nil
}

// FindRateByDate retrieves the ledger entry for an exact calendar date.
func (r *PgxRateRepository) FindRateByDate(ctx context.Context, date time.Time) (*domain.ExchangeRate, error) {
	query := `SELECT ` + rateColumns + ` FROM exchange_rates WHERE rate_date = $1 LIMIT 1;`

	m, err := r.scanRate(r.Pool.QueryRow(ctx, query, domain.RateDay(date)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no rate for date %s", apperrors.ErrNotFound, domain.RateDay(date).Format("2006-01-02"))
		}
		return nil, fmt.Errorf("%w: failed to find rate by date: %v", apperrors.ErrPersist, err)
	}

	rate := mapping.ToDomainExchangeRate(m)
	return &rate, nil
}

// FindLatestRate retrieves the most recent ledger entry.
func (r *PgxRateRepository) FindLatestRate(ctx context.Context) (*domain.ExchangeRate, error) {
	query := `SELECT ` + rateColumns + ` FROM exchange_rates ORDER BY rate_date DESC LIMIT 1;`

	m, err := r.scanRate(r.Pool.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: rate ledger is empty", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: failed to find latest rate: %v", apperrors.ErrPersist, err)
	}

	rate := mapping.ToDomainExchangeRate(m)
	return &rate, nil
}

// ListRatesSince retrieves entries with rate_date >= from, newest first.
func (r *PgxRateRepository) ListRatesSince(ctx context.Context, from time.Time) ([]domain.ExchangeRate, error) {
	query := `SELECT ` + rateColumns + ` FROM exchange_rates WHERE rate_date >= $1 ORDER BY rate_date DESC;`

	rows, err := r.Pool.Query(ctx, query, domain.RateDay(from))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list rates: %v", apperrors.ErrPersist, err)
	}
	defer rows.Close()

	var rates []domain.ExchangeRate
	for rows.Next() {
		var m models.ExchangeRate
		if err := rows.Scan(
			&m.RateID, &m.RateDate, &m.Rate, &m.Source,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("%w: failed to scan rate row: %v", apperrors.ErrPersist, err)
		}
		rates = append(rates, mapping.ToDomainExchangeRate(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating rate rows: %v", apperrors.ErrPersist, err)
	}

	return rates, nil
}

// GetRateStats computes min/max/avg over entries with rate_date >= from.
func (r *PgxRateRepository) GetRateStats(ctx context.Context, from time.Time) (*domain.RateStats, error) {
	query := `
		SELECT COALESCE(MIN(rate), 0), COALESCE(MAX(rate), 0), COALESCE(AVG(rate), 0), COUNT(*)
		FROM exchange_rates
		WHERE rate_date >= $1;`

	var stats domain.RateStats
	err := r.Pool.QueryRow(ctx, query, domain.RateDay(from)).Scan(
		&stats.Min, &stats.Max, &stats.Avg, &stats.Count,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to compute rate stats: %v", apperrors.ErrPersist, err)
	}

	return &stats, nil
}

func (r *PgxRateRepository) scanRate(row pgx.Row) (models.ExchangeRate, error) {
	var m models.ExchangeRate
	err := row.Scan(
		&m.RateID, &m.RateDate, &m.Rate, &m.Source,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}
