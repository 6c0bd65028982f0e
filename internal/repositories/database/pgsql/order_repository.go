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
	"github.com/shopspring/decimal"
)

// PgxOrderRepository implements the order repository using pgxpool. Orders
// are written by the order-entry frontend; this repository only reads them,
// except for the maintenance-only RetagAppliedRate.
type PgxOrderRepository struct {
	BaseRepository
}

// NewPgxOrderRepository creates a new PgxOrderRepository.
func NewPgxOrderRepository(db *pgxpool.Pool) *PgxOrderRepository {
	return &PgxOrderRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

const orderColumns = `order_id, client_name, nominal_total,
	is_installment, installment_is_mixed, is_mixed_currency,
	base_amount, foreign_amount, amount_paid, payment_method,
	applied_rate, created_at, created_by, last_updated_at, last_updated_by`

// FindOrderByID retrieves a single order.
func (r *PgxOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_id = $1;`

	var m models.Order
	err := r.Pool.QueryRow(ctx, query, orderID).Scan(
		&m.OrderID, &m.ClientName, &m.NominalTotal,
		&m.IsInstallment, &m.InstallmentIsMixed, &m.IsMixedCurrency,
		&m.BaseAmount, &m.ForeignAmount, &m.AmountPaid, &m.PaymentMethod,
		&m.AppliedRate, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: order %s not found", apperrors.ErrNotFound, orderID)
		}
		return nil, fmt.Errorf("%w: failed to find order: %v", apperrors.ErrPersist, err)
	}

	order := mapping.ToDomainOrder(m)
	return &order, nil
}

// ListOrders retrieves orders created in [from, to), oldest first.
func (r *PgxOrderRepository) ListOrders(ctx context.Context, from, to time.Time) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
		WHERE created_at >= $1 AND created_at < $2
		ORDER BY created_at;`

	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list orders: %v", apperrors.ErrPersist, err)
	}
	defer rows.Close()

	var ms []models.Order
	for rows.Next() {
		var m models.Order
		if err := rows.Scan(
			&m.OrderID, &m.ClientName, &m.NominalTotal,
			&m.IsInstallment, &m.InstallmentIsMixed, &m.IsMixedCurrency,
			&m.BaseAmount, &m.ForeignAmount, &m.AmountPaid, &m.PaymentMethod,
			&m.AppliedRate, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("%w: failed to scan order row: %v", apperrors.ErrPersist, err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating order rows: %v", apperrors.ErrPersist, err)
	}

	return mapping.ToDomainOrders(ms), nil
}

// RetagAppliedRate sets applied_rate to corrected on every order still
// carrying the stale value. The WHERE clause doubles as the idempotent
// guard: rerunning the correction touches nothing.
func (r *PgxOrderRepository) RetagAppliedRate(ctx context.Context, stale, corrected decimal.Decimal, updatedBy string) (int64, error) {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE orders
		SET applied_rate = $1, last_updated_at = $2, last_updated_by = $3
		WHERE applied_rate = $4;`,
		corrected, time.Now().UTC(), updatedBy, stale,
	)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to retag applied rates: %v", apperrors.ErrPersist, err)
	}
	return tag.RowsAffected(), nil
}
