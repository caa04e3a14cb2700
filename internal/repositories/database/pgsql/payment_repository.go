package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/kcetin/venue_booking_app/internal/apperrors"
	"github.com/kcetin/venue_booking_app/internal/core/domain"
	portsrepo "github.com/kcetin/venue_booking_app/internal/core/ports/repositories"
	"github.com/kcetin/venue_booking_app/internal/models"
	"github.com/kcetin/venue_booking_app/internal/utils/mapping"
)

type PgxPaymentRepository struct {
	pool *pgxpool.Pool
}

// newPgxPaymentRepository creates a new repository for payment data.
func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{pool: pool}
}

// Ensure PgxPaymentRepository implements portsrepo.PaymentRepositoryFacade
var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

const paymentColumns = `payment_id, reservation_id, cash_box_id, amount, payment_date, method, notes, is_cancelled, cancelled_at, created_at, created_by, last_updated_at, last_updated_by`

func scanPayment(row pgx.Row) (*models.Payment, error) {
	var m models.Payment
	err := row.Scan(
		&m.PaymentID,
		&m.ReservationID,
		&m.CashBoxID,
		&m.Amount,
		&m.PaymentDate,
		&m.Method,
		&m.Notes,
		&m.IsCancelled,
		&m.CancelledAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SavePayment inserts a new payment.
func (r *PgxPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	m := mapping.ToModelPayment(payment)

	query := `
		INSERT INTO payments (payment_id, reservation_id, cash_box_id, amount, payment_date, method, notes, is_cancelled, cancelled_at, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.pool.Exec(ctx, query,
		m.PaymentID,
		m.ReservationID,
		m.CashBoxID,
		m.Amount,
		m.PaymentDate,
		m.Method,
		m.Notes,
		m.IsCancelled,
		m.CancelledAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // Unique violation
				return fmt.Errorf("%w: payment with ID %s already exists", apperrors.ErrDuplicate, m.PaymentID)
			}
			if pgErr.Code == "23503" { // Foreign key violation
				return fmt.Errorf("%w: reservation or cash box referenced by payment %s does not exist", apperrors.ErrNotFound, m.PaymentID)
			}
		}
		return fmt.Errorf("failed to save payment %s: %w", m.PaymentID, err)
	}
	return nil
}

// FindPaymentByID retrieves a payment by its ID.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE payment_id = $1;
	`
	m, err := scanPayment(r.pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payment by ID %s: %w", paymentID, err)
	}

	d := mapping.ToDomainPayment(*m)
	return &d, nil
}

// ListActiveByReservation retrieves the non-cancelled payments of a reservation
// in creation order.
func (r *PgxPaymentRepository) ListActiveByReservation(ctx context.Context, reservationID string) ([]domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE reservation_id = $1 AND is_cancelled = FALSE
		ORDER BY created_at;
	`
	return r.queryPayments(ctx, query, reservationID)
}

// ListActiveByCashBox retrieves the non-cancelled payments linked to a cash box.
func (r *PgxPaymentRepository) ListActiveByCashBox(ctx context.Context, cashBoxID string) ([]domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE cash_box_id = $1 AND is_cancelled = FALSE
		ORDER BY created_at;
	`
	return r.queryPayments(ctx, query, cashBoxID)
}

// ListActiveFrom retrieves all non-cancelled payments dated on or after from.
func (r *PgxPaymentRepository) ListActiveFrom(ctx context.Context, from time.Time) ([]domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE payment_date >= $1 AND is_cancelled = FALSE
		ORDER BY payment_date, created_at;
	`
	return r.queryPayments(ctx, query, from)
}

func (r *PgxPaymentRepository) queryPayments(ctx context.Context, query string, args ...any) ([]domain.Payment, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	payments := []domain.Payment{}
	for rows.Next() {
		m, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments = append(payments, mapping.ToDomainPayment(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating payment rows: %w", rows.Err())
	}
	return payments, nil
}

// SumActiveByReservation returns the sum of a reservation's non-cancelled
// payment amounts.
func (r *PgxPaymentRepository) SumActiveByReservation(ctx context.Context, reservationID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM payments
		WHERE reservation_id = $1 AND is_cancelled = FALSE;
	`
	var sum decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, reservationID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum payments for reservation %s: %w", reservationID, err)
	}
	return sum, nil
}

// SumActiveGroupedByReservation returns the per-reservation sums of all
// non-cancelled payments.
func (r *PgxPaymentRepository) SumActiveGroupedByReservation(ctx context.Context) (map[string]decimal.Decimal, error) {
	query := `
		SELECT reservation_id, COALESCE(SUM(amount), 0)
		FROM payments
		WHERE is_cancelled = FALSE
		GROUP BY reservation_id;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query payment sums: %w", err)
	}
	defer rows.Close()

	sums := make(map[string]decimal.Decimal)
	for rows.Next() {
		var reservationID string
		var sum decimal.Decimal
		if err := rows.Scan(&reservationID, &sum); err != nil {
			return nil, fmt.Errorf("failed to scan payment sum row: %w", err)
		}
		sums[reservationID] = sum
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating payment sum rows: %w", rows.Err())
	}
	return sums, nil
}

// UpdatePayment updates the mutable fields of an un-cancelled payment.
func (r *PgxPaymentRepository) UpdatePayment(ctx context.Context, payment domain.Payment) error {
	m := mapping.ToModelPayment(payment)

	query := `
		UPDATE payments
		SET amount = $2, payment_date = $3, method = $4, notes = $5, last_updated_at = $6, last_updated_by = $7
		WHERE payment_id = $1 AND is_cancelled = FALSE;
	`
	cmdTag, err := r.pool.Exec(ctx, query,
		m.PaymentID,
		m.Amount,
		m.PaymentDate,
		m.Method,
		m.Notes,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment %s: %w", m.PaymentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkPaymentCancelled flips the one-way cancelled flag. A payment that is
// already cancelled is left untouched and reported as not found.
func (r *PgxPaymentRepository) MarkPaymentCancelled(ctx context.Context, paymentID string, userID string, cancelledAt time.Time) error {
	query := `
		UPDATE payments
		SET is_cancelled = TRUE, cancelled_at = $2, last_updated_at = $2, last_updated_by = $3
		WHERE payment_id = $1 AND is_cancelled = FALSE;
	`
	cmdTag, err := r.pool.Exec(ctx, query, paymentID, cancelledAt, userID)
	if err != nil {
		return fmt.Errorf("failed to cancel payment %s: %w", paymentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
