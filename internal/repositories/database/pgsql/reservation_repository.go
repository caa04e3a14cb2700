package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kcetin/venue_booking_app/internal/apperrors"
	"github.com/kcetin/venue_booking_app/internal/core/domain"
	portsrepo "github.com/kcetin/venue_booking_app/internal/core/ports/repositories"
	"github.com/kcetin/venue_booking_app/internal/models"
	"github.com/kcetin/venue_booking_app/internal/utils/mapping"
)

type PgxReservationRepository struct {
	pool *pgxpool.Pool
}

// newPgxReservationRepository creates a new repository for reservation data.
func newPgxReservationRepository(pool *pgxpool.Pool) portsrepo.ReservationRepositoryFacade {
	return &PgxReservationRepository{pool: pool}
}

// Ensure PgxReservationRepository implements portsrepo.ReservationRepositoryFacade
var _ portsrepo.ReservationRepositoryFacade = (*PgxReservationRepository)(nil)

// Reservations are always read joined with their customer so callers get the
// contact details needed for notifications without a second lookup.
const reservationSelect = `
	SELECT r.reservation_id, r.reservation_number, r.customer_id, c.name, c.email, r.contract_price, r.reservation_date, r.status, r.notes, r.created_at, r.created_by, r.last_updated_at, r.last_updated_by
	FROM reservations r
	JOIN customers c ON c.customer_id = r.customer_id
`

func scanReservation(row pgx.Row) (*models.Reservation, error) {
	var m models.Reservation
	err := row.Scan(
		&m.ReservationID,
		&m.ReservationNumber,
		&m.CustomerID,
		&m.CustomerName,
		&m.CustomerEmail,
		&m.ContractPrice,
		&m.ReservationDate,
		&m.Status,
		&m.Notes,
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

// SaveReservation inserts a new reservation.
func (r *PgxReservationRepository) SaveReservation(ctx context.Context, reservation domain.Reservation) error {
	m := mapping.ToModelReservation(reservation)

	query := `
		INSERT INTO reservations (reservation_id, reservation_number, customer_id, contract_price, reservation_date, status, notes, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.pool.Exec(ctx, query,
		m.ReservationID,
		m.ReservationNumber,
		m.CustomerID,
		m.ContractPrice,
		m.ReservationDate,
		m.Status,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // Unique violation
				return fmt.Errorf("%w: reservation number %s already exists", apperrors.ErrDuplicate, m.ReservationNumber)
			}
			if pgErr.Code == "23503" { // Foreign key violation
				return fmt.Errorf("%w: customer %s does not exist", apperrors.ErrNotFound, m.CustomerID)
			}
		}
		return fmt.Errorf("failed to save reservation %s: %w", m.ReservationID, err)
	}
	return nil
}

// FindReservationByID retrieves a reservation with its customer details.
func (r *PgxReservationRepository) FindReservationByID(ctx context.Context, reservationID string) (*domain.Reservation, error) {
	query := reservationSelect + `WHERE r.reservation_id = $1;`

	m, err := scanReservation(r.pool.QueryRow(ctx, query, reservationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reservation by ID %s: %w", reservationID, err)
	}

	d := mapping.ToDomainReservation(*m)
	return &d, nil
}

// ListReservations retrieves a paginated list ordered by reservation date.
func (r *PgxReservationRepository) ListReservations(ctx context.Context, limit int, offset int) ([]domain.Reservation, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := reservationSelect + `
		ORDER BY r.reservation_date DESC
		LIMIT $1 OFFSET $2;
	`
	return r.queryReservations(ctx, query, limit, offset)
}

// ListActiveReservations retrieves all non-cancelled reservations.
func (r *PgxReservationRepository) ListActiveReservations(ctx context.Context) ([]domain.Reservation, error) {
	query := reservationSelect + `
		WHERE r.status != $1
		ORDER BY r.reservation_date;
	`
	return r.queryReservations(ctx, query, string(domain.ReservationCancelled))
}

func (r *PgxReservationRepository) queryReservations(ctx context.Context, query string, args ...any) ([]domain.Reservation, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reservations: %w", err)
	}
	defer rows.Close()

	reservations := []domain.Reservation{}
	for rows.Next() {
		m, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reservation row: %w", err)
		}
		reservations = append(reservations, mapping.ToDomainReservation(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating reservation rows: %w", rows.Err())
	}
	return reservations, nil
}

// UpdateReservationStatus sets the reservation's status field.
func (r *PgxReservationRepository) UpdateReservationStatus(ctx context.Context, reservationID string, status domain.ReservationStatus, userID string, now time.Time) error {
	query := `
		UPDATE reservations
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE reservation_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query, reservationID, string(status), now, userID)
	if err != nil {
		return fmt.Errorf("failed to update status of reservation %s: %w", reservationID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
