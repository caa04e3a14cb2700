package repositories

import (
	"context"
	"time"

	"github.com/kcetin/venue_booking_app/internal/core/domain"
)

// ReservationReader defines read operations for reservation data
type ReservationReader interface {
	// FindReservationByID retrieves a reservation with its customer details.
	FindReservationByID(ctx context.Context, reservationID string) (*domain.Reservation, error)

	// ListReservations retrieves reservations ordered by reservation date.
	ListReservations(ctx context.Context, limit int, offset int) ([]domain.Reservation, error)

	// ListActiveReservations retrieves all non-cancelled reservations.
	ListActiveReservations(ctx context.Context) ([]domain.Reservation, error)
}

// ReservationWriter defines write operations for reservation data
type ReservationWriter interface {
	// SaveReservation persists a new reservation.
	SaveReservation(ctx context.Context, reservation domain.Reservation) error

	// UpdateReservationStatus sets the reservation's status field.
	UpdateReservationStatus(ctx context.Context, reservationID string, status domain.ReservationStatus, userID string, now time.Time) error
}

// ReservationRepositoryFacade combines all reservation-related repository interfaces
type ReservationRepositoryFacade interface {
	ReservationReader
	ReservationWriter
}
