package services

import (
	"context"

	"github.com/kcetin/venue_booking_app/internal/core/domain"
	"github.com/kcetin/venue_booking_app/internal/dto"
)

// ReservationServiceFacade defines reservation operations
type ReservationServiceFacade interface {
	// CreateReservation creates a reservation in OPEN status.
	CreateReservation(ctx context.Context, userID string, req dto.CreateReservationRequest) (*domain.Reservation, error)

	// GetReservation retrieves a reservation with its payment summary.
	GetReservation(ctx context.Context, reservationID string) (*dto.ReservationDetailResponse, error)

	// ListReservations retrieves reservations with pagination.
	ListReservations(ctx context.Context, limit int, offset int) ([]domain.Reservation, error)

	// UpdateReservationStatus moves a reservation to a new lifecycle state.
	// The Cancelled transition is not accepted here; it runs through the
	// cancellation service so payment reversal is never skipped.
	UpdateReservationStatus(ctx context.Context, userID string, reservationID string, status domain.ReservationStatus) (*domain.Reservation, error)
}
