package services

import (
	"context"

	"github.com/kcetin/venue_booking_app/internal/core/domain"
)

// CancellationServiceFacade defines reservation cancellation operations
type CancellationServiceFacade interface {
	// CancelReservation cancels a reservation, reversing each of its active
	// payments on a best-effort basis. The status transition itself always
	// succeeds once the reservation is found; per-payment outcomes are
	// reported in the returned ReversalReport.
	CancelReservation(ctx context.Context, userID string, reservationID string) (*domain.ReversalReport, error)
}
