package services

import (
	"context"

	"github.com/kcetin/venue_booking_app/internal/core/domain"
	"github.com/kcetin/venue_booking_app/internal/dto"
)

// PaymentServiceFacade defines payment lifecycle operations
type PaymentServiceFacade interface {
	// RecordPayment validates and persists a payment against a reservation,
	// confirming the reservation on its first payment.
	RecordPayment(ctx context.Context, userID string, req dto.CreatePaymentRequest) (*domain.Payment, error)

	// UpdatePayment edits an existing non-cancelled payment.
	UpdatePayment(ctx context.Context, userID string, paymentID string, req dto.UpdatePaymentRequest) (*domain.Payment, error)

	// CancelPayment marks a single payment cancelled and reverses its cash
	// box effect when one is linked.
	CancelPayment(ctx context.Context, userID string, paymentID string) error

	// GetPayment retrieves a payment by ID.
	GetPayment(ctx context.Context, paymentID string) (*domain.Payment, error)

	// ListPaymentsByReservation retrieves a reservation's active payments.
	ListPaymentsByReservation(ctx context.Context, reservationID string) ([]domain.Payment, error)
}
