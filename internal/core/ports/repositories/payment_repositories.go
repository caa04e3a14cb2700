package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kcetin/venue_booking_app/internal/core/domain"
)

// PaymentReader defines read operations for payment data
type PaymentReader interface {
	// FindPaymentByID retrieves a specific payment by its unique identifier.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// ListActiveByReservation retrieves the non-cancelled payments of a
	// reservation in creation order.
	ListActiveByReservation(ctx context.Context, reservationID string) ([]domain.Payment, error)

	// ListActiveByCashBox retrieves the non-cancelled payments linked to a cash box.
	ListActiveByCashBox(ctx context.Context, cashBoxID string) ([]domain.Payment, error)

	// ListActiveFrom retrieves all non-cancelled payments dated on or after from.
	ListActiveFrom(ctx context.Context, from time.Time) ([]domain.Payment, error)

	// SumActiveByReservation returns the sum of a reservation's non-cancelled
	// payment amounts.
	SumActiveByReservation(ctx context.Context, reservationID string) (decimal.Decimal, error)

	// SumActiveGroupedByReservation returns the per-reservation sums of all
	// non-cancelled payments.
	SumActiveGroupedByReservation(ctx context.Context) (map[string]decimal.Decimal, error)
}

// PaymentWriter defines write operations for payment data
type PaymentWriter interface {
	// SavePayment persists a new payment.
	SavePayment(ctx context.Context, payment domain.Payment) error

	// UpdatePayment updates the mutable fields of an un-cancelled payment.
	UpdatePayment(ctx context.Context, payment domain.Payment) error

	// MarkPaymentCancelled flips the one-way cancelled flag and records the timestamp.
	MarkPaymentCancelled(ctx context.Context, paymentID string, userID string, cancelledAt time.Time) error
}

// PaymentRepositoryFacade combines all payment-related repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
