package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kcetin/venue_booking_app/internal/core/domain"
)

// CreatePaymentRequest is the request body for recording a payment.
type CreatePaymentRequest struct {
	ReservationID string          `json:"reservationId" binding:"required,uuid"`
	CashBoxID     *string         `json:"cashBoxId" binding:"omitempty,uuid"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	PaymentDate   time.Time       `json:"paymentDate" binding:"required"`
	Method        string          `json:"method" binding:"required,oneof=CASH CARD BANK_TRANSFER"`
	Notes         string          `json:"notes" binding:"max=500"`
}

// UpdatePaymentRequest is the request body for editing a payment.
type UpdatePaymentRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	PaymentDate time.Time       `json:"paymentDate" binding:"required"`
	Method      string          `json:"method" binding:"required,oneof=CASH CARD BANK_TRANSFER"`
	Notes       string          `json:"notes" binding:"max=500"`
}

// PaymentResponse wraps a single payment.
type PaymentResponse struct {
	Payment domain.Payment `json:"payment"`
}

// ListPaymentsResponse wraps a list of payments.
type ListPaymentsResponse struct {
	Payments []domain.Payment `json:"payments"`
}

// ReversalReportResponse is the outcome of a reservation cancellation: the
// updated reservation plus the per-payment reversal report.
type ReversalReportResponse struct {
	Reservation domain.Reservation    `json:"reservation"`
	Report      domain.ReversalReport `json:"report"`
}
