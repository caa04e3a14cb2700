package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kcetin/venue_booking_app/internal/core/domain"
)

// CreateReservationRequest is the request body for creating a reservation.
type CreateReservationRequest struct {
	ReservationNumber string          `json:"reservationNumber" binding:"required,min=1,max=50"`
	CustomerID        string          `json:"customerId" binding:"required,uuid"`
	ContractPrice     decimal.Decimal `json:"contractPrice" binding:"required,gt=0"`
	ReservationDate   time.Time       `json:"reservationDate" binding:"required"`
	Notes             string          `json:"notes" binding:"max=1000"`
}

// UpdateReservationStatusRequest is the request body for a status transition.
type UpdateReservationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=OPEN CONFIRMED COMPLETED CANCELLED"`
}

// ReservationResponse wraps a single reservation.
type ReservationResponse struct {
	Reservation domain.Reservation `json:"reservation"`
}

// ListReservationsResponse wraps a page of reservations.
type ListReservationsResponse struct {
	Reservations []domain.Reservation `json:"reservations"`
}

// ReservationDetailResponse is a reservation with its payment summary.
type ReservationDetailResponse struct {
	Reservation domain.Reservation `json:"reservation"`
	Payments    []domain.Payment   `json:"payments"`
	TotalPaid   decimal.Decimal    `json:"totalPaid"`
	Remaining   decimal.Decimal    `json:"remaining"`
}
