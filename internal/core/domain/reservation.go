package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReservationStatus indicates the lifecycle state of a reservation.
type ReservationStatus string

const (
	ReservationOpen      ReservationStatus = "OPEN"
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationCompleted ReservationStatus = "COMPLETED"
	ReservationCancelled ReservationStatus = "CANCELLED"
)

// Reservation is a venue booking with a contracted price. Customer name and
// email are denormalized from the customer record for display and
// notification purposes.
type Reservation struct {
	ReservationID     string            `json:"reservationID"` // Primary Key (UUID)
	ReservationNumber string            `json:"reservationNumber"`
	CustomerID        string            `json:"customerID"`
	CustomerName      string            `json:"customerName"`
	CustomerEmail     string            `json:"customerEmail,omitempty"`
	ContractPrice     decimal.Decimal   `json:"contractPrice"`
	ReservationDate   time.Time         `json:"reservationDate"`
	Status            ReservationStatus `json:"status"`
	Notes             string            `json:"notes"`
	AuditFields
}
