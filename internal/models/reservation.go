package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reservation mirrors the reservations table. CustomerName and CustomerEmail
// are populated from a join against customers, not stored on the row.
type Reservation struct {
	ReservationID     string          `db:"reservation_id"`
	ReservationNumber string          `db:"reservation_number"`
	CustomerID        string          `db:"customer_id"`
	CustomerName      string          `db:"-"`
	CustomerEmail     string          `db:"-"`
	ContractPrice     decimal.Decimal `db:"contract_price"`
	ReservationDate   time.Time       `db:"reservation_date"`
	Status            string          `db:"status"`
	Notes             string          `db:"notes"`
	AuditFields
}
