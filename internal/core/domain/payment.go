package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod identifies how a reservation payment was collected.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "CASH"
	MethodCard         PaymentMethod = "CARD"
	MethodBankTransfer PaymentMethod = "BANK_TRANSFER"
)

// Payment is a reservation-scoped monetary movement. A positive amount is a
// collection, a negative amount is a refund. Payments and cash box ledger
// transactions are parallel, non-overlapping sources: creating a payment
// never writes a ledger entry.
type Payment struct {
	PaymentID     string          `json:"paymentID"` // Primary Key (UUID)
	ReservationID string          `json:"reservationID"`
	CashBoxID     *string         `json:"cashBoxID,omitempty"` // Nullable
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   time.Time       `json:"paymentDate"`
	Method        PaymentMethod   `json:"method"`
	Notes         string          `json:"notes"`
	IsCancelled   bool            `json:"isCancelled"`
	CancelledAt   *time.Time      `json:"cancelledAt,omitempty"`
	AuditFields
}
