package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment mirrors the payments table.
type Payment struct {
	PaymentID     string          `db:"payment_id"`
	ReservationID string          `db:"reservation_id"`
	CashBoxID     *string         `db:"cash_box_id"` // Nullable
	Amount        decimal.Decimal `db:"amount"`
	PaymentDate   time.Time       `db:"payment_date"`
	Method        string          `db:"method"`
	Notes         string          `db:"notes"`
	IsCancelled   bool            `db:"is_cancelled"`
	CancelledAt   *time.Time      `db:"cancelled_at"` // Nullable
	AuditFields
}
