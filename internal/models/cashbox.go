package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashBox mirrors the cash_boxes table.
type CashBox struct {
	CashBoxID      string          `db:"cash_box_id"`
	Name           string          `db:"name"`
	OpeningBalance decimal.Decimal `db:"opening_balance"`
	Balance        decimal.Decimal `db:"balance"`
	IsActive       bool            `db:"is_active"`
	AuditFields
}

// CashBoxTransaction mirrors the cash_box_transactions table.
type CashBoxTransaction struct {
	TransactionID   string          `db:"transaction_id"`
	CashBoxID       string          `db:"cash_box_id"`
	Kind            string          `db:"kind"`
	Amount          decimal.Decimal `db:"amount"`
	Date            time.Time       `db:"date"`
	Description     string          `db:"description"`
	ReservationID   *string         `db:"reservation_id"` // Nullable
	BalanceSnapshot decimal.Decimal `db:"balance_snapshot"`
	AuditFields
}
