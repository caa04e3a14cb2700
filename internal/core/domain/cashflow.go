package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodKind selects the bucketing of a cashflow forecast.
type PeriodKind string

const (
	PeriodWeekly  PeriodKind = "WEEKLY"
	PeriodMonthly PeriodKind = "MONTHLY"
)

// CashflowLine is a single labeled contribution to a period's inflow or outflow.
type CashflowLine struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// CashflowPeriod is one time bucket of the forward projection.
// BalanceEnd = BalanceStart + Inflow - Outflow, and each period starts where
// the previous one ended.
type CashflowPeriod struct {
	PeriodStart  time.Time       `json:"periodStart"`
	PeriodEnd    time.Time       `json:"periodEnd"` // inclusive, end of day
	Inflow       decimal.Decimal `json:"inflow"`
	Outflow      decimal.Decimal `json:"outflow"`
	BalanceStart decimal.Decimal `json:"balanceStart"`
	BalanceEnd   decimal.Decimal `json:"balanceEnd"`
	InflowLines  []CashflowLine  `json:"inflowLines"`
	OutflowLines []CashflowLine  `json:"outflowLines"`
}

// PendingObligation is the unpaid remainder of a reservation's contract
// price. It is synthesized for forecasting only and never persisted.
type PendingObligation struct {
	ReservationID     string          `json:"reservationID"`
	ReservationNumber string          `json:"reservationNumber"`
	CustomerName      string          `json:"customerName"`
	CustomerEmail     string          `json:"-"`
	Amount            decimal.Decimal `json:"amount"`
	DueDate           time.Time       `json:"dueDate"` // the reservation date
}
