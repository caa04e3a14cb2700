package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind classifies a ledger entry on a cash box.
type TransactionKind string

const (
	KindIncome             TransactionKind = "INCOME"
	KindExpense            TransactionKind = "EXPENSE"
	KindTransferIn         TransactionKind = "TRANSFER_IN"
	KindTransferOut        TransactionKind = "TRANSFER_OUT"
	KindTransfer           TransactionKind = "TRANSFER"
	KindCancellationRefund TransactionKind = "CANCELLATION_REFUND"
)

// CashBox is a named money pool (a till or a bank account).
// Balance is a denormalized running balance; the replay calculator derives
// the same figure from the opening balance, the ledger and linked payments.
type CashBox struct {
	CashBoxID      string          `json:"cashBoxID"` // Primary Key (UUID)
	Name           string          `json:"name"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Balance        decimal.Decimal `json:"balance"`
	IsActive       bool            `json:"isActive"`
	AuditFields
}

// CashBoxTransaction is an immutable ledger entry on a cash box.
// Direction is derived from Kind. Manual entries and transfers carry
// positive amounts; a CANCELLATION_REFUND keeps the signed amount of the
// payment it reverses. BalanceSnapshot is the running balance captured when
// the entry was written and is never recomputed afterwards.
type CashBoxTransaction struct {
	TransactionID   string          `json:"transactionID"` // Primary Key (UUID)
	CashBoxID       string          `json:"cashBoxID"`
	Kind            TransactionKind `json:"kind"`
	Amount          decimal.Decimal `json:"amount"`
	Date            time.Time       `json:"date"`
	Description     string          `json:"description"`
	ReservationID   *string         `json:"reservationID,omitempty"` // set on reversal entries
	BalanceSnapshot decimal.Decimal `json:"balanceSnapshot"`
	AuditFields
}

// IsInflow reports whether the kind adds money to the box under the replay
// rules. Every kind outside the two income-like buckets is treated as an
// outflow, including CANCELLATION_REFUND.
func (k TransactionKind) IsInflow() bool {
	return k == KindIncome || k == KindTransferIn
}
