package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kcetin/venue_booking_app/internal/core/domain"
)

// CreateCashBoxRequest is the request body for creating a cash box.
type CreateCashBoxRequest struct {
	Name           string          `json:"name" binding:"required,min=1,max=100"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
}

// CreateLedgerEntryRequest is the request body for a manual ledger entry.
type CreateLedgerEntryRequest struct {
	Kind        string          `json:"kind" binding:"required,oneof=INCOME EXPENSE"`
	Amount      decimal.Decimal `json:"amount" binding:"required,gt=0"`
	Date        time.Time       `json:"date" binding:"required"`
	Description string          `json:"description" binding:"max=500"`
}

// TransferRequest is the request body for moving money between cash boxes.
type TransferRequest struct {
	FromCashBoxID string          `json:"fromCashBoxId" binding:"required,uuid"`
	ToCashBoxID   string          `json:"toCashBoxId" binding:"required,uuid"`
	Amount        decimal.Decimal `json:"amount" binding:"required,gt=0"`
	Date          time.Time       `json:"date" binding:"required"`
	Description   string          `json:"description" binding:"max=500"`
}

// CashBoxResponse wraps a single cash box.
type CashBoxResponse struct {
	CashBox domain.CashBox `json:"cashBox"`
}

// ListCashBoxesResponse wraps a list of cash boxes.
type ListCashBoxesResponse struct {
	CashBoxes []domain.CashBox `json:"cashBoxes"`
}

// LedgerEntryResponse wraps a single ledger entry.
type LedgerEntryResponse struct {
	Transaction domain.CashBoxTransaction `json:"transaction"`
}

// LedgerResponse wraps a cash box's ledger entries.
type LedgerResponse struct {
	Transactions []domain.CashBoxTransaction `json:"transactions"`
}
