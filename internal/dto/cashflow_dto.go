package dto

import (
	"github.com/kcetin/venue_booking_app/internal/core/domain"
)

// CashflowResponse wraps the forecast periods.
type CashflowResponse struct {
	Cashflow []domain.CashflowPeriod `json:"cashflow"`
}

// PendingObligationsResponse wraps the outstanding reservation balances.
type PendingObligationsResponse struct {
	Obligations []domain.PendingObligation `json:"obligations"`
}
