package services

import (
	"context"

	"github.com/kcetin/venue_booking_app/internal/core/domain"
)

// CashflowServiceFacade defines cashflow forecasting operations
type CashflowServiceFacade interface {
	// Forecast produces count future periods of the given kind, starting at
	// the current period, with per-period inflow/outflow lines and chained
	// balances. Any storage failure fails the whole forecast.
	Forecast(ctx context.Context, kind domain.PeriodKind, count int) ([]domain.CashflowPeriod, error)

	// PendingObligations lists, per active reservation, the unpaid remainder
	// of the contract price.
	PendingObligations(ctx context.Context) ([]domain.PendingObligation, error)
}
