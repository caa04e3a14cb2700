package services

import (
	"context"

	"github.com/shopspring/decimal"
)

// BalanceServiceFacade defines balance recomputation operations
type BalanceServiceFacade interface {
	// CalculateBalance replays a cash box's full history and returns the
	// resulting balance. An unknown cash box yields zero, not an error.
	CalculateBalance(ctx context.Context, cashBoxID string) (decimal.Decimal, error)

	// TotalBalance sums CalculateBalance over every active cash box.
	TotalBalance(ctx context.Context) (decimal.Decimal, error)
}
