package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kcetin/venue_booking_app/internal/apperrors"
	portsrepo "github.com/kcetin/venue_booking_app/internal/core/ports/repositories"
	portssvc "github.com/kcetin/venue_booking_app/internal/core/ports/services"
)

// balanceService implements the BalanceServiceFacade interface
type balanceService struct {
	BaseService
	cashBoxRepo portsrepo.CashBoxRepositoryFacade
	paymentRepo portsrepo.PaymentRepositoryFacade
}

// NewBalanceService creates a new balance service
func NewBalanceService(cashBoxRepo portsrepo.CashBoxRepositoryFacade, paymentRepo portsrepo.PaymentRepositoryFacade) portssvc.BalanceServiceFacade {
	return &balanceService{
		cashBoxRepo: cashBoxRepo,
		paymentRepo: paymentRepo,
	}
}

// Ensure balanceService implements the BalanceServiceFacade interface
var _ portssvc.BalanceServiceFacade = (*balanceService)(nil)

// CalculateBalance replays a cash box's full history into its current balance.
// The result is reproducible for the same store contents regardless of the
// order entries were inserted in. An unknown cash box yields zero so callers
// summing over boxes do not have to special-case stale references.
func (s *balanceService) CalculateBalance(ctx context.Context, cashBoxID string) (decimal.Decimal, error) {
	box, err := s.cashBoxRepo.FindCashBoxByID(ctx, cashBoxID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("failed to load cash box %s: %w", cashBoxID, err)
	}

	txns, err := s.cashBoxRepo.ListTransactionsByCashBox(ctx, cashBoxID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load transactions of cash box %s: %w", cashBoxID, err)
	}

	balance := box.OpeningBalance
	for _, txn := range txns {
		// CANCELLATION_REFUND is not an inflow kind, so it lands in the
		// subtract branch along with expenses and outbound transfers.
		if txn.Kind.IsInflow() {
			balance = balance.Add(txn.Amount)
		} else {
			balance = balance.Sub(txn.Amount)
		}
	}

	payments, err := s.paymentRepo.ListActiveByCashBox(ctx, cashBoxID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load payments of cash box %s: %w", cashBoxID, err)
	}
	for _, p := range payments {
		balance = balance.Add(p.Amount)
	}

	return balance, nil
}

// TotalBalance sums CalculateBalance over every active cash box.
func (s *balanceService) TotalBalance(ctx context.Context) (decimal.Decimal, error) {
	boxes, err := s.cashBoxRepo.ListActiveCashBoxes(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to list active cash boxes: %w", err)
	}

	total := decimal.Zero
	for _, box := range boxes {
		balance, err := s.CalculateBalance(ctx, box.CashBoxID)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(balance)
	}
	return total, nil
}
