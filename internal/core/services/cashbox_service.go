package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kcetin/venue_booking_app/internal/apperrors"
	"github.com/kcetin/venue_booking_app/internal/core/domain"
	portsrepo "github.com/kcetin/venue_booking_app/internal/core/ports/repositories"
	portssvc "github.com/kcetin/venue_booking_app/internal/core/ports/services"
	"github.com/kcetin/venue_booking_app/internal/dto"
)

// cashBoxService implements the CashBoxServiceFacade interface
type cashBoxService struct {
	BaseService
	cashBoxRepo portsrepo.CashBoxRepositoryFacade
	balanceSvc  portssvc.BalanceServiceFacade
	now         func() time.Time
}

// CashBoxServiceOption is a functional option for configuring the cash box service
type CashBoxServiceOption func(*cashBoxService)

// WithCashBoxClock overrides the time source, for tests.
func WithCashBoxClock(now func() time.Time) CashBoxServiceOption {
	return func(s *cashBoxService) {
		s.now = now
	}
}

// NewCashBoxService creates a new cash box service with the provided options
func NewCashBoxService(cashBoxRepo portsrepo.CashBoxRepositoryFacade, balanceSvc portssvc.BalanceServiceFacade, options ...CashBoxServiceOption) portssvc.CashBoxServiceFacade {
	svc := &cashBoxService{
		cashBoxRepo: cashBoxRepo,
		balanceSvc:  balanceSvc,
		now:         time.Now,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure cashBoxService implements the CashBoxServiceFacade interface
var _ portssvc.CashBoxServiceFacade = (*cashBoxService)(nil)

// CreateCashBox creates a cash box whose stored balance starts at the
// opening balance.
func (s *cashBoxService) CreateCashBox(ctx context.Context, userID string, req dto.CreateCashBoxRequest) (*domain.CashBox, error) {
	now := s.now()
	box := domain.CashBox{
		CashBoxID:      uuid.NewString(),
		Name:           req.Name,
		OpeningBalance: req.OpeningBalance,
		Balance:        req.OpeningBalance,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.cashBoxRepo.SaveCashBox(ctx, box); err != nil {
		s.LogError(ctx, err, "Failed to save cash box", slog.String("cash_box_id", box.CashBoxID))
		return nil, err
	}

	s.LogInfo(ctx, "Cash box created", slog.String("cash_box_id", box.CashBoxID), slog.String("name", box.Name))
	return &box, nil
}

// GetCashBox retrieves one cash box with its balance recomputed from the
// full history. The stored balance field is returned as-is alongside it;
// the two can diverge and the replayed value is the trustworthy one.
func (s *cashBoxService) GetCashBox(ctx context.Context, cashBoxID string) (*domain.CashBox, error) {
	box, err := s.cashBoxRepo.FindCashBoxByID(ctx, cashBoxID)
	if err != nil {
		return nil, err
	}

	balance, err := s.balanceSvc.CalculateBalance(ctx, cashBoxID)
	if err != nil {
		return nil, err
	}
	box.Balance = balance
	return box, nil
}

// ListCashBoxes retrieves all cash boxes.
func (s *cashBoxService) ListCashBoxes(ctx context.Context) ([]domain.CashBox, error) {
	return s.cashBoxRepo.ListCashBoxes(ctx)
}

// DeactivateCashBox hides a cash box from new activity. Its history stays
// intact and it keeps contributing to past-facing reports.
func (s *cashBoxService) DeactivateCashBox(ctx context.Context, userID string, cashBoxID string) error {
	if err := s.cashBoxRepo.DeactivateCashBox(ctx, cashBoxID, userID, s.now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate cash box", slog.String("cash_box_id", cashBoxID))
		return err
	}
	s.LogInfo(ctx, "Cash box deactivated", slog.String("cash_box_id", cashBoxID))
	return nil
}

// RecordLedgerEntry appends a manual income or expense entry and moves the
// box balance accordingly.
func (s *cashBoxService) RecordLedgerEntry(ctx context.Context, userID string, cashBoxID string, req dto.CreateLedgerEntryRequest) (*domain.CashBoxTransaction, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: ledger entry amount must be positive", apperrors.ErrValidation)
	}

	box, err := s.cashBoxRepo.FindCashBoxByID(ctx, cashBoxID)
	if err != nil {
		return nil, err
	}
	if !box.IsActive {
		return nil, fmt.Errorf("%w: cash box %s is deactivated", apperrors.ErrConflict, cashBoxID)
	}

	now := s.now()
	entry := domain.CashBoxTransaction{
		TransactionID: uuid.NewString(),
		CashBoxID:     cashBoxID,
		Kind:          domain.TransactionKind(req.Kind),
		Amount:        req.Amount,
		Date:          req.Date,
		Description:   req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	saved, err := s.cashBoxRepo.SaveLedgerEntries(ctx, []domain.CashBoxTransaction{entry})
	if err != nil {
		s.LogError(ctx, err, "Failed to save ledger entry", slog.String("cash_box_id", cashBoxID))
		return nil, err
	}

	s.LogInfo(ctx, "Ledger entry recorded",
		slog.String("cash_box_id", cashBoxID),
		slog.String("kind", req.Kind),
		slog.String("amount", req.Amount.String()))
	return &saved[0], nil
}

// Transfer moves an amount between two cash boxes as a paired transfer-out
// and transfer-in, written in one database transaction.
func (s *cashBoxService) Transfer(ctx context.Context, userID string, req dto.TransferRequest) error {
	if !req.Amount.IsPositive() {
		return fmt.Errorf("%w: transfer amount must be positive", apperrors.ErrValidation)
	}
	if req.FromCashBoxID == req.ToCashBoxID {
		return fmt.Errorf("%w: cannot transfer a cash box into itself", apperrors.ErrValidation)
	}

	for _, id := range []string{req.FromCashBoxID, req.ToCashBoxID} {
		box, err := s.cashBoxRepo.FindCashBoxByID(ctx, id)
		if err != nil {
			return err
		}
		if !box.IsActive {
			return fmt.Errorf("%w: cash box %s is deactivated", apperrors.ErrConflict, id)
		}
	}

	now := s.now()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
	entries := []domain.CashBoxTransaction{
		{
			TransactionID: uuid.NewString(),
			CashBoxID:     req.FromCashBoxID,
			Kind:          domain.KindTransferOut,
			Amount:        req.Amount,
			Date:          req.Date,
			Description:   req.Description,
			AuditFields:   audit,
		},
		{
			TransactionID: uuid.NewString(),
			CashBoxID:     req.ToCashBoxID,
			Kind:          domain.KindTransferIn,
			Amount:        req.Amount,
			Date:          req.Date,
			Description:   req.Description,
			AuditFields:   audit,
		},
	}

	if _, err := s.cashBoxRepo.SaveLedgerEntries(ctx, entries); err != nil {
		s.LogError(ctx, err, "Failed to save transfer entries",
			slog.String("from", req.FromCashBoxID),
			slog.String("to", req.ToCashBoxID))
		return err
	}

	s.LogInfo(ctx, "Transfer recorded",
		slog.String("from", req.FromCashBoxID),
		slog.String("to", req.ToCashBoxID),
		slog.String("amount", req.Amount.String()))
	return nil
}

// ListLedger retrieves a cash box's ledger entries.
func (s *cashBoxService) ListLedger(ctx context.Context, cashBoxID string) ([]domain.CashBoxTransaction, error) {
	if _, err := s.cashBoxRepo.FindCashBoxByID(ctx, cashBoxID); err != nil {
		return nil, err
	}
	return s.cashBoxRepo.ListTransactionsByCashBox(ctx, cashBoxID)
}
