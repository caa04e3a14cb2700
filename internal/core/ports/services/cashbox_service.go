package services

import (
	"context"

	"github.com/kcetin/venue_booking_app/internal/core/domain"
	"github.com/kcetin/venue_booking_app/internal/dto"
)

// CashBoxServiceFacade defines cash box administration operations
type CashBoxServiceFacade interface {
	// CreateCashBox creates a cash box with an opening balance.
	CreateCashBox(ctx context.Context, userID string, req dto.CreateCashBoxRequest) (*domain.CashBox, error)

	// GetCashBox retrieves one cash box together with its recomputed balance.
	GetCashBox(ctx context.Context, cashBoxID string) (*domain.CashBox, error)

	// ListCashBoxes retrieves all cash boxes.
	ListCashBoxes(ctx context.Context) ([]domain.CashBox, error)

	// DeactivateCashBox hides a cash box from new activity without losing history.
	DeactivateCashBox(ctx context.Context, userID string, cashBoxID string) error

	// RecordLedgerEntry appends a manual income or expense entry and moves
	// the box balance accordingly.
	RecordLedgerEntry(ctx context.Context, userID string, cashBoxID string, req dto.CreateLedgerEntryRequest) (*domain.CashBoxTransaction, error)

	// Transfer moves an amount between two cash boxes as a paired
	// transfer-out and transfer-in.
	Transfer(ctx context.Context, userID string, req dto.TransferRequest) error

	// ListLedger retrieves a cash box's ledger entries.
	ListLedger(ctx context.Context, cashBoxID string) ([]domain.CashBoxTransaction, error)
}
