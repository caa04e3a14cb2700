package repositories

import (
	"context"
	"time"

	"github.com/kcetin/venue_booking_app/internal/core/domain"
)

// CashBoxReader defines read operations for cash box data
type CashBoxReader interface {
	// FindCashBoxByID retrieves a specific cash box by its unique identifier.
	FindCashBoxByID(ctx context.Context, cashBoxID string) (*domain.CashBox, error)

	// ListCashBoxes retrieves all cash boxes, active ones first.
	ListCashBoxes(ctx context.Context) ([]domain.CashBox, error)

	// ListActiveCashBoxes retrieves all cash boxes that have not been deactivated.
	ListActiveCashBoxes(ctx context.Context) ([]domain.CashBox, error)
}

// CashBoxWriter defines write operations for cash box data
type CashBoxWriter interface {
	// SaveCashBox persists a new cash box.
	SaveCashBox(ctx context.Context, cashBox domain.CashBox) error

	// DeactivateCashBox marks a cash box as inactive. Cash boxes are never deleted.
	DeactivateCashBox(ctx context.Context, cashBoxID string, userID string, now time.Time) error
}

// CashBoxTransactionReader defines read operations for the cash box ledger
type CashBoxTransactionReader interface {
	// ListTransactionsByCashBox retrieves the ledger of one cash box,
	// ordered by date then creation order.
	ListTransactionsByCashBox(ctx context.Context, cashBoxID string) ([]domain.CashBoxTransaction, error)

	// ListTransactionsFrom retrieves all ledger entries dated on or after from,
	// across every cash box.
	ListTransactionsFrom(ctx context.Context, from time.Time) ([]domain.CashBoxTransaction, error)
}

// CashBoxTransactionWriter defines write operations for the cash box ledger
type CashBoxTransactionWriter interface {
	// SaveLedgerEntries appends ledger entries and moves each owning box's
	// stored balance by the entry's signed amount, all in a single database
	// transaction. Each returned entry carries the post-adjustment balance
	// as its snapshot.
	SaveLedgerEntries(ctx context.Context, entries []domain.CashBoxTransaction) ([]domain.CashBoxTransaction, error)
}

// CashBoxRepositoryFacade combines all cash-box-related repository interfaces
type CashBoxRepositoryFacade interface {
	CashBoxReader
	CashBoxWriter
	CashBoxTransactionReader
	CashBoxTransactionWriter
}
