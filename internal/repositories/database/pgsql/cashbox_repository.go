package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/kcetin/venue_booking_app/internal/apperrors"
	"github.com/kcetin/venue_booking_app/internal/core/domain"
	portsrepo "github.com/kcetin/venue_booking_app/internal/core/ports/repositories"
	"github.com/kcetin/venue_booking_app/internal/models"
	"github.com/kcetin/venue_booking_app/internal/utils/mapping"
)

type PgxCashBoxRepository struct {
	BaseRepository
}

// newPgxCashBoxRepository creates a new repository for cash box data.
func newPgxCashBoxRepository(pool *pgxpool.Pool) portsrepo.CashBoxRepositoryFacade {
	return &PgxCashBoxRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxCashBoxRepository implements portsrepo.CashBoxRepositoryFacade
var _ portsrepo.CashBoxRepositoryFacade = (*PgxCashBoxRepository)(nil)

const cashBoxColumns = `cash_box_id, name, opening_balance, balance, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanCashBox(row pgx.Row) (*models.CashBox, error) {
	var m models.CashBox
	err := row.Scan(
		&m.CashBoxID,
		&m.Name,
		&m.OpeningBalance,
		&m.Balance,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveCashBox inserts a new cash box.
func (r *PgxCashBoxRepository) SaveCashBox(ctx context.Context, cashBox domain.CashBox) error {
	m := mapping.ToModelCashBox(cashBox)

	query := `
		INSERT INTO cash_boxes (cash_box_id, name, opening_balance, balance, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CashBoxID,
		m.Name,
		m.OpeningBalance,
		m.Balance,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // Unique violation
				return fmt.Errorf("%w: cash box with ID %s already exists", apperrors.ErrDuplicate, m.CashBoxID)
			}
		}
		return fmt.Errorf("failed to save cash box %s: %w", m.CashBoxID, err)
	}
	return nil
}

// FindCashBoxByID retrieves a cash box by its ID.
func (r *PgxCashBoxRepository) FindCashBoxByID(ctx context.Context, cashBoxID string) (*domain.CashBox, error) {
	query := `
		SELECT ` + cashBoxColumns + `
		FROM cash_boxes
		WHERE cash_box_id = $1;
	`
	m, err := scanCashBox(r.Pool.QueryRow(ctx, query, cashBoxID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find cash box by ID %s: %w", cashBoxID, err)
	}

	d := mapping.ToDomainCashBox(*m)
	return &d, nil
}

// ListCashBoxes retrieves all cash boxes, active ones first.
func (r *PgxCashBoxRepository) ListCashBoxes(ctx context.Context) ([]domain.CashBox, error) {
	query := `
		SELECT ` + cashBoxColumns + `
		FROM cash_boxes
		ORDER BY is_active DESC, name;
	`
	return r.queryCashBoxes(ctx, query)
}

// ListActiveCashBoxes retrieves all cash boxes that have not been deactivated.
func (r *PgxCashBoxRepository) ListActiveCashBoxes(ctx context.Context) ([]domain.CashBox, error) {
	query := `
		SELECT ` + cashBoxColumns + `
		FROM cash_boxes
		WHERE is_active = TRUE
		ORDER BY name;
	`
	return r.queryCashBoxes(ctx, query)
}

func (r *PgxCashBoxRepository) queryCashBoxes(ctx context.Context, query string, args ...any) ([]domain.CashBox, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cash boxes: %w", err)
	}
	defer rows.Close()

	boxes := []domain.CashBox{}
	for rows.Next() {
		m, err := scanCashBox(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cash box row: %w", err)
		}
		boxes = append(boxes, mapping.ToDomainCashBox(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating cash box rows: %w", rows.Err())
	}
	return boxes, nil
}

// DeactivateCashBox marks a cash box as inactive.
func (r *PgxCashBoxRepository) DeactivateCashBox(ctx context.Context, cashBoxID string, userID string, now time.Time) error {
	query := `
		UPDATE cash_boxes
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE cash_box_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, cashBoxID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate cash box %s: %w", cashBoxID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveLedgerEntries appends ledger entries and moves each owning box's stored
// balance inside one database transaction. The balance update and the entry
// insert see the same snapshot value, so the stored entry records the balance
// the box had immediately after the adjustment.
func (r *PgxCashBoxRepository) SaveLedgerEntries(ctx context.Context, entries []domain.CashBoxTransaction) ([]domain.CashBoxTransaction, error) {
	if len(entries) == 0 {
		return []domain.CashBoxTransaction{}, nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	adjustQuery := `
		UPDATE cash_boxes
		SET balance = balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE cash_box_id = $1
		RETURNING balance;
	`
	insertQuery := `
		INSERT INTO cash_box_transactions (transaction_id, cash_box_id, kind, amount, date, description, reservation_id, balance_snapshot, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`

	saved := make([]domain.CashBoxTransaction, 0, len(entries))
	for _, entry := range entries {
		delta := entry.Amount
		if !entry.Kind.IsInflow() {
			delta = delta.Neg()
		}

		var newBalance decimal.Decimal
		err := tx.QueryRow(ctx, adjustQuery,
			entry.CashBoxID,
			delta,
			entry.LastUpdatedAt,
			entry.LastUpdatedBy,
		).Scan(&newBalance)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.ErrNotFound
			}
			return nil, fmt.Errorf("failed to adjust balance of cash box %s: %w", entry.CashBoxID, err)
		}

		entry.BalanceSnapshot = newBalance
		m := mapping.ToModelCashBoxTransaction(entry)

		_, err = tx.Exec(ctx, insertQuery,
			m.TransactionID,
			m.CashBoxID,
			m.Kind,
			m.Amount,
			m.Date,
			m.Description,
			m.ReservationID,
			m.BalanceSnapshot,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return nil, fmt.Errorf("%w: ledger entry with ID %s already exists", apperrors.ErrDuplicate, m.TransactionID)
			}
			return nil, fmt.Errorf("failed to insert ledger entry %s: %w", m.TransactionID, err)
		}

		saved = append(saved, entry)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return saved, nil
}

const transactionColumns = `transaction_id, cash_box_id, kind, amount, date, description, reservation_id, balance_snapshot, created_at, created_by, last_updated_at, last_updated_by`

func scanTransaction(row pgx.Row) (*models.CashBoxTransaction, error) {
	var m models.CashBoxTransaction
	err := row.Scan(
		&m.TransactionID,
		&m.CashBoxID,
		&m.Kind,
		&m.Amount,
		&m.Date,
		&m.Description,
		&m.ReservationID,
		&m.BalanceSnapshot,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListTransactionsByCashBox retrieves the ledger of one cash box.
func (r *PgxCashBoxRepository) ListTransactionsByCashBox(ctx context.Context, cashBoxID string) ([]domain.CashBoxTransaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM cash_box_transactions
		WHERE cash_box_id = $1
		ORDER BY date, created_at;
	`
	return r.queryTransactions(ctx, query, cashBoxID)
}

// ListTransactionsFrom retrieves all ledger entries dated on or after from.
func (r *PgxCashBoxRepository) ListTransactionsFrom(ctx context.Context, from time.Time) ([]domain.CashBoxTransaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM cash_box_transactions
		WHERE date >= $1
		ORDER BY date, created_at;
	`
	return r.queryTransactions(ctx, query, from)
}

func (r *PgxCashBoxRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.CashBoxTransaction, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cash box transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.CashBoxTransaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cash box transaction row: %w", err)
		}
		txns = append(txns, mapping.ToDomainCashBoxTransaction(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating cash box transaction rows: %w", rows.Err())
	}
	return txns, nil
}
