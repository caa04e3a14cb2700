package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/kcetin/venue_booking_app/internal/core/domain"
	portsrepo "github.com/kcetin/venue_booking_app/internal/core/ports/repositories"
	portssvc "github.com/kcetin/venue_booking_app/internal/core/ports/services"
)

// --- Mock CashBoxRepository ---
type MockCashBoxRepository struct {
	mock.Mock
}

// Ensure MockCashBoxRepository implements portsrepo.CashBoxRepositoryFacade
var _ portsrepo.CashBoxRepositoryFacade = (*MockCashBoxRepository)(nil)

func (m *MockCashBoxRepository) FindCashBoxByID(ctx context.Context, cashBoxID string) (*domain.CashBox, error) {
	args := m.Called(ctx, cashBoxID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashBox), args.Error(1)
}

func (m *MockCashBoxRepository) ListCashBoxes(ctx context.Context) ([]domain.CashBox, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashBox), args.Error(1)
}

func (m *MockCashBoxRepository) ListActiveCashBoxes(ctx context.Context) ([]domain.CashBox, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashBox), args.Error(1)
}

func (m *MockCashBoxRepository) SaveCashBox(ctx context.Context, cashBox domain.CashBox) error {
	args := m.Called(ctx, cashBox)
	return args.Error(0)
}

func (m *MockCashBoxRepository) DeactivateCashBox(ctx context.Context, cashBoxID string, userID string, now time.Time) error {
	args := m.Called(ctx, cashBoxID, userID, now)
	return args.Error(0)
}

func (m *MockCashBoxRepository) ListTransactionsByCashBox(ctx context.Context, cashBoxID string) ([]domain.CashBoxTransaction, error) {
	args := m.Called(ctx, cashBoxID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashBoxTransaction), args.Error(1)
}

func (m *MockCashBoxRepository) ListTransactionsFrom(ctx context.Context, from time.Time) ([]domain.CashBoxTransaction, error) {
	args := m.Called(ctx, from)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashBoxTransaction), args.Error(1)
}

func (m *MockCashBoxRepository) SaveLedgerEntries(ctx context.Context, entries []domain.CashBoxTransaction) ([]domain.CashBoxTransaction, error) {
	args := m.Called(ctx, entries)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashBoxTransaction), args.Error(1)
}

// --- Mock PaymentRepository ---
type MockPaymentRepository struct {
	mock.Mock
}

var _ portsrepo.PaymentRepositoryFacade = (*MockPaymentRepository)(nil)

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListActiveByReservation(ctx context.Context, reservationID string) ([]domain.Payment, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListActiveByCashBox(ctx context.Context, cashBoxID string) ([]domain.Payment, error) {
	args := m.Called(ctx, cashBoxID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListActiveFrom(ctx context.Context, from time.Time) ([]domain.Payment, error) {
	args := m.Called(ctx, from)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) SumActiveByReservation(ctx context.Context, reservationID string) (decimal.Decimal, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPaymentRepository) SumActiveGroupedByReservation(ctx context.Context) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

func (m *MockPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) UpdatePayment(ctx context.Context, payment domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) MarkPaymentCancelled(ctx context.Context, paymentID string, userID string, cancelledAt time.Time) error {
	args := m.Called(ctx, paymentID, userID, cancelledAt)
	return args.Error(0)
}

// --- Mock ReservationRepository ---
type MockReservationRepository struct {
	mock.Mock
}

var _ portsrepo.ReservationRepositoryFacade = (*MockReservationRepository)(nil)

func (m *MockReservationRepository) FindReservationByID(ctx context.Context, reservationID string) (*domain.Reservation, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) ListReservations(ctx context.Context, limit int, offset int) ([]domain.Reservation, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) ListActiveReservations(ctx context.Context) ([]domain.Reservation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) SaveReservation(ctx context.Context, reservation domain.Reservation) error {
	args := m.Called(ctx, reservation)
	return args.Error(0)
}

func (m *MockReservationRepository) UpdateReservationStatus(ctx context.Context, reservationID string, status domain.ReservationStatus, userID string, now time.Time) error {
	args := m.Called(ctx, reservationID, status, userID, now)
	return args.Error(0)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// --- Mock BalanceService (as used by CashflowService and CashBoxService) ---
type MockBalanceService struct {
	mock.Mock
}

var _ portssvc.BalanceServiceFacade = (*MockBalanceService)(nil)

func (m *MockBalanceService) CalculateBalance(ctx context.Context, cashBoxID string) (decimal.Decimal, error) {
	args := m.Called(ctx, cashBoxID)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBalanceService) TotalBalance(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock PaymentNotifier ---
type MockPaymentNotifier struct {
	mock.Mock
}

var _ portssvc.PaymentNotifier = (*MockPaymentNotifier)(nil)

func (m *MockPaymentNotifier) NotifyPaymentReminder(ctx context.Context, data portssvc.PaymentReminderData) error {
	args := m.Called(ctx, data)
	return args.Error(0)
}
