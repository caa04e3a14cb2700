package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/kcetin/venue_booking_app/internal/apperrors"
	"github.com/kcetin/venue_booking_app/internal/core/domain"
	portssvc "github.com/kcetin/venue_booking_app/internal/core/ports/services"
	"github.com/kcetin/venue_booking_app/internal/core/services"
)

// --- Test Suite Setup ---
type BalanceServiceTestSuite struct {
	suite.Suite
	mockCashBoxRepo *MockCashBoxRepository
	mockPaymentRepo *MockPaymentRepository
	service         portssvc.BalanceServiceFacade
	cashBoxID       string
}

func (suite *BalanceServiceTestSuite) SetupTest() {
	suite.mockCashBoxRepo = new(MockCashBoxRepository)
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.service = services.NewBalanceService(suite.mockCashBoxRepo, suite.mockPaymentRepo)
	suite.cashBoxID = uuid.NewString()
}

func (suite *BalanceServiceTestSuite) mockBox(opening decimal.Decimal) *domain.CashBox {
	return &domain.CashBox{
		CashBoxID:      suite.cashBoxID,
		Name:           "Main till",
		OpeningBalance: opening,
		Balance:        opening,
		IsActive:       true,
	}
}

func ledgerEntry(cashBoxID string, kind domain.TransactionKind, amount int64) domain.CashBoxTransaction {
	return domain.CashBoxTransaction{
		TransactionID: uuid.NewString(),
		CashBoxID:     cashBoxID,
		Kind:          kind,
		Amount:        decimal.NewFromInt(amount),
		Date:          time.Now(),
	}
}

// --- Test Cases ---

func (suite *BalanceServiceTestSuite) TestCalculateBalance_LedgerAndPayments() {
	ctx := context.Background()

	suite.mockCashBoxRepo.On("FindCashBoxByID", ctx, suite.cashBoxID).Return(suite.mockBox(decimal.Zero), nil).Once()
	suite.mockCashBoxRepo.On("ListTransactionsByCashBox", ctx, suite.cashBoxID).Return([]domain.CashBoxTransaction{
		ledgerEntry(suite.cashBoxID, domain.KindIncome, 500),
	}, nil).Once()
	suite.mockPaymentRepo.On("ListActiveByCashBox", ctx, suite.cashBoxID).Return([]domain.Payment{
		{PaymentID: uuid.NewString(), CashBoxID: &suite.cashBoxID, Amount: decimal.NewFromInt(200)},
	}, nil).Once()

	balance, err := suite.service.CalculateBalance(ctx, suite.cashBoxID)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(700)), "expected 700, got %s", balance)
	suite.mockCashBoxRepo.AssertExpectations(suite.T())
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestCalculateBalance_UnknownBoxYieldsZero() {
	ctx := context.Background()
	suite.mockCashBoxRepo.On("FindCashBoxByID", ctx, suite.cashBoxID).Return(nil, apperrors.ErrNotFound).Once()

	balance, err := suite.service.CalculateBalance(ctx, suite.cashBoxID)

	suite.Require().NoError(err)
	suite.True(balance.IsZero())
	suite.mockCashBoxRepo.AssertExpectations(suite.T())
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "ListActiveByCashBox", ctx, suite.cashBoxID)
}

func (suite *BalanceServiceTestSuite) TestCalculateBalance_AllKinds() {
	ctx := context.Background()

	// 1000 + 300 (income) - 100 (expense) + 50 (transfer in) - 25 (transfer out) - 200 (refund)
	suite.mockCashBoxRepo.On("FindCashBoxByID", ctx, suite.cashBoxID).Return(suite.mockBox(decimal.NewFromInt(1000)), nil).Once()
	suite.mockCashBoxRepo.On("ListTransactionsByCashBox", ctx, suite.cashBoxID).Return([]domain.CashBoxTransaction{
		ledgerEntry(suite.cashBoxID, domain.KindIncome, 300),
		ledgerEntry(suite.cashBoxID, domain.KindExpense, 100),
		ledgerEntry(suite.cashBoxID, domain.KindTransferIn, 50),
		ledgerEntry(suite.cashBoxID, domain.KindTransferOut, 25),
		ledgerEntry(suite.cashBoxID, domain.KindCancellationRefund, 200),
	}, nil).Once()
	suite.mockPaymentRepo.On("ListActiveByCashBox", ctx, suite.cashBoxID).Return([]domain.Payment{}, nil).Once()

	balance, err := suite.service.CalculateBalance(ctx, suite.cashBoxID)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(1025)), "expected 1025, got %s", balance)
}

func (suite *BalanceServiceTestSuite) TestCalculateBalance_OrderIndependent() {
	ctx := context.Background()
	entries := []domain.CashBoxTransaction{
		ledgerEntry(suite.cashBoxID, domain.KindIncome, 300),
		ledgerEntry(suite.cashBoxID, domain.KindExpense, 100),
		ledgerEntry(suite.cashBoxID, domain.KindIncome, 50),
	}
	reversed := []domain.CashBoxTransaction{entries[2], entries[1], entries[0]}

	suite.mockCashBoxRepo.On("FindCashBoxByID", ctx, suite.cashBoxID).Return(suite.mockBox(decimal.Zero), nil).Twice()
	suite.mockCashBoxRepo.On("ListTransactionsByCashBox", ctx, suite.cashBoxID).Return(entries, nil).Once()
	suite.mockPaymentRepo.On("ListActiveByCashBox", ctx, suite.cashBoxID).Return([]domain.Payment{}, nil).Twice()

	first, err := suite.service.CalculateBalance(ctx, suite.cashBoxID)
	suite.Require().NoError(err)

	suite.mockCashBoxRepo.On("ListTransactionsByCashBox", ctx, suite.cashBoxID).Return(reversed, nil).Once()
	second, err := suite.service.CalculateBalance(ctx, suite.cashBoxID)
	suite.Require().NoError(err)

	suite.True(first.Equal(second))
	suite.True(first.Equal(decimal.NewFromInt(250)))
}

func (suite *BalanceServiceTestSuite) TestCalculateBalance_NegativePaymentSubtracts() {
	ctx := context.Background()

	suite.mockCashBoxRepo.On("FindCashBoxByID", ctx, suite.cashBoxID).Return(suite.mockBox(decimal.NewFromInt(500)), nil).Once()
	suite.mockCashBoxRepo.On("ListTransactionsByCashBox", ctx, suite.cashBoxID).Return([]domain.CashBoxTransaction{}, nil).Once()
	suite.mockPaymentRepo.On("ListActiveByCashBox", ctx, suite.cashBoxID).Return([]domain.Payment{
		{PaymentID: uuid.NewString(), CashBoxID: &suite.cashBoxID, Amount: decimal.NewFromInt(-150)},
	}, nil).Once()

	balance, err := suite.service.CalculateBalance(ctx, suite.cashBoxID)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(350)))
}

func (suite *BalanceServiceTestSuite) TestCalculateBalance_TransactionListError() {
	ctx := context.Background()
	repoErr := apperrors.ErrInternal

	suite.mockCashBoxRepo.On("FindCashBoxByID", ctx, suite.cashBoxID).Return(suite.mockBox(decimal.Zero), nil).Once()
	suite.mockCashBoxRepo.On("ListTransactionsByCashBox", ctx, suite.cashBoxID).Return(nil, repoErr).Once()

	_, err := suite.service.CalculateBalance(ctx, suite.cashBoxID)

	suite.Require().Error(err)
	suite.ErrorIs(err, repoErr)
}

func (suite *BalanceServiceTestSuite) TestTotalBalance_SumsActiveBoxes() {
	ctx := context.Background()
	boxA := domain.CashBox{CashBoxID: uuid.NewString(), OpeningBalance: decimal.NewFromInt(100), IsActive: true}
	boxB := domain.CashBox{CashBoxID: uuid.NewString(), OpeningBalance: decimal.NewFromInt(40), IsActive: true}

	suite.mockCashBoxRepo.On("ListActiveCashBoxes", ctx).Return([]domain.CashBox{boxA, boxB}, nil).Once()
	for _, box := range []domain.CashBox{boxA, boxB} {
		suite.mockCashBoxRepo.On("FindCashBoxByID", ctx, box.CashBoxID).Return(&box, nil).Once()
		suite.mockCashBoxRepo.On("ListTransactionsByCashBox", ctx, box.CashBoxID).Return([]domain.CashBoxTransaction{}, nil).Once()
		suite.mockPaymentRepo.On("ListActiveByCashBox", ctx, box.CashBoxID).Return([]domain.Payment{}, nil).Once()
	}

	total, err := suite.service.TotalBalance(ctx)

	suite.Require().NoError(err)
	suite.True(total.Equal(decimal.NewFromInt(140)), "expected 140, got %s", total)
}

func (suite *BalanceServiceTestSuite) TestTotalBalance_NoBoxes() {
	ctx := context.Background()
	suite.mockCashBoxRepo.On("ListActiveCashBoxes", ctx).Return([]domain.CashBox{}, nil).Once()

	total, err := suite.service.TotalBalance(ctx)

	suite.Require().NoError(err)
	suite.True(total.IsZero())
}

func TestBalanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BalanceServiceTestSuite))
}
