package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kcetin/venue_booking_app/internal/apperrors"
	"github.com/kcetin/venue_booking_app/internal/core/domain"
	portssvc "github.com/kcetin/venue_booking_app/internal/core/ports/services"
	"github.com/kcetin/venue_booking_app/internal/core/services"
)

// --- Test Suite Setup ---
type CancellationServiceTestSuite struct {
	suite.Suite
	mockPaymentRepo     *MockPaymentRepository
	mockReservationRepo *MockReservationRepository
	mockCashBoxRepo     *MockCashBoxRepository
	service             portssvc.CancellationServiceFacade
	fixedNow            time.Time
	userID              string
	reservation         domain.Reservation
	cashBoxID           string
}

func (suite *CancellationServiceTestSuite) SetupTest() {
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.mockReservationRepo = new(MockReservationRepository)
	suite.mockCashBoxRepo = new(MockCashBoxRepository)
	suite.fixedNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	suite.service = services.NewCancellationService(
		suite.mockPaymentRepo,
		suite.mockReservationRepo,
		suite.mockCashBoxRepo,
		services.WithCancellationClock(func() time.Time { return suite.fixedNow }),
	)

	suite.userID = uuid.NewString()
	suite.cashBoxID = uuid.NewString()
	suite.reservation = domain.Reservation{
		ReservationID:     uuid.NewString(),
		ReservationNumber: "RSV-2025-002",
		ContractPrice:     decimal.NewFromInt(1000),
		Status:            domain.ReservationConfirmed,
	}
}

func (suite *CancellationServiceTestSuite) activePayment(amount int64, withBox bool) domain.Payment {
	p := domain.Payment{
		PaymentID:     uuid.NewString(),
		ReservationID: suite.reservation.ReservationID,
		Amount:        decimal.NewFromInt(amount),
		Method:        domain.MethodCash,
	}
	if withBox {
		p.CashBoxID = &suite.cashBoxID
	}
	return p
}

func (suite *CancellationServiceTestSuite) expectStatusCancelled() {
	suite.mockReservationRepo.On("UpdateReservationStatus", mock.Anything, suite.reservation.ReservationID, domain.ReservationCancelled, suite.userID, suite.fixedNow).Return(nil).Once()
}

// --- Test Cases ---

func (suite *CancellationServiceTestSuite) TestCancelReservation_ReversesPaymentAndBox() {
	ctx := context.Background()
	payment := suite.activePayment(1000, true)

	suite.mockReservationRepo.On("FindReservationByID", ctx, suite.reservation.ReservationID).Return(&suite.reservation, nil).Once()
	suite.mockPaymentRepo.On("ListActiveByReservation", ctx, suite.reservation.ReservationID).Return([]domain.Payment{payment}, nil).Once()
	suite.mockPaymentRepo.On("MarkPaymentCancelled", ctx, payment.PaymentID, suite.userID, suite.fixedNow).Return(nil).Once()
	suite.mockCashBoxRepo.On("FindCashBoxByID", ctx, suite.cashBoxID).Return(&domain.CashBox{CashBoxID: suite.cashBoxID, IsActive: true, Balance: decimal.NewFromInt(1000)}, nil).Once()

	var savedEntries []domain.CashBoxTransaction
	suite.mockCashBoxRepo.On("SaveLedgerEntries", ctx, mock.AnythingOfType("[]domain.CashBoxTransaction")).
		Run(func(args mock.Arguments) {
			savedEntries = args.Get(1).([]domain.CashBoxTransaction)
		}).Return([]domain.CashBoxTransaction{{BalanceSnapshot: decimal.Zero}}, nil).Once()
	suite.expectStatusCancelled()

	report, err := suite.service.CancelReservation(ctx, suite.userID, suite.reservation.ReservationID)

	suite.Require().NoError(err)
	suite.Require().NotNil(report)
	suite.Require().Len(report.Results, 1)
	suite.True(report.Results[0].Reversed)
	suite.Empty(report.Results[0].Error)
	suite.Equal(payment.PaymentID, report.Results[0].PaymentID)
	suite.Zero(report.FailedCount())

	suite.Require().Len(savedEntries, 1)
	suite.Equal(domain.KindCancellationRefund, savedEntries[0].Kind)
	suite.True(savedEntries[0].Amount.Equal(decimal.NewFromInt(1000)))

	suite.mockReservationRepo.AssertExpectations(suite.T())
	suite.mockPaymentRepo.AssertExpectations(suite.T())
	suite.mockCashBoxRepo.AssertExpectations(suite.T())
}

func (suite *CancellationServiceTestSuite) TestCancelReservation_ReservationNotFound() {
	ctx := context.Background()
	suite.mockReservationRepo.On("FindReservationByID", ctx, suite.reservation.ReservationID).Return(nil, apperrors.ErrNotFound).Once()

	report, err := suite.service.CancelReservation(ctx, suite.userID, suite.reservation.ReservationID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(report)
	suite.mockReservationRepo.AssertNotCalled(suite.T(), "UpdateReservationStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CancellationServiceTestSuite) TestCancelReservation_BoxLookupFailureStillCancels() {
	ctx := context.Background()
	payment := suite.activePayment(1000, true)

	suite.mockReservationRepo.On("FindReservationByID", ctx, suite.reservation.ReservationID).Return(&suite.reservation, nil).Once()
	suite.mockPaymentRepo.On("ListActiveByReservation", ctx, suite.reservation.ReservationID).Return([]domain.Payment{payment}, nil).Once()
	suite.mockPaymentRepo.On("MarkPaymentCancelled", ctx, payment.PaymentID, suite.userID, suite.fixedNow).Return(nil).Once()
	suite.mockCashBoxRepo.On("FindCashBoxByID", ctx, suite.cashBoxID).Return(nil, apperrors.ErrNotFound).Once()
	suite.expectStatusCancelled()

	report, err := suite.service.CancelReservation(ctx, suite.userID, suite.reservation.ReservationID)

	suite.Require().NoError(err)
	suite.Require().Len(report.Results, 1)
	suite.False(report.Results[0].Reversed)
	suite.NotEmpty(report.Results[0].Error)
	suite.Equal(1, report.FailedCount())
	suite.mockCashBoxRepo.AssertNotCalled(suite.T(), "SaveLedgerEntries", mock.Anything, mock.Anything)
	suite.mockReservationRepo.AssertExpectations(suite.T())
}

func (suite *CancellationServiceTestSuite) TestCancelReservation_PaymentListFailureDegradesToZeroReversals() {
	ctx := context.Background()

	suite.mockReservationRepo.On("FindReservationByID", ctx, suite.reservation.ReservationID).Return(&suite.reservation, nil).Once()
	suite.mockPaymentRepo.On("ListActiveByReservation", ctx, suite.reservation.ReservationID).Return(nil, assert.AnError).Once()
	suite.expectStatusCancelled()

	report, err := suite.service.CancelReservation(ctx, suite.userID, suite.reservation.ReservationID)

	suite.Require().NoError(err)
	suite.Empty(report.Results)
	suite.mockReservationRepo.AssertExpectations(suite.T())
}

func (suite *CancellationServiceTestSuite) TestCancelReservation_MarkCancelledFailureIsRecorded() {
	ctx := context.Background()
	failing := suite.activePayment(600, true)
	succeeding := suite.activePayment(400, false)

	suite.mockReservationRepo.On("FindReservationByID", ctx, suite.reservation.ReservationID).Return(&suite.reservation, nil).Once()
	suite.mockPaymentRepo.On("ListActiveByReservation", ctx, suite.reservation.ReservationID).Return([]domain.Payment{failing, succeeding}, nil).Once()
	suite.mockPaymentRepo.On("MarkPaymentCancelled", ctx, failing.PaymentID, suite.userID, suite.fixedNow).Return(assert.AnError).Once()
	suite.mockPaymentRepo.On("MarkPaymentCancelled", ctx, succeeding.PaymentID, suite.userID, suite.fixedNow).Return(nil).Once()
	suite.expectStatusCancelled()

	report, err := suite.service.CancelReservation(ctx, suite.userID, suite.reservation.ReservationID)

	suite.Require().NoError(err)
	suite.Require().Len(report.Results, 2)
	suite.False(report.Results[0].Reversed)
	suite.True(report.Results[1].Reversed)
	suite.Equal(1, report.FailedCount())
	// A failed cancellation mark must not produce a refund entry.
	suite.mockCashBoxRepo.AssertNotCalled(suite.T(), "SaveLedgerEntries", mock.Anything, mock.Anything)
}

func (suite *CancellationServiceTestSuite) TestCancelReservation_PaymentWithoutBoxNeedsNoLedger() {
	ctx := context.Background()
	payment := suite.activePayment(500, false)

	suite.mockReservationRepo.On("FindReservationByID", ctx, suite.reservation.ReservationID).Return(&suite.reservation, nil).Once()
	suite.mockPaymentRepo.On("ListActiveByReservation", ctx, suite.reservation.ReservationID).Return([]domain.Payment{payment}, nil).Once()
	suite.mockPaymentRepo.On("MarkPaymentCancelled", ctx, payment.PaymentID, suite.userID, suite.fixedNow).Return(nil).Once()
	suite.expectStatusCancelled()

	report, err := suite.service.CancelReservation(ctx, suite.userID, suite.reservation.ReservationID)

	suite.Require().NoError(err)
	suite.Require().Len(report.Results, 1)
	suite.True(report.Results[0].Reversed)
	suite.mockCashBoxRepo.AssertNotCalled(suite.T(), "FindCashBoxByID", mock.Anything, mock.Anything)
	suite.mockCashBoxRepo.AssertNotCalled(suite.T(), "SaveLedgerEntries", mock.Anything, mock.Anything)
}

func (suite *CancellationServiceTestSuite) TestCancelReservation_StatusUpdateFailurePropagates() {
	ctx := context.Background()

	suite.mockReservationRepo.On("FindReservationByID", ctx, suite.reservation.ReservationID).Return(&suite.reservation, nil).Once()
	suite.mockPaymentRepo.On("ListActiveByReservation", ctx, suite.reservation.ReservationID).Return([]domain.Payment{}, nil).Once()
	suite.mockReservationRepo.On("UpdateReservationStatus", ctx, suite.reservation.ReservationID, domain.ReservationCancelled, suite.userID, suite.fixedNow).Return(assert.AnError).Once()

	report, err := suite.service.CancelReservation(ctx, suite.userID, suite.reservation.ReservationID)

	suite.Require().Error(err)
	suite.Nil(report)
}

func (suite *CancellationServiceTestSuite) TestCancelReservation_SecondRunFindsNothing() {
	ctx := context.Background()
	cancelled := suite.reservation
	cancelled.Status = domain.ReservationCancelled

	suite.mockReservationRepo.On("FindReservationByID", ctx, suite.reservation.ReservationID).Return(&cancelled, nil).Once()
	suite.mockPaymentRepo.On("ListActiveByReservation", ctx, suite.reservation.ReservationID).Return([]domain.Payment{}, nil).Once()
	suite.expectStatusCancelled()

	report, err := suite.service.CancelReservation(ctx, suite.userID, suite.reservation.ReservationID)

	suite.Require().NoError(err)
	suite.Empty(report.Results)
	suite.Zero(report.FailedCount())
}

func TestCancellationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CancellationServiceTestSuite))
}
