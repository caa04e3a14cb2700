package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/kcetin/venue_booking_app/internal/apperrors"
	"github.com/kcetin/venue_booking_app/internal/core/domain"
	portssvc "github.com/kcetin/venue_booking_app/internal/core/ports/services"
	"github.com/kcetin/venue_booking_app/internal/core/services"
)

// --- Test Suite Setup ---
type CashflowServiceTestSuite struct {
	suite.Suite
	mockBalanceSvc      *MockBalanceService
	mockPaymentRepo     *MockPaymentRepository
	mockCashBoxRepo     *MockCashBoxRepository
	mockReservationRepo *MockReservationRepository
	service             portssvc.CashflowServiceFacade
	fixedNow            time.Time
	today               time.Time
}

func (suite *CashflowServiceTestSuite) SetupTest() {
	suite.mockBalanceSvc = new(MockBalanceService)
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.mockCashBoxRepo = new(MockCashBoxRepository)
	suite.mockReservationRepo = new(MockReservationRepository)
	suite.fixedNow = time.Date(2025, 6, 16, 14, 30, 0, 0, time.UTC)
	suite.today = time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	suite.service = services.NewCashflowService(
		suite.mockBalanceSvc,
		suite.mockPaymentRepo,
		suite.mockCashBoxRepo,
		suite.mockReservationRepo,
		services.WithCashflowClock(func() time.Time { return suite.fixedNow }),
	)
}

func (suite *CashflowServiceTestSuite) reservationFixture(number, customer string, price int64, date time.Time) domain.Reservation {
	return domain.Reservation{
		ReservationID:     uuid.NewString(),
		ReservationNumber: number,
		CustomerName:      customer,
		CustomerEmail:     "customer@example.com",
		ContractPrice:     decimal.NewFromInt(price),
		ReservationDate:   date,
		Status:            domain.ReservationOpen,
	}
}

// --- PendingObligations ---

func (suite *CashflowServiceTestSuite) TestPendingObligations_OnlyPositiveRemainders() {
	ctx := context.Background()
	dueDate := suite.today.AddDate(0, 0, 10)
	partlyPaid := suite.reservationFixture("RSV-1", "Ayse Yilmaz", 5000, dueDate)
	fullyPaid := suite.reservationFixture("RSV-2", "Mehmet Demir", 3000, dueDate)
	overPaid := suite.reservationFixture("RSV-3", "Zeynep Kaya", 2000, dueDate)

	suite.mockReservationRepo.On("ListActiveReservations", ctx).Return([]domain.Reservation{partlyPaid, fullyPaid, overPaid}, nil).Once()
	suite.mockPaymentRepo.On("SumActiveGroupedByReservation", ctx).Return(map[string]decimal.Decimal{
		partlyPaid.ReservationID: decimal.NewFromInt(2000),
		fullyPaid.ReservationID:  decimal.NewFromInt(3000),
		overPaid.ReservationID:   decimal.NewFromInt(2500),
	}, nil).Once()

	obligations, err := suite.service.PendingObligations(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(obligations, 1)
	suite.Equal(partlyPaid.ReservationID, obligations[0].ReservationID)
	suite.True(obligations[0].Amount.Equal(decimal.NewFromInt(3000)))
	suite.Equal(dueDate, obligations[0].DueDate)
	suite.Equal("customer@example.com", obligations[0].CustomerEmail)
}

func (suite *CashflowServiceTestSuite) TestPendingObligations_UnpaidReservation() {
	ctx := context.Background()
	unpaid := suite.reservationFixture("RSV-4", "Ali Can", 4000, suite.today.AddDate(0, 1, 0))

	suite.mockReservationRepo.On("ListActiveReservations", ctx).Return([]domain.Reservation{unpaid}, nil).Once()
	suite.mockPaymentRepo.On("SumActiveGroupedByReservation", ctx).Return(map[string]decimal.Decimal{}, nil).Once()

	obligations, err := suite.service.PendingObligations(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(obligations, 1)
	suite.True(obligations[0].Amount.Equal(decimal.NewFromInt(4000)))
}

// --- Forecast ---

func (suite *CashflowServiceTestSuite) TestForecast_WeeklyTwoPeriods() {
	ctx := context.Background()
	reservation := suite.reservationFixture("RSV-1", "Ayse Yilmaz", 300, suite.today.AddDate(0, 0, 2))
	payment := domain.Payment{
		PaymentID:     uuid.NewString(),
		ReservationID: reservation.ReservationID,
		Amount:        decimal.NewFromInt(300),
		PaymentDate:   suite.today.AddDate(0, 0, 2),
	}
	expense := domain.CashBoxTransaction{
		TransactionID: uuid.NewString(),
		CashBoxID:     uuid.NewString(),
		Kind:          domain.KindExpense,
		Amount:        decimal.NewFromInt(100),
		Date:          suite.today.AddDate(0, 0, 9),
		Description:   "Cleaning supplies",
	}

	suite.mockReservationRepo.On("ListActiveReservations", ctx).Return([]domain.Reservation{reservation}, nil).Twice()
	suite.mockPaymentRepo.On("SumActiveGroupedByReservation", ctx).Return(map[string]decimal.Decimal{
		reservation.ReservationID: decimal.NewFromInt(300),
	}, nil).Once()
	suite.mockPaymentRepo.On("ListActiveFrom", ctx, suite.today).Return([]domain.Payment{payment}, nil).Once()
	suite.mockCashBoxRepo.On("ListTransactionsFrom", ctx, suite.today).Return([]domain.CashBoxTransaction{expense}, nil).Once()
	suite.mockBalanceSvc.On("TotalBalance", ctx).Return(decimal.Zero, nil).Once()

	periods, err := suite.service.Forecast(ctx, domain.PeriodWeekly, 2)

	suite.Require().NoError(err)
	suite.Require().Len(periods, 2)

	first := periods[0]
	suite.Equal(suite.today, first.PeriodStart)
	suite.Equal(suite.today.AddDate(0, 0, 6), first.PeriodEnd)
	suite.True(first.Inflow.Equal(decimal.NewFromInt(300)))
	suite.True(first.Outflow.IsZero())
	suite.True(first.BalanceStart.IsZero())
	suite.True(first.BalanceEnd.Equal(decimal.NewFromInt(300)))
	suite.Require().Len(first.InflowLines, 1)
	suite.Equal("Ayse Yilmaz RSV-1", first.InflowLines[0].Label)
	suite.Empty(first.OutflowLines)

	second := periods[1]
	suite.Equal(suite.today.AddDate(0, 0, 7), second.PeriodStart)
	suite.Equal(suite.today.AddDate(0, 0, 13), second.PeriodEnd)
	suite.True(second.Inflow.IsZero())
	suite.True(second.Outflow.Equal(decimal.NewFromInt(100)))
	suite.True(second.BalanceStart.Equal(decimal.NewFromInt(300)))
	suite.True(second.BalanceEnd.Equal(decimal.NewFromInt(200)))
	suite.Require().Len(second.OutflowLines, 1)
	suite.Equal("Cleaning supplies", second.OutflowLines[0].Label)
}

func (suite *CashflowServiceTestSuite) TestForecast_ObligationLabelledAsPending() {
	ctx := context.Background()
	reservation := suite.reservationFixture("RSV-7", "Mehmet Demir", 8000, suite.today.AddDate(0, 0, 3))

	suite.mockReservationRepo.On("ListActiveReservations", ctx).Return([]domain.Reservation{reservation}, nil).Twice()
	suite.mockPaymentRepo.On("SumActiveGroupedByReservation", ctx).Return(map[string]decimal.Decimal{
		reservation.ReservationID: decimal.NewFromInt(3000),
	}, nil).Once()
	suite.mockPaymentRepo.On("ListActiveFrom", ctx, suite.today).Return([]domain.Payment{}, nil).Once()
	suite.mockCashBoxRepo.On("ListTransactionsFrom", ctx, suite.today).Return([]domain.CashBoxTransaction{}, nil).Once()
	suite.mockBalanceSvc.On("TotalBalance", ctx).Return(decimal.NewFromInt(1000), nil).Once()

	periods, err := suite.service.Forecast(ctx, domain.PeriodWeekly, 1)

	suite.Require().NoError(err)
	suite.Require().Len(periods, 1)
	suite.True(periods[0].Inflow.Equal(decimal.NewFromInt(5000)))
	suite.Require().Len(periods[0].InflowLines, 1)
	suite.Equal("Mehmet Demir RSV-7 (Bekleyen)", periods[0].InflowLines[0].Label)
	suite.True(periods[0].BalanceEnd.Equal(decimal.NewFromInt(6000)))
}

func (suite *CashflowServiceTestSuite) TestForecast_MonthlyCalendarWindows() {
	ctx := context.Background()
	nextMonthDue := time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)
	reservation := suite.reservationFixture("RSV-9", "Zeynep Kaya", 2000, nextMonthDue)

	suite.mockReservationRepo.On("ListActiveReservations", ctx).Return([]domain.Reservation{reservation}, nil).Twice()
	suite.mockPaymentRepo.On("SumActiveGroupedByReservation", ctx).Return(map[string]decimal.Decimal{}, nil).Once()
	suite.mockPaymentRepo.On("ListActiveFrom", ctx, suite.today).Return([]domain.Payment{}, nil).Once()
	suite.mockCashBoxRepo.On("ListTransactionsFrom", ctx, suite.today).Return([]domain.CashBoxTransaction{}, nil).Once()
	suite.mockBalanceSvc.On("TotalBalance", ctx).Return(decimal.Zero, nil).Once()

	periods, err := suite.service.Forecast(ctx, domain.PeriodMonthly, 2)

	suite.Require().NoError(err)
	suite.Require().Len(periods, 2)

	suite.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), periods[0].PeriodStart)
	suite.Equal(time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), periods[0].PeriodEnd)
	suite.True(periods[0].Inflow.IsZero())

	suite.Equal(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), periods[1].PeriodStart)
	suite.Equal(time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC), periods[1].PeriodEnd)
	suite.True(periods[1].Inflow.Equal(decimal.NewFromInt(2000)))
}

func (suite *CashflowServiceTestSuite) TestForecast_NegativePaymentExcludedFromInflow() {
	ctx := context.Background()
	reservation := suite.reservationFixture("RSV-11", "Ali Can", 1000, suite.today.AddDate(0, 0, 2))
	refund := domain.Payment{
		PaymentID:     uuid.NewString(),
		ReservationID: reservation.ReservationID,
		Amount:        decimal.NewFromInt(-200),
		PaymentDate:   suite.today.AddDate(0, 0, 2),
	}

	suite.mockReservationRepo.On("ListActiveReservations", ctx).Return([]domain.Reservation{reservation}, nil).Twice()
	suite.mockPaymentRepo.On("SumActiveGroupedByReservation", ctx).Return(map[string]decimal.Decimal{
		reservation.ReservationID: decimal.NewFromInt(1000),
	}, nil).Once()
	suite.mockPaymentRepo.On("ListActiveFrom", ctx, suite.today).Return([]domain.Payment{refund}, nil).Once()
	suite.mockCashBoxRepo.On("ListTransactionsFrom", ctx, suite.today).Return([]domain.CashBoxTransaction{}, nil).Once()
	suite.mockBalanceSvc.On("TotalBalance", ctx).Return(decimal.Zero, nil).Once()

	periods, err := suite.service.Forecast(ctx, domain.PeriodWeekly, 1)

	suite.Require().NoError(err)
	suite.True(periods[0].Inflow.IsZero())
	suite.Empty(periods[0].InflowLines)
}

func (suite *CashflowServiceTestSuite) TestForecast_CountValidation() {
	ctx := context.Background()

	_, err := suite.service.Forecast(ctx, domain.PeriodWeekly, 0)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.Forecast(ctx, domain.PeriodWeekly, 121)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.Forecast(ctx, domain.PeriodKind("DAILY"), 4)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CashflowServiceTestSuite) TestForecast_ReadFailureFailsWhole() {
	ctx := context.Background()
	reservation := suite.reservationFixture("RSV-13", "Ayse Yilmaz", 1000, suite.today)

	suite.mockReservationRepo.On("ListActiveReservations", ctx).Return([]domain.Reservation{reservation}, nil).Once()
	suite.mockPaymentRepo.On("SumActiveGroupedByReservation", ctx).Return(map[string]decimal.Decimal{}, nil).Once()
	suite.mockPaymentRepo.On("ListActiveFrom", ctx, suite.today).Return(nil, assert.AnError).Once()

	_, err := suite.service.Forecast(ctx, domain.PeriodWeekly, 4)

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
	suite.mockBalanceSvc.AssertNotCalled(suite.T(), "TotalBalance", ctx)
}

func TestCashflowServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CashflowServiceTestSuite))
}
