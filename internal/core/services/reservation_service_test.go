package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kcetin/venue_booking_app/internal/apperrors"
	"github.com/kcetin/venue_booking_app/internal/core/domain"
	portssvc "github.com/kcetin/venue_booking_app/internal/core/ports/services"
	"github.com/kcetin/venue_booking_app/internal/core/services"
	"github.com/kcetin/venue_booking_app/internal/dto"
)

// --- Test Suite Setup ---
type ReservationServiceTestSuite struct {
	suite.Suite
	mockReservationRepo *MockReservationRepository
	mockPaymentRepo     *MockPaymentRepository
	service             portssvc.ReservationServiceFacade
	fixedNow            time.Time
	userID              string
}

func (suite *ReservationServiceTestSuite) SetupTest() {
	suite.mockReservationRepo = new(MockReservationRepository)
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.fixedNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	suite.service = services.NewReservationService(
		suite.mockReservationRepo,
		suite.mockPaymentRepo,
		services.WithReservationClock(func() time.Time { return suite.fixedNow }),
	)
	suite.userID = uuid.NewString()
}

// --- Test Cases ---

func (suite *ReservationServiceTestSuite) TestCreateReservation_StartsOpen() {
	ctx := context.Background()
	req := dto.CreateReservationRequest{
		ReservationNumber: "RSV-2025-010",
		CustomerID:        uuid.NewString(),
		ContractPrice:     decimal.NewFromInt(7500),
		ReservationDate:   suite.fixedNow.AddDate(0, 2, 0),
	}

	suite.mockReservationRepo.On("SaveReservation", ctx, mock.AnythingOfType("domain.Reservation")).Return(nil).Once()

	reservation, err := suite.service.CreateReservation(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.NotEmpty(reservation.ReservationID)
	suite.Equal(domain.ReservationOpen, reservation.Status)
	suite.Equal(req.ReservationNumber, reservation.ReservationNumber)
	suite.Equal(suite.userID, reservation.CreatedBy)
}

func (suite *ReservationServiceTestSuite) TestCreateReservation_NonPositivePrice() {
	ctx := context.Background()
	req := dto.CreateReservationRequest{
		ReservationNumber: "RSV-2025-011",
		CustomerID:        uuid.NewString(),
		ContractPrice:     decimal.Zero,
		ReservationDate:   suite.fixedNow,
	}

	_, err := suite.service.CreateReservation(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockReservationRepo.AssertNotCalled(suite.T(), "SaveReservation", mock.Anything, mock.Anything)
}

func (suite *ReservationServiceTestSuite) TestGetReservation_DetailWithRemaining() {
	ctx := context.Background()
	reservation := &domain.Reservation{
		ReservationID: uuid.NewString(),
		ContractPrice: decimal.NewFromInt(5000),
		Status:        domain.ReservationOpen,
	}
	payments := []domain.Payment{
		{PaymentID: uuid.NewString(), ReservationID: reservation.ReservationID, Amount: decimal.NewFromInt(2000)},
	}

	suite.mockReservationRepo.On("FindReservationByID", ctx, reservation.ReservationID).Return(reservation, nil).Once()
	suite.mockPaymentRepo.On("ListActiveByReservation", ctx, reservation.ReservationID).Return(payments, nil).Once()
	suite.mockPaymentRepo.On("SumActiveByReservation", ctx, reservation.ReservationID).Return(decimal.NewFromInt(2000), nil).Once()

	detail, err := suite.service.GetReservation(ctx, reservation.ReservationID)

	suite.Require().NoError(err)
	suite.Len(detail.Payments, 1)
	suite.True(detail.TotalPaid.Equal(decimal.NewFromInt(2000)))
	suite.True(detail.Remaining.Equal(decimal.NewFromInt(3000)))
}

func (suite *ReservationServiceTestSuite) TestGetReservation_NotFound() {
	ctx := context.Background()
	reservationID := uuid.NewString()

	suite.mockReservationRepo.On("FindReservationByID", ctx, reservationID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetReservation(ctx, reservationID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ReservationServiceTestSuite) TestUpdateReservationStatus_Completed() {
	ctx := context.Background()
	reservation := &domain.Reservation{
		ReservationID: uuid.NewString(),
		ContractPrice: decimal.NewFromInt(5000),
		Status:        domain.ReservationConfirmed,
	}

	suite.mockReservationRepo.On("FindReservationByID", ctx, reservation.ReservationID).Return(reservation, nil).Once()
	suite.mockReservationRepo.On("UpdateReservationStatus", ctx, reservation.ReservationID, domain.ReservationCompleted, suite.userID, suite.fixedNow).Return(nil).Once()

	updated, err := suite.service.UpdateReservationStatus(ctx, suite.userID, reservation.ReservationID, domain.ReservationCompleted)

	suite.Require().NoError(err)
	suite.Equal(domain.ReservationCompleted, updated.Status)
	suite.Equal(suite.userID, updated.LastUpdatedBy)
	suite.mockReservationRepo.AssertExpectations(suite.T())
}

func (suite *ReservationServiceTestSuite) TestUpdateReservationStatus_CancelledRejected() {
	ctx := context.Background()

	_, err := suite.service.UpdateReservationStatus(ctx, suite.userID, uuid.NewString(), domain.ReservationCancelled)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockReservationRepo.AssertNotCalled(suite.T(), "UpdateReservationStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReservationServiceTestSuite) TestUpdateReservationStatus_NotFound() {
	ctx := context.Background()
	reservationID := uuid.NewString()

	suite.mockReservationRepo.On("FindReservationByID", ctx, reservationID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.UpdateReservationStatus(ctx, suite.userID, reservationID, domain.ReservationConfirmed)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestReservationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReservationServiceTestSuite))
}
