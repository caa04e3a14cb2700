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

// reservationService implements the ReservationServiceFacade interface
type reservationService struct {
	BaseService
	reservationRepo portsrepo.ReservationRepositoryFacade
	paymentRepo     portsrepo.PaymentRepositoryFacade
	now             func() time.Time
}

// ReservationServiceOption is a functional option for configuring the reservation service
type ReservationServiceOption func(*reservationService)

// WithReservationClock overrides the time source, for tests.
func WithReservationClock(now func() time.Time) ReservationServiceOption {
	return func(s *reservationService) {
		s.now = now
	}
}

// NewReservationService creates a new reservation service with the provided options
func NewReservationService(reservationRepo portsrepo.ReservationRepositoryFacade, paymentRepo portsrepo.PaymentRepositoryFacade, options ...ReservationServiceOption) portssvc.ReservationServiceFacade {
	svc := &reservationService{
		reservationRepo: reservationRepo,
		paymentRepo:     paymentRepo,
		now:             time.Now,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reservationService implements the ReservationServiceFacade interface
var _ portssvc.ReservationServiceFacade = (*reservationService)(nil)

// CreateReservation creates a reservation in OPEN status.
func (s *reservationService) CreateReservation(ctx context.Context, userID string, req dto.CreateReservationRequest) (*domain.Reservation, error) {
	if !req.ContractPrice.IsPositive() {
		return nil, fmt.Errorf("%w: contract price must be positive", apperrors.ErrValidation)
	}

	now := s.now()
	reservation := domain.Reservation{
		ReservationID:     uuid.NewString(),
		ReservationNumber: req.ReservationNumber,
		CustomerID:        req.CustomerID,
		ContractPrice:     req.ContractPrice,
		ReservationDate:   req.ReservationDate,
		Status:            domain.ReservationOpen,
		Notes:             req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.reservationRepo.SaveReservation(ctx, reservation); err != nil {
		s.LogError(ctx, err, "Failed to save reservation", slog.String("reservation_id", reservation.ReservationID))
		return nil, err
	}

	s.LogInfo(ctx, "Reservation created",
		slog.String("reservation_id", reservation.ReservationID),
		slog.String("reservation_number", reservation.ReservationNumber))
	return &reservation, nil
}

// GetReservation retrieves a reservation with its payment summary.
func (s *reservationService) GetReservation(ctx context.Context, reservationID string) (*dto.ReservationDetailResponse, error) {
	reservation, err := s.reservationRepo.FindReservationByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	payments, err := s.paymentRepo.ListActiveByReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	totalPaid, err := s.paymentRepo.SumActiveByReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	return &dto.ReservationDetailResponse{
		Reservation: *reservation,
		Payments:    payments,
		TotalPaid:   totalPaid,
		Remaining:   reservation.ContractPrice.Sub(totalPaid),
	}, nil
}

// ListReservations retrieves reservations with pagination.
func (s *reservationService) ListReservations(ctx context.Context, limit int, offset int) ([]domain.Reservation, error) {
	return s.reservationRepo.ListReservations(ctx, limit, offset)
}

// UpdateReservationStatus moves a reservation to a new lifecycle state.
func (s *reservationService) UpdateReservationStatus(ctx context.Context, userID string, reservationID string, status domain.ReservationStatus) (*domain.Reservation, error) {
	if status == domain.ReservationCancelled {
		return nil, fmt.Errorf("%w: cancellation must run through the cancellation flow", apperrors.ErrValidation)
	}

	reservation, err := s.reservationRepo.FindReservationByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.reservationRepo.UpdateReservationStatus(ctx, reservationID, status, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to update reservation status",
			slog.String("reservation_id", reservationID),
			slog.String("status", string(status)))
		return nil, err
	}

	reservation.Status = status
	reservation.LastUpdatedAt = now
	reservation.LastUpdatedBy = userID

	s.LogInfo(ctx, "Reservation status updated",
		slog.String("reservation_id", reservationID),
		slog.String("status", string(status)))
	return reservation, nil
}
