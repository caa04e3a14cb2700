package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/kcetin/venue_booking_app/internal/core/domain"
	portsrepo "github.com/kcetin/venue_booking_app/internal/core/ports/repositories"
	portssvc "github.com/kcetin/venue_booking_app/internal/core/ports/services"
)

// cancellationService implements the CancellationServiceFacade interface
type cancellationService struct {
	BaseService
	paymentRepo     portsrepo.PaymentRepositoryFacade
	reservationRepo portsrepo.ReservationRepositoryFacade
	cashBoxRepo     portsrepo.CashBoxRepositoryFacade
	now             func() time.Time
}

// CancellationServiceOption is a functional option for configuring the cancellation service
type CancellationServiceOption func(*cancellationService)

// WithCancellationClock overrides the time source, for tests.
func WithCancellationClock(now func() time.Time) CancellationServiceOption {
	return func(s *cancellationService) {
		s.now = now
	}
}

// NewCancellationService creates a new cancellation service with the provided options
func NewCancellationService(paymentRepo portsrepo.PaymentRepositoryFacade, reservationRepo portsrepo.ReservationRepositoryFacade, cashBoxRepo portsrepo.CashBoxRepositoryFacade, options ...CancellationServiceOption) portssvc.CancellationServiceFacade {
	svc := &cancellationService{
		paymentRepo:     paymentRepo,
		reservationRepo: reservationRepo,
		cashBoxRepo:     cashBoxRepo,
		now:             time.Now,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure cancellationService implements the CancellationServiceFacade interface
var _ portssvc.CancellationServiceFacade = (*cancellationService)(nil)

// CancelReservation voids every active payment of a reservation and reverses
// each payment's cash box effect, then sets the reservation to cancelled.
//
// Reversal is best effort and subordinate to the status transition: any
// per-payment failure is recorded in the report and processing moves on to
// the next payment, and the status write happens regardless of how many
// reversals failed. Partial reversal is an accepted terminal state; nothing
// is rolled back or retried. Running this twice is harmless because the
// second run finds no active payments.
func (s *cancellationService) CancelReservation(ctx context.Context, userID string, reservationID string) (*domain.ReversalReport, error) {
	if _, err := s.reservationRepo.FindReservationByID(ctx, reservationID); err != nil {
		s.LogError(ctx, err, "Failed to load reservation for cancellation", slog.String("reservation_id", reservationID))
		return nil, err
	}

	report := &domain.ReversalReport{ReservationID: reservationID}

	payments, err := s.paymentRepo.ListActiveByReservation(ctx, reservationID)
	if err != nil {
		// The status transition must still happen, so a failed payment
		// listing degrades to cancelling with zero reversals.
		s.LogError(ctx, err, "Failed to list payments for cancellation, skipping reversals", slog.String("reservation_id", reservationID))
		payments = nil
	}

	now := s.now()
	for _, payment := range payments {
		report.Results = append(report.Results, s.reversePayment(ctx, userID, payment, now))
	}

	if err := s.reservationRepo.UpdateReservationStatus(ctx, reservationID, domain.ReservationCancelled, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to set reservation status to cancelled", slog.String("reservation_id", reservationID))
		return nil, err
	}

	s.LogInfo(ctx, "Reservation cancelled",
		slog.String("reservation_id", reservationID),
		slog.Int("payments_processed", len(report.Results)),
		slog.Int("reversals_failed", report.FailedCount()))
	return report, nil
}

// reversePayment cancels one payment and appends its refund ledger entry.
// Each step failure is logged and reported, never propagated.
func (s *cancellationService) reversePayment(ctx context.Context, userID string, payment domain.Payment, now time.Time) domain.ReversalResult {
	result := domain.ReversalResult{
		PaymentID: payment.PaymentID,
		Amount:    payment.Amount,
	}

	if err := s.paymentRepo.MarkPaymentCancelled(ctx, payment.PaymentID, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to mark payment cancelled during reservation cancellation", slog.String("payment_id", payment.PaymentID))
		result.Error = err.Error()
		return result
	}

	if payment.CashBoxID == nil {
		result.Reversed = true
		return result
	}

	if _, err := s.cashBoxRepo.FindCashBoxByID(ctx, *payment.CashBoxID); err != nil {
		s.LogError(ctx, err, "Failed to load cash box during payment reversal",
			slog.String("payment_id", payment.PaymentID),
			slog.String("cash_box_id", *payment.CashBoxID))
		result.Error = err.Error()
		return result
	}

	entry := buildRefundEntry(payment, userID, now)
	saved, err := s.cashBoxRepo.SaveLedgerEntries(ctx, []domain.CashBoxTransaction{entry})
	if err != nil {
		s.LogError(ctx, err, "Failed to append refund ledger entry during payment reversal",
			slog.String("payment_id", payment.PaymentID),
			slog.String("cash_box_id", *payment.CashBoxID))
		result.Error = err.Error()
		return result
	}

	result.Reversed = true
	s.LogInfo(ctx, "Payment reversed",
		slog.String("payment_id", payment.PaymentID),
		slog.String("cash_box_id", *payment.CashBoxID),
		slog.String("balance_after", saved[0].BalanceSnapshot.String()))
	return result
}
