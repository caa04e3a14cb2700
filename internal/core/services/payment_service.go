package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kcetin/venue_booking_app/internal/apperrors"
	"github.com/kcetin/venue_booking_app/internal/core/domain"
	portsrepo "github.com/kcetin/venue_booking_app/internal/core/ports/repositories"
	portssvc "github.com/kcetin/venue_booking_app/internal/core/ports/services"
	"github.com/kcetin/venue_booking_app/internal/dto"
)

// paymentService implements the PaymentServiceFacade interface
type paymentService struct {
	BaseService
	paymentRepo     portsrepo.PaymentRepositoryFacade
	reservationRepo portsrepo.ReservationRepositoryFacade
	cashBoxRepo     portsrepo.CashBoxRepositoryFacade
	notifier        portssvc.PaymentNotifier
	maxAmount       decimal.Decimal
	now             func() time.Time
}

// PaymentServiceOption is a functional option for configuring the payment service
type PaymentServiceOption func(*paymentService)

// WithPaymentNotifier sets the notifier used for pending-balance reminders.
func WithPaymentNotifier(notifier portssvc.PaymentNotifier) PaymentServiceOption {
	return func(s *paymentService) {
		s.notifier = notifier
	}
}

// WithPaymentClock overrides the time source, for tests.
func WithPaymentClock(now func() time.Time) PaymentServiceOption {
	return func(s *paymentService) {
		s.now = now
	}
}

// NewPaymentService creates a new payment service with the provided options.
// maxAmount caps the magnitude of any single payment to guard against
// data-entry errors.
func NewPaymentService(paymentRepo portsrepo.PaymentRepositoryFacade, reservationRepo portsrepo.ReservationRepositoryFacade, cashBoxRepo portsrepo.CashBoxRepositoryFacade, maxAmount decimal.Decimal, options ...PaymentServiceOption) portssvc.PaymentServiceFacade {
	svc := &paymentService{
		paymentRepo:     paymentRepo,
		reservationRepo: reservationRepo,
		cashBoxRepo:     cashBoxRepo,
		maxAmount:       maxAmount,
		now:             time.Now,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure paymentService implements the PaymentServiceFacade interface
var _ portssvc.PaymentServiceFacade = (*paymentService)(nil)

// validateAmount rejects zero and oversized amounts. Negative amounts are
// allowed; they represent refunds to the customer.
func (s *paymentService) validateAmount(amount decimal.Decimal) error {
	if amount.IsZero() {
		return fmt.Errorf("%w: payment amount must be non-zero", apperrors.ErrValidation)
	}
	if amount.Abs().GreaterThan(s.maxAmount) {
		return fmt.Errorf("%w: payment amount magnitude exceeds the allowed maximum of %s", apperrors.ErrValidation, s.maxAmount.String())
	}
	return nil
}

// RecordPayment validates and persists a payment against a reservation. When
// the reservation's collected total reaches the contract price and it is
// still open, it advances to confirmed; otherwise the customer gets a
// best-effort pending-balance reminder.
func (s *paymentService) RecordPayment(ctx context.Context, userID string, req dto.CreatePaymentRequest) (*domain.Payment, error) {
	if err := s.validateAmount(req.Amount); err != nil {
		return nil, err
	}

	reservation, err := s.reservationRepo.FindReservationByID(ctx, req.ReservationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load reservation for payment", slog.String("reservation_id", req.ReservationID))
		return nil, err
	}
	if reservation.Status == domain.ReservationCancelled {
		return nil, fmt.Errorf("%w: cannot record a payment against a cancelled reservation", apperrors.ErrConflict)
	}

	if req.CashBoxID != nil {
		if _, err := s.cashBoxRepo.FindCashBoxByID(ctx, *req.CashBoxID); err != nil {
			s.LogError(ctx, err, "Failed to load cash box for payment", slog.String("cash_box_id", *req.CashBoxID))
			return nil, err
		}
	}

	now := s.now()
	payment := domain.Payment{
		PaymentID:     uuid.NewString(),
		ReservationID: req.ReservationID,
		CashBoxID:     req.CashBoxID,
		Amount:        req.Amount,
		PaymentDate:   req.PaymentDate,
		Method:        domain.PaymentMethod(req.Method),
		Notes:         req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.paymentRepo.SavePayment(ctx, payment); err != nil {
		s.LogError(ctx, err, "Failed to save payment", slog.String("payment_id", payment.PaymentID))
		return nil, err
	}

	s.LogInfo(ctx, "Payment recorded",
		slog.String("payment_id", payment.PaymentID),
		slog.String("reservation_id", payment.ReservationID),
		slog.String("amount", payment.Amount.String()))

	s.settleReservationState(ctx, userID, reservation)

	return &payment, nil
}

// settleReservationState confirms a fully paid open reservation or reminds
// the customer of the remaining balance. Both outcomes are side effects of
// recording a payment and neither may fail the recording itself.
func (s *paymentService) settleReservationState(ctx context.Context, userID string, reservation *domain.Reservation) {
	collected, err := s.paymentRepo.SumActiveByReservation(ctx, reservation.ReservationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum payments after recording", slog.String("reservation_id", reservation.ReservationID))
		return
	}

	if collected.GreaterThanOrEqual(reservation.ContractPrice) {
		if reservation.Status != domain.ReservationOpen {
			return
		}
		if err := s.reservationRepo.UpdateReservationStatus(ctx, reservation.ReservationID, domain.ReservationConfirmed, userID, s.now()); err != nil {
			s.LogError(ctx, err, "Failed to confirm fully paid reservation", slog.String("reservation_id", reservation.ReservationID))
			return
		}
		s.LogInfo(ctx, "Reservation confirmed after full payment", slog.String("reservation_id", reservation.ReservationID))
		return
	}

	if s.notifier == nil || reservation.CustomerEmail == "" {
		return
	}
	reminder := portssvc.PaymentReminderData{
		ReservationNumber: reservation.ReservationNumber,
		ReservationDate:   reservation.ReservationDate,
		CustomerName:      reservation.CustomerName,
		CustomerEmail:     reservation.CustomerEmail,
		PendingAmount:     reservation.ContractPrice.Sub(collected),
	}
	if err := s.notifier.NotifyPaymentReminder(ctx, reminder); err != nil {
		s.LogWarn(ctx, "Pending balance reminder failed",
			slog.String("reservation_id", reservation.ReservationID),
			slog.String("error", err.Error()))
	}
}

// UpdatePayment edits an existing non-cancelled payment.
func (s *paymentService) UpdatePayment(ctx context.Context, userID string, paymentID string, req dto.UpdatePaymentRequest) (*domain.Payment, error) {
	if err := s.validateAmount(req.Amount); err != nil {
		return nil, err
	}

	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.IsCancelled {
		return nil, fmt.Errorf("%w: cancelled payments cannot be edited", apperrors.ErrConflict)
	}

	payment.Amount = req.Amount
	payment.PaymentDate = req.PaymentDate
	payment.Method = domain.PaymentMethod(req.Method)
	payment.Notes = req.Notes
	payment.LastUpdatedAt = s.now()
	payment.LastUpdatedBy = userID

	if err := s.paymentRepo.UpdatePayment(ctx, *payment); err != nil {
		s.LogError(ctx, err, "Failed to update payment", slog.String("payment_id", paymentID))
		return nil, err
	}

	s.LogInfo(ctx, "Payment updated", slog.String("payment_id", paymentID))
	return payment, nil
}

// CancelPayment marks a single payment cancelled and reverses its cash box
// effect. Unlike reservation cancellation, the reversal here is not best
// effort: the caller asked for this one payment, so a reversal failure is
// reported as an error even though the payment stays cancelled.
func (s *paymentService) CancelPayment(ctx context.Context, userID string, paymentID string) error {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return err
	}
	if payment.IsCancelled {
		return fmt.Errorf("%w: payment is already cancelled", apperrors.ErrConflict)
	}

	now := s.now()
	if err := s.paymentRepo.MarkPaymentCancelled(ctx, paymentID, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to mark payment cancelled", slog.String("payment_id", paymentID))
		return err
	}
	s.LogInfo(ctx, "Payment cancelled", slog.String("payment_id", paymentID))

	if payment.CashBoxID == nil {
		return nil
	}

	entry := buildRefundEntry(*payment, userID, now)
	if _, err := s.cashBoxRepo.SaveLedgerEntries(ctx, []domain.CashBoxTransaction{entry}); err != nil {
		s.LogError(ctx, err, "Failed to append refund ledger entry",
			slog.String("payment_id", paymentID),
			slog.String("cash_box_id", *payment.CashBoxID))
		return fmt.Errorf("payment cancelled but cash box reversal failed: %w", err)
	}
	return nil
}

// buildRefundEntry creates the ledger entry that reverses a payment's effect
// on its cash box. The amount keeps the payment's sign so that reversing a
// refund payment moves the balance back up.
func buildRefundEntry(payment domain.Payment, userID string, now time.Time) domain.CashBoxTransaction {
	return domain.CashBoxTransaction{
		TransactionID: uuid.NewString(),
		CashBoxID:     *payment.CashBoxID,
		Kind:          domain.KindCancellationRefund,
		Amount:        payment.Amount,
		Date:          now,
		Description:   fmt.Sprintf("Reversal of payment %s", payment.PaymentID),
		ReservationID: &payment.ReservationID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
}

// GetPayment retrieves a payment by ID.
func (s *paymentService) GetPayment(ctx context.Context, paymentID string) (*domain.Payment, error) {
	return s.paymentRepo.FindPaymentByID(ctx, paymentID)
}

// ListPaymentsByReservation retrieves a reservation's active payments.
func (s *paymentService) ListPaymentsByReservation(ctx context.Context, reservationID string) ([]domain.Payment, error) {
	if _, err := s.reservationRepo.FindReservationByID(ctx, reservationID); err != nil {
		return nil, err
	}
	return s.paymentRepo.ListActiveByReservation(ctx, reservationID)
}
