package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kcetin/venue_booking_app/internal/apperrors"
	"github.com/kcetin/venue_booking_app/internal/core/domain"
	portsrepo "github.com/kcetin/venue_booking_app/internal/core/ports/repositories"
	portssvc "github.com/kcetin/venue_booking_app/internal/core/ports/services"
)

// maxForecastPeriods bounds the request so a typo cannot ask for decades of buckets.
const maxForecastPeriods = 120

// cashflowService implements the CashflowServiceFacade interface
type cashflowService struct {
	BaseService
	balanceSvc      portssvc.BalanceServiceFacade
	paymentRepo     portsrepo.PaymentRepositoryFacade
	cashBoxRepo     portsrepo.CashBoxRepositoryFacade
	reservationRepo portsrepo.ReservationRepositoryFacade
	now             func() time.Time
}

// CashflowServiceOption is a functional option for configuring the cashflow service
type CashflowServiceOption func(*cashflowService)

// WithCashflowClock overrides the time source, for tests.
func WithCashflowClock(now func() time.Time) CashflowServiceOption {
	return func(s *cashflowService) {
		s.now = now
	}
}

// NewCashflowService creates a new cashflow service with the provided options
func NewCashflowService(balanceSvc portssvc.BalanceServiceFacade, paymentRepo portsrepo.PaymentRepositoryFacade, cashBoxRepo portsrepo.CashBoxRepositoryFacade, reservationRepo portsrepo.ReservationRepositoryFacade, options ...CashflowServiceOption) portssvc.CashflowServiceFacade {
	svc := &cashflowService{
		balanceSvc:      balanceSvc,
		paymentRepo:     paymentRepo,
		cashBoxRepo:     cashBoxRepo,
		reservationRepo: reservationRepo,
		now:             time.Now,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure cashflowService implements the CashflowServiceFacade interface
var _ portssvc.CashflowServiceFacade = (*cashflowService)(nil)

// PendingObligations synthesizes, per non-cancelled reservation, the unpaid
// remainder of the contract price, dated at the reservation date. Fully paid
// and overpaid reservations produce no obligation.
func (s *cashflowService) PendingObligations(ctx context.Context) ([]domain.PendingObligation, error) {
	reservations, err := s.reservationRepo.ListActiveReservations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active reservations: %w", err)
	}

	sums, err := s.paymentRepo.SumActiveGroupedByReservation(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sum payments per reservation: %w", err)
	}

	obligations := []domain.PendingObligation{}
	for _, r := range reservations {
		remaining := r.ContractPrice.Sub(sums[r.ReservationID])
		if !remaining.IsPositive() {
			continue
		}
		obligations = append(obligations, domain.PendingObligation{
			ReservationID:     r.ReservationID,
			ReservationNumber: r.ReservationNumber,
			CustomerName:      r.CustomerName,
			CustomerEmail:     r.CustomerEmail,
			Amount:            remaining,
			DueDate:           r.ReservationDate,
		})
	}
	return obligations, nil
}

// Forecast builds count consecutive future periods of the given kind. Each
// period blends three sources: recorded future payments, pending obligations
// dated at their reservation date, and future expense ledger entries. The
// running balance chains across periods starting from the replayed total of
// all active cash boxes.
//
// Any store read failure fails the whole forecast; a report built from half
// the sources would be worse than no report.
func (s *cashflowService) Forecast(ctx context.Context, kind domain.PeriodKind, count int) ([]domain.CashflowPeriod, error) {
	if kind != domain.PeriodWeekly && kind != domain.PeriodMonthly {
		return nil, fmt.Errorf("%w: unknown period kind %q", apperrors.ErrValidation, kind)
	}
	if count <= 0 || count > maxForecastPeriods {
		return nil, fmt.Errorf("%w: period count must be between 1 and %d", apperrors.ErrValidation, maxForecastPeriods)
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	obligations, err := s.PendingObligations(ctx)
	if err != nil {
		return nil, err
	}

	payments, err := s.paymentRepo.ListActiveFrom(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("failed to list future payments: %w", err)
	}

	txns, err := s.cashBoxRepo.ListTransactionsFrom(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("failed to list future transactions: %w", err)
	}

	balance, err := s.balanceSvc.TotalBalance(ctx)
	if err != nil {
		return nil, err
	}

	// Labels on payment inflow lines come from the reservation, so index
	// active reservations by ID up front.
	reservations, err := s.reservationRepo.ListActiveReservations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active reservations: %w", err)
	}
	byID := make(map[string]domain.Reservation, len(reservations))
	for _, r := range reservations {
		byID[r.ReservationID] = r
	}

	periods := make([]domain.CashflowPeriod, 0, count)
	for i := 0; i < count; i++ {
		start, next := periodWindow(kind, today, i)
		period := domain.CashflowPeriod{
			PeriodStart:  start,
			PeriodEnd:    next.AddDate(0, 0, -1),
			Inflow:       decimal.Zero,
			Outflow:      decimal.Zero,
			BalanceStart: balance,
			InflowLines:  []domain.CashflowLine{},
			OutflowLines: []domain.CashflowLine{},
		}

		for _, p := range payments {
			if !p.Amount.IsPositive() || !inWindow(p.PaymentDate, start, next) {
				continue
			}
			period.Inflow = period.Inflow.Add(p.Amount)
			period.InflowLines = append(period.InflowLines, domain.CashflowLine{
				Label:  paymentLabel(p, byID),
				Amount: p.Amount,
			})
		}

		for _, o := range obligations {
			if !inWindow(o.DueDate, start, next) {
				continue
			}
			period.Inflow = period.Inflow.Add(o.Amount)
			period.InflowLines = append(period.InflowLines, domain.CashflowLine{
				Label:  fmt.Sprintf("%s %s (Bekleyen)", o.CustomerName, o.ReservationNumber),
				Amount: o.Amount,
			})
		}

		for _, t := range txns {
			if t.Kind != domain.KindExpense || !t.Amount.IsPositive() || !inWindow(t.Date, start, next) {
				continue
			}
			period.Outflow = period.Outflow.Add(t.Amount)
			label := t.Description
			if label == "" {
				label = string(t.Kind)
			}
			period.OutflowLines = append(period.OutflowLines, domain.CashflowLine{
				Label:  label,
				Amount: t.Amount,
			})
		}

		period.BalanceEnd = period.BalanceStart.Add(period.Inflow).Sub(period.Outflow)
		balance = period.BalanceEnd
		periods = append(periods, period)
	}

	s.LogDebug(ctx, "Forecast built",
		slog.String("kind", string(kind)),
		slog.Int("periods", count),
		slog.Int("obligations", len(obligations)))
	return periods, nil
}

// periodWindow returns the half-open [start, next) window of period i.
// Weekly periods are 7-day blocks anchored at today; monthly periods are
// calendar months anchored at the current month.
func periodWindow(kind domain.PeriodKind, today time.Time, i int) (start, next time.Time) {
	if kind == domain.PeriodWeekly {
		start = today.AddDate(0, 0, 7*i)
		return start, start.AddDate(0, 0, 7)
	}
	// Monthly windows cover whole calendar months. Past days of the current
	// month are harmless because every source is filtered to date >= today.
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	return monthStart.AddDate(0, i, 0), monthStart.AddDate(0, i+1, 0)
}

func inWindow(t, start, next time.Time) bool {
	return !t.Before(start) && t.Before(next)
}

func paymentLabel(p domain.Payment, byID map[string]domain.Reservation) string {
	if r, ok := byID[p.ReservationID]; ok {
		return fmt.Sprintf("%s %s", r.CustomerName, r.ReservationNumber)
	}
	return p.ReservationID
}
