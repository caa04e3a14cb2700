package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	portssvc "github.com/kcetin/venue_booking_app/internal/core/ports/services"
	"github.com/kcetin/venue_booking_app/internal/middleware"
)

// reminderWindow is how far ahead of the reservation date customers with an
// outstanding balance are reminded.
const reminderWindow = 7 * 24 * time.Hour

// PaymentReminderJob periodically reminds customers of outstanding balances
// on upcoming reservations.
type PaymentReminderJob struct {
	cashflowSvc portssvc.CashflowServiceFacade
	notifier    portssvc.PaymentNotifier
	logger      *slog.Logger
	now         func() time.Time
}

// NewPaymentReminderJob creates a new reminder job.
func NewPaymentReminderJob(cashflowSvc portssvc.CashflowServiceFacade, notifier portssvc.PaymentNotifier, logger *slog.Logger) *PaymentReminderJob {
	return &PaymentReminderJob{
		cashflowSvc: cashflowSvc,
		notifier:    notifier,
		logger:      logger,
		now:         time.Now,
	}
}

// Schedule registers the job on the given cron runner.
func (j *PaymentReminderJob) Schedule(c *cron.Cron, spec string) (cron.EntryID, error) {
	return c.AddFunc(spec, j.Run)
}

// Run sends one reminder per upcoming reservation with an outstanding
// balance. Delivery failures are logged and skipped so one bad address does
// not block the rest of the batch.
func (j *PaymentReminderJob) Run() {
	ctx := middleware.CtxWithLogger(context.Background(), j.logger)

	obligations, err := j.cashflowSvc.PendingObligations(ctx)
	if err != nil {
		j.logger.Error("Reminder job failed to load pending obligations", slog.String("error", err.Error()))
		return
	}

	now := j.now()
	cutoff := now.Add(reminderWindow)
	sent := 0
	for _, o := range obligations {
		if o.CustomerEmail == "" || o.DueDate.Before(now) || o.DueDate.After(cutoff) {
			continue
		}

		reminder := portssvc.PaymentReminderData{
			ReservationNumber: o.ReservationNumber,
			ReservationDate:   o.DueDate,
			CustomerName:      o.CustomerName,
			CustomerEmail:     o.CustomerEmail,
			PendingAmount:     o.Amount,
		}
		if err := j.notifier.NotifyPaymentReminder(ctx, reminder); err != nil {
			j.logger.Warn("Failed to send payment reminder",
				slog.String("reservation_number", o.ReservationNumber),
				slog.String("error", err.Error()))
			continue
		}
		sent++
	}

	j.logger.Info("Payment reminder job finished",
		slog.Int("obligations", len(obligations)),
		slog.Int("reminders_sent", sent))
}
