package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/jordan-wright/email"

	portssvc "github.com/kcetin/venue_booking_app/internal/core/ports/services"
	"github.com/kcetin/venue_booking_app/internal/platform/config"
)

// SMTPNotifier sends payment reminders over SMTP.
type SMTPNotifier struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewSMTPNotifier creates a new SMTP-backed payment notifier.
func NewSMTPNotifier(cfg *config.Config, logger *slog.Logger) *SMTPNotifier {
	return &SMTPNotifier{
		cfg:    cfg,
		logger: logger,
	}
}

// Ensure SMTPNotifier implements portssvc.PaymentNotifier
var _ portssvc.PaymentNotifier = (*SMTPNotifier)(nil)

// NotifyPaymentReminder sends an outstanding-balance reminder to the customer.
func (n *SMTPNotifier) NotifyPaymentReminder(ctx context.Context, data portssvc.PaymentReminderData) error {
	if n.cfg.SMTPHost == "" {
		return fmt.Errorf("smtp host is not configured")
	}

	e := email.NewEmail()
	e.From = n.cfg.SenderEmail
	e.To = []string{data.CustomerEmail}
	e.Subject = fmt.Sprintf("Payment reminder for reservation %s", data.ReservationNumber)

	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"This is a reminder that %s is still outstanding for your reservation %s on %s.\n"+
			"Please arrange the remaining payment before the reservation date.\n"+
			"\nBest regards,\nVenue Booking Team",
		data.CustomerName,
		data.PendingAmount.StringFixed(2),
		data.ReservationNumber,
		data.ReservationDate.Format("2006-01-02"),
	)
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%d", n.cfg.SMTPHost, n.cfg.SMTPPort)
	auth := smtp.PlainAuth("", n.cfg.SMTPUsername, n.cfg.SMTPPassword, n.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		n.logger.Error("Failed to send payment reminder",
			slog.String("to", data.CustomerEmail),
			slog.String("reservation_number", data.ReservationNumber),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to send payment reminder: %w", err)
	}

	n.logger.Info("Payment reminder sent",
		slog.String("to", data.CustomerEmail),
		slog.String("reservation_number", data.ReservationNumber))
	return nil
}
