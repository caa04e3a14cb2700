package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentReminderData carries the details of one upcoming-balance reminder.
type PaymentReminderData struct {
	ReservationNumber string
	ReservationDate   time.Time
	CustomerName      string
	CustomerEmail     string
	PendingAmount     decimal.Decimal
}

// PaymentNotifier sends customer-facing payment notifications. Delivery is
// best effort; callers log failures and continue.
type PaymentNotifier interface {
	// NotifyPaymentReminder reminds the customer of an outstanding balance.
	NotifyPaymentReminder(ctx context.Context, data PaymentReminderData) error
}
