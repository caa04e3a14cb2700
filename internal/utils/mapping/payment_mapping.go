package mapping

import (
	"github.com/kcetin/venue_booking_app/internal/core/domain"
	"github.com/kcetin/venue_booking_app/internal/models"
)

// ToModelPayment converts a domain Payment to a model Payment
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:     d.PaymentID,
		ReservationID: d.ReservationID,
		CashBoxID:     d.CashBoxID,
		Amount:        d.Amount,
		PaymentDate:   d.PaymentDate,
		Method:        string(d.Method),
		Notes:         d.Notes,
		IsCancelled:   d.IsCancelled,
		CancelledAt:   d.CancelledAt,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:     m.PaymentID,
		ReservationID: m.ReservationID,
		CashBoxID:     m.CashBoxID,
		Amount:        m.Amount,
		PaymentDate:   m.PaymentDate,
		Method:        domain.PaymentMethod(m.Method),
		Notes:         m.Notes,
		IsCancelled:   m.IsCancelled,
		CancelledAt:   m.CancelledAt,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
