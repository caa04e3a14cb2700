package mapping

import (
	"github.com/kcetin/venue_booking_app/internal/core/domain"
	"github.com/kcetin/venue_booking_app/internal/models"
)

// ToModelReservation converts a domain Reservation to a model Reservation
func ToModelReservation(d domain.Reservation) models.Reservation {
	return models.Reservation{
		ReservationID:     d.ReservationID,
		ReservationNumber: d.ReservationNumber,
		CustomerID:        d.CustomerID,
		ContractPrice:     d.ContractPrice,
		ReservationDate:   d.ReservationDate,
		Status:            string(d.Status),
		Notes:             d.Notes,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainReservation converts a model Reservation to a domain Reservation
func ToDomainReservation(m models.Reservation) domain.Reservation {
	return domain.Reservation{
		ReservationID:     m.ReservationID,
		ReservationNumber: m.ReservationNumber,
		CustomerID:        m.CustomerID,
		CustomerName:      m.CustomerName,
		CustomerEmail:     m.CustomerEmail,
		ContractPrice:     m.ContractPrice,
		ReservationDate:   m.ReservationDate,
		Status:            domain.ReservationStatus(m.Status),
		Notes:             m.Notes,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}
