package mapping

import (
	"github.com/kcetin/venue_booking_app/internal/core/domain"
	"github.com/kcetin/venue_booking_app/internal/models"
)

// ToModelCashBox converts a domain CashBox to a model CashBox
func ToModelCashBox(d domain.CashBox) models.CashBox {
	return models.CashBox{
		CashBoxID:      d.CashBoxID,
		Name:           d.Name,
		OpeningBalance: d.OpeningBalance,
		Balance:        d.Balance,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCashBox converts a model CashBox to a domain CashBox
func ToDomainCashBox(m models.CashBox) domain.CashBox {
	return domain.CashBox{
		CashBoxID:      m.CashBoxID,
		Name:           m.Name,
		OpeningBalance: m.OpeningBalance,
		Balance:        m.Balance,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelCashBoxTransaction converts a domain CashBoxTransaction to a model CashBoxTransaction
func ToModelCashBoxTransaction(d domain.CashBoxTransaction) models.CashBoxTransaction {
	return models.CashBoxTransaction{
		TransactionID:   d.TransactionID,
		CashBoxID:       d.CashBoxID,
		Kind:            string(d.Kind),
		Amount:          d.Amount,
		Date:            d.Date,
		Description:     d.Description,
		ReservationID:   d.ReservationID,
		BalanceSnapshot: d.BalanceSnapshot,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCashBoxTransaction converts a model CashBoxTransaction to a domain CashBoxTransaction
func ToDomainCashBoxTransaction(m models.CashBoxTransaction) domain.CashBoxTransaction {
	return domain.CashBoxTransaction{
		TransactionID:   m.TransactionID,
		CashBoxID:       m.CashBoxID,
		Kind:            domain.TransactionKind(m.Kind),
		Amount:          m.Amount,
		Date:            m.Date,
		Description:     m.Description,
		ReservationID:   m.ReservationID,
		BalanceSnapshot: m.BalanceSnapshot,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
