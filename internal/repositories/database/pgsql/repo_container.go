package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/kcetin/venue_booking_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	cashBoxRepo := newPgxCashBoxRepository(dbPool)
	paymentRepo := newPgxPaymentRepository(dbPool)
	reservationRepo := newPgxReservationRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)

	return portsrepo.RepositoryProvider{
		CashBoxRepo:     cashBoxRepo,
		PaymentRepo:     paymentRepo,
		ReservationRepo: reservationRepo,
		UserRepo:        userRepo,
	}
}
