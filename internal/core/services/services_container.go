package services

import (
	portsrepo "github.com/kcetin/venue_booking_app/internal/core/ports/repositories"
	portssvc "github.com/kcetin/venue_booking_app/internal/core/ports/services"
	"github.com/kcetin/venue_booking_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, notifier portssvc.PaymentNotifier) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Balance service first since cashflow and cash box services depend on it
	container.BalanceSvc = NewBalanceService(repos.CashBoxRepo, repos.PaymentRepo)

	container.PaymentSvc = NewPaymentService(
		repos.PaymentRepo,
		repos.ReservationRepo,
		repos.CashBoxRepo,
		cfg.MaxPaymentAmount,
		WithPaymentNotifier(notifier),
	)
	container.CancellationSvc = NewCancellationService(repos.PaymentRepo, repos.ReservationRepo, repos.CashBoxRepo)
	container.CashflowSvc = NewCashflowService(container.BalanceSvc, repos.PaymentRepo, repos.CashBoxRepo, repos.ReservationRepo)
	container.CashBoxSvc = NewCashBoxService(repos.CashBoxRepo, container.BalanceSvc)
	container.ReservationSvc = NewReservationService(repos.ReservationRepo, repos.PaymentRepo)
	container.UserSvc = NewUserService(repos.UserRepo)
	container.Notifier = notifier

	return container
}
