package services

// ServiceContainer holds all the application services.
// It acts as a central point for dependency injection of services.
type ServiceContainer struct {
	BalanceSvc      BalanceServiceFacade
	PaymentSvc      PaymentServiceFacade
	CancellationSvc CancellationServiceFacade
	CashflowSvc     CashflowServiceFacade
	CashBoxSvc      CashBoxServiceFacade
	ReservationSvc  ReservationServiceFacade
	UserSvc         UserServiceFacade
	Notifier        PaymentNotifier
}
