package services

import (
	"time"

	"github.com/go-redis/redis/v8"

	portsrepo "github.com/ec-banking/backoffice/internal/core/ports/repositories"
	portssvc "github.com/ec-banking/backoffice/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// ContainerDeps bundles the external collaborators the service container
// wires together at startup. Publisher and Cache are optional.
type ContainerDeps struct {
	Repos                portsrepo.RepositoryProvider
	Publisher            portssvc.EventPublisher
	Cache                *redis.Client
	DailyWithdrawalLimit decimal.Decimal
	ReportCacheTTL       time.Duration
}

// NewServiceContainer creates all application services with their
// dependencies resolved.
func NewServiceContainer(deps ContainerDeps) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Ledger:    NewLedgerService(deps.Repos.AccountRepo, deps.Repos.MovementRepo, deps.Publisher, deps.DailyWithdrawalLimit),
		Account:   NewAccountService(deps.Repos.AccountRepo, deps.Repos.CustomerRepo),
		Customer:  NewCustomerService(deps.Repos.CustomerRepo, deps.Repos.AccountRepo),
		Movement:  NewMovementService(deps.Repos.MovementRepo),
		Reporting: NewReportingService(deps.Repos.CustomerRepo, deps.Repos.AccountRepo, deps.Repos.MovementRepo, deps.Cache, deps.ReportCacheTTL),
	}
}
