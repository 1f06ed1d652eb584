package pgsql

import (
	portsrepo "github.com/ec-banking/backoffice/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the concrete pgx-backed repositories.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	customerRepo := newPgxCustomerRepository(dbPool)
	movementRepo := newPgxMovementRepository(dbPool, accountRepo)

	return portsrepo.RepositoryProvider{
		AccountRepo:  accountRepo,
		CustomerRepo: customerRepo,
		MovementRepo: movementRepo,
	}
}
