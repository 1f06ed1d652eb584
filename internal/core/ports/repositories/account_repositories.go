package repositories

import (
	"context"
	"time"

	"github.com/ec-banking/backoffice/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByNumber retrieves an account by its caller-visible number.
	FindAccountByNumber(ctx context.Context, number string) (*domain.Account, error)

	// ExistsByNumber reports whether an account with the given number exists.
	ExistsByNumber(ctx context.Context, number string) (bool, error)

	// ListAccountsByCustomerID retrieves every account owned by a customer.
	ListAccountsByCustomerID(ctx context.Context, customerID string) ([]domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount removes an account permanently.
	DeleteAccount(ctx context.Context, accountID string) error
}

// AccountCommitSupport defines the operations the movement commit unit needs
// to keep the account's cached balance in step with the ledger, inside the
// same database transaction as the movement insert.
type AccountCommitSupport interface {
	// FindAccountByIDForUpdate selects the account row and locks it for the
	// duration of the transaction.
	FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error)

	// UpdateAccountBalanceInTx updates the account's cached balance within the
	// given transaction.
	UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, newBalance decimal.Decimal, now time.Time) error
}

// AccountRepository combines all account store operations.
type AccountRepository interface {
	AccountReader
	AccountWriter
	AccountCommitSupport
}
