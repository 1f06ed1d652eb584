package repositories

import (
	"context"
	"time"

	"github.com/ec-banking/backoffice/internal/core/domain"
)

// MovementReader defines read operations for the movement log.
type MovementReader interface {
	// FindMovementByID retrieves a single movement.
	FindMovementByID(ctx context.Context, movementID string) (*domain.Movement, error)

	// FindMovementsByAccountID retrieves every movement for an account,
	// ordered by timestamp ascending with insertion order breaking ties.
	FindMovementsByAccountID(ctx context.Context, accountID string) ([]domain.Movement, error)

	// FindMovementsByAccountIDAndDateRange retrieves an account's movements
	// whose timestamp falls within [from, to], same ordering.
	FindMovementsByAccountIDAndDateRange(ctx context.Context, accountID string, from, to time.Time) ([]domain.Movement, error)

	// FindDebitsByAccountIDOnDay retrieves the account's DEBIT movements whose
	// timestamp falls within the calendar day containing `day` (local day
	// boundaries).
	FindDebitsByAccountIDOnDay(ctx context.Context, accountID string, day time.Time) ([]domain.Movement, error)
}

// MovementWriter defines write operations for the movement log.
type MovementWriter interface {
	// SaveMovement commits a movement as one logical unit: the movement insert
	// and the account's cached-balance update (to movement.ResultingBalance)
	// happen in a single transaction. A failure of this unit is reported as
	// apperrors.ErrCommitFailed.
	SaveMovement(ctx context.Context, movement domain.Movement) error

	// DeleteMovement removes a movement. Administrative use only: it must not
	// be used to undo a posting, since doing so breaks the running-balance
	// invariant for every later movement on the account.
	DeleteMovement(ctx context.Context, movementID string) error
}

// MovementRepository combines all movement store operations.
type MovementRepository interface {
	MovementReader
	MovementWriter
}
