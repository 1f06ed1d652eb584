package services

import (
	"context"
	"time"

	"github.com/ec-banking/backoffice/internal/core/domain"
)

// MovementSvcFacade defines the read and administrative operations over the
// movement log. Posting goes through LedgerSvcFacade only.
type MovementSvcFacade interface {
	// GetMovementByID retrieves a single movement.
	GetMovementByID(ctx context.Context, movementID string) (*domain.Movement, error)

	// ListMovementsByAccountID retrieves every movement for an account.
	ListMovementsByAccountID(ctx context.Context, accountID string) ([]domain.Movement, error)

	// ListMovementsByAccountIDAndDateRange retrieves an account's movements
	// within [from, to].
	ListMovementsByAccountIDAndDateRange(ctx context.Context, accountID string, from, to time.Time) ([]domain.Movement, error)

	// DeleteMovement removes a movement. Administrative operation: deleting a
	// movement breaks the running-balance invariant for every later movement
	// on the account and must never be used to undo a posting.
	DeleteMovement(ctx context.Context, movementID string) error
}
