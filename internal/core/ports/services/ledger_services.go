package services

import (
	"context"

	"github.com/ec-banking/backoffice/internal/core/domain"
	"github.com/ec-banking/backoffice/internal/dto"
	"github.com/shopspring/decimal"
)

// LedgerSvcFacade is the movement-posting engine: it turns a requested
// deposit or withdrawal into a durably recorded, balance-consistent ledger
// entry, or rejects it with a specific error.
type LedgerSvcFacade interface {
	// PostMovement validates and commits one movement. On success the returned
	// movement carries the engine-assigned timestamp and resulting balance.
	PostMovement(ctx context.Context, req dto.CreateMovementRequest) (*domain.Movement, error)

	// CurrentBalance resolves the account's current balance: the resulting
	// balance of the latest movement, or the account's stored balance when no
	// movements exist yet. Read-only.
	CurrentBalance(ctx context.Context, accountID string) (decimal.Decimal, error)
}
