package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ec-banking/backoffice/internal/core/domain"
	portsrepo "github.com/ec-banking/backoffice/internal/core/ports/repositories"
	portssvc "github.com/ec-banking/backoffice/internal/core/ports/services"
	"github.com/ec-banking/backoffice/internal/middleware"
)

// movementService provides read and administrative access to the movement
// log. It never posts: posting goes through the ledger engine only.
type movementService struct {
	movementRepo portsrepo.MovementRepository
}

// NewMovementService creates a new MovementService.
func NewMovementService(movementRepo portsrepo.MovementRepository) portssvc.MovementSvcFacade {
	return &movementService{movementRepo: movementRepo}
}

var _ portssvc.MovementSvcFacade = (*movementService)(nil)

// GetMovementByID implements portssvc.MovementSvcFacade.
func (s *movementService) GetMovementByID(ctx context.Context, movementID string) (*domain.Movement, error) {
	movement, err := s.movementRepo.FindMovementByID(ctx, movementID)
	if err != nil {
		return nil, fmt.Errorf("failed to find movement %s: %w", movementID, err)
	}
	return movement, nil
}

// ListMovementsByAccountID implements portssvc.MovementSvcFacade.
func (s *movementService) ListMovementsByAccountID(ctx context.Context, accountID string) ([]domain.Movement, error) {
	movements, err := s.movementRepo.FindMovementsByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list movements for account %s: %w", accountID, err)
	}
	return movements, nil
}

// ListMovementsByAccountIDAndDateRange implements portssvc.MovementSvcFacade.
func (s *movementService) ListMovementsByAccountIDAndDateRange(ctx context.Context, accountID string, from, to time.Time) ([]domain.Movement, error) {
	movements, err := s.movementRepo.FindMovementsByAccountIDAndDateRange(ctx, accountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list movements for account %s in range: %w", accountID, err)
	}
	return movements, nil
}

// DeleteMovement implements portssvc.MovementSvcFacade. Deleting a movement
// breaks the running-balance invariant for every later movement on the
// account; it exists for administrative cleanup only.
func (s *movementService) DeleteMovement(ctx context.Context, movementID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	movement, err := s.movementRepo.FindMovementByID(ctx, movementID)
	if err != nil {
		return fmt.Errorf("failed to find movement %s: %w", movementID, err)
	}

	if err := s.movementRepo.DeleteMovement(ctx, movementID); err != nil {
		logger.Error("Failed to delete movement", slog.String("movement_id", movementID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete movement %s: %w", movementID, err)
	}

	logger.Warn("Movement deleted, running balances after it are no longer consistent",
		slog.String("movement_id", movementID),
		slog.String("account_id", movement.AccountID),
	)
	return nil
}
