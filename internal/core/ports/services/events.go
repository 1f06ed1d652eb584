package services

import (
	"context"

	"github.com/ec-banking/backoffice/internal/core/domain"
)

// EventPublisher publishes domain events to an external broker. Publishing is
// best-effort: the ledger engine never rolls back a committed posting because
// its event failed to publish.
type EventPublisher interface {
	PublishMovementPosted(ctx context.Context, event domain.MovementPosted) error
}
