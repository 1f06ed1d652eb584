package dto

import (
	"time"

	"github.com/ec-banking/backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateMovementRequest defines the data needed to post a movement.
// The amount's sign is advisory only: the engine normalizes it to match the
// movement type, so callers are not trusted to encode direction correctly.
type CreateMovementRequest struct {
	AccountID    string              `json:"accountID" binding:"required"`
	MovementType domain.MovementType `json:"movementType" binding:"required,movementtype"`
	Amount       decimal.Decimal     `json:"amount" binding:"required"`
}

// MovementResponse defines the data returned for a movement.
type MovementResponse struct {
	MovementID       string              `json:"movementID"`
	AccountID        string              `json:"accountID"`
	MovementType     domain.MovementType `json:"movementType"`
	Amount           decimal.Decimal     `json:"amount"`
	ResultingBalance decimal.Decimal     `json:"resultingBalance"`
	Timestamp        time.Time           `json:"timestamp"`
}

// ToMovementResponse converts a domain.Movement to MovementResponse.
func ToMovementResponse(m *domain.Movement) MovementResponse {
	return MovementResponse{
		MovementID:       m.MovementID,
		AccountID:        m.AccountID,
		MovementType:     m.MovementType,
		Amount:           m.Amount,
		ResultingBalance: m.ResultingBalance,
		Timestamp:        m.Timestamp,
	}
}

// ToMovementResponses converts a slice of domain movements.
func ToMovementResponses(movements []domain.Movement) []MovementResponse {
	res := make([]MovementResponse, len(movements))
	for i := range movements {
		res[i] = ToMovementResponse(&movements[i])
	}
	return res
}

// ListMovementsParams defines query parameters for listing movements.
type ListMovementsParams struct {
	From *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To   *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
}
