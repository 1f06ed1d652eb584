package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementPosted is emitted after a movement has been durably committed.
// Consumers must treat it as at-most-once: publishing is best-effort and a
// posting is never rolled back because its event failed to publish.
type MovementPosted struct {
	MovementID       string          `json:"movement_id"`
	AccountID        string          `json:"account_id"`
	MovementType     MovementType    `json:"movement_type"`
	Amount           decimal.Decimal `json:"amount"`
	ResultingBalance decimal.Decimal `json:"resulting_balance"`
	PostedAt         time.Time       `json:"posted_at"`
}
