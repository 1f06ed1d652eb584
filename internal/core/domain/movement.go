package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType indicates whether a movement credits or debits the account.
type MovementType string

const (
	Credit MovementType = "CREDIT"
	Debit  MovementType = "DEBIT"
)

// Movement is a single posted credit or debit against an account, immutable
// once recorded. The sign of Amount is the canonical encoding of direction:
// credits are stored non-negative, debits non-positive.
type Movement struct {
	MovementID       string          `json:"movementID"` // Primary key (UUID)
	AccountID        string          `json:"accountID"`  // FK -> Account.AccountID
	MovementType     MovementType    `json:"movementType"`
	Amount           decimal.Decimal `json:"amount"`           // Signed; direction encoded in sign
	ResultingBalance decimal.Decimal `json:"resultingBalance"` // Account balance immediately after this movement
	Timestamp        time.Time       `json:"timestamp"`        // Assigned by the engine at posting time
	AuditFields
}
