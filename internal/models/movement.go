package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType mirrors the domain movement type for DB storage.
type MovementType string

const (
	Debit  MovementType = "DEBIT"
	Credit MovementType = "CREDIT"
)

// Movement is the movements table row. Seq is a monotonically increasing
// insertion counter used to break timestamp ties deterministically.
type Movement struct {
	MovementID       string          `db:"movement_id"`
	AccountID        string          `db:"account_id"`
	MovementType     MovementType    `db:"movement_type"`
	Amount           decimal.Decimal `db:"amount"`
	ResultingBalance decimal.Decimal `db:"resulting_balance"`
	Timestamp        time.Time       `db:"ts"`
	Seq              int64           `db:"seq"`
	AuditFields
}
