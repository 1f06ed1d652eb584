package models

import (
	"github.com/shopspring/decimal"
)

// AccountType mirrors the domain account type for DB storage.
type AccountType string

const (
	Savings  AccountType = "SAVINGS"
	Checking AccountType = "CHECKING"
)

// Account is the accounts table row.
type Account struct {
	AccountID   string          `db:"account_id"`
	Number      string          `db:"number"`
	AccountType AccountType     `db:"account_type"`
	Balance     decimal.Decimal `db:"balance"`
	IsActive    bool            `db:"is_active"`
	CustomerID  string          `db:"customer_id"`
	AuditFields
}
