package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType is the closed set of supported account kinds.
type AccountType string

const (
	Savings  AccountType = "SAVINGS"
	Checking AccountType = "CHECKING"
)

// Account represents a bank account within the core domain.
//
// Balance doubles as the initial balance at creation time and as a cache of
// the latest movement's resulting balance thereafter. Once movements exist the
// ledger is the source of truth; the field is re-synced on every posting.
type Account struct {
	AccountID   string          `json:"accountID"`   // Primary key (UUID)
	Number      string          `json:"number"`      // Unique, caller-visible account number
	AccountType AccountType     `json:"accountType"` // SAVINGS or CHECKING
	Balance     decimal.Decimal `json:"balance"`     // Initial balance, then cached current balance
	IsActive    bool            `json:"isActive"`    // Inactive accounts reject postings
	CustomerID  string          `json:"customerID"`  // FK -> Customer.CustomerID
	AuditFields
}
