package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementReport is the account-statement report for one customer over a
// date range: every account with its movements in range plus global totals.
// Formatting (PDF rendering and the like) is handled elsewhere; this is the
// report data only.
type StatementReport struct {
	CustomerID   string             `json:"customerID"`
	CustomerName string             `json:"customerName"`
	From         time.Time          `json:"from"`
	To           time.Time          `json:"to"`
	Accounts     []StatementAccount `json:"accounts"`
	TotalCredits decimal.Decimal    `json:"totalCredits"`
	TotalDebits  decimal.Decimal    `json:"totalDebits"`
}

// StatementAccount is one account section within a statement report.
type StatementAccount struct {
	Number         string              `json:"number"`
	AccountType    AccountType         `json:"accountType"`
	InitialBalance decimal.Decimal     `json:"initialBalance"`
	CurrentBalance decimal.Decimal     `json:"currentBalance"`
	IsActive       bool                `json:"isActive"`
	Movements      []StatementMovement `json:"movements"`
}

// StatementMovement is one movement line within a statement report.
type StatementMovement struct {
	Timestamp        time.Time       `json:"timestamp"`
	MovementType     MovementType    `json:"movementType"`
	Amount           decimal.Decimal `json:"amount"`
	ResultingBalance decimal.Decimal `json:"resultingBalance"`
}
