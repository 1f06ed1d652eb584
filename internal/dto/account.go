package dto

import (
	"time"

	"github.com/ec-banking/backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
// InitialBalance seeds the account's balance field; once movements exist the
// ledger is authoritative.
type CreateAccountRequest struct {
	Number         string             `json:"number" binding:"required"`
	AccountType    domain.AccountType `json:"accountType" binding:"required,oneof=SAVINGS CHECKING"`
	InitialBalance decimal.Decimal    `json:"initialBalance"`
	CustomerID     string             `json:"customerID" binding:"required"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Pointers distinguish zero-value updates from fields not provided.
type UpdateAccountRequest struct {
	Number      *string             `json:"number"`
	AccountType *domain.AccountType `json:"accountType" binding:"omitempty,oneof=SAVINGS CHECKING"`
	IsActive    *bool               `json:"isActive"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID   string             `json:"accountID"`
	Number      string             `json:"number"`
	AccountType domain.AccountType `json:"accountType"`
	Balance     decimal.Decimal    `json:"balance"`
	IsActive    bool               `json:"isActive"`
	CustomerID  string             `json:"customerID"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// AccountBalanceResponse defines the data returned for a balance query.
type AccountBalanceResponse struct {
	AccountID string          `json:"accountID"`
	Balance   decimal.Decimal `json:"balance"`
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:   acc.AccountID,
		Number:      acc.Number,
		AccountType: acc.AccountType,
		Balance:     acc.Balance,
		IsActive:    acc.IsActive,
		CustomerID:  acc.CustomerID,
		CreatedAt:   acc.CreatedAt,
	}
}

// ToAccountResponses converts a slice of domain accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}
