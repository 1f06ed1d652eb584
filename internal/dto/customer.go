package dto

import (
	"time"

	"github.com/ec-banking/backoffice/internal/core/domain"
)

// CreateCustomerRequest defines the data needed to create a new customer.
type CreateCustomerRequest struct {
	Name           string `json:"name" binding:"required"`
	Gender         string `json:"gender"`
	Age            int    `json:"age" binding:"omitempty,gte=0,lte=150"`
	Identification string `json:"identification" binding:"required"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	Password       string `json:"password" binding:"required,min=4"`
}

// UpdateCustomerRequest defines the data allowed for updating a customer.
type UpdateCustomerRequest struct {
	Name     *string `json:"name"`
	Gender   *string `json:"gender"`
	Age      *int    `json:"age" binding:"omitempty,gte=0,lte=150"`
	Address  *string `json:"address"`
	Phone    *string `json:"phone"`
	Password *string `json:"password" binding:"omitempty,min=4"`
	IsActive *bool   `json:"isActive"`
}

// CustomerResponse defines the data returned for a customer. The password
// hash is never exposed.
type CustomerResponse struct {
	CustomerID     string    `json:"customerID"`
	Name           string    `json:"name"`
	Gender         string    `json:"gender"`
	Age            int       `json:"age"`
	Identification string    `json:"identification"`
	Address        string    `json:"address"`
	Phone          string    `json:"phone"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ListCustomersParams defines query parameters for listing customers.
type ListCustomersParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ToCustomerResponse converts a domain.Customer to CustomerResponse.
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID:     c.CustomerID,
		Name:           c.Name,
		Gender:         c.Gender,
		Age:            c.Age,
		Identification: c.Identification,
		Address:        c.Address,
		Phone:          c.Phone,
		IsActive:       c.IsActive,
		CreatedAt:      c.CreatedAt,
	}
}

// ToCustomerResponses converts a slice of domain customers.
func ToCustomerResponses(customers []domain.Customer) []CustomerResponse {
	res := make([]CustomerResponse, len(customers))
	for i := range customers {
		res[i] = ToCustomerResponse(&customers[i])
	}
	return res
}
