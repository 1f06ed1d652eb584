package services

import (
	"context"

	"github.com/ec-banking/backoffice/internal/core/domain"
	"github.com/ec-banking/backoffice/internal/dto"
)

// CustomerSvcFacade defines the customer management operations.
type CustomerSvcFacade interface {
	// CreateCustomer persists a new customer, hashing the supplied password.
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*domain.Customer, error)

	// GetCustomerByID retrieves a specific customer.
	GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)

	// ListCustomers retrieves a paginated list of customers.
	ListCustomers(ctx context.Context, params dto.ListCustomersParams) ([]domain.Customer, error)

	// UpdateCustomer updates an existing customer's details.
	UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest) (*domain.Customer, error)

	// DeactivateCustomer marks a customer as inactive.
	DeactivateCustomer(ctx context.Context, customerID string) error

	// DeleteCustomer removes a customer. Customers that still own accounts are
	// rejected.
	DeleteCustomer(ctx context.Context, customerID string) error
}
