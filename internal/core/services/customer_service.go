package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ec-banking/backoffice/internal/core/domain"
	portsrepo "github.com/ec-banking/backoffice/internal/core/ports/repositories"
	portssvc "github.com/ec-banking/backoffice/internal/core/ports/services"
	"github.com/ec-banking/backoffice/internal/dto"
	"github.com/ec-banking/backoffice/internal/middleware"
	"github.com/ec-banking/backoffice/internal/utils"
)

// ErrCustomerHasAccounts rejects deleting a customer that still owns accounts.
var ErrCustomerHasAccounts = errors.New("customer still owns accounts")

// customerService provides customer management operations.
type customerService struct {
	customerRepo portsrepo.CustomerRepository
	accountRepo  portsrepo.AccountRepository
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(customerRepo portsrepo.CustomerRepository, accountRepo portsrepo.AccountRepository) portssvc.CustomerSvcFacade {
	return &customerService{
		customerRepo: customerRepo,
		accountRepo:  accountRepo,
	}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

// CreateCustomer implements portssvc.CustomerSvcFacade.
func (s *customerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash customer password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	customer := domain.Customer{
		CustomerID: uuid.NewString(),
		Person: domain.Person{
			Name:           req.Name,
			Gender:         req.Gender,
			Age:            req.Age,
			Identification: req.Identification,
			Address:        req.Address,
			Phone:          req.Phone,
		},
		PasswordHash: passwordHash,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		logger.Error("Failed to save customer", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save customer: %w", err)
	}

	logger.Info("Customer created", slog.String("customer_id", customer.CustomerID))
	return &customer, nil
}

// GetCustomerByID implements portssvc.CustomerSvcFacade.
func (s *customerService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find customer %s: %w", customerID, err)
	}
	return customer, nil
}

// ListCustomers implements portssvc.CustomerSvcFacade.
func (s *customerService) ListCustomers(ctx context.Context, params dto.ListCustomersParams) ([]domain.Customer, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	customers, err := s.customerRepo.ListCustomers(ctx, limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

// UpdateCustomer implements portssvc.CustomerSvcFacade.
func (s *customerService) UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find customer %s: %w", customerID, err)
	}

	updated := false
	if req.Name != nil {
		customer.Name = *req.Name
		updated = true
	}
	if req.Gender != nil {
		customer.Gender = *req.Gender
		updated = true
	}
	if req.Age != nil {
		customer.Age = *req.Age
		updated = true
	}
	if req.Address != nil {
		customer.Address = *req.Address
		updated = true
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
		updated = true
	}
	if req.IsActive != nil {
		customer.IsActive = *req.IsActive
		updated = true
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		customer.PasswordHash = hash
		updated = true
	}

	if !updated {
		return customer, nil
	}

	customer.LastUpdatedAt = time.Now()
	if err := s.customerRepo.UpdateCustomer(ctx, *customer); err != nil {
		logger.Error("Failed to update customer", slog.String("customer_id", customerID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update customer %s: %w", customerID, err)
	}

	logger.Info("Customer updated", slog.String("customer_id", customerID))
	return customer, nil
}

// DeactivateCustomer implements portssvc.CustomerSvcFacade.
func (s *customerService) DeactivateCustomer(ctx context.Context, customerID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.customerRepo.FindCustomerByID(ctx, customerID); err != nil {
		return fmt.Errorf("failed to find customer %s: %w", customerID, err)
	}

	if err := s.customerRepo.DeactivateCustomer(ctx, customerID, time.Now()); err != nil {
		logger.Error("Failed to deactivate customer", slog.String("customer_id", customerID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to deactivate customer %s: %w", customerID, err)
	}

	logger.Info("Customer deactivated", slog.String("customer_id", customerID))
	return nil
}

// DeleteCustomer implements portssvc.CustomerSvcFacade.
func (s *customerService) DeleteCustomer(ctx context.Context, customerID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.customerRepo.FindCustomerByID(ctx, customerID); err != nil {
		return fmt.Errorf("failed to find customer %s: %w", customerID, err)
	}

	accounts, err := s.accountRepo.ListAccountsByCustomerID(ctx, customerID)
	if err != nil {
		return fmt.Errorf("failed to list accounts for customer %s: %w", customerID, err)
	}
	if len(accounts) > 0 {
		return fmt.Errorf("%w: customer %s owns %d account(s)", ErrCustomerHasAccounts, customerID, len(accounts))
	}

	if err := s.customerRepo.DeleteCustomer(ctx, customerID); err != nil {
		logger.Error("Failed to delete customer", slog.String("customer_id", customerID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete customer %s: %w", customerID, err)
	}

	logger.Info("Customer deleted", slog.String("customer_id", customerID))
	return nil
}
