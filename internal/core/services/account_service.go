package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ec-banking/backoffice/internal/apperrors"
	"github.com/ec-banking/backoffice/internal/core/domain"
	portsrepo "github.com/ec-banking/backoffice/internal/core/ports/repositories"
	portssvc "github.com/ec-banking/backoffice/internal/core/ports/services"
	"github.com/ec-banking/backoffice/internal/dto"
	"github.com/ec-banking/backoffice/internal/middleware"
)

// accountService provides account management operations. The ledger engine is
// the only writer of account balances after creation; this service only seeds
// the initial balance.
type accountService struct {
	accountRepo  portsrepo.AccountRepository
	customerRepo portsrepo.CustomerRepository
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepository, customerRepo portsrepo.CustomerRepository) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo:  accountRepo,
		customerRepo: customerRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount implements portssvc.AccountSvcFacade.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	exists, err := s.accountRepo.ExistsByNumber(ctx, req.Number)
	if err != nil {
		logger.Error("Failed to check account number uniqueness", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to check account number %s: %w", req.Number, err)
	}
	if exists {
		return nil, fmt.Errorf("%w: account number %s", apperrors.ErrDuplicate, req.Number)
	}

	if _, err := s.customerRepo.FindCustomerByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, req.CustomerID)
		}
		return nil, fmt.Errorf("failed to fetch customer %s: %w", req.CustomerID, err)
	}

	now := time.Now()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		Number:      req.Number,
		AccountType: req.AccountType,
		Balance:     req.InitialBalance,
		IsActive:    true,
		CustomerID:  req.CustomerID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("number", account.Number))
	return &account, nil
}

// GetAccountByID implements portssvc.AccountSvcFacade.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

// GetAccountByNumber implements portssvc.AccountSvcFacade.
func (s *accountService) GetAccountByNumber(ctx context.Context, number string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByNumber(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("failed to find account with number %s: %w", number, err)
	}
	return account, nil
}

// ListAccounts implements portssvc.AccountSvcFacade.
func (s *accountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// ListAccountsByCustomerID implements portssvc.AccountSvcFacade.
func (s *accountService) ListAccountsByCustomerID(ctx context.Context, customerID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccountsByCustomerID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts for customer %s: %w", customerID, err)
	}
	return accounts, nil
}

// UpdateAccount implements portssvc.AccountSvcFacade.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	updated := false
	if req.Number != nil && *req.Number != account.Number {
		exists, err := s.accountRepo.ExistsByNumber(ctx, *req.Number)
		if err != nil {
			return nil, fmt.Errorf("failed to check account number %s: %w", *req.Number, err)
		}
		if exists {
			return nil, fmt.Errorf("%w: account number %s", apperrors.ErrDuplicate, *req.Number)
		}
		account.Number = *req.Number
		updated = true
	}
	if req.AccountType != nil {
		account.AccountType = *req.AccountType
		updated = true
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
		updated = true
	}

	if !updated {
		return account, nil
	}

	account.LastUpdatedAt = time.Now()
	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update account %s: %w", accountID, err)
	}

	logger.Info("Account updated", slog.String("account_id", accountID))
	return account, nil
}

// DeleteAccount implements portssvc.AccountSvcFacade.
func (s *accountService) DeleteAccount(ctx context.Context, accountID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		logger.Error("Failed to delete account", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}

	logger.Info("Account deleted", slog.String("account_id", accountID))
	return nil
}
