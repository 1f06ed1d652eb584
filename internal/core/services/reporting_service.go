package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/ec-banking/backoffice/internal/apperrors"
	"github.com/ec-banking/backoffice/internal/core/domain"
	portsrepo "github.com/ec-banking/backoffice/internal/core/ports/repositories"
	portssvc "github.com/ec-banking/backoffice/internal/core/ports/services"
	"github.com/ec-banking/backoffice/internal/middleware"
	"github.com/shopspring/decimal"
)

// ErrCustomerNotFound rejects statement requests for unknown customers.
var ErrCustomerNotFound = errors.New("customer not found")

// reportingService builds the account-statement report. Generated reports are
// cached in Redis with a short TTL; Redis being down degrades to uncached
// operation.
type reportingService struct {
	customerRepo portsrepo.CustomerRepository
	accountRepo  portsrepo.AccountRepository
	movementRepo portsrepo.MovementRepository
	cache        *redis.Client // optional; nil disables caching
	cacheTTL     time.Duration
}

// NewReportingService creates a new ReportingService. cache may be nil.
func NewReportingService(customerRepo portsrepo.CustomerRepository, accountRepo portsrepo.AccountRepository, movementRepo portsrepo.MovementRepository, cache *redis.Client, cacheTTL time.Duration) portssvc.ReportingSvcFacade {
	return &reportingService{
		customerRepo: customerRepo,
		accountRepo:  accountRepo,
		movementRepo: movementRepo,
		cache:        cache,
		cacheTTL:     cacheTTL,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func statementCacheKey(customerID string, from, to time.Time) string {
	return fmt.Sprintf("statement:%s:%d:%d", customerID, from.Unix(), to.Unix())
}

// GenerateStatementReport implements portssvc.ReportingSvcFacade.
func (s *reportingService) GenerateStatementReport(ctx context.Context, customerID string, from, to time.Time) (*domain.StatementReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if cached := s.fromCache(ctx, customerID, from, to); cached != nil {
		logger.Debug("Statement report served from cache", slog.String("customer_id", customerID))
		return cached, nil
	}

	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: id %s", ErrCustomerNotFound, customerID)
		}
		return nil, fmt.Errorf("failed to fetch customer %s: %w", customerID, err)
	}

	accounts, err := s.accountRepo.ListAccountsByCustomerID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts for customer %s: %w", customerID, err)
	}

	report := &domain.StatementReport{
		CustomerID:   customer.CustomerID,
		CustomerName: customer.Name,
		From:         from,
		To:           to,
		Accounts:     make([]domain.StatementAccount, 0, len(accounts)),
		TotalCredits: decimal.Zero,
		TotalDebits:  decimal.Zero,
	}

	for _, account := range accounts {
		allMovements, err := s.movementRepo.FindMovementsByAccountID(ctx, account.AccountID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch movements for account %s: %w", account.AccountID, err)
		}
		inRange, err := s.movementRepo.FindMovementsByAccountIDAndDateRange(ctx, account.AccountID, from, to)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch ranged movements for account %s: %w", account.AccountID, err)
		}

		section := domain.StatementAccount{
			Number:         account.Number,
			AccountType:    account.AccountType,
			InitialBalance: account.Balance,
			CurrentBalance: resolveCurrentBalance(&account, allMovements),
			IsActive:       account.IsActive,
			Movements:      make([]domain.StatementMovement, 0, len(inRange)),
		}

		for _, m := range inRange {
			section.Movements = append(section.Movements, domain.StatementMovement{
				Timestamp:        m.Timestamp,
				MovementType:     m.MovementType,
				Amount:           m.Amount,
				ResultingBalance: m.ResultingBalance,
			})
			if m.MovementType == domain.Credit {
				report.TotalCredits = report.TotalCredits.Add(m.Amount)
			} else {
				report.TotalDebits = report.TotalDebits.Add(m.Amount.Abs())
			}
		}

		report.Accounts = append(report.Accounts, section)
	}

	s.toCache(ctx, customerID, from, to, report)

	logger.Info("Statement report generated",
		slog.String("customer_id", customerID),
		slog.Int("account_count", len(report.Accounts)),
	)
	return report, nil
}

func (s *reportingService) fromCache(ctx context.Context, customerID string, from, to time.Time) *domain.StatementReport {
	if s.cache == nil {
		return nil
	}
	payload, err := s.cache.Get(ctx, statementCacheKey(customerID, from, to)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			middleware.GetLoggerFromCtx(ctx).Warn("Statement cache read failed", slog.String("error", err.Error()))
		}
		return nil
	}
	var report domain.StatementReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil
	}
	return &report
}

func (s *reportingService) toCache(ctx context.Context, customerID string, from, to time.Time, report *domain.StatementReport) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, statementCacheKey(customerID, from, to), payload, s.cacheTTL).Err(); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Statement cache write failed", slog.String("error", err.Error()))
	}
}
