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
	"github.com/ec-banking/backoffice/internal/utils/locking"
	"github.com/shopspring/decimal"
)

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrDailyLimitExceeded = errors.New("daily withdrawal limit exceeded")
)

// ledgerService is the movement-posting engine. It validates a posting
// request against the account state and the daily withdrawal limit, then
// commits the movement and the account's cached balance as one unit.
type ledgerService struct {
	accountRepo          portsrepo.AccountRepository
	movementRepo         portsrepo.MovementRepository
	publisher            portssvc.EventPublisher // optional; nil disables events
	dailyWithdrawalLimit decimal.Decimal
	accountLocks         *locking.KeyedMutex
}

// NewLedgerService creates a new LedgerService. dailyWithdrawalLimit is the
// per-account per-calendar-day ceiling on cumulative debit magnitude; it must
// be non-negative.
func NewLedgerService(accountRepo portsrepo.AccountRepository, movementRepo portsrepo.MovementRepository, publisher portssvc.EventPublisher, dailyWithdrawalLimit decimal.Decimal) portssvc.LedgerSvcFacade {
	if dailyWithdrawalLimit.IsNegative() {
		panic("ledger: daily withdrawal limit must be non-negative")
	}
	return &ledgerService{
		accountRepo:          accountRepo,
		movementRepo:         movementRepo,
		publisher:            publisher,
		dailyWithdrawalLimit: dailyWithdrawalLimit,
		accountLocks:         locking.NewKeyedMutex(),
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// normalizeAmount forces the sign of amount to match the movement type:
// credits non-negative, debits non-positive. The caller's sign is advisory
// only.
func normalizeAmount(movementType domain.MovementType, amount decimal.Decimal) decimal.Decimal {
	switch movementType {
	case domain.Credit:
		if amount.IsNegative() {
			return amount.Neg()
		}
	case domain.Debit:
		if amount.IsPositive() {
			return amount.Neg()
		}
	}
	return amount
}

// resolveCurrentBalance returns the resulting balance of the latest movement,
// falling back to the account's stored balance when no movements exist. Ties
// on timestamp are broken by insertion order, i.e. the last-persisted
// movement wins.
func resolveCurrentBalance(account *domain.Account, movements []domain.Movement) decimal.Decimal {
	if len(movements) == 0 {
		return account.Balance
	}
	latest := movements[0]
	for _, m := range movements[1:] {
		if !m.Timestamp.Before(latest.Timestamp) {
			latest = m
		}
	}
	return latest.ResultingBalance
}

// PostMovement implements portssvc.LedgerSvcFacade.
//
// Postings against the same account are serialized for the duration of the
// call; postings against different accounts proceed in parallel. On success
// exactly one commit unit has run: the movement insert plus the account
// balance update. No writes happen when any validation step fails.
func (s *ledgerService) PostMovement(ctx context.Context, req dto.CreateMovementRequest) (*domain.Movement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	s.accountLocks.Lock(req.AccountID)
	defer s.accountLocks.Unlock(req.AccountID)

	account, err := s.accountRepo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: id %s", ErrAccountNotFound, req.AccountID)
		}
		logger.Error("Failed to fetch account for posting", slog.String("account_id", req.AccountID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch account %s: %w", req.AccountID, err)
	}

	if !account.IsActive {
		return nil, fmt.Errorf("%w: account %s", ErrAccountInactive, req.AccountID)
	}

	movements, err := s.movementRepo.FindMovementsByAccountID(ctx, req.AccountID)
	if err != nil {
		logger.Error("Failed to fetch movement history", slog.String("account_id", req.AccountID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch movements for account %s: %w", req.AccountID, err)
	}

	currentBalance := resolveCurrentBalance(account, movements)
	amount := normalizeAmount(req.MovementType, req.Amount)

	if req.MovementType == domain.Debit {
		// A zero or negative balance blocks any withdrawal, even one the
		// final-balance check below would allow.
		if currentBalance.Sign() <= 0 {
			return nil, fmt.Errorf("%w: balance is %s", ErrInsufficientFunds, currentBalance)
		}

		if err := s.checkDailyLimit(ctx, req.AccountID, amount.Abs()); err != nil {
			return nil, err
		}

		if currentBalance.Add(amount).IsNegative() {
			return nil, fmt.Errorf("%w: balance %s, requested %s", ErrInsufficientFunds, currentBalance, amount.Abs())
		}
	}

	now := time.Now()
	movement := domain.Movement{
		MovementID:       uuid.NewString(),
		AccountID:        req.AccountID,
		MovementType:     req.MovementType,
		Amount:           amount,
		ResultingBalance: currentBalance.Add(amount),
		Timestamp:        now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	// One commit unit: movement insert + account balance update.
	if err := s.movementRepo.SaveMovement(ctx, movement); err != nil {
		logger.Error("Failed to commit movement", slog.String("account_id", req.AccountID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to commit movement for account %s: %w", req.AccountID, err)
	}

	s.publishPosted(ctx, movement)

	logger.Info("Movement posted",
		slog.String("movement_id", movement.MovementID),
		slog.String("account_id", movement.AccountID),
		slog.String("movement_type", string(movement.MovementType)),
		slog.String("amount", movement.Amount.String()),
		slog.String("resulting_balance", movement.ResultingBalance.String()),
	)
	return &movement, nil
}

// checkDailyLimit rejects the withdrawal when today's cumulative debit
// magnitude plus this withdrawal would exceed the configured limit. Day
// boundaries are local calendar-day boundaries.
func (s *ledgerService) checkDailyLimit(ctx context.Context, accountID string, withdrawal decimal.Decimal) error {
	debitsToday, err := s.movementRepo.FindDebitsByAccountIDOnDay(ctx, accountID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to fetch today's debits for account %s: %w", accountID, err)
	}

	withdrawnToday := decimal.Zero
	for _, m := range debitsToday {
		withdrawnToday = withdrawnToday.Add(m.Amount.Abs())
	}

	if withdrawnToday.Add(withdrawal).GreaterThan(s.dailyWithdrawalLimit) {
		return fmt.Errorf("%w: %s withdrawn today, requested %s, limit %s",
			ErrDailyLimitExceeded, withdrawnToday, withdrawal, s.dailyWithdrawalLimit)
	}
	return nil
}

// publishPosted emits the MovementPosted event. Best-effort: failures are
// logged and never returned, the posting is already durable.
func (s *ledgerService) publishPosted(ctx context.Context, movement domain.Movement) {
	if s.publisher == nil {
		return
	}
	event := domain.MovementPosted{
		MovementID:       movement.MovementID,
		AccountID:        movement.AccountID,
		MovementType:     movement.MovementType,
		Amount:           movement.Amount,
		ResultingBalance: movement.ResultingBalance,
		PostedAt:         movement.Timestamp,
	}
	if err := s.publisher.PublishMovementPosted(ctx, event); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to publish movement posted event",
			slog.String("movement_id", movement.MovementID), slog.String("error", err.Error()))
	}
}

// CurrentBalance implements portssvc.LedgerSvcFacade.
func (s *ledgerService) CurrentBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, fmt.Errorf("%w: id %s", ErrAccountNotFound, accountID)
		}
		return decimal.Zero, fmt.Errorf("failed to fetch account %s: %w", accountID, err)
	}

	movements, err := s.movementRepo.FindMovementsByAccountID(ctx, accountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to fetch movements for account %s: %w", accountID, err)
	}

	return resolveCurrentBalance(account, movements), nil
}
