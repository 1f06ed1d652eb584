package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ec-banking/backoffice/internal/apperrors"
	"github.com/ec-banking/backoffice/internal/core/domain"
	portssvc "github.com/ec-banking/backoffice/internal/core/ports/services"
	"github.com/ec-banking/backoffice/internal/core/services"
	"github.com/ec-banking/backoffice/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---
type LedgerServiceTestSuite struct {
	suite.Suite
	mockAccountRepo  *MockAccountRepository
	mockMovementRepo *MockMovementRepository
	mockPublisher    *MockEventPublisher
	service          portssvc.LedgerSvcFacade
	account          domain.Account
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockMovementRepo = new(MockMovementRepository)
	suite.mockPublisher = new(MockEventPublisher)
	suite.service = services.NewLedgerService(
		suite.mockAccountRepo,
		suite.mockMovementRepo,
		suite.mockPublisher,
		decimal.RequireFromString("1000.00"),
	)

	suite.account = domain.Account{
		AccountID:   uuid.NewString(),
		Number:      "478758",
		AccountType: domain.Savings,
		Balance:     decimal.RequireFromString("500.00"),
		IsActive:    true,
		CustomerID:  uuid.NewString(),
	}
}

func (suite *LedgerServiceTestSuite) expectAccount(account domain.Account) {
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, account.AccountID).Return(&account, nil).Once()
}

func (suite *LedgerServiceTestSuite) expectMovements(accountID string, movements []domain.Movement) {
	suite.mockMovementRepo.On("FindMovementsByAccountID", mock.Anything, accountID).Return(movements, nil).Once()
}

func movementAt(accountID string, movementType domain.MovementType, amount, resulting string, ts time.Time) domain.Movement {
	return domain.Movement{
		MovementID:       uuid.NewString(),
		AccountID:        accountID,
		MovementType:     movementType,
		Amount:           decimal.RequireFromString(amount),
		ResultingBalance: decimal.RequireFromString(resulting),
		Timestamp:        ts,
	}
}

// --- Posting: success paths ---

// Balance 500.00, post CREDIT 100.00: stored amount 100.00, resulting 600.00.
func (suite *LedgerServiceTestSuite) TestPostMovement_CreditSuccess() {
	ctx := context.Background()
	suite.expectAccount(suite.account)
	suite.expectMovements(suite.account.AccountID, []domain.Movement{})

	var saved domain.Movement
	suite.mockMovementRepo.On("SaveMovement", mock.Anything, mock.AnythingOfType("domain.Movement")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Movement) }).
		Return(nil).Once()
	suite.mockPublisher.On("PublishMovementPosted", mock.Anything, mock.AnythingOfType("domain.MovementPosted")).Return(nil).Once()

	movement, err := suite.service.PostMovement(ctx, dto.CreateMovementRequest{
		AccountID:    suite.account.AccountID,
		MovementType: domain.Credit,
		Amount:       decimal.RequireFromString("100.00"),
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(movement)
	suite.NotEmpty(movement.MovementID)
	suite.True(movement.Amount.Equal(decimal.RequireFromString("100.00")))
	suite.True(movement.ResultingBalance.Equal(decimal.RequireFromString("600.00")))
	suite.WithinDuration(time.Now(), movement.Timestamp, time.Second)

	// The committed movement is exactly what the engine returned.
	suite.Equal(movement.MovementID, saved.MovementID)
	suite.True(saved.ResultingBalance.Equal(movement.ResultingBalance))

	suite.mockMovementRepo.AssertExpectations(suite.T())
	suite.mockPublisher.AssertExpectations(suite.T())
}

// Balance 500.00, no debits today, limit 1000.00, post DEBIT 300.00: stored
// amount -300.00, resulting 200.00.
func (suite *LedgerServiceTestSuite) TestPostMovement_DebitSuccess() {
	ctx := context.Background()
	suite.expectAccount(suite.account)
	suite.expectMovements(suite.account.AccountID, []domain.Movement{})
	suite.mockMovementRepo.On("FindDebitsByAccountIDOnDay", mock.Anything, suite.account.AccountID, mock.AnythingOfType("time.Time")).
		Return([]domain.Movement{}, nil).Once()
	suite.mockMovementRepo.On("SaveMovement", mock.Anything, mock.AnythingOfType("domain.Movement")).Return(nil).Once()
	suite.mockPublisher.On("PublishMovementPosted", mock.Anything, mock.AnythingOfType("domain.MovementPosted")).Return(nil).Once()

	movement, err := suite.service.PostMovement(ctx, dto.CreateMovementRequest{
		AccountID:    suite.account.AccountID,
		MovementType: domain.Debit,
		Amount:       decimal.RequireFromString("300.00"),
	})

	suite.Require().NoError(err)
	suite.True(movement.Amount.Equal(decimal.RequireFromString("-300.00")))
	suite.True(movement.ResultingBalance.Equal(decimal.RequireFromString("200.00")))
	suite.mockMovementRepo.AssertExpectations(suite.T())
}

// Credits with a negative requested amount are normalized to positive; debits
// with a positive requested amount are normalized to negative.
func (suite *LedgerServiceTestSuite) TestPostMovement_SignNormalization() {
	ctx := context.Background()
	suite.expectAccount(suite.account)
	suite.expectMovements(suite.account.AccountID, []domain.Movement{})
	suite.mockMovementRepo.On("SaveMovement", mock.Anything, mock.AnythingOfType("domain.Movement")).Return(nil).Once()
	suite.mockPublisher.On("PublishMovementPosted", mock.Anything, mock.Anything).Return(nil)

	movement, err := suite.service.PostMovement(ctx, dto.CreateMovementRequest{
		AccountID:    suite.account.AccountID,
		MovementType: domain.Credit,
		Amount:       decimal.RequireFromString("-75.00"),
	})

	suite.Require().NoError(err)
	suite.True(movement.Amount.Equal(decimal.RequireFromString("75.00")))
	suite.True(movement.ResultingBalance.Equal(decimal.RequireFromString("575.00")))

	// Debit sent already negative stays negative.
	suite.expectAccount(suite.account)
	suite.expectMovements(suite.account.AccountID, []domain.Movement{})
	suite.mockMovementRepo.On("FindDebitsByAccountIDOnDay", mock.Anything, suite.account.AccountID, mock.AnythingOfType("time.Time")).
		Return([]domain.Movement{}, nil).Once()
	suite.mockMovementRepo.On("SaveMovement", mock.Anything, mock.AnythingOfType("domain.Movement")).Return(nil).Once()

	movement, err = suite.service.PostMovement(ctx, dto.CreateMovementRequest{
		AccountID:    suite.account.AccountID,
		MovementType: domain.Debit,
		Amount:       decimal.RequireFromString("-50.00"),
	})

	suite.Require().NoError(err)
	suite.True(movement.Amount.Equal(decimal.RequireFromString("-50.00")))
	suite.True(movement.ResultingBalance.Equal(decimal.RequireFromString("450.00")))
}

// The ledger balance comes from the latest movement, not the stored account
// balance, once movements exist.
func (suite *LedgerServiceTestSuite) TestPostMovement_BalanceFromLatestMovement() {
	ctx := context.Background()
	base := time.Now().Add(-2 * time.Hour)
	history := []domain.Movement{
		movementAt(suite.account.AccountID, domain.Credit, "200.00", "700.00", base),
		movementAt(suite.account.AccountID, domain.Debit, "-100.00", "600.00", base.Add(time.Hour)),
	}

	suite.expectAccount(suite.account)
	suite.expectMovements(suite.account.AccountID, history)
	suite.mockMovementRepo.On("SaveMovement", mock.Anything, mock.AnythingOfType("domain.Movement")).Return(nil).Once()
	suite.mockPublisher.On("PublishMovementPosted", mock.Anything, mock.Anything).Return(nil)

	movement, err := suite.service.PostMovement(ctx, dto.CreateMovementRequest{
		AccountID:    suite.account.AccountID,
		MovementType: domain.Credit,
		Amount:       decimal.RequireFromString("50.00"),
	})

	suite.Require().NoError(err)
	suite.True(movement.ResultingBalance.Equal(decimal.RequireFromString("650.00")))
}

// Two movements sharing a timestamp: the later one in the slice (insertion
// order) wins the balance resolution.
func (suite *LedgerServiceTestSuite) TestPostMovement_TimestampTieBrokenByInsertionOrder() {
	ctx := context.Background()
	ts := time.Now().Add(-time.Hour)
	history := []domain.Movement{
		movementAt(suite.account.AccountID, domain.Credit, "100.00", "600.00", ts),
		movementAt(suite.account.AccountID, domain.Credit, "100.00", "700.00", ts),
	}

	suite.expectAccount(suite.account)
	suite.expectMovements(suite.account.AccountID, history)
	suite.mockMovementRepo.On("SaveMovement", mock.Anything, mock.AnythingOfType("domain.Movement")).Return(nil).Once()
	suite.mockPublisher.On("PublishMovementPosted", mock.Anything, mock.Anything).Return(nil)

	movement, err := suite.service.PostMovement(ctx, dto.CreateMovementRequest{
		AccountID:    suite.account.AccountID,
		MovementType: domain.Credit,
		Amount:       decimal.RequireFromString("1.00"),
	})

	suite.Require().NoError(err)
	suite.True(movement.ResultingBalance.Equal(decimal.RequireFromString("701.00")))
}

// --- Posting: rejections ---

// 300.00 already withdrawn today, limit 1000.00: a further 800.00 debit is
// rejected even though the balance allows it.
func (suite *LedgerServiceTestSuite) TestPostMovement_DailyLimitExceeded() {
	ctx := context.Background()
	today := time.Now()
	account := suite.account
	account.Balance = decimal.RequireFromString("2000.00")

	suite.expectAccount(account)
	suite.expectMovements(account.AccountID, []domain.Movement{})
	suite.mockMovementRepo.On("FindDebitsByAccountIDOnDay", mock.Anything, account.AccountID, mock.AnythingOfType("time.Time")).
		Return([]domain.Movement{
			movementAt(account.AccountID, domain.Debit, "-300.00", "1700.00", today),
		}, nil).Once()

	_, err := suite.service.PostMovement(ctx, dto.CreateMovementRequest{
		AccountID:    account.AccountID,
		MovementType: domain.Debit,
		Amount:       decimal.RequireFromString("800.00"),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrDailyLimitExceeded)
	suite.mockMovementRepo.AssertNotCalled(suite.T(), "SaveMovement", mock.Anything, mock.Anything)
	suite.mockPublisher.AssertNotCalled(suite.T(), "PublishMovementPosted", mock.Anything, mock.Anything)
}

// A debit summing exactly to the limit is allowed; the limit is a ceiling,
// not a strict bound.
func (suite *LedgerServiceTestSuite) TestPostMovement_DailyLimitBoundary() {
	ctx := context.Background()
	account := suite.account
	account.Balance = decimal.RequireFromString("2000.00")

	suite.expectAccount(account)
	suite.expectMovements(account.AccountID, []domain.Movement{})
	suite.mockMovementRepo.On("FindDebitsByAccountIDOnDay", mock.Anything, account.AccountID, mock.AnythingOfType("time.Time")).
		Return([]domain.Movement{
			movementAt(account.AccountID, domain.Debit, "-300.00", "1700.00", time.Now()),
		}, nil).Once()
	suite.mockMovementRepo.On("SaveMovement", mock.Anything, mock.AnythingOfType("domain.Movement")).Return(nil).Once()
	suite.mockPublisher.On("PublishMovementPosted", mock.Anything, mock.Anything).Return(nil)

	movement, err := suite.service.PostMovement(ctx, dto.CreateMovementRequest{
		AccountID:    account.AccountID,
		MovementType: domain.Debit,
		Amount:       decimal.RequireFromString("700.00"),
	})

	suite.Require().NoError(err)
	suite.True(movement.Amount.Equal(decimal.RequireFromString("-700.00")))
}

// Zero balance blocks any debit before the daily limit is even consulted.
func (suite *LedgerServiceTestSuite) TestPostMovement_InsufficientFundsPreCheck() {
	ctx := context.Background()
	account := suite.account
	account.Balance = decimal.Zero

	suite.expectAccount(account)
	suite.expectMovements(account.AccountID, []domain.Movement{})

	_, err := suite.service.PostMovement(ctx, dto.CreateMovementRequest{
		AccountID:    account.AccountID,
		MovementType: domain.Debit,
		Amount:       decimal.RequireFromString("0.01"),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInsufficientFunds)
	suite.mockMovementRepo.AssertNotCalled(suite.T(), "FindDebitsByAccountIDOnDay", mock.Anything, mock.Anything, mock.Anything)
	suite.mockMovementRepo.AssertNotCalled(suite.T(), "SaveMovement", mock.Anything, mock.Anything)
}

// Balance 100.00, debit 150.00 under the daily limit: rejected because the
// projected balance would be negative.
func (suite *LedgerServiceTestSuite) TestPostMovement_InsufficientFundsPostCheck() {
	ctx := context.Background()
	account := suite.account
	account.Balance = decimal.RequireFromString("100.00")

	suite.expectAccount(account)
	suite.expectMovements(account.AccountID, []domain.Movement{})
	suite.mockMovementRepo.On("FindDebitsByAccountIDOnDay", mock.Anything, account.AccountID, mock.AnythingOfType("time.Time")).
		Return([]domain.Movement{}, nil).Once()

	_, err := suite.service.PostMovement(ctx, dto.CreateMovementRequest{
		AccountID:    account.AccountID,
		MovementType: domain.Debit,
		Amount:       decimal.RequireFromString("150.00"),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInsufficientFunds)
	suite.mockMovementRepo.AssertNotCalled(suite.T(), "SaveMovement", mock.Anything, mock.Anything)
}

// A debit draining the balance exactly to zero is allowed.
func (suite *LedgerServiceTestSuite) TestPostMovement_DebitToExactlyZero() {
	ctx := context.Background()
	suite.expectAccount(suite.account)
	suite.expectMovements(suite.account.AccountID, []domain.Movement{})
	suite.mockMovementRepo.On("FindDebitsByAccountIDOnDay", mock.Anything, suite.account.AccountID, mock.AnythingOfType("time.Time")).
		Return([]domain.Movement{}, nil).Once()
	suite.mockMovementRepo.On("SaveMovement", mock.Anything, mock.AnythingOfType("domain.Movement")).Return(nil).Once()
	suite.mockPublisher.On("PublishMovementPosted", mock.Anything, mock.Anything).Return(nil)

	movement, err := suite.service.PostMovement(ctx, dto.CreateMovementRequest{
		AccountID:    suite.account.AccountID,
		MovementType: domain.Debit,
		Amount:       decimal.RequireFromString("500.00"),
	})

	suite.Require().NoError(err)
	suite.True(movement.ResultingBalance.IsZero())
}

// Inactive account rejects any posting, credit or debit.
func (suite *LedgerServiceTestSuite) TestPostMovement_AccountInactive() {
	ctx := context.Background()
	account := suite.account
	account.IsActive = false

	suite.expectAccount(account)

	_, err := suite.service.PostMovement(ctx, dto.CreateMovementRequest{
		AccountID:    account.AccountID,
		MovementType: domain.Credit,
		Amount:       decimal.RequireFromString("10.00"),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountInactive)
	suite.mockMovementRepo.AssertNotCalled(suite.T(), "FindMovementsByAccountID", mock.Anything, mock.Anything)
	suite.mockMovementRepo.AssertNotCalled(suite.T(), "SaveMovement", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPostMovement_AccountNotFound() {
	ctx := context.Background()
	unknownID := uuid.NewString()
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, unknownID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.PostMovement(ctx, dto.CreateMovementRequest{
		AccountID:    unknownID,
		MovementType: domain.Credit,
		Amount:       decimal.RequireFromString("10.00"),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountNotFound)
}

// --- Posting: commit and publish behavior ---

func (suite *LedgerServiceTestSuite) TestPostMovement_CommitFailurePropagates() {
	ctx := context.Background()
	suite.expectAccount(suite.account)
	suite.expectMovements(suite.account.AccountID, []domain.Movement{})
	suite.mockMovementRepo.On("SaveMovement", mock.Anything, mock.AnythingOfType("domain.Movement")).
		Return(apperrors.ErrCommitFailed).Once()

	_, err := suite.service.PostMovement(ctx, dto.CreateMovementRequest{
		AccountID:    suite.account.AccountID,
		MovementType: domain.Credit,
		Amount:       decimal.RequireFromString("10.00"),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrCommitFailed)
	suite.mockPublisher.AssertNotCalled(suite.T(), "PublishMovementPosted", mock.Anything, mock.Anything)
}

// A publish failure never fails the posting: the movement is already durable.
func (suite *LedgerServiceTestSuite) TestPostMovement_PublishFailureIgnored() {
	ctx := context.Background()
	suite.expectAccount(suite.account)
	suite.expectMovements(suite.account.AccountID, []domain.Movement{})
	suite.mockMovementRepo.On("SaveMovement", mock.Anything, mock.AnythingOfType("domain.Movement")).Return(nil).Once()
	suite.mockPublisher.On("PublishMovementPosted", mock.Anything, mock.AnythingOfType("domain.MovementPosted")).
		Return(assert.AnError).Once()

	movement, err := suite.service.PostMovement(ctx, dto.CreateMovementRequest{
		AccountID:    suite.account.AccountID,
		MovementType: domain.Credit,
		Amount:       decimal.RequireFromString("10.00"),
	})

	suite.Require().NoError(err)
	suite.NotNil(movement)
	suite.mockPublisher.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestPostMovement_NilPublisher() {
	ctx := context.Background()
	service := services.NewLedgerService(suite.mockAccountRepo, suite.mockMovementRepo, nil, decimal.RequireFromString("1000.00"))

	suite.expectAccount(suite.account)
	suite.expectMovements(suite.account.AccountID, []domain.Movement{})
	suite.mockMovementRepo.On("SaveMovement", mock.Anything, mock.AnythingOfType("domain.Movement")).Return(nil).Once()

	_, err := service.PostMovement(ctx, dto.CreateMovementRequest{
		AccountID:    suite.account.AccountID,
		MovementType: domain.Credit,
		Amount:       decimal.RequireFromString("10.00"),
	})

	suite.Require().NoError(err)
}

// sequencedMovementRepo records committed movements and serves them back as
// the account's history, letting serialization tests observe real balance
// chaining under concurrency.
type sequencedMovementRepo struct {
	*MockMovementRepository
	mu        sync.Mutex
	committed []domain.Movement
}

func (r *sequencedMovementRepo) FindMovementsByAccountID(ctx context.Context, accountID string) ([]domain.Movement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Movement, len(r.committed))
	copy(out, r.committed)
	return out, nil
}

func (r *sequencedMovementRepo) SaveMovement(ctx context.Context, movement domain.Movement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.committed = append(r.committed, movement)
	return nil
}

// Concurrent postings against the same account are serialized: each one sees
// the balance left by the previous commit.
func (suite *LedgerServiceTestSuite) TestPostMovement_SameAccountSerialized() {
	ctx := context.Background()
	const posts = 10

	movementRepo := &sequencedMovementRepo{MockMovementRepository: suite.mockMovementRepo}
	service := services.NewLedgerService(suite.mockAccountRepo, movementRepo, nil, decimal.RequireFromString("1000.00"))

	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, suite.account.AccountID).Return(&suite.account, nil)

	var wg sync.WaitGroup
	for i := 0; i < posts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.PostMovement(ctx, dto.CreateMovementRequest{
				AccountID:    suite.account.AccountID,
				MovementType: domain.Credit,
				Amount:       decimal.RequireFromString("10.00"),
			})
			assert.NoError(suite.T(), err)
		}()
	}
	wg.Wait()

	suite.Require().Len(movementRepo.committed, posts)
	// Each commit starts from the balance the previous one left behind.
	prev := suite.account.Balance
	for _, m := range movementRepo.committed {
		suite.True(m.ResultingBalance.Equal(prev.Add(decimal.RequireFromString("10.00"))),
			"resulting balance %s does not chain from %s", m.ResultingBalance, prev)
		prev = m.ResultingBalance
	}
}

// --- CurrentBalance ---

func (suite *LedgerServiceTestSuite) TestCurrentBalance_NoMovements() {
	ctx := context.Background()
	suite.expectAccount(suite.account)
	suite.expectMovements(suite.account.AccountID, []domain.Movement{})

	balance, err := suite.service.CurrentBalance(ctx, suite.account.AccountID)

	suite.Require().NoError(err)
	suite.True(balance.Equal(suite.account.Balance))
}

func (suite *LedgerServiceTestSuite) TestCurrentBalance_FromLatestMovement() {
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)
	suite.expectAccount(suite.account)
	suite.expectMovements(suite.account.AccountID, []domain.Movement{
		movementAt(suite.account.AccountID, domain.Credit, "100.00", "600.00", base),
		movementAt(suite.account.AccountID, domain.Debit, "-50.00", "550.00", base.Add(time.Minute)),
	})

	balance, err := suite.service.CurrentBalance(ctx, suite.account.AccountID)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.RequireFromString("550.00")))
}

func (suite *LedgerServiceTestSuite) TestCurrentBalance_AccountNotFound() {
	ctx := context.Background()
	unknownID := uuid.NewString()
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, unknownID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CurrentBalance(ctx, unknownID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountNotFound)
}

// --- Run Test Suite ---
func TestLedgerService(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
