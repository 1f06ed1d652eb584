package services_test

import (
	"context"
	"testing"

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
type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo  *MockAccountRepository
	mockCustomerRepo *MockCustomerRepository
	service          portssvc.AccountSvcFacade
	customer         domain.Customer
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo, suite.mockCustomerRepo)

	suite.customer = domain.Customer{
		CustomerID: uuid.NewString(),
		Person: domain.Person{
			Name:           "Jose Lema",
			Identification: "0102030405",
		},
		IsActive: true,
	}
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Number:         "478758",
		AccountType:    domain.Savings,
		InitialBalance: decimal.RequireFromString("2000.00"),
		CustomerID:     suite.customer.CustomerID,
	}

	suite.mockAccountRepo.On("ExistsByNumber", ctx, req.Number).Return(false, nil).Once()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, req.CustomerID).Return(&suite.customer, nil).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.Equal(req.Number, account.Number)
	suite.Equal(domain.Savings, account.AccountType)
	suite.True(account.Balance.Equal(req.InitialBalance))
	suite.True(account.IsActive)
	suite.Equal(req.CustomerID, account.CustomerID)

	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockCustomerRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateNumber() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Number:      "478758",
		AccountType: domain.Savings,
		CustomerID:  suite.customer.CustomerID,
	}

	suite.mockAccountRepo.On("ExistsByNumber", ctx, req.Number).Return(true, nil).Once()

	_, err := suite.service.CreateAccount(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_CustomerNotFound() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Number:      "478758",
		AccountType: domain.Checking,
		CustomerID:  uuid.NewString(),
	}

	suite.mockAccountRepo.On("ExistsByNumber", ctx, req.Number).Return(false, nil).Once()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, req.CustomerID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateAccount(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_NotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()
	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetAccountByID(ctx, accountID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestListAccounts_DefaultLimit() {
	ctx := context.Background()
	suite.mockAccountRepo.On("ListAccounts", ctx, 20, 0).Return([]domain.Account{}, nil).Once()

	_, err := suite.service.ListAccounts(ctx, dto.ListAccountsParams{})

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_NumberAndStatus() {
	ctx := context.Background()
	existing := domain.Account{
		AccountID:   uuid.NewString(),
		Number:      "478758",
		AccountType: domain.Savings,
		Balance:     decimal.RequireFromString("2000.00"),
		IsActive:    true,
		CustomerID:  suite.customer.CustomerID,
	}
	newNumber := "585545"
	inactive := false
	req := dto.UpdateAccountRequest{Number: &newNumber, IsActive: &inactive}

	suite.mockAccountRepo.On("FindAccountByID", ctx, existing.AccountID).Return(&existing, nil).Once()
	suite.mockAccountRepo.On("ExistsByNumber", ctx, newNumber).Return(false, nil).Once()
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) {
			updated := args.Get(1).(domain.Account)
			assert.Equal(suite.T(), newNumber, updated.Number)
			assert.False(suite.T(), updated.IsActive)
			// The stored balance never changes through account updates.
			assert.True(suite.T(), updated.Balance.Equal(existing.Balance))
		}).
		Return(nil).Once()

	account, err := suite.service.UpdateAccount(ctx, existing.AccountID, req)

	suite.Require().NoError(err)
	suite.Equal(newNumber, account.Number)
	suite.False(account.IsActive)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_DuplicateNumber() {
	ctx := context.Background()
	existing := domain.Account{
		AccountID: uuid.NewString(),
		Number:    "478758",
		IsActive:  true,
	}
	takenNumber := "585545"
	req := dto.UpdateAccountRequest{Number: &takenNumber}

	suite.mockAccountRepo.On("FindAccountByID", ctx, existing.AccountID).Return(&existing, nil).Once()
	suite.mockAccountRepo.On("ExistsByNumber", ctx, takenNumber).Return(true, nil).Once()

	_, err := suite.service.UpdateAccount(ctx, existing.AccountID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_NoFieldsProvided() {
	ctx := context.Background()
	existing := domain.Account{
		AccountID: uuid.NewString(),
		Number:    "478758",
		IsActive:  true,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, existing.AccountID).Return(&existing, nil).Once()

	account, err := suite.service.UpdateAccount(ctx, existing.AccountID, dto.UpdateAccountRequest{})

	suite.Require().NoError(err)
	suite.Equal(existing.Number, account.Number)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_NotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()
	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeleteAccount(ctx, accountID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "DeleteAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_Success() {
	ctx := context.Background()
	existing := domain.Account{AccountID: uuid.NewString(), Number: "478758", IsActive: true}

	suite.mockAccountRepo.On("FindAccountByID", ctx, existing.AccountID).Return(&existing, nil).Once()
	suite.mockAccountRepo.On("DeleteAccount", ctx, existing.AccountID).Return(nil).Once()

	err := suite.service.DeleteAccount(ctx, existing.AccountID)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
