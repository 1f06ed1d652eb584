package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/ec-banking/backoffice/internal/apperrors"
	"github.com/ec-banking/backoffice/internal/core/domain"
	portssvc "github.com/ec-banking/backoffice/internal/core/ports/services"
	"github.com/ec-banking/backoffice/internal/core/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---
type MovementServiceTestSuite struct {
	suite.Suite
	mockMovementRepo *MockMovementRepository
	service          portssvc.MovementSvcFacade
}

func (suite *MovementServiceTestSuite) SetupTest() {
	suite.mockMovementRepo = new(MockMovementRepository)
	suite.service = services.NewMovementService(suite.mockMovementRepo)
}

// --- Test Cases ---

func (suite *MovementServiceTestSuite) TestGetMovementByID_Success() {
	ctx := context.Background()
	movement := movementAt(uuid.NewString(), domain.Credit, "100.00", "600.00", time.Now())
	suite.mockMovementRepo.On("FindMovementByID", ctx, movement.MovementID).Return(&movement, nil).Once()

	found, err := suite.service.GetMovementByID(ctx, movement.MovementID)

	suite.Require().NoError(err)
	suite.Equal(movement.MovementID, found.MovementID)
}

func (suite *MovementServiceTestSuite) TestGetMovementByID_NotFound() {
	ctx := context.Background()
	movementID := uuid.NewString()
	suite.mockMovementRepo.On("FindMovementByID", ctx, movementID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetMovementByID(ctx, movementID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *MovementServiceTestSuite) TestListMovementsByAccountIDAndDateRange() {
	ctx := context.Background()
	accountID := uuid.NewString()
	from := time.Date(2022, 2, 8, 0, 0, 0, 0, time.UTC)
	to := time.Date(2022, 2, 10, 0, 0, 0, 0, time.UTC)
	expected := []domain.Movement{
		movementAt(accountID, domain.Debit, "-575.00", "1425.00", from.Add(time.Hour)),
	}
	suite.mockMovementRepo.On("FindMovementsByAccountIDAndDateRange", ctx, accountID, from, to).Return(expected, nil).Once()

	movements, err := suite.service.ListMovementsByAccountIDAndDateRange(ctx, accountID, from, to)

	suite.Require().NoError(err)
	suite.Len(movements, 1)
	suite.mockMovementRepo.AssertExpectations(suite.T())
}

func (suite *MovementServiceTestSuite) TestDeleteMovement_Success() {
	ctx := context.Background()
	movement := movementAt(uuid.NewString(), domain.Debit, "-50.00", "450.00", time.Now())
	suite.mockMovementRepo.On("FindMovementByID", ctx, movement.MovementID).Return(&movement, nil).Once()
	suite.mockMovementRepo.On("DeleteMovement", ctx, movement.MovementID).Return(nil).Once()

	err := suite.service.DeleteMovement(ctx, movement.MovementID)

	suite.Require().NoError(err)
	suite.mockMovementRepo.AssertExpectations(suite.T())
}

func (suite *MovementServiceTestSuite) TestDeleteMovement_NotFound() {
	ctx := context.Background()
	movementID := uuid.NewString()
	suite.mockMovementRepo.On("FindMovementByID", ctx, movementID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeleteMovement(ctx, movementID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockMovementRepo.AssertNotCalled(suite.T(), "DeleteMovement", mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestMovementService(t *testing.T) {
	suite.Run(t, new(MovementServiceTestSuite))
}
