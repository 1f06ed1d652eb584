package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ec-banking/backoffice/internal/apperrors"
	portssvc "github.com/ec-banking/backoffice/internal/core/ports/services"
	"github.com/ec-banking/backoffice/internal/core/services"
	"github.com/ec-banking/backoffice/internal/dto"
	"github.com/ec-banking/backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// movementHandler handles HTTP requests related to movements. Posting goes
// through the ledger service; reads and the administrative delete go through
// the movement service.
type movementHandler struct {
	ledgerService   portssvc.LedgerSvcFacade
	movementService portssvc.MovementSvcFacade
}

func newMovementHandler(ls portssvc.LedgerSvcFacade, ms portssvc.MovementSvcFacade) *movementHandler {
	return &movementHandler{
		ledgerService:   ls,
		movementService: ms,
	}
}

// RegisterMovementRoutes registers routes related to movements.
func RegisterMovementRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, movementService portssvc.MovementSvcFacade) {
	h := newMovementHandler(ledgerService, movementService)

	movements := rg.Group("/movements")
	{
		movements.POST("", h.postMovement)
		movements.GET("/:id", h.getMovement)
		movements.DELETE("/:id", h.deleteMovement)
	}

	rg.GET("/accounts/:id/movements", h.listAccountMovements)
}

// postMovement godoc
// @Summary Post a movement
// @Description Validates and commits a deposit or withdrawal against an account
// @Tags movements
// @Accept  json
// @Produce  json
// @Param   movement body dto.CreateMovementRequest true "Movement details"
// @Success 201 {object} dto.MovementResponse
// @Failure 400 {object} map[string]string "Invalid input, inactive account, insufficient funds, or daily limit exceeded"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 503 {object} map[string]string "Movement store unavailable"
// @Failure 500 {object} map[string]string "Failed to post movement"
// @Router /movements [post]
func (h *movementHandler) postMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PostMovement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("account_id", req.AccountID), slog.String("movement_type", string(req.MovementType)))
	logger.Info("Received request to post movement", slog.String("amount", req.Amount.String()))

	movement, err := h.ledgerService.PostMovement(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAccountNotFound):
			logger.Warn("Account not found for movement")
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		case errors.Is(err, services.ErrAccountInactive):
			logger.Warn("Movement rejected, account inactive")
			c.JSON(http.StatusBadRequest, gin.H{"error": "Account is inactive"})
		case errors.Is(err, services.ErrInsufficientFunds):
			logger.Warn("Movement rejected, insufficient funds")
			c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient funds"})
		case errors.Is(err, services.ErrDailyLimitExceeded):
			logger.Warn("Movement rejected, daily withdrawal limit exceeded")
			c.JSON(http.StatusBadRequest, gin.H{"error": "Daily withdrawal limit exceeded"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error posting movement", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrStoreUnavailable):
			logger.Error("Movement store unavailable", slog.String("error", err.Error()))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service temporarily unavailable"})
		default:
			logger.Error("Failed to post movement", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post movement"})
		}
		return
	}

	logger.Info("Movement posted successfully",
		slog.String("movement_id", movement.MovementID),
		slog.String("resulting_balance", movement.ResultingBalance.String()))
	c.JSON(http.StatusCreated, dto.ToMovementResponse(movement))
}

// getMovement godoc
// @Summary Get a movement by ID
// @Description Retrieves a single movement by its ID
// @Tags movements
// @Produce  json
// @Param   id path string true "Movement ID"
// @Success 200 {object} dto.MovementResponse
// @Failure 404 {object} map[string]string "Movement not found"
// @Failure 500 {object} map[string]string "Failed to retrieve movement"
// @Router /movements/{id} [get]
func (h *movementHandler) getMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	movementID := c.Param("id")

	movement, err := h.movementService.GetMovementByID(c.Request.Context(), movementID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Movement not found", slog.String("movement_id", movementID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Movement not found"})
		} else {
			logger.Error("Failed to get movement from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve movement"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToMovementResponse(movement))
}

// listAccountMovements godoc
// @Summary List movements for an account
// @Description Retrieves an account's movements, optionally restricted to a date range
// @Tags movements
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   from query string false "Range start (RFC 3339)"
// @Param   to query string false "Range end (RFC 3339)"
// @Success 200 {array} dto.MovementResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list movements"
// @Router /accounts/{id}/movements [get]
func (h *movementHandler) listAccountMovements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	var params dto.ListMovementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListAccountMovements", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	if (params.From == nil) != (params.To == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Both from and to must be provided for a date range"})
		return
	}

	if params.From != nil {
		if params.To.Before(*params.From) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Range end must not be before range start"})
			return
		}
		result, rerr := h.movementService.ListMovementsByAccountIDAndDateRange(c.Request.Context(), accountID, *params.From, *params.To)
		if rerr != nil {
			logger.Error("Failed to list movements in range", slog.String("error", rerr.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list movements"})
			return
		}
		c.JSON(http.StatusOK, dto.ToMovementResponses(result))
		return
	}

	result, err := h.movementService.ListMovementsByAccountID(c.Request.Context(), accountID)
	if err != nil {
		logger.Error("Failed to list movements from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list movements"})
		return
	}

	c.JSON(http.StatusOK, dto.ToMovementResponses(result))
}

// deleteMovement godoc
// @Summary Delete a movement
// @Description Administrative removal of a movement record; later movements on the account keep their recorded balances
// @Tags movements
// @Produce  json
// @Param   id path string true "Movement ID to delete"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Movement not found"
// @Failure 500 {object} map[string]string "Failed to delete movement"
// @Router /movements/{id} [delete]
func (h *movementHandler) deleteMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	movementID := c.Param("id")

	logger = logger.With(slog.String("movement_id", movementID))
	logger.Info("Received request to delete movement")

	if err := h.movementService.DeleteMovement(c.Request.Context(), movementID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Movement not found for deletion")
			c.JSON(http.StatusNotFound, gin.H{"error": "Movement not found"})
		} else {
			logger.Error("Failed to delete movement in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete movement"})
		}
		return
	}

	logger.Info("Movement deleted successfully")
	c.Status(http.StatusNoContent)
}
