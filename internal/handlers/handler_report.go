package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	portssvc "github.com/ec-banking/backoffice/internal/core/ports/services"
	"github.com/ec-banking/backoffice/internal/core/services"
	"github.com/ec-banking/backoffice/internal/dto"
	"github.com/ec-banking/backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportHandler handles HTTP requests for derived reports.
type reportHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportHandler(rs portssvc.ReportingSvcFacade) *reportHandler {
	return &reportHandler{
		reportingService: rs,
	}
}

// RegisterReportRoutes registers routes related to reports.
func RegisterReportRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/statement", h.getStatementReport)
	}
}

// getStatementReport godoc
// @Summary Generate a customer account statement
// @Description Builds the statement report for a customer's accounts over a date range
// @Tags reports
// @Produce  json
// @Param   customerID query string true "Customer ID"
// @Param   from query string true "Range start (RFC 3339)"
// @Param   to query string true "Range end (RFC 3339)"
// @Success 200 {object} domain.StatementReport
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Router /reports/statement [get]
func (h *reportHandler) getStatementReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.StatementReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for StatementReport", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	if params.To.Before(params.From) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Range end must not be before range start"})
		return
	}

	logger = logger.With(slog.String("customer_id", params.CustomerID))
	logger.Info("Received request to generate statement report")

	report, err := h.reportingService.GenerateStatementReport(c.Request.Context(), params.CustomerID, params.From, params.To)
	if err != nil {
		if errors.Is(err, services.ErrCustomerNotFound) {
			logger.Warn("Customer not found for statement report")
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		} else {
			logger.Error("Failed to generate statement report", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		}
		return
	}

	logger.Info("Statement report generated successfully", slog.Int("accounts", len(report.Accounts)))
	c.JSON(http.StatusOK, report)
}
