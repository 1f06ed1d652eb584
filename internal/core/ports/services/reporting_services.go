package services

import (
	"context"
	"time"

	"github.com/ec-banking/backoffice/internal/core/domain"
)

// ReportingSvcFacade builds derived reports over accounts and movements.
type ReportingSvcFacade interface {
	// GenerateStatementReport builds the account-statement report for a
	// customer over [from, to].
	GenerateStatementReport(ctx context.Context, customerID string, from, to time.Time) (*domain.StatementReport, error)
}
