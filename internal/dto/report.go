package dto

import "time"

// StatementReportParams defines query parameters for the statement report.
type StatementReportParams struct {
	CustomerID string    `form:"customerID" binding:"required"`
	From       time.Time `form:"from" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	To         time.Time `form:"to" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
}
