package notifier

import (
	"context"

	"github.com/mauv0809/valorant-report/internal/report"
)

// Notifier defines a high-level interface for answering stats lookups.
// This decouples the rest of the application from the specific chat provider (e.g., Slack).
type Notifier interface {
	// For asynchronous lookups
	SendReport(ctx context.Context, channelID string, r *report.Report, dryRun bool) error
	SendPlayerNotFound(ctx context.Context, channelID, query string, dryRun bool) error
	SendFailure(ctx context.Context, channelID string, dryRun bool) error

	// For formatting responses for slash commands
	FormatReportResponse(r *report.Report) (any, error)
	FormatPlayerNotFoundResponse(query string) (any, error)
	FormatUsageResponse(err error) (any, error)
	FormatPendingResponse() (any, error)
}
