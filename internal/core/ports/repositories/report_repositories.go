package repositories

import (
	"context"
	"time"

	"github.com/Anjos2/oportuniapp/internal/core/domain"
)

// ReportResolution describes the guarded triage write for a report.
type ReportResolution struct {
	ReportID   string
	FromStatus domain.ReportStatus
	ToStatus   domain.ReportStatus
	AdminNotes *string
	ResolvedBy string
	ResolvedAt time.Time
}

// ReportReader defines read operations for complaints.
type ReportReader interface {
	FindReportByID(ctx context.Context, reportID string) (*domain.Report, error)

	// FindReportByReporter returns the reporter's existing report for the
	// opportunity, or ErrNotFound.
	FindReportByReporter(ctx context.Context, reporterID, opportunityID string) (*domain.Report, error)

	ListReports(ctx context.Context, status *domain.ReportStatus, limit, offset int) ([]domain.Report, int, error)

	// ListReportsByOpportunity returns other reports filed against the same
	// posting, excluding the given report id.
	ListReportsByOpportunity(ctx context.Context, opportunityID, excludeReportID string) ([]domain.Report, error)
}

// ReportWriter defines write operations for complaints.
type ReportWriter interface {
	SaveReport(ctx context.Context, report domain.Report) error

	// ResolveReport applies the guarded triage write and the audit row in one
	// transaction.
	ResolveReport(ctx context.Context, resolution ReportResolution, entry *domain.AuditEntry) error
}

// ReportRepositoryFacade combines all complaint repository interfaces.
type ReportRepositoryFacade interface {
	ReportReader
	ReportWriter
}
