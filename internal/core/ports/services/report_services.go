package services

import (
	"context"

	"github.com/Anjos2/oportuniapp/internal/core/domain"
)

// ReportDetail pairs a report with the other reports filed against the same
// opportunity.
type ReportDetail struct {
	Report         domain.Report
	RelatedReports []domain.Report
}

// ReportSvcFacade is the complete report surface.
type ReportSvcFacade interface {
	// FileReport flags an opportunity. One open report per (reporter,
	// opportunity) pair; publishers cannot report their own listings.
	FileReport(ctx context.Context, reporterID, opportunityID string, reason domain.ReportReason, comment *string) (*domain.Report, error)
	// ResolveReport closes a pending report and, when the action asks for
	// it, suspends the reported opportunity afterwards. The suspension
	// failing does not undo the resolution.
	ResolveReport(ctx context.Context, reportID string, actor domain.Actor, requested domain.ReportStatus, adminNotes *string, action domain.ReportAction) (*domain.Report, error)
	GetReportDetail(ctx context.Context, reportID string, actor domain.Actor) (*ReportDetail, error)
	ListReports(ctx context.Context, actor domain.Actor, status *domain.ReportStatus, limit, offset int) ([]domain.Report, int, error)
}
