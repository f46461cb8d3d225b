package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Anjos2/oportuniapp/internal/apperrors"
	"github.com/Anjos2/oportuniapp/internal/core/domain"
	portsrepo "github.com/Anjos2/oportuniapp/internal/core/ports/repositories"
	portssvc "github.com/Anjos2/oportuniapp/internal/core/ports/services"
	"github.com/google/uuid"
)

// The message stamped into a listing rejected through report enforcement.
const forcedSuspensionReason = "Publicación suspendida tras la revisión de un reporte"

// reportService implements the ReportSvcFacade interface
type reportService struct {
	BaseService
	reportRepo      portsrepo.ReportRepositoryFacade
	opportunityRepo portsrepo.OpportunityReader
	suspender       portssvc.OpportunitySuspender
}

// NewReportService creates a new report service with the provided dependencies
func NewReportService(
	reportRepo portsrepo.ReportRepositoryFacade,
	opportunityRepo portsrepo.OpportunityReader,
	suspender portssvc.OpportunitySuspender,
) portssvc.ReportSvcFacade {
	return &reportService{
		reportRepo:      reportRepo,
		opportunityRepo: opportunityRepo,
		suspender:       suspender,
	}
}

// Ensure reportService implements the ReportSvcFacade interface
var _ portssvc.ReportSvcFacade = (*reportService)(nil)

// FileReport flags an opportunity for admin review.
func (s *reportService) FileReport(ctx context.Context, reporterID, opportunityID string, reason domain.ReportReason, comment *string) (*domain.Report, error) {
	if !reason.IsValid() {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("unknown report reason %q", reason))
	}

	opportunity, err := s.opportunityRepo.FindOpportunityByID(ctx, opportunityID)
	if err != nil {
		return nil, err
	}
	if opportunity.PublisherID == reporterID {
		return nil, apperrors.NewConflictError("cannot report your own opportunity")
	}

	existing, err := s.reportRepo.FindReportByReporter(ctx, reporterID, opportunityID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("you already reported this opportunity")
	}

	report := domain.Report{
		ReportID:      uuid.NewString(),
		ReporterID:    reporterID,
		OpportunityID: opportunityID,
		Reason:        reason,
		Comment:       comment,
		Status:        domain.ReportPending,
		CreatedAt:     time.Now(),
	}

	if err := s.reportRepo.SaveReport(ctx, report); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save report",
				slog.String("opportunity_id", opportunityID),
				slog.String("reporter_id", reporterID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Report filed",
		slog.String("report_id", report.ReportID),
		slog.String("opportunity_id", opportunityID))
	return &report, nil
}

// ResolveReport closes a pending report and, when asked, suspends the
// reported opportunity. The suspension is a second operation; its failure
// does not undo the already-committed resolution.
func (s *reportService) ResolveReport(ctx context.Context, reportID string, actor domain.Actor, requested domain.ReportStatus, adminNotes *string, action domain.ReportAction) (*domain.Report, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	report, err := s.reportRepo.FindReportByID(ctx, reportID)
	if err != nil {
		return nil, err
	}

	if !domain.ReportTransitionAllowed(actor.Role, report.Status, requested) {
		return nil, fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidTransition, report.Status, requested)
	}
	if action == domain.ActionSuspend && requested != domain.ReportActionTaken {
		return nil, apperrors.NewValidationFailedError("suspension requires resolving as accion_tomada")
	}

	now := time.Now()
	resolution := portsrepo.ReportResolution{
		ReportID:   reportID,
		FromStatus: report.Status,
		ToStatus:   requested,
		AdminNotes: adminNotes,
		ResolvedBy: actor.UserID,
		ResolvedAt: now,
	}

	entry := &domain.AuditEntry{
		AuditEntryID: uuid.NewString(),
		ActorID:      actor.UserID,
		Action:       domain.AuditActionResolveReport,
		Entity:       string(domain.KindReport),
		EntityID:     reportID,
		NewValues: marshalAuditValues(map[string]any{
			"status":        requested,
			"action":        action,
			"opportunityId": report.OpportunityID,
		}),
		CreatedAt: now,
	}

	if err := s.reportRepo.ResolveReport(ctx, resolution, entry); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to resolve report",
				slog.String("report_id", reportID),
				slog.String("to", string(requested)))
		}
		return nil, err
	}

	report.Status = requested
	report.AdminNotes = adminNotes
	report.ResolvedBy = &actor.UserID
	report.ResolvedAt = &now

	if action == domain.ActionSuspend {
		if err := s.suspender.ForceSuspendOpportunity(ctx, report.OpportunityID, actor.UserID, forcedSuspensionReason); err != nil {
			// The resolution stands; surface the enforcement failure.
			s.LogError(ctx, err, "Report resolved but suspension failed",
				slog.String("report_id", reportID),
				slog.String("opportunity_id", report.OpportunityID))
			return report, fmt.Errorf("report resolved but opportunity suspension failed: %w", err)
		}
	}

	s.LogInfo(ctx, "Report resolved",
		slog.String("report_id", reportID),
		slog.String("to", string(requested)),
		slog.String("action", string(action)))
	return report, nil
}

func (s *reportService) GetReportDetail(ctx context.Context, reportID string, actor domain.Actor) (*portssvc.ReportDetail, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	report, err := s.reportRepo.FindReportByID(ctx, reportID)
	if err != nil {
		return nil, err
	}

	related, err := s.reportRepo.ListReportsByOpportunity(ctx, report.OpportunityID, reportID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list related reports",
			slog.String("report_id", reportID))
		return nil, err
	}
	if related == nil {
		related = []domain.Report{}
	}

	return &portssvc.ReportDetail{Report: *report, RelatedReports: related}, nil
}

func (s *reportService) ListReports(ctx context.Context, actor domain.Actor, status *domain.ReportStatus, limit, offset int) ([]domain.Report, int, error) {
	if !actor.IsAdmin() {
		return nil, 0, apperrors.ErrForbidden
	}

	reports, total, err := s.reportRepo.ListReports(ctx, status, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list reports")
		return nil, 0, err
	}
	if reports == nil {
		reports = []domain.Report{}
	}
	return reports, total, nil
}
