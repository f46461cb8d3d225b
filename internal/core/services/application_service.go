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

// applicationService implements the ApplicationSvcFacade interface
type applicationService struct {
	BaseService
	applicationRepo portsrepo.ApplicationRepositoryFacade
	opportunityRepo portsrepo.OpportunityReader
	userRepo        portsrepo.UserReader
}

// NewApplicationService creates a new application service with the provided dependencies
func NewApplicationService(
	applicationRepo portsrepo.ApplicationRepositoryFacade,
	opportunityRepo portsrepo.OpportunityReader,
	userRepo portsrepo.UserReader,
) portssvc.ApplicationSvcFacade {
	return &applicationService{
		applicationRepo: applicationRepo,
		opportunityRepo: opportunityRepo,
		userRepo:        userRepo,
	}
}

// Ensure applicationService implements the ApplicationSvcFacade interface
var _ portssvc.ApplicationSvcFacade = (*applicationService)(nil)

// SubmitApplication applies the user to an active opportunity.
func (s *applicationService) SubmitApplication(ctx context.Context, applicantID, opportunityID string, coverLetter *string) (*domain.Application, error) {
	opportunity, err := s.opportunityRepo.FindOpportunityByID(ctx, opportunityID)
	if err != nil {
		return nil, err
	}
	if opportunity.Status != domain.OpportunityActive {
		return nil, apperrors.NewConflictError("opportunity is not open for applications")
	}
	if opportunity.PublisherID == applicantID {
		return nil, apperrors.NewConflictError("cannot apply to your own opportunity")
	}
	if opportunity.ApplicationDeadline != nil && opportunity.ApplicationDeadline.Before(time.Now()) {
		return nil, apperrors.NewValidationFailedError("the application deadline has passed")
	}

	// A withdrawn application does not block resubmission; any live one does.
	existing, err := s.applicationRepo.FindActiveApplication(ctx, applicantID, opportunityID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("you already have an application for this opportunity")
	}

	applicant, err := s.userRepo.FindUserByID(ctx, applicantID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	application := domain.Application{
		ApplicationID: uuid.NewString(),
		ApplicantID:   applicantID,
		OpportunityID: opportunityID,
		Status:        domain.ApplicationPending,
		CoverLetter:   coverLetter,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	link := "/opportunities/" + opportunityID + "/applications"
	notification := &domain.Notification{
		NotificationID: uuid.NewString(),
		UserID:         opportunity.PublisherID,
		Title:          "Nueva postulación",
		Message:        fmt.Sprintf("%s se ha postulado a \"%s\".", applicant.Name, opportunity.Title),
		Category:       domain.NotificationApplication,
		Link:           &link,
		CreatedAt:      now,
	}

	if err := s.applicationRepo.CreateApplication(ctx, application, notification); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to create application",
				slog.String("opportunity_id", opportunityID),
				slog.String("applicant_id", applicantID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Application submitted",
		slog.String("application_id", application.ApplicationID),
		slog.String("opportunity_id", opportunityID))
	return &application, nil
}

// TransitionApplication moves an application through review and notifies the
// applicant in the same transaction.
func (s *applicationService) TransitionApplication(ctx context.Context, applicationID string, actor domain.Actor, requested domain.ApplicationStatus, publisherNotes *string) (*domain.Application, error) {
	application, err := s.applicationRepo.FindApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	opportunity, err := s.opportunityRepo.FindOpportunityByID(ctx, application.OpportunityID)
	if err != nil {
		return nil, err
	}

	role := actor.Role
	if !actor.IsAdmin() {
		if opportunity.PublisherID != actor.UserID {
			return nil, apperrors.ErrForbidden
		}
		role = domain.RolePublisher
	}

	if !domain.ApplicationTransitionAllowed(role, application.Status, requested) {
		return nil, fmt.Errorf("%w: %s -> %s as %s", apperrors.ErrInvalidTransition, application.Status, requested, role)
	}

	now := time.Now()
	update := portsrepo.ApplicationStatusUpdate{
		ApplicationID:  applicationID,
		FromStatus:     application.Status,
		ToStatus:       requested,
		PublisherNotes: publisherNotes,
		ReviewedAt:     &now,
		UpdatedAt:      now,
	}

	notification := applicationStatusNotification(*application, *opportunity, requested, now)

	if err := s.applicationRepo.TransitionApplicationStatus(ctx, update, notification); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to transition application",
				slog.String("application_id", applicationID),
				slog.String("to", string(requested)))
		}
		return nil, err
	}

	application.Status = requested
	if publisherNotes != nil {
		application.PublisherNotes = publisherNotes
	}
	application.ReviewedAt = &now
	application.UpdatedAt = now

	s.LogInfo(ctx, "Application transitioned",
		slog.String("application_id", applicationID),
		slog.String("from", string(update.FromStatus)),
		slog.String("to", string(requested)))
	return application, nil
}

// WithdrawApplication retires the applicant's own live application. It emits
// no notification and is not idempotent: a second call conflicts.
func (s *applicationService) WithdrawApplication(ctx context.Context, applicationID, applicantID string) error {
	application, err := s.applicationRepo.FindApplicationByID(ctx, applicationID)
	if err != nil {
		return err
	}
	if application.ApplicantID != applicantID {
		return apperrors.ErrForbidden
	}
	if !domain.CanWithdraw(application.Status) {
		return apperrors.NewConflictError(fmt.Sprintf("application in status %s cannot be withdrawn", application.Status))
	}

	now := time.Now()
	update := portsrepo.ApplicationStatusUpdate{
		ApplicationID: applicationID,
		FromStatus:    application.Status,
		ToStatus:      domain.ApplicationWithdrawn,
		UpdatedAt:     now,
	}

	if err := s.applicationRepo.TransitionApplicationStatus(ctx, update, nil); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to withdraw application",
				slog.String("application_id", applicationID))
		}
		return err
	}

	s.LogInfo(ctx, "Application withdrawn",
		slog.String("application_id", applicationID))
	return nil
}

func (s *applicationService) GetApplication(ctx context.Context, applicationID string, actor domain.Actor) (*domain.Application, error) {
	application, err := s.applicationRepo.FindApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if application.ApplicantID == actor.UserID || actor.IsAdmin() {
		return application, nil
	}
	opportunity, err := s.opportunityRepo.FindOpportunityByID(ctx, application.OpportunityID)
	if err != nil {
		return nil, err
	}
	if opportunity.PublisherID != actor.UserID {
		return nil, apperrors.ErrForbidden
	}
	return application, nil
}

func (s *applicationService) ListMyApplications(ctx context.Context, applicantID string, status *domain.ApplicationStatus, limit, offset int) ([]domain.Application, int, error) {
	applications, total, err := s.applicationRepo.ListApplicationsByApplicant(ctx, applicantID, status, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list applications",
			slog.String("applicant_id", applicantID))
		return nil, 0, err
	}
	if applications == nil {
		applications = []domain.Application{}
	}
	return applications, total, nil
}

func (s *applicationService) ListReceivedApplications(ctx context.Context, opportunityID string, actor domain.Actor, status *domain.ApplicationStatus, limit, offset int) ([]domain.Application, int, error) {
	opportunity, err := s.opportunityRepo.FindOpportunityByID(ctx, opportunityID)
	if err != nil {
		return nil, 0, err
	}
	if opportunity.PublisherID != actor.UserID && !actor.IsAdmin() {
		return nil, 0, apperrors.ErrForbidden
	}

	applications, total, err := s.applicationRepo.ListApplicationsByOpportunity(ctx, opportunityID, status, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list received applications",
			slog.String("opportunity_id", opportunityID))
		return nil, 0, err
	}
	if applications == nil {
		applications = []domain.Application{}
	}
	return applications, total, nil
}

// applicationStatusNotification builds the applicant-facing message for a
// review move. Every publisher transition notifies the applicant.
func applicationStatusNotification(a domain.Application, o domain.Opportunity, requested domain.ApplicationStatus, now time.Time) *domain.Notification {
	link := "/applications/" + a.ApplicationID

	var title, message string
	category := domain.NotificationInfo
	switch requested {
	case domain.ApplicationInReview:
		title = "Postulación en revisión"
		message = fmt.Sprintf("Tu postulación a \"%s\" está siendo revisada.", o.Title)
	case domain.ApplicationShortlisted:
		title = "¡Has sido preseleccionado!"
		message = fmt.Sprintf("Tu postulación a \"%s\" fue preseleccionada.", o.Title)
		category = domain.NotificationSuccess
	case domain.ApplicationAccepted:
		title = "¡Postulación aceptada!"
		message = fmt.Sprintf("Felicitaciones, tu postulación a \"%s\" fue aceptada.", o.Title)
		category = domain.NotificationSuccess
	case domain.ApplicationRejected:
		title = "Postulación no seleccionada"
		message = fmt.Sprintf("Tu postulación a \"%s\" no fue seleccionada en esta ocasión.", o.Title)
		category = domain.NotificationWarning
	default:
		return nil
	}

	return &domain.Notification{
		NotificationID: uuid.NewString(),
		UserID:         a.ApplicantID,
		Title:          title,
		Message:        message,
		Category:       category,
		Link:           &link,
		CreatedAt:      now,
	}
}
