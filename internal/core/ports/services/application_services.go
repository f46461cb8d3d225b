package services

import (
	"context"

	"github.com/Anjos2/oportuniapp/internal/core/domain"
)

// ApplicationReaderSvc serves the read side of applications.
type ApplicationReaderSvc interface {
	GetApplication(ctx context.Context, applicationID string, actor domain.Actor) (*domain.Application, error)
	ListMyApplications(ctx context.Context, applicantID string, status *domain.ApplicationStatus, limit, offset int) ([]domain.Application, int, error)
	// ListReceivedApplications returns applications on one of the actor's
	// opportunities. Admins may read any opportunity's applications.
	ListReceivedApplications(ctx context.Context, opportunityID string, actor domain.Actor, status *domain.ApplicationStatus, limit, offset int) ([]domain.Application, int, error)
}

// ApplicationWriterSvc mutates application state.
type ApplicationWriterSvc interface {
	// SubmitApplication applies the user to an active opportunity. A second
	// live application to the same opportunity is rejected; a withdrawn one
	// does not block resubmission.
	SubmitApplication(ctx context.Context, applicantID, opportunityID string, coverLetter *string) (*domain.Application, error)
	// TransitionApplication moves an application through review with the
	// applicant notified of the outcome. A nil publisherNotes preserves the
	// stored notes.
	TransitionApplication(ctx context.Context, applicationID string, actor domain.Actor, requested domain.ApplicationStatus, publisherNotes *string) (*domain.Application, error)
	// WithdrawApplication retires the applicant's own application while it
	// is still pendiente or en_revision. No notification is produced.
	WithdrawApplication(ctx context.Context, applicationID, applicantID string) error
}

// ApplicationSvcFacade is the complete application surface.
type ApplicationSvcFacade interface {
	ApplicationReaderSvc
	ApplicationWriterSvc
}
