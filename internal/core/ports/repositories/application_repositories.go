package repositories

import (
	"context"
	"time"

	"github.com/Anjos2/oportuniapp/internal/core/domain"
)

// ApplicationStatusUpdate describes one guarded application status write.
// FromStatus is the status read at validation time; a row that no longer
// carries it surfaces ErrConflict instead of applying the update.
type ApplicationStatusUpdate struct {
	ApplicationID  string
	FromStatus     domain.ApplicationStatus
	ToStatus       domain.ApplicationStatus
	PublisherNotes *string // nil preserves the stored notes
	ReviewedAt     *time.Time
	UpdatedAt      time.Time
}

// ApplicationReader defines read operations for submissions.
type ApplicationReader interface {
	FindApplicationByID(ctx context.Context, applicationID string) (*domain.Application, error)

	// FindActiveApplication returns the non-withdrawn application for the
	// (applicant, opportunity) pair, or ErrNotFound.
	FindActiveApplication(ctx context.Context, applicantID, opportunityID string) (*domain.Application, error)

	ListApplicationsByApplicant(ctx context.Context, applicantID string, status *domain.ApplicationStatus, limit, offset int) ([]domain.Application, int, error)

	ListApplicationsByOpportunity(ctx context.Context, opportunityID string, status *domain.ApplicationStatus, limit, offset int) ([]domain.Application, int, error)
}

// ApplicationWriter defines write operations for submissions.
type ApplicationWriter interface {
	// CreateApplication inserts the submission, bumps the posting's
	// applications counter and writes the publisher notification, all in one
	// transaction.
	CreateApplication(ctx context.Context, application domain.Application, notification *domain.Notification) error

	// TransitionApplicationStatus applies a guarded status write together with
	// the applicant notification (nil for self-initiated withdrawal) in one
	// transaction.
	TransitionApplicationStatus(ctx context.Context, update ApplicationStatusUpdate, notification *domain.Notification) error
}

// ApplicationRepositoryFacade combines all submission repository interfaces.
type ApplicationRepositoryFacade interface {
	ApplicationReader
	ApplicationWriter
}
