package repositories

import (
	"context"
	"time"

	"github.com/Anjos2/oportuniapp/internal/core/domain"
)

// ListOpportunitiesFilter narrows the public active listing. Zero values mean
// no filtering; Limit/Offset follow the platform's plain offset/limit contract.
type ListOpportunitiesFilter struct {
	Category string
	Modality string
	Search   string
	Limit    int
	Offset   int
}

// OpportunityStatusUpdate describes one guarded lifecycle write. FromStatus is
// the status read at validation time; the repository applies the update only
// if the row still carries it, otherwise the caller sees ErrConflict.
type OpportunityStatusUpdate struct {
	OpportunityID   string
	FromStatus      domain.OpportunityStatus
	ToStatus        domain.OpportunityStatus
	RejectionReason *string
	ReviewedBy      *string
	ReviewedAt      *time.Time
	UpdatedAt       time.Time
}

// OpportunityReader defines read operations for postings.
type OpportunityReader interface {
	FindOpportunityByID(ctx context.Context, opportunityID string) (*domain.Opportunity, error)

	// ListActiveOpportunities returns the public listing plus the total count
	// matching the filter (featured first, then newest).
	ListActiveOpportunities(ctx context.Context, filter ListOpportunitiesFilter) ([]domain.Opportunity, int, error)

	ListFeaturedOpportunities(ctx context.Context, limit int) ([]domain.Opportunity, error)

	ListOpportunitiesByPublisher(ctx context.Context, publisherID string, status *domain.OpportunityStatus, limit, offset int) ([]domain.Opportunity, int, error)

	// ListOpportunitiesByStatus is the review queue view (oldest first).
	ListOpportunitiesByStatus(ctx context.Context, status domain.OpportunityStatus, limit, offset int) ([]domain.Opportunity, int, error)

	CountOpportunitiesByStatus(ctx context.Context, publisherID string) (map[domain.OpportunityStatus]int, error)
}

// OpportunityWriter defines write operations for postings.
type OpportunityWriter interface {
	SaveOpportunity(ctx context.Context, opportunity domain.Opportunity) error

	// UpdateOpportunity persists the mutable descriptive fields after a patch
	// merge. Lifecycle state is not written here.
	UpdateOpportunity(ctx context.Context, opportunity domain.Opportunity) error

	// TransitionOpportunityStatus applies a guarded status write together with
	// its side-effect rows in a single transaction. Either notification or
	// entry may be nil when the transition emits none.
	TransitionOpportunityStatus(ctx context.Context, update OpportunityStatusUpdate, notification *domain.Notification, entry *domain.AuditEntry) error

	SetOpportunityFeatured(ctx context.Context, opportunityID string, featured bool) error

	IncrementOpportunityViews(ctx context.Context, opportunityID string) error

	DeleteOpportunity(ctx context.Context, opportunityID string) error
}

// SavedOpportunityRepository covers a user's saved-listings bookmarks.
type SavedOpportunityRepository interface {
	SaveOpportunityForUser(ctx context.Context, userID, opportunityID string) error
	RemoveSavedOpportunity(ctx context.Context, userID, opportunityID string) error
	ListSavedOpportunities(ctx context.Context, userID string, limit, offset int) ([]domain.Opportunity, int, error)
	IsOpportunitySaved(ctx context.Context, userID, opportunityID string) (bool, error)
}

// OpportunityRepositoryFacade combines all posting repository interfaces.
type OpportunityRepositoryFacade interface {
	OpportunityReader
	OpportunityWriter
	SavedOpportunityRepository
}
