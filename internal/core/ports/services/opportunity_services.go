package services

import (
	"context"

	"github.com/Anjos2/oportuniapp/internal/core/domain"
	portsrepo "github.com/Anjos2/oportuniapp/internal/core/ports/repositories"
	"github.com/Anjos2/oportuniapp/internal/dto"
)

// OpportunityDetail pairs an opportunity with the viewer-dependent flags the
// detail page needs.
type OpportunityDetail struct {
	Opportunity       domain.Opportunity
	IsSaved           bool
	ApplicationStatus *domain.ApplicationStatus
}

// PublisherListing is a publisher's own opportunities plus per-status
// counters for the dashboard.
type PublisherListing struct {
	Opportunities []domain.Opportunity
	Total         int
	StatusCounts  map[domain.OpportunityStatus]int
}

// OpportunityReaderSvc serves the read side of the opportunity catalog.
type OpportunityReaderSvc interface {
	// GetOpportunity loads one opportunity. Non-active listings are only
	// visible to their publisher and to admins. A non-nil viewer fills the
	// saved and application flags and bumps the view counter.
	GetOpportunity(ctx context.Context, opportunityID string, viewer *domain.Actor) (*OpportunityDetail, error)
	ListActiveOpportunities(ctx context.Context, filter portsrepo.ListOpportunitiesFilter) ([]domain.Opportunity, int, error)
	ListFeaturedOpportunities(ctx context.Context, limit int) ([]domain.Opportunity, error)
	ListMyOpportunities(ctx context.Context, publisher domain.Actor, status *domain.OpportunityStatus, limit, offset int) (*PublisherListing, error)
	ListPendingOpportunities(ctx context.Context, actor domain.Actor, limit, offset int) ([]domain.Opportunity, int, error)
}

// OpportunityWriterSvc mutates opportunity content and lifecycle.
type OpportunityWriterSvc interface {
	CreateOpportunity(ctx context.Context, publisher domain.Actor, req dto.CreateOpportunityRequest) (*domain.Opportunity, error)
	UpdateOpportunity(ctx context.Context, opportunityID string, actor domain.Actor, patch domain.OpportunityPatch) (*domain.Opportunity, error)
	// DuplicateOpportunity clones an existing listing into a fresh draft
	// owned by the caller.
	DuplicateOpportunity(ctx context.Context, opportunityID string, actor domain.Actor) (*domain.Opportunity, error)
	// TransitionOpportunity moves a listing to the requested status if the
	// actor's role allows that edge from the current status.
	TransitionOpportunity(ctx context.Context, opportunityID string, actor domain.Actor, requested domain.OpportunityStatus, rejectionReason *string) (*domain.Opportunity, error)
	SetOpportunityFeatured(ctx context.Context, opportunityID string, actor domain.Actor, featured bool) error
	DeleteOpportunity(ctx context.Context, opportunityID string, actor domain.Actor) error
}

// OpportunitySuspender is the narrow surface report resolution uses to take
// a listing down outside the normal transition table.
type OpportunitySuspender interface {
	// ForceSuspendOpportunity rejects a listing from any non-terminal
	// status. It refuses listings that are already finished or rejected.
	ForceSuspendOpportunity(ctx context.Context, opportunityID, adminID, reason string) error
}

// SavedOpportunitySvc manages a user's saved listings.
type SavedOpportunitySvc interface {
	SaveOpportunity(ctx context.Context, userID, opportunityID string) error
	UnsaveOpportunity(ctx context.Context, userID, opportunityID string) error
	ListSavedOpportunities(ctx context.Context, userID string, limit, offset int) ([]domain.Opportunity, int, error)
}

// OpportunitySvcFacade is the complete opportunity surface.
type OpportunitySvcFacade interface {
	OpportunityReaderSvc
	OpportunityWriterSvc
	OpportunitySuspender
	SavedOpportunitySvc
}
