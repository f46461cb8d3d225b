package dto

import (
	"time"

	"github.com/Anjos2/oportuniapp/internal/core/domain"
)

// CreateOpportunityRequest is the payload for drafting a new opportunity.
type CreateOpportunityRequest struct {
	Category            string     `json:"category" binding:"required"`
	Title               string     `json:"title" binding:"required,max=200"`
	Description         string     `json:"description" binding:"required"`
	Requirements        *string    `json:"requirements,omitempty"`
	Benefits            *string    `json:"benefits,omitempty"`
	Modality            string     `json:"modality" binding:"required,oneof=presencial remoto hibrido"`
	Location            *string    `json:"location,omitempty"`
	OrganizationName    string     `json:"organizationName" binding:"required"`
	ExternalURL         *string    `json:"externalUrl,omitempty" binding:"omitempty,url"`
	ApplicationDeadline *time.Time `json:"applicationDeadline,omitempty"`
}

// UpdateOpportunityRequest carries optional content fields. Status is never
// part of this payload; lifecycle changes go through the transition endpoint.
type UpdateOpportunityRequest struct {
	Category            *string    `json:"category,omitempty"`
	Title               *string    `json:"title,omitempty" binding:"omitempty,max=200"`
	Description         *string    `json:"description,omitempty"`
	Requirements        *string    `json:"requirements,omitempty"`
	Benefits            *string    `json:"benefits,omitempty"`
	Modality            *string    `json:"modality,omitempty" binding:"omitempty,oneof=presencial remoto hibrido"`
	Location            *string    `json:"location,omitempty"`
	OrganizationName    *string    `json:"organizationName,omitempty"`
	ExternalURL         *string    `json:"externalUrl,omitempty" binding:"omitempty,url"`
	ApplicationDeadline *time.Time `json:"applicationDeadline,omitempty"`
}

// ToPatch converts the request into a domain patch.
func (r UpdateOpportunityRequest) ToPatch() domain.OpportunityPatch {
	return domain.OpportunityPatch{
		Category:            r.Category,
		Title:               r.Title,
		Description:         r.Description,
		Requirements:        r.Requirements,
		Benefits:            r.Benefits,
		Modality:            r.Modality,
		Location:            r.Location,
		OrganizationName:    r.OrganizationName,
		ExternalURL:         r.ExternalURL,
		ApplicationDeadline: r.ApplicationDeadline,
	}
}

// TransitionOpportunityRequest names the status the caller wants the
// opportunity moved to. RejectionReason is required when the target is
// rejected and ignored otherwise.
type TransitionOpportunityRequest struct {
	Status          string  `json:"status" binding:"required"`
	RejectionReason *string `json:"rejectionReason,omitempty"`
}

// FeatureOpportunityRequest toggles the featured flag.
type FeatureOpportunityRequest struct {
	IsFeatured *bool `json:"isFeatured" binding:"required"`
}

// OpportunityResponse is the API shape of an opportunity.
type OpportunityResponse struct {
	OpportunityID       string     `json:"opportunityId"`
	PublisherID         string     `json:"publisherId"`
	Category            string     `json:"category"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	Requirements        *string    `json:"requirements,omitempty"`
	Benefits            *string    `json:"benefits,omitempty"`
	Modality            string     `json:"modality"`
	Location            *string    `json:"location,omitempty"`
	OrganizationName    string     `json:"organizationName"`
	ExternalURL         *string    `json:"externalUrl,omitempty"`
	ApplicationDeadline *time.Time `json:"applicationDeadline,omitempty"`
	Status              string     `json:"status"`
	RejectionReason     *string    `json:"rejectionReason,omitempty"`
	IsFeatured          bool       `json:"isFeatured"`
	ViewsCount          int        `json:"viewsCount"`
	ApplicationsCount   int        `json:"applicationsCount"`
	ReviewedBy          *string    `json:"reviewedBy,omitempty"`
	ReviewedAt          *time.Time `json:"reviewedAt,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

// OpportunityDetailResponse adds the viewer-dependent flags to the base
// representation.
type OpportunityDetailResponse struct {
	OpportunityResponse
	IsSaved           bool    `json:"isSaved"`
	ApplicationStatus *string `json:"applicationStatus,omitempty"`
}

// ListOpportunitiesResponse is a paginated collection of opportunities.
type ListOpportunitiesResponse struct {
	Opportunities []OpportunityResponse `json:"opportunities"`
	Total         int                   `json:"total"`
	Page          int                   `json:"page"`
	TotalPages    int                   `json:"totalPages"`
}

// PublisherOpportunitiesResponse pairs the publisher's listings with
// per-status counters for the dashboard.
type PublisherOpportunitiesResponse struct {
	Opportunities []OpportunityResponse `json:"opportunities"`
	Total         int                   `json:"total"`
	StatusCounts  map[string]int        `json:"statusCounts"`
}

// ToOpportunityResponse maps a domain opportunity to its API shape.
func ToOpportunityResponse(o domain.Opportunity) OpportunityResponse {
	return OpportunityResponse{
		OpportunityID:       o.OpportunityID,
		PublisherID:         o.PublisherID,
		Category:            o.Category,
		Title:               o.Title,
		Description:         o.Description,
		Requirements:        o.Requirements,
		Benefits:            o.Benefits,
		Modality:            o.Modality,
		Location:            o.Location,
		OrganizationName:    o.OrganizationName,
		ExternalURL:         o.ExternalURL,
		ApplicationDeadline: o.ApplicationDeadline,
		Status:              string(o.Status),
		RejectionReason:     o.RejectionReason,
		IsFeatured:          o.IsFeatured,
		ViewsCount:          o.ViewsCount,
		ApplicationsCount:   o.ApplicationsCount,
		ReviewedBy:          o.ReviewedBy,
		ReviewedAt:          o.ReviewedAt,
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
	}
}

// ToOpportunityResponses maps a slice of domain opportunities.
func ToOpportunityResponses(items []domain.Opportunity) []OpportunityResponse {
	out := make([]OpportunityResponse, 0, len(items))
	for _, o := range items {
		out = append(out, ToOpportunityResponse(o))
	}
	return out
}
