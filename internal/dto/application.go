package dto

import (
	"time"

	"github.com/Anjos2/oportuniapp/internal/core/domain"
)

// SubmitApplicationRequest is the payload for applying to an opportunity.
type SubmitApplicationRequest struct {
	CoverLetter *string `json:"coverLetter,omitempty" binding:"omitempty,max=2000"`
}

// TransitionApplicationRequest moves an application through review.
// PublisherNotes, when present, replace the stored notes; when absent the
// stored notes are preserved.
type TransitionApplicationRequest struct {
	Status         string  `json:"status" binding:"required"`
	PublisherNotes *string `json:"publisherNotes,omitempty"`
}

// ApplicationResponse is the API shape of an application.
type ApplicationResponse struct {
	ApplicationID  string     `json:"applicationId"`
	ApplicantID    string     `json:"applicantId"`
	OpportunityID  string     `json:"opportunityId"`
	Status         string     `json:"status"`
	CoverLetter    *string    `json:"coverLetter,omitempty"`
	PublisherNotes *string    `json:"publisherNotes,omitempty"`
	ReviewedAt     *time.Time `json:"reviewedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// ListApplicationsResponse is a paginated collection of applications.
type ListApplicationsResponse struct {
	Applications []ApplicationResponse `json:"applications"`
	Total        int                   `json:"total"`
	Page         int                   `json:"page"`
	TotalPages   int                   `json:"totalPages"`
}

// ToApplicationResponse maps a domain application to its API shape.
func ToApplicationResponse(a domain.Application) ApplicationResponse {
	return ApplicationResponse{
		ApplicationID:  a.ApplicationID,
		ApplicantID:    a.ApplicantID,
		OpportunityID:  a.OpportunityID,
		Status:         string(a.Status),
		CoverLetter:    a.CoverLetter,
		PublisherNotes: a.PublisherNotes,
		ReviewedAt:     a.ReviewedAt,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// ToApplicationResponses maps a slice of domain applications.
func ToApplicationResponses(items []domain.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(items))
	for _, a := range items {
		out = append(out, ToApplicationResponse(a))
	}
	return out
}
