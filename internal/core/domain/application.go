package domain

import "time"

// ApplicationStatus is the lifecycle state of a submission against a posting.
// The stored labels match the original platform's Spanish vocabulary.
type ApplicationStatus string

const (
	ApplicationPending     ApplicationStatus = "pendiente"
	ApplicationInReview    ApplicationStatus = "en_revision"
	ApplicationShortlisted ApplicationStatus = "preseleccionado"
	ApplicationAccepted    ApplicationStatus = "aceptado"
	ApplicationRejected    ApplicationStatus = "rechazado"
	ApplicationWithdrawn   ApplicationStatus = "retirado"
)

// IsTerminal reports whether the status admits no further transition.
func (s ApplicationStatus) IsTerminal() bool {
	switch s {
	case ApplicationAccepted, ApplicationRejected, ApplicationWithdrawn:
		return true
	}
	return false
}

// Application is a user's submission against an Opportunity. The cover letter
// is applicant-authored and immutable after creation; publisher notes are set
// only by the owning publisher or an admin during review.
type Application struct {
	ApplicationID  string            `json:"applicationID"`
	ApplicantID    string            `json:"applicantID"`
	OpportunityID  string            `json:"opportunityID"`
	Status         ApplicationStatus `json:"status"`
	CoverLetter    *string           `json:"coverLetter"`
	PublisherNotes *string           `json:"publisherNotes"`
	ReviewedAt     *time.Time        `json:"reviewedAt"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}
