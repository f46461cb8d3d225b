package domain

import "time"

// OpportunityStatus is the lifecycle state of a posting.
type OpportunityStatus string

const (
	OpportunityDraft    OpportunityStatus = "draft"
	OpportunityPending  OpportunityStatus = "pending"
	OpportunityActive   OpportunityStatus = "active"
	OpportunityPaused   OpportunityStatus = "paused"
	OpportunityFinished OpportunityStatus = "finished"
	OpportunityRejected OpportunityStatus = "rejected"
)

// Opportunity represents a postable listing (scholarship, internship, job...)
// owned by a publisher.
type Opportunity struct {
	OpportunityID       string            `json:"opportunityID"`
	PublisherID         string            `json:"publisherID"`
	Category            string            `json:"category"`
	Title               string            `json:"title"`
	Description         string            `json:"description"`
	Requirements        *string           `json:"requirements"`
	Benefits            *string           `json:"benefits"`
	Modality            string            `json:"modality"`
	Location            *string           `json:"location"`
	OrganizationName    string            `json:"organizationName"`
	ExternalURL         *string           `json:"externalURL"`
	ApplicationDeadline *time.Time        `json:"applicationDeadline"`
	Status              OpportunityStatus `json:"status"`
	IsFeatured          bool              `json:"isFeatured"`
	ViewsCount          int               `json:"viewsCount"`
	ApplicationsCount   int               `json:"applicationsCount"`
	RejectionReason     *string           `json:"rejectionReason"`
	ReviewedBy          *string           `json:"reviewedBy"`
	ReviewedAt          *time.Time        `json:"reviewedAt"`
	CreatedAt           time.Time         `json:"createdAt"`
	UpdatedAt           time.Time         `json:"updatedAt"`
}

// IsTerminal reports whether no transition, forced or not, may leave the
// status. ForceSuspend refuses terminal states on this basis.
func (s OpportunityStatus) IsTerminal() bool {
	return s == OpportunityFinished || s == OpportunityRejected
}

// OpportunityPatch carries a partial field edit of a posting. Nil means
// leave the stored value alone. Status is deliberately absent: lifecycle
// changes go through the transition path only.
type OpportunityPatch struct {
	Category            *string
	Title               *string
	Description         *string
	Requirements        *string
	Benefits            *string
	Modality            *string
	Location            *string
	OrganizationName    *string
	ExternalURL         *string
	ApplicationDeadline *time.Time
}

// Apply merges the patch into the opportunity in place.
func (p OpportunityPatch) Apply(o *Opportunity) {
	if p.Category != nil {
		o.Category = *p.Category
	}
	if p.Title != nil {
		o.Title = *p.Title
	}
	if p.Description != nil {
		o.Description = *p.Description
	}
	if p.Requirements != nil {
		o.Requirements = p.Requirements
	}
	if p.Benefits != nil {
		o.Benefits = p.Benefits
	}
	if p.Modality != nil {
		o.Modality = *p.Modality
	}
	if p.Location != nil {
		o.Location = p.Location
	}
	if p.OrganizationName != nil {
		o.OrganizationName = *p.OrganizationName
	}
	if p.ExternalURL != nil {
		o.ExternalURL = p.ExternalURL
	}
	if p.ApplicationDeadline != nil {
		o.ApplicationDeadline = p.ApplicationDeadline
	}
}
