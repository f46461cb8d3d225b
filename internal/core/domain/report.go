package domain

import "time"

// ReportStatus is the triage state of a user-filed complaint.
type ReportStatus string

const (
	ReportPending     ReportStatus = "pendiente"
	ReportReviewed    ReportStatus = "revisado"
	ReportActionTaken ReportStatus = "accion_tomada"
	ReportDismissed   ReportStatus = "descartado"
)

// IsTerminal reports whether the status admits no further transition.
func (s ReportStatus) IsTerminal() bool {
	return s != ReportPending
}

// ReportReason enumerates why a posting was reported.
type ReportReason string

const (
	ReasonSpam          ReportReason = "spam"
	ReasonInappropriate ReportReason = "contenido_inapropiado"
	ReasonMisleading    ReportReason = "informacion_falsa"
	ReasonExpired       ReportReason = "oferta_vencida"
	ReasonOther         ReportReason = "otro"
)

// IsValid reports whether the reason is one of the enumerated values.
func (r ReportReason) IsValid() bool {
	switch r {
	case ReasonSpam, ReasonInappropriate, ReasonMisleading, ReasonExpired, ReasonOther:
		return true
	}
	return false
}

// ReportAction is the enforcement decision attached to a resolution.
type ReportAction string

const (
	// ActionSuspend cascades a forced suspension into the reported posting.
	ActionSuspend ReportAction = "suspend"
	// ActionNone resolves the report without touching the posting.
	ActionNone ReportAction = "none"
)

// Report is a user-filed complaint against an Opportunity.
type Report struct {
	ReportID      string       `json:"reportID"`
	ReporterID    string       `json:"reporterID"`
	OpportunityID string       `json:"opportunityID"`
	Reason        ReportReason `json:"reason"`
	Comment       *string      `json:"comment"`
	Status        ReportStatus `json:"status"`
	AdminNotes    *string      `json:"adminNotes"`
	ResolvedBy    *string      `json:"resolvedBy"`
	ResolvedAt    *time.Time   `json:"resolvedAt"`
	CreatedAt     time.Time    `json:"createdAt"`
}
