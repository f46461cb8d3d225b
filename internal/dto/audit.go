package dto

import (
	"time"

	"github.com/Anjos2/oportuniapp/internal/core/domain"
)

// AuditEntryResponse is the API shape of an audit trail entry.
type AuditEntryResponse struct {
	AuditEntryID string    `json:"auditEntryId"`
	ActorID      string    `json:"actorId"`
	Action       string    `json:"action"`
	Entity       string    `json:"entity"`
	EntityID     string    `json:"entityId"`
	NewValues    *string   `json:"newValues,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ListAuditEntriesResponse is a paginated slice of the audit trail.
type ListAuditEntriesResponse struct {
	Entries    []AuditEntryResponse `json:"entries"`
	Total      int                  `json:"total"`
	Page       int                  `json:"page"`
	TotalPages int                  `json:"totalPages"`
}

// ToAuditEntryResponse maps a domain audit entry to its API shape.
func ToAuditEntryResponse(e domain.AuditEntry) AuditEntryResponse {
	return AuditEntryResponse{
		AuditEntryID: e.AuditEntryID,
		ActorID:      e.ActorID,
		Action:       e.Action,
		Entity:       e.Entity,
		EntityID:     e.EntityID,
		NewValues:    e.NewValues,
		CreatedAt:    e.CreatedAt,
	}
}

// ToAuditEntryResponses maps a slice of domain audit entries.
func ToAuditEntryResponses(items []domain.AuditEntry) []AuditEntryResponse {
	out := make([]AuditEntryResponse, 0, len(items))
	for _, e := range items {
		out = append(out, ToAuditEntryResponse(e))
	}
	return out
}
