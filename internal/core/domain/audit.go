package domain

import "time"

// Audit action labels recorded by the workflows.
const (
	AuditActionCreate          = "create"
	AuditActionLogin           = "login"
	AuditActionAdminUpdate     = "admin_update"
	AuditActionPublisherUpdate = "publisher_update"
	AuditActionResolveReport   = "resolve_report"
	AuditActionForceSuspend    = "force_suspend"
)

// AuditEntry is an append-only record of who did what to which entity.
// Entries are never mutated or deleted.
type AuditEntry struct {
	AuditEntryID string    `json:"auditEntryID"`
	ActorID      string    `json:"actorID"`
	Action       string    `json:"action"`
	Entity       string    `json:"entity"`
	EntityID     string    `json:"entityID"`
	NewValues    *string   `json:"newValues"` // serialized snapshot, optional
	CreatedAt    time.Time `json:"createdAt"`
}
