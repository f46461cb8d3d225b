package repositories

import (
	"context"

	"github.com/Anjos2/oportuniapp/internal/core/domain"
)

// AuditRepository is the append-only audit trail. Entries are never updated
// or deleted.
type AuditRepository interface {
	SaveAuditEntry(ctx context.Context, entry domain.AuditEntry) error
	ListAuditEntries(ctx context.Context, limit, offset int) ([]domain.AuditEntry, int, error)
}
