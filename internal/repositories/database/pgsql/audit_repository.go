package pgsql

import (
	"context"
	"fmt"

	"github.com/Anjos2/oportuniapp/internal/apperrors"
	"github.com/Anjos2/oportuniapp/internal/core/domain"
	portsrepo "github.com/Anjos2/oportuniapp/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAuditRepository struct {
	BaseRepository
}

func newPgxAuditRepository(db *pgxpool.Pool) portsrepo.AuditRepository {
	return &PgxAuditRepository{BaseRepository{Pool: db}}
}

// Ensure PgxAuditRepository implements portsrepo.AuditRepository
var _ portsrepo.AuditRepository = (*PgxAuditRepository)(nil)

// insertAuditEntryTx writes an audit row inside a caller-owned transaction.
func insertAuditEntryTx(ctx context.Context, tx pgx.Tx, e domain.AuditEntry) error {
	query := `
		INSERT INTO audit_log (audit_entry_id, actor_id, action, entity, entity_id, new_values, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := tx.Exec(ctx, query,
		e.AuditEntryID,
		e.ActorID,
		e.Action,
		e.Entity,
		e.EntityID,
		e.NewValues,
		e.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert audit entry", err)
	}
	return nil
}

func (r *PgxAuditRepository) SaveAuditEntry(ctx context.Context, entry domain.AuditEntry) error {
	query := `
		INSERT INTO audit_log (audit_entry_id, actor_id, action, entity, entity_id, new_values, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		entry.AuditEntryID,
		entry.ActorID,
		entry.Action,
		entry.Entity,
		entry.EntityID,
		entry.NewValues,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save audit entry: %w", err)
	}
	return nil
}

func (r *PgxAuditRepository) ListAuditEntries(ctx context.Context, limit, offset int) ([]domain.AuditEntry, int, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var total int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM audit_log;`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count audit entries: %w", err)
	}

	query := `
		SELECT audit_entry_id, actor_id, action, entity, entity_id, new_values, created_at
		FROM audit_log
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.AuditEntry
	for rows.Next() {
		var e domain.AuditEntry
		if err := rows.Scan(&e.AuditEntryID, &e.ActorID, &e.Action, &e.Entity, &e.EntityID, &e.NewValues, &e.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan audit entry row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}
