package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/Anjos2/oportuniapp/internal/apperrors"
	"github.com/Anjos2/oportuniapp/internal/core/domain"
	portsrepo "github.com/Anjos2/oportuniapp/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const opportunityColumns = `opportunity_id, publisher_id, category, title, description, requirements, benefits,
		modality, location, organization_name, external_url, application_deadline,
		status, rejection_reason, is_featured, views_count, applications_count,
		reviewed_by, reviewed_at, created_at, updated_at`

type PgxOpportunityRepository struct {
	BaseRepository
}

func newPgxOpportunityRepository(db *pgxpool.Pool) portsrepo.OpportunityRepositoryFacade {
	return &PgxOpportunityRepository{BaseRepository{Pool: db}}
}

// Ensure PgxOpportunityRepository implements portsrepo.OpportunityRepositoryFacade
var _ portsrepo.OpportunityRepositoryFacade = (*PgxOpportunityRepository)(nil)

func scanOpportunity(row pgx.Row) (*domain.Opportunity, error) {
	var o domain.Opportunity
	err := row.Scan(
		&o.OpportunityID,
		&o.PublisherID,
		&o.Category,
		&o.Title,
		&o.Description,
		&o.Requirements,
		&o.Benefits,
		&o.Modality,
		&o.Location,
		&o.OrganizationName,
		&o.ExternalURL,
		&o.ApplicationDeadline,
		&o.Status,
		&o.RejectionReason,
		&o.IsFeatured,
		&o.ViewsCount,
		&o.ApplicationsCount,
		&o.ReviewedBy,
		&o.ReviewedAt,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func scanOpportunityRows(rows pgx.Rows) ([]domain.Opportunity, error) {
	defer rows.Close()
	var out []domain.Opportunity
	for rows.Next() {
		o, err := scanOpportunity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan opportunity row: %w", err)
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func (r *PgxOpportunityRepository) SaveOpportunity(ctx context.Context, opportunity domain.Opportunity) error {
	query := `
        INSERT INTO opportunities (` + opportunityColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
    `
	_, err := r.Pool.Exec(ctx, query,
		opportunity.OpportunityID,
		opportunity.PublisherID,
		opportunity.Category,
		opportunity.Title,
		opportunity.Description,
		opportunity.Requirements,
		opportunity.Benefits,
		opportunity.Modality,
		opportunity.Location,
		opportunity.OrganizationName,
		opportunity.ExternalURL,
		opportunity.ApplicationDeadline,
		opportunity.Status,
		opportunity.RejectionReason,
		opportunity.IsFeatured,
		opportunity.ViewsCount,
		opportunity.ApplicationsCount,
		opportunity.ReviewedBy,
		opportunity.ReviewedAt,
		opportunity.CreatedAt,
		opportunity.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save opportunity: %w", err)
	}
	return nil
}

func (r *PgxOpportunityRepository) FindOpportunityByID(ctx context.Context, opportunityID string) (*domain.Opportunity, error) {
	query := `SELECT ` + opportunityColumns + ` FROM opportunities WHERE opportunity_id = $1;`
	opportunity, err := scanOpportunity(r.Pool.QueryRow(ctx, query, opportunityID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find opportunity by ID %s: %w", opportunityID, err)
	}
	return opportunity, nil
}

func (r *PgxOpportunityRepository) ListActiveOpportunities(ctx context.Context, filter portsrepo.ListOpportunitiesFilter) ([]domain.Opportunity, int, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	where := `WHERE status = 'active'`
	args := []any{}
	argN := 1
	if filter.Category != "" {
		where += fmt.Sprintf(" AND category = $%d", argN)
		args = append(args, filter.Category)
		argN++
	}
	if filter.Modality != "" {
		where += fmt.Sprintf(" AND modality = $%d", argN)
		args = append(args, filter.Modality)
		argN++
	}
	if filter.Search != "" {
		where += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d OR organization_name ILIKE $%d)", argN, argN, argN)
		args = append(args, "%"+filter.Search+"%")
		argN++
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM opportunities ` + where + `;`
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count active opportunities: %w", err)
	}

	query := `SELECT ` + opportunityColumns + ` FROM opportunities ` + where +
		fmt.Sprintf(` ORDER BY is_featured DESC, created_at DESC LIMIT $%d OFFSET $%d;`, argN, argN+1)
	args = append(args, limit, offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list active opportunities: %w", err)
	}
	opportunities, err := scanOpportunityRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return opportunities, total, nil
}

func (r *PgxOpportunityRepository) ListFeaturedOpportunities(ctx context.Context, limit int) ([]domain.Opportunity, error) {
	if limit <= 0 {
		limit = 6
	}
	query := `
		SELECT ` + opportunityColumns + `
		FROM opportunities
		WHERE status = 'active' AND is_featured = TRUE
		ORDER BY created_at DESC
		LIMIT $1;
	`
	rows, err := r.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list featured opportunities: %w", err)
	}
	return scanOpportunityRows(rows)
}

func (r *PgxOpportunityRepository) ListOpportunitiesByPublisher(ctx context.Context, publisherID string, status *domain.OpportunityStatus, limit, offset int) ([]domain.Opportunity, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	where := `WHERE publisher_id = $1`
	args := []any{publisherID}
	argN := 2
	if status != nil {
		where += fmt.Sprintf(" AND status = $%d", argN)
		args = append(args, *status)
		argN++
	}

	var total int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM opportunities `+where+`;`, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count publisher opportunities: %w", err)
	}

	query := `SELECT ` + opportunityColumns + ` FROM opportunities ` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d;`, argN, argN+1)
	args = append(args, limit, offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list publisher opportunities: %w", err)
	}
	opportunities, err := scanOpportunityRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return opportunities, total, nil
}

func (r *PgxOpportunityRepository) ListOpportunitiesByStatus(ctx context.Context, status domain.OpportunityStatus, limit, offset int) ([]domain.Opportunity, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var total int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM opportunities WHERE status = $1;`, status).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count opportunities by status: %w", err)
	}

	// Oldest first so the review queue is fair.
	query := `
		SELECT ` + opportunityColumns + `
		FROM opportunities
		WHERE status = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list opportunities by status: %w", err)
	}
	opportunities, err := scanOpportunityRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return opportunities, total, nil
}

func (r *PgxOpportunityRepository) CountOpportunitiesByStatus(ctx context.Context, publisherID string) (map[domain.OpportunityStatus]int, error) {
	query := `
		SELECT status, COUNT(*)
		FROM opportunities
		WHERE publisher_id = $1
		GROUP BY status;
	`
	rows, err := r.Pool.Query(ctx, query, publisherID)
	if err != nil {
		return nil, fmt.Errorf("failed to count opportunities by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.OpportunityStatus]int)
	for rows.Next() {
		var status domain.OpportunityStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (r *PgxOpportunityRepository) UpdateOpportunity(ctx context.Context, opportunity domain.Opportunity) error {
	query := `
		UPDATE opportunities SET
			category = $2,
			title = $3,
			description = $4,
			requirements = $5,
			benefits = $6,
			modality = $7,
			location = $8,
			organization_name = $9,
			external_url = $10,
			application_deadline = $11,
			updated_at = $12
		WHERE opportunity_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		opportunity.OpportunityID,
		opportunity.Category,
		opportunity.Title,
		opportunity.Description,
		opportunity.Requirements,
		opportunity.Benefits,
		opportunity.Modality,
		opportunity.Location,
		opportunity.OrganizationName,
		opportunity.ExternalURL,
		opportunity.ApplicationDeadline,
		opportunity.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update opportunity %s: %w", opportunity.OpportunityID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// TransitionOpportunityStatus applies the guarded status write plus its
// side-effect rows in one transaction. The WHERE status = expected clause is
// the lost-update guard: zero rows means someone moved the row first.
func (r *PgxOpportunityRepository) TransitionOpportunityStatus(ctx context.Context, update portsrepo.OpportunityStatusUpdate, notification *domain.Notification, entry *domain.AuditEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	statusQuery := `
		UPDATE opportunities SET
			status = $3,
			rejection_reason = $4,
			reviewed_by = COALESCE($5, reviewed_by),
			reviewed_at = COALESCE($6, reviewed_at),
			updated_at = $7
		WHERE opportunity_id = $1 AND status = $2;
	`
	tag, err := tx.Exec(ctx, statusQuery,
		update.OpportunityID,
		update.FromStatus,
		update.ToStatus,
		update.RejectionReason,
		update.ReviewedBy,
		update.ReviewedAt,
		update.UpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update opportunity status", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewConflictError("opportunity status changed concurrently")
	}

	if notification != nil {
		if err := insertNotificationTx(ctx, tx, *notification); err != nil {
			return err
		}
	}
	if entry != nil {
		if err := insertAuditEntryTx(ctx, tx, *entry); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxOpportunityRepository) SetOpportunityFeatured(ctx context.Context, opportunityID string, featured bool) error {
	tag, err := r.Pool.Exec(ctx,
		`UPDATE opportunities SET is_featured = $2, updated_at = NOW() WHERE opportunity_id = $1;`,
		opportunityID, featured)
	if err != nil {
		return fmt.Errorf("failed to set featured flag for %s: %w", opportunityID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxOpportunityRepository) IncrementOpportunityViews(ctx context.Context, opportunityID string) error {
	_, err := r.Pool.Exec(ctx,
		`UPDATE opportunities SET views_count = views_count + 1 WHERE opportunity_id = $1;`,
		opportunityID)
	if err != nil {
		return fmt.Errorf("failed to increment views for %s: %w", opportunityID, err)
	}
	return nil
}

func (r *PgxOpportunityRepository) DeleteOpportunity(ctx context.Context, opportunityID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM opportunities WHERE opportunity_id = $1;`, opportunityID)
	if err != nil {
		return fmt.Errorf("failed to delete opportunity %s: %w", opportunityID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxOpportunityRepository) SaveOpportunityForUser(ctx context.Context, userID, opportunityID string) error {
	query := `
		INSERT INTO saved_opportunities (user_id, opportunity_id, created_at)
		VALUES ($1, $2, NOW());
	`
	_, err := r.Pool.Exec(ctx, query, userID, opportunityID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save opportunity for user: %w", err)
	}
	return nil
}

func (r *PgxOpportunityRepository) RemoveSavedOpportunity(ctx context.Context, userID, opportunityID string) error {
	tag, err := r.Pool.Exec(ctx,
		`DELETE FROM saved_opportunities WHERE user_id = $1 AND opportunity_id = $2;`,
		userID, opportunityID)
	if err != nil {
		return fmt.Errorf("failed to remove saved opportunity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxOpportunityRepository) ListSavedOpportunities(ctx context.Context, userID string, limit, offset int) ([]domain.Opportunity, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var total int
	if err := r.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM saved_opportunities WHERE user_id = $1;`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count saved opportunities: %w", err)
	}

	query := `
		SELECT o.opportunity_id, o.publisher_id, o.category, o.title, o.description, o.requirements, o.benefits,
		o.modality, o.location, o.organization_name, o.external_url, o.application_deadline,
		o.status, o.rejection_reason, o.is_featured, o.views_count, o.applications_count,
		o.reviewed_by, o.reviewed_at, o.created_at, o.updated_at
		FROM saved_opportunities s
		JOIN opportunities o ON o.opportunity_id = s.opportunity_id
		WHERE s.user_id = $1
		ORDER BY s.created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list saved opportunities: %w", err)
	}
	opportunities, err := scanOpportunityRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return opportunities, total, nil
}

func (r *PgxOpportunityRepository) IsOpportunitySaved(ctx context.Context, userID, opportunityID string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM saved_opportunities WHERE user_id = $1 AND opportunity_id = $2);`,
		userID, opportunityID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check saved opportunity: %w", err)
	}
	return exists, nil
}
