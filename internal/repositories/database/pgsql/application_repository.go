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

const applicationColumns = `application_id, applicant_id, opportunity_id, status, cover_letter,
		publisher_notes, reviewed_at, created_at, updated_at`

type PgxApplicationRepository struct {
	BaseRepository
}

func newPgxApplicationRepository(db *pgxpool.Pool) portsrepo.ApplicationRepositoryFacade {
	return &PgxApplicationRepository{BaseRepository{Pool: db}}
}

// Ensure PgxApplicationRepository implements portsrepo.ApplicationRepositoryFacade
var _ portsrepo.ApplicationRepositoryFacade = (*PgxApplicationRepository)(nil)

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var a domain.Application
	err := row.Scan(
		&a.ApplicationID,
		&a.ApplicantID,
		&a.OpportunityID,
		&a.Status,
		&a.CoverLetter,
		&a.PublisherNotes,
		&a.ReviewedAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func scanApplicationRows(rows pgx.Rows) ([]domain.Application, error) {
	defer rows.Close()
	var out []domain.Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application row: %w", err)
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (r *PgxApplicationRepository) FindApplicationByID(ctx context.Context, applicationID string) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE application_id = $1;`
	application, err := scanApplication(r.Pool.QueryRow(ctx, query, applicationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find application by ID %s: %w", applicationID, err)
	}
	return application, nil
}

func (r *PgxApplicationRepository) FindActiveApplication(ctx context.Context, applicantID, opportunityID string) (*domain.Application, error) {
	query := `
		SELECT ` + applicationColumns + `
		FROM applications
		WHERE applicant_id = $1 AND opportunity_id = $2 AND status != 'retirado';
	`
	application, err := scanApplication(r.Pool.QueryRow(ctx, query, applicantID, opportunityID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find active application: %w", err)
	}
	return application, nil
}

func (r *PgxApplicationRepository) ListApplicationsByApplicant(ctx context.Context, applicantID string, status *domain.ApplicationStatus, limit, offset int) ([]domain.Application, int, error) {
	return r.listApplications(ctx, "applicant_id", applicantID, status, limit, offset)
}

func (r *PgxApplicationRepository) ListApplicationsByOpportunity(ctx context.Context, opportunityID string, status *domain.ApplicationStatus, limit, offset int) ([]domain.Application, int, error) {
	return r.listApplications(ctx, "opportunity_id", opportunityID, status, limit, offset)
}

func (r *PgxApplicationRepository) listApplications(ctx context.Context, column, value string, status *domain.ApplicationStatus, limit, offset int) ([]domain.Application, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	where := fmt.Sprintf("WHERE %s = $1", column)
	args := []any{value}
	argN := 2
	if status != nil {
		where += fmt.Sprintf(" AND status = $%d", argN)
		args = append(args, *status)
		argN++
	}

	var total int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM applications `+where+`;`, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count applications: %w", err)
	}

	query := `SELECT ` + applicationColumns + ` FROM applications ` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d;`, argN, argN+1)
	args = append(args, limit, offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list applications: %w", err)
	}
	applications, err := scanApplicationRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return applications, total, nil
}

// CreateApplication inserts the submission, bumps the posting's counter and
// writes the publisher notification in one transaction. The partial unique
// index on live (applicant, opportunity) pairs backs the duplicate guard.
func (r *PgxApplicationRepository) CreateApplication(ctx context.Context, application domain.Application, notification *domain.Notification) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	insertQuery := `
		INSERT INTO applications (` + applicationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, insertQuery,
		application.ApplicationID,
		application.ApplicantID,
		application.OpportunityID,
		application.Status,
		application.CoverLetter,
		application.PublisherNotes,
		application.ReviewedAt,
		application.CreatedAt,
		application.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert application", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE opportunities SET applications_count = applications_count + 1 WHERE opportunity_id = $1;`,
		application.OpportunityID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to bump applications counter", err)
	}

	if notification != nil {
		if err := insertNotificationTx(ctx, tx, *notification); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// TransitionApplicationStatus applies the guarded status write and the
// applicant notification in one transaction.
func (r *PgxApplicationRepository) TransitionApplicationStatus(ctx context.Context, update portsrepo.ApplicationStatusUpdate, notification *domain.Notification) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	statusQuery := `
		UPDATE applications SET
			status = $3,
			publisher_notes = COALESCE($4, publisher_notes),
			reviewed_at = COALESCE($5, reviewed_at),
			updated_at = $6
		WHERE application_id = $1 AND status = $2;
	`
	tag, err := tx.Exec(ctx, statusQuery,
		update.ApplicationID,
		update.FromStatus,
		update.ToStatus,
		update.PublisherNotes,
		update.ReviewedAt,
		update.UpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update application status", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewConflictError("application status changed concurrently")
	}

	if notification != nil {
		if err := insertNotificationTx(ctx, tx, *notification); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}
