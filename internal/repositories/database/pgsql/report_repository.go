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

const reportColumns = `report_id, reporter_id, opportunity_id, reason, comment, status,
		admin_notes, resolved_by, resolved_at, created_at`

type PgxReportRepository struct {
	BaseRepository
}

func newPgxReportRepository(db *pgxpool.Pool) portsrepo.ReportRepositoryFacade {
	return &PgxReportRepository{BaseRepository{Pool: db}}
}

// Ensure PgxReportRepository implements portsrepo.ReportRepositoryFacade
var _ portsrepo.ReportRepositoryFacade = (*PgxReportRepository)(nil)

func scanReport(row pgx.Row) (*domain.Report, error) {
	var rep domain.Report
	err := row.Scan(
		&rep.ReportID,
		&rep.ReporterID,
		&rep.OpportunityID,
		&rep.Reason,
		&rep.Comment,
		&rep.Status,
		&rep.AdminNotes,
		&rep.ResolvedBy,
		&rep.ResolvedAt,
		&rep.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

func scanReportRows(rows pgx.Rows) ([]domain.Report, error) {
	defer rows.Close()
	var out []domain.Report
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		out = append(out, *rep)
	}
	return out, rows.Err()
}

func (r *PgxReportRepository) SaveReport(ctx context.Context, report domain.Report) error {
	query := `
		INSERT INTO reports (` + reportColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		report.ReportID,
		report.ReporterID,
		report.OpportunityID,
		report.Reason,
		report.Comment,
		report.Status,
		report.AdminNotes,
		report.ResolvedBy,
		report.ResolvedAt,
		report.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

func (r *PgxReportRepository) FindReportByID(ctx context.Context, reportID string) (*domain.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE report_id = $1;`
	report, err := scanReport(r.Pool.QueryRow(ctx, query, reportID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find report by ID %s: %w", reportID, err)
	}
	return report, nil
}

func (r *PgxReportRepository) FindReportByReporter(ctx context.Context, reporterID, opportunityID string) (*domain.Report, error) {
	query := `
		SELECT ` + reportColumns + `
		FROM reports
		WHERE reporter_id = $1 AND opportunity_id = $2;
	`
	report, err := scanReport(r.Pool.QueryRow(ctx, query, reporterID, opportunityID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find report by reporter: %w", err)
	}
	return report, nil
}

func (r *PgxReportRepository) ListReports(ctx context.Context, status *domain.ReportStatus, limit, offset int) ([]domain.Report, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	where := ""
	args := []any{}
	argN := 1
	if status != nil {
		where = fmt.Sprintf("WHERE status = $%d", argN)
		args = append(args, *status)
		argN++
	}

	var total int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM reports `+where+`;`, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count reports: %w", err)
	}

	query := `SELECT ` + reportColumns + ` FROM reports ` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d;`, argN, argN+1)
	args = append(args, limit, offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reports: %w", err)
	}
	reports, err := scanReportRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func (r *PgxReportRepository) ListReportsByOpportunity(ctx context.Context, opportunityID, excludeReportID string) ([]domain.Report, error) {
	query := `
		SELECT ` + reportColumns + `
		FROM reports
		WHERE opportunity_id = $1 AND report_id != $2
		ORDER BY created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, opportunityID, excludeReportID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports by opportunity: %w", err)
	}
	return scanReportRows(rows)
}

// ResolveReport applies the guarded triage write and the audit row in one
// transaction.
func (r *PgxReportRepository) ResolveReport(ctx context.Context, resolution portsrepo.ReportResolution, entry *domain.AuditEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	statusQuery := `
		UPDATE reports SET
			status = $3,
			admin_notes = $4,
			resolved_by = $5,
			resolved_at = $6
		WHERE report_id = $1 AND status = $2;
	`
	tag, err := tx.Exec(ctx, statusQuery,
		resolution.ReportID,
		resolution.FromStatus,
		resolution.ToStatus,
		resolution.AdminNotes,
		resolution.ResolvedBy,
		resolution.ResolvedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update report status", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewConflictError("report status changed concurrently")
	}

	if entry != nil {
		if err := insertAuditEntryTx(ctx, tx, *entry); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}
