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

const externalAccountColumns = `external_account_id, organization_name, ruc, representative_name, email,
		phone, entity_type, description, website, status, approved_by, approved_at,
		rejection_reason, created_at`

type PgxExternalAccountRepository struct {
	BaseRepository
}

func newPgxExternalAccountRepository(db *pgxpool.Pool) portsrepo.ExternalAccountRepositoryFacade {
	return &PgxExternalAccountRepository{BaseRepository{Pool: db}}
}

// Ensure PgxExternalAccountRepository implements portsrepo.ExternalAccountRepositoryFacade
var _ portsrepo.ExternalAccountRepositoryFacade = (*PgxExternalAccountRepository)(nil)

func scanExternalAccount(row pgx.Row) (*domain.ExternalAccount, error) {
	var a domain.ExternalAccount
	err := row.Scan(
		&a.ExternalAccountID,
		&a.OrganizationName,
		&a.RUC,
		&a.RepresentativeName,
		&a.Email,
		&a.Phone,
		&a.EntityType,
		&a.Description,
		&a.Website,
		&a.Status,
		&a.ApprovedBy,
		&a.ApprovedAt,
		&a.RejectionReason,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *PgxExternalAccountRepository) SaveExternalAccount(ctx context.Context, account domain.ExternalAccount) error {
	query := `
		INSERT INTO external_accounts (` + externalAccountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		account.ExternalAccountID,
		account.OrganizationName,
		account.RUC,
		account.RepresentativeName,
		account.Email,
		account.Phone,
		account.EntityType,
		account.Description,
		account.Website,
		account.Status,
		account.ApprovedBy,
		account.ApprovedAt,
		account.RejectionReason,
		account.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save external account: %w", err)
	}
	return nil
}

func (r *PgxExternalAccountRepository) FindExternalAccountByID(ctx context.Context, accountID string) (*domain.ExternalAccount, error) {
	query := `SELECT ` + externalAccountColumns + ` FROM external_accounts WHERE external_account_id = $1;`
	account, err := scanExternalAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find external account by ID %s: %w", accountID, err)
	}
	return account, nil
}

func (r *PgxExternalAccountRepository) FindExternalAccountByEmail(ctx context.Context, email string) (*domain.ExternalAccount, error) {
	query := `SELECT ` + externalAccountColumns + ` FROM external_accounts WHERE email = $1;`
	account, err := scanExternalAccount(r.Pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find external account by email: %w", err)
	}
	return account, nil
}

func (r *PgxExternalAccountRepository) ListExternalAccounts(ctx context.Context, status *domain.ExternalAccountStatus, limit, offset int) ([]domain.ExternalAccount, int, error) {
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
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM external_accounts `+where+`;`, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count external accounts: %w", err)
	}

	query := `SELECT ` + externalAccountColumns + ` FROM external_accounts ` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d;`, argN, argN+1)
	args = append(args, limit, offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list external accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.ExternalAccount
	for rows.Next() {
		a, err := scanExternalAccount(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan external account row: %w", err)
		}
		accounts = append(accounts, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return accounts, total, nil
}

// ResolveExternalAccount applies the guarded onboarding decision write.
func (r *PgxExternalAccountRepository) ResolveExternalAccount(ctx context.Context, resolution portsrepo.ExternalAccountResolution) error {
	query := `
		UPDATE external_accounts SET
			status = $3,
			rejection_reason = $4,
			approved_by = $5,
			approved_at = $6
		WHERE external_account_id = $1 AND status = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		resolution.ExternalAccountID,
		resolution.FromStatus,
		resolution.ToStatus,
		resolution.RejectionReason,
		resolution.ApprovedBy,
		resolution.ApprovedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to resolve external account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewConflictError("external account status changed concurrently")
	}
	return nil
}
