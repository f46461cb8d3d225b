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

const userColumns = `user_id, email, password_hash, name, phone, role, status,
		faculty_id, school_id, cycle, student_code, bio, linkedin_url,
		profile_photo, cv_url, created_at, updated_at`

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository{Pool: db}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.UserID,
		&u.Email,
		&u.PasswordHash,
		&u.Name,
		&u.Phone,
		&u.Role,
		&u.Status,
		&u.FacultyID,
		&u.SchoolID,
		&u.Cycle,
		&u.StudentCode,
		&u.Bio,
		&u.LinkedinURL,
		&u.ProfilePhoto,
		&u.CVURL,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := r.Pool.Exec(ctx, query,
		user.UserID,
		user.Email,
		user.PasswordHash,
		user.Name,
		user.Phone,
		user.Role,
		user.Status,
		user.FacultyID,
		user.SchoolID,
		user.Cycle,
		user.StudentCode,
		user.Bio,
		user.LinkedinURL,
		user.ProfilePhoto,
		user.CVURL,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	user, err := scanUser(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}
	return user, nil
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1;`
	user, err := scanUser(r.Pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}

func (r *PgxUserRepository) ListUsers(ctx context.Context, role *domain.Role, limit, offset int) ([]domain.User, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	where := ""
	args := []any{}
	argN := 1
	if role != nil {
		where = fmt.Sprintf("WHERE role = $%d", argN)
		args = append(args, *role)
		argN++
	}

	var total int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM users `+where+`;`, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	query := `SELECT ` + userColumns + ` FROM users ` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d;`, argN, argN+1)
	args = append(args, limit, offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// UpdateUserProfile writes the profile fields and replaces each non-nil
// association set wholesale, all in one transaction.
func (r *PgxUserRepository) UpdateUserProfile(ctx context.Context, user domain.User, skills *[]domain.SkillSelection, languages *[]domain.LanguageSelection, interests *[]string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	updateQuery := `
		UPDATE users SET
			name = $2,
			phone = $3,
			faculty_id = $4,
			school_id = $5,
			cycle = $6,
			student_code = $7,
			bio = $8,
			linkedin_url = $9,
			profile_photo = $10,
			cv_url = $11,
			updated_at = $12
		WHERE user_id = $1;
	`
	tag, err := tx.Exec(ctx, updateQuery,
		user.UserID,
		user.Name,
		user.Phone,
		user.FacultyID,
		user.SchoolID,
		user.Cycle,
		user.StudentCode,
		user.Bio,
		user.LinkedinURL,
		user.ProfilePhoto,
		user.CVURL,
		user.UpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update user profile", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if skills != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM user_skills WHERE user_id = $1;`, user.UserID); err != nil {
			return apperrors.NewAppError(500, "failed to clear user skills", err)
		}
		for _, s := range *skills {
			if _, err := tx.Exec(ctx,
				`INSERT INTO user_skills (user_id, skill_id, level) VALUES ($1, $2, $3);`,
				user.UserID, s.SkillID, s.Level); err != nil {
				return apperrors.NewAppError(500, "failed to insert user skill", err)
			}
		}
	}

	if languages != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM user_languages WHERE user_id = $1;`, user.UserID); err != nil {
			return apperrors.NewAppError(500, "failed to clear user languages", err)
		}
		for _, l := range *languages {
			if _, err := tx.Exec(ctx,
				`INSERT INTO user_languages (user_id, language_id, level) VALUES ($1, $2, $3);`,
				user.UserID, l.LanguageID, l.Level); err != nil {
				return apperrors.NewAppError(500, "failed to insert user language", err)
			}
		}
	}

	if interests != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM user_interests WHERE user_id = $1;`, user.UserID); err != nil {
			return apperrors.NewAppError(500, "failed to clear user interests", err)
		}
		for _, categoryID := range *interests {
			if _, err := tx.Exec(ctx,
				`INSERT INTO user_interests (user_id, category_id) VALUES ($1, $2);`,
				user.UserID, categoryID); err != nil {
				return apperrors.NewAppError(500, "failed to insert user interest", err)
			}
		}
	}

	return r.Commit(ctx, tx)
}
