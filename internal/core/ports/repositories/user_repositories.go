package repositories

import (
	"context"

	"github.com/Anjos2/oportuniapp/internal/core/domain"
)

// UserReader defines read operations for user data.
type UserReader interface {
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	ListUsers(ctx context.Context, role *domain.Role, limit, offset int) ([]domain.User, int, error)
}

// UserWriter defines write operations for user data.
type UserWriter interface {
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUserProfile writes the profile fields and, for each non-nil
	// association set, replaces the user's stored set wholesale. The whole
	// update runs in one transaction and rolls back on any failure.
	UpdateUserProfile(ctx context.Context, user domain.User, skills *[]domain.SkillSelection, languages *[]domain.LanguageSelection, interests *[]string) error
}

// UserRepositoryFacade combines all user repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
