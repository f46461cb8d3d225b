package services

import (
	"context"
	"time"

	"github.com/Anjos2/oportuniapp/internal/core/domain"
	"github.com/Anjos2/oportuniapp/internal/dto"
)

// TokenSvcFacade defines the interface for token management services.
type TokenSvcFacade interface {
	// GenerateAccessToken signs a JWT carrying the user's identity and role.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}

// UserSvcFacade covers registration, authentication and profile management.
type UserSvcFacade interface {
	RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)
	// AuthenticateUser verifies credentials and records the login in the
	// audit trail. Suspended accounts are refused.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, patch domain.ProfilePatch) (*domain.User, error)
	ListUsers(ctx context.Context, actor domain.Actor, role *domain.Role, limit, offset int) ([]domain.User, int, error)
}

// AuditSvcFacade is the admin-only read surface of the audit trail.
type AuditSvcFacade interface {
	ListAuditEntries(ctx context.Context, actor domain.Actor, limit, offset int) ([]domain.AuditEntry, int, error)
}
