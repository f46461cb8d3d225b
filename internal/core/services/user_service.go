package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Anjos2/oportuniapp/internal/apperrors"
	"github.com/Anjos2/oportuniapp/internal/core/domain"
	portsrepo "github.com/Anjos2/oportuniapp/internal/core/ports/repositories"
	portssvc "github.com/Anjos2/oportuniapp/internal/core/ports/services"
	"github.com/Anjos2/oportuniapp/internal/dto"
	"github.com/Anjos2/oportuniapp/internal/utils"
	"github.com/google/uuid"
)

// userService implements the UserSvcFacade interface
type userService struct {
	BaseService
	userRepo         portsrepo.UserRepositoryFacade
	notificationRepo portsrepo.NotificationRepository
	auditRepo        portsrepo.AuditRepository
}

// NewUserService creates a new user service with the provided dependencies
func NewUserService(
	userRepo portsrepo.UserRepositoryFacade,
	notificationRepo portsrepo.NotificationRepository,
	auditRepo portsrepo.AuditRepository,
) portssvc.UserSvcFacade {
	return &userService{
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		auditRepo:        auditRepo,
	}
}

// Ensure userService implements the UserSvcFacade interface
var _ portssvc.UserSvcFacade = (*userService)(nil)

// RegisterUser creates a member account and drops the welcome notification.
func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	existing, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("an account with this email already exists")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, err
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Role:         domain.RoleUser,
		Status:       domain.UserActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save user",
				slog.String("email", req.Email))
		}
		return nil, err
	}

	welcome := domain.Notification{
		NotificationID: uuid.NewString(),
		UserID:         user.UserID,
		Title:          "¡Bienvenido a OportuniApp!",
		Message:        "Completa tu perfil para recibir oportunidades a tu medida.",
		Category:       domain.NotificationInfo,
		CreatedAt:      now,
	}
	if err := s.notificationRepo.SaveNotification(ctx, welcome); err != nil {
		// The account exists; the welcome message is best effort.
		s.LogError(ctx, err, "Failed to save welcome notification",
			slog.String("user_id", user.UserID))
	}

	s.recordAudit(ctx, user.UserID, domain.AuditActionCreate, user.UserID,
		map[string]any{"email": user.Email, "role": user.Role})

	s.LogInfo(ctx, "User registered",
		slog.String("user_id", user.UserID))
	return &user, nil
}

// AuthenticateUser verifies credentials and records the login.
func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Indistinguishable from a bad password.
			return nil, apperrors.ErrForbidden
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrForbidden
	}
	if user.Status == domain.UserSuspended {
		return nil, apperrors.NewAppError(403, "account is suspended", apperrors.ErrForbidden)
	}

	s.recordAudit(ctx, user.UserID, domain.AuditActionLogin, user.UserID, nil)

	s.LogInfo(ctx, "User authenticated",
		slog.String("user_id", user.UserID))
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// UpdateProfile merges the patch and replaces association sets in one
// repository transaction.
func (s *userService) UpdateProfile(ctx context.Context, userID string, patch domain.ProfilePatch) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	patch.Apply(user)
	user.UpdatedAt = time.Now()

	if err := s.userRepo.UpdateUserProfile(ctx, *user, patch.Skills, patch.Languages, patch.Interests); err != nil {
		s.LogError(ctx, err, "Failed to update profile",
			slog.String("user_id", userID))
		return nil, err
	}

	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, actor domain.Actor, role *domain.Role, limit, offset int) ([]domain.User, int, error) {
	if !actor.IsAdmin() {
		return nil, 0, apperrors.ErrForbidden
	}

	users, total, err := s.userRepo.ListUsers(ctx, role, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users")
		return nil, 0, err
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, total, nil
}

func (s *userService) recordAudit(ctx context.Context, actorID, action, entityID string, values map[string]any) {
	entry := domain.AuditEntry{
		AuditEntryID: uuid.NewString(),
		ActorID:      actorID,
		Action:       action,
		Entity:       "users",
		EntityID:     entityID,
		CreatedAt:    time.Now(),
	}
	if values != nil {
		entry.NewValues = marshalAuditValues(values)
	}
	if err := s.auditRepo.SaveAuditEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to record audit entry",
			slog.String("entity_id", entityID),
			slog.String("action", action))
	}
}
