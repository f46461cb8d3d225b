package services

import (
	"context"
	"errors"
	"fmt"
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

// externalAccountService implements the ExternalAccountSvcFacade interface
type externalAccountService struct {
	BaseService
	accountRepo portsrepo.ExternalAccountRepositoryFacade
	userRepo    portsrepo.UserRepositoryFacade
	auditRepo   portsrepo.AuditRepository
	provisioner portssvc.CredentialProvisioner
}

// NewExternalAccountService creates a new external account service with the provided dependencies
func NewExternalAccountService(
	accountRepo portsrepo.ExternalAccountRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
	auditRepo portsrepo.AuditRepository,
	provisioner portssvc.CredentialProvisioner,
) portssvc.ExternalAccountSvcFacade {
	return &externalAccountService{
		accountRepo: accountRepo,
		userRepo:    userRepo,
		auditRepo:   auditRepo,
		provisioner: provisioner,
	}
}

// Ensure externalAccountService implements the ExternalAccountSvcFacade interface
var _ portssvc.ExternalAccountSvcFacade = (*externalAccountService)(nil)

// RequestExternalAccount registers an organization into the review queue.
func (s *externalAccountService) RequestExternalAccount(ctx context.Context, req dto.CreateExternalAccountRequest) (*domain.ExternalAccount, error) {
	account, err := s.buildAccount(req, domain.ExternalAccountPending)
	if err != nil {
		return nil, err
	}

	if err := s.accountRepo.SaveExternalAccount(ctx, *account); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save external account request",
				slog.String("email", req.Email))
		}
		return nil, err
	}

	s.LogInfo(ctx, "External account requested",
		slog.String("external_account_id", account.ExternalAccountID),
		slog.String("organization", account.OrganizationName))
	return account, nil
}

// CreateApprovedExternalAccount is the admin path: the account skips review
// and credentials are provisioned immediately.
func (s *externalAccountService) CreateApprovedExternalAccount(ctx context.Context, actor domain.Actor, req dto.CreateExternalAccountRequest) (*domain.ExternalAccount, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	account, err := s.buildAccount(req, domain.ExternalAccountApproved)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	account.ApprovedBy = &actor.UserID
	account.ApprovedAt = &now

	if err := s.accountRepo.SaveExternalAccount(ctx, *account); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save approved external account",
				slog.String("email", req.Email))
		}
		return nil, err
	}

	if err := s.provisionPublisher(ctx, *account); err != nil {
		s.LogError(ctx, err, "External account created but provisioning failed",
			slog.String("external_account_id", account.ExternalAccountID))
		return account, fmt.Errorf("account created but credential provisioning failed: %w", err)
	}

	s.recordAudit(ctx, actor.UserID, domain.AuditActionCreate, account.ExternalAccountID,
		map[string]any{"status": account.Status, "organization": account.OrganizationName})

	return account, nil
}

// ResolveExternalAccount moves an account through its approval workflow.
func (s *externalAccountService) ResolveExternalAccount(ctx context.Context, accountID string, actor domain.Actor, requested domain.ExternalAccountStatus, rejectionReason *string) (*domain.ExternalAccount, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	account, err := s.accountRepo.FindExternalAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if !domain.ExternalAccountTransitionAllowed(actor.Role, account.Status, requested) {
		return nil, fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidTransition, account.Status, requested)
	}
	if requested == domain.ExternalAccountRejected && rejectionReason == nil {
		return nil, apperrors.NewValidationFailedError("rejection requires a reason")
	}

	now := time.Now()
	resolution := portsrepo.ExternalAccountResolution{
		ExternalAccountID: accountID,
		FromStatus:        account.Status,
		ToStatus:          requested,
		RejectionReason:   rejectionReason,
		ApprovedBy:        actor.UserID,
		ApprovedAt:        now,
	}

	if err := s.accountRepo.ResolveExternalAccount(ctx, resolution); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to resolve external account",
				slog.String("external_account_id", accountID),
				slog.String("to", string(requested)))
		}
		return nil, err
	}

	account.Status = requested
	account.RejectionReason = rejectionReason
	account.ApprovedBy = &actor.UserID
	account.ApprovedAt = &now

	s.recordAudit(ctx, actor.UserID, domain.AuditActionAdminUpdate, accountID,
		map[string]any{"status": requested, "rejectionReason": rejectionReason})

	if requested == domain.ExternalAccountApproved {
		if err := s.provisionPublisher(ctx, *account); err != nil {
			s.LogError(ctx, err, "External account approved but provisioning failed",
				slog.String("external_account_id", accountID))
			return account, fmt.Errorf("account approved but credential provisioning failed: %w", err)
		}
	}

	s.LogInfo(ctx, "External account resolved",
		slog.String("external_account_id", accountID),
		slog.String("to", string(requested)))
	return account, nil
}

func (s *externalAccountService) GetExternalAccount(ctx context.Context, accountID string, actor domain.Actor) (*domain.ExternalAccount, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	return s.accountRepo.FindExternalAccountByID(ctx, accountID)
}

func (s *externalAccountService) ListExternalAccounts(ctx context.Context, actor domain.Actor, status *domain.ExternalAccountStatus, limit, offset int) ([]domain.ExternalAccount, int, error) {
	if !actor.IsAdmin() {
		return nil, 0, apperrors.ErrForbidden
	}

	accounts, total, err := s.accountRepo.ListExternalAccounts(ctx, status, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list external accounts")
		return nil, 0, err
	}
	if accounts == nil {
		accounts = []domain.ExternalAccount{}
	}
	return accounts, total, nil
}

func (s *externalAccountService) buildAccount(req dto.CreateExternalAccountRequest, status domain.ExternalAccountStatus) (*domain.ExternalAccount, error) {
	return &domain.ExternalAccount{
		ExternalAccountID:  uuid.NewString(),
		OrganizationName:   req.OrganizationName,
		RUC:                req.RUC,
		RepresentativeName: req.RepresentativeName,
		Email:              req.Email,
		Phone:              req.Phone,
		EntityType:         req.EntityType,
		Description:        req.Description,
		Website:            req.Website,
		Status:             status,
		CreatedAt:          time.Now(),
	}, nil
}

// provisionPublisher creates the publisher login for an approved
// organization and hands the temporary password to the provisioner.
func (s *externalAccountService) provisionPublisher(ctx context.Context, account domain.ExternalAccount) error {
	existing, err := s.userRepo.FindUserByEmail(ctx, account.Email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	if existing != nil {
		// The login already exists, nothing to provision.
		return nil
	}

	tempPassword, err := utils.GenerateSecureRandomString(8)
	if err != nil {
		return fmt.Errorf("failed to generate temporary password: %w", err)
	}
	hash, err := utils.HashPassword(tempPassword)
	if err != nil {
		return fmt.Errorf("failed to hash temporary password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Email:        account.Email,
		PasswordHash: hash,
		Name:         account.OrganizationName,
		Role:         domain.RolePublisher,
		Status:       domain.UserActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return err
	}

	if s.provisioner == nil {
		s.LogDebug(ctx, "No credential provisioner configured",
			slog.String("external_account_id", account.ExternalAccountID))
		return nil
	}
	return s.provisioner.ProvisionCredentials(ctx, account, tempPassword)
}

func (s *externalAccountService) recordAudit(ctx context.Context, actorID, action, entityID string, values map[string]any) {
	entry := domain.AuditEntry{
		AuditEntryID: uuid.NewString(),
		ActorID:      actorID,
		Action:       action,
		Entity:       string(domain.KindExternalAccount),
		EntityID:     entityID,
		NewValues:    marshalAuditValues(values),
		CreatedAt:    time.Now(),
	}
	if err := s.auditRepo.SaveAuditEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to record audit entry",
			slog.String("entity_id", entityID),
			slog.String("action", action))
	}
}
