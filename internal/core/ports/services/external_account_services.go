package services

import (
	"context"

	"github.com/Anjos2/oportuniapp/internal/core/domain"
	"github.com/Anjos2/oportuniapp/internal/dto"
)

// CredentialProvisioner hands login credentials to an approved external
// organization. Implementations deliver out of band (email today).
type CredentialProvisioner interface {
	ProvisionCredentials(ctx context.Context, account domain.ExternalAccount, tempPassword string) error
}

// ExternalAccountSvcFacade is the complete external account surface.
type ExternalAccountSvcFacade interface {
	// RequestExternalAccount registers an organization into the review
	// queue (status pendiente).
	RequestExternalAccount(ctx context.Context, req dto.CreateExternalAccountRequest) (*domain.ExternalAccount, error)
	// CreateApprovedExternalAccount is the admin path: the account is born
	// aprobada and credentials are provisioned immediately.
	CreateApprovedExternalAccount(ctx context.Context, actor domain.Actor, req dto.CreateExternalAccountRequest) (*domain.ExternalAccount, error)
	// ResolveExternalAccount moves an account through its approval
	// workflow. Approval triggers credential provisioning; rejection
	// requires a reason.
	ResolveExternalAccount(ctx context.Context, accountID string, actor domain.Actor, requested domain.ExternalAccountStatus, rejectionReason *string) (*domain.ExternalAccount, error)
	GetExternalAccount(ctx context.Context, accountID string, actor domain.Actor) (*domain.ExternalAccount, error)
	ListExternalAccounts(ctx context.Context, actor domain.Actor, status *domain.ExternalAccountStatus, limit, offset int) ([]domain.ExternalAccount, int, error)
}
