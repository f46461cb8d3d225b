package repositories

import (
	"context"
	"time"

	"github.com/Anjos2/oportuniapp/internal/core/domain"
)

// ExternalAccountResolution describes the guarded onboarding decision write.
type ExternalAccountResolution struct {
	ExternalAccountID string
	FromStatus        domain.ExternalAccountStatus
	ToStatus          domain.ExternalAccountStatus
	RejectionReason   *string
	ApprovedBy        string
	ApprovedAt        time.Time
}

// ExternalAccountReader defines read operations for organization accounts.
type ExternalAccountReader interface {
	FindExternalAccountByID(ctx context.Context, accountID string) (*domain.ExternalAccount, error)
	FindExternalAccountByEmail(ctx context.Context, email string) (*domain.ExternalAccount, error)
	ListExternalAccounts(ctx context.Context, status *domain.ExternalAccountStatus, limit, offset int) ([]domain.ExternalAccount, int, error)
}

// ExternalAccountWriter defines write operations for organization accounts.
type ExternalAccountWriter interface {
	SaveExternalAccount(ctx context.Context, account domain.ExternalAccount) error
	ResolveExternalAccount(ctx context.Context, resolution ExternalAccountResolution) error
}

// ExternalAccountRepositoryFacade combines both sides.
type ExternalAccountRepositoryFacade interface {
	ExternalAccountReader
	ExternalAccountWriter
}
