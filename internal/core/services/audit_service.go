package services

import (
	"context"

	"github.com/Anjos2/oportuniapp/internal/apperrors"
	"github.com/Anjos2/oportuniapp/internal/core/domain"
	portsrepo "github.com/Anjos2/oportuniapp/internal/core/ports/repositories"
	portssvc "github.com/Anjos2/oportuniapp/internal/core/ports/services"
)

// auditService implements the AuditSvcFacade interface
type auditService struct {
	BaseService
	auditRepo portsrepo.AuditRepository
}

// NewAuditService creates a new audit service with the provided dependencies
func NewAuditService(auditRepo portsrepo.AuditRepository) portssvc.AuditSvcFacade {
	return &auditService{auditRepo: auditRepo}
}

// Ensure auditService implements the AuditSvcFacade interface
var _ portssvc.AuditSvcFacade = (*auditService)(nil)

func (s *auditService) ListAuditEntries(ctx context.Context, actor domain.Actor, limit, offset int) ([]domain.AuditEntry, int, error) {
	if !actor.IsAdmin() {
		return nil, 0, apperrors.ErrForbidden
	}

	entries, total, err := s.auditRepo.ListAuditEntries(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list audit entries")
		return nil, 0, err
	}
	if entries == nil {
		entries = []domain.AuditEntry{}
	}
	return entries, total, nil
}
