package services

import (
	portsrepo "github.com/Anjos2/oportuniapp/internal/core/ports/repositories"
	portssvc "github.com/Anjos2/oportuniapp/internal/core/ports/services"
	"github.com/Anjos2/oportuniapp/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, provisioner portssvc.CredentialProvisioner) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Opportunity service first since report resolution suspends through it
	container.OpportunitySvc = NewOpportunityService(
		repos.OpportunityRepo,
		repos.ApplicationRepo,
		repos.AuditRepo,
	)

	container.ApplicationSvc = NewApplicationService(
		repos.ApplicationRepo,
		repos.OpportunityRepo,
		repos.UserRepo,
	)

	container.ReportSvc = NewReportService(
		repos.ReportRepo,
		repos.OpportunityRepo,
		container.OpportunitySvc,
	)

	container.ExternalAccountSvc = NewExternalAccountService(
		repos.ExternalAccountRepo,
		repos.UserRepo,
		repos.AuditRepo,
		provisioner,
	)

	container.NotificationSvc = NewNotificationService(repos.NotificationRepo)
	container.UserSvc = NewUserService(repos.UserRepo, repos.NotificationRepo, repos.AuditRepo)
	container.AuditSvc = NewAuditService(repos.AuditRepo)

	container.ModerationSvc = NewModerationService(
		container.OpportunitySvc,
		container.ApplicationSvc,
		container.ReportSvc,
		container.ExternalAccountSvc,
	)

	container.TokenSvc = NewTokenService(cfg)

	return container
}
