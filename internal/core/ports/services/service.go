package services

// ServiceContainer bundles every service implementation for handler
// registration.
type ServiceContainer struct {
	OpportunitySvc     OpportunitySvcFacade
	ApplicationSvc     ApplicationSvcFacade
	ReportSvc          ReportSvcFacade
	ExternalAccountSvc ExternalAccountSvcFacade
	NotificationSvc    NotificationSvcFacade
	UserSvc            UserSvcFacade
	AuditSvc           AuditSvcFacade
	TokenSvc           TokenSvcFacade
	ModerationSvc      ModerationSvcFacade
}
