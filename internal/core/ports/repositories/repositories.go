package repositories

// RepositoryProvider bundles all repository implementations for service
// container construction.
type RepositoryProvider struct {
	OpportunityRepo     OpportunityRepositoryFacade
	ApplicationRepo     ApplicationRepositoryFacade
	ReportRepo          ReportRepositoryFacade
	ExternalAccountRepo ExternalAccountRepositoryFacade
	NotificationRepo    NotificationRepository
	AuditRepo           AuditRepository
	UserRepo            UserRepositoryFacade
}
