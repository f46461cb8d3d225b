package services_test

import (
	"context"

	"github.com/Anjos2/oportuniapp/internal/core/domain"
	portsrepo "github.com/Anjos2/oportuniapp/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- Mock OpportunityRepository ---

type MockOpportunityRepository struct {
	mock.Mock
}

func (m *MockOpportunityRepository) FindOpportunityByID(ctx context.Context, opportunityID string) (*domain.Opportunity, error) {
	args := m.Called(ctx, opportunityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Opportunity), args.Error(1)
}

func (m *MockOpportunityRepository) ListActiveOpportunities(ctx context.Context, filter portsrepo.ListOpportunitiesFilter) ([]domain.Opportunity, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Opportunity), args.Int(1), args.Error(2)
}

func (m *MockOpportunityRepository) ListFeaturedOpportunities(ctx context.Context, limit int) ([]domain.Opportunity, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Opportunity), args.Error(1)
}

func (m *MockOpportunityRepository) ListOpportunitiesByPublisher(ctx context.Context, publisherID string, status *domain.OpportunityStatus, limit, offset int) ([]domain.Opportunity, int, error) {
	args := m.Called(ctx, publisherID, status, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Opportunity), args.Int(1), args.Error(2)
}

func (m *MockOpportunityRepository) ListOpportunitiesByStatus(ctx context.Context, status domain.OpportunityStatus, limit, offset int) ([]domain.Opportunity, int, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Opportunity), args.Int(1), args.Error(2)
}

func (m *MockOpportunityRepository) CountOpportunitiesByStatus(ctx context.Context, publisherID string) (map[domain.OpportunityStatus]int, error) {
	args := m.Called(ctx, publisherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.OpportunityStatus]int), args.Error(1)
}

func (m *MockOpportunityRepository) SaveOpportunity(ctx context.Context, opportunity domain.Opportunity) error {
	args := m.Called(ctx, opportunity)
	return args.Error(0)
}

func (m *MockOpportunityRepository) UpdateOpportunity(ctx context.Context, opportunity domain.Opportunity) error {
	args := m.Called(ctx, opportunity)
	return args.Error(0)
}

func (m *MockOpportunityRepository) TransitionOpportunityStatus(ctx context.Context, update portsrepo.OpportunityStatusUpdate, notification *domain.Notification, entry *domain.AuditEntry) error {
	args := m.Called(ctx, update, notification, entry)
	return args.Error(0)
}

func (m *MockOpportunityRepository) SetOpportunityFeatured(ctx context.Context, opportunityID string, featured bool) error {
	args := m.Called(ctx, opportunityID, featured)
	return args.Error(0)
}

func (m *MockOpportunityRepository) IncrementOpportunityViews(ctx context.Context, opportunityID string) error {
	args := m.Called(ctx, opportunityID)
	return args.Error(0)
}

func (m *MockOpportunityRepository) DeleteOpportunity(ctx context.Context, opportunityID string) error {
	args := m.Called(ctx, opportunityID)
	return args.Error(0)
}

func (m *MockOpportunityRepository) SaveOpportunityForUser(ctx context.Context, userID, opportunityID string) error {
	args := m.Called(ctx, userID, opportunityID)
	return args.Error(0)
}

func (m *MockOpportunityRepository) RemoveSavedOpportunity(ctx context.Context, userID, opportunityID string) error {
	args := m.Called(ctx, userID, opportunityID)
	return args.Error(0)
}

func (m *MockOpportunityRepository) ListSavedOpportunities(ctx context.Context, userID string, limit, offset int) ([]domain.Opportunity, int, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Opportunity), args.Int(1), args.Error(2)
}

func (m *MockOpportunityRepository) IsOpportunitySaved(ctx context.Context, userID, opportunityID string) (bool, error) {
	args := m.Called(ctx, userID, opportunityID)
	return args.Bool(0), args.Error(1)
}

// --- Mock ApplicationRepository ---

type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) FindApplicationByID(ctx context.Context, applicationID string) (*domain.Application, error) {
	args := m.Called(ctx, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *MockApplicationRepository) FindActiveApplication(ctx context.Context, applicantID, opportunityID string) (*domain.Application, error) {
	args := m.Called(ctx, applicantID, opportunityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *MockApplicationRepository) ListApplicationsByApplicant(ctx context.Context, applicantID string, status *domain.ApplicationStatus, limit, offset int) ([]domain.Application, int, error) {
	args := m.Called(ctx, applicantID, status, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Application), args.Int(1), args.Error(2)
}

func (m *MockApplicationRepository) ListApplicationsByOpportunity(ctx context.Context, opportunityID string, status *domain.ApplicationStatus, limit, offset int) ([]domain.Application, int, error) {
	args := m.Called(ctx, opportunityID, status, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Application), args.Int(1), args.Error(2)
}

func (m *MockApplicationRepository) CreateApplication(ctx context.Context, application domain.Application, notification *domain.Notification) error {
	args := m.Called(ctx, application, notification)
	return args.Error(0)
}

func (m *MockApplicationRepository) TransitionApplicationStatus(ctx context.Context, update portsrepo.ApplicationStatusUpdate, notification *domain.Notification) error {
	args := m.Called(ctx, update, notification)
	return args.Error(0)
}

// --- Mock ReportRepository ---

type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) FindReportByID(ctx context.Context, reportID string) (*domain.Report, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *MockReportRepository) FindReportByReporter(ctx context.Context, reporterID, opportunityID string) (*domain.Report, error) {
	args := m.Called(ctx, reporterID, opportunityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *MockReportRepository) ListReports(ctx context.Context, status *domain.ReportStatus, limit, offset int) ([]domain.Report, int, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Report), args.Int(1), args.Error(2)
}

func (m *MockReportRepository) ListReportsByOpportunity(ctx context.Context, opportunityID, excludeReportID string) ([]domain.Report, error) {
	args := m.Called(ctx, opportunityID, excludeReportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Report), args.Error(1)
}

func (m *MockReportRepository) SaveReport(ctx context.Context, report domain.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepository) ResolveReport(ctx context.Context, resolution portsrepo.ReportResolution, entry *domain.AuditEntry) error {
	args := m.Called(ctx, resolution, entry)
	return args.Error(0)
}

// --- Mock ExternalAccountRepository ---

type MockExternalAccountRepository struct {
	mock.Mock
}

func (m *MockExternalAccountRepository) FindExternalAccountByID(ctx context.Context, accountID string) (*domain.ExternalAccount, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExternalAccount), args.Error(1)
}

func (m *MockExternalAccountRepository) FindExternalAccountByEmail(ctx context.Context, email string) (*domain.ExternalAccount, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExternalAccount), args.Error(1)
}

func (m *MockExternalAccountRepository) ListExternalAccounts(ctx context.Context, status *domain.ExternalAccountStatus, limit, offset int) ([]domain.ExternalAccount, int, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.ExternalAccount), args.Int(1), args.Error(2)
}

func (m *MockExternalAccountRepository) SaveExternalAccount(ctx context.Context, account domain.ExternalAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockExternalAccountRepository) ResolveExternalAccount(ctx context.Context, resolution portsrepo.ExternalAccountResolution) error {
	args := m.Called(ctx, resolution)
	return args.Error(0)
}

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, role *domain.Role, limit, offset int) ([]domain.User, int, error) {
	args := m.Called(ctx, role, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.User), args.Int(1), args.Error(2)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUserProfile(ctx context.Context, user domain.User, skills *[]domain.SkillSelection, languages *[]domain.LanguageSelection, interests *[]string) error {
	args := m.Called(ctx, user, skills, languages, interests)
	return args.Error(0)
}

// --- Mock NotificationRepository ---

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) SaveNotification(ctx context.Context, notification domain.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListNotificationsByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Notification, int, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Notification), args.Int(1), args.Error(2)
}

func (m *MockNotificationRepository) MarkNotificationRead(ctx context.Context, notificationID, userID string) error {
	args := m.Called(ctx, notificationID, userID)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllNotificationsRead(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Mock AuditRepository ---

type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) SaveAuditEntry(ctx context.Context, entry domain.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) ListAuditEntries(ctx context.Context, limit, offset int) ([]domain.AuditEntry, int, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.AuditEntry), args.Int(1), args.Error(2)
}

// --- Mock OpportunitySuspender ---

type MockOpportunitySuspender struct {
	mock.Mock
}

func (m *MockOpportunitySuspender) ForceSuspendOpportunity(ctx context.Context, opportunityID, adminID, reason string) error {
	args := m.Called(ctx, opportunityID, adminID, reason)
	return args.Error(0)
}

// --- Mock CredentialProvisioner ---

type MockCredentialProvisioner struct {
	mock.Mock
}

func (m *MockCredentialProvisioner) ProvisionCredentials(ctx context.Context, account domain.ExternalAccount, tempPassword string) error {
	args := m.Called(ctx, account, tempPassword)
	return args.Error(0)
}
