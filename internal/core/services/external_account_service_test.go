package services_test

import (
	"context"
	"testing"

	"github.com/Anjos2/oportuniapp/internal/apperrors"
	"github.com/Anjos2/oportuniapp/internal/core/domain"
	portsrepo "github.com/Anjos2/oportuniapp/internal/core/ports/repositories"
	portssvc "github.com/Anjos2/oportuniapp/internal/core/ports/services"
	"github.com/Anjos2/oportuniapp/internal/core/services"
	"github.com/Anjos2/oportuniapp/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ExternalAccountServiceTestSuite struct {
	suite.Suite
	mockRepo        *MockExternalAccountRepository
	mockUserRepo    *MockUserRepository
	mockAuditRepo   *MockAuditRepository
	mockProvisioner *MockCredentialProvisioner
	service         portssvc.ExternalAccountSvcFacade
}

func (suite *ExternalAccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockExternalAccountRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockAuditRepo = new(MockAuditRepository)
	suite.mockProvisioner = new(MockCredentialProvisioner)
	suite.service = services.NewExternalAccountService(suite.mockRepo, suite.mockUserRepo, suite.mockAuditRepo, suite.mockProvisioner)
}

func accountRequest() dto.CreateExternalAccountRequest {
	return dto.CreateExternalAccountRequest{
		OrganizationName:   "ONG Horizonte",
		RUC:                strPtr("20123456789"),
		RepresentativeName: "María Quispe",
		Email:              "contacto@horizonte.org",
		EntityType:         "ong",
	}
}

func pendingAccount() *domain.ExternalAccount {
	return &domain.ExternalAccount{
		ExternalAccountID: uuid.NewString(),
		OrganizationName:  "ONG Horizonte",
		Email:             "contacto@horizonte.org",
		Status:            domain.ExternalAccountPending,
	}
}

// --- RequestExternalAccount ---

func (suite *ExternalAccountServiceTestSuite) TestRequest_EntersPendingQueue() {
	ctx := context.Background()

	suite.mockRepo.On("SaveExternalAccount", ctx, mock.MatchedBy(func(a domain.ExternalAccount) bool {
		return a.Status == domain.ExternalAccountPending && a.Email == "contacto@horizonte.org"
	})).Return(nil).Once()

	account, err := suite.service.RequestExternalAccount(ctx, accountRequest())

	suite.Require().NoError(err)
	suite.Equal(domain.ExternalAccountPending, account.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ExternalAccountServiceTestSuite) TestRequest_DuplicateEmail() {
	ctx := context.Background()

	suite.mockRepo.On("SaveExternalAccount", ctx, mock.Anything).
		Return(apperrors.NewAppError(409, "email already registered", apperrors.ErrDuplicate)).Once()

	_, err := suite.service.RequestExternalAccount(ctx, accountRequest())

	suite.Require().ErrorIs(err, apperrors.ErrDuplicate)
}

// --- CreateApprovedExternalAccount ---

func (suite *ExternalAccountServiceTestSuite) TestCreateApproved_ProvisionsImmediately() {
	ctx := context.Background()
	admin := adminActor()
	req := accountRequest()

	suite.mockRepo.On("SaveExternalAccount", ctx, mock.MatchedBy(func(a domain.ExternalAccount) bool {
		return a.Status == domain.ExternalAccountApproved && a.ApprovedBy != nil && *a.ApprovedBy == admin.UserID
	})).Return(nil).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, req.Email).
		Return((*domain.User)(nil), apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Email == req.Email && u.Role == domain.RolePublisher && u.Status == domain.UserActive
	})).Return(nil).Once()
	suite.mockProvisioner.On("ProvisionCredentials", ctx, mock.Anything, mock.AnythingOfType("string")).Return(nil).Once()
	suite.mockAuditRepo.On("SaveAuditEntry", ctx, mock.AnythingOfType("domain.AuditEntry")).Return(nil).Once()

	account, err := suite.service.CreateApprovedExternalAccount(ctx, admin, req)

	suite.Require().NoError(err)
	suite.Equal(domain.ExternalAccountApproved, account.Status)
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockProvisioner.AssertExpectations(suite.T())
}

func (suite *ExternalAccountServiceTestSuite) TestCreateApproved_NonAdminForbidden() {
	ctx := context.Background()

	_, err := suite.service.CreateApprovedExternalAccount(ctx, publisherActor(), accountRequest())

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveExternalAccount")
}

// --- ResolveExternalAccount ---

func (suite *ExternalAccountServiceTestSuite) TestResolve_ApprovalProvisionsPublisher() {
	ctx := context.Background()
	admin := adminActor()
	account := pendingAccount()

	suite.mockRepo.On("FindExternalAccountByID", ctx, account.ExternalAccountID).Return(account, nil).Once()
	suite.mockRepo.On("ResolveExternalAccount", ctx, mock.MatchedBy(func(r portsrepo.ExternalAccountResolution) bool {
		return r.FromStatus == domain.ExternalAccountPending &&
			r.ToStatus == domain.ExternalAccountApproved &&
			r.ApprovedBy == admin.UserID
	})).Return(nil).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, account.Email).
		Return((*domain.User)(nil), apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Email == account.Email && u.Role == domain.RolePublisher
	})).Return(nil).Once()
	suite.mockProvisioner.On("ProvisionCredentials", ctx, mock.Anything, mock.AnythingOfType("string")).Return(nil).Once()
	suite.mockAuditRepo.On("SaveAuditEntry", ctx, mock.AnythingOfType("domain.AuditEntry")).Return(nil).Once()

	resolved, err := suite.service.ResolveExternalAccount(ctx, account.ExternalAccountID, admin, domain.ExternalAccountApproved, nil)

	suite.Require().NoError(err)
	suite.Equal(domain.ExternalAccountApproved, resolved.Status)
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockProvisioner.AssertExpectations(suite.T())
}

func (suite *ExternalAccountServiceTestSuite) TestResolve_ApprovalWithExistingLoginSkipsProvisioning() {
	ctx := context.Background()
	admin := adminActor()
	account := pendingAccount()
	existing := &domain.User{UserID: uuid.NewString(), Email: account.Email, Role: domain.RolePublisher}

	suite.mockRepo.On("FindExternalAccountByID", ctx, account.ExternalAccountID).Return(account, nil).Once()
	suite.mockRepo.On("ResolveExternalAccount", ctx, mock.Anything).Return(nil).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, account.Email).Return(existing, nil).Once()
	suite.mockAuditRepo.On("SaveAuditEntry", ctx, mock.AnythingOfType("domain.AuditEntry")).Return(nil).Once()

	_, err := suite.service.ResolveExternalAccount(ctx, account.ExternalAccountID, admin, domain.ExternalAccountApproved, nil)

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser")
	suite.mockProvisioner.AssertNotCalled(suite.T(), "ProvisionCredentials")
}

func (suite *ExternalAccountServiceTestSuite) TestResolve_SuspendedIsTerminal() {
	ctx := context.Background()
	admin := adminActor()
	account := pendingAccount()
	account.Status = domain.ExternalAccountSuspended

	suite.mockRepo.On("FindExternalAccountByID", ctx, account.ExternalAccountID).Return(account, nil).Once()

	_, err := suite.service.ResolveExternalAccount(ctx, account.ExternalAccountID, admin, domain.ExternalAccountApproved, nil)

	suite.Require().ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.mockRepo.AssertNotCalled(suite.T(), "ResolveExternalAccount")
}

func (suite *ExternalAccountServiceTestSuite) TestResolve_RejectionRequiresReason() {
	ctx := context.Background()
	admin := adminActor()
	account := pendingAccount()

	suite.mockRepo.On("FindExternalAccountByID", ctx, account.ExternalAccountID).Return(account, nil).Once()

	_, err := suite.service.ResolveExternalAccount(ctx, account.ExternalAccountID, admin, domain.ExternalAccountRejected, nil)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "ResolveExternalAccount")
}

func (suite *ExternalAccountServiceTestSuite) TestResolve_RejectedCannotBeApproved() {
	ctx := context.Background()
	admin := adminActor()
	account := pendingAccount()
	account.Status = domain.ExternalAccountRejected

	suite.mockRepo.On("FindExternalAccountByID", ctx, account.ExternalAccountID).Return(account, nil).Once()

	_, err := suite.service.ResolveExternalAccount(ctx, account.ExternalAccountID, admin, domain.ExternalAccountApproved, nil)

	suite.Require().ErrorIs(err, apperrors.ErrInvalidTransition)
}

func (suite *ExternalAccountServiceTestSuite) TestResolve_NonAdminForbidden() {
	ctx := context.Background()

	_, err := suite.service.ResolveExternalAccount(ctx, uuid.NewString(), publisherActor(), domain.ExternalAccountApproved, nil)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindExternalAccountByID")
}

func TestExternalAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExternalAccountServiceTestSuite))
}
