package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Anjos2/oportuniapp/internal/apperrors"
	"github.com/Anjos2/oportuniapp/internal/core/domain"
	portsrepo "github.com/Anjos2/oportuniapp/internal/core/ports/repositories"
	portssvc "github.com/Anjos2/oportuniapp/internal/core/ports/services"
	"github.com/Anjos2/oportuniapp/internal/core/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// The moderation suite wires the real entity services over mocked
// repositories, so a command exercises the whole path down to the
// transition guards.
type ModerationServiceTestSuite struct {
	suite.Suite
	mockOppRepo     *MockOpportunityRepository
	mockAppRepo     *MockApplicationRepository
	mockReportRepo  *MockReportRepository
	mockAccountRepo *MockExternalAccountRepository
	mockUserRepo    *MockUserRepository
	mockAuditRepo   *MockAuditRepository
	service         portssvc.ModerationSvcFacade
}

func (suite *ModerationServiceTestSuite) SetupTest() {
	suite.mockOppRepo = new(MockOpportunityRepository)
	suite.mockAppRepo = new(MockApplicationRepository)
	suite.mockReportRepo = new(MockReportRepository)
	suite.mockAccountRepo = new(MockExternalAccountRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockAuditRepo = new(MockAuditRepository)

	opportunitySvc := services.NewOpportunityService(suite.mockOppRepo, suite.mockAppRepo, suite.mockAuditRepo)
	applicationSvc := services.NewApplicationService(suite.mockAppRepo, suite.mockOppRepo, suite.mockUserRepo)
	reportSvc := services.NewReportService(suite.mockReportRepo, suite.mockOppRepo, opportunitySvc)
	externalAccountSvc := services.NewExternalAccountService(suite.mockAccountRepo, suite.mockUserRepo, suite.mockAuditRepo, nil)

	suite.service = services.NewModerationService(opportunitySvc, applicationSvc, reportSvc, externalAccountSvc)
}

func (suite *ModerationServiceTestSuite) TestModerate_OpportunityTransitionOK() {
	ctx := context.Background()
	admin := adminActor()
	opportunity := &domain.Opportunity{
		OpportunityID: uuid.NewString(),
		PublisherID:   uuid.NewString(),
		Status:        domain.OpportunityPending,
	}

	suite.mockOppRepo.On("FindOpportunityByID", ctx, opportunity.OpportunityID).Return(opportunity, nil).Once()
	suite.mockOppRepo.On("TransitionOpportunityStatus", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	result := suite.service.Moderate(ctx, portssvc.ModerationCommand{
		Action:   portssvc.ModerateOpportunityTransition,
		TargetID: opportunity.OpportunityID,
		Actor:    admin,
		Status:   string(domain.OpportunityActive),
	})

	suite.True(result.OK)
	suite.Empty(result.ErrorKind)
}

func (suite *ModerationServiceTestSuite) TestModerate_InvalidTransitionKind() {
	ctx := context.Background()
	admin := adminActor()
	opportunity := &domain.Opportunity{
		OpportunityID: uuid.NewString(),
		PublisherID:   uuid.NewString(),
		Status:        domain.OpportunityFinished,
	}

	suite.mockOppRepo.On("FindOpportunityByID", ctx, opportunity.OpportunityID).Return(opportunity, nil).Once()

	result := suite.service.Moderate(ctx, portssvc.ModerationCommand{
		Action:   portssvc.ModerateOpportunityTransition,
		TargetID: opportunity.OpportunityID,
		Actor:    admin,
		Status:   string(domain.OpportunityActive),
	})

	suite.False(result.OK)
	suite.Equal("invalid_transition", result.ErrorKind)
	suite.NotEmpty(result.Message)
}

func (suite *ModerationServiceTestSuite) TestModerate_NotFoundKind() {
	ctx := context.Background()
	admin := adminActor()
	targetID := uuid.NewString()

	suite.mockOppRepo.On("FindOpportunityByID", ctx, targetID).
		Return((*domain.Opportunity)(nil), apperrors.ErrNotFound).Once()

	result := suite.service.Moderate(ctx, portssvc.ModerationCommand{
		Action:   portssvc.ModerateOpportunitySuspend,
		TargetID: targetID,
		Actor:    admin,
	})

	suite.False(result.OK)
	suite.Equal("not_found", result.ErrorKind)
}

func (suite *ModerationServiceTestSuite) TestModerate_SuspendForbiddenForPublisher() {
	ctx := context.Background()

	result := suite.service.Moderate(ctx, portssvc.ModerationCommand{
		Action:   portssvc.ModerateOpportunitySuspend,
		TargetID: uuid.NewString(),
		Actor:    publisherActor(),
	})

	suite.False(result.OK)
	suite.Equal("forbidden", result.ErrorKind)
	suite.mockOppRepo.AssertNotCalled(suite.T(), "FindOpportunityByID")
}

func (suite *ModerationServiceTestSuite) TestModerate_ValidationKind() {
	ctx := context.Background()
	admin := adminActor()
	report := pendingReport()

	suite.mockReportRepo.On("FindReportByID", ctx, report.ReportID).Return(report, nil).Once()

	result := suite.service.Moderate(ctx, portssvc.ModerationCommand{
		Action:      portssvc.ModerateReportResolve,
		TargetID:    report.ReportID,
		Actor:       admin,
		Status:      string(domain.ReportDismissed),
		Enforcement: domain.ActionSuspend,
	})

	suite.False(result.OK)
	suite.Equal("validation", result.ErrorKind)
	suite.Equal("suspension requires resolving as accion_tomada", result.Message)
}

func (suite *ModerationServiceTestSuite) TestModerate_ConflictKind() {
	ctx := context.Background()
	applicantID := uuid.NewString()
	application := &domain.Application{
		ApplicationID: uuid.NewString(),
		ApplicantID:   applicantID,
		Status:        domain.ApplicationAccepted,
	}

	suite.mockAppRepo.On("FindApplicationByID", ctx, application.ApplicationID).Return(application, nil).Once()

	result := suite.service.Moderate(ctx, portssvc.ModerationCommand{
		Action:   portssvc.ModerateApplicationWithdraw,
		TargetID: application.ApplicationID,
		Actor:    domain.Actor{UserID: applicantID, Role: domain.RoleUser},
	})

	suite.False(result.OK)
	suite.Equal("conflict", result.ErrorKind)
}

func (suite *ModerationServiceTestSuite) TestModerate_ReportResolveDefaultsToNoEnforcement() {
	ctx := context.Background()
	admin := adminActor()
	report := pendingReport()

	suite.mockReportRepo.On("FindReportByID", ctx, report.ReportID).Return(report, nil).Once()
	suite.mockReportRepo.On("ResolveReport", ctx, mock.MatchedBy(func(r portsrepo.ReportResolution) bool {
		return r.ToStatus == domain.ReportActionTaken
	}), mock.Anything).Return(nil).Once()

	result := suite.service.Moderate(ctx, portssvc.ModerationCommand{
		Action:   portssvc.ModerateReportResolve,
		TargetID: report.ReportID,
		Actor:    admin,
		Status:   string(domain.ReportActionTaken),
	})

	suite.True(result.OK)
	suite.mockOppRepo.AssertNotCalled(suite.T(), "TransitionOpportunityStatus")
}

func (suite *ModerationServiceTestSuite) TestModerate_InternalKindHidesDetails() {
	ctx := context.Background()
	admin := adminActor()
	account := pendingAccount()

	suite.mockAccountRepo.On("FindExternalAccountByID", ctx, account.ExternalAccountID).
		Return((*domain.ExternalAccount)(nil), errors.New("connection reset by peer")).Once()

	result := suite.service.Moderate(ctx, portssvc.ModerationCommand{
		Action:   portssvc.ModerateExternalAccountResolution,
		TargetID: account.ExternalAccountID,
		Actor:    admin,
		Status:   string(domain.ExternalAccountApproved),
	})

	suite.False(result.OK)
	suite.Equal("internal", result.ErrorKind)
	suite.Equal("internal error", result.Message)
}

func (suite *ModerationServiceTestSuite) TestModerate_UnknownAction() {
	ctx := context.Background()

	result := suite.service.Moderate(ctx, portssvc.ModerationCommand{
		Action:   portssvc.ModerationAction("escalate"),
		TargetID: uuid.NewString(),
		Actor:    adminActor(),
	})

	suite.False(result.OK)
	suite.Equal("validation", result.ErrorKind)
}

func TestModerationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ModerationServiceTestSuite))
}
