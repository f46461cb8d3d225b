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

type ReportServiceTestSuite struct {
	suite.Suite
	mockRepo      *MockReportRepository
	mockOppRepo   *MockOpportunityRepository
	mockSuspender *MockOpportunitySuspender
	service       portssvc.ReportSvcFacade
}

func (suite *ReportServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReportRepository)
	suite.mockOppRepo = new(MockOpportunityRepository)
	suite.mockSuspender = new(MockOpportunitySuspender)
	suite.service = services.NewReportService(suite.mockRepo, suite.mockOppRepo, suite.mockSuspender)
}

func pendingReport() *domain.Report {
	return &domain.Report{
		ReportID:      uuid.NewString(),
		ReporterID:    uuid.NewString(),
		OpportunityID: uuid.NewString(),
		Reason:        domain.ReasonInappropriate,
		Status:        domain.ReportPending,
	}
}

// --- FileReport ---

func (suite *ReportServiceTestSuite) TestFile_Success() {
	ctx := context.Background()
	opportunity := activeOpportunity()
	reporterID := uuid.NewString()

	suite.mockOppRepo.On("FindOpportunityByID", ctx, opportunity.OpportunityID).Return(opportunity, nil).Once()
	suite.mockRepo.On("FindReportByReporter", ctx, reporterID, opportunity.OpportunityID).
		Return((*domain.Report)(nil), apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveReport", ctx, mock.MatchedBy(func(r domain.Report) bool {
		return r.ReporterID == reporterID && r.Status == domain.ReportPending
	})).Return(nil).Once()

	report, err := suite.service.FileReport(ctx, reporterID, opportunity.OpportunityID, domain.ReasonSpam, nil)

	suite.Require().NoError(err)
	suite.Equal(domain.ReportPending, report.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportServiceTestSuite) TestFile_UnknownReason() {
	ctx := context.Background()

	_, err := suite.service.FileReport(ctx, uuid.NewString(), uuid.NewString(), domain.ReportReason("clickbait"), nil)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockOppRepo.AssertNotCalled(suite.T(), "FindOpportunityByID")
}

func (suite *ReportServiceTestSuite) TestFile_OwnListing() {
	ctx := context.Background()
	opportunity := activeOpportunity()

	suite.mockOppRepo.On("FindOpportunityByID", ctx, opportunity.OpportunityID).Return(opportunity, nil).Once()

	_, err := suite.service.FileReport(ctx, opportunity.PublisherID, opportunity.OpportunityID, domain.ReasonMisleading, nil)

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveReport")
}

func (suite *ReportServiceTestSuite) TestFile_AlreadyReported() {
	ctx := context.Background()
	opportunity := activeOpportunity()
	reporterID := uuid.NewString()
	existing := pendingReport()

	suite.mockOppRepo.On("FindOpportunityByID", ctx, opportunity.OpportunityID).Return(opportunity, nil).Once()
	suite.mockRepo.On("FindReportByReporter", ctx, reporterID, opportunity.OpportunityID).Return(existing, nil).Once()

	_, err := suite.service.FileReport(ctx, reporterID, opportunity.OpportunityID, domain.ReasonSpam, nil)

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveReport")
}

// --- ResolveReport ---

func (suite *ReportServiceTestSuite) TestResolve_NonAdminForbidden() {
	ctx := context.Background()
	publisher := domain.Actor{UserID: uuid.NewString(), Role: domain.RolePublisher}

	_, err := suite.service.ResolveReport(ctx, uuid.NewString(), publisher, domain.ReportDismissed, nil, domain.ActionNone)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindReportByID")
}

func (suite *ReportServiceTestSuite) TestResolve_Dismiss() {
	ctx := context.Background()
	admin := adminActor()
	report := pendingReport()
	notes := "Sin mérito"

	suite.mockRepo.On("FindReportByID", ctx, report.ReportID).Return(report, nil).Once()
	suite.mockRepo.On("ResolveReport", ctx, mock.MatchedBy(func(r portsrepo.ReportResolution) bool {
		return r.FromStatus == domain.ReportPending && r.ToStatus == domain.ReportDismissed && r.ResolvedBy == admin.UserID
	}), mock.MatchedBy(func(e *domain.AuditEntry) bool {
		return e != nil && e.Action == domain.AuditActionResolveReport
	})).Return(nil).Once()

	resolved, err := suite.service.ResolveReport(ctx, report.ReportID, admin, domain.ReportDismissed, &notes, domain.ActionNone)

	suite.Require().NoError(err)
	suite.Equal(domain.ReportDismissed, resolved.Status)
	suite.Require().NotNil(resolved.ResolvedBy)
	suite.Equal(admin.UserID, *resolved.ResolvedBy)
	suite.mockSuspender.AssertNotCalled(suite.T(), "ForceSuspendOpportunity")
}

func (suite *ReportServiceTestSuite) TestResolve_SuspendCascades() {
	ctx := context.Background()
	admin := adminActor()
	report := pendingReport()

	suite.mockRepo.On("FindReportByID", ctx, report.ReportID).Return(report, nil).Once()
	suite.mockRepo.On("ResolveReport", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockSuspender.On("ForceSuspendOpportunity", ctx, report.OpportunityID, admin.UserID,
		"Publicación suspendida tras la revisión de un reporte").Return(nil).Once()

	resolved, err := suite.service.ResolveReport(ctx, report.ReportID, admin, domain.ReportActionTaken, nil, domain.ActionSuspend)

	suite.Require().NoError(err)
	suite.Equal(domain.ReportActionTaken, resolved.Status)
	suite.mockSuspender.AssertExpectations(suite.T())
}

func (suite *ReportServiceTestSuite) TestResolve_SuspendRequiresActionTaken() {
	ctx := context.Background()
	admin := adminActor()
	report := pendingReport()

	suite.mockRepo.On("FindReportByID", ctx, report.ReportID).Return(report, nil).Once()

	_, err := suite.service.ResolveReport(ctx, report.ReportID, admin, domain.ReportDismissed, nil, domain.ActionSuspend)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "ResolveReport")
}

func (suite *ReportServiceTestSuite) TestResolve_SuspensionFailureKeepsResolution() {
	ctx := context.Background()
	admin := adminActor()
	report := pendingReport()
	suspendErr := errors.New("listing gone")

	suite.mockRepo.On("FindReportByID", ctx, report.ReportID).Return(report, nil).Once()
	suite.mockRepo.On("ResolveReport", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockSuspender.On("ForceSuspendOpportunity", ctx, report.OpportunityID, admin.UserID, mock.AnythingOfType("string")).
		Return(suspendErr).Once()

	resolved, err := suite.service.ResolveReport(ctx, report.ReportID, admin, domain.ReportActionTaken, nil, domain.ActionSuspend)

	suite.Require().ErrorIs(err, suspendErr)
	// The committed resolution is still handed back.
	suite.Require().NotNil(resolved)
	suite.Equal(domain.ReportActionTaken, resolved.Status)
}

func (suite *ReportServiceTestSuite) TestResolve_AlreadyResolved() {
	ctx := context.Background()
	admin := adminActor()
	report := pendingReport()
	report.Status = domain.ReportDismissed

	suite.mockRepo.On("FindReportByID", ctx, report.ReportID).Return(report, nil).Once()

	_, err := suite.service.ResolveReport(ctx, report.ReportID, admin, domain.ReportActionTaken, nil, domain.ActionNone)

	suite.Require().ErrorIs(err, apperrors.ErrInvalidTransition)
}

func TestReportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportServiceTestSuite))
}
