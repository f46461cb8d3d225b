package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/Anjos2/oportuniapp/internal/apperrors"
	"github.com/Anjos2/oportuniapp/internal/core/domain"
	portsrepo "github.com/Anjos2/oportuniapp/internal/core/ports/repositories"
	portssvc "github.com/Anjos2/oportuniapp/internal/core/ports/services"
	"github.com/Anjos2/oportuniapp/internal/core/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ApplicationServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockApplicationRepository
	mockOppRepo  *MockOpportunityRepository
	mockUserRepo *MockUserRepository
	service      portssvc.ApplicationSvcFacade
}

func (suite *ApplicationServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockApplicationRepository)
	suite.mockOppRepo = new(MockOpportunityRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewApplicationService(suite.mockRepo, suite.mockOppRepo, suite.mockUserRepo)
}

func activeOpportunity() *domain.Opportunity {
	return &domain.Opportunity{
		OpportunityID: uuid.NewString(),
		PublisherID:   uuid.NewString(),
		Title:         "Beca de intercambio",
		Status:        domain.OpportunityActive,
	}
}

// --- SubmitApplication ---

func (suite *ApplicationServiceTestSuite) TestSubmit_Success() {
	ctx := context.Background()
	opportunity := activeOpportunity()
	applicantID := uuid.NewString()
	applicant := &domain.User{UserID: applicantID, Name: "Ana", Email: "ana@example.com"}

	suite.mockOppRepo.On("FindOpportunityByID", ctx, opportunity.OpportunityID).Return(opportunity, nil).Once()
	suite.mockRepo.On("FindActiveApplication", ctx, applicantID, opportunity.OpportunityID).
		Return((*domain.Application)(nil), apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, applicantID).Return(applicant, nil).Once()
	suite.mockRepo.On("CreateApplication", ctx, mock.MatchedBy(func(a domain.Application) bool {
		return a.ApplicantID == applicantID && a.Status == domain.ApplicationPending
	}), mock.MatchedBy(func(n *domain.Notification) bool {
		return n != nil && n.UserID == opportunity.PublisherID && n.Category == domain.NotificationApplication
	})).Return(nil).Once()

	application, err := suite.service.SubmitApplication(ctx, applicantID, opportunity.OpportunityID, nil)

	suite.Require().NoError(err)
	suite.Equal(domain.ApplicationPending, application.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ApplicationServiceTestSuite) TestSubmit_InactiveOpportunity() {
	ctx := context.Background()
	opportunity := activeOpportunity()
	opportunity.Status = domain.OpportunityPaused

	suite.mockOppRepo.On("FindOpportunityByID", ctx, opportunity.OpportunityID).Return(opportunity, nil).Once()

	_, err := suite.service.SubmitApplication(ctx, uuid.NewString(), opportunity.OpportunityID, nil)

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertNotCalled(suite.T(), "CreateApplication")
}

func (suite *ApplicationServiceTestSuite) TestSubmit_OwnListing() {
	ctx := context.Background()
	opportunity := activeOpportunity()

	suite.mockOppRepo.On("FindOpportunityByID", ctx, opportunity.OpportunityID).Return(opportunity, nil).Once()

	_, err := suite.service.SubmitApplication(ctx, opportunity.PublisherID, opportunity.OpportunityID, nil)

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
}

func (suite *ApplicationServiceTestSuite) TestSubmit_DeadlinePassed() {
	ctx := context.Background()
	opportunity := activeOpportunity()
	past := time.Now().Add(-24 * time.Hour)
	opportunity.ApplicationDeadline = &past

	suite.mockOppRepo.On("FindOpportunityByID", ctx, opportunity.OpportunityID).Return(opportunity, nil).Once()

	_, err := suite.service.SubmitApplication(ctx, uuid.NewString(), opportunity.OpportunityID, nil)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ApplicationServiceTestSuite) TestSubmit_LiveApplicationBlocks() {
	ctx := context.Background()
	opportunity := activeOpportunity()
	applicantID := uuid.NewString()
	existing := &domain.Application{
		ApplicationID: uuid.NewString(),
		ApplicantID:   applicantID,
		OpportunityID: opportunity.OpportunityID,
		Status:        domain.ApplicationPending,
	}

	suite.mockOppRepo.On("FindOpportunityByID", ctx, opportunity.OpportunityID).Return(opportunity, nil).Once()
	suite.mockRepo.On("FindActiveApplication", ctx, applicantID, opportunity.OpportunityID).Return(existing, nil).Once()

	_, err := suite.service.SubmitApplication(ctx, applicantID, opportunity.OpportunityID, nil)

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertNotCalled(suite.T(), "CreateApplication")
}

func (suite *ApplicationServiceTestSuite) TestSubmit_WithdrawnDoesNotBlock() {
	ctx := context.Background()
	opportunity := activeOpportunity()
	applicantID := uuid.NewString()
	applicant := &domain.User{UserID: applicantID, Name: "Luis"}

	// The repository only surfaces live applications, so a previously withdrawn
	// one reads as not found.
	suite.mockOppRepo.On("FindOpportunityByID", ctx, opportunity.OpportunityID).Return(opportunity, nil).Once()
	suite.mockRepo.On("FindActiveApplication", ctx, applicantID, opportunity.OpportunityID).
		Return((*domain.Application)(nil), apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, applicantID).Return(applicant, nil).Once()
	suite.mockRepo.On("CreateApplication", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	application, err := suite.service.SubmitApplication(ctx, applicantID, opportunity.OpportunityID, nil)

	suite.Require().NoError(err)
	suite.NotNil(application)
}

// --- TransitionApplication ---

func (suite *ApplicationServiceTestSuite) TestTransition_PublisherAcceptsShortlisted() {
	ctx := context.Background()
	opportunity := activeOpportunity()
	owner := domain.Actor{UserID: opportunity.PublisherID, Role: domain.RolePublisher}
	application := &domain.Application{
		ApplicationID: uuid.NewString(),
		ApplicantID:   uuid.NewString(),
		OpportunityID: opportunity.OpportunityID,
		Status:        domain.ApplicationShortlisted,
	}
	notes := "Bienvenido al programa"

	suite.mockRepo.On("FindApplicationByID", ctx, application.ApplicationID).Return(application, nil).Once()
	suite.mockOppRepo.On("FindOpportunityByID", ctx, opportunity.OpportunityID).Return(opportunity, nil).Once()
	suite.mockRepo.On("TransitionApplicationStatus", ctx, mock.MatchedBy(func(u portsrepo.ApplicationStatusUpdate) bool {
		return u.FromStatus == domain.ApplicationShortlisted &&
			u.ToStatus == domain.ApplicationAccepted &&
			u.PublisherNotes != nil && *u.PublisherNotes == notes &&
			u.ReviewedAt != nil
	}), mock.MatchedBy(func(n *domain.Notification) bool {
		return n != nil && n.UserID == application.ApplicantID && n.Category == domain.NotificationSuccess
	})).Return(nil).Once()

	updated, err := suite.service.TransitionApplication(ctx, application.ApplicationID, owner, domain.ApplicationAccepted, &notes)

	suite.Require().NoError(err)
	suite.Equal(domain.ApplicationAccepted, updated.Status)
	suite.Require().NotNil(updated.ReviewedAt)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ApplicationServiceTestSuite) TestTransition_StrangerForbidden() {
	ctx := context.Background()
	opportunity := activeOpportunity()
	stranger := domain.Actor{UserID: uuid.NewString(), Role: domain.RolePublisher}
	application := &domain.Application{
		ApplicationID: uuid.NewString(),
		ApplicantID:   uuid.NewString(),
		OpportunityID: opportunity.OpportunityID,
		Status:        domain.ApplicationPending,
	}

	suite.mockRepo.On("FindApplicationByID", ctx, application.ApplicationID).Return(application, nil).Once()
	suite.mockOppRepo.On("FindOpportunityByID", ctx, opportunity.OpportunityID).Return(opportunity, nil).Once()

	_, err := suite.service.TransitionApplication(ctx, application.ApplicationID, stranger, domain.ApplicationInReview, nil)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "TransitionApplicationStatus")
}

func (suite *ApplicationServiceTestSuite) TestTransition_TerminalRefused() {
	ctx := context.Background()
	opportunity := activeOpportunity()
	owner := domain.Actor{UserID: opportunity.PublisherID, Role: domain.RolePublisher}
	application := &domain.Application{
		ApplicationID: uuid.NewString(),
		ApplicantID:   uuid.NewString(),
		OpportunityID: opportunity.OpportunityID,
		Status:        domain.ApplicationRejected,
	}

	suite.mockRepo.On("FindApplicationByID", ctx, application.ApplicationID).Return(application, nil).Once()
	suite.mockOppRepo.On("FindOpportunityByID", ctx, opportunity.OpportunityID).Return(opportunity, nil).Once()

	_, err := suite.service.TransitionApplication(ctx, application.ApplicationID, owner, domain.ApplicationInReview, nil)

	suite.Require().ErrorIs(err, apperrors.ErrInvalidTransition)
}

func (suite *ApplicationServiceTestSuite) TestTransition_PublisherCannotWithdraw() {
	ctx := context.Background()
	opportunity := activeOpportunity()
	owner := domain.Actor{UserID: opportunity.PublisherID, Role: domain.RolePublisher}
	application := &domain.Application{
		ApplicationID: uuid.NewString(),
		ApplicantID:   uuid.NewString(),
		OpportunityID: opportunity.OpportunityID,
		Status:        domain.ApplicationPending,
	}

	suite.mockRepo.On("FindApplicationByID", ctx, application.ApplicationID).Return(application, nil).Once()
	suite.mockOppRepo.On("FindOpportunityByID", ctx, opportunity.OpportunityID).Return(opportunity, nil).Once()

	_, err := suite.service.TransitionApplication(ctx, application.ApplicationID, owner, domain.ApplicationWithdrawn, nil)

	suite.Require().ErrorIs(err, apperrors.ErrInvalidTransition)
}

// --- WithdrawApplication ---

func (suite *ApplicationServiceTestSuite) TestWithdraw_Success() {
	ctx := context.Background()
	applicantID := uuid.NewString()
	application := &domain.Application{
		ApplicationID: uuid.NewString(),
		ApplicantID:   applicantID,
		OpportunityID: uuid.NewString(),
		Status:        domain.ApplicationInReview,
	}

	suite.mockRepo.On("FindApplicationByID", ctx, application.ApplicationID).Return(application, nil).Once()
	suite.mockRepo.On("TransitionApplicationStatus", ctx, mock.MatchedBy(func(u portsrepo.ApplicationStatusUpdate) bool {
		return u.ToStatus == domain.ApplicationWithdrawn && u.ReviewedAt == nil
	}), (*domain.Notification)(nil)).Return(nil).Once()

	err := suite.service.WithdrawApplication(ctx, application.ApplicationID, applicantID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ApplicationServiceTestSuite) TestWithdraw_NotOwner() {
	ctx := context.Background()
	application := &domain.Application{
		ApplicationID: uuid.NewString(),
		ApplicantID:   uuid.NewString(),
		Status:        domain.ApplicationPending,
	}

	suite.mockRepo.On("FindApplicationByID", ctx, application.ApplicationID).Return(application, nil).Once()

	err := suite.service.WithdrawApplication(ctx, application.ApplicationID, uuid.NewString())

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *ApplicationServiceTestSuite) TestWithdraw_NotWithdrawableConflicts() {
	ctx := context.Background()
	applicantID := uuid.NewString()
	for _, status := range []domain.ApplicationStatus{
		domain.ApplicationShortlisted,
		domain.ApplicationAccepted,
		domain.ApplicationRejected,
		domain.ApplicationWithdrawn,
	} {
		application := &domain.Application{
			ApplicationID: uuid.NewString(),
			ApplicantID:   applicantID,
			Status:        status,
		}
		suite.mockRepo.On("FindApplicationByID", ctx, application.ApplicationID).Return(application, nil).Once()

		err := suite.service.WithdrawApplication(ctx, application.ApplicationID, applicantID)

		suite.Require().ErrorIs(err, apperrors.ErrConflict, "status %s", status)
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "TransitionApplicationStatus")
}

// --- GetApplication ---

func (suite *ApplicationServiceTestSuite) TestGet_PublisherOfListingAllowed() {
	ctx := context.Background()
	opportunity := activeOpportunity()
	owner := domain.Actor{UserID: opportunity.PublisherID, Role: domain.RolePublisher}
	application := &domain.Application{
		ApplicationID: uuid.NewString(),
		ApplicantID:   uuid.NewString(),
		OpportunityID: opportunity.OpportunityID,
		Status:        domain.ApplicationPending,
	}

	suite.mockRepo.On("FindApplicationByID", ctx, application.ApplicationID).Return(application, nil).Once()
	suite.mockOppRepo.On("FindOpportunityByID", ctx, opportunity.OpportunityID).Return(opportunity, nil).Once()

	got, err := suite.service.GetApplication(ctx, application.ApplicationID, owner)

	suite.Require().NoError(err)
	suite.Equal(application.ApplicationID, got.ApplicationID)
}

func (suite *ApplicationServiceTestSuite) TestListReceived_StrangerForbidden() {
	ctx := context.Background()
	opportunity := activeOpportunity()
	stranger := domain.Actor{UserID: uuid.NewString(), Role: domain.RoleUser}

	suite.mockOppRepo.On("FindOpportunityByID", ctx, opportunity.OpportunityID).Return(opportunity, nil).Once()

	_, _, err := suite.service.ListReceivedApplications(ctx, opportunity.OpportunityID, stranger, nil, 20, 0)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListApplicationsByOpportunity")
}

// TestReviewFlow_EndToEnd walks an application through submission and review:
// the applicant submits without a cover letter, the publisher moves it to
// en_revision and then preseleccionado (one notification each), and a move
// back to en_revision is refused.
func (suite *ApplicationServiceTestSuite) TestReviewFlow_EndToEnd() {
	ctx := context.Background()
	opportunity := activeOpportunity()
	owner := domain.Actor{UserID: opportunity.PublisherID, Role: domain.RolePublisher}
	applicantID := uuid.NewString()
	applicant := &domain.User{UserID: applicantID, Name: "Ana"}

	suite.mockOppRepo.On("FindOpportunityByID", ctx, opportunity.OpportunityID).Return(opportunity, nil)
	suite.mockRepo.On("FindActiveApplication", ctx, applicantID, opportunity.OpportunityID).
		Return((*domain.Application)(nil), apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, applicantID).Return(applicant, nil).Once()
	suite.mockRepo.On("CreateApplication", ctx, mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n != nil && n.UserID == opportunity.PublisherID
	})).Return(nil).Once()

	application, err := suite.service.SubmitApplication(ctx, applicantID, opportunity.OpportunityID, nil)
	suite.Require().NoError(err)
	suite.Equal(domain.ApplicationPending, application.Status)
	suite.Nil(application.CoverLetter)

	// pendiente -> en_revision notifies the applicant.
	current := *application
	suite.mockRepo.On("FindApplicationByID", ctx, application.ApplicationID).Return(&current, nil).Once()
	suite.mockRepo.On("TransitionApplicationStatus", ctx, mock.MatchedBy(func(u portsrepo.ApplicationStatusUpdate) bool {
		return u.ToStatus == domain.ApplicationInReview
	}), mock.MatchedBy(func(n *domain.Notification) bool {
		return n != nil && n.UserID == applicantID
	})).Return(nil).Once()

	updated, err := suite.service.TransitionApplication(ctx, application.ApplicationID, owner, domain.ApplicationInReview, nil)
	suite.Require().NoError(err)
	suite.Equal(domain.ApplicationInReview, updated.Status)

	// en_revision -> preseleccionado notifies again.
	current = *updated
	suite.mockRepo.On("FindApplicationByID", ctx, application.ApplicationID).Return(&current, nil).Once()
	suite.mockRepo.On("TransitionApplicationStatus", ctx, mock.MatchedBy(func(u portsrepo.ApplicationStatusUpdate) bool {
		return u.ToStatus == domain.ApplicationShortlisted
	}), mock.MatchedBy(func(n *domain.Notification) bool {
		return n != nil && n.UserID == applicantID
	})).Return(nil).Once()

	updated, err = suite.service.TransitionApplication(ctx, application.ApplicationID, owner, domain.ApplicationShortlisted, nil)
	suite.Require().NoError(err)
	suite.Equal(domain.ApplicationShortlisted, updated.Status)

	// There is no edge back from preseleccionado to en_revision.
	current = *updated
	suite.mockRepo.On("FindApplicationByID", ctx, application.ApplicationID).Return(&current, nil).Once()

	_, err = suite.service.TransitionApplication(ctx, application.ApplicationID, owner, domain.ApplicationInReview, nil)
	suite.Require().ErrorIs(err, apperrors.ErrInvalidTransition)

	suite.mockRepo.AssertExpectations(suite.T())
}

func TestApplicationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ApplicationServiceTestSuite))
}
