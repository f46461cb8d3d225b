package services_test

import (
	"context"
	"testing"

	"github.com/Anjos2/oportuniapp/internal/apperrors"
	"github.com/Anjos2/oportuniapp/internal/core/domain"
	portssvc "github.com/Anjos2/oportuniapp/internal/core/ports/services"
	"github.com/Anjos2/oportuniapp/internal/core/services"
	"github.com/Anjos2/oportuniapp/internal/dto"
	"github.com/Anjos2/oportuniapp/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo             *MockUserRepository
	mockNotificationRepo *MockNotificationRepository
	mockAuditRepo        *MockAuditRepository
	service              portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.mockNotificationRepo = new(MockNotificationRepository)
	suite.mockAuditRepo = new(MockAuditRepository)
	suite.service = services.NewUserService(suite.mockRepo, suite.mockNotificationRepo, suite.mockAuditRepo)
}

func (suite *UserServiceTestSuite) TestRegister_CreatesMemberWithWelcome() {
	ctx := context.Background()
	req := dto.RegisterRequest{Email: "ana@example.com", Password: "secreto123", Name: "Ana"}

	suite.mockRepo.On("FindUserByEmail", ctx, req.Email).
		Return((*domain.User)(nil), apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Email == req.Email && u.Role == domain.RoleUser && u.Status == domain.UserActive &&
			u.PasswordHash != req.Password
	})).Return(nil).Once()
	suite.mockNotificationRepo.On("SaveNotification", ctx, mock.MatchedBy(func(n domain.Notification) bool {
		return n.Category == domain.NotificationInfo
	})).Return(nil).Once()
	suite.mockAuditRepo.On("SaveAuditEntry", ctx, mock.MatchedBy(func(e domain.AuditEntry) bool {
		return e.Action == domain.AuditActionCreate
	})).Return(nil).Once()

	user, err := suite.service.RegisterUser(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(domain.RoleUser, user.Role)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockNotificationRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegister_DuplicateEmail() {
	ctx := context.Background()
	req := dto.RegisterRequest{Email: "ana@example.com", Password: "secreto123", Name: "Ana"}
	existing := &domain.User{UserID: uuid.NewString(), Email: req.Email}

	suite.mockRepo.On("FindUserByEmail", ctx, req.Email).Return(existing, nil).Once()

	_, err := suite.service.RegisterUser(ctx, req)

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveUser")
}

func (suite *UserServiceTestSuite) TestAuthenticate_Success() {
	ctx := context.Background()
	password := "secreto123"
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)
	user := &domain.User{
		UserID:       uuid.NewString(),
		Email:        "ana@example.com",
		PasswordHash: hash,
		Status:       domain.UserActive,
	}

	suite.mockRepo.On("FindUserByEmail", ctx, user.Email).Return(user, nil).Once()
	suite.mockAuditRepo.On("SaveAuditEntry", ctx, mock.MatchedBy(func(e domain.AuditEntry) bool {
		return e.Action == domain.AuditActionLogin
	})).Return(nil).Once()

	got, err := suite.service.AuthenticateUser(ctx, user.Email, password)

	suite.Require().NoError(err)
	suite.Equal(user.UserID, got.UserID)
	suite.mockAuditRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAuthenticate_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correcta")
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Email: "ana@example.com", PasswordHash: hash}

	suite.mockRepo.On("FindUserByEmail", ctx, user.Email).Return(user, nil).Once()

	_, err = suite.service.AuthenticateUser(ctx, user.Email, "incorrecta")

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.mockAuditRepo.AssertNotCalled(suite.T(), "SaveAuditEntry")
}

func (suite *UserServiceTestSuite) TestAuthenticate_UnknownEmailIndistinguishable() {
	ctx := context.Background()

	suite.mockRepo.On("FindUserByEmail", ctx, "nadie@example.com").
		Return((*domain.User)(nil), apperrors.ErrNotFound).Once()

	_, err := suite.service.AuthenticateUser(ctx, "nadie@example.com", "loquesea")

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *UserServiceTestSuite) TestAuthenticate_SuspendedRefused() {
	ctx := context.Background()
	password := "secreto123"
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)
	user := &domain.User{
		UserID:       uuid.NewString(),
		Email:        "org@example.com",
		PasswordHash: hash,
		Status:       domain.UserSuspended,
	}

	suite.mockRepo.On("FindUserByEmail", ctx, user.Email).Return(user, nil).Once()

	_, err = suite.service.AuthenticateUser(ctx, user.Email, password)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.mockAuditRepo.AssertNotCalled(suite.T(), "SaveAuditEntry")
}

func (suite *UserServiceTestSuite) TestUpdateProfile_AppliesPatch() {
	ctx := context.Background()
	user := &domain.User{UserID: uuid.NewString(), Name: "Ana", Email: "ana@example.com"}
	newName := "Ana María"
	skills := []domain.SkillSelection{{SkillID: uuid.NewString(), Level: "intermedio"}}
	patch := domain.ProfilePatch{Name: &newName, Skills: &skills}

	suite.mockRepo.On("FindUserByID", ctx, user.UserID).Return(user, nil).Once()
	suite.mockRepo.On("UpdateUserProfile", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Name == newName
	}), &skills, (*[]domain.LanguageSelection)(nil), (*[]string)(nil)).Return(nil).Once()

	updated, err := suite.service.UpdateProfile(ctx, user.UserID, patch)

	suite.Require().NoError(err)
	suite.Equal(newName, updated.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestListUsers_NonAdminForbidden() {
	ctx := context.Background()

	_, _, err := suite.service.ListUsers(ctx, publisherActor(), nil, 20, 0)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListUsers")
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
