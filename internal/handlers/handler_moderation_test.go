package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Anjos2/oportuniapp/internal/core/domain"
	portssvc "github.com/Anjos2/oportuniapp/internal/core/ports/services"
	"github.com/Anjos2/oportuniapp/internal/dto"
	"github.com/Anjos2/oportuniapp/internal/handlers"
	"github.com/Anjos2/oportuniapp/internal/middleware"
	"github.com/Anjos2/oportuniapp/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ModerationService ---
type MockModerationService struct {
	mock.Mock
}

func (m *MockModerationService) Moderate(ctx context.Context, cmd portssvc.ModerationCommand) portssvc.ModerationResult {
	args := m.Called(ctx, cmd)
	return args.Get(0).(portssvc.ModerationResult)
}

// Ensure mock implements the interface
var _ portssvc.ModerationSvcFacade = (*MockModerationService)(nil)

// --- Test Suite ---
type ModerationHandlerTestSuite struct {
	suite.Suite
	router                *gin.Engine
	mockModerationService *MockModerationService
	jwtSecret             string
}

func (suite *ModerationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockModerationService = new(MockModerationService)

	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret))
	handlers.RegisterModerationRoutes(v1, suite.mockModerationService)
}

// generateTestToken creates a signed JWT carrying the role claim the auth
// middleware expects.
func (suite *ModerationHandlerTestSuite) generateTestToken(userID string, role domain.Role) string {
	token, err := utils.GenerateJWT(userID, string(role), suite.jwtSecret, time.Hour, "oportuni-test")
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *ModerationHandlerTestSuite) postCommand(body dto.ModerationRequest, token string) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/moderation", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *ModerationHandlerTestSuite) TestModerate_Success() {
	adminID := uuid.NewString()
	targetID := uuid.NewString()

	suite.mockModerationService.On("Moderate",
		mock.AnythingOfType("*context.valueCtx"),
		mock.MatchedBy(func(cmd portssvc.ModerationCommand) bool {
			return cmd.Action == portssvc.ModerateOpportunityTransition &&
				cmd.TargetID == targetID &&
				cmd.Actor.UserID == adminID &&
				cmd.Actor.Role == domain.RoleAdmin &&
				cmd.Enforcement == domain.ActionNone
		}),
	).Return(portssvc.ModerationResult{OK: true}).Once()

	token := suite.generateTestToken(adminID, domain.RoleAdmin)
	w := suite.postCommand(dto.ModerationRequest{
		Action:   "opportunity.transition",
		TargetID: targetID,
		Status:   "active",
	}, token)

	suite.Equal(http.StatusOK, w.Code)

	var responseBody dto.ModerationResponse
	err := json.Unmarshal(w.Body.Bytes(), &responseBody)
	suite.NoError(err, "Failed to unmarshal response body")
	suite.True(responseBody.OK)
	suite.Empty(responseBody.ErrorKind)

	suite.mockModerationService.AssertExpectations(suite.T())
}

func (suite *ModerationHandlerTestSuite) TestModerate_FailureStaysHTTP200() {
	userID := uuid.NewString()
	targetID := uuid.NewString()

	suite.mockModerationService.On("Moderate",
		mock.AnythingOfType("*context.valueCtx"),
		mock.MatchedBy(func(cmd portssvc.ModerationCommand) bool {
			return cmd.Action == portssvc.ModerateApplicationWithdraw && cmd.TargetID == targetID
		}),
	).Return(portssvc.ModerationResult{
		OK:        false,
		ErrorKind: "conflict",
		Message:   "application in status aceptado cannot be withdrawn",
	}).Once()

	token := suite.generateTestToken(userID, domain.RoleUser)
	w := suite.postCommand(dto.ModerationRequest{
		Action:   "application.withdraw",
		TargetID: targetID,
	}, token)

	// Workflow failures ride inside the uniform body, not the HTTP status.
	suite.Equal(http.StatusOK, w.Code)

	var responseBody dto.ModerationResponse
	err := json.Unmarshal(w.Body.Bytes(), &responseBody)
	suite.NoError(err)
	suite.False(responseBody.OK)
	suite.Equal("conflict", responseBody.ErrorKind)
	suite.NotEmpty(responseBody.Message)
}

func (suite *ModerationHandlerTestSuite) TestModerate_UnknownActionRejectedByBinding() {
	token := suite.generateTestToken(uuid.NewString(), domain.RoleAdmin)
	w := suite.postCommand(dto.ModerationRequest{
		Action:   "opportunity.promote",
		TargetID: uuid.NewString(),
	}, token)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockModerationService.AssertNotCalled(suite.T(), "Moderate")
}

func (suite *ModerationHandlerTestSuite) TestModerate_MissingToken() {
	w := suite.postCommand(dto.ModerationRequest{
		Action:   "report.resolve",
		TargetID: uuid.NewString(),
		Status:   "descartado",
	}, "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockModerationService.AssertNotCalled(suite.T(), "Moderate")
}

// --- Run Test Suite ---
func TestModerationHandler(t *testing.T) {
	suite.Run(t, new(ModerationHandlerTestSuite))
}
