package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Anjos2/oportuniapp/internal/core/domain"
	portssvc "github.com/Anjos2/oportuniapp/internal/core/ports/services"
	"github.com/Anjos2/oportuniapp/internal/dto"
	"github.com/Anjos2/oportuniapp/internal/middleware"
	"github.com/gin-gonic/gin"
)

// moderationHandler exposes the uniform workflow command endpoint.
type moderationHandler struct {
	moderationService portssvc.ModerationSvcFacade
}

func newModerationHandler(ms portssvc.ModerationSvcFacade) *moderationHandler {
	return &moderationHandler{moderationService: ms}
}

// RegisterModerationRoutes registers the workflow command route. Role checks
// happen per action inside the services, so the route itself only requires
// authentication.
func RegisterModerationRoutes(rg *gin.RouterGroup, moderationService portssvc.ModerationSvcFacade) {
	h := newModerationHandler(moderationService)
	rg.POST("/moderation", h.moderate)
}

// moderate godoc
// @Summary Execute a workflow command
// @Description Applies a status-transition command against an opportunity, application, report or external account. The outcome is always a uniform result body; failures carry an error kind instead of an HTTP error status.
// @Tags moderation
// @Accept json
// @Produce json
// @Param command body dto.ModerationRequest true "Workflow command"
// @Success 200 {object} dto.ModerationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /moderation [post]
func (h *moderationHandler) moderate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.ModerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Moderate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	enforcement := domain.ReportAction(req.Enforcement)
	if enforcement == "" {
		enforcement = domain.ActionNone
	}

	result := h.moderationService.Moderate(c.Request.Context(), portssvc.ModerationCommand{
		Actor:       actor,
		Action:      portssvc.ModerationAction(req.Action),
		TargetID:    req.TargetID,
		Status:      req.Status,
		Reason:      req.Reason,
		Notes:       req.Notes,
		Enforcement: enforcement,
	})

	c.JSON(http.StatusOK, dto.ModerationResponse{
		OK:        result.OK,
		ErrorKind: result.ErrorKind,
		Message:   result.Message,
	})
}
