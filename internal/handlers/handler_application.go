package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Anjos2/oportuniapp/internal/apperrors"
	"github.com/Anjos2/oportuniapp/internal/core/domain"
	portssvc "github.com/Anjos2/oportuniapp/internal/core/ports/services"
	"github.com/Anjos2/oportuniapp/internal/dto"
	"github.com/Anjos2/oportuniapp/internal/middleware"
	"github.com/gin-gonic/gin"
)

// applicationHandler handles HTTP requests related to applications.
type applicationHandler struct {
	applicationService portssvc.ApplicationSvcFacade
}

func newApplicationHandler(as portssvc.ApplicationSvcFacade) *applicationHandler {
	return &applicationHandler{applicationService: as}
}

// registerApplicationRoutes registers routes related to applications.
func registerApplicationRoutes(rg *gin.RouterGroup, applicationService portssvc.ApplicationSvcFacade) {
	h := newApplicationHandler(applicationService)

	rg.POST("/opportunities/:id/applications", h.submitApplication)
	rg.GET("/opportunities/:id/applications", h.listReceivedApplications)

	applications := rg.Group("/applications")
	{
		applications.GET("", h.listMyApplications)
		applications.GET("/:id", h.getApplication)
		applications.POST("/:id/transition", h.transitionApplication)
		applications.POST("/:id/withdraw", h.withdrawApplication)
	}
}

// submitApplication godoc
// @Summary Apply to an opportunity
// @Description Submits an application to an active listing. A live application to the same listing blocks resubmission.
// @Tags applications
// @Accept json
// @Produce json
// @Param id path string true "Opportunity ID"
// @Param application body dto.SubmitApplicationRequest true "Application details"
// @Success 201 {object} dto.ApplicationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Cannot apply to own listing"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already applied"
// @Security BearerAuth
// @Router /opportunities/{id}/applications [post]
func (h *applicationHandler) submitApplication(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SubmitApplication", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	application, err := h.applicationService.SubmitApplication(c.Request.Context(), userID, c.Param("id"), req.CoverLetter)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) || errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Opportunity not found"})
		} else {
			h.respondApplicationError(c, logger, err, "Failed to submit application")
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToApplicationResponse(*application))
}

// listMyApplications godoc
// @Summary List own applications
// @Description Retrieves the calling user's applications, optionally filtered by status.
// @Tags applications
// @Produce json
// @Param status query string false "Status filter"
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.ListApplicationsResponse
// @Security BearerAuth
// @Router /applications [get]
func (h *applicationHandler) listMyApplications(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	page, limit, offset := parsePagination(c)
	var status *domain.ApplicationStatus
	if s := c.Query("status"); s != "" {
		st := domain.ApplicationStatus(s)
		status = &st
	}

	applications, total, err := h.applicationService.ListMyApplications(c.Request.Context(), userID, status, limit, offset)
	if err != nil {
		logger.Error("Failed to list applications", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve applications"})
		return
	}

	c.JSON(http.StatusOK, dto.ListApplicationsResponse{
		Applications: dto.ToApplicationResponses(applications),
		Total:        total,
		Page:         page,
		TotalPages:   totalPages(total, limit),
	})
}

// listReceivedApplications godoc
// @Summary List applications to an opportunity
// @Description Retrieves the applications filed against one of the caller's listings.
// @Tags applications
// @Produce json
// @Param id path string true "Opportunity ID"
// @Param status query string false "Status filter"
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.ListApplicationsResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /opportunities/{id}/applications [get]
func (h *applicationHandler) listReceivedApplications(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	page, limit, offset := parsePagination(c)
	var status *domain.ApplicationStatus
	if s := c.Query("status"); s != "" {
		st := domain.ApplicationStatus(s)
		status = &st
	}

	applications, total, err := h.applicationService.ListReceivedApplications(c.Request.Context(), c.Param("id"), actor, status, limit, offset)
	if err != nil {
		h.respondApplicationError(c, logger, err, "Failed to retrieve applications")
		return
	}

	c.JSON(http.StatusOK, dto.ListApplicationsResponse{
		Applications: dto.ToApplicationResponses(applications),
		Total:        total,
		Page:         page,
		TotalPages:   totalPages(total, limit),
	})
}

// getApplication godoc
// @Summary Get an application
// @Description Retrieves one application. Visible to its applicant, the owning publisher and admins.
// @Tags applications
// @Produce json
// @Param id path string true "Application ID"
// @Success 200 {object} dto.ApplicationResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /applications/{id} [get]
func (h *applicationHandler) getApplication(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	application, err := h.applicationService.GetApplication(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		h.respondApplicationError(c, logger, err, "Failed to retrieve application")
		return
	}

	c.JSON(http.StatusOK, dto.ToApplicationResponse(*application))
}

// transitionApplication godoc
// @Summary Transition an application
// @Description Moves an application through review. Only the owning publisher and admins may transition.
// @Tags applications
// @Accept json
// @Produce json
// @Param id path string true "Application ID"
// @Param transition body dto.TransitionApplicationRequest true "Target status"
// @Success 200 {object} dto.ApplicationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Status changed concurrently"
// @Failure 422 {object} ErrorResponse "Transition not allowed from the current status"
// @Security BearerAuth
// @Router /applications/{id}/transition [post]
func (h *applicationHandler) transitionApplication(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.TransitionApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for TransitionApplication", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	application, err := h.applicationService.TransitionApplication(
		c.Request.Context(), c.Param("id"), actor, domain.ApplicationStatus(req.Status), req.PublisherNotes)
	if err != nil {
		h.respondApplicationError(c, logger, err, "Failed to transition application")
		return
	}

	c.JSON(http.StatusOK, dto.ToApplicationResponse(*application))
}

// withdrawApplication godoc
// @Summary Withdraw an application
// @Description Retires the caller's own application while it is still under review. Withdrawal is final.
// @Tags applications
// @Param id path string true "Application ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Application is past the withdrawable statuses"
// @Security BearerAuth
// @Router /applications/{id}/withdraw [post]
func (h *applicationHandler) withdrawApplication(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.applicationService.WithdrawApplication(c.Request.Context(), c.Param("id"), userID); err != nil {
		h.respondApplicationError(c, logger, err, "Failed to withdraw application")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *applicationHandler) respondApplicationError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Application not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "You do not have permission to access this application"})
	case errors.Is(err, apperrors.ErrInvalidTransition):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
	}
}
