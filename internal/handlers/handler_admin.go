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

// adminHandler bundles the moderation and back-office routes.
type adminHandler struct {
	opportunityService portssvc.OpportunitySvcFacade
	reportService      portssvc.ReportSvcFacade
	userService        portssvc.UserSvcFacade
	auditService       portssvc.AuditSvcFacade
}

func newAdminHandler(
	os portssvc.OpportunitySvcFacade,
	rs portssvc.ReportSvcFacade,
	us portssvc.UserSvcFacade,
	as portssvc.AuditSvcFacade,
) *adminHandler {
	return &adminHandler{
		opportunityService: os,
		reportService:      rs,
		userService:        us,
		auditService:       as,
	}
}

// registerAdminRoutes registers the admin-only routes behind a role check.
func registerAdminRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newAdminHandler(services.OpportunitySvc, services.ReportSvc, services.UserSvc, services.AuditSvc)

	admin := rg.Group("/admin", middleware.RequireRole(domain.RoleAdmin))
	{
		admin.GET("/opportunities/pending", h.listPendingOpportunities)
		admin.POST("/opportunities/:id/feature", h.featureOpportunity)
		admin.GET("/reports", h.listReports)
		admin.GET("/reports/:id", h.getReportDetail)
		admin.POST("/reports/:id/resolve", h.resolveReport)
		admin.GET("/users", h.listUsers)
		admin.GET("/audit-log", h.listAuditEntries)
	}
	registerExternalAccountAdminRoutes(admin, services.ExternalAccountSvc)
}

// listPendingOpportunities godoc
// @Summary List the review queue
// @Description Retrieves opportunities awaiting moderation, oldest first.
// @Tags admin
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.ListOpportunitiesResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/opportunities/pending [get]
func (h *adminHandler) listPendingOpportunities(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	page, limit, offset := parsePagination(c)
	opportunities, total, err := h.opportunityService.ListPendingOpportunities(c.Request.Context(), actor, limit, offset)
	if err != nil {
		h.respondAdminError(c, logger, err, "Failed to list pending opportunities")
		return
	}

	c.JSON(http.StatusOK, dto.ListOpportunitiesResponse{
		Opportunities: dto.ToOpportunityResponses(opportunities),
		Total:         total,
		Page:          page,
		TotalPages:    totalPages(total, limit),
	})
}

// featureOpportunity godoc
// @Summary Feature or unfeature an opportunity
// @Description Toggles the featured flag. Only active listings can be featured.
// @Tags admin
// @Accept json
// @Param id path string true "Opportunity ID"
// @Param feature body dto.FeatureOpportunityRequest true "Featured flag"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Listing is not active"
// @Security BearerAuth
// @Router /admin/opportunities/{id}/feature [post]
func (h *adminHandler) featureOpportunity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.FeatureOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for FeatureOpportunity", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	if err := h.opportunityService.SetOpportunityFeatured(c.Request.Context(), c.Param("id"), actor, *req.IsFeatured); err != nil {
		h.respondAdminError(c, logger, err, "Failed to update featured flag")
		return
	}

	c.Status(http.StatusNoContent)
}

// listReports godoc
// @Summary List reports
// @Description Retrieves filed reports, optionally filtered by status.
// @Tags admin
// @Produce json
// @Param status query string false "Status filter"
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.ListReportsResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/reports [get]
func (h *adminHandler) listReports(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	page, limit, offset := parsePagination(c)
	var status *domain.ReportStatus
	if s := c.Query("status"); s != "" {
		st := domain.ReportStatus(s)
		status = &st
	}

	reports, total, err := h.reportService.ListReports(c.Request.Context(), actor, status, limit, offset)
	if err != nil {
		h.respondAdminError(c, logger, err, "Failed to list reports")
		return
	}

	c.JSON(http.StatusOK, dto.ListReportsResponse{
		Reports:    dto.ToReportResponses(reports),
		Total:      total,
		Page:       page,
		TotalPages: totalPages(total, limit),
	})
}

// getReportDetail godoc
// @Summary Get a report with context
// @Description Retrieves one report plus the other reports filed against the same opportunity.
// @Tags admin
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} dto.ReportDetailResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/reports/{id} [get]
func (h *adminHandler) getReportDetail(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	detail, err := h.reportService.GetReportDetail(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		h.respondAdminError(c, logger, err, "Failed to retrieve report")
		return
	}

	c.JSON(http.StatusOK, dto.ReportDetailResponse{
		Report:         dto.ToReportResponse(detail.Report),
		RelatedReports: dto.ToReportResponses(detail.RelatedReports),
	})
}

// resolveReport godoc
// @Summary Resolve a report
// @Description Closes a pending report. When the resolution is accion_tomada with the suspend action, the reported listing is force-suspended.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Report ID"
// @Param resolution body dto.ResolveReportRequest true "Resolution"
// @Success 200 {object} dto.ReportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Report already resolved"
// @Failure 422 {object} ErrorResponse "Transition not allowed"
// @Security BearerAuth
// @Router /admin/reports/{id}/resolve [post]
func (h *adminHandler) resolveReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.ResolveReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ResolveReport", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	action := domain.ReportAction(req.Action)
	if action == "" {
		action = domain.ActionNone
	}

	report, err := h.reportService.ResolveReport(
		c.Request.Context(), c.Param("id"), actor, domain.ReportStatus(req.Status), req.AdminNotes, action)
	if err != nil {
		// The report may have been resolved while the cascade failed; the
		// caller still gets the resolved report with a warning in the logs.
		if report != nil {
			logger.Warn("Report resolved but enforcement failed", slog.String("error", err.Error()))
			c.JSON(http.StatusOK, dto.ToReportResponse(*report))
			return
		}
		h.respondAdminError(c, logger, err, "Failed to resolve report")
		return
	}

	c.JSON(http.StatusOK, dto.ToReportResponse(*report))
}

// listUsers godoc
// @Summary List users
// @Description Retrieves platform users, optionally filtered by role.
// @Tags admin
// @Produce json
// @Param role query string false "Role filter"
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.ListUsersResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/users [get]
func (h *adminHandler) listUsers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	page, limit, offset := parsePagination(c)
	var role *domain.Role
	if r := c.Query("role"); r != "" {
		ro := domain.Role(r)
		role = &ro
	}

	users, total, err := h.userService.ListUsers(c.Request.Context(), actor, role, limit, offset)
	if err != nil {
		h.respondAdminError(c, logger, err, "Failed to list users")
		return
	}

	c.JSON(http.StatusOK, dto.ListUsersResponse{
		Users:      dto.ToUserResponses(users),
		Total:      total,
		Page:       page,
		TotalPages: totalPages(total, limit),
	})
}

// listAuditEntries godoc
// @Summary List the audit trail
// @Description Retrieves audit entries, newest first.
// @Tags admin
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.ListAuditEntriesResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/audit-log [get]
func (h *adminHandler) listAuditEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	page, limit, offset := parsePagination(c)
	entries, total, err := h.auditService.ListAuditEntries(c.Request.Context(), actor, limit, offset)
	if err != nil {
		h.respondAdminError(c, logger, err, "Failed to list audit entries")
		return
	}

	c.JSON(http.StatusOK, dto.ListAuditEntriesResponse{
		Entries:    dto.ToAuditEntryResponses(entries),
		Total:      total,
		Page:       page,
		TotalPages: totalPages(total, limit),
	})
}

func (h *adminHandler) respondAdminError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Resource not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Insufficient permissions"})
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
