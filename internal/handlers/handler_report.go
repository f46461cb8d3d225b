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

// reportHandler handles the user-facing report routes. The admin triage
// routes live with the other admin routes.
type reportHandler struct {
	reportService portssvc.ReportSvcFacade
}

func newReportHandler(rs portssvc.ReportSvcFacade) *reportHandler {
	return &reportHandler{reportService: rs}
}

// registerReportRoutes registers the report filing route.
func registerReportRoutes(rg *gin.RouterGroup, reportService portssvc.ReportSvcFacade) {
	h := newReportHandler(reportService)
	rg.POST("/reports", h.fileReport)
}

// fileReport godoc
// @Summary Report an opportunity
// @Description Flags a listing for admin review. One open report per reporter and listing.
// @Tags reports
// @Accept json
// @Produce json
// @Param report body dto.CreateReportRequest true "Report details"
// @Success 201 {object} dto.ReportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Publishers cannot report their own listings"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already reported"
// @Security BearerAuth
// @Router /reports [post]
func (h *reportHandler) fileReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for FileReport", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	report, err := h.reportService.FileReport(c.Request.Context(), userID, req.OpportunityID, domain.ReportReason(req.Reason), req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Opportunity not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "You cannot report your own listing"})
		case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "You have already reported this opportunity"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to file report", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to file report"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToReportResponse(*report))
}
