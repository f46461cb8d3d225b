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

// externalAccountHandler handles organization access requests and their
// admin review.
type externalAccountHandler struct {
	accountService portssvc.ExternalAccountSvcFacade
}

func newExternalAccountHandler(es portssvc.ExternalAccountSvcFacade) *externalAccountHandler {
	return &externalAccountHandler{accountService: es}
}

// registerPublicExternalAccountRoutes registers the unauthenticated request
// route. Organizations without platform accounts use it to ask for access.
func registerPublicExternalAccountRoutes(r *gin.Engine, accountService portssvc.ExternalAccountSvcFacade) {
	h := newExternalAccountHandler(accountService)
	r.POST("/api/v1/external-accounts", h.requestAccount)
}

// registerExternalAccountAdminRoutes registers the admin review routes.
func registerExternalAccountAdminRoutes(rg *gin.RouterGroup, accountService portssvc.ExternalAccountSvcFacade) {
	h := newExternalAccountHandler(accountService)

	accounts := rg.Group("/external-accounts")
	{
		accounts.GET("", h.listAccounts)
		accounts.GET("/:id", h.getAccount)
		accounts.POST("", h.createApprovedAccount)
		accounts.POST("/:id/resolve", h.resolveAccount)
	}
}

// requestAccount godoc
// @Summary Request organization access
// @Description Files an organization's request for publisher access. The request enters the admin review queue.
// @Tags external-accounts
// @Accept json
// @Produce json
// @Param account body dto.CreateExternalAccountRequest true "Organization details"
// @Success 201 {object} dto.ExternalAccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already requested"
// @Router /external-accounts [post]
func (h *externalAccountHandler) requestAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateExternalAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RequestExternalAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.accountService.RequestExternalAccount(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "An access request with this email already exists"})
			return
		}
		logger.Error("Failed to create external account request", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to submit request"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToExternalAccountResponse(*account))
}

// createApprovedAccount godoc
// @Summary Create a pre-approved organization account
// @Description Admin shortcut: registers an organization directly as approved and provisions credentials.
// @Tags external-accounts
// @Accept json
// @Produce json
// @Param account body dto.CreateExternalAccountRequest true "Organization details"
// @Success 201 {object} dto.ExternalAccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/external-accounts [post]
func (h *externalAccountHandler) createApprovedAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateExternalAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateExternalAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.accountService.CreateApprovedExternalAccount(c.Request.Context(), actor, req)
	if err != nil {
		h.respondAccountError(c, logger, err, "Failed to create external account")
		return
	}

	c.JSON(http.StatusCreated, dto.ToExternalAccountResponse(*account))
}

// resolveAccount godoc
// @Summary Resolve an access request
// @Description Approves, rejects or suspends an organization account. Approval provisions publisher credentials.
// @Tags external-accounts
// @Accept json
// @Produce json
// @Param id path string true "External account ID"
// @Param resolution body dto.ResolveExternalAccountRequest true "Target status"
// @Success 200 {object} dto.ExternalAccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Status changed concurrently"
// @Failure 422 {object} ErrorResponse "Transition not allowed from the current status"
// @Security BearerAuth
// @Router /admin/external-accounts/{id}/resolve [post]
func (h *externalAccountHandler) resolveAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.ResolveExternalAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ResolveExternalAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.accountService.ResolveExternalAccount(
		c.Request.Context(), c.Param("id"), actor, domain.ExternalAccountStatus(req.Status), req.RejectionReason)
	if err != nil {
		h.respondAccountError(c, logger, err, "Failed to resolve external account")
		return
	}

	c.JSON(http.StatusOK, dto.ToExternalAccountResponse(*account))
}

// getAccount godoc
// @Summary Get an external account
// @Tags external-accounts
// @Produce json
// @Param id path string true "External account ID"
// @Success 200 {object} dto.ExternalAccountResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/external-accounts/{id} [get]
func (h *externalAccountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	account, err := h.accountService.GetExternalAccount(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		h.respondAccountError(c, logger, err, "Failed to retrieve external account")
		return
	}

	c.JSON(http.StatusOK, dto.ToExternalAccountResponse(*account))
}

// listAccounts godoc
// @Summary List external accounts
// @Tags external-accounts
// @Produce json
// @Param status query string false "Status filter"
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.ListExternalAccountsResponse
// @Security BearerAuth
// @Router /admin/external-accounts [get]
func (h *externalAccountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	page, limit, offset := parsePagination(c)
	var status *domain.ExternalAccountStatus
	if s := c.Query("status"); s != "" {
		st := domain.ExternalAccountStatus(s)
		status = &st
	}

	accounts, total, err := h.accountService.ListExternalAccounts(c.Request.Context(), actor, status, limit, offset)
	if err != nil {
		h.respondAccountError(c, logger, err, "Failed to list external accounts")
		return
	}

	c.JSON(http.StatusOK, dto.ListExternalAccountsResponse{
		Accounts:   dto.ToExternalAccountResponses(accounts),
		Total:      total,
		Page:       page,
		TotalPages: totalPages(total, limit),
	})
}

func (h *externalAccountHandler) respondAccountError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "External account not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Insufficient permissions"})
	case errors.Is(err, apperrors.ErrInvalidTransition):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "An account with this email already exists"})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
	}
}
