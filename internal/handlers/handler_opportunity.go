package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Anjos2/oportuniapp/internal/apperrors"
	"github.com/Anjos2/oportuniapp/internal/core/domain"
	portsrepo "github.com/Anjos2/oportuniapp/internal/core/ports/repositories"
	portssvc "github.com/Anjos2/oportuniapp/internal/core/ports/services"
	"github.com/Anjos2/oportuniapp/internal/dto"
	"github.com/Anjos2/oportuniapp/internal/middleware"
	"github.com/Anjos2/oportuniapp/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// opportunityHandler handles HTTP requests related to opportunities.
type opportunityHandler struct {
	opportunityService portssvc.OpportunitySvcFacade
}

func newOpportunityHandler(os portssvc.OpportunitySvcFacade) *opportunityHandler {
	return &opportunityHandler{opportunityService: os}
}

// registerCatalogRoutes registers the public catalog routes. They run behind
// optional auth so logged-in viewers get their saved/applied flags.
func registerCatalogRoutes(r *gin.Engine, cfg *config.Config, opportunityService portssvc.OpportunitySvcFacade) {
	h := newOpportunityHandler(opportunityService)

	catalog := r.Group("/api/v1", middleware.OptionalAuthMiddleware(cfg.JWTSecret))
	{
		catalog.GET("/opportunities", h.listOpportunities)
		catalog.GET("/opportunities/:id", h.getOpportunity)
		catalog.GET("/featured-opportunities", h.listFeaturedOpportunities)
	}
}

// registerOpportunityRoutes registers the authenticated opportunity routes.
func registerOpportunityRoutes(rg *gin.RouterGroup, opportunityService portssvc.OpportunitySvcFacade) {
	h := newOpportunityHandler(opportunityService)

	opportunities := rg.Group("/opportunities")
	{
		opportunities.POST("", h.createOpportunity)
		opportunities.PUT("/:id", h.updateOpportunity)
		opportunities.DELETE("/:id", h.deleteOpportunity)
		opportunities.POST("/:id/transition", h.transitionOpportunity)
		opportunities.POST("/:id/duplicate", h.duplicateOpportunity)
		opportunities.POST("/:id/save", h.saveOpportunity)
		opportunities.DELETE("/:id/save", h.unsaveOpportunity)
	}
	rg.GET("/publisher/opportunities", h.listMyOpportunities)
	rg.GET("/saved-opportunities", h.listSavedOpportunities)
}

// listOpportunities godoc
// @Summary List active opportunities
// @Description Retrieves the public catalog, optionally filtered by category, modality and a free-text search.
// @Tags opportunities
// @Produce json
// @Param category query string false "Category filter"
// @Param modality query string false "Modality filter"
// @Param search query string false "Free-text search on title and organization"
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.ListOpportunitiesResponse
// @Failure 500 {object} ErrorResponse
// @Router /opportunities [get]
func (h *opportunityHandler) listOpportunities(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	page, limit, offset := parsePagination(c)

	filter := portsrepo.ListOpportunitiesFilter{
		Category: c.Query("category"),
		Modality: c.Query("modality"),
		Search:   c.Query("search"),
		Limit:    limit,
		Offset:   offset,
	}

	opportunities, total, err := h.opportunityService.ListActiveOpportunities(c.Request.Context(), filter)
	if err != nil {
		logger.Error("Failed to list opportunities", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve opportunities"})
		return
	}

	c.JSON(http.StatusOK, dto.ListOpportunitiesResponse{
		Opportunities: dto.ToOpportunityResponses(opportunities),
		Total:         total,
		Page:          page,
		TotalPages:    totalPages(total, limit),
	})
}

// listFeaturedOpportunities godoc
// @Summary List featured opportunities
// @Description Retrieves the curated featured listings for the home page.
// @Tags opportunities
// @Produce json
// @Param limit query int false "Maximum number of listings"
// @Success 200 {array} dto.OpportunityResponse
// @Failure 500 {object} ErrorResponse
// @Router /featured-opportunities [get]
func (h *opportunityHandler) listFeaturedOpportunities(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	_, limit, _ := parsePagination(c)

	opportunities, err := h.opportunityService.ListFeaturedOpportunities(c.Request.Context(), limit)
	if err != nil {
		logger.Error("Failed to list featured opportunities", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve opportunities"})
		return
	}

	c.JSON(http.StatusOK, dto.ToOpportunityResponses(opportunities))
}

// getOpportunity godoc
// @Summary Get an opportunity
// @Description Retrieves one opportunity. Non-active listings are visible only to their publisher and admins.
// @Tags opportunities
// @Produce json
// @Param id path string true "Opportunity ID"
// @Success 200 {object} dto.OpportunityDetailResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /opportunities/{id} [get]
func (h *opportunityHandler) getOpportunity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	opportunityID := c.Param("id")

	var viewer *domain.Actor
	if actor, ok := middleware.GetActorFromContext(c); ok {
		viewer = &actor
	}

	detail, err := h.opportunityService.GetOpportunity(c.Request.Context(), opportunityID, viewer)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Opportunity not found"})
			return
		}
		logger.Error("Failed to get opportunity", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve opportunity"})
		return
	}

	resp := dto.OpportunityDetailResponse{
		OpportunityResponse: dto.ToOpportunityResponse(detail.Opportunity),
		IsSaved:             detail.IsSaved,
	}
	if detail.ApplicationStatus != nil {
		status := string(*detail.ApplicationStatus)
		resp.ApplicationStatus = &status
	}
	c.JSON(http.StatusOK, resp)
}

// createOpportunity godoc
// @Summary Create an opportunity
// @Description Drafts a new listing owned by the calling publisher.
// @Tags opportunities
// @Accept json
// @Produce json
// @Param opportunity body dto.CreateOpportunityRequest true "Opportunity details"
// @Success 201 {object} dto.OpportunityResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Caller is not a publisher"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /opportunities [post]
func (h *opportunityHandler) createOpportunity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateOpportunity", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	created, err := h.opportunityService.CreateOpportunity(c.Request.Context(), actor, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Only publishers can create opportunities"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to create opportunity", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create opportunity"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToOpportunityResponse(*created))
}

// updateOpportunity godoc
// @Summary Update an opportunity
// @Description Applies a partial content update. Lifecycle changes go through the transition endpoint instead.
// @Tags opportunities
// @Accept json
// @Produce json
// @Param id path string true "Opportunity ID"
// @Param opportunity body dto.UpdateOpportunityRequest true "Fields to update"
// @Success 200 {object} dto.OpportunityResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Listing is in a terminal status"
// @Security BearerAuth
// @Router /opportunities/{id} [put]
func (h *opportunityHandler) updateOpportunity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateOpportunity", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	updated, err := h.opportunityService.UpdateOpportunity(c.Request.Context(), c.Param("id"), actor, req.ToPatch())
	if err != nil {
		h.respondOpportunityError(c, logger, err, "Failed to update opportunity")
		return
	}

	c.JSON(http.StatusOK, dto.ToOpportunityResponse(*updated))
}

// transitionOpportunity godoc
// @Summary Transition an opportunity
// @Description Moves a listing to the requested lifecycle status if the caller's role allows that edge.
// @Tags opportunities
// @Accept json
// @Produce json
// @Param id path string true "Opportunity ID"
// @Param transition body dto.TransitionOpportunityRequest true "Target status"
// @Success 200 {object} dto.OpportunityResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Status changed concurrently"
// @Failure 422 {object} ErrorResponse "Transition not allowed from the current status"
// @Security BearerAuth
// @Router /opportunities/{id}/transition [post]
func (h *opportunityHandler) transitionOpportunity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.TransitionOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for TransitionOpportunity", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	updated, err := h.opportunityService.TransitionOpportunity(
		c.Request.Context(), c.Param("id"), actor, domain.OpportunityStatus(req.Status), req.RejectionReason)
	if err != nil {
		h.respondOpportunityError(c, logger, err, "Failed to transition opportunity")
		return
	}

	c.JSON(http.StatusOK, dto.ToOpportunityResponse(*updated))
}

// duplicateOpportunity godoc
// @Summary Duplicate an opportunity
// @Description Clones an existing listing into a fresh draft owned by the caller.
// @Tags opportunities
// @Produce json
// @Param id path string true "Opportunity ID"
// @Success 201 {object} dto.OpportunityResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /opportunities/{id}/duplicate [post]
func (h *opportunityHandler) duplicateOpportunity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	clone, err := h.opportunityService.DuplicateOpportunity(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		h.respondOpportunityError(c, logger, err, "Failed to duplicate opportunity")
		return
	}

	c.JSON(http.StatusCreated, dto.ToOpportunityResponse(*clone))
}

// deleteOpportunity godoc
// @Summary Delete an opportunity
// @Description Removes a listing. Publishers may delete drafts and rejected listings; admins may delete anything.
// @Tags opportunities
// @Param id path string true "Opportunity ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /opportunities/{id} [delete]
func (h *opportunityHandler) deleteOpportunity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.opportunityService.DeleteOpportunity(c.Request.Context(), c.Param("id"), actor); err != nil {
		h.respondOpportunityError(c, logger, err, "Failed to delete opportunity")
		return
	}

	c.Status(http.StatusNoContent)
}

// listMyOpportunities godoc
// @Summary List own opportunities
// @Description Retrieves the calling publisher's listings with per-status counters.
// @Tags opportunities
// @Produce json
// @Param status query string false "Status filter"
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.PublisherOpportunitiesResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /publisher/opportunities [get]
func (h *opportunityHandler) listMyOpportunities(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	_, limit, offset := parsePagination(c)
	var status *domain.OpportunityStatus
	if s := c.Query("status"); s != "" {
		st := domain.OpportunityStatus(s)
		status = &st
	}

	listing, err := h.opportunityService.ListMyOpportunities(c.Request.Context(), actor, status, limit, offset)
	if err != nil {
		h.respondOpportunityError(c, logger, err, "Failed to list opportunities")
		return
	}

	counts := make(map[string]int, len(listing.StatusCounts))
	for s, n := range listing.StatusCounts {
		counts[string(s)] = n
	}
	c.JSON(http.StatusOK, dto.PublisherOpportunitiesResponse{
		Opportunities: dto.ToOpportunityResponses(listing.Opportunities),
		Total:         listing.Total,
		StatusCounts:  counts,
	})
}

// saveOpportunity godoc
// @Summary Save an opportunity
// @Description Bookmarks an active listing for the calling user.
// @Tags opportunities
// @Param id path string true "Opportunity ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already saved"
// @Security BearerAuth
// @Router /opportunities/{id}/save [post]
func (h *opportunityHandler) saveOpportunity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.opportunityService.SaveOpportunity(c.Request.Context(), userID, c.Param("id")); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Opportunity already saved"})
			return
		}
		h.respondOpportunityError(c, logger, err, "Failed to save opportunity")
		return
	}

	c.Status(http.StatusNoContent)
}

// unsaveOpportunity godoc
// @Summary Unsave an opportunity
// @Description Removes a bookmark.
// @Tags opportunities
// @Param id path string true "Opportunity ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /opportunities/{id}/save [delete]
func (h *opportunityHandler) unsaveOpportunity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.opportunityService.UnsaveOpportunity(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.respondOpportunityError(c, logger, err, "Failed to unsave opportunity")
		return
	}

	c.Status(http.StatusNoContent)
}

// listSavedOpportunities godoc
// @Summary List saved opportunities
// @Description Retrieves the calling user's bookmarked listings.
// @Tags opportunities
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.ListOpportunitiesResponse
// @Security BearerAuth
// @Router /saved-opportunities [get]
func (h *opportunityHandler) listSavedOpportunities(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	page, limit, offset := parsePagination(c)
	opportunities, total, err := h.opportunityService.ListSavedOpportunities(c.Request.Context(), userID, limit, offset)
	if err != nil {
		logger.Error("Failed to list saved opportunities", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve saved opportunities"})
		return
	}

	c.JSON(http.StatusOK, dto.ListOpportunitiesResponse{
		Opportunities: dto.ToOpportunityResponses(opportunities),
		Total:         total,
		Page:          page,
		TotalPages:    totalPages(total, limit),
	})
}

// respondOpportunityError maps workflow errors onto HTTP statuses shared by
// the mutating opportunity endpoints.
func (h *opportunityHandler) respondOpportunityError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Opportunity not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "You do not have permission to modify this opportunity"})
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
