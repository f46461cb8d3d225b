package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Anjos2/oportuniapp/internal/apperrors"
	portssvc "github.com/Anjos2/oportuniapp/internal/core/ports/services"
	"github.com/Anjos2/oportuniapp/internal/dto"
	"github.com/Anjos2/oportuniapp/internal/middleware"
	"github.com/gin-gonic/gin"
)

// notificationHandler serves the calling user's notification feed.
type notificationHandler struct {
	notificationService portssvc.NotificationSvcFacade
}

func newNotificationHandler(ns portssvc.NotificationSvcFacade) *notificationHandler {
	return &notificationHandler{notificationService: ns}
}

// registerNotificationRoutes registers routes related to notifications.
func registerNotificationRoutes(rg *gin.RouterGroup, notificationService portssvc.NotificationSvcFacade) {
	h := newNotificationHandler(notificationService)

	notifications := rg.Group("/notifications")
	{
		notifications.GET("", h.listNotifications)
		notifications.PATCH("/:id/read", h.markRead)
		notifications.POST("/read-all", h.markAllRead)
	}
}

// listNotifications godoc
// @Summary List notifications
// @Description Retrieves the calling user's notifications, newest first, with the unread count.
// @Tags notifications
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.ListNotificationsResponse
// @Security BearerAuth
// @Router /notifications [get]
func (h *notificationHandler) listNotifications(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	_, limit, offset := parsePagination(c)
	notifications, unread, err := h.notificationService.ListNotifications(c.Request.Context(), userID, limit, offset)
	if err != nil {
		logger.Error("Failed to list notifications", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve notifications"})
		return
	}

	c.JSON(http.StatusOK, dto.ListNotificationsResponse{
		Notifications: dto.ToNotificationResponses(notifications),
		UnreadCount:   unread,
	})
}

// markRead godoc
// @Summary Mark a notification read
// @Description Marks one of the caller's notifications as read.
// @Tags notifications
// @Param id path string true "Notification ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /notifications/{id}/read [patch]
func (h *notificationHandler) markRead(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.notificationService.MarkNotificationRead(c.Request.Context(), c.Param("id"), userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Notification not found"})
			return
		}
		logger.Error("Failed to mark notification read", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update notification"})
		return
	}

	c.Status(http.StatusNoContent)
}

// markAllRead godoc
// @Summary Mark all notifications read
// @Description Marks every unread notification of the caller as read.
// @Tags notifications
// @Success 204 "No Content"
// @Security BearerAuth
// @Router /notifications/read-all [post]
func (h *notificationHandler) markAllRead(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.notificationService.MarkAllNotificationsRead(c.Request.Context(), userID); err != nil {
		logger.Error("Failed to mark notifications read", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update notifications"})
		return
	}

	c.Status(http.StatusNoContent)
}
