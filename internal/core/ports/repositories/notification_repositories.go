package repositories

import (
	"context"

	"github.com/Anjos2/oportuniapp/internal/core/domain"
)

// NotificationRepository persists per-user notifications. Workflows insert
// through their own transactional writes; this surface backs direct creation
// (e.g. the welcome message) and the user-facing read API.
type NotificationRepository interface {
	SaveNotification(ctx context.Context, notification domain.Notification) error
	// ListNotificationsByUser returns the page of notifications plus the
	// user's unread count.
	ListNotificationsByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Notification, int, error)
	MarkNotificationRead(ctx context.Context, notificationID, userID string) error
	MarkAllNotificationsRead(ctx context.Context, userID string) error
}
