package services

import (
	"context"

	"github.com/Anjos2/oportuniapp/internal/core/domain"
)

// NotificationSvcFacade is the user-facing notification surface. Workflow
// notifications are written transactionally by the repositories; this
// service covers reads and read-marking.
type NotificationSvcFacade interface {
	ListNotifications(ctx context.Context, userID string, limit, offset int) ([]domain.Notification, int, error)
	MarkNotificationRead(ctx context.Context, notificationID, userID string) error
	MarkAllNotificationsRead(ctx context.Context, userID string) error
}
