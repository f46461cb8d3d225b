package services

import (
	"context"
	"log/slog"

	"github.com/Anjos2/oportuniapp/internal/core/domain"
	portsrepo "github.com/Anjos2/oportuniapp/internal/core/ports/repositories"
	portssvc "github.com/Anjos2/oportuniapp/internal/core/ports/services"
)

// notificationService implements the NotificationSvcFacade interface
type notificationService struct {
	BaseService
	notificationRepo portsrepo.NotificationRepository
}

// NewNotificationService creates a new notification service with the provided dependencies
func NewNotificationService(notificationRepo portsrepo.NotificationRepository) portssvc.NotificationSvcFacade {
	return &notificationService{notificationRepo: notificationRepo}
}

// Ensure notificationService implements the NotificationSvcFacade interface
var _ portssvc.NotificationSvcFacade = (*notificationService)(nil)

func (s *notificationService) ListNotifications(ctx context.Context, userID string, limit, offset int) ([]domain.Notification, int, error) {
	notifications, unread, err := s.notificationRepo.ListNotificationsByUser(ctx, userID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list notifications",
			slog.String("user_id", userID))
		return nil, 0, err
	}
	if notifications == nil {
		notifications = []domain.Notification{}
	}
	return notifications, unread, nil
}

// MarkNotificationRead only touches the caller's own rows; a foreign ID
// surfaces ErrNotFound.
func (s *notificationService) MarkNotificationRead(ctx context.Context, notificationID, userID string) error {
	return s.notificationRepo.MarkNotificationRead(ctx, notificationID, userID)
}

func (s *notificationService) MarkAllNotificationsRead(ctx context.Context, userID string) error {
	return s.notificationRepo.MarkAllNotificationsRead(ctx, userID)
}
