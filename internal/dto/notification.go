package dto

import (
	"time"

	"github.com/Anjos2/oportuniapp/internal/core/domain"
)

// NotificationResponse is the API shape of a notification.
type NotificationResponse struct {
	NotificationID string    `json:"notificationId"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	Category       string    `json:"category"`
	Link           *string   `json:"link,omitempty"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ListNotificationsResponse carries a user's notifications and their unread
// count.
type ListNotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int                    `json:"unreadCount"`
}

// ToNotificationResponse maps a domain notification to its API shape.
func ToNotificationResponse(n domain.Notification) NotificationResponse {
	return NotificationResponse{
		NotificationID: n.NotificationID,
		Title:          n.Title,
		Message:        n.Message,
		Category:       string(n.Category),
		Link:           n.Link,
		Read:           n.Read,
		CreatedAt:      n.CreatedAt,
	}
}

// ToNotificationResponses maps a slice of domain notifications.
func ToNotificationResponses(items []domain.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(items))
	for _, n := range items {
		out = append(out, ToNotificationResponse(n))
	}
	return out
}
