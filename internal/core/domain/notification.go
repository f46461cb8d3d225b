package domain

import "time"

// NotificationCategory selects how the frontend renders a notification.
type NotificationCategory string

const (
	NotificationInfo        NotificationCategory = "info"
	NotificationSuccess     NotificationCategory = "success"
	NotificationWarning     NotificationCategory = "warning"
	NotificationApplication NotificationCategory = "application"
)

// Notification is a per-user message created by workflows as a transition
// side effect. The read flag is mutated by the user-facing API only.
type Notification struct {
	NotificationID string               `json:"notificationID"`
	UserID         string               `json:"userID"`
	Title          string               `json:"title"`
	Message        string               `json:"message"`
	Category       NotificationCategory `json:"category"`
	Link           *string              `json:"link"`
	Read           bool                 `json:"read"`
	CreatedAt      time.Time            `json:"createdAt"`
}
