package models

import "time"

type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationError   NotificationType = "error"
)

// Notification is a transient toast shown to one session.
type Notification struct {
	ID        string           `json:"id"`
	SessionID string           `json:"session_id"`
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"`
	CreatedAt time.Time        `json:"created_at"`
	ExpiresAt time.Time        `json:"expires_at"`
}

func (n Notification) ExpiredAt(now time.Time) bool {
	return !now.Before(n.ExpiresAt)
}
