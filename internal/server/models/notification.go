package models

import "time"

// Notification types.
const (
	NotificationLike    = "like"
	NotificationComment = "comment"
	NotificationFollow  = "follow"
	NotificationMessage = "message"
)

// Notification is an event addressed to one user.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ActorID   string    `json:"actorId"`
	Type      string    `json:"type"`
	TargetID  string    `json:"targetId,omitempty"`
	Content   string    `json:"content"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// NotificationPage is the payload of GET /api/notifications.
type NotificationPage struct {
	Notifications []Notification `json:"notifications"`
	Pagination    Pagination     `json:"pagination"`
	UnreadCount   int            `json:"unreadCount"`
}
