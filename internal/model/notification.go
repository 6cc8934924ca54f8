package model

import "time"

const (
	NotificationComment     = "comment"
	NotificationMediaUpload = "media_upload"
	NotificationEventUpdate = "event_update"
	NotificationInvitation  = "invitation"
	NotificationSystem      = "system"
)

type Notification struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	RefID     *int64    `json:"ref_id"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
