package model

import "time"

// EventPrivacy overrides a family member's default capabilities on a
// single event. A row only exists when the event creator has set one.
type EventPrivacy struct {
	ID             int64     `json:"id"`
	EventID        int64     `json:"event_id"`
	UserID         int64     `json:"user_id"`
	CanView        bool      `json:"can_view"`
	CanEdit        bool      `json:"can_edit"`
	CanComment     bool      `json:"can_comment"`
	CanUploadMedia bool      `json:"can_upload_media"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
