package model

import "time"

const (
	EventTypeBirthday  = "birthday"
	EventTypeHoliday   = "holiday"
	EventTypeMilestone = "milestone"
	EventTypeGathering = "gathering"
	EventTypeOther     = "other"
)

type Event struct {
	ID          int64     `json:"id"`
	FamilyID    int64     `json:"family_id"`
	CreatedBy   int64     `json:"created_by"`
	Title       string    `json:"title"`
	EventDate   time.Time `json:"event_date"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	EventType   string    `json:"event_type"`
	Tags        []string  `json:"tags"`
	IsPublic    bool      `json:"is_public"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ValidEventType(t string) bool {
	switch t {
	case EventTypeBirthday, EventTypeHoliday, EventTypeMilestone, EventTypeGathering, EventTypeOther:
		return true
	}
	return false
}
