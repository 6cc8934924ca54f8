package model

import "time"

type Comment struct {
	ID        int64     `json:"id"`
	EventID   int64     `json:"event_id"`
	AuthorID  int64     `json:"author_id"`
	Body      string    `json:"body"`
	ParentID  *int64    `json:"parent_id"`
	Edited    bool      `json:"edited"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
