package model

import "time"

const (
	ContributorOwner  = "owner"
	ContributorEditor = "editor"
	ContributorViewer = "viewer"
)

type EventContributor struct {
	ID        int64     `json:"id"`
	EventID   int64     `json:"event_id"`
	UserID    int64     `json:"user_id"`
	Role      string    `json:"role"`
	CanEdit   bool      `json:"can_edit"`
	CanDelete bool      `json:"can_delete"`
	CanInvite bool      `json:"can_invite"`
	AddedBy   int64     `json:"added_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ValidContributorRole(r string) bool {
	switch r {
	case ContributorOwner, ContributorEditor, ContributorViewer:
		return true
	}
	return false
}
