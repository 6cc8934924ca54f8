package model

import "time"

type Invite struct {
	ID         int64      `json:"id"`
	FamilyID   int64      `json:"family_id"`
	Email      string     `json:"email"`
	Token      string     `json:"token"`
	InvitedBy  int64      `json:"invited_by"`
	ExpiresAt  time.Time  `json:"expires_at"`
	AcceptedAt *time.Time `json:"accepted_at"`
	CreatedAt  time.Time  `json:"created_at"`
}
