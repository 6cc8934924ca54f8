package model

import "time"

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

const (
	JoinPolicyOpen   = "open"
	JoinPolicyInvite = "invite"
)

type Family struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	CreatedBy  int64     `json:"created_by"`
	IsPublic   bool      `json:"is_public"`
	JoinPolicy string    `json:"join_policy"`
	MaxMembers *int      `json:"max_members"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type FamilyMember struct {
	ID        int64     `json:"id"`
	FamilyID  int64     `json:"family_id"`
	UserID    int64     `json:"user_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
